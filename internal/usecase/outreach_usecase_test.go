package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/cold-mailer/internal/config"
	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/fadilmartias/cold-mailer/internal/repository"
	"github.com/fadilmartias/cold-mailer/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	linkP1 = "https://portfolio.example.com/p1"
	linkP2 = "https://portfolio.example.com/p2"
	linkP3 = "https://portfolio.example.com/p3"
)

var testPortfolio = []model.PortfolioEntry{
	{Techstack: "Python, PostgreSQL", Link: linkP1},
	{Techstack: "React, Node.js", Link: linkP2},
	{Techstack: "Unity, C#", Link: linkP3},
}

// scriptedLLM answers extraction prompts with jobsReply and writes an email
// listing every link it was offered for composition prompts.
type scriptedLLM struct {
	mu          sync.Mutex
	jobsReply   string
	failCompose map[int]bool
	extracts    int
	composes    int
	prompts     []string
}

func (l *scriptedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prompts = append(l.prompts, prompt)

	if strings.Contains(prompt, "SCRAPED TEXT FROM WEBSITE") {
		l.extracts++
		return l.jobsReply, nil
	}

	l.composes++
	if l.failCompose[l.composes] {
		return "", errors.New("model overloaded")
	}
	var links []string
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "- ") {
			links = append(links, strings.TrimPrefix(line, "- "))
		}
	}
	return fmt.Sprintf("Subject: Delivering your next hire\n\nDear Hiring Manager,\n\nRelevant work: %s\n\nBest regards",
		strings.Join(links, ", ")), nil
}

type memoryTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]model.OutreachTask
}

func newMemoryTaskRepo() *memoryTaskRepo {
	return &memoryTaskRepo{tasks: map[string]model.OutreachTask{}}
}

func (r *memoryTaskRepo) CreateTask(task *model.OutreachTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID.String()] = *task
	return nil
}

func (r *memoryTaskRepo) UpdateTask(task *model.OutreachTask) error {
	return r.CreateTask(task)
}

func (r *memoryTaskRepo) FindTaskByID(id string) (*model.OutreachTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &task, nil
}

type stubLoader struct {
	text string
	err  error
	urls []string
}

func (l *stubLoader) Load(ctx context.Context, url string) (string, error) {
	l.urls = append(l.urls, url)
	return l.text, l.err
}

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *mapCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *mapCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

type fixture struct {
	uc     *OutreachUsecase
	llm    *scriptedLLM
	repo   *memoryTaskRepo
	loader *stubLoader
}

func newFixture(t *testing.T, jobsReply string) fixture {
	t.Helper()
	ctx := context.Background()

	index := service.NewPortfolioIndexService(
		repository.NewMemoryVectorStore(),
		service.NewKeywordEmbedder(512),
		repository.NewPortfolioCSVRepository(t.TempDir()+"/portfolio.csv"),
		2,
	)
	require.NoError(t, index.ReplaceAll(ctx, testPortfolio))

	llm := &scriptedLLM{jobsReply: jobsReply, failCompose: map[int]bool{}}
	repo := newMemoryTaskRepo()
	loader := &stubLoader{}
	uc := NewOutreachUsecase(
		repo,
		service.NewJobExtractorService(llm),
		index,
		service.NewEmailComposerService(llm),
		loader,
		llm,
		&config.MailerConfig{CompanyName: "Acme Consulting", SenderName: "Jo Rivera", DefaultLength: "Medium"},
	)
	return fixture{uc: uc, llm: llm, repo: repo, loader: loader}
}

const backendJob = `[{"role":"Backend Engineer","experience":"3 years","skills":["Python","PostgreSQL"],"description":"Build REST APIs"}]`

func TestOutreachUsecase_EndToEnd(t *testing.T) {
	f := newFixture(t, backendJob)

	results, err := f.uc.Generate(context.Background(), OutreachRequest{
		Text:      "<h1>Careers</h1><p>Backend Engineer: Python and PostgreSQL, 3 years.</p>",
		Recipient: "hr@example.com",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Empty(t, res.Error)
	assert.Equal(t, "Backend Engineer", res.Job.Role)
	require.Len(t, res.Links, 2)
	assert.Equal(t, "Python", res.Links[0].Skill)
	assert.Equal(t, linkP1, res.Links[0].Matches[0].Link)
	assert.Equal(t, "PostgreSQL", res.Links[1].Skill)
	assert.Equal(t, linkP1, res.Links[1].Matches[0].Link)

	require.NotNil(t, res.Email)
	assert.True(t, res.Email.HasSubject)
	assert.Equal(t, "Delivering your next hire", res.Email.Subject)
	assert.Contains(t, res.Email.Body, linkP1)
	assert.Contains(t, res.Email.Raw, linkP1)
	assert.True(t, strings.HasPrefix(res.Email.Mailto, "mailto:hr@example.com?subject=Delivering%20your%20next%20hire"))

	composePrompt := f.llm.prompts[1]
	assert.Contains(t, composePrompt, "Acme Consulting")
	assert.Contains(t, composePrompt, "Jo Rivera")
	assert.Contains(t, composePrompt, "around 250 words")
	assert.Contains(t, f.llm.prompts[0], "Backend Engineer: Python and PostgreSQL")
	assert.NotContains(t, f.llm.prompts[0], "<h1>")
}

func TestOutreachUsecase_SkipsFailedJob(t *testing.T) {
	f := newFixture(t, `[{"role":"Backend Engineer","skills":["Python"]},{"role":"Frontend Engineer","skills":["React"]},{"role":"Game Developer","skills":["Unity"]}]`)
	f.llm.failCompose[2] = true

	results, err := f.uc.Generate(context.Background(), OutreachRequest{Text: "jobs", Length: "short"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NotNil(t, results[0].Email)
	assert.Empty(t, results[0].Error)

	assert.Nil(t, results[1].Email)
	assert.Contains(t, results[1].Error, "model overloaded")
	assert.Equal(t, linkP2, results[1].Links[0].Matches[0].Link)

	require.NotNil(t, results[2].Email)
	assert.Contains(t, results[2].Email.Body, linkP3)
	assert.Contains(t, f.llm.prompts[1], "around 150 words")
}

func TestOutreachUsecase_ParseErrorFailsPage(t *testing.T) {
	f := newFixture(t, "I could not find any jobs.")

	results, err := f.uc.Generate(context.Background(), OutreachRequest{Text: "jobs"})
	assert.Nil(t, results)
	var parseErr *service.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Context too big. Unable to parse jobs.", err.Error())
	assert.Zero(t, f.llm.composes)
}

func TestOutreachUsecase_JobWithoutSkills(t *testing.T) {
	f := newFixture(t, `{"role":"Office Manager"}`)

	results, err := f.uc.Generate(context.Background(), OutreachRequest{Text: "jobs"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Links)
	require.NotNil(t, results[0].Email)
	assert.Contains(t, f.llm.prompts[1], "(no portfolio links available)")
}

func TestOutreachUsecase_InputValidation(t *testing.T) {
	f := newFixture(t, backendJob)

	_, err := f.uc.Generate(context.Background(), OutreachRequest{})
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = f.uc.Generate(context.Background(), OutreachRequest{Text: "We hire Python developers", Keywords: []string{"rust", "elixir"}})
	assert.ErrorIs(t, err, ErrNoKeywordMatch)
	assert.Zero(t, f.llm.extracts)

	_, err = f.uc.Generate(context.Background(), OutreachRequest{Text: "We hire Python developers", Keywords: []string{"rust", "PYTHON"}})
	assert.NoError(t, err)
	assert.Equal(t, 1, f.llm.extracts)
}

func TestOutreachUsecase_LoadsURL(t *testing.T) {
	f := newFixture(t, backendJob)
	f.loader.text = "Backend Engineer Python PostgreSQL"

	results, err := f.uc.Generate(context.Background(), OutreachRequest{URL: "https://jobs.example.com/careers"})
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, []string{"https://jobs.example.com/careers"}, f.loader.urls)

	f.loader.err = errors.New("dial tcp: no such host")
	_, err = f.uc.Generate(context.Background(), OutreachRequest{URL: "https://down.example.com"})
	assert.ErrorIs(t, err, f.loader.err)
}

func TestOutreachUsecase_ExtractionCache(t *testing.T) {
	f := newFixture(t, backendJob)
	f.uc.WithCache(&mapCache{data: map[string][]byte{}}, time.Hour)
	ctx := context.Background()

	first, err := f.uc.ExtractJobs(ctx, "Backend Engineer Python")
	require.NoError(t, err)
	second, err := f.uc.ExtractJobs(ctx, "Backend Engineer Python")
	require.NoError(t, err)

	assert.Equal(t, 1, f.llm.extracts)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Role, second[0].Role)
	assert.Equal(t, first[0].SkillList(), second[0].SkillList())
	assert.Equal(t, first[0].Experience, second[0].Experience)

	_, err = f.uc.ExtractJobs(ctx, "Another page")
	require.NoError(t, err)
	assert.Equal(t, 2, f.llm.extracts)
}

func TestOutreachUsecase_ProcessTask(t *testing.T) {
	f := newFixture(t, backendJob)

	id, err := f.uc.Submit(OutreachRequest{Text: "Backend Engineer Python PostgreSQL", Length: "Long"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		task, err := f.repo.FindTaskByID(id)
		return err == nil && task.Status != model.TaskStatusProcessing
	}, 5*time.Second, 10*time.Millisecond)

	task, err := f.uc.GetResult(id)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, task.Status)
	assert.Equal(t, "Long", task.Length)
	assert.Equal(t, "Acme Consulting", task.CompanyName)

	var results []model.OutreachResult
	require.NoError(t, json.Unmarshal([]byte(task.Results), &results))
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Email)
	assert.Contains(t, results[0].Email.Body, linkP1)
}

func TestOutreachUsecase_ProcessTaskFailure(t *testing.T) {
	f := newFixture(t, "not json")

	id, err := f.uc.Submit(OutreachRequest{Text: "jobs"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		task, err := f.repo.FindTaskByID(id)
		return err == nil && task.Status == model.TaskStatusFailed
	}, 5*time.Second, 10*time.Millisecond)

	task, _ := f.uc.GetResult(id)
	assert.Equal(t, "Context too big. Unable to parse jobs.", task.Error)

	_, err = f.uc.Submit(OutreachRequest{})
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = f.uc.GetResult("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
