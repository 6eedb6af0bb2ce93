package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fadilmartias/cold-mailer/internal/config"
	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/fadilmartias/cold-mailer/internal/service"
	"github.com/fadilmartias/cold-mailer/internal/util"
	"github.com/google/uuid"
)

var (
	ErrMissingInput   = errors.New("either text or url is required")
	ErrNoKeywordMatch = errors.New("page does not mention any of the keywords")
)

type OutreachTaskRepositoryInterface interface {
	CreateTask(task *model.OutreachTask) error
	UpdateTask(task *model.OutreachTask) error
	FindTaskByID(id string) (*model.OutreachTask, error)
}

type JobCacheInterface interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// OutreachRequest describes one page to turn into outreach emails. Empty
// identity and length fields fall back to the mailer configuration.
type OutreachRequest struct {
	URL         string
	Text        string
	Keywords    []string
	Length      string
	CompanyName string
	SenderName  string
	Recipient   string
	NResults    int
}

type OutreachUsecase struct {
	taskRepo  OutreachTaskRepositoryInterface
	extractor *service.JobExtractorService
	index     *service.PortfolioIndexService
	composer  *service.EmailComposerService
	loader    service.PageLoaderServiceInterface
	llm       service.LLMServiceInterface
	mailer    *config.MailerConfig
	cache     JobCacheInterface
	cacheTTL  time.Duration
}

func NewOutreachUsecase(
	taskRepo OutreachTaskRepositoryInterface,
	extractor *service.JobExtractorService,
	index *service.PortfolioIndexService,
	composer *service.EmailComposerService,
	loader service.PageLoaderServiceInterface,
	llm service.LLMServiceInterface,
	mailer *config.MailerConfig,
) *OutreachUsecase {
	return &OutreachUsecase{
		taskRepo:  taskRepo,
		extractor: extractor,
		index:     index,
		composer:  composer,
		loader:    loader,
		llm:       llm,
		mailer:    mailer,
	}
}

// WithCache enables caching of extraction results keyed by page text.
func (uc *OutreachUsecase) WithCache(cache JobCacheInterface, ttl time.Duration) *OutreachUsecase {
	uc.cache = cache
	uc.cacheTTL = ttl
	return uc
}

// PageText returns normalised text for the request, fetching the URL when no
// text was supplied.
func (uc *OutreachUsecase) PageText(ctx context.Context, rawText, url string) (string, error) {
	if strings.TrimSpace(rawText) != "" {
		return util.CleanText(rawText), nil
	}
	if strings.TrimSpace(url) == "" {
		return "", ErrMissingInput
	}
	return uc.loader.Load(ctx, url)
}

func (uc *OutreachUsecase) ExtractJobs(ctx context.Context, text string) ([]model.JobPosting, error) {
	key := jobsCacheKey(text)
	if uc.cache != nil {
		var cached []model.JobPosting
		if hit, err := uc.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			log.Printf("Extraction cache hit for %s", key)
			return cached, nil
		}
	}

	jobs, err := uc.extractor.ExtractJobs(ctx, text)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, key, jobs, uc.cacheTTL); err != nil {
			log.Printf("Could not cache extraction %s: %v", key, err)
		}
	}
	return jobs, nil
}

func (uc *OutreachUsecase) MatchLinks(ctx context.Context, skills []string, n int) ([]model.LinkResult, error) {
	return uc.index.QueryLinks(ctx, skills, n)
}

// ComposeEmail writes the email and splits it by the subject convention. A
// missing subject line is tolerated: the whole text becomes the body.
func (uc *OutreachUsecase) ComposeEmail(ctx context.Context, job model.JobPosting, links []model.LinkResult, req OutreachRequest) (*model.GeneratedEmail, error) {
	raw, err := uc.composer.WriteMail(ctx, job, links, uc.mailOptions(req))
	if err != nil {
		return nil, err
	}

	subject, body, ok := util.SplitEmail(raw)
	if !ok {
		log.Printf("Generated email for %q has no subject line, using whole text as body", job.DisplayRole())
	}
	return &model.GeneratedEmail{
		Raw:        raw,
		Subject:    subject,
		Body:       body,
		HasSubject: ok,
		Mailto:     util.MailtoLink(req.Recipient, subject, body),
	}, nil
}

// Generate runs the whole pipeline for one page. Extraction failure fails the
// page; a failure on one job is recorded on its result and the rest continue.
func (uc *OutreachUsecase) Generate(ctx context.Context, req OutreachRequest) ([]model.OutreachResult, error) {
	text, err := uc.PageText(ctx, req.Text, req.URL)
	if err != nil {
		return nil, err
	}
	return uc.generateFromText(ctx, text, req)
}

func (uc *OutreachUsecase) generateFromText(ctx context.Context, text string, req OutreachRequest) ([]model.OutreachResult, error) {
	if !mentionsAny(text, req.Keywords) {
		return nil, ErrNoKeywordMatch
	}

	jobs, err := uc.ExtractJobs(ctx, text)
	if err != nil {
		return nil, err
	}

	results := make([]model.OutreachResult, 0, len(jobs))
	for _, job := range jobs {
		result := model.OutreachResult{Job: job, Links: []model.LinkResult{}}

		links, err := uc.MatchLinks(ctx, job.SkillList(), req.NResults)
		if err != nil {
			log.Printf("Skipping job %q: link matching failed: %v", job.DisplayRole(), err)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.Links = links

		email, err := uc.ComposeEmail(ctx, job, links, req)
		if err != nil {
			log.Printf("Skipping job %q: email generation failed: %v", job.DisplayRole(), err)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.Email = email
		results = append(results, result)

		log.Printf("Generated email for job: %s", job.DisplayRole())
	}
	return results, nil
}

// Submit stores a task and processes it in the background.
func (uc *OutreachUsecase) Submit(req OutreachRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.URL) == "" {
		return "", ErrMissingInput
	}

	opts := uc.mailOptions(req)
	task := model.OutreachTask{
		ID:          uuid.New(),
		SourceURL:   req.URL,
		PageText:    req.Text,
		Length:      string(opts.Length),
		CompanyName: opts.CompanyName,
		SenderName:  opts.SenderName,
		Status:      model.TaskStatusProcessing,
		Results:     "[]",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := uc.taskRepo.CreateTask(&task); err != nil {
		return "", err
	}

	go func() {
		if err := uc.ProcessTask(context.Background(), &task, req); err != nil {
			log.Printf("Outreach task %s failed: %v", task.ID, err)
		}
	}()

	return task.ID.String(), nil
}

func (uc *OutreachUsecase) ProcessTask(ctx context.Context, task *model.OutreachTask, req OutreachRequest) error {
	fail := func(err error) error {
		task.Status = model.TaskStatusFailed
		task.Error = err.Error()
		task.UpdatedAt = time.Now()
		_ = uc.taskRepo.UpdateTask(task)
		return err
	}

	text, err := uc.PageText(ctx, req.Text, req.URL)
	if err != nil {
		return fail(err)
	}
	task.PageText = text

	results, err := uc.generateFromText(ctx, text, req)
	if err != nil {
		return fail(err)
	}

	encoded, err := json.Marshal(results)
	if err != nil {
		return fail(fmt.Errorf("encode results: %w", err))
	}
	task.Results = string(encoded)
	task.Status = model.TaskStatusCompleted
	task.UpdatedAt = time.Now()
	return uc.taskRepo.UpdateTask(task)
}

func (uc *OutreachUsecase) GetResult(id string) (*model.OutreachTask, error) {
	return uc.taskRepo.FindTaskByID(id)
}

func (uc *OutreachUsecase) Test(ctx context.Context) (string, error) {
	return uc.llm.Complete(ctx, "Explain how AI works in a few words")
}

func (uc *OutreachUsecase) mailOptions(req OutreachRequest) service.MailOptions {
	length := req.Length
	if length == "" {
		length = uc.mailer.DefaultLength
	}
	company := req.CompanyName
	if company == "" {
		company = uc.mailer.CompanyName
	}
	sender := req.SenderName
	if sender == "" {
		sender = uc.mailer.SenderName
	}
	return service.MailOptions{
		Length:      model.ParseEmailLength(length),
		CompanyName: company,
		SenderName:  sender,
	}
}

func mentionsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	checked := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		checked++
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return checked == 0
}

func jobsCacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "jobs:extract:" + hex.EncodeToString(sum[:])
}
