package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/tidwall/gjson"
)

const parseJobsMessage = "Context too big. Unable to parse jobs."

// ParseError reports that the extraction response was not usable JSON. The
// message is fixed; Raw keeps the model output for logging.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return parseJobsMessage
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errNotJobJSON = errors.New("response is neither a JSON object nor an array of objects")

const extractJobsPrompt = `
### SCRAPED TEXT FROM WEBSITE:
%s
### INSTRUCTION:
The scraped text is from the career's page of a website.
Your job is to extract the job postings and return them in JSON format containing the following keys: ` + "`role`, `experience`, `skills` and `description`" + `.
Only return the valid JSON.
### VALID JSON (NO PREAMBLE):
`

type JobExtractorService struct {
	llm LLMServiceInterface
}

func NewJobExtractorService(llm LLMServiceInterface) *JobExtractorService {
	return &JobExtractorService{llm: llm}
}

// ExtractJobs asks the model for the postings contained in cleanedText.
// A single object is returned as a one-element slice. Unparseable output
// yields *ParseError and no partial result; nothing is retried here.
func (s *JobExtractorService) ExtractJobs(ctx context.Context, cleanedText string) ([]model.JobPosting, error) {
	raw, err := s.llm.Complete(ctx, fmt.Sprintf(extractJobsPrompt, cleanedText))
	if err != nil {
		return nil, fmt.Errorf("extract jobs: %w", err)
	}
	return ParseJobPostings(raw)
}

// ParseJobPostings decodes an extraction response into postings.
func ParseJobPostings(raw string) ([]model.JobPosting, error) {
	body, ok := locateJSON(stripFences(raw))
	if !ok {
		return nil, &ParseError{Raw: raw, Err: fmt.Errorf("invalid JSON in model output")}
	}

	parsed := gjson.Parse(body)
	switch {
	case parsed.IsObject():
		return []model.JobPosting{model.NewJobPostingFromJSON(parsed)}, nil
	case parsed.IsArray():
		items := parsed.Array()
		jobs := make([]model.JobPosting, 0, len(items))
		for _, item := range items {
			if !item.IsObject() {
				return nil, &ParseError{Raw: raw, Err: errNotJobJSON}
			}
			jobs = append(jobs, model.NewJobPostingFromJSON(item))
		}
		return jobs, nil
	default:
		return nil, &ParseError{Raw: raw, Err: errNotJobJSON}
	}
}

// locateJSON returns s if it is valid JSON, otherwise the outermost object or
// array embedded in surrounding prose.
func locateJSON(s string) (string, bool) {
	if gjson.Valid(s) {
		return s, true
	}
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return "", false
	}
	closer := "}"
	if s[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(s, closer)
	if end <= start {
		return "", false
	}
	candidate := s[start : end+1]
	if !gjson.Valid(candidate) {
		return "", false
	}
	return candidate, true
}
