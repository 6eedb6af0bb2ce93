package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/cold-mailer/internal/model"
)

var lengthInstructions = map[model.EmailLength]string{
	model.EmailLengthShort:  "Create a brief, concise cold email (around 150 words) that's straight to the point.",
	model.EmailLengthMedium: "Create a balanced cold email (around 250 words) with enough detail to be persuasive.",
	model.EmailLengthLong:   "Create a comprehensive cold email (around 350 words) with detailed examples and value propositions.",
}

const writeMailPrompt = `
### JOB DESCRIPTION:
{job_description}

### INSTRUCTION:
You are {sender_name}, a business development executive at {company_name}. {company_name} is an AI & Software Consulting company dedicated to facilitating
the seamless integration of business processes through automated tools.
Over our experience, we have empowered numerous enterprises with tailored solutions, fostering scalability,
process optimization, cost reduction, and heightened overall efficiency.

{length_instruction}

Your job is to write a cold email to the client regarding the job mentioned above describing the capability of {company_name}
in fulfilling their needs.
Also add the most relevant ones from the following links to showcase {company_name}'s portfolio:
{link_list}

Remember you are {sender_name}, HR at {company_name}.

Format the email properly with:
1. A clear subject line starting with "Subject: "
2. Professional greeting
3. Well-structured paragraphs with proper spacing between them
4. A call to action
5. Professional closing
6. Your name and title in the signature

Do not provide a preamble.
### EMAIL (NO PREAMBLE):
`

// MailOptions carries the caller's formatting preferences and identity.
// Identity strings are passed through as given.
type MailOptions struct {
	Length      model.EmailLength
	CompanyName string
	SenderName  string
}

type EmailComposerService struct {
	llm LLMServiceInterface
}

func NewEmailComposerService(llm LLMServiceInterface) *EmailComposerService {
	return &EmailComposerService{llm: llm}
}

// WriteMail returns the model's email text verbatim. The output format is not
// validated; splitting subject from body is the caller's job.
func (s *EmailComposerService) WriteMail(ctx context.Context, job model.JobPosting, links []model.LinkResult, opts MailOptions) (string, error) {
	text, err := s.llm.Complete(ctx, BuildMailPrompt(job, links, opts))
	if err != nil {
		return "", fmt.Errorf("write mail: %w", err)
	}
	return text, nil
}

func BuildMailPrompt(job model.JobPosting, links []model.LinkResult, opts MailOptions) string {
	length := model.ParseEmailLength(string(opts.Length))

	r := strings.NewReplacer(
		"{job_description}", job.String(),
		"{sender_name}", opts.SenderName,
		"{company_name}", opts.CompanyName,
		"{length_instruction}", lengthInstructions[length],
		"{link_list}", formatLinkList(links),
	)
	return r.Replace(writeMailPrompt)
}

func formatLinkList(links []model.LinkResult) string {
	unique := model.UniqueLinks(links)
	if len(unique) == 0 {
		return "(no portfolio links available)"
	}
	var b strings.Builder
	for _, l := range unique {
		b.WriteString("- ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
