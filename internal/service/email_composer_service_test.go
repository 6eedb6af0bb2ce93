package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailComposerService_LengthInstruction(t *testing.T) {
	tests := []struct {
		length model.EmailLength
		want   string
	}{
		{model.EmailLengthShort, "around 150 words"},
		{model.EmailLengthMedium, "around 250 words"},
		{model.EmailLengthLong, "around 350 words"},
		{model.EmailLength("Epic"), "around 250 words"},
	}
	for _, tt := range tests {
		t.Run(string(tt.length), func(t *testing.T) {
			llm := &fakeLLM{reply: "Subject: Hi\n\nBody"}
			_, err := NewEmailComposerService(llm).WriteMail(context.Background(), model.JobPosting{Role: "Dev"}, nil, MailOptions{
				Length:      tt.length,
				CompanyName: "Acme",
				SenderName:  "Jo",
			})
			require.NoError(t, err)
			require.Len(t, llm.prompts, 1)
			assert.Contains(t, llm.prompts[0], tt.want)
		})
	}
}

func TestEmailComposerService_WriteMailVerbatim(t *testing.T) {
	reply := "Subject: Python backend help\n\nDear Hiring Manager,\n\nSee https://example.com/p1\n\nBest,\nJo"
	llm := &fakeLLM{reply: reply}
	job := model.JobPosting{
		Role:   "Backend Engineer",
		Skills: model.Some([]string{"Python", "PostgreSQL"}),
		Raw:    `{"role":"Backend Engineer","skills":["Python","PostgreSQL"]}`,
	}
	links := []model.LinkResult{
		{Skill: "Python", Matches: []model.LinkMatch{{Link: "https://example.com/p1"}, {Link: "https://example.com/p2"}}},
		{Skill: "PostgreSQL", Matches: []model.LinkMatch{{Link: "https://example.com/p1"}}},
	}

	got, err := NewEmailComposerService(llm).WriteMail(context.Background(), job, links, MailOptions{
		Length:      model.EmailLengthShort,
		CompanyName: "Acme Consulting",
		SenderName:  "Jo Rivera",
	})
	require.NoError(t, err)
	assert.Equal(t, reply, got)

	prompt := llm.prompts[0]
	assert.Contains(t, prompt, job.Raw)
	assert.Contains(t, prompt, "You are Jo Rivera, a business development executive at Acme Consulting.")
	assert.Contains(t, prompt, "- https://example.com/p1\n- https://example.com/p2\n")
	assert.Contains(t, prompt, `starting with "Subject: "`)
	assert.Contains(t, prompt, "EMAIL (NO PREAMBLE)")
	assert.NotContains(t, prompt, "{company_name}")
}

func TestEmailComposerService_NoLinks(t *testing.T) {
	prompt := BuildMailPrompt(model.JobPosting{Role: "Dev"}, []model.LinkResult{{Skill: "Go", Matches: []model.LinkMatch{}}}, MailOptions{})
	assert.Contains(t, prompt, "(no portfolio links available)")
	assert.Contains(t, prompt, "around 250 words")
}

func TestEmailComposerService_Error(t *testing.T) {
	boom := errors.New("rate limited")
	_, err := NewEmailComposerService(&fakeLLM{err: boom}).WriteMail(context.Background(), model.JobPosting{}, nil, MailOptions{})
	assert.ErrorIs(t, err, boom)
}
