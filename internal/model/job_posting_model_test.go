package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNewJobPostingFromJSON(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		role       string
		experience Opt[string]
		skills     Opt[[]string]
	}{
		{
			name:       "all fields",
			raw:        `{"role":"Backend Engineer","experience":"3+ years","skills":["Python","PostgreSQL"],"description":"APIs"}`,
			role:       "Backend Engineer",
			experience: Some("3+ years"),
			skills:     Some([]string{"Python", "PostgreSQL"}),
		},
		{
			name:       "single skill string",
			raw:        `{"role":"Data Analyst","skills":"SQL"}`,
			role:       "Data Analyst",
			experience: None[string](),
			skills:     Some([]string{"SQL"}),
		},
		{
			name:       "numeric experience",
			raw:        `{"role":"SRE","experience":5,"skills":null}`,
			role:       "SRE",
			experience: Some("5"),
			skills:     None[[]string](),
		},
		{
			name:       "blank skills dropped",
			raw:        `{"role":"QA","skills":["", " Selenium "]}`,
			role:       "QA",
			experience: None[string](),
			skills:     Some([]string{"Selenium"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewJobPostingFromJSON(gjson.Parse(tt.raw))
			assert.Equal(t, tt.role, job.Role)
			assert.Equal(t, tt.experience, job.Experience)
			assert.Equal(t, tt.skills, job.Skills)
			assert.Equal(t, tt.raw, job.String())
		})
	}
}

func TestJobPosting_DisplayRoleAndString(t *testing.T) {
	job := JobPosting{Skills: Some([]string{"Go"})}
	assert.Equal(t, "Unknown Role", job.DisplayRole())
	assert.Equal(t, []string{"Go"}, job.SkillList())

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(job.String()), &decoded))
	assert.Equal(t, "", decoded["role"])
	assert.Nil(t, decoded["experience"])
	assert.Equal(t, []any{"Go"}, decoded["skills"])
}

func TestParseEmailLength(t *testing.T) {
	assert.Equal(t, EmailLengthShort, ParseEmailLength("short"))
	assert.Equal(t, EmailLengthLong, ParseEmailLength(" Long "))
	assert.Equal(t, EmailLengthMedium, ParseEmailLength("Medium"))
	assert.Equal(t, EmailLengthMedium, ParseEmailLength("Huge"))
	assert.Equal(t, EmailLengthMedium, ParseEmailLength(""))

	assert.Equal(t, 150, EmailLengthShort.WordTarget())
	assert.Equal(t, 250, EmailLengthMedium.WordTarget())
	assert.Equal(t, 350, EmailLengthLong.WordTarget())
}

func TestUniqueLinks(t *testing.T) {
	results := []LinkResult{
		{Skill: "Python", Matches: []LinkMatch{{Link: "p1"}, {Link: "p2"}}},
		{Skill: "SQL", Matches: []LinkMatch{{Link: "p1"}, {Link: "p3"}}},
		{Skill: "Rust", Matches: []LinkMatch{}},
	}
	assert.Equal(t, []string{"p1", "p2", "p3"}, UniqueLinks(results))
	assert.Equal(t, []string{"p1", "p2"}, results[0].Links())
	assert.Nil(t, UniqueLinks(nil))
}

func TestPortfolioEntry_Validate(t *testing.T) {
	assert.NoError(t, PortfolioEntry{Techstack: "Go", Link: "https://example.com/go"}.Validate())
	assert.ErrorIs(t, PortfolioEntry{Techstack: "Go", Link: "  "}.Validate(), ErrEmptyLink)
}
