package model

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

type JobPosting struct {
	Role        string        `json:"role"`
	Experience  Opt[string]   `json:"experience"`
	Skills      Opt[[]string] `json:"skills"`
	Description Opt[string]   `json:"description"`
	Raw         string        `json:"-"`
}

// NewJobPostingFromJSON maps one JSON object produced by the language model.
// A numeric experience is kept as text and a single skill string becomes a
// one-element list.
func NewJobPostingFromJSON(obj gjson.Result) JobPosting {
	job := JobPosting{
		Role:        strings.TrimSpace(obj.Get("role").String()),
		Experience:  optString(obj.Get("experience")),
		Description: optString(obj.Get("description")),
		Raw:         obj.Raw,
	}

	skills := obj.Get("skills")
	switch {
	case !skills.Exists() || skills.Type == gjson.Null:
		job.Skills = None[[]string]()
	case skills.IsArray():
		list := make([]string, 0, len(skills.Array()))
		for _, s := range skills.Array() {
			if v := strings.TrimSpace(s.String()); v != "" {
				list = append(list, v)
			}
		}
		job.Skills = Some(list)
	default:
		if v := strings.TrimSpace(skills.String()); v != "" {
			job.Skills = Some([]string{v})
		} else {
			job.Skills = Some([]string{})
		}
	}
	return job
}

func optString(r gjson.Result) Opt[string] {
	if !r.Exists() || r.Type == gjson.Null {
		return None[string]()
	}
	return Some(strings.TrimSpace(r.String()))
}

func (j JobPosting) SkillList() []string {
	return j.Skills.OrZero()
}

func (j JobPosting) DisplayRole() string {
	if j.Role == "" {
		return "Unknown Role"
	}
	return j.Role
}

// String is the representation embedded into prompts: the model's own JSON
// when available, otherwise the marshaled record.
func (j JobPosting) String() string {
	if j.Raw != "" {
		return j.Raw
	}
	b, err := json.Marshal(j)
	if err != nil {
		return j.Role
	}
	return string(b)
}
