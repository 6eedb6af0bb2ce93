package dto

import (
	"encoding/json"
	"strings"

	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/tidwall/gjson"
)

// StringList accepts either a JSON array of strings or a single string,
// which is split on commas.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	parsed := gjson.ParseBytes(data)
	var out []string
	switch {
	case parsed.Type == gjson.Null:
	case parsed.IsArray():
		for _, v := range parsed.Array() {
			if s := strings.TrimSpace(v.String()); s != "" {
				out = append(out, s)
			}
		}
	default:
		for _, s := range strings.Split(parsed.String(), ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	*l = out
	return nil
}

type PageRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type MatchLinksRequest struct {
	Skills   StringList `json:"skills"`
	NResults int        `json:"n_results"`
}

type ComposeEmailRequest struct {
	Job         json.RawMessage    `json:"job"`
	Links       []model.LinkResult `json:"links"`
	NResults    int                `json:"n_results"`
	Length      string             `json:"length"`
	CompanyName string             `json:"company_name"`
	SenderName  string             `json:"sender_name"`
	Recipient   string             `json:"recipient"`
}

type OutreachRequest struct {
	Text        string     `json:"text"`
	URL         string     `json:"url"`
	Keywords    StringList `json:"keywords"`
	Length      string     `json:"length"`
	CompanyName string     `json:"company_name"`
	SenderName  string     `json:"sender_name"`
	Recipient   string     `json:"recipient"`
	NResults    int        `json:"n_results"`
}

type PortfolioItemRequest struct {
	Techstack string `json:"techstack"`
	Link      string `json:"link"`
}
