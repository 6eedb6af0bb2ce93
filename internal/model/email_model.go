package model

import "strings"

type EmailLength string

const (
	EmailLengthShort  EmailLength = "Short"
	EmailLengthMedium EmailLength = "Medium"
	EmailLengthLong   EmailLength = "Long"
)

// ParseEmailLength falls back to Medium for anything it does not recognise.
func ParseEmailLength(s string) EmailLength {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short":
		return EmailLengthShort
	case "long":
		return EmailLengthLong
	default:
		return EmailLengthMedium
	}
}

func (l EmailLength) WordTarget() int {
	switch l {
	case EmailLengthShort:
		return 150
	case EmailLengthLong:
		return 350
	default:
		return 250
	}
}

type GeneratedEmail struct {
	Raw        string `json:"raw"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	HasSubject bool   `json:"has_subject"`
	Mailto     string `json:"mailto"`
}
