package util

import (
	"net/url"
	"strings"
)

const subjectPrefix = "Subject:"

// SplitEmail applies the subject/body convention to generated email text: a
// first line starting with "Subject:" is the subject, the rest is the body.
// Without such a line the whole text is the body and ok is false.
func SplitEmail(text string) (subject, body string, ok bool) {
	trimmed := strings.TrimSpace(text)
	first, rest, _ := strings.Cut(trimmed, "\n")
	if !strings.HasPrefix(first, subjectPrefix) {
		return "", text, false
	}
	subject = strings.TrimSpace(strings.TrimPrefix(first, subjectPrefix))
	return subject, rest, true
}

// MailtoLink builds a mailto: URL that opens the email in the default client.
func MailtoLink(recipient, subject, body string) string {
	return "mailto:" + recipient + "?subject=" + mailtoEscape(subject) + "&body=" + mailtoEscape(body)
}

func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
