package util

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	urlPattern         = regexp.MustCompile(`https?://\S+|www\.\S+`)
	specialCharPattern = regexp.MustCompile(`[^\p{L}\p{N}\s.,:;!?'"()#+/&@%$-]`)
	spacePattern       = regexp.MustCompile(`\s+`)
)

// CleanText turns scraped page content into plain text: markup, scripts and
// styles are dropped, URLs and stray symbols removed and whitespace collapsed.
// Plain text input passes through the same steps.
func CleanText(raw string) string {
	text := raw
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		doc.Find("script, style, noscript, svg, iframe").Remove()
		// keep block boundaries as whitespace
		doc.Find("br, p, div, li, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
			s.AppendHtml(" ")
		})
		text = doc.Text()
	}

	text = urlPattern.ReplaceAllString(text, " ")
	text = specialCharPattern.ReplaceAllString(text, " ")
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
