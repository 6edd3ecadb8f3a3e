package overview

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripMarkup flattens embedded HTML in a headline message to plain text.
// Messages without markup pass through untouched.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
