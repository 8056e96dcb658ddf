package render

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxHTMLBodyBytes = 1 << 20 // 1 MiB

// HTMLTitle extracts the document title from an HTML body so an HTML error
// page is identifiable at a glance. Returns "" when the body has none or
// does not parse.
func HTMLTitle(body []byte) string {
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
