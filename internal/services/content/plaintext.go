package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nonContentSelectors are removed before text is extracted
const nonContentSelectors = "script, style, noscript, nav, footer, iframe"

// PlainText extracts the readable text of an HTML document or fragment.
// Markup that cannot be parsed is returned with its whitespace collapsed.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapseWhitespace(html)
	}

	doc.Find(nonContentSelectors).Remove()

	// Block elements would otherwise run their words together
	doc.Find("p, div, br, li, h1, h2, h3, h4, h5, h6, tr, blockquote").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return collapseWhitespace(doc.Find("body").Text())
}

// IsHTML reports whether a content_format value names HTML
func IsHTML(format string) bool {
	return strings.EqualFold(strings.TrimSpace(format), "html")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
