package services

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Content containers tried in order before falling back to <body>.
var postingSelectors = []string{
	"article",
	"[role='main']",
	"main",
	".job-description",
	".description",
}

// PostingText reduces a scraped job page to readable text, one block per
// line. Input that is not HTML comes back trimmed.
func PostingText(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return strings.TrimSpace(rawHTML)
	}

	doc.Find("script, style, noscript, nav, footer, header, aside, form, .sidebar, .advertisement, .ads").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, td, dt, dd").AppendHtml("\n")

	root := doc.Find("body")
	for _, selector := range postingSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			root = sel.First()
			break
		}
	}

	var lines []string
	for _, line := range strings.Split(root.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return strings.TrimSpace(rawHTML)
	}
	return strings.Join(lines, "\n")
}
