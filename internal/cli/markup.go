package cli

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var lineBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>`)

// PlainText flattens the HTML fragments the remote service embeds in replies
// (<span>, <strong>, <br>) into terminal text.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	html := lineBreakPattern.ReplaceAllString(s, "\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return s
	}

	lines := strings.Split(doc.Text(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
