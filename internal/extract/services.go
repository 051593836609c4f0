package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/lead-scout/internal/markup"
)

const (
	maxServices      = 10
	minServiceLength = 20
	maxServiceLength = 500
)

var serviceKeywords = []string{"service", "product", "solution", "offering", "feature", "capability"}

// Services collects short blurbs describing what the company offers: blocks
// whose class names a service-like keyword, then paragraphs mentioning one.
func Services(doc *goquery.Document) []string {
	if doc == nil {
		return []string{}
	}

	var blocks []string
	for _, kw := range serviceKeywords {
		doc.Find("div, section, li").Each(func(_ int, s *goquery.Selection) {
			class, _ := s.Attr("class")
			if strings.Contains(strings.ToLower(class), kw) {
				blocks = append(blocks, markup.Collapse(markup.Text(s)))
			}
		})
	}

	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := markup.Collapse(markup.Text(s))
		if mentionsService(text) {
			blocks = append(blocks, text)
		}
	})

	out := make([]string, 0, maxServices)
	for _, b := range dedupe(blocks) {
		n := utf8.RuneCountInString(b)
		if n <= minServiceLength || n >= maxServiceLength {
			continue
		}
		out = append(out, b)
		if len(out) == maxServices {
			break
		}
	}
	return out
}

func mentionsService(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range serviceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
