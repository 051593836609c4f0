// Package markup holds the HTML tree helpers shared by the scraper, the
// extractors and the relevance scout: visible-text rendering, noise
// stripping, prettified snapshots and markdown conversion.
package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockTags get a line break on either side when rendered as text, so that
// adjacent elements ("<h3>Jane Doe</h3><p>CEO</p>") do not run together.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "title": true, "tr": true, "ul": true,
}

// NoiseTags are removed before scraping a page for its text.
var NoiseTags = []string{"script", "style"}

// LayoutTags are additionally removed when scoring a page, since site-wide
// navigation dilutes the semantic signal.
var LayoutTags = []string{"script", "style", "nav", "footer", "header"}

// Parse builds a document from raw markup. The HTML5 parser never rejects
// input, so the error is only non-nil for reader failures.
func Parse(raw string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(raw))
}

// Strip removes every element whose tag name is in tags.
func Strip(doc *goquery.Document, tags ...string) {
	if doc == nil || len(tags) == 0 {
		return
	}
	doc.Find(strings.Join(tags, ", ")).Remove()
}

// Text renders the visible text of a selection, separating block elements
// with newlines.
func Text(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
	}

	block := n.Type == html.ElementNode && blockTags[n.Data]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}

// Collapse folds every run of whitespace into a single space and trims.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n < 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// MetaContent returns the trimmed content of the first <meta> whose attr
// (e.g. "name" or "property") equals value, case-insensitively.
func MetaContent(doc *goquery.Document, attr, value string) (string, bool) {
	if doc == nil {
		return "", false
	}
	var (
		content string
		found   bool
	)
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		if !ok || !strings.EqualFold(strings.TrimSpace(v), value) {
			return true
		}
		c, _ := s.Attr("content")
		content = strings.TrimSpace(c)
		found = true
		return false
	})
	return content, found
}
