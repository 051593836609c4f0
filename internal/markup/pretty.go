package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// rawTextElements hold text that must be written without escaping.
var rawTextElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "xmp": true, "iframe": true,
}

// Prettify renders the document with one node per line, indented one space
// per nesting level.
func Prettify(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	for _, n := range doc.Nodes {
		prettyNode(&b, n, 0)
	}
	return b.String()
}

func prettyNode(b *strings.Builder, n *html.Node, depth int) {
	indent := strings.Repeat(" ", depth)

	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			prettyNode(b, c, depth)
		}

	case html.DoctypeNode:
		b.WriteString("<!DOCTYPE " + n.Data + ">\n")

	case html.CommentNode:
		b.WriteString(indent + "<!--" + n.Data + "-->\n")

	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return
		}
		if n.Parent != nil && n.Parent.Type == html.ElementNode && rawTextElements[n.Parent.Data] {
			b.WriteString(indent + text + "\n")
			return
		}
		b.WriteString(indent + html.EscapeString(text) + "\n")

	case html.ElementNode:
		b.WriteString(indent + "<" + n.Data)
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + key
			}
			b.WriteString(" " + key + `="` + html.EscapeString(a.Val) + `"`)
		}
		b.WriteString(">\n")
		if voidElements[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			prettyNode(b, c, depth+1)
		}
		b.WriteString(indent + "</" + n.Data + ">\n")
	}
}
