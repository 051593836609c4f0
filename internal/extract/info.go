package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/lead-scout/internal/markup"
)

// Info is the basic identity of a company as stated by its own page.
type Info struct {
	Name        string
	Description string
}

// CompanyInfo reads the page title (up to the first "|") and the meta
// description.
func CompanyInfo(doc *goquery.Document) Info {
	if doc == nil {
		return Info{}
	}

	title := doc.Find("title").First().Text()
	if i := strings.Index(title, "|"); i >= 0 {
		title = title[:i]
	}

	desc, _ := markup.MetaContent(doc, "name", "description")

	return Info{
		Name:        strings.TrimSpace(title),
		Description: desc,
	}
}
