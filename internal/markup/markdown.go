package markup

import (
	"net/url"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// Markdown converts a document to GitHub-flavored markdown. Relative links
// are resolved against the host of pageURL.
func Markdown(doc *goquery.Document, pageURL string) (string, error) {
	if doc == nil {
		return "", eris.New("markup: nil document")
	}

	domain := ""
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		domain = u.Host
	}

	converter := md.NewConverter(domain, true, nil)
	converter.Use(plugin.GitHubFlavored())

	raw, err := doc.Html()
	if err != nil {
		return "", eris.Wrap(err, "markup: render html")
	}
	out, err := converter.ConvertString(raw)
	if err != nil {
		return "", eris.Wrap(err, "markup: convert markdown")
	}
	return out, nil
}
