package scrape

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// Domain derives the artifact name for a site: the URL host without port,
// lowercased, with a leading "www." removed.
func Domain(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", eris.Wrap(err, "scrape: parse url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", eris.Errorf("scrape: unsupported url scheme %q", u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", eris.Errorf("scrape: url %q has no host", rawURL)
	}
	return strings.TrimPrefix(host, "www."), nil
}
