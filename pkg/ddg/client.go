// Package ddg provides a client for DuckDuckGo's HTML search endpoint.
package ddg

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// DefaultBaseURL is the no-JavaScript DuckDuckGo endpoint.
const DefaultBaseURL = "https://html.duckduckgo.com/html/"

const (
	defaultUserAgent = "Mozilla/5.0"
	defaultMaxPages  = 3
	maxBodyBytes     = 2 << 20
)

// Safe-search levels accepted by SearchOptions.
const (
	SafeSearchStrict   = "strict"
	SafeSearchModerate = "moderate"
	SafeSearchOff      = "off"
)

// Result is a single organic search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// SearchOptions narrows a search.
type SearchOptions struct {
	// Region is a DuckDuckGo region code such as "in-en" or "us-en".
	Region string
	// SafeSearch is one of strict, moderate or off.
	SafeSearch string
	// MaxResults stops paging once this many hits are collected.
	MaxResults int
}

// Client defines the DuckDuckGo search operations.
type Client interface {
	// Search returns up to opts.MaxResults hits. When a later page fails,
	// the hits collected so far are returned together with the error.
	Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error)
}

// Option configures the DuckDuckGo client.
type Option func(*httpClient)

// WithBaseURL sets a custom endpoint.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

// WithMaxPages bounds how many result pages one search may request.
func WithMaxPages(n int) Option {
	return func(c *httpClient) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

type httpClient struct {
	baseURL   string
	userAgent string
	maxPages  int
	http      *http.Client
}

// NewClient creates a DuckDuckGo client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		maxPages:  defaultMaxPages,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, eris.New("ddg: empty query")
	}

	results := []Result{}
	seen := map[string]bool{}
	for page := 0; page < c.maxPages; page++ {
		if opts.MaxResults > 0 && len(results) >= opts.MaxResults {
			break
		}

		hits, err := c.fetchPage(ctx, query, opts, len(results))
		if err != nil {
			return results, err
		}

		added := 0
		for _, h := range hits {
			if seen[h.URL] {
				continue
			}
			seen[h.URL] = true
			results = append(results, h)
			added++
			if opts.MaxResults > 0 && len(results) >= opts.MaxResults {
				break
			}
		}
		if added == 0 {
			break
		}
	}
	return results, nil
}

func (c *httpClient) fetchPage(ctx context.Context, query string, opts SearchOptions, offset int) ([]Result, error) {
	form := url.Values{}
	form.Set("q", query)
	if opts.Region != "" {
		form.Set("kl", opts.Region)
	}
	if kp := safeSearchParam(opts.SafeSearch); kp != "" {
		form.Set("kp", kp)
	}
	if offset > 0 {
		form.Set("s", strconv.Itoa(offset))
		form.Set("dc", strconv.Itoa(offset+1))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "ddg: create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "ddg: search request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("ddg: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "ddg: parse results")
	}
	return parseResults(doc), nil
}

// parseResults reads organic hits from a result page, skipping ads.
func parseResults(doc *goquery.Document) []Result {
	var out []Result
	doc.Find("a.result__a").Each(func(_ int, a *goquery.Selection) {
		if a.Closest(".result--ad").Length() > 0 {
			return
		}
		link := resolveLink(a.AttrOr("href", ""))
		if link == "" {
			return
		}
		r := Result{
			Title: strings.TrimSpace(a.Text()),
			URL:   link,
		}
		if body := a.Closest(".result"); body.Length() > 0 {
			r.Snippet = strings.TrimSpace(body.Find(".result__snippet").First().Text())
		}
		out = append(out, r)
	})
	return out
}

// resolveLink unwraps DuckDuckGo's /l/?uddg= redirect links and drops
// anything that is not an absolute http(s) URL.
func resolveLink(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" && strings.HasSuffix(u.Path, "/l/") {
		return resolveLink(target)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

func safeSearchParam(level string) string {
	switch strings.ToLower(level) {
	case SafeSearchStrict:
		return "1"
	case SafeSearchModerate:
		return "-1"
	case SafeSearchOff:
		return "-2"
	default:
		return ""
	}
}
