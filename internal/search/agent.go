// Package search turns a free-text query into a short list of hub site
// roots for the discovery pipeline.
package search

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/lead-scout/internal/config"
)

// overfetch is how many raw hits are requested per wanted URL, since most
// hits are filtered out.
const overfetch = 3

// blockedWords mark editorial, directory or social URLs rather than
// company sites.
var blockedWords = []string{
	"blog", "news", "article", "post", "insight",
	"medium", "directory", "listing", "top-", "best-",
	"wikipedia", "linkedin", "twitter", "facebook",
	"youtube", "instagram",
}

// Agent finds candidate site roots for a query.
type Agent struct {
	provider Provider
	limiter  *rate.Limiter
	cfg      config.SearchConfig
}

// NewAgent creates an Agent. Provider calls are limited to
// cfg.RateLimit per second.
func NewAgent(p Provider, cfg config.SearchConfig) *Agent {
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 1
	}
	return &Agent{
		provider: p,
		limiter:  rate.NewLimiter(rate.Limit(limit), 1),
		cfg:      cfg,
	}
}

// FindCompanyURLs returns up to n distinct scheme://host roots from the
// search results for query, in result order. Search failures are logged
// and yield whatever was collected, possibly nothing.
func (a *Agent) FindCompanyURLs(ctx context.Context, query string, n int) []string {
	urls := []string{}
	if n <= 0 || strings.TrimSpace(query) == "" {
		return urls
	}
	log := zap.L().With(zap.String("provider", a.provider.Name()), zap.String("query", query))

	if err := a.limiter.Wait(ctx); err != nil {
		log.Warn("search: rate limiter wait aborted", zap.Error(err))
		return urls
	}

	hits, err := a.provider.Search(ctx, Query{
		Text:       query,
		Region:     a.cfg.Region,
		SafeSearch: a.cfg.SafeSearch,
		MaxResults: n * overfetch,
	})
	if err != nil {
		log.Warn("search: provider error", zap.Int("partial_hits", len(hits)), zap.Error(err))
	}

	seen := map[string]bool{}
	for _, h := range hits {
		if h.URL == "" || !IsCompanySite(h.URL) {
			continue
		}
		root, ok := RootURL(h.URL)
		if !ok || seen[root] {
			continue
		}
		seen[root] = true
		urls = append(urls, root)
		if len(urls) >= n {
			break
		}
	}

	log.Info("search: hub urls found", zap.Int("hits", len(hits)), zap.Int("urls", len(urls)))
	return urls
}

// IsCompanySite reports whether rawURL survives the editorial and social
// blocklist.
func IsCompanySite(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, w := range blockedWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

// RootURL reduces rawURL to scheme://host.
func RootURL(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return u.Scheme + "://" + u.Host, true
}
