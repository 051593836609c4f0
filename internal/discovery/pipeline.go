// Package discovery runs the lead discovery flow: search for hub pages,
// collect the company links they point to, keep the ones relevant to our
// services, and scrape those into reports.
package discovery

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-scout/internal/config"
	"github.com/sells-group/lead-scout/internal/model"
	"github.com/sells-group/lead-scout/internal/scrape"
)

// ErrQueryRequired is returned when a run is started without a query.
var ErrQueryRequired = eris.New("discovery: query required")

// DefaultNumResults is used when a request does not ask for a count.
const DefaultNumResults = 5

// Searcher finds hub site roots for a query.
type Searcher interface {
	FindCompanyURLs(ctx context.Context, query string, n int) []string
}

// Scout extracts and scores candidate sites.
type Scout interface {
	HubLinks(ctx context.Context, hubURL string) []string
	CleanText(ctx context.Context, pageURL string) model.Maybe[string]
	Match(ctx context.Context, text string) float64
	Pitch(score float64) string
}

// Scraper persists a report for one site.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*scrape.Result, error)
}

// Request starts a discovery run.
type Request struct {
	Query      string `json:"query"`
	NumResults int    `json:"num_results"`
}

// Match is a candidate that scored above the relevance threshold.
type Match struct {
	URL   string  `json:"url"`
	Score float64 `json:"score"`
	Pitch string  `json:"pitch"`
}

// Summary reports what a run found and scraped.
type Summary struct {
	RunID      string   `json:"run_id"`
	Query      string   `json:"query"`
	HubURLs    []string `json:"hub_urls"`
	Candidates int      `json:"candidates"`
	TotalFound int      `json:"total_found"`
	Matches    []Match  `json:"matches"`
	Scraped    []string `json:"scraped"`
}

// Pipeline wires the search agent, scout and scraper together. Steps run
// sequentially.
type Pipeline struct {
	searcher Searcher
	scout    Scout
	scraper  Scraper
	cfg      config.DiscoveryConfig
}

// NewPipeline creates a Pipeline.
func NewPipeline(s Searcher, sc Scout, scr Scraper, cfg config.DiscoveryConfig) *Pipeline {
	return &Pipeline{searcher: s, scout: sc, scraper: scr, cfg: cfg}
}

// Run executes one discovery run. The only input error is a blank query;
// every network failure along the way is logged and skipped. If ctx is
// cancelled the partial summary is returned with the context error.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Summary, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrQueryRequired
	}
	n := req.NumResults
	if n <= 0 {
		n = p.cfg.DefaultResults
	}
	if n <= 0 {
		n = DefaultNumResults
	}

	sum := &Summary{
		RunID:   uuid.NewString(),
		Query:   query,
		Matches: []Match{},
		Scraped: []string{},
	}
	log := zap.L().With(zap.String("run_id", sum.RunID), zap.String("query", query))
	log.Info("discovery: run started", zap.Int("num_results", n))

	// 1. Hubs.
	sum.HubURLs = p.searcher.FindCompanyURLs(ctx, query, n)
	log.Info("discovery: hub urls found", zap.Strings("hubs", sum.HubURLs))

	// 2. Candidate links, first-seen order.
	var candidates []string
	seen := map[string]bool{}
	for _, hub := range sum.HubURLs {
		if err := ctx.Err(); err != nil {
			return sum, eris.Wrap(err, "discovery: crawl hubs")
		}
		for _, link := range p.scout.HubLinks(ctx, hub) {
			if !seen[link] {
				seen[link] = true
				candidates = append(candidates, link)
			}
		}
	}
	sum.Candidates = len(candidates)
	log.Info("discovery: candidate sites collected", zap.Int("candidates", sum.Candidates))

	// 3. Relevance filter.
	for _, u := range candidates {
		if len(sum.Matches) >= n {
			break
		}
		if err := ctx.Err(); err != nil {
			return sum, eris.Wrap(err, "discovery: score candidates")
		}
		text, ok := p.scout.CleanText(ctx, u).Get()
		if !ok || text == "" {
			continue
		}
		score := p.scout.Match(ctx, text)
		if score > p.cfg.Threshold {
			log.Info("discovery: relevant site", zap.String("url", u), zap.Float64("score", score))
			sum.Matches = append(sum.Matches, Match{URL: u, Score: score, Pitch: p.scout.Pitch(score)})
		} else {
			log.Debug("discovery: below threshold", zap.String("url", u), zap.Float64("score", score))
		}
	}
	sum.TotalFound = len(sum.Matches)

	// 4. Scrape.
	for _, m := range sum.Matches {
		if err := ctx.Err(); err != nil {
			return sum, eris.Wrap(err, "discovery: scrape matches")
		}
		res, err := p.scraper.Scrape(ctx, m.URL)
		if err != nil {
			log.Warn("discovery: scrape failed", zap.String("url", m.URL), zap.Error(err))
			continue
		}
		if res == nil || res.Skipped {
			continue
		}
		sum.Scraped = append(sum.Scraped, m.URL)
	}

	log.Info("discovery: run complete",
		zap.Int("hubs", len(sum.HubURLs)),
		zap.Int("candidates", sum.Candidates),
		zap.Int("total_found", sum.TotalFound),
		zap.Int("scraped", len(sum.Scraped)),
	)
	return sum, nil
}
