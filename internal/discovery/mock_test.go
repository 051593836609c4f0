package discovery

import (
	"context"
	"errors"

	"github.com/sells-group/lead-scout/internal/model"
	"github.com/sells-group/lead-scout/internal/scrape"
)

// mockSearcher returns canned hubs.
type mockSearcher struct {
	hubs    []string
	queries []string
	counts  []int
}

func (m *mockSearcher) FindCompanyURLs(_ context.Context, query string, n int) []string {
	m.queries = append(m.queries, query)
	m.counts = append(m.counts, n)
	return m.hubs
}

// mockScout serves links per hub, text per page and scores per text.
type mockScout struct {
	links  map[string][]string
	texts  map[string]string
	scores map[string]float64
	scored []string
}

func (m *mockScout) HubLinks(_ context.Context, hub string) []string {
	return m.links[hub]
}

func (m *mockScout) CleanText(_ context.Context, url string) model.Maybe[string] {
	text, ok := m.texts[url]
	if !ok {
		return model.Unavailable[string]("fetch: status 404")
	}
	return model.Some(text)
}

func (m *mockScout) Match(_ context.Context, text string) float64 {
	m.scored = append(m.scored, text)
	return m.scores[text]
}

func (m *mockScout) Pitch(score float64) string {
	if score > 50 {
		return "high"
	}
	return "low"
}

// mockScraper records scraped URLs; urls in fail error out, urls in skip
// come back skipped.
type mockScraper struct {
	fail    map[string]bool
	skip    map[string]bool
	scraped []string
}

func (m *mockScraper) Scrape(_ context.Context, url string) (*scrape.Result, error) {
	m.scraped = append(m.scraped, url)
	if m.fail[url] {
		return nil, errors.New("scrape: save report: disk full")
	}
	if m.skip[url] {
		return &scrape.Result{URL: url, Skipped: true, Reason: "fetch: status 500"}, nil
	}
	return &scrape.Result{URL: url, Domain: url}, nil
}
