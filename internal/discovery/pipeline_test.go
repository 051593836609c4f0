package discovery

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-scout/internal/config"
)

func testDiscoveryConfig() config.DiscoveryConfig {
	return config.DiscoveryConfig{Threshold: 30, DefaultResults: 5}
}

func TestRun_EmptyQuery(t *testing.T) {
	p := NewPipeline(&mockSearcher{}, &mockScout{}, &mockScraper{}, testDiscoveryConfig())

	_, err := p.Run(context.Background(), Request{Query: "   "})
	assert.ErrorIs(t, err, ErrQueryRequired)
}

func TestRun_EndToEnd(t *testing.T) {
	searcher := &mockSearcher{hubs: []string{"https://hub1.io", "https://hub2.io"}}
	scout := &mockScout{
		links: map[string][]string{
			"https://hub1.io": {"https://a.io", "https://b.io", "https://c.io"},
			"https://hub2.io": {"https://b.io", "https://d.io", "https://e.io"},
		},
		texts: map[string]string{
			"https://a.io": "alpha",
			"https://b.io": "beta",
			"https://d.io": "delta",
			"https://e.io": "",
		},
		scores: map[string]float64{"alpha": 72.5, "beta": 30, "delta": 31},
	}
	scraper := &mockScraper{}
	p := NewPipeline(searcher, scout, scraper, testDiscoveryConfig())

	sum, err := p.Run(context.Background(), Request{Query: " python automation ", NumResults: 3})
	require.NoError(t, err)

	_, err = uuid.Parse(sum.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "python automation", sum.Query)
	assert.Equal(t, []string{"python automation"}, searcher.queries)
	assert.Equal(t, []int{3}, searcher.counts)
	assert.Equal(t, []string{"https://hub1.io", "https://hub2.io"}, sum.HubURLs)
	assert.Equal(t, 5, sum.Candidates)

	// c.io is unavailable and e.io is empty, so neither is scored; beta
	// sits exactly on the threshold and is rejected.
	assert.Equal(t, []string{"alpha", "beta", "delta"}, scout.scored)
	assert.Equal(t, 2, sum.TotalFound)
	assert.Equal(t, []Match{
		{URL: "https://a.io", Score: 72.5, Pitch: "high"},
		{URL: "https://d.io", Score: 31, Pitch: "low"},
	}, sum.Matches)
	assert.Equal(t, []string{"https://a.io", "https://d.io"}, sum.Scraped)
}

func TestRun_StopsScoringAtNumResults(t *testing.T) {
	scout := &mockScout{
		links:  map[string][]string{"https://hub.io": {"https://a.io", "https://b.io", "https://c.io"}},
		texts:  map[string]string{"https://a.io": "a", "https://b.io": "b", "https://c.io": "c"},
		scores: map[string]float64{"a": 90, "b": 90, "c": 90},
	}
	p := NewPipeline(&mockSearcher{hubs: []string{"https://hub.io"}}, scout, &mockScraper{}, testDiscoveryConfig())

	sum, err := p.Run(context.Background(), Request{Query: "q", NumResults: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalFound)
	assert.Equal(t, []string{"a", "b"}, scout.scored)
}

func TestRun_DefaultNumResults(t *testing.T) {
	searcher := &mockSearcher{}
	p := NewPipeline(searcher, &mockScout{}, &mockScraper{}, testDiscoveryConfig())

	sum, err := p.Run(context.Background(), Request{Query: "q"})
	require.NoError(t, err)
	assert.Equal(t, []int{5}, searcher.counts)
	assert.Empty(t, sum.Matches)
	assert.NotNil(t, sum.Scraped)
	assert.Zero(t, sum.TotalFound)
}

func TestRun_ScrapeFailuresAreSkipped(t *testing.T) {
	scout := &mockScout{
		links:  map[string][]string{"https://hub.io": {"https://a.io", "https://b.io", "https://c.io"}},
		texts:  map[string]string{"https://a.io": "a", "https://b.io": "b", "https://c.io": "c"},
		scores: map[string]float64{"a": 40, "b": 40, "c": 40},
	}
	scraper := &mockScraper{
		fail: map[string]bool{"https://a.io": true},
		skip: map[string]bool{"https://b.io": true},
	}
	p := NewPipeline(&mockSearcher{hubs: []string{"https://hub.io"}}, scout, scraper, testDiscoveryConfig())

	sum, err := p.Run(context.Background(), Request{Query: "q"})
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalFound)
	assert.Equal(t, []string{"https://a.io", "https://b.io", "https://c.io"}, scraper.scraped)
	assert.Equal(t, []string{"https://c.io"}, sum.Scraped)
}

func TestRun_Cancelled(t *testing.T) {
	scout := &mockScout{links: map[string][]string{"https://hub.io": {"https://a.io"}}}
	p := NewPipeline(&mockSearcher{hubs: []string{"https://hub.io"}}, scout, &mockScraper{}, testDiscoveryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := p.Run(ctx, Request{Query: "q"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, sum)
	assert.Zero(t, sum.Candidates)
}
