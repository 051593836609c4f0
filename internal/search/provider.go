package search

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-scout/internal/config"
	"github.com/sells-group/lead-scout/pkg/ddg"
	"github.com/sells-group/lead-scout/pkg/jina"
)

// Hit is a provider-neutral search result.
type Hit struct {
	Title string
	URL   string
}

// Query is one search request.
type Query struct {
	Text       string
	Region     string
	SafeSearch string
	MaxResults int
}

// Provider runs web searches. Implementations may return partial hits
// together with an error.
type Provider interface {
	Name() string
	Search(ctx context.Context, q Query) ([]Hit, error)
}

// DuckDuckGo adapts a ddg.Client to Provider.
type DuckDuckGo struct {
	client ddg.Client
}

// NewDuckDuckGo wraps c.
func NewDuckDuckGo(c ddg.Client) *DuckDuckGo { return &DuckDuckGo{client: c} }

// Name implements Provider.
func (d *DuckDuckGo) Name() string { return config.ProviderDuckDuckGo }

// Search implements Provider.
func (d *DuckDuckGo) Search(ctx context.Context, q Query) ([]Hit, error) {
	results, err := d.client.Search(ctx, q.Text, ddg.SearchOptions{
		Region:     q.Region,
		SafeSearch: q.SafeSearch,
		MaxResults: q.MaxResults,
	})
	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, Hit{Title: r.Title, URL: r.URL})
	}
	return hits, err
}

// Jina adapts a jina.Client to Provider. Jina has no region or safe-search
// knobs, so those fields are ignored.
type Jina struct {
	client jina.Client
}

// NewJina wraps c.
func NewJina(c jina.Client) *Jina { return &Jina{client: c} }

// Name implements Provider.
func (j *Jina) Name() string { return config.ProviderJina }

// Search implements Provider.
func (j *Jina) Search(ctx context.Context, q Query) ([]Hit, error) {
	resp, err := j.client.Search(ctx, q.Text)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(resp.Data))
	for _, r := range resp.Data {
		if q.MaxResults > 0 && len(hits) >= q.MaxResults {
			break
		}
		hits = append(hits, Hit{Title: r.Title, URL: r.URL})
	}
	return hits, nil
}

// NewProvider builds the provider named by cfg.Search.Provider.
func NewProvider(cfg *config.Config) (Provider, error) {
	hc := &http.Client{Timeout: time.Duration(cfg.Search.TimeoutSecs) * time.Second}
	switch cfg.Search.Provider {
	case config.ProviderDuckDuckGo, "":
		return NewDuckDuckGo(ddg.NewClient(
			ddg.WithHTTPClient(hc),
			ddg.WithUserAgent(cfg.Fetch.UserAgent),
		)), nil
	case config.ProviderJina:
		return NewJina(jina.NewClient(cfg.Jina.Key,
			jina.WithSearchBaseURL(cfg.Jina.SearchBaseURL),
			jina.WithHTTPClient(hc),
		)), nil
	default:
		return nil, eris.Errorf("search: unknown provider %q", cfg.Search.Provider)
	}
}
