package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-scout/internal/discovery"
	"github.com/sells-group/lead-scout/internal/embedder"
	"github.com/sells-group/lead-scout/internal/scout"
	"github.com/sells-group/lead-scout/internal/scrape"
	"github.com/sells-group/lead-scout/internal/search"
	"github.com/sells-group/lead-scout/internal/store"
)

// appEnv holds the components shared by the subcommands.
type appEnv struct {
	Store   *store.FileStore
	Scraper *scrape.Orchestrator
	Scout   *scout.Scout        // nil when the embedding backend is down
	Finder  *discovery.Pipeline // nil when Scout is nil
}

// initStore opens the report store and creates its directories.
func initStore() (*store.FileStore, error) {
	st := store.New(cfg.Store.RawDir, cfg.Store.ProcessedDir)
	if err := st.EnsureDirs(); err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	return st, nil
}

// initScraper builds the scrape orchestrator on top of st.
func initScraper(st store.Store) *scrape.Orchestrator {
	f := scrape.NewFetcher(scrape.FetcherOptions{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
	})
	return scrape.NewOrchestrator(f, st, scrape.Options{
		MarkdownSnapshot: cfg.Scrape.MarkdownSnapshot,
	})
}

// initScout connects to the embedding backend and embeds the reference
// description.
func initScout(ctx context.Context) (*scout.Scout, error) {
	e, err := embedder.New(embedder.Config{
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
		Token:   cfg.Embedding.APIKey,
	})
	if err != nil {
		return nil, eris.Wrap(err, "init scout")
	}
	f := scrape.NewFetcher(scrape.FetcherOptions{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   time.Duration(cfg.Scout.TimeoutSecs) * time.Second,
	})
	sc, err := scout.New(ctx, f, e, scout.Config{
		Description:  cfg.Scout.Description,
		MaxLinks:     cfg.Scout.MaxLinks,
		MaxTextChars: cfg.Scout.MaxTextChars,
	})
	if err != nil {
		return nil, eris.Wrap(err, "init scout")
	}
	return sc, nil
}

// initPipeline validates the config for mode and wires every component.
// When requireScout is false a scout failure is logged and the discovery
// pipeline is left nil.
func initPipeline(ctx context.Context, mode string, requireScout bool) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := initStore()
	if err != nil {
		return nil, err
	}
	env := &appEnv{Store: st, Scraper: initScraper(st)}

	sc, err := initScout(ctx)
	if err != nil {
		if requireScout {
			return nil, err
		}
		zap.L().Warn("relevance model unavailable, discovery disabled",
			zap.String("base_url", cfg.Embedding.BaseURL),
			zap.String("model", cfg.Embedding.Model),
			zap.Error(err),
		)
		return env, nil
	}
	env.Scout = sc

	provider, err := search.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	agent := search.NewAgent(provider, cfg.Search)
	env.Finder = discovery.NewPipeline(agent, sc, env.Scraper, cfg.Discovery)

	zap.L().Debug("pipeline ready",
		zap.String("provider", provider.Name()),
		zap.String("description", sc.Description()),
	)
	return env, nil
}
