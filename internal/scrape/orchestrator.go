// Package scrape fetches company websites and turns them into persisted
// reports.
package scrape

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-scout/internal/extract"
	"github.com/sells-group/lead-scout/internal/markup"
	"github.com/sells-group/lead-scout/internal/model"
	"github.com/sells-group/lead-scout/internal/report"
	"github.com/sells-group/lead-scout/internal/store"
)

// Result describes the outcome of scraping one URL.
type Result struct {
	Skipped      bool   `json:"skipped"`
	Reason       string `json:"reason,omitempty"`
	Domain       string `json:"domain"`
	URL          string `json:"url"`
	RawPath      string `json:"raw_path,omitempty"`
	MarkdownPath string `json:"markdown_path,omitempty"`
	ReportPath   string `json:"report_path,omitempty"`

	Record *model.CompanyRecord `json:"record,omitempty"`
}

// Options tunes the orchestrator.
type Options struct {
	// MarkdownSnapshot writes a <domain>.md rendering next to the raw
	// snapshot.
	MarkdownSnapshot bool
}

// Orchestrator runs fetch, clean, extract and persist for a single site.
type Orchestrator struct {
	fetcher PageFetcher
	store   store.Store
	opts    Options
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(f PageFetcher, st store.Store, opts Options) *Orchestrator {
	return &Orchestrator{fetcher: f, store: st, opts: opts}
}

// Scrape fetches targetURL and writes its raw snapshot and report. A failed
// fetch is logged and reported as skipped with a nil error; only a bad URL
// or a failed write is returned as an error.
func (o *Orchestrator) Scrape(ctx context.Context, targetURL string) (*Result, error) {
	domain, err := Domain(targetURL)
	if err != nil {
		return nil, err
	}
	res := &Result{Domain: domain, URL: targetURL}
	log := zap.L().With(zap.String("url", targetURL), zap.String("domain", domain))

	page, err := o.fetcher.Fetch(ctx, targetURL)
	if err != nil {
		log.Warn("scrape: fetch failed, skipping", zap.Error(err))
		res.Skipped = true
		res.Reason = err.Error()
		return res, nil
	}

	doc, err := markup.Parse(page.HTML)
	if err != nil {
		log.Warn("scrape: parse failed, skipping", zap.Error(err))
		res.Skipped = true
		res.Reason = err.Error()
		return res, nil
	}

	res.RawPath, err = o.store.SaveSnapshot(domain, markup.Prettify(doc))
	if err != nil {
		return nil, eris.Wrap(err, "scrape: save snapshot")
	}
	log.Info("scrape: snapshot saved", zap.String("path", res.RawPath))

	markup.Strip(doc, markup.NoiseTags...)
	text := markup.Text(doc.Selection)

	info := extract.CompanyInfo(doc)
	team, teamFound := extract.Team(doc, text)
	rep := report.Report{
		Domain:      domain,
		URL:         targetURL,
		Name:        info.Name,
		Description: info.Description,
		Services:    extract.Services(doc),
		Team:        team,
		Emails:      extract.Emails(text),
		Phones:      extract.Phones(text),
	}
	content := report.Render(rep)

	if o.opts.MarkdownSnapshot {
		o.writeMarkdown(res, doc, log)
	}

	res.ReportPath, err = o.store.SaveReport(domain, content)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: save report")
	}

	rec := report.Parse(domain+report.FileExt, content)
	res.Record = &rec

	log.Info("scrape: report saved",
		zap.String("path", res.ReportPath),
		zap.Int("services", len(rep.Services)),
		zap.Bool("team_found", teamFound),
		zap.Int("emails", len(rep.Emails)),
		zap.Int("phones", len(rep.Phones)),
	)
	return res, nil
}

// writeMarkdown is best-effort; a conversion or write failure is only logged.
func (o *Orchestrator) writeMarkdown(res *Result, doc *goquery.Document, log *zap.Logger) {
	md, err := markup.Markdown(doc, res.URL)
	if err != nil {
		log.Warn("scrape: markdown conversion failed", zap.Error(err))
		return
	}
	path, err := o.store.SaveMarkdown(res.Domain, md)
	if err != nil {
		log.Warn("scrape: save markdown failed", zap.Error(err))
		return
	}
	res.MarkdownPath = path
}
