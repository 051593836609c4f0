// Package scout decides whether a candidate site is worth scraping. It
// extracts outbound company links from hub pages and scores page text by
// embedding similarity against a fixed description of our own services.
package scout

import (
	"context"
	"math"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"github.com/tmc/langchaingo/embeddings"
	"go.uber.org/zap"

	"github.com/sells-group/lead-scout/internal/markup"
	"github.com/sells-group/lead-scout/internal/model"
	"github.com/sells-group/lead-scout/internal/scrape"
)

const (
	// DefaultDescription is the reference text candidates are scored against.
	DefaultDescription = "AI Automation and Python Services"
	// DefaultMaxLinks caps the links taken from one hub page.
	DefaultMaxLinks = 15
	// DefaultMaxTextChars caps the page text sent for embedding.
	DefaultMaxTextChars = 4000

	// MinTextChars is the shortest text that gets a non-zero score.
	MinTextChars = 100

	// NoDescription is returned when a page has no description candidate.
	NoDescription = "No description found."
	// DescriptionUnavailable renders a description that could not be fetched.
	DescriptionUnavailable = "Could not retrieve description."

	highlyRelevant   = 50
	pitchDescRunes   = 50
	paragraphSnippet = 200
)

// noiseHosts are link substrings that never point at a company site.
var noiseHosts = []string{
	"facebook", "twitter", "linkedin", "youtube", "instagram", "google", "wikipedia",
}

// Config tunes a Scout. Zero values take the defaults above.
type Config struct {
	Description  string
	MaxLinks     int
	MaxTextChars int
}

// Scout holds the reference embedding. It is immutable after New and safe
// for concurrent use.
type Scout struct {
	fetcher   scrape.PageFetcher
	embedder  embeddings.Embedder
	cfg       Config
	reference []float32
}

// New embeds cfg.Description once and returns a ready Scout. An error means
// the embedding backend is unusable and relevance cannot be scored.
func New(ctx context.Context, f scrape.PageFetcher, e embeddings.Embedder, cfg Config) (*Scout, error) {
	if cfg.Description == "" {
		cfg.Description = DefaultDescription
	}
	if cfg.MaxLinks <= 0 {
		cfg.MaxLinks = DefaultMaxLinks
	}
	if cfg.MaxTextChars <= 0 {
		cfg.MaxTextChars = DefaultMaxTextChars
	}

	ref, err := e.EmbedQuery(ctx, cfg.Description)
	if err != nil {
		return nil, eris.Wrap(err, "scout: embed description")
	}
	if len(ref) == 0 {
		return nil, eris.New("scout: empty reference embedding")
	}

	return &Scout{fetcher: f, embedder: e, cfg: cfg, reference: ref}, nil
}

// Description returns the reference description.
func (s *Scout) Description() string { return s.cfg.Description }

func (s *Scout) fetchDoc(ctx context.Context, pageURL string) (*goquery.Document, error) {
	page, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return markup.Parse(page.HTML)
}

// CleanText returns the page's visible text without navigation chrome,
// whitespace-collapsed and truncated for embedding.
func (s *Scout) CleanText(ctx context.Context, pageURL string) model.Maybe[string] {
	doc, err := s.fetchDoc(ctx, pageURL)
	if err != nil {
		zap.L().Debug("scout: clean text unavailable", zap.String("url", pageURL), zap.Error(err))
		return model.Unavailable[string](err.Error())
	}
	markup.Strip(doc, markup.LayoutTags...)
	text := markup.Collapse(markup.Text(doc.Selection))
	return model.Some(markup.Truncate(text, s.cfg.MaxTextChars))
}

// MetaDescription returns the page's meta description, falling back to
// og:description and then the first paragraph.
func (s *Scout) MetaDescription(ctx context.Context, pageURL string) model.Maybe[string] {
	doc, err := s.fetchDoc(ctx, pageURL)
	if err != nil {
		zap.L().Debug("scout: description unavailable", zap.String("url", pageURL), zap.Error(err))
		return model.Unavailable[string](err.Error())
	}

	for _, m := range [][2]string{{"name", "description"}, {"property", "og:description"}} {
		if content, ok := markup.MetaContent(doc, m[0], m[1]); ok && content != "" {
			return model.Some(content)
		}
	}

	if p := doc.Find("p").First(); p.Length() > 0 {
		return model.Some(markup.Truncate(strings.TrimSpace(p.Text()), paragraphSnippet))
	}
	return model.Some(NoDescription)
}

// HubLinks returns the absolute outbound links of a hub page, skipping
// links back to the hub itself and social or search sites. Links keep
// their first-seen order. A failed fetch yields no links.
func (s *Scout) HubLinks(ctx context.Context, hubURL string) []string {
	hub, err := url.Parse(hubURL)
	if err != nil || hub.Host == "" {
		zap.L().Warn("scout: invalid hub url", zap.String("hub", hubURL))
		return []string{}
	}

	doc, err := s.fetchDoc(ctx, hubURL)
	if err != nil {
		zap.L().Warn("scout: hub fetch failed", zap.String("hub", hubURL), zap.Error(err))
		return []string{}
	}

	links := []string{}
	seen := map[string]bool{}
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
			return true
		}
		if strings.Contains(href, hub.Host) || isNoise(href) || seen[href] {
			return true
		}
		seen[href] = true
		links = append(links, href)
		return len(links) < s.cfg.MaxLinks
	})

	zap.L().Info("scout: hub links extracted", zap.String("hub", hubURL), zap.Int("links", len(links)))
	return links
}

func isNoise(link string) bool {
	lower := strings.ToLower(link)
	for _, n := range noiseHosts {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// Match scores text against the reference description as a percentage
// rounded to two decimals. Short text and embedding failures score 0.
func (s *Scout) Match(ctx context.Context, text string) float64 {
	if len([]rune(text)) < MinTextChars {
		return 0
	}
	vec, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		zap.L().Warn("scout: embed text failed", zap.Error(err))
		return 0
	}
	return math.Round(Cosine(s.reference, vec)*100*100) / 100
}

// Pitch returns the canned outreach line for a score.
func (s *Scout) Pitch(score float64) string {
	if score > highlyRelevant {
		return "Highly relevant match! Our services in " +
			markup.Truncate(s.cfg.Description, pitchDescRunes) +
			" align perfectly with your work."
	}
	return "Relevant match. We can help automate your workflows."
}

// Cosine returns the cosine similarity of a and b. Mismatched lengths and
// zero vectors give 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
