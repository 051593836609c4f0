package scrape

import (
	"context"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sells-group/lead-scout/internal/model"
)

const (
	// DefaultUserAgent is sent with every page request.
	DefaultUserAgent = "Mozilla/5.0"
	// DefaultTimeout bounds a single page request.
	DefaultTimeout = 15 * time.Second
	// DefaultMaxBytes caps how much of a response body is read.
	DefaultMaxBytes = 2 << 20
)

// FetcherOptions configures the page fetcher.
type FetcherOptions struct {
	UserAgent string
	Timeout   time.Duration
	MaxBytes  int64
}

// PageFetcher fetches a single page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*model.Page, error)
}

// Fetcher performs one GET per page. It never retries.
type Fetcher struct {
	client *http.Client
	opts   FetcherOptions
}

var _ PageFetcher = (*Fetcher)(nil)

// NewFetcher creates a Fetcher, filling zero options with defaults.
func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		opts: opts,
	}
}

// Fetch retrieves targetURL. Transport failures and any status other than
// 200 are returned as errors; callers treat them as "no data".
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: get")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBytes))
	if err != nil {
		return nil, eris.Wrap(err, "fetch: read body")
	}

	if blocked, kind := DetectBlock(resp, body); blocked {
		zap.L().Warn("fetch: anti-bot block detected",
			zap.String("url", targetURL),
			zap.String("block_type", string(kind)),
			zap.Int("status", resp.StatusCode),
		)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("fetch: status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	text, err := decodeBody(body, contentType)
	if err != nil {
		zap.L().Debug("fetch: charset decode failed, using raw bytes",
			zap.String("url", targetURL),
			zap.Error(err),
		)
		text = string(body)
	}

	return &model.Page{
		URL:         targetURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		HTML:        text,
	}, nil
}

// decodeBody converts body to UTF-8 using the charset named in the
// Content-Type header. Bodies without a declared charset pass through.
func decodeBody(body []byte, contentType string) (string, error) {
	if contentType == "" {
		return string(body), nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return string(body), nil
	}
	charset := strings.ToLower(strings.TrimSpace(params["charset"]))
	if charset == "" || charset == "utf-8" || charset == "utf8" {
		return string(body), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", eris.Wrapf(err, "fetch: unsupported charset %q", charset)
	}
	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", eris.Wrapf(err, "fetch: decode %s", charset)
	}
	return string(out), nil
}
