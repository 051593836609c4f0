package scrape

import (
	"net/http"
	"strings"
)

// BlockType describes the kind of anti-bot wall a response looks like.
type BlockType string

const (
	BlockNone       BlockType = ""
	BlockCloudflare BlockType = "cloudflare"
	BlockCaptcha    BlockType = "captcha"
	BlockJSShell    BlockType = "js_shell"
	BlockRateLimit  BlockType = "rate_limit"
)

// jsShellMaxBytes is the size below which a page with only a noscript
// fallback or meta refresh is treated as a JS shell.
const jsShellMaxBytes = 2000

// DetectBlock inspects a response for signs of anti-bot protection. The
// fetcher only logs the result; a blocked page with status 200 is still
// scraped.
func DetectBlock(resp *http.Response, body []byte) (bool, BlockType) {
	if resp == nil {
		return false, BlockNone
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return true, BlockRateLimit
	case http.StatusForbidden, http.StatusServiceUnavailable:
		if resp.Header.Get("cf-ray") != "" ||
			resp.Header.Get("cf-cache-status") != "" ||
			strings.EqualFold(resp.Header.Get("server"), "cloudflare") {
			return true, BlockCloudflare
		}
	}

	lower := strings.ToLower(string(body))

	switch {
	case strings.Contains(lower, "checking your browser"),
		strings.Contains(lower, "cf-browser-verification"),
		strings.Contains(lower, "cloudflare") && strings.Contains(lower, "challenge"):
		return true, BlockCloudflare
	case strings.Contains(lower, "captcha"):
		return true, BlockCaptcha
	}

	if len(body) < jsShellMaxBytes {
		if strings.Contains(lower, "<noscript") && strings.Contains(lower, "javascript") {
			return true, BlockJSShell
		}
		if strings.Contains(lower, `http-equiv="refresh"`) {
			return true, BlockJSShell
		}
	}

	return false, BlockNone
}
