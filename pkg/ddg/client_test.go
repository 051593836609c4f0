package ddg

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultHTML(links ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="results">`)
	b.WriteString(`<div class="result result--ad"><a class="result__a" href="https://ads.example.com/click">Sponsored</a></div>`)
	for i, l := range links {
		fmt.Fprintf(&b, `<div class="result results_links web-result">
<h2 class="result__title"><a class="result__a" href="//duckduckgo.com/l/?uddg=%s&amp;rut=x">Result %d</a></h2>
<a class="result__snippet" href="#">Snippet %d</a>
</div>`, url.QueryEscape(l), i, i)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func TestSearch_ParsesResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "python automation", r.PostForm.Get("q"))
		assert.Equal(t, "in-en", r.PostForm.Get("kl"))
		assert.Equal(t, "-1", r.PostForm.Get("kp"))
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(resultHTML("https://acme.io/about", "https://beta.io/")))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithMaxPages(1))
	got, err := c.Search(context.Background(), "python automation", SearchOptions{
		Region:     "in-en",
		SafeSearch: SafeSearchModerate,
		MaxResults: 10,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Result{Title: "Result 0", URL: "https://acme.io/about", Snippet: "Snippet 0"}, got[0])
	assert.Equal(t, "https://beta.io/", got[1].URL)
}

func TestSearch_Paginates(t *testing.T) {
	t.Parallel()

	var pages atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		pages.Add(1)
		switch r.PostForm.Get("s") {
		case "":
			_, _ = w.Write([]byte(resultHTML("https://a.io", "https://b.io")))
		case "2":
			_, _ = w.Write([]byte(resultHTML("https://b.io", "https://c.io", "https://d.io")))
		default:
			t.Errorf("unexpected offset %q", r.PostForm.Get("s"))
		}
	}))
	defer srv.Close()

	got, err := NewClient(WithBaseURL(srv.URL)).Search(context.Background(), "q", SearchOptions{MaxResults: 3})
	require.NoError(t, err)

	urls := make([]string, 0, len(got))
	for _, r := range got {
		urls = append(urls, r.URL)
	}
	assert.Equal(t, []string{"https://a.io", "https://b.io", "https://c.io"}, urls)
	assert.Equal(t, int32(2), pages.Load())
}

func TestSearch_StopsWhenPageAddsNothing(t *testing.T) {
	t.Parallel()

	var pages atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		pages.Add(1)
		_, _ = w.Write([]byte(resultHTML("https://a.io")))
	}))
	defer srv.Close()

	got, err := NewClient(WithBaseURL(srv.URL), WithMaxPages(5)).Search(context.Background(), "q", SearchOptions{MaxResults: 10})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int32(2), pages.Load())
}

func TestSearch_PartialResultsOnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		if r.PostForm.Get("s") != "" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(resultHTML("https://a.io")))
	}))
	defer srv.Close()

	got, err := NewClient(WithBaseURL(srv.URL)).Search(context.Background(), "q", SearchOptions{MaxResults: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	require.Len(t, got, 1)
	assert.Equal(t, "https://a.io", got[0].URL)
}

func TestSearch_EmptyQuery(t *testing.T) {
	t.Parallel()

	_, err := NewClient().Search(context.Background(), "  ", SearchOptions{})
	assert.Error(t, err)
}

func TestResolveLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Facme.io%2Fabout&rut=abc", "https://acme.io/about"},
		{"https://duckduckgo.com/l/?uddg=http%3A%2F%2Fbeta.io", "http://beta.io"},
		{"https://gamma.io/x", "https://gamma.io/x"},
		{"/relative", ""},
		{"javascript:void(0)", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveLink(tt.in), tt.in)
	}
}

func TestSafeSearchParam(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1", safeSearchParam("strict"))
	assert.Equal(t, "-1", safeSearchParam("Moderate"))
	assert.Equal(t, "-2", safeSearchParam("off"))
	assert.Equal(t, "", safeSearchParam(""))
}
