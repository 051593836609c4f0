package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-scout/internal/discovery"
	"github.com/sells-group/lead-scout/internal/model"
	"github.com/sells-group/lead-scout/internal/report"
	"github.com/sells-group/lead-scout/internal/store"
)

type stubDiscoverer struct {
	summary *discovery.Summary
	err     error
	reqs    []discovery.Request
}

func (s *stubDiscoverer) Run(_ context.Context, req discovery.Request) (*discovery.Summary, error) {
	s.reqs = append(s.reqs, req)
	return s.summary, s.err
}

func newTestServer(t *testing.T, d Discoverer) *httptest.Server {
	t.Helper()
	root := t.TempDir()
	st := store.New(filepath.Join(root, "raw"), filepath.Join(root, "processed"))

	_, err := st.SaveReport("beta.io", report.Render(report.Report{Domain: "beta.io", URL: "https://beta.io"}))
	require.NoError(t, err)
	_, err = st.SaveReport("acme.io", report.Render(report.Report{
		Domain:      "acme.io",
		URL:         "https://acme.io",
		Name:        "Acme <Robotics>",
		Description: "Industrial automation.",
		Services:    []string{"Workflow automation for back-office teams."},
		Team:        model.Team{model.RoleCEO: {"Jane Doe"}},
		Emails:      []string{"sales@acme.io"},
		Phones:      []string{"555-123-4567"},
	}))
	require.NoError(t, err)

	srv, err := New(st, d)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postSearch(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url+"/search", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Companies (2)")
	assert.Contains(t, body, `href="/company/acme.io"`)
	assert.Contains(t, body, "Acme &lt;Robotics&gt;")
	assert.Less(t, strings.Index(body, "/company/acme.io"), strings.Index(body, "/company/beta.io"))
}

func TestCompanyDetail(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/company/acme.io")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Industrial automation.")
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "sales@acme.io")
	assert.Contains(t, body, "555-123-4567")
	assert.Contains(t, body, "Not mentioned")
}

func TestCompanyDetail_NotFound(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/company/nope.io")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Company not found", strings.TrimSpace(body))
}

func TestAPICompanies(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/api/companies")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out companiesResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Companies, 2)
	assert.Equal(t, "acme.io", out.Companies[0].Name)
	assert.Equal(t, []string{"sales@acme.io"}, out.Companies[0].Emails)
	assert.Empty(t, out.Companies[0].RawContent)
}

func TestAPICompany(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/api/companies/acme.io")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec model.CompanyRecord
	require.NoError(t, json.Unmarshal([]byte(body), &rec))
	assert.Equal(t, "Acme <Robotics>", rec.Title)
	assert.Equal(t, []string{"Jane Doe"}, rec.Team[model.RoleCEO])
	assert.NotEmpty(t, rec.RawContent)

	resp, body = get(t, ts.URL+"/api/companies/nope.io")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Company not found"}`, body)
}

func TestSearch_Success(t *testing.T) {
	d := &stubDiscoverer{summary: &discovery.Summary{
		RunID:      "run-1",
		TotalFound: 2,
		Scraped:    []string{"https://a.io"},
	}}
	ts := newTestServer(t, d)

	resp, out := postSearch(t, ts.URL, `{"query":"python automation","num_results":3}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Deep discovery & scraping complete", out["message"])
	assert.Equal(t, "run-1", out["run_id"])
	assert.Equal(t, float64(2), out["total_found"])
	assert.Equal(t, []any{"https://a.io"}, out["scraped"])
	assert.Equal(t, []discovery.Request{{Query: "python automation", NumResults: 3}}, d.reqs)
}

func TestSearch_QueryRequired(t *testing.T) {
	d := &stubDiscoverer{}
	ts := newTestServer(t, d)

	for _, body := range []string{`{}`, `{"query":""}`, `{"query":"   ","num_results":5}`} {
		resp, out := postSearch(t, ts.URL, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.Equal(t, "Query required", out["error"], body)
	}
	assert.Empty(t, d.reqs)
}

func TestSearch_BadBody(t *testing.T) {
	ts := newTestServer(t, &stubDiscoverer{})

	resp, out := postSearch(t, ts.URL, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request body", out["error"])
}

func TestSearch_NumResultsRange(t *testing.T) {
	ts := newTestServer(t, &stubDiscoverer{})

	resp, out := postSearch(t, ts.URL, `{"query":"q","num_results":500}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "num_results")
}

func TestSearch_ModelUnavailable(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, _ := postSearch(t, ts.URL, `{"query":"q"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSearch_PipelineError(t *testing.T) {
	ts := newTestServer(t, &stubDiscoverer{err: errors.New("boom")})

	resp, out := postSearch(t, ts.URL, `{"query":"q"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "discovery failed", out["error"])
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/search", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeaderAccepted(t *testing.T) {
	ts := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
