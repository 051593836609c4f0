package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-scout/internal/model"
	"github.com/sells-group/lead-scout/internal/report"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	root := t.TempDir()
	return New(filepath.Join(root, "raw"), filepath.Join(root, "processed"))
}

func writeReport(t *testing.T, st *FileStore, domain string, r report.Report) {
	t.Helper()
	r.Domain = domain
	_, err := st.SaveReport(domain, report.Render(r))
	require.NoError(t, err)
}

func TestFileStore_SaveArtifacts(t *testing.T) {
	st := newTestStore(t)

	raw, err := st.SaveSnapshot("acme.io", "<html>\n</html>\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(st.RawDir(), "acme.io.html"), raw)

	md, err := st.SaveMarkdown("acme.io", "# Acme")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(st.RawDir(), "acme.io.md"), md)

	txt, err := st.SaveReport("acme.io", "report")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(st.ProcessedDir(), "acme.io.txt"), txt)

	data, err := os.ReadFile(raw)
	require.NoError(t, err)
	assert.Equal(t, "<html>\n</html>\n", string(data))
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	st := newTestStore(t)

	_, err := st.SaveReport("acme.io", "first")
	require.NoError(t, err)
	path, err := st.SaveReport("acme.io", "second")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestFileStore_RejectsTraversal(t *testing.T) {
	st := newTestStore(t)

	_, err := st.SaveReport("../evil", "x")
	assert.Error(t, err)

	_, err = st.Get("../evil")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_EnsureDirs(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.EnsureDirs())

	for _, dir := range []string{st.RawDir(), st.ProcessedDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestFileStore_ListEmpty(t *testing.T) {
	st := newTestStore(t)

	records, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestFileStore_ListSortedAndParsed(t *testing.T) {
	st := newTestStore(t)
	writeReport(t, st, "zeta.io", report.Report{URL: "https://zeta.io"})
	writeReport(t, st, "alpha.io", report.Report{
		URL:         "https://alpha.io",
		Description: "Alpha does things.",
		Emails:      []string{"hi@alpha.io"},
		Team:        model.Team{model.RoleCEO: {"Jane Doe"}},
	})

	// Non-report files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(st.ProcessedDir(), "notes.md"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(st.ProcessedDir(), "sub.txt"), 0o755))

	records, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "alpha.io", records[0].Name)
	assert.Equal(t, "zeta.io", records[1].Name)
	assert.Equal(t, "Alpha does things.", records[0].Description)
	assert.Equal(t, []string{"hi@alpha.io"}, records[0].Emails)
	assert.Equal(t, []string{"Jane Doe"}, records[0].Team[model.RoleCEO])
}

func TestFileStore_ListCancelled(t *testing.T) {
	st := newTestStore(t)
	writeReport(t, st, "acme.io", report.Report{URL: "https://acme.io"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := st.List(ctx)
	assert.Error(t, err)
}

func TestFileStore_Get(t *testing.T) {
	st := newTestStore(t)
	writeReport(t, st, "acme.io", report.Report{URL: "https://acme.io", Name: "Acme"})

	rec, err := st.Get("acme.io")
	require.NoError(t, err)
	assert.Equal(t, "acme.io", rec.Name)
	assert.Equal(t, "acme.io.txt", rec.File)
	assert.Equal(t, "Acme", rec.Title)
	assert.Equal(t, "https://acme.io", rec.Website)
}

func TestFileStore_GetMissing(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Get("nope.io")
	assert.ErrorIs(t, err, ErrNotFound)
}
