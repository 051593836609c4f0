package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-scout/internal/model"
	"github.com/sells-group/lead-scout/internal/report"
)

// ErrNotFound is returned when no report exists for a company name.
var ErrNotFound = eris.New("store: company not found")

const (
	snapshotExt = ".html"
	markdownExt = ".md"
	dirPerm     = 0o755
	filePerm    = 0o644
)

// FileStore keeps raw snapshots and processed reports as plain files. The
// processed directory listing is the company index.
type FileStore struct {
	rawDir       string
	processedDir string
}

var _ Store = (*FileStore)(nil)

// New creates a FileStore rooted at the given directories. Directories are
// created lazily on first write.
func New(rawDir, processedDir string) *FileStore {
	return &FileStore{rawDir: rawDir, processedDir: processedDir}
}

// RawDir returns the snapshot directory.
func (s *FileStore) RawDir() string { return s.rawDir }

// ProcessedDir returns the report directory.
func (s *FileStore) ProcessedDir() string { return s.processedDir }

// EnsureDirs creates both output directories if they do not exist.
func (s *FileStore) EnsureDirs() error {
	for _, dir := range []string{s.rawDir, s.processedDir} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return eris.Wrapf(err, "store: create dir %s", dir)
		}
	}
	return nil
}

// SaveSnapshot writes the prettified markup for domain and returns its path.
func (s *FileStore) SaveSnapshot(domain, markup string) (string, error) {
	return s.write(s.rawDir, domain+snapshotExt, markup)
}

// SaveMarkdown writes the markdown rendering for domain and returns its path.
func (s *FileStore) SaveMarkdown(domain, markdown string) (string, error) {
	return s.write(s.rawDir, domain+markdownExt, markdown)
}

// SaveReport writes the processed report for domain and returns its path.
// Once written, the domain shows up in List.
func (s *FileStore) SaveReport(domain, text string) (string, error) {
	return s.write(s.processedDir, domain+report.FileExt, text)
}

func (s *FileStore) write(dir, name, content string) (string, error) {
	if err := validName(strings.TrimSuffix(name, filepath.Ext(name))); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", eris.Wrapf(err, "store: create dir %s", dir)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return "", eris.Wrapf(err, "store: write %s", path)
	}
	return path, nil
}

// List parses every report in the processed directory, in lexicographic
// file name order. Unreadable files are logged and skipped; a missing
// directory yields an empty list.
func (s *FileStore) List(ctx context.Context) ([]model.CompanyRecord, error) {
	entries, err := os.ReadDir(s.processedDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.CompanyRecord{}, nil
		}
		return nil, eris.Wrap(err, "store: list reports")
	}

	records := make([]model.CompanyRecord, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return records, eris.Wrap(err, "store: list reports")
		}
		if e.IsDir() || filepath.Ext(e.Name()) != report.FileExt {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.processedDir, e.Name()))
		if err != nil {
			zap.L().Warn("store: skipping unreadable report",
				zap.String("file", e.Name()),
				zap.Error(err),
			)
			continue
		}
		records = append(records, report.Parse(e.Name(), string(data)))
	}
	return records, nil
}

// Get parses the report for a single company name (file name without
// extension).
func (s *FileStore) Get(name string) (*model.CompanyRecord, error) {
	if err := validName(name); err != nil {
		return nil, ErrNotFound
	}
	file := name + report.FileExt
	data, err := os.ReadFile(filepath.Join(s.processedDir, file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "store: read %s", file)
	}
	rec := report.Parse(file, string(data))
	return &rec, nil
}

// validName rejects names that would escape the store directories.
func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return eris.Errorf("store: invalid name %q", name)
	}
	return nil
}
