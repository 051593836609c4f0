package store

import (
	"context"

	"github.com/sells-group/lead-scout/internal/model"
)

// Store defines the persistence interface for scraped company artifacts.
type Store interface {
	// Artifacts
	SaveSnapshot(domain, markup string) (string, error)
	SaveMarkdown(domain, markdown string) (string, error)
	SaveReport(domain, report string) (string, error)

	// Reports
	List(ctx context.Context) ([]model.CompanyRecord, error)
	Get(name string) (*model.CompanyRecord, error)
}
