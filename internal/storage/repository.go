// Package storage defines the optional report archive: finished report
// rows upserted into a database keyed by (report date, product), so
// past reports can be queried without re-running the pipeline. The
// archive never participates in producing the CSV output.
package storage

import (
	"context"
	"fmt"

	"opsreport/internal/storage/postgres"
	"opsreport/internal/storage/sqlite"
)

// Repository archives finished report rows.
type Repository interface {
	// UpsertReport inserts or replaces one report row. columns and
	// values are parallel slices in output-schema order; the date and
	// product_id columns form the archive key.
	UpsertReport(ctx context.Context, columns []string, values []any) error
}

// Config selects and configures an archive backend.
type Config struct {
	Backend string // "sqlite" or "postgres"
	DSN     string
	Table   string
}

// New builds a Repository for the configured backend and returns a
// cleanup function for the underlying connection.
func New(ctx context.Context, cfg Config) (Repository, func(), error) {
	switch cfg.Backend {
	case "sqlite":
		return sqlite.NewRepository(ctx, sqlite.Config{DSN: cfg.DSN, Table: cfg.Table})
	case "postgres":
		return postgres.NewRepository(ctx, postgres.Config{DSN: cfg.DSN, Table: cfg.Table})
	default:
		return nil, nil, fmt.Errorf("unknown archive backend %q", cfg.Backend)
	}
}
