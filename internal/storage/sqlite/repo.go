// Package sqlite implements a SQLite-backed report archive using
// database/sql. One report is one row; re-running a day replaces the
// archived row via INSERT OR REPLACE on the (date, product_id) key.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// SQLite driver.
	_ "modernc.org/sqlite"
)

// Config holds SQLite archive configuration.
type Config struct {
	// DSN is passed directly to database/sql, e.g.
	//
	//	"file:reports.db?cache=shared"
	//	"reports.db"
	DSN   string
	Table string
}

// Repository is a SQLite-backed report archive.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens a SQLite connection and returns the Repository
// plus a close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	if strings.TrimSpace(cfg.Table) == "" {
		return nil, nil, fmt.Errorf("sqlite: table must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// UpsertReport creates the archive table when missing and writes the
// row, replacing a previously archived report for the same day and
// product. The date and product_id columns are TEXT, everything else
// REAL.
func (r *Repository) UpsertReport(ctx context.Context, columns []string, values []any) error {
	if len(columns) == 0 || len(columns) != len(values) {
		return fmt.Errorf("sqlite: columns/values mismatch (%d vs %d)", len(columns), len(values))
	}

	if err := r.ensureTable(ctx, columns); err != nil {
		return err
	}

	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, v := range values {
		placeholders[i] = "?"
		if t, ok := v.(time.Time); ok {
			v = t.Format("2006-01-02")
		}
		args[i] = v
	}

	stmt := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		quoteIdent(r.cfg.Table),
		strings.Join(quoteAll(columns), ", "),
		strings.Join(placeholders, ", "),
	)
	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("sqlite: upsert into %s: %w", r.cfg.Table, err)
	}
	return nil
}

func (r *Repository) ensureTable(ctx context.Context, columns []string) error {
	defs := make([]string, len(columns))
	for i, c := range columns {
		typ := "REAL"
		if c == "date" || c == "product_id" {
			typ = "TEXT"
		}
		defs[i] = quoteIdent(c) + " " + typ
	}
	ddl := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s, PRIMARY KEY (date, product_id))",
		quoteIdent(r.cfg.Table),
		strings.Join(defs, ", "),
	)
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("sqlite: create table %s: %w", r.cfg.Table, err)
	}
	return nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = quoteIdent(c)
	}
	return out
}
