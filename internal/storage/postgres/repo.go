// Package postgres implements a Postgres-backed report archive using
// pgx v5. Rows are written with INSERT ... ON CONFLICT DO UPDATE on the
// (date, product_id) key, so re-running a day replaces its archived row.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds Postgres archive configuration.
type Config struct {
	DSN   string // connection string for pgxpool
	Table string // target table, optionally schema-qualified, e.g. "public.daily_reports"
}

// Repository is a Postgres-backed report archive.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewRepository constructs a Repository and returns a close function.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	if strings.TrimSpace(cfg.Table) == "" {
		return nil, nil, fmt.Errorf("postgres: table must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	closeFn := func() { pool.Close() }
	return &Repository{pool: pool, cfg: cfg}, closeFn, nil
}

// UpsertReport creates the archive table when missing and writes the
// row. The date and product_id columns are text, everything else
// double precision.
func (r *Repository) UpsertReport(ctx context.Context, columns []string, values []any) error {
	if len(columns) == 0 || len(columns) != len(values) {
		return fmt.Errorf("postgres: columns/values mismatch (%d vs %d)", len(columns), len(values))
	}

	if err := r.ensureTable(ctx, columns); err != nil {
		return err
	}

	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, v := range values {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if t, ok := v.(time.Time); ok {
			v = t.Format("2006-01-02")
		}
		args[i] = v
	}

	stmt := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (date, product_id) DO UPDATE SET %s",
		pgFQN(r.cfg.Table),
		strings.Join(mapIdent(columns), ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updateColumns(columns), ", "),
	)
	if _, err := r.pool.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("postgres: upsert into %s: %w", r.cfg.Table, err)
	}
	return nil
}

func (r *Repository) ensureTable(ctx context.Context, columns []string) error {
	defs := make([]string, len(columns))
	for i, c := range columns {
		typ := "double precision"
		if c == "date" || c == "product_id" {
			typ = "text"
		}
		defs[i] = pgIdent(c) + " " + typ
	}
	ddl := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s, PRIMARY KEY (date, product_id))",
		pgFQN(r.cfg.Table),
		strings.Join(defs, ", "),
	)
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("postgres: create table %s: %w", r.cfg.Table, err)
	}
	return nil
}

// updateColumns generates "col = EXCLUDED.col" clauses for the upsert,
// skipping the key columns.
func updateColumns(cols []string) []string {
	var updates []string
	for _, col := range cols {
		if col == "date" || col == "product_id" {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", pgIdent(col), pgIdent(col)))
	}
	return updates
}

// pgIdent double-quotes a single identifier.
func pgIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// pgFQN quotes a possibly schema-qualified table name part by part.
func pgFQN(s string) string {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}

// mapIdent quotes every identifier in the slice.
func mapIdent(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = pgIdent(c)
	}
	return out
}
