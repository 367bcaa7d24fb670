// Package table provides the read-only tabular snapshot the report
// pipeline operates on: an ordered set of named columns plus rows of
// records. Tables are loaded once per run and never mutated except to
// drop rows during date normalization; filtering produces new Table
// values that share the underlying records.
package table

import (
	"time"

	"opsreport/internal/records"
)

// Table is one loaded source: ordered column names and rows.
type Table struct {
	name    string
	columns []string
	rows    []records.Record
}

// New constructs a Table. The rows slice is used as-is, not copied.
func New(name string, columns []string, rows []records.Record) *Table {
	return &Table{name: name, columns: columns, rows: rows}
}

// Name returns the logical source name (e.g. "product_metrics").
func (t *Table) Name() string { return t.name }

// Columns returns the ordered column names as parsed from the source.
func (t *Table) Columns() []string { return t.columns }

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns the underlying rows.
func (t *Table) Rows() []records.Record {
	if t == nil {
		return nil
	}
	return t.rows
}

// First returns the first row, or false when the table is empty.
func (t *Table) First() (records.Record, bool) {
	if t.Len() == 0 {
		return nil, false
	}
	return t.rows[0], true
}

// HasColumn reports whether the named column was present in the source
// header. Absent columns are the normal case for optional metrics and
// never an error; callers default to zero instead.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Filter returns a new Table containing only the rows for which keep
// returns true. Column order is preserved; rows are shared.
func (t *Table) Filter(keep func(records.Record) bool) *Table {
	if t == nil {
		return nil
	}
	out := make([]records.Record, 0, len(t.rows))
	for _, r := range t.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return &Table{name: t.name, columns: t.columns, rows: out}
}

// FilterDate returns the rows whose date column equals day exactly
// (same calendar day; the normalizer stores dates at midnight UTC, so
// equality is a plain time comparison).
func (t *Table) FilterDate(col string, day time.Time) *Table {
	return t.Filter(func(r records.Record) bool {
		d, ok := r.Time(col)
		return ok && d.Equal(day)
	})
}

// MaxDate returns the maximum value of the given date column across all
// rows, or false when no row holds a valid date.
func (t *Table) MaxDate(col string) (time.Time, bool) {
	var max time.Time
	found := false
	for _, r := range t.Rows() {
		d, ok := r.Time(col)
		if !ok {
			continue
		}
		if !found || d.After(max) {
			max = d
			found = true
		}
	}
	return max, found
}
