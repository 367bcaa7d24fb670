package report

import (
	"strings"
	"time"

	"opsreport/internal/records"
	"opsreport/internal/table"
)

// dateLayouts are the string encodings accepted for source date cells.
// The sources come from different export tools and do not agree on a
// format, so each cell is tried against the full list; the first match
// wins. Scoring per-column (as a probe tool would) is unnecessary here
// because exact-day equality is all the pipeline needs.
var dateLayouts = []string{
	"2006-01-02", // ISO
	"2006/01/02", // ISO slashy
	"2006/1/2",   // ISO slashy, no zero padding
	"02.01.2006", // DMY dot
	"02/01/2006", // DMY slash
	"20060102",   // basic ISO
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// serialEpoch is day zero of spreadsheet serial dates.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Serial values outside this window are rejected as dates; it spans
// roughly 1954..2173, wide enough for any plausible report date and
// narrow enough to not swallow ordinary metric numbers.
const (
	serialMin = 20000
	serialMax = 100000
)

// ParseDate coerces a single cell value to a calendar date at midnight
// UTC. It accepts time.Time values, strings in any of dateLayouts,
// and spreadsheet serial numbers (numeric values or digit strings).
func ParseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return midnight(t), true
	case float64:
		return serialDate(t)
	case int:
		return serialDate(float64(t))
	case int64:
		return serialDate(float64(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return midnight(d), true
			}
		}
		// Fall back to serial-number strings ("45894", "45894.0").
		if f, ok := records.Float(s); ok {
			return serialDate(f)
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func serialDate(f float64) (time.Time, bool) {
	if f < serialMin || f > serialMax {
		return time.Time{}, false
	}
	return serialEpoch.AddDate(0, 0, int(f)), true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeDates rewrites the given date column of a table to midnight-
// UTC time.Time values and drops every row whose cell cannot be parsed
// as a date. It returns the normalized table and the number of dropped
// rows. A table without the date column passes through unchanged; the
// pipeline treats its lookups as absent-and-zero later. This runs over
// every source before any cross-table comparison, so that exact-match
// date filtering is meaningful despite inconsistent source encodings.
func NormalizeDates(t *table.Table, dateCol string) (*table.Table, int) {
	if t == nil || !t.HasColumn(dateCol) {
		return t, 0
	}
	kept := make([]records.Record, 0, t.Len())
	dropped := 0
	for _, r := range t.Rows() {
		d, ok := ParseDate(r[dateCol])
		if !ok {
			dropped++
			continue
		}
		r[dateCol] = d
		kept = append(kept, r)
	}
	return table.New(t.Name(), t.Columns(), kept), dropped
}
