package report

import (
	"errors"
	"testing"
	"time"

	"opsreport/internal/records"
	"opsreport/internal/table"
)

func productTable(dates ...time.Time) *table.Table {
	rows := make([]records.Record, len(dates))
	for i, d := range dates {
		rows[i] = records.Record{"date": d, "new_users": "10"}
	}
	return table.New("product_metrics", []string{"date", "new_users"}, rows)
}

func TestResolveTargetDate_ExplicitWins(t *testing.T) {
	got, err := ResolveTargetDate("2025-08-20", productTable(day(2025, 8, 25)), ColDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(day(2025, 8, 20)) {
		t.Fatalf("date = %v; want 2025-08-20", got)
	}
}

func TestResolveTargetDate_ExplicitUnparsable(t *testing.T) {
	_, err := ResolveTargetDate("08/25/2025", productTable(day(2025, 8, 25)), ColDate)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v; want ConfigurationError", err)
	}
}

func TestResolveTargetDate_AutoDetectsMax(t *testing.T) {
	tbl := productTable(day(2025, 8, 20), day(2025, 8, 25), day(2025, 8, 22))
	got, err := ResolveTargetDate("", tbl, ColDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(day(2025, 8, 25)) {
		t.Fatalf("date = %v; want max 2025-08-25", got)
	}
}

func TestResolveTargetDate_EmptyProductIsFatal(t *testing.T) {
	_, err := ResolveTargetDate("", productTable(), ColDate)
	var missing *MissingDataError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v; want MissingDataError", err)
	}
}
