package table

import (
	"testing"
	"time"

	"opsreport/internal/records"
)

func day(d int) time.Time {
	return time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC)
}

func sample() *Table {
	return New("product_metrics", []string{"date", "new_users"}, []records.Record{
		{"date": day(20), "new_users": "80"},
		{"date": day(25), "new_users": "100"},
		{"date": day(22), "new_users": "90"},
	})
}

func TestHasColumn(t *testing.T) {
	tbl := sample()
	if !tbl.HasColumn("date") || !tbl.HasColumn("new_users") {
		t.Fatalf("expected columns missing")
	}
	if tbl.HasColumn("cost") {
		t.Fatalf("unexpected column reported present")
	}
	var nilTbl *Table
	if nilTbl.HasColumn("date") {
		t.Fatalf("nil table should have no columns")
	}
}

func TestFilterDate(t *testing.T) {
	got := sample().FilterDate("date", day(25))
	if got.Len() != 1 {
		t.Fatalf("rows = %d; want 1", got.Len())
	}
	r, _ := got.First()
	if r["new_users"] != "100" {
		t.Fatalf("wrong row selected: %#v", r)
	}

	if n := sample().FilterDate("date", day(1)).Len(); n != 0 {
		t.Fatalf("rows = %d; want 0 for absent day", n)
	}
}

func TestMaxDate(t *testing.T) {
	max, ok := sample().MaxDate("date")
	if !ok {
		t.Fatalf("no max found")
	}
	if !max.Equal(day(25)) {
		t.Fatalf("max = %v; want 2025-08-25", max)
	}

	empty := New("x", []string{"date"}, nil)
	if _, ok := empty.MaxDate("date"); ok {
		t.Fatalf("empty table should have no max date")
	}

	// Rows without parsed dates don't contribute.
	mixed := New("x", []string{"date"}, []records.Record{
		{"date": "unparsed"},
		{"date": day(22)},
	})
	max, ok = mixed.MaxDate("date")
	if !ok || !max.Equal(day(22)) {
		t.Fatalf("max = (%v, %v); want 2025-08-22", max, ok)
	}
}

func TestFilterSharesRows(t *testing.T) {
	tbl := sample()
	sub := tbl.Filter(func(r records.Record) bool { return r["new_users"] == "100" })
	if sub.Len() != 1 {
		t.Fatalf("rows = %d; want 1", sub.Len())
	}
	if sub.Name() != tbl.Name() {
		t.Fatalf("filtered table lost its name")
	}
	if len(sub.Columns()) != 2 {
		t.Fatalf("filtered table lost columns")
	}
}
