package report

import (
	"testing"
	"time"

	"opsreport/internal/records"
	"opsreport/internal/table"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate_Layouts(t *testing.T) {
	want := day(2025, 8, 25)
	cases := []any{
		"2025-08-25",
		"2025/08/25",
		"2025/8/25",
		"25.08.2025",
		"25/08/2025",
		"20250825",
		"2025-08-25 13:45:00",
		time.Date(2025, 8, 25, 9, 30, 0, 0, time.UTC),
	}
	for _, in := range cases {
		got, ok := ParseDate(in)
		if !ok {
			t.Fatalf("ParseDate(%v): not parsed", in)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDate(%v) = %v; want %v", in, got, want)
		}
	}
}

/*
TestParseDate_SerialNumbers covers spreadsheet serial dates, which some
source exports use instead of strings. Serial 45894 is 2025-08-25
(epoch 1899-12-30).
*/
func TestParseDate_SerialNumbers(t *testing.T) {
	want := day(2025, 8, 25)
	for _, in := range []any{45894, int64(45894), float64(45894), "45894", "45894.0"} {
		got, ok := ParseDate(in)
		if !ok {
			t.Fatalf("ParseDate(%v): not parsed", in)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDate(%v) = %v; want %v", in, got, want)
		}
	}

	// Plain metric-sized numbers must not be mistaken for dates.
	for _, in := range []any{"100", 0, 12.5, "1000000"} {
		if _, ok := ParseDate(in); ok {
			t.Fatalf("ParseDate(%v): parsed, want rejection", in)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []any{nil, "", "not a date", "2025-13-40", true} {
		if _, ok := ParseDate(in); ok {
			t.Fatalf("ParseDate(%v): parsed, want rejection", in)
		}
	}
}

func TestNormalizeDates_DropsUnparsableRows(t *testing.T) {
	in := table.New("product_metrics", []string{"date", "new_users"}, []records.Record{
		{"date": "2025-08-25", "new_users": "100"},
		{"date": "garbage", "new_users": "7"},
		{"date": nil, "new_users": "3"},
		{"date": "45894", "new_users": "50"},
	})

	out, dropped := NormalizeDates(in, ColDate)
	if dropped != 2 {
		t.Fatalf("dropped = %d; want 2", dropped)
	}
	if out.Len() != 2 {
		t.Fatalf("rows = %d; want 2", out.Len())
	}
	for _, r := range out.Rows() {
		d, ok := r.Time(ColDate)
		if !ok {
			t.Fatalf("row date not normalized: %#v", r[ColDate])
		}
		if !d.Equal(day(2025, 8, 25)) {
			t.Fatalf("date = %v; want 2025-08-25", d)
		}
	}
}

func TestNormalizeDates_NoDateColumnPassesThrough(t *testing.T) {
	in := table.New("cost", []string{"total_cost"}, []records.Record{
		{"total_cost": "2000"},
	})
	out, dropped := NormalizeDates(in, ColDate)
	if dropped != 0 {
		t.Fatalf("dropped = %d; want 0", dropped)
	}
	if out != in {
		t.Fatalf("table without date column should pass through unchanged")
	}
}
