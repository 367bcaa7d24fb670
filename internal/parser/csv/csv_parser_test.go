package csv

import (
	"strings"
	"testing"
)

func TestParse_HeaderMapAndValues(t *testing.T) {
	in := "\uFEFF日期,新增用户数,Extra Col\n2025-08-25,100,x\n2025-08-26,,y\n"
	p := NewParser(Options{
		TrimSpace: true,
		HeaderMap: map[string]string{"日期": "date", "新增用户数": "new_users"},
	})

	tbl, skipped, err := p.Parse("product_metrics", strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d; want 0", skipped)
	}

	cols := tbl.Columns()
	if cols[0] != "date" || cols[1] != "new_users" || cols[2] != "extra_col" {
		t.Fatalf("columns = %v", cols)
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows = %d; want 2", tbl.Len())
	}

	r0 := tbl.Rows()[0]
	if r0["date"] != "2025-08-25" || r0["new_users"] != "100" {
		t.Fatalf("row0 = %#v", r0)
	}
	// Empty cells become nil, not "".
	if v := tbl.Rows()[1]["new_users"]; v != nil {
		t.Fatalf("empty cell = %#v; want nil", v)
	}
}

func TestParse_SkipsMalformedRows(t *testing.T) {
	in := "date,total_cost\n2025-08-25,2000\nonly-one-field\n2025-08-26,1500\n"
	p := NewParser(Options{TrimSpace: true})

	tbl, skipped, err := p.Parse("cost", strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d; want 1", skipped)
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows = %d; want 2", tbl.Len())
	}
}

func TestParse_CustomDelimiter(t *testing.T) {
	in := "date;total_cost\n2025-08-25;2000\n"
	p := NewParser(Options{Comma: ';'})
	tbl, _, err := p.Parse("cost", strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := tbl.Rows()[0]["total_cost"]; got != "2000" {
		t.Fatalf("total_cost = %#v; want 2000", got)
	}
}

func TestParse_GBKDecoding(t *testing.T) {
	// "日期" encoded as GBK: C8 D5 C6 DA.
	raw := []byte{0xC8, 0xD5, 0xC6, 0xDA, ',', 'v', '\n', '2', '0', '2', '5', '-', '0', '8', '-', '2', '5', ',', '1', '\n'}
	p := NewParser(Options{
		Encoding:  "gbk",
		HeaderMap: map[string]string{"日期": "date"},
	})
	tbl, _, err := p.Parse("cost", strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !tbl.HasColumn("date") {
		t.Fatalf("GBK header not decoded and mapped; columns = %v", tbl.Columns())
	}
}

func TestParse_UnsupportedEncoding(t *testing.T) {
	p := NewParser(Options{Encoding: "latin-9000"})
	if _, _, err := p.Parse("x", strings.NewReader("a\n1\n")); err == nil {
		t.Fatalf("expected error for unsupported encoding")
	}
}

func TestCanonicalName(t *testing.T) {
	cases := map[string]string{
		"New Users":    "new_users",
		"  Cost.Total": "cost_total",
		"Krátký text":  "kratky_text",
		"A--B":         "a_b",
	}
	for in, want := range cases {
		if got := canonicalName(in); got != want {
			t.Fatalf("canonicalName(%q) = %q; want %q", in, got, want)
		}
	}
}
