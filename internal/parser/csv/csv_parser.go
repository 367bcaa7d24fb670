// Package csv turns delimited source bytes into a table.Table. Sources
// come from upstream export tools with localized headers and varying
// charsets, so the parser supports per-source header mapping and
// GBK/GB18030 decoding before encoding/csv sees the bytes.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"opsreport/internal/records"
	"opsreport/internal/table"
)

// Options configures the CSV parser. All fields are optional; sensible
// defaults are applied when a field is zero.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// HeaderMap maps source header names (often localized) to canonical
	// snake_case keys. Headers not in the map are canonicalized by
	// lowercasing, accent folding, and underscore substitution.
	HeaderMap map[string]string

	// Encoding selects the source charset: "", "utf8", "gbk", or
	// "gb18030". Empty means UTF-8 passthrough.
	Encoding string

	// Logger receives soft-fail row skips. Nil discards.
	Logger *slog.Logger
}

// Parser parses CSV input according to Options. It is safe to reuse
// across inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// decoderFor returns the charset decoder for the configured encoding,
// or nil for UTF-8 passthrough.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", "utf-8":
		return nil, nil
	case "gbk":
		return simplifiedchinese.GBK.NewDecoder(), nil
	case "gb18030":
		return simplifiedchinese.GB18030.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// Parse consumes delimited text from r and returns a Table named name,
// along with the number of rows skipped due to read errors or width
// mismatches. Rows are soft-failed: a malformed row is skipped and
// counted, never fatal. All values are stored as raw strings (empty
// cells become nil); type coercion happens downstream.
func (p *Parser) Parse(name string, r io.Reader) (*table.Table, int, error) {
	dec, err := decoderFor(p.opt.Encoding)
	if err != nil {
		return nil, 0, err
	}
	if dec != nil {
		r = transform.NewReader(r, dec)
	}

	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	h, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	headers := p.normalizeHeaders(h)

	logger := p.opt.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)}))
	}

	var rows []records.Record
	var skipped int
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Info("skipping row", "line", line, "err", err)
			skipped++
			continue
		}
		if len(row) != len(headers) {
			logger.Info("skipping row: field count mismatch",
				"line", line, "want", len(headers), "got", len(row))
			skipped++
			continue
		}
		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			if val == "" {
				rec[headers[i]] = nil
			} else {
				rec[headers[i]] = val
			}
		}
		rows = append(rows, rec)
	}

	return table.New(name, headers, rows), skipped, nil
}

// normalizeHeaders produces canonical header keys: HeaderMap wins when
// it has an entry; everything else is folded to a lowercase ASCII
// identifier. A UTF-8 BOM on the first cell is stripped.
func (p *Parser) normalizeHeaders(h []string) []string {
	out := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if p.opt.HeaderMap != nil {
			if m, ok := p.opt.HeaderMap[c]; ok && m != "" {
				out[i] = m
				continue
			}
		}
		out[i] = canonicalName(c)
		if out[i] == "" {
			out[i] = fmt.Sprintf("col_%d", i)
		}
	}
	return out
}

// canonicalName converts arbitrary header text into a lowercase ASCII
// identifier:
//  1. lowercase
//  2. strip accents (NFD, remove combining marks, NFC)
//  3. keep [a-z0-9_]; convert space/dash/dot to underscore; drop others
func canonicalName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, s)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
