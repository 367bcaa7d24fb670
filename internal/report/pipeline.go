package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"opsreport/internal/metrics"
	"opsreport/internal/records"
	"opsreport/internal/sink"
	"opsreport/internal/table"
)

// Role names one of the four logical source roles.
type Role string

const (
	RolePrimary        Role = "primary"
	RoleProductMetrics Role = "product_metrics"
	RoleRetention      Role = "retention"
	RoleCost           Role = "cost"
)

// Loader supplies a parsed table per source role. The production
// implementation reads configured files or URLs; tests inject in-memory
// tables.
type Loader interface {
	Load(ctx context.Context, role Role) (*table.Table, error)
}

// Options is the pipeline's run configuration, passed explicitly so a
// run has no process-wide state.
type Options struct {
	// ProductID is written to the product_id column and doubles as the
	// metrics job label.
	ProductID string

	// TargetDate is an optional explicit YYYY-MM-DD date; empty
	// auto-detects the latest product metrics date.
	TargetDate string

	// OutputDir receives the report file.
	OutputDir string

	// AggregateCategory is the retention category value meaning
	// "aggregate across all channels".
	AggregateCategory string

	// Logger receives run progress. Nil discards.
	Logger *slog.Logger
}

// Result is the outcome of a successful run.
type Result struct {
	Date     time.Time
	Record   records.Record
	Header   []string
	Values   []any
	Row      []string
	Path     string
	Checksum uint64
	// DroppedRows counts rows discarded during date normalization, per role.
	DroppedRows map[Role]int
}

// Run executes one report generation end to end: load the four
// sources, normalize their date columns, resolve the target date,
// select the per-day rows, calculate the record, and write the
// delimited output. The whole run is sequential; it either completes
// or fails outright, and a fatal error means no output file exists.
func Run(ctx context.Context, ld Loader, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)}))
	}
	job := opts.ProductID

	// Load. A failed source is terminal and names its role.
	start := time.Now()
	tables := make(map[Role]*table.Table, 4)
	var loadErr error
	for _, role := range []Role{RolePrimary, RoleProductMetrics, RoleRetention, RoleCost} {
		t, err := ld.Load(ctx, role)
		if err != nil {
			loadErr = &SourceUnavailableError{Role: role, Err: err}
			break
		}
		tables[role] = t
	}
	metrics.RecordStep(job, "load", loadErr, time.Since(start))
	if loadErr != nil {
		return nil, loadErr
	}

	// Normalize dates in every source before any comparison.
	start = time.Now()
	dropped := make(map[Role]int, 4)
	for role, t := range tables {
		nt, n := NormalizeDates(t, ColDate)
		tables[role] = nt
		dropped[role] = n
		metrics.RecordRows(job, "date_dropped", int64(n))
		if n > 0 {
			logger.Info("dropped rows with unparsable dates", "role", string(role), "rows", n)
		}
	}
	metrics.RecordStep(job, "normalize", nil, time.Since(start))

	// Resolve the report date.
	start = time.Now()
	day, err := ResolveTargetDate(opts.TargetDate, tables[RoleProductMetrics], ColDate)
	metrics.RecordStep(job, "resolve", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	logger.Info("report date resolved", "date", day.Format(targetDateLayout))

	// Select the per-day rows.
	start = time.Now()
	sel, err := SelectRows(Tables{
		Primary:   tables[RolePrimary],
		Product:   tables[RoleProductMetrics],
		Retention: tables[RoleRetention],
		Cost:      tables[RoleCost],
	}, day, opts.AggregateCategory)
	metrics.RecordStep(job, "select", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	metrics.RecordRows(job, "selected", int64(len(sel.Primary)+1))
	if sel.Cost == nil {
		logger.Info("no cost row for date; cost defaults to 0")
	}
	if sel.Retention == nil {
		logger.Info("no retention row for date; retention rates default to 0")
	}

	// Calculate, zero-fill, assemble.
	start = time.Now()
	rec := ZeroFill(Calculate(opts.ProductID, sel))
	values := Assemble(rec)
	row := FormatRow(values)
	metrics.RecordStep(job, "calculate", nil, time.Since(start))

	// Write the single-row report; the file name embeds the date.
	start = time.Now()
	filename := fmt.Sprintf("daily_report_%s_%s.csv", opts.ProductID, day.Format(targetDateLayout))
	wr, err := sink.WriteCSV(opts.OutputDir, filename, Header(), row)
	metrics.RecordStep(job, "write", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written",
		"path", wr.Path, "bytes", wr.Bytes, "checksum", fmt.Sprintf("%016x", wr.Checksum))

	return &Result{
		Date:        day,
		Record:      rec,
		Header:      Header(),
		Values:      values,
		Row:         row,
		Path:        wr.Path,
		Checksum:    wr.Checksum,
		DroppedRows: dropped,
	}, nil
}
