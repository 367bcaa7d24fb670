package config

import (
	"fmt"
	"time"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates an issue that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates an issue surfaced to users that does
	// not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "sources.cost.path").
// Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where one is expected.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a Config. It does not mutate
// the config; callers decide whether warnings are fatal.
func Validate(cfg Config) []Issue {
	var issues []Issue
	errf := func(path, format string, args ...any) {
		issues = append(issues, Issue{SeverityError, path, fmt.Sprintf(format, args...)})
	}
	warnf := func(path, format string, args ...any) {
		issues = append(issues, Issue{SeverityWarning, path, fmt.Sprintf(format, args...)})
	}

	if cfg.ProductID == "" {
		errf("product_id", "product_id must not be empty")
	}
	if cfg.TargetDate != "" {
		if _, err := time.Parse("2006-01-02", cfg.TargetDate); err != nil {
			errf("target_date", "not a YYYY-MM-DD date: %v", err)
		}
	}
	if cfg.OutputDir == "" {
		warnf("output_dir", "empty; the working directory will be used")
	}
	if cfg.AggregateCategory == "" {
		warnf("aggregate_category", "empty; retention rows will only match an empty category value")
	}

	for _, s := range []struct {
		path string
		spec SourceSpec
	}{
		{"sources.primary", cfg.Sources.Primary},
		{"sources.product_metrics", cfg.Sources.ProductMetrics},
		{"sources.retention", cfg.Sources.Retention},
		{"sources.cost", cfg.Sources.Cost},
	} {
		if !s.spec.Configured() {
			errf(s.path, "neither path nor url configured")
			continue
		}
		switch s.spec.Encoding {
		case "", "utf8", "utf-8", "gbk", "gb18030":
		default:
			errf(s.path+".encoding", "unsupported encoding %q", s.spec.Encoding)
		}
		if len(s.spec.Delimiter) > 1 {
			errf(s.path+".delimiter", "must be a single character, got %q", s.spec.Delimiter)
		}
	}

	switch cfg.Archive.Backend {
	case "", "none":
	case "sqlite", "postgres":
		if cfg.Archive.DSN == "" {
			errf("archive.dsn", "required for backend %q", cfg.Archive.Backend)
		}
		if cfg.Archive.Table == "" {
			errf("archive.table", "required for backend %q", cfg.Archive.Backend)
		}
	default:
		errf("archive.backend", "unknown backend %q", cfg.Archive.Backend)
	}

	switch cfg.Metrics.Backend {
	case "", "none":
	case "pushgateway":
		if cfg.Metrics.PushgatewayURL == "" {
			errf("metrics.pushgateway_url", "required for the pushgateway backend")
		}
	case "datadog":
		if cfg.Metrics.StatsdAddr == "" {
			errf("metrics.statsd_addr", "required for the datadog backend")
		}
	default:
		warnf("metrics.backend", "unknown backend %q; metrics will be disabled", cfg.Metrics.Backend)
	}

	return issues
}

// HasErrors reports whether any issue is error-severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
