// Package config defines the configuration model for the report
// generator and its loader. Configuration is an explicit value passed
// into the pipeline entry point, never process-wide state, so tests can
// inject in-memory tables and synthetic settings.
//
// Sources are YAML files merged with environment variables
// (OPSREPORT_ prefix, "__" as the key separator) and command-line
// flags, flags winning.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// SourceSpec locates and describes one tabular input.
type SourceSpec struct {
	// Path is a local file path. Mutually exclusive with URL; Path wins
	// when both are set.
	Path string `koanf:"path"`

	// URL fetches the source over HTTP(S) instead of local disk.
	URL string `koanf:"url"`

	// Encoding is the source charset: "", "utf8", "gbk", "gb18030".
	Encoding string `koanf:"encoding"`

	// Delimiter is the field separator; empty means comma.
	Delimiter string `koanf:"delimiter"`

	// HeaderMap maps localized source headers to canonical column
	// names. Entries here override the built-in defaults for the role.
	HeaderMap map[string]string `koanf:"header_map"`

	// InsecureSkipVerify disables TLS verification for URL sources.
	InsecureSkipVerify bool `koanf:"insecure_skip_verify"`
}

// Configured reports whether the spec points anywhere.
func (s SourceSpec) Configured() bool { return s.Path != "" || s.URL != "" }

// Sources maps the four logical source roles to their specs.
type Sources struct {
	Primary        SourceSpec `koanf:"primary"`
	ProductMetrics SourceSpec `koanf:"product_metrics"`
	Retention      SourceSpec `koanf:"retention"`
	Cost           SourceSpec `koanf:"cost"`
}

// Archive configures the optional report archive.
type Archive struct {
	// Backend selects the archive storage: "none", "sqlite", "postgres".
	Backend string `koanf:"backend"`
	DSN     string `koanf:"dsn"`
	// Table is the archive table name. Default "daily_reports".
	Table string `koanf:"table"`
}

// Metrics configures the metrics backend.
type Metrics struct {
	// Backend selects the metrics system: "none", "pushgateway", "datadog".
	Backend        string `koanf:"backend"`
	PushgatewayURL string `koanf:"pushgateway_url"`
	StatsdAddr     string `koanf:"statsd_addr"`
	Namespace      string `koanf:"namespace"`
}

// Config is the full run configuration.
type Config struct {
	// ProductID is the constant literal written to the product_id
	// column (single-product assumption).
	ProductID string `koanf:"product_id"`

	// TargetDate is the optional explicit report date (YYYY-MM-DD).
	// Empty auto-detects the latest date in the product metrics source.
	TargetDate string `koanf:"target_date"`

	// OutputDir receives the report file.
	OutputDir string `koanf:"output_dir"`

	// AggregateCategory is the retention category value that denotes
	// the aggregate across all channels.
	AggregateCategory string `koanf:"aggregate_category"`

	Sources Sources `koanf:"sources"`
	Archive Archive `koanf:"archive"`
	Metrics Metrics `koanf:"metrics"`
}

// defaults are applied before any file/env/flag layer.
var defaults = map[string]any{
	"product_id":              "P001",
	"output_dir":              "./reports",
	"aggregate_category":      "all",
	"archive.backend":         "none",
	"archive.table":           "daily_reports",
	"metrics.backend":         "none",
	"metrics.pushgateway_url": "http://localhost:9091",
}

// Load builds a Config by layering defaults, an optional YAML file,
// OPSREPORT_* environment variables, and (optionally) parsed flags.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	// OPSREPORT_ARCHIVE__BACKEND=sqlite becomes archive.backend.
	envCb := func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "OPSREPORT_"))
		return strings.ReplaceAll(s, "__", ".")
	}
	if err := k.Load(env.Provider("OPSREPORT_", ".", envCb), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
