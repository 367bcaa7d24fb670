package report

import "fmt"

// SourceUnavailableError reports that a required source could not be
// loaded. It names the failing role so the operator can check the
// sources section of the configuration.
type SourceUnavailableError struct {
	Role Role
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %q unavailable: %v; check the sources configuration for this role", e.Role, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// ConfigurationError reports an invalid configuration value, e.g. an
// unparseable explicit target date.
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// MissingDataError reports that the product metrics source cannot
// anchor a report: it has no valid dates at all, or no row matching the
// resolved target date. Both are fatal; no output is written.
type MissingDataError struct {
	Reason string
}

func (e *MissingDataError) Error() string {
	return "missing data: " + e.Reason
}
