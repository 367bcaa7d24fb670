package config

import "testing"

func validConfig() Config {
	cfg := Config{
		ProductID:         "P001",
		OutputDir:         "./reports",
		AggregateCategory: "all",
	}
	cfg.Sources.Primary = SourceSpec{Path: "primary.csv"}
	cfg.Sources.ProductMetrics = SourceSpec{Path: "product.csv"}
	cfg.Sources.Retention = SourceSpec{URL: "https://example.com/retention.csv"}
	cfg.Sources.Cost = SourceSpec{Path: "cost.csv"}
	return cfg
}

func TestValidate_OK(t *testing.T) {
	issues := Validate(validConfig())
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestValidate_MissingSource(t *testing.T) {
	cfg := validConfig()
	cfg.Sources.Cost = SourceSpec{}
	issues := Validate(cfg)
	if !HasErrors(issues) {
		t.Fatalf("expected error for unconfigured source, got %v", issues)
	}
}

func TestValidate_BadTargetDate(t *testing.T) {
	cfg := validConfig()
	cfg.TargetDate = "25/08/2025"
	if !HasErrors(Validate(cfg)) {
		t.Fatalf("expected error for malformed target_date")
	}

	cfg.TargetDate = "2025-08-25"
	if HasErrors(Validate(cfg)) {
		t.Fatalf("valid target_date flagged")
	}
}

func TestValidate_Archive(t *testing.T) {
	cfg := validConfig()
	cfg.Archive = Archive{Backend: "sqlite"}
	if !HasErrors(Validate(cfg)) {
		t.Fatalf("sqlite archive without DSN should error")
	}

	cfg.Archive = Archive{Backend: "sqlite", DSN: "reports.db", Table: "daily_reports"}
	if HasErrors(Validate(cfg)) {
		t.Fatalf("complete archive config flagged")
	}

	cfg.Archive = Archive{Backend: "oracle"}
	if !HasErrors(Validate(cfg)) {
		t.Fatalf("unknown archive backend should error")
	}
}

func TestValidate_MetricsUnknownBackendIsWarning(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics.Backend = "statsd2000"
	issues := Validate(cfg)
	if HasErrors(issues) {
		t.Fatalf("unknown metrics backend should not be fatal: %v", issues)
	}
	if len(issues) == 0 {
		t.Fatalf("expected a warning for unknown metrics backend")
	}
}

func TestValidate_Encoding(t *testing.T) {
	cfg := validConfig()
	cfg.Sources.Primary.Encoding = "gbk"
	if HasErrors(Validate(cfg)) {
		t.Fatalf("gbk encoding flagged")
	}
	cfg.Sources.Primary.Encoding = "ebcdic"
	if !HasErrors(Validate(cfg)) {
		t.Fatalf("unsupported encoding should error")
	}
}
