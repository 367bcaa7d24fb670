package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"opsreport/internal/config"
	"opsreport/internal/loader"
	"opsreport/internal/metrics"
	"opsreport/internal/metrics/datadog"
	"opsreport/internal/metrics/prompush"
	"opsreport/internal/report"
	"opsreport/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the report pipeline once",
	RunE:  runReport,
}

func init() {
	// Flag names match config keys so the posflag layer can override
	// file and env values directly.
	runCmd.Flags().String("product_id", "", "product identifier written to the report")
	runCmd.Flags().String("target_date", "", "explicit report date (YYYY-MM-DD); empty auto-detects")
	runCmd.Flags().String("output_dir", "", "directory for the report file")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return err
	}
	if err := reportIssues(cfg); err != nil {
		return err
	}

	logger := newLogger().With("run_id", uuid.NewString())

	installMetrics(cfg, logger)
	defer func() {
		if err := metrics.Flush(); err != nil {
			logger.Warn("metrics flush failed", "err", err)
		}
	}()

	ctx := cmd.Context()
	res, err := report.Run(ctx, loader.New(cfg, logger), report.Options{
		ProductID:         cfg.ProductID,
		TargetDate:        cfg.TargetDate,
		OutputDir:         cfg.OutputDir,
		AggregateCategory: cfg.AggregateCategory,
		Logger:            logger,
	})
	if err != nil {
		return err
	}

	if err := archive(ctx, cfg, res, logger); err != nil {
		// The CSV already exists; an archive failure is reported but
		// does not undo the run.
		logger.Error("archive failed", "err", err)
		return fmt.Errorf("report written to %s, but archiving failed: %w", res.Path, err)
	}

	printSummary(cmd.OutOrStdout(), cfg.ProductID, res)
	return nil
}

// reportIssues prints validation findings and fails on error severity.
func reportIssues(cfg config.Config) error {
	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return fmt.Errorf("configuration is invalid")
	}
	return nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// installMetrics selects and installs the metrics backend; the nop
// backend stays in place on any failure.
func installMetrics(cfg config.Config, logger *slog.Logger) {
	switch cfg.Metrics.Backend {
	case "pushgateway":
		b, err := prompush.NewBackend(cfg.ProductID, cfg.Metrics.PushgatewayURL)
		if err != nil {
			logger.Warn("metrics: pushgateway init failed; using nop", "err", err)
			return
		}
		metrics.SetBackend(b)
		logger.Info("metrics: pushgateway enabled", "url", cfg.Metrics.PushgatewayURL)

	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:      cfg.Metrics.StatsdAddr,
			Namespace: cfg.Metrics.Namespace,
		})
		if err != nil {
			logger.Warn("metrics: datadog init failed; using nop", "err", err)
			return
		}
		metrics.SetBackend(b)
		logger.Info("metrics: datadog enabled", "addr", cfg.Metrics.StatsdAddr)

	case "", "none":
		// metrics disabled; nop backend remains

	default:
		logger.Warn("metrics: unknown backend; metrics disabled", "backend", cfg.Metrics.Backend)
	}
}

// archive upserts the finished row into the configured archive, if any.
func archive(ctx context.Context, cfg config.Config, res *report.Result, logger *slog.Logger) error {
	if cfg.Archive.Backend == "" || cfg.Archive.Backend == "none" {
		return nil
	}

	start := time.Now()
	repo, closeFn, err := storage.New(ctx, storage.Config{
		Backend: cfg.Archive.Backend,
		DSN:     cfg.Archive.DSN,
		Table:   cfg.Archive.Table,
	})
	if err == nil {
		defer closeFn()
		err = repo.UpsertReport(ctx, res.Header, res.Values)
	}
	metrics.RecordStep(cfg.ProductID, "archive", err, time.Since(start))
	if err != nil {
		return err
	}
	logger.Info("report archived",
		"backend", cfg.Archive.Backend, "table", cfg.Archive.Table)
	return nil
}
