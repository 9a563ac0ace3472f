package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/qainsight/internal/adapters/loader"
	app "github.com/okian/qainsight/internal/app"
	"github.com/okian/qainsight/internal/config"
	"github.com/okian/qainsight/internal/domain/insight"
	"github.com/okian/qainsight/pkg/logger"
	"github.com/okian/qainsight/pkg/metrics"
)

var errNoInput = errors.New("input_path is required (set QAINSIGHT_INPUT_PATH)")

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, os.Stdout, logger.Named("qainsight")); err != nil {
		os.Stderr.WriteString("report failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// run loads the configured export, writes the report to out and, when
// configured, dumps metrics to a textfile.
func run(ctx context.Context, cfg *config.Config, out io.Writer, log logger.Logger) error {
	if cfg.InputPath == "" {
		return errNoInput
	}

	tbl, err := loader.New(loader.WithLogger(log.Named("loader"))).LoadFile(ctx, cfg.InputPath)
	if err != nil {
		return err
	}

	svc, err := app.New(
		app.WithLogger(log.Named("pipeline")),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithAliases(cfg.Aliases),
		app.WithGroupLabels(cfg.FallbackGroup, cfg.DefaultGroup),
		app.WithTitle(cfg.ReportTitle),
		app.WithExtractorOptions(
			insight.WithMaxInsights(cfg.MaxInsights),
			insight.WithMinTextLength(cfg.MinTextLength),
			insight.WithInsightLength(cfg.MinInsightLength, cfg.MaxInsightLength),
			insight.WithMatchesPerFamily(cfg.MatchesPerFamily),
		),
	)
	if err != nil {
		return err
	}

	doc, err := svc.Generate(ctx, tbl, cfg.Scope)
	if err != nil {
		return err
	}
	body, err := svc.Render(doc, cfg.Format)
	if err != nil {
		return err
	}
	if _, err := out.Write(body); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn(ctx, "metrics textfile not written", logger.String("path", cfg.MetricsTextfile), logger.Error(err))
		}
	}
	return nil
}
