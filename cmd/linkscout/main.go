// cmd/linkscout/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"linkscout/internal/adapters/output"
	"linkscout/internal/core/domain"
	"linkscout/internal/core/ports"
	"linkscout/internal/core/usecases"
	"linkscout/internal/platform/config"
	"linkscout/internal/platform/logx"
	"linkscout/internal/platform/ui"
	"linkscout/internal/sources/google"
	"linkscout/internal/sources/rawlist"
	"linkscout/internal/whatsapp"
)

var (
	// Set with -ldflags at build time
	version = "dev"
	commit  = "none"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		os.Exit(2)
	}

	if cfg.PrintVersion {
		fmt.Printf("linkscout %s (%s)\n", version, commit)
		return
	}

	if cfg.Query == "" && !cfg.HasDirectInput() {
		fmt.Fprintln(os.Stderr, "Error: a search query or direct input is required")
		fmt.Fprintln(os.Stderr, "Usage: linkscout -q <query> | -i <file> | -l <link>")
		fmt.Fprintln(os.Stderr, "Try: linkscout -h for help")
		os.Exit(2)
	}

	logger := logx.NewWithLevel(logx.ParseLevel(cfg.LogLevel))

	logger.Debug("linkscout starting",
		"version", version,
		"workers", cfg.Workers,
		"pages", cfg.Pages,
		"timeout_s", cfg.TimeoutS,
	)

	ctx, cancel := rootContextWithSignals()
	defer cancel()

	pipeline := buildPipeline(cfg, logger)
	presenter := ui.NewPresenter()

	batch, err := runPipeline(ctx, pipeline, presenter, cfg, logger)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyInput):
			presenter.Failure("Nothing to check: the input contained no usable entries.")
		case errors.Is(err, domain.ErrNoCandidates):
			presenter.Failure("No invite links discovered for this query.")
		case errors.Is(err, context.Canceled):
			presenter.Failure("Interrupted.")
		default:
			logger.Err(err, "phase", "run")
			presenter.Failure(fmt.Sprintf("Run failed: %v", err))
		}
		os.Exit(1)
	}

	counts := pipeline.Classifier().Counts(batch)

	if !cfg.NoTable {
		if err := output.OutputTable(os.Stdout, batch, counts); err != nil {
			logger.Err(err, "phase", "output")
			os.Exit(1)
		}
	}
	presenter.Summary(batch, counts)

	if cfg.OutputCSV != "" {
		exporter := &output.CSVExporter{ActiveOnly: cfg.ActiveOnly}
		if err := writeCSV(cfg.OutputCSV, exporter, batch); err != nil {
			logger.Err(err, "phase", "export")
			os.Exit(1)
		}
		logger.Info("results exported", "file", cfg.OutputCSV, "rows", batch.Len())
	}
}

// buildPipeline wires the discoverer, aggregator, validator and coordinator
// from config. Keeping construction out of main makes the wiring readable.
func buildPipeline(cfg config.Config, logger logx.Logger) *usecases.Pipeline {
	discoverer := google.New(google.Config{
		PageDelay: cfg.PageDelay(),
		RateLimit: cfg.RateLimit,
	}, logger)

	aggregator := usecases.NewAggregator(usecases.AggregatorConfig{
		RateLimit: cfg.RateLimit,
	}, logger)

	checker := whatsapp.New(whatsapp.Config{
		Timeout:   cfg.Timeout(),
		ProbeLogo: cfg.ProbeLogos,
		RateLimit: cfg.RateLimit,
	}, logger)

	coordinator := usecases.NewCoordinator(checker, cfg.Workers, logger)

	return usecases.NewPipeline(usecases.PipelineOptions{
		Discoverer:  discoverer,
		Aggregator:  aggregator,
		Coordinator: coordinator,
		Logger:      logger,
	})
}

// runPipeline picks the entry point: direct input validates as-is, otherwise
// the query drives discovery.
func runPipeline(ctx context.Context, pipeline *usecases.Pipeline, presenter *ui.Presenter, cfg config.Config, logger logx.Logger) (*domain.ValidationBatch, error) {
	if cfg.HasDirectInput() {
		items := append([]string(nil), cfg.Links...)
		if cfg.InputFile != "" {
			fromFile, err := rawlist.Load(cfg.InputFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load input file: %w", err)
			}
			items = append(items, fromFile...)
		}
		presenter.Header(describeInput(cfg, len(items)))
		return pipeline.RunList(ctx, items, presenter.Progress())
	}

	presenter.Header(fmt.Sprintf("query %q (%d pages)", cfg.Query, cfg.Pages))
	return pipeline.RunQuery(ctx, cfg.Query, cfg.Pages, presenter.Progress())
}

func describeInput(cfg config.Config, total int) string {
	var parts []string
	if cfg.InputFile != "" {
		parts = append(parts, cfg.InputFile)
	}
	if len(cfg.Links) > 0 {
		parts = append(parts, fmt.Sprintf("%d links from flags", len(cfg.Links)))
	}
	return fmt.Sprintf("%s (%d candidates)", strings.Join(parts, " + "), total)
}

// writeCSV writes the batch to path through the exporter port, creating
// parent directories as needed.
func writeCSV(path string, exporter ports.Exporter, batch *domain.ValidationBatch) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	return exporter.Export(f, batch)
}

// rootContextWithSignals creates a root context cancelled by SIGINT/SIGTERM.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanup := func() {
		signal.Stop(ch)
		baseCancel()
	}

	return base, cleanup
}
