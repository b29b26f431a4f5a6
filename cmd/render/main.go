// Command render fetches the temperature dataset once and writes the heat map
// page as a standalone HTML file.
//
// Usage:
//
//	go run ./cmd/render --out heatmap.html
//	go run ./cmd/render --scheme Spectral --out - > heatmap.html
//	go run ./cmd/render validate --url http://localhost:8000/global-temperature.json
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/adapter/source"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/pipeline"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
	"github.com/couchcryptid/temperature-heatmap/internal/scale"
	"github.com/spf13/cobra"
)

type options struct {
	url      string
	out      string
	scheme   string
	timeout  time.Duration
	logLevel string
}

func main() {
	if err := newRootCmd(observability.NewMetrics()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(metrics *observability.Metrics) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "render",
		Short:         "Render the global temperature heat map to an HTML file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, metrics)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.url, "url", domain.DefaultDatasetURL, "dataset URL")
	pf.DurationVar(&opts.timeout, "timeout", 0, "fetch timeout, 0 for none")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	f := cmd.Flags()
	f.StringVar(&opts.out, "out", "heatmap.html", `output file, or "-" for stdout`)
	f.StringVar(&opts.scheme, "scheme", scale.DefaultScheme, "colour scheme: RdYlBu, RdBu, Spectral")

	cmd.AddCommand(newValidateCmd(opts))
	return cmd
}

// runRender reports every failure exactly once on stderr. Pipeline failures
// are already logged by the pipeline; the rest are logged here.
func runRender(ctx context.Context, stdout, stderr io.Writer, opts *options, metrics *observability.Metrics) error {
	logger := observability.NewLoggerTo(stderr, opts.logLevel, "text")
	if _, err := scale.LookupScheme(opts.scheme); err != nil {
		logger.Error("invalid scheme", "error", err, "schemes", scale.Schemes())
		return err
	}

	loader := source.NewClient(opts.url, opts.timeout, logger)
	layout := render.DefaultLayout()
	p := pipeline.New(loader, nil, layout, opts.scheme, logger, metrics)

	chart, err := p.Run(ctx)
	if err != nil {
		return err
	}

	// The page is rendered in full before anything is written, so a failure
	// never leaves a truncated document behind.
	var page bytes.Buffer
	if err := render.Page(chart, layout).Render(ctx, &page); err != nil {
		logger.Error("render page failed", "error", err)
		return fmt.Errorf("render page: %w", err)
	}

	if opts.out == "-" {
		if _, err := page.WriteTo(stdout); err != nil {
			logger.Error("write page failed", "error", err)
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(opts.out, page.Bytes(), 0o644); err != nil {
		logger.Error("write page failed", "error", err, "path", opts.out)
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("heat map written", "path", opts.out, "cells", len(chart.Cells))
	return nil
}
