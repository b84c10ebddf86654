package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"asmodeus/internal/lsp"
	"asmodeus/internal/metrics"
	"asmodeus/internal/version"
)

func (a *app) newLSPCmd() *cobra.Command {
	var (
		logLevel    string
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the Asmodeus language server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runLSP(cmd.Context(), logLevel, metricsAddr)
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level written to stderr (debug|info|warn|error)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9464")
	return cmd
}

func newLogger(level string, trace bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	if trace || lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
		if trace {
			lvl = zapcore.DebugLevel
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	// stdout carries the protocol
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func (a *app) runLSP(ctx context.Context, logLevel, metricsAddr string) error {
	logger, err := newLogger(logLevel, a.cfg.LSP.Trace)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	collector := metrics.NewCollector("asmodeus", logger)
	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Debounce: a.cfg.LSP.Debounce(),
		Analysis: a.engineOptions(a.cfg.LSP.MaxDiagnostics),
		Trace:    a.cfg.LSP.Trace,
		Version:  version.Version,
		Logger:   logger,
		Metrics:  collector,
	})
	logger.Info("starting language server",
		zap.String("version", version.Version),
		zap.String("config", a.cfg.Path))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// the metrics server lives as long as the session
		defer cancel()
		return server.Run(gctx)
	})
	if metricsAddr != "" {
		g.Go(func() error {
			if err := collector.Serve(gctx, metricsAddr); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
			return nil
		})
	}

	err = g.Wait()
	switch {
	case err == nil, errors.Is(err, lsp.ErrExit):
		return nil
	case errors.Is(err, lsp.ErrExitWithoutShutdown):
		return errors.New("lsp exit without shutdown")
	default:
		return err
	}
}
