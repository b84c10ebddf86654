package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"asmodeus/internal/cache"
	"asmodeus/internal/diagfmt"
	"asmodeus/internal/driver"
	"asmodeus/internal/engine"
	"asmodeus/internal/ui"
	"asmodeus/internal/version"
)

type diagFlags struct {
	format         string
	maxDiagnostics int
	jobs           int
	noCache        bool
	clearCache     bool
	uiMode         string
	timings        bool
	pathMode       string
	context        int
}

func (a *app) newDiagCmd() *cobra.Command {
	var f diagFlags
	cmd := &cobra.Command{
		Use:   "diag <file|dir>...",
		Short: "Report diagnostics for Asmodeus source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDiag(cmd, args, f)
		},
	}
	cmd.Flags().StringVar(&f.format, "format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().IntVar(&f.maxDiagnostics, "max-diagnostics", -1, "cap diagnostics per file (default from config)")
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "parallel workers (0 = config or GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "bypass the on-disk result cache")
	cmd.Flags().BoolVar(&f.clearCache, "clear-cache", false, "drop cached results before running")
	cmd.Flags().StringVar(&f.uiMode, "ui", "auto", "progress display (auto|on|off)")
	cmd.Flags().BoolVar(&f.timings, "timings", false, "print phase timings to stderr")
	cmd.Flags().StringVar(&f.pathMode, "path-mode", "auto", "path display (auto|absolute|relative|basename)")
	cmd.Flags().IntVar(&f.context, "context", 0, "source lines shown above each diagnostic")
	return cmd
}

func parsePathMode(s string) (diagfmt.PathMode, error) {
	switch s {
	case "", "auto":
		return diagfmt.PathModeAuto, nil
	case "absolute":
		return diagfmt.PathModeAbsolute, nil
	case "relative":
		return diagfmt.PathModeRelative, nil
	case "basename":
		return diagfmt.PathModeBasename, nil
	}
	return 0, fmt.Errorf("invalid --path-mode value %q", s)
}

func (a *app) runDiag(cmd *cobra.Command, args []string, f diagFlags) error {
	format, err := diagfmt.ParseFormat(f.format)
	if err != nil {
		return err
	}
	pathMode, err := parsePathMode(f.pathMode)
	if err != nil {
		return err
	}
	mode, err := readUIMode(f.uiMode)
	if err != nil {
		return err
	}
	paths, err := driver.CollectFiles(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		a.infof(cmd, "no Asmodeus sources found\n")
		return nil
	}

	maxDiagnostics := a.cfg.LSP.MaxDiagnostics
	if f.maxDiagnostics >= 0 {
		maxDiagnostics = f.maxDiagnostics
	}
	jobs := a.cfg.Diag.Jobs
	if f.jobs > 0 {
		jobs = f.jobs
	}
	opts := driver.DiagnoseOptions{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Timings:        f.timings,
		CacheSalt:      version.Version + "|extended=" + strconv.FormatBool(a.cfg.Analysis.ExtendedInstructions),
	}
	if a.cfg.Diag.Cache && !f.noCache {
		dc, err := cache.OpenDiskCache("asmodeus")
		if err != nil {
			a.infof(cmd, "warning: cache disabled: %v\n", err)
		} else {
			if f.clearCache {
				if err := dc.DropAll(); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
			}
			opts.Cache = dc
		}
	}

	pipeline := engine.New(a.engineOptions(maxDiagnostics)).Pipeline()
	useTUI := format != diagfmt.FormatJSON && !a.quiet && shouldUseTUI(mode)
	results, stats, err := diagnoseWithProgress(cmd.Context(), pipeline, paths, opts, useTUI)
	if err != nil {
		return err
	}

	reports := make([]diagfmt.Report, len(results))
	total := 0
	for i, r := range results {
		reports[i] = diagfmt.Report{File: r.File, Diagnostics: r.Diagnostics}
		total += len(r.Diagnostics)
	}
	cwd, _ := os.Getwd()
	pretty := diagfmt.PrettyOpts{
		Color:    !color.NoColor,
		PathMode: pathMode,
		BaseDir:  cwd,
		Context:  f.context,
	}
	jsonOpts := diagfmt.JSONOpts{PathMode: pathMode, BaseDir: cwd}
	if err := diagfmt.Write(cmd.OutOrStdout(), format, reports, pretty, jsonOpts); err != nil {
		return err
	}

	if f.timings {
		out := cmd.ErrOrStderr()
		for _, r := range results {
			if r.Timer == nil {
				continue
			}
			fmt.Fprintf(out, "%s\n%s", r.File.Path, r.Timer.Summary())
		}
		fmt.Fprintln(out, stats.String())
	}
	if total > 0 {
		return errProblemsFound
	}
	return nil
}

// diagnoseWithProgress runs the batch, driving the progress UI from its
// events when enabled.
func diagnoseWithProgress(ctx context.Context, p *driver.Pipeline, paths []string, opts driver.DiagnoseOptions, useTUI bool) ([]driver.FileResult, driver.Stats, error) {
	if !useTUI {
		return driver.DiagnoseFiles(ctx, p, paths, opts)
	}

	events := make(chan driver.Event)
	opts.Sink = driver.ChannelSink{Ch: events}

	var (
		results []driver.FileResult
		stats   driver.Stats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(events)
		var err error
		results, stats, err = driver.DiagnoseFiles(gctx, p, paths, opts)
		return err
	})
	g.Go(func() error {
		uiErr := ui.Run("diagnosing", paths, events, os.Stderr)
		// keep draining so the batch never blocks on a closed UI
		for range events {
		}
		if uiErr != nil && !errors.Is(uiErr, context.Canceled) {
			return fmt.Errorf("progress ui: %w", uiErr)
		}
		return nil
	})
	err := g.Wait()
	return results, stats, err
}
