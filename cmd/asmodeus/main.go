package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"asmodeus/internal/config"
	"asmodeus/internal/engine"
	"asmodeus/internal/prof"
	"asmodeus/internal/version"
)

// errProblemsFound makes the process exit with status 1 without printing
// anything beyond the diagnostics themselves.
var errProblemsFound = errors.New("problems found")

// app carries state shared by all subcommands.
type app struct {
	configPath string
	colorMode  string
	quiet      bool
	profiling  prof.Options

	cfg     config.Config
	session *prof.Session
}

func newRootCmd() *cobra.Command {
	return newApp().command()
}

func newApp() *app {
	return &app{cfg: config.Default()}
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "asmodeus",
		Short:         "Asmodeus assembly language tools",
		Long:          `Diagnostics, fixes and a language server for Asmodeus assembly`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.colorMode, "color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().BoolVar(&a.quiet, "quiet", false, "suppress non-essential output")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to asmodeus.toml (default: search upwards)")
	root.PersistentFlags().StringVar(&a.profiling.CPU, "cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().StringVar(&a.profiling.Mem, "mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().StringVar(&a.profiling.Trace, "runtime-trace", "", "write a runtime trace to file")

	root.AddCommand(
		a.newLSPCmd(),
		a.newDiagCmd(),
		a.newFixCmd(),
		a.newTokenizeCmd(),
		newSymbolsCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup() error {
	switch strings.ToLower(a.colorMode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", a.colorMode)
	}
	cfg, err := config.Resolve(a.configPath, ".")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.cfg = cfg

	if a.profiling.Enabled() {
		session, err := prof.Start(a.profiling)
		if err != nil {
			return err
		}
		a.session = session
	}
	return nil
}

// stopProfiling flushes profiles; it runs after the command whatever its
// outcome.
func (a *app) stopProfiling() {
	if err := a.session.Stop(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: profiling:", err)
	}
}

// engineOptions maps the configuration onto the engine.
func (a *app) engineOptions(maxDiagnostics int) engine.Options {
	return engine.Options{
		Extended:       a.cfg.Analysis.ExtendedInstructions,
		MaxDiagnostics: maxDiagnostics,
	}
}

func (a *app) infof(cmd *cobra.Command, format string, args ...any) {
	if a.quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := newApp()
	err := a.command().ExecuteContext(ctx)
	a.stopProfiling()
	stop()
	if err != nil {
		if !errors.Is(err, errProblemsFound) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
