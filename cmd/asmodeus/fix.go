package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"asmodeus/internal/engine"
	"asmodeus/internal/fix"
	"asmodeus/internal/source"
)

func (a *app) newFixCmd() *cobra.Command {
	var (
		all    bool
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "fix <file>",
		Short: "Apply quick fixes to a source file",
		Long:  `Apply the preferred quick fix of the first fixable diagnostic, or of every one with --all`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := fix.ApplyModeOnce
			if all {
				mode = fix.ApplyModeAll
			}
			return a.runFix(cmd, args[0], fix.ApplyOptions{Mode: mode, DryRun: dryRun})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "apply every non-conflicting fix")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the fixed text instead of writing the file")
	return cmd
}

func (a *app) runFix(cmd *cobra.Command, path string, opts fix.ApplyOptions) error {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(id)

	eng := engine.New(a.engineOptions(0))
	diagnostics := eng.Diagnostics(file.Text())
	result, err := eng.Fixer().ApplyToFile(file, diagnostics, opts)
	return handleApplyResult(cmd.OutOrStdout(), result, err, opts.DryRun)
}

func handleApplyResult(out io.Writer, result *fix.ApplyResult, err error, dryRun bool) error {
	if errors.Is(err, fix.ErrNoFixes) {
		fmt.Fprintln(out, "No applicable fixes found.")
		return nil
	}
	if err != nil {
		return err
	}

	title := color.New(color.FgGreen, color.Bold)
	verb := "Applied"
	if dryRun {
		verb = "Would apply"
	}
	title.Fprintf(out, "%s %d fix(es):\n", verb, len(result.Applied))
	for _, af := range result.Applied {
		fmt.Fprintf(out, "  %s:%d:%d %s [%s]\n", result.Path, af.Span.Line+1, af.Span.Start+1, af.Title, af.Code.ID())
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped %d fix(es):\n", len(result.Skipped))
		for _, sk := range result.Skipped {
			fmt.Fprintf(out, "  %s: %s\n", sk.Title, sk.Reason)
		}
	}
	if dryRun {
		fmt.Fprintln(out, "---")
		fmt.Fprint(out, result.Content)
		if len(result.Content) > 0 && result.Content[len(result.Content)-1] != '\n' {
			fmt.Fprintln(out)
		}
	}
	return nil
}
