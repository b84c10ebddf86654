package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"asmodeus/internal/nav"
	"asmodeus/internal/source"
)

func newSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols <file>...",
		Short: "List label definitions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := source.NewFileSet()
			out := cmd.OutOrStdout()
			for _, path := range args {
				id, err := fs.Load(path)
				if err != nil {
					return fmt.Errorf("load %s: %w", path, err)
				}
				file := fs.Get(id)
				for _, sym := range nav.DocumentSymbols(file.Text()) {
					fmt.Fprintf(out, "%s:%d:%d\t%s\n", file.Path, sym.Span.Line+1, sym.Span.Start+1, sym.Name)
				}
			}
			return nil
		},
	}
}
