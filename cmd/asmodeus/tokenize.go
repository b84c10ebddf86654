package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"asmodeus/internal/engine"
	"asmodeus/internal/semtok"
	"asmodeus/internal/source"
)

func (a *app) newTokenizeCmd() *cobra.Command {
	var encoded bool
	cmd := &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Print semantic highlighting tokens of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := source.NewFileSet()
			id, err := fs.Load(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			file := fs.Get(id)
			eng := engine.New(a.engineOptions(0))
			out := cmd.OutOrStdout()

			if encoded {
				data, err := semtok.Flatten(eng.SemanticTokens(file.Text()))
				if err != nil {
					return err
				}
				for i := 0; i+5 <= len(data); i += 5 {
					fmt.Fprintf(out, "%d %d %d %d %d\n", data[i], data[i+1], data[i+2], data[i+3], data[i+4])
				}
				return nil
			}

			lines := source.RuneLines(file.Text())
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, tok := range semtok.Scan(file.Text(), eng.Registry()) {
				text := string(lines[tok.Line][tok.Char : tok.Char+tok.Length])
				fmt.Fprintf(tw, "%d:%d\t%s\t%q\n", tok.Line+1, tok.Char+1, tok.Type, text)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&encoded, "encoded", false, "print delta-encoded integers as sent to editors")
	return cmd
}

