package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"asmodeus/internal/diag"
	"asmodeus/internal/source"
)

type palette struct {
	path, errSev, warnSev, infoSev, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		path:    mk(color.Bold),
		errSev:  mk(color.FgRed, color.Bold),
		warnSev: mk(color.FgYellow, color.Bold),
		infoSev: mk(color.FgCyan, color.Bold),
		code:    mk(color.FgMagenta),
		gutter:  mk(color.FgBlue),
		caret:   mk(color.FgRed, color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.errSev
	case diag.SevWarning:
		return p.warnSev
	default:
		return p.infoSev
	}
}

// Pretty prints every diagnostic as
//
//	path:line:col: SEV CODE: message
//
// followed by the source line and a caret underline of the span.
func Pretty(w io.Writer, reports []Report, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, r := range reports {
		if len(r.Diagnostics) == 0 {
			continue
		}
		lines := source.Lines(r.File.Text())
		path := opts.PathMode.format(r.File, opts.BaseDir)
		for _, d := range r.Diagnostics {
			if err := prettyOne(w, pal, path, lines, d, opts.Context); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettyOne(w io.Writer, pal palette, path string, lines []string, d diag.Diagnostic, context int) error {
	sp := d.Primary
	_, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", path, sp.Line+1, sp.Start+1),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)
	if err != nil {
		return err
	}
	if sp.Line < 0 || sp.Line >= len(lines) {
		return nil
	}
	first := max(sp.Line-max(context, 0), 0)
	width := len(strconv.Itoa(sp.Line + 1))
	for n := first; n <= sp.Line; n++ {
		if _, err := fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", width, n+1), expandTabs(lines[n])); err != nil {
			return err
		}
	}
	line := []rune(lines[sp.Line])
	start := min(sp.Start, len(line))
	pad := runewidth.StringWidth(expandTabs(string(line[:start])))
	underline := 1
	if sp.End > sp.Start {
		seg := line[start:min(sp.End, len(line))]
		underline = max(runewidth.StringWidth(expandTabs(string(seg))), 1)
	}
	marker := "^" + strings.Repeat("~", underline-1)
	_, err = fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marker))
	return err
}

// expandTabs renders tabs as four spaces.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// Short prints one line per diagnostic: path:line:col: CODE: message.
func Short(w io.Writer, reports []Report, opts PrettyOpts) error {
	for _, r := range reports {
		path := opts.PathMode.format(r.File, opts.BaseDir)
		for _, d := range r.Diagnostics {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, d.Primary.Line+1, d.Primary.Start+1, d.Code.ID(), d.Message); err != nil {
				return err
			}
		}
	}
	return nil
}
