// Package diagfmt renders diagnostics for terminals and tools.
package diagfmt

import (
	"fmt"

	"asmodeus/internal/diag"
	"asmodeus/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths and shortens long absolute ones.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) format(f *source.File, baseDir string) string {
	switch m {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", baseDir)
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// Format selects a renderer.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatShort  Format = "short"
	FormatJSON   Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPretty, FormatShort, FormatJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want pretty, short or json)", s)
}

// Report is the diagnostics of one file.
type Report struct {
	File        *source.File
	Diagnostics []diag.Diagnostic
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string
	// Context is the number of source lines shown above the flagged line.
	Context int
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	// Max truncates the output; 0 keeps everything.
	Max int
}
