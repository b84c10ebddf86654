// Package version reports build information of the asmodeus binary.
package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Info is the build information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// Colored renders v with each numeric component in its own color. Anything
// after the patch number is printed as is.
func Colored(v string) string {
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2]) + suffix
}

// Write prints info as text or, with format "json", as a JSON object.
func Write(w io.Writer, info Info, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "", "text":
		if _, err := fmt.Fprintf(w, "asmodeus %s\n", Colored(info.Version)); err != nil {
			return err
		}
		if info.GitCommit != "" {
			if _, err := fmt.Fprintf(w, "commit: %s\n", info.GitCommit); err != nil {
				return err
			}
		}
		if info.BuildDate != "" {
			if _, err := fmt.Fprintf(w, "built:  %s\n", info.BuildDate); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "go:     %s\n", info.GoVersion)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
