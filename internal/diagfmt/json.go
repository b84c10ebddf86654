package diagfmt

import (
	"encoding/json"
	"io"

	"asmodeus/internal/diag"
)

// LocationJSON is a 1-based location; EndCol is exclusive.
type LocationJSON struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	StartCol int    `json:"start_col"`
	EndCol   int    `json:"end_col"`
}

// DiagnosticJSON is one diagnostic in JSON output.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title,omitempty"`
	Message  string       `json:"message"`
	Source   string       `json:"source"`
	Location LocationJSON `json:"location"`
}

// DiagnosticsOutput is the root JSON object.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   bool             `json:"truncated,omitempty"`
}

// BuildJSON converts reports to the JSON document without writing it.
func BuildJSON(reports []Report, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	for _, r := range reports {
		path := opts.PathMode.format(r.File, opts.BaseDir)
		for _, d := range r.Diagnostics {
			out.Count++
			if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
				out.Truncated = true
				continue
			}
			out.Diagnostics = append(out.Diagnostics, toJSON(path, d))
		}
	}
	return out
}

func toJSON(path string, d diag.Diagnostic) DiagnosticJSON {
	return DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Title:    d.Code.Title(),
		Message:  d.Message,
		Source:   d.Source,
		Location: LocationJSON{
			File:     path,
			Line:     d.Primary.Line + 1,
			StartCol: d.Primary.Start + 1,
			EndCol:   d.Primary.End + 1,
		},
	}
}

// JSON writes reports as an indented JSON document.
func JSON(w io.Writer, reports []Report, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSON(reports, opts))
}

// Write dispatches to the renderer selected by format.
func Write(w io.Writer, format Format, reports []Report, pretty PrettyOpts, jsonOpts JSONOpts) error {
	switch format {
	case FormatJSON:
		return JSON(w, reports, jsonOpts)
	case FormatShort:
		return Short(w, reports, pretty)
	default:
		return Pretty(w, reports, pretty)
	}
}
