package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"asmodeus/internal/diag"
	"asmodeus/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ErrConflict is returned by ApplyEdits for overlapping edits.
var ErrConflict = errors.New("edits overlap")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode ApplyMode
	// DryRun computes the result without writing the file.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title     string
	Code      diag.Code
	Message   string
	Span      source.Span
	EditCount int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	Title  string
	Reason string
}

// ApplyResult aggregates applied and skipped fixes and the new content.
type ApplyResult struct {
	Path    string
	Applied []AppliedFix
	Skipped []SkippedFix
	Content string
}

// ApplyToFile builds quick fixes for diagnostics of file, applies the
// selected ones and writes the file back. Fixes whose edits overlap an
// already selected fix are skipped.
func (f *Fixer) ApplyToFile(file *source.File, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{Path: file.Path, Content: file.Text()}
	if file.Flags&source.FileVirtual != 0 {
		return result, fmt.Errorf("fix: %s is virtual", file.Path)
	}

	var selected []diag.TextEdit
	for _, d := range diagnostics {
		fx, ok := f.QuickFixFor(d, result.Content, file.Path)
		if !ok {
			continue
		}
		edits := fx.Edit.Changes[file.Path]
		if conflictsWithExisting(selected, edits) {
			result.Skipped = append(result.Skipped, SkippedFix{Title: fx.Title, Reason: "conflicts with previously selected edits"})
			continue
		}
		selected = append(selected, edits...)
		result.Applied = append(result.Applied, AppliedFix{
			Title:     fx.Title,
			Code:      d.Code,
			Message:   d.Message,
			Span:      d.Primary,
			EditCount: len(edits),
		})
		if opts.Mode == ApplyModeOnce {
			break
		}
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	content, err := ApplyEdits(result.Content, selected)
	if err != nil {
		return result, fmt.Errorf("apply %s: %w", file.Path, err)
	}
	result.Content = content
	if opts.DryRun {
		return result, nil
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(file.Path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(file.Path, file.Denormalize(content), mode); err != nil {
		return result, fmt.Errorf("write %s: %w", file.Path, err)
	}
	return result, nil
}

// ApplyEdits applies single-line edits to text. Positions refer to the
// original text; edits are applied back to front so earlier ones stay valid.
func ApplyEdits(text string, edits []diag.TextEdit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}
	sorted := append([]diag.TextEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[j].Span.Less(sorted[i].Span)
	})
	for i := 1; i < len(sorted); i++ {
		if spansConflict(sorted[i-1], sorted[i]) {
			return "", fmt.Errorf("%w at %s", ErrConflict, sorted[i].Span)
		}
	}

	lines := strings.Split(text, "\n")
	for _, e := range sorted {
		if e.Span.Line < 0 || e.Span.Line >= len(lines) {
			return "", fmt.Errorf("edit line %d out of range", e.Span.Line)
		}
		line := []rune(lines[e.Span.Line])
		if e.Span.Start < 0 || e.Span.End > len(line) || e.Span.End < e.Span.Start {
			return "", fmt.Errorf("edit span %s out of range", e.Span)
		}
		lines[e.Span.Line] = string(line[:e.Span.Start]) + e.NewText + string(line[e.Span.End:])
	}
	return strings.Join(lines, "\n"), nil
}

func conflictsWithExisting(existing []diag.TextEdit, edits []diag.TextEdit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev, cand) {
				return true
			}
		}
	}
	return false
}

// spansConflict reports whether two edits overlap. Spans are half-open.
// Two insertions never conflict; an insertion conflicts with a span that
// strictly contains its position.
func spansConflict(a, b diag.TextEdit) bool {
	if a.Span.Line != b.Span.Line {
		return false
	}
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart < aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}
