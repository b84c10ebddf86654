// Package rename renames labels across a document.
package rename

import (
	"errors"
	"fmt"
	"strings"

	"asmodeus/internal/diag"
	"asmodeus/internal/isa"
	"asmodeus/internal/nav"
	"asmodeus/internal/source"
)

var (
	ErrInvalidName = errors.New("invalid symbol name: must start with a letter or underscore and contain only alphanumeric characters and underscores")
	ErrInstruction = errors.New("conflicts with instruction name")
	ErrReserved    = errors.New("is a reserved word")
)

// reserved register names, compared case-insensitively.
var reserved = map[string]bool{
	"AK":    true,
	"PC":    true,
	"SP":    true,
	"IR":    true,
	"MAR":   true,
	"MBR":   true,
	"FLAGS": true,
}

type Renamer struct {
	reg *isa.Registry
}

func New(reg *isa.Registry) *Renamer {
	return &Renamer{reg: reg}
}

// ValidateName reports why name cannot be used as a label, if it cannot.
func (r *Renamer) ValidateName(name string) error {
	switch {
	case !source.IsValidSymbolName(name):
		return ErrInvalidName
	case r.reg.IsValid(name):
		return fmt.Errorf("name '%s' %w", name, ErrInstruction)
	case reserved[strings.ToUpper(name)]:
		return fmt.Errorf("name '%s' %w", name, ErrReserved)
	}
	return nil
}

// Prepare returns the span of the renameable word under pos.
func (r *Renamer) Prepare(text string, pos source.Position) (source.Span, bool) {
	w, ok := source.WordAtPosition(text, pos)
	if !ok || r.reg.IsValid(w.Text) || !source.IsValidSymbolName(w.Text) {
		return source.Span{}, false
	}
	return w.Span(pos.Line), true
}

// Rename replaces every occurrence of the label under pos with newName.
// Either every occurrence gets one edit or the call fails as a whole.
func (r *Renamer) Rename(text string, pos source.Position, newName, uri string) (diag.WorkspaceEdit, bool) {
	w, ok := source.WordAtPosition(text, pos)
	if !ok {
		return diag.WorkspaceEdit{}, false
	}
	if r.reg.IsValid(w.Text) || !source.IsValidSymbolName(w.Text) {
		return diag.WorkspaceEdit{}, false
	}
	if r.ValidateName(newName) != nil {
		return diag.WorkspaceEdit{}, false
	}
	if hasConflict(text, w.Text, newName, pos) {
		return diag.WorkspaceEdit{}, false
	}

	refs := nav.ReferencesOf(w.Text, text, true)
	if len(refs) == 0 {
		return diag.WorkspaceEdit{}, false
	}
	lines := source.RuneLines(text)
	old := []rune(w.Text)
	edits := make([]diag.TextEdit, 0, len(refs))
	for _, ref := range refs {
		replacement := newName
		if source.IsLabelDeclaration(lines[ref.Line], ref.Start, old) {
			// the edit also covers the colon
			replacement = newName + ":"
			ref = source.NewSpan(ref.Line, ref.Start, ref.End+1)
		}
		edits = append(edits, diag.TextEdit{Span: ref, NewText: replacement})
	}
	return diag.NewWorkspaceEdit(uri, edits...), true
}

// hasConflict reports whether newName already labels a definition other than
// the one being renamed.
func hasConflict(text, oldName, newName string, pos source.Position) bool {
	for _, sym := range nav.DocumentSymbols(text) {
		if sym.Name != newName || sym.Name == oldName || sym.Span.Contains(pos) {
			continue
		}
		return true
	}
	return false
}
