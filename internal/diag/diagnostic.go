package diag

import (
	"asmodeus/internal/source"
)

// SourceTag identifies this engine as the producer of a diagnostic.
const SourceTag = "asmodeus-lsp"

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Source   string
}

// TextEdit replaces the text covered by Span with NewText.
type TextEdit struct {
	Span    source.Span
	NewText string
}

// WorkspaceEdit maps an opaque document identifier to ordered edits.
type WorkspaceEdit struct {
	Changes map[string][]TextEdit
}

// NewWorkspaceEdit creates an edit set holding edits for a single document.
func NewWorkspaceEdit(uri string, edits ...TextEdit) WorkspaceEdit {
	return WorkspaceEdit{Changes: map[string][]TextEdit{uri: edits}}
}

// Len returns the total number of edits.
func (w WorkspaceEdit) Len() int {
	n := 0
	for _, edits := range w.Changes {
		n += len(edits)
	}
	return n
}

// FixKind classifies an editor action.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactor:
		return "refactor"
	default:
		return "unknown"
	}
}

// Fix is an editor action: a titled edit set, optionally tied to the
// diagnostics it resolves.
type Fix struct {
	Title       string
	Kind        FixKind
	IsPreferred bool
	Diagnostics []Diagnostic
	Edit        WorkspaceEdit
}
