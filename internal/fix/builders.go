// Package fix builds quick fixes and refactors for Asmodeus documents and
// applies their edits.
package fix

import (
	"asmodeus/internal/diag"
	"asmodeus/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithKind overrides fix classification.
func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) {
		f.Kind = kind
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// Resolves links the fix to the diagnostics it addresses.
func Resolves(ds ...diag.Diagnostic) Option {
	return func(f *diag.Fix) {
		f.Diagnostics = append(f.Diagnostics, ds...)
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// ReplaceSpan creates fix that replaces text covered by span in document uri.
func ReplaceSpan(title, uri string, span source.Span, newText string, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title: title,
		Kind:  diag.FixKindQuickFix,
		Edit:  diag.NewWorkspaceEdit(uri, diag.TextEdit{Span: span, NewText: newText}),
	}
	return applyOptions(fix, opts)
}

// InsertText creates fix that inserts text at pos in document uri.
func InsertText(title, uri string, pos source.Position, text string, opts ...Option) diag.Fix {
	return ReplaceSpan(title, uri, source.NewSpan(pos.Line, pos.Char, pos.Char), text, opts...)
}
