package token

import (
	"unicode/utf8"

	"asmodeus/internal/source"
)

// Token represents a single source token. Line and Col are 1-based, Col
// counts code points.
type Token struct {
	Kind Kind
	Line int
	Col  int
	Text string
}

// Len returns the token length in code points.
func (t Token) Len() int { return utf8.RuneCountInString(t.Text) }

// Span converts the token position into a zero-based source span.
func (t Token) Span() source.Span {
	return source.SpanFromLineCol(t.Line, t.Col, t.Len())
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsEOL reports whether the token ends a statement.
func (t Token) IsEOL() bool { return t.Kind == Newline || t.Kind == EOF }

// Describe renders the token for error messages.
func (t Token) Describe() string {
	switch t.Kind {
	case Ident, Number:
		return "'" + t.Text + "'"
	default:
		return t.Kind.String()
	}
}
