package source

import (
	"fmt"
)

// Span is a half-open [Start, End) character range on a single line.
type Span struct {
	Line  int
	Start int
	End   int
}

// NewSpan builds a span, clamping End so that End >= Start.
func NewSpan(line, start, end int) Span {
	if end < start {
		end = start
	}
	return Span{Line: line, Start: start, End: end}
}

// SpanFromLineCol converts a 1-based line/column of a token of the given
// length into a zero-based span.
func SpanFromLineCol(line, col, length int) Span {
	start := max(col-1, 0)
	return NewSpan(max(line-1, 0), start, start+max(length, 0))
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether pos lies inside the span. The end position is
// included so a cursor placed right after a word still hits it.
func (s Span) Contains(pos Position) bool {
	return pos.Line == s.Line && pos.Char >= s.Start && pos.Char <= s.End
}

// StartPos returns the first position of the span.
func (s Span) StartPos() Position { return Position{Line: s.Line, Char: s.Start} }

// EndPos returns the position right after the span.
func (s Span) EndPos() Position { return Position{Line: s.Line, Char: s.End} }

// Less orders spans by document position.
func (s Span) Less(other Span) bool {
	if s.Line != other.Line {
		return s.Line < other.Line
	}
	if s.Start != other.Start {
		return s.Start < other.Start
	}
	return s.End < other.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Line, s.Start, s.End)
}
