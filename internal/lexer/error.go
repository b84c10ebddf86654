package lexer

import "fmt"

// Error is a lexical failure at a 1-based line and column.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Msg, e.Line, e.Col)
}

// Location returns the 1-based position and length of the offending text.
func (e *Error) Location() (line, col, length int) { return e.Line, e.Col, 1 }
