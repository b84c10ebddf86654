package parser

import "fmt"

type ErrorKind uint8

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEndOfInput
	InvalidOperand
	UnterminatedMacro
	NestedMacro
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case InvalidOperand:
		return "invalid operand"
	case UnterminatedMacro:
		return "unterminated macro"
	case NestedMacro:
		return "nested macro"
	}
	return "unknown"
}

// Error is a grammar failure at a 1-based line and column.
type Error struct {
	Kind ErrorKind
	Line int
	Col  int
	Len  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Msg, e.Line, e.Col)
}

// Location returns the 1-based position and length of the offending token.
func (e *Error) Location() (line, col, length int) { return e.Line, e.Col, max(e.Len, 1) }
