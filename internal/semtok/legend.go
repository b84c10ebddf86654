// Package semtok produces semantic highlighting tokens for Asmodeus source.
//
// The scanner works per line on raw text and does not depend on the lexer,
// so highlighting keeps working while the document has syntax errors.
package semtok

// Type is a semantic token type; its value is the index into Legend.
type Type uint32

const (
	TypeKeyword Type = iota
	TypeFunction
	TypeNumber
	TypeOperator
	TypeComment
)

// Legend lists token type names in wire order.
var Legend = []string{"keyword", "function", "number", "operator", "comment"}

// Modifiers is always empty; no modifiers are defined.
var Modifiers = []string{}

func (t Type) String() string {
	if int(t) < len(Legend) {
		return Legend[t]
	}
	return "unknown"
}
