// Package testkit holds checks shared by parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"asmodeus/internal/ast"
	"asmodeus/internal/source"
)

// CheckPositions verifies that every element and operand of prog points
// into text. Positions are one-based; names must appear verbatim at their
// recorded column.
func CheckPositions(prog *ast.Program, text string) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	lines := source.RuneLines(text)
	return checkElements(prog.Elements, lines)
}

func checkElements(elements []ast.Element, lines [][]rune) error {
	for i, el := range elements {
		var err error
		switch e := el.(type) {
		case *ast.Instruction:
			err = wordAt(lines, e.Line, e.Col, e.Opcode)
			if err == nil && e.Operand != nil {
				err = checkOperand(lines, e.Operand)
			}
		case *ast.LabelDef:
			err = wordAt(lines, e.Line, e.Col, e.Name)
		case *ast.MacroCall:
			err = wordAt(lines, e.Line, e.Col, e.Name)
			for j := range e.Args {
				if err != nil {
					break
				}
				err = checkOperand(lines, &e.Args[j])
			}
		case *ast.Directive:
			err = wordAt(lines, e.Line, e.Col, e.Name)
			if err == nil && e.Operand != nil {
				err = checkOperand(lines, e.Operand)
			}
		case *ast.MacroDef:
			err = inBounds(lines, e.Line, e.Col, 1)
			if err == nil {
				err = checkElements(e.Body, lines)
			}
		default:
			err = fmt.Errorf("unexpected element %T", el)
		}
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func checkOperand(lines [][]rune, op *ast.Operand) error {
	switch op.Kind {
	case ast.OperandDirect, ast.OperandSymbol:
		return wordAt(lines, op.Line, op.Col, op.Value)
	default:
		// the position is the '#' or '[' that opens the operand
		return inBounds(lines, op.Line, op.Col, 1)
	}
}

func inBounds(lines [][]rune, line, col, n int) error {
	if line < 1 || line > len(lines) {
		return fmt.Errorf("line %d outside 1..%d", line, len(lines))
	}
	if col < 1 || col-1+n > len(lines[line-1]) {
		return fmt.Errorf("%d:%d (+%d) outside line of %d runes", line, col, n, len(lines[line-1]))
	}
	return nil
}

func wordAt(lines [][]rune, line, col int, want string) error {
	n := len([]rune(want))
	if err := inBounds(lines, line, col, n); err != nil {
		return err
	}
	if got := string(lines[line-1][col-1 : col-1+n]); got != want {
		return fmt.Errorf("%d:%d holds %q, want %q", line, col, got, want)
	}
	return nil
}
