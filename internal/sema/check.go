// Package sema validates parsed programs and raw source lines against the
// instruction set.
package sema

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"asmodeus/internal/ast"
	"asmodeus/internal/diag"
	"asmodeus/internal/isa"
	"asmodeus/internal/source"
)

type Checker struct {
	reg *isa.Registry
}

func NewChecker(reg *isa.Registry) *Checker {
	return &Checker{reg: reg}
}

// CheckProgram reports SEM001-SEM004 for every element of prog, including
// the bodies of macro definitions. Each element is checked on its own.
func (c *Checker) CheckProgram(prog *ast.Program, r diag.Reporter) {
	if prog == nil {
		return
	}
	macros := prog.Macros()
	for _, el := range prog.Elements {
		c.checkElement(el, macros, r)
		if def, ok := el.(*ast.MacroDef); ok {
			for _, inner := range def.Body {
				c.checkElement(inner, macros, r)
			}
		}
	}
}

func (c *Checker) checkElement(el ast.Element, macros map[string]*ast.MacroDef, r diag.Reporter) {
	switch el := el.(type) {
	case *ast.Instruction:
		c.checkInstruction(el, r)
	case *ast.MacroCall:
		if _, defined := macros[el.Name]; defined {
			return
		}
		if looksLikeOpcode(el.Name) {
			diag.ReportError(r, diag.SemUndefinedMacro,
				source.SpanFromLineCol(el.Line, el.Col, runeLen(el.Name)),
				fmt.Sprintf("Unknown instruction or undefined macro: '%s'", el.Name)).Emit()
		}
	}
}

func (c *Checker) checkInstruction(ins *ast.Instruction, r diag.Reporter) {
	spec, ok := c.reg.Lookup(ins.Opcode)
	if !ok {
		diag.ReportError(r, diag.SemUnknownInstruction,
			source.SpanFromLineCol(ins.Line, ins.Col, runeLen(ins.Opcode)),
			fmt.Sprintf("Unknown instruction: '%s'", ins.Opcode)).Emit()
		return
	}
	after := source.SpanFromLineCol(ins.Line, ins.Col+runeLen(ins.Opcode), 1)
	switch {
	case spec.Operand == isa.OperandNone && ins.Operand != nil:
		diag.ReportError(r, diag.SemUnexpectedOperand, after,
			fmt.Sprintf("Instruction '%s' does not take operands", ins.Opcode)).Emit()
	case spec.Operand.TakesOperand() && ins.Operand == nil:
		diag.ReportError(r, diag.SemMissingOperand, after,
			fmt.Sprintf("Instruction '%s' requires an operand", ins.Opcode)).Emit()
	}
}

// CheckText runs the line-level checks SEM005-SEM007 over raw text. They do
// not depend on a successful parse.
func (c *Checker) CheckText(text string, r diag.Reporter) {
	for n, line := range source.RuneLines(text) {
		code := source.CodePart(line)
		if col, bad, ok := firstInvalidChar(code); ok {
			diag.ReportError(r, diag.SemInvalidCharacter, source.NewSpan(n, col, col+1),
				fmt.Sprintf("Invalid character '%c' in code", bad)).Emit()
		}
		c.checkLabel(n, code, r)
	}
}

func (c *Checker) checkLabel(n int, code []rune, r diag.Reporter) {
	trimmedStart := source.LeadingSpace(code)
	rest := code[trimmedStart:]
	colon := -1
	for i, ch := range rest {
		if ch == ':' {
			colon = i
			break
		}
	}
	if colon < 0 {
		return
	}
	name := strings.TrimSpace(string(rest[:colon]))
	span := source.NewSpan(n, trimmedStart, trimmedStart+runeLen(name))
	switch {
	case !source.IsValidSymbolName(name):
		diag.ReportError(r, diag.SemInvalidLabelName, span,
			fmt.Sprintf("Invalid label name '%s'. Labels must start with a letter or underscore and contain only alphanumeric characters and underscores", name)).Emit()
	case c.reg.IsValid(name):
		diag.ReportError(r, diag.SemLabelIsInstruction, span,
			fmt.Sprintf("Label name '%s' conflicts with instruction name", name)).Emit()
	}
}

// AllowedInCode reports whether r may appear in the code part of a line.
func AllowedInCode(r rune) bool {
	switch r {
	case '#', '[', ']', ':', ' ', '\t', '\r':
		return true
	}
	return source.IsWordChar(r)
}

func firstInvalidChar(code []rune) (int, rune, bool) {
	for i, r := range code {
		if !AllowedInCode(r) {
			return i, r, true
		}
	}
	return 0, 0, false
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// looksLikeOpcode reports whether name is made only of upper-case letters
// and underscores.
func looksLikeOpcode(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r != '_' && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
