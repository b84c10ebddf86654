package parser_test

import (
	"errors"
	"testing"

	"asmodeus/internal/ast"
	"asmodeus/internal/lexer"
	"asmodeus/internal/parser"
)

type opcodes map[string]bool

func (o opcodes) IsValid(name string) bool { return o[name] }

var testOpcodes = opcodes{"POB": true, "DOD": true, "STP": true, "SOB": true, "WYJSCIE": true}

func parse(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	return parser.Parse(toks, parser.Options{Opcodes: testOpcodes})
}

func TestParseProgram(t *testing.T) {
	prog, err := parse(t, "start:\n    POB #42\n    DOD [x]\n    WYJSCIE\n    SOB start\nx: RST 5\ny: RPA\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Elements) != 9 {
		t.Fatalf("expected 9 elements, got %d", len(prog.Elements))
	}
	if lbl, ok := prog.Elements[0].(*ast.LabelDef); !ok || lbl.Name != "start" {
		t.Fatalf("expected label start, got %#v", prog.Elements[0])
	}
	pob, ok := prog.Elements[1].(*ast.Instruction)
	if !ok || pob.Opcode != "POB" || pob.Operand == nil || pob.Operand.Kind != ast.OperandImmediate || pob.Operand.Value != "42" {
		t.Fatalf("unexpected POB element %#v", prog.Elements[1])
	}
	if pob.Line != 2 || pob.Col != 5 {
		t.Fatalf("unexpected POB position %d:%d", pob.Line, pob.Col)
	}
	dod := prog.Elements[2].(*ast.Instruction)
	if dod.Operand.Kind != ast.OperandIndirect || dod.Operand.Value != "x" {
		t.Fatalf("unexpected DOD operand %#v", dod.Operand)
	}
	if out := prog.Elements[3].(*ast.Instruction); out.Operand != nil {
		t.Fatalf("WYJSCIE must have no operand")
	}
	if d, ok := prog.Elements[6].(*ast.Directive); !ok || d.Name != "RST" || d.Operand.Value != "5" {
		t.Fatalf("unexpected directive %#v", prog.Elements[6])
	}
}

func TestUnknownWordWithOperandIsInstruction(t *testing.T) {
	prog, err := parse(t, "DOX #42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ins, ok := prog.Elements[0].(*ast.Instruction); !ok || ins.Opcode != "DOX" {
		t.Fatalf("expected instruction DOX, got %#v", prog.Elements[0])
	}
}

func TestBareUnknownWordIsMacroCall(t *testing.T) {
	prog, err := parse(t, "    INVALID_INST ; comment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call, ok := prog.Elements[0].(*ast.MacroCall); !ok || call.Name != "INVALID_INST" {
		t.Fatalf("expected macro call, got %#v", prog.Elements[0])
	}
}

func TestMacroDefinition(t *testing.T) {
	prog, err := parse(t, "MAKRO dodaj_dwa\n    DOD #2\nKONM\nPOB #1\ndodaj_dwa\ndodaj_dwa x\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	macros := prog.Macros()
	def, ok := macros["dodaj_dwa"]
	if !ok || len(def.Body) != 1 {
		t.Fatalf("expected macro with one body element, got %#v", macros)
	}
	if len(prog.Elements) != 4 {
		t.Fatalf("expected 4 top-level elements, got %d", len(prog.Elements))
	}
	call, ok := prog.Elements[3].(*ast.MacroCall)
	if !ok || len(call.Args) != 1 {
		t.Fatalf("expected macro call with argument, got %#v", prog.Elements[3])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind parser.ErrorKind
		line int
		col  int
	}{
		{"    POB POB POB", parser.UnexpectedToken, 1, 13},
		{"POB #", parser.UnexpectedEndOfInput, 1, 6},
		{"POB [12", parser.UnexpectedEndOfInput, 1, 8},
		{"42", parser.UnexpectedToken, 1, 1},
		{"MAKRO m\nPOB #1\n", parser.UnterminatedMacro, 1, 1},
		{"KONM", parser.UnexpectedToken, 1, 1},
		{"x: RST", parser.InvalidOperand, 1, 4},
	}
	for _, tt := range tests {
		_, err := parse(t, tt.src)
		var perr *parser.Error
		if !errors.As(err, &perr) {
			t.Fatalf("%q: expected *parser.Error, got %v", tt.src, err)
		}
		if perr.Kind != tt.kind || perr.Line != tt.line || perr.Col != tt.col {
			t.Fatalf("%q: got %v at %d:%d, want %v at %d:%d", tt.src, perr.Kind, perr.Line, perr.Col, tt.kind, tt.line, tt.col)
		}
	}
}
