// Package ast describes a parsed Asmodeus program.
package ast

// OperandKind tells how an operand addresses its value.
type OperandKind uint8

const (
	// OperandImmediate is `#value`.
	OperandImmediate OperandKind = iota
	// OperandDirect is a bare address.
	OperandDirect
	// OperandIndirect is `[address]`.
	OperandIndirect
	// OperandSymbol is a bare label or constant name.
	OperandSymbol
)

func (k OperandKind) String() string {
	switch k {
	case OperandImmediate:
		return "immediate"
	case OperandDirect:
		return "direct"
	case OperandIndirect:
		return "indirect"
	case OperandSymbol:
		return "symbol"
	}
	return "unknown"
}

type Operand struct {
	Kind  OperandKind
	Value string
	Line  int
	Col   int
}

// Element is a top-level program item. Line and Col are 1-based.
type Element interface {
	Pos() (line, col int)
	element()
}

type Instruction struct {
	Opcode  string
	Operand *Operand
	Line    int
	Col     int
}

type MacroCall struct {
	Name string
	Args []Operand
	Line int
	Col  int
}

type LabelDef struct {
	Name string
	Line int
	Col  int
}

// Directive is a data declaration such as `RST 5` or `RPA`.
type Directive struct {
	Name    string
	Operand *Operand
	Line    int
	Col     int
}

// MacroDef spans from MAKRO to KONM.
type MacroDef struct {
	Name string
	Body []Element
	Line int
	Col  int
}

func (e *Instruction) Pos() (int, int) { return e.Line, e.Col }
func (e *MacroCall) Pos() (int, int)   { return e.Line, e.Col }
func (e *LabelDef) Pos() (int, int)    { return e.Line, e.Col }
func (e *Directive) Pos() (int, int)   { return e.Line, e.Col }
func (e *MacroDef) Pos() (int, int)    { return e.Line, e.Col }

func (*Instruction) element() {}
func (*MacroCall) element()   {}
func (*LabelDef) element()    {}
func (*Directive) element()   {}
func (*MacroDef) element()    {}

type Program struct {
	Elements []Element
}

// Macros returns the names of all macros defined in the program.
func (p *Program) Macros() map[string]*MacroDef {
	out := make(map[string]*MacroDef)
	for _, el := range p.Elements {
		if m, ok := el.(*MacroDef); ok {
			out[m.Name] = m
		}
	}
	return out
}
