// Package parser builds an ast.Program from a token stream.
//
// The grammar is line oriented:
//
//	line      = { label ":" } [ statement ] [ comment ] newline
//	statement = "MAKRO" name | "KONM" | "RST" operand | "RPA" | word [ operand ]
//	operand   = "#" value | "[" value "]" | value
//
// A bare word that is not a known opcode is taken as a macro call, a word
// followed by an operand is an instruction unless it names a defined macro.
package parser

import (
	"fmt"

	"asmodeus/internal/ast"
	"asmodeus/internal/token"
)

const (
	kwMacro    = "MAKRO"
	kwEndMacro = "KONM"
	kwReserve  = "RST"
	kwAllocate = "RPA"
)

// OpcodeSet answers whether a word is a known instruction.
type OpcodeSet interface {
	IsValid(name string) bool
}

type Options struct {
	Opcodes OpcodeSet
}

type Parser struct {
	toks   []token.Token
	pos    int
	opts   Options
	macros map[string]bool
	open   *ast.MacroDef
}

// Parse parses a complete token stream as produced by lexer.Tokenize.
func Parse(toks []token.Token, opts Options) (*ast.Program, error) {
	p := &Parser{toks: toks, opts: opts, macros: declaredMacros(toks)}
	return p.parseProgram()
}

func declaredMacros(toks []token.Token) map[string]bool {
	out := make(map[string]bool)
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].Kind == token.Ident && toks[i].Text == kwMacro && toks[i+1].Kind == token.Ident {
			out[toks[i+1].Text] = true
		}
	}
	return out
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	if len(p.toks) > 0 {
		last := p.toks[len(p.toks)-1]
		return token.Token{Kind: token.EOF, Line: last.Line, Col: last.Col + last.Len()}
	}
	return token.Token{Kind: token.EOF, Line: 1, Col: 1}
}

func (p *Parser) next() token.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.Newline {
			p.next()
			continue
		}
		elems, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		for _, el := range elems {
			p.emit(prog, el)
		}
	}
	if p.open != nil {
		return nil, &Error{
			Kind: UnterminatedMacro,
			Line: p.open.Line,
			Col:  p.open.Col,
			Len:  len([]rune(kwMacro)),
			Msg:  fmt.Sprintf("macro '%s' is missing %s", p.open.Name, kwEndMacro),
		}
	}
	return prog, nil
}

func (p *Parser) emit(prog *ast.Program, el ast.Element) {
	if def, ok := el.(*ast.MacroDef); ok {
		prog.Elements = append(prog.Elements, def)
		p.open = def
		return
	}
	if p.open != nil {
		p.open.Body = append(p.open.Body, el)
		return
	}
	prog.Elements = append(prog.Elements, el)
}

func (p *Parser) parseLine() ([]ast.Element, error) {
	var out []ast.Element
	for p.peek().Kind == token.Ident && p.peekN(1).Kind == token.Colon {
		name := p.next()
		p.next()
		out = append(out, &ast.LabelDef{Name: name.Text, Line: name.Line, Col: name.Col})
	}
	if p.peek().IsEOL() {
		return out, nil
	}

	word := p.next()
	if word.Kind != token.Ident {
		return nil, unexpected(word)
	}

	var el ast.Element
	switch word.Text {
	case kwMacro:
		if p.open != nil {
			return nil, &Error{Kind: NestedMacro, Line: word.Line, Col: word.Col, Len: word.Len(),
				Msg: fmt.Sprintf("macro '%s' cannot be nested in '%s'", p.peek().Text, p.open.Name)}
		}
		name := p.next()
		if name.Kind != token.Ident {
			return nil, unexpected(name)
		}
		el = &ast.MacroDef{Name: name.Text, Line: word.Line, Col: word.Col}
	case kwEndMacro:
		if p.open == nil {
			return nil, &Error{Kind: UnexpectedToken, Line: word.Line, Col: word.Col, Len: word.Len(),
				Msg: fmt.Sprintf("%s without %s", kwEndMacro, kwMacro)}
		}
		p.open = nil
	case kwReserve:
		op, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		if op == nil {
			return nil, &Error{Kind: InvalidOperand, Line: word.Line, Col: word.Col, Len: word.Len(),
				Msg: fmt.Sprintf("%s requires a value", kwReserve)}
		}
		el = &ast.Directive{Name: word.Text, Operand: op, Line: word.Line, Col: word.Col}
	case kwAllocate:
		el = &ast.Directive{Name: word.Text, Line: word.Line, Col: word.Col}
	default:
		op, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		el = p.statement(word, op)
	}

	if end := p.peek(); !end.IsEOL() {
		return nil, unexpected(end)
	}
	if el != nil {
		out = append(out, el)
	}
	return out, nil
}

func (p *Parser) statement(word token.Token, op *ast.Operand) ast.Element {
	known := p.opts.Opcodes != nil && p.opts.Opcodes.IsValid(word.Text)
	switch {
	case p.macros[word.Text] && !known:
		call := &ast.MacroCall{Name: word.Text, Line: word.Line, Col: word.Col}
		if op != nil {
			call.Args = []ast.Operand{*op}
		}
		return call
	case op == nil && !known:
		return &ast.MacroCall{Name: word.Text, Line: word.Line, Col: word.Col}
	default:
		return &ast.Instruction{Opcode: word.Text, Operand: op, Line: word.Line, Col: word.Col}
	}
}

// parseOperand returns nil when the statement ends without an operand.
func (p *Parser) parseOperand() (*ast.Operand, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.Newline, token.EOF:
		return nil, nil
	case token.Hash:
		p.next()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		return &ast.Operand{Kind: ast.OperandImmediate, Value: v.Text, Line: tok.Line, Col: tok.Col}, nil
	case token.LBracket:
		p.next()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Kind != token.RBracket {
			return nil, unexpected(closing)
		}
		return &ast.Operand{Kind: ast.OperandIndirect, Value: v.Text, Line: tok.Line, Col: tok.Col}, nil
	case token.Number:
		p.next()
		return &ast.Operand{Kind: ast.OperandDirect, Value: tok.Text, Line: tok.Line, Col: tok.Col}, nil
	case token.Ident:
		p.next()
		return &ast.Operand{Kind: ast.OperandSymbol, Value: tok.Text, Line: tok.Line, Col: tok.Col}, nil
	default:
		return nil, unexpected(tok)
	}
}

func (p *Parser) value() (token.Token, error) {
	v := p.next()
	if v.Kind != token.Number && v.Kind != token.Ident {
		return v, unexpected(v)
	}
	return v, nil
}

func unexpected(tok token.Token) *Error {
	if tok.Kind == token.EOF {
		return &Error{Kind: UnexpectedEndOfInput, Line: tok.Line, Col: tok.Col, Len: 1, Msg: "unexpected end of input"}
	}
	return &Error{
		Kind: UnexpectedToken,
		Line: tok.Line,
		Col:  tok.Col,
		Len:  max(tok.Len(), 1),
		Msg:  fmt.Sprintf("unexpected %s", tok.Describe()),
	}
}
