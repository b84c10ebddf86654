// Package driver runs the diagnostics pipeline: tokenize, parse, then
// validate, plus batch diagnosis of files for the command line.
package driver

import (
	"errors"

	"asmodeus/internal/ast"
	"asmodeus/internal/diag"
	"asmodeus/internal/isa"
	"asmodeus/internal/lexer"
	"asmodeus/internal/observ"
	"asmodeus/internal/parser"
	"asmodeus/internal/sema"
	"asmodeus/internal/source"
	"asmodeus/internal/token"
)

// Tokenizer turns source text into tokens.
type Tokenizer interface {
	Tokenize(text string) ([]token.Token, error)
}

// Parser turns tokens into a program.
type Parser interface {
	Parse(toks []token.Token) (*ast.Program, error)
}

// Located is implemented by collaborator errors that know where they happened.
// Line and column are 1-based.
type Located interface {
	Location() (line, col, length int)
}

type lexerTokenizer struct{}

func (lexerTokenizer) Tokenize(text string) ([]token.Token, error) { return lexer.Tokenize(text) }

type grammarParser struct{ opcodes parser.OpcodeSet }

func (p grammarParser) Parse(toks []token.Token) (*ast.Program, error) {
	return parser.Parse(toks, parser.Options{Opcodes: p.opcodes})
}

// Stage names the last pipeline stage that completed.
type Stage uint8

const (
	StageNone Stage = iota
	StageTokenize
	StageParse
	StageSema
)

// Result carries everything a pipeline run produced.
type Result struct {
	Diagnostics []diag.Diagnostic
	Tokens      []token.Token
	Program     *ast.Program
	Reached     Stage
}

type Pipeline struct {
	tokenizer      Tokenizer
	parser         Parser
	checker        *sema.Checker
	maxDiagnostics int
}

type Option func(*Pipeline)

// WithTokenizer replaces the built-in lexer.
func WithTokenizer(t Tokenizer) Option { return func(p *Pipeline) { p.tokenizer = t } }

// WithParser replaces the built-in parser.
func WithParser(ps Parser) Option { return func(p *Pipeline) { p.parser = ps } }

// WithMaxDiagnostics caps the number of reported diagnostics (0 = no limit).
func WithMaxDiagnostics(n int) Option { return func(p *Pipeline) { p.maxDiagnostics = n } }

func NewPipeline(reg *isa.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{
		tokenizer: lexerTokenizer{},
		parser:    grammarParser{opcodes: reg},
		checker:   sema.NewChecker(reg),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Diagnostics returns the ordered diagnostic list for text.
func (p *Pipeline) Diagnostics(text string) []diag.Diagnostic {
	return p.Run(text, nil).Diagnostics
}

// Run executes the pipeline. A lexer or parser failure yields a single
// diagnostic and stops the grammar stages; the line-level checks always run
// afterwards. timer may be nil.
func (p *Pipeline) Run(text string, timer *observ.Timer) *Result {
	bag := diag.NewBag(p.maxDiagnostics)
	r := diag.BagReporter{Bag: bag}
	res := &Result{}

	p.runGrammar(text, timer, r, res)

	idx := timer.Begin("lines")
	p.checker.CheckText(text, r)
	timer.End(idx, "")

	res.Diagnostics = bag.Items()
	return res
}

func (p *Pipeline) runGrammar(text string, timer *observ.Timer, r diag.Reporter, res *Result) {
	idx := timer.Begin("tokenize")
	toks, err := p.tokenizer.Tokenize(text)
	timer.End(idx, "")
	if err != nil {
		diag.ReportError(r, diag.LexUnexpectedChar, errorSpan(err), "Lexer error: "+err.Error()).Emit()
		return
	}
	res.Tokens = toks
	res.Reached = StageTokenize

	idx = timer.Begin("parse")
	prog, err := p.parser.Parse(toks)
	timer.End(idx, "")
	if err != nil {
		diag.ReportError(r, diag.SynUnexpectedToken, errorSpan(err), "Parser error: "+err.Error()).Emit()
		return
	}
	res.Program = prog
	res.Reached = StageParse

	idx = timer.Begin("sema")
	p.checker.CheckProgram(prog, r)
	timer.End(idx, "")
	res.Reached = StageSema
}

// errorSpan places a collaborator error; errors without a location point at
// the first character of the document.
func errorSpan(err error) source.Span {
	var loc Located
	if errors.As(err, &loc) {
		line, col, length := loc.Location()
		if line > 0 && col > 0 {
			return source.SpanFromLineCol(line, col, max(length, 1))
		}
	}
	return source.NewSpan(0, 0, 1)
}
