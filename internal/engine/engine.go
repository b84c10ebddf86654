// Package engine composes the analysis providers behind one façade.
//
// Every method is a pure function of its arguments: callers pass the full
// current text of a document and get results computed from scratch.
package engine

import (
	"asmodeus/internal/assist"
	"asmodeus/internal/diag"
	"asmodeus/internal/driver"
	"asmodeus/internal/fix"
	"asmodeus/internal/isa"
	"asmodeus/internal/nav"
	"asmodeus/internal/rename"
	"asmodeus/internal/semtok"
	"asmodeus/internal/source"
)

// DiagnosticsProducer validates documents.
type DiagnosticsProducer interface {
	Diagnostics(text string) []diag.Diagnostic
}

// TokenProducer produces semantic highlighting tokens.
type TokenProducer interface {
	SemanticTokens(text string) []semtok.Encoded
}

// NavigationProvider resolves labels.
type NavigationProvider interface {
	Definition(text string, pos source.Position) (source.Span, bool)
	References(text string, pos source.Position, includeDeclaration bool) []source.Span
	DocumentSymbols(text string) []nav.Symbol
	WorkspaceSymbols(docs map[string]string, query string) []nav.WorkspaceSymbol
}

// EditProducer builds edits: quick fixes, refactors and renames.
type EditProducer interface {
	CodeActions(text string, span source.Span, diagnostics []diag.Diagnostic, uri string) []diag.Fix
	PrepareRename(text string, pos source.Position) (source.Span, bool)
	Rename(text string, pos source.Position, newName, uri string) (diag.WorkspaceEdit, bool)
}

// AssistProvider answers interactive editor requests.
type AssistProvider interface {
	Hover(text string, pos source.Position) (assist.Hover, bool)
	Completion(text string, pos source.Position) []assist.Item
	SignatureHelp(text string, pos source.Position) (assist.Signature, bool)
}

// Analyzer is the full capability set.
type Analyzer interface {
	DiagnosticsProducer
	TokenProducer
	NavigationProvider
	EditProducer
	AssistProvider
}

// Engine wires the default providers around one registry.
type Engine struct {
	reg      *isa.Registry
	pipeline *driver.Pipeline
	fixer    *fix.Fixer
	renamer  *rename.Renamer
	assist   *assist.Assistant
}

var _ Analyzer = (*Engine)(nil)

type Options struct {
	// Extended enables MNO, DZI and MOD.
	Extended       bool
	MaxDiagnostics int
}

func DefaultOptions() Options {
	return Options{Extended: true}
}

// New builds an engine. The registry is constructed once here and shared by
// all providers.
func New(opts Options) *Engine {
	reg := isa.NewRegistry()
	if !opts.Extended {
		reg = reg.WithoutExtended()
	}
	return NewWithRegistry(reg, opts.MaxDiagnostics)
}

func NewWithRegistry(reg *isa.Registry, maxDiagnostics int) *Engine {
	return &Engine{
		reg:      reg,
		pipeline: driver.NewPipeline(reg, driver.WithMaxDiagnostics(maxDiagnostics)),
		fixer:    fix.NewFixer(reg),
		renamer:  rename.New(reg),
		assist:   assist.New(reg),
	}
}

func (e *Engine) Registry() *isa.Registry { return e.reg }

func (e *Engine) Pipeline() *driver.Pipeline { return e.pipeline }

func (e *Engine) Fixer() *fix.Fixer { return e.fixer }

func (e *Engine) Diagnostics(text string) []diag.Diagnostic {
	return e.pipeline.Diagnostics(text)
}

func (e *Engine) SemanticTokens(text string) []semtok.Encoded {
	return semtok.Encode(semtok.Scan(text, e.reg))
}

func (e *Engine) Definition(text string, pos source.Position) (source.Span, bool) {
	return nav.DefinitionAt(text, pos)
}

func (e *Engine) References(text string, pos source.Position, includeDeclaration bool) []source.Span {
	return nav.ReferencesAt(text, pos, includeDeclaration)
}

func (e *Engine) DocumentSymbols(text string) []nav.Symbol {
	return nav.DocumentSymbols(text)
}

func (e *Engine) WorkspaceSymbols(docs map[string]string, query string) []nav.WorkspaceSymbol {
	return nav.WorkspaceSymbols(docs, query)
}

func (e *Engine) CodeActions(text string, span source.Span, diagnostics []diag.Diagnostic, uri string) []diag.Fix {
	return e.fixer.CodeActions(text, span, diagnostics, uri)
}

func (e *Engine) PrepareRename(text string, pos source.Position) (source.Span, bool) {
	return e.renamer.Prepare(text, pos)
}

func (e *Engine) Rename(text string, pos source.Position, newName, uri string) (diag.WorkspaceEdit, bool) {
	return e.renamer.Rename(text, pos, newName, uri)
}

func (e *Engine) ValidateName(name string) error {
	return e.renamer.ValidateName(name)
}

func (e *Engine) Hover(text string, pos source.Position) (assist.Hover, bool) {
	return e.assist.Hover(text, pos)
}

func (e *Engine) Completion(text string, pos source.Position) []assist.Item {
	return e.assist.Completion(text, pos)
}

func (e *Engine) SignatureHelp(text string, pos source.Position) (assist.Signature, bool) {
	return e.assist.SignatureHelp(text, pos)
}
