package fix

import (
	"fmt"
	"strings"

	"asmodeus/internal/diag"
	"asmodeus/internal/isa"
	"asmodeus/internal/source"
	"asmodeus/internal/suggest"
)

// Fixer builds quick fixes and refactors against one registry.
type Fixer struct {
	reg     *isa.Registry
	suggest *suggest.Engine
}

func NewFixer(reg *isa.Registry) *Fixer {
	return &Fixer{reg: reg, suggest: suggest.New(reg)}
}

// QuickFixFor proposes a replacement for the word flagged by an unknown
// instruction or undefined macro diagnostic. The word is read from between
// the first and last single quote of the message.
func (f *Fixer) QuickFixFor(d diag.Diagnostic, text, uri string) (diag.Fix, bool) {
	if !strings.Contains(d.Message, "Unknown instruction") && !strings.Contains(d.Message, "undefined macro") {
		return diag.Fix{}, false
	}
	unknown, ok := quoted(d.Message)
	if !ok {
		return diag.Fix{}, false
	}

	candidates := f.suggest.CommonFixes(unknown)
	if len(candidates) == 0 {
		if ctx, ok := suggest.ContextFromLine(source.Lines(text), d.Primary.Line); ok {
			candidates = f.suggest.ContextualAlternatives(ctx)
		}
	}
	for _, c := range candidates {
		if f.reg.IsValid(c) {
			return ReplaceSpan(fmt.Sprintf("Replace with '%s'", c), uri, d.Primary, c,
				Preferred(), Resolves(d)), true
		}
	}
	return diag.Fix{}, false
}

func quoted(msg string) (string, bool) {
	first := strings.IndexByte(msg, '\'')
	last := strings.LastIndexByte(msg, '\'')
	if first < 0 || first >= last {
		return "", false
	}
	return msg[first+1 : last], true
}

// CodeActions returns quick fixes for diagnostics followed by the refactors
// available at span.
func (f *Fixer) CodeActions(text string, span source.Span, diagnostics []diag.Diagnostic, uri string) []diag.Fix {
	var out []diag.Fix
	for _, d := range diagnostics {
		if fix, ok := f.QuickFixFor(d, text, uri); ok {
			out = append(out, fix)
		}
	}
	return append(out, f.Refactors(text, span, uri)...)
}
