package fix

import (
	"strings"

	"asmodeus/internal/diag"
	"asmodeus/internal/isa"
	"asmodeus/internal/source"
)

const (
	indent       = "    "
	todoComment  = "    ; TODO: Add comment"
	labelSnippet = "label:\n"
)

// Refactors lists the refactors offered for the line of span. Each is
// computed on its own.
func (f *Fixer) Refactors(text string, span source.Span, uri string) []diag.Fix {
	line, ok := source.LineAt(text, span.Line)
	if !ok {
		return nil
	}
	var out []diag.Fix
	for _, build := range []func([]rune, source.Span, string) (diag.Fix, bool){
		f.uppercase,
		addComment,
		formatLine,
		f.addLabel,
	} {
		if fix, ok := build(line, span, uri); ok {
			out = append(out, fix)
		}
	}
	return out
}

// uppercase rewrites the selected text, or the word under an empty
// selection, when its upper-case form is an instruction it does not match yet.
func (f *Fixer) uppercase(line []rune, span source.Span, uri string) (diag.Fix, bool) {
	target := span
	if span.Empty() {
		w, ok := source.WordAt(line, span.Start)
		if !ok {
			return diag.Fix{}, false
		}
		target = w.Span(span.Line)
	}
	if target.Start < 0 || target.End > len(line) || target.Empty() {
		return diag.Fix{}, false
	}
	selected := string(line[target.Start:target.End])
	upper := isa.Upper(selected)
	if upper == selected || !f.reg.IsValid(upper) {
		return diag.Fix{}, false
	}
	return ReplaceSpan("Convert to uppercase", uri, target, upper, WithKind(diag.FixKindRefactor)), true
}

func addComment(line []rune, span source.Span, uri string) (diag.Fix, bool) {
	s := string(line)
	if strings.ContainsRune(s, ';') || strings.TrimSpace(s) == "" {
		return diag.Fix{}, false
	}
	at := source.Position{Line: span.Line, Char: len(line)}
	return InsertText("Add comment", uri, at, todoComment, WithKind(diag.FixKindRefactor)), true
}

func formatLine(line []rune, span source.Span, uri string) (diag.Fix, bool) {
	s := string(line)
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.HasPrefix(s, indent) {
		return diag.Fix{}, false
	}
	return ReplaceSpan("Format instruction", uri, source.NewSpan(span.Line, 0, len(line)), indent+trimmed,
		WithKind(diag.FixKindRefactor)), true
}

func (f *Fixer) addLabel(line []rune, span source.Span, uri string) (diag.Fix, bool) {
	trimmed := strings.TrimSpace(string(line))
	if trimmed == "" || strings.ContainsRune(trimmed, ':') {
		return diag.Fix{}, false
	}
	if fields := strings.Fields(trimmed); !f.reg.IsValid(fields[0]) {
		return diag.Fix{}, false
	}
	at := source.Position{Line: span.Line}
	return InsertText("Add label above", uri, at, labelSnippet, WithKind(diag.FixKindRefactor)), true
}
