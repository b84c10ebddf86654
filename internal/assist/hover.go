package assist

import (
	"fmt"
	"strings"

	"asmodeus/internal/isa"
	"asmodeus/internal/nav"
	"asmodeus/internal/source"
)

// Hover is markdown describing the word at Span.
type Hover struct {
	Markdown string
	Span     source.Span
}

// Hover describes the instruction or label under pos.
func (a *Assistant) Hover(text string, pos source.Position) (Hover, bool) {
	w, ok := source.WordAtPosition(text, pos)
	if !ok {
		return Hover{}, false
	}
	if spec, ok := a.reg.Lookup(w.Text); ok {
		return Hover{Markdown: InstructionMarkdown(spec), Span: w.Span(pos.Line)}, true
	}
	if label, ok := nav.LabelInfo(w.Text, text); ok {
		return Hover{Markdown: LabelMarkdown(label), Span: w.Span(pos.Line)}, true
	}
	return Hover{}, false
}

// InstructionMarkdown renders the hover card of an instruction.
func InstructionMarkdown(spec isa.Spec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", spec.Name)
	if spec.Extended {
		b.WriteString(" *(Extended)*")
	}
	fmt.Fprintf(&b, "\n\n**Operation:** `%s`", spec.Operation)
	fmt.Fprintf(&b, "\n\n**Category:** %s", spec.Category)
	fmt.Fprintf(&b, "\n\n**Description:** %s", spec.Description)
	if doc := operandDoc(spec.Operand); doc != "" {
		fmt.Fprintf(&b, "\n\n**Operand:** %s", doc)
	}
	if spec.Extended {
		b.WriteString("\n\n**Note:** Requires `--extended` flag")
	}
	return b.String()
}

// LabelMarkdown renders the hover card of a label.
func LabelMarkdown(label nav.Label) string {
	return fmt.Sprintf("**Label:** `%s`\n\n**Defined at:** Line %d\n\n**Definition:** `%s`",
		label.Name, label.Span.Line+1, label.Definition)
}
