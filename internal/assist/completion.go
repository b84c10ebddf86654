package assist

import (
	"fmt"
	"strings"

	"asmodeus/internal/isa"
	"asmodeus/internal/nav"
	"asmodeus/internal/source"
)

// ItemKind classifies a completion item.
type ItemKind uint8

const (
	ItemKeyword ItemKind = iota
	ItemLabel
	ItemConstant
)

// Item is one completion proposal. When Snippet is set InsertText uses
// ${1:name} placeholders.
type Item struct {
	Label         string
	Kind          ItemKind
	Detail        string
	Documentation string
	InsertText    string
	Snippet       bool
	SortText      string
}

// Context is what the cursor position expects next.
type Context uint8

const (
	ContextInstruction Context = iota
	ContextOperand
	ContextLabel
	ContextComment
)

// Completion proposes items for the cursor position.
func (a *Assistant) Completion(text string, pos source.Position) []Item {
	line, ok := source.LineAt(text, pos.Line)
	if !ok {
		return a.instructionItems()
	}
	before := string(line[:min(max(pos.Char, 0), len(line))])
	switch a.ContextOf(before) {
	case ContextComment:
		return nil
	case ContextOperand:
		return append([]Item{immediateItem()}, labelItems(text)...)
	case ContextLabel:
		return labelItems(text)
	default:
		return a.instructionItems()
	}
}

// ContextOf classifies the text before the cursor on its line.
func (a *Assistant) ContextOf(before string) Context {
	if strings.ContainsRune(before, ';') {
		return ContextComment
	}
	trimmed := strings.TrimSpace(before)
	if trimmed == "" || strings.HasSuffix(trimmed, ":") {
		return ContextInstruction
	}
	words := strings.Fields(stripLabel(before))
	if len(words) == 0 {
		return ContextInstruction
	}
	spec, ok := a.reg.Lookup(words[0])
	if !ok {
		return ContextInstruction
	}
	typingOperand := len(words) == 1 || (len(words) == 2 && !endsWithSpace(before))
	switch {
	case spec.Operand == isa.OperandNone:
		return ContextInstruction
	case !typingOperand:
		return ContextInstruction
	case spec.Operand == isa.OperandLabelOnly:
		return ContextLabel
	default:
		return ContextOperand
	}
}

func (a *Assistant) instructionItems() []Item {
	specs := a.reg.All()
	items := make([]Item, 0, len(specs))
	for _, spec := range specs {
		item := Item{
			Label:         spec.Name,
			Kind:          ItemKeyword,
			Detail:        spec.Category.String(),
			Documentation: spec.Description,
			InsertText:    spec.Name,
			SortText:      "1_" + spec.Name,
		}
		if name := parameterName(spec.Operand); name != "" {
			item.InsertText = fmt.Sprintf("%s ${1:%s}", spec.Name, name)
			item.Snippet = true
		}
		if spec.Extended {
			item.Label += " (Extended)"
			item.SortText = "2_" + spec.Name
		}
		items = append(items, item)
	}
	return items
}

func immediateItem() Item {
	return Item{
		Label:         "#immediate",
		Kind:          ItemConstant,
		Detail:        "Immediate value",
		Documentation: "Use immediate value (e.g., #42, #0xFF)",
		InsertText:    "#${1:value}",
		Snippet:       true,
		SortText:      "1_immediate",
	}
}

func labelItems(text string) []Item {
	syms := nav.DocumentSymbols(text)
	items := make([]Item, 0, len(syms))
	for _, sym := range syms {
		items = append(items, Item{
			Label:         sym.Name,
			Kind:          ItemLabel,
			Detail:        "Label",
			Documentation: fmt.Sprintf("Label defined at line %d", sym.Span.Line+1),
			InsertText:    sym.Name,
			SortText:      "1_" + sym.Name,
		})
	}
	return items
}
