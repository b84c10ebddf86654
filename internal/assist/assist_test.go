package assist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"asmodeus/internal/isa"
	"asmodeus/internal/source"
)

const program = "start:\n    POB #42\n    SOB start\n    MNO #2\n    STP"

func TestHoverInstruction(t *testing.T) {
	a := New(isa.NewRegistry())
	h, ok := a.Hover(program, source.Position{Line: 1, Char: 5})
	require.True(t, ok)
	require.Equal(t, source.NewSpan(1, 4, 7), h.Span)
	require.Equal(t, "**POB**\n\n**Operation:** `(operand) → AK`\n\n**Category:** Memory\n\n"+
		"**Description:** Load value into accumulator: (operand) → AK\n\n"+
		"**Operand:** Memory address, immediate value (#42), or label", h.Markdown)

	h, ok = a.Hover(program, source.Position{Line: 3, Char: 4})
	require.True(t, ok)
	require.True(t, strings.HasPrefix(h.Markdown, "**MNO** *(Extended)*"))
	require.True(t, strings.HasSuffix(h.Markdown, "**Note:** Requires `--extended` flag"))

	h, ok = a.Hover(program, source.Position{Line: 4, Char: 5})
	require.True(t, ok)
	require.NotContains(t, h.Markdown, "**Operand:**")
	require.Contains(t, h.Markdown, "**Category:** Control Flow")
}

func TestHoverLabel(t *testing.T) {
	a := New(isa.NewRegistry())
	h, ok := a.Hover(program, source.Position{Line: 2, Char: 10})
	require.True(t, ok)
	require.Equal(t, "**Label:** `start`\n\n**Defined at:** Line 1\n\n**Definition:** `start:`", h.Markdown)

	_, ok = a.Hover(program, source.Position{Line: 1, Char: 9})
	require.False(t, ok, "numbers have no hover")
	_, ok = a.Hover(program, source.Position{Line: 9, Char: 0})
	require.False(t, ok)
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestCompletionContexts(t *testing.T) {
	a := New(isa.NewRegistry())
	tests := []struct {
		before string
		want   Context
	}{
		{"", ContextInstruction},
		{"    ", ContextInstruction},
		{"start:", ContextInstruction},
		{"    PO", ContextInstruction},
		{"    SOB ", ContextLabel},
		{"    SOB st", ContextLabel},
		{"start: SOB ", ContextLabel},
		{"    POB ", ContextOperand},
		{"    ŁAD ", ContextOperand},
		{"    MSK ", ContextOperand},
		{"    STP ", ContextInstruction},
		{"    POB #1 ", ContextInstruction},
		{"    POB #1 ; lo", ContextComment},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, a.ContextOf(tt.before), "%q", tt.before)
	}
}

func TestInstructionCompletion(t *testing.T) {
	a := New(isa.NewRegistry())
	items := a.Completion("", source.Position{})
	require.Len(t, items, isa.NewRegistry().Len())

	byName := map[string]Item{}
	for _, it := range items {
		byName[it.Label] = it
	}
	require.Equal(t, "SOB ${1:label}", byName["SOB"].InsertText)
	require.True(t, byName["SOB"].Snippet)
	require.Equal(t, "MSK ${1:mask}", byName["MSK"].InsertText)
	require.Equal(t, "ŁAD ${1:address}", byName["ŁAD"].InsertText)
	require.Equal(t, "STP", byName["STP"].InsertText)
	require.False(t, byName["STP"].Snippet)
	require.Equal(t, "Control Flow", byName["STP"].Detail)

	ext := byName["MNO (Extended)"]
	require.Equal(t, "2_MNO", ext.SortText)
	require.Equal(t, "1_DOD", byName["DOD"].SortText)
}

func TestOperandAndLabelCompletion(t *testing.T) {
	a := New(isa.NewRegistry())
	text := "start:\nloop: DOD #1\n    POB \n    SOB "

	items := a.Completion(text, source.Position{Line: 2, Char: 8})
	require.Equal(t, []string{"#immediate", "start", "loop"}, labels(items))
	require.Equal(t, "#${1:value}", items[0].InsertText)
	require.Equal(t, "Label defined at line 2", items[2].Documentation)

	items = a.Completion(text, source.Position{Line: 3, Char: 8})
	require.Equal(t, []string{"start", "loop"}, labels(items))

	require.Empty(t, a.Completion("POB ; x", source.Position{Line: 0, Char: 7}))
}

func TestSignatureHelp(t *testing.T) {
	a := New(isa.NewRegistry())

	sig, ok := a.SignatureHelp("    ŁAD ", source.Position{Line: 0, Char: 8})
	require.True(t, ok)
	require.Equal(t, "ŁAD address", sig.Label)
	require.Equal(t, 0, sig.ActiveParameter)
	require.Equal(t, "Memory address or label", sig.Parameters[0].Documentation)

	sig, ok = a.SignatureHelp("    SOB", source.Position{Line: 0, Char: 7})
	require.True(t, ok)
	require.Equal(t, "SOB label", sig.Label)
	require.Equal(t, -1, sig.ActiveParameter)

	sig, ok = a.SignatureHelp("loop: DZI #4", source.Position{Line: 0, Char: 12})
	require.True(t, ok)
	require.Equal(t, "DZI operand", sig.Label)
	require.Contains(t, sig.Parameters[0].Documentation, "Requires --extended flag")

	sig, ok = a.SignatureHelp("STP", source.Position{Line: 0, Char: 3})
	require.True(t, ok)
	require.Equal(t, "STP", sig.Label)
	require.Empty(t, sig.Parameters)
	require.Equal(t, -1, sig.ActiveParameter)

	_, ok = a.SignatureHelp("    XYZ ", source.Position{Line: 0, Char: 8})
	require.False(t, ok)
	_, ok = a.SignatureHelp("", source.Position{Line: 0, Char: 0})
	require.False(t, ok)
}
