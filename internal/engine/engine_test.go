package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"asmodeus/internal/semtok"
	"asmodeus/internal/source"
)

func TestEngineEndToEnd(t *testing.T) {
	e := New(DefaultOptions())
	text := "start:\n    DOX #42\n    SOB start"

	ds := e.Diagnostics(text)
	require.Len(t, ds, 1)
	require.Equal(t, "SEM001", ds[0].Code.ID())

	actions := e.CodeActions(text, ds[0].Primary, ds, "doc")
	require.NotEmpty(t, actions)
	require.Equal(t, "Replace with 'DOD'", actions[0].Title)

	span, ok := e.Definition(text, source.Position{Line: 2, Char: 9})
	require.True(t, ok)
	require.Equal(t, source.NewSpan(0, 0, 5), span)
	require.Len(t, e.References(text, source.Position{Line: 0, Char: 2}, true), 2)

	edit, ok := e.Rename(text, source.Position{Line: 0, Char: 2}, "begin", "doc")
	require.True(t, ok)
	require.Equal(t, 2, edit.Len())

	toks := semtok.Decode(e.SemanticTokens(text))
	require.Equal(t, semtok.TypeFunction, toks[0].Type)
}

func TestExtendedInstructionsCanBeDisabled(t *testing.T) {
	e := New(Options{Extended: false})
	ds := e.Diagnostics("MNO #2")
	require.Len(t, ds, 1)
	require.Equal(t, "Unknown instruction: 'MNO'", ds[0].Message)
	require.False(t, e.Registry().IsValid("MNO"))

	require.Empty(t, New(DefaultOptions()).Diagnostics("MNO #2"))
}

func TestCommentOnlyDocument(t *testing.T) {
	e := New(DefaultOptions())
	require.Empty(t, e.Diagnostics("; comment only"))
	toks := e.SemanticTokens("; comment only")
	require.Len(t, toks, 1)
	require.Equal(t, semtok.TypeComment, toks[0].Type)
}
