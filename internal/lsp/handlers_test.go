package lsp

import (
	"slices"
	"strings"
	"testing"
)

const program = "start:\n    POB #1\n    SOB start\nloop:\n    DOX #2\n"

func TestHoverInstruction(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, program)
	resp := c.request(2, "textDocument/hover", textDocPos(testURI, 1, 5))
	var hover struct {
		Contents struct {
			Kind  string `json:"kind"`
			Value string `json:"value"`
		} `json:"contents"`
		Range lspRange `json:"range"`
	}
	decodeResult(t, resp, &hover)
	if hover.Contents.Kind != "markdown" || !strings.HasPrefix(hover.Contents.Value, "**POB**") {
		t.Fatalf("unexpected hover %+v", hover.Contents)
	}
	if hover.Range.Start.Character != 4 || hover.Range.End.Character != 7 {
		t.Fatalf("unexpected hover range %+v", hover.Range)
	}
}

func TestHoverOnUnopenedDocumentIsNull(t *testing.T) {
	c := newTestClient(t)
	resp := c.request(2, "textDocument/hover", textDocPos("file:///tmp/other.asmod", 0, 0))
	if resp.Error != nil || string(resp.Result) != "null" {
		t.Fatalf("expected null result, got %s %+v", resp.Result, resp.Error)
	}
}

func TestCompletionAfterJump(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, program+"    SOB ")
	resp := c.request(2, "textDocument/completion", textDocPos(testURI, 5, 8))
	var list completionList
	decodeResult(t, resp, &list)
	labels := make([]string, 0, len(list.Items))
	for _, it := range list.Items {
		labels = append(labels, it.Label)
	}
	if strings.Join(labels, ",") != "start,loop" {
		t.Fatalf("expected label completions, got %v", labels)
	}
}

func TestCompletionSnippetFormat(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, "")
	resp := c.request(2, "textDocument/completion", textDocPos(testURI, 0, 0))
	var list completionList
	decodeResult(t, resp, &list)
	for _, it := range list.Items {
		if it.Label != "DOD" {
			continue
		}
		if it.InsertText != "DOD ${1:operand}" || it.InsertTextFormat != 2 {
			t.Fatalf("unexpected DOD item %+v", it)
		}
		return
	}
	t.Fatal("DOD not offered")
}

func TestSignatureHelp(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, "    SOB ")
	resp := c.request(2, "textDocument/signatureHelp", textDocPos(testURI, 0, 8))
	var help signatureHelp
	decodeResult(t, resp, &help)
	if len(help.Signatures) != 1 || help.Signatures[0].Label != "SOB label" {
		t.Fatalf("unexpected signatures %+v", help.Signatures)
	}
	if help.ActiveParameter == nil || *help.ActiveParameter != 0 {
		t.Fatalf("expected active parameter 0, got %v", help.ActiveParameter)
	}
}

func TestDefinitionAndReferences(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, program)

	var loc struct {
		URI   string   `json:"uri"`
		Range lspRange `json:"range"`
	}
	decodeResult(t, c.request(2, "textDocument/definition", textDocPos(testURI, 2, 9)), &loc)
	want := lspRange{Start: position{Line: 0, Character: 0}, End: position{Line: 0, Character: 5}}
	if loc.URI != testURI || loc.Range != want {
		t.Fatalf("unexpected definition %+v", loc)
	}

	params := referenceParams{textDocumentPositionParams: textDocPos(testURI, 2, 9)}
	params.Context.IncludeDeclaration = true
	var refs []struct {
		Range lspRange `json:"range"`
	}
	decodeResult(t, c.request(3, "textDocument/references", params), &refs)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %+v", refs)
	}

	params.Context.IncludeDeclaration = false
	decodeResult(t, c.request(4, "textDocument/references", params), &refs)
	if len(refs) != 1 || refs[0].Range.Start.Line != 2 {
		t.Fatalf("expected the jump only, got %+v", refs)
	}
}

func TestDocumentAndWorkspaceSymbols(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, program)
	c.open("file:///tmp/work/lib.asmod", "helper:\n    STP\n")

	var symbols []struct {
		Name string `json:"name"`
		Kind int    `json:"kind"`
	}
	decodeResult(t, c.request(2, "textDocument/documentSymbol", documentSymbolParams{TextDocument: textDocumentIdentifier{URI: testURI}}), &symbols)
	if len(symbols) != 2 || symbols[0].Name != "start" || symbols[1].Name != "loop" || symbols[0].Kind != 12 {
		t.Fatalf("unexpected document symbols %+v", symbols)
	}

	decodeResult(t, c.request(3, "workspace/symbol", workspaceSymbolParams{Query: "HEL"}), &symbols)
	if len(symbols) != 1 || symbols[0].Name != "helper" {
		t.Fatalf("unexpected workspace symbols %+v", symbols)
	}
}

func TestCodeActionQuickFix(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, program)
	c.publish(testURI)
	published := onlyPublish(t, c.drain())
	if len(published.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", published.Diagnostics)
	}
	d := published.Diagnostics[0]

	params := map[string]any{
		"textDocument": map[string]any{"uri": testURI},
		"range":        d.Range,
		"context": map[string]any{"diagnostics": []any{map[string]any{
			"range":   d.Range,
			"code":    d.Code,
			"source":  d.Source,
			"message": d.Message,
		}}},
	}
	var actions []struct {
		Title       string `json:"title"`
		Kind        string `json:"kind"`
		IsPreferred bool   `json:"isPreferred"`
		Edit        struct {
			Changes map[string][]struct {
				Range   lspRange `json:"range"`
				NewText string   `json:"newText"`
			} `json:"changes"`
		} `json:"edit"`
	}
	decodeResult(t, c.request(2, "textDocument/codeAction", params), &actions)
	if len(actions) == 0 {
		t.Fatal("expected code actions")
	}
	first := actions[0]
	if first.Title != "Replace with 'DOD'" || first.Kind != "quickfix" || !first.IsPreferred {
		t.Fatalf("unexpected first action %+v", first)
	}
	edits := first.Edit.Changes[testURI]
	if len(edits) != 1 || edits[0].NewText != "DOD" || edits[0].Range != d.Range {
		t.Fatalf("unexpected edit %+v", edits)
	}
	for _, a := range actions[1:] {
		if a.Kind != "refactor" {
			t.Fatalf("expected refactors after quick fixes, got %+v", a)
		}
	}
}

func TestPrepareRenameAndRename(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, program)

	var prep prepareRenameResult
	decodeResult(t, c.request(2, "textDocument/prepareRename", textDocPos(testURI, 2, 10)), &prep)
	if prep.Placeholder != "start" || prep.Range.Start.Line != 2 || prep.Range.Start.Character != 8 {
		t.Fatalf("unexpected prepare result %+v", prep)
	}

	var edit struct {
		Changes map[string][]struct {
			Range   lspRange `json:"range"`
			NewText string   `json:"newText"`
		} `json:"changes"`
	}
	decodeResult(t, c.request(3, "textDocument/rename", renameParams{
		textDocumentPositionParams: textDocPos(testURI, 2, 10),
		NewName:                    "begin",
	}), &edit)
	edits := edit.Changes[testURI]
	if len(edits) != 2 {
		t.Fatalf("expected 2 edits, got %+v", edits)
	}
	var texts []string
	for _, e := range edits {
		texts = append(texts, e.NewText)
	}
	if !strings.Contains(strings.Join(texts, " "), "begin:") {
		t.Fatalf("definition edit should keep the colon: %v", texts)
	}
}

func TestRenameRejectsInstructionName(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, program)
	resp := c.request(2, "textDocument/rename", renameParams{
		textDocumentPositionParams: textDocPos(testURI, 2, 10),
		NewName:                    "POB",
	})
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Fatalf("expected invalid params, got %+v", resp.Error)
	}
}

func TestSemanticTokensFull(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, "STP\n")
	var tokens struct {
		Data []uint32 `json:"data"`
	}
	decodeResult(t, c.request(2, "textDocument/semanticTokens/full", semanticTokensParams{TextDocument: textDocumentIdentifier{URI: testURI}}), &tokens)
	want := []uint32{0, 0, 3, 0, 0}
	if len(tokens.Data) != len(want) {
		t.Fatalf("unexpected tokens %v", tokens.Data)
	}
	for i := range want {
		if tokens.Data[i] != want[i] {
			t.Fatalf("unexpected tokens %v", tokens.Data)
		}
	}
}

func TestSemanticTokensUseUTF16Columns(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, "\U0001D400x: POB \U0001D400x")
	var tokens struct {
		Data []uint32 `json:"data"`
	}
	decodeResult(t, c.request(2, "textDocument/semanticTokens/full", semanticTokensParams{TextDocument: textDocumentIdentifier{URI: testURI}}), &tokens)
	want := []uint32{
		0, 0, 3, 1, 0,
		0, 5, 3, 0, 0,
		0, 4, 3, 1, 0,
	}
	if !slices.Equal(tokens.Data, want) {
		t.Fatalf("tokens = %v, want %v", tokens.Data, want)
	}
}
