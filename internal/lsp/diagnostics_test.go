package lsp

import (
	"encoding/json"
	"testing"

	"go.lsp.dev/protocol"
)

type publishedParams struct {
	URI         string `json:"uri"`
	Version     int    `json:"version"`
	Diagnostics []struct {
		Range    lspRange `json:"range"`
		Severity int      `json:"severity"`
		Code     string   `json:"code"`
		Source   string   `json:"source"`
		Message  string   `json:"message"`
	} `json:"diagnostics"`
}

func onlyPublish(t *testing.T, msgs []rpcMessage) publishedParams {
	t.Helper()
	if len(msgs) != 1 || msgs[0].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("expected one publishDiagnostics, got %+v", msgs)
	}
	var params publishedParams
	if err := json.Unmarshal(msgs[0].Params, &params); err != nil {
		t.Fatalf("decode publish: %v", err)
	}
	return params
}

func TestPublishDiagnosticsMapping(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, "start:\n    DOX #42\n    STP\n")
	c.publish(testURI)

	params := onlyPublish(t, c.drain())
	if params.URI != testURI || params.Version != 1 {
		t.Fatalf("unexpected target %s v%d", params.URI, params.Version)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", params.Diagnostics)
	}
	d := params.Diagnostics[0]
	if d.Code != "SEM001" || d.Source != "asmodeus-lsp" || d.Severity != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	want := lspRange{Start: position{Line: 1, Character: 4}, End: position{Line: 1, Character: 7}}
	if d.Range != want {
		t.Fatalf("range = %+v, want %+v", d.Range, want)
	}
}

func TestStaleAnalysisIsDiscarded(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, "DOX #1\n")
	stale, _ := c.server.docs.get(testURI)

	c.notify("textDocument/didChange", didChangeTextDocumentParams{
		TextDocument:   versionedTextDocumentIdentifier{URI: testURI, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{Text: "STP\n"}},
	})
	if err := c.server.publishDiagnostics(testURI, stale.gen); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if msgs := c.drain(); len(msgs) != 0 {
		t.Fatalf("expected stale run to publish nothing, got %+v", msgs)
	}

	c.publish(testURI)
	params := onlyPublish(t, c.drain())
	if params.Version != 2 || len(params.Diagnostics) != 0 {
		t.Fatalf("expected clean v2, got %+v", params)
	}
}

func TestCloseClearsPublishedDiagnostics(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, "DOX #1\n")
	c.publish(testURI)
	c.drain()

	c.notify("textDocument/didClose", didCloseTextDocumentParams{TextDocument: textDocumentIdentifier{URI: testURI}})
	params := onlyPublish(t, c.drain())
	if len(params.Diagnostics) != 0 {
		t.Fatalf("expected cleared diagnostics, got %+v", params.Diagnostics)
	}
	if _, ok := c.server.docs.get(testURI); ok {
		t.Fatal("document still open after close")
	}
}

func TestCloseWithoutPublishSendsNothing(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, "STP\n")
	c.notify("textDocument/didClose", didCloseTextDocumentParams{TextDocument: textDocumentIdentifier{URI: testURI}})
	if msgs := c.drain(); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %+v", msgs)
	}
}

func TestDidSaveWithTextReplacesDocument(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, "DOX #1\n")
	text := "STP\n"
	c.notify("textDocument/didSave", didSaveTextDocumentParams{
		TextDocument: textDocumentIdentifier{URI: testURI},
		Text:         &text,
	})
	c.publish(testURI)
	if params := onlyPublish(t, c.drain()); len(params.Diagnostics) != 0 {
		t.Fatalf("expected saved text to be analysed, got %+v", params.Diagnostics)
	}
}

func TestConfigurationDisablesExtendedInstructions(t *testing.T) {
	c := newTestClient(t)
	c.open(testURI, "MNO #2\n")
	c.publish(testURI)
	if params := onlyPublish(t, c.drain()); len(params.Diagnostics) != 0 {
		t.Fatalf("MNO should be valid by default, got %+v", params.Diagnostics)
	}

	c.notify("workspace/didChangeConfiguration", map[string]any{
		"settings": map[string]any{
			"asmodeus": map[string]any{
				"analysis": map[string]any{"extendedInstructions": false},
			},
		},
	})
	if c.server.currentEngine().Registry().IsValid("MNO") {
		t.Fatal("expected registry without extended instructions")
	}
	c.publish(testURI)
	params := onlyPublish(t, c.drain())
	if len(params.Diagnostics) != 1 || params.Diagnostics[0].Code != "SEM001" {
		t.Fatalf("expected SEM001 for MNO, got %+v", params.Diagnostics)
	}
}

func TestProtocolDiagnosticRoundTrip(t *testing.T) {
	ix := newLineIndex("    DOX #1\n")
	pd := protocol.Diagnostic{
		Range:   protocol.Range{Start: protocol.Position{Line: 0, Character: 4}, End: protocol.Position{Line: 0, Character: 7}},
		Code:    "SEM001",
		Message: "Unknown instruction: 'DOX'",
	}
	d, ok := fromProtocolDiagnostic(ix, pd)
	if !ok {
		t.Fatal("expected diagnostic")
	}
	if d.Code.ID() != "SEM001" || d.Primary.Start != 4 || d.Primary.End != 7 {
		t.Fatalf("unexpected %+v", d)
	}
	if _, ok := fromProtocolDiagnostic(ix, protocol.Diagnostic{Code: float64(3)}); ok {
		t.Fatal("numeric codes are not engine diagnostics")
	}
}
