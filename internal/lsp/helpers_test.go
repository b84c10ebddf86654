package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"asmodeus/internal/engine"
)

const testURI = "file:///tmp/work/main.asmod"

type testClient struct {
	t      *testing.T
	server *Server
	out    *bytes.Buffer
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	c := newUninitializedClient(t)
	c.request(1, "initialize", map[string]any{"processId": nil, "rootUri": "file:///tmp/work"})
	c.notify("initialized", map[string]any{})
	return c
}

func newUninitializedClient(t *testing.T) *testClient {
	t.Helper()
	out := &bytes.Buffer{}
	server := NewServer(bytes.NewReader(nil), out, ServerOptions{
		Debounce: time.Hour,
		Analysis: engine.DefaultOptions(),
		Version:  "test",
	})
	t.Cleanup(server.stopTimers)
	return &testClient{t: t, server: server, out: out}
}

func (c *testClient) handle(msg *rpcMessage) error {
	c.t.Helper()
	return c.server.handleMessage(msg)
}

// request sends a request and returns its response.
func (c *testClient) request(id int, method string, params any) rpcMessage {
	c.t.Helper()
	rawID, _ := json.Marshal(id)
	payload, err := json.Marshal(params)
	if err != nil {
		c.t.Fatalf("marshal params: %v", err)
	}
	if err := c.handle(&rpcMessage{JSONRPC: "2.0", ID: rawID, Method: method, Params: payload}); err != nil {
		c.t.Fatalf("%s: %v", method, err)
	}
	for _, msg := range c.drain() {
		if string(msg.ID) == string(rawID) {
			return msg
		}
	}
	c.t.Fatalf("no response to %s", method)
	return rpcMessage{}
}

func (c *testClient) notify(method string, params any) {
	c.t.Helper()
	payload, err := json.Marshal(params)
	if err != nil {
		c.t.Fatalf("marshal params: %v", err)
	}
	if err := c.handle(&rpcMessage{JSONRPC: "2.0", Method: method, Params: payload}); err != nil {
		c.t.Fatalf("%s: %v", method, err)
	}
}

func (c *testClient) open(uri, text string) {
	c.t.Helper()
	c.notify("textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, LanguageID: "asmodeus", Version: 1, Text: text},
	})
}

// publish runs the pending diagnostics of uri without waiting for the
// debounce timer.
func (c *testClient) publish(uri string) {
	c.t.Helper()
	doc, ok := c.server.docs.get(canonicalURI(uri))
	if !ok {
		c.t.Fatalf("document %s not open", uri)
	}
	if err := c.server.publishDiagnostics(canonicalURI(uri), doc.gen); err != nil {
		c.t.Fatalf("publish: %v", err)
	}
}

// drain decodes and removes everything the server has written so far.
func (c *testClient) drain() []rpcMessage {
	c.t.Helper()
	reader := bufio.NewReader(bytes.NewReader(c.out.Bytes()))
	c.out.Reset()
	var msgs []rpcMessage
	for {
		payload, err := readMessage(reader)
		if errors.Is(err, io.EOF) {
			return msgs
		}
		if err != nil {
			c.t.Fatalf("read message: %v", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.t.Fatalf("decode message: %v", err)
		}
		msgs = append(msgs, msg)
	}
}

func decodeResult(t *testing.T, msg rpcMessage, v any) {
	t.Helper()
	if msg.Error != nil {
		t.Fatalf("unexpected error response: %+v", msg.Error)
	}
	if err := json.Unmarshal(msg.Result, v); err != nil {
		t.Fatalf("decode result %s: %v", msg.Result, err)
	}
}

func textDocPos(uri string, line, char int) textDocumentPositionParams {
	return textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     position{Line: line, Character: char},
	}
}
