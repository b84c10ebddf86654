// Package lsp serves the analysis engine to editors over stdio JSON-RPC.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"asmodeus/internal/engine"
	"asmodeus/internal/metrics"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

const (
	serverName      = "asmodeus-lsp"
	defaultDebounce = 300 * time.Millisecond
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Debounce time.Duration
	// Analysis configures the engine; engine.DefaultOptions matches what
	// editors expect.
	Analysis engine.Options
	Trace    bool
	Version  string
	Logger   *zap.Logger
	Metrics  *metrics.Collector
}

// Server handles stdio JSON-RPC for the Asmodeus language.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex

	// pubMu orders publishing against clearing on close.
	pubMu     sync.Mutex
	published map[string]struct{}

	docs    *docStore
	logger  *zap.Logger
	metrics *metrics.Collector
	version string

	// mu guards the fields below.
	mu                sync.Mutex
	engine            *engine.Engine
	analysis          engine.Options
	debounce          time.Duration
	trace             bool
	initialized       bool
	shutdownRequested bool
	timers            map[string]*time.Timer
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		in:        bufio.NewReader(in),
		out:       bufio.NewWriter(out),
		docs:      newDocStore(),
		logger:    logger.With(zap.String("component", "lsp")),
		metrics:   opts.Metrics,
		version:   opts.Version,
		engine:    engine.New(opts.Analysis),
		analysis:  opts.Analysis,
		debounce:  debounce,
		trace:     opts.Trace,
		timers:    make(map[string]*time.Timer),
		published: make(map[string]struct{}),
	}
}

// Run serves LSP messages until the input ends, ctx is cancelled or the
// client sends "exit".
func (s *Server) Run(ctx context.Context) error {
	defer s.stopTimers()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Warn("malformed message", zap.Error(err))
			if err := s.sendError(json.RawMessage("null"), codeParseError, "parse error"); err != nil {
				return err
			}
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

// handleMessage dispatches one message. Only transport failures and exit
// are returned; request failures are answered on the wire.
func (s *Server) handleMessage(msg *rpcMessage) error {
	if msg.Method == "" {
		// responses to server-initiated requests are not used
		return nil
	}
	start := time.Now()
	replyErr, err := s.dispatch(msg)
	if errors.Is(err, ErrExit) || errors.Is(err, ErrExitWithoutShutdown) {
		return err
	}
	var recorded error
	switch {
	case replyErr != nil:
		recorded = replyErr
	case err != nil:
		recorded = err
	}
	s.metrics.RecordRequest(msg.Method, recorded, time.Since(start))
	if s.tracing() {
		s.logger.Debug("handled",
			zap.String("method", msg.Method),
			zap.Duration("elapsed", time.Since(start)),
			zap.Bool("failed", recorded != nil))
	}
	return err
}

func (s *Server) dispatch(msg *rpcMessage) (*rpcError, error) {
	if msg.Method == "exit" {
		s.mu.Lock()
		shutdown := s.shutdownRequested
		s.mu.Unlock()
		if shutdown {
			return nil, ErrExit
		}
		return nil, ErrExitWithoutShutdown
	}

	s.mu.Lock()
	initialized, shutdown := s.initialized, s.shutdownRequested
	s.mu.Unlock()

	if !msg.isRequest() {
		if !initialized {
			return nil, nil
		}
		if h := notificationHandler(msg.Method); h != nil {
			if err := h(s, msg); err != nil {
				s.logger.Warn("notification failed", zap.String("method", msg.Method), zap.Error(err))
			}
		}
		return nil, nil
	}

	var rerr *rpcError
	switch {
	case !initialized && msg.Method != "initialize":
		rerr = &rpcError{Code: codeServerNotInitialized, Message: "server not initialized"}
	case shutdown:
		rerr = &rpcError{Code: codeInvalidRequest, Message: "server is shutting down"}
	}
	if rerr != nil {
		return rerr, s.sendError(msg.ID, rerr.Code, rerr.Message)
	}

	h := requestHandler(msg.Method)
	if h == nil {
		rerr = &rpcError{Code: codeMethodNotFound, Message: "method not found: " + msg.Method}
		return rerr, s.sendError(msg.ID, rerr.Code, rerr.Message)
	}
	result, err := h(s, msg)
	if err != nil {
		if !errors.As(err, &rerr) {
			s.logger.Error("request failed", zap.String("method", msg.Method), zap.Error(err))
			rerr = &rpcError{Code: codeInternalError, Message: err.Error()}
		}
		return rerr, s.sendError(msg.ID, rerr.Code, rerr.Message)
	}
	return nil, s.sendResponse(msg.ID, result)
}

type requestFunc func(*Server, *rpcMessage) (any, error)

type notificationFunc func(*Server, *rpcMessage) error

func requestHandler(method string) requestFunc {
	switch method {
	case "initialize":
		return (*Server).handleInitialize
	case "shutdown":
		return (*Server).handleShutdown
	case "textDocument/hover":
		return (*Server).handleHover
	case "textDocument/completion":
		return (*Server).handleCompletion
	case "textDocument/signatureHelp":
		return (*Server).handleSignatureHelp
	case "textDocument/definition":
		return (*Server).handleDefinition
	case "textDocument/references":
		return (*Server).handleReferences
	case "textDocument/documentSymbol":
		return (*Server).handleDocumentSymbol
	case "workspace/symbol":
		return (*Server).handleWorkspaceSymbol
	case "textDocument/codeAction":
		return (*Server).handleCodeAction
	case "textDocument/prepareRename":
		return (*Server).handlePrepareRename
	case "textDocument/rename":
		return (*Server).handleRename
	case "textDocument/semanticTokens/full":
		return (*Server).handleSemanticTokens
	}
	return nil
}

func notificationHandler(method string) notificationFunc {
	switch method {
	case "initialized":
		return func(*Server, *rpcMessage) error { return nil }
	case "workspace/didChangeConfiguration":
		return (*Server).handleDidChangeConfiguration
	case "textDocument/didOpen":
		return (*Server).handleDidOpen
	case "textDocument/didChange":
		return (*Server).handleDidChange
	case "textDocument/didSave":
		return (*Server).handleDidSave
	case "textDocument/didClose":
		return (*Server).handleDidClose
	}
	return nil
}

func (s *Server) handleShutdown(*rpcMessage) (any, error) {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	s.stopTimers()
	return nil, nil
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := decodeParams(msg, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	doc := s.docs.open(uri, params.TextDocument.Text, params.TextDocument.Version)
	s.metrics.SetOpenDocuments(s.docs.count())
	s.scheduleDiagnostics(uri, doc.gen)
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := decodeParams(msg, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	doc, ok := s.docs.change(uri, params.TextDocument.Version, params.ContentChanges)
	if !ok {
		s.logger.Debug("change for unopened document", zap.String("uri", uri))
		return nil
	}
	s.scheduleDiagnostics(uri, doc.gen)
	return nil
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := decodeParams(msg, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	doc, ok := s.docs.save(uri, params.Text)
	if !ok {
		return nil
	}
	s.scheduleDiagnostics(uri, doc.gen)
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := decodeParams(msg, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if !s.docs.close(uri) {
		return nil
	}
	s.metrics.SetOpenDocuments(s.docs.count())
	return s.clearDiagnostics(uri)
}

func (s *Server) currentEngine() *engine.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine
}

func (s *Server) tracing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trace
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	return s.send(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	})
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	return s.send(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error":   rpcError{Code: code, Message: message},
	})
}

func (s *Server) sendNotification(method string, params any) error {
	return s.send(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}
