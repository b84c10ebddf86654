package lsp

import (
	"time"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"asmodeus/internal/diag"
)

// scheduleDiagnostics (re)arms the debounce timer of uri. The run is
// discarded if the document changed again before the timer fired.
func (s *Server) scheduleDiagnostics(uri string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[uri]; ok {
		t.Stop()
	}
	s.timers[uri] = time.AfterFunc(s.debounce, func() {
		if err := s.publishDiagnostics(uri, gen); err != nil {
			s.logger.Warn("publish diagnostics failed", zap.String("uri", uri), zap.Error(err))
		}
	})
}

func (s *Server) rescheduleAll() {
	for _, uri := range s.docs.uris() {
		if doc, ok := s.docs.get(uri); ok {
			s.scheduleDiagnostics(uri, doc.gen)
		}
	}
}

// publishDiagnostics analyses the snapshot of uri taken at generation gen
// and publishes the result unless the document moved on meanwhile.
func (s *Server) publishDiagnostics(uri string, gen uint64) error {
	doc, ok := s.docs.get(uri)
	if !ok || doc.gen != gen {
		return nil
	}
	start := time.Now()
	found := s.currentEngine().Diagnostics(doc.text)
	elapsed := time.Since(start)
	s.metrics.RecordAnalysis(elapsed, len(found))

	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	if cur, ok := s.docs.get(uri); !ok || cur.gen != gen {
		return nil
	}
	if s.tracing() {
		s.logger.Debug("diagnostics",
			zap.String("uri", uri),
			zap.Int("version", doc.version),
			zap.Int("count", len(found)),
			zap.Duration("elapsed", elapsed))
	}
	s.published[uri] = struct{}{}
	return s.sendNotification("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Version:     toUint32(doc.version),
		Diagnostics: toProtocolDiagnostics(newLineIndex(doc.text), found),
	})
}

// clearDiagnostics cancels pending analysis of uri and clears anything
// published for it.
func (s *Server) clearDiagnostics(uri string) error {
	s.mu.Lock()
	if t, ok := s.timers[uri]; ok {
		t.Stop()
		delete(s.timers, uri)
	}
	s.mu.Unlock()

	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	if _, ok := s.published[uri]; !ok {
		return nil
	}
	delete(s.published, uri)
	return s.sendNotification("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Diagnostics: []protocol.Diagnostic{},
	})
}

func (s *Server) stopTimers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for uri, t := range s.timers {
		t.Stop()
		delete(s.timers, uri)
	}
}

func toProtocolDiagnostics(ix *lineIndex, list []diag.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(list))
	for _, d := range list {
		out = append(out, toProtocolDiagnostic(ix, d))
	}
	return out
}

func toProtocolDiagnostic(ix *lineIndex, d diag.Diagnostic) protocol.Diagnostic {
	src := d.Source
	if src == "" {
		src = diag.SourceTag
	}
	return protocol.Diagnostic{
		Range:    ix.rangeOf(d.Primary),
		Severity: protocol.DiagnosticSeverity(d.Severity.Protocol()),
		Code:     d.Code.ID(),
		Source:   src,
		Message:  d.Message,
	}
}

// fromProtocolDiagnostic recovers an engine diagnostic from the copy an
// editor sends back with a code action request.
func fromProtocolDiagnostic(ix *lineIndex, d protocol.Diagnostic) (diag.Diagnostic, bool) {
	id, ok := d.Code.(string)
	if !ok {
		return diag.Diagnostic{}, false
	}
	code, ok := diag.ParseCode(id)
	if !ok {
		return diag.Diagnostic{}, false
	}
	span := ix.toSourceSpan(protocolRangeToLocal(d.Range))
	out := diag.NewError(code, span, d.Message)
	return out, true
}
