package lsp

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"asmodeus/internal/engine"
)

// lspSettings is the "asmodeus" section pushed by editors. Absent keys keep
// the current value.
type lspSettings struct {
	Asmodeus struct {
		LSP struct {
			DebounceMs     *int  `json:"debounceMs"`
			MaxDiagnostics *int  `json:"maxDiagnostics"`
			Trace          *bool `json:"trace"`
		} `json:"lsp"`
		Analysis struct {
			ExtendedInstructions *bool `json:"extendedInstructions"`
		} `json:"analysis"`
	} `json:"asmodeus"`
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	var params didChangeConfigurationParams
	if err := decodeParams(msg, &params); err != nil {
		return err
	}
	if s.applySettings(params.Settings) {
		s.rescheduleAll()
	}
	return nil
}

// applySettings updates the server configuration and reports whether the
// engine was rebuilt.
func (s *Server) applySettings(raw json.RawMessage) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logger.Warn("ignoring malformed settings", zap.Error(err))
		return false
	}
	cfg := settings.Asmodeus

	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.LSP.DebounceMs != nil && *cfg.LSP.DebounceMs > 0 {
		s.debounce = time.Duration(*cfg.LSP.DebounceMs) * time.Millisecond
	}
	if cfg.LSP.Trace != nil {
		s.trace = *cfg.LSP.Trace
	}
	next := s.analysis
	if cfg.LSP.MaxDiagnostics != nil && *cfg.LSP.MaxDiagnostics >= 0 {
		next.MaxDiagnostics = *cfg.LSP.MaxDiagnostics
	}
	if cfg.Analysis.ExtendedInstructions != nil {
		next.Extended = *cfg.Analysis.ExtendedInstructions
	}
	if next == s.analysis {
		return false
	}
	s.analysis = next
	s.engine = engine.New(next)
	s.logger.Info("analysis settings changed",
		zap.Bool("extended", next.Extended),
		zap.Int("maxDiagnostics", next.MaxDiagnostics))
	return true
}
