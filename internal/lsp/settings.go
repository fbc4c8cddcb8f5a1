package lsp

import (
	"encoding/json"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/format"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
)

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	if s.applySettings(params.Settings) {
		s.rescheduleAll()
	}
	return nil
}

// applySettings merges the "pennmush" section into the server state and
// reports whether diagnostics need to be recomputed.
func (s *Server) applySettings(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logf("ignoring malformed settings: %v", err)
		return false
	}
	cfg := settings.PennMUSH
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.lintOpts
	beforeMax := s.maxDiagnostics
	if v := cfg.Diagnostics.UnknownFunctions; v != nil {
		s.lintOpts.UnknownFunctions = *v
	}
	if v := cfg.Diagnostics.UnknownCommands; v != nil {
		s.lintOpts.UnknownCommands = *v
	}
	if v := cfg.Diagnostics.Registers; v != nil {
		s.lintOpts.Registers = *v
	}
	if v := cfg.Diagnostics.MaxDiagnostics; v != nil && *v > 0 {
		s.maxDiagnostics = *v
	}
	if v := cfg.Format.IndentWidth; v != nil {
		s.formatOpts.IndentWidth = *v
	}
	if v := cfg.LSP.Trace; v != nil {
		s.traceLSP = *v
	}
	return before != s.lintOpts || beforeMax != s.maxDiagnostics
}

func (s *Server) currentLintOptions() lint.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lintOpts
}

func (s *Server) currentFormatOptions() format.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formatOpts
}

func (s *Server) currentTrace() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traceLSP
}
