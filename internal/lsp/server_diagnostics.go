package lsp

import (
	"maps"
	"slices"
	"time"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diag"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
)

// scheduleDiagnostics rescans uri. Without a debounce the scan runs before the
// handler returns; otherwise a per-document timer coalesces bursts of edits and
// results of superseded scans are dropped by sequence number.
func (s *Server) scheduleDiagnostics(uri string) {
	s.mu.Lock()
	doc := s.docs[uri]
	if doc == nil {
		s.mu.Unlock()
		return
	}
	s.analysisSeq++
	seq := s.analysisSeq
	doc.seq = seq
	doc.stopTimer()
	delay := s.debounce
	if delay > 0 {
		doc.timer = time.AfterFunc(delay, func() {
			s.runDiagnostics(uri, seq)
		})
	}
	s.mu.Unlock()
	if delay <= 0 {
		s.runDiagnostics(uri, seq)
	}
}

func (s *Server) rescheduleAll() {
	s.mu.Lock()
	uris := slices.Sorted(maps.Keys(s.docs))
	s.mu.Unlock()
	for _, uri := range uris {
		s.scheduleDiagnostics(uri)
	}
}

// current returns the document if seq is still its newest scan.
func (s *Server) current(uri string, seq uint64) (*document, bool) {
	doc := s.docs[uri]
	return doc, doc != nil && doc.seq == seq
}

func (s *Server) runDiagnostics(uri string, seq uint64) {
	if s.baseCtx != nil && s.baseCtx.Err() != nil {
		return
	}
	s.mu.Lock()
	doc, ok := s.current(uri, seq)
	if !ok {
		s.mu.Unlock()
		return
	}
	text, version := doc.text, doc.version
	opts, limit, trace := s.lintOpts, s.maxDiagnostics, s.traceLSP
	s.mu.Unlock()

	started := time.Now()
	list := buildDiagnostics(text, opts, limit)

	s.mu.Lock()
	doc, ok = s.current(uri, seq)
	if ok {
		doc.published = true
		doc.timer = nil
	}
	s.mu.Unlock()
	if !ok {
		if trace {
			s.logf("diagnostics: uri=%s seq=%d discarded=stale", uri, seq)
		}
		return
	}

	if err := s.sendPublish(uri, &version, list); err != nil {
		s.logf("failed to publish diagnostics: %v", err)
		return
	}
	if trace {
		s.logf("diagnostics: uri=%s seq=%d version=%d count=%d took=%s", uri, seq, version, len(list), time.Since(started))
	}
}

func buildDiagnostics(text string, opts lint.Options, limit int) []lspDiagnostic {
	bag := diag.NewBag(limit)
	lint.ScanTo(text, opts, diag.BagReporter{Bag: bag})
	lines := lint.SplitLines(text)
	out := make([]lspDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, lspDiagnostic{
			Range:    rangeForDiag(lines, d.Range),
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "pennmush",
			Message:  d.Message,
		})
	}
	return out
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}

// clearPublishedDiagnostics publishes empty lists for every document that
// has diagnostics on the client.
func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	var uris []string
	for uri, doc := range s.docs {
		if doc.published {
			doc.published = false
			uris = append(uris, uri)
		}
	}
	s.mu.Unlock()
	slices.Sort(uris)
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}

func (s *Server) stopTimers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		doc.stopTimer()
	}
}
