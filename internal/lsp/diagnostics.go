package lsp

import (
	"time"

	"cqasm/internal/diag"
	"cqasm/internal/driver"
	"cqasm/internal/source"
)

// scheduleDiagnostics (re)starts the debounce timer of uri. Only the newest
// scheduled run publishes; earlier ones see a stale seq and drop their result.
func (s *Server) scheduleDiagnostics(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return
	}
	doc.seq++
	seq := doc.seq
	if doc.timer != nil {
		doc.timer.Stop()
	}
	doc.timer = time.AfterFunc(s.debounce, func() {
		s.runDiagnostics(uri, seq)
	})
}

// runDiagnostics analyzes the document snapshot taken under seq and publishes the result.
func (s *Server) runDiagnostics(uri string, seq uint64) {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok || doc.seq != seq || s.shutdownRequested {
		s.mu.Unlock()
		return
	}
	text, ver := doc.text, doc.version
	s.mu.Unlock()

	res := driver.AnalyzeContext(s.baseCtx, text, documentName(uri), s.analyzeOpts)
	list := toLSPDiagnostics(uri, res.FileSet, res.Diagnostics, s.maxDiagnostics)

	s.mu.Lock()
	doc, ok = s.docs[uri]
	current := ok && doc.seq == seq
	s.mu.Unlock()
	if !current {
		return
	}
	if err := s.sendPublish(uri, &ver, list); err != nil {
		s.logf("failed to publish diagnostics: %v", err)
	}
}

// toLSPDiagnostics converts 1-based code-point positions to 0-based LSP positions
// measured in UTF-16 units, at most limit entries.
func toLSPDiagnostics(uri string, fs *source.FileSet, diags []diag.Diagnostic, limit int) []lspDiagnostic {
	out := make([]lspDiagnostic, 0, min(len(diags), limit))
	for _, d := range diags {
		if len(out) >= limit {
			break
		}
		item := lspDiagnostic{
			Range:    spanRange(fs, d.Primary),
			Severity: d.Severity.LSP(),
			Code:     d.Code.ID(),
			Source:   "cqasm",
			Message:  d.Message,
		}
		for _, note := range d.Notes {
			item.RelatedInformation = append(item.RelatedInformation, diagnosticRelatedInformation{
				Location: location{URI: uri, Range: spanRange(fs, note.Span)},
				Message:  note.Msg,
			})
		}
		out = append(out, item)
	}
	return out
}

func spanRange(fs *source.FileSet, span source.Span) lspRange {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	return lspRange{
		Start: lspPosition(file, start),
		End:   lspPosition(file, end),
	}
}

func lspPosition(file *source.File, lc source.LineCol) position {
	if lc.Line == 0 {
		return position{}
	}
	return position{
		Line:      int(lc.Line) - 1,
		Character: utf16Column(file.GetLine(lc.Line), lc.Col),
	}
}
