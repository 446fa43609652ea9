package diag

import "cqasm/internal/source"

// occurrence identifies a diagnostic for deduplication; notes are ignored.
type occurrence struct {
	code    Code
	primary source.Span
	msg     string
}

// DedupReporter forwards each distinct (code, primary span, message) once.
// A statement that is revisited (recovery, folded parameters) cannot report twice.
type DedupReporter struct {
	next       Reporter
	seen       map[occurrence]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[occurrence]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := occurrence{code: code, primary: primary, msg: msg}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Suppressed returns how many repeats were dropped.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
