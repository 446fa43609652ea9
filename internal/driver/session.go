package driver

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"

	"fortio.org/safecast"

	"cqasm/internal/ast"
	"cqasm/internal/diag"
	"cqasm/internal/parser"
	"cqasm/internal/sema"
	"cqasm/internal/semantic"
	"cqasm/internal/source"
	"cqasm/internal/trace"
)

// session is the per-call state of one pipeline run. Nothing in it is shared
// between calls, so concurrent calls never interfere.
type session struct {
	tracer   trace.Tracer
	root     *trace.Span
	opts     Options
	filename string
	fs       *source.FileSet
	file     *source.File
	bag      *diag.Bag
	rep      *diag.DedupReporter
}

func newSession(ctx context.Context, name, src, filename string, opts Options) *session {
	tracer := trace.FromContext(ctx)
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(filename, []byte(src)))
	root, _ := trace.Start(ctx, trace.ScopeDriver, name)
	root.WithExtra("file", file.Path)
	bag := diag.NewBag(0)
	return &session{
		tracer:   tracer,
		root:     root,
		opts:     opts,
		filename: filename,
		fs:       fs,
		file:     file,
		bag:      bag,
		rep:      diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
	}
}

// reporter drops exact repeats (same code, span and message).
func (s *session) reporter() diag.Reporter {
	return s.rep
}

// phase runs fn under a trace span and a timer entry; fn returns the note.
func (s *session) phase(name string, fn func() string) {
	span := trace.Begin(s.tracer, trace.ScopePhase, name, s.root.ID())
	idx := s.opts.Timer.Begin(name)
	note := fn()
	s.opts.Timer.End(idx, note)
	span.End(note)
}

func (s *session) parse() *ast.Tree {
	var tree *ast.Tree
	s.phase("parse", func() string {
		hint, err := safecast.Conv[uint](len(s.file.Content) / 8)
		if err != nil {
			hint = 0
		}
		opts := parser.Options{MaxErrors: s.opts.maxSyntaxErrors(), Reporter: s.reporter()}
		res := parser.ParseFile(s.file, ast.NewBuilder(ast.Hints{Stmts: hint, Exprs: 2 * hint}), opts)
		tree = res.Tree
		if tree == nil {
			return strconv.FormatUint(uint64(res.Errors), 10) + " syntax errors"
		}
		return strconv.Itoa(len(tree.Program.Block)) + " statements"
	})
	return tree
}

func (s *session) analyze(tree *ast.Tree) *semantic.Program {
	var prog *semantic.Program
	s.phase("sema", func() string {
		res := sema.Check(tree, sema.Options{
			Reporter:  s.reporter(),
			Catalog:   s.opts.Catalog,
			Functions: s.opts.Functions,
		})
		prog = res.Program
		return strconv.FormatUint(uint64(res.Errors), 10) + " errors"
	})
	return prog
}

// guard runs fn; a panic inside it becomes the only diagnostic of the call.
func (s *session) guard(fn func()) (failure []diag.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			failure = []diag.Diagnostic{s.internal(r)}
		}
	}()
	fn()
	return nil
}

// internal turns a recovered panic into a diagnostic at the start of the file.
func (s *session) internal(r any) diag.Diagnostic {
	trace.Point(s.tracer, trace.ScopeDriver, "panic", string(debug.Stack()), s.root.ID())
	return diag.NewError(diag.InternalError, source.Span{File: s.file.ID}, fmt.Sprintf("internal error: %v", r))
}

// finish closes the root span and emits one statement-scope event per diagnostic.
func (s *session) finish(diags []diag.Diagnostic) {
	for _, d := range diags {
		trace.Point(s.tracer, trace.ScopeStatement, d.Code.ID(), d.Message, s.root.ID())
	}
	note := strconv.Itoa(len(diags)) + " diagnostics"
	if n := s.rep.Suppressed(); n > 0 {
		note += ", " + strconv.Itoa(n) + " repeats dropped"
	}
	s.root.End(note)
}

func hasErrors(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

func errorsOnly(diags []diag.Diagnostic) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity >= diag.SevError {
			out = append(out, d)
		}
	}
	return out
}
