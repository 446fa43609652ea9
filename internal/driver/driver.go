package driver

import (
	"context"

	"cqasm/internal/ast"
	"cqasm/internal/diag"
	"cqasm/internal/diagfmt"
	"cqasm/internal/lexer"
	"cqasm/internal/semantic"
	"cqasm/internal/source"
	"cqasm/internal/token"
)

// ParseResult holds either a syntax tree or the diagnostics that stopped parsing.
type ParseResult struct {
	Filename    string
	FileSet     *source.FileSet
	File        *source.File
	Tree        *ast.Tree
	Diagnostics []diag.Diagnostic
}

// AnalysisResult holds either a resolved program or the diagnostics that rejected it.
type AnalysisResult struct {
	Filename    string
	FileSet     *source.FileSet
	File        *source.File
	Program     *semantic.Program
	Diagnostics []diag.Diagnostic
}

// Parse parses cQASM source. filename is only used in locations; "" becomes <unknown>.
func Parse(src, filename string) ParseResult {
	return ParseContext(context.Background(), src, filename, Options{})
}

// Analyze parses and resolves cQASM source.
func Analyze(src, filename string) AnalysisResult {
	return AnalyzeContext(context.Background(), src, filename, Options{})
}

// ParseContext is Parse with a tracer-carrying context and options.
func ParseContext(ctx context.Context, src, filename string, opts Options) ParseResult {
	s := newSession(ctx, "parse", src, filename, opts)
	res := ParseResult{Filename: filename, FileSet: s.fs, File: s.file}
	if failure := s.guard(func() {
		res.Tree = s.parse()
		res.Diagnostics = s.bag.Items()
	}); failure != nil {
		res.Tree, res.Diagnostics = nil, failure
	}
	if hasErrors(res.Diagnostics) {
		res.Tree = nil
	}
	s.finish(res.Diagnostics)
	return res
}

// AnalyzeContext is Analyze with a tracer-carrying context and options.
// Semantic analysis runs only when parsing produced no errors.
func AnalyzeContext(ctx context.Context, src, filename string, opts Options) AnalysisResult {
	s := newSession(ctx, "analyze", src, filename, opts)
	res := AnalysisResult{Filename: filename, FileSet: s.fs, File: s.file}
	if failure := s.guard(func() {
		if tree := s.parse(); tree != nil && !s.bag.HasErrors() {
			res.Program = s.analyze(tree)
		}
		res.Diagnostics = s.bag.Items()
	}); failure != nil {
		res.Program, res.Diagnostics = nil, failure
	}
	if hasErrors(res.Diagnostics) {
		res.Program = nil
	}
	s.finish(res.Diagnostics)
	return res
}

// OK reports whether parsing succeeded.
func (r ParseResult) OK() bool { return r.Tree != nil }

// Errors returns the error diagnostics; empty on success.
func (r ParseResult) Errors() []diag.Diagnostic { return errorsOnly(r.Diagnostics) }

// JSON renders the tree, or {"errors":[...]} on failure.
func (r ParseResult) JSON() string {
	if !r.OK() {
		return errorsJSON(r.Errors(), r.FileSet, r.File, r.Filename)
	}
	out, err := diagfmt.CSTJSON(r.Tree, r.FileSet)
	if err != nil {
		return internalJSON(err, r.FileSet, r.File, r.Filename)
	}
	return out
}

// OK reports whether analysis succeeded.
func (r AnalysisResult) OK() bool { return r.Program != nil }

// Errors returns the error diagnostics; empty on success.
func (r AnalysisResult) Errors() []diag.Diagnostic { return errorsOnly(r.Diagnostics) }

// JSON renders the program, or {"errors":[...]} on failure.
func (r AnalysisResult) JSON() string {
	if !r.OK() {
		return errorsJSON(r.Errors(), r.FileSet, r.File, r.Filename)
	}
	out, err := diagfmt.ProgramJSON(r.Program)
	if err != nil {
		return internalJSON(err, r.FileSet, r.File, r.Filename)
	}
	return out
}

func errorsJSON(diags []diag.Diagnostic, fs *source.FileSet, file *source.File, filename string) string {
	out, err := diagfmt.ErrorsJSON(diags, fs, filename)
	if err != nil {
		return internalJSON(err, fs, file, filename)
	}
	return out
}

// internalJSON — последний рубеж: сообщение об ошибке сериализации без повторной сериализации.
func internalJSON(err error, fs *source.FileSet, file *source.File, filename string) string {
	d := diag.NewError(diag.InternalError, source.Span{File: file.ID}, "internal error: "+err.Error())
	out, err := diagfmt.ErrorsJSON([]diag.Diagnostic{d}, fs, filename)
	if err != nil {
		return `{"errors":[]}`
	}
	return out
}

// TokenizeResult is the raw token stream of a source, for dumps.
type TokenizeResult struct {
	FileSet     *source.FileSet
	File        *source.File
	Tokens      []token.Token
	Diagnostics []diag.Diagnostic
}

// Tokenize lexes src without parsing it; the stream always ends with EOF.
func Tokenize(src, filename string) TokenizeResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(filename, []byte(src)))
	bag := diag.NewBag(0)
	toks := lexer.All(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return TokenizeResult{FileSet: fs, File: file, Tokens: toks, Diagnostics: bag.Items()}
}
