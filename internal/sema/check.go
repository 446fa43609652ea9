package sema

import (
	"errors"
	"fmt"

	"cqasm/internal/ast"
	"cqasm/internal/diag"
	"cqasm/internal/semantic"
	"cqasm/internal/source"
	"cqasm/internal/symbols"
	"cqasm/internal/types"
)

// Options configure a semantic pass over a parsed program.
type Options struct {
	Reporter diag.Reporter
	// Catalog and Functions default to the process-wide built-ins.
	Catalog   *symbols.Catalog
	Functions *symbols.Functions
}

// Result stores the resolved program. Program is nil when any error was reported.
type Result struct {
	Program *semantic.Program
	Errors  uint
}

// Check resolves the program tree. Every statement is checked; a statement that fails
// reports its first error and is left out of the block.
func Check(tree *ast.Tree, opts Options) Result {
	if tree == nil {
		return Result{}
	}
	c := checker{
		tree:     tree,
		reporter: opts.Reporter,
		catalog:  opts.Catalog,
		funcs:    opts.Functions,
		scope:    symbols.NewScope(),
	}
	if c.catalog == nil {
		c.catalog = symbols.Builtins()
	}
	if c.funcs == nil {
		c.funcs = symbols.BuiltinFunctions()
	}
	prog := c.run()
	res := Result{Errors: c.errors}
	if c.errors == 0 {
		res.Program = prog
	}
	return res
}

type checker struct {
	tree     *ast.Tree
	reporter diag.Reporter
	catalog  *symbols.Catalog
	funcs    *symbols.Functions
	scope    *symbols.Scope
	errors   uint
}

func (c *checker) run() *semantic.Program {
	prog := &semantic.Program{
		APIVersion: semantic.APIVersion,
		Version:    c.version(c.tree.Program.Version),
	}
	for _, id := range c.tree.Program.Block {
		stmt := c.tree.Stmts.Get(id)
		if stmt == nil {
			continue
		}
		switch stmt.Kind {
		case ast.StmtVariable:
			data, _ := c.tree.Stmts.Variable(id)
			c.declare(stmt, data)
		case ast.StmtGate:
			data, _ := c.tree.Stmts.Gate(id)
			if instr, ok := c.gate(stmt, data); ok {
				prog.Block.Statements = append(prog.Block.Statements, instr)
			}
		case ast.StmtMeasure:
			data, _ := c.tree.Stmts.Measure(id)
			if instr, ok := c.measure(stmt, data); ok {
				prog.Block.Statements = append(prog.Block.Statements, instr)
			}
		}
	}
	prog.Variables = c.scope.Variables()
	return prog
}

func (c *checker) report(code diag.Code, span source.Span, format string, args ...interface{}) {
	c.errors++
	if c.reporter == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if b := diag.ReportError(c.reporter, code, span, msg); b != nil {
		b.Emit()
	}
}

// reportErr maps a symbols error onto its diagnostic code.
func (c *checker) reportErr(span source.Span, err error, unknown diag.Code) {
	code := diag.SemaError
	switch {
	case errors.Is(err, symbols.ErrUnknown):
		code = unknown
	case errors.Is(err, symbols.ErrNoOverload):
		code = diag.SemaNoMatchingOverload
	case errors.Is(err, symbols.ErrDuplicate):
		code = diag.SemaDuplicateDecl
	case errors.Is(err, symbols.ErrConstEval):
		code = diag.SemaConstEvalFailed
	}
	c.report(code, span, "%s", err.Error())
}

func (c *checker) version(v ast.Version) semantic.Version {
	for _, item := range v.Items {
		if item < 0 {
			c.report(diag.SemaInvalidVersion, v.Span, "invalid version component")
			return semantic.Version{Items: []int64{3, 0}}
		}
	}
	if !isSupportedVersion(v.Items) {
		c.report(diag.SemaUnsupportedVersion, v.Span,
			"the only cQASM version supported is %s, but the cQASM file is version %s", semantic.APIVersion, v.String())
		return semantic.Version{Items: []int64{3, 0}}
	}
	return semantic.Version{Items: append([]int64(nil), v.Items...)}
}

// isSupportedVersion: 3 и 3.0 эквивалентны.
func isSupportedVersion(items []int64) bool {
	switch len(items) {
	case 1:
		return items[0] == 3
	case 2:
		return items[0] == 3 && items[1] == 0
	default:
		return false
	}
}

var scalarTypes = map[string]types.Type{
	"qubit": types.Qubit,
	"bit":   types.Bit,
	"bool":  types.Bool,
	"int":   types.Int,
	"float": types.Float,
	"axis":  types.Axis,
}

func (c *checker) declare(stmt *ast.Stmt, data *ast.VariableData) {
	if data == nil {
		return
	}
	typ, ok := scalarTypes[data.Type.Keyword.Name]
	if !ok {
		c.report(diag.SemaError, data.Type.Span, "unknown type '%s'", data.Type.Keyword.Name)
		return
	}
	if data.Type.IsArray() {
		size := c.tree.Exprs.Get(data.Type.Size)
		lit, _ := c.tree.Exprs.Literal(data.Type.Size)
		if size == nil || lit == nil || lit.Int <= 0 {
			span := data.Type.Span
			if size != nil {
				span = size.Span
			}
			c.report(diag.SemaBadArraySize, span, "declaring %s array of size <= 0", data.Type.Keyword.Name)
			return
		}
		arr, ok := types.ArrayOf(typ, lit.Int)
		if !ok {
			c.report(diag.SemaError, data.Type.Span, "%s cannot be declared as an array", typ)
			return
		}
		typ = arr
	}
	v := &semantic.Variable{Name: data.Name.Name, Type: typ, Span: data.Name.Span}
	// ошибка в аннотации не отменяет объявление: иначе каждое использование даст ещё одну ошибку
	if anns, ok := c.annotations(stmt.Annotations); ok {
		v.Annotations = anns
	}
	if err := c.scope.Declare(data.Name.Name, v); err != nil {
		c.reportErr(data.Name.Span, err, diag.SemaDuplicateDecl)
	}
}

// annotations evaluates the operands of every annotation of a statement.
func (c *checker) annotations(in []ast.Annotation) ([]semantic.AnnotationData, bool) {
	out := make([]semantic.AnnotationData, 0, len(in))
	for _, a := range in {
		operands, ok := c.values(a.Operands)
		if !ok {
			return nil, false
		}
		out = append(out, semantic.AnnotationData{
			Interface: a.Interface.Name,
			Operation: a.Operation.Name,
			Operands:  operands,
			Span:      a.Span,
		})
	}
	return out, true
}

func typesOf(values []semantic.Value) []types.Type {
	out := make([]types.Type, len(values))
	for i, v := range values {
		out[i] = v.Type()
	}
	return out
}
