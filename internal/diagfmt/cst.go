package diagfmt

import (
	"strconv"

	"cqasm/internal/ast"
	"cqasm/internal/semantic"
	"cqasm/internal/source"
)

// tagged wraps a node payload under its kind name: {"Program": {...}}.
type tagged map[string]any

func tag(kind string, payload any) tagged { return tagged{kind: payload} }

// Пустые списки и отсутствующие узлы сериализуются строками "[]" и "-".
const (
	emptyList  = "[]"
	emptyMaybe = "-"
)

func list(items []any) any {
	if len(items) == 0 {
		return emptyList
	}
	return items
}

type cstProgramJSON struct {
	Version any `json:"version"`
	Block   any `json:"block"`
}

type cstVersionJSON struct {
	Items          string `json:"items"`
	SourceLocation string `json:"source_location,omitempty"`
}

type statementsJSON struct {
	Statements any `json:"statements"`
}

type nameJSON struct {
	Name string `json:"name"`
}

type cstVariableJSON struct {
	Name           any    `json:"name"`
	Typ            any    `json:"typ"`
	Annotations    any    `json:"annotations"`
	SourceLocation string `json:"source_location"`
}

type cstTypeJSON struct {
	Name           any    `json:"name"`
	Size           any    `json:"size"`
	SourceLocation string `json:"source_location"`
}

// gateJSON: parameter и вложенный gate выводятся только когда они есть.
type gateJSON struct {
	Name           any    `json:"name"`
	Gate           any    `json:"gate,omitempty"`
	Parameter      any    `json:"parameter,omitempty"`
	Operands       any    `json:"operands,omitempty"`
	Annotations    any    `json:"annotations,omitempty"`
	SourceLocation string `json:"source_location"`
}

type annotationDataJSON struct {
	Interface      any    `json:"interface"`
	Operation      any    `json:"operation"`
	Operands       any    `json:"operands"`
	SourceLocation string `json:"source_location,omitempty"`
}

type measureJSON struct {
	Name           any    `json:"name"`
	Lhs            any    `json:"lhs"`
	Rhs            any    `json:"rhs"`
	Annotations    any    `json:"annotations"`
	SourceLocation string `json:"source_location"`
}

type itemsJSON struct {
	Items any `json:"items"`
}

type indexJSON struct {
	Expr           any    `json:"expr"`
	Indices        any    `json:"indices"`
	SourceLocation string `json:"source_location"`
}

type indexItemJSON struct {
	Index any `json:"index"`
}

type indexRangeJSON struct {
	First any `json:"first"`
	Last  any `json:"last"`
}

type literalJSON struct {
	Value          string `json:"value"`
	SourceLocation string `json:"source_location,omitempty"`
}

type identifierJSON struct {
	Name           string `json:"name"`
	SourceLocation string `json:"source_location,omitempty"`
}

type binaryJSON struct {
	Lhs            any    `json:"lhs"`
	Rhs            any    `json:"rhs"`
	SourceLocation string `json:"source_location"`
}

type unaryJSON struct {
	Expr           any    `json:"expr"`
	SourceLocation string `json:"source_location"`
}

type ternaryJSON struct {
	Cond           any    `json:"cond"`
	IfTrue         any    `json:"if_true"`
	IfFalse        any    `json:"if_false"`
	SourceLocation string `json:"source_location"`
}

type callJSON struct {
	Name           any    `json:"name"`
	Arguments      any    `json:"arguments"`
	SourceLocation string `json:"source_location"`
}

// CSTJSON renders a parsed tree in its tagged JSON form.
func CSTJSON(tree *ast.Tree, fs *source.FileSet) (string, error) {
	return marshalCompact(BuildCST(tree, fs))
}

// BuildCST builds the tagged document without serializing it.
func BuildCST(tree *ast.Tree, fs *source.FileSet) any {
	b := cstBuilder{tree: tree, fs: fs}
	return b.program()
}

type cstBuilder struct {
	tree *ast.Tree
	fs   *source.FileSet
}

func (b *cstBuilder) loc(span source.Span) string {
	if b.fs == nil || b.fs.Get(span.File) == nil {
		return ""
	}
	return b.fs.Location(span).String()
}

func (b *cstBuilder) program() any {
	prog := b.tree.Program
	stmts := make([]any, 0, len(prog.Block))
	for _, id := range prog.Block {
		if s := b.stmt(id); s != nil {
			stmts = append(stmts, s)
		}
	}
	return tag("Program", cstProgramJSON{
		Version: tag("Version", cstVersionJSON{
			Items:          prog.Version.String(),
			SourceLocation: b.loc(prog.Version.Span),
		}),
		Block: tag("GlobalBlock", statementsJSON{Statements: list(stmts)}),
	})
}

func (b *cstBuilder) stmt(id ast.StmtID) any {
	stmt := b.tree.Stmts.Get(id)
	if stmt == nil {
		return nil
	}
	switch stmt.Kind {
	case ast.StmtVariable:
		data, _ := b.tree.Stmts.Variable(id)
		size := any(emptyMaybe)
		if data.Type.IsArray() {
			if lit, ok := b.tree.Exprs.Literal(data.Type.Size); ok {
				size = tag("IntegerLiteral", literalJSON{Value: strconv.FormatInt(lit.Int, 10)})
			}
		}
		return tag(stmt.Kind.String(), cstVariableJSON{
			Name: tag("Identifier", nameJSON{Name: data.Name.Name}),
			Typ: tag("Type", cstTypeJSON{
				Name:           tag("Keyword", nameJSON{Name: data.Type.Keyword.Name}),
				Size:           size,
				SourceLocation: b.loc(data.Type.Span),
			}),
			Annotations:    b.annotations(stmt.Annotations),
			SourceLocation: b.loc(stmt.Span),
		})
	case ast.StmtGate:
		data, _ := b.tree.Stmts.Gate(id)
		g := b.gate(data)
		g.Operands = tag("ExpressionList", itemsJSON{Items: b.exprs(data.Operands)})
		g.Annotations = b.annotations(stmt.Annotations)
		g.SourceLocation = b.loc(stmt.Span)
		return tag(stmt.Kind.String(), g)
	case ast.StmtMeasure:
		data, _ := b.tree.Stmts.Measure(id)
		return tag(stmt.Kind.String(), measureJSON{
			Name:           tag("Identifier", nameJSON{Name: data.Keyword.Name}),
			Lhs:            b.expr(data.Lhs),
			Rhs:            b.expr(data.Rhs),
			Annotations:    b.annotations(stmt.Annotations),
			SourceLocation: b.loc(stmt.Span),
		})
	}
	return nil
}

// gate строит цепочку модификаторов снаружи внутрь: pow(2).X даёт
// {"name":pow,"gate":{"Gate":{"name":X}},"parameter":2}.
func (b *cstBuilder) gate(data *ast.GateData) gateJSON {
	inner := gateJSON{Name: tag("Identifier", nameJSON{Name: data.Name.Name})}
	if data.Param.IsValid() {
		inner.Parameter = b.expr(data.Param)
	}
	for i := len(data.Modifiers) - 1; i >= 0; i-- {
		mod := data.Modifiers[i]
		inner.SourceLocation = b.loc(gateSpan(data, i+1))
		outer := gateJSON{
			Name: tag("Identifier", nameJSON{Name: mod.Name.Name}),
			Gate: tag("Gate", inner),
		}
		if mod.Param.IsValid() {
			outer.Parameter = b.expr(mod.Param)
		}
		inner = outer
	}
	return inner
}

// gateSpan — позиция i-го звена цепочки; последнее звено — имя гейта.
func gateSpan(data *ast.GateData, i int) source.Span {
	if i < len(data.Modifiers) {
		return data.Modifiers[i].Name.Span
	}
	return data.Name.Span
}

func (b *cstBuilder) annotations(in []ast.Annotation) any {
	out := make([]any, 0, len(in))
	for _, a := range in {
		operands := any(emptyMaybe)
		if len(a.Operands) > 0 {
			operands = tag("ExpressionList", itemsJSON{Items: b.exprs(a.Operands)})
		}
		out = append(out, tag("AnnotationData", annotationDataJSON{
			Interface:      tag("Identifier", nameJSON{Name: a.Interface.Name}),
			Operation:      tag("Identifier", nameJSON{Name: a.Operation.Name}),
			Operands:       operands,
			SourceLocation: b.loc(a.Span),
		}))
	}
	return list(out)
}

func (b *cstBuilder) exprs(ids []ast.ExprID) any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.expr(id))
	}
	return list(out)
}

func (b *cstBuilder) expr(id ast.ExprID) any {
	expr := b.tree.Exprs.Get(id)
	if expr == nil {
		return emptyMaybe
	}
	at := b.loc(expr.Span)
	switch expr.Kind {
	case ast.ExprIdent:
		ident, _ := b.tree.Exprs.Ident(id)
		return tag("Identifier", identifierJSON{Name: ident.Name, SourceLocation: at})
	case ast.ExprIntLit:
		lit, _ := b.tree.Exprs.Literal(id)
		return tag("IntegerLiteral", literalJSON{Value: strconv.FormatInt(lit.Int, 10), SourceLocation: at})
	case ast.ExprFloatLit:
		lit, _ := b.tree.Exprs.Literal(id)
		return tag("FloatLiteral", literalJSON{Value: semantic.ConstFloat{Value: lit.Float}.String(), SourceLocation: at})
	case ast.ExprBoolLit:
		lit, _ := b.tree.Exprs.Literal(id)
		return tag("BooleanLiteral", literalJSON{Value: strconv.FormatBool(lit.Bool), SourceLocation: at})
	case ast.ExprIndex:
		data, _ := b.tree.Exprs.Index(id)
		entries := make([]any, 0, len(data.Entries))
		for _, e := range data.Entries {
			if e.IsRange() {
				entries = append(entries, tag("IndexRange", indexRangeJSON{First: b.expr(e.First), Last: b.expr(e.Last)}))
			} else {
				entries = append(entries, tag("IndexItem", indexItemJSON{Index: b.expr(e.First)}))
			}
		}
		return tag("Index", indexJSON{
			Expr:           tag("Identifier", identifierJSON{Name: data.Target.Name}),
			Indices:        tag("IndexList", itemsJSON{Items: list(entries)}),
			SourceLocation: at,
		})
	case ast.ExprCall:
		data, _ := b.tree.Exprs.Call(id)
		args := any(emptyMaybe)
		if len(data.Args) > 0 {
			args = tag("ExpressionList", itemsJSON{Items: b.exprs(data.Args)})
		}
		return tag("FunctionCall", callJSON{
			Name:           tag("Identifier", identifierJSON{Name: data.Name.Name}),
			Arguments:      args,
			SourceLocation: at,
		})
	case ast.ExprUnary:
		data, _ := b.tree.Exprs.Unary(id)
		return tag(data.Op.NodeName(), unaryJSON{Expr: b.expr(data.Operand), SourceLocation: at})
	case ast.ExprBinary:
		data, _ := b.tree.Exprs.Binary(id)
		return tag(data.Op.NodeName(), binaryJSON{Lhs: b.expr(data.Left), Rhs: b.expr(data.Right), SourceLocation: at})
	case ast.ExprTernary:
		data, _ := b.tree.Exprs.Ternary(id)
		return tag("TernaryConditionalExpression", ternaryJSON{
			Cond:           b.expr(data.Cond),
			IfTrue:         b.expr(data.IfTrue),
			IfFalse:        b.expr(data.IfFalse),
			SourceLocation: at,
		})
	}
	return emptyMaybe
}
