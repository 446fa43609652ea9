package sema

import (
	"cqasm/internal/ast"
	"cqasm/internal/diag"
	"cqasm/internal/semantic"
	"cqasm/internal/source"
	"cqasm/internal/symbols"
)

func (c *checker) values(ids []ast.ExprID) ([]semantic.Value, bool) {
	out := make([]semantic.Value, 0, len(ids))
	for _, id := range ids {
		v, ok := c.value(id)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// value evaluates an expression. Operators and calls are folded through the
// constant-evaluation table; errors are pinned to the innermost failing node.
func (c *checker) value(id ast.ExprID) (semantic.Value, bool) {
	expr := c.tree.Exprs.Get(id)
	if expr == nil {
		return nil, false
	}
	switch expr.Kind {
	case ast.ExprIntLit:
		lit, _ := c.tree.Exprs.Literal(id)
		return semantic.ConstInt{Value: lit.Int, At: expr.Span}, true
	case ast.ExprFloatLit:
		lit, _ := c.tree.Exprs.Literal(id)
		return semantic.ConstFloat{Value: lit.Float, At: expr.Span}, true
	case ast.ExprBoolLit:
		lit, _ := c.tree.Exprs.Literal(id)
		return semantic.ConstBool{Value: lit.Bool, At: expr.Span}, true
	case ast.ExprIdent:
		ident, _ := c.tree.Exprs.Ident(id)
		return c.lookup(ident.Name, expr.Span)
	case ast.ExprIndex:
		data, _ := c.tree.Exprs.Index(id)
		return c.index(expr, data)
	case ast.ExprCall:
		data, _ := c.tree.Exprs.Call(id)
		return c.call(data.Name.Name, data.Args, expr.Span)
	case ast.ExprUnary:
		data, _ := c.tree.Exprs.Unary(id)
		return c.call("operator"+data.Op.Symbol(), []ast.ExprID{data.Operand}, expr.Span)
	case ast.ExprBinary:
		data, _ := c.tree.Exprs.Binary(id)
		return c.call("operator"+data.Op.Symbol(), []ast.ExprID{data.Left, data.Right}, expr.Span)
	case ast.ExprTernary:
		data, _ := c.tree.Exprs.Ternary(id)
		return c.call("operator?:", []ast.ExprID{data.Cond, data.IfTrue, data.IfFalse}, expr.Span)
	default:
		c.report(diag.SemaError, expr.Span, "unsupported expression %s", expr.Kind)
		return nil, false
	}
}

// lookup resolves a name to a declared variable first, then to a built-in constant.
func (c *checker) lookup(name string, at source.Span) (semantic.Value, bool) {
	v, err := c.scope.Lookup(name)
	if err == nil {
		return semantic.VariableRef{Variable: v, At: at}, true
	}
	if k, ok := symbols.Constant(name, at); ok {
		return k, true
	}
	c.reportErr(at, err, diag.SemaUnknownIdentifier)
	return nil, false
}

func (c *checker) call(name string, argIDs []ast.ExprID, at source.Span) (semantic.Value, bool) {
	args, ok := c.values(argIDs)
	if !ok {
		return nil, false
	}
	v, err := c.funcs.Call(name, args, at)
	if err != nil {
		c.reportErr(at, err, diag.SemaUnknownFunction)
		return nil, false
	}
	return v, true
}
