package parser

import (
	"testing"

	"cqasm/internal/ast"
)

// paramOf parses "version 3;G(<expr>)" and returns the parameter expression.
func paramOf(t *testing.T, expr string) (*ast.Tree, ast.ExprID) {
	t.Helper()
	tree := mustParse(t, "version 3;G("+expr+")")
	gate, ok := tree.Stmts.Gate(tree.Program.Block[0])
	if !ok || !gate.Param.IsValid() {
		t.Fatalf("no parameter parsed for %q", expr)
	}
	return tree, gate.Param
}

// render prints the expression fully parenthesized.
func render(tree *ast.Tree, id ast.ExprID) string {
	e := tree.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIntLit, ast.ExprFloatLit, ast.ExprBoolLit:
		lit, _ := tree.Exprs.Literal(id)
		return lit.Text
	case ast.ExprIdent:
		name, _ := tree.Exprs.Ident(id)
		return name.Name
	case ast.ExprUnary:
		u, _ := tree.Exprs.Unary(id)
		return "(" + u.Op.Symbol() + render(tree, u.Operand) + ")"
	case ast.ExprBinary:
		b, _ := tree.Exprs.Binary(id)
		return "(" + render(tree, b.Left) + " " + b.Op.Symbol() + " " + render(tree, b.Right) + ")"
	case ast.ExprTernary:
		c, _ := tree.Exprs.Ternary(id)
		return "(" + render(tree, c.Cond) + " ? " + render(tree, c.IfTrue) + " : " + render(tree, c.IfFalse) + ")"
	case ast.ExprCall:
		c, _ := tree.Exprs.Call(id)
		out := c.Name.Name + "("
		for i, a := range c.Args {
			if i > 0 {
				out += ", "
			}
			out += render(tree, a)
		}
		return out + ")"
	case ast.ExprIndex:
		idx, _ := tree.Exprs.Index(id)
		out := idx.Target.Name + "["
		for i, en := range idx.Entries {
			if i > 0 {
				out += ", "
			}
			out += render(tree, en.First)
			if en.IsRange() {
				out += ":" + render(tree, en.Last)
			}
		}
		return out + "]"
	}
	return "?"
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"-2 ** 2", "((-2) ** 2)"},
		{"+x", "x"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 << 2 + 3", "(1 << (2 + 3))"},
		{"a < b == c > d", "((a < b) == (c > d))"},
		{"a | b ^ c & d", "(a | (b ^ (c & d)))"},
		{"a || b ^^ c && d", "(a || (b ^^ (c && d)))"},
		{"!a && ~b", "((!a) && (~b))"},
		{"c ? 1 : d ? 2 : 3", "(c ? 1 : (d ? 2 : 3))"},
		{"sqrt(2) / pi", "(sqrt(2) / pi)"},
		{"max()", "max()"},
		{"q[0, 2:3]", "q[0, 2:3]"},
		{"1.5e3 % 2", "(1.5e3 % 2)"},
		{"true", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree, id := paramOf(t, tt.input)
			if got := render(tree, id); got != tt.want {
				t.Fatalf("render(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestBinaryAnchoredAtOperator(t *testing.T) {
	tree, id := paramOf(t, "1 + 2")
	res := tree.Exprs.Get(id)
	if res.Kind != ast.ExprBinary {
		t.Fatalf("kind = %s", res.Kind)
	}
	// "version 3;G(1 + 2)": '+' is at offset 14
	if res.Span.Start != 14 || res.Span.End != 15 {
		t.Fatalf("span = %v, want the operator token", res.Span)
	}
}

func TestMeasureWithIndexedOperands(t *testing.T) {
	tree := mustParse(t, "version 3;qubit[2] q;bit[2] b;b[0, 1] = measure q[0:1]")
	meas, ok := tree.Stmts.Measure(tree.Program.Block[2])
	if !ok {
		t.Fatalf("statement 2 is not a measure")
	}
	if got := render(tree, meas.Lhs); got != "b[0, 1]" {
		t.Fatalf("lhs = %s", got)
	}
	if got := render(tree, meas.Rhs); got != "q[0:1]" {
		t.Fatalf("rhs = %s", got)
	}
}
