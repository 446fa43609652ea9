package ast

import (
	"testing"

	"cqasm/internal/source"
)

func TestArenaIndicesAreOneBased(t *testing.T) {
	a := NewArena[int](0)
	if got := a.Get(0); got != nil {
		t.Fatalf("Get(0) = %v, want nil", *got)
	}
	id := a.Allocate(42)
	if id != 1 {
		t.Fatalf("first id = %d, want 1", id)
	}
	if got := a.Get(id); got == nil || *got != 42 {
		t.Fatalf("Get(1) = %v", got)
	}
	if got := a.Get(2); got != nil {
		t.Fatalf("Get past end = %v, want nil", *got)
	}
	if a.Len() != 1 {
		t.Fatalf("Len = %d", a.Len())
	}
}

func TestBuilderPayloadAccessors(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := func(start, end uint32) source.Span { return source.Span{File: 1, Start: start, End: end} }

	q := Ident{Name: "q", Span: sp(2, 3)}
	zero := b.Exprs.NewLiteral(ExprIntLit, sp(4, 5), ExprLiteralData{Text: "0", Int: 0})
	four := b.Exprs.NewLiteral(ExprIntLit, sp(6, 7), ExprLiteralData{Text: "4", Int: 4})
	idx := b.Exprs.NewIndex(q, []IndexEntry{{First: zero, Last: four, Span: sp(4, 7)}})
	gate := b.Stmts.NewGate(Ident{Name: "H", Span: sp(0, 1)}, NoExprID, []ExprID{idx})

	g, ok := b.Stmts.Gate(gate)
	if !ok || g.Name.Name != "H" || len(g.Operands) != 1 {
		t.Fatalf("gate payload = %+v, %v", g, ok)
	}
	if _, ok := b.Stmts.Measure(gate); ok {
		t.Fatalf("gate must not be readable as measure")
	}
	data, ok := b.Exprs.Index(g.Operands[0])
	if !ok || data.Target.Name != "q" || !data.Entries[0].IsRange() {
		t.Fatalf("index payload = %+v", data)
	}
	if got := b.Exprs.Get(idx).Span; got != q.Span {
		t.Fatalf("index span = %v, want name span %v", got, q.Span)
	}
	lit, ok := b.Exprs.Literal(four)
	if !ok || lit.Int != 4 {
		t.Fatalf("literal = %+v", lit)
	}
	if _, ok := b.Exprs.Literal(idx); ok {
		t.Fatalf("index must not be readable as literal")
	}
}

func TestModifiedGateAndAnnotations(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := func(start, end uint32) source.Span { return source.Span{File: 1, Start: start, End: end} }

	two := b.Exprs.NewLiteral(ExprIntLit, sp(4, 5), ExprLiteralData{Text: "2", Int: 2})
	mods := []GateModifier{
		{Name: Ident{Name: "pow", Span: sp(0, 3)}, Param: two},
		{Name: Ident{Name: "inv", Span: sp(7, 10)}, Param: NoExprID},
	}
	id := b.Stmts.NewModifiedGate(mods, Ident{Name: "X", Span: sp(11, 12)}, NoExprID, nil)
	mods[0].Name.Name = "ctrl"

	g, ok := b.Stmts.Gate(id)
	if !ok || !g.IsModified() || len(g.Modifiers) != 2 {
		t.Fatalf("gate payload = %+v, %v", g, ok)
	}
	if g.Modifiers[0].Name.Name != "pow" || g.Modifiers[1].Param.IsValid() {
		t.Fatalf("modifiers = %+v", g.Modifiers)
	}
	if got := b.Stmts.Get(id).Span; got != sp(0, 3) {
		t.Fatalf("statement span = %v, want outermost modifier", got)
	}

	plain := b.Stmts.NewModifiedGate(nil, Ident{Name: "H", Span: sp(20, 21)}, NoExprID, nil)
	if g, _ := b.Stmts.Gate(plain); g.IsModified() {
		t.Fatalf("gate without modifiers reported as modified")
	}

	b.Stmts.Annotate(id, []Annotation{{Interface: Ident{Name: "hw"}, Operation: Ident{Name: "pin"}}})
	b.Stmts.Annotate(id, []Annotation{{Interface: Ident{Name: "sched"}, Operation: Ident{Name: "late"}}})
	anns := b.Stmts.Get(id).Annotations
	if len(anns) != 2 || anns[0].Operation.Name != "pin" || anns[1].Interface.Name != "sched" {
		t.Fatalf("annotations = %+v", anns)
	}
	b.Stmts.Annotate(NoStmtID, []Annotation{{}})
}

func TestVersionString(t *testing.T) {
	cases := []struct {
		items []int64
		want  string
	}{
		{[]int64{3}, "3"},
		{[]int64{3, 0}, "3.0"},
		{[]int64{1, 10}, "1.10"},
	}
	for _, tc := range cases {
		if got := (Version{Items: tc.items}).String(); got != tc.want {
			t.Fatalf("Version%v = %q, want %q", tc.items, got, tc.want)
		}
	}
}

func TestBinaryOpNames(t *testing.T) {
	if BinaryPower.Symbol() != "**" || BinaryPower.NodeName() != "PowerExpression" {
		t.Fatalf("power: %q %q", BinaryPower.Symbol(), BinaryPower.NodeName())
	}
	if BinaryLogicalXor.Symbol() != "^^" {
		t.Fatalf("logical xor symbol = %q", BinaryLogicalXor.Symbol())
	}
	if UnaryMinus.NodeName() != "UnaryMinusExpression" {
		t.Fatalf("unary minus = %q", UnaryMinus.NodeName())
	}
}
