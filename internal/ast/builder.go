package ast

type Hints struct{ Stmts, Exprs uint }

// Builder owns the arenas of one parsed file.
type Builder struct {
	Stmts *Stmts
	Exprs *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 6
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
	}
}

// Tree is a parsed program together with the arenas its IDs point into.
type Tree struct {
	Program Program
	Stmts   *Stmts
	Exprs   *Exprs
}

// Finish wraps the program into a Tree sharing the builder's arenas.
func (b *Builder) Finish(prog Program) *Tree {
	return &Tree{
		Program: prog,
		Stmts:   b.Stmts,
		Exprs:   b.Exprs,
	}
}
