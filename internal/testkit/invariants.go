package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cqasm/internal/ast"
	"cqasm/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed tree:
// 1) program span is non-empty and within file content bounds
// 2) every statement span is non-empty and fully contained in the program span
// 3) annotations sit after their statement anchor
// 4) every expression span points into the same file and stays within the program span
func CheckSpanInvariants(tree *ast.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	prog := tree.Program

	if prog.Span.Empty() || prog.Span.End < prog.Span.Start {
		return fmt.Errorf("program span is empty or inverted: %v", prog.Span)
	}
	if prog.Span.File != sf.ID {
		return fmt.Errorf("program span points to different file id: got=%d want=%d", prog.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if prog.Span.End > lenContent {
		return fmt.Errorf("program span end beyond content: %d > %d", prog.Span.End, lenContent)
	}
	if !within(prog.Version.Span, prog.Span) {
		return fmt.Errorf("version span %v is outside program span %v", prog.Version.Span, prog.Span)
	}

	for _, id := range prog.Block {
		stmt := tree.Stmts.Get(id)
		if stmt == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		sp := stmt.Span
		if sp.Empty() || sp.End < sp.Start {
			return fmt.Errorf("empty or inverted %s span: %v", stmt.Kind, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", stmt.Kind, sp.File, sf.ID)
		}
		if !within(sp, prog.Span) {
			return fmt.Errorf("%s span %v is outside program span %v", stmt.Kind, sp, prog.Span)
		}
		for _, ann := range stmt.Annotations {
			if ann.Span.Empty() || !within(ann.Span, prog.Span) || ann.Span.Start < sp.End {
				return fmt.Errorf("annotation %s.%s span %v is misplaced", ann.Interface.Name, ann.Operation.Name, ann.Span)
			}
		}
	}

	// арена выражений плотная: все узлы, включая вложенные
	exprs := tree.Exprs.Arena.Slice()
	for i := range exprs {
		sp := exprs[i].Span
		if sp.File != sf.ID {
			return fmt.Errorf("expression #%d span file mismatch: got=%d want=%d", i+1, sp.File, sf.ID)
		}
		if sp.End < sp.Start || !within(sp, prog.Span) {
			return fmt.Errorf("expression #%d span %v is outside program span %v", i+1, sp, prog.Span)
		}
	}
	return nil
}

func within(inner, outer source.Span) bool {
	return inner.Start >= outer.Start && inner.End <= outer.End
}
