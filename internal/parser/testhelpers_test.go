package parser

import (
	"fmt"
	"strings"
	"testing"

	"cqasm/internal/ast"
	"cqasm/internal/diag"
	"cqasm/internal/source"
)

type parsed struct {
	tree *ast.Tree
	bag  *diag.Bag
	fs   *source.FileSet
}

func parseSource(t *testing.T, input string) parsed {
	return parseSourceWithOptions(t, input, Options{MaxErrors: DefaultMaxErrors})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) parsed {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	opts.Reporter = diag.BagReporter{Bag: bag}

	res := ParseFile(file, ast.NewBuilder(ast.Hints{}), opts)
	if res.Errors != uint(bag.Len()) {
		t.Fatalf("Result.Errors = %d, bag has %d", res.Errors, bag.Len())
	}
	return parsed{tree: res.Tree, bag: bag, fs: fs}
}

func mustParse(t *testing.T, input string) *ast.Tree {
	t.Helper()
	res := parseSource(t, input)
	if res.tree == nil || res.bag.Len() != 0 {
		t.Fatalf("parse %q failed: %s", input, diagnosticsSummary(res))
	}
	return res.tree
}

// diagnosticsSummary renders "message @ location" for each diagnostic.
func diagnosticsSummary(res parsed) string {
	diags := res.bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s @ %s", d.Code.ID(), d.Message, res.fs.Location(d.Primary))
	}
	return strings.Join(lines, "; ")
}
