package sema

import (
	"errors"
	"fmt"

	"cqasm/internal/ast"
	"cqasm/internal/diag"
	"cqasm/internal/semantic"
	"cqasm/internal/source"
	"cqasm/internal/types"
)

// ErrInvalidRange is returned by ExpandRange when last < first.
var ErrInvalidRange = errors.New("last index is lower than first index")

// ErrRangeTooWide is returned by ExpandRange when the range holds more than MaxRangeWidth indices.
var ErrRangeTooWide = errors.New("index range is too wide")

// MaxRangeWidth caps the number of indices one range entry expands to.
const MaxRangeWidth = 1 << 24

// BoundsError reports the first index outside [0, Size).
type BoundsError struct {
	Index int64
	Size  int64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("index %d out of range (size %d)", e.Index, e.Size)
}

// ExpandRange returns first, first+1, ..., last.
func ExpandRange(first, last int64) ([]int64, error) {
	if first > last {
		return nil, ErrInvalidRange
	}
	// разность в uint64 точна для любых first <= last
	if width := uint64(last) - uint64(first); width >= MaxRangeWidth {
		return nil, ErrRangeTooWide
	}
	out := make([]int64, 0, last-first+1)
	for i := first; ; i++ {
		out = append(out, i)
		if i == last {
			break
		}
	}
	return out, nil
}

// CheckBounds returns a *BoundsError for the first index outside [0, size).
func CheckBounds(indices []int64, size int64) error {
	for _, idx := range indices {
		if idx < 0 || idx >= size {
			return &BoundsError{Index: idx, Size: size}
		}
	}
	return nil
}

type indexBounds struct {
	first, last int64
	span        source.Span
}

// index resolves `name[entries]` to an IndexRef. Range order is validated for every
// entry before any bound is checked; ranges are expanded only once both hold.
func (c *checker) index(expr *ast.Expr, data *ast.ExprIndexData) (semantic.Value, bool) {
	target, ok := c.lookup(data.Target.Name, data.Target.Span)
	if !ok {
		return nil, false
	}
	ref, isVar := target.(semantic.VariableRef)
	if !isVar || !ref.Variable.Type.IsIndexable() {
		c.report(diag.SemaNotIndexable, expr.Span, "indexation is not supported for value of type '%s'", target.Type())
		return nil, false
	}

	bounds := make([]indexBounds, 0, len(data.Entries))
	for _, entry := range data.Entries {
		first, ok := c.constIndex(entry.First)
		if !ok {
			return nil, false
		}
		last := first
		if entry.IsRange() {
			if last, ok = c.constIndex(entry.Last); !ok {
				return nil, false
			}
			if first > last {
				c.report(diag.SemaInvalidIndexRange, entry.Span, "%s", ErrInvalidRange.Error())
				return nil, false
			}
		}
		bounds = append(bounds, indexBounds{first: first, last: last, span: entry.Span})
	}

	size := ref.Variable.Type.Size
	for _, b := range bounds {
		// a range is contiguous: its endpoints decide
		if err := CheckBounds([]int64{b.first, b.last}, size); err != nil {
			c.report(diag.SemaIndexOutOfRange, expr.Span, "%s", err.Error())
			return nil, false
		}
	}

	var indices []semantic.ConstInt
	for _, b := range bounds {
		expanded, err := ExpandRange(b.first, b.last)
		if err != nil {
			c.report(diag.SemaInvalidIndexRange, b.span, "%s", err.Error())
			return nil, false
		}
		for _, idx := range expanded {
			indices = append(indices, semantic.ConstInt{Value: idx, At: b.span})
		}
	}
	return semantic.IndexRef{Variable: ref.Variable, Indices: indices, At: expr.Span}, true
}

// constIndex evaluates an index expression to a constant integer (bools promote).
func (c *checker) constIndex(id ast.ExprID) (int64, bool) {
	v, ok := c.value(id)
	if !ok {
		return 0, false
	}
	if semantic.IsConst(v) && types.CanPromote(v.Type(), types.Int) {
		if p, err := semantic.Promote(v, types.Int); err == nil {
			if n, ok := semantic.AsInt(p); ok {
				return n, true
			}
		}
	}
	c.report(diag.SemaExpectedInteger, v.Span(), "expected an integer")
	return 0, false
}
