package semantic

import (
	"fmt"
	"strconv"

	"cqasm/internal/source"
	"cqasm/internal/types"
)

// Value is a closed set of resolved operand/parameter values.
type Value interface {
	Type() types.Type
	Span() source.Span
	String() string
	isValue()
}

// ConstBool is a folded boolean constant.
type ConstBool struct {
	Value bool
	At    source.Span
}

// ConstInt is a folded integer constant.
type ConstInt struct {
	Value int64
	At    source.Span
}

// ConstFloat is a folded floating-point constant.
type ConstFloat struct {
	Value float64
	At    source.Span
}

// VariableRef refers to a whole variable.
type VariableRef struct {
	Variable *Variable
	At       source.Span
}

// IndexRef refers to selected elements of an array variable.
// Indices are already expanded and bounds-checked.
type IndexRef struct {
	Variable *Variable
	Indices  []ConstInt
	At       source.Span
}

func (ConstBool) isValue()   {}
func (ConstInt) isValue()    {}
func (ConstFloat) isValue()  {}
func (VariableRef) isValue() {}
func (IndexRef) isValue()    {}

func (v ConstBool) Type() types.Type  { return types.Bool }
func (v ConstInt) Type() types.Type   { return types.Int }
func (v ConstFloat) Type() types.Type { return types.Float }

func (v VariableRef) Type() types.Type { return v.Variable.Type }

// Type is the element type for a single index, the array type otherwise.
func (v IndexRef) Type() types.Type {
	if len(v.Indices) == 1 {
		return v.Variable.Type.Elem()
	}
	return v.Variable.Type
}

func (v ConstBool) Span() source.Span   { return v.At }
func (v ConstInt) Span() source.Span    { return v.At }
func (v ConstFloat) Span() source.Span  { return v.At }
func (v VariableRef) Span() source.Span { return v.At }
func (v IndexRef) Span() source.Span    { return v.At }

func (v ConstBool) String() string { return strconv.FormatBool(v.Value) }
func (v ConstInt) String() string  { return strconv.FormatInt(v.Value, 10) }

// String keeps a decimal point so floats stay distinguishable from ints.
func (v ConstFloat) String() string {
	s := strconv.FormatFloat(v.Value, 'g', -1, 64)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E', 'n', 'N', 'I':
			return s
		}
	}
	return s + ".0"
}

func (v VariableRef) String() string { return v.Variable.Name }

func (v IndexRef) String() string {
	out := v.Variable.Name + "["
	for i, idx := range v.Indices {
		if i > 0 {
			out += ", "
		}
		out += idx.String()
	}
	return out + "]"
}

// Count returns how many elements the value addresses: the number of indices
// for an IndexRef, the array size for a VariableRef, 1 otherwise.
func Count(v Value) int64 {
	switch v := v.(type) {
	case IndexRef:
		return int64(len(v.Indices))
	case VariableRef:
		return v.Variable.Type.Size
	default:
		return 1
	}
}

// AsInt extracts an integer constant.
func AsInt(v Value) (int64, bool) {
	if c, ok := v.(ConstInt); ok {
		return c.Value, true
	}
	return 0, false
}

// IsConst reports whether v is a folded constant.
func IsConst(v Value) bool {
	switch v.(type) {
	case ConstBool, ConstInt, ConstFloat:
		return true
	default:
		return false
	}
}

// Promote converts a constant to the wider classical type to (bool → int → float).
func Promote(v Value, to types.Type) (Value, error) {
	if types.Matches(to, v.Type()) {
		return v, nil
	}
	switch c := v.(type) {
	case ConstBool:
		n := int64(0)
		if c.Value {
			n = 1
		}
		switch to.Kind {
		case types.KindInt:
			return ConstInt{Value: n, At: c.At}, nil
		case types.KindFloat:
			return ConstFloat{Value: float64(n), At: c.At}, nil
		}
	case ConstInt:
		if to.Kind == types.KindFloat {
			return ConstFloat{Value: float64(c.Value), At: c.At}, nil
		}
	}
	return nil, fmt.Errorf("cannot promote %s to %s", v.Type(), to)
}
