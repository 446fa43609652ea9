package types

import (
	"fmt"
	"strings"
)

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindQubit
	KindBit
	KindBool
	KindInt
	KindFloat
	KindAxis
	KindQubitArray
	KindBitArray
	KindBoolArray
	KindIntArray
	KindFloatArray
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindQubit:
		return "qubit"
	case KindBit:
		return "bit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindAxis:
		return "axis"
	case KindQubitArray:
		return "qubit array"
	case KindBitArray:
		return "bit array"
	case KindBoolArray:
		return "bool array"
	case KindIntArray:
		return "int array"
	case KindFloatArray:
		return "float array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// NodeName returns the tag of the type in the serialized tree ("QubitArray").
func (k Kind) NodeName() string {
	switch k {
	case KindQubit:
		return "Qubit"
	case KindBit:
		return "Bit"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindAxis:
		return "Axis"
	case KindQubitArray:
		return "QubitArray"
	case KindBitArray:
		return "BitArray"
	case KindBoolArray:
		return "BoolArray"
	case KindIntArray:
		return "IntArray"
	case KindFloatArray:
		return "FloatArray"
	default:
		return "Invalid"
	}
}

// Type is a value type. Size is meaningful for arrays only; scalars have size 1.
type Type struct {
	Kind Kind
	Size int64
}

var (
	Invalid = Type{Kind: KindInvalid}
	Qubit   = Type{Kind: KindQubit, Size: 1}
	Bit     = Type{Kind: KindBit, Size: 1}
	Bool    = Type{Kind: KindBool, Size: 1}
	Int     = Type{Kind: KindInt, Size: 1}
	Float   = Type{Kind: KindFloat, Size: 1}
	// Axis is a three-component direction; it is not indexable.
	Axis = Type{Kind: KindAxis, Size: 1}
)

var arrayOf = map[Kind]Kind{
	KindQubit: KindQubitArray,
	KindBit:   KindBitArray,
	KindBool:  KindBoolArray,
	KindInt:   KindIntArray,
	KindFloat: KindFloatArray,
}

// QubitArray builds a qubit array type of the given size.
func QubitArray(size int64) Type { return Type{Kind: KindQubitArray, Size: size} }

// BitArray builds a bit array type of the given size.
func BitArray(size int64) Type { return Type{Kind: KindBitArray, Size: size} }

// ArrayOf builds an array of elem; axis has no array form.
func ArrayOf(elem Type, size int64) (Type, bool) {
	k, ok := arrayOf[elem.Kind]
	if !ok {
		return Invalid, false
	}
	return Type{Kind: k, Size: size}, true
}

// String returns the user-facing name used in diagnostics and instruction references.
func (t Type) String() string { return t.Kind.String() }

func (t Type) IsValid() bool { return t.Kind != KindInvalid }

func (t Type) IsArray() bool {
	return t.Kind >= KindQubitArray && t.Kind <= KindFloatArray
}

// IsIndexable: индексировать можно только массивы кубитов и битов.
func (t Type) IsIndexable() bool {
	return t.Kind == KindQubitArray || t.Kind == KindBitArray
}

// Elem returns the element type of an array; scalars are returned unchanged.
func (t Type) Elem() Type {
	switch t.Kind {
	case KindQubitArray:
		return Qubit
	case KindBitArray:
		return Bit
	case KindBoolArray:
		return Bool
	case KindIntArray:
		return Int
	case KindFloatArray:
		return Float
	default:
		return t
	}
}

// Join renders a list of types for argument packs: "qubit array, bit".
func Join(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
