package semantic

import (
	"strings"

	"cqasm/internal/source"
	"cqasm/internal/types"
)

// APIVersion is the schema version of the serialized program.
const APIVersion = "3.0"

// Variable is a declared variable. Operands point back at it.
type Variable struct {
	Name        string
	Type        types.Type
	Annotations []AnnotationData
	Span        source.Span
}

// AnnotationData is `@ interface.operation(operands)` with evaluated operands.
type AnnotationData struct {
	Interface string
	Operation string
	Operands  []Value
	Span      source.Span
}

// String renders the annotation without the '@': "pragma.tag(1, 2)".
func (a AnnotationData) String() string {
	if len(a.Operands) == 0 {
		return a.Interface + "." + a.Operation
	}
	parts := make([]string, len(a.Operands))
	for i, op := range a.Operands {
		parts[i] = op.String()
	}
	return a.Interface + "." + a.Operation + "(" + strings.Join(parts, ", ") + ")"
}

// Gate is the modifier chain of a modified gate instruction, outermost first:
// pow(2).inv.X is pow -> inv -> X. Parameter is the resolved modifier or gate parameter.
type Gate struct {
	Name      string
	Gate      *Gate
	Parameter Value
}

// String spells the chain back: "pow(2.0).inv.X".
func (g *Gate) String() string {
	var b strings.Builder
	for ; g != nil; g = g.Gate {
		b.WriteString(g.Name)
		if g.Parameter != nil {
			b.WriteString("(" + g.Parameter.String() + ")")
		}
		if g.Gate != nil {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Terminal returns the named gate at the end of the chain.
func (g *Gate) Terminal() *Gate {
	for g.Gate != nil {
		g = g.Gate
	}
	return g
}

// Version is the language version declared by the program.
type Version struct {
	Items []int64
}

// InstructionKind distinguishes gates from non-gate instructions.
type InstructionKind uint8

const (
	KindGate InstructionKind = iota
	KindNonGate
)

func (k InstructionKind) String() string {
	if k == KindGate {
		return "GateInstruction"
	}
	return "NonGateInstruction"
}

// Instruction is a statement bound to one catalog overload.
type Instruction struct {
	Kind InstructionKind
	// Ref is the resolved overload, "H(qubit array)".
	Ref  string
	Name string
	// Gate is set for modified gates only; Name is then its outermost modifier.
	Gate        *Gate
	Parameter   Value // nil when the instruction takes none
	Operands    []Value
	Annotations []AnnotationData
	Span        source.Span
}

// Block holds statements in source order.
type Block struct {
	Statements []*Instruction
}

// Program is the result of a successful analysis.
type Program struct {
	APIVersion string
	Version    Version
	Block      Block
	Variables  []*Variable
}
