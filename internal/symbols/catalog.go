package symbols

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"cqasm/internal/types"
)

// Signature is one overload of an instruction.
type Signature struct {
	Name string
	// Param is types.Invalid when the instruction takes no parameter.
	Param    types.Type
	Operands []types.Type
	Gate     bool
}

// HasParam reports whether the overload expects a parenthesized parameter.
func (s Signature) HasParam() bool { return s.Param.IsValid() }

// Ref renders the overload the way the serialized program references it: "H(qubit array)".
func (s Signature) Ref() string {
	return s.Name + "(" + types.Join(s.Operands) + ")"
}

func (s Signature) accepts(operands []types.Type) bool {
	if len(operands) != len(s.Operands) {
		return false
	}
	for i, want := range s.Operands {
		if !types.CanPromote(operands[i], want) {
			return false
		}
	}
	return true
}

// Catalog is the read-only instruction set. Lookup is case-sensitive.
type Catalog struct {
	byName    map[string][]Signature
	names     []string
	modifiers map[string]Modifier
}

// Modifier describes a gate modifier. A single-qubit modifier (inv, pow) keeps
// the operand shape of the gate, a two-qubit one (ctrl) prepends a control qubit.
type Modifier struct {
	Name string
	// Param is types.Invalid when the modifier takes no parameter.
	Param    types.Type
	TwoQubit bool
}

// Префиксы имён, под которыми регистрируются модифицированные гейты: 1q_X, 2q_X.
const (
	SingleQubitPrefix = "1q"
	TwoQubitPrefix    = "2q"
)

// CatalogEntry describes an overload with compact type codes (see types.FromSpec).
type CatalogEntry struct {
	Name     string
	Param    string
	Operands string
	Gate     bool
}

var (
	builtinOnce    sync.Once
	builtinCatalog *Catalog
)

// Builtins returns the process-wide instruction catalog, built on first use.
func Builtins() *Catalog {
	builtinOnce.Do(func() {
		builtinCatalog = NewCatalog(builtinCatalogEntries())
	})
	return builtinCatalog
}

// NewCatalog builds a catalog from entries; later entries of the same name win ties.
func NewCatalog(entries []CatalogEntry) *Catalog {
	c := &Catalog{
		byName:    make(map[string][]Signature, len(entries)),
		modifiers: builtinModifiers(),
	}
	for _, e := range entries {
		sig := Signature{
			Name:     e.Name,
			Param:    types.Invalid,
			Operands: types.MustFromSpec(e.Operands),
			Gate:     e.Gate,
		}
		if e.Param != "" {
			sig.Param = types.MustFromSpec(e.Param)[0]
		}
		if _, ok := c.byName[e.Name]; !ok && !isComposition(e.Name) {
			c.names = append(c.names, e.Name)
		}
		c.byName[e.Name] = append(c.byName[e.Name], sig)
	}
	sort.Strings(c.names)
	return c
}

// Has reports whether any overload is registered under name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Overloads returns the overloads of name in registration order.
func (c *Catalog) Overloads(name string) []Signature {
	return c.byName[name]
}

// ParamType returns the parameter type shared by the overloads of name,
// or the parameter type of the modifier called name.
func (c *Catalog) ParamType(name string) (types.Type, bool) {
	if m, ok := c.modifiers[name]; ok {
		return m.Param, m.Param.IsValid()
	}
	overloads := c.byName[name]
	if len(overloads) == 0 || !overloads[0].HasParam() {
		return types.Invalid, false
	}
	return overloads[0].Param, true
}

// IsGate reports whether name is a known gate; unknown names are not gates.
func (c *Catalog) IsGate(name string) bool {
	overloads := c.byName[name]
	return len(overloads) > 0 && overloads[0].Gate
}

// IsTwoQubitGate reports whether name is a gate acting on two qubit operands,
// either a named gate (CNOT) or a ctrl composition (2q_X).
func (c *Catalog) IsTwoQubitGate(name string) bool {
	overloads := c.byName[name]
	return len(overloads) > 0 && overloads[0].Gate && len(overloads[0].Operands) == 2
}

// Modifier returns the gate modifier called name.
func (c *Catalog) Modifier(name string) (Modifier, bool) {
	m, ok := c.modifiers[name]
	return m, ok
}

// CompositionName is the name a modified gate resolves under:
// inv.X and pow(2).X give 1q_X, ctrl.X gives 2q_X.
func (c *Catalog) CompositionName(modifier, terminal string) string {
	prefix := SingleQubitPrefix
	if m, ok := c.modifiers[modifier]; ok && m.TwoQubit {
		prefix = TwoQubitPrefix
	}
	return prefix + "_" + terminal
}

func isComposition(name string) bool {
	return strings.HasPrefix(name, SingleQubitPrefix+"_") || strings.HasPrefix(name, TwoQubitPrefix+"_")
}

// Names returns all instruction names, sorted.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Resolve picks the overload of name accepting the operand types. Overloads are tried
// from the last registered to the first; operands match exactly or by promotion.
func (c *Catalog) Resolve(name string, operands []types.Type) (Signature, error) {
	overloads, ok := c.byName[name]
	if !ok {
		return Signature{}, newError(ErrUnknown, instructionMessage(name, operands))
	}
	for i := len(overloads) - 1; i >= 0; i-- {
		if overloads[i].accepts(operands) {
			return overloads[i], nil
		}
	}
	return Signature{}, newError(ErrNoOverload, instructionMessage(name, operands))
}

func instructionMessage(name string, operands []types.Type) string {
	return fmt.Sprintf("failed to resolve instruction '%s' with argument pack (%s)", name, types.Join(operands))
}

var (
	singleQubitGates = []string{"H", "I", "mX90", "mY90", "S", "Sdag", "T", "Tdag", "X", "X90", "Y", "Y90", "Z"}
	rotationGates    = []string{"Rx", "Ry", "Rz"}
	twoQubitGates    = []string{"CNOT", "CZ", "SWAP"}
	lowercaseAliases = []string{"h", "x", "y", "z", "i", "s", "t", "cnot", "cz", "swap"}
	singleOperands   = []string{"Q", "V"}
	pairOperands     = []string{"QQ", "QV", "VQ", "VV"}
)

// builtinCatalogEntries returns the cQASM 3.0 instruction set.
func builtinCatalogEntries() []CatalogEntry {
	var out []CatalogEntry
	gate := func(name, param string, operands []string) {
		for _, ops := range operands {
			out = append(out, CatalogEntry{Name: name, Param: param, Operands: ops, Gate: true})
		}
	}
	nonGate := func(name, param string, operands ...string) {
		for _, ops := range operands {
			out = append(out, CatalogEntry{Name: name, Param: param, Operands: ops})
		}
	}

	for _, name := range singleQubitGates {
		gate(name, "", singleOperands)
	}
	for _, name := range rotationGates {
		gate(name, "f", singleOperands)
	}
	for _, name := range twoQubitGates {
		gate(name, "", pairOperands)
	}
	gate("CR", "f", pairOperands)
	gate("CRk", "i", pairOperands)
	for _, name := range lowercaseAliases {
		if isTwoQubitAlias(name) {
			gate(name, "", pairOperands)
		} else {
			gate(name, "", singleOperands)
		}
	}

	// inv.G / pow(f).G сохраняют операнды G, ctrl.G добавляет управляющий кубит
	var single []CatalogEntry
	for _, e := range out {
		if len(e.Operands) == 1 {
			single = append(single, e)
		}
	}
	for _, e := range single {
		gate(SingleQubitPrefix+"_"+e.Name, "", []string{e.Operands})
	}
	for _, e := range single {
		gate(TwoQubitPrefix+"_"+e.Name, "", []string{"Q" + e.Operands, "V" + e.Operands})
	}

	// bit side first, then qubit side
	nonGate("measure", "", "BQ", "WV", "BV", "WQ")
	nonGate("reset", "", "", "Q", "V")
	nonGate("init", "", "Q", "V")
	nonGate("barrier", "", "Q", "V")
	nonGate("wait", "i", "Q", "V")
	return out
}

func builtinModifiers() map[string]Modifier {
	return map[string]Modifier{
		"inv":  {Name: "inv", Param: types.Invalid},
		"pow":  {Name: "pow", Param: types.Float},
		"ctrl": {Name: "ctrl", Param: types.Invalid, TwoQubit: true},
	}
}

func isTwoQubitAlias(name string) bool {
	switch name {
	case "cnot", "cz", "swap":
		return true
	default:
		return false
	}
}
