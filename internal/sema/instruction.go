package sema

import (
	"cqasm/internal/ast"
	"cqasm/internal/diag"
	"cqasm/internal/semantic"
	"cqasm/internal/source"
	"cqasm/internal/types"
)

// gate checks a named instruction. Gates resolve their parameter before the operands,
// non-gate instructions (reset, wait, ...) after the overload is known.
func (c *checker) gate(stmt *ast.Stmt, data *ast.GateData) (*semantic.Instruction, bool) {
	if data == nil {
		return nil, false
	}
	if data.IsModified() {
		return c.modifiedGate(stmt, data)
	}
	name := data.Name.Name
	nonGate := c.catalog.Has(name) && !c.catalog.IsGate(name)

	var param semantic.Value
	if data.Param.IsValid() && !nonGate {
		v, ok := c.value(data.Param)
		if !ok {
			return nil, false
		}
		if param, ok = c.parameter(name, v, stmt.Span); !ok {
			return nil, false
		}
	}

	operands, ok := c.values(data.Operands)
	if !ok {
		return nil, false
	}
	sig, err := c.catalog.Resolve(name, typesOf(operands))
	if err != nil {
		c.reportErr(stmt.Span, err, diag.SemaNoMatchingOverload)
		return nil, false
	}

	if data.Param.IsValid() && nonGate {
		v, ok := c.value(data.Param)
		if !ok {
			return nil, false
		}
		if param, ok = c.parameter(name, v, stmt.Span); !ok {
			return nil, false
		}
	}
	if sig.HasParam() && param == nil {
		c.report(diag.SemaBadParameter, stmt.Span, "failed to resolve '%s' with argument pack ()", name)
		return nil, false
	}

	anns, ok := c.annotations(stmt.Annotations)
	if !ok {
		return nil, false
	}
	kind := semantic.KindGate
	if !sig.Gate {
		kind = semantic.KindNonGate
	}
	return &semantic.Instruction{
		Kind:        kind,
		Ref:         sig.Ref(),
		Name:        name,
		Parameter:   param,
		Operands:    operands,
		Annotations: anns,
		Span:        stmt.Span,
	}, true
}

// modifiedGate resolves inv/pow/ctrl chains from the named gate outwards. Every
// modifier must wrap a single-qubit gate; the chain resolves as 1q_G or 2q_G
// depending on the outermost modifier.
func (c *checker) modifiedGate(stmt *ast.Stmt, data *ast.GateData) (*semantic.Instruction, bool) {
	gate := &semantic.Gate{Name: data.Name.Name}
	resolveAs := gate.Name
	if data.Param.IsValid() {
		v, ok := c.value(data.Param)
		if !ok {
			return nil, false
		}
		if gate.Parameter, ok = c.parameter(gate.Name, v, data.Name.Span); !ok {
			return nil, false
		}
	} else if _, takesParam := c.catalog.ParamType(gate.Name); takesParam {
		c.report(diag.SemaBadParameter, data.Name.Span, "failed to resolve '%s' with argument pack ()", gate.Name)
		return nil, false
	}
	for i := len(data.Modifiers) - 1; i >= 0; i-- {
		mod := data.Modifiers[i]
		outer := &semantic.Gate{Name: mod.Name.Name, Gate: gate}
		if mod.Param.IsValid() {
			v, ok := c.value(mod.Param)
			if !ok {
				return nil, false
			}
			if outer.Parameter, ok = c.parameter(outer.Name, v, mod.Name.Span); !ok {
				return nil, false
			}
		}
		if c.catalog.IsTwoQubitGate(resolveAs) {
			c.report(diag.SemaModifiedMultiQubit, mod.Name.Span, "trying to apply a gate modifier to a multi-qubit gate")
			return nil, false
		}
		gate = outer
		resolveAs = c.catalog.CompositionName(outer.Name, data.Name.Name)
	}

	operands, ok := c.values(data.Operands)
	if !ok {
		return nil, false
	}
	sig, err := c.catalog.Resolve(resolveAs, typesOf(operands))
	if err != nil {
		c.reportErr(stmt.Span, err, diag.SemaNoMatchingOverload)
		return nil, false
	}
	anns, ok := c.annotations(stmt.Annotations)
	if !ok {
		return nil, false
	}
	return &semantic.Instruction{
		Kind:        semantic.KindGate,
		Ref:         sig.Ref(),
		Name:        gate.Name,
		Gate:        gate,
		Operands:    operands,
		Annotations: anns,
		Span:        stmt.Span,
	}, true
}

// parameter promotes v to the parameter type declared for name.
func (c *checker) parameter(name string, v semantic.Value, at source.Span) (semantic.Value, bool) {
	want, ok := c.catalog.ParamType(name)
	if !ok || !semantic.IsConst(v) || !types.CanPromote(v.Type(), want) {
		c.report(diag.SemaBadParameter, at, "failed to resolve '%s' with argument pack (%s)", name, v.Type())
		return nil, false
	}
	promoted, err := semantic.Promote(v, want)
	if err != nil {
		c.report(diag.SemaBadParameter, at, "failed to resolve '%s' with argument pack (%s)", name, v.Type())
		return nil, false
	}
	return promoted, true
}

// measure checks `bit = measure qubit`; operands are ordered bit side first.
func (c *checker) measure(stmt *ast.Stmt, data *ast.MeasureData) (*semantic.Instruction, bool) {
	if data == nil {
		return nil, false
	}
	operands, ok := c.values([]ast.ExprID{data.Lhs, data.Rhs})
	if !ok {
		return nil, false
	}
	name := data.Keyword.Name
	sig, err := c.catalog.Resolve(name, typesOf(operands))
	if err != nil {
		c.reportErr(stmt.Span, err, diag.SemaNoMatchingOverload)
		return nil, false
	}
	if qubits, bits := countIndices(operands); qubits != bits {
		c.report(diag.SemaMeasureSizeMismatch, stmt.Span, "qubit and bit indices have different sizes")
		return nil, false
	}
	anns, ok := c.annotations(stmt.Annotations)
	if !ok {
		return nil, false
	}
	return &semantic.Instruction{
		Kind:        semantic.KindNonGate,
		Ref:         sig.Ref(),
		Name:        name,
		Operands:    operands,
		Annotations: anns,
		Span:        stmt.Span,
	}, true
}

// countIndices sums addressed qubits and bits over the operands.
func countIndices(operands []semantic.Value) (qubits, bits int64) {
	for _, op := range operands {
		var variable *semantic.Variable
		switch v := op.(type) {
		case semantic.VariableRef:
			variable = v.Variable
		case semantic.IndexRef:
			variable = v.Variable
		default:
			continue
		}
		switch variable.Type.Kind {
		case types.KindQubit, types.KindQubitArray:
			qubits += semantic.Count(op)
		case types.KindBit, types.KindBitArray:
			bits += semantic.Count(op)
		}
	}
	return qubits, bits
}
