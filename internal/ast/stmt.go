package ast

import (
	"cqasm/internal/source"
)

type StmtKind uint8

const (
	// StmtVariable: qubit[5] q / bit b / float[2] f / axis a
	StmtVariable StmtKind = iota
	// StmtGate: H q[0], Rx(pi) q, reset q, ctrl.inv.X q[0], q[1]
	StmtGate
	// StmtMeasure: b = measure q
	StmtMeasure
)

func (k StmtKind) String() string {
	switch k {
	case StmtVariable:
		return "Variable"
	case StmtGate:
		return "Gate"
	case StmtMeasure:
		return "MeasureInstruction"
	default:
		return "Stmt?"
	}
}

// Stmt — заголовок узла; данные лежат в payload-арене своего вида.
type Stmt struct {
	Kind        StmtKind
	Span        source.Span
	Payload     PayloadID
	Annotations []Annotation
}

// Annotation is `@ interface.operation(operands)` written after a statement.
type Annotation struct {
	Interface Ident
	Operation Ident
	Operands  []ExprID
	Span      source.Span
}

// TypeSpec is the declared type of a variable. Size is NoExprID for scalars.
type TypeSpec struct {
	Keyword Ident
	Size    ExprID
	Span    source.Span
}

// IsArray reports whether the declaration carries an explicit size.
func (t TypeSpec) IsArray() bool { return t.Size.IsValid() }

// VariableData holds a declaration: the span of the statement is the name token.
type VariableData struct {
	Name Ident
	Type TypeSpec
}

// GateModifier is one of inv, pow(expr), ctrl in front of a gate name.
// Param is set for pow only.
type GateModifier struct {
	Name  Ident
	Param ExprID
}

// GateData holds a named instruction. Param is NoExprID when there is no '(' expr ')'.
// Modifiers are listed outermost first: pow(2).inv.X gives [pow, inv].
type GateData struct {
	Modifiers []GateModifier
	Name      Ident
	Param     ExprID
	Operands  []ExprID
}

// IsModified reports whether the gate carries at least one modifier.
func (g GateData) IsModified() bool { return len(g.Modifiers) > 0 }

// MeasureData holds `lhs = measure rhs`; Keyword is the 'measure' token.
type MeasureData struct {
	Keyword Ident
	Lhs     ExprID
	Rhs     ExprID
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena     *Arena[Stmt]
	Variables *Arena[VariableData]
	Gates     *Arena[GateData]
	Measures  *Arena[MeasureData]
}

// NewStmts creates the statement arenas; capHint 0 falls back to 1<<6.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Variables: NewArena[VariableData](capHint),
		Gates:     NewArena[GateData](capHint),
		Measures:  NewArena[MeasureData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewVariable creates a declaration statement anchored at the declared name.
func (s *Stmts) NewVariable(name Ident, typ TypeSpec) StmtID {
	payload := s.Variables.Allocate(VariableData{Name: name, Type: typ})
	return s.new(StmtVariable, name.Span, PayloadID(payload))
}

// Variable returns the declaration data for the given statement ID.
func (s *Stmts) Variable(id StmtID) (*VariableData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtVariable {
		return nil, false
	}
	return s.Variables.Get(uint32(stmt.Payload)), true
}

// NewGate creates a gate statement anchored at the gate name.
func (s *Stmts) NewGate(name Ident, param ExprID, operands []ExprID) StmtID {
	payload := s.Gates.Allocate(GateData{
		Name:     name,
		Param:    param,
		Operands: append([]ExprID(nil), operands...),
	})
	return s.new(StmtGate, name.Span, PayloadID(payload))
}

// NewModifiedGate creates a gate statement anchored at the outermost modifier.
func (s *Stmts) NewModifiedGate(mods []GateModifier, name Ident, param ExprID, operands []ExprID) StmtID {
	if len(mods) == 0 {
		return s.NewGate(name, param, operands)
	}
	payload := s.Gates.Allocate(GateData{
		Modifiers: append([]GateModifier(nil), mods...),
		Name:      name,
		Param:     param,
		Operands:  append([]ExprID(nil), operands...),
	})
	return s.new(StmtGate, mods[0].Name.Span, PayloadID(payload))
}

// Annotate attaches annotations to a statement.
func (s *Stmts) Annotate(id StmtID, anns []Annotation) {
	if stmt := s.Get(id); stmt != nil {
		stmt.Annotations = append(stmt.Annotations, anns...)
	}
}

// Gate returns the gate data for the given statement ID.
func (s *Stmts) Gate(id StmtID) (*GateData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtGate {
		return nil, false
	}
	return s.Gates.Get(uint32(stmt.Payload)), true
}

// NewMeasure creates a measure statement anchored at the 'measure' keyword.
func (s *Stmts) NewMeasure(keyword Ident, lhs, rhs ExprID) StmtID {
	payload := s.Measures.Allocate(MeasureData{Keyword: keyword, Lhs: lhs, Rhs: rhs})
	return s.new(StmtMeasure, keyword.Span, PayloadID(payload))
}

// Measure returns the measure data for the given statement ID.
func (s *Stmts) Measure(id StmtID) (*MeasureData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtMeasure {
		return nil, false
	}
	return s.Measures.Get(uint32(stmt.Payload)), true
}
