package ast

import (
	"cqasm/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprIntLit
	ExprFloatLit
	ExprBoolLit
	ExprIndex
	ExprCall
	ExprUnary
	ExprBinary
	ExprTernary
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Identifier"
	case ExprIntLit:
		return "IntegerLiteral"
	case ExprFloatLit:
		return "FloatLiteral"
	case ExprBoolLit:
		return "BooleanLiteral"
	case ExprIndex:
		return "Index"
	case ExprCall:
		return "FunctionCall"
	case ExprUnary:
		return "UnaryExpression"
	case ExprBinary:
		return "BinaryExpression"
	case ExprTernary:
		return "TernaryConditionalExpression"
	default:
		return "Expr?"
	}
}

// Expr — заголовок выражения. Span указывает на опорный токен узла:
// имя для идентификаторов и индексации, оператор для унарных/бинарных/тернарных.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprLiteralData holds a literal's spelling and its decoded value.
type ExprLiteralData struct {
	Text  string
	Int   int64
	Float float64
	Bool  bool
}

// IndexEntry is either a single index (Last invalid) or an inclusive range first:last.
type IndexEntry struct {
	First ExprID
	Last  ExprID
	Span  source.Span
}

// IsRange reports whether the entry is first:last.
func (e IndexEntry) IsRange() bool { return e.Last.IsValid() }

// ExprIndexData holds `name[entries]`.
type ExprIndexData struct {
	Target  Ident
	Entries []IndexEntry
}

// ExprCallData holds `name(args)`. Args is empty for `name()`.
type ExprCallData struct {
	Name Ident
	Args []ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprTernaryData struct {
	Cond    ExprID
	IfTrue  ExprID
	IfFalse ExprID
}

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Idents    *Arena[Ident]
	Literals  *Arena[ExprLiteralData]
	Indices   *Arena[ExprIndexData]
	Calls     *Arena[ExprCallData]
	Unaries   *Arena[ExprUnaryData]
	Binaries  *Arena[ExprBinaryData]
	Ternaries *Arena[ExprTernaryData]
}

// NewExprs creates the expression arenas; capHint 0 falls back to 1<<8.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Idents:    NewArena[Ident](capHint),
		Literals:  NewArena[ExprLiteralData](capHint),
		Indices:   NewArena[ExprIndexData](capHint),
		Calls:     NewArena[ExprCallData](capHint),
		Unaries:   NewArena[ExprUnaryData](capHint),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Ternaries: NewArena[ExprTernaryData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(name Ident) ExprID {
	payload := e.Idents.Allocate(name)
	return e.new(ExprIdent, name.Span, PayloadID(payload))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*Ident, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewLiteral creates a literal expression; kind must be one of the literal kinds.
func (e *Exprs) NewLiteral(kind ExprKind, span source.Span, data ExprLiteralData) ExprID {
	payload := e.Literals.Allocate(data)
	return e.new(kind, span, PayloadID(payload))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	switch expr.Kind {
	case ExprIntLit, ExprFloatLit, ExprBoolLit:
		return e.Literals.Get(uint32(expr.Payload)), true
	default:
		return nil, false
	}
}

// NewIndex creates a new index expression anchored at the indexed name.
func (e *Exprs) NewIndex(target Ident, entries []IndexEntry) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{
		Target:  target,
		Entries: append([]IndexEntry(nil), entries...),
	})
	return e.new(ExprIndex, target.Span, PayloadID(payload))
}

// Index returns the index data for the given expression ID.
func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

// NewCall creates a new function call expression anchored at the function name.
func (e *Exprs) NewCall(name Ident, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Name: name,
		Args: append([]ExprID(nil), args...),
	})
	return e.new(ExprCall, name.Span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewUnary creates a new unary expression anchored at the operator token.
func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewBinary creates a new binary expression anchored at the operator token.
func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewTernary creates a new conditional expression anchored at '?'.
func (e *Exprs) NewTernary(span source.Span, cond, ifTrue, ifFalse ExprID) ExprID {
	payload := e.Ternaries.Allocate(ExprTernaryData{Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse})
	return e.new(ExprTernary, span, PayloadID(payload))
}

// Ternary returns the conditional data for the given expression ID.
func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTernary {
		return nil, false
	}
	return e.Ternaries.Get(uint32(expr.Payload)), true
}
