package symbols

import (
	"fmt"

	"cqasm/internal/semantic"
)

// Scope holds the variables of one analysis. A cQASM v3 program has a single
// global scope, so there is no parent chain.
type Scope struct {
	byName map[string]*semantic.Variable
	order  []*semantic.Variable
}

func NewScope() *Scope {
	return &Scope{byName: make(map[string]*semantic.Variable)}
}

// Declare binds name to v. A second binding of the same name fails with ErrDuplicate
// and leaves the first one in place.
func (s *Scope) Declare(name string, v *semantic.Variable) error {
	if _, ok := s.byName[name]; ok {
		return newError(ErrDuplicate, fmt.Sprintf("variable '%s' redeclared", name))
	}
	s.byName[name] = v
	s.order = append(s.order, v)
	return nil
}

// Lookup is case-sensitive.
func (s *Scope) Lookup(name string) (*semantic.Variable, error) {
	if v, ok := s.byName[name]; ok {
		return v, nil
	}
	return nil, newError(ErrUnknown, fmt.Sprintf("failed to resolve variable '%s'", name))
}

// Variables returns declared variables in declaration order.
func (s *Scope) Variables() []*semantic.Variable {
	out := make([]*semantic.Variable, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Scope) Len() int { return len(s.order) }
