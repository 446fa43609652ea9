package symbols

import (
	"errors"
	"math"
	"sync"
	"testing"

	"cqasm/internal/semantic"
	"cqasm/internal/source"
	"cqasm/internal/types"
)

func TestScopeDeclareAndLookup(t *testing.T) {
	scope := NewScope()
	q := &semantic.Variable{Name: "q", Type: types.QubitArray(5)}
	if err := scope.Declare("q", q); err != nil {
		t.Fatalf("declare q: %v", err)
	}
	err := scope.Declare("q", &semantic.Variable{Name: "q", Type: types.Qubit})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if err.Error() != "variable 'q' redeclared" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	got, err := scope.Lookup("q")
	if err != nil || got != q {
		t.Fatalf("lookup q: %v %v", got, err)
	}
	_, err = scope.Lookup("Q")
	if !errors.Is(err, ErrUnknown) {
		t.Fatalf("lookup must be case-sensitive, got %v", err)
	}
	if err.Error() != "failed to resolve variable 'Q'" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if vars := scope.Variables(); len(vars) != 1 || vars[0] != q {
		t.Fatalf("variables: %v", vars)
	}
}

func TestCatalogResolve(t *testing.T) {
	tests := []struct {
		name     string
		instr    string
		operands []types.Type
		wantRef  string
		wantErr  error
		wantMsg  string
	}{
		{name: "upper", instr: "H", operands: []types.Type{types.QubitArray(5)}, wantRef: "H(qubit array)"},
		{name: "lower alias", instr: "h", operands: []types.Type{types.QubitArray(5)}, wantRef: "h(qubit array)"},
		{name: "single qubit", instr: "X", operands: []types.Type{types.Qubit}, wantRef: "X(qubit)"},
		{name: "two qubit mixed", instr: "CNOT", operands: []types.Type{types.Qubit, types.QubitArray(2)}, wantRef: "CNOT(qubit, qubit array)"},
		{name: "measure", instr: "measure", operands: []types.Type{types.BitArray(5), types.QubitArray(5)}, wantRef: "measure(bit array, qubit array)"},
		{name: "reset without operands", instr: "reset", operands: nil, wantRef: "reset()"},
		{
			name: "unknown", instr: "foo", operands: []types.Type{types.Qubit},
			wantErr: ErrUnknown, wantMsg: "failed to resolve instruction 'foo' with argument pack (qubit)",
		},
		{
			name: "mixed case is unknown", instr: "Cnot", operands: []types.Type{types.Qubit, types.Qubit},
			wantErr: ErrUnknown, wantMsg: "failed to resolve instruction 'Cnot' with argument pack (qubit, qubit)",
		},
		{
			name: "bit operand", instr: "X", operands: []types.Type{types.BitArray(3)},
			wantErr: ErrNoOverload, wantMsg: "failed to resolve instruction 'X' with argument pack (bit array)",
		},
		{
			name: "arity", instr: "CZ", operands: []types.Type{types.Qubit},
			wantErr: ErrNoOverload, wantMsg: "failed to resolve instruction 'CZ' with argument pack (qubit)",
		},
	}
	catalog := Builtins()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := catalog.Resolve(tt.instr, tt.operands)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if err.Error() != tt.wantMsg {
					t.Fatalf("message = %q, want %q", err.Error(), tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got := sig.Ref(); got != tt.wantRef {
				t.Fatalf("ref = %q, want %q", got, tt.wantRef)
			}
		})
	}
}

func TestCatalogParameters(t *testing.T) {
	catalog := Builtins()
	cases := map[string]types.Kind{"Rx": types.KindFloat, "CR": types.KindFloat, "CRk": types.KindInt, "wait": types.KindInt}
	for name, want := range cases {
		for _, sig := range catalog.Overloads(name) {
			if !sig.HasParam() || sig.Param.Kind != want {
				t.Fatalf("%s: param = %v, want %v", name, sig.Param, want)
			}
		}
	}
	for _, sig := range catalog.Overloads("H") {
		if sig.HasParam() {
			t.Fatalf("H must not take a parameter")
		}
		if !sig.Gate {
			t.Fatalf("H must be a gate")
		}
	}
	for _, sig := range catalog.Overloads("measure") {
		if sig.Gate {
			t.Fatalf("measure is a non-gate instruction")
		}
	}
}

func TestCatalogModifiers(t *testing.T) {
	catalog := Builtins()
	tests := []struct {
		modifier, gate string
		operands       []types.Type
		wantRef        string
	}{
		{"inv", "X", []types.Type{types.Qubit}, "1q_X(qubit)"},
		{"pow", "Rx", []types.Type{types.QubitArray(2)}, "1q_Rx(qubit array)"},
		{"ctrl", "H", []types.Type{types.Qubit, types.Qubit}, "2q_H(qubit, qubit)"},
		{"ctrl", "X", []types.Type{types.QubitArray(2), types.QubitArray(2)}, "2q_X(qubit array, qubit array)"},
	}
	for _, tt := range tests {
		t.Run(tt.modifier+"."+tt.gate, func(t *testing.T) {
			name := catalog.CompositionName(tt.modifier, tt.gate)
			sig, err := catalog.Resolve(name, tt.operands)
			if err != nil {
				t.Fatalf("resolve %s: %v", name, err)
			}
			if sig.Ref() != tt.wantRef || !sig.Gate || sig.HasParam() {
				t.Fatalf("signature = %+v (%s)", sig, sig.Ref())
			}
		})
	}

	if pow, ok := catalog.ParamType("pow"); !ok || pow != types.Float {
		t.Fatalf("pow param = %v %v", pow, ok)
	}
	if _, ok := catalog.ParamType("inv"); ok {
		t.Fatal("inv takes no parameter")
	}
	if m, ok := catalog.Modifier("ctrl"); !ok || !m.TwoQubit {
		t.Fatalf("ctrl = %+v %v", m, ok)
	}
	for name, want := range map[string]bool{"CNOT": true, "2q_X": true, "H": false, "1q_X": false, "measure": false} {
		if got := catalog.IsTwoQubitGate(name); got != want {
			t.Fatalf("IsTwoQubitGate(%s) = %v", name, got)
		}
	}
	if catalog.Has("1q_CNOT") {
		t.Fatal("two-qubit gates have no single-qubit composition")
	}
	for _, name := range catalog.Names() {
		if isComposition(name) {
			t.Fatalf("composition %s must not be listed", name)
		}
	}
}

func TestBuiltinsShared(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Catalog, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Builtins()
		}(i)
	}
	wg.Wait()
	for i := range got {
		if got[i] != got[0] {
			t.Fatalf("catalog built more than once")
		}
	}
}

func TestFunctionsCall(t *testing.T) {
	at := source.Span{}
	i := func(v int64) semantic.Value { return semantic.ConstInt{Value: v} }
	f := func(v float64) semantic.Value { return semantic.ConstFloat{Value: v} }
	b := func(v bool) semantic.Value { return semantic.ConstBool{Value: v} }

	tests := []struct {
		name string
		fn   string
		args []semantic.Value
		want semantic.Value
	}{
		{"int add", "operator+", []semantic.Value{i(2), i(3)}, i(5)},
		{"promoted add", "operator+", []semantic.Value{i(2), f(0.5)}, f(2.5)},
		{"bool promotes to int", "operator+", []semantic.Value{b(true), i(1)}, i(2)},
		{"unary minus", "operator-", []semantic.Value{i(4)}, i(-4)},
		{"truncating div", "operator/", []semantic.Value{i(-7), i(2)}, i(-3)},
		{"remainder sign", "operator%", []semantic.Value{i(-7), i(2)}, i(-1)},
		{"power", "operator**", []semantic.Value{i(2), i(10)}, f(1024)},
		{"compare", "operator<", []semantic.Value{i(1), f(1.5)}, b(true)},
		{"bool compare", "operator>", []semantic.Value{b(true), b(false)}, b(true)},
		{"xor", "operator^^", []semantic.Value{b(true), b(true)}, b(false)},
		{"shift", "operator<<", []semantic.Value{i(1), i(4)}, i(16)},
		{"bit not", "operator~", []semantic.Value{i(0)}, i(-1)},
		{"ternary int", "operator?:", []semantic.Value{b(false), i(1), i(2)}, i(2)},
		{"ternary widened", "operator?:", []semantic.Value{b(true), i(1), f(2)}, f(1)},
		{"abs int", "abs", []semantic.Value{i(-3)}, i(3)},
		{"sqrt", "sqrt", []semantic.Value{i(16)}, f(4)},
	}
	fns := BuiltinFunctions()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fns.Call(tt.fn, tt.args, at)
			if err != nil {
				t.Fatalf("call: %v", err)
			}
			if got.Type() != tt.want.Type() || got.String() != tt.want.String() {
				t.Fatalf("got %s %s, want %s %s", got.Type(), got, tt.want.Type(), tt.want)
			}
		})
	}
}

func TestFunctionsErrors(t *testing.T) {
	fns := BuiltinFunctions()
	q := semantic.VariableRef{Variable: &semantic.Variable{Name: "q", Type: types.QubitArray(2)}}

	tests := []struct {
		name string
		fn   string
		args []semantic.Value
		err  error
		msg  string
	}{
		{"unknown", "foo", []semantic.Value{semantic.ConstInt{Value: 1}}, ErrUnknown, "failed to resolve 'foo'"},
		{
			"no overload", "operator+", []semantic.Value{semantic.ConstInt{Value: 1}, q}, ErrNoOverload,
			"failed to resolve overload for 'operator+' with argument pack (int, qubit array)",
		},
		{
			"float modulo", "operator%", []semantic.Value{semantic.ConstFloat{Value: 1}, semantic.ConstInt{Value: 2}}, ErrNoOverload,
			"failed to resolve overload for 'operator%' with argument pack (float, int)",
		},
		{"int division by zero", "operator/", []semantic.Value{semantic.ConstInt{Value: 1}, semantic.ConstInt{Value: 0}}, ErrConstEval, "division by zero"},
		{"float division by zero", "operator/", []semantic.Value{semantic.ConstFloat{Value: 1}, semantic.ConstInt{Value: 0}}, ErrConstEval, "division by zero"},
		{"negative shift", "operator>>", []semantic.Value{semantic.ConstInt{Value: 1}, semantic.ConstInt{Value: -1}}, ErrConstEval, "negative shift count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fns.Call(tt.fn, tt.args, source.Span{})
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if err.Error() != tt.msg {
				t.Fatalf("message = %q, want %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestConstants(t *testing.T) {
	v, ok := Constant("tau", source.Span{})
	if !ok {
		t.Fatalf("tau must be defined")
	}
	if got := v.(semantic.ConstFloat).Value; math.Abs(got-2*math.Pi) > 1e-12 {
		t.Fatalf("tau = %v", got)
	}
	if _, ok := Constant("PI", source.Span{}); ok {
		t.Fatalf("constants are case-sensitive")
	}
}
