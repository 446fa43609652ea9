package symbols

import (
	"fmt"
	"math"
	"sync"

	"fortio.org/safecast"

	"cqasm/internal/semantic"
	"cqasm/internal/source"
	"cqasm/internal/types"
)

// EvalFunc folds constant arguments, already promoted to the overload's parameter types.
type EvalFunc func(args []semantic.Value, at source.Span) (semantic.Value, error)

// FuncOverload is one overload of a compile-time function or operator.
type FuncOverload struct {
	Name   string
	Params []types.Type
	Eval   EvalFunc
}

// Functions is the constant-evaluation table. Operators are registered as
// "operator+", "operator?:" and so on.
type Functions struct {
	byName map[string][]FuncOverload
}

var (
	functionsOnce    sync.Once
	builtinFunctions *Functions
)

// BuiltinFunctions returns the process-wide constant-evaluation table.
func BuiltinFunctions() *Functions {
	functionsOnce.Do(func() {
		builtinFunctions = newFunctions()
		registerBuiltinFunctions(builtinFunctions)
	})
	return builtinFunctions
}

func newFunctions() *Functions {
	return &Functions{byName: make(map[string][]FuncOverload)}
}

func (f *Functions) add(name, spec string, eval EvalFunc) {
	f.byName[name] = append(f.byName[name], FuncOverload{
		Name:   name,
		Params: types.MustFromSpec(spec),
		Eval:   eval,
	})
}

// Has reports whether name is a known function or operator.
func (f *Functions) Has(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// Call resolves the overload of name for args (last registered first, with
// bool → int → float promotion) and evaluates it.
func (f *Functions) Call(name string, args []semantic.Value, at source.Span) (semantic.Value, error) {
	overloads, ok := f.byName[name]
	if !ok {
		return nil, newError(ErrUnknown, fmt.Sprintf("failed to resolve '%s'", name))
	}
	argTypes := make([]types.Type, len(args))
	for i, a := range args {
		argTypes[i] = a.Type()
	}
	for i := len(overloads) - 1; i >= 0; i-- {
		ov := overloads[i]
		promoted, ok := promoteArgs(args, argTypes, ov.Params)
		if !ok {
			continue
		}
		return ov.Eval(promoted, at)
	}
	return nil, newError(ErrNoOverload,
		fmt.Sprintf("failed to resolve overload for '%s' with argument pack (%s)", name, types.Join(argTypes)))
}

func promoteArgs(args []semantic.Value, argTypes, params []types.Type) ([]semantic.Value, bool) {
	if len(args) != len(params) {
		return nil, false
	}
	for i, p := range params {
		if !semantic.IsConst(args[i]) || !types.CanPromote(argTypes[i], p) {
			return nil, false
		}
	}
	out := make([]semantic.Value, len(args))
	for i, p := range params {
		v, err := semantic.Promote(args[i], p)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// Constant resolves the built-in named constants pi, eu and tau.
func Constant(name string, at source.Span) (semantic.Value, bool) {
	switch name {
	case "pi":
		return semantic.ConstFloat{Value: math.Pi, At: at}, true
	case "eu":
		return semantic.ConstFloat{Value: math.E, At: at}, true
	case "tau":
		return semantic.ConstFloat{Value: 2 * math.Pi, At: at}, true
	default:
		return nil, false
	}
}

func evalError(msg string) error { return newError(ErrConstEval, msg) }

func asFloat(v semantic.Value) float64 { return v.(semantic.ConstFloat).Value }
func asInt(v semantic.Value) int64     { return v.(semantic.ConstInt).Value }
func asBool(v semantic.Value) bool     { return v.(semantic.ConstBool).Value }

func floatFn(fn func(a float64) float64) EvalFunc {
	return func(args []semantic.Value, at source.Span) (semantic.Value, error) {
		return semantic.ConstFloat{Value: fn(asFloat(args[0])), At: at}, nil
	}
}

func intFn(fn func(a int64) int64) EvalFunc {
	return func(args []semantic.Value, at source.Span) (semantic.Value, error) {
		return semantic.ConstInt{Value: fn(asInt(args[0])), At: at}, nil
	}
}

func floatOp(fn func(a, b float64) float64) EvalFunc {
	return func(args []semantic.Value, at source.Span) (semantic.Value, error) {
		return semantic.ConstFloat{Value: fn(asFloat(args[0]), asFloat(args[1])), At: at}, nil
	}
}

func intOp(fn func(a, b int64) int64) EvalFunc {
	return func(args []semantic.Value, at source.Span) (semantic.Value, error) {
		return semantic.ConstInt{Value: fn(asInt(args[0]), asInt(args[1])), At: at}, nil
	}
}

func floatCmp(fn func(a, b float64) bool) EvalFunc {
	return func(args []semantic.Value, at source.Span) (semantic.Value, error) {
		return semantic.ConstBool{Value: fn(asFloat(args[0]), asFloat(args[1])), At: at}, nil
	}
}

func intCmp(fn func(a, b int64) bool) EvalFunc {
	return func(args []semantic.Value, at source.Span) (semantic.Value, error) {
		return semantic.ConstBool{Value: fn(asInt(args[0]), asInt(args[1])), At: at}, nil
	}
}

func boolOp(fn func(a, b bool) bool) EvalFunc {
	return func(args []semantic.Value, at source.Span) (semantic.Value, error) {
		return semantic.ConstBool{Value: fn(asBool(args[0]), asBool(args[1])), At: at}, nil
	}
}

// boolRank orders bools for the relational operators: false < true.
func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func boolCmp(fn func(a, b int) bool) EvalFunc {
	return boolOp(func(a, b bool) bool { return fn(boolRank(a), boolRank(b)) })
}

func shift(left bool) EvalFunc {
	return func(args []semantic.Value, at source.Span) (semantic.Value, error) {
		a := asInt(args[0])
		n, err := safecast.Conv[uint](asInt(args[1]))
		if err != nil {
			return nil, evalError("negative shift count")
		}
		if left {
			return semantic.ConstInt{Value: a << n, At: at}, nil
		}
		return semantic.ConstInt{Value: a >> n, At: at}, nil
	}
}

func ternary(args []semantic.Value, at source.Span) (semantic.Value, error) {
	v := args[2]
	if asBool(args[0]) {
		v = args[1]
	}
	switch c := v.(type) {
	case semantic.ConstBool:
		c.At = at
		return c, nil
	case semantic.ConstInt:
		c.At = at
		return c, nil
	case semantic.ConstFloat:
		c.At = at
		return c, nil
	}
	return v, nil
}

// registerBuiltinFunctions fills f with the cQASM 3.0 operators and math functions.
// Registration order matters: overloads are tried from the last one back.
func registerBuiltinFunctions(f *Functions) {
	f.add("operator-", "f", floatFn(func(a float64) float64 { return -a }))
	f.add("operator-", "i", intFn(func(a int64) int64 { return -a }))

	f.add("operator+", "ff", floatOp(func(a, b float64) float64 { return a + b }))
	f.add("operator+", "ii", intOp(func(a, b int64) int64 { return a + b }))
	f.add("operator-", "ff", floatOp(func(a, b float64) float64 { return a - b }))
	f.add("operator-", "ii", intOp(func(a, b int64) int64 { return a - b }))

	f.add("operator*", "ff", floatOp(func(a, b float64) float64 { return a * b }))
	f.add("operator*", "ii", intOp(func(a, b int64) int64 { return a * b }))
	f.add("operator/", "ff", func(args []semantic.Value, at source.Span) (semantic.Value, error) {
		b := asFloat(args[1])
		if b == 0 {
			return nil, evalError("division by zero")
		}
		return semantic.ConstFloat{Value: asFloat(args[0]) / b, At: at}, nil
	})
	f.add("operator/", "ii", func(args []semantic.Value, at source.Span) (semantic.Value, error) {
		b := asInt(args[1])
		if b == 0 {
			return nil, evalError("division by zero")
		}
		return semantic.ConstInt{Value: asInt(args[0]) / b, At: at}, nil
	})
	f.add("operator%", "ii", func(args []semantic.Value, at source.Span) (semantic.Value, error) {
		b := asInt(args[1])
		if b == 0 {
			return nil, evalError("division by zero")
		}
		return semantic.ConstInt{Value: asInt(args[0]) % b, At: at}, nil
	})

	f.add("operator**", "ff", floatOp(math.Pow))

	f.add("operator==", "ff", floatCmp(func(a, b float64) bool { return a == b }))
	f.add("operator!=", "ff", floatCmp(func(a, b float64) bool { return a != b }))
	f.add("operator>=", "ff", floatCmp(func(a, b float64) bool { return a >= b }))
	f.add("operator>", "ff", floatCmp(func(a, b float64) bool { return a > b }))
	f.add("operator<=", "ff", floatCmp(func(a, b float64) bool { return a <= b }))
	f.add("operator<", "ff", floatCmp(func(a, b float64) bool { return a < b }))

	f.add("operator==", "ii", intCmp(func(a, b int64) bool { return a == b }))
	f.add("operator!=", "ii", intCmp(func(a, b int64) bool { return a != b }))
	f.add("operator>=", "ii", intCmp(func(a, b int64) bool { return a >= b }))
	f.add("operator>", "ii", intCmp(func(a, b int64) bool { return a > b }))
	f.add("operator<=", "ii", intCmp(func(a, b int64) bool { return a <= b }))
	f.add("operator<", "ii", intCmp(func(a, b int64) bool { return a < b }))

	f.add("operator==", "bb", boolCmp(func(a, b int) bool { return a == b }))
	f.add("operator!=", "bb", boolCmp(func(a, b int) bool { return a != b }))
	f.add("operator>=", "bb", boolCmp(func(a, b int) bool { return a >= b }))
	f.add("operator>", "bb", boolCmp(func(a, b int) bool { return a > b }))
	f.add("operator<=", "bb", boolCmp(func(a, b int) bool { return a <= b }))
	f.add("operator<", "bb", boolCmp(func(a, b int) bool { return a < b }))

	f.add("operator~", "i", intFn(func(a int64) int64 { return ^a }))
	f.add("operator&", "ii", intOp(func(a, b int64) int64 { return a & b }))
	f.add("operator^", "ii", intOp(func(a, b int64) int64 { return a ^ b }))
	f.add("operator|", "ii", intOp(func(a, b int64) int64 { return a | b }))

	f.add("operator<<", "ii", shift(true))
	f.add("operator>>", "ii", shift(false))

	f.add("operator!", "b", func(args []semantic.Value, at source.Span) (semantic.Value, error) {
		return semantic.ConstBool{Value: !asBool(args[0]), At: at}, nil
	})
	f.add("operator&&", "bb", boolOp(func(a, b bool) bool { return a && b }))
	f.add("operator^^", "bb", boolOp(func(a, b bool) bool { return a != b }))
	f.add("operator||", "bb", boolOp(func(a, b bool) bool { return a || b }))

	f.add("operator?:", "bff", ternary)
	f.add("operator?:", "bii", ternary)
	f.add("operator?:", "bbb", ternary)

	f.add("sqrt", "f", floatFn(math.Sqrt))
	f.add("exp", "f", floatFn(math.Exp))
	f.add("log", "f", floatFn(math.Log))
	f.add("sin", "f", floatFn(math.Sin))
	f.add("cos", "f", floatFn(math.Cos))
	f.add("tan", "f", floatFn(math.Tan))
	f.add("sinh", "f", floatFn(math.Sinh))
	f.add("cosh", "f", floatFn(math.Cosh))
	f.add("tanh", "f", floatFn(math.Tanh))
	f.add("asin", "f", floatFn(math.Asin))
	f.add("acos", "f", floatFn(math.Acos))
	f.add("atan", "f", floatFn(math.Atan))
	f.add("asinh", "f", floatFn(math.Asinh))
	f.add("acosh", "f", floatFn(math.Acosh))
	f.add("atanh", "f", floatFn(math.Atanh))
	f.add("abs", "f", floatFn(math.Abs))
	f.add("abs", "i", intFn(func(a int64) int64 {
		if a < 0 {
			return -a
		}
		return a
	}))
}
