package stdlib

import (
	"fmt"

	"github.com/exprevalang/expreva/value"
)

// registerCompare binds `== != < <= > >=`, `&& ||`, the prefix
// logical-not `!` (distinct from the postfix `fact` registered in
// arithmetic.go), and the `true`/`false` constants.
//
// Unlike the teacher's evalBooleanExpression, `&&`/`||` are ordinary
// two-argument host functions, not evaluator special forms: spec.md
// §4.4 lists them alongside the arithmetic and comparison primitives
// as part of the host-bridge minimum set, so both operands are always
// evaluated before the call — the core has no built-in notion of
// short-circuiting. See DESIGN.md.
func registerCompare(env value.Scope) {
	bind(env, "==", func(args []*value.Value) (*value.Value, error) {
		a, b, err := pair("==", args)
		if err != nil {
			return nil, err
		}
		return value.NewBool(value.Equal(a, b)), nil
	})
	bind(env, "!=", func(args []*value.Value) (*value.Value, error) {
		a, b, err := pair("!=", args)
		if err != nil {
			return nil, err
		}
		return value.NewBool(!value.Equal(a, b)), nil
	})
	bind(env, "<", compareNum("<", func(a, b float64) bool { return a < b }))
	bind(env, "<=", compareNum("<=", func(a, b float64) bool { return a <= b }))
	bind(env, ">", compareNum(">", func(a, b float64) bool { return a > b }))
	bind(env, ">=", compareNum(">=", func(a, b float64) bool { return a >= b }))

	bind(env, "&&", func(args []*value.Value) (*value.Value, error) {
		a, b, err := boolPair("&&", args)
		if err != nil {
			return nil, err
		}
		return value.NewBool(a && b), nil
	})
	bind(env, "||", func(args []*value.Value) (*value.Value, error) {
		a, b, err := boolPair("||", args)
		if err != nil {
			return nil, err
		}
		return value.NewBool(a || b), nil
	})
	bind(env, "!", func(args []*value.Value) (*value.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("! expects 1 argument, got %d", len(args))
		}
		return value.NewBool(!value.Truthy(args[0])), nil
	})

	env.Bind("true", value.NewBool(true))
	env.Bind("false", value.NewBool(false))
}

func pair(fn string, args []*value.Value) (*value.Value, *value.Value, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s expects 2 arguments, got %d", fn, len(args))
	}
	return args[0], args[1], nil
}

// compareNum builds a numeric ordering comparator. Unlike `==`/`!=`
// (which use value.Equal and work over any kind), `<`/`<=`/`>`/`>=`
// only make sense over numbers, matching the teacher's
// evaluateBinaryOp's number-only arms for ordering operators.
func compareNum(name string, op func(a, b float64) bool) value.HostFn {
	return func(args []*value.Value) (*value.Value, error) {
		a, b, err := numPair(name, args)
		if err != nil {
			return nil, err
		}
		return value.NewBool(op(a, b)), nil
	}
}

func boolPair(fn string, args []*value.Value) (bool, bool, error) {
	a, b, err := pair(fn, args)
	if err != nil {
		return false, false, err
	}
	return value.Truthy(a), value.Truthy(b), nil
}
