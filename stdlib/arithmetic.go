package stdlib

import (
	"fmt"
	"math"

	"github.com/exprevalang/expreva/value"
)

// registerArithmetic binds `+ - * / % ^` and `fact`, the factorial
// primitive the parser's postfix `!` compiles to (distinct from the
// prefix logical-not `!` registered in compare.go).
//
// `+` and `-` are arity-polymorphic: called with one argument they
// implement the parser's unary `+`/`-` (identity / negate), called
// with two they implement the binary operator, matching
// parser/expressions.go's decision to reuse the same AST head for
// both positions.
func registerArithmetic(env value.Scope) {
	bind(env, "+", plus)
	bind(env, "-", minus)
	bind(env, "*", binaryNum("*", func(a, b float64) float64 { return a * b }))
	bind(env, "/", divide)
	bind(env, "%", modulo)
	bind(env, "^", power)
	bind(env, "fact", factorial)
}

// plus implements unary `+` (numeric identity) and binary `+`, which
// falls back to string concatenation whenever either side is a
// string — mirrored from the teacher's evaluateBinaryOp PLUS_OP
// handling of std.StringType operands.
func plus(args []*value.Value) (*value.Value, error) {
	switch len(args) {
	case 1:
		n, err := num("+", args[0])
		if err != nil {
			return nil, err
		}
		return value.NewNumber(n), nil
	case 2:
		if args[0].Kind == value.String || args[1].Kind == value.String {
			return value.NewString(args[0].String() + args[1].String()), nil
		}
		a, err := num("+", args[0])
		if err != nil {
			return nil, err
		}
		b, err := num("+", args[1])
		if err != nil {
			return nil, err
		}
		return value.NewNumber(a + b), nil
	}
	return nil, fmt.Errorf("+ expects 1 or 2 arguments, got %d", len(args))
}

// minus implements unary `-` (negate) and binary `-` (subtract).
func minus(args []*value.Value) (*value.Value, error) {
	switch len(args) {
	case 1:
		n, err := num("-", args[0])
		if err != nil {
			return nil, err
		}
		return value.NewNumber(-n), nil
	case 2:
		a, err := num("-", args[0])
		if err != nil {
			return nil, err
		}
		b, err := num("-", args[1])
		if err != nil {
			return nil, err
		}
		return value.NewNumber(a - b), nil
	}
	return nil, fmt.Errorf("- expects 1 or 2 arguments, got %d", len(args))
}

// binaryNum builds a strictly-two-argument numeric host function.
func binaryNum(name string, op func(a, b float64) float64) value.HostFn {
	return func(args []*value.Value) (*value.Value, error) {
		a, b, err := numPair(name, args)
		if err != nil {
			return nil, err
		}
		return value.NewNumber(op(a, b)), nil
	}
}

func divide(args []*value.Value) (*value.Value, error) {
	a, b, err := numPair("/", args)
	if err != nil {
		return nil, err
	}
	return value.NewNumber(a / b), nil
}

func modulo(args []*value.Value) (*value.Value, error) {
	a, b, err := numPair("%", args)
	if err != nil {
		return nil, err
	}
	return value.NewNumber(math.Mod(a, b)), nil
}

func power(args []*value.Value) (*value.Value, error) {
	a, b, err := numPair("^", args)
	if err != nil {
		return nil, err
	}
	return value.NewNumber(math.Pow(a, b)), nil
}

// factorial implements postfix `!`. Only defined for non-negative
// integral values, per the usual mathematical definition.
func factorial(args []*value.Value) (*value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("fact expects 1 argument, got %d", len(args))
	}
	n, err := num("fact", args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 || n != math.Trunc(n) {
		return nil, fmt.Errorf("fact expects a non-negative integer, got %v", n)
	}
	result := 1.0
	for i := 2.0; i <= n; i++ {
		result *= i
	}
	return value.NewNumber(result), nil
}

func num(fn string, v *value.Value) (float64, error) {
	if v.Kind != value.Number {
		return 0, fmt.Errorf("%s expects a number, got %s", fn, v.Kind)
	}
	return v.Num(), nil
}

func numPair(fn string, args []*value.Value) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%s expects 2 arguments, got %d", fn, len(args))
	}
	a, err := num(fn, args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := num(fn, args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
