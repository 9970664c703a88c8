package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exprevalang/expreva/environment"
	"github.com/exprevalang/expreva/value"
)

func newTestEnv() value.Scope {
	return environment.New(environment.NewRoot())
}

func list(items ...*value.Value) *value.Value { return value.NewList(items...) }
func sym(s string) *value.Value               { return value.NewSymbol(s) }
func num(f float64) *value.Value              { return value.NewNumber(f) }

func TestEvaluateLiteralsReturnThemselves(t *testing.T) {
	env := newTestEnv()
	v, err := Evaluate(num(5), env)
	assert.NoError(t, err)
	assert.Equal(t, float64(5), v.Num())
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	env := newTestEnv()
	_, err := Evaluate(sym("x"), env)
	var undef *UndefinedSymbolError
	assert.ErrorAs(t, err, &undef)
}

func TestEvaluateDefAndGet(t *testing.T) {
	env := newTestEnv()
	v, err := Evaluate(list(sym("def"), value.NewString("x"), num(42)), env)
	assert.NoError(t, err)
	assert.Equal(t, float64(42), v.Num())

	v, err = Evaluate(sym("x"), env)
	assert.NoError(t, err)
	assert.Equal(t, float64(42), v.Num())
}

func TestEvaluateIfBranches(t *testing.T) {
	env := newTestEnv()
	v, err := Evaluate(list(sym("if"), value.NewBool(true), num(1), num(2)), env)
	assert.NoError(t, err)
	assert.Equal(t, float64(1), v.Num())

	v, err = Evaluate(list(sym("if"), value.NewBool(false), num(1), num(2)), env)
	assert.NoError(t, err)
	assert.Equal(t, float64(2), v.Num())
}

func TestEvaluateIfWithoutElseIsNil(t *testing.T) {
	env := newTestEnv()
	v, err := Evaluate(list(sym("if"), value.NewBool(false), num(1)), env)
	assert.NoError(t, err)
	assert.True(t, v.IsNil())
}

func TestEvaluateIfMissingThenIsMalformed(t *testing.T) {
	env := newTestEnv()
	_, err := Evaluate(list(sym("if"), value.NewBool(true)), env)
	var malformed *MalformedIfError
	assert.ErrorAs(t, err, &malformed)
}

func TestEvaluateDoReturnsLastStatement(t *testing.T) {
	env := newTestEnv()
	v, err := Evaluate(list(sym("do"), num(1), num(2), num(3)), env)
	assert.NoError(t, err)
	assert.Equal(t, float64(3), v.Num())
}

func TestEvaluateEmptyDoIsNil(t *testing.T) {
	env := newTestEnv()
	v, err := Evaluate(list(sym("do")), env)
	assert.NoError(t, err)
	assert.True(t, v.IsNil())
}

func TestEvaluateLetBindsSequentially(t *testing.T) {
	env := newTestEnv()
	// let x = 1, y = x in y — y's value looks up the x bound just before it
	ast := list(sym("let"), list(sym("x"), num(1), sym("y"), sym("x")), sym("y"))
	v, err := Evaluate(ast, env)
	assert.NoError(t, err)
	assert.Equal(t, float64(1), v.Num())
}

func TestEvaluateLambdaAndInvoke(t *testing.T) {
	env := newTestEnv()
	lam := list(sym("lambda"), list(sym("x")), sym("x"))
	call := list(lam, num(9))
	v, err := Evaluate(call, env)
	assert.NoError(t, err)
	assert.Equal(t, float64(9), v.Num())
}

func TestEvaluateLambdaClosesOverDefiningScope(t *testing.T) {
	env := newTestEnv()
	_, err := Evaluate(list(sym("def"), value.NewString("n"), num(10)), env)
	assert.NoError(t, err)
	// f = lambda () n ; f()
	_, err = Evaluate(list(sym("def"), value.NewString("f"), list(sym("lambda"), list(), sym("n"))), env)
	assert.NoError(t, err)
	v, err := Evaluate(list(sym("f")), env)
	assert.NoError(t, err)
	assert.Equal(t, float64(10), v.Num())
}

func TestEvaluateQuoteReturnsUnevaluated(t *testing.T) {
	env := newTestEnv()
	quoted := list(sym("`"), sym("x")) // `x` unbound, but quoting should prevent lookup
	v, err := Evaluate(quoted, env)
	assert.NoError(t, err)
	assert.True(t, v.IsSymbol("x"))
}

func TestEvaluateListSpecialForm(t *testing.T) {
	env := newTestEnv()
	v, err := Evaluate(list(sym("list"), num(1), num(2), num(3)), env)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(v.ListItems()))
}

func TestEvaluateListSpreadSplices(t *testing.T) {
	env := newTestEnv()
	_, err := Evaluate(list(sym("def"), value.NewString("xs"), list(sym("list"), num(1), num(2))), env)
	assert.NoError(t, err)
	v, err := Evaluate(list(sym("list"), num(0), list(sym("..."), sym("xs")), num(3)), env)
	assert.NoError(t, err)
	items := v.ListItems()
	assert.Equal(t, 4, len(items))
	assert.Equal(t, float64(0), items[0].Num())
	assert.Equal(t, float64(3), items[3].Num())
}

func TestEvaluateObjSpecialFormAndGet(t *testing.T) {
	env := newTestEnv()
	obj := list(sym("obj"), list(value.NewString("a"), num(1)))
	v, err := Evaluate(obj, env)
	assert.NoError(t, err)
	assert.Equal(t, value.Object, v.Kind)

	got, err := Evaluate(list(sym("get"), obj, value.NewString("a")), env)
	assert.NoError(t, err)
	assert.Equal(t, float64(1), got.Num())
}

func TestEvaluateGetOnMissingKeyIsNil(t *testing.T) {
	env := newTestEnv()
	obj := list(sym("obj"), list(value.NewString("a"), num(1)))
	got, err := Evaluate(list(sym("get"), obj, value.NewString("missing")), env)
	assert.NoError(t, err)
	assert.True(t, got.IsNil())
}

func TestEvaluateTryCatchBindsErrorMessage(t *testing.T) {
	env := newTestEnv()
	body := sym("boom") // undefined symbol -> error
	ast := list(sym("try"), body, list(sym("catch"), sym("e"), sym("e")))
	v, err := Evaluate(ast, env)
	assert.NoError(t, err)
	assert.Equal(t, value.String, v.Kind)
}

func TestEvaluateTryWithoutCatchSwallowsError(t *testing.T) {
	env := newTestEnv()
	ast := list(sym("try"), sym("boom"))
	v, err := Evaluate(ast, env)
	assert.NoError(t, err)
	assert.True(t, v.IsNil())
}

func TestEvaluateInvokingNonCallableErrors(t *testing.T) {
	env := newTestEnv()
	_, err := Evaluate(list(num(5), num(1)), env)
	var notCallable *NotCallableError
	assert.ErrorAs(t, err, &notCallable)
}

func TestApplyHostFunc(t *testing.T) {
	fn := value.NewHostFunc("inc", func(args []*value.Value) (*value.Value, error) {
		return value.NewNumber(args[0].Num() + 1), nil
	})
	v, err := Apply(fn, []*value.Value{value.NewNumber(1)})
	assert.NoError(t, err)
	assert.Equal(t, float64(2), v.Num())
}

func TestApplyLambda(t *testing.T) {
	env := newTestEnv()
	env.BindGlobal("+", value.NewHostFunc("+", func(args []*value.Value) (*value.Value, error) {
		return value.NewNumber(args[0].Num() + args[1].Num()), nil
	}))
	lam, err := Evaluate(list(sym("lambda"), list(sym("x")), list(sym("+"), sym("x"), num(1))), env)
	assert.NoError(t, err)
	v, err := Apply(lam, []*value.Value{num(4)})
	assert.NoError(t, err)
	assert.Equal(t, float64(5), v.Num())
}

func TestMacroDoesNotEvaluateItsArguments(t *testing.T) {
	env := newTestEnv()
	// always99 = macro(lambda(x) 99) — a macro whose body ignores its
	// (unevaluated) argument entirely, so calling it with an undefined
	// symbol as the argument must not raise UndefinedSymbolError.
	macro := list(sym("macro"), list(sym("lambda"), list(sym("x")), num(99)))
	_, err := Evaluate(list(sym("def"), value.NewString("always99"), macro), env)
	assert.NoError(t, err)

	v, err := Evaluate(list(sym("always99"), sym("thisSymbolIsNeverLookedUp")), env)
	assert.NoError(t, err)
	assert.Equal(t, float64(99), v.Num())
}

func TestCompoundAssignOnMemberEvaluatesBaseOnce(t *testing.T) {
	env := newTestEnv()
	env.BindGlobal("+", value.NewHostFunc("+", func(args []*value.Value) (*value.Value, error) {
		return value.NewNumber(args[0].Num() + args[1].Num()), nil
	}))

	obj := value.NewObject(value.NewMap())
	obj.Obj().Set("count", num(1))

	calls := 0
	makeThing := value.NewHostFunc("makeThing", func(args []*value.Value) (*value.Value, error) {
		calls++
		return obj, nil
	})
	env.BindGlobal("makeThing", makeThing)

	// makeThing().count += 1, as the parser would expand it:
	// (def (get (makeThing) (` 'count')) (+ __current__ 1))
	getChain := list(sym("get"), list(sym("makeThing")), list(sym("`"), value.NewString("count")))
	ast := list(sym("def"), getChain, list(sym("+"), sym("__current__"), num(1)))

	v, err := Evaluate(ast, env)
	assert.NoError(t, err)
	assert.Equal(t, float64(2), v.Num())
	assert.Equal(t, 1, calls, "base expression must evaluate exactly once")

	got, ok := obj.Obj().Get("count")
	assert.True(t, ok)
	assert.Equal(t, float64(2), got.Num())
}

func TestTailRecursionRunsInConstantStack(t *testing.T) {
	env := newTestEnv()
	env.BindGlobal("+", value.NewHostFunc("+", func(args []*value.Value) (*value.Value, error) {
		return value.NewNumber(args[0].Num() + args[1].Num()), nil
	}))
	env.BindGlobal("-", value.NewHostFunc("-", func(args []*value.Value) (*value.Value, error) {
		return value.NewNumber(args[0].Num() - args[1].Num()), nil
	}))
	env.BindGlobal("==", value.NewHostFunc("==", func(args []*value.Value) (*value.Value, error) {
		return value.NewBool(args[0].Num() == args[1].Num()), nil
	}))

	// loop = (n, acc) => if n == 0 then acc else loop(n - 1, acc + 1)
	body := list(sym("if"),
		list(sym("=="), sym("n"), num(0)),
		sym("acc"),
		list(sym("loop"), list(sym("-"), sym("n"), num(1)), list(sym("+"), sym("acc"), num(1))),
	)
	lam := list(sym("lambda"), list(sym("n"), sym("acc")), body)
	_, err := Evaluate(list(sym("def"), value.NewString("loop"), lam), env)
	assert.NoError(t, err)

	// Deep enough that a non-tail (Go-stack-recursive) evaluator would
	// overflow; the trampoline in eval.go reassigns (ast, env) in its
	// loop instead of recursing, so this runs in O(1) native stack.
	const depth = 200000
	v, err := Evaluate(list(sym("loop"), num(depth), num(0)), env)
	assert.NoError(t, err)
	assert.Equal(t, float64(depth), v.Num())
}

func TestTickHookCancellation(t *testing.T) {
	env := newTestEnv()
	boom := assert.AnError
	_, err := EvaluateWithHook(num(1), env, func() error { return boom })
	var cancelled *CancelledError
	assert.ErrorAs(t, err, &cancelled)
}
