// Package eval implements expreva's trampolined tree-walking
// evaluator: evaluate(ast, env) loops, rewriting ast/env in place for
// tail positions (if/do/let/eva/lambda-invocation), rather than
// recursing, so a self-tail-recursive lambda runs in O(1) native
// stack. It is grounded in the teacher's eval package (a dispatch
// table keyed by node type, one file per construct family) generalized
// from the teacher's typed ExpressionNode visitor to dispatch on the
// homoiconic list AST's head symbol instead.
package eval

import (
	"github.com/exprevalang/expreva/value"
)

// TickHook is invoked once per trampoline iteration. Returning a
// non-nil error aborts evaluation with a CancelledError wrapping it —
// the hook is how a host builds timeouts or step limits on top of the
// single-threaded evaluator, per spec.md §5.
type TickHook func() error

// quoteHead mirrors parser.quoteHead; eval does not import parser (it
// would be a pointless dependency on parsing machinery) so the bare
// head symbol is restated here.
const quoteHead = "`"

// Evaluate runs the trampoline to completion with no tick hook.
func Evaluate(ast *value.Value, env value.Scope) (*value.Value, error) {
	return EvaluateWithHook(ast, env, nil)
}

// EvaluateWithHook runs the trampoline, invoking hook (if non-nil)
// once per iteration before any work is done.
func EvaluateWithHook(ast *value.Value, env value.Scope, hook TickHook) (*value.Value, error) {
	for {
		if hook != nil {
			if err := hook(); err != nil {
				return nil, &CancelledError{Reason: err}
			}
		}

		if !ast.IsList() {
			return evalAtom(ast, env)
		}

		expanded, err := expandMacro(ast, env, hook)
		if err != nil {
			return nil, err
		}
		ast = expanded
		if !ast.IsList() {
			return evalAtom(ast, env)
		}

		head := ast.Head()
		if head.IsSymbol("") {
			switch head.Str() {
			case quoteHead:
				return quoteArg(ast), nil
			case "eva":
				newAst, err := EvaluateWithHook(ast.ListItems()[1], env, hook)
				if err != nil {
					return nil, err
				}
				ast = newAst
				continue
			case "~", "macro":
				return evalMacroForm(ast, env, hook)
			case "comment":
				return value.NewNil(), nil
			case "list":
				return evalList(ast, env, hook)
			case "obj":
				return evalObj(ast, env, hook)
			case "def":
				return evalDef(ast, env, hook)
			case "get":
				return evalGet(ast, env, hook)
			case "let":
				nextAst, nextEnv, err := prepareLet(ast, env, hook)
				if err != nil {
					return nil, err
				}
				ast, env = nextAst, nextEnv
				continue
			case "do":
				nextAst, done, result, err := prepareDo(ast, env, hook)
				if err != nil {
					return nil, err
				}
				if done {
					return result, nil
				}
				ast = nextAst
				continue
			case "if":
				nextAst, done, result, err := prepareIf(ast, env, hook)
				if err != nil {
					return nil, err
				}
				if done {
					return result, nil
				}
				ast = nextAst
				continue
			case "try":
				return evalTry(ast, env, hook)
			case "lambda", "λ":
				return evalLambda(ast, env)
			}
		}

		nextAst, nextEnv, result, done, err := invoke(ast, env, hook)
		if err != nil {
			return nil, err
		}
		if done {
			return result, nil
		}
		ast, env = nextAst, nextEnv
	}
}

// Apply invokes a Lambda or HostFunc value with already-evaluated
// arguments, running the lambda body to completion (not as a tail
// call) — the entry point host functions like map/filter/reduce use to
// call back into user code.
func Apply(callable *value.Value, args []*value.Value) (*value.Value, error) {
	switch callable.Kind {
	case value.Lambda:
		lam := callable.LambdaVal()
		scope, err := bindFunctionScope(lam.Scope, lam.Args, args, nil)
		if err != nil {
			return nil, err
		}
		return EvaluateWithHook(lam.Body, scope, nil)
	case value.HostFunc:
		out, err := callable.Host()(args)
		if err != nil {
			return nil, &HostError{FuncName: callable.HostName(), Err: err}
		}
		return out, nil
	}
	return nil, &NotCallableError{Kind: callable.Kind.String()}
}

// evalAtom handles everything that isn't an AST list: literal values
// return themselves, symbols resolve through the scope chain.
func evalAtom(ast *value.Value, env value.Scope) (*value.Value, error) {
	if ast.IsNil() {
		return value.NewNil(), nil
	}
	if ast.Kind != value.Symbol {
		return ast, nil
	}
	if v, ok := env.Get(ast.Str()); ok {
		return v, nil
	}
	return nil, &UndefinedSymbolError{Name: ast.Str()}
}

func quoteArg(ast *value.Value) *value.Value {
	if len(ast.ListItems()) < 2 {
		return value.NewNil()
	}
	return ast.ListItems()[1]
}

// evalElements evaluates every element of a slice fully (non-tail),
// used wherever a list of AST nodes is assembled as data: call
// arguments, list/object literal contents.
func evalElements(items []*value.Value, env value.Scope, hook TickHook) ([]*value.Value, error) {
	out := make([]*value.Value, 0, len(items))
	for _, it := range items {
		v, err := EvaluateWithHook(it, env, hook)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// invoke implements the default (non-special-form) case: evaluate
// every element of ast to get [callable, arg0, arg1, ...], then
// dispatch on the callable's kind. Lambda invocation rewrites
// (ast, env) for the trampoline to continue with — a true tail call.
func invoke(ast *value.Value, env value.Scope, hook TickHook) (nextAst *value.Value, nextEnv value.Scope, result *value.Value, done bool, err error) {
	items := ast.ListItems()
	callable, err := EvaluateWithHook(items[0], env, hook)
	if err != nil {
		return nil, nil, nil, false, err
	}
	args, err := evalElements(items[1:], env, hook)
	if err != nil {
		return nil, nil, nil, false, err
	}

	// An evaluated callable that is itself an unexpanded `['lambda',
	// args, body]` list — e.g. a quoted lambda literal invoked
	// directly — is treated the same as a real Lambda value.
	if callable.IsList() && callable.Head().IsSymbol("lambda") {
		litItems := callable.ListItems()
		scope, err := bindFunctionScope(env, litItems[1], args, hook)
		if err != nil {
			return nil, nil, nil, false, err
		}
		return litItems[2], scope, nil, false, nil
	}

	switch callable.Kind {
	case value.Lambda:
		lam := callable.LambdaVal()
		scope, err := bindFunctionScope(lam.Scope, lam.Args, args, hook)
		if err != nil {
			return nil, nil, nil, false, err
		}
		return lam.Body, scope, nil, false, nil
	case value.HostFunc:
		out, err := callable.Host()(args)
		if err != nil {
			return nil, nil, nil, false, &HostError{FuncName: callable.HostName(), Err: err}
		}
		return nil, nil, out, true, nil
	}
	if callable.IsNil() {
		return nil, nil, value.NewNil(), true, nil
	}
	return nil, nil, nil, false, &NotCallableError{Kind: callable.Kind.String()}
}

// expandMacro replaces ast with the result of invoking its head's
// macro-flagged callable on the unevaluated tail, looping in case the
// expansion itself starts with another macro call. A macro that keeps
// expanding to itself diverges — acceptable, per spec.md §9.
func expandMacro(ast *value.Value, env value.Scope, hook TickHook) (*value.Value, error) {
	for {
		if hook != nil {
			if err := hook(); err != nil {
				return nil, &CancelledError{Reason: err}
			}
		}
		if !ast.IsList() {
			return ast, nil
		}
		head := ast.Head()
		if !head.IsSymbol("") {
			return ast, nil
		}
		bound, ok := env.Get(head.Str())
		if !ok || bound.Kind != value.Lambda || !bound.LambdaVal().IsMacro {
			return ast, nil
		}
		lam := bound.LambdaVal()
		scope, err := bindFunctionScope(lam.Scope, lam.Args, ast.Tail(), hook)
		if err != nil {
			return nil, err
		}
		expanded, err := EvaluateWithHook(lam.Body, scope, hook)
		if err != nil {
			return nil, err
		}
		ast = expanded
	}
}
