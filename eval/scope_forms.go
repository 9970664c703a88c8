package eval

import "github.com/exprevalang/expreva/value"

// prepareLet implements the `let` special form's scope-building half;
// the trampoline continues with the returned (body, scope) pair as a
// tail call. Bindings are evaluated left to right against the new
// scope so each one can see the ones before it (let*-style), matching
// spec.md's "bind successive (key, value) pairs".
func prepareLet(ast *value.Value, env value.Scope, hook TickHook) (*value.Value, value.Scope, error) {
	items := ast.ListItems()
	pairs := items[1].ListItems()
	child := env.Create()
	for i := 0; i+1 < len(pairs); i += 2 {
		name := pairs[i].Str()
		val, err := EvaluateWithHook(pairs[i+1], child, hook)
		if err != nil {
			return nil, nil, err
		}
		child.Bind(name, val)
	}
	return items[2], child, nil
}

// prepareDo implements `do`: evaluate every statement but the last for
// effect, then hand the last back as a tail call. An empty `do`
// returns nil immediately.
func prepareDo(ast *value.Value, env value.Scope, hook TickHook) (nextAst *value.Value, done bool, result *value.Value, err error) {
	items := ast.ListItems()[1:]
	if len(items) == 0 {
		return nil, true, value.NewNil(), nil
	}
	for _, stmt := range items[:len(items)-1] {
		if _, err := EvaluateWithHook(stmt, env, hook); err != nil {
			return nil, false, nil, err
		}
	}
	return items[len(items)-1], false, nil, nil
}

// prepareIf implements `if`: evaluate the condition, then hand back
// whichever branch applies as a tail call. A condition or
// then-branch missing from the AST is a MalformedIfError; a missing
// else-branch evaluates to nil, not an error.
func prepareIf(ast *value.Value, env value.Scope, hook TickHook) (nextAst *value.Value, done bool, result *value.Value, err error) {
	items := ast.ListItems()
	if len(items) < 3 {
		return nil, false, nil, &MalformedIfError{Detail: "missing condition or then-branch"}
	}
	cond, err := EvaluateWithHook(items[1], env, hook)
	if err != nil {
		return nil, false, nil, err
	}
	if value.Truthy(cond) {
		return items[2], false, nil, nil
	}
	if len(items) >= 4 {
		return items[3], false, nil, nil
	}
	return nil, true, value.NewNil(), nil
}

// evalTry implements `try`/`catch`: run the body, and on any
// evaluation error, if a `['catch', name, handler]` clause is present,
// bind the error's message to name in a child scope and evaluate the
// handler. Without a catch clause the error is swallowed and nil
// returned, per spec.md §4.3.
func evalTry(ast *value.Value, env value.Scope, hook TickHook) (*value.Value, error) {
	items := ast.ListItems()
	result, err := EvaluateWithHook(items[1], env, hook)
	if err == nil {
		return result, nil
	}
	if len(items) >= 3 && items[2].IsList() && items[2].Head().IsSymbol("catch") {
		catchItems := items[2].ListItems()
		errName := catchItems[1].Str()
		child := env.Create()
		child.Bind(errName, value.NewString(err.Error()))
		return EvaluateWithHook(catchItems[2], child, hook)
	}
	return value.NewNil(), nil
}
