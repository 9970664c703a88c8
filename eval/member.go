package eval

import "github.com/exprevalang/expreva/value"

// evalDef implements the `def` special form. A member-access target
// (the parser emits one whenever the assignment's left-hand side was
// `a.b` / `a[b]`) is rewritten into a `get` call whose last member is
// itself a `['def', key, value]` node, and re-dispatched through
// evalGet — which recognizes that shape as a write rather than a read
// and short-circuits, per spec.md §4.3's "A member of the form
// ['def', key, value] performs a set and short-circuits." Anything
// else is a plain name bound into the environment's global scope.
func evalDef(ast *value.Value, env value.Scope, hook TickHook) (*value.Value, error) {
	items := ast.ListItems()
	target, valueAst := items[1], items[2]

	if target.IsList() {
		getItems := target.ListItems()
		n := len(getItems)
		lastKey := getItems[n-1]
		rewritten := make([]*value.Value, 0, n)
		rewritten = append(rewritten, getItems[:n-1]...)
		rewritten = append(rewritten, value.NewList(value.NewSymbol("def"), lastKey, valueAst))
		return EvaluateWithHook(value.NewListFrom(rewritten), env, hook)
	}

	name := target.Str()
	val, err := EvaluateWithHook(valueAst, env, hook)
	if err != nil {
		return nil, err
	}
	if val.Kind == value.Lambda && val.LambdaVal().Name == "" {
		val.LambdaVal().Name = name
	}
	env.BindGlobal(name, val)
	return val, nil
}

// evalGet implements the `get` special form: evaluate the base, then
// walk successive members. A callable reached through the chain is
// rebound with `this` set to its enclosing object (spec.md's "method
// binding"); `__proto__` and missing keys read as nil rather than
// failing.
func evalGet(ast *value.Value, env value.Scope, hook TickHook) (*value.Value, error) {
	items := ast.ListItems()
	cur, err := EvaluateWithHook(items[1], env, hook)
	if err != nil {
		return nil, err
	}
	members := items[2:]

	for i, m := range members {
		isLast := i == len(members)-1
		if isLast && m.IsList() && m.Head().IsSymbol("def") {
			return applySet(cur, m, env, hook)
		}
		if cur.Kind != value.Object && cur.Kind != value.List {
			return nil, &NotIndexableError{Kind: cur.Kind.String()}
		}
		key, err := EvaluateWithHook(m, env, hook)
		if err != nil {
			return nil, err
		}
		next := lookupMember(cur, key)
		if next.IsCallable() {
			next = bindMethod(next, cur)
		}
		cur = next
	}
	return cur, nil
}

// applySet resolves the member named by setItems[1] on cur and writes
// setItems[2] into it. The value expression is evaluated in a scope
// where `__current__` is bound to the member's already-resolved old
// value, so a compound-assign/inc-dec target built by
// parser.toReadExpr (`a.b += 1` → `__current__ + 1`) reads that value
// instead of re-evaluating `cur`'s defining expression a second time.
func applySet(cur *value.Value, setNode *value.Value, env value.Scope, hook TickHook) (*value.Value, error) {
	setItems := setNode.ListItems()
	key, err := EvaluateWithHook(setItems[1], env, hook)
	if err != nil {
		return nil, err
	}
	readScope := env.Create()
	readScope.Bind("__current__", lookupMember(cur, key))
	val, err := EvaluateWithHook(setItems[2], readScope, hook)
	if err != nil {
		return nil, err
	}
	switch cur.Kind {
	case value.Object:
		cur.Obj().Set(keyToString(key), val)
	case value.List:
		idx := int(key.Num())
		items := cur.ListItems()
		if idx >= 0 && idx < len(items) {
			items[idx] = val
		}
	default:
		return nil, &NotIndexableError{Kind: cur.Kind.String()}
	}
	return val, nil
}

func lookupMember(cur, key *value.Value) *value.Value {
	keyStr := keyToString(key)
	if keyStr == "__proto__" {
		return value.NewNil()
	}
	switch cur.Kind {
	case value.Object:
		if v, ok := cur.Obj().Get(keyStr); ok {
			return v
		}
	case value.List:
		idx := int(key.Num())
		items := cur.ListItems()
		if idx >= 0 && idx < len(items) {
			return items[idx]
		}
	}
	return value.NewNil()
}

// bindMethod rebinds a Lambda reached through a `get` chain so its
// body can refer to `this` as the object it was fetched from. Host
// functions, being opaque Go closures, cannot be rebound this way —
// documented in DESIGN.md as an accepted gap.
func bindMethod(fn, receiver *value.Value) *value.Value {
	if fn.Kind != value.Lambda {
		return fn
	}
	orig := fn.LambdaVal()
	scope := orig.Scope.Create()
	scope.Bind("this", receiver)
	cp := *orig
	cp.Scope = scope
	return value.NewLambda(&cp)
}
