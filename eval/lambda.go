package eval

import "github.com/exprevalang/expreva/value"

// evalLambda implements the `lambda`/`λ` special form: capture the
// current environment as the closure's defining scope.
func evalLambda(ast *value.Value, env value.Scope) (*value.Value, error) {
	items := ast.ListItems()
	return value.NewLambda(&value.LambdaValue{Args: items[1], Body: items[2], Scope: env}), nil
}

// evalMacroForm implements the `~`/`macro` special form: evaluate the
// body to a callable and return a copy flagged is_macro, so the
// original (non-macro) binding, if any, is left untouched.
func evalMacroForm(ast *value.Value, env value.Scope, hook TickHook) (*value.Value, error) {
	items := ast.ListItems()
	callable, err := EvaluateWithHook(items[1], env, hook)
	if err != nil {
		return nil, err
	}
	if callable.Kind != value.Lambda {
		return nil, &BadArgDefError{Detail: "macro body must evaluate to a lambda"}
	}
	cp := *callable.LambdaVal()
	cp.IsMacro = true
	return value.NewLambda(&cp), nil
}

// bindFunctionScope creates a child of parent and binds argDefs'
// entries against given, per spec.md §4.3:
//   - symbol `&` followed by a symbol: bind the rest of given as a list
//   - `['...', name]`: same, alternate syntax
//   - `['def', name, default]`: given[i] if present, else the
//     evaluated default (evaluated against the scope built so far, so
//     later defaults can reference earlier parameters)
//   - a plain symbol: given[i], or nil if given ran out
func bindFunctionScope(parent value.Scope, argDefs *value.Value, given []*value.Value, hook TickHook) (value.Scope, error) {
	child := parent.Create()
	var defs []*value.Value
	if argDefs != nil {
		defs = argDefs.ListItems()
	}

	i := 0
	for idx := 0; idx < len(defs); idx++ {
		d := defs[idx]
		switch {
		case d.IsSymbol("&"):
			idx++
			if idx >= len(defs) {
				return nil, &BadArgDefError{Detail: "'&' not followed by a name"}
			}
			bindRest(child, defs[idx].Str(), given, i)
			i = len(given)

		case d.IsList() && d.Head().IsSymbol("..."):
			bindRest(child, d.ListItems()[1].Str(), given, i)
			i = len(given)

		case d.IsList() && d.Head().IsSymbol("def"):
			name := d.ListItems()[1].Str()
			if i < len(given) {
				child.Bind(name, given[i])
				i++
				continue
			}
			val, err := EvaluateWithHook(d.ListItems()[2], child, hook)
			if err != nil {
				return nil, err
			}
			child.Bind(name, val)

		case d.IsSymbol(""):
			if i < len(given) {
				child.Bind(d.Str(), given[i])
			} else {
				child.Bind(d.Str(), value.NewNil())
			}
			i++

		default:
			return nil, &BadArgDefError{Detail: "unrecognized argument definition"}
		}
	}
	return child, nil
}

func bindRest(child value.Scope, name string, given []*value.Value, from int) {
	from = min(from, len(given))
	rest := append([]*value.Value{}, given[from:]...)
	child.Bind(name, value.NewListFrom(rest))
}
