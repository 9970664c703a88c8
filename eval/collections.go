package eval

import "github.com/exprevalang/expreva/value"

// evalList implements the `list` special form: evaluate each element,
// splicing `['...', e]` entries by evaluating e and flattening its
// items into the result.
func evalList(ast *value.Value, env value.Scope, hook TickHook) (*value.Value, error) {
	var out []*value.Value
	for _, item := range ast.ListItems()[1:] {
		if item.IsList() && item.Head().IsSymbol("...") {
			spread, err := EvaluateWithHook(item.ListItems()[1], env, hook)
			if err != nil {
				return nil, err
			}
			if spread.IsList() {
				out = append(out, spread.ListItems()...)
			}
			continue
		}
		v, err := EvaluateWithHook(item, env, hook)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return value.NewListFrom(out), nil
}

// evalObj implements the `obj` special form: build an ordered map from
// evaluated key/value pairs, spreading `['...', e]` entries' fields in
// place.
func evalObj(ast *value.Value, env value.Scope, hook TickHook) (*value.Value, error) {
	m := value.NewMap()
	for _, entry := range ast.ListItems()[1:] {
		if entry.Head().IsSymbol("...") {
			spread, err := EvaluateWithHook(entry.ListItems()[1], env, hook)
			if err != nil {
				return nil, err
			}
			if spread.Kind == value.Object {
				for _, k := range spread.Obj().Keys() {
					v, _ := spread.Obj().Get(k)
					m.Set(k, v)
				}
			}
			continue
		}
		pair := entry.ListItems()
		key, err := EvaluateWithHook(pair[0], env, hook)
		if err != nil {
			return nil, err
		}
		val, err := EvaluateWithHook(pair[1], env, hook)
		if err != nil {
			return nil, err
		}
		m.Set(keyToString(key), val)
	}
	return value.NewObject(m), nil
}

// keyToString renders an evaluated key for use as an Object field:
// strings and symbols contribute their text verbatim, everything else
// falls back to its diagnostic string form.
func keyToString(v *value.Value) string {
	if v.Kind == value.String || v.Kind == value.Symbol {
		return v.Str()
	}
	return v.String()
}
