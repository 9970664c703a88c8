package stdlib

import (
	"fmt"

	"github.com/exprevalang/expreva/eval"
	"github.com/exprevalang/expreva/value"
)

// registerList binds the list-shaped primitives of spec.md §4.4:
// `push pop insert slice search size map filter reduce repeat`.
// Every primitive here is non-mutating — push/insert/slice return a new
// List and pop returns the last element without removing it, rather
// than mutating the argument in place, since value.Value exposes no
// setter for its backing slice outside the package (only `get`'s
// in-bounds index write, handled directly by the evaluator, mutates a
// list's existing elements). See DESIGN.md.
func registerList(env value.Scope) {
	bind(env, "push", func(args []*value.Value) (*value.Value, error) {
		lst, err := list("push", args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("push expects 2 arguments, got %d", len(args))
		}
		out := append(append([]*value.Value{}, lst...), args[1:]...)
		return value.NewListFrom(out), nil
	})

	bind(env, "pop", func(args []*value.Value) (*value.Value, error) {
		lst, err := list("pop", args, 0)
		if err != nil {
			return nil, err
		}
		if len(lst) == 0 {
			return value.NewNil(), nil
		}
		return lst[len(lst)-1], nil
	})

	bind(env, "insert", func(args []*value.Value) (*value.Value, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("insert expects 3 arguments, got %d", len(args))
		}
		lst, err := list("insert", args, 0)
		if err != nil {
			return nil, err
		}
		idx, err := index("insert", args[1], len(lst))
		if err != nil {
			return nil, err
		}
		out := make([]*value.Value, 0, len(lst)+1)
		out = append(out, lst[:idx]...)
		out = append(out, args[2])
		out = append(out, lst[idx:]...)
		return value.NewListFrom(out), nil
	})

	bind(env, "slice", func(args []*value.Value) (*value.Value, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("slice expects 3 arguments, got %d", len(args))
		}
		lst, err := list("slice", args, 0)
		if err != nil {
			return nil, err
		}
		from, err := index("slice", args[1], len(lst))
		if err != nil {
			return nil, err
		}
		to, err := index("slice", args[2], len(lst))
		if err != nil {
			return nil, err
		}
		if to < from {
			to = from
		}
		out := append([]*value.Value{}, lst[from:to]...)
		return value.NewListFrom(out), nil
	})

	bind(env, "search", func(args []*value.Value) (*value.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("search expects 2 arguments, got %d", len(args))
		}
		lst, err := list("search", args, 0)
		if err != nil {
			return nil, err
		}
		for i, item := range lst {
			if value.Equal(item, args[1]) {
				return value.NewNumber(float64(i)), nil
			}
		}
		return value.NewNumber(-1), nil
	})

	bind(env, "size", sizeOf)

	bind(env, "map", func(args []*value.Value) (*value.Value, error) {
		lst, fn, err := listAndCallable("map", args)
		if err != nil {
			return nil, err
		}
		out := make([]*value.Value, len(lst))
		for i, item := range lst {
			v, err := eval.Apply(fn, []*value.Value{item, value.NewNumber(float64(i))})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return value.NewListFrom(out), nil
	})

	bind(env, "filter", func(args []*value.Value) (*value.Value, error) {
		lst, fn, err := listAndCallable("filter", args)
		if err != nil {
			return nil, err
		}
		var out []*value.Value
		for i, item := range lst {
			v, err := eval.Apply(fn, []*value.Value{item, value.NewNumber(float64(i))})
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				out = append(out, item)
			}
		}
		return value.NewListFrom(out), nil
	})

	bind(env, "reduce", func(args []*value.Value) (*value.Value, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("reduce expects 3 arguments, got %d", len(args))
		}
		lst, err := list("reduce", args, 0)
		if err != nil {
			return nil, err
		}
		fn := args[1]
		if !fn.IsCallable() {
			return nil, fmt.Errorf("reduce expects a callable second argument, got %s", fn.Kind)
		}
		acc := args[2]
		for i, item := range lst {
			v, err := eval.Apply(fn, []*value.Value{acc, item, value.NewNumber(float64(i))})
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil
	})

	bind(env, "repeat", func(args []*value.Value) (*value.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("repeat expects 2 arguments, got %d", len(args))
		}
		n, err := num("repeat", args[1])
		if err != nil {
			return nil, err
		}
		count := int(n)
		if args[0].Kind == value.String {
			s := ""
			for i := 0; i < count; i++ {
				s += args[0].Str()
			}
			return value.NewString(s), nil
		}
		lst, err := list("repeat", args, 0)
		if err != nil {
			return nil, err
		}
		var out []*value.Value
		for i := 0; i < count; i++ {
			out = append(out, lst...)
		}
		return value.NewListFrom(out), nil
	})
}

func list(fn string, args []*value.Value, i int) ([]*value.Value, error) {
	if i >= len(args) || args[i].Kind != value.List {
		return nil, fmt.Errorf("%s expects a list argument", fn)
	}
	return args[i].ListItems(), nil
}

func listAndCallable(fn string, args []*value.Value) ([]*value.Value, *value.Value, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s expects 2 arguments, got %d", fn, len(args))
	}
	lst, err := list(fn, args, 0)
	if err != nil {
		return nil, nil, err
	}
	if !args[1].IsCallable() {
		return nil, nil, fmt.Errorf("%s expects a callable second argument, got %s", fn, args[1].Kind)
	}
	return lst, args[1], nil
}

// index resolves a numeric argument to an in-bounds slice index,
// clamping to [0, length] so slice()/insert() tolerate off-the-end
// bounds the way a host array API typically does.
func index(fn string, v *value.Value, length int) (int, error) {
	n, err := num(fn, v)
	if err != nil {
		return 0, err
	}
	i := int(n)
	if i < 0 {
		i = 0
	}
	if i > length {
		i = length
	}
	return i, nil
}

// sizeOf implements `size`, generic over List, Object and String —
// the common shape spec.md's required-primitives list implies by not
// scoping `size` to one container kind.
func sizeOf(args []*value.Value) (*value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("size expects 1 argument, got %d", len(args))
	}
	switch args[0].Kind {
	case value.List:
		return value.NewNumber(float64(len(args[0].ListItems()))), nil
	case value.Object:
		return value.NewNumber(float64(args[0].Obj().Len())), nil
	case value.String:
		return value.NewNumber(float64(len([]rune(args[0].Str())))), nil
	}
	return nil, fmt.Errorf("size expects a list, object or string, got %s", args[0].Kind)
}
