package stdlib

import (
	"fmt"
	"strings"

	"github.com/exprevalang/expreva/value"
)

// registerString binds `join split char`.
func registerString(env value.Scope) {
	bind(env, "join", func(args []*value.Value) (*value.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("join expects 2 arguments, got %d", len(args))
		}
		lst, err := list("join", args, 0)
		if err != nil {
			return nil, err
		}
		if args[1].Kind != value.String {
			return nil, fmt.Errorf("join expects a string separator")
		}
		parts := make([]string, len(lst))
		for i, v := range lst {
			parts[i] = v.String()
		}
		return value.NewString(strings.Join(parts, args[1].Str())), nil
	})

	bind(env, "split", func(args []*value.Value) (*value.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("split expects 2 arguments, got %d", len(args))
		}
		if args[0].Kind != value.String || args[1].Kind != value.String {
			return nil, fmt.Errorf("split expects two strings")
		}
		parts := strings.Split(args[0].Str(), args[1].Str())
		out := make([]*value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.NewString(p)
		}
		return value.NewListFrom(out), nil
	})

	bind(env, "char", func(args []*value.Value) (*value.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("char expects 1 argument, got %d", len(args))
		}
		n, err := num("char", args[0])
		if err != nil {
			return nil, err
		}
		return value.NewString(string(rune(int(n)))), nil
	})
}
