// Package stdlib is the standard-bindings host library spec.md §4.4
// leaves to an implementation: arithmetic, comparison, list, object
// and string primitives, registered into a root environment through
// the core's value.HostFn bridge. The core never imports this
// package — a host is free to register a different one entirely —
// grounded in the way the teacher's NewEvaluator wires std.Builtins
// into a fresh environment, one file per concern
// (std/math.go, std/arrays.go, std/maps.go, std/strings.go).
package stdlib

import "github.com/exprevalang/expreva/value"

// Register binds every built-in this package provides into env,
// typically a process-wide root environment constructed once at
// startup per spec.md §3's "Lifecycle".
func Register(env value.Scope) {
	registerArithmetic(env)
	registerCompare(env)
	registerList(env)
	registerObject(env)
	registerString(env)
}

// bind wraps fn as a named HostFunc and binds it directly into env —
// used instead of env.BindGlobal since stdlib registration targets a
// specific (usually root) scope, not "the current evaluation's global".
func bind(env value.Scope, name string, fn value.HostFn) {
	env.Bind(name, value.NewHostFunc(name, fn))
}
