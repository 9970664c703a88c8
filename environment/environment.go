// Package environment implements the chained lexical scopes expreva's
// evaluator resolves symbols against. It is grounded in the teacher's
// scope.Scope (map-of-bindings with a parent pointer, LookUp/Bind/
// Assign), generalized from scope.Scope's objects.GoMixObject payload
// to *value.Value and extended with the global/root/create operations
// spec.md's Environment component requires.
package environment

import "github.com/exprevalang/expreva/value"

// Env is a mapping from symbol to value, chained via an optional parent.
// It implements value.Scope so that value.LambdaValue can hold a scope
// handle without the value package importing environment.
type Env struct {
	vars   map[string]*value.Value
	parent *Env
	// root points at the process-wide root environment. Every
	// environment created by Create() keeps the same root pointer as
	// its parent so Root() is O(1). isRoot marks the root itself; it is
	// the boundary Global() stops below when walking parents.
	root   *Env
	isRoot bool
}

// NewRoot constructs the process-wide root environment: no parent,
// mutated only during built-in registration, shared across every
// evaluation unless a host provides its own global.
func NewRoot() *Env {
	e := &Env{vars: make(map[string]*value.Value), isRoot: true}
	e.root = e
	return e
}

// New constructs a user global environment as a child of root. Pass a
// nil root to get a standalone environment with no built-ins, useful
// for tests that want a hermetic scope.
func New(root *Env) *Env {
	e := &Env{vars: make(map[string]*value.Value), parent: root}
	if root != nil {
		e.root = root.root
	} else {
		e.root = e
	}
	return e
}

// Get walks current → parent → … → root looking for name, returning
// (nil, false) if the chain is exhausted. This is the only lookup the
// evaluator's symbol-atom case needs.
func (e *Env) Get(name string) (*value.Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Bind creates or updates a binding in this exact scope, without
// touching parents — used for function/let scopes binding their
// parameters, and for `def` once the write target has been resolved to
// a specific scope by the caller.
func (e *Env) Bind(name string, v *value.Value) {
	e.vars[name] = v
}

// BindGlobal writes name into the nearest enclosing scope that spec.md
// calls "the environment's global scope": the immediate child of root
// in this environment's chain, or this environment itself if it has no
// parent (i.e. it already is a global). This is the target `def`
// without a member-access left-hand side writes to.
func (e *Env) BindGlobal(name string, v *value.Value) {
	e.Global().Bind(name, v)
}

// Create produces a new child scope whose parent is the receiver, used
// for `let` bindings and function-call scopes.
func (e *Env) Create() value.Scope {
	return &Env{vars: make(map[string]*value.Value), parent: e, root: e.root}
}

// Global returns the top-most non-root scope of the current evaluation:
// walk up from e until the next parent is the root (or nil), and return
// the scope just below that boundary. If e has no parent, e is already
// as global as it gets.
func (e *Env) Global() value.Scope {
	cur := e
	for {
		if cur.parent == nil || cur.parent.isRoot {
			return cur
		}
		cur = cur.parent
	}
}

// Parent returns the immediately enclosing scope, or nil at the root.
func (e *Env) Parent() value.Scope {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Root returns the process-wide root environment reachable from e.
func (e *Env) Root() *Env { return e.root }
