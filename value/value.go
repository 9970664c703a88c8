// Package value defines the tagged-sum value type shared by the AST and
// the evaluator. Parsing a source string produces a *Value whose List
// nodes have symbol heads; evaluating that same *Value produces another
// *Value — numbers, strings, booleans, nil, lists, objects or callables.
// The AST is not a separate type: it is a subspace of Value (Number,
// String, Bool, Symbol and List nodes), exactly as spec'd.
package value

import "fmt"

// Kind tags the variant a Value holds.
type Kind int

// The value kinds. Symbol appears inside AST-shaped values (a list
// head, a bare identifier reference); evaluating a Symbol means "look
// it up", so one escapes as the result of evaluation only through
// quote.
const (
	Number Kind = iota
	String
	Bool
	Nil
	Symbol
	List
	Object
	Lambda
	HostFunc
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case String:
		return "string"
	case Bool:
		return "boolean"
	case Nil:
		return "nil"
	case Symbol:
		return "symbol"
	case List:
		return "list"
	case Object:
		return "object"
	case Lambda:
		return "lambda"
	case HostFunc:
		return "host-function"
	default:
		return "unknown"
	}
}

// HostFn is the shape of an opaque host-provided callable: it receives
// already-evaluated positional arguments and returns a value or an
// error. The core never looks inside a HostFn; it only invokes it.
type HostFn func(args []*Value) (*Value, error)

// LambdaValue is the evaluator-level representation of a user function,
// `{args, body, scope, is_macro, name}` in spec terms. Args and Body are
// themselves AST values (Args is the parameter-spec list, Body is the
// unevaluated body expression).
type LambdaValue struct {
	Name    string
	Args    *Value
	Body    *Value
	Scope   Scope
	IsMacro bool
}

// Value is the tagged sum. Only the field matching Kind is meaningful;
// the others are left zero. A *Value is treated as immutable once
// constructed, except for Object's backing map and a List's existing
// elements, which member assignment (`def` through `get`) and the `set`
// host primitive write in place the same way a host object would be.
type Value struct {
	Kind Kind

	num    float64
	str    string // used for String and Symbol
	bval   bool
	list   []*Value
	obj    *Map
	lambda *LambdaValue
	host   HostFn
	hostNm string
}

// Scope is the interface Value depends on for Lambda.Scope, kept
// minimal so that the value package does not import environment (which
// in turn needs to store *Value). environment.Env implements Scope.
type Scope interface {
	Get(name string) (*Value, bool)
	Bind(name string, v *Value)
	BindGlobal(name string, v *Value)
	Create() Scope
	Global() Scope
	Parent() Scope
}

// --- constructors -----------------------------------------------------

// NewNumber wraps a float64 as a Number value.
func NewNumber(f float64) *Value { return &Value{Kind: Number, num: f} }

// NewString wraps a Go string as a String value.
func NewString(s string) *Value { return &Value{Kind: String, str: s} }

// NewBool wraps a bool as a Bool value.
func NewBool(b bool) *Value { return &Value{Kind: Bool, bval: b} }

// NewSymbol wraps a bare identifier as an AST Symbol node — distinct
// from String so that evaluating `x` (a symbol) looks x up, while
// evaluating `'x'` (a quoted string) yields the literal text "x".
func NewSymbol(s string) *Value { return &Value{Kind: Symbol, str: s} }

var nilValue = &Value{Kind: Nil}

// NewNil returns the shared nil/undefined value.
func NewNil() *Value { return nilValue }

// NewList wraps a slice of values as a List. The slice is used directly
// by the caller's choice — pass a copy if you intend to mutate items
// afterward without affecting the returned Value.
func NewList(items ...*Value) *Value { return &Value{Kind: List, list: items} }

// NewListFrom wraps an existing slice without copying.
func NewListFrom(items []*Value) *Value { return &Value{Kind: List, list: items} }

// NewObject wraps an ordered map as an Object value.
func NewObject(m *Map) *Value { return &Value{Kind: Object, obj: m} }

// NewLambda wraps a LambdaValue as a callable Value.
func NewLambda(l *LambdaValue) *Value { return &Value{Kind: Lambda, lambda: l} }

// NewHostFunc wraps a host closure as a callable Value. name is used
// only for diagnostics (HostError.FuncName, pretty-printing).
func NewHostFunc(name string, fn HostFn) *Value {
	return &Value{Kind: HostFunc, host: fn, hostNm: name}
}

// --- accessors ----------------------------------------------------------

// Num returns the underlying float64. Valid only when Kind == Number.
func (v *Value) Num() float64 { return v.num }

// Str returns the underlying string. Valid only when Kind is String or
// Symbol.
func (v *Value) Str() string { return v.str }

// Bool returns the underlying bool. Valid only when Kind == Bool.
func (v *Value) Bool() bool { return v.bval }

// ListItems returns the underlying slice. Valid only when Kind == List.
// The returned slice aliases v's storage; callers must not mutate it
// unless they own v exclusively.
func (v *Value) ListItems() []*Value { return v.list }

// Obj returns the underlying ordered map. Valid only when Kind == Object.
func (v *Value) Obj() *Map { return v.obj }

// LambdaVal returns the underlying LambdaValue. Valid only when Kind ==
// Lambda.
func (v *Value) LambdaVal() *LambdaValue { return v.lambda }

// Host returns the underlying host closure. Valid only when Kind ==
// HostFunc.
func (v *Value) Host() HostFn { return v.host }

// HostName returns the diagnostic name of a HostFunc value.
func (v *Value) HostName() string { return v.hostNm }

// --- predicates & helpers ----------------------------------------------

// IsNil reports whether v is the Nil value (or a nil *Value pointer,
// which the evaluator treats identically to keep callers from having to
// nil-check everywhere).
func (v *Value) IsNil() bool { return v == nil || v.Kind == Nil }

// IsCallable reports whether v can appear in invocation position.
func (v *Value) IsCallable() bool {
	return v != nil && (v.Kind == Lambda || v.Kind == HostFunc)
}

// IsList reports whether v is a List value/node.
func (v *Value) IsList() bool { return v != nil && v.Kind == List }

// IsSymbol reports whether v is a Symbol node equal to name (or any
// symbol, when name is empty).
func (v *Value) IsSymbol(name string) bool {
	if v == nil || v.Kind != Symbol {
		return false
	}
	return name == "" || v.str == name
}

// Head returns the first element of a List, or nil if v is not a
// non-empty list.
func (v *Value) Head() *Value {
	if v == nil || v.Kind != List || len(v.list) == 0 {
		return nil
	}
	return v.list[0]
}

// Tail returns every element after the first of a List. Returns nil
// for a one-element or empty list, or for a non-list.
func (v *Value) Tail() []*Value {
	if v == nil || v.Kind != List || len(v.list) <= 1 {
		return nil
	}
	return v.list[1:]
}

// Truthy implements the language's notion of truthiness used by `if`
// and by the `&&`/`||`/`!` host primitives: nil and boolean false are
// falsy, everything else — including 0 and "" — is truthy. This
// mirrors hosts where only explicit booleans and nil participate in
// control flow, with no separate coercion table. `&&`/`||` are
// ordinary host functions, so both operands are evaluated before
// Truthy sees them.
func Truthy(v *Value) bool {
	if v.IsNil() {
		return false
	}
	if v.Kind == Bool {
		return v.bval
	}
	return true
}

// Equal implements structural equality used by the `==`/`!=` host
// primitives and by macro/AST comparisons in tests. Lambdas compare by
// identity; host functions compare by their registered name.
func Equal(a, b *Value) bool {
	if a.IsNil() || b.IsNil() {
		return a.IsNil() == b.IsNil()
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Number:
		return a.num == b.num
	case String, Symbol:
		return a.str == b.str
	case Bool:
		return a.bval == b.bval
	case List:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case Object:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for _, k := range a.obj.Keys() {
			av, _ := a.obj.Get(k)
			bv, ok := b.obj.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case Lambda:
		return a.lambda == b.lambda
	case HostFunc:
		return a.hostNm == b.hostNm
	}
	return false
}

// String implements fmt.Stringer with a compact, non-diagnostic
// rendering; prettyprint.Value provides the fuller diagnostic form.
func (v *Value) String() string {
	if v.IsNil() {
		return "nil"
	}
	switch v.Kind {
	case Number:
		return trimFloat(v.num)
	case String:
		return v.str
	case Symbol:
		return v.str
	case Bool:
		if v.bval {
			return "true"
		}
		return "false"
	case List:
		return fmt.Sprintf("%v", v.list)
	case Object:
		return fmt.Sprintf("%v", v.obj)
	case Lambda:
		return fmt.Sprintf("<lambda:%s>", v.lambda.Name)
	case HostFunc:
		return fmt.Sprintf("<host:%s>", v.hostNm)
	}
	return "?"
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}
