// Package prettyprint renders values and ASTs as diagnostic strings.
// Both functions operate on the same *value.Value type (spec.md's AST
// is a subspace of Value) but render it differently: Value prints
// runtime data the way a host's REPL would echo it back, while AST
// prints the nested-list program structure as an s-expression so a
// reader can see the precedence/associativity the parser chose.
package prettyprint

import (
	"strconv"
	"strings"

	"github.com/exprevalang/expreva/value"
)

// Value renders v the way a REPL echoes a result: numbers without a
// surrounding type tag, strings quoted, lists as `[a, b, c]`, objects as
// `{k: v, k2: v2}`.
func Value(v *value.Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v *value.Value) {
	if v.IsNil() {
		b.WriteString("nil")
		return
	}
	switch v.Kind {
	case value.Number:
		b.WriteString(strconv.FormatFloat(v.Num(), 'g', -1, 64))
	case value.String, value.Symbol:
		b.WriteByte('"')
		b.WriteString(v.Str())
		b.WriteByte('"')
	case value.Bool:
		if v.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.List:
		b.WriteByte('[')
		for i, item := range v.ListItems() {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, item)
		}
		b.WriteByte(']')
	case value.Object:
		b.WriteByte('{')
		for i, k := range v.Obj().Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			item, _ := v.Obj().Get(k)
			b.WriteString(k)
			b.WriteString(": ")
			writeValue(b, item)
		}
		b.WriteByte('}')
	case value.Lambda:
		b.WriteString("<lambda:")
		b.WriteString(v.LambdaVal().Name)
		b.WriteByte('>')
	case value.HostFunc:
		b.WriteString("<host:")
		b.WriteString(v.HostName())
		b.WriteByte('>')
	}
}

// AST renders an AST node as an s-expression: `(+ 1 (* 2 3))`. Unlike
// Value, a List is always parenthesized with its elements space
// separated regardless of whether the head is a symbol, since AST
// lists are homoiconic code, not runtime arrays — the `list` special
// form is itself a symbol head like any other.
func AST(v *value.Value) string {
	var b strings.Builder
	writeAST(&b, v)
	return b.String()
}

func writeAST(b *strings.Builder, v *value.Value) {
	if v.IsNil() {
		b.WriteString("nil")
		return
	}
	switch v.Kind {
	case value.Number:
		b.WriteString(strconv.FormatFloat(v.Num(), 'g', -1, 64))
	case value.String:
		b.WriteByte('\'')
		b.WriteString(v.Str())
		b.WriteByte('\'')
	case value.Symbol:
		b.WriteString(v.Str())
	case value.Bool:
		if v.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.List:
		b.WriteByte('(')
		for i, item := range v.ListItems() {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeAST(b, item)
		}
		b.WriteByte(')')
	case value.Object:
		writeValue(b, v)
	case value.Lambda, value.HostFunc:
		writeValue(b, v)
	}
}
