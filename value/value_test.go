package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(NewNil()))
	assert.False(t, Truthy(NewBool(false)))
	assert.True(t, Truthy(NewBool(true)))
	assert.True(t, Truthy(NewNumber(0)))
	assert.True(t, Truthy(NewString("")))
}

func TestEqualScalars(t *testing.T) {
	assert.True(t, Equal(NewNumber(1), NewNumber(1)))
	assert.False(t, Equal(NewNumber(1), NewNumber(2)))
	assert.True(t, Equal(NewString("a"), NewString("a")))
	assert.False(t, Equal(NewString("a"), NewNumber(1)))
	assert.True(t, Equal(NewNil(), NewNil()))
	assert.False(t, Equal(NewNil(), NewNumber(0)))
}

func TestEqualLists(t *testing.T) {
	a := NewList(NewNumber(1), NewString("x"))
	b := NewList(NewNumber(1), NewString("x"))
	c := NewList(NewNumber(1), NewString("y"))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestEqualObjects(t *testing.T) {
	m1 := NewMap()
	m1.Set("a", NewNumber(1))
	m2 := NewMap()
	m2.Set("a", NewNumber(1))
	assert.True(t, Equal(NewObject(m1), NewObject(m2)))

	m3 := NewMap()
	m3.Set("a", NewNumber(2))
	assert.False(t, Equal(NewObject(m1), NewObject(m3)))
}

func TestHeadAndTail(t *testing.T) {
	lst := NewList(NewSymbol("+"), NewNumber(1), NewNumber(2))
	assert.True(t, lst.Head().IsSymbol("+"))
	assert.Equal(t, 2, len(lst.Tail()))

	empty := NewList()
	assert.Nil(t, empty.Head())
	assert.Nil(t, empty.Tail())

	notAList := NewNumber(1)
	assert.Nil(t, notAList.Head())
}

func TestIsSymbol(t *testing.T) {
	sym := NewSymbol("foo")
	assert.True(t, sym.IsSymbol("foo"))
	assert.True(t, sym.IsSymbol(""))
	assert.False(t, sym.IsSymbol("bar"))
	assert.False(t, NewString("foo").IsSymbol("foo"))
}

func TestIsNilHandlesNilPointer(t *testing.T) {
	var v *Value
	assert.True(t, v.IsNil())
	assert.True(t, NewNil().IsNil())
	assert.False(t, NewNumber(0).IsNil())
}

func TestIsCallable(t *testing.T) {
	assert.True(t, NewHostFunc("f", func([]*Value) (*Value, error) { return NewNil(), nil }).IsCallable())
	assert.False(t, NewNumber(1).IsCallable())
}

func TestStringRendering(t *testing.T) {
	assert.Equal(t, "nil", NewNil().String())
	assert.Equal(t, "true", NewBool(true).String())
	assert.Equal(t, "hello", NewString("hello").String())
	assert.Equal(t, "3", NewNumber(3).String())
}
