package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("b", NewNumber(2))
	m.Set("a", NewNumber(1))
	m.Set("c", NewNumber(3))
	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	assert.Equal(t, 3, m.Len())
}

func TestMapSetOverwritesWithoutReordering(t *testing.T) {
	m := NewMap()
	m.Set("a", NewNumber(1))
	m.Set("b", NewNumber(2))
	m.Set("a", NewNumber(99))
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, float64(99), v.Num())
}

func TestMapDelete(t *testing.T) {
	m := NewMap()
	m.Set("a", NewNumber(1))
	m.Set("b", NewNumber(2))
	m.Delete("a")
	assert.Equal(t, []string{"b"}, m.Keys())
	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Delete("nonexistent")
	assert.Equal(t, 1, m.Len())
}

func TestMapClone(t *testing.T) {
	m := NewMap()
	m.Set("a", NewNumber(1))
	clone := m.Clone()
	clone.Set("b", NewNumber(2))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 2, clone.Len())
}
