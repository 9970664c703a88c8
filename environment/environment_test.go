package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exprevalang/expreva/value"
)

func TestGetWalksParentChain(t *testing.T) {
	root := NewRoot()
	root.Bind("x", value.NewNumber(1))
	child := New(root)
	grandchild := child.Create()

	v, ok := grandchild.Get("x")
	assert.True(t, ok)
	assert.Equal(t, float64(1), v.Num())

	_, ok = grandchild.Get("undefined")
	assert.False(t, ok)
}

func TestBindShadowsWithoutMutatingParent(t *testing.T) {
	root := NewRoot()
	root.Bind("x", value.NewNumber(1))
	child := New(root)
	child.Bind("x", value.NewNumber(2))

	v, _ := child.Get("x")
	assert.Equal(t, float64(2), v.Num())

	v, _ = root.Get("x")
	assert.Equal(t, float64(1), v.Num())
}

func TestBindGlobalWritesTopOfEvaluationChain(t *testing.T) {
	root := NewRoot()
	userGlobal := New(root)
	fnScope := userGlobal.Create().(*Env)

	fnScope.BindGlobal("y", value.NewNumber(5))

	_, ok := fnScope.Get("y")
	assert.True(t, ok, "binding should be visible from the scope it was set from")

	v, ok := userGlobal.Get("y")
	assert.True(t, ok)
	assert.Equal(t, float64(5), v.Num())

	_, ok = root.Get("y")
	assert.False(t, ok, "BindGlobal must not reach past the user global into root")
}

func TestGlobalOnAnAlreadyGlobalScope(t *testing.T) {
	root := NewRoot()
	userGlobal := New(root)
	assert.Same(t, userGlobal, userGlobal.Global())
}

func TestRootAndParent(t *testing.T) {
	root := NewRoot()
	child := New(root)
	grandchild := child.Create().(*Env)

	assert.Same(t, root, grandchild.Root())
	assert.Equal(t, value.Scope(child), grandchild.Parent())
	assert.Nil(t, root.Parent())
}

func TestNewWithNilRootIsHermetic(t *testing.T) {
	e := New(nil)
	assert.Same(t, e, e.Root())
	_, ok := e.Get("anything")
	assert.False(t, ok)
}
