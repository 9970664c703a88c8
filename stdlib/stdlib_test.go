package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exprevalang/expreva/environment"
	"github.com/exprevalang/expreva/eval"
	"github.com/exprevalang/expreva/parser"
	"github.com/exprevalang/expreva/value"
)

func run(t *testing.T, src string) *value.Value {
	t.Helper()
	root := environment.NewRoot()
	Register(root)
	env := environment.New(root)
	ast, err := parser.Parse(src)
	assert.NoError(t, err)
	v, err := eval.Evaluate(ast, env)
	assert.NoError(t, err)
	return v
}

func TestArithmeticEndToEnd(t *testing.T) {
	assert.Equal(t, float64(2), run(t, "1 + 1").Num())
	assert.Equal(t, float64(7), run(t, "1 + 2 * 3").Num())
	assert.Equal(t, float64(9), run(t, "3 ^ 2").Num())
	assert.Equal(t, float64(-5), run(t, "-5").Num())
	assert.Equal(t, float64(120), run(t, "5!").Num())
}

func TestUnaryAndBinaryPlusPolymorphism(t *testing.T) {
	assert.Equal(t, float64(5), run(t, "+5").Num())
	assert.Equal(t, "ab", run(t, "'a' + 'b'").Str())
}

func TestComparisonAndLogic(t *testing.T) {
	assert.True(t, run(t, "1 < 2").Bool())
	assert.False(t, run(t, "1 > 2").Bool())
	assert.True(t, run(t, "1 == 1").Bool())
	assert.True(t, run(t, "true && true").Bool())
	assert.False(t, run(t, "true && false").Bool())
	assert.True(t, run(t, "false || true").Bool())
	assert.True(t, run(t, "!false").Bool())
}

func TestIfThenElseEndToEnd(t *testing.T) {
	assert.Equal(t, "yes", run(t, "if 1 < 2 then 'yes' else 'no'").Str())
}

func TestLambdaDefinitionAndCall(t *testing.T) {
	assert.Equal(t, float64(25), run(t, "f = x => x*x; f(5)").Num())
}

func TestMultiArgLambdaViaPipe(t *testing.T) {
	assert.Equal(t, float64(7), run(t, "(3, 4) -> ((x, y) => x + y)").Num())
}

func TestListPrimitives(t *testing.T) {
	assert.Equal(t, float64(3), run(t, "size([1, 2, 3])").Num())
	assert.Equal(t, float64(1), run(t, "search([1, 2, 3], 2)").Num())
	assert.Equal(t, float64(-1), run(t, "search([1, 2, 3], 9)").Num())

	pushed := run(t, "push([1, 2], 3)")
	items := pushed.ListItems()
	assert.Equal(t, 3, len(items))
	assert.Equal(t, float64(3), items[2].Num())
}

func TestMapFilterReduce(t *testing.T) {
	doubled := run(t, "map([1, 2, 3], x => x * 2)")
	items := doubled.ListItems()
	assert.Equal(t, float64(2), items[0].Num())
	assert.Equal(t, float64(6), items[2].Num())

	evens := run(t, "filter([1, 2, 3, 4], x => x % 2 == 0)")
	assert.Equal(t, 2, len(evens.ListItems()))

	sum := run(t, "reduce([1, 2, 3, 4], (acc, x) => acc + x, 0)")
	assert.Equal(t, float64(10), sum.Num())
}

func TestObjectMemberAccess(t *testing.T) {
	assert.Equal(t, float64(1), run(t, "{a: 1, b: 2}.a").Num())
}

func TestObjectKeysAndValues(t *testing.T) {
	k := run(t, "keys({a: 1, b: 2})")
	items := k.ListItems()
	assert.Equal(t, 2, len(items))
	assert.Equal(t, "a", items[0].Str())
	assert.Equal(t, "b", items[1].Str())
}

func TestStringPrimitives(t *testing.T) {
	assert.Equal(t, "a,b,c", run(t, `join(['a', 'b', 'c'], ',')`).Str())
	parts := run(t, `split('a,b,c', ',')`)
	assert.Equal(t, 3, len(parts.ListItems()))
}

func TestOptionalMathModuleViaUse(t *testing.T) {
	assert.Equal(t, float64(4), run(t, "use('math'); sqrt(16)").Num())
}
