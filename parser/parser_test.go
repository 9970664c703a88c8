package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exprevalang/expreva/prettyprint"
)

func parseAST(t *testing.T, src string) string {
	t.Helper()
	ast, err := Parse(src)
	assert.NoError(t, err)
	return prettyprint.AST(ast)
}

func TestPrecedenceOfMulOverAdd(t *testing.T) {
	assert.Equal(t, "(+ 1 (* 2 3))", parseAST(t, "1 + 2 * 3"))
}

func TestPowerBindsTighterThanMul(t *testing.T) {
	assert.Equal(t, "(* 2 (^ 3 2))", parseAST(t, "2 * 3 ^ 2"))
}

func TestParenGrouping(t *testing.T) {
	assert.Equal(t, "(* (+ 1 2) 3)", parseAST(t, "(1 + 2) * 3"))
}

func TestUnaryMinusAndPrefixBang(t *testing.T) {
	assert.Equal(t, "(- 5)", parseAST(t, "-5"))
	assert.Equal(t, "(! true)", parseAST(t, "!true"))
}

func TestPostfixFactorialIsDistinctHead(t *testing.T) {
	assert.Equal(t, "(fact 5)", parseAST(t, "5!"))
}

func TestIfThenElse(t *testing.T) {
	assert.Equal(t, "(if (< 1 2) (` 'yes') (` 'no'))", parseAST(t, "if 1 < 2 then 'yes' else 'no'"))
}

func TestIfWithoutElse(t *testing.T) {
	assert.Equal(t, "(if true 1)", parseAST(t, "if true then 1"))
}

func TestLambdaArrow(t *testing.T) {
	assert.Equal(t, "(lambda (x) (* x x))", parseAST(t, "x => x*x"))
}

func TestLambdaArrowMultiParam(t *testing.T) {
	assert.Equal(t, "(lambda (x y) (+ x y))", parseAST(t, "(x, y) => x + y"))
}

func TestPipeOperator(t *testing.T) {
	assert.Equal(t, "(f 3 4)", parseAST(t, "(3, 4) -> f"))
}

func TestArrayLiteral(t *testing.T) {
	assert.Equal(t, "(list 1 2 3)", parseAST(t, "[1, 2, 3]"))
}

func TestAssignment(t *testing.T) {
	assert.Equal(t, "(def 'x' 1)", parseAST(t, "x = 1"))
}

func TestLetExpression(t *testing.T) {
	assert.Equal(t, "(let (x 1) (+ x 1))", parseAST(t, "let x = 1 in x + 1"))
}

func TestCallExpression(t *testing.T) {
	assert.Equal(t, "(f 1 2)", parseAST(t, "f(1, 2)"))
}

func TestMemberAccessChain(t *testing.T) {
	assert.Equal(t, "(get a (` 'b') (` 'c'))", parseAST(t, "a.b.c"))
}

func TestStringConcatParses(t *testing.T) {
	assert.Equal(t, "(+ (` 'a') (` 'b'))", parseAST(t, "'a' + 'b'"))
}

func TestMultipleStatementsWrapInDo(t *testing.T) {
	assert.Equal(t, "(do (def 'x' 1) (+ x 1))", parseAST(t, "x = 1; x + 1"))
}
