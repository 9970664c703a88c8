package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exprevalang/expreva/token"
)

func tokenTypes(t *testing.T, src string) []token.Type {
	t.Helper()
	l := New(src)
	var types []token.Type
	for {
		tok, err := l.Next()
		assert.NoError(t, err)
		if tok.Type == token.EOF {
			return types
		}
		types = append(types, tok.Type)
	}
}

func TestNumberAndOperators(t *testing.T) {
	assert.Equal(t, []token.Type{token.NUMBER, token.OP, token.NUMBER}, tokenTypes(t, "1 + 2"))
}

func TestDecimalAndLeadingDot(t *testing.T) {
	l := New("1.5 .25")
	tok1, err := l.Next()
	assert.NoError(t, err)
	assert.Equal(t, "1.5", tok1.Value)
	tok2, err := l.Next()
	assert.NoError(t, err)
	assert.Equal(t, ".25", tok2.Value)
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb" 'hi'`)
	tok1, err := l.Next()
	assert.NoError(t, err)
	assert.Equal(t, token.STRING, tok1.Type)
	assert.Equal(t, "a\nb", tok1.Value)

	tok2, err := l.Next()
	assert.NoError(t, err)
	assert.Equal(t, "hi", tok2.Value)
}

func TestMultiCharOperatorsPrecedeSingleChar(t *testing.T) {
	l := New("a == b != c -> d => e")
	var vals []string
	for {
		tok, err := l.Next()
		assert.NoError(t, err)
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.OP {
			vals = append(vals, tok.Value)
		}
	}
	assert.Equal(t, []string{"==", "!=", "->", "=>"}, vals)
}

func TestCommentsAreSkipped(t *testing.T) {
	assert.Equal(t, []token.Type{token.NUMBER}, tokenTypes(t, "// comment\n1 /* block\ncomment */"))
}

func TestSaveRestore(t *testing.T) {
	l := New("1 2 3")
	first, _ := l.Next()
	assert.Equal(t, "1", first.Value)
	l.Save()
	second, _ := l.Next()
	assert.Equal(t, "2", second.Value)
	l.Restore()
	again, _ := l.Next()
	assert.Equal(t, "2", again.Value)
}

func TestLexErrorOnUnknownInput(t *testing.T) {
	l := New("1 # 2")
	_, err := l.Next()
	assert.NoError(t, err)
	_, err = l.Next()
	assert.Error(t, err)
	var lexErr *LexError
	assert.ErrorAs(t, err, &lexErr)
}

func TestKeywordsAreNames(t *testing.T) {
	assert.Equal(t, []token.Type{token.NAME, token.NAME}, tokenTypes(t, "if true"))
	assert.True(t, IsKeyword("if"))
	assert.False(t, IsKeyword("x"))
}

func TestTokenTypesEnumerationMatchesRuleOrder(t *testing.T) {
	types := TokenTypes()
	assert.Equal(t, "block-comment", types[0].Name)
	assert.NotEmpty(t, types[len(types)-1].Pattern)
}
