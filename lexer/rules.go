package lexer

import (
	"regexp"

	"github.com/exprevalang/expreva/token"
)

// rule is one entry of the lexer's ordered rule table: a regular
// expression anchored at the start of the remaining input (`\A...`)
// paired with the token type it produces. skip rules (comments,
// whitespace) have an empty Type and are consumed without emitting a
// token.
type rule struct {
	name    string
	pattern *regexp.Regexp
	typ     token.Type
	skip    bool
}

func anchored(pat string) *regexp.Regexp {
	return regexp.MustCompile(`\A(?:` + pat + `)`)
}

// rules is the ordered table the lexer walks at every position, trying
// each pattern in turn and taking the first match — spec.md §4.1's
// "ordered table of regular rules" whose pattern anchors at the current
// position. Order matters: longer operator spellings and the
// block-comment rule must precede their shorter/looser prefixes.
var rules = []rule{
	{"block-comment", anchored(`/\*[\s\S]*?\*/`), "", true},
	{"line-comment", anchored(`//[^\n]*`), "", true},
	{"whitespace", anchored(`[ \t\r\n]+`), "", true},
	{"number", anchored(`\d+\.\d+|\.\d+|\d+`), token.NUMBER, false},
	{"dq-string", anchored(`"(?:\\.|[^"\\])*"`), token.STRING, false},
	{"sq-string", anchored(`'(?:\\.|[^'\\])*'`), token.STRING, false},
	{"op3", anchored(`\.\.\.`), token.OP, false},
	{"op2", anchored(`==|!=|<=|>=|&&|\|\||\+\+|--|\+=|-=|\*=|/=|->|=>`), token.OP, false},
	{"identifier", anchored(`[A-Za-z_][A-Za-z0-9_]*`), token.NAME, false},
	{"op1", anchored(`[+\-*/%^=<>!?.&]`), token.OP, false},
	{"paren", anchored(`[()]`), token.PAREN, false},
	{"bracket", anchored(`[\[\]]`), token.BRACKET, false},
	{"brace", anchored(`[{}]`), token.BRACE, false},
	{"comma", anchored(`,`), token.COMMA, false},
	{"semicolon", anchored(`;`), token.SEMICOLON, false},
	{"colon", anchored(`:`), token.COLON, false},
}

// keywords are NAME tokens the parser recognizes by literal value
// rather than a distinct token type, matching spec.md's "reserved
// words ... are matched before the generic identifier rule" — in this
// table-driven design that check happens in the parser (which sees
// token.NAME "if" vs token.NAME "x"), not in the lexer, since the
// identifier rule already captures the correct span for either.
var keywords = map[string]bool{
	"if": true, "then": true, "else": true,
	"true": true, "false": true, "nil": true,
	"and": true, "or": true, "not": true, "in": true,
	"let": true, "lambda": true, "macro": true, "return": true,
	"do": true, "try": true, "catch": true,
}

// IsKeyword reports whether name is a reserved word.
func IsKeyword(name string) bool { return keywords[name] }

// TokenTypeInfo is one entry of the editor-facing token type
// enumeration spec.md §6 requires: `(type, regex)` pairs in the same
// order the lexer tries them, so a CodeMirror-style highlighting mode
// collaborator can reuse the exact same rules.
type TokenTypeInfo struct {
	Name    string
	Pattern string
}

// TokenTypes returns the lexer's rule table as (name, pattern) pairs in
// match order, skip rules included (a highlighter needs to know about
// comments and whitespace too).
func TokenTypes() []TokenTypeInfo {
	out := make([]TokenTypeInfo, 0, len(rules))
	for _, r := range rules {
		out = append(out, TokenTypeInfo{Name: r.name, Pattern: r.pattern.String()})
	}
	return out
}
