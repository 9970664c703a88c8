// Package parser implements a Pratt (top-down operator precedence)
// parser that turns a expreva token stream into the nested-list AST
// the evaluator consumes. It is grounded in the teacher's parser
// package (a Parser holding current/peek tokens plus registered
// prefix/infix handler tables, split one file per syntactic concern)
// generalized from the teacher's typed ExpressionNode tree to the
// homoiconic *value.Value AST spec.md requires.
package parser

import (
	"fmt"

	"github.com/exprevalang/expreva/lexer"
	"github.com/exprevalang/expreva/token"
	"github.com/exprevalang/expreva/value"
)

// quoteHead is the AST head symbol for a quote node: `[quoteHead, v]`
// evaluates to v unevaluated. Spelled "`" per spec.md's glossary.
const quoteHead = "`"

// tupleHead tags a parenthesized comma-group that is neither a
// lambda's parameter list nor transparent single-item grouping — e.g.
// the left side of `(a, b) -> f`. The lambda-arrow and pipe handlers
// unwrap it, and the statement parser converts one that is a whole
// statement into an ordinary `list` value. A tuple nested inside some
// other expression (e.g. `[(1, 2)]`) is left in the AST as a `#tuple`
// list.
const tupleHead = "#tuple"

// Parser turns a token stream into AST values one expression/statement
// at a time. It buffers exactly one token of lookahead (current, peek)
// plus the lexer's own one-slot bookmark, enough for the two local
// backtracking decisions spec.md documents: `x -> y` vs
// `x -> y => body`, and prefix-operator vs grouped-call via whitespace
// sensitivity on `(`.
type Parser struct {
	lex *lexer.Lexer

	current token.Token
	peek    token.Token

	// spaceBeforeCurrent/​spaceBeforePeek record whether whitespace or a
	// comment separated a token from the one before it, used to decide
	// whether a `(` right after an expression is a call or a grouped
	// expression that merely happens to follow one on the same line.
	spaceBeforeCurrent bool
	spaceBeforePeek    bool

	bookmark *snapshot

	partial []*value.Value // top-level statements parsed so far
}

type snapshot struct {
	current, peek                   token.Token
	spaceBeforeCurrent, spaceBeforePeek bool
}

// New constructs a Parser over src, priming current/peek.
func New(src string) (*Parser, error) {
	p := &Parser{lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseError is returned when the token stream cannot be parsed. It
// carries the statements successfully parsed before the failure so a
// host can still render partial output, per spec.md §4.2.
type ParseError struct {
	Message string
	Line    int
	Column  int
	Partial *value.Value
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    p.current.Line,
		Column:  p.current.Column,
		Partial: p.partialProgram(),
	}
}

func (p *Parser) partialProgram() *value.Value {
	items := append([]*value.Value{value.NewSymbol("do")}, p.partial...)
	return value.NewList(items...)
}

// advance pulls the next token from the lexer into peek, shifting the
// old peek into current. It tags each slot with whether it was
// preceded by whitespace, by comparing byte offsets.
func (p *Parser) advance() error {
	prevEnd := p.peek.End

	p.current = p.peek
	p.spaceBeforeCurrent = p.spaceBeforePeek

	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.peek = tok
	p.spaceBeforePeek = tok.Start > prevEnd
	return nil
}

// save records current/peek, and the lexer position just past peek, as
// the single backtracking bookmark.
func (p *Parser) save() {
	p.bookmark = &snapshot{p.current, p.peek, p.spaceBeforeCurrent, p.spaceBeforePeek}
	p.lex.Save()
}

// restore rewinds to the last saved bookmark. No-op if save was never
// called.
func (p *Parser) restore() {
	if p.bookmark == nil {
		return
	}
	p.current = p.bookmark.current
	p.peek = p.bookmark.peek
	p.spaceBeforeCurrent = p.bookmark.spaceBeforeCurrent
	p.spaceBeforePeek = p.bookmark.spaceBeforePeek
	p.lex.Restore()
}

// check reports whether current matches (typ, val) without consuming
// it. An empty val matches any value of that type.
func (p *Parser) check(typ token.Type, val string) bool {
	return p.current.Is(typ, val)
}

// accept consumes current and advances if it matches (typ, val),
// reporting whether it did.
func (p *Parser) accept(typ token.Type, val string) (bool, error) {
	if !p.check(typ, val) {
		return false, nil
	}
	return true, p.advance()
}

// expect consumes current if it matches (typ, val) or fails with a
// ParseError describing what was expected instead.
func (p *Parser) expect(typ token.Type, val string) (token.Token, error) {
	if !p.check(typ, val) {
		want := string(typ)
		if val != "" {
			want = val
		}
		return token.Token{}, p.errorf("expected %q, found %q", want, p.current.Value)
	}
	tok := p.current
	return tok, p.advance()
}

// Parse consumes the whole token stream and returns the nested-list
// AST: nil for empty input, the statement itself for a single
// statement, and `['do', stmt, ...]` for several (see DESIGN.md's Open
// Question resolution).
func Parse(src string) (*value.Value, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

// ParseProgram parses semicolon-separated statements until EOF.
func (p *Parser) ParseProgram() (*value.Value, error) {
	if p.check(token.EOF, "") {
		return value.NewNil(), nil
	}
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		p.partial = append(p.partial, stmt)
		if ok, err := p.accept(token.SEMICOLON, ""); err != nil {
			return nil, err
		} else if !ok {
			break
		}
		if p.check(token.EOF, "") {
			break
		}
	}
	if _, err := p.expect(token.EOF, ""); err != nil {
		return nil, err
	}
	if len(p.partial) == 1 {
		return finalize(p.partial[0]), nil
	}
	return finalize(p.partialProgram()), nil
}

func (p *Parser) parseStatement() (*value.Value, error) {
	expr, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	return finalize(expr), nil
}

// finalize converts any #tuple sentinel that escaped expression parsing
// (it is consumed by the lambda-arrow and pipe handlers in the normal
// case) into an ordinary list value, so that parsing stays total.
func finalize(v *value.Value) *value.Value {
	if v.IsList() && v.Head().IsSymbol(tupleHead) {
		items := append([]*value.Value{value.NewSymbol("list")}, v.Tail()...)
		return value.NewList(items...)
	}
	return v
}

// parseExpression is the Pratt loop: parse a prefix (nud), then keep
// consuming infix/postfix operators whose binding power exceeds rbp.
// `(` is treated as non-infix when whitespace precedes it, so that
// `f (x)` parses as two grouped expressions rather than a call — the
// whitespace-sensitivity spec.md §4.2 calls for to disambiguate call
// from grouping.
func (p *Parser) parseExpression(rbp int) (*value.Value, error) {
	left, err := p.parseNud()
	if err != nil {
		return nil, err
	}
	for rbp < p.effectiveLBP() {
		left, err = p.parseLed(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) effectiveLBP() int {
	if p.current.Type == token.PAREN && p.current.Value == "(" && p.spaceBeforeCurrent {
		return lowest
	}
	return lbpFor(p.current)
}

func makeQuotedString(s string) *value.Value {
	return value.NewList(value.NewSymbol(quoteHead), value.NewString(s))
}
