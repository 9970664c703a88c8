package parser

import (
	"strconv"

	"github.com/exprevalang/expreva/lexer"
	"github.com/exprevalang/expreva/token"
	"github.com/exprevalang/expreva/value"
)

// parseNud dispatches on the current token to parse a prefix
// expression — a literal, an identifier, a unary operator, or one of
// the bracketing constructs ((), [], {}) — grounded in the teacher's
// per-construct parser_literals.go/parser_expressions.go split.
func (p *Parser) parseNud() (*value.Value, error) {
	tok := p.current

	switch tok.Type {
	case token.NUMBER:
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorf("invalid number literal %q", tok.Value)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return value.NewNumber(f), nil

	case token.STRING:
		s := tok.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return makeQuotedString(s), nil

	case token.PAREN:
		if tok.Value == "(" {
			return p.parsePrefixParen()
		}

	case token.BRACKET:
		if tok.Value == "[" {
			return p.parseArray()
		}

	case token.BRACE:
		if tok.Value == "{" {
			return p.parseObject()
		}

	case token.OP:
		switch tok.Value {
		case "-", "+", "!":
			return p.parseUnary(tok.Value)
		case "...":
			return p.parseSpread()
		}

	case token.NAME:
		switch tok.Value {
		case "not":
			if err := p.advance(); err != nil {
				return nil, err
			}
			operand, err := p.parseExpression(unaryLBP)
			if err != nil {
				return nil, err
			}
			return value.NewList(value.NewSymbol("!"), operand), nil
		case "true":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return value.NewBool(true), nil
		case "false":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return value.NewBool(false), nil
		case "nil":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return value.NewNil(), nil
		case "if":
			return p.parseIfKeyword()
		case "let":
			return p.parseLet()
		case "try":
			return p.parseTryKeyword()
		case "lambda":
			return p.parseLambdaKeyword()
		default:
			if lexer.IsKeyword(tok.Value) {
				return nil, p.errorf("unexpected keyword %q", tok.Value)
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			return value.NewSymbol(tok.Value), nil
		}
	}

	return nil, p.errorf("unexpected token %q", tok.Value)
}

// parseUnary handles prefix `-`, `+` and `!`, all binding at unaryLBP
// per spec.md's precedence table. Unary `-`/`+` reuse the same AST
// head symbol as their binary counterparts (`['-', x]` vs
// `['-', x, y]`) since spec.md §4.4 asks the host to register "unary
// -" alongside binary "-" as the same operator family; the host
// arithmetic primitive distinguishes them by argument count. Prefix
// `!`/`not` always produce `['!', x]`; postfix `!` (factorial,
// parser/led.go) produces the distinct `['fact', x]` head so the two
// never collide on arity the way `-` intentionally does — see
// DESIGN.md's resolution of the `!` ambiguity note.
func (p *Parser) parseUnary(op string) (*value.Value, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.parseExpression(unaryLBP)
	if err != nil {
		return nil, err
	}
	return value.NewList(value.NewSymbol(op), operand), nil
}

// parseSpread handles a bare `...expr`, used inside array/object
// literals and as the alternate lambda rest-argument syntax.
func (p *Parser) parseSpread() (*value.Value, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.parseExpression(unaryLBP)
	if err != nil {
		return nil, err
	}
	return value.NewList(value.NewSymbol("..."), operand), nil
}

// parseExprList parses a comma-separated list of expressions up to
// (not including) the closing token, used by call arguments and array
// elements — plain expressions, with none of parseParenItems' `&`
// rest-argument handling.
func (p *Parser) parseExprList(closeType token.Type, closeVal string) ([]*value.Value, error) {
	var items []*value.Value
	if p.check(closeType, closeVal) {
		return items, nil
	}
	for {
		e, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
		ok, err := p.accept(token.COMMA, "")
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	return items, nil
}

// parseParenItems parses the comma-separated contents of a `(...)`
// group that might turn out to be a lambda's parameter list, a pipe's
// tuple of arguments, or just a grouped expression — the ambiguity
// spec.md §4.2 calls out. `&name` is recognized here (and only here)
// as the flattened two-symbol rest-argument form spec.md's
// bind_function_scope expects.
func (p *Parser) parseParenItems() ([]*value.Value, error) {
	var items []*value.Value
	if p.check(token.PAREN, ")") {
		return items, nil
	}
	for {
		if ok, err := p.accept(token.OP, "&"); err != nil {
			return nil, err
		} else if ok {
			nameTok, err := p.expect(token.NAME, "")
			if err != nil {
				return nil, err
			}
			items = append(items, value.NewSymbol("&"), value.NewSymbol(nameTok.Value))
		} else {
			e, err := p.parseExpression(lowest)
			if err != nil {
				return nil, err
			}
			items = append(items, e)
		}
		ok, err := p.accept(token.COMMA, "")
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	return items, nil
}

// parsePrefixParen parses `(...)`. A single item with no trailing
// comma is transparent grouping; anything else (zero or 2+ items)
// becomes a #tuple sentinel for the `=>`/`->` handlers (or, when it is
// a whole statement, finalize()) to interpret.
func (p *Parser) parsePrefixParen() (*value.Value, error) {
	if _, err := p.expect(token.PAREN, "("); err != nil {
		return nil, err
	}
	items, err := p.parseParenItems()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.PAREN, ")"); err != nil {
		return nil, err
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return value.NewList(append([]*value.Value{value.NewSymbol(tupleHead)}, items...)...), nil
}

// parseArray handles `[e1, e2, ...]` → `['list', e1, e2, ...]`. Any
// trailing `+ expr` falls out of the ordinary Pratt loop once control
// returns to the caller — `+` at additiveLBP simply becomes the next
// infix operator applied to the array value, with no special casing
// needed here.
func (p *Parser) parseArray() (*value.Value, error) {
	if _, err := p.expect(token.BRACKET, "["); err != nil {
		return nil, err
	}
	items, err := p.parseExprList(token.BRACKET, "]")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.BRACKET, "]"); err != nil {
		return nil, err
	}
	return value.NewList(append([]*value.Value{value.NewSymbol("list")}, items...)...), nil
}
