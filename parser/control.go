package parser

import (
	"github.com/exprevalang/expreva/token"
	"github.com/exprevalang/expreva/value"
)

// parseIfKeyword handles `if cond [then] body [else elseBody]`,
// producing the same `['if', cond, then, else]` shape the `?:`
// ternary (parser/led.go) produces. The else-branch is omitted from
// the AST entirely when absent, matching the "missing else evaluates
// to nil" edge case spec.md documents for the `if` special form.
func (p *Parser) parseIfKeyword() (*value.Value, error) {
	if _, err := p.expect(token.NAME, "if"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.accept(token.NAME, "then"); err != nil {
		return nil, err
	}
	thenExpr, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if ok, err := p.accept(token.NAME, "else"); err != nil {
		return nil, err
	} else if ok {
		elseExpr, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		return value.NewList(value.NewSymbol("if"), cond, thenExpr, elseExpr), nil
	}
	return value.NewList(value.NewSymbol("if"), cond, thenExpr), nil
}

// parseLet handles `let name = expr, name2 = expr2 in body` →
// `['let', [name, expr, name2, expr2], body]`. A binding's value ends
// at an `in` met at its top level instead of treating it as the binary
// `in` operator; an `in` inside the right operand of a looser operator
// (`and`, `or`, `?:`, `=`) is still read as the operator, so such a
// value needs parentheses.
func (p *Parser) parseLet() (*value.Value, error) {
	if _, err := p.expect(token.NAME, "let"); err != nil {
		return nil, err
	}
	var pairs []*value.Value
	for {
		nameTok, err := p.expect(token.NAME, "")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.OP, "="); err != nil {
			return nil, err
		}
		val, err := p.parseNud()
		if err != nil {
			return nil, err
		}
		for !p.check(token.NAME, "in") && lowest < p.effectiveLBP() {
			if val, err = p.parseLed(val); err != nil {
				return nil, err
			}
		}
		pairs = append(pairs, value.NewSymbol(nameTok.Value), val)
		if ok, err := p.accept(token.COMMA, ""); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	if _, err := p.expect(token.NAME, "in"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	return value.NewList(value.NewSymbol("let"), value.NewList(pairs...), body), nil
}

// parseTryKeyword handles `try body [catch (err) handler]` →
// `['try', body]` or `['try', body, ['catch', err, handler]]`.
func (p *Parser) parseTryKeyword() (*value.Value, error) {
	if _, err := p.expect(token.NAME, "try"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if ok, err := p.accept(token.NAME, "catch"); err != nil {
		return nil, err
	} else if ok {
		if _, err := p.expect(token.PAREN, "("); err != nil {
			return nil, err
		}
		nameTok, err := p.expect(token.NAME, "")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.PAREN, ")"); err != nil {
			return nil, err
		}
		catchBody, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		catch := value.NewList(value.NewSymbol("catch"), value.NewSymbol(nameTok.Value), catchBody)
		return value.NewList(value.NewSymbol("try"), body, catch), nil
	}
	return value.NewList(value.NewSymbol("try"), body), nil
}

// parseLambdaKeyword handles the `lambda (args) body` / `lambda name
// body` alternate surface syntax for the same `['lambda', args, body]`
// AST the `=>` arrow (parser/led.go) produces.
func (p *Parser) parseLambdaKeyword() (*value.Value, error) {
	if _, err := p.expect(token.NAME, "lambda"); err != nil {
		return nil, err
	}
	var argsList *value.Value
	if p.check(token.PAREN, "(") {
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
		argsList = value.NewList(items...)
	} else {
		nameTok, err := p.expect(token.NAME, "")
		if err != nil {
			return nil, err
		}
		argsList = value.NewList(value.NewSymbol(nameTok.Value))
	}
	body, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	return value.NewList(value.NewSymbol("lambda"), argsList, body), nil
}

// parseObjectKey parses one object-literal key: a bare identifier (its
// bareName is returned for the `{k}` shorthand expanding to
// `{k: k}`), a number/string literal quoted the same way member-access
// names are, or a dynamic `(expr)` key left unquoted.
func (p *Parser) parseObjectKey() (key *value.Value, bareName string, err error) {
	tok := p.current
	switch {
	case tok.Type == token.NAME:
		if err := p.advance(); err != nil {
			return nil, "", err
		}
		return makeQuotedString(tok.Value), tok.Value, nil
	case tok.Type == token.NUMBER, tok.Type == token.STRING:
		if err := p.advance(); err != nil {
			return nil, "", err
		}
		return makeQuotedString(tok.Value), "", nil
	case tok.Type == token.PAREN && tok.Value == "(":
		if _, err := p.expect(token.PAREN, "("); err != nil {
			return nil, "", err
		}
		e, err := p.parseExpression(lowest)
		if err != nil {
			return nil, "", err
		}
		if _, err := p.expect(token.PAREN, ")"); err != nil {
			return nil, "", err
		}
		return e, "", nil
	default:
		return nil, "", p.errorf("expected object key, found %q", tok.Value)
	}
}

// parseObject handles `{...}` object literals, including `...expr`
// spread entries and the `{k}` shorthand. Pairs are collected and
// emitted in source order, so evaluation (last-write-wins on
// duplicate keys) matches the reference behavior.
func (p *Parser) parseObject() (*value.Value, error) {
	if _, err := p.expect(token.BRACE, "{"); err != nil {
		return nil, err
	}
	var entries []*value.Value
	for !p.check(token.BRACE, "}") {
		if ok, err := p.accept(token.OP, "..."); err != nil {
			return nil, err
		} else if ok {
			e, err := p.parseExpression(lowest)
			if err != nil {
				return nil, err
			}
			entries = append(entries, value.NewList(value.NewSymbol("..."), e))
		} else {
			key, bareName, err := p.parseObjectKey()
			if err != nil {
				return nil, err
			}
			var val *value.Value
			if ok, err := p.accept(token.COLON, ""); err != nil {
				return nil, err
			} else if ok {
				val, err = p.parseExpression(lowest)
				if err != nil {
					return nil, err
				}
			} else {
				if bareName == "" {
					return nil, p.errorf("expected ':' after object key")
				}
				val = value.NewSymbol(bareName)
			}
			entries = append(entries, value.NewList(key, val))
		}
		if ok, err := p.accept(token.COMMA, ""); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	if _, err := p.expect(token.BRACE, "}"); err != nil {
		return nil, err
	}

	return value.NewList(append([]*value.Value{value.NewSymbol("obj")}, entries...)...), nil
}
