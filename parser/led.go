package parser

import (
	"strings"

	"github.com/exprevalang/expreva/token"
	"github.com/exprevalang/expreva/value"
)

// parseLed dispatches on the current token to extend an already-parsed
// left expression — binary operators, assignment, postfix forms, and
// the member/call/index/pipe/lambda-arrow constructs — grounded in
// the teacher's per-construct parser_expressions.go/
// parser_assignments.go split, generalized to emit list AST nodes
// instead of typed ExpressionNodes.
func (p *Parser) parseLed(left *value.Value) (*value.Value, error) {
	tok := p.current

	switch {
	case tok.Type == token.OP && tok.Value == "=":
		return p.ledAssign(left)
	case tok.Type == token.OP && (tok.Value == "+=" || tok.Value == "-=" || tok.Value == "*=" || tok.Value == "/="):
		return p.ledCompoundAssign(left)
	case tok.Type == token.OP && (tok.Value == "++" || tok.Value == "--"):
		return p.ledIncDec(left)
	case tok.Type == token.OP && tok.Value == "!":
		return p.ledFactorial(left)
	case tok.Type == token.OP && tok.Value == "?":
		return p.ledTernary(left)
	case tok.Type == token.OP && tok.Value == "->":
		return p.ledPipe(left)
	case tok.Type == token.OP && tok.Value == "=>":
		return p.ledArrow(left)
	case tok.Type == token.OP && tok.Value == ".":
		return p.ledMember(left)
	case tok.Type == token.BRACKET && tok.Value == "[":
		return p.ledIndex(left)
	case tok.Type == token.PAREN && tok.Value == "(":
		return p.ledCall(left)
	case tok.Type == token.OP || tok.Type == token.NAME:
		return p.ledBinary(left)
	default:
		return nil, p.errorf("unexpected token %q in expression", tok.Value)
	}
}

// toDefTarget turns a parsed left-hand side into the form `def` (and
// the increment/compound-assign forms built on top of it) expect as
// their name slot: a plain symbol becomes the quoted-string name `def`
// uses for a simple variable write, while a `get`-headed member/index
// chain is reused verbatim as the assignment target.
func toDefTarget(left *value.Value) *value.Value {
	if left.IsList() {
		return left
	}
	return value.NewString(left.Str())
}

// toReadExpr turns the same left-hand side into something that reads
// the current value: a bare symbol reads by itself, while a `get`
// chain target reads through the `__current__` placeholder instead of
// re-embedding the whole chain. Re-embedding it would evaluate the
// chain's base a second time (`makeThing().count += 1` would call
// makeThing() twice); applySet (eval/member.go) binds `__current__` to
// the already-resolved member value so the base evaluates once.
func toReadExpr(left *value.Value) *value.Value {
	if left.IsList() {
		return value.NewSymbol("__current__")
	}
	return left
}

// ledBinary handles every plain binary operator (arithmetic,
// comparison, logical) in a single left-associative rule: parse the
// right operand at the operator's own binding power, so a
// same-precedence operator that follows stops the loop rather than
// being swallowed. "and"/"or" keywords are normalized to the `&&`/`||`
// symbols the host's logical primitives are registered under; "in"
// keeps its own name.
func (p *Parser) ledBinary(left *value.Value) (*value.Value, error) {
	tok := p.current
	lbp := lbpFor(tok)
	sym := tok.Value
	if tok.Type == token.NAME {
		switch tok.Value {
		case "and":
			sym = "&&"
		case "or":
			sym = "||"
		case "in":
			sym = "in"
		default:
			return nil, p.errorf("unexpected token %q in expression", tok.Value)
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression(lbp)
	if err != nil {
		return nil, err
	}
	return value.NewList(value.NewSymbol(sym), left, rhs), nil
}

// ledAssign handles `target = value` → `['def', target, value]`.
// Right operand parses at assignLBP-1 so `a = b = 5` associates as
// `a = (b = 5)`.
func (p *Parser) ledAssign(left *value.Value) (*value.Value, error) {
	if _, err := p.expect(token.OP, "="); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression(assignLBP - 1)
	if err != nil {
		return nil, err
	}
	return value.NewList(value.NewSymbol("def"), toDefTarget(left), rhs), nil
}

// ledCompoundAssign handles `target OP= value` by expanding to
// `['def', target, [op, read, value]]`, where read is toReadExpr(target).
func (p *Parser) ledCompoundAssign(left *value.Value) (*value.Value, error) {
	op := p.current.Value
	core := strings.TrimSuffix(op, "=")
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression(assignLBP - 1)
	if err != nil {
		return nil, err
	}
	target := toDefTarget(left)
	read := toReadExpr(left)
	return value.NewList(value.NewSymbol("def"), target, value.NewList(value.NewSymbol(core), read, rhs)), nil
}

// ledIncDec handles postfix `++`/`--` by expanding to the equivalent
// `target += 1` / `target -= 1` def form.
func (p *Parser) ledIncDec(left *value.Value) (*value.Value, error) {
	core := "+"
	if p.current.Value == "--" {
		core = "-"
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	target := toDefTarget(left)
	read := toReadExpr(left)
	return value.NewList(value.NewSymbol("def"), target, value.NewList(value.NewSymbol(core), read, value.NewNumber(1))), nil
}

// ledFactorial handles postfix `!` → `['fact', x]`, kept distinct from
// prefix `!`/`not` (`['!', x]`, parser/expressions.go) so the two never
// need runtime arity disambiguation.
func (p *Parser) ledFactorial(left *value.Value) (*value.Value, error) {
	if _, err := p.expect(token.OP, "!"); err != nil {
		return nil, err
	}
	return value.NewList(value.NewSymbol("fact"), left), nil
}

// ledTernary handles `cond ? then : else` → `['if', cond, then, else]`,
// the same AST shape the `if`/`then`/`else` keyword form produces
// (parser/control.go), per spec.md's precedence table listing `?` and
// `if` on the same row.
func (p *Parser) ledTernary(left *value.Value) (*value.Value, error) {
	if _, err := p.expect(token.OP, "?"); err != nil {
		return nil, err
	}
	thenExpr, err := p.parseExpression(assignLBP)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, ""); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseExpression(ternaryLBP)
	if err != nil {
		return nil, err
	}
	return value.NewList(value.NewSymbol("if"), left, thenExpr, elseExpr), nil
}

// ledMember handles `.name` and `.(expr)`, chaining onto an existing
// `get` list rather than nesting a fresh one so `a.b.c` parses to
// `['get', a, 'b', 'c']` instead of nested gets-of-gets.
func (p *Parser) ledMember(left *value.Value) (*value.Value, error) {
	if _, err := p.expect(token.OP, "."); err != nil {
		return nil, err
	}
	var member *value.Value
	if ok, err := p.accept(token.PAREN, "("); err != nil {
		return nil, err
	} else if ok {
		e, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.PAREN, ")"); err != nil {
			return nil, err
		}
		member = e
	} else {
		nameTok, err := p.expect(token.NAME, "")
		if err != nil {
			return nil, err
		}
		member = makeQuotedString(nameTok.Value)
	}
	return chainGet(left, member), nil
}

// ledIndex handles `[expr]`, folding into the same `get` chain as
// member access.
func (p *Parser) ledIndex(left *value.Value) (*value.Value, error) {
	if _, err := p.expect(token.BRACKET, "["); err != nil {
		return nil, err
	}
	member, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.BRACKET, "]"); err != nil {
		return nil, err
	}
	return chainGet(left, member), nil
}

func chainGet(left, member *value.Value) *value.Value {
	if left.IsList() && left.Head().IsSymbol("get") {
		items := append(append([]*value.Value{}, left.ListItems()...), member)
		return value.NewListFrom(items)
	}
	return value.NewList(value.NewSymbol("get"), left, member)
}

// ledCall handles `(args...)` applied to an already-parsed callee.
func (p *Parser) ledCall(left *value.Value) (*value.Value, error) {
	if _, err := p.expect(token.PAREN, "("); err != nil {
		return nil, err
	}
	args, err := p.parseExprList(token.PAREN, ")")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.PAREN, ")"); err != nil {
		return nil, err
	}
	return value.NewList(append([]*value.Value{left}, args...)...), nil
}

// ledArrow handles `params => body`, where params is either a bare
// symbol (single-argument shorthand) or the #tuple sentinel left by
// parsePrefixParen (zero or multiple arguments).
func (p *Parser) ledArrow(left *value.Value) (*value.Value, error) {
	if _, err := p.expect(token.OP, "=>"); err != nil {
		return nil, err
	}
	var argsList *value.Value
	switch {
	case left.IsList() && left.Head().IsSymbol(tupleHead):
		argsList = value.NewListFrom(left.Tail())
	case left.IsSymbol(""):
		argsList = value.NewList(left)
	default:
		return nil, p.errorf("invalid lambda parameter list")
	}
	body, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	return value.NewList(value.NewSymbol("lambda"), argsList, body), nil
}

// ledPipe handles `value -> target`. target is applied to value
// (prepending value's own tuple items, if it was a `(a, b) -> f`
// grouped pipe) ahead of any arguments target already carries — so
// `x -> f(y)` becomes `[f, x, y]` and `x -> y => body` becomes an
// application of the freshly-parsed lambda to x, per spec.md §4.2's
// pipe examples.
func (p *Parser) ledPipe(left *value.Value) (*value.Value, error) {
	if _, err := p.expect(token.OP, "->"); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression(mulLBP)
	if err != nil {
		return nil, err
	}

	var pipedArgs []*value.Value
	if left.IsList() && left.Head().IsSymbol(tupleHead) {
		pipedArgs = left.Tail()
	} else {
		pipedArgs = []*value.Value{left}
	}

	if rhs.IsList() && !rhs.Head().IsSymbol("lambda") {
		items := append([]*value.Value{rhs.Head()}, pipedArgs...)
		items = append(items, rhs.Tail()...)
		return value.NewListFrom(items), nil
	}
	items := append([]*value.Value{rhs}, pipedArgs...)
	return value.NewListFrom(items), nil
}
