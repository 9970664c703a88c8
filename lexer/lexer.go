// Package lexer tokenizes expreva source text using an ordered table of
// regular expression rules, matched against the current position left
// to right. It is grounded in the teacher's lexer.Lexer (same Next
// shape, same line/column bookkeeping) but table-driven by regexp
// instead of the teacher's hand-written character switch, per spec.md
// §4.1's explicit "ordered table of regular rules" design.
package lexer

import (
	"strconv"
	"strings"

	"github.com/exprevalang/expreva/token"
)

// Lexer walks src left to right, producing one token.Token per call to
// Next. It keeps a single bookmark slot for save/restore, used by the
// parser for its two local backtracking decisions (`x -> y` vs
// `x -> y => body`, and prefix-operator vs grouped-call).
type Lexer struct {
	src    string
	pos    int
	line   int
	column int

	bookmark *state
}

type state struct {
	pos, line, column int
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, pos: 0, line: 1, column: 1}
}

// Save records the current position as the single backtracking
// bookmark, overwriting any previous bookmark.
func (l *Lexer) Save() {
	l.bookmark = &state{l.pos, l.line, l.column}
}

// Restore rewinds to the last saved position. It is a no-op if Save was
// never called.
func (l *Lexer) Restore() {
	if l.bookmark == nil {
		return
	}
	l.pos, l.line, l.column = l.bookmark.pos, l.bookmark.line, l.bookmark.column
}

// Position returns the lexer's current line and column, used by the
// parser to stamp partial ASTs and error records.
func (l *Lexer) Position() (line, column int) { return l.line, l.column }

// LexError reports that no rule in the table matched at the current
// non-EOF position.
type LexError struct {
	Line, Column int
	Snippet      string
}

func (e *LexError) Error() string {
	return "lex error at " + strconv.Itoa(e.Line) + ":" + strconv.Itoa(e.Column) + ": unexpected input " + strconv.Quote(e.Snippet)
}

// Next scans and returns the next token, skipping whitespace and
// comments. At end of input it returns a token.EOF token forever.
func (l *Lexer) Next() (token.Token, error) {
	for {
		if l.pos >= len(l.src) {
			return token.Token{Type: token.EOF, Line: l.line, Column: l.column, Start: l.pos, End: l.pos}, nil
		}

		rest := l.src[l.pos:]
		matchedSkip := false
		for _, r := range rules {
			loc := r.pattern.FindStringIndex(rest)
			if loc == nil || loc[0] != 0 {
				continue
			}
			lexeme := rest[:loc[1]]
			start := l.pos
			startLine, startCol := l.line, l.column
			l.advance(lexeme)

			if r.skip {
				matchedSkip = true
				break
			}

			value := lexeme
			if r.typ == token.STRING {
				unescaped := unescapeString(lexeme)
				value = unescaped
			}

			return token.Token{
				Type:   r.typ,
				Value:  value,
				Line:   startLine,
				Column: startCol,
				Start:  start,
				End:    l.pos,
			}, nil
		}

		if matchedSkip {
			continue
		}

		return token.Token{}, &LexError{Line: l.line, Column: l.column, Snippet: snippet(rest)}
	}
}

func snippet(rest string) string {
	if len(rest) > 16 {
		return rest[:16]
	}
	return rest
}

// advance moves pos/line/column past lexeme, tracking newlines so line
// numbers stay accurate across multi-line comments and strings.
func (l *Lexer) advance(lexeme string) {
	for _, r := range lexeme {
		if r == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.pos += len(lexeme)
}

// unescapeString decodes a quoted literal's backslash escapes the way
// JSON strings are unescaped, per spec.md §4.1, but tolerating either
// quote character since expreva (unlike JSON) allows single-quoted
// strings too.
func unescapeString(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	quote := lexeme[0]
	body := lexeme[1 : len(lexeme)-1]

	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			b.WriteByte('\\')
			i++
			continue
		}
		esc := body[i+1]
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '0':
			b.WriteByte(0)
		default:
			if esc == quote {
				b.WriteByte(quote)
			} else {
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
		}
		i += 2
	}
	return b.String()
}
