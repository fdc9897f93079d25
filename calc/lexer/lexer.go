// Package lexer splits calculator source into tokens.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hupe1980/numbridge/calc/token"
)

// Lexer produces tokens from an input string.
type Lexer struct {
	input string
	pos   int // offset of ch
	next  int // offset after ch
	ch    rune
	line  int
	col   int
}

// New returns a Lexer positioned at the start of input.
func New(input string) *Lexer {
	l := &Lexer{input: input, col: -1}
	l.readRune()
	return l
}

// Tokenize lexes the whole input, including the trailing EOF token.
func Tokenize(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) readRune() {
	if l.ch == '\n' {
		l.line++
		l.col = -1
	}
	if l.next >= len(l.input) {
		l.pos = len(l.input)
		l.ch = 0
		l.col++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.next:])
	l.pos = l.next
	l.next += w
	l.ch = r
	l.col++
}

func (l *Lexer) peekRune() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

func (l *Lexer) position() token.Position {
	return token.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *Lexer) skipBlanks() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readRune()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readRune()
			}
		default:
			return
		}
	}
}

// Next returns the next token.
func (l *Lexer) Next() token.Token {
	l.skipBlanks()
	pos := l.position()
	tok := func(t token.Type, lit string) token.Token {
		return token.Token{Type: t, Literal: lit, Position: pos}
	}

	switch ch := l.ch; {
	case ch == 0 && l.pos >= len(l.input):
		return tok(token.EOF, "")
	case ch == '\n':
		l.readRune()
		return tok(token.NEWLINE, "\n")
	case isDigit(ch) || (ch == '.' && isDigit(l.peekRune())):
		lit, ok := l.readNumber()
		if !ok {
			return tok(token.ILLEGAL, "misplaced digit separator in "+lit)
		}
		return tok(token.NUMBER, lit)
	case isIdentStart(ch):
		ident := l.readIdentifier()
		return tok(token.LookupIdentifier(ident), ident)
	case ch == '"':
		s, ok := l.readString()
		if !ok {
			return tok(token.ILLEGAL, "unterminated string")
		}
		return tok(token.STRING, s)
	}

	two := func(second rune, double token.Type, single token.Type) token.Token {
		first := string(l.ch)
		if l.peekRune() == second {
			l.readRune()
			l.readRune()
			return tok(double, first+string(second))
		}
		l.readRune()
		return tok(single, first)
	}

	switch l.ch {
	case '+':
		l.readRune()
		return tok(token.PLUS, "+")
	case '-':
		return two('>', token.ARROW, token.MINUS)
	case '*':
		return two('*', token.POW, token.ASTERISK)
	case '×', '·':
		l.readRune()
		return tok(token.ASTERISK, "*")
	case '/', '÷':
		l.readRune()
		return tok(token.SLASH, "/")
	case '^':
		l.readRune()
		return tok(token.CARET, "^")
	case '→':
		l.readRune()
		return tok(token.ARROW, "->")
	case '=':
		return two('=', token.EQ, token.ASSIGN)
	case '!':
		if l.peekRune() == '=' {
			return two('=', token.NOT_EQ, token.ILLEGAL)
		}
	case '<':
		return two('=', token.LT_EQ, token.LT)
	case '>':
		return two('=', token.GT_EQ, token.GT)
	case ':':
		return two(':', token.DCOLON, token.COLON)
	case ',':
		l.readRune()
		return tok(token.COMMA, ",")
	case ';':
		l.readRune()
		return tok(token.SEMICOLON, ";")
	case '(':
		l.readRune()
		return tok(token.LPAREN, "(")
	case ')':
		l.readRune()
		return tok(token.RPAREN, ")")
	case '@':
		l.readRune()
		return tok(token.AT, "@")
	}

	illegal := string(l.ch)
	l.readRune()
	return tok(token.ILLEGAL, illegal)
}

// readNumber scans a number literal and strips its digit separators. ok is
// false, and the raw text returned, when a separator is not followed by a
// digit.
func (l *Lexer) readNumber() (lit string, ok bool) {
	start := l.pos
	for isDigit(l.ch) || l.ch == '_' {
		l.readRune()
	}
	if l.ch == '.' && isDigit(l.peekRune()) {
		l.readRune()
		for isDigit(l.ch) || l.ch == '_' {
			l.readRune()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		// Only an exponent when followed by digits; "2 e" stays a number and an identifier.
		p := l.peekRune()
		if isDigit(p) || ((p == '-' || p == '+') && l.next+1 < len(l.input) && isDigit(rune(l.input[l.next+1]))) {
			l.readRune()
			if l.ch == '-' || l.ch == '+' {
				l.readRune()
			}
			for isDigit(l.ch) {
				l.readRune()
			}
		}
	}
	raw := l.input[start:l.pos]
	for i := 0; i < len(raw); i++ {
		if raw[i] == '_' && (i+1 == len(raw) || !isDigit(rune(raw[i+1]))) {
			return raw, false
		}
	}
	return strings.ReplaceAll(raw, "_", ""), true
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readRune()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readString() (string, bool) {
	var b strings.Builder
	l.readRune() // opening quote
	for {
		switch l.ch {
		case '"':
			l.readRune()
			return b.String(), true
		case 0, '\n':
			return "", false
		case '\\':
			l.readRune()
			switch l.ch {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 0:
				return "", false
			default:
				b.WriteRune(l.ch)
			}
		default:
			b.WriteRune(l.ch)
		}
		l.readRune()
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || r == '°' || r == 'µ' || unicode.IsLetter(r)
}
