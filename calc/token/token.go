// Package token defines the tokens produced when lexing calculator source.
package token

import "fmt"

// Type describes the type of a token as a string.
type Type string

// Position points to a location in the input.
type Position struct {
	Offset int // byte offset
	Line   int // 0-indexed line number
	Column int // 0-indexed column number
}

// String returns the 1-indexed line:column form.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Token is one lexed token.
type Token struct {
	Type     Type
	Literal  string
	Position Position
}

// Token types
const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"
	NEWLINE Type = "NEWLINE"

	IDENT  Type = "IDENT"
	NUMBER Type = "NUMBER"
	STRING Type = "STRING"

	PLUS     Type = "+"
	MINUS    Type = "-"
	ASTERISK Type = "*"
	SLASH    Type = "/"
	CARET    Type = "^"
	POW      Type = "**"
	ARROW    Type = "->"
	ASSIGN   Type = "="
	EQ       Type = "=="
	NOT_EQ   Type = "!="
	LT       Type = "<"
	LT_EQ    Type = "<="
	GT       Type = ">"
	GT_EQ    Type = ">="

	COLON     Type = ":"
	DCOLON    Type = "::"
	COMMA     Type = ","
	SEMICOLON Type = ";"
	LPAREN    Type = "("
	RPAREN    Type = ")"
	AT        Type = "@"

	LET       Type = "LET"
	UNIT      Type = "UNIT"
	DIMENSION Type = "DIMENSION"
	USE       Type = "USE"
	TO        Type = "TO"
	TRUE      Type = "TRUE"
	FALSE     Type = "FALSE"
)

var keywords = map[string]Type{
	"let":       LET,
	"unit":      UNIT,
	"dimension": DIMENSION,
	"use":       USE,
	"to":        TO,
	"true":      TRUE,
	"false":     FALSE,
}

// LookupIdentifier maps an identifier to its keyword type, or IDENT.
func LookupIdentifier(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether t is a keyword token type.
func IsKeyword(t Type) bool {
	for _, k := range keywords {
		if k == t {
			return true
		}
	}
	return false
}
