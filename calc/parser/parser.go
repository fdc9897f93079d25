// Package parser builds the syntax tree for calculator source text.
//
// The expression parser is a Pratt parser: prefix and infix parse functions
// are registered per token type and infix operators bind according to the
// precedences table. Multiplication by juxtaposition ("5 m", "3 km / h") is
// handled as an infix operation that binds tighter than * and /.
package parser

import (
	"fmt"
	"strconv"

	"github.com/hupe1980/numbridge/calc/ast"
	"github.com/hupe1980/numbridge/calc/lexer"
	"github.com/hupe1980/numbridge/calc/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 200

// Parser turns a token stream into a Program.
type Parser struct {
	tokens []token.Token
	idx    int

	curToken  token.Token
	peekToken token.Token

	// parenthesis nesting; newlines are insignificant inside parentheses
	parens int

	errors ErrorList

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn

	depth    int
	maxDepth int
}

// Parse parses input and returns the program, or an ErrorList describing
// every syntax error found.
func Parse(input string) (*ast.Program, error) {
	return New(input).Parse()
}

// New returns a parser for input.
func New(input string) *Parser {
	p := &Parser{
		tokens:   lexer.Tokenize(input),
		idx:      -1,
		maxDepth: DefaultMaxDepth,
	}
	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.NUMBER: p.parseNumber,
		token.STRING: p.parseString,
		token.TRUE:   p.parseBool,
		token.FALSE:  p.parseBool,
		token.IDENT:  p.parseIdent,
		token.MINUS:  p.parsePrefix,
		token.PLUS:   p.parsePrefix,
		token.LPAREN: p.parseGroup,
	}
	p.infixParseFns = map[token.Type]infixParseFn{}
	for t := range precedences {
		p.infixParseFns[t] = p.parseInfix
	}
	p.nextToken()
	p.nextToken()
	return p
}

// fetch returns the next significant token. Parenthesis depth is tracked as
// tokens are read so that newlines between parentheses are skipped.
func (p *Parser) fetch() token.Token {
	for {
		if p.idx+1 < len(p.tokens) {
			p.idx++
		}
		tok := p.tokens[p.idx]
		switch tok.Type {
		case token.LPAREN:
			p.parens++
		case token.RPAREN:
			if p.parens > 0 {
				p.parens--
			}
		case token.NEWLINE:
			if p.parens > 0 {
				continue
			}
		}
		return tok
	}
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.fetch()
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, &Error{Position: pos, Message: fmt.Sprintf(format, args...)})
}

func describe(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of input"
	case token.NEWLINE:
		return "newline"
	case token.ILLEGAL:
		return fmt.Sprintf("illegal token %q", t.Literal)
	}
	return fmt.Sprintf("%q", t.Literal)
}

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken.Position, "expected %s, found %s", t, describe(p.peekToken))
	return false
}

func isTerminator(t token.Type) bool {
	return t == token.NEWLINE || t == token.SEMICOLON || t == token.EOF
}

// Parse parses the whole input.
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{}
	for p.curToken.Type != token.EOF {
		if isTerminator(p.curToken.Type) {
			p.nextToken()
			continue
		}
		errCount := len(p.errors)
		stmt := p.parseStatement()
		if len(p.errors) == errCount && !isTerminator(p.peekToken.Type) {
			p.errorf(p.peekToken.Position, "unexpected %s", describe(p.peekToken))
		}
		if stmt != nil && len(p.errors) == errCount {
			program.Statements = append(program.Statements, stmt)
		}
		p.skipToTerminator()
	}
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return program, nil
}

// skipToTerminator advances past the rest of the current statement.
func (p *Parser) skipToTerminator() {
	p.parens = 0
	for !isTerminator(p.curToken.Type) {
		p.nextToken()
	}
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLet()
	case token.DIMENSION:
		return p.parseDimension()
	case token.AT, token.UNIT:
		return p.parseUnit()
	case token.USE:
		return p.parseUse()
	}
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	return &ast.ExprStmt{Expr: expr}
}

func (p *Parser) parseLet() ast.Stmt {
	stmt := &ast.Let{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal
	if p.peekToken.Type == token.COLON {
		p.nextToken()
		p.nextToken()
		dim := p.parseDimExpr()
		if dim == nil {
			return nil
		}
		stmt.Type = dim
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseDimension() ast.Stmt {
	stmt := &ast.DefineDimension{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal
	if p.peekToken.Type == token.ASSIGN {
		p.nextToken()
		p.nextToken()
		dim := p.parseDimExpr()
		if dim == nil {
			return nil
		}
		stmt.Expr = dim
	}
	return stmt
}

func (p *Parser) parseDecorator() (ast.Decorator, bool) {
	d := ast.Decorator{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return d, false
	}
	d.Name = p.curToken.Literal
	if p.peekToken.Type != token.LPAREN {
		return d, true
	}
	p.nextToken()
	for {
		if !p.expectPeek(token.IDENT) {
			return d, false
		}
		d.Args = append(d.Args, p.curToken.Literal)
		if p.peekToken.Type == token.COMMA {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(token.RPAREN) {
		return d, false
	}
	return d, true
}

func (p *Parser) parseUnit() ast.Stmt {
	var decorators []ast.Decorator
	for p.curToken.Type == token.AT {
		d, ok := p.parseDecorator()
		if !ok {
			return nil
		}
		decorators = append(decorators, d)
		p.nextToken()
		for p.curToken.Type == token.NEWLINE {
			p.nextToken()
		}
	}
	if p.curToken.Type != token.UNIT {
		p.errorf(p.curToken.Position, "expected unit definition after decorator, found %s", describe(p.curToken))
		return nil
	}
	stmt := &ast.DefineUnit{Token: p.curToken, Decorators: decorators}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal
	if p.peekToken.Type == token.COLON {
		p.nextToken()
		p.nextToken()
		dim := p.parseDimExpr()
		if dim == nil {
			return nil
		}
		stmt.Type = dim
	}
	if p.peekToken.Type == token.ASSIGN {
		p.nextToken()
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
		if stmt.Value == nil {
			return nil
		}
	}
	if stmt.Type == nil && stmt.Value == nil {
		p.errorf(stmt.Token.Position, "unit %s needs a dimension or a defining expression", stmt.Name)
		return nil
	}
	return stmt
}

func (p *Parser) parseUse() ast.Stmt {
	stmt := &ast.Use{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Path = append(stmt.Path, p.curToken.Literal)
	for p.peekToken.Type == token.DCOLON {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Path = append(stmt.Path, p.curToken.Literal)
	}
	return stmt
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		p.errorf(p.curToken.Position, "expression nested too deeply")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken.Position, "unexpected %s", describe(p.curToken))
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for !isTerminator(p.peekToken.Type) {
		peek := p.peekToken.Type
		if peek == token.LPAREN {
			if ident, ok := left.(*ast.Ident); ok && CALL > precedence {
				p.nextToken()
				left = p.parseCall(ident)
				if left == nil {
					return nil
				}
				continue
			}
		}
		if startsOperand[peek] {
			if IMPLICIT <= precedence {
				return left
			}
			p.nextToken()
			left = p.parseImplicit(left)
			if left == nil {
				return nil
			}
			continue
		}
		infix := p.infixParseFns[peek]
		if infix == nil || precedences[peek] <= precedence {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parseNumber() ast.Expr {
	tok := p.curToken
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf(tok.Position, "invalid number %q", tok.Literal)
		return nil
	}
	return &ast.Number{Token: tok, Literal: tok.Literal, Value: v}
}

func (p *Parser) parseString() ast.Expr {
	return &ast.String{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBool() ast.Expr {
	return &ast.Bool{Token: p.curToken, Value: p.curToken.Type == token.TRUE}
}

func (p *Parser) parseIdent() ast.Expr {
	return &ast.Ident{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parsePrefix() ast.Expr {
	tok := p.curToken
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	if tok.Type == token.PLUS {
		return operand
	}
	return &ast.Unary{Token: tok, Op: tok.Type, Operand: operand}
}

func (p *Parser) parseGroup() ast.Expr {
	tok := p.curToken
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if inner == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.Group{Token: tok, Inner: inner}
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	tok := p.curToken
	op := tok.Type
	precedence := precedences[op]
	if op == token.TO {
		op = token.ARROW
	}
	if op == token.CARET || op == token.POW {
		// right associative
		precedence--
	}
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.Binary{Token: tok, Op: op, Left: left, Right: right}
}

func (p *Parser) parseImplicit(left ast.Expr) ast.Expr {
	tok := p.curToken
	right := p.parseExpression(IMPLICIT)
	if right == nil {
		return nil
	}
	return &ast.Binary{Token: tok, Op: token.ASTERISK, Left: left, Right: right, Implicit: true}
}

func (p *Parser) parseCall(callee *ast.Ident) ast.Expr {
	call := &ast.Call{Token: callee.Token, Callee: callee}
	if p.peekToken.Type == token.RPAREN {
		p.nextToken()
		return call
	}
	for {
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		call.Args = append(call.Args, arg)
		if p.peekToken.Type != token.COMMA {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return call
}
