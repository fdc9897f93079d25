package parser

import (
	"strconv"

	"github.com/hupe1980/numbridge/calc/ast"
	"github.com/hupe1980/numbridge/calc/token"
)

// parseDimExpr parses a dimension expression starting at curToken:
//
//	dimExpr   = dimPower { ("*" | "/") dimPower }
//	dimPower  = dimFactor [ "^" ["-"] integer ]
//	dimFactor = identifier | "1" | "(" dimExpr ")"
func (p *Parser) parseDimExpr() ast.DimExpr {
	left := p.parseDimPower()
	if left == nil {
		return nil
	}
	for p.peekToken.Type == token.ASTERISK || p.peekToken.Type == token.SLASH {
		p.nextToken()
		op := p.curToken.Type
		p.nextToken()
		right := p.parseDimPower()
		if right == nil {
			return nil
		}
		left = &ast.DimBinary{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseDimPower() ast.DimExpr {
	base := p.parseDimFactor()
	if base == nil {
		return nil
	}
	if p.peekToken.Type != token.CARET && p.peekToken.Type != token.POW {
		return base
	}
	p.nextToken()
	p.nextToken()
	sign := 1
	if p.curToken.Type == token.MINUS {
		sign = -1
		p.nextToken()
	}
	if p.curToken.Type != token.NUMBER {
		p.errorf(p.curToken.Position, "expected integer exponent, found %s", describe(p.curToken))
		return nil
	}
	exp, err := strconv.Atoi(p.curToken.Literal)
	if err != nil {
		p.errorf(p.curToken.Position, "dimension exponents must be integers, found %q", p.curToken.Literal)
		return nil
	}
	return &ast.DimPower{Base: base, Exp: sign * exp}
}

func (p *Parser) parseDimFactor() ast.DimExpr {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.DimIdent{Token: p.curToken, Name: p.curToken.Literal}
	case token.NUMBER:
		if p.curToken.Literal == "1" {
			return &ast.DimOne{Token: p.curToken}
		}
	case token.LPAREN:
		tok := p.curToken
		p.nextToken()
		inner := p.parseDimExpr()
		if inner == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return &ast.DimGroup{Token: tok, Inner: inner}
	}
	p.errorf(p.curToken.Position, "expected dimension, found %s", describe(p.curToken))
	return nil
}
