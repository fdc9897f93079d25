package parser

import "github.com/hupe1980/numbridge/calc/token"

// Precedence order for operators
const (
	_ int = iota
	LOWEST
	CONVERSION // -> or to
	COMPARE    // == != < <= > >=
	SUM        // + or -
	PRODUCT    // * or /
	IMPLICIT   // 5 m
	PREFIX     // -x
	POWER      // ^ or **
	CALL       // f(x)
)

// Precedences for each infix token type
var precedences = map[token.Type]int{
	token.ARROW:    CONVERSION,
	token.TO:       CONVERSION,
	token.EQ:       COMPARE,
	token.NOT_EQ:   COMPARE,
	token.LT:       COMPARE,
	token.LT_EQ:    COMPARE,
	token.GT:       COMPARE,
	token.GT_EQ:    COMPARE,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.CARET:    POWER,
	token.POW:      POWER,
}

// startsOperand lists tokens that begin an operand of implicit multiplication.
var startsOperand = map[token.Type]bool{
	token.NUMBER: true,
	token.IDENT:  true,
	token.LPAREN: true,
}
