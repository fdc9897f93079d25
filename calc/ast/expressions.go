package ast

import (
	"strconv"
	"strings"

	"github.com/hupe1980/numbridge/calc/token"
	"github.com/hupe1980/numbridge/markup"
)

// Number is a numeric literal.
type Number struct {
	Token   token.Token
	Literal string
	Value   float64
}

func (*Number) exprNode()                         {}
func (x *Number) Pos() token.Position             { return x.Token.Position }
func (x *Number) String() string                  { return x.Literal }
func (x *Number) Markup(UnitResolver) markup.Markup { return markup.Value(x.Literal) }

// String is a string literal.
type String struct {
	Token token.Token
	Value string
}

func (*String) exprNode()             {}
func (x *String) Pos() token.Position { return x.Token.Position }
func (x *String) String() string      { return strconv.Quote(x.Value) }
func (x *String) Markup(UnitResolver) markup.Markup {
	return markup.StringLit(strconv.Quote(x.Value))
}

// Bool is a boolean literal.
type Bool struct {
	Token token.Token
	Value bool
}

func (*Bool) exprNode()                           {}
func (x *Bool) Pos() token.Position               { return x.Token.Position }
func (x *Bool) String() string                    { return strconv.FormatBool(x.Value) }
func (x *Bool) Markup(UnitResolver) markup.Markup { return markup.Keyword(x.String()) }

// Ident is a reference to a variable, unit or function.
type Ident struct {
	Token token.Token
	Name  string
}

func (*Ident) exprNode()             {}
func (x *Ident) Pos() token.Position { return x.Token.Position }
func (x *Ident) String() string      { return x.Name }
func (x *Ident) Markup(r UnitResolver) markup.Markup {
	if r != nil && r.IsUnit(x.Name) {
		return markup.Unit(x.Name)
	}
	return markup.Identifier(x.Name)
}

// Unary is a prefix operation such as -x.
type Unary struct {
	Token   token.Token
	Op      token.Type
	Operand Expr
}

func (*Unary) exprNode()             {}
func (x *Unary) Pos() token.Position { return x.Token.Position }
func (x *Unary) String() string      { return string(x.Op) + x.Operand.String() }
func (x *Unary) Markup(r UnitResolver) markup.Markup {
	return markup.Concat(markup.Operator(string(x.Op)), x.Operand.Markup(r))
}

// Binary is an infix operation. Implicit is set for multiplication by
// juxtaposition, as in "5 m".
type Binary struct {
	Token    token.Token
	Op       token.Type
	Left     Expr
	Right    Expr
	Implicit bool
}

func (*Binary) exprNode()             {}
func (x *Binary) Pos() token.Position { return x.Left.Pos() }

// OpText is the operator as printed.
func (x *Binary) OpText() string {
	if x.Op == token.TO {
		return "->"
	}
	return string(x.Op)
}

func (x *Binary) String() string {
	switch {
	case x.Implicit:
		return x.Left.String() + " " + x.Right.String()
	case x.Op == token.CARET || x.Op == token.POW:
		return x.Left.String() + x.OpText() + x.Right.String()
	}
	return x.Left.String() + " " + x.OpText() + " " + x.Right.String()
}

func (x *Binary) Markup(r UnitResolver) markup.Markup {
	switch {
	case x.Implicit:
		return markup.Concat(x.Left.Markup(r), markup.Space(), x.Right.Markup(r))
	case x.Op == token.CARET || x.Op == token.POW:
		return markup.Concat(x.Left.Markup(r), markup.Operator(x.OpText()), x.Right.Markup(r))
	}
	return markup.Concat(x.Left.Markup(r), markup.Space(), markup.Operator(x.OpText()),
		markup.Space(), x.Right.Markup(r))
}

// Group is a parenthesized expression.
type Group struct {
	Token token.Token
	Inner Expr
}

func (*Group) exprNode()             {}
func (x *Group) Pos() token.Position { return x.Token.Position }
func (x *Group) String() string      { return "(" + x.Inner.String() + ")" }
func (x *Group) Markup(r UnitResolver) markup.Markup {
	return markup.Concat(markup.Operator("("), x.Inner.Markup(r), markup.Operator(")"))
}

// Call is a function or procedure call.
type Call struct {
	Token  token.Token
	Callee *Ident
	Args   []Expr
}

func (*Call) exprNode()             {}
func (x *Call) Pos() token.Position { return x.Token.Position }

func (x *Call) String() string {
	args := make([]string, len(x.Args))
	for i, a := range x.Args {
		args[i] = a.String()
	}
	return x.Callee.Name + "(" + strings.Join(args, ", ") + ")"
}

func (x *Call) Markup(r UnitResolver) markup.Markup {
	args := make([]markup.Markup, len(x.Args))
	for i, a := range x.Args {
		args[i] = a.Markup(r)
	}
	return markup.Concat(
		markup.Identifier(x.Callee.Name),
		markup.Operator("("),
		markup.Join(args, markup.Concat(markup.Operator(","), markup.Space())),
		markup.Operator(")"),
	)
}
