package ast

import (
	"strconv"

	"github.com/hupe1980/numbridge/calc/token"
	"github.com/hupe1980/numbridge/markup"
)

// DimIdent names a dimension.
type DimIdent struct {
	Token token.Token
	Name  string
}

func (*DimIdent) dimNode()                            {}
func (d *DimIdent) Pos() token.Position               { return d.Token.Position }
func (d *DimIdent) String() string                    { return d.Name }
func (d *DimIdent) Markup(UnitResolver) markup.Markup { return markup.TypeIdentifier(d.Name) }

// DimBinary multiplies or divides two dimension expressions.
type DimBinary struct {
	Op    token.Type // ASTERISK or SLASH
	Left  DimExpr
	Right DimExpr
}

func (*DimBinary) dimNode()             {}
func (d *DimBinary) Pos() token.Position { return d.Left.Pos() }
func (d *DimBinary) String() string {
	return d.Left.String() + " " + string(d.Op) + " " + d.Right.String()
}
func (d *DimBinary) Markup(r UnitResolver) markup.Markup {
	return markup.Concat(d.Left.Markup(r), markup.Space(), markup.Operator(string(d.Op)),
		markup.Space(), d.Right.Markup(r))
}

// DimPower raises a dimension expression to an integer power.
type DimPower struct {
	Base DimExpr
	Exp  int
}

func (*DimPower) dimNode()             {}
func (d *DimPower) Pos() token.Position { return d.Base.Pos() }
func (d *DimPower) String() string     { return d.Base.String() + "^" + strconv.Itoa(d.Exp) }
func (d *DimPower) Markup(r UnitResolver) markup.Markup {
	return markup.Concat(d.Base.Markup(r), markup.Operator("^"), markup.Value(strconv.Itoa(d.Exp)))
}

// DimGroup is a parenthesized dimension expression.
type DimGroup struct {
	Token token.Token
	Inner DimExpr
}

func (*DimGroup) dimNode()             {}
func (d *DimGroup) Pos() token.Position { return d.Token.Position }
func (d *DimGroup) String() string     { return "(" + d.Inner.String() + ")" }
func (d *DimGroup) Markup(r UnitResolver) markup.Markup {
	return markup.Concat(markup.Operator("("), d.Inner.Markup(r), markup.Operator(")"))
}

// DimOne is the dimensionless literal 1, as in "1 / Time".
type DimOne struct {
	Token token.Token
}

func (*DimOne) dimNode()                            {}
func (d *DimOne) Pos() token.Position               { return d.Token.Position }
func (d *DimOne) String() string                    { return "1" }
func (d *DimOne) Markup(UnitResolver) markup.Markup { return markup.Value("1") }
