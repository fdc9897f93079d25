package ast

import (
	"strings"

	"github.com/hupe1980/numbridge/calc/token"
	"github.com/hupe1980/numbridge/markup"
)

// ExprStmt evaluates an expression.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmtNode()             {}
func (s *ExprStmt) Pos() token.Position { return s.Expr.Pos() }
func (s *ExprStmt) String() string      { return s.Expr.String() }
func (s *ExprStmt) Markup(r UnitResolver) markup.Markup {
	return s.Expr.Markup(r).Append(markup.NL())
}

// Let binds a variable, optionally checking its dimension.
type Let struct {
	Token token.Token
	Name  string
	Type  DimExpr // nil when not annotated
	Value Expr
}

func (*Let) stmtNode()             {}
func (s *Let) Pos() token.Position { return s.Token.Position }

func (s *Let) String() string {
	var b strings.Builder
	b.WriteString("let ")
	b.WriteString(s.Name)
	if s.Type != nil {
		b.WriteString(": ")
		b.WriteString(s.Type.String())
	}
	b.WriteString(" = ")
	b.WriteString(s.Value.String())
	return b.String()
}

func (s *Let) Markup(r UnitResolver) markup.Markup {
	m := markup.Concat(markup.Keyword("let"), markup.Space(), markup.Identifier(s.Name))
	if s.Type != nil {
		m = markup.Concat(m, markup.Operator(":"), markup.Space(), s.Type.Markup(r))
	}
	return markup.Concat(m, markup.Space(), markup.Operator("="), markup.Space(),
		s.Value.Markup(r), markup.NL())
}

// DefineDimension declares a base dimension, or a derived one when Expr is set.
type DefineDimension struct {
	Token token.Token
	Name  string
	Expr  DimExpr
}

func (*DefineDimension) stmtNode()             {}
func (s *DefineDimension) Pos() token.Position { return s.Token.Position }

func (s *DefineDimension) String() string {
	if s.Expr == nil {
		return "dimension " + s.Name
	}
	return "dimension " + s.Name + " = " + s.Expr.String()
}

func (s *DefineDimension) Markup(r UnitResolver) markup.Markup {
	m := markup.Concat(markup.Keyword("dimension"), markup.Space(), markup.TypeIdentifier(s.Name))
	if s.Expr != nil {
		m = markup.Concat(m, markup.Space(), markup.Operator("="), markup.Space(), s.Expr.Markup(r))
	}
	return m.Append(markup.NL())
}

// Decorator annotates a unit definition, e.g. @aliases(metre, meters).
type Decorator struct {
	Token token.Token
	Name  string
	Args  []string
}

func (d Decorator) String() string {
	if len(d.Args) == 0 {
		return "@" + d.Name
	}
	return "@" + d.Name + "(" + strings.Join(d.Args, ", ") + ")"
}

func (d Decorator) Markup() markup.Markup {
	m := markup.Decorator("@" + d.Name)
	if len(d.Args) == 0 {
		return m
	}
	args := make([]markup.Markup, len(d.Args))
	for i, a := range d.Args {
		args[i] = markup.Unit(a)
	}
	return markup.Concat(m, markup.Operator("("),
		markup.Join(args, markup.Concat(markup.Operator(","), markup.Space())),
		markup.Operator(")"))
}

// DefineUnit declares a unit. A base unit has a Type and no Value; a derived
// unit has a Value and may also carry a Type that the value must match.
type DefineUnit struct {
	Token      token.Token
	Decorators []Decorator
	Name       string
	Type       DimExpr
	Value      Expr
}

func (*DefineUnit) stmtNode()             {}
func (s *DefineUnit) Pos() token.Position { return s.Token.Position }

// Aliases returns the names listed by @aliases decorators.
func (s *DefineUnit) Aliases() []string {
	var out []string
	for _, d := range s.Decorators {
		if d.Name == "aliases" {
			out = append(out, d.Args...)
		}
	}
	return out
}

func (s *DefineUnit) String() string {
	var b strings.Builder
	for _, d := range s.Decorators {
		b.WriteString(d.String())
		b.WriteString(" ")
	}
	b.WriteString("unit ")
	b.WriteString(s.Name)
	if s.Type != nil {
		b.WriteString(": ")
		b.WriteString(s.Type.String())
	}
	if s.Value != nil {
		b.WriteString(" = ")
		b.WriteString(s.Value.String())
	}
	return b.String()
}

func (s *DefineUnit) Markup(r UnitResolver) markup.Markup {
	var m markup.Markup
	for _, d := range s.Decorators {
		m = markup.Concat(m, d.Markup(), markup.NL())
	}
	m = markup.Concat(m, markup.Keyword("unit"), markup.Space(), markup.Unit(s.Name))
	if s.Type != nil {
		m = markup.Concat(m, markup.Operator(":"), markup.Space(), s.Type.Markup(r))
	}
	if s.Value != nil {
		m = markup.Concat(m, markup.Space(), markup.Operator("="), markup.Space(), s.Value.Markup(r))
	}
	return m.Append(markup.NL())
}

// Use loads a module such as "prelude" or "units::time".
type Use struct {
	Token token.Token
	Path  []string
}

func (*Use) stmtNode()             {}
func (s *Use) Pos() token.Position { return s.Token.Position }

// Module returns the module path joined with "::".
func (s *Use) Module() string { return strings.Join(s.Path, "::") }

func (s *Use) String() string { return "use " + s.Module() }

func (s *Use) Markup(UnitResolver) markup.Markup {
	return markup.Concat(markup.Keyword("use"), markup.Space(), markup.Identifier(s.Module()), markup.NL())
}
