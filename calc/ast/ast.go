// Package ast defines the syntax tree of calculator programs.
//
// Every node can describe itself twice: String returns source-like text and
// Markup returns the same text split into styled spans. Identifier spans are
// classified through a UnitResolver so that names bound to units can be
// styled as units.
package ast

import (
	"strings"

	"github.com/hupe1980/numbridge/calc/token"
	"github.com/hupe1980/numbridge/markup"
)

// UnitResolver reports whether an identifier names a unit.
type UnitResolver interface {
	IsUnit(name string) bool
}

// UnitSet is a UnitResolver backed by a set of names.
type UnitSet map[string]bool

// IsUnit implements UnitResolver.
func (s UnitSet) IsUnit(name string) bool { return s[name] }

// Node is any syntax tree node.
type Node interface {
	// Pos returns the position of the node's first token.
	Pos() token.Position
	// String returns a source-like rendering of the node.
	String() string
	// Markup returns the styled rendering of the node.
	Markup(r UnitResolver) markup.Markup
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// DimExpr is a dimension expression used in type annotations and dimension
// definitions.
type DimExpr interface {
	Node
	dimNode()
}

// Program is a parsed source text.
type Program struct {
	Statements []Stmt
}

// String joins the statements with newlines.
func (p *Program) String() string {
	lines := make([]string, len(p.Statements))
	for i, st := range p.Statements {
		lines[i] = st.String()
	}
	return strings.Join(lines, "\n")
}

// Idents collects the identifier names referenced by n, in order of
// appearance, without duplicates.
func Idents(n Node) []string {
	var names []string
	seen := map[string]bool{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	var walk func(n Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Ident:
			add(n.Name)
		case *Unary:
			walk(n.Operand)
		case *Binary:
			walk(n.Left)
			walk(n.Right)
		case *Group:
			walk(n.Inner)
		case *Call:
			for _, a := range n.Args {
				walk(a)
			}
		case *ExprStmt:
			walk(n.Expr)
		case *Let:
			add(n.Name)
			walk(n.Value)
		case *DefineUnit:
			add(n.Name)
			for _, d := range n.Decorators {
				for _, a := range d.Args {
					add(a)
				}
			}
			if n.Value != nil {
				walk(n.Value)
			}
		}
	}
	walk(n)
	return names
}
