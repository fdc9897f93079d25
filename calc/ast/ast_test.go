package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/numbridge/calc/ast"
	"github.com/hupe1980/numbridge/calc/parser"
	"github.com/hupe1980/numbridge/calc/token"
	"github.com/hupe1980/numbridge/markup"
)

func ident(name string) *ast.Ident { return &ast.Ident{Name: name} }

func num(lit string) *ast.Number { return &ast.Number{Literal: lit} }

func TestIdent_MarkupUsesResolver(t *testing.T) {
	units := ast.UnitSet{"km": true}

	assert.Equal(t, markup.Unit("km"), ident("km").Markup(units))
	assert.Equal(t, markup.Identifier("x"), ident("x").Markup(units))
	assert.Equal(t, markup.Identifier("km"), ident("km").Markup(nil))
}

func TestLet_Markup(t *testing.T) {
	let := &ast.Let{
		Name:  "d",
		Type:  &ast.DimIdent{Name: "Length"},
		Value: &ast.Binary{Left: num("10"), Op: token.ASTERISK, Right: ident("km"), Implicit: true},
	}
	m := let.Markup(ast.UnitSet{"km": true})

	assert.Equal(t, "let d: Length = 10 km\n", m.String())
	assert.Equal(t, "let d: Length = 10 km", let.String())

	var kinds []markup.FormatType
	for _, s := range m.Spans() {
		if s.Type != markup.FormatWhitespace {
			kinds = append(kinds, s.Type)
		}
	}
	assert.Equal(t, []markup.FormatType{
		markup.FormatKeyword,
		markup.FormatIdentifier,
		markup.FormatOperator,
		markup.FormatTypeIdentifier,
		markup.FormatOperator,
		markup.FormatValue,
		markup.FormatUnit,
	}, kinds)
}

func TestBinary_Spacing(t *testing.T) {
	tests := []struct {
		node ast.Expr
		want string
	}{
		{&ast.Binary{Left: num("2"), Op: token.CARET, Right: num("3")}, "2^3"},
		{&ast.Binary{Left: num("2"), Op: token.POW, Right: num("3")}, "2**3"},
		{&ast.Binary{Left: num("1"), Op: token.PLUS, Right: num("2")}, "1 + 2"},
		{&ast.Binary{Left: ident("a"), Op: token.TO, Right: ident("m")}, "a -> m"},
		{&ast.Binary{Left: num("5"), Op: token.ASTERISK, Right: ident("m"), Implicit: true}, "5 m"},
		{&ast.Unary{Op: token.MINUS, Operand: num("4")}, "-4"},
		{&ast.Group{Inner: &ast.Binary{Left: num("1"), Op: token.MINUS, Right: num("2")}}, "(1 - 2)"},
		{&ast.Call{Callee: ident("sqrt"), Args: []ast.Expr{num("16")}}, "sqrt(16)"},
		{&ast.String{Value: "hi"}, `"hi"`},
		{&ast.Bool{Value: true}, "true"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.node.String())
		assert.Equal(t, tt.want, tt.node.Markup(nil).String())
	}
}

func TestDefinitions_String(t *testing.T) {
	dim := &ast.DefineDimension{
		Name: "Velocity",
		Expr: &ast.DimBinary{Left: &ast.DimIdent{Name: "Length"}, Op: token.SLASH, Right: &ast.DimIdent{Name: "Time"}},
	}
	assert.Equal(t, "dimension Velocity = Length / Time", dim.String())
	assert.Equal(t, "dimension Velocity = Length / Time\n", dim.Markup(nil).String())

	unit := &ast.DefineUnit{
		Decorators: []ast.Decorator{{Name: "aliases", Args: []string{"kilometre", "kilometer"}}},
		Name:       "km",
		Type:       &ast.DimIdent{Name: "Length"},
		Value:      &ast.Binary{Left: num("1000"), Op: token.ASTERISK, Right: ident("m"), Implicit: true},
	}
	assert.Equal(t, []string{"kilometre", "kilometer"}, unit.Aliases())
	assert.Equal(t, "@aliases(kilometre, kilometer) unit km: Length = 1000 m", unit.String())
	assert.Equal(t, "@aliases(kilometre, kilometer)\nunit km: Length = 1000 m\n", unit.Markup(nil).String())

	use := &ast.Use{Path: []string{"units", "si"}}
	assert.Equal(t, "units::si", use.Module())
	assert.Equal(t, "use units::si", use.String())
}

func TestIdents(t *testing.T) {
	prog, err := parser.Parse("let v = d / t + sqrt(d * d)")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	assert.Equal(t, []string{"v", "d", "t"}, ast.Idents(prog.Statements[0]))

	prog, err = parser.Parse("@aliases(kph) unit kmh = km / h")
	require.NoError(t, err)
	assert.Equal(t, []string{"kmh", "kph", "km", "h"}, ast.Idents(prog.Statements[0]))
}

func TestProgram_String(t *testing.T) {
	prog, err := parser.Parse("let x = 1; x + 1")
	require.NoError(t, err)
	assert.Equal(t, "let x = 1\nx + 1", prog.String())
}
