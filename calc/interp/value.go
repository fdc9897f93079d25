package interp

import (
	"math"
	"strconv"

	"github.com/hupe1980/numbridge/calc/dimension"
	"github.com/hupe1980/numbridge/core"
	"github.com/hupe1980/numbridge/markup"
)

// Value is a runtime value. Every Value can be shown as a result.
type Value interface {
	core.Value
	// TypeName is the type as shown in error messages.
	TypeName() string
}

var (
	_ Value = Quantity{}
	_ Value = String("")
	_ Value = Bool(false)
	_ Value = nothing{}
)

// Quantity is a number with a unit. Plain numbers have an empty unit.
type Quantity struct {
	Number float64
	Unit   Unit
}

// Scalar returns a dimensionless quantity.
func Scalar(v float64) Quantity { return Quantity{Number: v} }

// Dimension returns the dimension of the quantity's unit.
func (q Quantity) Dimension() dimension.BaseRepresentation { return q.Unit.Dimension() }

// ConvertTo expresses q in unit u. Both must share a dimension.
func (q Quantity) ConvertTo(u Unit) Quantity {
	if q.Unit.Equal(u) {
		return q
	}
	return Quantity{Number: q.Number * q.Unit.Scale() / u.Scale(), Unit: u}
}

// simplify folds a dimensionless compound unit into a plain number.
func (q Quantity) simplify() Quantity {
	if !q.Unit.IsEmpty() && q.Dimension().IsScalar() {
		return Quantity{Number: q.Number * q.Unit.Scale()}
	}
	return q
}

func (q Quantity) TypeName() string { return q.Dimension().String() }

func (q Quantity) ToMarkup(_ core.Statement, reg core.DimensionRegistry, includeType, includeUnit bool) markup.Markup {
	m := markup.Concat(resultPrefix(), markup.Value(FormatNumber(q.Number)))
	if includeUnit && !q.Unit.IsEmpty() {
		m = markup.Concat(m, markup.Space(), markup.Unit(q.Unit.String()))
	}
	dim := q.Dimension()
	if includeType && !dim.IsScalar() {
		name, ok := "", false
		if reg != nil {
			name, ok = reg.DimensionName(dim.Map())
		}
		if !ok {
			name = dim.String()
		}
		m = m.Append(typeAnnotation(name))
	}
	return m.Append(markup.NL())
}

// String is a string value.
type String string

func (String) TypeName() string { return "String" }

func (s String) ToMarkup(_ core.Statement, _ core.DimensionRegistry, includeType, _ bool) markup.Markup {
	m := markup.Concat(resultPrefix(), markup.StringLit(strconv.Quote(string(s))))
	if includeType {
		m = m.Append(typeAnnotation("String"))
	}
	return m.Append(markup.NL())
}

// Bool is a boolean value.
type Bool bool

func (Bool) TypeName() string { return "Bool" }

func (b Bool) ToMarkup(_ core.Statement, _ core.DimensionRegistry, includeType, _ bool) markup.Markup {
	m := markup.Concat(resultPrefix(), markup.Keyword(strconv.FormatBool(bool(b))))
	if includeType {
		m = m.Append(typeAnnotation("Bool"))
	}
	return m.Append(markup.NL())
}

// nothing is the result of definitions and procedure calls.
type nothing struct{}

func (nothing) TypeName() string { return "()" }

func (nothing) ToMarkup(core.Statement, core.DimensionRegistry, bool, bool) markup.Markup {
	return markup.Empty()
}

func resultPrefix() markup.Markup {
	return markup.Concat(markup.Spaces("    "), markup.Operator("="), markup.Space())
}

func typeAnnotation(name string) markup.Markup {
	return markup.Concat(markup.Dim("    ["), markup.TypeIdentifier(name), markup.Dim("]"))
}

// FormatNumber prints integers exactly and everything else with six
// significant digits.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		return "0"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// printable is the document print() emits for a value.
func printable(v Value) markup.Markup {
	switch v := v.(type) {
	case String:
		return markup.PlainText(string(v))
	case Bool:
		return markup.Keyword(strconv.FormatBool(bool(v)))
	case Quantity:
		m := markup.Value(FormatNumber(v.Number))
		if !v.Unit.IsEmpty() {
			m = markup.Concat(m, markup.Space(), markup.Unit(v.Unit.String()))
		}
		return m
	}
	return markup.Empty()
}
