package interp

import (
	"fmt"
	"math"
	"sort"

	"github.com/hupe1980/numbridge/calc/token"
)

type builtin struct {
	name             string
	minArgs, maxArgs int
	call             func(c *Context, pos token.Position, args []Value) (Value, *Error)
}

func (b builtin) arity() string {
	if b.minArgs == b.maxArgs {
		if b.minArgs == 1 {
			return "1 argument"
		}
		return fmt.Sprintf("%d arguments", b.minArgs)
	}
	return fmt.Sprintf("%d to %d arguments", b.minArgs, b.maxArgs)
}

var builtins = map[string]builtin{}

func register(b builtin) { builtins[b.name] = b }

func init() {
	register(builtin{name: "print", minArgs: 1, maxArgs: 1, call: builtinPrint})
	register(builtin{name: "assert_eq", minArgs: 2, maxArgs: 3, call: builtinAssertEq})
	register(builtin{name: "sqrt", minArgs: 1, maxArgs: 1, call: builtinSqrt})

	for name, f := range map[string]func(float64) float64{
		"abs":   math.Abs,
		"round": math.Round,
		"floor": math.Floor,
		"ceil":  math.Ceil,
	} {
		register(builtin{name: name, minArgs: 1, maxArgs: 1, call: unitPreserving(name, f)})
	}
	for name, f := range map[string]func(float64) float64{
		"sin": math.Sin,
		"cos": math.Cos,
		"tan": math.Tan,
		"ln":  math.Log,
		"exp": math.Exp,
	} {
		register(builtin{name: name, minArgs: 1, maxArgs: 1, call: scalarOnly(name, f)})
	}
}

// Builtins lists the builtin function names in sorted order.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtinPrint(c *Context, _ token.Position, args []Value) (Value, *Error) {
	if c.print != nil {
		c.print(printable(args[0]))
	}
	return nothing{}, nil
}

func builtinAssertEq(c *Context, pos token.Position, args []Value) (Value, *Error) {
	a, b := args[0], args[1]
	if len(args) == 2 {
		aq, aok := a.(Quantity)
		bq, bok := b.(Quantity)
		switch {
		case aok && bok:
			if !aq.Dimension().Equal(bq.Dimension()) {
				return nil, newError(KindDimension, pos, "assert_eq: incompatible dimensions %s and %s",
					c.dims.Readable(aq.Dimension()), c.dims.Readable(bq.Dimension()))
			}
			if aq.Number == bq.ConvertTo(aq.Unit).Number {
				return nothing{}, nil
			}
		case a == b:
			return nothing{}, nil
		}
		return nil, newError(KindAssertion, pos, "assertion failed: %s != %s", valueText(a), valueText(b))
	}

	aq, aok := a.(Quantity)
	bq, bok := b.(Quantity)
	eps, eok := args[2].(Quantity)
	if !aok || !bok || !eok {
		return nil, newError(KindType, pos, "assert_eq with a tolerance expects three quantities")
	}
	if !aq.Dimension().Equal(bq.Dimension()) || !aq.Dimension().Equal(eps.Dimension()) {
		return nil, newError(KindDimension, pos, "assert_eq: arguments must share a dimension")
	}
	diff := math.Abs(aq.Number - bq.ConvertTo(aq.Unit).Number)
	if diff > eps.ConvertTo(aq.Unit).Number {
		return nil, newError(KindAssertion, pos, "assertion failed: |%s - %s| > %s",
			valueText(a), valueText(b), valueText(eps))
	}
	return nothing{}, nil
}

func builtinSqrt(c *Context, pos token.Position, args []Value) (Value, *Error) {
	q, ok := args[0].(Quantity)
	if !ok {
		return nil, newError(KindType, pos, "sqrt expects a quantity, found %s", args[0].TypeName())
	}
	unit := make(Unit, len(q.Unit))
	for i, f := range q.Unit {
		if f.power%2 != 0 {
			return nil, newError(KindDimension, pos, "sqrt of %s has no valid unit", q.Unit)
		}
		unit[i] = unitFactor{def: f.def, power: f.power / 2}
	}
	if len(unit) == 0 {
		unit = nil
	}
	return Quantity{Number: math.Sqrt(q.Number), Unit: unit}, nil
}

func unitPreserving(name string, f func(float64) float64) func(*Context, token.Position, []Value) (Value, *Error) {
	return func(_ *Context, pos token.Position, args []Value) (Value, *Error) {
		q, ok := args[0].(Quantity)
		if !ok {
			return nil, newError(KindType, pos, "%s expects a quantity, found %s", name, args[0].TypeName())
		}
		return Quantity{Number: f(q.Number), Unit: q.Unit}, nil
	}
}

func scalarOnly(name string, f func(float64) float64) func(*Context, token.Position, []Value) (Value, *Error) {
	return func(c *Context, pos token.Position, args []Value) (Value, *Error) {
		q, ok := args[0].(Quantity)
		if !ok {
			return nil, newError(KindType, pos, "%s expects a quantity, found %s", name, args[0].TypeName())
		}
		if !q.Dimension().IsScalar() {
			return nil, newError(KindDimension, pos, "%s expects a Scalar, found %s", name, c.dims.Readable(q.Dimension()))
		}
		return Scalar(f(q.simplify().Number)), nil
	}
}

func valueText(v Value) string {
	return printable(v).String()
}
