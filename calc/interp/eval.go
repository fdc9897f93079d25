package interp

import (
	"math"

	"github.com/hupe1980/numbridge/calc/ast"
	"github.com/hupe1980/numbridge/calc/token"
)

func (c *Context) eval(expr ast.Expr) (Value, *Error) {
	switch e := expr.(type) {
	case *ast.Number:
		return Scalar(e.Value), nil
	case *ast.String:
		return String(e.Value), nil
	case *ast.Bool:
		return Bool(e.Value), nil
	case *ast.Group:
		return c.eval(e.Inner)
	case *ast.Ident:
		return c.resolve(e)
	case *ast.Unary:
		v, err := c.evalValue(e.Operand)
		if err != nil {
			return nil, err
		}
		switch v := v.(type) {
		case Quantity:
			return Quantity{Number: -v.Number, Unit: v.Unit}, nil
		}
		return nil, newError(KindType, e.Pos(), "cannot negate a value of type %s", v.TypeName())
	case *ast.Binary:
		left, err := c.evalValue(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.evalValue(e.Right)
		if err != nil {
			return nil, err
		}
		return c.binary(e, left, right)
	case *ast.Call:
		return c.call(e)
	}
	return nil, newError(KindRuntime, expr.Pos(), "unsupported expression %q", expr.String())
}

// evalValue is eval for places that need an actual value, not a procedure
// result.
func (c *Context) evalValue(expr ast.Expr) (Value, *Error) {
	v, err := c.eval(expr)
	if err != nil {
		return nil, err
	}
	if _, ok := v.(nothing); ok {
		return nil, newError(KindType, expr.Pos(), "'%s' does not produce a value", expr.String())
	}
	return v, nil
}

func (c *Context) resolve(id *ast.Ident) (Value, *Error) {
	if v, ok := c.vars[id.Name]; ok {
		return v, nil
	}
	if def, ok := c.units[id.Name]; ok {
		return Quantity{Number: 1, Unit: unitOf(def)}, nil
	}
	if _, ok := builtins[id.Name]; ok {
		return nil, newError(KindType, id.Pos(), "function '%s' must be called", id.Name)
	}
	return nil, newError(KindName, id.Pos(), "unknown identifier '%s'", id.Name)
}

func (c *Context) binary(e *ast.Binary, left, right Value) (Value, *Error) {
	switch e.Op {
	case token.EQ:
		eq, err := c.equal(e, left, right)
		return Bool(eq), err
	case token.NOT_EQ:
		eq, err := c.equal(e, left, right)
		return Bool(!eq), err
	}

	l, lok := left.(Quantity)
	r, rok := right.(Quantity)
	if !lok || !rok {
		return nil, newError(KindType, e.Pos(), "operator %s cannot be applied to %s and %s",
			e.OpText(), left.TypeName(), right.TypeName())
	}

	switch e.Op {
	case token.ARROW:
		if !l.Dimension().Equal(r.Dimension()) {
			return nil, newError(KindDimension, e.Pos(), "cannot convert %s to %s",
				c.dims.Readable(l.Dimension()), c.dims.Readable(r.Dimension()))
		}
		return l.ConvertTo(r.Unit), nil
	case token.PLUS, token.MINUS:
		if err := c.sameDimension(e, l, r); err != nil {
			return nil, err
		}
		rv := r.ConvertTo(l.Unit).Number
		if e.Op == token.MINUS {
			rv = -rv
		}
		return Quantity{Number: l.Number + rv, Unit: l.Unit}, nil
	case token.ASTERISK:
		return Quantity{Number: l.Number * r.Number, Unit: l.Unit.Mul(r.Unit)}.simplify(), nil
	case token.SLASH:
		if r.Number == 0 {
			return nil, newError(KindRuntime, e.Pos(), "division by zero")
		}
		return Quantity{Number: l.Number / r.Number, Unit: l.Unit.Div(r.Unit)}.simplify(), nil
	case token.CARET, token.POW:
		return c.power(e, l, r)
	case token.LT, token.LT_EQ, token.GT, token.GT_EQ:
		if err := c.sameDimension(e, l, r); err != nil {
			return nil, err
		}
		a, b := l.Number, r.ConvertTo(l.Unit).Number
		switch e.Op {
		case token.LT:
			return Bool(a < b), nil
		case token.LT_EQ:
			return Bool(a <= b), nil
		case token.GT:
			return Bool(a > b), nil
		}
		return Bool(a >= b), nil
	}
	return nil, newError(KindRuntime, e.Pos(), "unsupported operator %s", e.OpText())
}

func (c *Context) sameDimension(e *ast.Binary, l, r Quantity) *Error {
	if l.Dimension().Equal(r.Dimension()) {
		return nil
	}
	return newError(KindDimension, e.Pos(), "incompatible dimensions for %s: %s and %s",
		e.OpText(), c.dims.Readable(l.Dimension()), c.dims.Readable(r.Dimension()))
}

func (c *Context) power(e *ast.Binary, l, r Quantity) (Value, *Error) {
	if !r.Unit.IsEmpty() {
		return nil, newError(KindDimension, e.Pos(), "exponent must be a Scalar, found %s",
			c.dims.Readable(r.Dimension()))
	}
	if l.Unit.IsEmpty() {
		return Scalar(math.Pow(l.Number, r.Number)), nil
	}
	n := r.Number
	if n != math.Trunc(n) {
		return nil, newError(KindDimension, e.Pos(), "a quantity with unit %s can only be raised to an integer power", l.Unit)
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return nil, newError(KindDimension, e.Pos(), "exponent %s is out of range for a quantity with unit %s", FormatNumber(n), l.Unit)
	}
	return Quantity{Number: math.Pow(l.Number, n), Unit: l.Unit.Pow(int(n))}, nil
}

func (c *Context) equal(e *ast.Binary, left, right Value) (bool, *Error) {
	switch l := left.(type) {
	case Quantity:
		r, ok := right.(Quantity)
		if !ok {
			break
		}
		if err := c.sameDimension(e, l, r); err != nil {
			return false, err
		}
		return l.Number == r.ConvertTo(l.Unit).Number, nil
	case String:
		if r, ok := right.(String); ok {
			return l == r, nil
		}
	case Bool:
		if r, ok := right.(Bool); ok {
			return l == r, nil
		}
	}
	return false, newError(KindType, e.Pos(), "cannot compare %s with %s", left.TypeName(), right.TypeName())
}

func (c *Context) call(e *ast.Call) (Value, *Error) {
	fn, ok := builtins[e.Callee.Name]
	if !ok {
		if _, isVar := c.vars[e.Callee.Name]; isVar || c.IsUnit(e.Callee.Name) {
			return nil, newError(KindType, e.Pos(), "'%s' is not a function", e.Callee.Name)
		}
		return nil, newError(KindName, e.Pos(), "unknown function '%s'", e.Callee.Name)
	}
	if len(e.Args) < fn.minArgs || len(e.Args) > fn.maxArgs {
		return nil, newError(KindType, e.Pos(), "%s expects %s, got %d", fn.name, fn.arity(), len(e.Args))
	}
	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := c.evalValue(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fn.call(c, e.Pos(), args)
}
