package interp

import (
	"errors"

	"github.com/hupe1980/numbridge/calc/ast"
	"github.com/hupe1980/numbridge/calc/dimension"
	"github.com/hupe1980/numbridge/calc/parser"
	"github.com/hupe1980/numbridge/calc/token"
)

func (c *Context) execute(node ast.Stmt) (Value, *Error) {
	switch s := node.(type) {
	case *ast.ExprStmt:
		return c.eval(s.Expr)
	case *ast.Let:
		return nothing{}, c.defineVariable(s)
	case *ast.DefineDimension:
		return nothing{}, c.defineDimension(s)
	case *ast.DefineUnit:
		return nothing{}, c.defineUnit(s)
	case *ast.Use:
		return nothing{}, c.use(s.Module(), s.Pos())
	}
	return nil, newError(KindRuntime, node.Pos(), "unsupported statement %q", node.String())
}

func (c *Context) checkFree(name string, pos token.Position) *Error {
	if c.IsUnit(name) {
		return newError(KindName, pos, "identifier '%s' is already defined as a unit", name)
	}
	if _, ok := builtins[name]; ok {
		return newError(KindName, pos, "identifier '%s' is a builtin function", name)
	}
	return nil
}

func (c *Context) defineVariable(s *ast.Let) *Error {
	if err := c.checkFree(s.Name, s.Pos()); err != nil {
		return err
	}
	v, err := c.evalValue(s.Value)
	if err != nil {
		return err
	}
	if s.Type != nil {
		want, err := c.dimOf(s.Type)
		if err != nil {
			return err
		}
		if got := dimensionOf(v); got == nil || !got.Equal(want) {
			return newError(KindDimension, s.Pos(), "type mismatch in definition of '%s': expected %s, found %s",
				s.Name, c.dims.Readable(want), c.readableType(v))
		}
	}
	c.vars[s.Name] = v
	return nil
}

func (c *Context) defineDimension(s *ast.DefineDimension) *Error {
	var err error
	if s.Expr == nil {
		err = c.dims.AddBase(s.Name)
	} else {
		repr, derr := c.dimOf(s.Expr)
		if derr != nil {
			return derr
		}
		err = c.dims.AddDerived(s.Name, repr)
	}
	if err != nil {
		return &Error{Kind: KindDimension, Pos: s.Pos(), Message: err.Error(), cause: err}
	}
	return nil
}

func (c *Context) defineUnit(s *ast.DefineUnit) *Error {
	names := append([]string{s.Name}, s.Aliases()...)
	for _, name := range names {
		if err := c.checkFree(name, s.Pos()); err != nil {
			return err
		}
		if _, ok := c.vars[name]; ok {
			return newError(KindName, s.Pos(), "identifier '%s' is already defined as a variable", name)
		}
	}

	var def *unitDef
	if s.Value == nil {
		dim, err := c.dimOf(s.Type)
		if err != nil {
			return err
		}
		if len(dim) != 1 || dim[0].Power != 1 || !c.dims.IsBase(dim[0].Name) {
			return newError(KindDimension, s.Pos(), "base unit '%s' needs a base dimension, found %s",
				s.Name, c.dims.Readable(dim))
		}
		if existing, ok := c.baseUnits[dim[0].Name]; ok {
			return newError(KindDimension, s.Pos(), "dimension %s already has the base unit '%s'",
				dim[0].Name, existing)
		}
		c.baseUnits[dim[0].Name] = s.Name
		def = &unitDef{Name: s.Name, Dim: dim, Scale: 1, Base: true}
	} else {
		v, err := c.evalValue(s.Value)
		if err != nil {
			return err
		}
		q, ok := v.(Quantity)
		if !ok {
			return newError(KindType, s.Pos(), "unit '%s' must be defined by a quantity, found %s", s.Name, v.TypeName())
		}
		dim := q.Dimension()
		if s.Type != nil {
			want, err := c.dimOf(s.Type)
			if err != nil {
				return err
			}
			if !dim.Equal(want) {
				return newError(KindDimension, s.Pos(), "type mismatch in definition of unit '%s': expected %s, found %s",
					s.Name, c.dims.Readable(want), c.dims.Readable(dim))
			}
		}
		def = &unitDef{Name: s.Name, Dim: dim, Scale: q.Number * q.Unit.Scale()}
	}

	for _, name := range names {
		c.units[name] = def
	}
	return nil
}

func (c *Context) use(module string, pos token.Position) *Error {
	if c.loaded[module] {
		return nil
	}
	src, err := c.importer.Import(module)
	if err != nil {
		if errors.Is(err, ErrModuleNotFound) {
			return &Error{Kind: KindImport, Pos: pos, Message: "module '" + module + "' not found", cause: err}
		}
		return &Error{Kind: KindImport, Pos: pos, Message: "unable to load module '" + module + "': " + err.Error(), cause: err}
	}
	c.loaded[module] = true

	prog, err := parser.Parse(src)
	if err != nil {
		return &Error{Kind: KindParse, Pos: pos, Message: "in module '" + module + "': " + err.Error(), cause: err}
	}
	for _, node := range prog.Statements {
		if _, rerr := c.execute(node); rerr != nil {
			rerr.Message = "in module '" + module + "': " + rerr.Message
			return rerr
		}
	}
	return nil
}

func (c *Context) dimOf(d ast.DimExpr) (dimension.BaseRepresentation, *Error) {
	switch d := d.(type) {
	case *ast.DimIdent:
		repr, err := c.dims.Get(d.Name)
		if err != nil {
			return nil, newError(KindDimension, d.Pos(), "unknown dimension '%s'", d.Name)
		}
		return repr, nil
	case *ast.DimOne:
		return dimension.Scalar, nil
	case *ast.DimGroup:
		return c.dimOf(d.Inner)
	case *ast.DimPower:
		base, err := c.dimOf(d.Base)
		if err != nil {
			return nil, err
		}
		return base.Pow(d.Exp), nil
	case *ast.DimBinary:
		left, err := c.dimOf(d.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.dimOf(d.Right)
		if err != nil {
			return nil, err
		}
		if d.Op == token.SLASH {
			return left.Div(right), nil
		}
		return left.Mul(right), nil
	}
	return nil, newError(KindDimension, d.Pos(), "invalid dimension expression %q", d.String())
}

func dimensionOf(v Value) dimension.BaseRepresentation {
	if q, ok := v.(Quantity); ok {
		return q.Dimension()
	}
	return nil
}

func (c *Context) readableType(v Value) string {
	if q, ok := v.(Quantity); ok {
		return c.dims.Readable(q.Dimension())
	}
	return v.TypeName()
}
