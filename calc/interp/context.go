// Package interp runs calculator programs. A Context keeps the dimensions,
// units and variables defined so far, so that every interpretation builds
// on the previous ones.
package interp

import (
	"github.com/hupe1980/numbridge/calc/ast"
	"github.com/hupe1980/numbridge/calc/dimension"
	"github.com/hupe1980/numbridge/calc/parser"
	"github.com/hupe1980/numbridge/core"
	"github.com/hupe1980/numbridge/markup"
)

// Context is a stateful calculator environment. It implements core.Context
// and is not safe for concurrent use.
type Context struct {
	importer  Importer
	dims      *dimension.Registry
	units     map[string]*unitDef
	baseUnits map[string]string
	vars      map[string]Value
	loaded    map[string]bool
	print     func(markup.Markup)
}

var _ core.Context = (*Context)(nil)

// NewContext returns an empty context resolving "use" through importer.
// Nothing is defined until a module such as the prelude is loaded.
func NewContext(importer Importer) *Context {
	if importer == nil {
		importer = MapImporter{}
	}
	return &Context{
		importer:  importer,
		dims:      dimension.NewRegistry(),
		units:     map[string]*unitDef{},
		baseUnits: map[string]string{},
		vars:      map[string]Value{},
		loaded:    map[string]bool{},
	}
}

// Factory returns a core.ContextFactory producing contexts that import
// from importer.
func Factory(importer Importer) core.ContextFactory {
	return func() core.Context { return NewContext(importer) }
}

// DimensionRegistry returns a snapshot of the known dimensions.
func (c *Context) DimensionRegistry() core.DimensionRegistry {
	return c.dims.Clone()
}

// InterpretWithSettings parses all of src, then runs the statements in
// order. A parse error runs nothing. A runtime error stops at the failing
// statement; the statements before it keep their effects.
func (c *Context) InterpretWithSettings(settings *core.InterpreterSettings, src string, kind core.SourceKind) ([]core.Statement, core.Value, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return nil, nil, &Error{Kind: KindParse, Message: err.Error(), Source: kind, cause: err}
	}

	c.print = nil
	if settings != nil {
		c.print = settings.Print
	}
	defer func() { c.print = nil }()

	statements := make([]core.Statement, 0, len(prog.Statements))
	var result Value = nothing{}
	for _, node := range prog.Statements {
		v, rerr := c.execute(node)
		if rerr != nil {
			rerr.Source = kind
			return nil, nil, rerr
		}
		statements = append(statements, &Statement{node: node, units: c.unitSet(node)})
		result = v
	}
	return statements, result, nil
}

// IsUnit reports whether name is a unit or unit alias.
func (c *Context) IsUnit(name string) bool {
	_, ok := c.units[name]
	return ok
}

// Lookup returns the value bound to a variable.
func (c *Context) Lookup(name string) (Value, bool) {
	v, ok := c.vars[name]
	return v, ok
}

func (c *Context) unitSet(node ast.Stmt) ast.UnitSet {
	set := ast.UnitSet{}
	for _, name := range ast.Idents(node) {
		if c.IsUnit(name) {
			set[name] = true
		}
	}
	return set
}

// Statement is an executed statement. It records which identifiers named
// units when it ran so that the pretty-printed form styles them as units.
type Statement struct {
	node  ast.Stmt
	units ast.UnitSet
}

var _ core.Statement = (*Statement)(nil)

// Node returns the syntax tree of the statement.
func (s *Statement) Node() ast.Stmt { return s.node }

// PrettyPrint implements core.Statement.
func (s *Statement) PrettyPrint() markup.Markup { return s.node.Markup(s.units) }
