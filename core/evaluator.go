package core

import "github.com/hupe1980/numbridge/markup"

// SourceKind tells the evaluator where a piece of source text came from.
type SourceKind int

const (
	// SourceInternal marks bootstrap directives issued by the host.
	SourceInternal SourceKind = iota
	// SourceText marks text typed by a user.
	SourceText
)

func (k SourceKind) String() string {
	if k == SourceInternal {
		return "internal"
	}
	return "text"
}

// InterpreterSettings configures a single interpretation.
type InterpreterSettings struct {
	// Print receives every document printed by the program, in emission
	// order. A nil Print discards printed output.
	Print func(markup.Markup)
}

// Statement is one successfully interpreted statement.
type Statement interface {
	// PrettyPrint returns the statement in canonical styled form.
	PrettyPrint() markup.Markup
}

// DimensionRegistry names dimensions for result annotations.
type DimensionRegistry interface {
	// DimensionName returns the registered name for a product of base
	// dimensions given as name to exponent.
	DimensionName(base map[string]int) (string, bool)
}

// Value is the result of the last statement of an interpretation.
type Value interface {
	// ToMarkup renders the value. last is the statement that produced it.
	// includeType adds a dimension annotation and includeUnit the unit.
	ToMarkup(last Statement, registry DimensionRegistry, includeType, includeUnit bool) markup.Markup
}

// Context is a stateful evaluation environment. Definitions made by one
// interpretation stay visible to the next. A Context is not safe for
// concurrent use; Session guards it.
type Context interface {
	// InterpretWithSettings parses and runs src. On failure the error text is
	// the evaluator's own message and statements that already ran keep their
	// effects.
	InterpretWithSettings(settings *InterpreterSettings, src string, kind SourceKind) ([]Statement, Value, error)

	// DimensionRegistry returns a read-only snapshot of the known dimensions.
	DimensionRegistry() DimensionRegistry
}

// ContextFactory creates a fresh Context.
type ContextFactory func() Context
