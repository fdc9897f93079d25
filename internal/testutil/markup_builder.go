package testutil

import "github.com/hupe1980/numbridge/markup"

// MarkupBuilder assembles documents span by span for tests.
// Example:
//
//	doc := NewMarkupBuilder().Value("1").Space().Operator("+").Space().Value("1").NL().Build()
type MarkupBuilder struct {
	parts []markup.Markup
}

// NewMarkupBuilder creates an empty builder.
func NewMarkupBuilder() *MarkupBuilder { return &MarkupBuilder{} }

func (b *MarkupBuilder) add(m markup.Markup) *MarkupBuilder {
	b.parts = append(b.parts, m)
	return b
}

func (b *MarkupBuilder) Space() *MarkupBuilder               { return b.add(markup.Space()) }
func (b *MarkupBuilder) NL() *MarkupBuilder                  { return b.add(markup.NL()) }
func (b *MarkupBuilder) Whitespace(s string) *MarkupBuilder  { return b.add(markup.Spaces(s)) }
func (b *MarkupBuilder) Emphasized(s string) *MarkupBuilder  { return b.add(markup.Emphasize(s)) }
func (b *MarkupBuilder) Dimmed(s string) *MarkupBuilder      { return b.add(markup.Dim(s)) }
func (b *MarkupBuilder) Text(s string) *MarkupBuilder        { return b.add(markup.PlainText(s)) }
func (b *MarkupBuilder) StringLit(s string) *MarkupBuilder   { return b.add(markup.StringLit(s)) }
func (b *MarkupBuilder) Keyword(s string) *MarkupBuilder     { return b.add(markup.Keyword(s)) }
func (b *MarkupBuilder) Value(s string) *MarkupBuilder       { return b.add(markup.Value(s)) }
func (b *MarkupBuilder) Unit(s string) *MarkupBuilder        { return b.add(markup.Unit(s)) }
func (b *MarkupBuilder) Identifier(s string) *MarkupBuilder  { return b.add(markup.Identifier(s)) }
func (b *MarkupBuilder) TypeIdentifier(s string) *MarkupBuilder {
	return b.add(markup.TypeIdentifier(s))
}
func (b *MarkupBuilder) Operator(s string) *MarkupBuilder  { return b.add(markup.Operator(s)) }
func (b *MarkupBuilder) Decorator(s string) *MarkupBuilder { return b.add(markup.Decorator(s)) }

// Result appends the standard result line "    = <value>" followed by an
// optional unit and type annotation.
func (b *MarkupBuilder) Result(value, unit, typ string) *MarkupBuilder {
	b.Whitespace("    ").Operator("=").Space().Value(value)
	if unit != "" {
		b.Space().Unit(unit)
	}
	if typ != "" {
		b.Dimmed("    [").TypeIdentifier(typ).Dimmed("]")
	}
	return b.NL()
}

// Build returns the assembled document.
func (b *MarkupBuilder) Build() markup.Markup { return markup.Concat(b.parts...) }
