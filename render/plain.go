package render

import "github.com/hupe1980/numbridge/markup"

// Plain renders every span as its literal text.
type Plain struct{}

var (
	_ Renderer      = Plain{}
	_ markup.Styler = Plain{}
)

// Render implements Renderer.
func (p Plain) Render(m markup.Markup, multiline bool) string {
	return markup.Format(p, m, multiline)
}

// Target implements Renderer.
func (Plain) Target() Target { return TargetPlain }

func (Plain) Whitespace(text string) string     { return text }
func (Plain) Emphasized(text string) string     { return text }
func (Plain) Dimmed(text string) string         { return text }
func (Plain) Text(text string) string           { return text }
func (Plain) String(text string) string         { return text }
func (Plain) Keyword(text string) string        { return text }
func (Plain) Value(text string) string          { return text }
func (Plain) Unit(text string) string           { return text }
func (Plain) Identifier(text string) string     { return text }
func (Plain) TypeIdentifier(text string) string { return text }
func (Plain) Operator(text string) string       { return text }
func (Plain) Decorator(text string) string      { return text }
