package render

import (
	"github.com/fatih/color"

	"github.com/hupe1980/numbridge/markup"
)

// ANSI renders spans with terminal escape sequences. Colours are always
// emitted, regardless of color.NoColor; callers decide whether a terminal is
// attached before choosing this target.
type ANSI struct {
	emphasized     *color.Color
	dimmed         *color.Color
	str            *color.Color
	keyword        *color.Color
	value          *color.Color
	unit           *color.Color
	typeIdentifier *color.Color
	operator       *color.Color
	decorator      *color.Color
}

var (
	_ Renderer      = (*ANSI)(nil)
	_ markup.Styler = (*ANSI)(nil)
)

func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// NewANSI constructs the ANSI renderer.
func NewANSI() *ANSI {
	return &ANSI{
		emphasized:     forced(color.Bold),
		dimmed:         forced(color.Faint),
		str:            forced(color.FgGreen),
		keyword:        forced(color.FgMagenta),
		value:          forced(color.FgYellow),
		unit:           forced(color.FgCyan),
		typeIdentifier: forced(color.FgBlue, color.Italic),
		operator:       forced(color.Bold),
		decorator:      forced(color.FgGreen),
	}
}

// Render implements Renderer.
func (a *ANSI) Render(m markup.Markup, multiline bool) string {
	return markup.Format(a, m, multiline)
}

// Target implements Renderer.
func (*ANSI) Target() Target { return TargetANSI }

func (*ANSI) Whitespace(text string) string       { return text }
func (a *ANSI) Emphasized(text string) string     { return a.emphasized.Sprint(text) }
func (a *ANSI) Dimmed(text string) string         { return a.dimmed.Sprint(text) }
func (*ANSI) Text(text string) string             { return text }
func (a *ANSI) String(text string) string         { return a.str.Sprint(text) }
func (a *ANSI) Keyword(text string) string        { return a.keyword.Sprint(text) }
func (a *ANSI) Value(text string) string          { return a.value.Sprint(text) }
func (a *ANSI) Unit(text string) string           { return a.unit.Sprint(text) }
func (*ANSI) Identifier(text string) string       { return text }
func (a *ANSI) TypeIdentifier(text string) string { return a.typeIdentifier.Sprint(text) }
func (a *ANSI) Operator(text string) string       { return a.operator.Sprint(text) }
func (a *ANSI) Decorator(text string) string      { return a.decorator.Sprint(text) }
