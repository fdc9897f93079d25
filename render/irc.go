package render

import "github.com/hupe1980/numbridge/markup"

// mIRC control bytes.
const (
	ircBold   = "\x02"
	ircColor  = "\x03"
	ircItalic = "\x1d"
	ircReset  = "\x0f"
)

// Two-digit mIRC colour numbers.
const (
	ircGreen     = "03"
	ircYellow    = "08"
	ircLightCyan = "11"
	ircLightBlue = "12"
	ircPink      = "13"
)

// IRC renders spans with mIRC control codes. Every decorated span is closed
// with a reset, so spans never leak styling into each other.
type IRC struct{}

var (
	_ Renderer      = IRC{}
	_ markup.Styler = IRC{}
)

// Render implements Renderer.
func (i IRC) Render(m markup.Markup, multiline bool) string {
	return markup.Format(i, m, multiline)
}

// Target implements Renderer.
func (IRC) Target() Target { return TargetIRC }

func ircBolded(text string) string { return ircBold + text + ircReset }

func ircColored(code, text string) string { return ircColor + code + text + ircReset }

func (IRC) Whitespace(text string) string { return text }
func (IRC) Emphasized(text string) string { return ircBolded(text) }
func (IRC) Dimmed(text string) string     { return text }
func (IRC) Text(text string) string       { return text }
func (IRC) String(text string) string     { return ircColored(ircGreen, text) }
func (IRC) Keyword(text string) string    { return ircColored(ircPink, text) }
func (IRC) Value(text string) string      { return ircColored(ircYellow, text) }
func (IRC) Unit(text string) string       { return ircColored(ircLightCyan, text) }
func (IRC) Identifier(text string) string { return text }
func (IRC) TypeIdentifier(text string) string {
	return ircColored(ircLightBlue+ircItalic, text)
}
func (IRC) Operator(text string) string  { return ircBolded(text) }
func (IRC) Decorator(text string) string { return ircColored(ircGreen, text) }
