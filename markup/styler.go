package markup

import "strings"

// Styler encodes the text of a single span for an output target. It has one
// method per FormatType so that an implementation is total by construction.
type Styler interface {
	Whitespace(text string) string
	Emphasized(text string) string
	Dimmed(text string) string
	Text(text string) string
	String(text string) string
	Keyword(text string) string
	Value(text string) string
	Unit(text string) string
	Identifier(text string) string
	TypeIdentifier(text string) string
	Operator(text string) string
	Decorator(text string) string
}

// Apply encodes one span with s.
func Apply(s Styler, fs FormattedString) string {
	switch fs.Type {
	case FormatWhitespace:
		return s.Whitespace(fs.Text)
	case FormatEmphasized:
		return s.Emphasized(fs.Text)
	case FormatDimmed:
		return s.Dimmed(fs.Text)
	case FormatText:
		return s.Text(fs.Text)
	case FormatString:
		return s.String(fs.Text)
	case FormatKeyword:
		return s.Keyword(fs.Text)
	case FormatValue:
		return s.Value(fs.Text)
	case FormatUnit:
		return s.Unit(fs.Text)
	case FormatIdentifier:
		return s.Identifier(fs.Text)
	case FormatTypeIdentifier:
		return s.TypeIdentifier(fs.Text)
	case FormatOperator:
		return s.Operator(fs.Text)
	case FormatDecorator:
		return s.Decorator(fs.Text)
	}
	// Only reachable for a FormattedString built with an undeclared type.
	panic("markup: undeclared format type " + fs.Type.String())
}

const indentation = "  "

// Format renders m span by span with s. With indent set, the output starts
// with two spaces of whitespace and every span containing a newline is
// followed by the same indentation.
func Format(s Styler, m Markup, indent bool) string {
	var b strings.Builder
	var pad string
	if indent {
		pad = s.Whitespace(indentation)
		b.WriteString(pad)
	}
	for _, fs := range m.spans {
		b.WriteString(Apply(s, fs))
		if indent && strings.Contains(fs.Text, "\n") {
			b.WriteString(pad)
		}
	}
	return b.String()
}
