package markup

func span(t FormatType, text string) Markup {
	return Markup{spans: []FormattedString{{Type: t, Text: text}}}
}

// Space is a single whitespace span.
func Space() Markup { return span(FormatWhitespace, " ") }

// NL is a newline span.
func NL() Markup { return span(FormatWhitespace, "\n") }

// Spaces is a whitespace span with the given text.
func Spaces(text string) Markup { return span(FormatWhitespace, text) }

// Emphasize marks text that should stand out, such as the result marker.
func Emphasize(text string) Markup { return span(FormatEmphasized, text) }

// Dim marks secondary text.
func Dim(text string) Markup { return span(FormatDimmed, text) }

// PlainText is undecorated text.
func PlainText(text string) Markup { return span(FormatText, text) }

// StringLit is a string literal, quotes included.
func StringLit(text string) Markup { return span(FormatString, text) }

// Keyword is a language keyword like let or unit.
func Keyword(text string) Markup { return span(FormatKeyword, text) }

// Value is a numeric value.
func Value(text string) Markup { return span(FormatValue, text) }

// Unit is a unit name.
func Unit(text string) Markup { return span(FormatUnit, text) }

// Identifier is a variable or function name.
func Identifier(text string) Markup { return span(FormatIdentifier, text) }

// TypeIdentifier is a dimension name.
func TypeIdentifier(text string) Markup { return span(FormatTypeIdentifier, text) }

// Operator is an operator or punctuation.
func Operator(text string) Markup { return span(FormatOperator, text) }

// Decorator is a definition decorator such as @aliases.
func Decorator(text string) Markup { return span(FormatDecorator, text) }
