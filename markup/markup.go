package markup

import "strings"

// FormatType classifies a span of output text. The set is closed.
type FormatType int

const (
	// FormatWhitespace separates other spans.
	FormatWhitespace FormatType = iota
	// FormatEmphasized marks text that should stand out.
	FormatEmphasized
	// FormatDimmed marks secondary text such as type annotation brackets.
	FormatDimmed
	// FormatText is plain prose.
	FormatText
	// FormatString is a string literal or string value.
	FormatString
	// FormatKeyword is a language keyword (let, unit, dimension, use, ...).
	FormatKeyword
	// FormatValue is a numeric or boolean value.
	FormatValue
	// FormatUnit is a physical unit attached to a value.
	FormatUnit
	// FormatIdentifier is a variable or function name.
	FormatIdentifier
	// FormatTypeIdentifier is a type or dimension name.
	FormatTypeIdentifier
	// FormatOperator is an arithmetic, comparison or conversion operator.
	FormatOperator
	// FormatDecorator is a definition decorator such as @aliases.
	FormatDecorator

	numFormatTypes
)

var formatTypeNames = [...]string{
	FormatWhitespace:     "Whitespace",
	FormatEmphasized:     "Emphasized",
	FormatDimmed:         "Dimmed",
	FormatText:           "Text",
	FormatString:         "String",
	FormatKeyword:        "Keyword",
	FormatValue:          "Value",
	FormatUnit:           "Unit",
	FormatIdentifier:     "Identifier",
	FormatTypeIdentifier: "TypeIdentifier",
	FormatOperator:       "Operator",
	FormatDecorator:      "Decorator",
}

// Compile-time guard: the name table must cover every format type.
var _ = [1]struct{}{}[len(formatTypeNames)-int(numFormatTypes)]

// String returns the name of the format type.
func (t FormatType) String() string {
	if t < 0 || t >= numFormatTypes {
		return "FormatType(invalid)"
	}
	return formatTypeNames[t]
}

// Valid reports whether t is one of the declared format types.
func (t FormatType) Valid() bool { return t >= 0 && t < numFormatTypes }

// FormatTypes returns every declared format type in declaration order.
func FormatTypes() []FormatType {
	types := make([]FormatType, 0, numFormatTypes)
	for t := FormatWhitespace; t < numFormatTypes; t++ {
		types = append(types, t)
	}
	return types
}

// FormattedString is one styled span of text.
type FormattedString struct {
	Type FormatType
	Text string
}

// Markup is an ordered, immutable sequence of spans. The zero value is an
// empty document.
type Markup struct {
	spans []FormattedString
}

// New builds a Markup from spans. The slice is copied.
func New(spans ...FormattedString) Markup {
	if len(spans) == 0 {
		return Markup{}
	}
	cp := make([]FormattedString, len(spans))
	copy(cp, spans)
	return Markup{spans: cp}
}

// Empty returns a document without spans.
func Empty() Markup { return Markup{} }

// Len returns the number of spans.
func (m Markup) Len() int { return len(m.spans) }

// IsEmpty reports whether the document has no spans.
func (m Markup) IsEmpty() bool { return len(m.spans) == 0 }

// Spans returns a copy of the spans in rendering order.
func (m Markup) Spans() []FormattedString {
	cp := make([]FormattedString, len(m.spans))
	copy(cp, m.spans)
	return cp
}

// Append returns a new document with other's spans after m's.
func (m Markup) Append(other Markup) Markup {
	if other.IsEmpty() {
		return m
	}
	if m.IsEmpty() {
		return other
	}
	spans := make([]FormattedString, 0, len(m.spans)+len(other.spans))
	spans = append(spans, m.spans...)
	spans = append(spans, other.spans...)
	return Markup{spans: spans}
}

// Concat joins documents in order.
func Concat(parts ...Markup) Markup {
	n := 0
	for _, p := range parts {
		n += len(p.spans)
	}
	if n == 0 {
		return Markup{}
	}
	spans := make([]FormattedString, 0, n)
	for _, p := range parts {
		spans = append(spans, p.spans...)
	}
	return Markup{spans: spans}
}

// Join concatenates documents with sep between each pair.
func Join(parts []Markup, sep Markup) Markup {
	var out Markup
	for i, p := range parts {
		if i > 0 {
			out = out.Append(sep)
		}
		out = out.Append(p)
	}
	return out
}

// String returns the document's text without any styling.
func (m Markup) String() string {
	var b strings.Builder
	for _, s := range m.spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
