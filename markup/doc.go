// Package markup defines the structured, style-tagged output model shared by
// the evaluator and the renderers.
//
// A Markup is an ordered sequence of FormattedString spans. Each span carries
// one FormatType from a closed set and an immutable text. Markups are values:
// every operation returns a new Markup and never mutates its receiver, so a
// document can be handed to any number of renderers without coordination.
//
// The set of format types is closed. Renderers implement Styler, which has one
// method per format type, and Apply is the only place that maps a FormatType
// onto a Styler method. Adding a format type therefore means adding a Styler
// method, and every renderer stops compiling until it handles the new type.
package markup
