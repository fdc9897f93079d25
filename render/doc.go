// Package render turns markup documents into flat strings for a specific
// output target.
//
// Three targets exist:
//
//   - Plain: the span texts, unchanged. This is the fallback target.
//   - IRC: mIRC control codes (bold, colour, italic, reset) understood by
//     chat clients, so a relay can forward the string verbatim.
//   - ANSI: terminal escape sequences produced with github.com/fatih/color.
//
// Every renderer implements markup.Styler and is therefore total over the
// closed set of format types. Rendering is span by span with no state carried
// between spans, so output is a pure function of (document, target).
package render
