// Package core turns calculator input into styled chat replies.
//
// It defines the contract a unit-aware evaluator must meet (Context,
// Statement, Value, DimensionRegistry) and the Session that owns one such
// Context for its whole life:
//
//   - NewSession builds a context and silently runs the bootstrap
//     directives ("use prelude" by default)
//   - Session.Eval interprets one line and renders the pretty-printed
//     statements followed by the result for IRC
//   - Session.Evaluate does the same for any render.Target and also returns
//     whatever the program printed
//
// A Session serves one evaluation at a time. A concurrent or reentrant call
// fails fast with ErrSessionBusy instead of waiting. Evaluator failures come
// back as *EvaluationError carrying the evaluator's message verbatim.
package core
