// Package engine hosts numbridge evaluation sessions.
//
// The Engine is the coordination point between a host (chat relay, CLI,
// library user) and the per-session evaluation contexts. It owns the session
// store, the context factory used to build each session's evaluator, the
// bootstrap directives and the default output target.
//
// # Core Responsibilities
//
// Session Management:
//   - Creating sessions with a fresh, bootstrapped evaluation context
//   - Addressing sessions by opaque handle
//   - Closing sessions and releasing their context
//
// Evaluation:
//   - Forwarding program text to the addressed session
//   - Rendering the reply for the default or an explicit target
//   - Reporting evaluator failures verbatim
//
// Hooks:
//   - Before/after evaluation callbacks
//   - Error callbacks
//   - Session lifecycle callbacks
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────┐
//	│                 Host (relay, CLI, library)              │
//	├─────────────────────────────────────────────────────────┤
//	│                         Engine                          │
//	│  ┌─────────────┐ ┌─────────────┐ ┌─────────────────┐    │
//	│  │CreateSession│ │ Eval/Target │ │  CloseSession   │    │
//	│  └─────────────┘ └─────────────┘ └─────────────────┘    │
//	│  ┌─────────────────────────┐ ┌───────────────────────┐  │
//	│  │    Callback Manager     │ │    Capacity limits    │  │
//	│  └─────────────────────────┘ └───────────────────────┘  │
//	├─────────────────────────────────────────────────────────┤
//	│     Session Store  →  core.Session  →  core.Context     │
//	└─────────────────────────────────────────────────────────┘
//
// # Concurrency
//
// Different sessions evaluate in parallel. A single session never runs two
// evaluations at once: an overlapping request fails immediately with
// core.ErrSessionBusy. Hosts that want queuing semantics serialize requests
// per session themselves (see package runner).
//
// # Usage
//
//	eng := engine.New(func(o *engine.Options) {
//	    o.Target = render.TargetPlain
//	})
//
//	id, err := eng.CreateSession(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.CloseSession(ctx, id)
//
//	out, err := eng.Eval(ctx, id, "let d = 10 km; d / 2 h")
//	// out == "let d = 10 km\nd / 2 h\n    = 5 km/h    [Velocity]"
package engine
