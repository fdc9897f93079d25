// Package runner relays chat traffic to numbridge sessions.
//
// A chat relay (an IRC bridge, a bot framework adapter, a test harness)
// forwards each message together with the conversation it belongs to. The
// Runner maps conversations to engine sessions lazily, so state defined in
// one message (`let x = 5`) is visible to the next message of the same
// conversation and to no other.
//
// # Responsibilities
//   - Conversation to session mapping, including `!reset`
//   - Dropping idle conversations (Options.IdleTimeout, Prune) so the
//     engine's session limit bounds active conversations only
//   - In-order processing per conversation; concurrency across conversations
//   - The line protocol used by `numbridge relay`:
//
//	in:  <conversation>\t<text>
//	out: <conversation>\t<reply line>      (one per output line)
//	out: <conversation>\terror: <message>  (evaluation failures)
//
// See runner.go for the operational implementation details.
package runner
