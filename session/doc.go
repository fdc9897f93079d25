// Package session houses concrete implementations of core.SessionStore.
// The interface itself (and the Session struct) live in the core package to
// centralize domain contracts. Keeping only implementations here prevents
// higher level packages (engine, runner) from depending on concrete storage.
//
// Sessions own live evaluator state that cannot be serialized, so the only
// backend is the process local InMemoryStore.
package session
