package testutil

import (
	"github.com/hupe1980/numbridge/core"
	"github.com/hupe1980/numbridge/logging"
	"github.com/hupe1980/numbridge/render"
)

// SessionBuilder helps construct sessions with fluent chaining for tests.
// Example:
//
//	sess := NewSessionBuilder("sess-1").Context(ctx).Target(render.TargetPlain).Build()
type SessionBuilder struct {
	id        string
	ctx       core.Context
	bootstrap []string
	target    render.Target
	logger    logging.Logger
}

// NewSessionBuilder creates a new builder for a session with the given id
// backed by an empty ScriptedContext.
func NewSessionBuilder(id string) *SessionBuilder {
	return &SessionBuilder{id: id, ctx: NewScriptedContext(nil), bootstrap: core.DefaultBootstrap, target: render.TargetIRC}
}

// Context sets the evaluation context (chainable).
func (b *SessionBuilder) Context(ctx core.Context) *SessionBuilder {
	b.ctx = ctx
	return b
}

// Bootstrap replaces the bootstrap directives (chainable).
func (b *SessionBuilder) Bootstrap(directives ...string) *SessionBuilder {
	b.bootstrap = directives
	return b
}

// Target sets the default render target (chainable).
func (b *SessionBuilder) Target(t render.Target) *SessionBuilder {
	b.target = t
	return b
}

// Logger sets the session logger (chainable).
func (b *SessionBuilder) Logger(l logging.Logger) *SessionBuilder {
	b.logger = l
	return b
}

// Build returns the bootstrapped *core.Session.
func (b *SessionBuilder) Build() *core.Session {
	ctx := b.ctx
	return core.NewSession(b.id, func() core.Context { return ctx }, func(o *core.SessionOptions) {
		o.Bootstrap = b.bootstrap
		o.Target = b.target
		o.Logger = b.logger
	})
}
