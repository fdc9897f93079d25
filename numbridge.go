// Package numbridge provides a high-level façade over the evaluation engine,
// turning a unit-aware calculator into a chat service. Most applications
// interact with this package by:
//  1. Creating a Bridge via New() (optionally overriding the target, modules
//     or session store)
//  2. Creating one session per conversation (CreateSession)
//  3. Evaluating user input against that session (Eval, EvalTarget, Evaluate)
//
// The façade delegates hosting to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; relays typically select the IRC target and supply a structured
// logger.
package numbridge

import (
	"context"

	"github.com/hupe1980/numbridge/calc/interp"
	"github.com/hupe1980/numbridge/core"
	"github.com/hupe1980/numbridge/engine"
	"github.com/hupe1980/numbridge/logging"
	"github.com/hupe1980/numbridge/render"
	"github.com/hupe1980/numbridge/session"
)

// Options configures the Bridge instance.
type Options struct {
	// Engine configuration (session and input limits)
	EngineConfig engine.Config

	// Target is the output format used by Eval. Defaults to IRC.
	Target render.Target

	// Bootstrap directives run silently on every new session. Defaults to
	// core.DefaultBootstrap.
	Bootstrap []string

	// Importer resolves `use` directives. Extra modules are layered in front
	// of the embedded ones with interp.ChainImporter. Ignored when
	// ContextFactory is set.
	Importer interp.Importer

	// ContextFactory replaces the built-in calculator.
	ContextFactory core.ContextFactory

	// Stores (defaults to in-memory implementation if not provided)
	SessionStore core.SessionStore

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Bridge is the high-level façade aggregating the underlying engine and
// session store.
type Bridge struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new Bridge instance with optional overrides. Any unset
// service is initialized with its default implementation.
func New(optFns ...func(o *Options)) *Bridge {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Target:       render.TargetIRC,
		Importer:     interp.BuiltinImporter(),
		SessionStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.ContextFactory == nil {
		opts.ContextFactory = interp.Factory(opts.Importer)
	}

	e := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.SessionStore = opts.SessionStore
		o.ContextFactory = opts.ContextFactory
		o.Bootstrap = opts.Bootstrap
		o.Target = opts.Target
		o.Logger = opts.Logger
	})

	return &Bridge{opts: opts, engine: e}
}

// Engine returns the underlying engine.
func (b *Bridge) Engine() *engine.Engine { return b.engine }

// RegisterCallback adds a lifecycle hook to the underlying engine.
func (b *Bridge) RegisterCallback(cb engine.Callback) { b.engine.RegisterCallback(cb) }

// CreateSession creates and bootstraps a session and returns its handle.
func (b *Bridge) CreateSession(ctx context.Context) (string, error) {
	return b.engine.CreateSession(ctx)
}

// CloseSession discards the session for handle.
func (b *Bridge) CloseSession(ctx context.Context, handle string) error {
	return b.engine.CloseSession(ctx, handle)
}

// Eval evaluates input in the session for handle and renders the reply for
// the configured target.
func (b *Bridge) Eval(ctx context.Context, handle, input string) (string, error) {
	return b.engine.Eval(ctx, handle, input)
}

// EvalTarget evaluates input and renders the reply for target.
func (b *Bridge) EvalTarget(ctx context.Context, handle, input string, target render.Target) (string, error) {
	return b.engine.EvalTarget(ctx, handle, input, target)
}

// Evaluate evaluates input and returns the reply together with captured
// print output.
func (b *Bridge) Evaluate(ctx context.Context, handle, input string, target render.Target) (*core.EvalResult, error) {
	return b.engine.Evaluate(ctx, handle, input, target)
}

// EvalOnce evaluates input in a throwaway session that is closed before
// returning.
func (b *Bridge) EvalOnce(ctx context.Context, input string, target render.Target) (*core.EvalResult, error) {
	handle, err := b.engine.CreateSession(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = b.engine.CloseSession(ctx, handle) }()

	return b.engine.Evaluate(ctx, handle, input, target)
}
