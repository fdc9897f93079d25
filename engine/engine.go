package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/numbridge/calc/interp"
	"github.com/hupe1980/numbridge/core"
	"github.com/hupe1980/numbridge/logging"
	"github.com/hupe1980/numbridge/render"
	"github.com/hupe1980/numbridge/session"
)

// ErrTooManySessions is returned by CreateSession once Config.MaxSessions
// live sessions exist.
var ErrTooManySessions = errors.New("engine: session limit reached")

// Config defines tuning parameters for the Engine's operational behavior.
//
// The configuration is intentionally small:
//   - Capacity: How many sessions may be alive at the same time
//   - Input: How large a single evaluation request may be
//
// Everything else (stores, context factories, logging) is configured via
// functional options on Options.
//
// Example:
//
//	cfg := Config{
//	    MaxSessions:    500,
//	    MaxInputLength: 4096,
//	}
type Config struct {
	// MaxSessions limits the number of live sessions. Each session owns a
	// fully bootstrapped evaluation context, so this bounds memory usage.
	// Set to 0 for unlimited.
	MaxSessions int

	// MaxInputLength rejects evaluation requests whose input is longer than
	// the given number of bytes before the evaluator sees them. Set to 0
	// for unlimited.
	MaxInputLength int
}

// DefaultConfig provides default configuration values.
//
// Configuration values:
//   - MaxSessions: 0 (unlimited; relays should set a bound)
//   - MaxInputLength: 0 (unlimited)
var DefaultConfig = Config{}

// Options configures an Engine instance using the functional options pattern.
//
// Default implementations are provided for every dependency so an Engine
// built with New() alone evaluates calculator programs with the embedded
// prelude:
//   - SessionStore: session.NewInMemoryStore()
//   - ContextFactory: interp.Factory(interp.BuiltinImporter())
//   - Bootstrap: core.DefaultBootstrap ("use prelude")
//   - Target: render.TargetIRC
//   - Logger: logging.NoOpLogger
//
// Example:
//
//	eng := New(func(o *Options) {
//	    o.Target = render.TargetPlain
//	    o.Logger = myLogger
//	})
type Options struct {
	// Config contains operational parameters for the engine behavior.
	// Defaults to DefaultConfig if not specified.
	Config Config

	// SessionStore keeps live sessions addressable by handle.
	// Defaults to an in-memory implementation if not provided.
	SessionStore core.SessionStore

	// ContextFactory creates the evaluation context owned by each new
	// session. Defaults to the embedded calculator.
	ContextFactory core.ContextFactory

	// Bootstrap directives are run silently against every new session.
	// A nil slice selects core.DefaultBootstrap; an empty, non-nil slice
	// disables bootstrapping.
	Bootstrap []string

	// Target is the output format used by Eval. EvalTarget and Evaluate
	// take the target explicitly.
	Target render.Target

	// Logger provides structured logging for debugging and monitoring.
	// Defaults to NoOp logger if nil.
	Logger logging.Logger
}

// Engine hosts evaluation sessions and routes requests to them.
//
// Core Responsibilities:
//   - Session Lifecycle: Creation (with bootstrap), lookup and disposal
//   - Evaluation: Forwarding input to the addressed session and returning
//     its rendered reply
//   - Hooks: Running registered callbacks around sessions and evaluations
//   - Capacity: Enforcing Config limits before work reaches a session
//
// Concurrency Model:
//   - The engine itself is safe for concurrent use
//   - Sessions are independent; requests for different handles run in
//     parallel
//   - A session serves one evaluation at a time; an overlapping request for
//     the same handle fails with core.ErrSessionBusy instead of waiting
//
// Error Handling:
//   - Unknown handles yield an error wrapping session.ErrNotFound
//   - Evaluator failures are returned as *core.EvaluationError whose message
//     is the evaluator's message verbatim
//   - Callback errors abort the operation they guard
//
// Example Usage:
//
//	eng := New()
//	id, err := eng.CreateSession(ctx)
//	if err != nil {
//	    return err
//	}
//	reply, err := eng.Eval(ctx, id, "3 km + 500 m")
type Engine struct {
	// immutable after construction
	store      core.SessionStore
	newContext core.ContextFactory
	bootstrap  []string
	target     render.Target
	logger     logging.Logger
	config     Config

	callbacks *CallbackManager

	// createMu serializes the capacity check with session creation.
	createMu sync.Mutex
}

// New creates a new Engine instance with sensible defaults and optional
// configuration.
//
// Parameters:
//   - optFns: Optional configuration functions applied in order
//
// Returns a fully configured Engine ready for CreateSession.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config: DefaultConfig,
		Target: render.TargetIRC,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.SessionStore == nil {
		opts.SessionStore = session.NewInMemoryStore()
	}
	if opts.ContextFactory == nil {
		opts.ContextFactory = interp.Factory(interp.BuiltinImporter())
	}
	if opts.Bootstrap == nil {
		opts.Bootstrap = core.DefaultBootstrap
	}
	if opts.Target == "" {
		opts.Target = render.TargetIRC
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Engine{
		store:      opts.SessionStore,
		newContext: opts.ContextFactory,
		bootstrap:  opts.Bootstrap,
		target:     opts.Target,
		logger:     opts.Logger,
		config:     opts.Config,
		callbacks:  NewCallbackManager(),
	}
}

// RegisterCallback adds a lifecycle hook. Callbacks of the same type run in
// registration order.
func (e *Engine) RegisterCallback(cb Callback) {
	e.callbacks.RegisterCallback(cb)
}

// Target returns the default output target used by Eval.
func (e *Engine) Target() render.Target { return e.target }

// Len returns the number of live sessions.
func (e *Engine) Len() int { return e.store.Len() }

// CreateSession creates and bootstraps a new session and returns its handle.
//
// Bootstrap failures do not fail creation: the session is still usable and
// the failure is logged (see core.Session.BootstrapErr).
//
// Returns:
//   - string: The handle addressing the new session
//   - error: ErrTooManySessions, a store error, or a callback error
func (e *Engine) CreateSession(ctx context.Context) (string, error) {
	e.createMu.Lock()
	if limit := e.config.MaxSessions; limit > 0 && e.store.Len() >= limit {
		e.createMu.Unlock()
		return "", fmt.Errorf("%w (%d)", ErrTooManySessions, limit)
	}

	sess, err := e.store.Create(e.newContext, func(o *core.SessionOptions) {
		o.Bootstrap = e.bootstrap
		o.Target = e.target
		o.Logger = e.logger
	})
	e.createMu.Unlock()
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	cbCtx := &CallbackContext{
		SessionID:    sess.ID,
		CallbackType: CallbackOnSessionCreated,
		Err:          sess.BootstrapErr(),
	}
	if err := e.callbacks.ExecuteCallbacks(ctx, CallbackOnSessionCreated, cbCtx); err != nil {
		_ = e.store.Delete(sess.ID)
		return "", err
	}

	e.logger.Info("Session created", "session_id", sess.ID, "sessions", e.store.Len())
	return sess.ID, nil
}

// Session returns the live session for handle.
func (e *Engine) Session(handle string) (*core.Session, error) {
	return e.store.Get(handle)
}

// CloseSession discards the session for handle. Closing a session that is
// currently evaluating is allowed; the running evaluation completes against
// the detached session.
func (e *Engine) CloseSession(ctx context.Context, handle string) error {
	if err := e.store.Delete(handle); err != nil {
		return err
	}
	cbCtx := &CallbackContext{SessionID: handle, CallbackType: CallbackOnSessionClosed}
	if err := e.callbacks.ExecuteCallbacks(ctx, CallbackOnSessionClosed, cbCtx); err != nil {
		e.logger.Warn("Session close callback failed", "session_id", handle, "error", err)
	}
	e.logger.Info("Session closed", "session_id", handle)
	return nil
}

// Eval evaluates input in the session addressed by handle and renders the
// reply for the engine's default target.
func (e *Engine) Eval(ctx context.Context, handle, input string) (string, error) {
	return e.EvalTarget(ctx, handle, input, e.target)
}

// EvalTarget evaluates input and renders the reply for target.
func (e *Engine) EvalTarget(ctx context.Context, handle, input string, target render.Target) (string, error) {
	res, err := e.Evaluate(ctx, handle, input, target)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// Evaluate evaluates input in the session addressed by handle.
//
// Execution Flow:
//  1. The session is looked up; unknown handles fail immediately
//  2. The input length limit is enforced
//  3. CallbackBeforeEval hooks run and may veto the request
//  4. The session interprets and renders input for target
//  5. CallbackAfterEval (success) or CallbackOnError (failure) hooks run
//
// Returns:
//   - *core.EvalResult: Rendered reply, captured print output and timing
//   - error: session.ErrNotFound, core.ErrSessionBusy, a
//     *core.EvaluationError, or a callback error
func (e *Engine) Evaluate(ctx context.Context, handle, input string, target render.Target) (*core.EvalResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := e.store.Get(handle)
	if err != nil {
		return nil, err
	}

	if limit := e.config.MaxInputLength; limit > 0 && len(input) > limit {
		return nil, fmt.Errorf("input too long: %d bytes (limit %d)", len(input), limit)
	}

	cbCtx := &CallbackContext{
		SessionID:    handle,
		Input:        input,
		Target:       target,
		CallbackType: CallbackBeforeEval,
	}
	if err := e.callbacks.ExecuteCallbacks(ctx, CallbackBeforeEval, cbCtx); err != nil {
		return nil, err
	}

	res, err := sess.Evaluate(input, target)
	if err != nil {
		cbCtx.CallbackType = CallbackOnError
		cbCtx.Err = err
		if cbErr := e.callbacks.ExecuteCallbacks(ctx, CallbackOnError, cbCtx); cbErr != nil {
			e.logger.Warn("Error callback failed", "session_id", handle, "error", cbErr)
		}
		return nil, err
	}

	cbCtx.CallbackType = CallbackAfterEval
	cbCtx.Result = res
	if err := e.callbacks.ExecuteCallbacks(ctx, CallbackAfterEval, cbCtx); err != nil {
		return nil, err
	}
	return res, nil
}
