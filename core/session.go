package core

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/hupe1980/numbridge/logging"
	"github.com/hupe1980/numbridge/render"
)

// DefaultBootstrap is run on every new session.
var DefaultBootstrap = []string{"use prelude"}

// SessionOptions configures NewSession.
type SessionOptions struct {
	// Bootstrap directives run silently when the session is created.
	Bootstrap []string
	// Target used by Eval. Defaults to render.TargetIRC.
	Target render.Target
	Logger logging.Logger
}

// EvalResult is the outcome of a successful evaluation.
type EvalResult struct {
	// Output is the rendered reply: statements then result, trimmed.
	Output string
	// Printed holds one rendered string per document the program printed.
	Printed  []string
	Duration time.Duration
}

// Session owns one evaluation Context for its whole life.
//
// Contract:
//   - the context is created and bootstrapped once, in NewSession
//   - bootstrap output is discarded and bootstrap failures are only logged
//   - at most one evaluation runs at a time; overlapping calls get
//     ErrSessionBusy immediately
//   - effects of statements that ran before a failure are kept
type Session struct {
	ID      string
	Created time.Time

	ctx          Context
	target       render.Target
	mu           sync.Mutex
	log          *loggerAdapter
	pipeline     Pipeline
	bootstrapErr error
	evaluations  atomic.Uint64
}

// SessionStore keeps live sessions addressable by handle.
type SessionStore interface {
	// Create builds and bootstraps a session under a fresh handle.
	Create(newContext ContextFactory, optFns ...func(o *SessionOptions)) (*Session, error)
	Get(id string) (*Session, error)
	Delete(id string) error
	Len() int
}

type bootstrapLogger interface {
	LogBootstrap(sessionID string, directives []string, err error)
}

type evaluationLogger interface {
	LogEvaluation(sessionID string, dur time.Duration, success bool, err error)
}

// NewSession creates a context with newContext and runs the bootstrap
// directives against it.
func NewSession(id string, newContext ContextFactory, optFns ...func(o *SessionOptions)) *Session {
	opts := SessionOptions{
		Bootstrap: DefaultBootstrap,
		Target:    render.TargetIRC,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Session{
		ID:      id,
		Created: time.Now(),
		ctx:     newContext(),
		target:  opts.Target,
		log:     newLoggerAdapter(opts.Logger, id),
	}
	s.bootstrap(opts.Bootstrap)
	return s
}

func (s *Session) bootstrap(directives []string) {
	var result *multierror.Error
	for _, d := range directives {
		// nil settings: whatever the bootstrap prints is dropped
		if _, _, err := s.ctx.InterpretWithSettings(nil, d, SourceInternal); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", d, err))
		}
	}
	s.bootstrapErr = result.ErrorOrNil()

	if bl, ok := s.log.Logger().(bootstrapLogger); ok {
		bl.LogBootstrap(s.ID, directives, s.bootstrapErr)
		return
	}
	if s.bootstrapErr != nil {
		s.log.LogWarn("Session bootstrap failed", "error", s.bootstrapErr)
		return
	}
	s.log.LogDebug("Session bootstrapped", "directives", directives)
}

// BootstrapErr returns the aggregated bootstrap failures, or nil. Eval never
// reports them.
func (s *Session) BootstrapErr() error { return s.bootstrapErr }

// Target returns the target used by Eval.
func (s *Session) Target() render.Target { return s.target }

// Evaluations returns the number of successful evaluations.
func (s *Session) Evaluations() uint64 { return s.evaluations.Load() }

// Eval interprets input and renders the reply for the session's target.
func (s *Session) Eval(input string) (string, error) {
	res, err := s.Evaluate(input, s.target)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// Evaluate interprets input and renders the reply for target.
func (s *Session) Evaluate(input string, target render.Target) (*EvalResult, error) {
	if !s.mu.TryLock() {
		return nil, &AccessViolationError{SessionID: s.ID}
	}
	defer s.mu.Unlock()

	r, err := render.ForTarget(target)
	if err != nil {
		return nil, err
	}

	// Snapshot before interpreting; dimensions defined by this input are
	// named from the next evaluation on.
	registry := s.ctx.DimensionRegistry()
	sink := &CaptureSink{}

	s.log.LogDebug("Evaluating", "input", input, "target", target)
	start := time.Now()
	statements, value, err := s.ctx.InterpretWithSettings(sink.Settings(), input, SourceText)
	dur := time.Since(start)
	s.logEvaluation(dur, err)
	if err != nil {
		return nil, &EvaluationError{Err: err}
	}
	s.evaluations.Add(1)

	return &EvalResult{
		Output:   s.pipeline.Render(statements, value, registry, r),
		Printed:  s.pipeline.RenderPrinted(sink.Documents(), r),
		Duration: dur,
	}, nil
}

func (s *Session) logEvaluation(dur time.Duration, err error) {
	if el, ok := s.log.Logger().(evaluationLogger); ok {
		el.LogEvaluation(s.ID, dur, err == nil, err)
		return
	}
	if err != nil {
		s.log.LogDebug("Evaluation failed", "duration", dur, "error", err)
		return
	}
	s.log.LogDebug("Evaluation completed", "duration", dur)
}
