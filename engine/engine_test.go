package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/numbridge/core"
	"github.com/hupe1980/numbridge/internal/testutil"
	"github.com/hupe1980/numbridge/markup"
	"github.com/hupe1980/numbridge/render"
	"github.com/hupe1980/numbridge/session"
)

func newPlainEngine(optFns ...func(o *Options)) *Engine {
	return New(append([]func(o *Options){func(o *Options) { o.Target = render.TargetPlain }}, optFns...)...)
}

func TestNew_Defaults(t *testing.T) {
	eng := New()
	assert.Equal(t, render.TargetIRC, eng.Target())
	assert.Equal(t, 0, eng.Len())

	ctx := context.Background()
	id, err := eng.CreateSession(ctx)
	require.NoError(t, err)

	sess, err := eng.Session(id)
	require.NoError(t, err)
	assert.NoError(t, sess.BootstrapErr(), "embedded prelude must load")

	out, err := eng.Eval(ctx, id, "1+1")
	require.NoError(t, err)
	assert.Contains(t, out, "\x03082\x0f")
}

func TestEngine_SessionsAreIndependent(t *testing.T) {
	eng := newPlainEngine()
	ctx := context.Background()

	a, err := eng.CreateSession(ctx)
	require.NoError(t, err)
	b, err := eng.CreateSession(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, eng.Len())

	_, err = eng.Eval(ctx, a, "let x = 5")
	require.NoError(t, err)

	out, err := eng.Eval(ctx, a, "x * 2")
	require.NoError(t, err)
	assert.Equal(t, "x * 2\n    = 10", out)

	_, err = eng.Eval(ctx, b, "x")
	require.Error(t, err)
	assert.Equal(t, "unknown identifier 'x'", err.Error())
	assert.True(t, core.IsEvaluationError(err))
}

func TestEngine_EvalTarget(t *testing.T) {
	eng := newPlainEngine()
	ctx := context.Background()
	id, err := eng.CreateSession(ctx)
	require.NoError(t, err)

	plain, err := eng.Eval(ctx, id, "2 m")
	require.NoError(t, err)
	assert.Equal(t, "2 m\n    = 2 m    [Length]", plain)

	irc, err := eng.EvalTarget(ctx, id, "2 m", render.TargetIRC)
	require.NoError(t, err)
	assert.Contains(t, irc, "\x0312\x1dLength\x0f")

	_, err = eng.EvalTarget(ctx, id, "2 m", render.Target("html"))
	assert.Error(t, err)
}

func TestEngine_EvaluateCapturesPrint(t *testing.T) {
	eng := newPlainEngine()
	ctx := context.Background()
	id, err := eng.CreateSession(ctx)
	require.NoError(t, err)

	res, err := eng.Evaluate(ctx, id, `print("hi"); 3`, render.TargetPlain)
	require.NoError(t, err)
	assert.Equal(t, []string{"hi"}, res.Printed)
	assert.True(t, strings.HasSuffix(res.Output, "    = 3"))
}

func TestEngine_UnknownAndClosedSessions(t *testing.T) {
	eng := newPlainEngine()
	ctx := context.Background()

	_, err := eng.Eval(ctx, "nope", "1")
	assert.ErrorIs(t, err, session.ErrNotFound)

	id, err := eng.CreateSession(ctx)
	require.NoError(t, err)
	require.NoError(t, eng.CloseSession(ctx, id))
	assert.Equal(t, 0, eng.Len())

	_, err = eng.Eval(ctx, id, "1")
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.ErrorIs(t, eng.CloseSession(ctx, id), session.ErrNotFound)
}

func TestEngine_CancelledContext(t *testing.T) {
	eng := newPlainEngine()
	id, err := eng.CreateSession(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = eng.Eval(ctx, id, "1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Limits(t *testing.T) {
	eng := newPlainEngine(func(o *Options) {
		o.Config = Config{MaxSessions: 1, MaxInputLength: 8}
	})
	ctx := context.Background()

	id, err := eng.CreateSession(ctx)
	require.NoError(t, err)
	_, err = eng.CreateSession(ctx)
	assert.ErrorIs(t, err, ErrTooManySessions)

	_, err = eng.Eval(ctx, id, "1 + 2 + 3 + 4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input too long")

	require.NoError(t, eng.CloseSession(ctx, id))
	_, err = eng.CreateSession(ctx)
	assert.NoError(t, err)
}

func TestEngine_CustomContextAndBootstrap(t *testing.T) {
	script := testutil.NewScriptedContext(map[string]testutil.Reply{
		"ping": {Result: markup.Value("pong")},
	})
	eng := newPlainEngine(func(o *Options) {
		o.ContextFactory = script.Factory()
		o.Bootstrap = []string{}
	})
	ctx := context.Background()

	id, err := eng.CreateSession(ctx)
	require.NoError(t, err)
	out, err := eng.Eval(ctx, id, "ping")
	require.NoError(t, err)
	assert.Equal(t, "pong", out)

	calls := script.Calls()
	require.Len(t, calls, 1, "an empty bootstrap runs nothing")
	assert.Equal(t, core.SourceText, calls[0].Kind)
}

func TestEngine_BootstrapFailureDoesNotFailCreation(t *testing.T) {
	var created *CallbackContext
	eng := newPlainEngine(func(o *Options) {
		o.Bootstrap = []string{"use missing"}
	})
	eng.RegisterCallback(NewFunctionCallback(CallbackOnSessionCreated, func(_ context.Context, c *CallbackContext) error {
		created = c
		return nil
	}))

	id, err := eng.CreateSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, id, created.SessionID)
	require.Error(t, created.Err)
	assert.Contains(t, created.Err.Error(), "module 'missing' not found")
}

func TestEngine_EvalCallbacks(t *testing.T) {
	eng := newPlainEngine()
	ctx := context.Background()

	var mu sync.Mutex
	var seen []CallbackType
	record := func(_ context.Context, c *CallbackContext) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, c.CallbackType)
		return nil
	}
	for _, ct := range []CallbackType{CallbackBeforeEval, CallbackAfterEval, CallbackOnError, CallbackOnSessionClosed} {
		eng.RegisterCallback(NewFunctionCallback(ct, record))
	}

	var afterResult *core.EvalResult
	eng.RegisterCallback(NewFunctionCallback(CallbackAfterEval, func(_ context.Context, c *CallbackContext) error {
		afterResult = c.Result
		return nil
	}))

	id, err := eng.CreateSession(ctx)
	require.NoError(t, err)

	_, err = eng.Eval(ctx, id, "1+1")
	require.NoError(t, err)
	require.NotNil(t, afterResult)
	assert.Equal(t, "1 + 1\n    = 2", afterResult.Output)

	_, err = eng.Eval(ctx, id, "nope")
	require.Error(t, err)

	require.NoError(t, eng.CloseSession(ctx, id))

	assert.Equal(t, []CallbackType{
		CallbackBeforeEval, CallbackAfterEval,
		CallbackBeforeEval, CallbackOnError,
		CallbackOnSessionClosed,
	}, seen)
}

func TestEngine_InputValidationVetoesEvaluation(t *testing.T) {
	script := testutil.NewScriptedContext(nil)
	eng := newPlainEngine(func(o *Options) {
		o.ContextFactory = script.Factory()
		o.Bootstrap = []string{}
	})
	blocked := errors.New("modules cannot be loaded from chat")
	eng.RegisterCallback(NewInputValidationCallback(func(input string) error {
		if strings.HasPrefix(input, "use ") {
			return blocked
		}
		return nil
	}))

	ctx := context.Background()
	id, err := eng.CreateSession(ctx)
	require.NoError(t, err)

	_, err = eng.Eval(ctx, id, "use units")
	assert.ErrorIs(t, err, blocked)
	assert.Empty(t, script.Calls(), "vetoed input must not reach the context")

	_, err = eng.Eval(ctx, id, "1")
	assert.NoError(t, err)
}

func TestEngine_CreateCallbackErrorDiscardsSession(t *testing.T) {
	eng := newPlainEngine()
	refuse := errors.New("refused")
	eng.RegisterCallback(NewFunctionCallback(CallbackOnSessionCreated, func(context.Context, *CallbackContext) error {
		return refuse
	}))

	_, err := eng.CreateSession(context.Background())
	assert.ErrorIs(t, err, refuse)
	assert.Equal(t, 0, eng.Len())
}

func TestEngine_BusySessionReportsError(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	script := testutil.NewScriptedContext(map[string]testutil.Reply{
		"slow": {During: func() {
			close(started)
			<-release
		}},
	})
	eng := newPlainEngine(func(o *Options) {
		o.ContextFactory = script.Factory()
		o.Bootstrap = []string{}
	})
	var onError error
	eng.RegisterCallback(NewFunctionCallback(CallbackOnError, func(_ context.Context, c *CallbackContext) error {
		onError = c.Err
		return nil
	}))

	ctx := context.Background()
	id, err := eng.CreateSession(ctx)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := eng.Eval(ctx, id, "slow")
		done <- err
	}()

	<-started
	_, err = eng.Eval(ctx, id, "fast")
	assert.ErrorIs(t, err, core.ErrSessionBusy)
	assert.ErrorIs(t, onError, core.ErrSessionBusy)

	close(release)
	assert.NoError(t, <-done)
}

func TestLoggingCallback(t *testing.T) {
	var messages []string
	cb := NewLoggingCallback(CallbackOnError, func(m string) { messages = append(messages, m) })
	assert.Equal(t, CallbackOnError, cb.Type())

	err := cb.Execute(context.Background(), &CallbackContext{
		SessionID: "s1",
		Input:     "1 m + 1 s",
		Err:       errors.New("incompatible dimensions"),
	})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, `[on_error] Session: s1, Input: "1 m + 1 s", Error: incompatible dimensions`, messages[0])

	silent := NewLoggingCallback(CallbackAfterEval, nil)
	assert.NoError(t, silent.Execute(context.Background(), &CallbackContext{}))
}

func TestCallbackManager_StopsAtFirstError(t *testing.T) {
	cm := NewCallbackManager()
	boom := errors.New("boom")
	calls := 0
	cm.RegisterCallback(NewFunctionCallback(CallbackBeforeEval, func(context.Context, *CallbackContext) error {
		calls++
		return boom
	}))
	cm.RegisterCallback(NewFunctionCallback(CallbackBeforeEval, func(context.Context, *CallbackContext) error {
		calls++
		return nil
	}))

	err := cm.ExecuteCallbacks(context.Background(), CallbackBeforeEval, &CallbackContext{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)

	assert.NoError(t, cm.ExecuteCallbacks(context.Background(), CallbackAfterEval, &CallbackContext{}))
}
