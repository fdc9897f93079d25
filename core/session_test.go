package core_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/numbridge/calc/interp"
	"github.com/hupe1980/numbridge/core"
	"github.com/hupe1980/numbridge/internal/testutil"
	"github.com/hupe1980/numbridge/logging"
	"github.com/hupe1980/numbridge/markup"
	"github.com/hupe1980/numbridge/render"
)

type mockContext struct{ mock.Mock }

func (m *mockContext) InterpretWithSettings(s *core.InterpreterSettings, src string, kind core.SourceKind) ([]core.Statement, core.Value, error) {
	args := m.Called(s, src, kind)
	var stmts []core.Statement
	if v := args.Get(0); v != nil {
		stmts = v.([]core.Statement)
	}
	var val core.Value
	if v := args.Get(1); v != nil {
		val = v.(core.Value)
	}
	return stmts, val, args.Error(2)
}

func (m *mockContext) DimensionRegistry() core.DimensionRegistry {
	return m.Called().Get(0).(core.DimensionRegistry)
}

func onePlusOne() testutil.Reply {
	return testutil.Reply{
		Statements: []markup.Markup{
			testutil.NewMarkupBuilder().Value("1").Space().Operator("+").Space().Value("1").NL().Build(),
		},
		Result: testutil.NewMarkupBuilder().Result("2", "", "").Build(),
	}
}

func TestNewSession_BootstrapIsSilentAndInternal(t *testing.T) {
	ctx := new(mockContext)
	ctx.On("InterpretWithSettings", mock.Anything, "use prelude", core.SourceInternal).
		Return(nil, nil, nil).Once()

	sess := core.NewSession("s1", func() core.Context { return ctx })

	ctx.AssertExpectations(t)
	assert.NoError(t, sess.BootstrapErr())
	assert.Equal(t, render.TargetIRC, sess.Target())
}

func TestNewSession_BootstrapFailureIsAbsorbed(t *testing.T) {
	ctx := new(mockContext)
	ctx.On("InterpretWithSettings", mock.Anything, "use prelude", core.SourceInternal).
		Return(nil, nil, errors.New("module 'prelude' not found"))
	ctx.On("InterpretWithSettings", mock.Anything, "use extras", core.SourceInternal).
		Return(nil, nil, errors.New("module 'extras' not found"))
	ctx.On("DimensionRegistry").Return(testutil.StaticRegistry{})
	ctx.On("InterpretWithSettings", mock.Anything, "1", core.SourceText).
		Return([]core.Statement{testutil.StaticStatement{Doc: markup.Value("1")}}, nil, nil)

	sess := core.NewSession("s1", func() core.Context { return ctx }, func(o *core.SessionOptions) {
		o.Bootstrap = []string{"use prelude", "use extras"}
	})

	err := sess.BootstrapErr()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use prelude: module 'prelude' not found")
	assert.Contains(t, err.Error(), "use extras: module 'extras' not found")

	out, err := sess.Eval("1")
	require.NoError(t, err)
	assert.Equal(t, "\x03081\x0f", out)
}

func TestSession_EvalRendersIRC(t *testing.T) {
	sess := testutil.NewSessionBuilder("s1").
		Context(testutil.NewScriptedContext(map[string]testutil.Reply{"1+1": onePlusOne()})).
		Build()

	out, err := sess.Eval("1+1")
	require.NoError(t, err)
	assert.Equal(t, "\x03081\x0f \x02+\x0f \x03081\x0f\n    \x02=\x0f \x03082\x0f", out)
	assert.Contains(t, out, "\x03082\x0f")
	assert.Equal(t, uint64(1), sess.Evaluations())
}

func TestSession_EvaluateExplicitTarget(t *testing.T) {
	sess := testutil.NewSessionBuilder("s1").
		Context(testutil.NewScriptedContext(map[string]testutil.Reply{"1+1": onePlusOne()})).
		Build()

	res, err := sess.Evaluate("1+1", render.TargetPlain)
	require.NoError(t, err)
	assert.Equal(t, "1 + 1\n    = 2", res.Output)

	_, err = sess.Evaluate("1+1", render.Target("html"))
	assert.Error(t, err)
}

func TestSession_PrintedOutputIsSeparate(t *testing.T) {
	reply := onePlusOne()
	reply.Printed = []markup.Markup{markup.PlainText("hello"), markup.Value("42")}
	sess := testutil.NewSessionBuilder("s1").
		Context(testutil.NewScriptedContext(map[string]testutil.Reply{"p": reply})).
		Build()

	res, err := sess.Evaluate("p", render.TargetIRC)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "\x030842\x0f"}, res.Printed)
	assert.NotContains(t, res.Output, "hello")
}

func TestSession_BootstrapOutputNeverShown(t *testing.T) {
	ctx := testutil.NewScriptedContext(map[string]testutil.Reply{
		"use prelude": {Printed: []markup.Markup{markup.PlainText("BOOT")}},
		"1+1":         onePlusOne(),
	})
	sess := testutil.NewSessionBuilder("s1").Context(ctx).Build()

	res, err := sess.Evaluate("1+1", render.TargetPlain)
	require.NoError(t, err)
	assert.NotContains(t, res.Output, "BOOT")
	assert.Empty(t, res.Printed)

	calls := ctx.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, testutil.Call{Source: "use prelude", Kind: core.SourceInternal}, calls[0])
	assert.Equal(t, testutil.Call{Source: "1+1", Kind: core.SourceText}, calls[1])
}

func TestSession_EvaluationErrorIsVerbatim(t *testing.T) {
	cause := errors.New("unknown identifier 'y'")
	ctx := testutil.NewScriptedContext(map[string]testutil.Reply{
		"y":   {Err: cause},
		"1+1": onePlusOne(),
	})
	sess := testutil.NewSessionBuilder("s1").Context(ctx).Build()

	out, err := sess.Eval("y")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "unknown identifier 'y'", err.Error())
	assert.True(t, core.IsEvaluationError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, uint64(0), sess.Evaluations())

	_, err = sess.Eval("1+1")
	assert.NoError(t, err, "session must stay usable after a failure")
}

func TestSession_ReentrantEvalIsRejected(t *testing.T) {
	var sess *core.Session
	var inner error
	ctx := testutil.NewScriptedContext(map[string]testutil.Reply{
		"outer": {
			Result: markup.Value("1"),
			During: func() { _, inner = sess.Eval("inner") },
		},
	})
	sess = testutil.NewSessionBuilder("s1").Context(ctx).Build()

	_, err := sess.Eval("outer")
	require.NoError(t, err)
	require.Error(t, inner)
	assert.ErrorIs(t, inner, core.ErrSessionBusy)
	var av *core.AccessViolationError
	require.ErrorAs(t, inner, &av)
	assert.Equal(t, "s1", av.SessionID)
	assert.False(t, core.IsEvaluationError(inner))
}

func TestSession_ConcurrentEvalFailsFast(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	ctx := testutil.NewScriptedContext(map[string]testutil.Reply{
		"slow": {During: func() {
			close(started)
			<-release
		}},
	})
	sess := testutil.NewSessionBuilder("s1").Context(ctx).Build()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := sess.Eval("slow")
		assert.NoError(t, err)
	}()

	<-started
	_, err := sess.Eval("fast")
	assert.ErrorIs(t, err, core.ErrSessionBusy)
	close(release)
	wg.Wait()

	_, err = sess.Eval("fast")
	assert.NoError(t, err)
}

func TestSession_LogsThroughBridgeLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelDebug, Format: "json", Output: &buf})
	sess := testutil.NewSessionBuilder("s1").Logger(logger).Build()

	_, err := sess.Eval("anything")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Session bootstrapped")
	assert.Contains(t, out, "Evaluation completed")
	assert.Contains(t, out, `"session_id":"s1"`)
}

func newCalculatorSession(t *testing.T) *core.Session {
	t.Helper()
	sess := core.NewSession("calc", interp.Factory(interp.BuiltinImporter()))
	require.NoError(t, sess.BootstrapErr())
	return sess
}

func plain(t *testing.T, sess *core.Session, input string) string {
	t.Helper()
	res, err := sess.Evaluate(input, render.TargetPlain)
	require.NoError(t, err, input)
	return res.Output
}

func TestCalculator_StatePersistsBetweenEvals(t *testing.T) {
	sess := newCalculatorSession(t)

	assert.Equal(t, "let x = 5", plain(t, sess, "let x = 5"))
	assert.Equal(t, "x + 1\n    = 6", plain(t, sess, "x + 1"))

	out, err := sess.Eval("x + 1")
	require.NoError(t, err)
	assert.Contains(t, out, "\x03086\x0f")
}

func TestCalculator_OnePlusOne(t *testing.T) {
	sess := newCalculatorSession(t)

	out, err := sess.Eval("1+1")
	require.NoError(t, err)
	assert.Contains(t, out, "\x03082\x0f")
	assert.Equal(t, "1 + 1\n    = 2", plain(t, sess, "1+1"))
}

func TestCalculator_UnitsAndTypes(t *testing.T) {
	sess := newCalculatorSession(t)
	assert.Equal(t, "3 km + 500 m\n    = 3.5 km    [Length]", plain(t, sess, "3 km + 500 m"))
	assert.Equal(t, "let d = 10 km\nd / 2 h\n    = 5 km/h    [Velocity]", plain(t, sess, "let d = 10 km; d / 2 h"))

	out, err := sess.Eval("2 m")
	require.NoError(t, err)
	assert.Contains(t, out, "\x0311m\x0f")
	assert.Contains(t, out, "\x0312\x1dLength\x0f")
}

func TestCalculator_MalformedInputKeepsSessionUsable(t *testing.T) {
	sess := newCalculatorSession(t)
	plain(t, sess, "let x = 5")

	_, err := sess.Eval("let y = ")
	require.Error(t, err)
	assert.True(t, interp.IsKind(err, interp.KindParse))

	assert.Equal(t, "x\n    = 5", plain(t, sess, "x"))
}

func TestCalculator_PartialFailureKeepsEarlierEffects(t *testing.T) {
	sess := newCalculatorSession(t)

	_, err := sess.Eval("let a = 2; a + nope; let b = 3")
	require.Error(t, err)
	assert.Equal(t, "unknown identifier 'nope'", err.Error())

	assert.Equal(t, "a\n    = 2", plain(t, sess, "a"))
	_, err = sess.Eval("b")
	require.Error(t, err)
	assert.Equal(t, "unknown identifier 'b'", err.Error())
}

func TestCalculator_PrintIsCaptured(t *testing.T) {
	sess := newCalculatorSession(t)
	res, err := sess.Evaluate(`print("hi"); 2 + 2`, render.TargetPlain)
	require.NoError(t, err)
	assert.Equal(t, []string{"hi"}, res.Printed)
	assert.Equal(t, "print(\"hi\")\n2 + 2\n    = 4", res.Output)
	assert.False(t, strings.Contains(res.Output, "\nhi"))
}
