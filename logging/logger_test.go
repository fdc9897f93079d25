package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{
		"debug": LogLevelDebug, "INFO": LogLevelInfo, "": LogLevelInfo,
		"warning": LogLevelWarn, "error": LogLevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "WARN", LogLevelWarn.String())
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestBridgeLogger_ContextAndLevels(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: "json", Output: &buf})
	l := base.WithComponent("engine").WithSession("s1").WithContext("target", "irc")

	l.Debug("hidden")
	l.Info("visible", "key", "value")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "visible", lines[0]["msg"])
	assert.Equal(t, "engine", lines[0]["component"])
	assert.Equal(t, "s1", lines[0]["session_id"])
	assert.Equal(t, "irc", lines[0]["target"])
	assert.Equal(t, "value", lines[0]["key"])

	// clones do not leak into the parent
	base.Info("plain")
	lines = decodeLines(t, &buf)
	_, hasComponent := lines[1]["component"]
	assert.False(t, hasComponent)
}

func TestBridgeLogger_DomainHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelDebug, Format: "json", Output: &buf})

	l.LogEvaluation("s1", 3*time.Millisecond, true, nil)
	l.LogEvaluation("s1", time.Millisecond, false, errors.New("unknown identifier 'y'"))
	l.LogBootstrap("s1", []string{"use prelude"}, nil)
	l.LogBootstrap("s1", []string{"use prelude"}, errors.New("module 'prelude' not found"))
	l.StartTimer("eval")()

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 5)
	assert.Equal(t, "Evaluation completed", lines[0]["msg"])
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "Evaluation failed", lines[1]["msg"])
	assert.Equal(t, "unknown identifier 'y'", lines[1]["error"])
	assert.Equal(t, "Session bootstrapped", lines[2]["msg"])
	assert.Equal(t, "WARN", lines[3]["level"])
	assert.Equal(t, "eval", lines[4]["operation"])
}

func TestZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, LogLevelInfo, true)
	l.Debug("hidden")
	l.Info("relay started", "conversations", 2, "err", errors.New("boom"), "dangling")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "relay started")
	assert.Contains(t, out, "conversations=2")
	assert.Contains(t, out, "boom")
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = NoOpLogger{}
	l.Error("nothing happens")
}
