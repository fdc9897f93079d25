package testutil

import (
	"sync"

	"github.com/hupe1980/numbridge/core"
	"github.com/hupe1980/numbridge/markup"
)

// Reply scripts the outcome of one interpretation.
type Reply struct {
	Statements []markup.Markup
	Result     markup.Markup // empty for definitions
	Printed    []markup.Markup
	Err        error
	// During runs while the interpretation is in progress, after printing.
	During func()
}

// Call records one InterpretWithSettings invocation.
type Call struct {
	Source string
	Kind   core.SourceKind
}

// ScriptedContext is a core.Context answering from a script. Unknown input
// yields an empty successful reply.
type ScriptedContext struct {
	mu      sync.Mutex
	replies map[string]Reply
	calls   []Call
}

var _ core.Context = (*ScriptedContext)(nil)

// NewScriptedContext creates a context answering with replies.
func NewScriptedContext(replies map[string]Reply) *ScriptedContext {
	if replies == nil {
		replies = map[string]Reply{}
	}
	return &ScriptedContext{replies: replies}
}

// Factory returns a core.ContextFactory always yielding c.
func (c *ScriptedContext) Factory() core.ContextFactory {
	return func() core.Context { return c }
}

// Calls returns the recorded invocations.
func (c *ScriptedContext) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

// InterpretWithSettings implements core.Context.
func (c *ScriptedContext) InterpretWithSettings(settings *core.InterpreterSettings, src string, kind core.SourceKind) ([]core.Statement, core.Value, error) {
	c.mu.Lock()
	c.calls = append(c.calls, Call{Source: src, Kind: kind})
	reply := c.replies[src]
	c.mu.Unlock()

	if settings != nil && settings.Print != nil {
		for _, p := range reply.Printed {
			settings.Print(p)
		}
	}
	if reply.During != nil {
		reply.During()
	}
	if reply.Err != nil {
		return nil, nil, reply.Err
	}
	stmts := make([]core.Statement, len(reply.Statements))
	for i, m := range reply.Statements {
		stmts[i] = StaticStatement{Doc: m}
	}
	return stmts, StaticValue{Doc: reply.Result}, nil
}

// DimensionRegistry implements core.Context.
func (c *ScriptedContext) DimensionRegistry() core.DimensionRegistry {
	return StaticRegistry{}
}

// StaticStatement pretty-prints to a fixed document.
type StaticStatement struct{ Doc markup.Markup }

func (s StaticStatement) PrettyPrint() markup.Markup { return s.Doc }

// StaticValue renders to a fixed document regardless of arguments.
type StaticValue struct{ Doc markup.Markup }

func (v StaticValue) ToMarkup(core.Statement, core.DimensionRegistry, bool, bool) markup.Markup {
	return v.Doc
}

// StaticRegistry knows no dimension names.
type StaticRegistry struct{}

func (StaticRegistry) DimensionName(map[string]int) (string, bool) { return "", false }
