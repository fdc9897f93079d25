package core

import (
	"sync"

	"github.com/hupe1980/numbridge/markup"
)

// CaptureSink collects printed documents in emission order.
type CaptureSink struct {
	mu   sync.Mutex
	docs []markup.Markup
}

// Print appends m. It matches InterpreterSettings.Print.
func (c *CaptureSink) Print(m markup.Markup) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = append(c.docs, m)
}

// Documents returns a copy of the captured documents.
func (c *CaptureSink) Documents() []markup.Markup {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]markup.Markup, len(c.docs))
	copy(out, c.docs)
	return out
}

// Len returns the number of captured documents.
func (c *CaptureSink) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

// Reset drops everything captured so far.
func (c *CaptureSink) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = nil
}

// Settings returns interpreter settings that print into the sink.
func (c *CaptureSink) Settings() *InterpreterSettings {
	return &InterpreterSettings{Print: c.Print}
}
