package render

import (
	"fmt"
	"strings"

	"github.com/hupe1980/numbridge/markup"
)

// Target selects an output encoding.
type Target string

const (
	// TargetPlain renders span texts without decoration.
	TargetPlain Target = "plain"
	// TargetIRC renders with IRC control codes.
	TargetIRC Target = "irc"
	// TargetANSI renders with ANSI terminal escape sequences.
	TargetANSI Target = "ansi"
)

// Targets lists every supported target.
func Targets() []Target { return []Target{TargetPlain, TargetIRC, TargetANSI} }

// String returns the target name.
func (t Target) String() string { return string(t) }

// ParseTarget resolves a user supplied target name (case insensitive).
func ParseTarget(name string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(name)))
	switch t {
	case TargetPlain, TargetIRC, TargetANSI:
		return t, nil
	}
	return "", fmt.Errorf("unknown render target: %q", name)
}

// Renderer formats a markup document into a flat string.
type Renderer interface {
	// Render renders m. With multiline set the document is indented and
	// re-indented after every newline.
	Render(m markup.Markup, multiline bool) string
	// Target reports which target the renderer produces.
	Target() Target
}

// ForTarget returns the renderer for t. Unknown targets fall back to Plain
// together with an error describing the fallback.
func ForTarget(t Target) (Renderer, error) {
	switch t {
	case TargetPlain:
		return Plain{}, nil
	case TargetIRC:
		return IRC{}, nil
	case TargetANSI:
		return NewANSI(), nil
	}
	return Plain{}, fmt.Errorf("unknown render target %q, using %s", t, TargetPlain)
}

// MustForTarget is like ForTarget but panics on unknown targets.
func MustForTarget(t Target) Renderer {
	r, err := ForTarget(t)
	if err != nil {
		panic(err)
	}
	return r
}

// String renders m with the renderer for t on a single line.
func String(t Target, m markup.Markup) string {
	r, _ := ForTarget(t)
	return r.Render(m, false)
}
