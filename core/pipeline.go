package core

import (
	"strings"

	"github.com/hupe1980/numbridge/markup"
	"github.com/hupe1980/numbridge/render"
)

// Pipeline assembles the reply for one evaluation: every statement in its
// pretty-printed form, then the result.
type Pipeline struct{}

// Documents returns the documents of a reply in rendering order. The result
// document is empty for definitions and procedure calls.
func (Pipeline) Documents(statements []Statement, value Value, registry DimensionRegistry) []markup.Markup {
	docs := make([]markup.Markup, 0, len(statements)+1)
	for _, st := range statements {
		docs = append(docs, st.PrettyPrint())
	}
	var last Statement
	if len(statements) > 0 {
		last = statements[len(statements)-1]
	}
	if value != nil {
		docs = append(docs, value.ToMarkup(last, registry, true, true))
	}
	return docs
}

// Render formats the documents with r, concatenates them and trims
// surrounding whitespace.
func (p Pipeline) Render(statements []Statement, value Value, registry DimensionRegistry, r render.Renderer) string {
	var b strings.Builder
	for _, doc := range p.Documents(statements, value, registry) {
		b.WriteString(r.Render(doc, false))
	}
	return strings.TrimSpace(b.String())
}

// RenderPrinted formats captured print output, one string per document.
func (Pipeline) RenderPrinted(docs []markup.Markup, r render.Renderer) []string {
	if len(docs) == 0 {
		return nil
	}
	out := make([]string, len(docs))
	for i, doc := range docs {
		out[i] = r.Render(doc, false)
	}
	return out
}
