// Package unquote is the public entry point: give it the HTML and/or
// plain-text body of one message and it folds the quoted part — the
// "On DATE, NAME wrote:" tail, a client marker, a forwarded thread — into a
// collapsible region, leaving everything the author actually wrote alone.
//
// The two representations run through completely independent pipelines: a
// message's HTML body and its text/plain alternative are not guaranteed to
// be structurally parallel, so nothing detected in one ever influences the
// other.
package unquote

import (
	"github.com/dtnitsch/mail-unquote/models"
	"github.com/dtnitsch/mail-unquote/pkg/dom"
	"github.com/dtnitsch/mail-unquote/pkg/engine"
	"github.com/dtnitsch/mail-unquote/pkg/transform"
)

// Unquoter runs the detection/extraction pipeline over one message body.
// Construct one per message; the heavy parts (rule catalog, pattern
// library) are process-wide and shared.
type Unquoter struct {
	htmlContent string
	textContent string
	opts        models.Options

	engine      *engine.Engine
	transformer *transform.Transformer
}

// defaultEngine is built once; it is read-only and safe to share.
var defaultEngine = engine.New()

// New builds an Unquoter for a message. Either content string may be empty
// when the message lacks that representation. Callers pass Options with
// Depth 0.
func New(htmlContent, textContent string, opts models.Options) *Unquoter {
	return &Unquoter{
		htmlContent: htmlContent,
		textContent: textContent,
		opts:        opts,
		engine:      defaultEngine,
		transformer: transform.New(defaultEngine),
	}
}

// HTML runs the pipeline over the HTML representation. When nothing
// matches, or the fold is suppressed for a pure forward, Content is the
// input unchanged.
func (u *Unquoter) HTML() models.Result {
	if u.htmlContent == "" {
		return models.Result{}
	}
	t := dom.ParseHTML(u.htmlContent)
	region := u.engine.DetectHTML(t)
	if region == nil {
		return models.Result{Content: u.htmlContent}
	}
	depth, applied := u.transformer.ApplyHTML(t, region, u.opts)
	if !applied {
		return models.Result{
			Content:  u.htmlContent,
			Rule:     region.Rule,
			Boundary: region.Boundary,
		}
	}
	return models.Result{
		Content:  t.Render(),
		Quoted:   dom.RenderNodes(region.Nodes),
		Rule:     region.Rule,
		Boundary: region.Boundary,
		Depth:    depth,
	}
}

// Text runs the pipeline over the plain-text representation. Content is
// the authored part above the boundary; Quoted is the boundary line
// through the end of the message.
func (u *Unquoter) Text() models.Result {
	if u.textContent == "" {
		return models.Result{}
	}
	l := dom.ParseText(u.textContent)
	region := u.engine.DetectText(l)
	if region == nil {
		return models.Result{Content: u.textContent}
	}
	depth, applied := u.transformer.ApplyText(l, region, u.opts)
	if !applied {
		return models.Result{
			Content:  u.textContent,
			Rule:     region.Rule,
			Boundary: region.Boundary,
		}
	}
	fold := l.Folds[0]
	return models.Result{
		Content:  l.Slice(0, fold.Start),
		Quoted:   l.Slice(fold.Start, fold.End),
		Rule:     region.Rule,
		Boundary: region.Boundary,
		Depth:    depth,
	}
}
