// Package transform folds a detected quote region into a collapsible
// wrapper and recurses into the region's content for nested quotes (a
// forward of a forward, a long reply chain), up to a fixed depth cap.
package transform

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/dtnitsch/mail-unquote/models"
	"github.com/dtnitsch/mail-unquote/pkg/dom"
	"github.com/dtnitsch/mail-unquote/pkg/engine"
	"github.com/dtnitsch/mail-unquote/pkg/rules"
)

// MaxDepth bounds recursion into nested quote levels. Anything deeper is
// left unfolded inside the deepest wrapper.
const MaxDepth = 10

// Transformer applies regions to documents. Stateless; safe for concurrent
// use.
type Transformer struct {
	engine *engine.Engine
}

// New builds a transformer that re-runs the given engine when recursing.
func New(e *engine.Engine) *Transformer {
	return &Transformer{engine: e}
}

// ApplyHTML folds the region into the tree. It returns the deepest nesting
// level folded and whether any fold was applied. A pure forward — forward
// boundary, nothing authored before or after the region — is left untouched
// at depth 0 when Options.IgnoreFirstForward is set: there is no reply text
// to show above a fold.
func (tr *Transformer) ApplyHTML(t *dom.Tree, region *rules.Region, opts models.Options) (int, bool) {
	if region == nil || len(region.Nodes) == 0 {
		return 0, false
	}
	if opts.Depth == 0 && opts.IgnoreFirstForward &&
		region.Boundary == models.BoundaryForward && spansWhole(t, region) {
		return 0, false
	}
	return tr.foldHTMLRegion(t, region, opts.Depth), true
}

func (tr *Transformer) foldHTMLRegion(t *dom.Tree, region *rules.Region, depth int) int {
	wrapper := dom.NewElement("div",
		html.Attribute{Key: "class", Val: dom.FoldClass},
		html.Attribute{Key: "data-quote-depth", Val: strconv.Itoa(depth)},
		html.Attribute{Key: "data-boundary", Val: region.Boundary.String()},
	)
	dom.Wrap(wrapper, region.Nodes)

	if depth+1 >= MaxDepth {
		return depth
	}

	// Recurse into the region's own content. The region's nodes are
	// excluded as candidates so a boundary marker never re-detects itself;
	// anything strictly inside them is fair game.
	skip := make(map[*html.Node]bool, len(region.Nodes))
	for _, n := range region.Nodes {
		skip[n] = true
	}
	sub := dom.FromNode(wrapper)
	nested := tr.engine.DetectHTMLSkipping(sub, skip)
	if nested == nil {
		return depth
	}
	// A boundary with nothing above it inside the region is this region's
	// own marker read back, not a deeper quote level.
	if !dom.HasContentBefore(sub.Root, nested.Nodes[0]) {
		return depth
	}
	return tr.foldHTMLRegion(sub, nested, depth+1)
}

// ApplyText tags the region as a fold range. It returns the deepest nesting
// level folded and whether any fold was applied, with the same pure-forward
// suppression as ApplyHTML.
func (tr *Transformer) ApplyText(l *dom.Lines, region *rules.LineRegion, opts models.Options) (int, bool) {
	if region == nil || region.Start >= region.End {
		return 0, false
	}
	if opts.Depth == 0 && opts.IgnoreFirstForward &&
		region.Boundary == models.BoundaryForward && textSpansWhole(l, region) {
		return 0, false
	}
	return tr.foldTextRegion(l, region, opts.Depth), true
}

func (tr *Transformer) foldTextRegion(l *dom.Lines, region *rules.LineRegion, depth int) int {
	l.Folds = append(l.Folds, dom.Fold{
		Start:    region.Start,
		End:      region.End,
		Depth:    depth,
		Boundary: region.Boundary,
		Rule:     region.Rule,
	})

	if depth+1 >= MaxDepth {
		return depth
	}

	// Recurse past the boundary line so it cannot re-detect itself.
	from := region.Start + 1
	if from >= region.End {
		return depth
	}
	sub := dom.FromLines(l.All()[from:region.End])
	nested := tr.engine.DetectText(sub)
	if nested == nil {
		return depth
	}
	// A boundary on the first content line of the region body is this
	// region's own quoted text (a "> "-prefixed run right under the
	// attribution), not a deeper quote level.
	if first := sub.FirstContent(); first < 0 || nested.Start <= first {
		return depth
	}
	nested.Start += from
	nested.End = region.End
	return tr.foldTextRegion(l, nested, depth+1)
}

// spansWhole reports whether nothing authored precedes or follows the
// region: the message is the region.
func spansWhole(t *dom.Tree, region *rules.Region) bool {
	first := region.Nodes[0]
	last := region.Nodes[len(region.Nodes)-1]
	return !dom.HasContentBefore(t.Root, first) && !dom.HasContentAfter(t.Root, last)
}

func textSpansWhole(l *dom.Lines, region *rules.LineRegion) bool {
	first := l.FirstContent()
	return first < 0 || first >= region.Start
}
