// Package engine walks the rule catalogs against a parsed document and
// returns the first non-empty match. Evaluation is strictly in catalog
// order, candidates in document order; once a rule/candidate pair produces
// a region, later rules are never consulted. That fixed priority is the
// central contract here: it lets a known client's private marker pre-empt
// generic language-pattern guessing, which is far more prone to false
// positives.
package engine

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/dtnitsch/mail-unquote/models"
	"github.com/dtnitsch/mail-unquote/pkg/dom"
	"github.com/dtnitsch/mail-unquote/pkg/patterns"
	"github.com/dtnitsch/mail-unquote/pkg/rules"
)

// Engine evaluates detection rules. It is read-only after construction and
// safe for concurrent use.
type Engine struct {
	lib       *patterns.Library
	htmlRules []rules.Rule
	textRules []rules.TextRule
}

// New builds an engine over the default catalogs and pattern library.
func New() *Engine {
	return &Engine{
		lib:       patterns.Default,
		htmlRules: rules.Catalog(),
		textRules: rules.TextCatalog(),
	}
}

// Library exposes the pattern library the engine consults.
func (e *Engine) Library() *patterns.Library { return e.lib }

// DetectHTML returns the first quote region found in the tree, or nil when
// no rule matches.
func (e *Engine) DetectHTML(t *dom.Tree) *rules.Region {
	return e.DetectHTMLSkipping(t, nil)
}

// DetectHTMLSkipping is DetectHTML with a set of candidate nodes to ignore.
// The transformer passes the nodes of the region it is recursing into, so a
// boundary marker never re-detects itself one level down.
func (e *Engine) DetectHTMLSkipping(t *dom.Tree, skip map[*html.Node]bool) *rules.Region {
	for _, rule := range e.htmlRules {
		for _, candidate := range t.Find(rule.Selector) {
			if skip[candidate] || insideFold(t.Root, candidate) {
				continue
			}
			nodes := []*html.Node{candidate}
			if rule.Detect != nil {
				nodes = rule.Detect(t, candidate, e.lib)
			}
			nodes = e.filterRegion(t, nodes)
			if len(nodes) == 0 {
				continue
			}
			boundary := rule.Boundary
			if rule.Classify {
				if b := e.lib.Classify(regionText(nodes)); b != models.BoundaryUnknown {
					boundary = b
				}
			}
			return &rules.Region{Nodes: nodes, Boundary: boundary, Rule: rule.Name}
		}
	}
	return nil
}

// DetectText returns the first quote region found in a line document, or
// nil when no rule matches.
func (e *Engine) DetectText(l *dom.Lines) *rules.LineRegion {
	lines := l.All()
	for _, rule := range e.textRules {
		if i := rule.Locate(lines, e.lib); i >= 0 && i < len(lines) {
			return &rules.LineRegion{
				Start:    i,
				End:      len(lines),
				Boundary: rule.Boundary,
				Rule:     rule.Name,
			}
		}
	}
	return nil
}

// filterRegion defends against buggy detectors: nodes not actually present
// in the document are dropped, and what remains is normalized to the
// contiguous sibling run starting at the first node. An empty result means
// the rule is treated as non-matching.
func (e *Engine) filterRegion(t *dom.Tree, nodes []*html.Node) []*html.Node {
	present := nodes[:0:0]
	for _, n := range nodes {
		if n != nil && n != t.Root && dom.Contains(t.Root, n) {
			present = append(present, n)
		}
	}
	return dom.SiblingRun(present)
}

// regionText flattens a whole region for boundary classification. The
// marker is not always the first node (a separator hr may lead the run).
func regionText(nodes []*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(dom.Text(n))
		sb.WriteString("\n")
	}
	return sb.String()
}

// insideFold reports whether n sits inside a fold wrapper strictly below
// the detection root. Already-folded content is never re-detected at the
// same level; recursion re-enters it with the wrapper as the new root.
func insideFold(root, n *html.Node) bool {
	for ; n != nil && n != root; n = n.Parent {
		if dom.HasClass(n, dom.FoldClass) {
			return true
		}
	}
	return false
}
