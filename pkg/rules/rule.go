// Package rules holds the hand-curated detection rule catalogs: one for
// HTML trees, one for plain-text lines. Rule order is part of the engine's
// contract — client-specific fingerprints come first, generic structural
// fallbacks next, language-pattern fallbacks last. Reordering entries
// changes behavior and must be treated as a breaking change.
package rules

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dtnitsch/mail-unquote/models"
	"github.com/dtnitsch/mail-unquote/pkg/dom"
	"github.com/dtnitsch/mail-unquote/pkg/patterns"
)

// Region is a detected quote region in an HTML tree: a contiguous run of
// siblings, in document order.
type Region struct {
	Nodes    []*html.Node
	Boundary models.Boundary
	Rule     string
}

// LineRegion is a detected quote region in a plain-text document: the
// half-open line range [Start, End).
type LineRegion struct {
	Start    int
	End      int
	Boundary models.Boundary
	Rule     string
}

// DetectFunc turns a located candidate into the true region boundary. A nil
// result means the candidate does not actually mark a quote and the engine
// moves on.
type DetectFunc func(t *dom.Tree, candidate *html.Node, lib *patterns.Library) []*html.Node

// Rule pairs a structural locator (a CSS selector) with an optional
// detector. A nil Detect means the candidate itself is the whole region.
type Rule struct {
	Name     string
	Selector string
	Boundary models.Boundary
	Detect   DetectFunc

	// Classify re-reads the boundary kind from the region's text, for
	// markers that clients use for both replies and forwards.
	Classify bool
}

// TextRule locates a boundary line in a plain-text document. Locate returns
// the boundary line index or -1; the region always runs to the last line.
type TextRule struct {
	Name     string
	Boundary models.Boundary
	Locate   func(lines []string, lib *patterns.Library) int
}

// TrailingSiblings collects the marker and everything after it in its
// container. Used by the boundary-marker family of rules: the marker is a
// point, and all content following it is quoted.
func TrailingSiblings(t *dom.Tree, candidate *html.Node, lib *patterns.Library) []*html.Node {
	return dom.CollectFollowing(candidate)
}

// ParentOf substitutes the candidate's parent for the candidate: the
// candidate only marks its container. When the parent is itself a sole
// child, its own parent is the real container.
func ParentOf(t *dom.Tree, candidate *html.Node, lib *patterns.Library) []*html.Node {
	p := candidate.Parent
	if p == nil || p == t.Root {
		return nil
	}
	if soleChild(p, candidate) && p.Parent != nil && p.Parent != t.Root {
		p = p.Parent
	}
	return []*html.Node{p}
}

func soleChild(parent, child *html.Node) bool {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c == child {
			continue
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		return false
	}
	return true
}

// LeadingSeparator walks backward from the candidate over blank siblings
// looking for an explicit separator. If one is found the region starts at
// the separator and runs to the end of the container; if not, the candidate
// does not match and detection moves to the next rule.
func LeadingSeparator(isSep func(*html.Node) bool) DetectFunc {
	return func(t *dom.Tree, candidate *html.Node, lib *patterns.Library) []*html.Node {
		for s := candidate.PrevSibling; s != nil; s = s.PrevSibling {
			if blank(s) {
				continue
			}
			if isSep(s) {
				return dom.CollectFollowing(s)
			}
			return nil
		}
		return nil
	}
}

// LeadingAttribution includes the preceding sibling when its text is a
// recognized reply header ("On ..., ... wrote:"), so the attribution line
// folds together with the quote it introduces. Without one, the candidate
// does not match.
func LeadingAttribution(t *dom.Tree, candidate *html.Node, lib *patterns.Library) []*html.Node {
	for s := candidate.PrevSibling; s != nil; s = s.PrevSibling {
		if blank(s) {
			continue
		}
		if lib.MatchReply(dom.Text(s)) != nil {
			return dom.CollectFollowing(s)
		}
		return nil
	}
	return nil
}

// StyleThreshold gates a detector on the candidate's inline border style:
// only a thin solid top border, the kind Outlook draws above an embedded
// reply header, counts as a separator. See style.go.
func StyleThreshold(next DetectFunc) DetectFunc {
	return func(t *dom.Tree, candidate *html.Node, lib *patterns.Library) []*html.Node {
		if !separatorBorder(dom.Attr(candidate, "style")) {
			return nil
		}
		return next(t, candidate, lib)
	}
}

// ContentPattern accepts a candidate only when its first content line is a
// recognized reply or forward header, then collects the trailing siblings.
// This is the last-resort family: it handles messages with no structural
// marker at all.
func ContentPattern(forward bool) DetectFunc {
	return func(t *dom.Tree, candidate *html.Node, lib *patterns.Library) []*html.Node {
		lines := strings.Split(dom.Text(candidate), "\n")
		first := -1
		for i, line := range lines {
			if strings.TrimSpace(line) != "" {
				first = i
				break
			}
		}
		if first < 0 {
			return nil
		}
		var match *patterns.Entry
		if forward {
			match = lib.ForwardAt(lines, first)
		} else {
			match = lib.ReplyAt(lines, first)
		}
		if match == nil {
			return nil
		}
		return dom.CollectFollowing(candidate)
	}
}

func blank(n *html.Node) bool {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data) == ""
	}
	return n.Type == html.ElementNode && n.DataAtom == atom.Br
}

func isHr(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Hr
}

// isTextSeparator recognizes a node whose text is a dashed separator line.
func isTextSeparator(n *html.Node) bool {
	return strings.HasPrefix(strings.TrimSpace(dom.Text(n)), "---")
}
