// Package dom provides the uniform document model the detection engine
// operates on: a leniently parsed HTML fragment tree, or a plain-text line
// sequence. Parsing never fails on malformed input; whatever golang.org/x/net/html
// can coerce into a tree is what downstream rules see.
package dom

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FoldClass marks the collapsible wrapper the transformer inserts around a
// quote region. Detection skips anything already inside one, which is what
// makes the pipeline idempotent on its own output.
const FoldClass = "unquote-fold"

// Tree is a parsed HTML body fragment. Root is a synthetic body element that
// owns the fragment's top-level nodes; it is never rendered itself.
type Tree struct {
	Root *html.Node
	doc  *goquery.Document
}

// ParseHTML parses raw markup as a body fragment. Unbalanced or unknown tags
// degrade to best-effort nesting; the function never returns an error.
func ParseHTML(raw string) *Tree {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(raw), body)
	if err != nil {
		// ParseFragment only errors on reader failures, which a string
		// reader cannot produce. Degrade to an empty tree regardless.
		nodes = nil
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return FromNode(body)
}

// FromNode builds a Tree rooted at an existing element, used when the
// transformer recurses into a detected region.
func FromNode(root *html.Node) *Tree {
	return &Tree{Root: root, doc: goquery.NewDocumentFromNode(root)}
}

// Find returns the nodes matching a CSS selector, in document order. The
// root itself is never matched, only its descendants.
func (t *Tree) Find(selector string) []*html.Node {
	return t.doc.Find(selector).Nodes
}

// Render serializes the fragment back to markup. Content untouched by the
// transformer round-trips through ParseHTML/Render unchanged.
func (t *Tree) Render() string {
	var buf bytes.Buffer
	for c := t.Root.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// RenderNodes serializes a node list in order.
func RenderNodes(nodes []*html.Node) string {
	var buf bytes.Buffer
	for _, n := range nodes {
		_ = html.Render(&buf, n)
	}
	return buf.String()
}

// Contains reports whether n is root or a descendant of root. The engine
// uses it to filter detector results that point outside the document.
func Contains(root, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// Text flattens the text content of a node, in document order.
func Text(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		// <br> separates lines in flattened text so line-anchored
		// patterns still see line starts.
		if n.Type == html.ElementNode && (n.DataAtom == atom.Br || isBlock(n)) {
			buf.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

func isBlock(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Div, atom.P, atom.Blockquote, atom.Pre, atom.Table, atom.Tr, atom.Ul, atom.Ol, atom.Li, atom.Hr:
		return true
	}
	return false
}

// Attr returns the value of an attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether an element carries the given class token.
func HasClass(n *html.Node, class string) bool {
	for _, token := range strings.Fields(Attr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

// CollectFollowing returns n plus every following sibling, in order.
func CollectFollowing(n *html.Node) []*html.Node {
	var out []*html.Node
	for ; n != nil; n = n.NextSibling {
		out = append(out, n)
	}
	return out
}

// isEmptyText reports whether a node is a whitespace-only text node.
func isEmptyText(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// HasContentBefore reports whether any visible content precedes n in
// document order under root.
func HasContentBefore(root, n *html.Node) bool {
	found := false
	var walk func(*html.Node) bool
	walk = func(cur *html.Node) bool {
		if cur == n {
			return false
		}
		if cur != root && cur.Type == html.TextNode && strings.TrimSpace(cur.Data) != "" {
			found = true
			return false
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(root)
	return found
}

// HasContentAfter reports whether any visible content follows the last node
// of a sibling run under root.
func HasContentAfter(root, last *html.Node) bool {
	for n := last; n != nil && n != root; n = n.Parent {
		for s := n.NextSibling; s != nil; s = s.NextSibling {
			if strings.TrimSpace(Text(s)) != "" {
				return true
			}
		}
	}
	return false
}

// SiblingRun trims a node list down to the contiguous run of siblings
// starting at the first node. Nodes that do not share the first node's
// parent, or that break the run, are dropped. Whitespace-only text nodes
// inside the run are kept so serialization stays byte-stable.
func SiblingRun(nodes []*html.Node) []*html.Node {
	if len(nodes) == 0 {
		return nil
	}
	first := nodes[0]
	wanted := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		wanted[n] = true
	}
	run := []*html.Node{first}
	for s := first.NextSibling; s != nil; s = s.NextSibling {
		if wanted[s] || isEmptyText(s) {
			run = append(run, s)
			continue
		}
		break
	}
	// Drop a trailing whitespace node that was only kept to bridge a gap.
	for len(run) > 0 && isEmptyText(run[len(run)-1]) {
		run = run[:len(run)-1]
	}
	return run
}

// Wrap inserts wrapper in place of a contiguous sibling run and moves the
// run inside it. The run must be non-empty siblings in order.
func Wrap(wrapper *html.Node, run []*html.Node) {
	parent := run[0].Parent
	parent.InsertBefore(wrapper, run[0])
	for _, n := range run {
		parent.RemoveChild(n)
		wrapper.AppendChild(n)
	}
}

// NewElement builds an element node. Attributes keep the order given so
// serialization is deterministic.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}
