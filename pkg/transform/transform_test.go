package transform

import (
	"strings"
	"testing"

	"github.com/dtnitsch/mail-unquote/models"
	"github.com/dtnitsch/mail-unquote/pkg/dom"
	"github.com/dtnitsch/mail-unquote/pkg/engine"
)

func newTransformer() (*engine.Engine, *Transformer) {
	e := engine.New()
	return e, New(e)
}

func TestApplyHTMLWrapsRegion(t *testing.T) {
	e, tr := newTransformer()
	tree := dom.ParseHTML(`<div>Hi</div><div class="gmail_quote">old text</div>`)
	region := e.DetectHTML(tree)
	if region == nil {
		t.Fatal("no region detected")
	}

	depth, applied := tr.ApplyHTML(tree, region, models.Options{Mode: models.ModeWrap})
	if !applied {
		t.Fatal("ApplyHTML() not applied, want fold")
	}
	if depth != 0 {
		t.Errorf("depth = %d, want 0", depth)
	}
	out := tree.Render()
	if !strings.Contains(out, `class="`+dom.FoldClass+`"`) {
		t.Errorf("output missing fold wrapper: %q", out)
	}
	if !strings.Contains(out, `data-quote-depth="0"`) {
		t.Errorf("output missing depth attribute: %q", out)
	}
	if !strings.HasPrefix(out, "<div>Hi</div>") {
		t.Errorf("authored content disturbed: %q", out)
	}
}

func TestApplyHTMLIdempotent(t *testing.T) {
	e, tr := newTransformer()
	tree := dom.ParseHTML(`<div>Hi</div><div class="gmail_quote">old text</div>`)
	region := e.DetectHTML(tree)
	if _, applied := tr.ApplyHTML(tree, region, models.Options{}); !applied {
		t.Fatal("first apply failed")
	}
	once := tree.Render()

	// Running detection over the transformed output must find nothing new.
	again := dom.ParseHTML(once)
	if region := e.DetectHTML(again); region != nil {
		t.Fatalf("re-detection matched rule %s on folded output", region.Rule)
	}
	if again.Render() != once {
		t.Errorf("reparse of folded output changed it:\n%q\n%q", once, again.Render())
	}
}

func TestApplyHTMLNestedQuotes(t *testing.T) {
	e, tr := newTransformer()
	raw := `<div>top</div>` +
		`<div class="gmail_quote"><div>middle</div>` +
		`<div class="gmail_quote"><div>deep</div></div></div>`
	tree := dom.ParseHTML(raw)
	region := e.DetectHTML(tree)
	depth, applied := tr.ApplyHTML(tree, region, models.Options{})
	if !applied {
		t.Fatal("apply failed")
	}
	if depth != 1 {
		t.Errorf("depth = %d, want 1", depth)
	}

	out := tree.Render()
	if !strings.Contains(out, `data-quote-depth="0"`) || !strings.Contains(out, `data-quote-depth="1"`) {
		t.Errorf("nested quote not folded at depth 1: %q", out)
	}
}

func TestApplyHTMLQuoteBodyIsOneLevel(t *testing.T) {
	// The attribution line inside a gmail_quote is that quote's own marker.
	// Recursion over the folded region must not re-read it as a deeper
	// level: nothing authored sits above it.
	e, tr := newTransformer()
	raw := `<div>Hi</div>` +
		`<div class="gmail_quote"><div class="gmail_attr">On Mon, Jan 2, 2024 Jane wrote:</div>` +
		`<blockquote>old text</blockquote></div>`
	tree := dom.ParseHTML(raw)
	region := e.DetectHTML(tree)
	if region == nil {
		t.Fatal("no region detected")
	}
	depth, applied := tr.ApplyHTML(tree, region, models.Options{})
	if !applied {
		t.Fatal("apply failed")
	}
	if depth != 0 {
		t.Errorf("depth = %d, want 0", depth)
	}
	if out := tree.Render(); strings.Contains(out, `data-quote-depth="1"`) {
		t.Errorf("single-level quote folded twice: %q", out)
	}
}

func TestApplyHTMLIgnoreFirstForward(t *testing.T) {
	e, tr := newTransformer()
	opts := models.Options{IgnoreFirstForward: true}

	// Nothing authored: the whole message is one forwarded thread.
	pure := dom.ParseHTML(`<div class="moz-forward-container"><div>forwarded</div></div>`)
	region := e.DetectHTML(pure)
	if region == nil {
		t.Fatal("no region detected in pure forward")
	}
	if _, applied := tr.ApplyHTML(pure, region, opts); applied {
		t.Error("pure forward was folded, want suppression")
	}

	// With authored text above, the forward folds as usual.
	mixed := dom.ParseHTML(`<p>see below</p><div class="moz-forward-container"><div>forwarded</div></div>`)
	region = e.DetectHTML(mixed)
	if region == nil {
		t.Fatal("no region detected in mixed message")
	}
	if _, applied := tr.ApplyHTML(mixed, region, opts); !applied {
		t.Error("forward with authored lead-in was suppressed, want fold")
	}
}

func TestApplyHTMLForwardSuppressionOnlyAtDepthZero(t *testing.T) {
	e, tr := newTransformer()
	opts := models.Options{IgnoreFirstForward: true, Depth: 1}
	tree := dom.ParseHTML(`<div class="moz-forward-container"><div>forwarded</div></div>`)
	region := e.DetectHTML(tree)
	if _, applied := tr.ApplyHTML(tree, region, opts); !applied {
		t.Error("suppression applied at depth 1, want fold")
	}
}

func TestApplyHTMLReplySuppressionDoesNotApply(t *testing.T) {
	// Suppression is strictly for forwards; a message that is entirely one
	// reply quote still folds.
	e, tr := newTransformer()
	tree := dom.ParseHTML(`<blockquote type="cite">quoted</blockquote>`)
	region := e.DetectHTML(tree)
	if region == nil {
		t.Fatal("no region detected")
	}
	if _, applied := tr.ApplyHTML(tree, region, models.Options{IgnoreFirstForward: true}); !applied {
		t.Error("reply region was suppressed, want fold")
	}
}

func TestApplyTextTagsFold(t *testing.T) {
	// The "> "-prefixed run right under the attribution is the quote's own
	// body, not a nested level: exactly one fold, at depth 0.
	e, tr := newTransformer()
	l := dom.ParseText("Thanks!\n\nOn Mon, Jan 2, 2024 at 1:00 PM Jane wrote:\n> a\n> b")
	region := e.DetectText(l)
	if region == nil {
		t.Fatal("no region detected")
	}
	depth, applied := tr.ApplyText(l, region, models.Options{})
	if !applied {
		t.Fatal("ApplyText() not applied, want fold")
	}
	if depth != 0 {
		t.Errorf("depth = %d, want 0", depth)
	}
	if len(l.Folds) != 1 {
		t.Fatalf("folds = %d, want 1", len(l.Folds))
	}
	fold := l.Folds[0]
	if fold.Start != 2 || fold.End != l.Len() || fold.Depth != 0 {
		t.Errorf("fold = %+v, want start 2, end %d, depth 0", fold, l.Len())
	}
}

func TestApplyTextIgnoreFirstForward(t *testing.T) {
	e, tr := newTransformer()
	l := dom.ParseText("---------- Forwarded message ---------\nFrom: X <x@example.com>\n\nbody")
	region := e.DetectText(l)
	if region == nil {
		t.Fatal("no region detected")
	}
	if _, applied := tr.ApplyText(l, region, models.Options{IgnoreFirstForward: true}); applied {
		t.Error("pure forward was folded, want suppression")
	}
	if len(l.Folds) != 0 {
		t.Errorf("folds = %d, want 0", len(l.Folds))
	}

	if _, applied := tr.ApplyText(l, region, models.Options{}); !applied {
		t.Error("forward not folded without the flag")
	}
}

func TestApplyTextDepthCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("hello")
	for i := 0; i < 12; i++ {
		b.WriteString("\nOn Mon, Jan 2, 2024 Bob wrote:\nsome text")
	}

	e, tr := newTransformer()
	l := dom.ParseText(b.String())
	region := e.DetectText(l)
	if region == nil {
		t.Fatal("no region detected")
	}
	depth, applied := tr.ApplyText(l, region, models.Options{})
	if !applied {
		t.Fatal("apply failed")
	}
	if depth != MaxDepth-1 {
		t.Errorf("depth = %d, want %d", depth, MaxDepth-1)
	}
	if len(l.Folds) != MaxDepth {
		t.Errorf("folds = %d, want recursion capped at %d", len(l.Folds), MaxDepth)
	}
	for i, fold := range l.Folds {
		if fold.Depth != i {
			t.Errorf("fold %d has depth %d", i, fold.Depth)
		}
	}
}

func TestApplyHTMLNilRegion(t *testing.T) {
	_, tr := newTransformer()
	tree := dom.ParseHTML("<div>x</div>")
	if _, applied := tr.ApplyHTML(tree, nil, models.Options{}); applied {
		t.Error("ApplyHTML(nil) = true, want false")
	}
}
