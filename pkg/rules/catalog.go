package rules

import "github.com/dtnitsch/mail-unquote/models"

// Catalog returns the HTML detection rules in priority order: the most
// distinctive client fingerprints first, generic structural fallbacks next,
// language-pattern fallbacks last. The first rule whose first candidate
// yields a non-empty region wins.
func Catalog() []Rule {
	return []Rule{
		// Gmail wraps the quoted thread in div.gmail_quote, with the
		// attribution line in div.gmail_attr inside it. The attribution
		// only marks its container.
		{Name: "gmail-attribution", Selector: "div.gmail_attr", Detect: ParentOf, Classify: true},
		{Name: "gmail-quote", Selector: "div.gmail_quote", Classify: true},

		// Outlook (OWA and desktop) inserts an hr before the
		// From:/Sent:/To:/Subject: header div. When the hr survived
		// sanitizing it belongs to the fold; without it the header div is
		// still a reliable boundary on its own.
		{Name: "outlook-separator", Selector: "div#divRplyFwdMsg",
			Detect: LeadingSeparator(isHr), Classify: true},
		// Some relays flatten the hr into a "-----Original Message-----"
		// text block; the dashed block then belongs to the fold too.
		{Name: "outlook-dash-separator", Selector: "div#divRplyFwdMsg",
			Detect: LeadingSeparator(isTextSeparator), Classify: true},
		{Name: "outlook-reply-header", Selector: "div#divRplyFwdMsg",
			Detect: TrailingSiblings, Classify: true},
		{Name: "outlook-appendonsend", Selector: "div#appendonsend",
			Detect: TrailingSiblings, Boundary: models.BoundaryReply},
		{Name: "outlook-legacy-src", Selector: "div#OLK_SRC_BODY_SECTION",
			Boundary: models.BoundaryReply},
		// The Word-based composers draw the separator as a thin solid
		// top border instead of tagging it.
		{Name: "outlook-styled-border",
			Selector: "div[style*='border-top'], p[style*='border-top']",
			Detect:   StyleThreshold(TrailingSiblings), Classify: true},

		{Name: "thunderbird-cite-prefix", Selector: "div.moz-cite-prefix",
			Detect: TrailingSiblings, Boundary: models.BoundaryReply},
		{Name: "thunderbird-forward", Selector: "div.moz-forward-container",
			Boundary: models.BoundaryForward},

		{Name: "yahoo-quoted", Selector: "div.yahoo_quoted", Classify: true},
		{Name: "protonmail-quote", Selector: "div.protonmail_quote", Classify: true},
		{Name: "tutanota-quote", Selector: "blockquote.tutanota_quote",
			Boundary: models.BoundaryReply},
		{Name: "zimbra-divider", Selector: "hr[data-marker='__DIVIDER__']",
			Detect: TrailingSiblings, Boundary: models.BoundaryReply},
		{Name: "front-quote", Selector: "div.front-blockquote",
			Boundary: models.BoundaryReply},
		{Name: "spark-reply", Selector: "div[name='messageReplySection']",
			Boundary: models.BoundaryReply},
		{Name: "netease-reply", Selector: "div#isReplyContent",
			Boundary: models.BoundaryReply},
		{Name: "netease-forward", Selector: "div#isForwardContent",
			Boundary: models.BoundaryForward},

		// Apple Mail and most RFC 1896 descendants quote with
		// blockquote[type=cite]. With a recognizable attribution sibling
		// the fold starts there; a bare cite blockquote folds alone.
		{Name: "apple-attributed-cite", Selector: "blockquote[type='cite']",
			Detect: LeadingAttribution, Boundary: models.BoundaryReply},
		{Name: "cite-blockquote", Selector: "blockquote[type='cite']",
			Boundary: models.BoundaryReply},

		// Last resort: no structural marker at all, only a localized
		// header sentence. Forward patterns first so ignoreFirstForward
		// sees pure forwards as forwards.
		{Name: "forward-pattern", Selector: "div, p, pre, blockquote",
			Detect: ContentPattern(true), Boundary: models.BoundaryForward},
		{Name: "reply-pattern", Selector: "div, p, pre, blockquote",
			Detect: ContentPattern(false), Boundary: models.BoundaryReply},
	}
}
