package rules

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/mail-unquote/models"
	"github.com/dtnitsch/mail-unquote/pkg/patterns"
)

var (
	quotedLineRe    = regexp.MustCompile(`^\s*>`)
	underscoreSepRe = regexp.MustCompile(`^_{8,}\s*$`)
	fromLineRe      = regexp.MustCompile(`(?i)^\s*\*?(?:from|von|de|da|van|fra|från|od|lähettäjä|发件人|寄件者)\s*[:：]\s*\S`)
)

// TextCatalog returns the plain-text detection rules in priority order.
// Candidates are line indexes, scanned top to bottom; the region always
// runs from the boundary line to the end of the document.
func TextCatalog() []TextRule {
	return []TextRule{
		// Forward markers first: "---------- Forwarded message ---------"
		// and friends also contain the dashes the generic separator
		// patterns would otherwise claim as a reply boundary.
		{Name: "text-forward-marker", Boundary: models.BoundaryForward,
			Locate: func(lines []string, lib *patterns.Library) int {
				for i := range lines {
					if lib.ForwardAt(lines, i) != nil {
						return i
					}
				}
				return -1
			}},

		// Outlook's plain-text rendition: a long underscore run, then the
		// From:/Sent:/To:/Subject: block.
		{Name: "text-underscore-separator", Boundary: models.BoundaryReply,
			Locate: func(lines []string, lib *patterns.Library) int {
				for i := range lines {
					if !underscoreSepRe.MatchString(lines[i]) {
						continue
					}
					end := i + 4
					if end > len(lines) {
						end = len(lines)
					}
					for _, line := range lines[i+1 : end] {
						if fromLineRe.MatchString(line) {
							return i
						}
					}
				}
				return -1
			}},

		// A run of ">"-prefixed lines. The boundary backs up over blanks
		// to a preceding attribution line when one is recognizable, so
		// the header folds together with the quote it introduces.
		{Name: "text-quote-block", Boundary: models.BoundaryReply,
			Locate: locateQuoteBlock},

		// Language-pattern fallback: any line the library recognizes as a
		// reply header.
		{Name: "text-reply-pattern", Boundary: models.BoundaryReply,
			Locate: func(lines []string, lib *patterns.Library) int {
				for i := range lines {
					if lib.ReplyAt(lines, i) != nil {
						return i
					}
				}
				return -1
			}},
	}
}

// locateQuoteBlock finds the first run of at least two quoted lines.
func locateQuoteBlock(lines []string, lib *patterns.Library) int {
	for i := 0; i < len(lines)-1; i++ {
		if !quotedLineRe.MatchString(lines[i]) || !quotedLineRe.MatchString(lines[i+1]) {
			continue
		}
		// Back up over blank lines to a recognizable attribution.
		j := i - 1
		for j >= 0 && strings.TrimSpace(lines[j]) == "" {
			j--
		}
		if j >= 0 && lib.ReplyAt(lines, j) != nil {
			return j
		}
		return i
	}
	return -1
}
