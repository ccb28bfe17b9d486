// Package patterns is the catalog of reply-header and forward-header
// recognition patterns: one compiled entry per language or client
// convention. All entries are anchored to line starts, case-insensitive,
// compiled once at init, and matched statelessly per line.
package patterns

import (
	"regexp"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/dtnitsch/mail-unquote/models"
)

// Entry is one recognition pattern plus the convention it represents.
type Entry struct {
	// Lang is an ISO-ish language code, or "num"/"sep" for numeric header
	// and separator conventions that are not language bound.
	Lang       string
	Convention string

	// Line matches one line of the candidate text.
	Line *regexp.Regexp

	// Followup, when set, must match one of the next few lines for the
	// entry to count. Used by the legacy From:/Sent:/To: header block,
	// where a lone "From:" line is far too weak on its own.
	Followup *regexp.Regexp

	// Dated entries additionally need a parseable date somewhere near the
	// start of the line. Guards the purely numeric headers against
	// matching arbitrary number-heavy prose.
	Dated bool
}

// followupWindow is how many lines after a match the Followup pattern may
// appear in.
const followupWindow = 4

// Library holds the reply and forward pattern sets. Read-only after
// construction; safe for concurrent use.
type Library struct {
	reply   []Entry
	forward []Entry
}

// Default is the process-wide library, compiled once at startup.
var Default = NewLibrary()

// Reply returns the reply-header entries in catalog order.
func (l *Library) Reply() []Entry { return l.reply }

// Forward returns the forward-header entries in catalog order.
func (l *Library) Forward() []Entry { return l.forward }

// ReplyAt matches the reply set against line i of lines.
func (l *Library) ReplyAt(lines []string, i int) *Entry {
	return matchAt(l.reply, lines, i)
}

// ForwardAt matches the forward set against line i of lines.
func (l *Library) ForwardAt(lines []string, i int) *Entry {
	return matchAt(l.forward, lines, i)
}

// MatchReply scans a flattened text block line by line against the reply
// set. First match wins.
func (l *Library) MatchReply(text string) *Entry {
	return matchText(l.reply, text)
}

// MatchForward scans a flattened text block against the forward set.
func (l *Library) MatchForward(text string) *Entry {
	return matchText(l.forward, text)
}

// MatchesAny reports whether any entry of the given set matches the text.
func (l *Library) MatchesAny(entries []Entry, text string) bool {
	return matchText(entries, text) != nil
}

// Classify decides whether a boundary's text reads as a forward or a reply
// marker. Forward markers are checked first: several clients wrap them in
// the same dashes the generic reply separators would otherwise claim.
func (l *Library) Classify(text string) models.Boundary {
	if l.MatchForward(text) != nil {
		return models.BoundaryForward
	}
	if l.MatchReply(text) != nil {
		return models.BoundaryReply
	}
	return models.BoundaryUnknown
}

func matchText(entries []Entry, text string) *Entry {
	lines := strings.Split(text, "\n")
	for i := range lines {
		if e := matchAt(entries, lines, i); e != nil {
			return e
		}
	}
	return nil
}

func matchAt(entries []Entry, lines []string, i int) *Entry {
	line := lines[i]
	for k := range entries {
		e := &entries[k]
		if !e.Line.MatchString(line) {
			continue
		}
		if e.Dated && !looksDated(line) {
			continue
		}
		if e.Followup != nil && !followupNear(e.Followup, lines, i) {
			continue
		}
		return e
	}
	return nil
}

func followupNear(re *regexp.Regexp, lines []string, i int) bool {
	end := i + 1 + followupWindow
	if end > len(lines) {
		end = len(lines)
	}
	for _, line := range lines[i+1 : end] {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// looksDated tries to parse a date out of the first few tokens of a line.
// Numeric headers put the date first ("2024-03-12 14:20 GMT+01:00 Jean:")
// or right after a weekday or time token, so a few sliding windows over the
// leading tokens are enough.
func looksDated(line string) bool {
	fields := strings.Fields(line)
	for start := 0; start < 3 && start < len(fields); start++ {
		for n := 1; n <= 4 && start+n <= len(fields); n++ {
			candidate := strings.Trim(strings.Join(fields[start:start+n], " "), ",;")
			if candidate == "" {
				continue
			}
			if parseable(candidate) {
				return true
			}
		}
	}
	return false
}

// parseable wraps dateparse, which panics on a few malformed inputs. A
// panic here must never escape into the engine's no-error contract.
func parseable(s string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_, err := dateparse.ParseAny(s)
	return err == nil
}
