package dom

import (
	"strings"

	"github.com/dtnitsch/mail-unquote/models"
)

// Fold marks a half-open line range [Start, End) as a foldable quote block.
type Fold struct {
	Start    int
	End      int
	Depth    int
	Boundary models.Boundary
	Rule     string
}

// Lines is the plain-text document model: the body split on line
// boundaries, plus any fold ranges the transformer has tagged. Line content
// is never trimmed, so offsets stay aligned with what pattern matching saw.
type Lines struct {
	lines []string
	Folds []Fold
}

// ParseText splits raw text into lines. CRLF line endings are normalized to
// LF; everything else is preserved byte for byte.
func ParseText(raw string) *Lines {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	return &Lines{lines: strings.Split(raw, "\n")}
}

// FromLines builds a Lines document over an existing slice, used when the
// transformer recurses into a detected region.
func FromLines(lines []string) *Lines {
	return &Lines{lines: lines}
}

// Len returns the number of lines.
func (l *Lines) Len() int { return len(l.lines) }

// Line returns line i.
func (l *Lines) Line(i int) string { return l.lines[i] }

// All returns the underlying lines. Callers must not mutate the slice.
func (l *Lines) All() []string { return l.lines }

// Slice joins lines [from, to) back into text.
func (l *Lines) Slice(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(l.lines) {
		to = len(l.lines)
	}
	if from >= to {
		return ""
	}
	return strings.Join(l.lines[from:to], "\n")
}

// String serializes the whole document.
func (l *Lines) String() string {
	return strings.Join(l.lines, "\n")
}

// FirstContent returns the index of the first non-blank line, or -1.
func (l *Lines) FirstContent() int {
	for i, line := range l.lines {
		if strings.TrimSpace(line) != "" {
			return i
		}
	}
	return -1
}
