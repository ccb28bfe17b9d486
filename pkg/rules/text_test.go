package rules

import (
	"strings"
	"testing"

	"github.com/dtnitsch/mail-unquote/pkg/patterns"
)

// locate runs the named catalog rule against a document.
func locate(t *testing.T, name string, lines []string) int {
	t.Helper()
	for _, rule := range TextCatalog() {
		if rule.Name == name {
			return rule.Locate(lines, patterns.Default)
		}
	}
	t.Fatalf("no catalog rule named %s", name)
	return -1
}

func TestTextForwardMarker(t *testing.T) {
	lines := strings.Split("FYI, see below\n\n---------- Forwarded message ---------\nFrom: X", "\n")
	if got := locate(t, "text-forward-marker", lines); got != 2 {
		t.Errorf("Locate() = %d, want 2", got)
	}
}

func TestTextUnderscoreSeparator(t *testing.T) {
	withFrom := strings.Split(
		"my reply\n\n________________________________\nFrom: Jane <jane@example.com>\nSent: Monday", "\n")
	if got := locate(t, "text-underscore-separator", withFrom); got != 2 {
		t.Errorf("Locate() with From: = %d, want 2", got)
	}

	// An underscore run with no header block after it is just a line of
	// underscores.
	noFrom := strings.Split("my reply\n\n________________________________\njust more prose", "\n")
	if got := locate(t, "text-underscore-separator", noFrom); got != -1 {
		t.Errorf("Locate() without From: = %d, want -1", got)
	}
}

func TestTextQuoteBlock(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "backs up to attribution line",
			text: "Thanks!\n\nOn Mon, Jan 2, 2024 at 1:00 PM Jane wrote:\n> a\n> b",
			want: 2,
		},
		{
			name: "bare quote run",
			text: "Thanks!\n\n> a\n> b",
			want: 2,
		},
		{
			name: "single quoted line is not a block",
			text: "he said\n> just this\nand that was it",
			want: -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := locate(t, "text-quote-block", strings.Split(tt.text, "\n")); got != tt.want {
				t.Errorf("Locate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTextReplyPattern(t *testing.T) {
	lines := strings.Split("Ok!\n\nAm 12.03.2024 um 10:00 schrieb Hans Meier:\nalter Text", "\n")
	if got := locate(t, "text-reply-pattern", lines); got != 2 {
		t.Errorf("Locate() = %d, want 2", got)
	}

	prose := strings.Split("nothing quoted\nhere at all", "\n")
	if got := locate(t, "text-reply-pattern", prose); got != -1 {
		t.Errorf("Locate() on prose = %d, want -1", got)
	}
}
