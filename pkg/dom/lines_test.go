package dom

import "testing"

func TestParseTextNormalizesCRLF(t *testing.T) {
	l := ParseText("a\r\nb\nc")
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	if l.Line(1) != "b" {
		t.Errorf("Line(1) = %q, want %q", l.Line(1), "b")
	}
	if l.String() != "a\nb\nc" {
		t.Errorf("String() = %q, want %q", l.String(), "a\nb\nc")
	}
}

func TestSlice(t *testing.T) {
	l := ParseText("a\nb\nc\nd")
	tests := []struct {
		name     string
		from, to int
		want     string
	}{
		{name: "middle", from: 1, to: 3, want: "b\nc"},
		{name: "clamped low", from: -5, to: 2, want: "a\nb"},
		{name: "clamped high", from: 2, to: 99, want: "c\nd"},
		{name: "empty range", from: 3, to: 3, want: ""},
		{name: "inverted range", from: 3, to: 1, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Slice(tt.from, tt.to); got != tt.want {
				t.Errorf("Slice(%d, %d) = %q, want %q", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestFirstContent(t *testing.T) {
	if got := ParseText("  \n\nx").FirstContent(); got != 2 {
		t.Errorf("FirstContent() = %d, want 2", got)
	}
	if got := ParseText("").FirstContent(); got != -1 {
		t.Errorf("FirstContent() on empty = %d, want -1", got)
	}
}
