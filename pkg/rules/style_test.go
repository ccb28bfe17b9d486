package rules

import "testing"

func TestSeparatorBorder(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  bool
	}{
		{
			name:  "classic outlook hairline",
			style: "border-top:solid windowtext 1.0pt;padding:3.0pt 0in 0in 0in",
			want:  true,
		},
		{
			name:  "one point solid",
			style: "border-top: 1pt solid #e1e1e1",
			want:  true,
		},
		{
			name:  "three pixels is still thin",
			style: "BORDER-TOP: 3px solid black",
			want:  true,
		},
		{
			name:  "border shorthand",
			style: "border: 1pt solid #ccc",
			want:  true,
		},
		{
			name:  "too thick",
			style: "border-top: 10px solid black",
			want:  false,
		},
		{
			name:  "dashed does not count",
			style: "border-top: 1pt dashed gray",
			want:  false,
		},
		{
			name:  "unrelated declaration",
			style: "color: red; padding-top: 1pt",
			want:  false,
		},
		{
			name:  "no width",
			style: "border-top: solid black",
			want:  false,
		},
		{
			name:  "empty",
			style: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := separatorBorder(tt.style); got != tt.want {
				t.Errorf("separatorBorder(%q) = %v, want %v", tt.style, got, tt.want)
			}
		})
	}
}

func TestToPoints(t *testing.T) {
	tests := []struct {
		v    float64
		unit string
		want float64
	}{
		{v: 1, unit: "pt", want: 1},
		{v: 4, unit: "px", want: 3},
		{v: 1, unit: "in", want: 72},
		{v: 1, unit: "ex", want: 0},
	}
	for _, tt := range tests {
		if got := toPoints(tt.v, tt.unit); got != tt.want {
			t.Errorf("toPoints(%v, %s) = %v, want %v", tt.v, tt.unit, got, tt.want)
		}
	}
}
