package rules

import (
	"regexp"
	"strconv"
	"strings"
)

// Outlook and the Word-based composers don't tag their reply separator with
// a class; they draw it as an inline thin solid top border. The width shows
// up in pt or px depending on the client build, so everything is normalized
// to points before comparing against the expected ~1pt hairline.

var borderWidthRe = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*(pt|px|in|cm|mm)`)

const (
	minSeparatorPt = 0.5
	maxSeparatorPt = 2.5
)

// separatorBorder reports whether an inline style declares a thin solid
// top border.
func separatorBorder(style string) bool {
	style = strings.ToLower(style)
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name != "border-top" && name != "border" {
			continue
		}
		if !strings.Contains(value, "solid") {
			continue
		}
		m := borderWidthRe.FindStringSubmatch(value)
		if m == nil {
			continue
		}
		width, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		pt := toPoints(width, m[2])
		if pt >= minSeparatorPt && pt <= maxSeparatorPt {
			return true
		}
	}
	return false
}

func toPoints(v float64, unit string) float64 {
	switch unit {
	case "pt":
		return v
	case "px":
		return v * 0.75
	case "in":
		return v * 72
	case "cm":
		return v * 28.35
	case "mm":
		return v * 2.835
	}
	return 0
}
