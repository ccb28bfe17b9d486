package models

// Result is the outcome of running the pipeline over one representation of
// a message body.
type Result struct {
	// Content is the transformed body. When no quote boundary was found it
	// is exactly the input.
	Content string `json:"content" yaml:"content"`

	// Quoted is the serialized quote region, empty when nothing matched.
	Quoted string `json:"quoted,omitempty" yaml:"quoted,omitempty"`

	// Rule names the catalog entry that matched, for diagnostics.
	Rule string `json:"rule,omitempty" yaml:"rule,omitempty"`

	// Boundary is the classification of the matched marker.
	Boundary Boundary `json:"-" yaml:"-"`

	// Depth is the deepest nesting level that was folded, 0 for a single
	// quote level. Meaningless unless Matched.
	Depth int `json:"depth,omitempty" yaml:"depth,omitempty"`
}

// Matched reports whether a quote boundary was detected.
func (r Result) Matched() bool {
	return r.Rule != ""
}
