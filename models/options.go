package models

// Mode selects how a detected quote region is handled.
type Mode int

const (
	// ModeWrap folds the detected region into a collapsible container,
	// leaving everything outside it untouched. This is the only mode
	// exercised by callers today.
	ModeWrap Mode = iota
)

// Boundary classifies what kind of marker introduced a quote region.
type Boundary int

const (
	BoundaryUnknown Boundary = iota
	BoundaryReply
	BoundaryForward
)

func (b Boundary) String() string {
	switch b {
	case BoundaryReply:
		return "reply"
	case BoundaryForward:
		return "forward"
	}
	return "unknown"
}

// Options controls a single engine invocation.
type Options struct {
	Mode Mode

	// IgnoreFirstForward leaves a message untouched when it consists of
	// nothing but a forward marker and the forwarded content: there is no
	// authored reply text to show above a fold in that case.
	IgnoreFirstForward bool

	// Depth is the recursion level. Callers pass 0; the transformer bumps
	// it when it descends into a detected region.
	Depth int
}
