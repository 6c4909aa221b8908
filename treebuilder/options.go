package treebuilder

import "github.com/MeKo-Christian/htmlkit/errors"

// WhitespaceMode controls how text runs are normalized on insertion (§4.2).
type WhitespaceMode int

const (
	// Preserve keeps text runs exactly as tokenized. Default.
	Preserve WhitespaceMode = iota
	// Normalize collapses internal runs of whitespace to a single space.
	Normalize
	// Trim removes leading/trailing whitespace from each text run.
	Trim
	// Remove drops text runs that are entirely ASCII whitespace.
	Remove
)

// CommentMode controls whether comments become CommentNodes (§4.2).
type CommentMode int

const (
	// CommentPreserve appends a CommentNode for every comment token. Default.
	CommentPreserve CommentMode = iota
	// CommentRemove drops comments entirely.
	CommentRemove
	// CommentProcessOnly is observably identical to CommentRemove in this
	// implementation: there is no processing hook to run before discarding.
	CommentProcessOnly
)

// Options configures the tree builder.
type Options struct {
	WhitespaceMode WhitespaceMode
	CommentMode    CommentMode
	MaxDepth       int
	VoidElements   map[string]bool
	Policy         *errors.Policy
}

// NewOptions returns Options with the specification's defaults: Preserve
// whitespace, preserved comments, and the documented depth cap.
func NewOptions() Options {
	return Options{
		WhitespaceMode: Preserve,
		CommentMode:    CommentPreserve,
		MaxDepth:       1_000,
		Policy:         errors.NewPolicy(errors.Lenient),
	}
}
