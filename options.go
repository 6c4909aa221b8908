// Package htmlkit is the root package: Parse/ParseWithError/ParseFile entry
// points, functional Options, and the top-level Query convenience
// functions (§6).
package htmlkit

import (
	"github.com/MeKo-Christian/htmlkit/errors"
	"github.com/MeKo-Christian/htmlkit/internal/constants"
	"github.com/MeKo-Christian/htmlkit/tokenizer"
	"github.com/MeKo-Christian/htmlkit/treebuilder"
)

// config is the unexported aggregate every Option mutates.
type config struct {
	errorHandling errors.Handling

	commentMode    treebuilder.CommentMode
	whitespaceMode treebuilder.WhitespaceMode

	textProcessingMode tokenizer.TextProcessingMode
	brHandling         tokenizer.BrHandling
	brText             string
	nbspReplacement    string
	preserveCase       bool

	maxTokens               int
	maxDepth                int
	maxAttributes           int
	maxAttributeNameLength  int
	maxAttributeValueLength int
	maxTextLength           int

	voidElements map[string]bool
}

// Option configures a Parse call.
type Option func(*config)

// newConfig applies the specification's defaults (§6), then opts in order.
func newConfig(opts ...Option) *config {
	c := &config{
		errorHandling:           errors.Lenient,
		commentMode:             treebuilder.CommentPreserve,
		whitespaceMode:          treebuilder.Preserve,
		textProcessingMode:      tokenizer.Raw,
		brHandling:              tokenizer.Keep,
		brText:                  "\n",
		nbspReplacement:         " ",
		maxTokens:               constants.DefaultMaxTokens,
		maxDepth:                constants.DefaultMaxDepth,
		maxAttributes:           constants.DefaultMaxAttributes,
		maxAttributeNameLength:  constants.DefaultMaxAttributeNameLength,
		maxAttributeValueLength: constants.DefaultMaxAttributeValueLength,
		maxTextLength:           constants.DefaultMaxTextLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithErrorHandling sets the error_handling mode (§7).
func WithErrorHandling(h errors.Handling) Option {
	return func(c *config) { c.errorHandling = h }
}

// WithCommentMode controls whether comments become DOM nodes.
func WithCommentMode(m treebuilder.CommentMode) Option {
	return func(c *config) { c.commentMode = m }
}

// WithWhitespaceMode controls how text nodes are normalized.
func WithWhitespaceMode(m treebuilder.WhitespaceMode) Option {
	return func(c *config) { c.whitespaceMode = m }
}

// WithTextProcessingMode controls entity handling inside text runs.
func WithTextProcessingMode(m tokenizer.TextProcessingMode) Option {
	return func(c *config) { c.textProcessingMode = m }
}

// WithBrHandling controls whether <br> becomes text.
func WithBrHandling(h tokenizer.BrHandling) Option {
	return func(c *config) { c.brHandling = h }
}

// WithBrText sets the payload used when BrHandling is InsertCustom.
func WithBrText(text string) Option {
	return func(c *config) { c.brText = text }
}

// WithPreserveCase disables lowercase folding of tag and attribute names.
func WithPreserveCase(preserve bool) Option {
	return func(c *config) { c.preserveCase = preserve }
}

// WithMaxTokens caps the number of tokens the tokenizer will emit.
func WithMaxTokens(n int) Option { return func(c *config) { c.maxTokens = n } }

// WithMaxDepth caps open-element nesting depth.
func WithMaxDepth(n int) Option { return func(c *config) { c.maxDepth = n } }

// WithMaxAttributes caps attributes per element.
func WithMaxAttributes(n int) Option { return func(c *config) { c.maxAttributes = n } }

// WithMaxAttributeNameLength caps a single attribute name's length.
func WithMaxAttributeNameLength(n int) Option {
	return func(c *config) { c.maxAttributeNameLength = n }
}

// WithMaxAttributeValueLength caps a single attribute value's length.
func WithMaxAttributeValueLength(n int) Option {
	return func(c *config) { c.maxAttributeValueLength = n }
}

// WithMaxTextLength caps a single text run's length.
func WithMaxTextLength(n int) Option { return func(c *config) { c.maxTextLength = n } }

// WithVoidElements overrides the builtin void-element set.
func WithVoidElements(set map[string]bool) Option {
	return func(c *config) { c.voidElements = set }
}

// Strict returns options tuned for fail-fast parsing: the first error
// aborts, and resource caps are tighter (§6).
func Strict() []Option {
	return []Option{
		WithErrorHandling(errors.Strict),
		WithMaxTokens(constants.StrictMaxTokens),
		WithMaxDepth(constants.StrictMaxDepth),
		WithMaxAttributes(constants.StrictMaxAttributes),
	}
}

// Lenient returns the library's own defaults, named for callers who want to
// be explicit about opting into best-effort recovery.
func Lenient() []Option {
	return []Option{WithErrorHandling(errors.Lenient)}
}

// Performance returns options tuned to skip work a caller doesn't need:
// comments dropped, whitespace-only text dropped, larger resource caps.
func Performance() []Option {
	return []Option{
		WithCommentMode(treebuilder.CommentRemove),
		WithWhitespaceMode(treebuilder.Remove),
		WithMaxTokens(constants.PerformanceMaxTokens),
		WithMaxDepth(constants.PerformanceMaxDepth),
	}
}

// Sanitized returns options that drop comments, a common pre-rendering
// cleanup step.
func Sanitized() []Option {
	return []Option{WithCommentMode(treebuilder.CommentRemove)}
}

// tokenizerOptions builds tokenizer.Options sharing policy with the tree
// builder, so a Strict-mode abort in either subsystem surfaces the same way.
func (c *config) tokenizerOptions(policy *errors.Policy) tokenizer.Options {
	return tokenizer.Options{
		PreserveCase:            c.preserveCase,
		TextProcessingMode:      c.textProcessingMode,
		BrHandling:              c.brHandling,
		BrText:                  c.brText,
		NbspReplacement:         c.nbspReplacement,
		MaxTokens:               c.maxTokens,
		MaxAttributes:           c.maxAttributes,
		MaxAttributeNameLength:  c.maxAttributeNameLength,
		MaxAttributeValueLength: c.maxAttributeValueLength,
		MaxTextLength:           c.maxTextLength,
		VoidElements:            c.voidElements,
		Policy:                  policy,
	}
}

func (c *config) treebuilderOptions(policy *errors.Policy) treebuilder.Options {
	return treebuilder.Options{
		WhitespaceMode: c.whitespaceMode,
		CommentMode:    c.commentMode,
		MaxDepth:       c.maxDepth,
		VoidElements:   c.voidElements,
		Policy:         policy,
	}
}
