package tokenizer

import (
	"github.com/MeKo-Christian/htmlkit/errors"
	"github.com/MeKo-Christian/htmlkit/internal/constants"
)

// TextProcessingMode controls entity handling inside text runs (§4.1.2).
type TextProcessingMode int

const (
	// Raw passes character data through unchanged.
	Raw TextProcessingMode = iota
	// Decode expands the single supported entity, &nbsp;, to its
	// configured replacement. No other entity is decoded.
	Decode
)

// BrHandling controls whether <br> becomes a SelfClosingTag or a Text
// token carrying a configured payload (§4.1.2).
type BrHandling int

const (
	// Keep emits <br> as a normal SelfClosingTag.
	Keep BrHandling = iota
	// InsertCustom emits <br> as a Text token with the configured payload.
	InsertCustom
)

// Options configures tokenizer behavior. The zero value is not directly
// usable; construct with NewOptions, which applies the spec's defaults.
type Options struct {
	PreserveCase       bool
	TextProcessingMode TextProcessingMode
	BrHandling         BrHandling
	BrText             string
	NbspReplacement    string

	MaxTokens               int
	MaxAttributes           int
	MaxAttributeNameLength  int
	MaxAttributeValueLength int
	MaxTextLength           int

	VoidElements map[string]bool // nil means use the builtin set

	Policy *errors.Policy
}

// NewOptions returns Options populated with the specification's defaults
// (§6): Lenient error handling, Raw text processing, Keep <br> handling,
// and the documented resource caps.
func NewOptions() Options {
	return Options{
		TextProcessingMode:      Raw,
		BrHandling:              Keep,
		BrText:                  "\n",
		NbspReplacement:         " ",
		MaxTokens:               constants.DefaultMaxTokens,
		MaxAttributes:           constants.DefaultMaxAttributes,
		MaxAttributeNameLength:  constants.DefaultMaxAttributeNameLength,
		MaxAttributeValueLength: constants.DefaultMaxAttributeValueLength,
		MaxTextLength:           constants.DefaultMaxTextLength,
		Policy:                  errors.NewPolicy(errors.Lenient),
	}
}

func (o *Options) isVoid(name string) bool {
	return constants.IsVoid(name, o.VoidElements)
}
