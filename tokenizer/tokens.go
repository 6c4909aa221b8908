// Package tokenizer implements the HTML5-derived tokenization state machine
// described in §4.1 of the specification: a lazy, single-threaded,
// cooperative scanner that turns source bytes into a token stream.
package tokenizer

// Kind is the tag of the Token sum type.
type Kind int

const (
	OpenTag Kind = iota
	CloseTag
	SelfClosingTag
	TextToken
	CommentToken
	DoctypeToken
	ForceQuirksToken
	Done
)

func (k Kind) String() string {
	names := [...]string{
		"OpenTag", "CloseTag", "SelfClosingTag", "Text", "Comment",
		"Doctype", "ForceQuirks", "Done",
	}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Attr is an ordered name/value pair as it appeared in the source tag.
// HasValue distinguishes `disabled` from `disabled=""`.
type Attr struct {
	Name     string
	Value    string
	HasValue bool
}

// Token is emitted by the tokenizer. It is a tagged union keyed by Kind;
// only the fields relevant to that Kind are populated. Offset is the byte
// offset in the source where the token began.
type Token struct {
	Kind   Kind
	Offset int

	// OpenTag / CloseTag / SelfClosingTag
	Name  string
	Attrs []Attr

	// TextToken / CommentToken
	Data string

	// DoctypeToken
	DoctypeName string

	// ForceQuirksToken / recoverable-error plumbing
	ErrorCode string
}

// AttrVal returns the value of an attribute by name, or "" if absent.
func (t *Token) AttrVal(name string) string {
	for _, a := range t.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the token carries an attribute with the given
// name.
func (t *Token) HasAttr(name string) bool {
	for _, a := range t.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}
