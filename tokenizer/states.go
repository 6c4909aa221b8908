package tokenizer

// State is one node of the tokenizer's explicit state machine (§4.1 of the
// specification). The set is intentionally the narrow one the spec lists,
// not the full WHATWG tokenizer's ~80 states: this tokenizer is faithful to
// the educative core, not to every escaped-script-data corner case browsers
// must also handle.
type State int

const (
	DataState State = iota
	TagOpenState
	TagNameState
	EndTagOpenState
	EndTagNameState
	BeforeAttributeNameState
	AttributeNameState
	AfterAttributeNameState
	BeforeAttributeValueState
	AttributeValueDoubleQuotedState
	AttributeValueSingleQuotedState
	AttributeValueUnquotedState
	SelfClosingStartTagState
	MarkupDeclarationOpenState
	CommentStartState
	CommentState
	CommentEndDashState
	CommentEndState
	DoctypeState
	DoctypeNameState
	AfterDoctypeNameState
	CDATASectionState
	ScriptDataState
	RawtextState
	RcdataState
)

func (s State) String() string {
	names := [...]string{
		"Data", "TagOpen", "TagName", "EndTagOpen", "EndTagName",
		"BeforeAttributeName", "AttributeName", "AfterAttributeName",
		"BeforeAttributeValue", "AttributeValueDoubleQuoted",
		"AttributeValueSingleQuoted", "AttributeValueUnquoted",
		"SelfClosingStartTag", "MarkupDeclarationOpen", "CommentStart",
		"Comment", "CommentEndDash", "CommentEnd", "Doctype", "DoctypeName",
		"AfterDoctypeName", "CDATASection", "ScriptData", "Rawtext", "Rcdata",
	}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}
