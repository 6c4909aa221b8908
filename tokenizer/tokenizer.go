package tokenizer

import (
	"strings"

	"github.com/MeKo-Christian/htmlkit/errors"
	"github.com/MeKo-Christian/htmlkit/internal/constants"
)

// Tokenizer turns source bytes into a lazy, single-threaded stream of
// Tokens (§4.1, §5). It is restartable only in the sense that constructing
// a new instance resets state; there is no rewind.
type Tokenizer struct {
	opts Options

	buf []rune
	pos int

	state    State
	textMode State // raw-content state last entered (ScriptData, Rawtext or Rcdata)

	line   int
	column int

	rawTagName string // element whose end tag terminates Rawtext/Rcdata/ScriptData

	curName        []rune
	curAttrs       []Attr
	curSelfClosing bool
	curKind        Kind // OpenTag or CloseTag, while building a tag

	curAttrName     []rune
	curAttrValue    []rune
	curAttrHasValue bool

	curComment []rune
	curDoctype []rune

	textBuf strings.Builder

	pending   []Token
	tokenCount int
	done      bool
}

// New creates a Tokenizer for input using the given options.
func New(input string, opts Options) *Tokenizer {
	return &Tokenizer{
		opts:   opts,
		buf:    []rune(input),
		state:  DataState,
		line:   1,
		column: 1,
	}
}

// Errors returns the errors accumulated so far via the configured Policy.
func (t *Tokenizer) Errors() []*errors.ParseError {
	return t.opts.Policy.Errors()
}

// Next returns the next token, or a Done token once input is exhausted.
// After Done, subsequent calls keep returning Done.
func (t *Tokenizer) Next() Token {
	for len(t.pending) == 0 && !t.done {
		t.step()
	}
	if len(t.pending) > 0 {
		tok := t.pending[0]
		t.pending = t.pending[1:]
		return tok
	}
	return Token{Kind: Done, Offset: len(t.buf)}
}

func (t *Tokenizer) offset() int {
	return t.pos
}

func (t *Tokenizer) peek() (rune, bool) {
	if t.pos >= len(t.buf) {
		return 0, false
	}
	return t.buf[t.pos], true
}

func (t *Tokenizer) peekAt(off int) (rune, bool) {
	i := t.pos + off
	if i >= len(t.buf) {
		return 0, false
	}
	return t.buf[i], true
}

func (t *Tokenizer) advance() rune {
	r := t.buf[t.pos]
	t.pos++
	if r == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
	return r
}

func (t *Tokenizer) atEOF() bool {
	return t.pos >= len(t.buf)
}

// recordError reports a recoverable error through the configured Policy. In
// Strict mode this also halts tokenization: no further input is scanned, and
// once any token already queued has been returned, Next() returns Done. The
// error is still available via Errors().
func (t *Tokenizer) recordError(code errors.Code) {
	loc := errors.Location{ByteOffset: t.offset(), Line: t.line, Column: t.column}
	if err := t.opts.Policy.Record(errors.NewParseError(code, loc)); err != nil {
		t.done = true
	}
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func (t *Tokenizer) foldName(r []rune) string {
	s := string(r)
	if t.opts.PreserveCase {
		return s
	}
	s = strings.ToLower(s)
	if interned, ok := constants.InternTag(s); ok {
		return interned
	}
	return s
}

// emit appends a finished token to the pending queue.
func (t *Tokenizer) emit(tok Token) {
	t.tokenCount++
	if t.tokenCount > t.opts.MaxTokens {
		t.recordError(errors.TooManyElements)
		t.pending = append(t.pending, Token{Kind: Done, Offset: t.offset()})
		t.done = true
		return
	}
	t.pending = append(t.pending, tok)
}

func (t *Tokenizer) flushText(startOffset int) {
	if t.textBuf.Len() == 0 {
		return
	}
	data := t.textBuf.String()
	if t.opts.TextProcessingMode == Decode {
		data = decodeNbsp(data, t.opts.NbspReplacement)
	}
	if len(data) > t.opts.MaxTextLength {
		t.recordError(errors.MaxTextLength)
		data = data[:t.opts.MaxTextLength]
	}
	t.textBuf.Reset()
	t.emit(Token{Kind: TextToken, Offset: startOffset, Data: data})
}

// step runs the handler for the current state once. A handler may queue
// tokens, change state, or both; Next calls step until a token is queued or
// input is exhausted.
func (t *Tokenizer) step() {
	switch t.state {
	case DataState:
		t.stepData()
	case TagOpenState:
		t.stepTagOpen()
	case EndTagOpenState:
		t.stepEndTagOpen()
	case TagNameState:
		t.stepTagOrEndTagName(true)
	case EndTagNameState:
		t.stepTagOrEndTagName(false)
	case BeforeAttributeNameState:
		t.stepBeforeAttributeName()
	case AttributeNameState:
		t.stepAttributeName()
	case AfterAttributeNameState:
		t.stepAfterAttributeName()
	case BeforeAttributeValueState:
		t.stepBeforeAttributeValue()
	case AttributeValueDoubleQuotedState:
		t.stepAttributeValueQuoted('"')
	case AttributeValueSingleQuotedState:
		t.stepAttributeValueQuoted('\'')
	case AttributeValueUnquotedState:
		t.stepAttributeValueUnquoted()
	case SelfClosingStartTagState:
		t.stepSelfClosingStartTag()
	case MarkupDeclarationOpenState:
		t.stepMarkupDeclarationOpen()
	case CommentStartState:
		t.stepCommentStart()
	case CommentState:
		t.stepComment()
	case CommentEndDashState:
		t.stepCommentEndDash()
	case CommentEndState:
		t.stepCommentEnd()
	case DoctypeState:
		t.stepDoctype()
	case DoctypeNameState:
		t.stepDoctypeName()
	case AfterDoctypeNameState:
		t.stepAfterDoctypeName()
	case CDATASectionState:
		t.stepCDATASection()
	case ScriptDataState, RawtextState, RcdataState:
		t.stepRawContent()
	default:
		t.state = DataState
	}
}

func (t *Tokenizer) stepData() {
	start := t.offset()
	for {
		r, ok := t.peek()
		if !ok {
			t.flushText(start)
			t.emit(Token{Kind: Done, Offset: t.offset()})
			t.done = true
			return
		}
		if r == '<' {
			t.flushText(start)
			t.advance()
			t.state = TagOpenState
			return
		}
		if r == 0 {
			t.recordError(errors.InvalidToken)
			t.advance()
			if t.done {
				t.flushText(start)
				return
			}
			continue
		}
		t.textBuf.WriteRune(t.advance())
		if len(t.pending) > 0 {
			return
		}
	}
}

func (t *Tokenizer) stepTagOpen() {
	r, ok := t.peek()
	if !ok {
		t.textBuf.WriteRune('<')
		t.flushText(t.offset())
		t.state = DataState
		return
	}
	switch {
	case r == '/':
		t.advance()
		t.state = EndTagOpenState
	case r == '!':
		t.advance()
		t.state = MarkupDeclarationOpenState
	case r == '?':
		t.recordError(errors.InvalidToken)
		t.advance()
		for {
			r, ok := t.peek()
			if !ok || r == '>' {
				if ok {
					t.advance()
				}
				break
			}
			t.advance()
		}
		t.state = DataState
	case isASCIIAlpha(r):
		t.curKind = OpenTag
		t.curName = t.curName[:0]
		t.curAttrs = nil
		t.curSelfClosing = false
		t.state = TagNameState
	default:
		t.recordError(errors.InvalidToken)
		t.textBuf.WriteRune('<')
		t.state = DataState
	}
}

func (t *Tokenizer) stepEndTagOpen() {
	r, ok := t.peek()
	if !ok {
		t.recordError(errors.UnexpectedEOF)
		t.state = DataState
		return
	}
	if isASCIIAlpha(r) {
		t.curKind = CloseTag
		t.curName = t.curName[:0]
		t.curAttrs = nil
		t.curSelfClosing = false
		t.state = EndTagNameState
		return
	}
	if r == '>' {
		t.recordError(errors.InvalidToken)
		t.advance()
		t.state = DataState
		return
	}
	t.recordError(errors.InvalidToken)
	for {
		r, ok := t.peek()
		if !ok || r == '>' {
			if ok {
				t.advance()
			}
			break
		}
		t.advance()
	}
	t.state = DataState
}

func (t *Tokenizer) stepTagOrEndTagName(isOpen bool) {
	for {
		r, ok := t.peek()
		if !ok {
			t.recordError(errors.UnexpectedEOF)
			t.state = DataState
			return
		}
		switch {
		case isWhitespace(r):
			t.advance()
			t.state = BeforeAttributeNameState
			return
		case r == '/':
			t.advance()
			if isOpen {
				t.state = SelfClosingStartTagState
			} else {
				t.recordError(errors.InvalidToken)
			}
			return
		case r == '>':
			t.advance()
			if isOpen {
				t.finishOpenTag()
			} else {
				t.finishCloseTag()
			}
			return
		default:
			t.curName = append(t.curName, t.advance())
		}
	}
}

func (t *Tokenizer) stepBeforeAttributeName() {
	for {
		r, ok := t.peek()
		if !ok {
			t.recordError(errors.UnexpectedEOF)
			t.state = DataState
			return
		}
		if isWhitespace(r) {
			t.advance()
			continue
		}
		if r == '/' {
			t.advance()
			t.state = SelfClosingStartTagState
			return
		}
		if r == '>' {
			t.advance()
			if t.curKind == CloseTag {
				t.finishCloseTag()
			} else {
				t.finishOpenTag()
			}
			return
		}
		t.curAttrName = t.curAttrName[:0]
		t.curAttrValue = t.curAttrValue[:0]
		t.curAttrHasValue = false
		t.state = AttributeNameState
		return
	}
}

func (t *Tokenizer) stepAttributeName() {
	for {
		r, ok := t.peek()
		if !ok {
			t.recordError(errors.UnexpectedEOF)
			t.state = DataState
			return
		}
		switch {
		case isWhitespace(r):
			t.advance()
			t.state = AfterAttributeNameState
			return
		case r == '/', r == '>':
			t.finalizeCurrentAttr()
			t.state = BeforeAttributeNameState
			return
		case r == '=':
			t.advance()
			t.state = BeforeAttributeValueState
			return
		default:
			if len(t.curAttrName) >= t.opts.MaxAttributeNameLength {
				t.recordError(errors.MaxAttributeLength)
				t.advance()
				if t.done {
					return
				}
				continue
			}
			t.curAttrName = append(t.curAttrName, t.advance())
		}
	}
}

func (t *Tokenizer) stepAfterAttributeName() {
	for {
		r, ok := t.peek()
		if !ok {
			t.recordError(errors.UnexpectedEOF)
			t.state = DataState
			return
		}
		if isWhitespace(r) {
			t.advance()
			continue
		}
		if r == '/' {
			t.finalizeCurrentAttr()
			t.advance()
			t.state = SelfClosingStartTagState
			return
		}
		if r == '=' {
			t.advance()
			t.state = BeforeAttributeValueState
			return
		}
		if r == '>' {
			t.finalizeCurrentAttr()
			t.advance()
			if t.curKind == CloseTag {
				t.finishCloseTag()
			} else {
				t.finishOpenTag()
			}
			return
		}
		t.finalizeCurrentAttr()
		t.curAttrName = t.curAttrName[:0]
		t.curAttrValue = t.curAttrValue[:0]
		t.curAttrHasValue = false
		t.state = AttributeNameState
		return
	}
}

func (t *Tokenizer) stepBeforeAttributeValue() {
	for {
		r, ok := t.peek()
		if !ok {
			t.recordError(errors.UnexpectedEOF)
			t.state = DataState
			return
		}
		if isWhitespace(r) {
			t.advance()
			continue
		}
		switch r {
		case '"':
			t.advance()
			t.curAttrHasValue = true
			t.state = AttributeValueDoubleQuotedState
		case '\'':
			t.advance()
			t.curAttrHasValue = true
			t.state = AttributeValueSingleQuotedState
		case '>':
			t.recordError(errors.InvalidToken)
			t.advance()
			t.finalizeCurrentAttr()
			if t.curKind == CloseTag {
				t.finishCloseTag()
			} else {
				t.finishOpenTag()
			}
		default:
			t.curAttrHasValue = true
			t.state = AttributeValueUnquotedState
		}
		return
	}
}

func (t *Tokenizer) stepAttributeValueQuoted(quote rune) {
	for {
		r, ok := t.peek()
		if !ok {
			t.recordError(errors.UnexpectedEOF)
			t.state = DataState
			return
		}
		if r == quote {
			t.advance()
			t.finalizeCurrentAttr()
			t.state = BeforeAttributeNameState
			return
		}
		if len(t.curAttrValue) >= t.opts.MaxAttributeValueLength {
			t.recordError(errors.MaxAttributeLength)
			t.advance()
			if t.done {
				return
			}
			continue
		}
		t.curAttrValue = append(t.curAttrValue, t.advance())
	}
}

func (t *Tokenizer) stepAttributeValueUnquoted() {
	for {
		r, ok := t.peek()
		if !ok {
			t.recordError(errors.UnexpectedEOF)
			t.state = DataState
			return
		}
		if isWhitespace(r) {
			t.advance()
			t.finalizeCurrentAttr()
			t.state = BeforeAttributeNameState
			return
		}
		if r == '>' {
			t.finalizeCurrentAttr()
			t.advance()
			if t.curKind == CloseTag {
				t.finishCloseTag()
			} else {
				t.finishOpenTag()
			}
			return
		}
		if r == '<' {
			t.recordError(errors.InvalidToken)
		}
		if len(t.curAttrValue) >= t.opts.MaxAttributeValueLength {
			t.recordError(errors.MaxAttributeLength)
			t.advance()
			if t.done {
				return
			}
			continue
		}
		t.curAttrValue = append(t.curAttrValue, t.advance())
	}
}

func (t *Tokenizer) finalizeCurrentAttr() {
	if len(t.curAttrName) == 0 {
		return
	}
	name := t.foldName(t.curAttrName)
	if len(t.curAttrs) >= t.opts.MaxAttributes {
		t.recordError(errors.TooManyElements)
		t.curAttrName = t.curAttrName[:0]
		t.curAttrValue = t.curAttrValue[:0]
		return
	}
	for i := range t.curAttrs {
		if t.curAttrs[i].Name == name {
			// Duplicate attribute: first occurrence wins (§3.1).
			t.curAttrName = t.curAttrName[:0]
			t.curAttrValue = t.curAttrValue[:0]
			return
		}
	}
	t.curAttrs = append(t.curAttrs, Attr{
		Name:     name,
		Value:    string(t.curAttrValue),
		HasValue: t.curAttrHasValue,
	})
	t.curAttrName = t.curAttrName[:0]
	t.curAttrValue = t.curAttrValue[:0]
	t.curAttrHasValue = false
}

func (t *Tokenizer) stepSelfClosingStartTag() {
	r, ok := t.peek()
	if !ok {
		t.recordError(errors.UnexpectedEOF)
		t.state = DataState
		return
	}
	if r == '>' {
		t.advance()
		t.curSelfClosing = true
		t.finishOpenTag()
		return
	}
	t.recordError(errors.InvalidToken)
	t.state = BeforeAttributeNameState
}

// finishOpenTag applies void/self-closing upgrade, br_handling, and
// rawtext/rcdata/script-data mode switches, then emits the token (§4.1.1).
func (t *Tokenizer) finishOpenTag() {
	name := t.foldName(t.curName)
	attrs := t.curAttrs
	selfClosing := t.curSelfClosing
	isVoid := t.opts.isVoid(name)

	if name == "br" && t.opts.BrHandling == InsertCustom {
		t.emit(Token{Kind: TextToken, Offset: t.offset(), Data: t.opts.BrText})
		return
	}

	kind := OpenTag
	if selfClosing || isVoid {
		kind = SelfClosingTag
	}
	tok := Token{Kind: kind, Offset: t.offset(), Name: name, Attrs: attrs, ErrorCode: ""}
	t.emit(tok)

	if kind == SelfClosingTag {
		return
	}

	switch {
	case name == constants.ScriptDataElement:
		t.rawTagName = name
		t.textMode = ScriptDataState
		t.state = ScriptDataState
	case constants.RawTextElements[name]:
		t.rawTagName = name
		t.textMode = RawtextState
		t.state = RawtextState
	case constants.RCDATAElements[name]:
		t.rawTagName = name
		t.textMode = RcdataState
		t.state = RcdataState
	}
}

func (t *Tokenizer) finishCloseTag() {
	name := t.foldName(t.curName)
	t.emit(Token{Kind: CloseTag, Offset: t.offset(), Name: name})
}

func (t *Tokenizer) stepMarkupDeclarationOpen() {
	if t.hasPrefix("--") {
		t.consume(2)
		t.curComment = t.curComment[:0]
		t.state = CommentStartState
		return
	}
	if t.hasPrefixFold("DOCTYPE") {
		t.consume(7)
		t.curDoctype = t.curDoctype[:0]
		t.state = DoctypeState
		return
	}
	if t.hasPrefix("[CDATA[") {
		t.consume(7)
		t.state = CDATASectionState
		return
	}
	t.recordError(errors.InvalidToken)
	t.curComment = t.curComment[:0]
	t.state = CommentState
}

func (t *Tokenizer) hasPrefix(s string) bool {
	rs := []rune(s)
	for i, r := range rs {
		got, ok := t.peekAt(i)
		if !ok || got != r {
			return false
		}
	}
	return true
}

func (t *Tokenizer) hasPrefixFold(s string) bool {
	rs := []rune(s)
	for i, r := range rs {
		got, ok := t.peekAt(i)
		if !ok || toUpper(got) != toUpper(r) {
			return false
		}
	}
	return true
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func (t *Tokenizer) consume(n int) {
	for i := 0; i < n; i++ {
		t.advance()
	}
}

func (t *Tokenizer) stepCommentStart() {
	r, ok := t.peek()
	if !ok {
		t.recordError(errors.UnexpectedEOF)
		t.emit(Token{Kind: CommentToken, Offset: t.offset(), Data: string(t.curComment)})
		t.state = DataState
		return
	}
	if r == '>' {
		t.recordError(errors.InvalidToken)
		t.advance()
		t.emit(Token{Kind: CommentToken, Offset: t.offset(), Data: ""})
		t.state = DataState
		return
	}
	t.state = CommentState
}

func (t *Tokenizer) stepComment() {
	for {
		r, ok := t.peek()
		if !ok {
			t.recordError(errors.UnexpectedEOF)
			t.emit(Token{Kind: CommentToken, Offset: t.offset(), Data: string(t.curComment)})
			t.state = DataState
			return
		}
		if r == '-' {
			t.advance()
			t.state = CommentEndDashState
			return
		}
		t.curComment = append(t.curComment, t.advance())
	}
}

func (t *Tokenizer) stepCommentEndDash() {
	r, ok := t.peek()
	if !ok {
		t.recordError(errors.UnexpectedEOF)
		t.emit(Token{Kind: CommentToken, Offset: t.offset(), Data: string(t.curComment)})
		t.state = DataState
		return
	}
	if r == '-' {
		t.advance()
		t.state = CommentEndState
		return
	}
	t.curComment = append(t.curComment, '-')
	t.state = CommentState
}

func (t *Tokenizer) stepCommentEnd() {
	r, ok := t.peek()
	if !ok {
		t.recordError(errors.UnexpectedEOF)
		t.emit(Token{Kind: CommentToken, Offset: t.offset(), Data: string(t.curComment)})
		t.state = DataState
		return
	}
	switch r {
	case '>':
		t.advance()
		t.emit(Token{Kind: CommentToken, Offset: t.offset(), Data: string(t.curComment)})
		t.state = DataState
	case '-':
		t.advance()
		t.curComment = append(t.curComment, '-')
	default:
		t.curComment = append(t.curComment, '-', '-')
		t.state = CommentState
	}
}

func (t *Tokenizer) stepDoctype() {
	for {
		r, ok := t.peek()
		if !ok {
			t.recordError(errors.UnexpectedEOF)
			t.emit(Token{Kind: DoctypeToken, Offset: t.offset(), DoctypeName: ""})
			t.state = DataState
			return
		}
		if isWhitespace(r) {
			t.advance()
			continue
		}
		if r == '>' {
			t.recordError(errors.InvalidToken)
			t.advance()
			t.emit(Token{Kind: DoctypeToken, Offset: t.offset(), DoctypeName: ""})
			t.state = DataState
			return
		}
		t.state = DoctypeNameState
		return
	}
}

func (t *Tokenizer) stepDoctypeName() {
	for {
		r, ok := t.peek()
		if !ok {
			t.recordError(errors.UnexpectedEOF)
			t.emit(Token{Kind: DoctypeToken, Offset: t.offset(), DoctypeName: t.foldName(t.curDoctype)})
			t.state = DataState
			return
		}
		if isWhitespace(r) {
			t.advance()
			t.state = AfterDoctypeNameState
			return
		}
		if r == '>' {
			t.advance()
			t.emit(Token{Kind: DoctypeToken, Offset: t.offset(), DoctypeName: t.foldName(t.curDoctype)})
			t.state = DataState
			return
		}
		t.curDoctype = append(t.curDoctype, t.advance())
	}
}

func (t *Tokenizer) stepAfterDoctypeName() {
	for {
		r, ok := t.peek()
		if !ok {
			t.recordError(errors.UnexpectedEOF)
			t.emit(Token{Kind: DoctypeToken, Offset: t.offset(), DoctypeName: t.foldName(t.curDoctype)})
			t.state = DataState
			return
		}
		if r == '>' {
			t.advance()
			t.emit(Token{Kind: DoctypeToken, Offset: t.offset(), DoctypeName: t.foldName(t.curDoctype)})
			t.state = DataState
			return
		}
		t.advance()
	}
}

func (t *Tokenizer) stepCDATASection() {
	start := t.offset()
	var sb strings.Builder
	for {
		if t.atEOF() {
			t.recordError(errors.UnexpectedEOF)
			t.emit(Token{Kind: TextToken, Offset: start, Data: sb.String()})
			t.state = DataState
			return
		}
		if t.hasPrefix("]]>") {
			t.consume(3)
			t.emit(Token{Kind: TextToken, Offset: start, Data: sb.String()})
			t.state = DataState
			return
		}
		sb.WriteRune(t.advance())
	}
}

// stepRawContent implements Rawtext/Rcdata/ScriptData: accumulate until a
// matching end tag (case-insensitive) followed by whitespace, '/', or '>'.
// A bogus end tag that doesn't match rawTagName is just more text (§4.1).
// Rcdata content gets the same &nbsp; decoding as Data text when
// TextProcessingMode is Decode; Rawtext and ScriptData content never does.
func (t *Tokenizer) stepRawContent() {
	start := t.offset()
	decode := t.state == RcdataState && t.opts.TextProcessingMode == Decode
	var sb strings.Builder
	emitText := func() {
		if sb.Len() == 0 {
			return
		}
		data := sb.String()
		if decode {
			data = decodeNbsp(data, t.opts.NbspReplacement)
		}
		t.emit(Token{Kind: TextToken, Offset: start, Data: data})
	}
	for {
		if t.atEOF() {
			emitText()
			t.emit(Token{Kind: Done, Offset: t.offset()})
			t.done = true
			return
		}
		if t.peekCloseTag() {
			emitText()
			t.consumeMatchedCloseTag()
			return
		}
		sb.WriteRune(t.advance())
	}
}

// peekCloseTag reports whether the input at the current position is
// "</" + rawTagName (case-insensitive) + a name terminator.
func (t *Tokenizer) peekCloseTag() bool {
	if !t.hasPrefix("</") {
		return false
	}
	name := []rune(t.rawTagName)
	for i, r := range name {
		got, ok := t.peekAt(2 + i)
		if !ok || toUpper(got) != toUpper(r) {
			return false
		}
	}
	next, ok := t.peekAt(2 + len(name))
	if !ok {
		return true // EOF right after the name is still a terminator
	}
	return isWhitespace(next) || next == '/' || next == '>'
}

func (t *Tokenizer) consumeMatchedCloseTag() {
	t.consume(2) // "</"
	t.curName = t.curName[:0]
	for i := 0; i < len(t.rawTagName); i++ {
		t.curName = append(t.curName, t.advance())
	}
	t.curKind = CloseTag
	t.curAttrs = nil
	t.state = EndTagNameState
}
