// Package treebuilder consumes a tokenizer.Token stream and produces a
// dom.Document, using an open-element stack and the narrow implicit-close
// rules described in §4.2 of the specification rather than the full
// insertion-mode machinery a browser engine needs (foreign content, the
// adoption agency algorithm, and the 20-odd insertion modes are all out of
// scope here by design).
package treebuilder

import (
	"strings"

	"github.com/MeKo-Christian/htmlkit/dom"
	"github.com/MeKo-Christian/htmlkit/errors"
	"github.com/MeKo-Christian/htmlkit/internal/constants"
	"github.com/MeKo-Christian/htmlkit/tokenizer"
)

// implicitCloseTargets maps a tag name to the tag name that must be closed
// (if open) before the new element is opened (§4.2.1). These three are the
// only rules applied; Options has no setting that changes the set.
var implicitCloseTargets = map[string]string{
	"p":  "p",
	"li": "li",
	"tr": "tr",
}

// TreeBuilder builds a dom.Document from a token stream.
type TreeBuilder struct {
	opts Options

	document     *dom.Document
	openElements []*dom.Element
}

// New creates a TreeBuilder over source text (kept on the Document for
// later reference) using opts.
func New(source string, opts Options) *TreeBuilder {
	return &TreeBuilder{
		opts:     opts,
		document: dom.NewDocument(source),
	}
}

// Document returns the tree built so far. Call Finish first to close any
// elements still open at end of input.
func (tb *TreeBuilder) Document() *dom.Document {
	return tb.document
}

func (tb *TreeBuilder) current() dom.Node {
	if len(tb.openElements) == 0 {
		return tb.document
	}
	return tb.openElements[len(tb.openElements)-1]
}

func (tb *TreeBuilder) isVoid(name string) bool {
	return constants.IsVoid(name, tb.opts.VoidElements)
}

// recordError reports a recoverable error through the configured Policy.
// The tree builder has no mid-token control flow to unwind early from, so
// unlike the tokenizer it does not special-case the Strict-mode return
// value here; callers that need Strict abort semantics check
// tb.opts.Policy.Errors() after ProcessToken returns.
func (tb *TreeBuilder) recordError(code errors.Code, offset int) {
	loc := errors.Location{ByteOffset: offset}
	_ = tb.opts.Policy.Record(errors.NewParseError(code, loc))
}

// ProcessToken applies one token to the tree under construction.
func (tb *TreeBuilder) ProcessToken(tok tokenizer.Token) {
	switch tok.Kind {
	case tokenizer.OpenTag:
		tb.openTag(tok)
	case tokenizer.SelfClosingTag:
		tb.selfClosingTag(tok)
	case tokenizer.CloseTag:
		tb.closeTag(tok)
	case tokenizer.TextToken:
		tb.text(tok)
	case tokenizer.CommentToken:
		tb.comment(tok)
	case tokenizer.DoctypeToken:
		tb.doctype(tok)
	case tokenizer.ForceQuirksToken:
		tb.recordError(errors.InvalidHTML, tok.Offset)
	case tokenizer.Done:
		// Handled by Finish; ProcessToken is a no-op on Done so callers can
		// always call Finish afterward without special-casing the last token.
	}
}

func (tb *TreeBuilder) applyImplicitClose(name string, offset int) {
	target, ok := implicitCloseTargets[name]
	if !ok {
		return
	}
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		if tb.openElements[i].TagName == target {
			// Each popped element, including the target itself, is an
			// auto-close: it never saw its own close tag (§4.2).
			for j := len(tb.openElements) - 1; j >= i; j-- {
				tb.recordError(errors.UnclosedTag, offset)
			}
			tb.openElements = tb.openElements[:i]
			return
		}
	}
}

func (tb *TreeBuilder) openTag(tok tokenizer.Token) {
	tb.applyImplicitClose(tok.Name, tok.Offset)

	el := dom.NewElement(tok.Name)
	for _, a := range tok.Attrs {
		el.Attributes.SetRaw(a.Name, a.Value, a.HasValue)
	}
	tb.insertNode(el)

	if !tb.isVoid(tok.Name) {
		if tb.opts.MaxDepth > 0 && len(tb.openElements)+1 > tb.opts.MaxDepth {
			tb.recordError(errors.TooDeep, tok.Offset)
			return
		}
		tb.openElements = append(tb.openElements, el)
	}
}

func (tb *TreeBuilder) selfClosingTag(tok tokenizer.Token) {
	tb.applyImplicitClose(tok.Name, tok.Offset)
	el := dom.NewElement(tok.Name)
	for _, a := range tok.Attrs {
		el.Attributes.SetRaw(a.Name, a.Value, a.HasValue)
	}
	tb.insertNode(el)
}

func (tb *TreeBuilder) closeTag(tok tokenizer.Token) {
	if tb.isVoid(tok.Name) {
		tb.recordError(errors.VoidElementClose, tok.Offset)
		return
	}
	idx := -1
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		if tb.openElements[i].TagName == tok.Name {
			idx = i
			break
		}
	}
	if idx == -1 {
		tb.recordError(errors.MismatchedTag, tok.Offset)
		return
	}
	for i := len(tb.openElements) - 1; i > idx; i-- {
		tb.recordError(errors.UnclosedTag, tok.Offset)
	}
	tb.openElements = tb.openElements[:idx]
}

func (tb *TreeBuilder) text(tok tokenizer.Token) {
	data := tok.Data
	switch tb.opts.WhitespaceMode {
	case Remove:
		if isAllWhitespace(data) {
			return
		}
	case Normalize:
		data = normalizeWhitespace(data)
	case Trim:
		data = strings.TrimFunc(data, isHTMLSpace)
	}
	if data == "" {
		return
	}
	tb.insertNode(dom.NewTextNode(data))
}

func (tb *TreeBuilder) comment(tok tokenizer.Token) {
	if tb.opts.CommentMode != CommentPreserve {
		return
	}
	tb.insertNode(dom.NewCommentNode(tok.Data))
}

func (tb *TreeBuilder) doctype(tok tokenizer.Token) {
	tb.document.Doctype = dom.NewDoctype(tok.DoctypeName)
}

// insertNode appends node as the last child of the current insertion point,
// coalescing adjacent text nodes within the same parent (§4.2.2: text runs
// are not coalesced across intervening elements, only within one parent).
func (tb *TreeBuilder) insertNode(node dom.Node) {
	parent := tb.current()
	if txt, ok := node.(*dom.TextNode); ok {
		children := parent.Children()
		if len(children) > 0 {
			if last, ok := children[len(children)-1].(*dom.TextNode); ok {
				last.Data += txt.Data
				return
			}
		}
	}
	parent.AppendChild(node)
}

// Finish pops any elements still open at end of input, each a recoverable
// "unclosed tag" error, in stack order (top first).
func (tb *TreeBuilder) Finish() {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		tb.recordError(errors.UnclosedTag, len(tb.document.Source))
	}
	tb.openElements = nil
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		if !isHTMLSpace(r) {
			return false
		}
	}
	return true
}

func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func normalizeWhitespace(s string) string {
	var sb strings.Builder
	inSpace := false
	for _, r := range s {
		if isHTMLSpace(r) {
			if !inSpace {
				sb.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		sb.WriteRune(r)
	}
	return sb.String()
}
