package dom

import "strings"

// NamespaceHTML is the namespace URI assigned to every element this
// package constructs. Foreign content (SVG/MathML insertion-mode
// switching) is out of scope (§ Non-goals), so no other namespace is
// ever produced.
const NamespaceHTML = "http://www.w3.org/1999/xhtml"

// Element is an HTML element node.
type Element struct {
	baseNode

	TagName    string
	Namespace  string
	Attributes *Attributes
}

// NewElement creates an HTML-namespace element; tagName is lowercased.
func NewElement(tagName string) *Element {
	e := &Element{
		TagName:    strings.ToLower(tagName),
		Namespace:  NamespaceHTML,
		Attributes: NewAttributes(),
	}
	e.baseNode.init(e)
	return e
}

func (e *Element) Type() NodeType { return ElementNodeType }

// Clone returns a copy of e. If deep, descendants are cloned too.
func (e *Element) Clone(deep bool) *Element {
	clone := &Element{
		TagName:    e.TagName,
		Namespace:  e.Namespace,
		Attributes: e.Attributes.Clone(),
	}
	clone.baseNode.init(clone)
	if deep {
		for _, child := range e.children {
			clone.AppendChild(cloneNode(child))
		}
	}
	return clone
}

func cloneNode(n Node) Node {
	switch v := n.(type) {
	case *Element:
		return v.Clone(true)
	case *TextNode:
		return v.Clone()
	case *CommentNode:
		return v.Clone()
	default:
		return n
	}
}

// Query returns every descendant element matching selector, in document
// order, by delegating to the css package (registered via SetSelectorMatch
// to avoid an import cycle).
func (e *Element) Query(selector string) ([]*Element, error) {
	return selectorMatch(e, selector)
}

// QueryFirst returns the first descendant element matching selector, or
// nil if none match.
func (e *Element) QueryFirst(selector string) (*Element, error) {
	return selectorMatchFirst(e, selector)
}

// Matches reports whether e itself satisfies selector (no descendant
// traversal).
func (e *Element) Matches(selector string) (bool, error) {
	results, err := selectorMatch(e, selector)
	if err != nil {
		return false, err
	}
	for _, r := range results {
		if r == e {
			return true, nil
		}
	}
	return false, nil
}

// TextContent concatenates the text of every descendant text node, in
// document order (§3.1).
func (e *Element) TextContent() string {
	var sb strings.Builder
	collectText(e, &sb)
	return sb.String()
}

func collectText(n Node, sb *strings.Builder) {
	for _, child := range n.Children() {
		switch c := child.(type) {
		case *TextNode:
			sb.WriteString(c.Data)
		default:
			collectText(child, sb)
		}
	}
}

// OwnText concatenates only e's direct TextNode children, skipping
// descendants reached through child elements (§3.1).
func (e *Element) OwnText() string {
	var sb strings.Builder
	for _, child := range e.children {
		if tn, ok := child.(*TextNode); ok {
			sb.WriteString(tn.Data)
		}
	}
	return sb.String()
}

// GetAttribute returns an attribute's value, case-insensitively, or "" if
// absent.
func (e *Element) GetAttribute(name string) string {
	val, _ := e.Attributes.Get(name)
	return val
}

// HasAttribute reports whether name is present, case-insensitively.
func (e *Element) HasAttribute(name string) bool {
	return e.Attributes.Has(name)
}

// SetAttribute sets an attribute, lowercasing name.
func (e *Element) SetAttribute(name, value string) {
	e.Attributes.Set(name, value)
}

// RemoveAttribute deletes an attribute by name.
func (e *Element) RemoveAttribute(name string) {
	e.Attributes.Remove(name)
}

// ID returns the id attribute's value (a single token, never split).
func (e *Element) ID() string {
	return e.GetAttribute("id")
}

// ClassNames splits the class attribute on ASCII whitespace (§3.1).
func (e *Element) ClassNames() []string {
	class := e.GetAttribute("class")
	if class == "" {
		return nil
	}
	return strings.Fields(class)
}

// HasClass reports membership in ClassNames().
func (e *Element) HasClass(name string) bool {
	for _, c := range e.ClassNames() {
		if c == name {
			return true
		}
	}
	return false
}

// Parents returns e's ancestor elements, nearest first, stopping at the
// first non-Element ancestor (typically the Document).
func (e *Element) Parents() []*Element {
	var out []*Element
	for p := e.Parent(); p != nil; p = p.Parent() {
		if el, ok := p.(*Element); ok {
			out = append(out, el)
		} else {
			break
		}
	}
	return out
}

// Closest returns e, or the nearest ancestor, matching selector.
func (e *Element) Closest(selector string) (*Element, error) {
	for cur := Node(e); cur != nil; cur = cur.Parent() {
		el, ok := cur.(*Element)
		if !ok {
			continue
		}
		ok, err := el.Matches(selector)
		if err != nil {
			return nil, err
		}
		if ok {
			return el, nil
		}
	}
	return nil, nil
}

// ChildElements returns e's Element children, skipping text and comment
// nodes.
func (e *Element) ChildElements() []*Element {
	var out []*Element
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}
