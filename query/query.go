// Package query provides ElementQuery, a jQuery/goquery-shaped fluent
// wrapper over a slice of *dom.Element (§6): navigation, filtering,
// slicing, and extraction, each returning a new, independent ElementQuery.
package query

import (
	"strings"

	"github.com/MeKo-Christian/htmlkit/css"
	"github.com/MeKo-Christian/htmlkit/dom"
)

// ElementQuery is an immutable, ordered sequence of elements.
type ElementQuery struct {
	elements []*dom.Element
}

// New wraps elements in an ElementQuery.
func New(elements []*dom.Element) ElementQuery {
	return ElementQuery{elements: elements}
}

// Len returns the number of elements.
func (q ElementQuery) Len() int { return len(q.elements) }

// Elements returns the underlying slice; callers must not mutate it.
func (q ElementQuery) Elements() []*dom.Element { return q.elements }

// At returns the element at index, or nil if out of range.
func (q ElementQuery) At(index int) *dom.Element {
	if index < 0 || index >= len(q.elements) {
		return nil
	}
	return q.elements[index]
}

// First returns the first element, or nil if empty.
func (q ElementQuery) First() *dom.Element { return q.At(0) }

// Last returns the last element, or nil if empty.
func (q ElementQuery) Last() *dom.Element { return q.At(len(q.elements) - 1) }

// Css runs a CSS selector against every element's subtree and returns the
// union of matches, document order, deduplicated.
func (q ElementQuery) Css(selector string) ElementQuery {
	sel, err := css.Parse(selector)
	if err != nil {
		return ElementQuery{}
	}
	seen := make(map[*dom.Element]bool)
	var out []*dom.Element
	for _, el := range q.elements {
		for _, m := range css.FindAllDescendants(el, sel.List) {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return ElementQuery{elements: out}
}

// Is reports whether any wrapped element matches selector.
func (q ElementQuery) Is(selector string) bool {
	sel, err := css.Parse(selector)
	if err != nil {
		return false
	}
	for _, el := range q.elements {
		if sel.Match(el) {
			return true
		}
	}
	return false
}

// --- navigation -----------------------------------------------------------

// Children returns the direct Element children of every wrapped element.
func (q ElementQuery) Children() ElementQuery {
	var out []*dom.Element
	for _, el := range q.elements {
		out = append(out, el.ChildElements()...)
	}
	return ElementQuery{elements: out}
}

// Parent returns the parent Element of every wrapped element (deduplicated,
// skipping elements with no Element parent).
func (q ElementQuery) Parent() ElementQuery {
	seen := make(map[*dom.Element]bool)
	var out []*dom.Element
	for _, el := range q.elements {
		if p, ok := el.Parent().(*dom.Element); ok && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return ElementQuery{elements: out}
}

// Parents returns every ancestor Element of every wrapped element.
func (q ElementQuery) Parents() ElementQuery {
	seen := make(map[*dom.Element]bool)
	var out []*dom.Element
	for _, el := range q.elements {
		for _, p := range el.Parents() {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return ElementQuery{elements: out}
}

// Closest returns, for each wrapped element, the nearest ancestor (or
// itself) matching selector.
func (q ElementQuery) Closest(selector string) ElementQuery {
	seen := make(map[*dom.Element]bool)
	var out []*dom.Element
	for _, el := range q.elements {
		c, err := el.Closest(selector)
		if err == nil && c != nil && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return ElementQuery{elements: out}
}

// NextSibling returns, for each wrapped element, the next Element sibling.
func (q ElementQuery) NextSibling() ElementQuery {
	var out []*dom.Element
	for _, el := range q.elements {
		if n := elementAfter(el); n != nil {
			out = append(out, n)
		}
	}
	return ElementQuery{elements: out}
}

// PrevSibling returns, for each wrapped element, the previous Element sibling.
func (q ElementQuery) PrevSibling() ElementQuery {
	var out []*dom.Element
	for _, el := range q.elements {
		if p := elementBefore(el); p != nil {
			out = append(out, p)
		}
	}
	return ElementQuery{elements: out}
}

// Siblings returns every Element sibling of every wrapped element,
// excluding the element itself.
func (q ElementQuery) Siblings() ElementQuery {
	var out []*dom.Element
	for _, el := range q.elements {
		parent := el.Parent()
		if parent == nil {
			continue
		}
		for _, c := range parent.Children() {
			if sib, ok := c.(*dom.Element); ok && sib != el {
				out = append(out, sib)
			}
		}
	}
	return ElementQuery{elements: out}
}

func elementAfter(el *dom.Element) *dom.Element {
	for n := dom.NextSibling(el); n != nil; n = dom.NextSibling(n) {
		if e, ok := n.(*dom.Element); ok {
			return e
		}
	}
	return nil
}

func elementBefore(el *dom.Element) *dom.Element {
	for n := dom.PreviousSibling(el); n != nil; n = dom.PreviousSibling(n) {
		if e, ok := n.(*dom.Element); ok {
			return e
		}
	}
	return nil
}

// --- filters ----------------------------------------------------------

// HasAttribute keeps elements carrying the named attribute.
func (q ElementQuery) HasAttribute(name string) ElementQuery {
	return q.Filter(func(e *dom.Element) bool { return e.HasAttribute(name) })
}

// HasClass keeps elements with the given CSS class.
func (q ElementQuery) HasClass(name string) ElementQuery {
	return q.Filter(func(e *dom.Element) bool { return e.HasClass(name) })
}

// HasTag keeps elements with the given tag name.
func (q ElementQuery) HasTag(name string) ElementQuery {
	return q.Filter(func(e *dom.Element) bool { return strings.EqualFold(e.TagName, name) })
}

// ContainingText keeps elements whose text content contains text.
func (q ElementQuery) ContainingText(text string) ElementQuery {
	return q.Filter(func(e *dom.Element) bool { return strings.Contains(e.TextContent(), text) })
}

// Filter keeps elements satisfying predicate.
func (q ElementQuery) Filter(predicate func(*dom.Element) bool) ElementQuery {
	var out []*dom.Element
	for _, el := range q.elements {
		if predicate(el) {
			out = append(out, el)
		}
	}
	return ElementQuery{elements: out}
}

// Not keeps elements that do NOT match selector.
func (q ElementQuery) Not(selector string) ElementQuery {
	sel, err := css.Parse(selector)
	if err != nil {
		return q
	}
	return q.Filter(func(e *dom.Element) bool { return !sel.Match(e) })
}

// IsSelector keeps elements that match selector (unlike Is, which reports
// a single bool across the whole set).
func (q ElementQuery) IsSelector(selector string) ElementQuery {
	sel, err := css.Parse(selector)
	if err != nil {
		return ElementQuery{}
	}
	return q.Filter(func(e *dom.Element) bool { return sel.Match(e) })
}

// --- slicing ------------------------------------------------------------

// First n elements (fewer if the set is smaller).
func (q ElementQuery) FirstN(n int) ElementQuery { return q.Slice(0, n) }

// LastN elements.
func (q ElementQuery) LastN(n int) ElementQuery {
	if n < 0 {
		n = 0
	}
	start := len(q.elements) - n
	if start < 0 {
		start = 0
	}
	return q.Slice(start, len(q.elements))
}

// Skip drops the first n elements.
func (q ElementQuery) Skip(n int) ElementQuery { return q.Slice(n, len(q.elements)) }

// Slice returns elements [a, b), clamped to bounds.
func (q ElementQuery) Slice(a, b int) ElementQuery {
	if a < 0 {
		a = 0
	}
	if b > len(q.elements) {
		b = len(q.elements)
	}
	if a >= b {
		return ElementQuery{}
	}
	out := make([]*dom.Element, b-a)
	copy(out, q.elements[a:b])
	return ElementQuery{elements: out}
}

// Eq returns a single-element query at index i, or empty if out of range.
func (q ElementQuery) Eq(i int) ElementQuery { return q.Slice(i, i+1) }

// Gt returns elements with index strictly greater than i.
func (q ElementQuery) Gt(i int) ElementQuery { return q.Slice(i+1, len(q.elements)) }

// Lt returns elements with index strictly less than i.
func (q ElementQuery) Lt(i int) ElementQuery { return q.Slice(0, i) }

// Even returns elements at even indices (0-based: 0, 2, 4, ...).
func (q ElementQuery) Even() ElementQuery { return q.parity(0) }

// Odd returns elements at odd indices (1, 3, 5, ...).
func (q ElementQuery) Odd() ElementQuery { return q.parity(1) }

func (q ElementQuery) parity(rem int) ElementQuery {
	var out []*dom.Element
	for i, el := range q.elements {
		if i%2 == rem {
			out = append(out, el)
		}
	}
	return ElementQuery{elements: out}
}

// --- extraction ---------------------------------------------------------

// ExtractAttributes returns the named attribute's value from each element
// (empty string where absent).
func (q ElementQuery) ExtractAttributes(name string) []string {
	out := make([]string, len(q.elements))
	for i, el := range q.elements {
		out[i] = el.GetAttribute(name)
	}
	return out
}

// ExtractTexts returns TextContent() of each element.
func (q ElementQuery) ExtractTexts() []string {
	out := make([]string, len(q.elements))
	for i, el := range q.elements {
		out[i] = el.TextContent()
	}
	return out
}

// ExtractOwnTexts returns OwnText() of each element.
func (q ElementQuery) ExtractOwnTexts() []string {
	out := make([]string, len(q.elements))
	for i, el := range q.elements {
		out[i] = el.OwnText()
	}
	return out
}

// Map applies f to every element and collects the results.
func Map[T any](q ElementQuery, f func(*dom.Element) T) []T {
	out := make([]T, len(q.elements))
	for i, el := range q.elements {
		out[i] = f(el)
	}
	return out
}

// Each invokes f for every element, in order, and returns q for chaining.
func (q ElementQuery) Each(f func(int, *dom.Element)) ElementQuery {
	for i, el := range q.elements {
		f(i, el)
	}
	return q
}
