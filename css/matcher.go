package css

import (
	"strings"

	"github.com/MeKo-Christian/htmlkit/dom"
)

// Matches reports whether elem satisfies any selector in list (§4.4).
func Matches(elem *dom.Element, list *SelectorList) bool {
	for _, sel := range list.Selectors {
		if matchSelector(elem, sel) {
			return true
		}
	}
	return false
}

// matchSelector matches right-to-left: the rightmost compound must match
// elem itself; earlier compounds are matched against candidates reached by
// walking the combinator chain backwards.
func matchSelector(elem *dom.Element, sel Selector) bool {
	if len(sel.Parts) == 0 {
		return false
	}
	last := len(sel.Parts) - 1
	if !matchCompound(elem, sel.Parts[last].Compound) {
		return false
	}
	current := elem
	for i := last - 1; i >= 0; i-- {
		comb := sel.Parts[i+1].Combinator
		compound := sel.Parts[i].Compound
		switch comb {
		case Descendant:
			found := false
			for anc := parentElement(current); anc != nil; anc = parentElement(anc) {
				if matchCompound(anc, compound) {
					current = anc
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case Child:
			parent := parentElement(current)
			if parent == nil || !matchCompound(parent, compound) {
				return false
			}
			current = parent
		case Adjacent:
			prev := previousElementSibling(current)
			if prev == nil || !matchCompound(prev, compound) {
				return false
			}
			current = prev
		case General:
			found := false
			for sib := previousElementSibling(current); sib != nil; sib = previousElementSibling(sib) {
				if matchCompound(sib, compound) {
					current = sib
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func matchCompound(elem *dom.Element, c CompoundSelector) bool {
	for _, s := range c.Simples {
		if !matchSimple(elem, s) {
			return false
		}
	}
	return true
}

func matchSimple(elem *dom.Element, s SimpleSelector) bool {
	switch s.Kind {
	case Universal:
		return true
	case Type:
		if elem.Namespace == dom.NamespaceHTML {
			return strings.EqualFold(elem.TagName, s.Name)
		}
		return elem.TagName == s.Name
	case Class:
		return elem.HasClass(s.Name)
	case ID:
		return elem.ID() == s.Name
	case Attribute:
		return matchAttribute(elem, s)
	case PseudoClass:
		return matchPseudoClass(elem, s)
	case PseudoElement:
		return false // §4.4: pseudo-elements never match real elements
	default:
		return false
	}
}

func matchAttribute(elem *dom.Element, s SimpleSelector) bool {
	val, ok := elem.Attributes.Get(s.Name)
	if !ok {
		return false
	}
	switch s.Op {
	case AttrExists:
		return true
	case AttrEquals:
		return val == s.Val
	case AttrContains:
		return s.Val != "" && strings.Contains(val, s.Val)
	case AttrStartsWith:
		return s.Val != "" && strings.HasPrefix(val, s.Val)
	case AttrEndsWith:
		return s.Val != "" && strings.HasSuffix(val, s.Val)
	case AttrWordMatch:
		for _, w := range strings.Fields(val) {
			if w == s.Val {
				return true
			}
		}
		return false
	case AttrLangMatch:
		return val == s.Val || strings.HasPrefix(val, s.Val+"-")
	default:
		return false
	}
}

func matchPseudoClass(elem *dom.Element, s SimpleSelector) bool {
	switch s.Name {
	case "first-child":
		return isFirstChild(elem)
	case "last-child":
		return isLastChild(elem)
	case "only-child":
		return isFirstChild(elem) && isLastChild(elem)
	case "empty":
		return isEmpty(elem)
	case "root":
		return isRoot(elem)
	case "first-of-type":
		return isFirstOfType(elem)
	case "last-of-type":
		return isLastOfType(elem)
	case "only-of-type":
		return isFirstOfType(elem) && isLastOfType(elem)
	case "nth-child":
		return s.HasNth && matchesNth(indexAmongSiblings(elem), s.NthA, s.NthB)
	case "nth-last-child":
		return s.HasNth && matchesNth(indexFromEndAmongSiblings(elem), s.NthA, s.NthB)
	case "nth-of-type":
		return s.HasNth && matchesNth(indexAmongSameType(elem), s.NthA, s.NthB)
	case "nth-last-of-type":
		return s.HasNth && matchesNth(indexFromEndAmongSameType(elem), s.NthA, s.NthB)
	case "not":
		return s.Nested != nil && !Matches(elem, s.Nested)
	case "is", "where":
		return s.Nested != nil && Matches(elem, s.Nested)
	case "has":
		return s.Nested != nil && matchesHas(elem, s.Nested)
	case "disabled":
		return elem.HasAttribute("disabled")
	case "enabled":
		return isFormElement(elem) && !elem.HasAttribute("disabled")
	case "checked":
		return elem.HasAttribute("checked") || elem.HasAttribute("selected")
	case "link":
		return elem.TagName == "a" && elem.HasAttribute("href")
	case "hover", "active", "focus", "visited":
		return false // §4.4: no document interaction state is modeled
	default:
		return false
	}
}

var formElements = map[string]bool{
	"input": true, "button": true, "select": true, "textarea": true, "option": true, "fieldset": true,
}

func isFormElement(elem *dom.Element) bool {
	return formElements[elem.TagName]
}

// matchesHas implements §4.4.2: true if some descendant (or, when the
// nested list's selectors start with an explicit combinator, the
// corresponding sibling/descendant) matches with elem as anchor.
func matchesHas(elem *dom.Element, list *SelectorList) bool {
	for _, sel := range list.Selectors {
		if hasMatchSelector(elem, sel) {
			return true
		}
	}
	return false
}

func hasMatchSelector(anchor *dom.Element, sel Selector) bool {
	if len(sel.Parts) == 0 {
		return false
	}
	// A relative selector's first combinator describes the anchor's
	// relationship to the first compound; Descendant here means "any
	// descendant of anchor", not "any ancestor of a candidate".
	first := sel.Parts[0]
	switch first.Combinator {
	case Child:
		for _, c := range anchor.ChildElements() {
			if matchFromCandidate(c, sel, 1) {
				return true
			}
		}
		return false
	case Adjacent:
		if sib := nextElementSibling(anchor); sib != nil && matchFromCandidate(sib, sel, 1) {
			return true
		}
		return false
	case General:
		for sib := nextElementSibling(anchor); sib != nil; sib = nextElementSibling(sib) {
			if matchFromCandidate(sib, sel, 1) {
				return true
			}
		}
		return false
	default: // Descendant: search every descendant
		return anyDescendant(anchor, func(d *dom.Element) bool {
			return matchFromCandidate(d, sel, 1)
		})
	}
}

// matchFromCandidate checks whether candidate satisfies sel.Parts[0] and,
// if there are further parts, continues matching forward from candidate.
func matchFromCandidate(candidate *dom.Element, sel Selector, nextIdx int) bool {
	if !matchCompound(candidate, sel.Parts[0].Compound) {
		return false
	}
	if nextIdx >= len(sel.Parts) {
		return true
	}
	// Match the remaining parts of the chain forward from candidate.
	return matchForward(candidate, sel.Parts[nextIdx:])
}

func matchForward(current *dom.Element, parts []SelectorPart) bool {
	if len(parts) == 0 {
		return true
	}
	part := parts[0]
	switch part.Combinator {
	case Child:
		for _, c := range current.ChildElements() {
			if matchCompound(c, part.Compound) && matchForward(c, parts[1:]) {
				return true
			}
		}
	case Adjacent:
		if sib := nextElementSibling(current); sib != nil && matchCompound(sib, part.Compound) {
			return matchForward(sib, parts[1:])
		}
	case General:
		for sib := nextElementSibling(current); sib != nil; sib = nextElementSibling(sib) {
			if matchCompound(sib, part.Compound) && matchForward(sib, parts[1:]) {
				return true
			}
		}
	default: // Descendant
		return anyDescendant(current, func(d *dom.Element) bool {
			return matchCompound(d, part.Compound) && matchForward(d, parts[1:])
		})
	}
	return false
}

func anyDescendant(root *dom.Element, pred func(*dom.Element) bool) bool {
	for _, child := range root.Children() {
		el, ok := child.(*dom.Element)
		if !ok {
			continue
		}
		if pred(el) || anyDescendant(el, pred) {
			return true
		}
	}
	return false
}

func parentElement(elem *dom.Element) *dom.Element {
	if el, ok := elem.Parent().(*dom.Element); ok {
		return el
	}
	return nil
}

func previousElementSibling(elem *dom.Element) *dom.Element {
	for n := dom.PreviousSibling(elem); n != nil; n = dom.PreviousSibling(n) {
		if el, ok := n.(*dom.Element); ok {
			return el
		}
	}
	return nil
}

func nextElementSibling(elem *dom.Element) *dom.Element {
	for n := dom.NextSibling(elem); n != nil; n = dom.NextSibling(n) {
		if el, ok := n.(*dom.Element); ok {
			return el
		}
	}
	return nil
}

func elementSiblings(elem *dom.Element) []*dom.Element {
	parent := elem.Parent()
	if parent == nil {
		return []*dom.Element{elem}
	}
	var out []*dom.Element
	for _, c := range parent.Children() {
		if el, ok := c.(*dom.Element); ok {
			out = append(out, el)
		}
	}
	return out
}

func sameTypeSiblings(elem *dom.Element) []*dom.Element {
	parent := elem.Parent()
	if parent == nil {
		return []*dom.Element{elem}
	}
	var out []*dom.Element
	for _, c := range parent.Children() {
		if el, ok := c.(*dom.Element); ok && strings.EqualFold(el.TagName, elem.TagName) {
			out = append(out, el)
		}
	}
	return out
}

func indexAmongSiblings(elem *dom.Element) int {
	for i, s := range elementSiblings(elem) {
		if s == elem {
			return i + 1
		}
	}
	return 0
}

func indexFromEndAmongSiblings(elem *dom.Element) int {
	sibs := elementSiblings(elem)
	for i, s := range sibs {
		if s == elem {
			return len(sibs) - i
		}
	}
	return 0
}

func indexAmongSameType(elem *dom.Element) int {
	for i, s := range sameTypeSiblings(elem) {
		if s == elem {
			return i + 1
		}
	}
	return 0
}

func indexFromEndAmongSameType(elem *dom.Element) int {
	sibs := sameTypeSiblings(elem)
	for i, s := range sibs {
		if s == elem {
			return len(sibs) - i
		}
	}
	return 0
}

func isFirstChild(elem *dom.Element) bool {
	sibs := elementSiblings(elem)
	return len(sibs) > 0 && sibs[0] == elem
}

func isLastChild(elem *dom.Element) bool {
	sibs := elementSiblings(elem)
	return len(sibs) > 0 && sibs[len(sibs)-1] == elem
}

func isFirstOfType(elem *dom.Element) bool {
	sibs := sameTypeSiblings(elem)
	return len(sibs) > 0 && sibs[0] == elem
}

func isLastOfType(elem *dom.Element) bool {
	sibs := sameTypeSiblings(elem)
	return len(sibs) > 0 && sibs[len(sibs)-1] == elem
}

func isEmpty(elem *dom.Element) bool {
	for _, child := range elem.Children() {
		switch c := child.(type) {
		case *dom.Element:
			return false
		case *dom.TextNode:
			if c.Data != "" {
				return false
			}
		}
	}
	return true
}

func isRoot(elem *dom.Element) bool {
	_, ok := elem.Parent().(*dom.Document)
	return ok
}

// matchesNth checks whether a 1-based index satisfies An+B (§4.4.1).
func matchesNth(index, a, b int) bool {
	if index == 0 {
		return false
	}
	if a == 0 {
		return index == b
	}
	diff := index - b
	if a > 0 {
		return diff >= 0 && diff%a == 0
	}
	return diff <= 0 && diff%a == 0
}

// FindAll returns every element in root's subtree (root included) matching
// list, in document order with duplicates removed (§4.4).
func FindAll(root *dom.Element, list *SelectorList) []*dom.Element {
	seen := make(map[*dom.Element]bool)
	var out []*dom.Element
	var walk func(*dom.Element)
	walk = func(el *dom.Element) {
		if Matches(el, list) && !seen[el] {
			seen[el] = true
			out = append(out, el)
		}
		for _, c := range el.Children() {
			if child, ok := c.(*dom.Element); ok {
				walk(child)
			}
		}
	}
	walk(root)
	return out
}

// FindFirst returns the first element in root's subtree (root excluded,
// descendants only — Query semantics) matching list, or nil.
func FindFirst(root *dom.Element, list *SelectorList) *dom.Element {
	var found *dom.Element
	var walk func(*dom.Element) bool
	walk = func(el *dom.Element) bool {
		for _, c := range el.Children() {
			child, ok := c.(*dom.Element)
			if !ok {
				continue
			}
			if Matches(child, list) {
				found = child
				return true
			}
			if walk(child) {
				return true
			}
		}
		return false
	}
	walk(root)
	return found
}

// FindAllDescendants is FindAll but excludes root itself, matching
// Element.Query semantics (descendants only).
func FindAllDescendants(root *dom.Element, list *SelectorList) []*dom.Element {
	seen := make(map[*dom.Element]bool)
	var out []*dom.Element
	var walk func(*dom.Element)
	walk = func(el *dom.Element) {
		for _, c := range el.Children() {
			child, ok := c.(*dom.Element)
			if !ok {
				continue
			}
			if Matches(child, list) && !seen[child] {
				seen[child] = true
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(root)
	return out
}
