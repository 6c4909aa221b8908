package css

import (
	"github.com/MeKo-Christian/htmlkit/dom"
	"github.com/MeKo-Christian/htmlkit/errors"
)

// Sel is a compiled selector, ready to match against dom.Elements.
type Sel struct {
	List *SelectorList
	Raw  string
}

// Parse compiles selector using a Lenient policy (errors are collected,
// not fatal); call ParseStrict for fail-fast semantics.
func Parse(selector string) (*Sel, error) {
	return ParseWithPolicy(selector, errors.NewPolicy(errors.Lenient))
}

// ParseStrict compiles selector, aborting on the first malformed construct.
func ParseStrict(selector string) (*Sel, error) {
	return ParseWithPolicy(selector, errors.NewPolicy(errors.Strict))
}

// ParseWithPolicy compiles selector, recording diagnostics through policy.
func ParseWithPolicy(selector string, policy *errors.Policy) (*Sel, error) {
	list, err := Compile(selector, policy)
	if err != nil {
		return nil, err
	}
	return &Sel{List: list, Raw: selector}, nil
}

// Match reports whether elem itself satisfies the selector.
func (s *Sel) Match(elem *dom.Element) bool {
	return Matches(elem, s.List)
}

// String returns the original, uncompiled selector text.
func (s *Sel) String() string { return s.Raw }

// init wires Element.Query/QueryFirst to this package. dom cannot import
// css (css imports dom to walk the tree), so the dependency runs the other
// way at call time via function variables dom exposes for this purpose.
func init() {
	dom.SetSelectorMatch(func(root *dom.Element, selector string) ([]*dom.Element, error) {
		sel, err := Parse(selector)
		if err != nil {
			return nil, err
		}
		return FindAllDescendants(root, sel.List), nil
	})
	dom.SetSelectorMatchFirst(func(root *dom.Element, selector string) (*dom.Element, error) {
		sel, err := Parse(selector)
		if err != nil {
			return nil, err
		}
		return FindFirst(root, sel.List), nil
	})
}
