package dom

// selectorMatch and selectorMatchFirst are supplied by the css package via
// SetSelectorMatch/SetSelectorMatchFirst. dom cannot import css directly:
// css compiles selectors into an AST that walks *dom.Element, so the
// dependency has to run dom -> css at call time while staying css -> dom at
// compile time. Package css's init registers the real implementations;
// until then these report "no match" rather than panicking, so dom remains
// usable standalone (e.g. in tests that never touch selectors).
var selectorMatch = func(_ *Element, _ string) ([]*Element, error) {
	return nil, nil
}

var selectorMatchFirst = func(_ *Element, _ string) (*Element, error) {
	return nil, nil
}

// SetSelectorMatch installs the Query implementation. Called from the css
// package's init.
func SetSelectorMatch(fn func(root *Element, selector string) ([]*Element, error)) {
	selectorMatch = fn
}

// SetSelectorMatchFirst installs the QueryFirst implementation. Called from
// the css package's init.
func SetSelectorMatchFirst(fn func(root *Element, selector string) (*Element, error)) {
	selectorMatchFirst = fn
}
