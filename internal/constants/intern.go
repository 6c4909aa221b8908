package constants

import "golang.org/x/net/html/atom"

// InternTag returns a canonical, interned string for a known HTML tag name
// and reports whether the name is one of the atoms golang.org/x/net/html/atom
// knows about. Known tag names share a single backing string across the
// whole process, which avoids repeated allocation for the handful of tag
// names ("div", "span", "p", ...) that dominate any real document, the same
// trick golang.org/x/net/html itself uses to avoid per-node string copies.
//
// Unknown names (custom elements, typos, foreign markup) are returned
// unchanged — interning is an optimization, not a validation step.
func InternTag(name string) (string, bool) {
	a := atom.Lookup([]byte(name))
	if a == 0 {
		return name, false
	}
	return a.String(), true
}
