package query

import "github.com/MeKo-Christian/htmlkit/errors"

// Xpath is reserved for a future XPath evaluator. The narrowed spec this
// module implements does not include one; both entry points always fail.
func (q ElementQuery) Xpath(expression string) (ElementQuery, error) {
	return ElementQuery{}, errors.ErrNotImplemented
}

// Xpath evaluates expression against root. Not implemented.
func Xpath(root ElementQuery, expression string) (ElementQuery, error) {
	return ElementQuery{}, errors.ErrNotImplemented
}
