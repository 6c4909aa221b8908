package htmlkit

import (
	"os"

	"github.com/MeKo-Christian/htmlkit/css"
	"github.com/MeKo-Christian/htmlkit/dom"
	"github.com/MeKo-Christian/htmlkit/errors"
	"github.com/MeKo-Christian/htmlkit/query"
	"github.com/MeKo-Christian/htmlkit/tokenizer"
	"github.com/MeKo-Christian/htmlkit/treebuilder"
)

// Parse tokenizes and builds text into a Document, discarding any
// recoverable errors. In Strict mode the first error still aborts the
// parse (doc is then the partial tree built up to that point); use
// ParseWithError to observe the error instead of discarding it.
func Parse(text string, opts ...Option) *dom.Document {
	doc, _ := ParseWithError(text, opts...)
	return doc
}

// ParseWithError tokenizes and builds text into a Document, returning the
// accumulated parse errors (nil if none, or if error_handling=Ignore). In
// Strict mode the first error aborts and is returned alone; doc is then the
// partial tree built up to that point.
func ParseWithError(text string, opts ...Option) (*dom.Document, error) {
	c := newConfig(opts...)
	policy := errors.NewPolicy(c.errorHandling)

	tz := tokenizer.New(text, c.tokenizerOptions(policy))
	tb := treebuilder.New(text, c.treebuilderOptions(policy))

	strict := c.errorHandling == errors.Strict
	for {
		tok := tz.Next()
		tb.ProcessToken(tok)
		if strict && len(policy.RawErrors()) > 0 {
			return tb.Document(), policy.RawErrors()[0]
		}
		if tok.Kind == tokenizer.Done {
			break
		}
	}
	tb.Finish()
	if strict && len(policy.RawErrors()) > 0 {
		return tb.Document(), policy.RawErrors()[0]
	}

	return tb.Document(), convertErrors(policy)
}

// ParseFile reads path and parses its contents.
func ParseFile(path string, opts ...Option) (*dom.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		loc := errors.Location{}
		return nil, errors.NewParseError(errors.FileReadError, loc)
	}
	return ParseWithError(string(data), opts...)
}

func convertErrors(policy *errors.Policy) error {
	errs := policy.Errors()
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.ParseErrors(errs)
}

// QueryFirst returns the first element under root matching selector, or
// nil if none match or selector is malformed.
func QueryFirst(root *dom.Document, selector string) *dom.Element {
	el, err := root.QueryFirst(selector)
	if err != nil {
		return nil
	}
	return el
}

// QueryAll returns every element under root matching selector, in document
// order, wrapped in an ElementQuery.
func QueryAll(root *dom.Document, selector string) query.ElementQuery {
	els, err := root.Query(selector)
	if err != nil {
		return query.New(nil)
	}
	return query.New(els)
}

// Matches reports whether element satisfies selector.
func Matches(element *dom.Element, selector string) bool {
	sel, err := css.Parse(selector)
	if err != nil {
		return false
	}
	return sel.Match(element)
}
