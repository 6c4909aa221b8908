package htmlkit

import (
	"testing"

	"github.com/MeKo-Christian/htmlkit/errors"
)

func TestParse_BasicDocument(t *testing.T) {
	doc := Parse(`<html><head><title>Hi</title></head><body><p class="a">text</p></body></html>`)
	if doc.Title() != "Hi" {
		t.Fatalf("Title() = %q, want %q", doc.Title(), "Hi")
	}
	if doc.Body() == nil {
		t.Fatal("Body() = nil")
	}
}

func TestParseWithError_LenientAccumulates(t *testing.T) {
	doc, err := ParseWithError(`<div>hi</span></div>`)
	if doc == nil {
		t.Fatal("doc = nil")
	}
	if err == nil {
		t.Fatal("want a non-nil error for the mismatched close tag")
	}
}

func TestParseWithError_StrictAborts(t *testing.T) {
	_, err := ParseWithError(`<div>hi</span></div>`, WithErrorHandling(errors.Strict))
	if err == nil {
		t.Fatal("want Strict mode to surface the first error")
	}
}

func TestQueryAllAndMatches(t *testing.T) {
	doc := Parse(`<ul><li class="a">1</li><li class="b">2</li></ul>`)
	all := QueryAll(doc, "li")
	if all.Len() != 2 {
		t.Fatalf("QueryAll('li').Len() = %d, want 2", all.Len())
	}
	first := QueryFirst(doc, "li.b")
	if first == nil || first.TextContent() != "2" {
		t.Fatalf("QueryFirst('li.b') = %v, want the second <li>", first)
	}
	if !Matches(first, ".b") {
		t.Fatal("Matches(first, '.b') should be true")
	}
}

func TestQueryAll_MultipleTopLevelSiblings(t *testing.T) {
	// The narrowed tree builder never synthesizes a single <html>/<body>
	// root, so three sibling <p>s at the document root stay siblings of
	// the Document itself rather than nesting under one shared ancestor.
	doc := Parse(`<p>one<p>two<p>three`)
	all := QueryAll(doc, "p")
	if all.Len() != 3 {
		t.Fatalf("QueryAll('p').Len() = %d, want 3", all.Len())
	}
}

func TestPerformancePreset(t *testing.T) {
	doc := Parse(`<div>  <!-- hidden --> <span>x</span></div>`, Performance()...)
	if got := QueryFirst(doc, "span").TextContent(); got != "x" {
		t.Fatalf("span text = %q, want x", got)
	}
}
