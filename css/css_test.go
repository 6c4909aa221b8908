package css

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MeKo-Christian/htmlkit/dom"
)

func buildDOM() (*dom.Document, *dom.Element, *dom.Element, *dom.Element) {
	doc := dom.NewDocument("")
	htmlEl := dom.NewElement("html")
	doc.AppendChild(htmlEl)

	body := dom.NewElement("body")
	htmlEl.AppendChild(body)

	div := dom.NewElement("div")
	div.SetAttribute("id", "main")
	div.SetAttribute("class", "container active")
	body.AppendChild(div)

	p1 := dom.NewElement("p")
	p1.SetAttribute("class", "intro")
	p1.AppendChild(dom.NewTextNode("First"))
	div.AppendChild(p1)

	span := dom.NewElement("span")
	span.AppendChild(dom.NewTextNode("hi"))
	p1.AppendChild(span)

	p2 := dom.NewElement("p")
	p2.AppendChild(dom.NewTextNode("Second"))
	div.AppendChild(p2)

	return doc, div, p1, p2
}

func mustParse(t *testing.T, selector string) *Sel {
	t.Helper()
	sel, err := Parse(selector)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", selector, err)
	}
	return sel
}

func TestMatch_TypeClassID(t *testing.T) {
	_, div, p1, _ := buildDOM()

	if !mustParse(t, "div").Match(div) {
		t.Fatal("div should match 'div'")
	}
	if !mustParse(t, "#main").Match(div) {
		t.Fatal("div should match '#main'")
	}
	if !mustParse(t, ".active").Match(div) {
		t.Fatal("div should match '.active'")
	}
	if mustParse(t, ".active").Match(p1) {
		t.Fatal("p1 should not match '.active'")
	}
}

func TestMatch_DescendantAndChildCombinators(t *testing.T) {
	doc, _, p1, _ := buildDOM()
	root := doc.DocumentElement()

	if !mustParse(t, "div span").Match(p1.ChildElements()[0]) {
		t.Fatal("span should match 'div span'")
	}
	if !mustParse(t, "div > p").Match(p1) {
		t.Fatal("p1 should match 'div > p' (direct child)")
	}
	if mustParse(t, "body > p").Match(p1) {
		t.Fatal("p1 should not match 'body > p' (not a direct child of body)")
	}
	_ = root
}

func TestMatch_AdjacentAndGeneralSibling(t *testing.T) {
	_, _, _, p2 := buildDOM()
	if !mustParse(t, "p + p").Match(p2) {
		t.Fatal("p2 should match 'p + p'")
	}
	if !mustParse(t, "p ~ p").Match(p2) {
		t.Fatal("p2 should match 'p ~ p'")
	}
}

func TestMatch_AttributeOperators(t *testing.T) {
	_, div, _, _ := buildDOM()
	cases := []struct {
		selector string
		want     bool
	}{
		{`[class]`, true},
		{`[class="container active"]`, true},
		{`[class~="active"]`, true},
		{`[class~="nope"]`, false},
		{`[id^="ma"]`, true},
		{`[id$="ain"]`, true},
		{`[id*="ai"]`, true},
		{`[id|="main"]`, true},
	}
	for _, c := range cases {
		if got := mustParse(t, c.selector).Match(div); got != c.want {
			t.Errorf("Match(div, %q) = %v, want %v", c.selector, got, c.want)
		}
	}
}

func TestMatch_NthChild(t *testing.T) {
	_, div, p1, p2 := buildDOM()
	if !mustParse(t, "p:nth-child(1)").Match(p1) {
		t.Fatal("p1 should match ':nth-child(1)'")
	}
	if !mustParse(t, "p:nth-child(2)").Match(p2) {
		t.Fatal("p2 should match ':nth-child(2)'")
	}
	if !mustParse(t, "p:nth-child(odd)").Match(p1) {
		t.Fatal("p1 should match ':nth-child(odd)'")
	}
	_ = div
}

func TestMatch_FirstLastOnlyChild(t *testing.T) {
	_, _, p1, p2 := buildDOM()
	if !mustParse(t, ":first-child").Match(p1) {
		t.Fatal("p1 should match ':first-child'")
	}
	if !mustParse(t, ":last-child").Match(p2) {
		t.Fatal("p2 should match ':last-child'")
	}
	if mustParse(t, ":only-child").Match(p1) {
		t.Fatal("p1 should not match ':only-child' (has a sibling)")
	}
}

func TestMatch_NthLastChildAndOfType(t *testing.T) {
	_, div, p1, p2 := buildDOM()
	if !mustParse(t, "p:nth-last-child(1)").Match(p2) {
		t.Fatal("p2 should match ':nth-last-child(1)'")
	}
	if !mustParse(t, "p:first-of-type").Match(p1) {
		t.Fatal("p1 should match ':first-of-type'")
	}
	if !mustParse(t, "p:last-of-type").Match(p2) {
		t.Fatal("p2 should match ':last-of-type'")
	}
	if !mustParse(t, "p:nth-of-type(2)").Match(p2) {
		t.Fatal("p2 should match ':nth-of-type(2)'")
	}
	_ = div
}

func TestMatch_EmptyAndRoot(t *testing.T) {
	doc, div, p1, _ := buildDOM()
	htmlEl := doc.DocumentElement()
	if !mustParse(t, "html:root").Match(htmlEl) {
		t.Fatal("html element should match ':root'")
	}
	if mustParse(t, ":root").Match(div) {
		t.Fatal("div should not match ':root'")
	}
	empty := dom.NewElement("br")
	div.AppendChild(empty)
	if !mustParse(t, ":empty").Match(empty) {
		t.Fatal("freshly appended br should match ':empty'")
	}
	if mustParse(t, ":empty").Match(p1) {
		t.Fatal("p1 has children/text, should not match ':empty'")
	}
}

func TestMatch_FormAndLinkPseudoClasses(t *testing.T) {
	doc, div, _, _ := buildDOM()
	input := dom.NewElement("input")
	input.SetAttribute("disabled", "")
	div.AppendChild(input)
	if !mustParse(t, "input:disabled").Match(input) {
		t.Fatal("disabled input should match ':disabled'")
	}
	if mustParse(t, "input:enabled").Match(input) {
		t.Fatal("disabled input should not match ':enabled'")
	}

	link := dom.NewElement("a")
	link.SetAttribute("href", "/x")
	div.AppendChild(link)
	if !mustParse(t, "a:link").Match(link) {
		t.Fatal("anchor with href should match ':link'")
	}
	if mustParse(t, "a:hover").Match(link) {
		t.Fatal("no interaction state is modeled, ':hover' should never match")
	}
	_ = doc
}

func TestMatch_NotIsWhere(t *testing.T) {
	_, _, p1, p2 := buildDOM()
	if !mustParse(t, "p:not(.intro)").Match(p2) {
		t.Fatal("p2 should match 'p:not(.intro)'")
	}
	if mustParse(t, "p:not(.intro)").Match(p1) {
		t.Fatal("p1 should not match 'p:not(.intro)'")
	}
	if !mustParse(t, ":is(p, span)").Match(p1) {
		t.Fatal("p1 should match ':is(p, span)'")
	}
	if !mustParse(t, ":where(.intro)").Match(p1) {
		t.Fatal("p1 should match ':where(.intro)'")
	}
}

func TestMatch_Has(t *testing.T) {
	_, div, p1, _ := buildDOM()
	if !mustParse(t, "p:has(span)").Match(p1) {
		t.Fatal("p1 should match 'p:has(span)' (descendant form)")
	}
	if !mustParse(t, "div:has(> p)").Match(div) {
		t.Fatal("div should match 'div:has(> p)' (explicit child combinator)")
	}
	if mustParse(t, "p:has(> div)").Match(p1) {
		t.Fatal("p1 should not match 'p:has(> div)'")
	}
}

func TestMatch_SelectorList(t *testing.T) {
	_, _, p1, _ := buildDOM()
	if !mustParse(t, "span, p.intro").Match(p1) {
		t.Fatal("p1 should match 'span, p.intro' via the second branch")
	}
}

func TestSpecificity_IDBeatsClassBeatsType(t *testing.T) {
	idSel := mustParse(t, "#main").List.Selectors[0].Specificity
	classSel := mustParse(t, ".active").List.Selectors[0].Specificity
	typeSel := mustParse(t, "div").List.Selectors[0].Specificity

	if !classSel.Less(idSel) {
		t.Fatalf("class specificity %+v should be less than id specificity %+v", classSel, idSel)
	}
	if !typeSel.Less(classSel) {
		t.Fatalf("type specificity %+v should be less than class specificity %+v", typeSel, classSel)
	}
}

func TestFindAllDescendants(t *testing.T) {
	_, div, p1, p2 := buildDOM()
	list := mustParse(t, "p").List
	found := FindAllDescendants(div, list)
	if len(found) != 2 || found[0] != p1 || found[1] != p2 {
		t.Fatalf("found = %v, want [p1 p2] in document order", found)
	}
}

func TestSpecificity_CompoundSums(t *testing.T) {
	got := mustParse(t, "div.intro#main").List.Selectors[0].Specificity
	want := Specificity{IDs: 1, Classes: 1, Elements: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("specificity mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyCompoundIsError(t *testing.T) {
	if _, err := ParseStrict("div > "); err == nil {
		t.Fatal("want an error for a combinator with no following compound")
	}
}
