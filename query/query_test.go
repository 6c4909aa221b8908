package query

import (
	"testing"

	"github.com/MeKo-Christian/htmlkit/dom"
)

func buildList() (*dom.Element, []*dom.Element) {
	ul := dom.NewElement("ul")
	var items []*dom.Element
	for i := 0; i < 5; i++ {
		li := dom.NewElement("li")
		if i%2 == 0 {
			li.SetAttribute("class", "even")
		} else {
			li.SetAttribute("class", "odd")
		}
		li.AppendChild(dom.NewTextNode("item"))
		ul.AppendChild(li)
		items = append(items, li)
	}
	return ul, items
}

func TestQuery_Children(t *testing.T) {
	ul, items := buildList()
	q := New([]*dom.Element{ul}).Children()
	if q.Len() != len(items) {
		t.Fatalf("Children().Len() = %d, want %d", q.Len(), len(items))
	}
}

func TestQuery_FirstLastSlice(t *testing.T) {
	_, items := buildList()
	q := New(items)
	if q.First() != items[0] {
		t.Fatal("First() mismatch")
	}
	if q.Last() != items[4] {
		t.Fatal("Last() mismatch")
	}
	if got := q.FirstN(2).Len(); got != 2 {
		t.Fatalf("FirstN(2).Len() = %d, want 2", got)
	}
	if got := q.LastN(2).At(0); got != items[3] {
		t.Fatalf("LastN(2).At(0) = %v, want items[3]", got)
	}
	if got := q.Skip(3).Len(); got != 2 {
		t.Fatalf("Skip(3).Len() = %d, want 2", got)
	}
	if got := q.Eq(2).At(0); got != items[2] {
		t.Fatalf("Eq(2) = %v, want items[2]", got)
	}
}

func TestQuery_EvenOdd(t *testing.T) {
	_, items := buildList()
	q := New(items)
	even := q.Even()
	if even.Len() != 3 {
		t.Fatalf("Even().Len() = %d, want 3 (indices 0,2,4)", even.Len())
	}
	odd := q.Odd()
	if odd.Len() != 2 {
		t.Fatalf("Odd().Len() = %d, want 2 (indices 1,3)", odd.Len())
	}
}

func TestQuery_HasClassFilter(t *testing.T) {
	_, items := buildList()
	q := New(items).HasClass("even")
	if q.Len() != 3 {
		t.Fatalf("HasClass(even).Len() = %d, want 3", q.Len())
	}
}

func TestQuery_CssAndIs(t *testing.T) {
	ul, _ := buildList()
	q := New([]*dom.Element{ul}).Css("li.odd")
	if q.Len() != 2 {
		t.Fatalf("Css('li.odd').Len() = %d, want 2", q.Len())
	}
	if !q.Is("li") {
		t.Fatal("Is('li') should be true")
	}
	if q.Is("span") {
		t.Fatal("Is('span') should be false")
	}
}

func TestQuery_NotSelector(t *testing.T) {
	_, items := buildList()
	q := New(items).Not(".odd")
	if q.Len() != 3 {
		t.Fatalf("Not('.odd').Len() = %d, want 3", q.Len())
	}
}

func TestQuery_ExtractTexts(t *testing.T) {
	_, items := buildList()
	texts := New(items).ExtractTexts()
	if len(texts) != 5 || texts[0] != "item" {
		t.Fatalf("ExtractTexts() = %v", texts)
	}
}

func TestQuery_SiblingsNextPrev(t *testing.T) {
	_, items := buildList()
	q := New([]*dom.Element{items[2]})
	if got := q.NextSibling().At(0); got != items[3] {
		t.Fatalf("NextSibling() = %v, want items[3]", got)
	}
	if got := q.PrevSibling().At(0); got != items[1] {
		t.Fatalf("PrevSibling() = %v, want items[1]", got)
	}
	sibs := q.Siblings()
	if sibs.Len() != 4 {
		t.Fatalf("Siblings().Len() = %d, want 4", sibs.Len())
	}
}

func TestQuery_Each(t *testing.T) {
	_, items := buildList()
	count := 0
	New(items).Each(func(i int, el *dom.Element) { count++ })
	if count != len(items) {
		t.Fatalf("Each visited %d, want %d", count, len(items))
	}
}

func TestQuery_Map(t *testing.T) {
	_, items := buildList()
	tags := Map(New(items), func(el *dom.Element) string { return el.TagName })
	if len(tags) != 5 || tags[0] != "li" {
		t.Fatalf("Map() = %v", tags)
	}
}
