package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildTree() *Document {
	doc := NewDocument("<html>...</html>")
	html := NewElement("html")
	doc.AppendChild(html)

	head := NewElement("head")
	html.AppendChild(head)
	title := NewElement("title")
	title.AppendChild(NewTextNode("Hello"))
	head.AppendChild(title)

	body := NewElement("body")
	html.AppendChild(body)

	div := NewElement("div")
	div.SetAttribute("id", "main")
	div.SetAttribute("class", "container active")
	body.AppendChild(div)

	p1 := NewElement("p")
	p1.AppendChild(NewTextNode("one"))
	div.AppendChild(p1)

	p2 := NewElement("p")
	p2.AppendChild(NewTextNode("two"))
	div.AppendChild(p2)

	return doc
}

func TestDocument_TitleHeadBody(t *testing.T) {
	doc := buildTree()
	if got := doc.Title(); got != "Hello" {
		t.Fatalf("Title() = %q, want %q", got, "Hello")
	}
	if doc.Head() == nil {
		t.Fatal("Head() = nil")
	}
	if doc.Body() == nil {
		t.Fatal("Body() = nil")
	}
}

func TestDocument_TitleEmptyWhenAbsent(t *testing.T) {
	doc := NewDocument("<html><body></body></html>")
	html := NewElement("html")
	doc.AppendChild(html)
	body := NewElement("body")
	html.AppendChild(body)
	if got := doc.Title(); got != "" {
		t.Fatalf("Title() = %q, want empty string", got)
	}
}

func TestElement_ClassNamesAndHasClass(t *testing.T) {
	doc := buildTree()
	div := doc.Body().ChildElements()[0]
	classes := div.ClassNames()
	if len(classes) != 2 || classes[0] != "container" || classes[1] != "active" {
		t.Fatalf("ClassNames() = %v, want [container active]", classes)
	}
	if !div.HasClass("active") {
		t.Fatal("HasClass(active) = false")
	}
	if div.HasClass("missing") {
		t.Fatal("HasClass(missing) = true")
	}
}

func TestElement_TextContentVsOwnText(t *testing.T) {
	doc := buildTree()
	div := doc.Body().ChildElements()[0]
	if got := div.TextContent(); got != "onetwo" {
		t.Fatalf("TextContent() = %q, want %q", got, "onetwo")
	}
	if got := div.OwnText(); got != "" {
		t.Fatalf("OwnText() = %q, want empty (text lives on children)", got)
	}
	p1 := div.ChildElements()[0]
	if got := p1.OwnText(); got != "one" {
		t.Fatalf("p1.OwnText() = %q, want %q", got, "one")
	}
}

func TestElement_ParentsAndChildElements(t *testing.T) {
	doc := buildTree()
	div := doc.Body().ChildElements()[0]
	p1 := div.ChildElements()[0]
	parents := p1.Parents()
	if len(parents) != 3 {
		t.Fatalf("Parents() = %v, want 3 ancestors (div, body, html)", parents)
	}
	if parents[0] != div {
		t.Fatalf("Parents()[0] = %v, want div", parents[0])
	}
}

func TestNextSiblingPreviousSibling(t *testing.T) {
	doc := buildTree()
	div := doc.Body().ChildElements()[0]
	p1 := div.ChildElements()[0]
	p2 := div.ChildElements()[1]

	if got := NextSibling(p1); got != Node(p2) {
		t.Fatalf("NextSibling(p1) = %v, want p2", got)
	}
	if got := PreviousSibling(p2); got != Node(p1) {
		t.Fatalf("PreviousSibling(p2) = %v, want p1", got)
	}
	if got := PreviousSibling(p1); got != nil {
		t.Fatalf("PreviousSibling(p1) = %v, want nil", got)
	}
}

func TestAttributes_SetRawFirstOccurrenceWins(t *testing.T) {
	attrs := NewAttributes()
	if ok := attrs.SetRaw("id", "first", true); !ok {
		t.Fatal("first SetRaw should succeed")
	}
	if ok := attrs.SetRaw("id", "second", true); ok {
		t.Fatal("second SetRaw for same name should report false")
	}
	v, _ := attrs.Get("id")
	if v != "first" {
		t.Fatalf("Get(id) = %q, want %q", v, "first")
	}
}

func TestAttributes_AllPreservesSourceOrder(t *testing.T) {
	attrs := NewAttributes()
	attrs.SetRaw("id", "x", true)
	attrs.SetRaw("class", "y", true)
	attrs.SetRaw("disabled", "", false)

	want := []Attribute{
		{Name: "id", Value: "x", HasValue: true},
		{Name: "class", Value: "y", HasValue: true},
		{Name: "disabled", Value: "", HasValue: false},
	}
	if diff := cmp.Diff(want, attrs.All()); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestElement_CloneDeep(t *testing.T) {
	doc := buildTree()
	div := doc.Body().ChildElements()[0]
	clone := div.Clone(true)
	if clone == div {
		t.Fatal("Clone returned same pointer")
	}
	if len(clone.ChildElements()) != len(div.ChildElements()) {
		t.Fatalf("clone has %d children, want %d", len(clone.ChildElements()), len(div.ChildElements()))
	}
	if clone.TextContent() != div.TextContent() {
		t.Fatalf("clone text = %q, want %q", clone.TextContent(), div.TextContent())
	}
}
