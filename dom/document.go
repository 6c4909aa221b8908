package dom

// Document is the root of a parsed tree: exactly one per parse, holding the
// original source text and the ordered children of the root context (§3).
type Document struct {
	baseNode

	// Source is the text the Document was parsed from.
	Source string

	// Doctype is set if a DOCTYPE declaration was seen; nil otherwise. Only
	// the name is tracked (§4.2); public/system identifiers are not part of
	// this tokenizer's DOCTYPE token.
	Doctype *Doctype
}

// Doctype records a DOCTYPE declaration's name.
type Doctype struct {
	parent Node
	Name   string
}

func NewDoctype(name string) *Doctype { return &Doctype{Name: name} }

func (d *Doctype) Type() NodeType        { return DoctypeNodeType }
func (d *Doctype) Parent() Node          { return d.parent }
func (d *Doctype) SetParent(parent Node) { d.parent = parent }
func (d *Doctype) Children() []Node      { return nil }
func (d *Doctype) AppendChild(_ Node)    {}
func (d *Doctype) InsertBefore(_, _ Node) {}
func (d *Doctype) RemoveChild(_ Node)    {}
func (d *Doctype) HasChildNodes() bool   { return false }

// NewDocument returns an empty Document over source.
func NewDocument(source string) *Document {
	d := &Document{Source: source}
	d.baseNode.init(d)
	return d
}

func (d *Document) Type() NodeType { return DocumentNodeType }

// DocumentElement returns the root element (conventionally <html>), or nil
// if the Document has no element child.
func (d *Document) DocumentElement() *Element {
	for _, child := range d.children {
		if el, ok := child.(*Element); ok {
			return el
		}
	}
	return nil
}

// Head returns the <head> element reachable from the root element, or nil.
func (d *Document) Head() *Element {
	return findChildTag(d.DocumentElement(), "head")
}

// Body returns the root element if it is <body>, otherwise the <body> child
// of the root element, or nil.
func (d *Document) Body() *Element {
	if root := d.DocumentElement(); root != nil && root.TagName == "body" {
		return root
	}
	return findChildTag(d.DocumentElement(), "body")
}

func findChildTag(root *Element, tag string) *Element {
	if root == nil {
		return nil
	}
	for _, child := range root.Children() {
		if el, ok := child.(*Element); ok && el.TagName == tag {
			return el
		}
	}
	return nil
}

// Title returns the text content of the <title> element under <head>, or
// "" if absent.
func (d *Document) Title() string {
	head := d.Head()
	if head == nil {
		return ""
	}
	if title := findChildTag(head, "title"); title != nil {
		return title.TextContent()
	}
	return ""
}

// Query returns every element in the Document matching selector. The
// narrowed tree builder never synthesizes a single <html>/<body> root, so a
// document can have several top-level element siblings (e.g. three sibling
// <p>s at the root); every one of them, and its own subtree, is searched.
func (d *Document) Query(selector string) ([]*Element, error) {
	var results []*Element
	seen := make(map[*Element]bool)
	for _, child := range d.children {
		root, ok := child.(*Element)
		if !ok {
			continue
		}
		matched, err := root.Query(selector)
		if err != nil {
			return nil, err
		}
		if ok, _ := root.Matches(selector); ok {
			matched = append([]*Element{root}, matched...)
		}
		for _, el := range matched {
			if !seen[el] {
				seen[el] = true
				results = append(results, el)
			}
		}
	}
	return results, nil
}

// QueryFirst returns the first element matching selector in document order.
func (d *Document) QueryFirst(selector string) (*Element, error) {
	results, err := d.Query(selector)
	if err != nil || len(results) == 0 {
		return nil, err
	}
	return results[0], nil
}
