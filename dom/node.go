// Package dom holds the tree produced by the tree builder: Document,
// Element, TextNode, and CommentNode, connected by parent/child/sibling
// links (§3 of the specification).
package dom

// NodeType distinguishes the concrete node kinds, using the same numbering
// the DOM specification uses so callers already familiar with DOM don't have
// to relearn a new scheme.
type NodeType int

const (
	ElementNodeType  NodeType = 1
	TextNodeType     NodeType = 3
	CommentNodeType  NodeType = 8
	DocumentNodeType NodeType = 9
	DoctypeNodeType  NodeType = 10
)

func (nt NodeType) String() string {
	switch nt {
	case ElementNodeType:
		return "Element"
	case TextNodeType:
		return "Text"
	case CommentNodeType:
		return "Comment"
	case DocumentNodeType:
		return "Document"
	case DoctypeNodeType:
		return "Doctype"
	default:
		return "Unknown"
	}
}

// Node is implemented by every tree member: Document, Element, TextNode,
// and CommentNode.
type Node interface {
	Type() NodeType
	Parent() Node
	SetParent(parent Node)
	Children() []Node
	AppendChild(child Node)
	InsertBefore(newChild, refChild Node)
	RemoveChild(child Node)
	HasChildNodes() bool
}

// baseNode implements the parent/child bookkeeping shared by every
// container node (Document, Element). Leaf nodes
// (TextNode, CommentNode) implement Node directly since they never have
// children.
type baseNode struct {
	self     Node
	parent   Node
	children []Node
}

func (n *baseNode) init(self Node) {
	n.self = self
}

func (n *baseNode) Parent() Node { return n.parent }

func (n *baseNode) SetParent(parent Node) { n.parent = parent }

func (n *baseNode) Children() []Node { return n.children }

func (n *baseNode) AppendChild(child Node) {
	if n.self != nil {
		child.SetParent(n.self)
	}
	n.children = append(n.children, child)
}

func (n *baseNode) InsertBefore(newChild, refChild Node) {
	if refChild == nil {
		n.AppendChild(newChild)
		return
	}
	for i, child := range n.children {
		if child == refChild {
			if n.self != nil {
				newChild.SetParent(n.self)
			}
			n.children = append(n.children[:i], append([]Node{newChild}, n.children[i:]...)...)
			return
		}
	}
	n.AppendChild(newChild)
}

func (n *baseNode) RemoveChild(child Node) {
	for i, c := range n.children {
		if c == child {
			child.SetParent(nil)
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *baseNode) HasChildNodes() bool { return len(n.children) > 0 }

// NextSibling returns the node immediately after child among its parent's
// children, or nil if child is the last child or has no parent.
func NextSibling(child Node) Node {
	parent := child.Parent()
	if parent == nil {
		return nil
	}
	siblings := parent.Children()
	for i, c := range siblings {
		if c == child {
			if i+1 < len(siblings) {
				return siblings[i+1]
			}
			return nil
		}
	}
	return nil
}

// PreviousSibling returns the node immediately before child among its
// parent's children, or nil if child is the first child or has no parent.
func PreviousSibling(child Node) Node {
	parent := child.Parent()
	if parent == nil {
		return nil
	}
	siblings := parent.Children()
	for i, c := range siblings {
		if c == child {
			if i > 0 {
				return siblings[i-1]
			}
			return nil
		}
	}
	return nil
}
