// The pdxfile package handles the decoding, encoding, and manipulation of
// Paradox asset data structures.
//
// An asset is an ordered, attributed tree. A tree begins with a root Node,
// tagged "File", which carries the asset version. Each Node has a tag, an
// ordered set of attributes, and an ordered list of child Nodes. Each
// attribute holds a Value: an array of integers, an array of floats, or a
// single string.
//
// Trees can be decoded from and encoded to the binary container format with
// the "pdxb" sub-package, and rendered as JSON with the "json" package.
// Trees can also be created manually, most easily through the "declare"
// sub-package.
package pdxfile

import (
	"errors"
	"fmt"
)

// RootTag is the tag of the root node of every asset tree.
const RootTag = "File"

// Node represents a single element of an asset tree.
type Node struct {
	// Tag identifies the kind of the node. For some positions, such as
	// shapes, bones and locators, the tag is the name of the scene object.
	Tag string

	// Attributes holds the attributes of the node.
	Attributes Attributes

	// Contains nodes that are the children of the current node.
	children []*Node

	// The parent of the node. Can be nil.
	parent *Node
}

// NewNode creates a new Node with the given tag.
func NewNode(tag string) *Node {
	return &Node{Tag: tag}
}

// NewRoot creates a new root Node.
func NewRoot() *Node {
	return NewNode(RootTag)
}

func (n *Node) removeChild(child *Node) {
	for i, ch := range n.children {
		if ch == child {
			n.children[i] = nil
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Parent returns the parent of the node. Can return nil if the node has no
// parent.
func (n *Node) Parent() *Node {
	return n.parent
}

// Depth returns the nesting level of the node. A node without a parent has a
// depth of 0.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// AddChild appends child to the children of the node, removing it from any
// previous parent. The function will error if child is the node or one of
// its ancestors.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return errors.New("attempt to add nil child")
	}
	if child == n {
		return fmt.Errorf("attempt to add %s as its own child", n.Tag)
	}
	if n.IsDescendantOf(child) {
		return errors.New("attempt to add child would result in circular reference")
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// NewChild creates a node with the given tag, appends it to the children of
// the node, and returns it.
func (n *Node) NewChild(tag string) *Node {
	child := &Node{Tag: tag, parent: n}
	n.children = append(n.children, child)
	return child
}

// RemoveChild detaches child from the node. Does nothing if child is not a
// child of the node.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	n.removeChild(child)
	child.parent = nil
}

// Children returns a list of children of the node, in order.
func (n *Node) Children() []*Node {
	list := make([]*Node, len(n.children))
	copy(list, n.children)
	return list
}

// Len returns the number of children of the node.
func (n *Node) Len() int {
	return len(n.children)
}

// Tags returns the distinct tags of the node's children, in the order each
// tag first appears.
func (n *Node) Tags() []string {
	seen := make(map[string]bool, len(n.children))
	tags := make([]string, 0, len(n.children))
	for _, child := range n.children {
		if !seen[child.Tag] {
			seen[child.Tag] = true
			tags = append(tags, child.Tag)
		}
	}
	return tags
}

// Member returns the children of the node that have the given tag.
func (n *Node) Member(tag string) Member {
	var m Member
	for _, child := range n.children {
		if child.Tag == tag {
			m.nodes = append(m.nodes, child)
		}
	}
	return m
}

// FindFirstChild returns the first child whose tag matches the given tag.
// Returns nil if no child was found. If recursive is true, then
// FindFirstChild will be called on descendants as well.
func (n *Node) FindFirstChild(tag string, recursive bool) *Node {
	for _, child := range n.children {
		if child.Tag == tag {
			return child
		}
	}

	if recursive {
		for _, child := range n.children {
			if desc := child.FindFirstChild(tag, true); desc != nil {
				return desc
			}
		}
	}

	return nil
}

// IsAncestorOf returns whether the node is the ancestor of another node.
func (n *Node) IsAncestorOf(descendant *Node) bool {
	if descendant != nil {
		return descendant.IsDescendantOf(n)
	}
	return false
}

// IsDescendantOf returns whether the node is the descendant of another node.
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// Clone returns a copy of the node. Each attribute and all descendants are
// copied as well. The copy has no parent.
func (n *Node) Clone() *Node {
	clone := &Node{
		Tag:        n.Tag,
		Attributes: n.Attributes.Copy(),
	}
	for _, child := range n.children {
		c := child.Clone()
		c.parent = clone
		clone.children = append(clone.children, c)
	}
	return clone
}

// Walk calls fn for the node and then for each of its descendants, parents
// before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// Get returns the value of an attribute of the node. The value will be nil
// if the attribute is not defined.
func (n *Node) Get(name string) Value {
	return n.Attributes.Get(name)
}

// Set sets the value of an attribute of the node. If value is nil, then the
// attribute is deleted.
func (n *Node) Set(name string, value Value) {
	n.Attributes.Set(name, value)
}

// String implements the fmt.Stringer interface by returning the tag of the
// node.
func (n *Node) String() string {
	return n.Tag
}

////////////////////////////////////////////////////////////////

// Shape indicates how many children a Member holds.
type Shape uint8

const (
	Absent Shape = iota // No child has the tag.
	Single              // Exactly one child has the tag.
	List                // More than one child has the tag.
)

func (s Shape) String() string {
	switch s {
	case Absent:
		return "Absent"
	case Single:
		return "Single"
	case List:
		return "List"
	}
	return "Invalid"
}

// Member is the group of children of a node that share a tag, in the order
// they were added.
type Member struct {
	nodes []*Node
}

// Shape returns whether the member is absent, a single node, or a list.
func (m Member) Shape() Shape {
	switch len(m.nodes) {
	case 0:
		return Absent
	case 1:
		return Single
	}
	return List
}

// Single returns the node of a member that has exactly one node.
func (m Member) Single() (*Node, bool) {
	if len(m.nodes) != 1 {
		return nil, false
	}
	return m.nodes[0], true
}

// First returns the first node of the member, or nil if it is absent.
func (m Member) First() *Node {
	if len(m.nodes) == 0 {
		return nil
	}
	return m.nodes[0]
}

// Nodes returns every node of the member, regardless of shape.
func (m Member) Nodes() []*Node {
	list := make([]*Node, len(m.nodes))
	copy(list, m.nodes)
	return list
}

// Len returns the number of nodes in the member.
func (m Member) Len() int {
	return len(m.nodes)
}
