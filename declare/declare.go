// The declare package is used to generate pdxfile trees in a declarative
// style.
//
// Most items have a Declare method, which returns a new pdxfile structure
// corresponding to the declared item.
//
// The easiest way to use this package is to import it directly into the
// current package:
//
//     import . "github.com/io-pdx/pdxfile/declare"
//
// This allows the package's identifiers to be used directly without a
// qualifier.
package declare

import (
	"github.com/io-pdx/pdxfile"
)

// element is implemented by declarations that can be within a Root or Node
// declaration.
type element interface {
	element()
}

// Root declares the root of a tree, tagged "File". It is a list that contains
// Node and Attr declarations.
type Root []element

// Declare evaluates the Root declaration, generating the root node, its
// descendants, and attribute values.
//
// Elements are evaluated in order; if two attribute declarations have the
// same name, the latter takes precedence, keeping the position of the
// former.
func (droot Root) Declare() *pdxfile.Node {
	root := pdxfile.NewRoot()
	build(root, droot)
	return root
}

// build applies elements to n.
func build(n *pdxfile.Node, elements []element) {
	for _, e := range elements {
		switch e := e.(type) {
		case attr:
			n.Set(e.name, e.Declare())
		case node:
			build(n.NewChild(e.tag), e.elements)
		}
	}
}

// node represents the declaration of a pdxfile.Node.
type node struct {
	tag      string
	elements []element
}

func (node) element() {}

// Declare evaluates the Node declaration, generating the node, its
// descendants, and attribute values. The node has no parent.
func (dnode node) Declare() *pdxfile.Node {
	n := pdxfile.NewNode(dnode.tag)
	build(n, dnode.elements)
	return n
}

// Node declares a pdxfile.Node. It defines a node with a tag, and a series of
// "elements". An element can be an Attr declaration, which defines an
// attribute of the node. An element can also be another Node declaration,
// which becomes a child of the node.
func Node(tag string, elements ...element) node {
	return node{tag: tag, elements: elements}
}

type attr struct {
	name  string
	typ   Type
	value []interface{}
}

func (attr) element() {}

// Attr declares an attribute of a pdxfile.Node. It defines the name of the
// attribute, a type corresponding to a pdxfile.Value, and the value of the
// attribute.
//
// The value argument may be zero or more values of any type, which are
// asserted to a pdxfile.Value corresponding to the given type. Values that
// cannot be asserted become the zero value of the element type.
//
// The value may be a single pdxfile.Value that corresponds to the given type
// (e.g. pdxfile.ValueString for String), in which case the value itself is
// used.
//
// Otherwise, for a given type, values must be the following:
//
//     Int:
//         Any number of numbers, each converted to int32.
//
//     Float:
//         Any number of numbers, each converted to float32.
//
//     String:
//         A single string or []byte. Extra values are ignored.
//
//     Array:
//         Any number of values, kept as given. The array is resolved to a
//         typed value only when the tree is encoded, so that invalid arrays
//         can be declared.
func Attr(name string, typ Type, value ...interface{}) attr {
	return attr{name: name, typ: typ, value: value}
}

// Declare evaluates the Attr declaration. Since the attribute does not belong
// to any node, the name is ignored, and only the value is generated.
func (dattr attr) Declare() pdxfile.Value {
	return dattr.typ.value(dattr.value)
}
