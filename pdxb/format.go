// Package pdxb implements a decoder and encoder for the binary variant of the
// Paradox asset container format, used for mesh (.mesh) and animation (.anim)
// files.
//
// The easiest way to decode and encode files is through the functions Decode,
// Encode, ReadFile and WriteFile. These decode and encode directly between
// bytes and trees of pdxfile.Node.
//
// A file is a 4-byte magic followed by a stream of tokens. An object token
// opens a node; its depth is given by a run of '[' bytes, followed by a
// nul-terminated tag. A property token, introduced by '!', attaches a typed
// array to the most recently opened node. Nothing in the stream closes a
// node: a following object token of the same or lesser depth implies it.
//
// Decoding is purely byte-driven. Encoding is driven by a Schema per
// document Kind, which fixes the order of attributes and children the engine
// expects, independently of the order in which they were set on the tree.
package pdxb

// Kind indicates which document schema the codec follows.
type Kind uint8

const (
	Mesh Kind = iota // Data is handled as a mesh file: geometry, skeletons and locators.
	Anim             // Data is handled as an animation file.
)

func (k Kind) String() string {
	switch k {
	case Mesh:
		return "mesh"
	case Anim:
		return "anim"
	}
	return "invalid"
}

// BinaryMagic is the signature of a binary asset file.
const BinaryMagic = "@@b@"

// TextMagic is the signature of the plain-text variant of the format, which
// this package does not handle.
const TextMagic = "@@t@"

// AssetVersion is the name of the root attribute holding the asset version.
const AssetVersion = "pdxasset"

// Token lead bytes and data type tags.
const (
	objectMarker   = '['
	propertyMarker = '!'

	typeInt    = 'i'
	typeFloat  = 'f'
	typeString = 's'
)

// maxObjectName is the exclusive upper bound of the byte length of an object
// tag.
const maxObjectName = 64

// maxPropertyName is the largest byte length of a property name. The length
// is stored in a signed byte.
const maxPropertyName = 127

// defaultAssetVersion is written when the root carries no asset version.
var defaultAssetVersion = []int32{1, 0}
