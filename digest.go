package pdxfile

import (
	"encoding/binary"
	"hash"
	"math"

	"golang.org/x/crypto/blake2b"
)

// Digest returns a blake2b-256 fingerprint of the subtree rooted at the node.
// It covers tags, attribute names and values in their set order, and the
// order of children. Floats contribute their exact bit patterns. Two trees
// with equal digests are equal for the purpose of round-trip comparison.
func (n *Node) Digest() [blake2b.Size256]byte {
	h, _ := blake2b.New256(nil)
	digestNode(h, n)
	var sum [blake2b.Size256]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func digestString(h hash.Hash, s string) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(len(s)))
	h.Write(b[:])
	h.Write([]byte(s))
}

func digestNode(h hash.Hash, n *Node) {
	var b [4]byte
	digestString(h, n.Tag)

	binary.LittleEndian.PutUint32(b[:], uint32(n.Attributes.Len()))
	h.Write(b[:])
	for _, name := range n.Attributes.names {
		digestString(h, name)
		value := n.Attributes.values[name]
		h.Write([]byte{byte(value.Type())})
		binary.LittleEndian.PutUint32(b[:], uint32(value.Len()))
		h.Write(b[:])
		switch value := value.(type) {
		case ValueInt:
			for _, v := range value {
				binary.LittleEndian.PutUint32(b[:], uint32(v))
				h.Write(b[:])
			}
		case ValueFloat:
			for _, v := range value {
				binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
				h.Write(b[:])
			}
		default:
			digestString(h, value.String())
		}
	}

	binary.LittleEndian.PutUint32(b[:], uint32(len(n.children)))
	h.Write(b[:])
	for _, child := range n.children {
		digestNode(h, child)
	}
}
