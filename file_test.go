package pdxfile

import (
	"reflect"
	"testing"
)

func TestNewNode(t *testing.T) {
	root := NewRoot()
	if root.Tag != RootTag {
		t.Errorf("got tag %q, expected %q", root.Tag, RootTag)
	}
	if root.Depth() != 0 {
		t.Errorf("root depth is %d", root.Depth())
	}

	object := root.NewChild("object")
	shape := object.NewChild("shape")
	if object.Parent() != root || shape.Parent() != object {
		t.Error("unexpected parents")
	}
	if object.Depth() != 1 || shape.Depth() != 2 {
		t.Errorf("unexpected depths %d, %d", object.Depth(), shape.Depth())
	}
}

func TestNode_AddChild(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")

	if err := a.AddChild(b); err != nil {
		t.Fatal(err)
	}
	if err := b.AddChild(c); err != nil {
		t.Fatal(err)
	}
	if err := a.AddChild(a); err == nil {
		t.Error("expected error adding node to itself")
	}
	if err := c.AddChild(a); err == nil {
		t.Error("expected error for circular reference")
	}
	if err := a.AddChild(nil); err == nil {
		t.Error("expected error adding nil child")
	}

	// Moving c detaches it from b.
	if err := a.AddChild(c); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 0 {
		t.Error("child not removed from previous parent")
	}
	if c.Depth() != 1 {
		t.Errorf("moved child has depth %d", c.Depth())
	}
	if !a.IsAncestorOf(c) || c.IsDescendantOf(b) {
		t.Error("unexpected ancestry")
	}

	a.RemoveChild(c)
	if c.Parent() != nil || a.Len() != 1 {
		t.Error("RemoveChild did not detach")
	}
}

func TestNode_Member(t *testing.T) {
	shape := NewNode("shape")
	shape.NewChild("mesh")
	shape.NewChild("skeleton")
	shape.NewChild("mesh")

	if m := shape.Member("mesh"); m.Shape() != List || m.Len() != 2 {
		t.Errorf("mesh member: shape %s, len %d", m.Shape(), m.Len())
	}
	m := shape.Member("skeleton")
	if m.Shape() != Single {
		t.Errorf("skeleton member: shape %s", m.Shape())
	}
	if n, ok := m.Single(); !ok || n.Tag != "skeleton" {
		t.Error("Single did not return the skeleton")
	}
	if _, ok := shape.Member("mesh").Single(); ok {
		t.Error("Single succeeded on a list")
	}
	if m := shape.Member("aabb"); m.Shape() != Absent || m.First() != nil {
		t.Error("expected absent member")
	}
	if tags := shape.Tags(); !reflect.DeepEqual(tags, []string{"mesh", "skeleton"}) {
		t.Errorf("unexpected tags %v", tags)
	}
	if shape.FindFirstChild("skeleton", false) == nil {
		t.Error("FindFirstChild failed")
	}
}

func TestAttributes_Order(t *testing.T) {
	var a Attributes
	a.Set("tri", ValueInt{0, 1, 2})
	a.Set("p", ValueFloat{0, 0, 0})
	a.Set("n", ValueFloat{0, 1, 0})
	a.Set("tri", ValueInt{2, 1, 0})

	if names := a.Names(); !reflect.DeepEqual(names, []string{"tri", "p", "n"}) {
		t.Errorf("unexpected order %v", names)
	}
	if v := a.Get("tri").(ValueInt); v[0] != 2 {
		t.Error("replacement did not take effect")
	}

	a.Delete("p")
	if names := a.Names(); !reflect.DeepEqual(names, []string{"tri", "n"}) {
		t.Errorf("unexpected order after delete %v", names)
	}
	a.Set("n", nil)
	if _, ok := a.Lookup("n"); ok || a.Len() != 1 {
		t.Error("setting nil did not delete")
	}
}

func TestNode_Clone(t *testing.T) {
	root := NewRoot()
	root.Set("pdxasset", ValueInt{1, 0})
	mesh := root.NewChild("object").NewChild("shape").NewChild("mesh")
	mesh.Set("p", ValueFloat{1, 2, 3})

	clone := root.Clone()
	if clone.Digest() != root.Digest() {
		t.Fatal("clone digest differs")
	}

	cm := clone.FindFirstChild("mesh", true)
	cm.Get("p").(ValueFloat)[0] = 9
	if mesh.Get("p").(ValueFloat)[0] != 1 {
		t.Error("clone shares attribute storage")
	}
	if cm.Depth() != 3 {
		t.Errorf("cloned node depth %d", cm.Depth())
	}
	if clone.Digest() == root.Digest() {
		t.Error("digest did not change after modification")
	}
}

func TestNode_Digest(t *testing.T) {
	a := NewRoot()
	a.Set("x", ValueInt{1})
	a.Set("y", ValueInt{2})
	b := NewRoot()
	b.Set("y", ValueInt{2})
	b.Set("x", ValueInt{1})
	if a.Digest() == b.Digest() {
		t.Error("digest ignores attribute order")
	}

	c := NewRoot()
	c.Set("x", ValueFloat{1})
	c.Set("y", ValueInt{2})
	if a.Digest() == c.Digest() {
		t.Error("digest ignores value type")
	}
}
