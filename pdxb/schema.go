package pdxb

// Rule declares how a node at one position of a document is written: the
// attributes it may carry, and the children it may contain, each in the order
// the engine expects them.
//
// Rules are static data shared by every encoder and must not be modified.
type Rule struct {
	// Tag is the tag a node must have to match the rule. An empty Tag
	// matches any tag not matched by a sibling rule; it marks positions
	// whose tag is the name of a scene object, such as shapes, bones and
	// locators.
	Tag string

	// Repeated indicates whether more than one node may match the rule
	// under the same parent.
	Repeated bool

	// Attrs lists the attributes written for the node, in order.
	Attrs []string

	// Children lists the rules of child nodes, in order.
	Children []*Rule
}

// Named returns whether the rule matches nodes by name rather than by a fixed
// tag.
func (r *Rule) Named() bool {
	return r.Tag == ""
}

// Child returns the child rule that a child with the given tag falls under,
// or nil if the rule permits no such child. A fixed tag takes precedence over
// a named position.
func (r *Rule) Child(tag string) *Rule {
	var named *Rule
	for _, c := range r.Children {
		if c.Tag == tag && tag != "" {
			return c
		}
		if c.Named() && named == nil {
			named = c
		}
	}
	return named
}

// HasAttr returns whether the rule declares an attribute.
func (r *Rule) HasAttr(name string) bool {
	for _, a := range r.Attrs {
		if a == name {
			return true
		}
	}
	return false
}

// Schema returns the root rule of the document kind, or nil if the kind is
// not known.
func Schema(kind Kind) *Rule {
	switch kind {
	case Mesh:
		return meshSchema
	case Anim:
		return animSchema
	}
	return nil
}

// Lookup returns the rule reached from the root of the kind's schema by
// following a path of child tags. Returns nil if the path leaves the schema.
func Lookup(kind Kind, path ...string) *Rule {
	r := Schema(kind)
	for _, tag := range path {
		if r == nil {
			return nil
		}
		r = r.Child(tag)
	}
	return r
}

var meshSchema = &Rule{
	Tag:   "File",
	Attrs: []string{AssetVersion},
	Children: []*Rule{
		{
			Tag:   "object",
			Attrs: []string{"lodperc", "loddist"},
			Children: []*Rule{
				// shape
				{
					Repeated: true,
					Attrs:    []string{"lod"},
					Children: []*Rule{
						{
							Tag:      "mesh",
							Repeated: true,
							Attrs:    []string{"p", "n", "ta", "u0", "u1", "u2", "u3", "tri", "boundingsphere"},
							Children: []*Rule{
								{Tag: "aabb", Attrs: []string{"min", "max"}},
								{Tag: "material", Attrs: []string{"shader", "diff", "n", "spec"}},
								{Tag: "skin", Attrs: []string{"bones", "ix", "w"}},
							},
						},
						{
							Tag: "skeleton",
							Children: []*Rule{
								// bone
								{Repeated: true, Attrs: []string{"ix", "pa", "tx"}},
							},
						},
					},
				},
			},
		},
		{
			Tag: "locator",
			Children: []*Rule{
				// node
				{Repeated: true, Attrs: []string{"p", "q", "pa", "tx"}},
			},
		},
	},
}

var animSchema = &Rule{
	Tag:   "File",
	Attrs: []string{AssetVersion},
	Children: []*Rule{
		{
			Tag:   "info",
			Attrs: []string{"fps", "sa", "j"},
			Children: []*Rule{
				// bone
				{Repeated: true, Attrs: []string{"sa", "t", "q", "s"}},
			},
		},
		{Tag: "samples", Attrs: []string{"t", "q", "s"}},
	},
}
