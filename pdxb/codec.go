package pdxb

import (
	"fmt"

	"github.com/io-pdx/pdxfile"
	"github.com/io-pdx/pdxfile/errors"
	"github.com/rs/zerolog"
)

// pdxCodec transforms between a formatModel and a tree of nodes.
type pdxCodec struct {
	Kind Kind
	Log  zerolog.Logger
}

// Decode builds a tree from the token stream. Object depth is implied by the
// token order: an object deeper than the previous object nests under the open
// one, however many levels deeper it is, while an object of the same or lesser
// depth closes every open object at or below its depth.
func (c pdxCodec) Decode(model *formatModel) (root *pdxfile.Node, err error) {
	if model == nil {
		panic("formatModel is nil")
	}

	root = pdxfile.NewRoot()

	// Open objects. The last entry receives properties and new children.
	depthList := []*pdxfile.Node{root}
	// Marker depth of the previous object token.
	lastDepth := 0

	for _, tok := range model.Tokens {
		switch tok := tok.(type) {
		case *tokenObject:
			if tok.Depth <= lastDepth {
				n := tok.Depth
				if n > len(depthList) {
					n = len(depthList)
				}
				depthList = depthList[:n]
			}
			parent := depthList[len(depthList)-1]
			node := parent.NewChild(decodeLatin1(tok.Name))
			depthList = append(depthList, node)
			lastDepth = tok.Depth

		case *tokenProperty:
			value := tok.Value
			if s, ok := value.(pdxfile.ValueString); ok {
				value = pdxfile.ValueString(decodeLatin1([]byte(s)))
			}
			depthList[len(depthList)-1].Set(decodeLatin1(tok.Name), value)
		}
	}

	c.Log.Debug().Int("tokens", len(model.Tokens)).Msg("decoded tree")
	return root, nil
}

// Encode walks root under the kind's schema, producing tokens in schema
// order. The depth of each object is threaded through the walk rather than
// read from the node.
func (c pdxCodec) Encode(root *pdxfile.Node) (model *formatModel, warn, err error) {
	schema := Schema(c.Kind)
	if schema == nil {
		return nil, nil, SchemaError{Cause: fmt.Errorf("%w: %d", ErrUnknownKind, c.Kind)}
	}
	if root == nil {
		return nil, nil, SchemaError{Cause: ErrUnknownRoot}
	}
	if root.Tag != schema.Tag {
		return nil, nil, SchemaError{Tag: root.Tag, Cause: ErrUnknownRoot}
	}

	e := &encoder{
		log:   c.Log.With().Str("kind", c.Kind.String()).Logger(),
		model: new(formatModel),
	}

	// The asset version is always written, whether or not the root has
	// one.
	version := root.Get(AssetVersion)
	if version == nil {
		version = append(pdxfile.ValueInt(nil), defaultAssetVersion...)
	} else if v, err := pdxfile.Resolve(version); err != nil || v.Type() != pdxfile.TypeInt {
		return nil, e.warns.Return(), SchemaError{Tag: root.Tag, Attr: AssetVersion, Cause: ErrAssetVersion}
	}
	if err := e.property(root.Tag, AssetVersion, version); err != nil {
		return nil, e.warns.Return(), err
	}
	for _, name := range schema.Attrs {
		if name == AssetVersion {
			continue
		}
		if v, ok := root.Attributes.Lookup(name); ok {
			if err := e.property(root.Tag, name, v); err != nil {
				return nil, e.warns.Return(), err
			}
		}
	}
	e.undeclared(root, schema)

	if err := e.children(root, schema, 1); err != nil {
		return nil, e.warns.Return(), err
	}
	return e.model, e.warns.Return(), nil
}

type encoder struct {
	log   zerolog.Logger
	model *formatModel
	warns errors.Errors
}

// node writes the object token of n followed by its attributes and
// children.
func (e *encoder) node(n *pdxfile.Node, rule *Rule, depth int) error {
	name, err := encodeLatin1(n.Tag)
	if err != nil {
		return SchemaError{Tag: n.Tag, Cause: err}
	}
	if len(name) >= maxObjectName {
		return SchemaError{Tag: n.Tag, Cause: ErrNameTooLong}
	}

	e.log.Debug().Int("depth", depth).Str("tag", n.Tag).Msg("write object")
	e.model.Tokens = append(e.model.Tokens, &tokenObject{Offset: -1, Depth: depth, Name: name})

	for _, attr := range rule.Attrs {
		if v, ok := n.Attributes.Lookup(attr); ok {
			if err := e.property(n.Tag, attr, v); err != nil {
				return err
			}
		}
	}
	e.undeclared(n, rule)

	return e.children(n, rule, depth+1)
}

// undeclared reports attributes of n that rule does not declare.
func (e *encoder) undeclared(n *pdxfile.Node, rule *Rule) {
	for _, attr := range n.Attributes.Names() {
		if !rule.HasAttr(attr) {
			e.log.Warn().Str("tag", n.Tag).Str("attr", attr).Msg("attribute not declared by schema, dropped")
			e.warns = append(e.warns, SchemaError{Tag: n.Tag, Attr: attr, Cause: ErrUndeclaredAttr})
		}
	}
}

// children writes the children of n at depth, grouped in the order of the
// rule's child rules. Within a group, children keep their order in the tree.
func (e *encoder) children(n *pdxfile.Node, rule *Rule, depth int) error {
	children := n.Children()
	for _, child := range children {
		if rule.Child(child.Tag) == nil {
			return SchemaError{Tag: child.Tag, Cause: fmt.Errorf("%w: under %q", ErrUnexpectedChild, n.Tag)}
		}
	}

	for _, cr := range rule.Children {
		count := 0
		for _, child := range children {
			if rule.Child(child.Tag) != cr {
				continue
			}
			if count > 0 && !cr.Repeated {
				return SchemaError{Tag: child.Tag, Cause: fmt.Errorf("%w: under %q", ErrRepeatedChild, n.Tag)}
			}
			count++
			if err := e.node(child, cr, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// property validates an attribute value and appends its token.
func (e *encoder) property(tag, name string, value pdxfile.Value) error {
	rawName, err := encodeLatin1(name)
	if err != nil {
		return SchemaError{Tag: tag, Attr: name, Cause: err}
	}
	if len(rawName) > maxPropertyName {
		return SchemaError{Tag: tag, Attr: name, Cause: ErrPropertyName}
	}

	switch value.(type) {
	case pdxfile.ValueInt, pdxfile.ValueFloat, pdxfile.ValueString, pdxfile.ValueArray:
	default:
		return SchemaError{Tag: tag, Attr: name, Cause: fmt.Errorf("%w: %T", ErrUnsupportedValue, value)}
	}
	value, err = pdxfile.Resolve(value)
	if err != nil {
		return SchemaError{Tag: tag, Attr: name, Cause: err}
	}
	if s, ok := value.(pdxfile.ValueString); ok {
		raw, err := encodeLatin1(string(s))
		if err != nil {
			return SchemaError{Tag: tag, Attr: name, Cause: err}
		}
		value = pdxfile.ValueString(raw)
	}

	e.log.Debug().Str("tag", tag).Str("attr", name).Stringer("type", value.Type()).Int("count", value.Len()).Msg("write property")
	e.model.Tokens = append(e.model.Tokens, &tokenProperty{Offset: -1, Name: rawName, Value: value})
	return nil
}
