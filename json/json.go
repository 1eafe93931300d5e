// The json package is used to encode and decode pdxfile trees to the JSON
// format.
//
// A node is an object with a tag, a list of attributes, and a list of
// children. Attributes are listed in order, each with a name, a type and a
// value. Float values that JSON cannot represent as numbers are written as the
// strings "NaN", "+Inf" and "-Inf".
package json

import (
	"encoding/json"
	"math"

	"github.com/io-pdx/pdxfile"
	"github.com/io-pdx/pdxfile/errors"
)

func Encode(root *pdxfile.Node) (b []byte, err error) {
	if root == nil {
		return nil, errors.New("nil root")
	}
	return json.Marshal(RootToJSONInterface(root))
}

func Decode(b []byte) (root *pdxfile.Node, err error) {
	var v interface{}
	err = json.Unmarshal(b, &v)
	if err != nil {
		return nil, errors.Wrap(err, "decode json")
	}
	root, ok := RootFromJSONInterface(v)
	if !ok {
		return nil, errors.New("invalid JSON root object")
	}
	return root, nil
}

// The current version of the schema.
const jsonVersion = 0

func indexJSON(v, i, p interface{}) bool {
	var value interface{}
	switch object := v.(type) {
	case map[string]interface{}:
		index, ok := i.(string)
		if !ok {
			return false
		}
		value, ok = object[index]
		if !ok {
			return false
		}
	case []interface{}:
		index, ok := i.(int)
		if !ok {
			return false
		}
		if index >= len(object) || index < 0 {
			return false
		}
		value = object[index]
	default:
		return false
	}
	switch p := p.(type) {
	case *float64:
		value, ok := value.(float64)
		if !ok {
			return false
		}
		*p = value
	case *string:
		value, ok := value.(string)
		if !ok {
			return false
		}
		*p = value
	case *[]interface{}:
		value, ok := value.([]interface{})
		if !ok {
			return false
		}
		*p = value
	case *interface{}:
		*p = value
	}
	return true
}

// RootToJSONInterface converts a root node to a generic interface that can be
// read by json.Marshal.
func RootToJSONInterface(root *pdxfile.Node) interface{} {
	iroot := NodeToJSONInterface(root).(map[string]interface{})
	iroot["pdxfile_version"] = float64(jsonVersion)
	return iroot
}

// RootFromJSONInterface converts a generic interface produced by
// json.Unmarshal to a root node.
func RootFromJSONInterface(iroot interface{}) (root *pdxfile.Node, ok bool) {
	var version float64
	if !indexJSON(iroot, "pdxfile_version", &version) {
		return nil, false
	}

	switch int(version) {
	case 0:
		return NodeFromJSONInterface(iroot)
	}
	return nil, false
}

////////////////////////////////////////////////////////////////

// NodeToJSONInterface converts a node and its descendants to a generic
// interface that can be read by json.Marshal.
func NodeToJSONInterface(n *pdxfile.Node) interface{} {
	inode := make(map[string]interface{}, 3)
	inode["tag"] = n.Tag

	names := n.Attributes.Names()
	attributes := make([]interface{}, 0, len(names))
	for _, name := range names {
		value := n.Get(name)
		iattr := make(map[string]interface{}, 3)
		iattr["name"] = name
		iattr["type"] = value.Type().String()
		iattr["value"] = ValueToJSONInterface(value)
		attributes = append(attributes, iattr)
	}
	inode["attributes"] = attributes

	children := n.Children()
	ichildren := make([]interface{}, len(children))
	for i, child := range children {
		ichildren[i] = NodeToJSONInterface(child)
	}
	inode["children"] = ichildren
	return inode
}

// NodeFromJSONInterface converts a generic interface produced by
// json.Unmarshal into a node. Attributes and children that are malformed are
// skipped.
func NodeFromJSONInterface(inode interface{}) (n *pdxfile.Node, ok bool) {
	var tag string
	if !indexJSON(inode, "tag", &tag) {
		return nil, false
	}
	n = pdxfile.NewNode(tag)

	var attributes []interface{}
	indexJSON(inode, "attributes", &attributes)
	for _, iattr := range attributes {
		var name, typ string
		if !indexJSON(iattr, "name", &name) {
			continue
		}
		if !indexJSON(iattr, "type", &typ) {
			continue
		}
		var ivalue interface{}
		if !indexJSON(iattr, "value", &ivalue) {
			continue
		}
		value := ValueFromJSONInterface(pdxfile.TypeFromString(typ), ivalue)
		if value == nil {
			continue
		}
		n.Set(name, value)
	}

	var children []interface{}
	indexJSON(inode, "children", &children)
	for _, ichild := range children {
		child, ok := NodeFromJSONInterface(ichild)
		if !ok {
			continue
		}
		n.AddChild(child)
	}

	return n, true
}

////////////////////////////////////////////////////////////////

// ValueToJSONInterface converts a value to a generic interface that can be
// read by json.Marshal.
func ValueToJSONInterface(value pdxfile.Value) interface{} {
	switch value := value.(type) {
	case pdxfile.ValueString:
		return string(value)
	case pdxfile.ValueInt:
		a := make([]interface{}, len(value))
		for i, v := range value {
			a[i] = float64(v)
		}
		return a
	case pdxfile.ValueFloat:
		a := make([]interface{}, len(value))
		for i, v := range value {
			a[i] = floatToJSON(v)
		}
		return a
	case pdxfile.ValueArray:
		a := make([]interface{}, len(value))
		copy(a, value)
		return a
	}
	return nil
}

// ValueFromJSONInterface converts a generic interface produced by
// json.Unmarshal to a pdxfile.Value of the given type. Returns nil if the
// value could not be converted.
func ValueFromJSONInterface(typ pdxfile.Type, ivalue interface{}) pdxfile.Value {
	switch typ {
	case pdxfile.TypeString:
		v, ok := ivalue.(string)
		if !ok {
			return nil
		}
		return pdxfile.ValueString(v)
	case pdxfile.TypeInt:
		a, ok := ivalue.([]interface{})
		if !ok {
			return nil
		}
		v := make(pdxfile.ValueInt, len(a))
		for i, e := range a {
			f, ok := e.(float64)
			if !ok || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
				return nil
			}
			v[i] = int32(f)
		}
		return v
	case pdxfile.TypeFloat:
		a, ok := ivalue.([]interface{})
		if !ok {
			return nil
		}
		v := make(pdxfile.ValueFloat, len(a))
		for i, e := range a {
			if !floatFromJSON(e, &v[i]) {
				return nil
			}
		}
		return v
	case pdxfile.TypeArray:
		a, ok := ivalue.([]interface{})
		if !ok {
			return nil
		}
		return pdxfile.ValueArray(a)
	}
	return nil
}

func floatToJSON(f float32) interface{} {
	switch {
	case math.IsNaN(float64(f)):
		return "NaN"
	case math.IsInf(float64(f), 1):
		return "+Inf"
	case math.IsInf(float64(f), -1):
		return "-Inf"
	}
	return float64(f)
}

func floatFromJSON(v interface{}, p *float32) bool {
	switch v := v.(type) {
	case float64:
		*p = float32(v)
	case string:
		switch v {
		case "NaN":
			*p = float32(math.NaN())
		case "+Inf":
			*p = float32(math.Inf(1))
		case "-Inf":
			*p = float32(math.Inf(-1))
		default:
			return false
		}
	default:
		return false
	}
	return true
}
