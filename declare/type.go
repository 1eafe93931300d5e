package declare

import (
	"strings"

	"github.com/io-pdx/pdxfile"
)

// Type corresponds to a pdxfile.Type.
type Type byte

// String returns a string representation of the type. If the type is not
// valid, then the returned value will be "Invalid".
func (t Type) String() string {
	s, ok := typeStrings[t]
	if !ok {
		return "Invalid"
	}
	return s
}

const (
	_ Type = iota
	Int
	Float
	String
	Array
)

// TypeFromString returns a Type from its string representation. Type(0) is
// returned if the string does not represent an existing Type.
func TypeFromString(s string) Type {
	s = strings.ToLower(s)
	for typ, str := range typeStrings {
		if s == strings.ToLower(str) {
			return typ
		}
	}
	return 0
}

var typeStrings = map[Type]string{
	Int:    "Int",
	Float:  "Float",
	String: "String",
	Array:  "Array",
}

func normInt32(v interface{}) int32 {
	switch v := v.(type) {
	case int:
		return int32(v)
	case uint:
		return int32(v)
	case uint8:
		return int32(v)
	case uint16:
		return int32(v)
	case uint32:
		return int32(v)
	case uint64:
		return int32(v)
	case int8:
		return int32(v)
	case int16:
		return int32(v)
	case int32:
		return int32(v)
	case int64:
		return int32(v)
	case float32:
		return int32(v)
	case float64:
		return int32(v)
	}

	return 0
}

func normFloat32(v interface{}) float32 {
	switch v := v.(type) {
	case int:
		return float32(v)
	case uint:
		return float32(v)
	case uint8:
		return float32(v)
	case uint16:
		return float32(v)
	case uint32:
		return float32(v)
	case uint64:
		return float32(v)
	case int8:
		return float32(v)
	case int16:
		return float32(v)
	case int32:
		return float32(v)
	case int64:
		return float32(v)
	case float32:
		return float32(v)
	case float64:
		return float32(v)
	}

	return 0
}

func (t Type) value(v []interface{}) pdxfile.Value {
	switch t {
	case Int:
		if len(v) == 1 {
			if v, ok := v[0].(pdxfile.ValueInt); ok {
				return v
			}
		}
		value := make(pdxfile.ValueInt, len(v))
		for i, e := range v {
			value[i] = normInt32(e)
		}
		return value

	case Float:
		if len(v) == 1 {
			if v, ok := v[0].(pdxfile.ValueFloat); ok {
				return v
			}
		}
		value := make(pdxfile.ValueFloat, len(v))
		for i, e := range v {
			value[i] = normFloat32(e)
		}
		return value

	case String:
		if len(v) < 1 {
			return pdxfile.ValueString("")
		}
		switch v := v[0].(type) {
		case pdxfile.ValueString:
			return v
		case string:
			return pdxfile.ValueString(v)
		case []byte:
			return pdxfile.ValueString(v)
		}
		return pdxfile.ValueString("")

	case Array:
		if len(v) == 1 {
			if v, ok := v[0].(pdxfile.ValueArray); ok {
				return v
			}
		}
		return pdxfile.ValueArray(append([]interface{}{}, v...))
	}
	return nil
}
