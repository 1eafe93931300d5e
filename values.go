package pdxfile

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type represents the data type of an attribute value.
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
	TypeInvalid Type = iota
	TypeInt
	TypeFloat
	TypeString
	TypeArray
)

var typeStrings = map[Type]string{
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeString: "string",
	TypeArray:  "array",
}

// TypeFromString returns a Type from its string representation. TypeInvalid
// is returned if the string does not represent an existing Type.
func TypeFromString(s string) Type {
	for typ, str := range typeStrings {
		if s == str {
			return typ
		}
	}
	return TypeInvalid
}

// Value holds an attribute value of a particular Type.
type Value interface {
	// Type returns the type of the value.
	Type() Type

	// Len returns the number of elements in the value. A string counts as a
	// single element.
	Len() int

	// String returns a string representation of the current value.
	String() string

	// Copy returns a copy of the value, which can be safely modified.
	Copy() Value
}

var (
	// ErrMixedTypes indicates an array whose elements are of more than one
	// type.
	ErrMixedTypes = errors.New("array mixes element types")
	// ErrMultiString indicates an array holding more than one string.
	ErrMultiString = errors.New("array holds more than one string")
	// ErrUnsupportedElement indicates an array element that is neither an
	// integer, a float, nor a string.
	ErrUnsupportedElement = errors.New("unsupported array element")
)

////////////////////////////////////////////////////////////////
// Values

// ValueInt is an array of signed 32-bit integers.
type ValueInt []int32

func (ValueInt) Type() Type {
	return TypeInt
}
func (t ValueInt) Len() int {
	return len(t)
}
func (t ValueInt) String() string {
	b := make([]string, len(t))
	for i, v := range t {
		b[i] = strconv.FormatInt(int64(v), 10)
	}
	return "[" + strings.Join(b, ", ") + "]"
}
func (t ValueInt) Copy() Value {
	c := make(ValueInt, len(t))
	copy(c, t)
	return c
}

////////////////

// ValueFloat is an array of 32-bit IEEE-754 floats.
type ValueFloat []float32

func (ValueFloat) Type() Type {
	return TypeFloat
}
func (t ValueFloat) Len() int {
	return len(t)
}
func (t ValueFloat) String() string {
	b := make([]string, len(t))
	for i, v := range t {
		b[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return "[" + strings.Join(b, ", ") + "]"
}
func (t ValueFloat) Copy() Value {
	c := make(ValueFloat, len(t))
	copy(c, t)
	return c
}

// Equal returns whether t and u hold the same bit patterns.
func (t ValueFloat) Equal(u ValueFloat) bool {
	if len(t) != len(u) {
		return false
	}
	for i := range t {
		if math.Float32bits(t[i]) != math.Float32bits(u[i]) {
			return false
		}
	}
	return true
}

////////////////

// ValueString is a single string. The format carries at most one string per
// attribute.
type ValueString string

func (ValueString) Type() Type {
	return TypeString
}
func (ValueString) Len() int {
	return 1
}
func (t ValueString) String() string {
	return string(t)
}
func (t ValueString) Copy() Value {
	return t
}

////////////////

// ValueArray is an untyped list of elements, as assembled by callers that
// gather attribute data element by element. It must be resolved to one of
// the typed values before it can be encoded; see Resolve.
type ValueArray []interface{}

func (ValueArray) Type() Type {
	return TypeArray
}
func (t ValueArray) Len() int {
	return len(t)
}
func (t ValueArray) String() string {
	return fmt.Sprint([]interface{}(t))
}
func (t ValueArray) Copy() Value {
	c := make(ValueArray, len(t))
	copy(c, t)
	return c
}

// Resolve returns v as one of ValueInt, ValueFloat or ValueString. A
// ValueArray is resolved by the type of its elements: all integers yield a
// ValueInt, all floats a ValueFloat, and a single string a ValueString.
// Integer elements outside the int32 range are unsupported.
func Resolve(v Value) (Value, error) {
	switch v := v.(type) {
	case ValueInt, ValueFloat, ValueString:
		return v, nil
	case ValueArray:
		return resolveArray(v)
	case nil:
		return nil, ErrUnsupportedElement
	default:
		return nil, fmt.Errorf("%w: value type %T", ErrUnsupportedElement, v)
	}
}

func elemType(e interface{}) Type {
	switch e.(type) {
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		return TypeInt
	case float32, float64:
		return TypeFloat
	case string:
		return TypeString
	}
	return TypeInvalid
}

func resolveArray(a ValueArray) (Value, error) {
	if len(a) == 0 {
		// No element decides the type; an empty integer array is the
		// narrowest encoding.
		return ValueInt{}, nil
	}
	typ := TypeInvalid
	for i, e := range a {
		et := elemType(e)
		if et == TypeInvalid {
			return nil, fmt.Errorf("%w: element %d is %T", ErrUnsupportedElement, i, e)
		}
		if typ != TypeInvalid && et != typ {
			return nil, fmt.Errorf("%w: %s and %s", ErrMixedTypes, typ, et)
		}
		typ = et
	}
	switch typ {
	case TypeString:
		if len(a) > 1 {
			return nil, fmt.Errorf("%w: %d strings", ErrMultiString, len(a))
		}
		return ValueString(a[0].(string)), nil
	case TypeFloat:
		v := make(ValueFloat, len(a))
		for i, e := range a {
			switch e := e.(type) {
			case float32:
				v[i] = e
			case float64:
				v[i] = float32(e)
			}
		}
		return v, nil
	default:
		v := make(ValueInt, len(a))
		for i, e := range a {
			n, ok := toInt64(e)
			if !ok || n < math.MinInt32 || n > math.MaxInt32 {
				return nil, fmt.Errorf("%w: element %d overflows int32", ErrUnsupportedElement, i)
			}
			v[i] = int32(n)
		}
		return v, nil
	}
}

func toInt64(e interface{}) (int64, bool) {
	switch e := e.(type) {
	case int:
		return int64(e), true
	case int8:
		return int64(e), true
	case int16:
		return int64(e), true
	case int32:
		return int64(e), true
	case int64:
		return e, true
	case uint8:
		return int64(e), true
	case uint16:
		return int64(e), true
	case uint32:
		return int64(e), true
	}
	return 0, false
}

// Equal returns whether two values have the same type and identical
// elements. Floats are compared by bit pattern.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case ValueInt:
		b, ok := b.(ValueInt)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	case ValueFloat:
		b, ok := b.(ValueFloat)
		return ok && a.Equal(b)
	case ValueString:
		b, ok := b.(ValueString)
		return ok && a == b
	}
	return false
}
