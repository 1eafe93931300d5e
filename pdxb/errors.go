package pdxb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/io-pdx/pdxfile"
	"github.com/io-pdx/pdxfile/errors"
)

var (
	// Indicates that the data does not begin with the binary signature.
	ErrInvalidMagic = errors.New("invalid signature")
	// Indicates the plain-text variant of the format.
	ErrTextFormat = errors.New("unexpected text format")
	// Indicates a negative element count or string length.
	ErrNegativeCount = errors.New("negative count")

	// Indicates an object tag of 64 bytes or more.
	ErrNameTooLong = errors.New("object name is 64 bytes or longer")
	// Indicates a property name that does not fit its length byte.
	ErrPropertyName = errors.New("property name is longer than 127 bytes")
	// Indicates a name or string that contains a zero byte.
	ErrNulByte = errors.New("text contains a zero byte")
	// Indicates text that cannot be encoded as Latin-1.
	ErrLatin1 = errors.New("text is not encodable as Latin-1")
	// Indicates a value that is not one of the supported variants.
	ErrUnsupportedValue = errors.New("unsupported value type")
	// Indicates a root that does not match the document kind.
	ErrUnknownRoot = errors.New("unknown root")
	// Indicates a document kind without a schema.
	ErrUnknownKind = errors.New("unknown document kind")
	// Indicates a child not declared at its position by the schema.
	ErrUnexpectedChild = errors.New("child not permitted by schema")
	// Indicates more than one child for a position that permits only one.
	ErrRepeatedChild = errors.New("child may appear only once")
	// Indicates an asset version that is not an integer array.
	ErrAssetVersion = errors.New("asset version must be an integer array")
	// Reported as a warning for attributes that the schema does not
	// declare; they are not written.
	ErrUndeclaredAttr = errors.New("attribute not declared by schema")

	ErrMixedTypes  = pdxfile.ErrMixedTypes
	ErrMultiString = pdxfile.ErrMultiString
)

// ErrUnknownToken indicates a token lead byte not known by the codec.
type ErrUnknownToken byte

func (err ErrUnknownToken) Error() string {
	return fmt.Sprintf("unknown token 0x%02X", byte(err))
}

// ErrUnknownType indicates a property data type not known by the codec.
type ErrUnknownType byte

func (err ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown data type 0x%02X", byte(err))
}

// FormatError wraps an error that occurred while decoding byte data.
type FormatError struct {
	// Offset is the byte offset where the error occurred.
	Offset int64

	Cause error
}

func (err FormatError) Error() string {
	var s strings.Builder
	s.WriteString("format error")
	if err.Offset >= 0 {
		s.WriteString(" at ")
		s.Write(strconv.AppendInt(nil, err.Offset, 10))
	}
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err FormatError) Unwrap() error {
	return err.Cause
}

// SchemaError indicates a tree that cannot be encoded under the schema of a
// document kind.
type SchemaError struct {
	// Tag is the tag of the offending node.
	Tag string
	// Attr is the name of the offending attribute, if any.
	Attr string

	Cause error
}

func (err SchemaError) Error() string {
	var s strings.Builder
	s.WriteString("schema error")
	if err.Tag != "" {
		s.WriteString(": object ")
		s.WriteString(strconv.Quote(err.Tag))
	}
	if err.Attr != "" {
		s.WriteString(" attribute ")
		s.WriteString(strconv.Quote(err.Attr))
	}
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err SchemaError) Unwrap() error {
	return err.Cause
}
