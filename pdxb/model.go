package pdxb

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/anaminus/parse"
	"github.com/io-pdx/pdxfile"
	"golang.org/x/text/encoding/charmap"
)

////////////////////////////////////////////////////////////////

// latin1 is the character set of every name and string in the format.
var latin1 = charmap.ISO8859_1

// decodeLatin1 converts raw Latin-1 bytes to a UTF-8 string.
func decodeLatin1(b []byte) string {
	s, err := latin1.NewDecoder().Bytes(b)
	if err != nil {
		// Every byte is a valid ISO 8859-1 code point.
		panic(err)
	}
	return string(s)
}

// encodeLatin1 converts a UTF-8 string to raw Latin-1 bytes, failing if the
// string contains a zero byte or a character outside of Latin-1.
func encodeLatin1(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	b, err := latin1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, ErrLatin1
	}
	if bytes.IndexByte(b, 0) >= 0 {
		return nil, ErrNulByte
	}
	return b, nil
}

// trimNul removes a single trailing zero byte, if present.
func trimNul(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == 0 {
		return b[:n-1]
	}
	return b
}

////////////////////////////////////////////////////////////////

// formatModel models the binary file format as a flat list of tokens. Within
// the model, names and string values hold raw Latin-1 bytes.
type formatModel struct {
	Tokens []token
}

// token is an element of the token stream.
type token interface {
	// Pos returns the offset of the token's lead byte, or -1 for a token
	// that was not decoded.
	Pos() int64

	// WriteTo encodes the token.
	WriteTo(fw *parse.BinaryWriter) (failed bool)
}

// reader tracks the offset of a BinaryReader over an in-memory buffer.
type reader struct {
	*parse.BinaryReader
	buf  *bytes.Reader
	size int64
}

func newReader(b []byte) *reader {
	buf := bytes.NewReader(b)
	return &reader{
		BinaryReader: parse.NewBinaryReader(buf),
		buf:          buf,
		size:         int64(len(b)),
	}
}

// Offset returns the offset of the next unread byte.
func (r *reader) Offset() int64 {
	return r.size - int64(r.buf.Len())
}

// Remaining returns the number of unread bytes.
func (r *reader) Remaining() int64 {
	return int64(r.buf.Len())
}

// tokenObject opens a node at a depth.
type tokenObject struct {
	Offset int64
	Depth  int
	Name   []byte
}

func (t *tokenObject) Pos() int64 {
	return t.Offset
}

// ReadFrom decodes the token following its first marker byte.
func (t *tokenObject) ReadFrom(fr *reader) (failed bool) {
	t.Depth = 1
	var c uint8
	for {
		if fr.Number(&c) {
			return true
		}
		if c != objectMarker {
			break
		}
		t.Depth++
	}

	// The name has no length prefix; it runs until a zero byte.
	t.Name = make([]byte, 0, 16)
	for c != 0 {
		t.Name = append(t.Name, c)
		if fr.Number(&c) {
			return true
		}
	}
	return false
}

func (t *tokenObject) WriteTo(fw *parse.BinaryWriter) (failed bool) {
	if fw.Bytes(bytes.Repeat([]byte{objectMarker}, t.Depth)) {
		return true
	}
	if fw.Bytes(t.Name) {
		return true
	}
	return fw.Number(uint8(0))
}

// tokenProperty sets an attribute on the most recently opened node.
type tokenProperty struct {
	Offset int64
	Name   []byte
	Type   byte
	// Count as stored. For strings it is carried but not used.
	Count int32
	// Offset of the payload following the count.
	DataOffset int64
	Value      pdxfile.Value
}

func (t *tokenProperty) Pos() int64 {
	return t.Offset
}

// ReadFrom decodes the token following its marker byte. Counts that exceed
// the remaining data are rejected before allocating.
func (t *tokenProperty) ReadFrom(fr *reader) error {
	var nameLength uint8
	if fr.Number(&nameLength) {
		return readError(fr)
	}
	name := make([]byte, nameLength)
	if fr.Bytes(name) {
		return readError(fr)
	}
	t.Name = trimNul(name)

	typeOffset := fr.Offset()
	var dataType uint8
	if fr.Number(&dataType) {
		return readError(fr)
	}
	t.Type = dataType

	countOffset := fr.Offset()
	var count int32
	if fr.Number(&count) {
		return readError(fr)
	}
	t.Count = count
	t.DataOffset = fr.Offset()

	switch dataType {
	case typeInt, typeFloat:
		if count < 0 {
			return FormatError{Offset: countOffset, Cause: ErrNegativeCount}
		}
		if int64(count)*4 > fr.Remaining() {
			return FormatError{Offset: fr.Offset(), Cause: io.ErrUnexpectedEOF}
		}
		raw := make([]byte, int(count)*4)
		if fr.Bytes(raw) {
			return readError(fr)
		}
		if dataType == typeInt {
			v := make(pdxfile.ValueInt, count)
			for i := range v {
				v[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
			}
			t.Value = v
		} else {
			v := make(pdxfile.ValueFloat, count)
			for i := range v {
				v[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
			}
			t.Value = v
		}

	case typeString:
		// A string property always holds exactly one string.
		lengthOffset := fr.Offset()
		var length int32
		if fr.Number(&length) {
			return readError(fr)
		}
		if length < 0 {
			return FormatError{Offset: lengthOffset, Cause: ErrNegativeCount}
		}
		if int64(length) > fr.Remaining() {
			return FormatError{Offset: fr.Offset(), Cause: io.ErrUnexpectedEOF}
		}
		raw := make([]byte, length)
		if fr.Bytes(raw) {
			return readError(fr)
		}
		t.Value = pdxfile.ValueString(trimNul(raw))

	default:
		return FormatError{Offset: typeOffset, Cause: ErrUnknownType(dataType)}
	}
	return nil
}

func (t *tokenProperty) WriteTo(fw *parse.BinaryWriter) (failed bool) {
	if fw.Number(uint8(propertyMarker)) {
		return true
	}
	if fw.Number(uint8(len(t.Name))) {
		return true
	}
	if fw.Bytes(t.Name) {
		return true
	}

	switch v := t.Value.(type) {
	case pdxfile.ValueInt:
		if fw.Number(uint8(typeInt)) {
			return true
		}
		if fw.Number(int32(len(v))) {
			return true
		}
		raw := make([]byte, len(v)*4)
		for i, n := range v {
			binary.LittleEndian.PutUint32(raw[i*4:], uint32(n))
		}
		return fw.Bytes(raw)

	case pdxfile.ValueFloat:
		if fw.Number(uint8(typeFloat)) {
			return true
		}
		if fw.Number(int32(len(v))) {
			return true
		}
		raw := make([]byte, len(v)*4)
		for i, f := range v {
			binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(f))
		}
		return fw.Bytes(raw)

	case pdxfile.ValueString:
		if fw.Number(uint8(typeString)) {
			return true
		}
		if fw.Number(int32(1)) {
			return true
		}
		// Length includes the terminator.
		if fw.Number(int32(len(v) + 1)) {
			return true
		}
		if fw.Bytes([]byte(v)) {
			return true
		}
		return fw.Number(uint8(0))

	default:
		return fw.Add(0, ErrUnsupportedValue)
	}
}

////////////////////////////////////////////////////////////////

// readError returns the sticky error of fr as a FormatError at the current
// offset. Running out of data within a token is always unexpected.
func readError(fr *reader) error {
	err := fr.Err()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return FormatError{Offset: fr.Offset(), Cause: err}
}

// Decode parses b into a list of tokens.
func (f *formatModel) Decode(b []byte) error {
	fr := newReader(b)

	// Check signature.
	magic := make([]byte, len(BinaryMagic))
	if fr.Bytes(magic) {
		return FormatError{Offset: 0, Cause: ErrInvalidMagic}
	}
	switch string(magic) {
	case BinaryMagic:
	case TextMagic:
		return FormatError{Offset: 0, Cause: ErrTextFormat}
	default:
		return FormatError{Offset: 0, Cause: ErrInvalidMagic}
	}

	for fr.Remaining() > 0 {
		offset := fr.Offset()
		var lead uint8
		if fr.Number(&lead) {
			return readError(fr)
		}

		switch lead {
		case objectMarker:
			tok := &tokenObject{Offset: offset}
			if tok.ReadFrom(fr) {
				return readError(fr)
			}
			f.Tokens = append(f.Tokens, tok)

		case propertyMarker:
			tok := &tokenProperty{Offset: offset}
			if err := tok.ReadFrom(fr); err != nil {
				return err
			}
			f.Tokens = append(f.Tokens, tok)

		default:
			return FormatError{Offset: offset, Cause: ErrUnknownToken(lead)}
		}
	}
	return nil
}

// WriteTo encodes the signature and every token to w.
func (f *formatModel) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	if fw.Bytes([]byte(BinaryMagic)) {
		return fw.End()
	}
	for _, tok := range f.Tokens {
		if tok.WriteTo(fw) {
			return fw.End()
		}
	}
	return fw.End()
}
