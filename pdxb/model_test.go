package pdxb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/io-pdx/pdxfile"
)

// app concatenates test data. Strings and byte slices are appended as is, an
// int is a single byte, and int32 and float32 are little-endian words.
func app(bs ...interface{}) []byte {
	var s []byte
	for _, b := range bs {
		switch b := b.(type) {
		case string:
			s = append(s, b...)
		case []byte:
			s = append(s, b...)
		case byte:
			s = append(s, b)
		case int:
			s = append(s, byte(b))
		case int32:
			s = binary.LittleEndian.AppendUint32(s, uint32(b))
		case float32:
			s = binary.LittleEndian.AppendUint32(s, math.Float32bits(b))
		default:
			panic("unsupported test data")
		}
	}
	return s
}

func formatError(t *testing.T, err error, offset int64, cause error) {
	t.Helper()
	var ferr FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if ferr.Offset != offset {
		t.Errorf("expected offset %d, got %d (%v)", offset, ferr.Offset, err)
	}
	if cause != nil && !errors.Is(err, cause) {
		t.Errorf("expected cause %v, got %v", cause, ferr.Cause)
	}
}

func TestDecode_Scenario(t *testing.T) {
	b := app(BinaryMagic,
		"[object", 0,
		"[[shape", 0,
		"!", 3, "lod", "i", int32(1), int32(0),
	)
	root, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	object := root.FindFirstChild("object", false)
	if object == nil || object.Depth() != 1 {
		t.Fatalf("unexpected tree:\n%s", spew.Sdump(root))
	}
	shape := object.FindFirstChild("shape", false)
	if shape == nil || shape.Depth() != 2 {
		t.Fatalf("unexpected tree:\n%s", spew.Sdump(root))
	}
	if !pdxfile.Equal(shape.Get("lod"), pdxfile.ValueInt{0}) {
		t.Errorf("unexpected lod %v", shape.Get("lod"))
	}
	if root.Len() != 1 || object.Len() != 1 || shape.Len() != 0 {
		t.Error("unexpected child counts")
	}
}

func TestDecode_Depth(t *testing.T) {
	b := app(BinaryMagic,
		"[a", 0,
		"[[b", 0,
		"[[c", 0,
		"[d", 0,
		"[[e", 0,
	)
	root, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if tags := root.Tags(); len(tags) != 2 || tags[0] != "a" || tags[1] != "d" {
		t.Fatalf("unexpected root children %v", tags)
	}
	children := root.Children()
	a, d := children[0], children[1]
	if a.Len() != 2 || a.Children()[0].Tag != "b" || a.Children()[1].Tag != "c" {
		t.Errorf("unexpected children of a:\n%s", spew.Sdump(a.Tags()))
	}
	if d.Len() != 1 || d.Children()[0].Tag != "e" {
		t.Errorf("unexpected children of d:\n%s", spew.Sdump(d.Tags()))
	}
}

func TestDecode_DepthJump(t *testing.T) {
	b := app(BinaryMagic,
		"[a", 0,
		"[[[c", 0,
		"!", 1, "x", "i", int32(1), int32(7),
		"[[d", 0,
		"[e", 0,
		"[[[[[f", 0,
		"[[[[g", 0,
	)
	root, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if tags := root.Tags(); len(tags) != 2 || tags[0] != "a" || tags[1] != "e" {
		t.Fatalf("unexpected root children %v", tags)
	}
	a, e := root.Children()[0], root.Children()[1]
	if tags := a.Tags(); len(tags) != 2 || tags[0] != "c" || tags[1] != "d" {
		t.Fatalf("unexpected children of a:\n%s", spew.Sdump(tags))
	}
	if c := a.Children()[0]; !pdxfile.Equal(c.Get("x"), pdxfile.ValueInt{7}) {
		t.Errorf("property not attached to c: %v", c.Get("x"))
	}
	if a.Children()[1].Get("x") != nil {
		t.Error("property leaked to d")
	}
	// A shallower marker that still exceeds the open nesting keeps the
	// deepest object open.
	if tags := e.Tags(); len(tags) != 1 || tags[0] != "f" {
		t.Fatalf("unexpected children of e:\n%s", spew.Sdump(tags))
	}
	if tags := e.Children()[0].Tags(); len(tags) != 1 || tags[0] != "g" {
		t.Errorf("unexpected children of f:\n%s", spew.Sdump(tags))
	}
}

func TestDecode_StringCount(t *testing.T) {
	b := app(BinaryMagic,
		"[a", 0,
		"!", 1, "x", "s", int32(2), int32(3), "ab", 0,
		"!", 1, "y", "s", int32(-1), int32(2), "c", 0,
	)
	root, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	a := root.Children()[0]
	if !pdxfile.Equal(a.Get("x"), pdxfile.ValueString("ab")) {
		t.Errorf("unexpected x: %v", a.Get("x"))
	}
	if !pdxfile.Equal(a.Get("y"), pdxfile.ValueString("c")) {
		t.Errorf("unexpected y: %v", a.Get("y"))
	}

	var buf bytes.Buffer
	if err := (Decoder{}).Dump(&buf, bytes.NewReader(b)); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`#1 @7: property name:"x" type:'s' count:2 data@15 "ab"`,
		`property name:"y" type:'s' count:-1`,
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("dump does not contain %q:\n%s", want, buf.String())
		}
	}
}

func TestDecode_PropertyTarget(t *testing.T) {
	b := app(BinaryMagic,
		"!", 8, "pdxasset", "i", int32(2), int32(1), int32(0),
		"[a", 0,
		"[[b", 0,
		"[[[c", 0,
		"[[d", 0,
		"!", 1, "x", "f", int32(1), float32(0.5),
	)
	root, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if !pdxfile.Equal(root.Get(AssetVersion), pdxfile.ValueInt{1, 0}) {
		t.Error("root property not attached to root")
	}
	a := root.FindFirstChild("a", false)
	d := a.FindFirstChild("d", false)
	if d == nil {
		t.Fatalf("unexpected tree:\n%s", spew.Sdump(root))
	}
	if !pdxfile.Equal(d.Get("x"), pdxfile.ValueFloat{0.5}) {
		t.Error("property not attached to the most recent object")
	}
	for _, n := range []*pdxfile.Node{a, a.FindFirstChild("b", false), root.FindFirstChild("c", true)} {
		if n.Attributes.Len() != 0 {
			t.Errorf("property attached to %q", n.Tag)
		}
	}
}

func TestDecode_NameTerminator(t *testing.T) {
	// A property name stored with a trailing zero.
	b := app(BinaryMagic,
		"[a", 0,
		"!", 5, "diff", 0, "s", int32(1), int32(12), "diffuse.dds", 0,
	)
	root, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	a := root.FindFirstChild("a", false)
	if v, ok := a.Attributes.Lookup("diff"); !ok || v != pdxfile.ValueString("diffuse.dds") {
		t.Errorf("unexpected attributes:\n%s", spew.Sdump(a.Attributes.Names()))
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		offset int64
		cause  error
	}{
		{"bad magic", app("@@x@"), 0, ErrInvalidMagic},
		{"short magic", app("@@"), 0, ErrInvalidMagic},
		{"text", app(TextMagic, "[a", 0), 0, ErrTextFormat},
		{"unknown token", app(BinaryMagic, "[a", 0, "?"), 7, ErrUnknownToken('?')},
		{"unknown type", app(BinaryMagic, "[a", 0, "!", 1, "x", "d", int32(1), int32(0)), 10, ErrUnknownType('d')},
		{"negative count", app(BinaryMagic, "!", 1, "x", "i", int32(-1)), 8, ErrNegativeCount},
		{"negative string length", app(BinaryMagic, "!", 1, "x", "s", int32(1), int32(-2)), 12, ErrNegativeCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Decode(tt.data)
			if root != nil {
				t.Error("expected no tree")
			}
			formatError(t, err, tt.offset, tt.cause)
		})
	}
}

func TestDecode_Truncated(t *testing.T) {
	full := app(BinaryMagic,
		"[a", 0,
		"!", 1, "x", "i", int32(2), int32(1), int32(2),
		"!", 1, "s", "s", int32(1), int32(3), "ab", 0,
	)
	// Offsets at which a token ends.
	boundaries := map[int]bool{7: true, 23: true}
	for n := len(BinaryMagic) + 1; n < len(full); n++ {
		if boundaries[n] {
			continue
		}
		root, err := Decode(full[:n])
		if err == nil || root != nil {
			t.Fatalf("prefix of %d bytes: expected error", n)
		}
		var ferr FormatError
		if !errors.As(err, &ferr) {
			t.Fatalf("prefix of %d bytes: expected FormatError, got %v", n, err)
		}
	}
	if _, err := Decode(full); err != nil {
		t.Fatal(err)
	}
}

func TestDecode_Empty(t *testing.T) {
	root, err := Decode(app(BinaryMagic))
	if err != nil {
		t.Fatal(err)
	}
	if root.Tag != pdxfile.RootTag || root.Len() != 0 || root.Attributes.Len() != 0 {
		t.Errorf("unexpected root:\n%s", spew.Sdump(root.Tag, root.Len()))
	}
}

func TestDump(t *testing.T) {
	b := app(BinaryMagic,
		"[object", 0,
		"[[shape", 0,
		"!", 3, "lod", "i", int32(1), int32(0),
		"!", 1, "s", "s", int32(1), int32(4), "a\nb", 0,
	)
	var buf bytes.Buffer
	if err := (Decoder{}).Dump(&buf, bytes.NewReader(b)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Tokens: 4 {",
		`#0 @4: object depth:1 name:"object"`,
		`#1 @12: object depth:2 name:"shape"`,
		`#2 @20: property name:"lod" type:'i' count:1 data@30 [0]`,
		`#3 @34: property name:"s" type:'s' count:1 data@42 raw(3 bytes)`,
		"0000002e  61 0a 62                  a.b",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump does not contain %q:\n%s", want, out)
		}
	}

	if err := (Decoder{}).Dump(&buf, bytes.NewReader(app("@@t@"))); !errors.Is(err, ErrTextFormat) {
		t.Errorf("expected text format error, got %v", err)
	}
}
