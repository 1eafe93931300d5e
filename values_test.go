package pdxfile_test

import (
	"errors"
	"math"
	"testing"

	"github.com/io-pdx/pdxfile"
)

func TestType_String(t *testing.T) {
	if pdxfile.TypeString.String() != "string" {
		t.Error("unexpected result from String")
	}

	if pdxfile.Type(0).String() != "Invalid" {
		t.Error("unexpected result from String")
	}
}

func TestTypeFromString(t *testing.T) {
	if pdxfile.TypeFromString("float") != pdxfile.TypeFloat {
		t.Error("unexpected result from TypeFromString")
	}

	if pdxfile.TypeFromString("double") != pdxfile.TypeInvalid {
		t.Error("unexpected result from TypeFromString")
	}
}

func TestValue_Copy(t *testing.T) {
	ints := pdxfile.ValueInt{1, 2, 3}
	ci := ints.Copy().(pdxfile.ValueInt)
	ci[0] = 9
	if ints[0] != 1 {
		t.Error("ValueInt copy shares storage")
	}

	floats := pdxfile.ValueFloat{1.5}
	cf := floats.Copy().(pdxfile.ValueFloat)
	cf[0] = 2
	if floats[0] != 1.5 {
		t.Error("ValueFloat copy shares storage")
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		value pdxfile.Value
		want  string
	}{
		{pdxfile.ValueInt{0, -1, 7}, "[0, -1, 7]"},
		{pdxfile.ValueFloat{0.5, 1}, "[0.5, 1]"},
		{pdxfile.ValueString("diffuse.dds"), "diffuse.dds"},
		{pdxfile.ValueInt{}, "[]"},
	}
	for _, tt := range tests {
		if s := tt.value.String(); s != tt.want {
			t.Errorf("%s: got %q, want %q", tt.value.Type(), s, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		value pdxfile.Value
		want  pdxfile.Value
		err   error
	}{
		{"ints", pdxfile.ValueArray{1, int32(2), int64(-3)}, pdxfile.ValueInt{1, 2, -3}, nil},
		{"floats", pdxfile.ValueArray{0.5, float32(1.25)}, pdxfile.ValueFloat{0.5, 1.25}, nil},
		{"string", pdxfile.ValueArray{"PdxMeshStandard"}, pdxfile.ValueString("PdxMeshStandard"), nil},
		{"empty", pdxfile.ValueArray{}, pdxfile.ValueInt{}, nil},
		{"typed", pdxfile.ValueFloat{2}, pdxfile.ValueFloat{2}, nil},
		{"mixed", pdxfile.ValueArray{1, 0.5}, nil, pdxfile.ErrMixedTypes},
		{"mixed string", pdxfile.ValueArray{"a", 1}, nil, pdxfile.ErrMixedTypes},
		{"multi string", pdxfile.ValueArray{"a", "b"}, nil, pdxfile.ErrMultiString},
		{"bool", pdxfile.ValueArray{true}, nil, pdxfile.ErrUnsupportedElement},
		{"overflow", pdxfile.ValueArray{int64(math.MaxInt32) + 1}, nil, pdxfile.ErrUnsupportedElement},
		{"nil", nil, nil, pdxfile.ErrUnsupportedElement},
	}
	for _, tt := range tests {
		got, err := pdxfile.Resolve(tt.value)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Errorf("%s: expected error %v, got %v", tt.name, tt.err, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if !pdxfile.Equal(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	nan := math.Float32frombits(0x7fc00001)
	if !pdxfile.Equal(pdxfile.ValueFloat{nan}, pdxfile.ValueFloat{nan}) {
		t.Error("expected identical NaN bits to be equal")
	}
	if pdxfile.Equal(pdxfile.ValueFloat{0}, pdxfile.ValueFloat{float32(math.Copysign(0, -1))}) {
		t.Error("expected +0 and -0 to differ")
	}
	if pdxfile.Equal(pdxfile.ValueInt{1}, pdxfile.ValueFloat{1}) {
		t.Error("expected values of different types to differ")
	}
	if !pdxfile.Equal(pdxfile.ValueString("a"), pdxfile.ValueString("a")) {
		t.Error("expected equal strings")
	}
}
