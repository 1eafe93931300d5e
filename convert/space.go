// The convert package holds pure transforms between the data stored in asset
// trees and the conventions of a host application: coordinate spaces, bind
// matrices, skin influences and animation samples.
//
// Assets use a left-handed space with Y up and -Z forward.
package convert

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/io-pdx/pdxfile"
	"github.com/io-pdx/pdxfile/errors"
)

// Space is a right-handed host coordinate space. Each conversion is its own
// inverse, so the same call converts from asset space to the host space and
// back.
type Space uint8

const (
	YUp Space = iota // Y up, Z forward.
	ZUp              // Z up, Y forward.
)

func (s Space) String() string {
	switch s {
	case YUp:
		return "y-up"
	case ZUp:
		return "z-up"
	}
	return "invalid"
}

// matrix returns the change of basis. It is symmetric and its own inverse.
func (s Space) matrix() mgl32.Mat4 {
	if s == ZUp {
		return mgl32.Mat4{
			1, 0, 0, 0,
			0, 0, 1, 0,
			0, 1, 0, 0,
			0, 0, 0, 1,
		}
	}
	return mgl32.Scale3D(1, 1, -1)
}

// Vec3 converts a position or direction.
func (s Space) Vec3(v mgl32.Vec3) mgl32.Vec3 {
	return s.matrix().Mul4x1(v.Vec4(0)).Vec3()
}

// Mat4 converts a transformation matrix.
func (s Space) Mat4(m mgl32.Mat4) mgl32.Mat4 {
	c := s.matrix()
	return c.Mul4(m).Mul4(c)
}

// Quat converts a rotation.
func (s Space) Quat(q mgl32.Quat) mgl32.Quat {
	return mgl32.Mat4ToQuat(s.Mat4(q.Mat4())).Normalize()
}

// Positions converts a flat list of positions, three components each.
func (s Space) Positions(v pdxfile.ValueFloat) (pdxfile.ValueFloat, error) {
	if len(v)%3 != 0 {
		return nil, errors.Errorf("position list length %d is not a multiple of 3", len(v))
	}
	out := make(pdxfile.ValueFloat, len(v))
	for i := 0; i < len(v); i += 3 {
		p := s.Vec3(mgl32.Vec3{v[i], v[i+1], v[i+2]})
		copy(out[i:i+3], p[:])
	}
	return out, nil
}

// Normals converts a flat list of normals, three components each, leaving
// each non-zero normal at unit length.
func (s Space) Normals(v pdxfile.ValueFloat) (pdxfile.ValueFloat, error) {
	if len(v)%3 != 0 {
		return nil, errors.Errorf("normal list length %d is not a multiple of 3", len(v))
	}
	out := make(pdxfile.ValueFloat, len(v))
	for i := 0; i < len(v); i += 3 {
		n := s.Vec3(mgl32.Vec3{v[i], v[i+1], v[i+2]})
		if n.Len() != 0 {
			n = n.Normalize()
		}
		copy(out[i:i+3], n[:])
	}
	return out, nil
}

// FlipV flips the V component of a flat list of UV pairs. Assets put V=0 at
// the top of a texture.
func FlipV(uv pdxfile.ValueFloat) (pdxfile.ValueFloat, error) {
	if len(uv)%2 != 0 {
		return nil, errors.Errorf("uv list length %d is not a multiple of 2", len(uv))
	}
	out := make(pdxfile.ValueFloat, len(uv))
	for i := 0; i < len(uv); i += 2 {
		out[i] = uv[i]
		out[i+1] = 1 - uv[i+1]
	}
	return out, nil
}

// BindTransform returns the "tx" attribute of a bone: the inverse of its
// world matrix, as the first three rows of each of its four columns.
func BindTransform(world mgl32.Mat4) pdxfile.ValueFloat {
	inv := world.Inv()
	tx := make(pdxfile.ValueFloat, 0, 12)
	for c := 0; c < 4; c++ {
		col := inv.Col(c)
		tx = append(tx, col[0], col[1], col[2])
	}
	return tx
}

// WorldFromBind rebuilds the world matrix of a bone from its "tx" attribute.
func WorldFromBind(tx pdxfile.ValueFloat) (mgl32.Mat4, error) {
	if len(tx) != 12 {
		return mgl32.Mat4{}, errors.Errorf("bind transform has %d values, expected 12", len(tx))
	}
	var inv mgl32.Mat4
	for c := 0; c < 4; c++ {
		copy(inv[c*4:c*4+3], tx[c*3:c*3+3])
	}
	inv[15] = 1
	if inv.Det() == 0 {
		return mgl32.Mat4{}, errors.New("bind transform is singular")
	}
	return inv.Inv(), nil
}
