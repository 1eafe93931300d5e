package convert

import (
	"cmp"
	"slices"

	"github.com/io-pdx/pdxfile"
	"github.com/io-pdx/pdxfile/errors"
)

// MaxInfluences is the largest number of bones that may influence a vertex.
const MaxInfluences = 4

// Influence is the weight of a bone on a vertex. Bone is the index of the
// bone in the skeleton, or -1 for an unused slot.
type Influence struct {
	Bone   int32
	Weight float32
}

// PruneInfluences returns exactly max influences for a vertex. Zero weights
// are dropped. If more than max remain, only the max largest are kept and
// renormalised to sum to 1. Unused slots are filled with a bone of -1 and a
// weight of 0.
func PruneInfluences(in []Influence, max int) []Influence {
	out := make([]Influence, 0, len(in))
	for _, inf := range in {
		if inf.Weight != 0 && inf.Bone >= 0 {
			out = append(out, inf)
		}
	}

	if len(out) > max {
		slices.SortStableFunc(out, func(a, b Influence) int {
			return cmp.Compare(b.Weight, a.Weight)
		})
		out = out[:max]
		var total float32
		for _, inf := range out {
			total += inf.Weight
		}
		if total != 0 {
			for i := range out {
				out[i].Weight /= total
			}
		}
	}

	for len(out) < max {
		out = append(out, Influence{Bone: -1})
	}
	return out
}

// EncodeSkin returns a "skin" node holding the influences of each vertex,
// max per vertex.
func EncodeSkin(verts [][]Influence, max int) (*pdxfile.Node, error) {
	if max < 1 || max > MaxInfluences {
		return nil, errors.Errorf("influences per vertex must be between 1 and %d, got %d", MaxInfluences, max)
	}
	ix := make(pdxfile.ValueInt, 0, len(verts)*max)
	w := make(pdxfile.ValueFloat, 0, len(verts)*max)
	for _, infs := range verts {
		for _, inf := range PruneInfluences(infs, max) {
			ix = append(ix, inf.Bone)
			w = append(w, inf.Weight)
		}
	}

	skin := pdxfile.NewNode("skin")
	skin.Set("bones", pdxfile.ValueInt{int32(max)})
	skin.Set("ix", ix)
	skin.Set("w", w)
	return skin, nil
}

// DecodeSkin reads the influences of each vertex from a "skin" node. Unused
// slots are omitted.
func DecodeSkin(skin *pdxfile.Node) ([][]Influence, error) {
	bones, ok := skin.Get("bones").(pdxfile.ValueInt)
	if !ok || len(bones) != 1 {
		return nil, errors.New("skin has no influence count")
	}
	max := int(bones[0])
	if max < 1 || max > MaxInfluences {
		return nil, errors.Errorf("influences per vertex must be between 1 and %d, got %d", MaxInfluences, max)
	}
	ix, _ := skin.Get("ix").(pdxfile.ValueInt)
	w, _ := skin.Get("w").(pdxfile.ValueFloat)
	if len(ix) != len(w) {
		return nil, errors.Errorf("skin has %d indices and %d weights", len(ix), len(w))
	}
	if len(ix)%max != 0 {
		return nil, errors.Errorf("skin has %d influences, not a multiple of %d", len(ix), max)
	}

	verts := make([][]Influence, len(ix)/max)
	for v := range verts {
		for i := v * max; i < (v+1)*max; i++ {
			if ix[i] < 0 {
				continue
			}
			verts[v] = append(verts[v], Influence{Bone: ix[i], Weight: w[i]})
		}
	}
	return verts, nil
}
