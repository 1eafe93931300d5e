package convert

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/io-pdx/pdxfile"
	"github.com/io-pdx/pdxfile/errors"
)

// Transform is the pose of a bone relative to its parent. Scale is uniform.
type Transform struct {
	T mgl32.Vec3
	Q mgl32.Quat
	S float32
}

// Track holds the animation of one bone. Each of T, Q and S is either empty,
// meaning the channel is not animated, or holds one sample per frame.
type Track struct {
	Name string
	Rest Transform
	T    []mgl32.Vec3
	Q    []mgl32.Quat
	S    []float32
}

// Types returns the animated channels of the track, as written to the "sa"
// attribute of a bone.
func (t Track) Types() string {
	var s strings.Builder
	if len(t.T) > 0 {
		s.WriteByte('t')
	}
	if len(t.Q) > 0 {
		s.WriteByte('q')
	}
	if len(t.S) > 0 {
		s.WriteByte('s')
	}
	return s.String()
}

// Anim is an animation clip.
type Anim struct {
	FPS    float32
	Frames int
	Tracks []Track
}

// Node returns the root of an animation tree holding the clip.
func (a Anim) Node() (*pdxfile.Node, error) {
	if a.Frames < 0 {
		return nil, errors.Errorf("negative frame count %d", a.Frames)
	}
	samples, err := PackSamples(a.Tracks, a.Frames)
	if err != nil {
		return nil, err
	}

	root := pdxfile.NewRoot()
	root.Set("pdxasset", pdxfile.ValueInt{1, 0})
	info := root.NewChild("info")
	info.Set("fps", pdxfile.ValueFloat{a.FPS})
	info.Set("sa", pdxfile.ValueInt{int32(a.Frames)})
	info.Set("j", pdxfile.ValueInt{int32(len(a.Tracks))})
	for _, track := range a.Tracks {
		bone := info.NewChild(track.Name)
		bone.Set("sa", pdxfile.ValueString(track.Types()))
		bone.Set("t", pdxfile.ValueFloat{track.Rest.T[0], track.Rest.T[1], track.Rest.T[2]})
		bone.Set("q", quatValue(track.Rest.Q))
		bone.Set("s", pdxfile.ValueFloat{track.Rest.S})
	}
	if err := root.AddChild(samples); err != nil {
		return nil, err
	}
	return root, nil
}

// DecodeAnim reads a clip from the root of an animation tree.
func DecodeAnim(root *pdxfile.Node) (a Anim, err error) {
	info, ok := root.Member("info").Single()
	if !ok {
		return a, errors.New("animation has no single info node")
	}
	samples, ok := root.Member("samples").Single()
	if !ok {
		return a, errors.New("animation has no single samples node")
	}
	if fps, ok := info.Get("fps").(pdxfile.ValueFloat); ok && len(fps) == 1 {
		a.FPS = fps[0]
	}
	if a.Frames, err = frameCount(info); err != nil {
		return a, err
	}
	if a.Tracks, err = UnpackSamples(info, samples); err != nil {
		return a, err
	}
	return a, nil
}

func quatValue(q mgl32.Quat) pdxfile.ValueFloat {
	return pdxfile.ValueFloat{q.V[0], q.V[1], q.V[2], q.W}
}

func frameCount(info *pdxfile.Node) (int, error) {
	sa, ok := info.Get("sa").(pdxfile.ValueInt)
	if !ok || len(sa) != 1 || sa[0] < 0 {
		return 0, errors.New("info has no frame count")
	}
	return int(sa[0]), nil
}

// PackSamples returns a "samples" node holding the animated channels of each
// track. Samples are ordered by frame, then by track. Channels without
// samples are not written.
func PackSamples(tracks []Track, frames int) (*pdxfile.Node, error) {
	var t, q, s pdxfile.ValueFloat
	for _, track := range tracks {
		for _, n := range []int{len(track.T), len(track.Q), len(track.S)} {
			if n != 0 && n != frames {
				return nil, errors.Errorf("track %q has %d samples for %d frames", track.Name, n, frames)
			}
		}
	}
	for f := 0; f < frames; f++ {
		for _, track := range tracks {
			if len(track.T) > 0 {
				t = append(t, track.T[f][:]...)
			}
			if len(track.Q) > 0 {
				q = append(q, quatValue(track.Q[f])...)
			}
			if len(track.S) > 0 {
				s = append(s, track.S[f])
			}
		}
	}

	samples := pdxfile.NewNode("samples")
	if len(t) > 0 {
		samples.Set("t", t)
	}
	if len(q) > 0 {
		samples.Set("q", q)
	}
	if len(s) > 0 {
		samples.Set("s", s)
	}
	return samples, nil
}

// UnpackSamples reads the tracks of the bones under info from samples. The
// channels of each bone are given by its "sa" attribute.
func UnpackSamples(info, samples *pdxfile.Node) ([]Track, error) {
	frames, err := frameCount(info)
	if err != nil {
		return nil, err
	}

	bones := info.Children()
	tracks := make([]Track, len(bones))
	for i, bone := range bones {
		track := &tracks[i]
		track.Name = bone.Tag
		if v, ok := bone.Get("t").(pdxfile.ValueFloat); ok && len(v) == 3 {
			track.Rest.T = mgl32.Vec3{v[0], v[1], v[2]}
		}
		if v, ok := bone.Get("q").(pdxfile.ValueFloat); ok && len(v) == 4 {
			track.Rest.Q = mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}
		}
		if v, ok := bone.Get("s").(pdxfile.ValueFloat); ok && len(v) == 1 {
			track.Rest.S = v[0]
		}

		types, _ := bone.Get("sa").(pdxfile.ValueString)
		for _, c := range types {
			switch c {
			case 't':
				track.T = make([]mgl32.Vec3, 0, frames)
			case 'q':
				track.Q = make([]mgl32.Quat, 0, frames)
			case 's':
				track.S = make([]float32, 0, frames)
			default:
				return nil, errors.Errorf("bone %q has unknown sample type %q", bone.Tag, c)
			}
		}
	}

	t, _ := samples.Get("t").(pdxfile.ValueFloat)
	q, _ := samples.Get("q").(pdxfile.ValueFloat)
	s, _ := samples.Get("s").(pdxfile.ValueFloat)
	var ti, qi, si int
	for f := 0; f < frames; f++ {
		for i := range tracks {
			track := &tracks[i]
			if track.T != nil {
				if ti+3 > len(t) {
					return nil, errors.Errorf("translation samples end at frame %d", f)
				}
				track.T = append(track.T, mgl32.Vec3{t[ti], t[ti+1], t[ti+2]})
				ti += 3
			}
			if track.Q != nil {
				if qi+4 > len(q) {
					return nil, errors.Errorf("rotation samples end at frame %d", f)
				}
				track.Q = append(track.Q, mgl32.Quat{W: q[qi+3], V: mgl32.Vec3{q[qi], q[qi+1], q[qi+2]}})
				qi += 4
			}
			if track.S != nil {
				if si+1 > len(s) {
					return nil, errors.Errorf("scale samples end at frame %d", f)
				}
				track.S = append(track.S, s[si])
				si++
			}
		}
	}
	if ti != len(t) || qi != len(q) || si != len(s) {
		return nil, errors.Errorf("samples hold %d unused values", len(t)-ti+len(q)-qi+len(s)-si)
	}
	return tracks, nil
}
