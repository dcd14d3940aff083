// Package animation holds the keyframe store, the Catmull-Rom evaluator and the
// arc-length table used to animate scripted ship maneuvers.
package animation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// FrameCount is the number of control frames held by a Store.
const FrameCount = 8

// Keyframe is an authored control frame: a position and an orientation.
type Keyframe struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Generator writes a complete control shape into frames. Every frame must be
// written; the store does not clear frames between rebuilds.
type Generator func(frames *[FrameCount]Keyframe)

// Store is a fixed set of control frames that is rewritten in place each time a
// maneuver is armed.
type Store struct {
	frames [FrameCount]Keyframe
	table  ArcLengthTable
}

// NewStore creates a store whose frames all sit at the origin with identity
// orientation.
func NewStore() *Store {
	s := &Store{}
	for i := range s.frames {
		s.frames[i].Orientation = mgl64.QuatIdent()
	}
	s.table.Rebuild(s.frames[:])
	return s
}

// Rebuild overwrites every frame using gen, aligns adjacent quaternions onto the
// same hemisphere and rebuilds the arc-length table.
func (s *Store) Rebuild(gen Generator) {
	gen(&s.frames)
	s.alignHemispheres()
	s.table.Rebuild(s.frames[:])
}

// alignHemispheres negates any quaternion whose dot product with its predecessor
// is not positive, so interpolation takes the short way round.
func (s *Store) alignHemispheres() {
	for i := 0; i < FrameCount-1; i++ {
		if s.frames[i].Orientation.Dot(s.frames[i+1].Orientation) <= 0 {
			s.frames[i+1].Orientation = s.frames[i+1].Orientation.Scale(-1)
		}
	}
}

// Len returns the number of frames.
func (s *Store) Len() int {
	return FrameCount
}

// UMax is the exclusive upper bound of the global curve parameter.
func (s *Store) UMax() float64 {
	return float64(FrameCount - 3)
}

// Frame returns frame i.
func (s *Store) Frame(i int) Keyframe {
	if i < 0 || i >= FrameCount {
		panic(fmt.Sprintf("animation: frame index %d out of range [0,%d)", i, FrameCount))
	}
	return s.frames[i]
}

// Frames returns a copy of all frames in order.
func (s *Store) Frames() []Keyframe {
	out := make([]Keyframe, FrameCount)
	copy(out, s.frames[:])
	return out
}

// Window returns the four consecutive frames starting at k.
func (s *Store) Window(k int) [4]Keyframe {
	if k < 0 || k+3 >= FrameCount {
		panic(fmt.Sprintf("animation: spline window %d out of range [0,%d)", k, FrameCount-3))
	}
	return [4]Keyframe{s.frames[k], s.frames[k+1], s.frames[k+2], s.frames[k+3]}
}

// Sample evaluates the whole multi-segment curve at global parameter u in
// [0, UMax) and returns the interpolated transform.
func (s *Store) Sample(u float64) mgl64.Mat4 {
	if u < 0 || u >= s.UMax() || math.IsNaN(u) {
		panic(fmt.Sprintf("animation: curve parameter %g out of range [0,%g)", u, s.UMax()))
	}
	k := int(math.Floor(u))
	return Evaluate(s.Window(k), u-float64(k))
}

// Table returns the arc-length table built from the current frames.
func (s *Store) Table() *ArcLengthTable {
	return &s.table
}
