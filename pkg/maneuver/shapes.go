package maneuver

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyroll/pkg/animation"
)

var (
	lateralAxis = mgl64.Vec3{1, 0, 0}
	forwardAxis = mgl64.Vec3{0, 0, 1}
)

// shapeParams are the distances a control shape is scaled by.
type shapeParams struct {
	unit   float64 // speed-derived displacement unit
	base   float64 // fixed world-space UNIT
	factor float64 // lateral amplification for rolls
}

// shape builds the control-frame generator for one maneuver.
type shape func(p shapeParams) animation.Generator

// shapes maps each triggerable maneuver to its control shape. Frames 0-1 and
// 6-7 hold the start and end pose so the curve starts and ends at rest.
var shapes = map[Kind]shape{
	Somersault: somersault,
	LeftRoll:   roll(1, [animation.FrameCount]float64{0, 0, 5 * math.Pi / 4, math.Pi, math.Pi / 4, 0, 0, 0}),
	RightRoll:  roll(-1, [animation.FrameCount]float64{0, 0, math.Pi / 4, math.Pi, 5 * math.Pi / 4, 0, 0, 0}),
}

// somersault loops up and over the ship's current position, turning a full
// revolution about the lateral axis.
func somersault(p shapeParams) animation.Generator {
	b := p.base
	positions := [animation.FrameCount]mgl64.Vec3{
		{}, {},
		{0, b / 2, b / 2},
		{0, b, 0},
		{0, b / 2, -b / 2},
		{}, {}, {},
	}
	angles := [animation.FrameCount]float64{0, 0, -math.Pi / 2, -math.Pi, -3 * math.Pi / 2, 0, 0, 0}

	return func(frames *[animation.FrameCount]animation.Keyframe) {
		for i := range frames {
			frames[i] = animation.Keyframe{
				Position:    positions[i],
				Orientation: mgl64.QuatRotate(angles[i], lateralAxis),
			}
		}
	}
}

// roll slides the ship sideways by factor*unit in direction dir while spinning
// it a full turn about the forward axis.
func roll(dir float64, angles [animation.FrameCount]float64) shape {
	progress := [animation.FrameCount]float64{0, 0, 0.25, 0.5, 0.75, 1, 1, 1}

	return func(p shapeParams) animation.Generator {
		reach := dir * p.factor * p.unit
		return func(frames *[animation.FrameCount]animation.Keyframe) {
			for i := range frames {
				frames[i] = animation.Keyframe{
					Position:    mgl64.Vec3{reach * progress[i], 0, 0},
					Orientation: mgl64.QuatRotate(angles[i], forwardAxis),
				}
			}
		}
	}
}
