package animation

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// CatmullRom is the basis B in p(u) = G * B * [1 u u^2 u^3]^T where the columns
// of G are the four control values of a segment.
var CatmullRom = mgl64.Mat4FromRows(
	mgl64.Vec4{0, -1, 2, -1},
	mgl64.Vec4{2, 0, -5, 3},
	mgl64.Vec4{0, 1, 4, -3},
	mgl64.Vec4{0, 0, -1, 1},
).Mul(0.5)

func powers(u float64) mgl64.Vec4 {
	if u < 0 || u > 1 {
		panic(fmt.Sprintf("animation: local parameter %g out of range [0,1]", u))
	}
	return mgl64.Vec4{1, u, u * u, u * u * u}
}

func blend(g mgl64.Mat4, u float64) mgl64.Vec4 {
	return g.Mul4(CatmullRom).Mul4x1(powers(u))
}

// quatVec lays a quaternion out as (x, y, z, w).
func quatVec(q mgl64.Quat) mgl64.Vec4 {
	return mgl64.Vec4{q.V[0], q.V[1], q.V[2], q.W}
}

// Position interpolates the positions of a four-frame window. At u == 0 it
// returns w[1] and at u == 1 it returns w[2].
func Position(w [4]Keyframe, u float64) mgl64.Vec3 {
	g := mgl64.Mat4FromCols(
		w[0].Position.Vec4(0),
		w[1].Position.Vec4(0),
		w[2].Position.Vec4(0),
		w[3].Position.Vec4(0),
	)
	return blend(g, u).Vec3()
}

// Orientation blends the window's quaternions component-wise and renormalizes
// the result.
func Orientation(w [4]Keyframe, u float64) mgl64.Quat {
	g := mgl64.Mat4FromCols(
		quatVec(w[0].Orientation),
		quatVec(w[1].Orientation),
		quatVec(w[2].Orientation),
		quatVec(w[3].Orientation),
	)
	r := blend(g, u)
	return mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
}

// Evaluate returns the rigid transform for a window at u: rotation from the
// interpolated quaternion, translation in the last column.
func Evaluate(w [4]Keyframe, u float64) mgl64.Mat4 {
	e := Orientation(w, u).Mat4()
	e.SetCol(3, Position(w, u).Vec4(1))
	return e
}
