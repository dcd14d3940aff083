// Package physics provides bounding volumes, their intersection tests and a
// ground-plane spatial index.
package physics

import "github.com/go-gl/mathgl/mgl64"

// Vector2D is a point on the ground plane: X is world x, Y is world z.
type Vector2D struct {
	X float64
	Y float64
}

// PlaneOf projects a world-space point onto the ground plane.
func PlaneOf(v mgl64.Vec3) Vector2D {
	return Vector2D{X: v.X(), Y: v.Z()}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// WrapAxis folds x back into [-limit, limit]: leaving one side re-enters on
// the other.
func WrapAxis(x, limit float64) float64 {
	switch {
	case x > limit:
		return -limit
	case x < -limit:
		return limit
	default:
		return x
	}
}

// WrapPlane wraps the x and z components of v into the given half extents.
// The height is left untouched.
func WrapPlane(v mgl64.Vec3, halfX, halfZ float64) mgl64.Vec3 {
	return mgl64.Vec3{WrapAxis(v.X(), halfX), v.Y(), WrapAxis(v.Z(), halfZ)}
}
