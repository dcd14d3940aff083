// pkg/entity/asteroid.go
package entity

import (
	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyroll/pkg/physics"
)

// Asteroid drifts in a straight line over the plane and wraps at the field
// edges. It satisfies collision.Body.
type Asteroid struct {
	ecs.BasicEntity

	Position  mgl64.Vec3
	Direction mgl64.Vec3
	Speed     float64
	Size      float64

	halfX, halfZ float64
	bounds       *physics.BoundingBox
}

// NewAsteroid creates an asteroid whose unscaled mesh fits in a cube of half
// width extent. halfX and halfZ bound the field it wraps in.
func NewAsteroid(extent, halfX, halfZ float64) *Asteroid {
	return &Asteroid{
		BasicEntity: ecs.NewBasic(),
		halfX:       halfX,
		halfZ:       halfZ,
		bounds: physics.NewBoundingBox(
			mgl64.Vec3{-extent, -extent, -extent},
			mgl64.Vec3{extent, extent, extent},
		),
	}
}

// Move advances the asteroid by one tick.
func (a *Asteroid) Move() {
	a.Position = physics.WrapPlane(a.Position.Add(a.Direction.Mul(a.Speed)), a.halfX, a.halfZ)
}

// ModelMatrix returns T(position) * S(size).
func (a *Asteroid) ModelMatrix() mgl64.Mat4 {
	p := a.Position
	return mgl64.Translate3D(p.X(), p.Y(), p.Z()).Mul4(mgl64.Scale3D(a.Size, a.Size, a.Size))
}

// CollisionTransform returns the transform applied to the local box.
func (a *Asteroid) CollisionTransform() mgl64.Mat4 {
	return a.ModelMatrix()
}

// Bounds returns the asteroid's bounding box.
func (a *Asteroid) Bounds() *physics.BoundingBox {
	return a.bounds
}
