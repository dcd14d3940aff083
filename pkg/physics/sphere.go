package physics

import "github.com/go-gl/mathgl/mgl64"

// BoundingSphere is a world-space sphere used as a coarse bound.
type BoundingSphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Collides checks if two spheres are overlapping
func (s BoundingSphere) Collides(other BoundingSphere) bool {
	return s.Center.Sub(other.Center).Len() < s.Radius+other.Radius
}

// IntersectsBox reports whether the sphere reaches a world-space box.
func (s BoundingSphere) IntersectsBox(b *BoundingBox) bool {
	lo, hi := b.World()
	var closest mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		c := s.Center[axis]
		if c < lo[axis] {
			c = lo[axis]
		} else if c > hi[axis] {
			c = hi[axis]
		}
		closest[axis] = c
	}
	return closest.Sub(s.Center).Len() <= s.Radius
}

// CollisionResult contains information about a sphere contact
type CollisionResult struct {
	Collided     bool
	Normal       mgl64.Vec3
	Penetration  float64
	ContactPoint mgl64.Vec3
}

// CheckCollision performs detailed collision detection between two spheres.
// Normal points from a to b; it is zero for concentric spheres.
func CheckCollision(a, b BoundingSphere) CollisionResult {
	normal := b.Center.Sub(a.Center)
	distance := normal.Len()

	if distance > a.Radius+b.Radius {
		return CollisionResult{Collided: false}
	}

	if distance > 0 {
		normal = normal.Mul(1 / distance)
	}

	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  a.Radius + b.Radius - distance,
		ContactPoint: a.Center.Add(normal.Mul(a.Radius)),
	}
}
