package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BoundingBox is an axis-aligned box in an object's local space together with
// a world-space cache. The cache is only valid for the frame in which
// UpdateCoords was last called.
type BoundingBox struct {
	Min mgl64.Vec3
	Max mgl64.Vec3

	worldMin mgl64.Vec3
	worldMax mgl64.Vec3
}

// NewBoundingBox creates a box from two opposite corners. The world cache
// starts equal to the local box.
func NewBoundingBox(a, b mgl64.Vec3) *BoundingBox {
	bb := &BoundingBox{}
	for i := 0; i < 3; i++ {
		bb.Min[i] = math.Min(a[i], b[i])
		bb.Max[i] = math.Max(a[i], b[i])
	}
	bb.worldMin, bb.worldMax = bb.Min, bb.Max
	return bb
}

// corners returns the eight local-space corners.
func (b *BoundingBox) corners() [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	for i := range out {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				out[i][axis] = b.Max[axis]
			} else {
				out[i][axis] = b.Min[axis]
			}
		}
	}
	return out
}

// UpdateCoords recomputes the world-space box by transforming every local
// corner with world and taking the axis-aligned extent of the result.
func (b *BoundingBox) UpdateCoords(world mgl64.Mat4) {
	first := true
	for _, c := range b.corners() {
		p := world.Mul4x1(c.Vec4(1)).Vec3()
		if first {
			b.worldMin, b.worldMax = p, p
			first = false
			continue
		}
		for axis := 0; axis < 3; axis++ {
			b.worldMin[axis] = math.Min(b.worldMin[axis], p[axis])
			b.worldMax[axis] = math.Max(b.worldMax[axis], p[axis])
		}
	}
}

// World returns the cached world-space corners.
func (b *BoundingBox) World() (min, max mgl64.Vec3) {
	return b.worldMin, b.worldMax
}

// Center returns the center of the world-space box.
func (b *BoundingBox) Center() mgl64.Vec3 {
	return b.worldMin.Add(b.worldMax).Mul(0.5)
}

// HalfExtents returns half the size of the world-space box on each axis.
func (b *BoundingBox) HalfExtents() mgl64.Vec3 {
	return b.worldMax.Sub(b.worldMin).Mul(0.5)
}

// Contains reports whether a world-space point lies inside the box.
func (b *BoundingBox) Contains(p mgl64.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.worldMin[axis] || p[axis] > b.worldMax[axis] {
			return false
		}
	}
	return true
}

// Collided reports whether the world-space boxes overlap on all three axes.
// Touching faces count as overlap. The test is symmetric.
func (b *BoundingBox) Collided(other *BoundingBox) bool {
	for axis := 0; axis < 3; axis++ {
		if b.worldMax[axis] < other.worldMin[axis] || b.worldMin[axis] > other.worldMax[axis] {
			return false
		}
	}
	return true
}
