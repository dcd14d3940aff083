// Package collision tests the ship's bounding volume against every other
// registered body once per frame.
package collision

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyroll/pkg/physics"
)

// NoCollision is returned by Check when nothing overlaps the ship.
const NoCollision = -1

// broadPhaseSlack widens the broad-phase query so boxes that only touch the
// ship are still handed to the narrow phase.
const broadPhaseSlack = 1e-6

// Body is anything with a local bounding box and a per-frame world transform.
type Body interface {
	Bounds() *physics.BoundingBox
	CollisionTransform() mgl64.Mat4
}

// Ship is the body every other body is tested against.
type Ship interface {
	Body
	// Active reports a maneuver state other than none; collisions are not
	// reported while it is true.
	Active() bool
}

// Detector owns the list of bodies in insertion order. Refresh must run once
// per frame, after every pose update and before Check.
type Detector struct {
	ship   Ship
	bodies []Body
	index  *physics.QuadTree
	strays []int
	reach  mgl64.Vec3
}

// NewDetector creates a detector for ship. area is the ground-plane region
// covered by the broad-phase index; bodies outside it are still tested.
func NewDetector(ship Ship, area physics.Rect) *Detector {
	return &Detector{
		ship:  ship,
		index: physics.NewQuadTree(area, 8),
	}
}

// Add registers a body and returns its index.
func (d *Detector) Add(b Body) int {
	d.bodies = append(d.bodies, b)
	return len(d.bodies) - 1
}

// Remove unregisters the body at index i. Later bodies shift down by one.
func (d *Detector) Remove(i int) {
	if i < 0 || i >= len(d.bodies) {
		return
	}
	d.bodies = append(d.bodies[:i], d.bodies[i+1:]...)
}

// Len returns the number of registered bodies.
func (d *Detector) Len() int {
	return len(d.bodies)
}

// Body returns the body at index i.
func (d *Detector) Body(i int) Body {
	return d.bodies[i]
}

// Refresh recomputes every world-space bounding box from the current
// transforms and rebuilds the broad-phase index.
func (d *Detector) Refresh() {
	d.ship.Bounds().UpdateCoords(d.ship.CollisionTransform())

	d.index.Clear()
	d.strays = d.strays[:0]
	d.reach = mgl64.Vec3{}

	for i, b := range d.bodies {
		bb := b.Bounds()
		bb.UpdateCoords(b.CollisionTransform())

		half := bb.HalfExtents()
		for axis := 0; axis < 3; axis++ {
			if half[axis] > d.reach[axis] {
				d.reach[axis] = half[axis]
			}
		}
		if !d.index.Insert(physics.PlaneOf(bb.Center()), i) {
			d.strays = append(d.strays, i)
		}
	}
}

// candidates returns, in ascending order, the bodies whose ground-plane
// center is close enough for their box to reach the ship's box.
func (d *Detector) candidates() []int {
	shipBox := d.ship.Bounds()
	half := shipBox.HalfExtents()
	area := physics.Rect{
		Center: physics.PlaneOf(shipBox.Center()),
		Width:  2*(half.X()+d.reach.X()) + broadPhaseSlack,
		Height: 2*(half.Z()+d.reach.Z()) + broadPhaseSlack,
	}

	found := d.index.Query(area)
	found = append(found, d.strays...)
	sort.Ints(found)
	return found
}

// Check returns the index of the first body, in insertion order, whose world
// box overlaps the ship's, or NoCollision. It always returns NoCollision
// while the ship is in any maneuver state other than none.
func (d *Detector) Check() int {
	if d.ship.Active() {
		return NoCollision
	}

	shipBox := d.ship.Bounds()
	for _, i := range d.candidates() {
		if shipBox.Collided(d.bodies[i].Bounds()) {
			return i
		}
	}
	return NoCollision
}

// Proximity returns, in insertion order, the bodies whose world box is
// reached by sphere. It ignores the ship's maneuver state.
func (d *Detector) Proximity(sphere physics.BoundingSphere) []int {
	var near []int
	for i, b := range d.bodies {
		if sphere.IntersectsBox(b.Bounds()) {
			near = append(near, i)
		}
	}
	return near
}
