package sim

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-skyroll/pkg/collision"
	"github.com/opd-ai/go-skyroll/pkg/event"
	"github.com/opd-ai/go-skyroll/pkg/maneuver"
)

// System priorities. The world runs higher priorities first.
const (
	pilotPriority     = 40
	driftPriority     = 30
	boundsPriority    = 20
	collisionPriority = 10
)

// The systems read simulation time from the Context rather than the float32
// delta the world passes in.

// pilotSystem applies input, drives the maneuver and moves the ship.
type pilotSystem struct{ c *Context }

func (s *pilotSystem) Priority() int { return pilotPriority }
func (s *pilotSystem) Remove(ecs.BasicEntity) {}

func (s *pilotSystem) Update(float32) {
	c := s.c
	step := c.ship.Update(c.now, c.input)

	if step.Started != maneuver.None {
		c.bus.Publish(event.NewManeuverEvent(event.ManeuverStarted, c.ship, c.now, step.Started.String(), step.Net))
	}
	if step.Finished != maneuver.None {
		c.bus.Publish(event.NewManeuverEvent(event.ManeuverCompleted, c.ship, c.now, step.Finished.String(), step.Net))
	}
}

// driftSystem moves the asteroids.
type driftSystem struct{ c *Context }

func (s *driftSystem) Priority() int { return driftPriority }
func (s *driftSystem) Update(float32) { s.c.field.Move() }

// Remove drops the asteroid with the entity's id from the field and the
// detector.
func (s *driftSystem) Remove(e ecs.BasicEntity) {
	c := s.c
	for i, rock := range c.field.Asteroids() {
		if rock.ID() == e.ID() {
			c.field.Remove(i)
			c.detector.Remove(i)
			delete(c.near, e.ID())
			return
		}
	}
}

// boundsSystem refreshes every world-space bounding box.
type boundsSystem struct{ c *Context }

func (s *boundsSystem) Priority() int { return boundsPriority }
func (s *boundsSystem) Update(float32) { s.c.detector.Refresh() }
func (s *boundsSystem) Remove(ecs.BasicEntity) {}

// collisionSystem reports the first asteroid overlapping the ship and any
// asteroid newly inside the ship's bounding sphere.
type collisionSystem struct{ c *Context }

func (s *collisionSystem) Priority() int { return collisionPriority }
func (s *collisionSystem) Remove(ecs.BasicEntity) {}

func (s *collisionSystem) Update(float32) {
	c := s.c
	rocks := c.field.Asteroids()

	if idx := c.detector.Check(); idx != collision.NoCollision {
		c.frame.Collision = idx
		c.bus.Publish(event.NewCollisionEvent(c.detector, c.now, idx, rocks[idx].ID()))
	}

	near := c.detector.Proximity(c.ship.BoundingSphere())
	inside := make(map[uint64]bool, len(near))
	for _, i := range near {
		id := rocks[i].ID()
		inside[id] = true
		if !c.near[id] && i != c.frame.Collision {
			c.bus.Publish(event.NewNearMissEvent(c.detector, c.now, i, id))
		}
	}
	c.near = inside
	c.frame.NearMisses = near
}
