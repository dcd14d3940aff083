// Package sim owns one flight session: the ship, the asteroid field, the
// collision detector and the event bus, stepped one frame at a time.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyroll/pkg/collision"
	"github.com/opd-ai/go-skyroll/pkg/config"
	"github.com/opd-ai/go-skyroll/pkg/entity"
	"github.com/opd-ai/go-skyroll/pkg/event"
	"github.com/opd-ai/go-skyroll/pkg/flight"
	"github.com/opd-ai/go-skyroll/pkg/logging"
	"github.com/opd-ai/go-skyroll/pkg/maneuver"
	"github.com/opd-ai/go-skyroll/pkg/physics"
	"github.com/opd-ai/go-skyroll/pkg/render"
)

var (
	// ErrFrameNotCommitted is returned by Advance when the previous frame was
	// never committed.
	ErrFrameNotCommitted = errors.New("previous frame not committed")
	// ErrFrameNotAdvanced is returned by CommitFrame when no frame is pending.
	ErrFrameNotAdvanced = errors.New("no frame advanced since last commit")
)

// Frame is everything the render layer needs for one tick.
type Frame struct {
	Time               float64
	State              maneuver.Kind
	ShipTransform      mgl64.Mat4
	ShipTint           mgl64.Vec3
	AsteroidTransforms []mgl64.Mat4
	// Collision is the index of the asteroid touching the ship, or
	// collision.NoCollision.
	Collision  int
	Hit        bool
	Lives      int
	NearMisses []int
}

// Draw hands the frame to r.
func (f Frame) Draw(r render.Renderer) error {
	r.Clear()
	for i, m := range f.AsteroidTransforms {
		r.DrawAsteroid(i, m)
	}
	r.DrawShip(f.ShipTransform, f.ShipTint)
	return r.Present()
}

// Context is a flight session. Each frame is produced by Advance and must be
// closed by CommitFrame once it has been drawn.
type Context struct {
	cfg    *config.GameConfig
	logger *logging.Logger
	ctx    context.Context

	bus      *event.Bus
	world    ecs.World
	ship     *flight.Ship
	field    *entity.Field
	detector *collision.Detector

	now     float64
	lives   int
	input   flight.Input
	pending bool
	frame   Frame
	near    map[uint64]bool
}

// New creates a session from cfg. runID tags every log line; an empty runID
// is replaced by a generated one.
func New(cfg *config.GameConfig, logger *logging.Logger, runID string) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "invalid config")
	}

	c := &Context{
		cfg:    cfg,
		logger: logger,
		ctx:    logging.WithRunID(context.Background(), runID),
		bus:    event.NewEventBus(),
		ship:   flight.NewShip(cfg.Ship, cfg.World, cfg.Maneuver),
		field:  entity.NewField(cfg.Asteroids),
		lives:  cfg.Rules.Lives,
		near:   make(map[uint64]bool),
	}

	c.initDetector()
	c.initSystems()
	c.registerEventHandlers()

	c.logger.Info(c.ctx, "session created",
		"asteroids", c.field.Len(),
		"lives", c.lives,
		"seed", cfg.Asteroids.Seed,
	)
	return c, nil
}

// initDetector registers every asteroid, in field order, with a detector
// whose broad phase covers the asteroid field.
func (c *Context) initDetector() {
	a := c.cfg.Asteroids
	c.detector = collision.NewDetector(c.ship, physics.Rect{
		Center: physics.Vector2D{},
		Width:  2 * a.HalfExtentX,
		Height: 2 * a.HalfExtentZ,
	})
	for _, rock := range c.field.Asteroids() {
		c.detector.Add(rock)
	}
}

// initSystems registers the per-frame systems. Priorities fix the order
// within a frame: pilot, drift, bounds, then collision.
func (c *Context) initSystems() {
	c.world.AddSystem(&pilotSystem{c: c})
	c.world.AddSystem(&driftSystem{c: c})
	c.world.AddSystem(&boundsSystem{c: c})
	c.world.AddSystem(&collisionSystem{c: c})
}

// Advance steps the session by dt using the input snapshot in, and returns
// the resulting frame.
func (c *Context) Advance(dt float64, in flight.Input) (Frame, error) {
	if c.pending {
		return Frame{}, ErrFrameNotCommitted
	}
	if dt < 0 {
		return Frame{}, fmt.Errorf("negative time step %v", dt)
	}

	c.now += dt
	c.input = in
	c.frame = Frame{Time: c.now, Collision: collision.NoCollision}

	c.world.Update(float32(dt))

	c.frame.State = c.ship.State()
	c.frame.ShipTransform = c.ship.DrawTransform()
	c.frame.ShipTint = c.ship.Tint(c.now)
	c.frame.Lives = c.lives
	c.frame.AsteroidTransforms = make([]mgl64.Mat4, c.field.Len())
	for i, rock := range c.field.Asteroids() {
		c.frame.AsteroidTransforms[i] = rock.ModelMatrix()
	}

	c.pending = true
	return c.frame, nil
}

// CommitFrame closes the frame returned by the last Advance. It must be
// called after the frame has been drawn.
func (c *Context) CommitFrame() error {
	if !c.pending {
		return ErrFrameNotAdvanced
	}
	c.ship.CommitFrame()
	c.pending = false
	return nil
}

// Ship returns the player ship.
func (c *Context) Ship() *flight.Ship {
	return c.ship
}

// Field returns the asteroid field.
func (c *Context) Field() *entity.Field {
	return c.field
}

// Detector returns the collision detector.
func (c *Context) Detector() *collision.Detector {
	return c.detector
}

// Bus returns the session's event bus.
func (c *Context) Bus() *event.Bus {
	return c.bus
}

// Now returns the current simulation time.
func (c *Context) Now() float64 {
	return c.now
}

// Lives returns the lives left.
func (c *Context) Lives() int {
	return c.lives
}

// registerEventHandlers registers the session's own handlers for game events
func (c *Context) registerEventHandlers() {
	c.bus.Subscribe(event.AsteroidCollision, c.handleCollisionEvent)
	c.bus.Subscribe(event.ManeuverStarted, c.logManeuverEvent)
	c.bus.Subscribe(event.ManeuverCompleted, c.logManeuverEvent)
	c.bus.Subscribe(event.NearMiss, c.logNearMissEvent)
}

// handleCollisionEvent costs a life unless the ship is inside its hit
// window. Losing the last life ends the game.
func (c *Context) handleCollisionEvent(e event.Event) {
	hit, ok := e.(*event.CollisionEvent)
	if !ok || c.ship.IsInvincible(hit.Time) {
		return
	}

	c.lives--
	c.ship.SetInvincible(hit.Time)
	c.frame.Hit = true
	c.logger.Info(c.ctx, "ship hit",
		"asteroid", hit.AsteroidIndex,
		"lives", c.lives,
		"time", hit.Time,
	)
	c.bus.Publish(event.NewShipEvent(event.ShipHit, c.ship, hit.Time, c.lives))

	if c.lives > 0 {
		return
	}
	if c.ship.GameOver(hit.Time) {
		c.logger.Info(c.ctx, "game over", "time", hit.Time)
		c.bus.Publish(event.NewShipEvent(event.GameOver, c.ship, hit.Time, 0))
	}
}

func (c *Context) logManeuverEvent(e event.Event) {
	m, ok := e.(*event.ManeuverEvent)
	if !ok {
		return
	}
	if e.GetType() == event.ManeuverStarted {
		c.logger.Info(c.ctx, "maneuver started", "kind", m.Kind, "time", m.Time)
		return
	}
	c.logger.Info(c.ctx, "maneuver completed",
		"kind", m.Kind,
		"time", m.Time,
		"dx", m.Net.X(),
		"dz", m.Net.Z(),
	)
}

func (c *Context) logNearMissEvent(e event.Event) {
	if m, ok := e.(*event.NearMissEvent); ok {
		c.logger.Debug(c.ctx, "near miss", "asteroid", m.AsteroidIndex, "time", m.Time)
	}
}

// RemoveAsteroid takes an asteroid out of the session.
func (c *Context) RemoveAsteroid(id uint64) {
	for _, rock := range c.field.Asteroids() {
		if rock.ID() == id {
			c.world.RemoveEntity(rock.BasicEntity)
			return
		}
	}
}

// AddAsteroid appends an asteroid to the field and returns its collision
// index.
func (c *Context) AddAsteroid(a *entity.Asteroid) int {
	c.field.Add(a)
	return c.detector.Add(a)
}
