// Package flight models the player ship: its pose, per-tick steering, the
// transforms handed to rendering and collision, and the hit timer.
package flight

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyroll/pkg/config"
	"github.com/opd-ai/go-skyroll/pkg/maneuver"
	"github.com/opd-ai/go-skyroll/pkg/physics"
)

// Pose is the persistent ship state. Only the forward (z) component of
// Velocity is driven.
type Pose struct {
	Position     mgl64.Vec3
	PrevPosition mgl64.Vec3
	Yaw          float64
	Roll         float64
	Velocity     mgl64.Vec3
}

// Step summarizes the maneuver transitions of one Update.
type Step struct {
	Started  maneuver.Kind
	Finished maneuver.Kind
	// Net is the world displacement committed when a maneuver finished.
	Net mgl64.Vec3
}

// Ship is the player ship. It satisfies collision.Ship.
type Ship struct {
	cfg   config.ShipConfig
	world config.WorldConfig

	machine *maneuver.Machine
	pose    Pose
	bounds  *physics.BoundingBox

	now  float64
	anim mgl64.Mat4

	hit   bool
	hitAt float64
}

// NewShip creates a ship at the origin facing +z with no velocity.
func NewShip(ship config.ShipConfig, world config.WorldConfig, m config.ManeuverConfig) *Ship {
	return &Ship{
		cfg:   ship,
		world: world,
		machine: maneuver.NewMachine(maneuver.Params{
			Unit:            m.Unit,
			Factor:          m.Factor,
			Duration:        m.Duration,
			SpeedNormalized: m.SpeedNormalized,
		}),
		bounds: physics.NewBoundingBox(mgl64.Vec3(ship.BoundsMin), mgl64.Vec3(ship.BoundsMax)),
		anim:   mgl64.Ident4(),
	}
}

// Update advances the ship by one tick at simulation time now. The order is
// trigger, steering, movement, wraparound, then maneuver exit.
func (s *Ship) Update(now float64, in Input) Step {
	var step Step
	s.now = now

	if kind := in.Requested(); kind != maneuver.None {
		if s.machine.Trigger(kind, now, s.pose.Velocity.Len()) {
			step.Started = kind
		}
	}

	s.steer(in, s.machine.State() == maneuver.None)

	if s.machine.State() != maneuver.GameOver {
		s.pose.Position = s.pose.Position.Add(s.heading(s.pose.Velocity))
		s.wrap()
	}

	if s.machine.Expired(now, s.pose.Velocity.Z()) {
		kind, net := s.machine.Finish()
		shift := s.heading(net)
		s.pose.Position = s.pose.Position.Add(shift)
		s.pose.PrevPosition = s.pose.PrevPosition.Add(shift)
		step.Finished = kind
		step.Net = shift
	}

	s.anim = s.machine.Transform(now, s.pose.Velocity.Z())
	return step
}

// CommitFrame records the current position as the previous one. It must run
// after the frame's pose has been drawn and collision tested.
func (s *Ship) CommitFrame() {
	s.pose.PrevPosition = s.pose.Position
}

// heading rotates a ship-local vector by the current yaw.
func (s *Ship) heading(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.HomogRotate3DY(s.pose.Yaw).Mul4x1(v.Vec4(0)).Vec3()
}

// wrap moves the ship to the opposite edge once it leaves the world. The
// previous position moves with it so the frame delta is unchanged.
func (s *Ship) wrap() {
	p := s.pose.Position
	wrapped := physics.WrapPlane(p, s.world.HalfExtentX, s.world.HalfExtentZ)
	if wrapped != p {
		s.pose.PrevPosition = s.pose.PrevPosition.Add(wrapped.Sub(p))
		s.pose.Position = wrapped
	}
}

// rolling reports whether a roll is playing. Rolls carry the camera along
// with their lateral translation.
func (s *Ship) rolling() bool {
	st := s.machine.State()
	return st == maneuver.LeftRoll || st == maneuver.RightRoll
}

// ModelMatrix returns the ship's model transform for the current tick.
func (s *Ship) ModelMatrix() mgl64.Mat4 {
	p, prev := s.pose.Position, s.pose.PrevPosition
	delta := p.Sub(prev)

	m := mgl64.Translate3D(0, -0.3, 0).
		Mul4(mgl64.Scale3D(1.25, 1.25, 1.25)).
		Mul4(mgl64.HomogRotate3DY(math.Pi)).
		Mul4(mgl64.Translate3D(prev.X(), prev.Y(), prev.Z())).
		Mul4(mgl64.HomogRotate3DY(s.pose.Yaw)).
		Mul4(mgl64.Translate3D(delta.X(), delta.Y(), delta.Z()))

	if s.rolling() {
		e := s.anim.Col(3)
		m = m.Mul4(mgl64.Translate3D(e.X(), e.Y(), e.Z()))
	}
	return m
}

// DrawTransform returns the transform the renderer should draw the ship with:
// the maneuver pose while one plays, the roll tilt otherwise.
func (s *Ship) DrawTransform() mgl64.Mat4 {
	m := s.ModelMatrix()
	if !s.machine.Maneuvering() {
		return m.Mul4(mgl64.HomogRotate3DZ(-s.pose.Roll))
	}
	if s.rolling() {
		e := s.anim.Col(3)
		m = m.Mul4(mgl64.Translate3D(-e.X(), -e.Y(), -e.Z()))
	}
	return m.Mul4(s.anim)
}

// CollisionTransform returns the transform applied to the ship's local box.
func (s *Ship) CollisionTransform() mgl64.Mat4 {
	return s.ModelMatrix().Mul4(mgl64.HomogRotate3DZ(-s.pose.Roll))
}

// Bounds returns the ship's bounding box.
func (s *Ship) Bounds() *physics.BoundingBox {
	return s.bounds
}

// Active reports whether the maneuver machine is in any state but none.
func (s *Ship) Active() bool {
	return s.machine.Active()
}

// Position returns the ship's world position.
func (s *Ship) Position() mgl64.Vec3 {
	return s.ModelMatrix().Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
}

// ForwardDir returns the normalized direction of travel over the last frame.
// A ship that did not move reports its heading.
func (s *Ship) ForwardDir() mgl64.Vec3 {
	d := s.pose.Position.Sub(s.pose.PrevPosition)
	if d.Len() == 0 {
		return s.heading(mgl64.Vec3{0, 0, 1})
	}
	return d.Normalize()
}

// BoundingSphere returns the coarse sphere around the ship's world position.
func (s *Ship) BoundingSphere() physics.BoundingSphere {
	return physics.BoundingSphere{Center: s.Position(), Radius: s.cfg.SphereRadius}
}

// SetInvincible records a hit at time now, starting the invincibility window.
func (s *Ship) SetInvincible(now float64) {
	s.hit = true
	s.hitAt = now
}

// IsInvincible reports whether now falls inside the window started by the
// last hit. A ship that was never hit is not invincible.
func (s *Ship) IsInvincible(now float64) bool {
	return s.hit && now < s.hitAt+s.cfg.InvincibleTime
}

// HitTime returns the time of the last hit and whether there was one.
func (s *Ship) HitTime() (float64, bool) {
	return s.hitAt, s.hit
}

// Tint returns the color modifier for the ship: white, fading to red halfway
// through the invincibility window and back to white at its end.
func (s *Ship) Tint(now float64) mgl64.Vec3 {
	if !s.IsInvincible(now) {
		return mgl64.Vec3{1, 1, 1}
	}
	p := 2 * (now - s.hitAt) / s.cfg.InvincibleTime
	if p > 1 {
		p = 2 - p
	}
	return mgl64.Vec3{1, 1 - p, 1 - p}
}

// GameOver moves the ship to its terminal state. It returns false if the
// game was already over.
func (s *Ship) GameOver(now float64) bool {
	if !s.machine.SignalGameOver(now) {
		return false
	}
	s.anim = mgl64.Ident4()
	return true
}

// State returns the current maneuver state.
func (s *Ship) State() maneuver.Kind {
	return s.machine.State()
}

// Machine returns the ship's maneuver state machine.
func (s *Ship) Machine() *maneuver.Machine {
	return s.machine
}

// Pose returns a copy of the ship's pose.
func (s *Ship) Pose() Pose {
	return s.pose
}

// SetPose replaces the ship's pose.
func (s *Ship) SetPose(p Pose) {
	s.pose = p
}

// Now returns the simulation time of the last Update.
func (s *Ship) Now() float64 {
	return s.now
}
