package maneuver

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyroll/pkg/animation"
)

// Params configures a Machine.
type Params struct {
	Unit            float64 // world-space distance a maneuver shape is scaled by
	Factor          float64 // lateral amplification of rolls, > 1
	Duration        float64 // time bound compared against scaled elapsed time
	SpeedNormalized bool    // remap the curve parameter through the arc-length table
}

// Machine owns the maneuver state of one ship. The keyframe store is created
// on the first trigger and reused afterwards.
type Machine struct {
	params Params
	state  Kind
	store  *animation.Store

	tStart float64
	tEnd   float64
	unit   float64
	net    mgl64.Vec3

	gameOverAt float64
}

// NewMachine creates a machine in state None.
func NewMachine(p Params) *Machine {
	return &Machine{params: p}
}

// State returns the current maneuver state.
func (m *Machine) State() Kind {
	return m.state
}

// Active reports whether the machine is in any state other than None.
func (m *Machine) Active() bool {
	return m.state != None
}

// Maneuvering reports whether a triggered maneuver is playing.
func (m *Machine) Maneuvering() bool {
	return m.state.Acrobatic()
}

// Trigger arms kind at time now. speed is the ship's velocity magnitude and
// scales the maneuver's displacement unit. Requests made while the machine is
// not in None are ignored and return false.
func (m *Machine) Trigger(kind Kind, now, speed float64) bool {
	build, ok := shapes[kind]
	if !ok || m.state != None {
		return false
	}
	if m.store == nil {
		m.store = animation.NewStore()
	}

	m.unit = (2*speed + 1) * m.params.Unit / 2
	m.store.Rebuild(build(shapeParams{unit: m.unit, base: m.params.Unit, factor: m.params.Factor}))
	m.net = m.store.Frame(animation.FrameCount - 1).Position

	m.tStart = now
	m.tEnd = now + m.params.Duration
	m.state = kind
	return true
}

// Progress is the elapsed maneuver time scaled by forward speed.
func (m *Machine) Progress(now, forwardSpeed float64) float64 {
	return (now - m.tStart) * (2 + math.Abs(forwardSpeed))
}

// Expired reports whether a playing maneuver has run past its duration bound.
func (m *Machine) Expired(now, forwardSpeed float64) bool {
	return m.Maneuvering() && m.Progress(now, forwardSpeed) > m.tEnd-m.tStart
}

// Param returns the global curve parameter for time now.
func (m *Machine) Param(now, forwardSpeed float64) float64 {
	umax := m.store.UMax()
	progress := m.Progress(now, forwardSpeed)
	u := math.Mod(progress, umax)
	if u < 0 {
		u = 0
	}
	if !m.params.SpeedNormalized {
		return u
	}

	table := m.store.Table()
	span := math.Min(m.tEnd-m.tStart, umax)
	if span <= 0 {
		return u
	}
	fraction := math.Min(math.Max(progress/span, 0), 1)
	u = table.ParamAt(fraction * table.LengthAt(span))
	if u >= umax {
		u = math.Nextafter(umax, 0)
	}
	return u
}

// Transform returns the animated pose for time now as a rigid transform. It is
// the identity when no maneuver is playing.
func (m *Machine) Transform(now, forwardSpeed float64) mgl64.Mat4 {
	if !m.Maneuvering() {
		return mgl64.Ident4()
	}
	return m.store.Sample(m.Param(now, forwardSpeed))
}

// Finish ends a playing maneuver and returns its kind and the net local
// displacement of its shape. It returns None when nothing was playing.
func (m *Machine) Finish() (Kind, mgl64.Vec3) {
	if !m.Maneuvering() {
		return None, mgl64.Vec3{}
	}
	kind := m.state
	m.state = None
	return kind, m.net
}

// SignalGameOver moves the machine to the terminal GameOver state, abandoning
// any maneuver in progress. It returns false if the game was already over.
func (m *Machine) SignalGameOver(now float64) bool {
	if m.state == GameOver {
		return false
	}
	m.state = GameOver
	m.gameOverAt = now
	return true
}

// GameOverAt returns the time the game-over signal was received.
func (m *Machine) GameOverAt() float64 {
	return m.gameOverAt
}

// Unit returns the displacement unit computed at the last trigger.
func (m *Machine) Unit() float64 {
	return m.unit
}

// Window returns the start and end time of the last triggered maneuver.
func (m *Machine) Window() (start, end float64) {
	return m.tStart, m.tEnd
}

// Store returns the keyframe store, or nil before the first trigger.
func (m *Machine) Store() *animation.Store {
	return m.store
}
