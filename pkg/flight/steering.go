package flight

import (
	"math"

	"github.com/opd-ai/go-skyroll/pkg/maneuver"
)

// Input is the per-tick snapshot delivered by the input layer. Maneuver
// fields are edges; the rest are held states.
type Input struct {
	Thrust     bool
	Reverse    bool
	SteerLeft  bool
	SteerRight bool

	Somersault bool
	LeftRoll   bool
	RightRoll  bool
}

// Requested returns the maneuver the input asks for. Somersault wins over a
// left roll, which wins over a right roll.
func (in Input) Requested() maneuver.Kind {
	switch {
	case in.Somersault:
		return maneuver.Somersault
	case in.LeftRoll:
		return maneuver.LeftRoll
	case in.RightRoll:
		return maneuver.RightRoll
	default:
		return maneuver.None
	}
}

// steer applies one tick of thrust and steering. free is true when the
// player has control of the ship, i.e. no maneuver is playing.
func (s *Ship) steer(in Input, free bool) {
	c := s.cfg
	p := &s.pose

	if free {
		if in.Thrust {
			p.Velocity[2] = math.Min(p.Velocity[2]+c.ThrustStep, c.MaxForwardSpeed)
		}
		if in.Reverse {
			p.Velocity[2] = math.Max(p.Velocity[2]-c.ThrustStep, -c.MaxForwardSpeed/2)
		}
		if in.SteerRight {
			p.Roll = math.Max(p.Roll-c.RollStep, -c.MaxRoll)
			p.Yaw += c.YawPerRoll * p.Roll
		}
		if in.SteerLeft {
			p.Roll = math.Min(p.Roll+c.RollStep, c.MaxRoll)
			p.Yaw += c.YawPerRoll * p.Roll
		}
	}

	steering := free && (in.SteerLeft || in.SteerRight)
	if !steering && p.Roll != 0 {
		p.Roll = decay(p.Roll, c.RollReturnStep, c.RollSnap)
	}

	if free && !in.Thrust && !in.Reverse && p.Velocity[2] != 0 {
		p.Velocity[2] = decay(p.Velocity[2], c.DragStep, c.SpeedSnap)
	}
}

// decay moves x toward zero by step and snaps it to zero once it is within
// snap of zero.
func decay(x, step, snap float64) float64 {
	if x < 0 {
		x += step
	} else {
		x -= step
	}
	if math.Abs(x) <= snap {
		return 0
	}
	return x
}
