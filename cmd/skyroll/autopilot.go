package main

import "github.com/opd-ai/go-skyroll/pkg/flight"

// cue is one scripted action. Held actions last from start until end;
// maneuver cues fire on their start frame only.
type cue struct {
	start, end int
	apply      func(*flight.Input)
}

// autopilot replays a fixed flight plan, looping every period frames.
type autopilot struct {
	period int
	cues   []cue
}

func newAutopilot() *autopilot {
	return &autopilot{
		period: 960,
		cues: []cue{
			{0, 180, func(in *flight.Input) { in.Thrust = true }},
			{200, 200, func(in *flight.Input) { in.LeftRoll = true }},
			{360, 420, func(in *flight.Input) { in.SteerLeft = true }},
			{440, 440, func(in *flight.Input) { in.RightRoll = true }},
			{600, 660, func(in *flight.Input) { in.SteerRight = true }},
			{700, 700, func(in *flight.Input) { in.Somersault = true }},
			{880, 940, func(in *flight.Input) { in.Reverse = true }},
		},
	}
}

// Input returns the input snapshot for frame n.
func (a *autopilot) Input(n int) flight.Input {
	var in flight.Input
	f := n % a.period
	for _, c := range a.cues {
		if f >= c.start && f <= c.end {
			c.apply(&in)
		}
	}
	return in
}
