package animation

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// arcLengthSteps is the number of chords sampled per segment (step 0.2).
const arcLengthSteps = 5

// ArcLengthSample pairs a global curve parameter with the chord length
// accumulated from u = 0.
type ArcLengthSample struct {
	U float64
	S float64
}

// ArcLengthTable maps the curve parameter to approximate travelled distance.
type ArcLengthTable struct {
	samples []ArcLengthSample
}

// Rebuild samples the position curve of every four-frame window and stores the
// running chord length. frames must hold at least four frames.
func (t *ArcLengthTable) Rebuild(frames []Keyframe) {
	segments := len(frames) - 3
	if segments < 1 {
		panic(fmt.Sprintf("animation: arc-length table needs at least 4 frames, got %d", len(frames)))
	}

	n := segments*arcLengthSteps + 1
	params := make([]float64, 1, n)
	chords := make([]float64, 1, n)

	for k := 0; k < segments; k++ {
		w := [4]Keyframe{frames[k], frames[k+1], frames[k+2], frames[k+3]}
		prev := Position(w, 0)
		for j := 1; j <= arcLengthSteps; j++ {
			u := float64(j) / arcLengthSteps
			next := Position(w, u)
			params = append(params, float64(k)+u)
			chords = append(chords, floats.Distance(prev[:], next[:], 2))
			prev = next
		}
	}

	cumulative := floats.CumSum(make([]float64, len(chords)), chords)

	t.samples = t.samples[:0]
	for i, u := range params {
		t.samples = append(t.samples, ArcLengthSample{U: u, S: cumulative[i]})
	}
}

// Samples returns a copy of the table in parameter order.
func (t *ArcLengthTable) Samples() []ArcLengthSample {
	out := make([]ArcLengthSample, len(t.samples))
	copy(out, t.samples)
	return out
}

// SMax is the total approximate length of the curve.
func (t *ArcLengthTable) SMax() float64 {
	if len(t.samples) == 0 {
		return 0
	}
	return t.samples[len(t.samples)-1].S
}

// UMax is the largest sampled curve parameter.
func (t *ArcLengthTable) UMax() float64 {
	if len(t.samples) == 0 {
		return 0
	}
	return t.samples[len(t.samples)-1].U
}

// ParamAt inverts the table: it returns the curve parameter at which the
// accumulated length first reaches s, interpolating linearly between samples.
// s is clamped to [0, SMax].
func (t *ArcLengthTable) ParamAt(s float64) float64 {
	if len(t.samples) == 0 || s <= 0 {
		return 0
	}
	if s > t.SMax() {
		s = t.SMax()
	}

	i := sort.Search(len(t.samples), func(i int) bool {
		return t.samples[i].S >= s
	})
	if i == 0 {
		return t.samples[0].U
	}

	lo, hi := t.samples[i-1], t.samples[i]
	span := hi.S - lo.S
	if span <= 0 {
		return lo.U
	}
	return lo.U + (s-lo.S)/span*(hi.U-lo.U)
}

// LengthAt returns the accumulated length at curve parameter u, interpolating
// linearly between samples. u is clamped to the sampled range.
func (t *ArcLengthTable) LengthAt(u float64) float64 {
	if len(t.samples) == 0 || u <= 0 {
		return 0
	}
	if u >= t.UMax() {
		return t.SMax()
	}

	i := sort.Search(len(t.samples), func(i int) bool {
		return t.samples[i].U >= u
	})
	lo, hi := t.samples[i-1], t.samples[i]
	return lo.S + (u-lo.U)/(hi.U-lo.U)*(hi.S-lo.S)
}
