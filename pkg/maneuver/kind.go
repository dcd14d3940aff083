// Package maneuver drives scripted acrobatics: it arms the keyframe store for a
// maneuver, samples the spline each frame and reports the net displacement
// when the maneuver ends.
package maneuver

// Kind identifies the maneuver state of a ship.
type Kind int

const (
	None Kind = iota
	LeftRoll
	RightRoll
	Somersault
	GameOver
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case LeftRoll:
		return "left_roll"
	case RightRoll:
		return "right_roll"
	case Somersault:
		return "somersault"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Acrobatic reports whether k is a maneuver that can be triggered.
func (k Kind) Acrobatic() bool {
	_, ok := shapes[k]
	return ok
}
