package anim

import (
	"chopper-recorder/internal/geom"
	"chopper-recorder/internal/mathutil"
)

// State is the animation state threaded through the tick loop: the marker's
// current global position and the tick count. Values, not mutations — Advance
// returns the successor state.
type State struct {
	Marker mathutil.Vec3
	Tick   int
}

// Advance rotates the marker by step radians about the frame's local y-axis
// and bumps the tick counter.
func Advance(s State, frame geom.Pose, step float64) State {
	return State{
		Marker: frame.RotateAboutLocalY(s.Marker, step),
		Tick:   s.Tick + 1,
	}
}
