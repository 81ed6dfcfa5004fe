package spinview

import "math"

// Clamp01 coerces v into [0, 1]. NaN maps to 0 so that every float, including
// the result of a failed arithmetic conversion, lands inside the range.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SpeedChannel is the shared cell carrying one object's rotation rate from its
// control panel to its animator. Writes are clamped to [SpeedMin, SpeedMax]
// and visible to the next Read with no buffering.
//
// There is no locking: the panel and the animator run on the same goroutine.
type SpeedChannel struct {
	v float64
}

// NewSpeedChannel returns a channel holding the clamped initial value.
func NewSpeedChannel(initial float64) *SpeedChannel {
	return &SpeedChannel{v: Clamp01(initial)}
}

// Read returns the current rate, always in [0, 1].
func (c *SpeedChannel) Read() float64 {
	return c.v
}

// Write stores v, saturating out-of-range input instead of rejecting it.
func (c *SpeedChannel) Write(v float64) {
	c.v = Clamp01(v)
}

// VisibilityState is the shared cell carrying one object's visibility flag from
// its toggle to the projector.
type VisibilityState struct {
	v bool
}

// NewVisibilityState returns a state that starts visible.
func NewVisibilityState() *VisibilityState {
	return &VisibilityState{v: true}
}

// Read reports whether the object is visible.
func (s *VisibilityState) Read() bool {
	return s.v
}

// Write sets the flag.
func (s *VisibilityState) Write(visible bool) {
	s.v = visible
}
