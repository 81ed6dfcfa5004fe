package spinview

// SpinAnimator is the per-frame update bound to one node. Each Tick adds the
// current value of its SpeedChannel to both of the node's rotation angles.
//
// Visibility is not consulted: a hidden node keeps spinning, so showing it
// again resumes at the phase it would have had anyway.
type SpinAnimator struct {
	target *Node
	speed  *SpeedChannel

	ticks   uint64
	skipped uint64

	// onMissing is called when a tick finds no usable target. The scene wires
	// it to its debug logger.
	onMissing func(a *SpinAnimator)
}

// NewSpinAnimator binds an animator to target and speed.
func NewSpinAnimator(target *Node, speed *SpeedChannel) *SpinAnimator {
	return &SpinAnimator{target: target, speed: speed}
}

// Tick advances the target by one frame. A nil or disposed target, or a nil
// channel, makes the tick a no-op; the skip is counted so tests can assert it
// never happens in a correctly composed scene.
func (a *SpinAnimator) Tick() {
	if a.target == nil || a.target.IsDisposed() || a.speed == nil {
		a.skipped++
		if a.onMissing != nil {
			a.onMissing(a)
		}
		return
	}
	a.target.rotateBy(a.speed.Read())
	a.ticks++
}

// Target returns the animated node.
func (a *SpinAnimator) Target() *Node {
	return a.target
}

// Ticks returns how many ticks advanced the target.
func (a *SpinAnimator) Ticks() uint64 {
	return a.ticks
}

// Skipped returns how many ticks found no usable target.
func (a *SpinAnimator) Skipped() uint64 {
	return a.skipped
}
