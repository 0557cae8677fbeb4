package loop

// Accumulator converts variable frame times into whole fixed physics steps.
type Accumulator struct {
	step     float32
	maxSteps int
	pending  float32
}

// NewAccumulator returns an accumulator yielding steps of size step, at most
// maxSteps per Advance. maxSteps <= 0 means unbounded.
func NewAccumulator(step float32, maxSteps int) *Accumulator {
	return &Accumulator{step: step, maxSteps: maxSteps}
}

// Step returns the fixed step size.
func (a *Accumulator) Step() float32 {
	return a.step
}

// Advance adds elapsed seconds and returns how many steps to run now.
// Time beyond maxSteps is dropped rather than carried into later frames.
func (a *Accumulator) Advance(elapsed float32) int {
	if elapsed > 0 {
		a.pending += elapsed
	}
	n := int(a.pending / a.step)
	if a.maxSteps > 0 && n > a.maxSteps {
		n = a.maxSteps
		a.pending = 0
		return n
	}
	a.pending -= float32(n) * a.step
	return n
}

// Pending returns accumulated time not yet consumed by a step.
func (a *Accumulator) Pending() float32 {
	return a.pending
}
