package core

import "math"

// maxFrameDelta caps a single frame's contribution so a stalled terminal
// does not cause a burst of catch-up ticks.
const maxFrameDelta = 0.25

// Stepper turns variable frame deltas into a whole number of fixed ticks.
// Unconsumed time carries over to the next frame.
type Stepper struct {
	fixed    float64
	maxSteps int
	acc      float64
}

// NewStepper creates a stepper running tickRate ticks per second, issuing at
// most maxSteps ticks per frame.
func NewStepper(tickRate, maxSteps int) *Stepper {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxSteps <= 0 {
		maxSteps = 1
	}
	return &Stepper{
		fixed:    1.0 / float64(tickRate),
		maxSteps: maxSteps,
	}
}

// Advance adds dt seconds of wall time and returns how many fixed ticks to run.
// When the step limit is hit the backlog is dropped, keeping only the
// fractional remainder.
func (s *Stepper) Advance(dt float64) int {
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}

	s.acc += dt
	steps := 0
	for s.acc >= s.fixed && steps < s.maxSteps {
		s.acc -= s.fixed
		steps++
	}
	if steps >= s.maxSteps {
		s.acc = math.Mod(s.acc, s.fixed)
	}
	return steps
}

// Reset discards any accumulated time.
func (s *Stepper) Reset() {
	s.acc = 0
}

// Fixed returns the tick duration in seconds.
func (s *Stepper) Fixed() float64 {
	return s.fixed
}
