package world

import "math"

// blinkCycles is how many hide/show cycles fit in one blink window.
const blinkCycles = 5

// Blink is a running blink window. While attached to an entity the entity
// flickers, and for the paddle it doubles as damage immunity.
type Blink struct {
	Duration float64
	Elapsed  float64
}

// NewBlink starts a blink window lasting duration seconds.
func NewBlink(duration float64) *Blink {
	return &Blink{Duration: duration}
}

// Tick advances the window by dt seconds. It returns whether the entity
// should be drawn this tick and whether the window has finished. A finished
// window always reports visible.
func (b *Blink) Tick(dt float64) (visible, done bool) {
	b.Elapsed += dt
	if b.Duration <= 0 || b.Elapsed >= b.Duration {
		b.Elapsed = b.Duration
		return true, true
	}

	remaining := 1 - b.Elapsed/b.Duration
	r := math.Mod(remaining, 1.0/blinkCycles) * 100 * blinkCycles
	return r <= 50, false
}
