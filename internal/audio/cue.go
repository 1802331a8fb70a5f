// Package audio plays the collision blip. Cue decides when a blip may play;
// Speaker synthesizes it through gopxl/beep.
package audio

// Sink plays one collision blip. It must not block.
type Sink interface {
	Blip()
}

// Cue rate-limits collision sounds so a burst of bounces plays once.
type Cue struct {
	sink        Sink
	minInterval float64
	elapsed     float64 // Seconds since the last blip
}

// NewCue creates a cue that plays at most once per minInterval seconds.
// A nil sink makes every Update a no-op.
func NewCue(sink Sink, minInterval float64) *Cue {
	return &Cue{
		sink:        sink,
		minInterval: minInterval,
		elapsed:     minInterval, // First collision plays immediately
	}
}

// Update advances the cue by dt seconds and plays a blip if a collision
// happened and the interval has passed. It reports whether a blip played.
func (c *Cue) Update(dt float64, collided bool) bool {
	if c == nil || c.sink == nil {
		return false
	}

	c.elapsed += dt
	if !collided || c.elapsed < c.minInterval {
		return false
	}
	c.elapsed = 0
	c.sink.Blip()
	return true
}
