package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW   int // Screen width in characters
	ScreenH   int // Screen height in characters
	TickRate  int // Physics ticks per second (default 60)
	FrameRate int // Render frames per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  60,
		FrameRate: 60,
	}
}

// TickSeconds returns the duration of one physics tick in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is a read-only view of the game the platform polls each frame.
type GameState struct {
	Score    int  // Current score
	Health   int  // Remaining health
	Level    int  // Current level, starting at 1
	GameOver bool // The round has ended and a score can be recorded
	Paused   bool // Play is halted
	InMenu   bool // The main menu is showing
	Exit     bool // The player asked to leave the program
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Collided is set when the ball bounced off anything this tick.
	// Multiple bounces in one tick are coalesced.
	Collided bool
}
