package config

// DifficultyManager derives the effective ball speed from the current level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty grows with the level.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for a game level starting at 1.
func (d *DifficultyManager) Level(gameLevel int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type != "level" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 1 {
		maxAt = 2 // Prevent division by zero
	}
	progress := clampF(float64(gameLevel-1)/(maxAt-1), 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// BallSpeed scales the base speed by the difficulty of the given level.
// With scaling disabled it returns baseSpeed unchanged.
func (d *DifficultyManager) BallSpeed(baseSpeed float32, gameLevel int) float32 {
	level := d.Level(gameLevel)
	return baseSpeed * float32(1.0+level*d.cfg.Scaling.SpeedMultiplier)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
