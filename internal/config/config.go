// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

// BreakoutConfig contains all tunables for the breakout game.
// Lengths are world units, times are seconds, angles are radians.
type BreakoutConfig struct {
	Physics    BreakoutPhysics  `yaml:"physics"`
	Paddle     BreakoutPaddle   `yaml:"paddle"`
	Ball       BreakoutBall     `yaml:"ball"`
	Bricks     BreakoutBricks   `yaml:"bricks"`
	Gameplay   BreakoutGameplay `yaml:"gameplay"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BreakoutPhysics defines motion constants.
type BreakoutPhysics struct {
	BallSpeed    float32 `yaml:"ball_speed"`    // Units per second
	PaddleSpeed  float32 `yaml:"paddle_speed"`  // Units per second at full momentum target
	MaxMomentum  float32 `yaml:"max_momentum"`  // Clamp for paddle momentum (units per tick)
	LerpFactor   float32 `yaml:"lerp_factor"`   // Momentum smoothing per tick, (0,1]
	MaxInfluence float64 `yaml:"max_influence"` // Deflection added at full momentum
}

// BreakoutPaddle defines paddle geometry.
type BreakoutPaddle struct {
	Width     float32 `yaml:"width"`
	Height    float32 `yaml:"height"`
	BottomGap float32 `yaml:"bottom_gap"` // Distance above the bottom wall
	Padding   float32 `yaml:"padding"`    // Gap kept between paddle and side walls
}

// BreakoutBall defines the ball's size and spawn state.
type BreakoutBall struct {
	Size   float32 `yaml:"size"`
	StartX float32 `yaml:"start_x"`
	StartY float32 `yaml:"start_y"`
	DirX   float32 `yaml:"dir_x"` // Initial direction; normalized on use
	DirY   float32 `yaml:"dir_y"`
}

// BreakoutBricks defines the brick grid.
type BreakoutBricks struct {
	Width      float32 `yaml:"width"`
	Height     float32 `yaml:"height"`
	Margin     float32 `yaml:"margin"`      // Gap between neighbouring bricks
	SideGap    float32 `yaml:"side_gap"`    // Gap between grid and side walls
	CeilingGap float32 `yaml:"ceiling_gap"` // Gap between grid and top wall

	// Layouts lists per-row strengths; level N uses layout (N-1) mod len.
	Layouts [][]int `yaml:"layouts"`

	// Tints are color names indexed by strength-1.
	Tints []string `yaml:"tints"`
}

// BreakoutGameplay defines scoring, health and round rules.
type BreakoutGameplay struct {
	Health        int     `yaml:"health"`
	BrickPoints   int     `yaml:"brick_points"`
	BlinkDuration float64 `yaml:"blink_duration"`
	RespawnOnMiss bool    `yaml:"respawn_on_miss"` // Reset the ball after losing health
	StartLevel    int     `yaml:"start_level"`
	ControlStyle  string  `yaml:"control_style"` // "edges", "momentum" or "unaltered"
}

// AudioConfig defines the collision cue.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	MinInterval float64 `yaml:"min_interval"` // Shortest gap between two cues
	Frequency   float64 `yaml:"frequency"`    // Hz
	DurationMs  int     `yaml:"duration_ms"`
	Volume      float64 `yaml:"volume"` // Linear gain, 0 mutes
}

// DifficultyConfig defines how the ball speeds up as levels advance.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Extra ball speed fraction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
