package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/breaker/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Control style names accepted in gameplay.control_style.
const (
	ControlEdges     = "edges"
	ControlMomentum  = "momentum"
	ControlUnaltered = "unaltered"
)

// LoadBreakout loads breakout configuration.
// Search order: customPath -> ~/.breaker/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default.
// Files are layered over the built-in defaults, so they may set only the keys they change.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBreakoutConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBreakout(data)
		if err != nil {
			return DefaultBreakoutConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("breakout.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseBreakout(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "breakout.yaml")); err == nil {
		if cfg, err := parseBreakout(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseBreakout(defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseBreakout(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	// Replace rather than merge list-valued keys when a file sets them.
	cfg.Bricks.Layouts = nil
	cfg.Bricks.Tints = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	defaults := DefaultBreakoutConfig()
	if cfg.Bricks.Layouts == nil {
		cfg.Bricks.Layouts = defaults.Bricks.Layouts
	}
	if cfg.Bricks.Tints == nil {
		cfg.Bricks.Tints = defaults.Bricks.Tints
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".breaker", "configs", filename)
}

// Validate checks values the game cannot run with.
func (c BreakoutConfig) Validate() error {
	if c.Physics.BallSpeed <= 0 || c.Physics.PaddleSpeed <= 0 {
		return fmt.Errorf("%w: speeds must be positive", ErrInvalid)
	}
	if c.Physics.MaxMomentum <= 0 {
		return fmt.Errorf("%w: max_momentum must be positive", ErrInvalid)
	}
	if c.Physics.LerpFactor <= 0 || c.Physics.LerpFactor > 1 {
		return fmt.Errorf("%w: lerp_factor must be in (0, 1]", ErrInvalid)
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 || c.Ball.Size <= 0 {
		return fmt.Errorf("%w: paddle and ball sizes must be positive", ErrInvalid)
	}
	if c.Bricks.Width <= 0 || c.Bricks.Height <= 0 {
		return fmt.Errorf("%w: brick size must be positive", ErrInvalid)
	}
	for _, name := range c.Bricks.Tints {
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("%w: unknown tint %q", ErrInvalid, name)
		}
	}
	if len(c.Bricks.Layouts) == 0 {
		return fmt.Errorf("%w: at least one brick layout is required", ErrInvalid)
	}
	for i, layout := range c.Bricks.Layouts {
		if len(layout) == 0 {
			return fmt.Errorf("%w: layout %d has no rows", ErrInvalid, i+1)
		}
		for _, strength := range layout {
			if strength < 1 || strength > len(c.Bricks.Tints) {
				return fmt.Errorf("%w: layout %d has strength %d, want 1..%d", ErrInvalid, i+1, strength, len(c.Bricks.Tints))
			}
		}
	}
	if c.Gameplay.Health < 1 {
		return fmt.Errorf("%w: health must be at least 1", ErrInvalid)
	}
	if c.Gameplay.StartLevel < 1 {
		return fmt.Errorf("%w: start_level must be at least 1", ErrInvalid)
	}
	switch c.Gameplay.ControlStyle {
	case ControlEdges, ControlMomentum, ControlUnaltered:
	default:
		return fmt.Errorf("%w: unknown control_style %q", ErrInvalid, c.Gameplay.ControlStyle)
	}
	return nil
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Health = 5
		cfg.Physics.BallSpeed = 250
		cfg.Physics.PaddleSpeed = 550
	case DifficultyHard:
		cfg.Gameplay.Health = 2
		cfg.Physics.BallSpeed = 360
		cfg.Physics.PaddleSpeed = 450
	}
}
