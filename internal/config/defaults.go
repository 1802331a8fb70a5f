package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the built-in breakout configuration.
// It matches defaults/breakout.yaml.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Physics: BreakoutPhysics{
			BallSpeed:    300,
			PaddleSpeed:  500,
			MaxMomentum:  7,
			LerpFactor:   0.10,
			MaxInfluence: math.Pi / 2,
		},
		Paddle: BreakoutPaddle{
			Width:     120,
			Height:    20,
			BottomGap: 60,
			Padding:   10,
		},
		Ball: BreakoutBall{
			Size:   30,
			StartX: -150,
			StartY: -50,
			DirX:   0.5,
			DirY:   -0.5,
		},
		Bricks: BreakoutBricks{
			Width:      100,
			Height:     50,
			Margin:     5,
			SideGap:    60,
			CeilingGap: 60,
			Layouts: [][]int{
				{1, 1, 1, 1, 1},
				{2, 1, 1, 1, 2},
				{1, 1, 2, 2, 3},
				{1, 3, 1, 3, 1},
				{3, 3, 1, 3, 3},
			},
			Tints: []string{"bright_blue", "bright_magenta", "bright_green"},
		},
		Gameplay: BreakoutGameplay{
			Health:        3,
			BrickPoints:   10,
			BlinkDuration: 1.0,
			RespawnOnMiss: true,
			StartLevel:    1,
			ControlStyle:  "edges",
		},
		Audio: AudioConfig{
			Enabled:     true,
			MinInterval: 0.1,
			Frequency:   660,
			DurationMs:  40,
			Volume:      0.3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
