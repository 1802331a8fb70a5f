package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breaker/internal/platform/tui"
	"github.com/vovakirdan/breaker/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [style]",
	Short: "Play breaker",
	Long: `Start playing with the given control style.

Control styles:
  edges      - Paddle momentum bends the ball (default)
  momentum   - Same bend, listed separately on the scoreboard
  unaltered  - Plain reflection, the paddle never steers

Without an argument the style comes from --control, then from
gameplay.control_style in the config file.

Controls:
  Left/Right, A/D  - Move paddle
  Up/Down, W/S     - Menu navigation
  Enter/Space      - Select, resume
  P/Esc            - Pause
  Q                - Quit
  Ctrl+S           - Screenshot to ~/.breaker/screenshots

Difficulty options:
  easy   - 5 health, slower ball
  normal - Default config with level-based speed up
  hard   - 2 health, faster ball and paddle
  fixed  - No speed up between levels

Examples:
  breaker play
  breaker play unaltered
  breaker play --difficulty hard
  breaker play --config ./my-breakout.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameCfg := loadConfig()

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	gameID, err := resolveGameID(name, flagControl, gameCfg.Gameplay.ControlStyle)
	if err != nil {
		return fmt.Errorf("%w\nRun 'breaker list' to see available styles", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cue, closeAudio := openAudio(gameCfg.Audio)
	defer closeAudio()

	if err := tui.Run(game, store, runtimeConfig(), tui.WithCue(cue)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
