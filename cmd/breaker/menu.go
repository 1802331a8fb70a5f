package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breaker/internal/platform/tui"
	"github.com/vovakirdan/breaker/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a control style from a menu",
	Long: `Start breaker in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a control style.
Choosing Exit in the game returns you here. Tab opens the scoreboard.

Examples:
  breaker menu
  breaker menu --fps 30
  breaker menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cue, closeAudio := openAudio(loadConfig().Audio)
	defer closeAudio()

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if err := tui.Run(game, store, cfg, tui.WithCue(cue)); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
