package main

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/breaker/internal/audio"
	"github.com/vovakirdan/breaker/internal/config"
	"github.com/vovakirdan/breaker/internal/core"
	"github.com/vovakirdan/breaker/internal/registry"
	"github.com/vovakirdan/breaker/internal/storage"
)

// newLogger builds the process logger. The TUI owns the terminal, so
// without a log file everything is discarded.
func newLogger(path, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = io.Discard
	if path != "" {
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w = f
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "breaker",
	}), nil
}

func validPreset(s string) bool {
	return config.ParsePreset(s) != ""
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagTickRate
	cfg.FrameRate = flagFPS
	return cfg
}

// resolveGameID maps a style name or registry ID to a registry ID.
// An empty name falls back to --control, then to gameplay.control_style.
func resolveGameID(name, control, configStyle string) (string, error) {
	name = cmp.Or(strings.TrimSpace(name), strings.TrimSpace(control), configStyle, config.ControlEdges)
	return registry.Resolve(name)
}

// loadConfig reads the game config the same way the game does, so the CLI
// sees the same control style and audio settings.
func loadConfig() config.BreakoutConfig {
	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return config.DefaultBreakoutConfig()
	}
	return cfg
}

// openStore opens the scores database. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// openAudio starts the speaker when audio is enabled. The returned close
// function is always safe to call.
func openAudio(cfg config.AudioConfig) (*audio.Cue, func()) {
	if !cfg.Enabled {
		return nil, func() {}
	}
	spk, err := audio.NewSpeaker(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio disabled: %v\n", err)
		return nil, func() {}
	}
	return audio.NewCue(spk, cfg.MinInterval), spk.Close
}
