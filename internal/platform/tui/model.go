package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/breaker/internal/audio"
	"github.com/vovakirdan/breaker/internal/core"
	"github.com/vovakirdan/breaker/internal/registry"
	"github.com/vovakirdan/breaker/internal/storage"
)

// maxStepsPerFrame bounds catch-up ticks after a slow frame.
const maxStepsPerFrame = 5

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       KeyMap
	palette    *Palette
	input      *inputState
	stepper    *core.Stepper
	cue        *audio.Cue
	gameState  core.GameState
	lastFrame  time.Time
	embedded   bool // Exit hands control back to a parent model
	exited     bool // The game asked to exit
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// Option configures a Model.
type Option func(*Model)

// WithCue plays collision sounds through the given cue.
func WithCue(c *audio.Cue) Option {
	return func(m *Model) { m.cue = c }
}

// WithPalette renders through the given palette.
func WithPalette(p *Palette) Option {
	return func(m *Model) { m.palette = p }
}

// Embedded makes the model report Exited instead of quitting the program.
func Embedded() Option {
	return func(m *Model) { m.embedded = true }
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	m := Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   store,
		config:  cfg,
		keys:    DefaultKeyMap(),
		input:   newInputState(),
		stepper: core.NewStepper(cfg.TickRate, maxStepsPerFrame),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.palette == nil {
		m.palette = NewPalette(nil)
	}
	return m
}

// Init resets the game and starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return frameCmd(m.config.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The arena is in world units, so a resize only changes the scale.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	// Q goes through the game so it can raise its own exit request.
	m.input.press(m.keys.Action(msg))
	return m, nil
}

// handleFrame runs as many fixed ticks as the elapsed time allows.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	dt := 0.0
	if !m.lastFrame.IsZero() {
		dt = now.Sub(m.lastFrame).Seconds()
	}
	m.lastFrame = now

	steps := m.stepper.Advance(dt)
	for range steps {
		result := m.game.Step(m.input.frame())
		m.input.consumeEdges()
		m.cue.Update(m.stepper.Fixed(), result.Collided)
		m.observe(result.State)
		if m.exited {
			break
		}
	}
	m.input.decay(dt)

	if m.exited {
		m.input.release()
		if m.embedded {
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, frameCmd(m.config.FrameRate)
}

// observe records the state after a tick and saves the score once per round.
func (m *Model) observe(state core.GameState) {
	m.gameState = state

	if !state.GameOver {
		m.scoreSaved = false
	} else if !m.scoreSaved {
		if m.store != nil && state.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), state.Score, state.Level)
		}
		m.scoreSaved = true
	}

	if state.Exit {
		m.exited = true
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".breaker", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.palette.Render(m.screen)
}

// State returns the game state seen after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Exited reports whether the game asked to exit.
func (m Model) Exited() bool {
	return m.exited
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
