// Package breakout implements the breakout game core: the brick layout,
// the fixed-tick physics, health and blinking, and the two queue-driven
// state machines that move a round between menu, play and game over.
package breakout

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/breaker/internal/config"
	"github.com/vovakirdan/breaker/internal/core"
	"github.com/vovakirdan/breaker/internal/registry"
	"github.com/vovakirdan/breaker/internal/world"
)

// Names of the text display entities.
const (
	textScore  = "score"
	textHealth = "health"
	textLevel  = "level"
)

// Main menu entries, in display order.
var menuItems = []string{"Start Game", "Exit"}

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// defaultLogger is handed to every new game.
var defaultLogger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

// Game implements the breakout game logic.
type Game struct {
	style ControlStyle

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.BreakoutConfig
	difficulty *config.DifficultyManager
	log        *log.Logger

	world *world.World

	// State machines and their request queues
	app       AppState
	game      GameState
	appQueue  []AppTransition
	gameQueue []GameTransition
	ready     bool // Round entities exist
	menuIndex int

	// Round state
	score      int
	health     int
	level      int
	bricksLeft int
	momentum   float32
	ballSpeed  float32
	events     []playerEvent

	tickCount uint64
	collided  bool
}

// New creates a game using the given deflection policy.
func New(style ControlStyle) *Game {
	return &Game{
		style: style,
		log:   defaultLogger,
		world: world.New(),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	switch g.style {
	case ControlMomentum:
		return "breaker_momentum"
	case ControlUnaltered:
		return "breaker_unaltered"
	default:
		return "breaker"
	}
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.style {
	case ControlMomentum:
		return "Breaker (Momentum)"
	case ControlUnaltered:
		return "Breaker (Unaltered)"
	default:
		return "Breaker"
	}
}

// SetLogger replaces this game's logger.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.log = l
	}
}

// Reset loads configuration and returns the game to the main menu with an
// empty world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		g.log.Warn("using default config", "err", err)
		cfg = config.DefaultBreakoutConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBreakoutPreset(&cfg, difficultyPreset)
	}
	g.ResetWithConfig(runtime, cfg)
}

// ResetWithConfig is Reset with an explicit configuration.
func (g *Game) ResetWithConfig(runtime core.RuntimeConfig, cfg config.BreakoutConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.world = world.New()
	g.app = AppMainMenu
	g.game = GameUninitialized
	g.appQueue = nil
	g.gameQueue = nil
	g.ready = false
	g.menuIndex = 0

	g.score = 0
	g.health = cfg.Gameplay.Health
	g.level = cfg.Gameplay.StartLevel
	g.bricksLeft = 0
	g.momentum = 0
	g.events = nil
	g.tickCount = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tickCount++
	g.collided = false

	if in.Has(core.ActionQuit) {
		g.RequestApp(ToExit)
	}
	g.handleMenuInput(in)
	g.transitionApp()

	if g.app == AppInGame {
		g.transitionGame()
		g.manage()
		g.handleAuxKeys(in)

		if g.game == GamePlaying {
			g.physicsStep(in)
			g.handleHealth()
			g.tickBlinks()
			g.updateScoreboard()
		}
	}

	return core.StepResult{State: g.State(), Collided: g.collided}
}

// handleMenuInput drives the main menu and the game over screen.
func (g *Game) handleMenuInput(in core.InputFrame) {
	switch g.app {
	case AppMainMenu:
		if in.Has(core.ActionUp) {
			g.menuIndex = (g.menuIndex + len(menuItems) - 1) % len(menuItems)
		}
		if in.Has(core.ActionDown) {
			g.menuIndex = (g.menuIndex + 1) % len(menuItems)
		}
		if in.Has(core.ActionConfirm) {
			if g.menuIndex == 0 {
				g.RequestApp(ToInGame)
			} else {
				g.RequestApp(ToExit)
			}
		}
	case AppGameOver:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionCancel) {
			g.RequestApp(ToMainMenu)
		}
	}
}

// handleAuxKeys maps pause and resume keys to game requests.
func (g *Game) handleAuxKeys(in core.InputFrame) {
	if in.Has(core.ActionConfirm) {
		g.requestGame(ToPlayGame)
	}
	if in.Has(core.ActionCancel) {
		g.requestGame(ToHaltGame)
	}
}

// setup spawns everything a round needs and resets the round counters.
func (g *Game) setup() {
	g.log.Info("setting up round", "style", g.style, "level", g.cfg.Gameplay.StartLevel)

	g.score = 0
	g.health = g.cfg.Gameplay.Health
	g.level = g.cfg.Gameplay.StartLevel
	g.momentum = 0
	g.events = g.events[:0]
	g.ballSpeed = g.difficulty.BallSpeed(g.cfg.Physics.BallSpeed, g.level)

	g.world.Spawn(world.Entity{
		Kind: world.KindCamera,
		Name: "camera",
		Size: mgl32.Vec2{ArenaWidth + WallThickness, ArenaHeight + WallThickness},
	})

	pc := g.cfg.Paddle
	g.world.Spawn(world.Entity{
		Kind: world.KindPaddle,
		Name: "paddle",
		Pos:  mgl32.Vec3{0, BottomWall + pc.BottomGap, 0},
		Size: mgl32.Vec2{pc.Width, pc.Height},
		Tint: core.ColorBlue,
	})

	bc := g.cfg.Ball
	ball := &world.Entity{
		Kind: world.KindBall,
		Name: "ball",
		Size: mgl32.Vec2{bc.Size, bc.Size},
		Tint: core.ColorBrightRed,
	}
	g.resetBall(ball)
	g.world.Spawn(*ball)

	for _, name := range []string{textScore, textHealth, textLevel} {
		g.world.Spawn(world.Entity{Kind: world.KindText, Name: name, Tint: core.ColorBrightBlue})
	}

	g.spawnWalls()
	g.bricksLeft = g.spawnBricks(g.level)
	g.updateScoreboard()
	g.ready = true
}

// advanceLevel loads the next level's bricks and puts the ball and paddle
// back at their starting positions. Score and health carry over.
func (g *Game) advanceLevel() {
	g.level++
	g.log.Info("advancing level", "level", g.level, "score", g.score)

	for _, brick := range g.world.Query(world.KindBrick) {
		g.removeBrick(brick.Handle)
	}
	g.bricksLeft = g.spawnBricks(g.level)
	g.ballSpeed = g.difficulty.BallSpeed(g.cfg.Physics.BallSpeed, g.level)
	if g.difficulty.IsEnabled() {
		g.log.Debug("ball speed scaled", "level", g.level, "speed", g.ballSpeed)
	}

	g.resetBall(g.single(world.KindBall))
	paddle := g.single(world.KindPaddle)
	paddle.Pos = mgl32.Vec3{0, BottomWall + g.cfg.Paddle.BottomGap, 0}
	g.momentum = 0
}

// resetBall puts the ball at its start position with its initial direction.
func (g *Game) resetBall(ball *world.Entity) {
	bc := g.cfg.Ball
	ball.Pos = mgl32.Vec3{bc.StartX, bc.StartY, 1}
	ball.Velocity = core.Direction(mgl32.Vec2{bc.DirX, bc.DirY})
}

// updateScoreboard refreshes the text displays.
func (g *Game) updateScoreboard() {
	g.setText(textScore, fmt.Sprintf("Score: %d", g.score))
	g.setText(textHealth, fmt.Sprintf("Health: %d", g.health))
	g.setText(textLevel, fmt.Sprintf("Level: %d", g.level))
}

func (g *Game) setText(name, text string) {
	if e, ok := g.world.Named(world.KindText, name); ok {
		e.Text = text
	}
}

// single returns the one entity of a kind that must exist exactly once.
// A violation means the world is corrupt and the tick cannot continue.
func (g *Game) single(kind world.Kind) *world.Entity {
	e, err := g.world.Single(kind)
	if err != nil {
		panic(fmt.Errorf("breakout: %w", err))
	}
	return e
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Health:   g.health,
		Level:    g.level,
		GameOver: g.app == AppGameOver,
		Paused:   g.app == AppInGame && g.game == GamePaused,
		InMenu:   g.app == AppMainMenu,
		Exit:     g.app == AppExit,
	}
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Health returns the remaining health.
func (g *Game) Health() int { return g.health }

// Level returns the current level.
func (g *Game) Level() int { return g.level }

// App returns the outer state.
func (g *Game) App() AppState { return g.app }

// Phase returns the inner state of the round.
func (g *Game) Phase() GameState { return g.game }

// BricksLeft returns the live brick counter.
func (g *Game) BricksLeft() int { return g.bricksLeft }

// World exposes the entity arena for rendering and inspection.
func (g *Game) World() *world.World { return g.world }

// Register one game per control style, aliased by the style's config name.
func init() {
	for _, style := range []ControlStyle{ControlEdges, ControlMomentum, ControlUnaltered} {
		id := New(style).ID()
		registry.Register(id, func() registry.Game { return New(style) })
		registry.Alias(style.String(), id)
	}
}
