package breakout

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/breaker/internal/config"
	"github.com/vovakirdan/breaker/internal/core"
	"github.com/vovakirdan/breaker/internal/registry"
	"github.com/vovakirdan/breaker/internal/world"
)

func newTestGame(style ControlStyle) *Game {
	g := New(style)
	g.ResetWithConfig(core.DefaultConfig(), config.DefaultBreakoutConfig())
	return g
}

// playingGame returns a game with a round set up and running, without
// going through the menu.
func playingGame(style ControlStyle) *Game {
	g := newTestGame(style)
	g.app = AppInGame
	g.setup()
	g.game = GamePlaying
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// startRound drives a fresh game from the main menu into play.
func startRound(t *testing.T, g *Game) {
	t.Helper()
	g.Step(input(core.ActionConfirm)) // menu -> InGame, setup
	g.Step(input())                   // ToPlayGame applied
	if g.App() != AppInGame || g.Phase() != GamePlaying {
		t.Fatalf("after start: app=%v game=%v, expected InGame/Playing", g.App(), g.Phase())
	}
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		switch {
		case i == 0:
			inputs[i] = input(core.ActionConfirm)
		case i%40 < 25:
			inputs[i] = input(core.ActionRight)
		default:
			inputs[i] = input(core.ActionLeft)
		}
	}

	run := func() Snapshot {
		g := newTestGame(ControlMomentum)
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
	if snap1.BallX != snap2.BallX || snap1.BallY != snap2.BallY {
		t.Errorf("Determinism failed: ball positions differ")
	}
	if snap1.Tick != 600 {
		t.Errorf("Tick = %d, expected 600", snap1.Tick)
	}
}

func TestGameStartsInMenu(t *testing.T) {
	g := newTestGame(ControlEdges)

	state := g.State()
	if !state.InMenu || state.GameOver || state.Paused {
		t.Errorf("initial State() = %+v, expected main menu", state)
	}
	if g.Phase() != GameUninitialized {
		t.Errorf("Phase() = %v, expected Uninitialized", g.Phase())
	}
	if g.World().Len() != 0 {
		t.Errorf("World().Len() = %d, expected empty world before play", g.World().Len())
	}
}

func TestSetupSpawnsRound(t *testing.T) {
	g := newTestGame(ControlEdges)
	startRound(t, g)

	w := g.World()
	counts := []struct {
		kind     world.Kind
		expected int
	}{
		{world.KindBall, 1},
		{world.KindPaddle, 1},
		{world.KindCamera, 1},
		{world.KindWall, 4},
		{world.KindBottomWall, 1},
		{world.KindText, 3},
		{world.KindBrick, 35},
	}
	for _, c := range counts {
		if got := w.Count(c.kind); got != c.expected {
			t.Errorf("Count(%v) = %d, expected %d", c.kind, got, c.expected)
		}
	}

	if g.BricksLeft() != 35 {
		t.Errorf("BricksLeft() = %d, expected 35", g.BricksLeft())
	}
	if g.Health() != 3 || g.Score() != 0 || g.Level() != 1 {
		t.Errorf("round counters = %d/%d/%d, expected health 3, score 0, level 1", g.Health(), g.Score(), g.Level())
	}
}

func TestBrickLayout(t *testing.T) {
	g := playingGame(ControlEdges)
	bricks := g.World().Query(world.KindBrick)

	first := bricks[0]
	if !approx(first.Pos.X(), -315) || !approx(first.Pos.Y(), 265) {
		t.Errorf("first brick at (%v, %v), expected (-315, 265)", first.Pos.X(), first.Pos.Y())
	}
	last := bricks[len(bricks)-1]
	if !approx(last.Pos.X(), 315) || !approx(last.Pos.Y(), 45) {
		t.Errorf("last brick at (%v, %v), expected (315, 45)", last.Pos.X(), last.Pos.Y())
	}

	for i, a := range bricks {
		if a.Strength != 1 || a.Tint != core.ColorBrightBlue {
			t.Errorf("brick %d: strength %d tint %v, expected 1 and bright blue", i, a.Strength, a.Tint)
		}
		for _, b := range bricks[i+1:] {
			if _, ok := core.TestOverlap(a.Center(), a.Size, b.Center(), b.Size); ok {
				t.Fatalf("bricks %d and %d overlap", a.Handle, b.Handle)
			}
		}
	}
}

func TestLayoutWraps(t *testing.T) {
	g := newTestGame(ControlEdges)
	layouts := g.cfg.Bricks.Layouts

	tests := []struct {
		level    int
		expected int
	}{
		{1, 0},
		{5, 4},
		{6, 0},
		{7, 1},
		{0, 4},
	}
	for _, tt := range tests {
		got := g.layoutFor(tt.level)
		if &got[0] != &layouts[tt.expected][0] {
			t.Errorf("layoutFor(%d) = %v, expected layout %d %v", tt.level, got, tt.expected, layouts[tt.expected])
		}
	}
}

func TestBrickHitRemovesAndScores(t *testing.T) {
	g := playingGame(ControlEdges)
	ball := g.single(world.KindBall)

	// Just above the top-left brick, moving down.
	ball.Pos = mgl32.Vec3{-315, 300, 1}
	ball.Velocity = mgl32.Vec2{0, -1}
	g.checkBricks(ball)

	if g.Score() != 10 {
		t.Errorf("Score() = %d, expected 10", g.Score())
	}
	if g.BricksLeft() != 34 {
		t.Errorf("BricksLeft() = %d, expected 34", g.BricksLeft())
	}
	if n := g.World().Count(world.KindBrick); n != g.BricksLeft() {
		t.Errorf("live bricks %d != counter %d", n, g.BricksLeft())
	}
	if ball.Velocity != (mgl32.Vec2{0, 1}) {
		t.Errorf("ball velocity = %v, expected (0, 1)", ball.Velocity)
	}
	if !g.collided {
		t.Error("brick hit should raise the collision flag")
	}
}

func TestBrickHitWeakens(t *testing.T) {
	g := playingGame(ControlEdges)
	brick := g.World().Query(world.KindBrick)[0]
	brick.Strength = 3
	brick.Tint = g.tintFor(3)
	handle := brick.Handle
	ball := g.single(world.KindBall)

	hit := func() {
		ball.Pos = mgl32.Vec3{-315, 300, 1}
		ball.Velocity = mgl32.Vec2{0, -1}
		g.checkBricks(ball)
	}

	hit()
	if brick.Strength != 2 {
		t.Errorf("Strength = %d, expected 2", brick.Strength)
	}
	if brick.Tint != core.ColorBrightMagenta {
		t.Errorf("Tint = %v, expected bright magenta", brick.Tint)
	}
	if g.BricksLeft() != 35 {
		t.Errorf("BricksLeft() = %d, expected 35", g.BricksLeft())
	}

	hit()
	if brick.Strength != 1 || brick.Tint != core.ColorBrightBlue {
		t.Errorf("after two hits: strength %d tint %v, expected 1 and bright blue", brick.Strength, brick.Tint)
	}

	hit()
	if _, ok := g.World().Get(handle); ok {
		t.Error("brick should be gone after the third hit")
	}
	if g.BricksLeft() != 34 {
		t.Errorf("BricksLeft() = %d, expected 34", g.BricksLeft())
	}
	if g.Score() != 30 {
		t.Errorf("Score() = %d, expected 30", g.Score())
	}
}

func TestBottomWallLosesHealth(t *testing.T) {
	g := playingGame(ControlEdges)
	ball := g.single(world.KindBall)
	ball.Pos = mgl32.Vec3{0, -290, 1}
	ball.Velocity = mgl32.Vec2{0, -1}

	g.physicsStep(input())

	if len(g.events) != 1 || g.events[0] != eventLostHealth {
		t.Fatalf("events = %v, expected one lost-health event", g.events)
	}
	if g.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", g.Score())
	}
	if ball.Velocity != (mgl32.Vec2{0, -1}) {
		t.Errorf("bottom wall should not reflect, velocity = %v", ball.Velocity)
	}

	g.handleHealth()
	if g.Health() != 2 {
		t.Errorf("Health() = %d, expected 2", g.Health())
	}
	paddle := g.single(world.KindPaddle)
	if paddle.Blink == nil || ball.Blink == nil {
		t.Error("paddle and ball should blink after losing health")
	}
	if !approx(ball.Pos.X(), -150) || !approx(ball.Pos.Y(), -50) {
		t.Errorf("ball at (%v, %v), expected respawn at (-150, -50)", ball.Pos.X(), ball.Pos.Y())
	}
	if e, _ := g.World().Named(world.KindText, textHealth); e.Text != "Health: 2" {
		t.Errorf("health text = %q, expected %q", e.Text, "Health: 2")
	}

	// A second loss inside the blink window is dropped.
	ball.Pos = mgl32.Vec3{0, -290, 1}
	ball.Velocity = mgl32.Vec2{0, -1}
	g.physicsStep(input())
	g.handleHealth()
	if g.Health() != 2 {
		t.Errorf("Health() during blink = %d, expected 2", g.Health())
	}
}

func TestBlinkEnds(t *testing.T) {
	g := playingGame(ControlEdges)
	g.events = append(g.events, eventLostHealth)
	g.handleHealth()

	paddle := g.single(world.KindPaddle)
	sawHidden := false
	for range 61 {
		g.tickBlinks()
		if !paddle.Visible {
			sawHidden = true
		}
	}

	if !sawHidden {
		t.Error("paddle never hid while blinking")
	}
	if paddle.Blink != nil || !paddle.Visible {
		t.Errorf("after blink: Blink=%v Visible=%v, expected nil and visible", paddle.Blink, paddle.Visible)
	}
}

func TestLostHealthAtZeroLeavesPlay(t *testing.T) {
	g := playingGame(ControlEdges)
	g.health = 0
	g.events = append(g.events, eventLostHealth)

	g.handleHealth()

	if g.Health() != 0 {
		t.Errorf("Health() = %d, expected 0", g.Health())
	}
	if len(g.appQueue) != 1 || g.appQueue[0] != ToMainMenu {
		t.Errorf("appQueue = %v, expected [ToMainMenu]", g.appQueue)
	}
}

func TestNextLevelRequestedOnce(t *testing.T) {
	g := playingGame(ControlEdges)
	g.score = 120

	for _, brick := range g.World().Query(world.KindBrick) {
		g.removeBrick(brick.Handle)
	}
	if g.BricksLeft() != 0 {
		t.Fatalf("BricksLeft() = %d, expected 0", g.BricksLeft())
	}

	g.manage()
	g.manage()

	count := 0
	for _, req := range g.gameQueue {
		if req == NextLevel {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("NextLevel queued %d times, expected 1", count)
	}

	ball := g.single(world.KindBall)
	ball.Pos = mgl32.Vec3{200, 100, 1}
	g.momentum = 5

	g.transitionGame()

	if g.Level() != 2 {
		t.Errorf("Level() = %d, expected 2", g.Level())
	}
	if g.BricksLeft() != 35 || g.World().Count(world.KindBrick) != 35 {
		t.Errorf("BricksLeft() = %d, live = %d, expected 35", g.BricksLeft(), g.World().Count(world.KindBrick))
	}
	if first := g.World().Query(world.KindBrick)[0]; first.Strength != 2 {
		t.Errorf("level 2 first row strength = %d, expected 2", first.Strength)
	}
	if g.Score() != 120 || g.Health() != 3 {
		t.Errorf("score/health = %d/%d, expected 120/3 carried over", g.Score(), g.Health())
	}
	if !approx(ball.Pos.X(), -150) || g.momentum != 0 {
		t.Errorf("ball x = %v momentum = %v, expected reset", ball.Pos.X(), g.momentum)
	}
}

func TestPaddleStaysInBounds(t *testing.T) {
	g := playingGame(ControlEdges)
	paddle := g.single(world.KindPaddle)
	dt := float32(g.runtime.TickSeconds())

	for range 600 {
		g.updateMomentum(1, dt)
		g.movePaddle(paddle)
		if g.momentum > g.cfg.Physics.MaxMomentum {
			t.Fatalf("momentum %v exceeds max", g.momentum)
		}
	}
	if paddle.Pos.X() != 375 {
		t.Errorf("paddle x = %v, expected right bound 375", paddle.Pos.X())
	}

	for range 600 {
		g.updateMomentum(-1, dt)
		g.movePaddle(paddle)
	}
	if paddle.Pos.X() != -375 {
		t.Errorf("paddle x = %v, expected left bound -375", paddle.Pos.X())
	}
}

func TestPaddleDeflection(t *testing.T) {
	tests := []struct {
		name     string
		style    ControlStyle
		momentum float32
		velocity mgl32.Vec2
		check    func(v mgl32.Vec2) bool
	}{
		{
			name:     "unaltered reflects only",
			style:    ControlUnaltered,
			momentum: 5,
			velocity: mgl32.Vec2{0.6, -0.8},
			check:    func(v mgl32.Vec2) bool { return v == mgl32.Vec2{0.6, 0.8} },
		},
		{
			name:     "no momentum keeps angle",
			style:    ControlEdges,
			momentum: 0,
			velocity: mgl32.Vec2{0.6, -0.8},
			check:    func(v mgl32.Vec2) bool { return approx(v.X(), 0.6) && approx(v.Y(), 0.8) },
		},
		{
			name:     "momentum bends right",
			style:    ControlMomentum,
			momentum: 3.5,
			velocity: mgl32.Vec2{0.6, -0.8},
			check:    func(v mgl32.Vec2) bool { return v.X() > 0.6 && v.Y() > 0 },
		},
		{
			name:     "full momentum still climbs",
			style:    ControlEdges,
			momentum: 7,
			velocity: mgl32.Vec2{1.6, -1.2},
			// Angle clamps to horizontal; y keeps cos of the reflected angle.
			check: func(v mgl32.Vec2) bool {
				return approx(v.X(), 2/float32(math.Sqrt(1.36))) && approx(v.Y(), 1.2/float32(math.Sqrt(1.36)))
			},
		},
		{
			name:     "full momentum against the bounce",
			style:    ControlMomentum,
			momentum: -7,
			velocity: mgl32.Vec2{0.6, -0.8},
			check:    func(v mgl32.Vec2) bool { return v.X() < 0 && v.Y() > 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := playingGame(tt.style)
			g.momentum = tt.momentum
			paddle := g.single(world.KindPaddle)
			ball := g.single(world.KindBall)
			ball.Pos = mgl32.Vec3{0, -220, 1}
			ball.Velocity = tt.velocity

			g.checkPaddle(ball, paddle)

			if !approx(ball.Velocity.Len(), tt.velocity.Len()) {
				t.Errorf("|v| = %v, expected %v", ball.Velocity.Len(), tt.velocity.Len())
			}
			if !tt.check(ball.Velocity) {
				t.Errorf("velocity = %v, unexpected for %s", ball.Velocity, tt.name)
			}
		})
	}
}

func TestFullMomentumBounceLeavesPaddle(t *testing.T) {
	g := playingGame(ControlEdges)
	g.momentum = g.cfg.Physics.MaxMomentum
	paddle := g.single(world.KindPaddle)
	ball := g.single(world.KindBall)
	ball.Pos = mgl32.Vec3{0, -220, 1}
	ball.Velocity = mgl32.Vec2{0.6, -0.8}

	g.checkPaddle(ball, paddle)
	if ball.Velocity.Y() <= 0.1 {
		t.Fatalf("velocity = %v after the bounce, expected a clear upward component", ball.Velocity)
	}

	highest := ball.Pos.Y()
	for range 120 {
		g.Step(input())
		highest = max(highest, g.single(world.KindBall).Pos.Y())
	}
	if highest < -150 {
		t.Errorf("ball peaked at y=%v over two seconds, expected it to climb away from the paddle", highest)
	}
}

func TestWallReflection(t *testing.T) {
	g := playingGame(ControlEdges)
	ball := g.single(world.KindBall)

	ball.Pos = mgl32.Vec3{-435, 0, 1}
	ball.Velocity = mgl32.Vec2{-1, 0}
	g.checkWalls(ball)

	if ball.Velocity != (mgl32.Vec2{1, 0}) {
		t.Errorf("velocity = %v, expected (1, 0)", ball.Velocity)
	}
	if !g.collided {
		t.Error("wall bounce should raise the collision flag")
	}

	// Already moving away: no second flip.
	g.checkWalls(ball)
	if ball.Velocity != (mgl32.Vec2{1, 0}) {
		t.Errorf("velocity after second check = %v, expected (1, 0)", ball.Velocity)
	}
}

func TestPauseFreezesRound(t *testing.T) {
	g := newTestGame(ControlEdges)
	startRound(t, g)

	g.Step(input(core.ActionCancel))
	g.Step(input())
	if !g.State().Paused {
		t.Fatalf("State().Paused = false, expected true")
	}

	before := g.Snapshot()
	for range 10 {
		g.Step(input(core.ActionRight))
	}
	after := g.Snapshot()
	if before.BallX != after.BallX || before.BallY != after.BallY || before.PaddleX != after.PaddleX {
		t.Error("world moved while paused")
	}

	g.Step(input(core.ActionConfirm))
	g.Step(input())
	if g.Phase() != GamePlaying {
		t.Errorf("Phase() = %v, expected Playing after resume", g.Phase())
	}
}

func TestGameOverFlow(t *testing.T) {
	g := newTestGame(ControlEdges)
	startRound(t, g)
	g.score = 50
	g.health = 0

	g.Step(input()) // manage requests ToGameOver
	g.Step(input()) // game handler raises the app request
	g.Step(input()) // app handler enters GameOver

	state := g.State()
	if !state.GameOver {
		t.Fatalf("State().GameOver = false, app=%v game=%v", g.App(), g.Phase())
	}
	if state.Score != 50 {
		t.Errorf("State().Score = %d, expected 50", state.Score)
	}

	g.Step(input(core.ActionConfirm))
	if !g.State().InMenu {
		t.Fatalf("expected main menu after game over, app=%v", g.App())
	}

	// Starting again begins a fresh round.
	g.Step(input(core.ActionConfirm))
	if g.Score() != 0 || g.Health() != 3 || g.Level() != 1 {
		t.Errorf("new round counters = %d/%d/%d, expected 0/3/1", g.Score(), g.Health(), g.Level())
	}
	if n := g.World().Count(world.KindBall); n != 1 {
		t.Errorf("balls = %d, expected 1", n)
	}
}

func TestMenuExit(t *testing.T) {
	g := newTestGame(ControlEdges)

	g.Step(input(core.ActionDown))
	g.Step(input(core.ActionConfirm))
	if !g.State().Exit {
		t.Errorf("State().Exit = false after choosing Exit, app=%v", g.App())
	}

	g = newTestGame(ControlEdges)
	g.Step(input(core.ActionQuit))
	if !g.State().Exit {
		t.Error("Quit should exit")
	}
}

func TestCardinalityViolationPanics(t *testing.T) {
	g := playingGame(ControlEdges)
	g.World().Spawn(world.Entity{Kind: world.KindBall, Size: mgl32.Vec2{30, 30}})

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, world.ErrCardinality) {
			t.Errorf("recover() = %v, expected ErrCardinality", r)
		}
	}()
	g.physicsStep(input())
}

func TestDifficultySpeedsBall(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Difficulty.Enabled = true

	g := New(ControlEdges)
	g.ResetWithConfig(core.DefaultConfig(), cfg)
	g.app = AppInGame
	g.setup()

	if g.ballSpeed != 300 {
		t.Errorf("level 1 speed = %v, expected 300", g.ballSpeed)
	}
	g.level = 9
	g.advanceLevel()
	if g.ballSpeed != 450 {
		t.Errorf("level 10 speed = %v, expected 450", g.ballSpeed)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(ControlEdges)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Start Game") {
		t.Error("menu should list Start Game")
	}

	startRound(t, g)
	g.Render(screen)
	hud := screen.Row(0)
	for _, want := range []string{"Score: 0", "Health: 3", "Level: 1"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
	if !strings.ContainsRune(screen.String(), BallChar) {
		t.Error("ball not drawn")
	}

	small := core.NewScreen(20, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Error("expected too-small message")
	}
}

func TestRegistry(t *testing.T) {
	for _, id := range []string{"breaker", "breaker_momentum", "breaker_unaltered"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestRegistryAliases(t *testing.T) {
	for _, style := range []ControlStyle{ControlEdges, ControlMomentum, ControlUnaltered} {
		id, err := registry.Resolve(style.String())
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", style.String(), err)
		}
		if expected := New(style).ID(); id != expected {
			t.Errorf("Resolve(%q) = %q, expected %q", style.String(), id, expected)
		}
	}
}
