package breakout

import (
	"math"

	"github.com/vovakirdan/breaker/internal/world"
)

// Snapshot captures the game state for determinism checks.
// Uses primitive types only for stable serialization; floats are stored as
// their IEEE-754 bits so equal snapshots hash equally.
type Snapshot struct {
	Tick       uint64
	App        int
	Game       int
	Score      int
	Health     int
	Level      int
	BricksLeft int
	Momentum   uint32

	PaddleX uint32
	BallX   uint32
	BallY   uint32
	BallVX  uint32
	BallVY  uint32

	// Live bricks in spawn order, each as 3 values: X bits, Y bits, Strength
	BrickData []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       g.tickCount,
		App:        int(g.app),
		Game:       int(g.game),
		Score:      g.score,
		Health:     g.health,
		Level:      g.level,
		BricksLeft: g.bricksLeft,
		Momentum:   math.Float32bits(g.momentum),
	}

	if paddle, err := g.world.Single(world.KindPaddle); err == nil {
		snap.PaddleX = math.Float32bits(paddle.Pos.X())
	}
	if ball, err := g.world.Single(world.KindBall); err == nil {
		snap.BallX = math.Float32bits(ball.Pos.X())
		snap.BallY = math.Float32bits(ball.Pos.Y())
		snap.BallVX = math.Float32bits(ball.Velocity.X())
		snap.BallVY = math.Float32bits(ball.Velocity.Y())
	}

	bricks := g.world.Query(world.KindBrick)
	snap.BrickData = make([]int, 0, len(bricks)*3)
	for _, b := range bricks {
		snap.BrickData = append(snap.BrickData,
			int(math.Float32bits(b.Pos.X())),
			int(math.Float32bits(b.Pos.Y())),
			b.Strength,
		)
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.App)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Game)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Health)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksLeft) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Momentum)
	h = h*31 + uint64(snap.PaddleX)
	h = h*31 + uint64(snap.BallX)
	h = h*31 + uint64(snap.BallY)
	h = h*31 + uint64(snap.BallVX)
	h = h*31 + uint64(snap.BallVY)

	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
