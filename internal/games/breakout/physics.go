package breakout

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/breaker/internal/config"
	"github.com/vovakirdan/breaker/internal/core"
	"github.com/vovakirdan/breaker/internal/world"
)

// ControlStyle selects how the paddle bends the ball on a face hit.
type ControlStyle int

const (
	// ControlEdges and ControlMomentum currently share the momentum formula.
	ControlEdges ControlStyle = iota
	ControlMomentum
	ControlUnaltered // Plain reflection
)

func (c ControlStyle) String() string {
	switch c {
	case ControlEdges:
		return config.ControlEdges
	case ControlMomentum:
		return config.ControlMomentum
	case ControlUnaltered:
		return config.ControlUnaltered
	default:
		return "unknown"
	}
}

// paddleBounds returns the range the paddle centre may occupy.
func (g *Game) paddleBounds() (float32, float32) {
	inset := WallThickness/2 + g.cfg.Paddle.Width/2 + g.cfg.Paddle.Padding
	return LeftWall + inset, RightWall - inset
}

// physicsStep runs one fixed tick: momentum, paddle, ball, then the
// collision passes in their fixed order.
func (g *Game) physicsStep(in core.InputFrame) {
	dt := float32(g.runtime.TickSeconds())
	paddle := g.single(world.KindPaddle)
	ball := g.single(world.KindBall)

	g.updateMomentum(in.Horizontal(), dt)
	g.movePaddle(paddle)
	g.moveBall(ball, dt)

	g.checkBricks(ball)
	g.checkBottomWall(ball)
	g.checkPaddle(ball, paddle)
	g.checkWalls(ball)
}

// updateMomentum eases the paddle momentum towards the input direction.
func (g *Game) updateMomentum(dir, dt float32) {
	p := g.cfg.Physics
	target := dir * p.PaddleSpeed * dt
	g.momentum = mgl32.Clamp(core.Lerp(g.momentum, target, p.LerpFactor), -p.MaxMomentum, p.MaxMomentum)
}

func (g *Game) movePaddle(paddle *world.Entity) {
	lo, hi := g.paddleBounds()
	paddle.Pos[0] = mgl32.Clamp(paddle.Pos.X()+g.momentum, lo, hi)
}

// moveBall advances the ball along its direction. The stored velocity is a
// direction only; a zero vector leaves the ball in place.
func (g *Game) moveBall(ball *world.Entity, dt float32) {
	step := core.Direction(ball.Velocity).Mul(g.ballSpeed * dt)
	ball.Pos = ball.Pos.Add(step.Vec3(0))
}

// checkBricks handles every brick the ball overlaps this tick.
func (g *Game) checkBricks(ball *world.Entity) {
	for _, brick := range g.world.Query(world.KindBrick) {
		side, ok := core.TestOverlap(ball.Center(), ball.Size, brick.Center(), brick.Size)
		if !ok {
			continue
		}
		g.collided = true
		g.hitBrick(brick)
		ball.Velocity = core.Reflect(ball.Velocity, side)
	}
}

// hitBrick scores a hit and weakens the brick, removing it at zero strength.
func (g *Game) hitBrick(brick *world.Entity) {
	g.score += g.cfg.Gameplay.BrickPoints
	brick.Strength--
	if brick.Strength <= 0 {
		g.removeBrick(brick.Handle)
		return
	}
	brick.Tint = g.tintFor(brick.Strength)
}

// removeBrick despawns a brick and updates the live counter together, so
// the two never disagree.
func (g *Game) removeBrick(h world.Handle) {
	if g.world.Despawn(h) {
		g.bricksLeft--
	}
}

// checkBottomWall reports a lost ball. The ball is not reflected.
func (g *Game) checkBottomWall(ball *world.Entity) {
	for _, wall := range g.world.Query(world.KindBottomWall) {
		if _, ok := core.TestOverlap(ball.Center(), ball.Size, wall.Center(), wall.Size); ok {
			g.events = append(g.events, eventLostHealth)
			return
		}
	}
}

// checkPaddle reflects the ball off the first paddle it overlaps and bends
// face hits according to the control style.
func (g *Game) checkPaddle(ball, paddle *world.Entity) {
	side, ok := core.TestOverlap(ball.Center(), ball.Size, paddle.Center(), paddle.Size)
	if !ok {
		return
	}
	g.collided = true

	magnitude := ball.Velocity.Len()
	ball.Velocity = core.Reflect(ball.Velocity, side)
	if side != core.SideTop && side != core.SideBottom {
		return
	}

	switch g.style {
	case ControlEdges, ControlMomentum:
		ball.Velocity = g.deflect(ball.Velocity, magnitude)
	case ControlUnaltered:
	}
}

// deflect adds the paddle momentum to the reflected angle, measured from
// +Y, and keeps the pre-bounce magnitude. Only the horizontal component
// takes the bent angle; the vertical one stays that of the plain
// reflection, so a ball leaving the top face always keeps climbing.
func (g *Game) deflect(reflected mgl32.Vec2, magnitude float32) mgl32.Vec2 {
	p := g.cfg.Physics
	influence := p.MaxInfluence * float64(g.momentum/p.MaxMomentum)
	angle := core.AngleFromUp(reflected)
	desired := math.Max(-math.Pi/2, math.Min(math.Pi/2, angle+influence))
	bent := mgl32.Vec2{float32(math.Sin(desired)), float32(math.Cos(angle))}
	return core.Direction(bent).Mul(magnitude)
}

// checkWalls reflects the ball off the first side or top wall it overlaps.
func (g *Game) checkWalls(ball *world.Entity) {
	for _, wall := range g.world.Query(world.KindWall) {
		if wall.Kind.Has(world.KindBottomWall) {
			continue
		}
		side, ok := core.TestOverlap(ball.Center(), ball.Size, wall.Center(), wall.Size)
		if !ok {
			continue
		}
		g.collided = true
		ball.Velocity = core.Reflect(ball.Velocity, side)
		return
	}
}
