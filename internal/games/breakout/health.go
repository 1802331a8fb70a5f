package breakout

import (
	"fmt"

	"github.com/vovakirdan/breaker/internal/world"
)

// playerEvent is raised by the physics step and consumed in the same tick.
type playerEvent int

const (
	eventLostHealth playerEvent = iota
)

// handleHealth consumes player events. While the paddle blinks the player
// is immune and events are dropped.
func (g *Game) handleHealth() {
	events := g.events
	g.events = g.events[:0]

	for _, ev := range events {
		if ev != eventLostHealth {
			continue
		}

		paddle := g.single(world.KindPaddle)
		if paddle.Blink != nil {
			g.log.Debug("health loss dropped while blinking", "health", g.health)
			continue
		}

		if g.health == 0 {
			g.RequestApp(ToMainMenu)
		} else {
			g.health--
			ball := g.single(world.KindBall)
			paddle.Blink = world.NewBlink(g.cfg.Gameplay.BlinkDuration)
			ball.Blink = world.NewBlink(g.cfg.Gameplay.BlinkDuration)
			if g.cfg.Gameplay.RespawnOnMiss {
				g.resetBall(ball)
			}
			g.log.Info("lost health", "health", g.health)
		}
		g.setText(textHealth, fmt.Sprintf("Health: %d", g.health))
	}
}

// tickBlinks advances every blink window and applies its visibility.
func (g *Game) tickBlinks() {
	dt := g.runtime.TickSeconds()
	for _, kind := range []world.Kind{world.KindPaddle, world.KindBall} {
		for _, e := range g.world.Query(kind) {
			if e.Blink == nil {
				continue
			}
			visible, done := e.Blink.Tick(dt)
			e.Visible = visible
			if done {
				e.Blink = nil
			}
		}
	}
}
