package breakout

import "slices"

// AppState is the outer screen the program is on.
type AppState int

const (
	AppMainMenu AppState = iota
	AppInGame
	AppGameOver
	AppExit
)

func (s AppState) String() string {
	switch s {
	case AppMainMenu:
		return "MainMenu"
	case AppInGame:
		return "InGame"
	case AppGameOver:
		return "GameOver"
	case AppExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// GameState is the inner state of a round while the app is InGame.
type GameState int

const (
	GameUninitialized GameState = iota
	GamePlaying
	GamePaused
)

func (s GameState) String() string {
	switch s {
	case GameUninitialized:
		return "Uninitialized"
	case GamePlaying:
		return "Playing"
	case GamePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// AppTransition is a request to change the AppState.
type AppTransition int

const (
	ToMainMenu AppTransition = iota
	ToInGame
	ToAppGameOver
	ToExit
)

func (t AppTransition) String() string {
	switch t {
	case ToMainMenu:
		return "ToMainMenu"
	case ToInGame:
		return "ToInGame"
	case ToAppGameOver:
		return "ToGameOver"
	case ToExit:
		return "ToExit"
	default:
		return "Unknown"
	}
}

// GameTransition is a request to change the GameState or the round.
type GameTransition int

const (
	ToUninitialized GameTransition = iota
	ToPlayGame
	ToHaltGame
	NextLevel
	ToGameOver
)

func (t GameTransition) String() string {
	switch t {
	case ToUninitialized:
		return "ToUninitialized"
	case ToPlayGame:
		return "ToPlayGame"
	case ToHaltGame:
		return "ToHaltGame"
	case NextLevel:
		return "NextLevel"
	case ToGameOver:
		return "ToGameOver"
	default:
		return "Unknown"
	}
}

// RequestApp queues an app transition. It is applied at the start of the
// next Step, before any game system runs.
func (g *Game) RequestApp(t AppTransition) {
	g.appQueue = append(g.appQueue, t)
}

// requestGame queues a game transition for the next game handler pass.
func (g *Game) requestGame(t GameTransition) {
	g.gameQueue = append(g.gameQueue, t)
}

// requestGameOnce queues t unless an identical request is already pending.
func (g *Game) requestGameOnce(t GameTransition) {
	if slices.Contains(g.gameQueue, t) {
		return
	}
	g.requestGame(t)
}

// transitionApp drains the app requests queued before this call.
// It is the only writer of g.app.
func (g *Game) transitionApp() {
	pending := g.appQueue
	g.appQueue = nil

	for _, req := range pending {
		g.log.Info("app transition request", "from", g.app, "to", req)

		switch req {
		case ToMainMenu:
			g.app = AppMainMenu
			g.menuIndex = 0
			// The next round starts from an empty world.
			g.gameQueue = append(g.gameQueue[:0], ToUninitialized)
		case ToInGame:
			g.app = AppInGame
		case ToAppGameOver:
			g.app = AppGameOver
		case ToExit:
			g.app = AppExit
		}
	}
}

// transitionGame drains the game requests queued before this call.
// Requests raised while draining are left for the next tick.
// It is the only writer of g.game.
func (g *Game) transitionGame() {
	pending := g.gameQueue
	g.gameQueue = nil

	for _, req := range pending {
		g.log.Info("game transition request", "from", g.game, "to", req)

		switch req {
		case ToUninitialized:
			g.world.Clear()
			g.ready = false
			g.game = GameUninitialized
		case ToPlayGame:
			if !g.ready {
				g.log.Debug("play requested before setup, ignoring")
				continue
			}
			g.game = GamePlaying
		case ToHaltGame:
			if g.game == GamePlaying {
				g.game = GamePaused
			}
		case NextLevel:
			g.advanceLevel()
		case ToGameOver:
			// Freeze the round so nothing else happens before the app leaves it.
			g.game = GamePaused
			g.RequestApp(ToAppGameOver)
		}
	}
}

// manage drives the round forward: setup when uninitialized, and level or
// game-over requests while playing.
func (g *Game) manage() {
	switch g.game {
	case GameUninitialized:
		if !g.ready {
			g.setup()
			g.requestGameOnce(ToPlayGame)
		}
	case GamePlaying:
		if g.bricksLeft == 0 {
			g.requestGameOnce(NextLevel)
		}
		if g.health == 0 {
			g.requestGameOnce(ToGameOver)
		}
	}
}
