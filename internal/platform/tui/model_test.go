package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/breaker/internal/audio"
	"github.com/vovakirdan/breaker/internal/core"
	"github.com/vovakirdan/breaker/internal/storage"
)

// fakeGame records the input of every tick and reports a scripted state.
type fakeGame struct {
	frames   []core.InputFrame
	state    core.GameState
	collided bool
	resets   int
}

func (g *fakeGame) ID() string               { return "fake" }
func (g *fakeGame) Title() string            { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) State() core.GameState    { return g.state }
func (g *fakeGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state, Collided: g.collided}
}

type countingSink struct{ n int }

func (s *countingSink) Blip() { s.n++ }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, FrameRate: 60}
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// frames feeds FrameMsgs at the given offsets from t0.
func frames(t *testing.T, m Model, offsets ...time.Duration) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, off := range offsets {
		var next tea.Model
		next, cmd = m.Update(FrameMsg(t0.Add(off)))
		m = next.(Model)
	}
	return m, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestInputHoldWindow(t *testing.T) {
	s := newInputState()

	s.press(core.ActionLeft)
	if !s.frame().Has(core.ActionLeft) {
		t.Fatal("Left should be held right after a press")
	}

	s.decay(0.2)
	if !s.frame().Has(core.ActionLeft) {
		t.Error("first press should bridge the initial repeat delay")
	}

	s.decay(0.2)
	if s.frame().Has(core.ActionLeft) {
		t.Error("Left should be released once the window runs out")
	}

	s.press(core.ActionLeft)
	s.press(core.ActionRight)
	f := s.frame()
	if f.Has(core.ActionLeft) || !f.Has(core.ActionRight) {
		t.Errorf("reversing should release Left, got %v", f.Actions)
	}
}

func TestInputEdgesLastOneTick(t *testing.T) {
	s := newInputState()
	s.press(core.ActionConfirm)
	s.press(core.ActionNone)

	if !s.frame().Has(core.ActionConfirm) {
		t.Fatal("Confirm should reach the next tick")
	}
	f := s.frame()
	s.consumeEdges()
	if s.frame().Has(core.ActionConfirm) {
		t.Error("Confirm should not repeat on the following tick")
	}
	if !f.Has(core.ActionConfirm) {
		t.Error("consuming edges should not change a frame already handed out")
	}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey('d'), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey('s'), core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionCancel},
		{runeKey('q'), core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.expected {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestModelStepsFromElapsedTime(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig())

	// The first frame only sets the clock.
	m, _ = frames(t, m, 0)
	if len(game.frames) != 0 {
		t.Fatalf("first frame ran %d ticks, expected 0", len(game.frames))
	}

	frames(t, m, 110*time.Millisecond)
	if len(game.frames) != 6 {
		t.Errorf("110ms at 60Hz ran %d ticks, expected 6", len(game.frames))
	}
}

func TestModelForwardsKeys(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig())
	m, _ = frames(t, m, 0)

	next, _ := m.Update(runeKey('a'))
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	frames(t, m, 40*time.Millisecond)
	if len(game.frames) < 2 {
		t.Fatalf("expected at least 2 ticks, got %d", len(game.frames))
	}

	first, second := game.frames[0], game.frames[1]
	if !first.Has(core.ActionLeft) || !first.Has(core.ActionConfirm) {
		t.Errorf("first tick = %v, expected Left and Confirm", first.Actions)
	}
	if !second.Has(core.ActionLeft) {
		t.Error("Left should stay held on the second tick")
	}
	if second.Has(core.ActionConfirm) {
		t.Error("Confirm should only reach one tick")
	}
}

func TestModelSavesScoreOncePerRound(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game := &fakeGame{state: core.GameState{GameOver: true, Score: 50, Level: 2}}
	m := NewModel(game, store, testConfig())
	m, _ = frames(t, m, 0, 50*time.Millisecond, 100*time.Millisecond)

	scores, _ := store.TopScores("fake", 10)
	if len(scores) != 1 {
		t.Fatalf("saved %d scores during one game over, expected 1", len(scores))
	}
	if scores[0].Score != 50 || scores[0].Level != 2 {
		t.Errorf("saved %d/L%d, expected 50/L2", scores[0].Score, scores[0].Level)
	}

	// Back to the menu and into a second game over.
	game.state = core.GameState{InMenu: true}
	m, _ = frames(t, m, 150*time.Millisecond)
	game.state = core.GameState{GameOver: true, Score: 70, Level: 3}
	frames(t, m, 200*time.Millisecond)

	scores, _ = store.TopScores("fake", 10)
	if len(scores) != 2 {
		t.Errorf("saved %d scores over two rounds, expected 2", len(scores))
	}
}

func TestModelSkipsZeroScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game := &fakeGame{state: core.GameState{GameOver: true}}
	m := NewModel(game, store, testConfig())
	frames(t, m, 0, 50*time.Millisecond)

	if high, _ := store.HighScore("fake"); high != 0 {
		t.Errorf("HighScore() = %d, expected nothing saved", high)
	}
}

func TestModelQuitsOnExit(t *testing.T) {
	game := &fakeGame{state: core.GameState{Exit: true}}
	m := NewModel(game, nil, testConfig())

	m, cmd := frames(t, m, 0, 50*time.Millisecond)
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("exit should quit the program")
	}
	if len(game.frames) != 1 {
		t.Errorf("ran %d ticks after exit, expected 1", len(game.frames))
	}
	if m.View() != "" {
		t.Error("View() after quitting should be empty")
	}
}

func TestEmbeddedModelReportsExit(t *testing.T) {
	game := &fakeGame{state: core.GameState{Exit: true}}
	m := NewModel(game, nil, testConfig(), Embedded())

	m, cmd := frames(t, m, 0, 50*time.Millisecond)
	if cmd != nil {
		t.Error("embedded model should leave quitting to its parent")
	}
	if !m.Exited() {
		t.Error("Exited() = false, expected true")
	}
}

func TestModelCollisionCue(t *testing.T) {
	sink := &countingSink{}
	game := &fakeGame{collided: true}
	m := NewModel(game, nil, testConfig(), WithCue(audio.NewCue(sink, 0.1)))

	// Six ticks span 0.1s minus one tick, so only the first collision sounds.
	frames(t, m, 0, 110*time.Millisecond)
	if sink.n != 1 {
		t.Errorf("played %d blips, expected 1", sink.n)
	}
}

func TestModelView(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig())

	if !strings.Contains(m.View(), "fake") {
		t.Error("View() should contain the rendered game")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d after resize, expected 100x30", m.screen.Width(), m.screen.Height())
	}
	if game.resets != 0 {
		t.Error("resize should not reset the game")
	}
}

func TestShortTitle(t *testing.T) {
	tests := []struct{ in, expected string }{
		{"Breaker", "Breaker"},
		{"Breaker (Momentum)", "Momentum"},
		{"Breaker (Unaltered)", "Unaltered"},
	}
	for _, tt := range tests {
		if got := shortTitle(tt.in); got != tt.expected {
			t.Errorf("shortTitle(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	m.items = []MenuItem{
		{GameID: "breaker", Title: "Breaker", Aliases: []string{"edges"}},
		{GameID: "breaker_momentum", Title: "Breaker (Momentum)"},
	}

	press := func(msg tea.KeyMsg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(MenuModel)
		return cmd
	}

	press(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 1 {
		t.Errorf("cursor = %d after Up from the top, expected 1", m.cursor)
	}
	press(runeKey('j'))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after wrapping down, expected 0", m.cursor)
	}
	if !strings.Contains(m.View(), "breaker play edges") {
		t.Error("View() should hint the alias of the highlighted style")
	}

	if cmd := press(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Fatal("selecting should end the menu")
	}
	if m.Selected() == nil || m.Selected().GameID != "breaker" {
		t.Errorf("Selected() = %v, expected breaker", m.Selected())
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("Tab should open the scoreboard")
	}

	next, _ = m.Update(runeKey('q'))
	if !next.(MenuModel).IsQuitting() {
		t.Error("q should quit")
	}
}
