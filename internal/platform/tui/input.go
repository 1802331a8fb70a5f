package tui

import "github.com/vovakirdan/breaker/internal/core"

// Terminals report key presses and auto-repeats but never releases, so a
// movement key counts as held for a while after each event. The first press
// gets a longer window to bridge the keyboard's initial repeat delay.
const (
	firstHoldWindow  = 0.30
	repeatHoldWindow = 0.12
)

// inputState collects key events between physics ticks.
type inputState struct {
	held  map[core.Action]float64 // Seconds each movement key stays held
	edges core.InputFrame         // Pressed since the last tick
}

func newInputState() *inputState {
	return &inputState{
		held:  make(map[core.Action]float64),
		edges: core.NewInputFrame(),
	}
}

// press records one key event.
func (s *inputState) press(a core.Action) {
	switch a {
	case core.ActionNone:
	case core.ActionLeft, core.ActionRight:
		window := firstHoldWindow
		if s.held[a] > 0 {
			window = repeatHoldWindow
		}
		// Reversing direction releases the other key immediately.
		delete(s.held, opposite(a))
		s.held[a] = max(s.held[a], window)
	default:
		s.edges.Set(a)
	}
}

// frame builds the input for the next tick: the pending edges plus every
// key still inside its hold window. The result does not alias the edges.
func (s *inputState) frame() core.InputFrame {
	f := s.edges.Clone()
	for a, left := range s.held {
		if left > 0 {
			f.Set(a)
		}
	}
	return f
}

// consumeEdges drops edge actions once a tick has seen them.
func (s *inputState) consumeEdges() {
	s.edges.Clear()
}

// decay advances the hold windows by dt seconds.
func (s *inputState) decay(dt float64) {
	for a, left := range s.held {
		left -= dt
		if left <= 0 {
			delete(s.held, a)
			continue
		}
		s.held[a] = left
	}
}

// release forgets every held key and pending edge.
func (s *inputState) release() {
	clear(s.held)
	s.edges.Clear()
}

func opposite(a core.Action) core.Action {
	if a == core.ActionLeft {
		return core.ActionRight
	}
	return core.ActionLeft
}
