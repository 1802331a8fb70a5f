// Package tui provides the Bubble Tea front end for breaker.
// It runs the render loop, maps keys to actions and feeds the game fixed ticks.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent once per render frame. Physics ticks are derived from the
// time between frames, not from the frame count.
type FrameMsg time.Time

// frameCmd schedules the next render frame at the given rate.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
