// Package tui hosts the runner in a Bubble Tea program, locally or per SSH
// session. It turns terminal events into input signals and drives the
// scheduler from a tick.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is one host frame. Gen is the scheduler generation the frame was
// requested under; a frame from a cancelled request is dropped.
type FrameMsg struct {
	Time time.Time
	Gen  uint64
}

// frameCmd requests the next frame at the given rate.
func frameCmd(fps int, gen uint64) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t, Gen: gen}
	})
}
