// Package tui provides the Bubble Tea integration for the training
// platform. It handles the terminal UI loop, input mapping, and screen
// orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per second to drive the mission countdown. Gen
// identifies the tick chain that produced it, so a model can discard
// ticks still in flight from a mission screen that was already closed.
type TickMsg struct {
	Gen int64
	At  time.Time
}

var tickGen atomic.Int64

// newTickGen allocates an id for a fresh tick chain.
func newTickGen() int64 {
	return tickGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick per second
// on the given chain.
func tickCmd(gen int64) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}
