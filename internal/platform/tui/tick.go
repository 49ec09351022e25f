// Package tui provides the Bubble Tea integration for the blocks games.
// It handles the terminal UI loop, input mapping, menus, the scoreboard,
// and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Loop identifies the
// tick chain that produced it.
type TickMsg struct {
	Time time.Time
	Loop uint64
}

// loopSeq hands out tick chain IDs so a game only reacts to its own ticks
// after a session switches games.
var loopSeq atomic.Uint64

func nextLoop() uint64 {
	return loopSeq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
