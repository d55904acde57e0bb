package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/shopcart/internal/cartsync"
)

// sendResultMsg carries a finished cart send back into Update.
type sendResultMsg struct {
	result cartsync.Result
}

// errorMsg clears the status line set with the given id.
type errorMsg struct {
	id int
}

// errorMsgAfter clears status line id after d.
func errorMsgAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return errorMsg{id: id}
	})
}
