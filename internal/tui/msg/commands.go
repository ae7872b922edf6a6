package msg

import (
	"context"
	"time"

	"github.com/Iron-Ham/taskboard/internal/refresh"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// StatusTTL is how long a footer status line stays visible.
const StatusTTL = 3 * time.Second

// writeClipboard is replaced in tests; the real clipboard needs a display.
var writeClipboard = clipboard.WriteAll

// Sync returns a command that runs job to completion and reports it as a
// SyncedMsg. The job's mutation and reloads all happen on the command's
// goroutine, so the event loop never blocks on the network.
func Sync(ctx context.Context, s *refresh.Syncer, job refresh.Job) tea.Cmd {
	return func() tea.Msg {
		return SyncedMsg{Result: s.Run(ctx, job)}
	}
}

// Copy returns a command that writes text to the system clipboard. label
// names what was copied in the resulting status line.
func Copy(text, label string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return StatusMsg{Text: "Failed to copy: " + err.Error(), IsErr: true}
		}
		return StatusMsg{Text: "Copied " + label}
	}
}

// ClearStatusAfter returns a command that sends ClearStatusMsg{Seq: seq}
// once d has elapsed.
func ClearStatusAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
