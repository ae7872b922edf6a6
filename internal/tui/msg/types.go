package msg

import (
	"github.com/Iron-Ham/taskboard/internal/config"
	"github.com/Iron-Ham/taskboard/internal/refresh"
)

// SyncedMsg carries the outcome of a refresh.Job run by [Sync].
type SyncedMsg struct {
	Result refresh.Result
}

// StatusMsg is a transient line shown in the footer.
type StatusMsg struct {
	Text  string
	IsErr bool
}

// ClearStatusMsg removes the footer line set by a StatusMsg with the same Seq.
type ClearStatusMsg struct {
	Seq int
}

// ConfigReloadedMsg is sent when the config file changes on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ErrMsg wraps an error to be displayed in the UI.
type ErrMsg struct {
	Err error
}
