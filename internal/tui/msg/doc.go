// Package msg defines the message types used by the TUI's Bubbletea event loop
// and the command factories that produce them.
//
// Every network call the TUI makes goes through [Sync], which runs a
// refresh.Job on a Bubbletea command goroutine and delivers the outcome as a
// [SyncedMsg]. The Update loop applies that message to the board and the
// comment panel; nothing else mutates their state.
package msg
