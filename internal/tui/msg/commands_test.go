package msg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Iron-Ham/taskboard/internal/api"
	"github.com/Iron-Ham/taskboard/internal/refresh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	tasks []api.Task
}

func (s stubLoader) ListTasks(context.Context) ([]api.Task, error) { return s.tasks, nil }
func (s stubLoader) GetTask(context.Context, int) (api.Task, error) {
	return api.Task{}, errors.New("unused")
}
func (s stubLoader) ListComments(context.Context, int) ([]api.Comment, error) {
	return nil, errors.New("unused")
}

func TestSync(t *testing.T) {
	loader := stubLoader{tasks: []api.Task{{ID: 1, Title: "Write docs"}}}
	syncer := refresh.NewSyncer(loader, refresh.NewTracker(), nil)

	cmd := Sync(context.Background(), syncer, refresh.Job{Op: refresh.OpLoadTasks, Invalidates: refresh.Tasks})
	require.NotNil(t, cmd)

	synced, ok := cmd().(SyncedMsg)
	require.True(t, ok, "Sync() should produce a SyncedMsg")
	assert.Equal(t, refresh.OpLoadTasks, synced.Result.Op)
	require.NotNil(t, synced.Result.Tasks)
	assert.Equal(t, "Write docs", synced.Result.Tasks.Value[0].Title)
}

func TestCopy(t *testing.T) {
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })

	var got string
	writeClipboard = func(s string) error {
		got = s
		return nil
	}

	status, ok := Copy("Buy milk", "task title")().(StatusMsg)
	require.True(t, ok)
	assert.Equal(t, "Buy milk", got)
	assert.Equal(t, "Copied task title", status.Text)
	assert.False(t, status.IsErr)

	writeClipboard = func(string) error { return errors.New("no display") }
	status = Copy("x", "comment")().(StatusMsg)
	assert.True(t, status.IsErr)
	assert.Equal(t, "Failed to copy: no display", status.Text)
}

func TestClearStatusAfter(t *testing.T) {
	cmd := ClearStatusAfter(time.Millisecond, 7)
	require.NotNil(t, cmd)

	cleared, ok := cmd().(ClearStatusMsg)
	require.True(t, ok)
	assert.Equal(t, 7, cleared.Seq)
}
