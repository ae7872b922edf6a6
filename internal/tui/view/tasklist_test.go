package view

import (
	"strings"
	"testing"

	"github.com/Iron-Ham/taskboard/internal/api"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func sampleTasks(n int) []api.Task {
	tasks := make([]api.Task, n)
	for i := range tasks {
		tasks[i] = api.Task{ID: i + 1, Title: "Task " + string(rune('A'+i))}
	}
	return tasks
}

func TestRenderTaskList_States(t *testing.T) {
	tests := []struct {
		name  string
		state TaskListState
		want  string
	}{
		{"loading", TaskListState{Loading: true}, MsgLoadingTasks},
		{"empty", TaskListState{Tasks: []api.Task{}}, MsgNoTasks},
		{"tasks", TaskListState{Tasks: sampleTasks(2), Width: 40}, "Task B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, RenderTaskList(tt.state), tt.want)
		})
	}
}

func TestRenderTaskList_LoadingHidesStaleRows(t *testing.T) {
	out := RenderTaskList(TaskListState{Tasks: sampleTasks(1), Loading: true})
	assert.Contains(t, out, MsgLoadingTasks)
	assert.NotContains(t, out, "Task A")
}

func TestRenderTaskList_Rows(t *testing.T) {
	tasks := sampleTasks(3)
	tasks[1].Comments = []api.Comment{{ID: 1}, {ID: 2}}

	out := RenderTaskList(TaskListState{
		Tasks:     tasks,
		Cursor:    1,
		Focused:   true,
		EditingID: 3,
		Width:     60,
	})

	assert.Contains(t, out, "Tasks (3)")
	assert.Contains(t, out, "> Task B")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "(editing)")
	assert.NotContains(t, out, "> Task A")
}

func TestRenderTaskList_TruncatesLongTitles(t *testing.T) {
	tasks := []api.Task{{ID: 1, Title: strings.Repeat("long ", 30)}}
	out := RenderTaskList(TaskListState{Tasks: tasks, Width: 30})

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}
}

func TestRenderTaskList_MultilineTitleShowsFirstLine(t *testing.T) {
	tasks := []api.Task{{ID: 1, Title: "Ship it\nthen celebrate"}}
	out := RenderTaskList(TaskListState{Tasks: tasks, Width: 40})
	assert.Contains(t, out, "Ship it")
	assert.NotContains(t, out, "celebrate")
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name               string
		n, cursor, height  int
		wantStart, wantEnd int
	}{
		{"fits", 5, 0, 10, 0, 5},
		{"unlimited", 50, 10, 0, 0, 50},
		{"top", 20, 0, 6, 0, 4},
		{"middle", 20, 10, 6, 8, 12},
		{"bottom", 20, 19, 6, 16, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := visibleRange(tt.n, tt.cursor, tt.height)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			if tt.height > 0 && tt.n > tt.height {
				assert.True(t, tt.cursor >= start && tt.cursor < end, "cursor must stay visible")
			}
		})
	}
}

func TestRenderTaskList_Overflow(t *testing.T) {
	out := RenderTaskList(TaskListState{Tasks: sampleTasks(20), Cursor: 19, Focused: true, Height: 6, Width: 40})
	assert.Contains(t, out, "↑ 16 more")
	assert.Contains(t, out, "> Task T")
	assert.NotContains(t, out, "↓")
}
