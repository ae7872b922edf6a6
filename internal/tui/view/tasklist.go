package view

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/taskboard/internal/api"
	"github.com/Iron-Ham/taskboard/internal/tui/styles"
	"github.com/Iron-Ham/taskboard/internal/util"
	"github.com/charmbracelet/lipgloss"
)

// Fixed texts of the task list.
const (
	MsgLoadingTasks = "Loading tasks..."
	MsgNoTasks      = "No tasks yet. Create one above!"
)

// TaskListState holds what RenderTaskList needs.
type TaskListState struct {
	Tasks     []api.Task
	Cursor    int
	OpenID    int // task shown in the detail pane, 0 for none
	EditingID int // task with an in-progress edit, 0 for none
	Loading   bool
	Focused   bool
	Width     int
	Height    int // rows available for tasks, 0 for unlimited
}

// RenderTaskList renders the heading and the visible window of tasks.
func RenderTaskList(state TaskListState) string {
	s := styles.GetActiveTheme()

	var b strings.Builder
	b.WriteString(s.PaneTitle.Render(fmt.Sprintf("Tasks (%d)", len(state.Tasks))))
	b.WriteString("\n\n")

	switch {
	case state.Loading:
		b.WriteString(s.Placeholder.Render(MsgLoadingTasks))
		return b.String()
	case len(state.Tasks) == 0:
		b.WriteString(s.Placeholder.Render(MsgNoTasks))
		return b.String()
	}

	start, end := visibleRange(len(state.Tasks), state.Cursor, state.Height)
	if start > 0 {
		b.WriteString(s.Muted.Render(fmt.Sprintf("  ↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(renderTaskRow(state, i))
		b.WriteString("\n")
	}
	if end < len(state.Tasks) {
		b.WriteString(s.Muted.Render(fmt.Sprintf("  ↓ %d more", len(state.Tasks)-end)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTaskRow(state TaskListState, i int) string {
	s := styles.GetActiveTheme()
	task := state.Tasks[i]

	suffix := ""
	if n := task.CommentCount(); n > 0 {
		suffix = " " + s.CommentCount.Render(fmt.Sprintf("[%d]", n))
	}
	if task.ID == state.EditingID {
		suffix += " " + s.Warning.Render("(editing)")
	}

	title := util.FirstLine(task.Title)
	avail := state.Width - 2 - lipgloss.Width(suffix)
	if avail > 0 {
		title = util.TruncateANSI(title, avail)
	}

	switch {
	case i == state.Cursor && state.Focused:
		return s.TaskItemSelected.Render("> "+title) + suffix
	case task.ID == state.OpenID:
		return "  " + s.TaskItemOpen.Render(title) + suffix
	default:
		return s.TaskItem.Render(title) + suffix
	}
}

// visibleRange returns the [start, end) window of n rows that keeps cursor
// in view when only height rows fit. Two rows are reserved for the
// "more" markers when the list overflows.
func visibleRange(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	rows := height - 2
	if rows < 1 {
		rows = 1
	}
	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}
