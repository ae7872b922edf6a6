package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/taskboard/internal/api"
	"github.com/Iron-Ham/taskboard/internal/board"
	"github.com/Iron-Ham/taskboard/internal/comments"
	"github.com/Iron-Ham/taskboard/internal/config"
	"github.com/Iron-Ham/taskboard/internal/testutil"
	"github.com/Iron-Ham/taskboard/internal/tui/keymap"
	"github.com/Iron-Ham/taskboard/internal/tui/msg"
	"github.com/Iron-Ham/taskboard/internal/tui/view"
)

// maxSteps bounds settle so a command loop fails the test instead of hanging.
const maxSteps = 200

func newTestModel(t *testing.T, srv *testutil.Server) Model {
	t.Helper()
	client := api.NewClient(srv.BaseURL())
	return NewModel(client, Options{
		TUI:       config.TUIConfig{Theme: "monochrome", TimeFormat: "2006-01-02 15:04"},
		StatusTTL: time.Millisecond,
	})
}

// settle runs cmd and every command it produces, feeding messages back into
// the model in order. Spinner ticks and status expiry are dropped.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, maxSteps, "commands did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch v := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, v...)
		case spinner.TickMsg, msg.ClearStatusMsg, tea.QuitMsg:
		default:
			updated, more := m.Update(v)
			m = updated.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "alt+enter":
		return tea.KeyMsg{Type: tea.KeyEnter, Alt: true}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends each key and settles the resulting commands.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, cmd := m.Update(keyMsg(k))
		m = settle(t, updated.(Model), cmd)
	}
	return m
}

func loaded(t *testing.T, srv *testutil.Server) Model {
	t.Helper()
	m := newTestModel(t, srv)
	m = settle(t, m, m.Init())
	require.False(t, m.busy(), "initial load should finish")
	return m
}

func taskTitles(m Model) []string {
	var out []string
	for _, task := range m.Board().Tasks() {
		out = append(out, task.Title)
	}
	return out
}

func commentTexts(m Model) []string {
	var out []string
	for _, c := range m.Panel().Comments() {
		out = append(out, c.Text)
	}
	return out
}

func TestInitLoadsTasks(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "first task", "one")
	srv.AddTask("Beta", "")

	m := newTestModel(t, srv)
	assert.True(t, m.busy(), "board starts loading")

	m = settle(t, m, m.Init())

	assert.Equal(t, []string{"Alpha", "Beta"}, taskTitles(m))
	assert.False(t, m.busy())
	out := m.View()
	assert.Contains(t, out, "Tasks (2)")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, view.MsgNoSelection)
}

func TestInitLoadFailureShowsBanner(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Fail("GET", "/tasks", 500)

	m := loaded(t, srv)

	assert.Equal(t, board.MsgLoadFailed, m.Board().Err())
	assert.Contains(t, m.View(), board.MsgLoadFailed)

	srv.Heal()
	srv.AddTask("Back", "")
	m = press(t, m, "r")
	assert.Empty(t, m.Board().Err())
	assert.Equal(t, []string{"Back"}, taskTitles(m))
}

func TestOpenTaskLoadsComments(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "", "first", "second")
	srv.AddTask("Beta", "")
	m := loaded(t, srv)

	m = press(t, m, "enter")

	require.NotNil(t, m.Panel())
	sel, ok := m.Board().Selected()
	require.True(t, ok)
	assert.Equal(t, "Alpha", sel.Title)
	assert.Equal(t, []string{"first", "second"}, commentTexts(m))
	assert.Equal(t, 1, srv.Count("GET", "/tasks/1/comments"))
	assert.Contains(t, m.View(), "second")

	// Opening the same task again only moves focus
	m = press(t, m, "enter")
	assert.Equal(t, PaneComments, m.Focus())
	assert.Equal(t, 1, srv.Count("GET", "/tasks/1/comments"))

	m = press(t, m, "esc")
	assert.Nil(t, m.Panel())
	assert.Equal(t, PaneTasks, m.Focus())
	_, ok = m.Board().Selected()
	assert.False(t, ok)
}

func TestOpenOtherTaskSwitchesPanel(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "", "a1")
	srv.AddTask("Beta", "", "b1", "b2")
	m := loaded(t, srv)

	m = press(t, m, "enter", "j", "enter")

	require.NotNil(t, m.Panel())
	assert.Equal(t, 2, m.Panel().TaskID())
	assert.Equal(t, []string{"b1", "b2"}, commentTexts(m))
}

func TestCursorMovement(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("A", "")
	srv.AddTask("B", "")
	srv.AddTask("C", "")
	m := loaded(t, srv)

	m = press(t, m, "j", "down")
	assert.Equal(t, 2, m.taskCursor)
	m = press(t, m, "j")
	assert.Equal(t, 2, m.taskCursor, "cursor stops at the last task")
	m = press(t, m, "g")
	assert.Equal(t, 0, m.taskCursor)
	m = press(t, m, "k")
	assert.Equal(t, 0, m.taskCursor)
	m = press(t, m, "G")
	assert.Equal(t, 2, m.taskCursor)
}

func TestCreateTask(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Existing", "")
	m := loaded(t, srv)

	m = press(t, m, "n")
	assert.Equal(t, keymap.ModeNewTask, m.Mode())
	assert.Contains(t, m.View(), "New task")

	m = press(t, m, "Buy milk", "tab", "two litres", "ctrl+s")

	assert.Equal(t, keymap.ModeNormal, m.Mode())
	assert.Equal(t, []string{"Existing", "Buy milk"}, taskTitles(m))
	assert.Equal(t, "two litres", m.Board().Tasks()[1].Description)
	assert.Equal(t, 1, m.taskCursor, "cursor moves to the new task")
	assert.Equal(t, "Task created", m.status)
	assert.Empty(t, m.titleInput.Value())
	assert.Empty(t, m.Board().Form().Title)
}

func TestCreateTaskEnterInTitleSaves(t *testing.T) {
	srv := testutil.NewServer(t)
	m := loaded(t, srv)

	m = press(t, m, "n", "Quick", "enter")

	assert.Equal(t, keymap.ModeNormal, m.Mode())
	assert.Equal(t, []string{"Quick"}, taskTitles(m))
}

func TestCreateTaskBlankTitleIsNoop(t *testing.T) {
	srv := testutil.NewServer(t)
	m := loaded(t, srv)

	m = press(t, m, "n", "   ", "enter")

	assert.Equal(t, keymap.ModeNewTask, m.Mode(), "form stays open")
	assert.Zero(t, srv.Count("POST", "/tasks"))
}

func TestCreateTaskFailureKeepsForm(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Fail("POST", "/tasks", 500)
	m := loaded(t, srv)

	m = press(t, m, "n", "Doomed", "enter")

	assert.Equal(t, keymap.ModeNewTask, m.Mode())
	assert.Equal(t, board.MsgCreateFailed, m.Board().Err())
	assert.Equal(t, "Doomed", m.titleInput.Value())
}

func TestCancelNewTaskKeepsBuffer(t *testing.T) {
	srv := testutil.NewServer(t)
	m := loaded(t, srv)

	m = press(t, m, "n", "Later", "esc")
	assert.Equal(t, keymap.ModeNormal, m.Mode())

	m = press(t, m, "n")
	assert.Equal(t, "Later", m.titleInput.Value())
}

func TestEditTask(t *testing.T) {
	srv := testutil.NewServer(t)
	id := srv.AddTask("Alpha", "")
	m := loaded(t, srv)

	m = press(t, m, "e")
	assert.Equal(t, keymap.ModeEditTask, m.Mode())
	assert.Equal(t, "Alpha", m.titleInput.Value())
	assert.Contains(t, m.View(), "(editing)")

	m = press(t, m, " v2", "ctrl+s")

	assert.Equal(t, keymap.ModeNormal, m.Mode())
	title, _ := srv.TaskTitle(id)
	assert.Equal(t, "Alpha v2", title)
	assert.Equal(t, []string{"Alpha v2"}, taskTitles(m))
	_, editing := m.Board().Draft()
	assert.False(t, editing)
}

func TestEditTaskCancel(t *testing.T) {
	srv := testutil.NewServer(t)
	id := srv.AddTask("Alpha", "")
	m := loaded(t, srv)

	m = press(t, m, "e", " changed", "esc")

	assert.Equal(t, keymap.ModeNormal, m.Mode())
	_, editing := m.Board().Draft()
	assert.False(t, editing)
	title, _ := srv.TaskTitle(id)
	assert.Equal(t, "Alpha", title)
	assert.Zero(t, srv.Count("PUT", "/tasks/1"))
}

func TestDeleteTask(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "")
	srv.AddTask("Beta", "")
	m := loaded(t, srv)

	m = press(t, m, "G", "d")

	assert.Equal(t, []string{"Alpha"}, taskTitles(m))
	assert.Equal(t, 1, srv.TaskCount())
	assert.Equal(t, 0, m.taskCursor, "cursor is clamped")
}

func TestDeleteOpenTaskClosesPanel(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "", "c")
	srv.AddTask("Beta", "")
	m := loaded(t, srv)

	m = press(t, m, "enter")
	require.NotNil(t, m.Panel())

	m = press(t, m, "d")

	assert.Nil(t, m.Panel())
	assert.Equal(t, PaneTasks, m.Focus())
	assert.Equal(t, []string{"Beta"}, taskTitles(m))
	assert.Contains(t, m.View(), view.MsgNoSelection)
}

func TestAddComment(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "", "first")
	m := loaded(t, srv)

	m = press(t, m, "enter", "a")
	assert.Equal(t, keymap.ModeNewComment, m.Mode())
	assert.Equal(t, PaneComments, m.Focus())

	m = press(t, m, "looks good", "enter")

	assert.Equal(t, keymap.ModeNormal, m.Mode())
	assert.Equal(t, []string{"first", "looks good"}, commentTexts(m))
	assert.Len(t, srv.CommentIDs(1), 2)
	assert.Equal(t, 2, m.Board().Tasks()[0].CommentCount(), "list count follows the new comment")
	assert.Equal(t, 1, m.commentCursor)
	assert.Empty(t, m.commentInput.Value())
}

func TestCommentFailureClearedByTaskSuccess(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "")
	m := loaded(t, srv)

	srv.FailOnce("POST", "/tasks/1/comments", 500)
	m = press(t, m, "enter", "a", "x", "enter")
	require.Equal(t, comments.MsgAddFailed, m.Board().Err())
	assert.Empty(t, m.Panel().Err())
	assert.Contains(t, m.View(), comments.MsgAddFailed)

	m = press(t, m, "esc", "n", "Beta", "enter")

	assert.Equal(t, []string{"Alpha", "Beta"}, taskTitles(m))
	assert.Empty(t, m.Board().Err())
	assert.NotContains(t, m.View(), comments.MsgAddFailed)
}

func TestOnlyLatestErrorShown(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "")
	srv.AddTask("Beta", "")
	m := loaded(t, srv)

	srv.FailOnce("DELETE", "/tasks/2", 500)
	m = press(t, m, "G", "d")
	require.Equal(t, board.MsgDeleteFailed, m.Board().Err())

	srv.FailOnce("POST", "/tasks/2/comments", 500)
	m = press(t, m, "enter", "a", "x", "enter")

	out := m.View()
	assert.Contains(t, out, comments.MsgAddFailed)
	assert.NotContains(t, out, board.MsgDeleteFailed)
}

func TestAddCommentMultiline(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "")
	m := loaded(t, srv)

	m = press(t, m, "enter", "a", "line one", "alt+enter", "line two", "ctrl+s")

	assert.Equal(t, []string{"line one\nline two"}, commentTexts(m))
}

func TestAddCommentBlankIsNoop(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "")
	m := loaded(t, srv)

	m = press(t, m, "enter", "a", "enter")

	assert.Equal(t, keymap.ModeNewComment, m.Mode())
	assert.Zero(t, srv.Count("POST", "/tasks/1/comments"))
}

func TestAddCommentWithoutTask(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "")
	m := loaded(t, srv)

	m = press(t, m, "a")

	assert.Equal(t, keymap.ModeNormal, m.Mode())
	assert.Equal(t, "Open a task to comment on it", m.status)
}

func TestEditComment(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "", "first", "second")
	m := loaded(t, srv)

	m = press(t, m, "enter", "tab", "j", "e")
	assert.Equal(t, keymap.ModeEditComment, m.Mode())
	assert.Equal(t, "second", m.commentInput.Value())

	m = press(t, m, "!", "enter")

	assert.Equal(t, keymap.ModeNormal, m.Mode())
	assert.Equal(t, []string{"first", "second!"}, commentTexts(m))
	_, editing := m.Panel().Draft()
	assert.False(t, editing)
}

func TestEditCommentCancel(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "", "first")
	m := loaded(t, srv)

	m = press(t, m, "enter", "tab", "e", " nope", "esc")

	assert.Equal(t, keymap.ModeNormal, m.Mode())
	assert.Equal(t, []string{"first"}, commentTexts(m))
	assert.Zero(t, srv.Count("PUT", "/comments/1"))
}

func TestDeleteComment(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "", "first", "second")
	m := loaded(t, srv)

	m = press(t, m, "enter", "tab", "d")

	assert.Equal(t, []string{"second"}, commentTexts(m))
	assert.Len(t, srv.CommentIDs(1), 1)
	assert.Equal(t, 1, m.Board().Tasks()[0].CommentCount())
	assert.Len(t, m.Board().Tasks(), 1, "deleting a comment keeps the task")
}

func TestSwitchFocusNeedsOpenTask(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "")
	m := loaded(t, srv)

	m = press(t, m, "tab")
	assert.Equal(t, PaneTasks, m.Focus())

	m = press(t, m, "enter", "tab")
	assert.Equal(t, PaneComments, m.Focus())
	assert.Contains(t, m.View(), "COMMENTS")

	m = press(t, m, "tab")
	assert.Equal(t, PaneTasks, m.Focus())
}

func TestHelpOverlay(t *testing.T) {
	srv := testutil.NewServer(t)
	m := loaded(t, srv)

	m = press(t, m, "?")
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Taskboard Help")

	m = press(t, m, "x")
	assert.False(t, m.showHelp)
	assert.Equal(t, keymap.ModeNormal, m.Mode())
}

func TestQuit(t *testing.T) {
	srv := testutil.NewServer(t)
	m := loaded(t, srv)

	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(k))
		require.NotNil(t, cmd, k)
		assert.IsType(t, tea.QuitMsg{}, cmd(), k)
	}
}

func TestStatusExpiresBySequence(t *testing.T) {
	srv := testutil.NewServer(t)
	m := loaded(t, srv)

	updated, _ := m.Update(msg.StatusMsg{Text: "old"})
	m = updated.(Model)
	stale := m.statusSeq
	updated, _ = m.Update(msg.StatusMsg{Text: "new"})
	m = updated.(Model)

	updated, _ = m.Update(msg.ClearStatusMsg{Seq: stale})
	m = updated.(Model)
	assert.Equal(t, "new", m.status, "stale clear is ignored")

	updated, _ = m.Update(msg.ClearStatusMsg{Seq: m.statusSeq})
	m = updated.(Model)
	assert.Empty(t, m.status)
}

func TestConfigReload(t *testing.T) {
	srv := testutil.NewServer(t)
	m := loaded(t, srv)

	cfg := config.Default()
	cfg.TUI.TimeFormat = "15:04"
	updated, _ := m.Update(msg.ConfigReloadedMsg{Config: cfg})
	m = updated.(Model)

	assert.Equal(t, "15:04", m.timeFormat)
	assert.Equal(t, "Config reloaded", m.status)
}

func TestViewLayouts(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.AddTask("Alpha", "Some **markdown** body", "hello")
	m := loaded(t, srv)

	for _, width := range []int{120, 60} {
		updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: 40})
		m = updated.(Model)
		m = press(t, m, "enter")

		out := m.View()
		assert.Contains(t, out, "Tasks (1)", "width %d", width)
		assert.Contains(t, out, "hello", "width %d", width)
		assert.Contains(t, out, "markdown", "width %d", width)
		assert.Equal(t, width >= narrowWidth, !m.narrow())
		m = press(t, m, "esc")
	}
}
