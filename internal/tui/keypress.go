package tui

import (
	"strings"

	"github.com/Iron-Ham/taskboard/internal/tui/keymap"
	"github.com/Iron-Ham/taskboard/internal/tui/msg"
	"github.com/Iron-Ham/taskboard/internal/tui/view"
	"github.com/Iron-Ham/taskboard/internal/util"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeypress routes a key to the help overlay, the active form or the
// normal-mode commands.
func (m Model) handleKeypress(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.showHelp = false
		return m, nil
	}

	cmd, found := m.keymap.GetBinding(key, m.mode)
	if m.mode.IsForm() {
		if found {
			return m.handleFormCommand(cmd, key)
		}
		return m.forwardToInput(key)
	}
	if !found {
		return m, nil
	}
	return m.handleNormalCommand(cmd)
}

func (m Model) handleNormalCommand(command keymap.Command) (tea.Model, tea.Cmd) {
	switch command {
	case keymap.CmdQuit:
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		m.showHelp = true
		return m, nil

	case keymap.CmdCursorDown, keymap.CmdCursorUp, keymap.CmdCursorTop, keymap.CmdCursorEnd:
		m.moveCursor(command)
		return m, nil

	case keymap.CmdOpenTask:
		if m.focus == PaneComments {
			return m, nil
		}
		if task, ok := m.currentTask(); ok {
			return m.openTask(task)
		}
		return m, nil

	case keymap.CmdCloseTask:
		if m.panel != nil {
			m.closeTask()
		}
		return m, nil

	case keymap.CmdSwitchFocus:
		if m.panel == nil {
			return m, nil
		}
		if m.focus == PaneTasks {
			m.focus = PaneComments
		} else {
			m.focus = PaneTasks
		}
		m.refreshDetail()
		return m, nil

	case keymap.CmdNewTask:
		form := m.board.Form()
		m.titleInput.SetValue(form.Title)
		m.descInput.SetValue(form.Description)
		m.enterTaskForm(keymap.ModeNewTask)
		return m, nil

	case keymap.CmdEditTask:
		if m.focus == PaneComments {
			return m.editComment()
		}
		task, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		m.board.EditTask(task)
		m.titleInput.SetValue(task.Title)
		m.descInput.SetValue(task.Description)
		m.enterTaskForm(keymap.ModeEditTask)
		return m, nil

	case keymap.CmdDeleteTask:
		if m.focus == PaneComments {
			if c, ok := m.currentComment(); ok {
				cmd := m.run(m.panel.Delete(c.ID))
				return m, cmd
			}
			return m, nil
		}
		if task, ok := m.currentTask(); ok {
			cmd := m.run(m.board.DeleteTask(task.ID))
			return m, cmd
		}
		return m, nil

	case keymap.CmdReload:
		cmds := []tea.Cmd{m.run(m.board.Load())}
		if m.panel != nil {
			cmds = append(cmds, m.run(m.panel.Load()))
		}
		return m, tea.Batch(cmds...)

	case keymap.CmdNewComment:
		if m.panel == nil {
			cmd := m.setStatus("Open a task to comment on it", false)
			return m, cmd
		}
		m.commentInput.SetValue(m.panel.Input())
		m.enterCommentForm(keymap.ModeNewComment)
		return m, nil

	case keymap.CmdCopy:
		return m, m.copyCurrent()
	}

	return m, nil
}

func (m *Model) moveCursor(cmd keymap.Command) {
	cursor, n := &m.taskCursor, len(m.board.Tasks())
	if m.focus == PaneComments && m.panel != nil {
		cursor, n = &m.commentCursor, len(m.panel.Comments())
	}

	switch cmd {
	case keymap.CmdCursorDown:
		*cursor++
	case keymap.CmdCursorUp:
		*cursor--
	case keymap.CmdCursorTop:
		*cursor = 0
	case keymap.CmdCursorEnd:
		*cursor = n - 1
	}
	*cursor = clamp(*cursor, n)

	if m.focus == PaneComments {
		m.refreshDetail()
	}
}

func (m Model) editComment() (tea.Model, tea.Cmd) {
	c, ok := m.currentComment()
	if !ok {
		return m, nil
	}
	m.panel.Edit(c)
	m.commentInput.SetValue(c.Text)
	m.enterCommentForm(keymap.ModeEditComment)
	return m, nil
}

// copyCurrent copies the comment or task under the cursor.
func (m Model) copyCurrent() tea.Cmd {
	if m.focus == PaneComments {
		if c, ok := m.currentComment(); ok {
			return msg.Copy(c.Text, "comment")
		}
		return nil
	}
	task, ok := m.currentTask()
	if !ok {
		return nil
	}
	text := task.Title
	if strings.TrimSpace(task.Description) != "" {
		text += "\n\n" + task.Description
	}
	return msg.Copy(text, "\""+util.TruncateString(util.FirstLine(task.Title), 30)+"\"")
}

// -----------------------------------------------------------------------------
// Forms
// -----------------------------------------------------------------------------

func (m *Model) enterTaskForm(mode keymap.Mode) {
	m.mode = mode
	m.formField = view.FieldTitle
	m.descInput.Blur()
	m.titleInput.Focus()
	m.titleInput.CursorEnd()
	m.resize()
}

func (m *Model) enterCommentForm(mode keymap.Mode) {
	m.mode = mode
	m.focus = PaneComments
	m.commentInput.Focus()
	m.commentInput.CursorEnd()
	m.resize()
	m.refreshDetail()
}

// leaveForm returns to normal mode. Buffers are left as they are so an
// abandoned new task or comment can be picked up again.
func (m *Model) leaveForm() {
	m.mode = keymap.ModeNormal
	m.titleInput.Blur()
	m.descInput.Blur()
	m.commentInput.Blur()
	m.resize()
}

func (m Model) handleFormCommand(cmd keymap.Command, key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdCancel:
		switch m.mode {
		case keymap.ModeEditTask:
			m.board.CancelTaskEdit()
		case keymap.ModeEditComment:
			m.panel.Cancel()
		}
		m.leaveForm()
		m.refreshDetail()
		return m, nil

	case keymap.CmdNextField:
		if m.formField == view.FieldTitle {
			m.formField = view.FieldDescription
			m.titleInput.Blur()
			m.descInput.Focus()
		} else {
			m.formField = view.FieldTitle
			m.descInput.Blur()
			m.titleInput.Focus()
		}
		return m, nil

	case keymap.CmdInsertLine:
		// Enter in the single-line title field saves, like submitting a form
		isTaskForm := m.mode == keymap.ModeNewTask || m.mode == keymap.ModeEditTask
		if isTaskForm && m.formField == view.FieldTitle {
			return m.submitForm()
		}
		return m.forwardToInput(tea.KeyMsg{Type: tea.KeyEnter})

	case keymap.CmdSubmit:
		return m.submitForm()
	}

	return m.forwardToInput(key)
}

// submitForm turns the form into a job. Blank input sends nothing and
// keeps the form open.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.mode {
	case keymap.ModeNewTask:
		if job, ok := m.board.CreateTask(); ok {
			cmd := m.run(job)
			return m, cmd
		}
	case keymap.ModeEditTask:
		draft, ok := m.board.Draft()
		if !ok {
			return m, nil
		}
		if job, ok := m.board.SaveTaskEdit(draft.ID); ok {
			cmd := m.run(job)
			return m, cmd
		}
	case keymap.ModeNewComment:
		if job, ok := m.panel.Add(); ok {
			cmd := m.run(job)
			return m, cmd
		}
	case keymap.ModeEditComment:
		draft, ok := m.panel.Draft()
		if !ok {
			return m, nil
		}
		if job, ok := m.panel.Save(draft.ID); ok {
			cmd := m.run(job)
			return m, cmd
		}
	}
	return m, nil
}

// forwardToInput lets the focused text component handle key, then copies
// its value into the board or panel buffer it edits.
func (m Model) forwardToInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.mode {
	case keymap.ModeNewTask, keymap.ModeEditTask:
		if m.formField == view.FieldTitle {
			m.titleInput, cmd = m.titleInput.Update(key)
		} else {
			m.descInput, cmd = m.descInput.Update(key)
		}
		if m.mode == keymap.ModeNewTask {
			m.board.SetTitle(m.titleInput.Value())
			m.board.SetDescription(m.descInput.Value())
		} else {
			m.board.SetDraftTitle(m.titleInput.Value())
			m.board.SetDraftDescription(m.descInput.Value())
		}

	case keymap.ModeNewComment, keymap.ModeEditComment:
		m.commentInput, cmd = m.commentInput.Update(key)
		if m.mode == keymap.ModeNewComment {
			m.panel.SetInput(m.commentInput.Value())
		} else {
			m.panel.SetDraftText(m.commentInput.Value())
		}
	}

	return m, cmd
}
