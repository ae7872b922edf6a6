package tui

import (
	"strings"

	"github.com/Iron-Ham/taskboard/internal/tui/keymap"
	"github.com/Iron-Ham/taskboard/internal/tui/styles"
	"github.com/Iron-Ham/taskboard/internal/tui/view"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	defaultWidth  = 100 // used until the first WindowSizeMsg
	defaultHeight = 30

	narrowWidth   = 80 // below this the panes stack vertically
	minListWidth  = 28
	paneChrome    = 4 // border (2) + padding (2)
	chromeHeight  = 6 // header, help bar with margin, status line, pane borders
	taskFormRows  = 11
	commentRows   = 6
	minBodyHeight = 5
)

// size returns the terminal size, falling back to defaults before the
// first WindowSizeMsg.
func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m Model) narrow() bool {
	w, _ := m.size()
	return w < narrowWidth
}

// paneWidths returns the outer widths of the task list and detail panes.
func (m Model) paneWidths() (int, int) {
	w, _ := m.size()
	if m.narrow() {
		return w, w
	}
	list := w * 2 / 5
	if list < minListWidth {
		list = minListWidth
	}
	return list, w - list
}

// bodyHeight returns the rows left for the panes, inner of their borders.
func (m Model) bodyHeight() int {
	_, h := m.size()
	body := h - chromeHeight
	if m.board.Err() != "" {
		body--
	}
	if m.mode == keymap.ModeNewTask || m.mode == keymap.ModeEditTask {
		body -= taskFormRows
	}
	if m.narrow() {
		body = body/2 - 1
	}
	if body < minBodyHeight {
		body = minBodyHeight
	}
	return body
}

// detailHeight returns the rows of the detail viewport.
func (m Model) detailHeight() int {
	h := m.bodyHeight()
	if m.mode == keymap.ModeNewComment || m.mode == keymap.ModeEditComment {
		h -= commentRows
	}
	if h < 1 {
		h = 1
	}
	return h
}

// resize propagates the terminal size to the text inputs and the viewport.
func (m *Model) resize() {
	_, detailOuter := m.paneWidths()
	w, _ := m.size()

	m.titleInput.Width = w - 8
	m.descInput.SetWidth(w - 6)
	m.commentInput.SetWidth(detailOuter - paneChrome)

	m.detail.Width = detailOuter - paneChrome
	m.detail.Height = m.detailHeight()

	m.refreshDetail()
}

// refreshDetail rebuilds the detail viewport content from the selected task
// and the comment panel, and scrolls the comment cursor into view.
func (m *Model) refreshDetail() {
	sel, ok := m.board.Selected()
	if !ok || m.panel == nil {
		m.detail.SetContent(view.RenderEmptyDetail())
		m.detail.GotoTop()
		return
	}

	width := m.detail.Width
	if width <= 0 {
		_, outer := m.paneWidths()
		width = outer - paneChrome
	}

	desc := sel.Description
	if strings.TrimSpace(desc) != "" {
		if m.renderMarkdown {
			desc = m.markdown.Render(desc, styles.GetActiveTheme().GlamourStyle, width)
		} else {
			desc = lipgloss.NewStyle().Width(width).Render(desc)
		}
	}

	editing := 0
	if d, ok := m.panel.Draft(); ok {
		editing = d.ID
	}

	content, line := view.RenderDetail(view.DetailState{
		Task:        sel,
		Description: desc,
		Comments:    m.panel.Comments(),
		Cursor:      m.commentCursor,
		Focused:     m.focus == PaneComments,
		Loading:     m.panel.Loading(),
		Err:         m.panel.Err(),
		EditingID:   editing,
		TimeFormat:  m.timeFormat,
		Width:       width,
	})
	m.detail.SetContent(content)

	if m.focus != PaneComments || m.detail.Height <= 0 {
		return
	}
	switch {
	case line < m.detail.YOffset:
		m.detail.SetYOffset(line)
	case line+2 >= m.detail.YOffset+m.detail.Height:
		m.detail.SetYOffset(line + 3 - m.detail.Height)
	}
}

// View renders the whole screen.
func (m Model) View() string {
	w, _ := m.size()
	s := styles.GetActiveTheme()

	if m.showHelp {
		return view.RenderHelp(m.keymap, w)
	}

	header := s.Title.UnsetMarginBottom().Render("Taskboard") + "  " +
		view.RenderModeIndicator(m.mode, m.focus == PaneComments)
	if m.busy() {
		header += " " + m.spinner.View()
	}
	sections := []string{header}

	if err := m.board.Err(); err != "" {
		sections = append(sections, s.ErrorMsg.Render(err))
	}

	switch m.mode {
	case keymap.ModeNewTask, keymap.ModeEditTask:
		heading := "New task"
		if m.mode == keymap.ModeEditTask {
			heading = "Edit task"
		}
		sections = append(sections, view.RenderTaskForm(view.TaskFormState{
			Heading:     heading,
			Title:       m.titleInput.View(),
			Description: m.descInput.View(),
			Field:       m.formField,
			Width:       w,
		}))
	}

	sections = append(sections, m.renderBody())

	sections = append(sections, view.RenderHelpBar(view.HelpBarState{
		Keymap:          m.keymap,
		Mode:            m.mode,
		TaskOpen:        m.panel != nil,
		CommentsFocused: m.focus == PaneComments,
		Width:           w,
	}))

	if m.status != "" {
		style := s.SuccessMsg
		if m.statusErr {
			style = s.ErrorMsg
		}
		sections = append(sections, style.Render(m.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBody renders the task list pane next to (or above) the detail pane.
func (m Model) renderBody() string {
	s := styles.GetActiveTheme()
	listOuter, detailOuter := m.paneWidths()
	bodyH := m.bodyHeight()

	editingTask := 0
	if d, ok := m.board.Draft(); ok {
		editingTask = d.ID
	}
	openID := 0
	if sel, ok := m.board.Selected(); ok {
		openID = sel.ID
	}

	listStyle, detailStyle := s.Pane, s.Pane
	if m.focus == PaneTasks {
		listStyle = s.PaneFocused
	} else {
		detailStyle = s.PaneFocused
	}

	list := listStyle.Width(listOuter - 2).Height(bodyH).Render(
		view.RenderTaskList(view.TaskListState{
			Tasks:     m.board.Tasks(),
			Cursor:    m.taskCursor,
			OpenID:    openID,
			EditingID: editingTask,
			Loading:   m.board.Loading(),
			Focused:   m.focus == PaneTasks && !m.mode.IsForm(),
			Width:     listOuter - paneChrome,
			Height:    bodyH - 2,
		}),
	)

	detail := m.detail
	detail.Height = m.detailHeight()
	right := detail.View()
	if m.mode == keymap.ModeNewComment || m.mode == keymap.ModeEditComment {
		heading := "New comment"
		if m.mode == keymap.ModeEditComment {
			heading = "Edit comment"
		}
		right = lipgloss.JoinVertical(lipgloss.Left, right, view.RenderCommentForm(view.CommentFormState{
			Heading: heading,
			Text:    m.commentInput.View(),
			Width:   detailOuter - paneChrome,
		}))
	}
	detailPane := detailStyle.Width(detailOuter - 2).Height(bodyH).Render(right)

	if m.narrow() {
		return lipgloss.JoinVertical(lipgloss.Left, list, detailPane)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detailPane)
}
