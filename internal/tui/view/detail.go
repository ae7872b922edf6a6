package view

import (
	"strings"

	"github.com/Iron-Ham/taskboard/internal/api"
	"github.com/Iron-Ham/taskboard/internal/tui/styles"
	"github.com/Iron-Ham/taskboard/internal/util"
	"github.com/charmbracelet/lipgloss"
)

// Fixed texts of the detail pane.
const (
	MsgNoSelection     = "Select a task to see its details."
	MsgNoDescription   = "No description"
	MsgLoadingComments = "Loading comments..."
	MsgNoComments      = "No comments yet. Add one above!"
)

// DetailState holds what RenderDetail needs.
type DetailState struct {
	Task api.Task
	// Description is the task description, already rendered by the caller
	// (markdown or plain).
	Description string
	Comments    []api.Comment
	Cursor      int
	Focused     bool
	Loading     bool
	Err         string
	EditingID   int // comment with an in-progress edit, 0 for none
	TimeFormat  string
	Width       int
}

// RenderDetail renders the open task and its comments. It also returns
// the line the comment cursor sits on so the caller can scroll to it.
func RenderDetail(state DetailState) (string, int) {
	s := styles.GetActiveTheme()
	width := state.Width
	if width < 10 {
		width = 10
	}
	wrap := lipgloss.NewStyle().Width(width)

	var lines []string
	add := func(block string) {
		lines = append(lines, strings.Split(block, "\n")...)
	}

	add(s.Title.UnsetMarginBottom().Render(wrap.Render(state.Task.Title)))
	add("")
	if strings.TrimSpace(state.Description) == "" {
		add(s.Placeholder.Render(MsgNoDescription))
	} else {
		add(state.Description)
	}
	add("")
	heading := s.PaneTitle.Render("Comments")
	if !state.Loading {
		heading += s.Muted.Render(" · " + util.Pluralize(len(state.Comments), "comment", "comments"))
	}
	add(heading)

	if state.Err != "" {
		add(s.ErrorMsg.Render(state.Err))
	}

	cursorLine := 0
	switch {
	case state.Loading:
		add(s.Placeholder.Render(MsgLoadingComments))
	case len(state.Comments) == 0:
		add(s.Placeholder.Render(MsgNoComments))
	default:
		for i, c := range state.Comments {
			add("")
			if i == state.Cursor {
				cursorLine = len(lines)
			}
			add(renderComment(state, i, c, width))
		}
	}

	return strings.Join(lines, "\n"), cursorLine
}

func renderComment(state DetailState, i int, c api.Comment, width int) string {
	s := styles.GetActiveTheme()

	marker := "  "
	textStyle := s.CommentText
	if i == state.Cursor && state.Focused {
		marker = "> "
		textStyle = s.CommentSelected
	}

	text := lipgloss.NewStyle().Width(width - len(marker)).Render(c.Text)
	text = textStyle.Render(text)

	meta := c.CreatedAt.Display(state.TimeFormat)
	if c.ID == state.EditingID {
		meta = strings.TrimSpace(meta + " (editing)")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, marker, text) + "\n" +
		"  " + s.CommentMeta.Render(meta)
}

// RenderEmptyDetail renders the detail pane when no task is open.
func RenderEmptyDetail() string {
	return styles.GetActiveTheme().Placeholder.Render(MsgNoSelection)
}
