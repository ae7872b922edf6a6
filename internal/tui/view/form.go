package view

import (
	"strings"

	"github.com/Iron-Ham/taskboard/internal/tui/styles"
)

// Form field indexes of the task form.
const (
	FieldTitle = iota
	FieldDescription
)

// TaskFormState holds the rendered inputs of the task form.
type TaskFormState struct {
	Heading     string // "New task" or "Edit task"
	Title       string // textinput View()
	Description string // textarea View()
	Field       int
	Width       int
}

// RenderTaskForm renders the create or edit task box.
func RenderTaskForm(state TaskFormState) string {
	s := styles.GetActiveTheme()

	label := func(text string, field int) string {
		if field == state.Field {
			return s.FormLabelActive.Render(text)
		}
		return s.FormLabel.Render(text)
	}

	body := strings.Join([]string{
		s.PaneTitle.Render(state.Heading),
		label("Title", FieldTitle),
		state.Title,
		label("Description", FieldDescription),
		state.Description,
	}, "\n")

	box := s.FormBox
	if state.Width > 4 {
		box = box.Width(state.Width - 2)
	}
	return box.Render(body)
}

// CommentFormState holds the rendered input of the comment form.
type CommentFormState struct {
	Heading string // "New comment" or "Edit comment"
	Text    string // textarea View()
	Width   int
}

// RenderCommentForm renders the add or edit comment box.
func RenderCommentForm(state CommentFormState) string {
	s := styles.GetActiveTheme()
	box := s.FormBox
	if state.Width > 4 {
		box = box.Width(state.Width - 2)
	}
	return box.Render(s.PaneTitle.Render(state.Heading) + "\n" + state.Text)
}
