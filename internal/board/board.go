// Package board holds the state of the task list: the mirrored tasks, the
// selected task, the create form and the single in-progress edit.
//
// Board never talks to the network itself. Each action returns a
// refresh.Job; the caller runs it (off the UI goroutine) and hands the
// refresh.Result back to Apply. State only changes in Apply and in the
// purely local actions (typing, selecting, cancelling).
package board

import (
	"context"
	"strings"

	"github.com/Iron-Ham/taskboard/internal/api"
	"github.com/Iron-Ham/taskboard/internal/errors"
	"github.com/Iron-Ham/taskboard/internal/logging"
	"github.com/Iron-Ham/taskboard/internal/refresh"
)

// Messages shown when an action fails.
const (
	MsgLoadFailed   = "Unable to load tasks. Ensure the API server is running."
	MsgCreateFailed = "Failed to create task"
	MsgUpdateFailed = "Failed to update task"
	MsgDeleteFailed = "Failed to delete task"
)

// API is the subset of the task API the board writes through.
type API interface {
	CreateTask(ctx context.Context, in api.TaskInput) (api.Task, error)
	UpdateTask(ctx context.Context, id int, in api.TaskInput) (api.Task, error)
	DeleteTask(ctx context.Context, id int) error
}

// Draft is the working copy of a task being edited.
type Draft struct {
	ID          int
	Title       string
	Description string
}

// Form holds the create-task input buffers.
type Form struct {
	Title       string
	Description string
}

// Board is the task list state container.
type Board struct {
	client  API
	tracker *refresh.Tracker
	logger  *logging.Logger

	tasks    []api.Task
	selected *api.Task
	draft    *Draft
	form     Form
	err      string
	loading  bool
}

// New creates an empty Board in the loading state. tracker must be the
// one the refresh.Syncer running its jobs uses.
func New(client API, tracker *refresh.Tracker, logger *logging.Logger) *Board {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Board{
		client:  client,
		tracker: tracker,
		logger:  logger.WithComponent("board"),
		tasks:   []api.Task{},
		loading: true,
	}
}

// Load returns the job that fetches the task list.
func (b *Board) Load() refresh.Job {
	return refresh.Job{Op: refresh.OpLoadTasks, Invalidates: refresh.Tasks}
}

// SetTitle replaces the create form's title buffer.
func (b *Board) SetTitle(s string) { b.form.Title = s }

// SetDescription replaces the create form's description buffer.
func (b *Board) SetDescription(s string) { b.form.Description = s }

// CreateTask returns the job creating a task from the form buffers. It
// reports false, and nothing should be sent, when the title is blank.
func (b *Board) CreateTask() (refresh.Job, bool) {
	if strings.TrimSpace(b.form.Title) == "" {
		return refresh.Job{}, false
	}
	in := api.TaskInput{Title: b.form.Title, Description: b.form.Description}
	return refresh.Job{
		Op:          refresh.OpCreateTask,
		Invalidates: refresh.Tasks,
		Mutate: func(ctx context.Context) error {
			_, err := b.client.CreateTask(ctx, in)
			return err
		},
	}, true
}

// EditTask starts editing task, replacing any other draft. Selection is
// not affected.
func (b *Board) EditTask(task api.Task) {
	b.draft = &Draft{ID: task.ID, Title: task.Title, Description: task.Description}
}

// SetDraftTitle changes the draft's title. No-op when not editing.
func (b *Board) SetDraftTitle(s string) {
	if b.draft != nil {
		b.draft.Title = s
	}
}

// SetDraftDescription changes the draft's description. No-op when not editing.
func (b *Board) SetDraftDescription(s string) {
	if b.draft != nil {
		b.draft.Description = s
	}
}

// SaveTaskEdit returns the job sending the draft for task id. It reports
// false when task id is not being edited or the draft title is blank.
func (b *Board) SaveTaskEdit(id int) (refresh.Job, bool) {
	if b.draft == nil || b.draft.ID != id || strings.TrimSpace(b.draft.Title) == "" {
		return refresh.Job{}, false
	}

	inv := refresh.Tasks
	if b.selected != nil && b.selected.ID == id {
		inv |= refresh.TaskDetail
	}
	in := api.TaskInput{Title: b.draft.Title, Description: b.draft.Description}
	return refresh.Job{
		Op:          refresh.OpUpdateTask,
		TaskID:      id,
		Target:      id,
		Invalidates: inv,
		Mutate: func(ctx context.Context) error {
			_, err := b.client.UpdateTask(ctx, id, in)
			return err
		},
	}, true
}

// CancelTaskEdit drops the draft.
func (b *Board) CancelTaskEdit() {
	b.draft = nil
}

// DeleteTask returns the job deleting task id.
func (b *Board) DeleteTask(id int) refresh.Job {
	return refresh.Job{
		Op:          refresh.OpDeleteTask,
		TaskID:      id,
		Target:      id,
		Invalidates: refresh.Tasks,
		Mutate: func(ctx context.Context) error {
			return b.client.DeleteTask(ctx, id)
		},
	}
}

// SelectTask makes a snapshot of task the selection.
func (b *Board) SelectTask(task api.Task) {
	snap := task.Clone()
	b.selected = &snap
}

// ClearSelection deselects the current task.
func (b *Board) ClearSelection() {
	b.selected = nil
}

// Apply folds the outcome of a job into the board. Results of comment jobs
// are accepted too; only their task list and task detail reloads matter here.
func (b *Board) Apply(res refresh.Result) {
	if res.Op.IsTaskOp() && res.Op.IsMutation() {
		b.applyMutation(res)
	}
	b.applyDetail(res)
	b.applyTasks(res)
}

func (b *Board) applyMutation(res refresh.Result) {
	log := b.logger.With("op", string(res.Op), "task_id", res.Target)

	if res.Err != nil {
		b.err = failureMessage(res.Op)
		log.Warn("task action failed", "error", res.Err.Error(), "status", errors.StatusCode(res.Err))
		return
	}
	b.err = ""

	switch res.Op {
	case refresh.OpCreateTask:
		b.form = Form{}
	case refresh.OpUpdateTask:
		if b.draft != nil && b.draft.ID == res.Target {
			b.draft = nil
		}
	case refresh.OpDeleteTask:
		if b.selected != nil && b.selected.ID == res.Target {
			b.selected = nil
		}
		if b.draft != nil && b.draft.ID == res.Target {
			b.draft = nil
		}
	}
	log.Info("task action succeeded")
}

func (b *Board) applyDetail(res refresh.Result) {
	f := res.Detail
	if f == nil {
		return
	}
	if !refresh.Accept(b.tracker, f) {
		b.logger.Debug("discarding stale task detail", "task_id", res.TaskID, "seq", f.Ticket.Seq)
		return
	}
	if b.selected == nil || b.selected.ID != res.TaskID {
		return
	}

	switch {
	case f.Err == nil:
		snap := f.Value.Clone()
		b.selected = &snap
	case errors.IsNotFound(f.Err):
		b.logger.Info("selected task no longer exists", "task_id", res.TaskID)
		b.selected = nil
	default:
		b.logger.Warn("failed to refresh selected task", "task_id", res.TaskID, "error", f.Err.Error())
	}
}

func (b *Board) applyTasks(res refresh.Result) {
	f := res.Tasks
	if f == nil {
		return
	}
	if !refresh.Accept(b.tracker, f) {
		b.logger.Debug("discarding stale task list", "seq", f.Ticket.Seq)
		return
	}
	b.loading = false

	if f.Err != nil {
		b.err = MsgLoadFailed
		b.logger.Warn("failed to load tasks", "error", f.Err.Error())
		return
	}

	b.tasks = f.Value
	b.err = ""
	if b.selected != nil && b.indexOf(b.selected.ID) < 0 {
		b.selected = nil
	}
	if b.draft != nil && b.indexOf(b.draft.ID) < 0 {
		b.draft = nil
	}
	b.logger.Debug("tasks loaded", "count", len(f.Value))
}

func failureMessage(op refresh.Op) string {
	switch op {
	case refresh.OpCreateTask:
		return MsgCreateFailed
	case refresh.OpUpdateTask:
		return MsgUpdateFailed
	case refresh.OpDeleteTask:
		return MsgDeleteFailed
	}
	return MsgLoadFailed
}

func (b *Board) indexOf(id int) int {
	for i, t := range b.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Tasks returns the task list exactly as last fetched.
func (b *Board) Tasks() []api.Task { return b.tasks }

// Task returns the task with id from the list.
func (b *Board) Task(id int) (api.Task, bool) {
	if i := b.indexOf(id); i >= 0 {
		return b.tasks[i], true
	}
	return api.Task{}, false
}

// Selected returns the selection snapshot, if any.
func (b *Board) Selected() (api.Task, bool) {
	if b.selected == nil {
		return api.Task{}, false
	}
	return *b.selected, true
}

// Draft returns the in-progress edit, if any.
func (b *Board) Draft() (Draft, bool) {
	if b.draft == nil {
		return Draft{}, false
	}
	return *b.draft, true
}

// Editing reports whether task id is being edited.
func (b *Board) Editing(id int) bool {
	return b.draft != nil && b.draft.ID == id
}

// Form returns the create form buffers.
func (b *Board) Form() Form { return b.form }

// Err returns the current error message, or "".
func (b *Board) Err() string { return b.err }

// SetErr replaces the current error message. Comment panels hosted next to
// the board report through it so the page has a single current error.
func (b *Board) SetErr(msg string) { b.err = msg }

// Loading reports whether the first task list load is still outstanding.
func (b *Board) Loading() bool { return b.loading }
