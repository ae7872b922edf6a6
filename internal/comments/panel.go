// Package comments holds the state of the comment list of one task.
//
// A Panel is bound to a task id and a host scope. The scope names the
// host's collections that a comment mutation also makes stale: a panel
// embedded next to the task list uses refresh.Tasks|refresh.TaskDetail so
// comment counts and the selected task stay current, while a standalone
// panel uses 0 and only reloads its own list.
package comments

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
	MsgLoadFailed   = "Failed to load comments"
	MsgAddFailed    = "Failed to add comment"
	MsgUpdateFailed = "Failed to update comment"
	MsgDeleteFailed = "Failed to delete comment"
)

// Embedded is the scope of a panel hosted by the task board.
const Embedded = refresh.Tasks | refresh.TaskDetail

// API is the subset of the task API the panel writes through.
type API interface {
	CreateComment(ctx context.Context, taskID int, text string) (api.Comment, error)
	UpdateComment(ctx context.Context, id int, text string) (api.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

// ErrorSink owns the current error of a host. A panel reporting to a sink
// keeps no error of its own.
type ErrorSink interface {
	SetErr(msg string)
}

// Draft is the working copy of a comment being edited.
type Draft struct {
	ID   int
	Text string
}

// Panel is the comment list state container for one task.
type Panel struct {
	client  API
	tracker *refresh.Tracker
	logger  *logging.Logger
	sink    ErrorSink

	taskID   int
	scope    refresh.Invalidation
	comments []api.Comment
	draft    *Draft
	input    string
	err      string
	loading  bool
}

// New creates a panel for taskID. scope is added to the invalidation of
// every comment mutation.
func New(client API, tracker *refresh.Tracker, taskID int, scope refresh.Invalidation, logger *logging.Logger) *Panel {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Panel{
		client:   client,
		tracker:  tracker,
		logger:   logger.WithComponent("comments").WithTask(taskID),
		taskID:   taskID,
		scope:    scope,
		comments: []api.Comment{},
		loading:  true,
	}
}

// ReportTo sends the panel's errors to sink.
func (p *Panel) ReportTo(sink ErrorSink) { p.sink = sink }

// TaskID returns the task the panel is bound to.
func (p *Panel) TaskID() int { return p.taskID }

// Seed shows comments already known from a task payload until the first
// load completes.
func (p *Panel) Seed(comments []api.Comment) {
	if !p.loading {
		return
	}
	p.comments = append([]api.Comment(nil), comments...)
	p.loading = false
}

// Load returns the job that fetches the comment list.
func (p *Panel) Load() refresh.Job {
	return refresh.Job{Op: refresh.OpLoadComments, TaskID: p.taskID, Invalidates: refresh.Comments}
}

func (p *Panel) invalidates() refresh.Invalidation {
	return refresh.Comments | p.scope
}

// SetInput replaces the new-comment buffer.
func (p *Panel) SetInput(s string) { p.input = s }

// Add returns the job posting the input buffer as a new comment. It
// reports false when the buffer is blank.
func (p *Panel) Add() (refresh.Job, bool) {
	if strings.TrimSpace(p.input) == "" {
		return refresh.Job{}, false
	}
	taskID, text := p.taskID, p.input
	return refresh.Job{
		Op:          refresh.OpAddComment,
		TaskID:      taskID,
		Invalidates: p.invalidates(),
		Mutate: func(ctx context.Context) error {
			_, err := p.client.CreateComment(ctx, taskID, text)
			return err
		},
	}, true
}

// Edit starts editing c, replacing any other draft.
func (p *Panel) Edit(c api.Comment) {
	p.draft = &Draft{ID: c.ID, Text: c.Text}
}

// SetDraftText changes the draft. No-op when not editing.
func (p *Panel) SetDraftText(s string) {
	if p.draft != nil {
		p.draft.Text = s
	}
}

// Save returns the job sending the draft for comment id. It reports false
// when comment id is not being edited or the draft is blank.
func (p *Panel) Save(id int) (refresh.Job, bool) {
	if p.draft == nil || p.draft.ID != id || strings.TrimSpace(p.draft.Text) == "" {
		return refresh.Job{}, false
	}
	text := p.draft.Text
	return refresh.Job{
		Op:          refresh.OpUpdateComment,
		TaskID:      p.taskID,
		Target:      id,
		Invalidates: p.invalidates(),
		Mutate: func(ctx context.Context) error {
			_, err := p.client.UpdateComment(ctx, id, text)
			return err
		},
	}, true
}

// Cancel drops the draft.
func (p *Panel) Cancel() {
	p.draft = nil
}

// Delete returns the job deleting comment id.
func (p *Panel) Delete(id int) refresh.Job {
	return refresh.Job{
		Op:          refresh.OpDeleteComment,
		TaskID:      p.taskID,
		Target:      id,
		Invalidates: p.invalidates(),
		Mutate: func(ctx context.Context) error {
			return p.client.DeleteComment(ctx, id)
		},
	}
}

// Apply folds the outcome of a job into the panel. Results for other
// tasks and task jobs are ignored.
func (p *Panel) Apply(res refresh.Result) {
	if res.TaskID != p.taskID || res.Op.IsTaskOp() {
		return
	}
	if res.Op.IsMutation() {
		p.applyMutation(res)
	}

	f := res.Comments
	if f == nil {
		return
	}
	if !refresh.Accept(p.tracker, f) {
		p.logger.Debug("discarding stale comments", "seq", f.Ticket.Seq)
		return
	}
	p.loading = false
	if f.Err != nil {
		p.fail(MsgLoadFailed)
		p.logger.Warn("failed to load comments", "error", f.Err.Error())
		return
	}
	p.comments = f.Value
	p.succeed(res)
	if p.draft != nil && p.indexOf(p.draft.ID) < 0 {
		p.draft = nil
	}
}

func (p *Panel) applyMutation(res refresh.Result) {
	log := p.logger.With("op", string(res.Op), "comment_id", res.Target)

	if res.Err != nil {
		p.fail(failureMessage(res.Op))
		log.Warn("comment action failed", "error", res.Err.Error(), "status", errors.StatusCode(res.Err))
		return
	}
	p.succeed(res)

	switch res.Op {
	case refresh.OpAddComment:
		p.input = ""
	case refresh.OpUpdateComment, refresh.OpDeleteComment:
		if p.draft != nil && p.draft.ID == res.Target {
			p.draft = nil
		}
	}
	log.Info("comment action succeeded")
}

func (p *Panel) fail(msg string) {
	if p.sink != nil {
		p.sink.SetErr(msg)
		return
	}
	p.err = msg
}

// succeed clears the current error. When res also reloaded the host's task
// list, the host has already settled the error from that outcome.
func (p *Panel) succeed(res refresh.Result) {
	if p.sink == nil {
		p.err = ""
		return
	}
	if res.Tasks == nil {
		p.sink.SetErr("")
	}
}

func failureMessage(op refresh.Op) string {
	switch op {
	case refresh.OpAddComment:
		return MsgAddFailed
	case refresh.OpUpdateComment:
		return MsgUpdateFailed
	case refresh.OpDeleteComment:
		return MsgDeleteFailed
	}
	return MsgLoadFailed
}

func (p *Panel) indexOf(id int) int {
	for i, c := range p.comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Comments returns the comment list exactly as last fetched.
func (p *Panel) Comments() []api.Comment { return p.comments }

// Draft returns the in-progress edit, if any.
func (p *Panel) Draft() (Draft, bool) {
	if p.draft == nil {
		return Draft{}, false
	}
	return *p.draft, true
}

// Editing reports whether comment id is being edited.
func (p *Panel) Editing(id int) bool {
	return p.draft != nil && p.draft.ID == id
}

// Input returns the new-comment buffer.
func (p *Panel) Input() string { return p.input }

// Err returns the current error message, or "". Always "" for a panel
// reporting to a sink.
func (p *Panel) Err() string { return p.err }

// Loading reports whether the first comment load is still outstanding.
func (p *Panel) Loading() bool { return p.loading }
