package refresh

import (
	"context"
	"time"

	"github.com/Iron-Ham/taskboard/internal/api"
	"github.com/Iron-Ham/taskboard/internal/logging"
)

// Op names the user action a Job performs.
type Op string

const (
	OpLoadTasks     Op = "load_tasks"
	OpCreateTask    Op = "create_task"
	OpUpdateTask    Op = "update_task"
	OpDeleteTask    Op = "delete_task"
	OpLoadComments  Op = "load_comments"
	OpAddComment    Op = "add_comment"
	OpUpdateComment Op = "update_comment"
	OpDeleteComment Op = "delete_comment"
)

// IsTaskOp reports whether op acts on tasks.
func (op Op) IsTaskOp() bool {
	switch op {
	case OpLoadTasks, OpCreateTask, OpUpdateTask, OpDeleteTask:
		return true
	}
	return false
}

// IsMutation reports whether op changes server state.
func (op Op) IsMutation() bool {
	return op != OpLoadTasks && op != OpLoadComments
}

// Job is one user action: an optional mutation and what it invalidates.
type Job struct {
	Op Op
	// TaskID is the task the action concerns; it scopes TaskDetail and
	// Comments reloads. 0 when the action is not about one task.
	TaskID int
	// Target is the id of the entity mutated (task or comment), if any.
	Target      int
	Invalidates Invalidation
	// Mutate performs the write. Nil for pure reloads.
	Mutate func(ctx context.Context) error
}

// Fetch is the outcome of one reload.
type Fetch[T any] struct {
	Ticket Ticket
	Value  T
	Err    error
}

// Result is the outcome of running a Job.
type Result struct {
	Op     Op
	TaskID int
	Target int
	// Err is the mutation error. When set, nothing was reloaded.
	Err error

	Detail   *Fetch[api.Task]
	Comments *Fetch[[]api.Comment]
	Tasks    *Fetch[[]api.Task]
}

// Loader reads the collections a Job can invalidate.
type Loader interface {
	ListTasks(ctx context.Context) ([]api.Task, error)
	GetTask(ctx context.Context, id int) (api.Task, error)
	ListComments(ctx context.Context, taskID int) ([]api.Comment, error)
}

// Syncer runs Jobs.
type Syncer struct {
	loader  Loader
	tracker *Tracker
	logger  *logging.Logger
}

// NewSyncer creates a Syncer. tracker is shared with whoever applies the
// results.
func NewSyncer(loader Loader, tracker *Tracker, logger *logging.Logger) *Syncer {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Syncer{
		loader:  loader,
		tracker: tracker,
		logger:  logger.WithComponent("refresh"),
	}
}

// Tracker returns the tracker tickets are issued from.
func (s *Syncer) Tracker() *Tracker {
	return s.tracker
}

// Run performs job.Mutate and, if it succeeds, reloads the invalidated
// collections sequentially. Blocking; call it from a tea.Cmd.
func (s *Syncer) Run(ctx context.Context, job Job) Result {
	res := Result{Op: job.Op, TaskID: job.TaskID, Target: job.Target}
	log := s.logger.With("op", string(job.Op), "task_id", job.TaskID, "target", job.Target)
	start := time.Now()

	if job.Mutate != nil {
		if err := job.Mutate(ctx); err != nil {
			log.Warn("mutation failed", "error", err.Error())
			res.Err = err
			return res
		}
	}

	if job.TaskID != 0 && job.Invalidates.Has(TaskDetail) {
		tk := s.tracker.Begin(TaskResource(job.TaskID))
		task, err := s.loader.GetTask(ctx, job.TaskID)
		res.Detail = &Fetch[api.Task]{Ticket: tk, Value: task, Err: err}
	}

	if job.TaskID != 0 && job.Invalidates.Has(Comments) {
		tk := s.tracker.Begin(CommentsResource(job.TaskID))
		comments, err := s.loader.ListComments(ctx, job.TaskID)
		res.Comments = &Fetch[[]api.Comment]{Ticket: tk, Value: comments, Err: err}
	}

	if job.Invalidates.Has(Tasks) {
		tk := s.tracker.Begin(TaskList)
		tasks, err := s.loader.ListTasks(ctx)
		res.Tasks = &Fetch[[]api.Task]{Ticket: tk, Value: tasks, Err: err}
	}

	log.Debug("job finished",
		"invalidated", job.Invalidates.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res
}

// Accept reports whether a fetch is still the newest for its resource.
// A nil fetch is never accepted.
func Accept[T any](t *Tracker, f *Fetch[T]) bool {
	return f != nil && t.Accept(f.Ticket)
}
