// Package refresh runs a mutation against the task API and then reloads
// exactly the collections the mutation made stale.
//
// Every user action is described by a Job: an optional mutation plus the
// set of collections it invalidates. Syncer.Run performs the mutation and,
// only if it succeeded, refetches the invalidated collections one after
// another in a fixed order (task detail, comments, task list). Each fetch
// is stamped with a Ticket from a Tracker so that a response overtaken by a
// newer request for the same resource can be recognized and dropped.
package refresh

import (
	"fmt"
	"strings"
)

// Invalidation is a set of locally mirrored collections that must be
// reloaded before they can be trusted again.
type Invalidation uint8

const (
	// Tasks is the full task list.
	Tasks Invalidation = 1 << iota
	// TaskDetail is the single task currently selected.
	TaskDetail
	// Comments is the comment list of one task.
	Comments
)

// Has reports whether every collection in o is in i.
func (i Invalidation) Has(o Invalidation) bool {
	return o != 0 && i&o == o
}

// String returns a "|" separated list such as "task_detail|tasks".
func (i Invalidation) String() string {
	if i == 0 {
		return "none"
	}
	var parts []string
	if i.Has(TaskDetail) {
		parts = append(parts, "task_detail")
	}
	if i.Has(Comments) {
		parts = append(parts, "comments")
	}
	if i.Has(Tasks) {
		parts = append(parts, "tasks")
	}
	return strings.Join(parts, "|")
}

// Resource names one refetchable collection.
type Resource string

// TaskList is the resource key of the task list.
const TaskList Resource = "tasks"

// TaskResource is the resource key of task id.
func TaskResource(id int) Resource {
	return Resource(fmt.Sprintf("task/%d", id))
}

// CommentsResource is the resource key of the comments of task id.
func CommentsResource(taskID int) Resource {
	return Resource(fmt.Sprintf("comments/%d", taskID))
}
