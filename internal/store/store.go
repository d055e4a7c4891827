package store

import (
	"context"
	"time"

	"github.com/avdeeva/task-tracker-bot/internal/model"
)

// Store defines the persistence interface for tasks and users.
//
// Every task operation is scoped by the owning user: mutations match on
// both the task id and the owner id, and report a non-match as a false
// return rather than an error, so the caller cannot distinguish a
// missing task from someone else's task.
type Store interface {
	// UpsertUser records a user on first contact. Repeated calls
	// refresh the name fields and leave created_at untouched.
	UpsertUser(ctx context.Context, user model.User) error

	// CreateTask inserts a new active task and assigns it the next
	// dense per-owner local id.
	CreateTask(ctx context.Context, ownerID int64, category model.Category, name string, deadline *time.Time) (model.Task, error)

	// ListActive returns the owner's uncompleted tasks ordered by
	// local id ascending.
	ListActive(ctx context.Context, ownerID int64) ([]model.Task, error)

	// ListCompleted returns the owner's completed tasks ordered by
	// local id ascending.
	ListCompleted(ctx context.Context, ownerID int64) ([]model.Task, error)

	// CompleteTask marks the task completed and stamps completed_at.
	CompleteTask(ctx context.Context, taskID, ownerID int64) (bool, error)

	// RestoreTask returns a completed task to the active set and
	// clears completed_at.
	RestoreTask(ctx context.Context, taskID, ownerID int64) (bool, error)

	// DeleteTask removes the task and renumbers the owner's remaining
	// tasks by creation time so local ids stay dense. Delete and
	// renumber run in one transaction.
	DeleteTask(ctx context.Context, taskID, ownerID int64) (bool, error)
}
