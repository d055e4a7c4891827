package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avdeeva/task-tracker-bot/internal/model"
)

// CreateTask inserts a new active task for the owner. The task's local
// id is the owner's current task count plus one; running count and
// insert in one transaction keeps concurrent creates from assigning
// the same number.
func (s *SQLiteStore) CreateTask(
	ctx context.Context,
	ownerID int64,
	category model.Category,
	name string,
	deadline *time.Time,
) (model.Task, error) {
	if strings.TrimSpace(name) == "" {
		return model.Task{}, fmt.Errorf("task name must not be empty")
	}
	if !category.Valid() {
		return model.Task{}, fmt.Errorf("unknown category %q", category)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Task{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM tasks WHERE owner_id = ?", ownerID)
	if err != nil {
		return model.Task{}, fmt.Errorf("counting tasks for owner %d: %w", ownerID, err)
	}

	task := model.Task{
		OwnerID:   ownerID,
		LocalID:   count + 1,
		Category:  category,
		Name:      name,
		Deadline:  deadline,
		CreatedAt: time.Now().UTC(),
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO tasks (owner_id, local_id, category, name, deadline, completed, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)`,
		task.OwnerID, task.LocalID, string(task.Category), task.Name,
		task.Deadline, task.CreatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("creating task: %w", err)
	}

	task.ID, err = result.LastInsertId()
	if err != nil {
		return model.Task{}, fmt.Errorf("reading task id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Task{}, fmt.Errorf("committing task create: %w", err)
	}

	return task, nil
}

// ListActive returns the owner's uncompleted tasks ordered by local id.
func (s *SQLiteStore) ListActive(ctx context.Context, ownerID int64) ([]model.Task, error) {
	return s.listTasks(ctx, ownerID, false)
}

// ListCompleted returns the owner's completed tasks ordered by local id.
func (s *SQLiteStore) ListCompleted(ctx context.Context, ownerID int64) ([]model.Task, error) {
	return s.listTasks(ctx, ownerID, true)
}

func (s *SQLiteStore) listTasks(ctx context.Context, ownerID int64, completed bool) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, owner_id, local_id, category, name, deadline, completed, completed_at, created_at
		FROM tasks
		WHERE owner_id = ? AND completed = ?
		ORDER BY local_id ASC`,
		ownerID, boolToInt(completed),
	)
	if err != nil {
		return nil, fmt.Errorf("querying tasks for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// CompleteTask marks a task completed and stamps completed_at. Returns
// whether a row matched: false means the task does not exist or is
// owned by someone else, and nothing was changed.
func (s *SQLiteStore) CompleteTask(ctx context.Context, taskID, ownerID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET completed = 1, completed_at = ?
		WHERE id = ? AND owner_id = ?`,
		time.Now().UTC(), taskID, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("completing task %d: %w", taskID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("completing task %d: %w", taskID, err)
	}
	return rows > 0, nil
}

// RestoreTask returns a completed task to the active set, clearing
// completed_at. Same matched/no-op contract as CompleteTask.
func (s *SQLiteStore) RestoreTask(ctx context.Context, taskID, ownerID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET completed = 0, completed_at = NULL
		WHERE id = ? AND owner_id = ?`,
		taskID, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("restoring task %d: %w", taskID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("restoring task %d: %w", taskID, err)
	}
	return rows > 0, nil
}

// DeleteTask removes a task and renumbers the owner's remaining tasks
// by creation time so the local id set stays 1..N. Delete and renumber
// share one transaction: a crash between them can never leave a gap.
func (s *SQLiteStore) DeleteTask(ctx context.Context, taskID, ownerID int64) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND owner_id = ?", taskID, ownerID)
	if err != nil {
		return false, fmt.Errorf("deleting task %d: %w", taskID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting task %d: %w", taskID, err)
	}
	if rows == 0 {
		return false, nil
	}

	if err := renumberTasks(ctx, tx, ownerID); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing task delete: %w", err)
	}
	return true, nil
}

// renumberTasks reassigns local ids 1..N over the owner's tasks in
// creation order, with the storage id as tiebreaker for equal
// timestamps.
func renumberTasks(ctx context.Context, tx *sqlx.Tx, ownerID int64) error {
	var ids []int64
	err := tx.SelectContext(ctx, &ids,
		"SELECT id FROM tasks WHERE owner_id = ? ORDER BY created_at ASC, id ASC", ownerID)
	if err != nil {
		return fmt.Errorf("listing tasks for renumbering: %w", err)
	}

	for i, id := range ids {
		_, err := tx.ExecContext(ctx,
			"UPDATE tasks SET local_id = ? WHERE id = ?", i+1, id)
		if err != nil {
			return fmt.Errorf("renumbering task %d: %w", id, err)
		}
	}

	return nil
}

// scanTask scans a task row from a sqlx.Rows result set.
func scanTask(rows *sqlx.Rows) (model.Task, error) {
	var (
		task        model.Task
		category    string
		completed   int
		deadline    *time.Time
		completedAt *time.Time
	)

	err := rows.Scan(
		&task.ID, &task.OwnerID, &task.LocalID, &category, &task.Name,
		&deadline, &completed, &completedAt, &task.CreatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.Category = model.Category(category)
	task.Completed = completed != 0
	task.Deadline = deadline
	task.CompletedAt = completedAt

	return task, nil
}
