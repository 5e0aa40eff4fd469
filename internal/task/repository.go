// AngelaMos | 2026
// repository.go

package task

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/studyplanner/internal/core"
)

type Repository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	ListByUser(ctx context.Context, userID string) ([]TaskWithSubject, error)
	ListUpcoming(ctx context.Context, userID string, limit int) ([]TaskWithSubject, error)
	ListSchedulable(ctx context.Context, userID string) ([]TaskWithSubject, error)
	Update(ctx context.Context, task *Task) error
	UpdateStatus(ctx context.Context, id string, status Status, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const taskColumns = `id, user_id, subject_id, title, description, deadline,
		status, priority, created_at, updated_at`

const joinedColumns = `t.id, t.user_id, t.subject_id, t.title, t.description,
		t.deadline, t.status, t.priority, t.created_at, t.updated_at,
		s.name AS subject_name`

func (r *repository) Create(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		task.ID,
		task.UserID,
		task.SubjectID,
		task.Title,
		task.Description,
		task.Deadline,
		task.Status,
		task.Priority,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	var task Task
	if err := r.db.GetContext(ctx, &task, r.db.Rebind(query), id); err != nil {
		return nil, core.MapNoRows("get task", err)
	}

	return &task, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]TaskWithSubject, error) {
	query := `
		SELECT ` + joinedColumns + `
		FROM tasks t
		JOIN subjects s ON s.id = t.subject_id
		WHERE t.user_id = ?
		ORDER BY t.deadline, t.created_at`

	return r.selectJoined(ctx, "list tasks", query, userID)
}

func (r *repository) ListUpcoming(
	ctx context.Context,
	userID string,
	limit int,
) ([]TaskWithSubject, error) {
	query := `
		SELECT ` + joinedColumns + `
		FROM tasks t
		JOIN subjects s ON s.id = t.subject_id
		WHERE t.user_id = ?
		ORDER BY t.deadline, t.created_at
		LIMIT ?`

	return r.selectJoined(ctx, "list upcoming tasks", query, userID, limit)
}

// ListSchedulable returns the tasks that can still be placed on the
// calendar, nearest deadline first.
func (r *repository) ListSchedulable(
	ctx context.Context,
	userID string,
) ([]TaskWithSubject, error) {
	query := `
		SELECT ` + joinedColumns + `
		FROM tasks t
		JOIN subjects s ON s.id = t.subject_id
		WHERE t.user_id = ? AND t.status IN (?, ?)
		ORDER BY t.deadline, t.created_at`

	return r.selectJoined(
		ctx,
		"list schedulable tasks",
		query,
		userID,
		StatusPending,
		StatusInProgress,
	)
}

func (r *repository) selectJoined(
	ctx context.Context,
	op, query string,
	args ...any,
) ([]TaskWithSubject, error) {
	tasks := []TaskWithSubject{}
	if err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tasks, nil
}

func (r *repository) Update(ctx context.Context, task *Task) error {
	query := `
		UPDATE tasks
		SET subject_id = ?, title = ?, description = ?, deadline = ?,
			status = ?, priority = ?, updated_at = ?
		WHERE id = ?`

	task.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		task.SubjectID,
		task.Title,
		task.Description,
		task.Deadline,
		task.Status,
		task.Priority,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	return core.RequireAffected("update task", result)
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id string,
	status Status,
	at time.Time,
) error {
	query := `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(
		ctx,
		r.db.Rebind(query),
		status,
		at,
		id,
	)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	return core.RequireAffected("update task status", result)
}

// Delete removes the task and, through the foreign key, its schedule slots.
func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	return core.RequireAffected("delete task", result)
}
