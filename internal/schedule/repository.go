// AngelaMos | 2026
// repository.go

package schedule

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/studyplanner/internal/calendar"
	"github.com/carterperez-dev/studyplanner/internal/core"
)

type Repository interface {
	Create(ctx context.Context, s *Schedule) error
	GetByID(ctx context.Context, id string) (*Schedule, error)
	ListByUserDate(ctx context.Context, userID string, date calendar.Date) ([]Schedule, error)
	ListByUser(ctx context.Context, userID string) ([]ScheduleWithTask, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const scheduleColumns = `id, user_id, task_id, date, start_time, end_time, created_at`

func (r *repository) Create(ctx context.Context, s *Schedule) error {
	query := `
		INSERT INTO schedules (` + scheduleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		s.ID,
		s.UserID,
		s.TaskID,
		s.Date,
		s.StartTime,
		s.EndTime,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = ?`

	var s Schedule
	if err := r.db.GetContext(ctx, &s, r.db.Rebind(query), id); err != nil {
		return nil, core.MapNoRows("get schedule", err)
	}

	return &s, nil
}

func (r *repository) ListByUserDate(
	ctx context.Context,
	userID string,
	date calendar.Date,
) ([]Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE user_id = ? AND date = ?
		ORDER BY start_time`

	slots := []Schedule{}
	if err := r.db.SelectContext(ctx, &slots, r.db.Rebind(query), userID, date); err != nil {
		return nil, fmt.Errorf("list schedules for date: %w", err)
	}

	return slots, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]ScheduleWithTask, error) {
	query := `
		SELECT
			sc.id, sc.user_id, sc.task_id, sc.date, sc.start_time,
			sc.end_time, sc.created_at,
			t.title AS task_title,
			t.status AS task_status,
			su.name AS subject_name
		FROM schedules sc
		JOIN tasks t ON t.id = sc.task_id
		JOIN subjects su ON su.id = t.subject_id
		WHERE sc.user_id = ?
		ORDER BY sc.date, sc.start_time`

	slots := []ScheduleWithTask{}
	if err := r.db.SelectContext(ctx, &slots, r.db.Rebind(query), userID); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	return slots, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM schedules WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}

	return core.RequireAffected("delete schedule", result)
}
