// AngelaMos | 2026
// repository.go

package performance

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/studyplanner/internal/calendar"
	"github.com/carterperez-dev/studyplanner/internal/core"
)

const statusCompleted = "Completed"

type Repository interface {
	CountTasks(ctx context.Context, userID, subjectID string) (total, completed int, err error)
	CompletedMinutes(ctx context.Context, userID, subjectID string) (int, error)
	Upsert(ctx context.Context, perf *Performance) (*Performance, error)
	ListByUser(ctx context.Context, userID string) ([]SubjectPerformance, error)
	SubjectIDs(ctx context.Context, userID string) ([]string, error)
	Totals(ctx context.Context, userID string) (subjects, tasks, completed int, err error)
}

type slot struct {
	StartTime calendar.Clock `db:"start_time"`
	EndTime   calendar.Clock `db:"end_time"`
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CountTasks(
	ctx context.Context,
	userID, subjectID string,
) (int, int, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed
		FROM tasks
		WHERE user_id = ? AND subject_id = ?`

	var counts struct {
		Total     int `db:"total"`
		Completed int `db:"completed"`
	}
	err := r.db.GetContext(ctx, &counts, r.db.Rebind(query),
		statusCompleted,
		userID,
		subjectID,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("count tasks: %w", err)
	}

	return counts.Total, counts.Completed, nil
}

// CompletedMinutes sums the scheduled time of the subject's completed tasks.
func (r *repository) CompletedMinutes(
	ctx context.Context,
	userID, subjectID string,
) (int, error) {
	query := `
		SELECT s.start_time, s.end_time
		FROM schedules s
		JOIN tasks t ON t.id = s.task_id
		WHERE s.user_id = ? AND t.subject_id = ? AND t.status = ?`

	var slots []slot
	err := r.db.SelectContext(ctx, &slots, r.db.Rebind(query),
		userID,
		subjectID,
		statusCompleted,
	)
	if err != nil {
		return 0, fmt.Errorf("list completed slots: %w", err)
	}

	minutes := 0
	for _, s := range slots {
		minutes += calendar.Interval{Start: s.StartTime, End: s.EndTime}.Minutes()
	}

	return minutes, nil
}

// Upsert writes the row for (user_id, subject_id) and returns what is
// stored, which keeps the original id when the row already existed.
func (r *repository) Upsert(
	ctx context.Context,
	perf *Performance,
) (*Performance, error) {
	query := `
		INSERT INTO performances (
			id, user_id, subject_id, progress, completion_time, last_updated
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, subject_id) DO UPDATE SET
			progress = excluded.progress,
			completion_time = excluded.completion_time,
			last_updated = excluded.last_updated`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		perf.ID,
		perf.UserID,
		perf.SubjectID,
		perf.Progress,
		perf.CompletionTime,
		perf.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert performance: %w", err)
	}

	selectQuery := `
		SELECT id, user_id, subject_id, progress, completion_time, last_updated
		FROM performances
		WHERE user_id = ? AND subject_id = ?`

	var stored Performance
	err = r.db.GetContext(ctx, &stored, r.db.Rebind(selectQuery),
		perf.UserID,
		perf.SubjectID,
	)
	if err != nil {
		return nil, core.MapNoRows("read performance", err)
	}

	return &stored, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]SubjectPerformance, error) {
	query := `
		SELECT
			p.id, p.user_id, p.subject_id, p.progress, p.completion_time,
			p.last_updated,
			s.name AS subject_name,
			(SELECT COUNT(*) FROM tasks t
				WHERE t.subject_id = p.subject_id AND t.user_id = p.user_id
			) AS total_tasks,
			(SELECT COUNT(*) FROM tasks t
				WHERE t.subject_id = p.subject_id AND t.user_id = p.user_id
					AND t.status = ?
			) AS completed_tasks
		FROM performances p
		JOIN subjects s ON s.id = p.subject_id
		WHERE p.user_id = ?
		ORDER BY s.name, s.created_at`

	perfs := []SubjectPerformance{}
	err := r.db.SelectContext(ctx, &perfs, r.db.Rebind(query),
		statusCompleted,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}

	return perfs, nil
}

func (r *repository) SubjectIDs(
	ctx context.Context,
	userID string,
) ([]string, error) {
	query := `SELECT id FROM subjects WHERE user_id = ? ORDER BY created_at`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, r.db.Rebind(query), userID); err != nil {
		return nil, fmt.Errorf("list subject ids: %w", err)
	}

	return ids, nil
}

func (r *repository) Totals(
	ctx context.Context,
	userID string,
) (int, int, int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM subjects WHERE user_id = ?) AS subjects,
			(SELECT COUNT(*) FROM tasks WHERE user_id = ?) AS tasks,
			(SELECT COUNT(*) FROM tasks WHERE user_id = ? AND status = ?) AS completed`

	var totals struct {
		Subjects  int `db:"subjects"`
		Tasks     int `db:"tasks"`
		Completed int `db:"completed"`
	}
	err := r.db.GetContext(ctx, &totals, r.db.Rebind(query),
		userID,
		userID,
		userID,
		statusCompleted,
	)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("count totals: %w", err)
	}

	return totals.Subjects, totals.Tasks, totals.Completed, nil
}
