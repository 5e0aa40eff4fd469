// AngelaMos | 2026
// repository.go

package subject

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/studyplanner/internal/core"
)

type Repository interface {
	Create(ctx context.Context, subject *Subject) error
	GetByID(ctx context.Context, id string) (*Subject, error)
	ListByUser(ctx context.Context, userID string) ([]Subject, error)
	Update(ctx context.Context, subject *Subject) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const subjectColumns = `id, user_id, name, difficulty, estimated_time, created_at`

func (r *repository) Create(ctx context.Context, subject *Subject) error {
	query := `
		INSERT INTO subjects (` + subjectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		subject.ID,
		subject.UserID,
		subject.Name,
		subject.Difficulty,
		subject.EstimatedTime,
		subject.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create subject: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE id = ?`

	var subject Subject
	if err := r.db.GetContext(ctx, &subject, r.db.Rebind(query), id); err != nil {
		return nil, core.MapNoRows("get subject", err)
	}

	return &subject, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Subject, error) {
	query := `
		SELECT ` + subjectColumns + `
		FROM subjects
		WHERE user_id = ?
		ORDER BY created_at, name`

	subjects := []Subject{}
	if err := r.db.SelectContext(ctx, &subjects, r.db.Rebind(query), userID); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	return subjects, nil
}

func (r *repository) Update(ctx context.Context, subject *Subject) error {
	query := `
		UPDATE subjects
		SET name = ?, difficulty = ?, estimated_time = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		subject.Name,
		subject.Difficulty,
		subject.EstimatedTime,
		subject.ID,
	)
	if err != nil {
		return fmt.Errorf("update subject: %w", err)
	}

	return core.RequireAffected("update subject", result)
}

// Delete removes the subject; its tasks, their schedules and the subject's
// performance row go with it through ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM subjects WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}

	return core.RequireAffected("delete subject", result)
}
