// AngelaMos | 2026
// service.go

package performance

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/studyplanner/internal/core"
)

type Service struct {
	db   *core.Database
	repo Repository
	agg  *Aggregator
}

func NewService(db *core.Database, agg *Aggregator) *Service {
	return &Service{
		db:   db,
		repo: NewRepository(db.DB),
		agg:  agg,
	}
}

// RecomputeAll refreshes every subject of the user in one transaction and
// returns the resulting rows.
func (s *Service) RecomputeAll(
	ctx context.Context,
	userID string,
) ([]SubjectPerformance, error) {
	if userID == "" {
		return nil, fmt.Errorf("recompute all: %w", core.ErrUnauthorized)
	}

	var perfs []SubjectPerformance
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		ids, err := repo.SubjectIDs(ctx, userID)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if _, err := s.agg.Recompute(ctx, tx, userID, id); err != nil {
				return err
			}
		}

		perfs, err = repo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return perfs, nil
}

func (s *Service) List(
	ctx context.Context,
	userID string,
) ([]SubjectPerformance, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Overview computes the profile summary directly from task rows.
func (s *Service) Overview(ctx context.Context, userID string) (*Overview, error) {
	if userID == "" {
		return nil, fmt.Errorf("overview: %w", core.ErrUnauthorized)
	}

	subjects, tasks, completed, err := s.repo.Totals(ctx, userID)
	if err != nil {
		return nil, err
	}

	percentage := roundTo(ComputeProgress(completed, tasks), 2)
	band, message := BandFor(percentage)

	return &Overview{
		TotalSubjects:  subjects,
		TotalTasks:     tasks,
		CompletedTasks: completed,
		Percentage:     percentage,
		Band:           band,
		Message:        message,
	}, nil
}
