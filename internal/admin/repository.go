// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/studyplanner/internal/core"
)

// DomainCounts is the number of rows in each study table.
type DomainCounts struct {
	Users        int `db:"users"        json:"users"`
	Subjects     int `db:"subjects"     json:"subjects"`
	Tasks        int `db:"tasks"        json:"tasks"`
	Completed    int `db:"completed"    json:"completed_tasks"`
	Schedules    int `db:"schedules"    json:"schedules"`
	Performances int `db:"performances" json:"performances"`
}

type Repository interface {
	Counts(ctx context.Context) (*DomainCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context) (*DomainCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM subjects) AS subjects,
			(SELECT COUNT(*) FROM tasks) AS tasks,
			(SELECT COUNT(*) FROM tasks WHERE status = ?) AS completed,
			(SELECT COUNT(*) FROM schedules) AS schedules,
			(SELECT COUNT(*) FROM performances) AS performances`

	var counts DomainCounts
	if err := r.db.GetContext(ctx, &counts, r.db.Rebind(query), "Completed"); err != nil {
		return nil, fmt.Errorf("count domain rows: %w", err)
	}

	return &counts, nil
}
