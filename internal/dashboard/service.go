// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/performance"
	"github.com/carterperez-dev/studyplanner/internal/subject"
	"github.com/carterperez-dev/studyplanner/internal/task"
	"github.com/carterperez-dev/studyplanner/internal/user"
)

// Summary is the landing view: every subject, the nearest deadlines and the
// stored performance rows.
type Summary struct {
	Subjects     []subject.Subject
	Upcoming     []task.TaskWithSubject
	Performances []performance.SubjectPerformance
}

type Profile struct {
	User     *user.User
	Overview *performance.Overview
}

type Service struct {
	users        *user.Service
	subjects     *subject.Service
	tasks        *task.Service
	performances *performance.Service
}

func NewService(
	users *user.Service,
	subjects *subject.Service,
	tasks *task.Service,
	performances *performance.Service,
) *Service {
	return &Service{
		users:        users,
		subjects:     subjects,
		tasks:        tasks,
		performances: performances,
	}
}

func (s *Service) Summary(ctx context.Context, userID string) (*Summary, error) {
	if userID == "" {
		return nil, fmt.Errorf("dashboard: %w", core.ErrUnauthorized)
	}

	subjects, err := s.subjects.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.tasks.Upcoming(ctx, userID)
	if err != nil {
		return nil, err
	}

	perfs, err := s.performances.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Subjects:     subjects,
		Upcoming:     upcoming,
		Performances: perfs,
	}, nil
}

func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.users.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview, err := s.performances.Overview(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: u, Overview: overview}, nil
}
