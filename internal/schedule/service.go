// AngelaMos | 2026
// service.go

package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/studyplanner/internal/calendar"
	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/performance"
	"github.com/carterperez-dev/studyplanner/internal/task"
)

type Service struct {
	db     *core.Database
	repo   Repository
	agg    *performance.Aggregator
	locker core.Locker
	tasks  *task.Service
}

func NewService(
	db *core.Database,
	agg *performance.Aggregator,
	locker core.Locker,
	tasks *task.Service,
) *Service {
	return &Service{
		db:     db,
		repo:   NewRepository(db.DB),
		agg:    agg,
		locker: locker,
		tasks:  tasks,
	}
}

// Calendar returns the user's slots ordered by date and start time together
// with the tasks that can still be booked.
func (s *Service) Calendar(
	ctx context.Context,
	userID string,
) ([]ScheduleWithTask, []task.TaskWithSubject, error) {
	if userID == "" {
		return nil, nil, fmt.Errorf("calendar: %w", core.ErrUnauthorized)
	}

	slots, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	tasks, err := s.tasks.Schedulable(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return slots, tasks, nil
}

// Create books a slot. The per-user lock makes the conflict check and the
// insert atomic with respect to other bookings by the same user.
func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateScheduleRequest,
) (*Schedule, error) {
	if userID == "" {
		return nil, fmt.Errorf("create schedule: %w", core.ErrUnauthorized)
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, core.ValidationError("date must be YYYY-MM-DD")
	}
	start, err := calendar.ParseClock(req.StartTime)
	if err != nil {
		return nil, core.ValidationError("start_time must be HH:MM")
	}
	end, err := calendar.ParseClock(req.EndTime)
	if err != nil {
		return nil, core.ValidationError("end_time must be HH:MM")
	}
	if _, err := calendar.NewInterval(start, end); err != nil {
		return nil, core.ValidationError("start_time must be before end_time")
	}

	unlock, err := s.locker.Lock(ctx, "schedule:"+userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	slot := &Schedule{
		ID:        uuid.New().String(),
		UserID:    userID,
		TaskID:    req.TaskID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		CreatedAt: time.Now().UTC(),
	}

	err = s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		t, err := ownedTask(ctx, tx, userID, req.TaskID)
		if err != nil {
			return err
		}

		repo := NewRepository(tx)

		existing, err := repo.ListByUserDate(ctx, userID, date)
		if err != nil {
			return err
		}
		if HasConflict(userID, date, start, end, existing) {
			core.AddSpanEvent(ctx, "schedule.conflict",
				attribute.String("schedule.date", date.String()),
				attribute.String("schedule.start", start.String()),
			)
			return core.ConflictError("time slot overlaps an existing schedule")
		}

		if err := repo.Create(ctx, slot); err != nil {
			return err
		}

		_, err = s.agg.Recompute(ctx, tx, userID, t.SubjectID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return slot, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		slot, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := core.Authorize(userID, slot); err != nil {
			return err
		}

		t, err := task.NewRepository(tx).GetByID(ctx, slot.TaskID)
		if err != nil {
			return err
		}

		if err := repo.Delete(ctx, id); err != nil {
			return err
		}

		_, err = s.agg.Recompute(ctx, tx, userID, t.SubjectID)
		return err
	})
}

func ownedTask(
	ctx context.Context,
	db core.DBTX,
	userID, taskID string,
) (*task.Task, error) {
	t, err := task.GetOwned(ctx, task.NewRepository(db), userID, taskID)
	switch {
	case err == nil:
		return t, nil
	case errors.Is(err, core.ErrNotFound):
		return nil, core.NotFoundError("task")
	case errors.Is(err, core.ErrForbidden):
		return nil, core.ForbiddenError("you do not own this task")
	default:
		return nil, err
	}
}
