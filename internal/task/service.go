// AngelaMos | 2026
// service.go

package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/studyplanner/internal/config"
	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/notify"
	"github.com/carterperez-dev/studyplanner/internal/performance"
	"github.com/carterperez-dev/studyplanner/internal/subject"
)

const upcomingLimit = 5

// Notifier queues a message for asynchronous delivery.
type Notifier interface {
	Dispatch(msg notify.Message)
}

// UserDirectory resolves the display name and address of a user.
type UserDirectory interface {
	Contact(ctx context.Context, userID string) (name, email string, err error)
}

type Service struct {
	db       *core.Database
	repo     Repository
	agg      *performance.Aggregator
	users    UserDirectory
	notifier Notifier
	mail     config.MailConfig
	logger   *slog.Logger
}

func NewService(
	db *core.Database,
	agg *performance.Aggregator,
	users UserDirectory,
	notifier Notifier,
	mail config.MailConfig,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:       db,
		repo:     NewRepository(db.DB),
		agg:      agg,
		users:    users,
		notifier: notifier,
		mail:     mail,
		logger:   logger,
	}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateTaskRequest,
) (*Task, error) {
	if userID == "" {
		return nil, fmt.Errorf("create task: %w", core.ErrUnauthorized)
	}

	deadline, err := ParseDeadline(req.Deadline)
	if err != nil {
		return nil, deadlineError()
	}

	priority := PriorityMedium
	if req.Priority != "" {
		if priority, err = ParsePriority(req.Priority); err != nil {
			return nil, priorityError()
		}
	}

	status := StatusPending
	if req.Status != "" {
		if status, err = ParseStatus(req.Status); err != nil {
			return nil, statusError()
		}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, titleError()
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		SubjectID:   req.SubjectID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Deadline:    deadline,
		Status:      status,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := ownedSubject(ctx, tx, userID, task.SubjectID); err != nil {
			return err
		}

		if err := NewRepository(tx).Create(ctx, task); err != nil {
			return err
		}

		_, err := s.agg.Recompute(ctx, tx, userID, task.SubjectID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if task.IsCompleted() {
		s.notifyCompleted(ctx, task)
	}

	return task, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Task, error) {
	return getOwned(ctx, s.repo, userID, id)
}

func (s *Service) List(
	ctx context.Context,
	userID string,
) ([]TaskWithSubject, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Upcoming returns the nearest deadlines for the dashboard.
func (s *Service) Upcoming(
	ctx context.Context,
	userID string,
) ([]TaskWithSubject, error) {
	return s.repo.ListUpcoming(ctx, userID, upcomingLimit)
}

// Schedulable returns Pending and In Progress tasks ordered by deadline.
func (s *Service) Schedulable(
	ctx context.Context,
	userID string,
) ([]TaskWithSubject, error) {
	return s.repo.ListSchedulable(ctx, userID)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateTaskRequest,
) (*Task, error) {
	var (
		task          *Task
		prevStatus    Status
		prevSubjectID string
	)

	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		var err error
		task, err = getOwned(ctx, repo, userID, id)
		if err != nil {
			return err
		}
		prevStatus = task.Status
		prevSubjectID = task.SubjectID

		if err := applyUpdate(task, req); err != nil {
			return err
		}

		if task.SubjectID != prevSubjectID {
			if _, err := ownedSubject(ctx, tx, userID, task.SubjectID); err != nil {
				return err
			}
		}

		if err := repo.Update(ctx, task); err != nil {
			return err
		}

		if _, err := s.agg.Recompute(ctx, tx, userID, task.SubjectID); err != nil {
			return err
		}
		if task.SubjectID != prevSubjectID {
			if _, err := s.agg.Recompute(ctx, tx, userID, prevSubjectID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if prevStatus != StatusCompleted && task.IsCompleted() {
		s.notifyCompleted(ctx, task)
	}

	return task, nil
}

func applyUpdate(task *Task, req UpdateTaskRequest) error {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return titleError()
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.Deadline != nil {
		deadline, err := ParseDeadline(*req.Deadline)
		if err != nil {
			return deadlineError()
		}
		task.Deadline = deadline
	}
	if req.SubjectID != nil && *req.SubjectID != "" {
		task.SubjectID = *req.SubjectID
	}
	if req.Priority != nil {
		priority, err := ParsePriority(*req.Priority)
		if err != nil {
			return priorityError()
		}
		task.Priority = priority
	}
	if req.Status != nil {
		status, err := ParseStatus(*req.Status)
		if err != nil {
			return statusError()
		}
		task.Status = status
		task.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// UpdateStatus sets the status and recomputes the subject. Entering
// Completed from any other status sends one completion notification once
// the transaction has committed.
func (s *Service) UpdateStatus(
	ctx context.Context,
	userID, id, rawStatus string,
) (*Task, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, statusError()
	}

	var (
		task       *Task
		prevStatus Status
	)

	err = s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		var err error
		task, err = getOwned(ctx, repo, userID, id)
		if err != nil {
			return err
		}
		prevStatus = task.Status

		now := time.Now().UTC()
		if err := repo.UpdateStatus(ctx, id, status, now); err != nil {
			return err
		}
		task.Status = status
		task.UpdatedAt = now

		_, err = s.agg.Recompute(ctx, tx, userID, task.SubjectID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if prevStatus != StatusCompleted && task.IsCompleted() {
		s.notifyCompleted(ctx, task)
	}

	return task, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		task, err := getOwned(ctx, repo, userID, id)
		if err != nil {
			return err
		}

		if err := repo.Delete(ctx, id); err != nil {
			return err
		}

		_, err = s.agg.Recompute(ctx, tx, userID, task.SubjectID)
		return err
	})
}

// notifyCompleted runs after commit. Nothing it does can fail the request.
func (s *Service) notifyCompleted(ctx context.Context, task *Task) {
	if s.notifier == nil || s.users == nil {
		return
	}

	name, email, err := s.users.Contact(ctx, task.UserID)
	if err != nil {
		s.logger.Warn("completion notification skipped",
			"task_id", task.ID,
			"error", err,
		)
		return
	}

	subjectName := ""
	if subj, err := subject.NewRepository(s.db.DB).GetByID(ctx, task.SubjectID); err == nil {
		subjectName = subj.Name
	}

	msg, err := notify.CompletionMessage(s.mail.Recipients(email), notify.TaskCompletion{
		Student:     name,
		Title:       task.Title,
		Description: task.Description,
		Subject:     subjectName,
		CompletedAt: task.UpdatedAt,
	})
	if err != nil {
		s.logger.Warn("completion notification skipped",
			"task_id", task.ID,
			"error", err,
		)
		return
	}

	core.AddSpanEvent(ctx, "task.completion_notified",
		attribute.String("task.id", task.ID),
		attribute.Int("recipients", len(msg.To)),
	)
	s.notifier.Dispatch(msg)
}

// GetOwned loads a task and checks that userID owns it.
func GetOwned(
	ctx context.Context,
	repo Repository,
	userID, id string,
) (*Task, error) {
	return getOwned(ctx, repo, userID, id)
}

func getOwned(
	ctx context.Context,
	repo Repository,
	userID, id string,
) (*Task, error) {
	task, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := core.Authorize(userID, task); err != nil {
		return nil, err
	}

	return task, nil
}

// ownedSubject reports a missing or foreign subject under the subject's own
// name so the task handler does not mislabel it.
func ownedSubject(
	ctx context.Context,
	db core.DBTX,
	userID, subjectID string,
) (*subject.Subject, error) {
	subj, err := subject.GetOwned(ctx, subject.NewRepository(db), userID, subjectID)
	switch {
	case err == nil:
		return subj, nil
	case errors.Is(err, core.ErrNotFound):
		return nil, core.NotFoundError("subject")
	case errors.Is(err, core.ErrForbidden):
		return nil, core.ForbiddenError("you do not own this subject")
	default:
		return nil, err
	}
}

func titleError() error {
	return core.ValidationError("title is required")
}

func deadlineError() error {
	return core.ValidationError(
		"deadline must be YYYY-MM-DD or YYYY-MM-DDTHH:MM",
	)
}

func priorityError() error {
	return core.ValidationError("priority must be one of: Low, Medium, High")
}

func statusError() error {
	return core.ValidationError(
		"status must be one of: Pending, In Progress, Completed",
	)
}
