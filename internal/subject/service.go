// AngelaMos | 2026
// service.go

package subject

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/studyplanner/internal/core"
)

type Service struct {
	db   *core.Database
	repo Repository
}

func NewService(db *core.Database) *Service {
	return &Service{
		db:   db,
		repo: NewRepository(db.DB),
	}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateSubjectRequest,
) (*Subject, error) {
	if userID == "" {
		return nil, fmt.Errorf("create subject: %w", core.ErrUnauthorized)
	}

	difficulty, err := ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, core.ValidationError("difficulty must be one of: Easy, Medium, Hard")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, nameError()
	}

	subject := &Subject{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          name,
		Difficulty:    difficulty,
		EstimatedTime: req.EstimatedTime,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, err
	}

	return subject, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Subject, error) {
	return GetOwned(ctx, s.repo, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]Subject, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateSubjectRequest,
) (*Subject, error) {
	var subject *Subject

	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		var err error
		subject, err = GetOwned(ctx, repo, userID, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return nameError()
			}
			subject.Name = name
		}
		if req.Difficulty != nil {
			difficulty, err := ParseDifficulty(*req.Difficulty)
			if err != nil {
				return core.ValidationError("difficulty must be one of: Easy, Medium, Hard")
			}
			subject.Difficulty = difficulty
		}
		if req.EstimatedTime != nil {
			subject.EstimatedTime = *req.EstimatedTime
		}

		return repo.Update(ctx, subject)
	})
	if err != nil {
		return nil, err
	}

	return subject, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		if _, err := GetOwned(ctx, repo, userID, id); err != nil {
			return err
		}

		return repo.Delete(ctx, id)
	})
}

// GetOwned loads a subject and checks that userID owns it. Other packages
// call it with a transaction-bound repository before attaching tasks.
func GetOwned(
	ctx context.Context,
	repo Repository,
	userID, id string,
) (*Subject, error) {
	subject, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := core.Authorize(userID, subject); err != nil {
		return nil, err
	}

	return subject, nil
}

func nameError() error {
	return core.ValidationError("name is required")
}
