// AngelaMos | 2026
// aggregator.go

package performance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/studyplanner/internal/core"
)

// ComputeProgress returns completed/total as a percentage, or 0 for an empty
// subject.
func ComputeProgress(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// BandFor maps an overall completion percentage to its motivational band.
func BandFor(percentage float64) (Band, string) {
	switch {
	case percentage >= 80:
		return BandHigh, "Excellent! Keep it up!"
	case percentage >= 40:
		return BandMiddle, "Keep going! You're improving."
	default:
		return BandLow, "Hurry up! You can do better!"
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Aggregator recomputes performance rows. It holds no state of its own and
// runs on whatever DBTX the caller passes, so the recompute commits or rolls
// back with the mutation that triggered it.
type Aggregator struct {
	now func() time.Time
}

func NewAggregator() *Aggregator {
	return &Aggregator{now: func() time.Time { return time.Now().UTC() }}
}

// Recompute must run after task create, edit, status change and delete, and
// after schedule create and delete. A task moved between subjects needs a
// call for both the old and the new subject.
func (a *Aggregator) Recompute(
	ctx context.Context,
	db core.DBTX,
	userID, subjectID string,
) (*Performance, error) {
	ctx, span := core.StartSpan(ctx, "performance.recompute",
		attribute.String("user.id", userID),
		attribute.String("subject.id", subjectID),
	)
	defer span.End()

	repo := NewRepository(db)

	total, completed, err := repo.CountTasks(ctx, userID, subjectID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	minutes, err := repo.CompletedMinutes(ctx, userID, subjectID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	perf := &Performance{
		ID:             uuid.New().String(),
		UserID:         userID,
		SubjectID:      subjectID,
		Progress:       ComputeProgress(completed, total),
		CompletionTime: minutes,
		LastUpdated:    a.now(),
	}

	stored, err := repo.Upsert(ctx, perf)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("recompute performance: %w", err)
	}

	span.SetAttributes(
		attribute.Int("tasks.total", total),
		attribute.Int("tasks.completed", completed),
		attribute.Float64("progress", stored.Progress),
	)

	return stored, nil
}
