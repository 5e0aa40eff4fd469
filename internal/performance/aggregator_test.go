// AngelaMos | 2026
// aggregator_test.go

package performance_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/performance"
	"github.com/carterperez-dev/studyplanner/internal/testutil"
)

func TestComputeProgress(t *testing.T) {
	assert.InDelta(t, 0, performance.ComputeProgress(0, 0), 0.0001)
	assert.InDelta(t, 0, performance.ComputeProgress(0, 4), 0.0001)
	assert.InDelta(t, 25, performance.ComputeProgress(1, 4), 0.0001)
	assert.InDelta(t, 100, performance.ComputeProgress(3, 3), 0.0001)
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		pct  float64
		band performance.Band
	}{
		{0, performance.BandLow},
		{39.99, performance.BandLow},
		{40, performance.BandMiddle},
		{79.99, performance.BandMiddle},
		{80, performance.BandHigh},
		{100, performance.BandHigh},
	}

	for _, tt := range tests {
		band, msg := performance.BandFor(tt.pct)
		assert.Equal(t, tt.band, band, "pct %.2f", tt.pct)
		assert.NotEmpty(t, msg)
	}
}

func insertSubject(t *testing.T, db *core.Database, userID, name string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.DB.ExecContext(context.Background(), db.DB.Rebind(`
		INSERT INTO subjects (id, user_id, name, difficulty, estimated_time, created_at)
		VALUES (?, ?, ?, 'Easy', 30, ?)`),
		id, userID, name, time.Now().UTC(),
	)
	require.NoError(t, err)
	return id
}

func insertTask(t *testing.T, db *core.Database, userID, subjectID, status string) string {
	t.Helper()

	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := db.DB.ExecContext(context.Background(), db.DB.Rebind(`
		INSERT INTO tasks (
			id, user_id, subject_id, title, description, deadline,
			status, priority, created_at, updated_at
		) VALUES (?, ?, ?, 'task', '', ?, ?, 'Medium', ?, ?)`),
		id, userID, subjectID, now.Add(24*time.Hour), status, now, now,
	)
	require.NoError(t, err)
	return id
}

func TestRecomputeIsIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	agg := performance.NewAggregator()

	userID := testutil.CreateUser(t, db, "alice@example.com")
	subjectID := insertSubject(t, db, userID, "Math")
	insertTask(t, db, userID, subjectID, "Completed")
	insertTask(t, db, userID, subjectID, "Pending")
	insertTask(t, db, userID, subjectID, "In Progress")

	first, err := agg.Recompute(ctx, db.DB, userID, subjectID)
	require.NoError(t, err)
	assert.InDelta(t, 33.333, first.Progress, 0.01)

	second, err := agg.Recompute(ctx, db.DB, userID, subjectID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, first.Progress, second.Progress, 0.0001)
	assert.Equal(t, first.CompletionTime, second.CompletionTime)
	assert.False(t, second.LastUpdated.Before(first.LastUpdated))
	assert.Equal(t, 1, testutil.Count(t, db, "performances", "user_id = ?", userID))
}

func TestRecomputeEmptySubject(t *testing.T) {
	db := testutil.OpenDB(t)
	userID := testutil.CreateUser(t, db, "alice@example.com")
	subjectID := insertSubject(t, db, userID, "Art")

	perf, err := performance.NewAggregator().Recompute(context.Background(), db.DB, userID, subjectID)
	require.NoError(t, err)
	assert.InDelta(t, 0, perf.Progress, 0.0001)
	assert.Equal(t, 0, perf.CompletionTime)
}

func TestServiceRecomputeAllAndOverview(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	svc := performance.NewService(db, performance.NewAggregator())

	userID := testutil.CreateUser(t, db, "alice@example.com")
	math := insertSubject(t, db, userID, "Math")
	art := insertSubject(t, db, userID, "Art")
	insertTask(t, db, userID, math, "Completed")
	insertTask(t, db, userID, math, "Completed")
	insertTask(t, db, userID, art, "Pending")

	perfs, err := svc.RecomputeAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, perfs, 2)

	byName := map[string]performance.SubjectPerformance{}
	for _, p := range perfs {
		byName[p.SubjectName] = p
	}
	assert.InDelta(t, 100, byName["Math"].Progress, 0.0001)
	assert.Equal(t, 2, byName["Math"].TotalTasks)
	assert.InDelta(t, 0, byName["Art"].Progress, 0.0001)

	overview, err := svc.Overview(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.TotalSubjects)
	assert.Equal(t, 3, overview.TotalTasks)
	assert.InDelta(t, 66.67, overview.Percentage, 0.001)
	assert.Equal(t, performance.BandMiddle, overview.Band)
}

func TestSubjectDeleteCascadesPerformance(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	userID := testutil.CreateUser(t, db, "alice@example.com")
	subjectID := insertSubject(t, db, userID, "Math")
	insertTask(t, db, userID, subjectID, "Pending")

	_, err := performance.NewAggregator().Recompute(ctx, db.DB, userID, subjectID)
	require.NoError(t, err)

	_, err = db.DB.ExecContext(ctx, db.DB.Rebind(`DELETE FROM subjects WHERE id = ?`), subjectID)
	require.NoError(t, err)

	assert.Equal(t, 0, testutil.Count(t, db, "performances", ""))
	assert.Equal(t, 0, testutil.Count(t, db, "tasks", ""))
}
