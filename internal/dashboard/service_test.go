// AngelaMos | 2026
// service_test.go

package dashboard_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/studyplanner/internal/config"
	"github.com/carterperez-dev/studyplanner/internal/dashboard"
	"github.com/carterperez-dev/studyplanner/internal/middleware"
	"github.com/carterperez-dev/studyplanner/internal/performance"
	"github.com/carterperez-dev/studyplanner/internal/subject"
	"github.com/carterperez-dev/studyplanner/internal/task"
	"github.com/carterperez-dev/studyplanner/internal/testutil"
	"github.com/carterperez-dev/studyplanner/internal/user"
)

type fixture struct {
	svc      *dashboard.Service
	subjects *subject.Service
	tasks    *task.Service
	userID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.OpenDB(t)
	agg := performance.NewAggregator()
	users := user.NewService(user.NewRepository(db.DB))
	subjects := subject.NewService(db)
	tasks := task.NewService(db, agg, users, nil, config.MailConfig{}, nil)

	return &fixture{
		svc: dashboard.NewService(
			users,
			subjects,
			tasks,
			performance.NewService(db, agg),
		),
		subjects: subjects,
		tasks:    tasks,
		userID:   testutil.CreateUser(t, db, "alice@example.com"),
	}
}

// seed creates n tasks on one subject and completes the first done of them.
func (f *fixture) seed(t *testing.T, n, done int) {
	t.Helper()
	ctx := context.Background()

	subj, err := f.subjects.Create(ctx, f.userID, subject.CreateSubjectRequest{
		Name: "Math", Difficulty: "Easy", EstimatedTime: 45,
	})
	require.NoError(t, err)

	for i := range n {
		tk, err := f.tasks.Create(ctx, f.userID, task.CreateTaskRequest{
			Title:     fmt.Sprintf("HW%d", i+1),
			Deadline:  fmt.Sprintf("2025-03-%02d", i+1),
			SubjectID: subj.ID,
		})
		require.NoError(t, err)

		if i < done {
			_, err = f.tasks.UpdateStatus(ctx, f.userID, tk.ID, "Completed")
			require.NoError(t, err)
		}
	}
}

func TestProfileBands(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		done       int
		percentage float64
		band       performance.Band
		message    string
	}{
		{"no tasks", 0, 0, 0, performance.BandLow, "Hurry up! You can do better!"},
		{"one of three", 3, 1, 33.33, performance.BandLow, "Hurry up! You can do better!"},
		{"two of five", 5, 2, 40, performance.BandMiddle, "Keep going! You're improving."},
		{"four of five", 5, 4, 80, performance.BandHigh, "Excellent! Keep it up!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.total > 0 {
				f.seed(t, tt.total, tt.done)
			}

			profile, err := f.svc.Profile(context.Background(), f.userID)
			require.NoError(t, err)

			assert.Equal(t, "alice@example.com", profile.User.Email)
			assert.Equal(t, tt.total, profile.Overview.TotalTasks)
			assert.Equal(t, tt.done, profile.Overview.CompletedTasks)
			assert.InDelta(t, tt.percentage, profile.Overview.Percentage, 0.001)
			assert.Equal(t, tt.band, profile.Overview.Band)
			assert.Equal(t, tt.message, profile.Overview.Message)
		})
	}
}

func TestSummaryLimitsUpcoming(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 7, 0)

	summary, err := f.svc.Summary(context.Background(), f.userID)
	require.NoError(t, err)

	assert.Len(t, summary.Subjects, 1)
	require.Len(t, summary.Upcoming, 5)
	assert.Equal(t, "HW1", summary.Upcoming[0].Title)
	assert.Equal(t, "HW5", summary.Upcoming[4].Title)
	assert.Len(t, summary.Performances, 1)
}

func TestHandlerRequiresUser(t *testing.T) {
	f := newFixture(t)

	r := chi.NewRouter()
	dashboard.NewHandler(f.svc).RegisterRoutes(r, func(next http.Handler) http.Handler {
		return next
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerProfile(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 2, 2)

	r := chi.NewRouter()
	dashboard.NewHandler(f.svc).RegisterRoutes(r, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), middleware.UserIDKey, f.userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			User struct {
				Email string `json:"email"`
			} `json:"user"`
			Percentage float64 `json:"percentage"`
			Band       string  `json:"band"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Data.User.Email)
	assert.InDelta(t, 100, resp.Data.Percentage, 0.001)
	assert.Equal(t, "tier3", resp.Data.Band)
}
