// AngelaMos | 2026
// service_test.go

package subject_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/middleware"
	"github.com/carterperez-dev/studyplanner/internal/subject"
	"github.com/carterperez-dev/studyplanner/internal/testutil"
)

func TestCreateAndList(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := subject.NewService(db)
	ctx := context.Background()
	userID := testutil.CreateUser(t, db, "alice@example.com")

	created, err := svc.Create(ctx, userID, subject.CreateSubjectRequest{
		Name: "  Math ", Difficulty: "hard", EstimatedTime: 90,
	})
	require.NoError(t, err)
	assert.Equal(t, "Math", created.Name)
	assert.Equal(t, subject.DifficultyHard, created.Difficulty)

	_, err = svc.Create(ctx, userID, subject.CreateSubjectRequest{
		Name: "Art", Difficulty: "Trivial", EstimatedTime: 10,
	})
	require.ErrorIs(t, err, core.ErrInvalidInput)

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestOwnership(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := subject.NewService(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")

	math, err := svc.Create(ctx, alice, subject.CreateSubjectRequest{
		Name: "Math", Difficulty: "Easy", EstimatedTime: 30,
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, math.ID)
	require.ErrorIs(t, err, core.ErrForbidden)

	name := "Stolen"
	_, err = svc.Update(ctx, bob, math.ID, subject.UpdateSubjectRequest{Name: &name})
	require.ErrorIs(t, err, core.ErrForbidden)

	require.ErrorIs(t, svc.Delete(ctx, bob, math.ID), core.ErrForbidden)

	stored, err := svc.Get(ctx, alice, math.ID)
	require.NoError(t, err)
	assert.Equal(t, "Math", stored.Name)

	_, err = svc.Get(ctx, alice, "missing")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdatePartial(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := subject.NewService(db)
	ctx := context.Background()
	userID := testutil.CreateUser(t, db, "alice@example.com")

	math, err := svc.Create(ctx, userID, subject.CreateSubjectRequest{
		Name: "Math", Difficulty: "Easy", EstimatedTime: 30,
	})
	require.NoError(t, err)

	minutes := 120
	updated, err := svc.Update(ctx, userID, math.ID, subject.UpdateSubjectRequest{
		EstimatedTime: &minutes,
	})
	require.NoError(t, err)
	assert.Equal(t, "Math", updated.Name)
	assert.Equal(t, 120, updated.EstimatedTime)
}

func TestHandlerCreateForm(t *testing.T) {
	db := testutil.OpenDB(t)
	userID := testutil.CreateUser(t, db, "alice@example.com")

	r := chi.NewRouter()
	subject.NewHandler(subject.NewService(db)).RegisterRoutes(r, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	form := url.Values{
		"name":          {"Chemistry"},
		"difficulty":    {"Medium"},
		"estimatedTime": {"45"},
	}
	req := httptest.NewRequest(http.MethodPost, "/subjects", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	form.Set("estimatedTime", "0")
	req = httptest.NewRequest(http.MethodPost, "/subjects", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 1, testutil.Count(t, db, "subjects", "user_id = ?", userID))
}

func TestBlankNameRejected(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := subject.NewService(db)
	ctx := context.Background()
	userID := testutil.CreateUser(t, db, "alice@example.com")

	r := chi.NewRouter()
	subject.NewHandler(svc).RegisterRoutes(r, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	body := `{"name":"   ","difficulty":"Easy","estimatedTime":30}`
	req := httptest.NewRequest(http.MethodPost, "/subjects", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, 0, testutil.Count(t, db, "subjects", ""))

	math, err := svc.Create(ctx, userID, subject.CreateSubjectRequest{
		Name: "Math", Difficulty: "Easy", EstimatedTime: 30,
	})
	require.NoError(t, err)

	blank := "  "
	_, err = svc.Update(ctx, userID, math.ID, subject.UpdateSubjectRequest{Name: &blank})
	require.ErrorIs(t, err, core.ErrInvalidInput)

	stored, err := svc.Get(ctx, userID, math.ID)
	require.NoError(t, err)
	assert.Equal(t, "Math", stored.Name)
}
