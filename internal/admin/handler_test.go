// AngelaMos | 2026
// handler_test.go

package admin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/studyplanner/internal/admin"
	"github.com/carterperez-dev/studyplanner/internal/testutil"
)

func passthrough(next http.Handler) http.Handler { return next }

func TestSystemStatsWithoutRedis(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.CreateUser(t, db, "alice@example.com")
	testutil.CreateUser(t, db, "bob@example.com")

	h := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		DBPing:     db.Ping,
		Repository: admin.NewRepository(db.DB),
	})

	r := chi.NewRouter()
	h.RegisterRoutes(r, passthrough, passthrough)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data admin.SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Database.Healthy)
	assert.False(t, resp.Data.Redis.Enabled)
	require.NotNil(t, resp.Data.Domain)
	assert.Equal(t, 2, resp.Data.Domain.Users)
	assert.Equal(t, 0, resp.Data.Domain.Tasks)
}

func TestCounts(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.CreateUser(t, db, "alice@example.com")

	counts, err := admin.NewRepository(db.DB).Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Users)
	assert.Equal(t, 0, counts.Schedules)
}
