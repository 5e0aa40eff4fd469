// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func ok(context.Context) error { return nil }

func TestReadiness(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		h := NewHandler(Check{Name: "database", Checker: pingFunc(ok)})

		rec := httptest.NewRecorder()
		h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ReadinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Checks, 1)
		assert.Equal(t, "database", resp.Checks[0].Name)
	})

	t.Run("degraded", func(t *testing.T) {
		h := NewHandler(
			Check{Name: "database", Checker: pingFunc(ok)},
			Check{Name: "redis", Checker: pingFunc(func(context.Context) error {
				return errors.New("down")
			})},
		)

		rec := httptest.NewRecorder()
		h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("shutting down", func(t *testing.T) {
		h := NewHandler()
		h.SetShutdown(true)

		rec := httptest.NewRecorder()
		h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
