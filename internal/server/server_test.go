// AngelaMos | 2026
// server_test.go

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/studyplanner/internal/config"
)

type fakeHealth struct {
	ready    bool
	shutdown bool
}

func (f *fakeHealth) SetReady(ready bool)       { f.ready = ready }
func (f *fakeHealth) SetShutdown(shutdown bool) { f.shutdown = shutdown }

func TestRouterRecoversPanics(t *testing.T) {
	srv := New(Config{ServerConfig: config.ServerConfig{Port: 0}})
	srv.Router().Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestShutdownMarksHealth(t *testing.T) {
	health := &fakeHealth{ready: true}
	srv := New(Config{
		ServerConfig:  config.ServerConfig{ShutdownTimeout: time.Second},
		HealthHandler: health,
	})

	require.NoError(t, srv.Shutdown(context.Background(), 0))
	assert.False(t, health.ready)
	assert.True(t, health.shutdown)
}
