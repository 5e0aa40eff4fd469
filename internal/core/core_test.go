// AngelaMos | 2026
// core_test.go

package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindTarget struct {
	Name          string  `json:"name"`
	EstimatedTime int     `json:"estimated_time"`
	Note          *string `json:"note,omitempty"`
}

func TestBind(t *testing.T) {
	t.Run("json camelCase", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/",
			strings.NewReader(`{"name":"Math","estimatedTime":90}`))
		r.Header.Set("Content-Type", "application/json")

		var dst bindTarget
		require.NoError(t, Bind(httptest.NewRecorder(), r, &dst))
		assert.Equal(t, "Math", dst.Name)
		assert.Equal(t, 90, dst.EstimatedTime)
		assert.Nil(t, dst.Note)
	})

	t.Run("form snake_case", func(t *testing.T) {
		form := url.Values{"name": {"Art"}, "estimated_time": {"30"}, "note": {"x"}}
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var dst bindTarget
		require.NoError(t, Bind(httptest.NewRecorder(), r, &dst))
		assert.Equal(t, "Art", dst.Name)
		assert.Equal(t, 30, dst.EstimatedTime)
		require.NotNil(t, dst.Note)
		assert.Equal(t, "x", *dst.Note)
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)

		var dst bindTarget
		require.NoError(t, Bind(httptest.NewRecorder(), r, &dst))
		assert.Empty(t, dst.Name)
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		r.Header.Set("Content-Type", "application/json")

		var dst bindTarget
		assert.Error(t, Bind(httptest.NewRecorder(), r, &dst))
	})
}

type owned string

func (o owned) OwnerID() string { return string(o) }

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize("u1", owned("u1")))
	assert.ErrorIs(t, Authorize("u2", owned("u1")), ErrForbidden)
	assert.ErrorIs(t, Authorize("", owned("u1")), ErrUnauthorized)
}

func TestLocalLockerSerializes(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		inside  atomic.Int32
		maxSeen atomic.Int32
	)

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "user-1")
			if !assert.NoError(t, err) {
				return
			}

			n := inside.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen.Load())
	assert.Empty(t, l.locks)
}

func TestLocalLockerKeysAreIndependent(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	unlockA, err := l.Lock(ctx, "a")
	require.NoError(t, err)
	defer unlockA()

	unlockB, err := l.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()
}

func TestLocalLockerHonorsContext(t *testing.T) {
	l := NewLocalLocker()

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "k")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()

	again, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	again()
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	ok, err := VerifyPassword("correct horse battery", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, CheckPasswordLength("short"), ErrInvalidInput)
	assert.NoError(t, CheckPasswordLength("long enough"))
}

func TestTokenHash(t *testing.T) {
	token, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.Equal(t, HashToken(token), HashToken(token))
	assert.NotEqual(t, HashToken(token), HashToken(token+"x"))
	assert.Len(t, HashToken(token), 64)
}

func TestWithSQLitePragmas(t *testing.T) {
	dsn := withSQLitePragmas("file:test.db")
	assert.Contains(t, dsn, "_pragma=foreign_keys(1)")
	assert.Contains(t, dsn, "_time_format=sqlite")
	assert.Equal(t, 1, strings.Count(dsn, "?"))

	custom := withSQLitePragmas("file:test.db?_pragma=busy_timeout(100)")
	assert.Equal(t, 1, strings.Count(custom, "busy_timeout"))
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrInvalidInput, http.StatusBadRequest},
		{ConflictError("slot taken"), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		WriteError(rec, tt.err, "task")
		assert.Equal(t, tt.code, rec.Code, tt.err.Error())
	}
}
