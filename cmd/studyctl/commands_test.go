// AngelaMos | 2026
// commands_test.go

package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/testutil"
	"github.com/carterperez-dev/studyplanner/internal/user"
)

func newTestApp(t *testing.T, passwords ...string) (*app, *core.Database) {
	t.Helper()

	db := testutil.OpenDB(t)
	a := newApp("", charmlog.New(io.Discard))
	a.out = &bytes.Buffer{}
	a.openDB = func(context.Context) (*core.Database, error) { return db, nil }

	next := 0
	a.readPassword = func(int) ([]byte, error) {
		p := passwords[next%len(passwords)]
		next++
		return []byte(p), nil
	}

	return a, db
}

func TestUserCreate(t *testing.T) {
	a, db := newTestApp(t, "correct horse")

	cmd := &UserCreateCmd{Email: "Admin@Example.com", Name: "Admin", Admin: true}
	require.NoError(t, cmd.Run(a))

	u, err := user.NewRepository(db.DB).GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, u.Role)

	ok, err := core.VerifyPassword("correct horse", u.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Error(t, cmd.Run(a), "duplicate email")
}

func TestUserCreateRejectsMismatch(t *testing.T) {
	a, db := newTestApp(t, "password-one", "password-two")

	err := (&UserCreateCmd{Email: "a@example.com", Name: "A"}).Run(a)
	require.ErrorIs(t, err, errPasswordMismatch)
	assert.Equal(t, 0, testutil.Count(t, db, "users", ""))
}

func TestUserCreateRejectsShortPassword(t *testing.T) {
	a, _ := newTestApp(t, "short")

	err := (&UserCreateCmd{Email: "a@example.com", Name: "A"}).Run(a)
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUserResetPassword(t *testing.T) {
	a, db := newTestApp(t, "a brand new secret")
	testutil.CreateUser(t, db, "bob@example.com")

	require.NoError(t, (&UserResetPasswordCmd{Email: "bob@example.com"}).Run(a))

	u, err := user.NewRepository(db.DB).GetByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, u.TokenVersion)

	ok, err := core.VerifyPassword("a brand new secret", u.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Error(t, (&UserResetPasswordCmd{Email: "nobody@example.com"}).Run(a))
}

func TestKeysGenerate(t *testing.T) {
	a, _ := newTestApp(t, "unused-password")
	dir := t.TempDir()

	cmd := &KeysGenerateCmd{
		Private: filepath.Join(dir, "keys", "private.pem"),
		Public:  filepath.Join(dir, "keys", "public.pem"),
	}
	require.NoError(t, cmd.Run(a))
	assert.FileExists(t, cmd.Private)
	assert.FileExists(t, cmd.Public)

	assert.Error(t, cmd.Run(a), "refuses to overwrite")

	cmd.Force = true
	assert.NoError(t, cmd.Run(a))
}

func TestMigrateCommands(t *testing.T) {
	a, _ := newTestApp(t, "unused-password")

	require.NoError(t, (&MigrateUpCmd{}).Run(a))
	require.NoError(t, (&MigrateStatusCmd{}).Run(a))
}
