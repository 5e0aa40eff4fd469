// AngelaMos | 2026
// testutil.go

package testutil

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/studyplanner/internal/config"
	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/migrations"
)

// OpenDB returns a migrated SQLite database in a per-test temp directory.
func OpenDB(t *testing.T) *core.Database {
	t.Helper()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := core.NewDatabase(ctx, config.DatabaseConfig{
		Driver:       core.DriverSQLite,
		URL:          "file:" + path,
		MaxOpenConns: 4,
		MaxIdleConns: 4,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(ctx, db.DB.DB, db.Dialect()))

	return db
}

// CreateUser inserts a user row directly and returns its id.
func CreateUser(t *testing.T, db *core.Database, email string) string {
	t.Helper()

	id := uuid.New().String()
	now := time.Now().UTC()
	name := strings.SplitN(email, "@", 2)[0]

	_, err := db.DB.ExecContext(
		context.Background(),
		db.DB.Rebind(`
			INSERT INTO users (
				id, email, password_hash, name, role, token_version,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, 'user', 0, ?, ?)`),
		id, strings.ToLower(email), "unused", name, now, now,
	)
	require.NoError(t, err)

	return id
}

// Count returns the number of rows in table matching the optional where
// clause.
func Count(t *testing.T, db *core.Database, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	var n int
	require.NoError(t, db.DB.GetContext(
		context.Background(),
		&n,
		db.DB.Rebind(query),
		args...,
	))
	return n
}
