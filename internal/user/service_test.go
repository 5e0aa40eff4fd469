// AngelaMos | 2026
// service_test.go

package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/studyplanner/internal/config"
	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/performance"
	"github.com/carterperez-dev/studyplanner/internal/subject"
	"github.com/carterperez-dev/studyplanner/internal/task"
	"github.com/carterperez-dev/studyplanner/internal/testutil"
	"github.com/carterperez-dev/studyplanner/internal/user"
)

func TestCreateNormalizesEmail(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := user.NewService(user.NewRepository(db.DB))
	ctx := context.Background()

	info, err := svc.Create(ctx, "  Alice@Example.COM ", "hash", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", info.Email)

	_, err = svc.Create(ctx, "alice@example.com", "hash", "Alice again")
	require.ErrorIs(t, err, core.ErrDuplicateKey)

	_, err = svc.CreateWithRole(ctx, "x@example.com", "hash", "X", "root")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestContact(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := user.NewService(user.NewRepository(db.DB))
	ctx := context.Background()

	named, err := svc.Create(ctx, "alice@example.com", "hash", "Alice")
	require.NoError(t, err)

	name, email, err := svc.Contact(ctx, named.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
	assert.Equal(t, "alice@example.com", email)

	_, _, err = svc.Contact(ctx, "missing")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteMeCascades(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	users := user.NewService(user.NewRepository(db.DB))
	userID := testutil.CreateUser(t, db, "alice@example.com")

	subj, err := subject.NewService(db).Create(ctx, userID, subject.CreateSubjectRequest{
		Name: "Math", Difficulty: "Easy", EstimatedTime: 30,
	})
	require.NoError(t, err)

	tasks := task.NewService(db, performance.NewAggregator(), users, nil, config.MailConfig{}, nil)
	_, err = tasks.Create(ctx, userID, task.CreateTaskRequest{
		Title: "HW1", Deadline: "2025-03-01", SubjectID: subj.ID,
	})
	require.NoError(t, err)

	require.NoError(t, users.DeleteMe(ctx, userID))

	for _, table := range []string{"users", "subjects", "tasks", "performances"} {
		assert.Equal(t, 0, testutil.Count(t, db, table, ""), table)
	}

	require.ErrorIs(t, users.DeleteMe(ctx, ""), core.ErrUnauthorized)
}

func TestListUsersSearch(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := user.NewService(user.NewRepository(db.DB))
	ctx := context.Background()

	testutil.CreateUser(t, db, "alice@example.com")
	testutil.CreateUser(t, db, "bob@example.com")
	testutil.CreateUser(t, db, "alicia@example.com")

	params := user.ListUsersParams{Search: "ALI"}
	params.Normalize()

	users, total, err := svc.ListUsers(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, users, 2)
}

func TestCanDeleteUser(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := user.NewService(user.NewRepository(db.DB))
	ctx := context.Background()

	admin, err := svc.CreateWithRole(ctx, "admin@example.com", "hash", "Admin", user.RoleAdmin)
	require.NoError(t, err)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")

	assert.NoError(t, svc.CanDeleteUser(ctx, alice, alice))
	assert.NoError(t, svc.CanDeleteUser(ctx, admin.ID, alice))
	assert.ErrorIs(t, svc.CanDeleteUser(ctx, alice, bob), core.ErrForbidden)
	assert.ErrorIs(t, svc.CanDeleteUser(ctx, alice, admin.ID), core.ErrForbidden)
}
