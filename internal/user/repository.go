// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/studyplanner/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, password_hash, name, role, token_version,
		       created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, name, role, token_version,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, 0, ?, ?)`

	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Role,
		now,
		now,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	user.TokenVersion = 0
	user.CreatedAt = now
	user.UpdatedAt = now

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	var user User
	if err := r.db.GetContext(ctx, &user, r.db.Rebind(query), id); err != nil {
		return nil, core.MapNoRows("get user", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	var user User
	if err := r.db.GetContext(ctx, &user, r.db.Rebind(query), email); err != nil {
		return nil, core.MapNoRows("get user by email", err)
	}

	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = ?, role = ?, updated_at = ?
		WHERE id = ?`

	now := time.Now().UTC()

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		user.Name,
		user.Role,
		now,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if err := core.RequireAffected("update user", result); err != nil {
		return err
	}

	user.UpdatedAt = now
	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(
		ctx,
		r.db.Rebind(query),
		passwordHash,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return core.RequireAffected("update password", result)
}

func (r *repository) IncrementTokenVersion(
	ctx context.Context,
	id string,
) error {
	query := `
		UPDATE users
		SET token_version = token_version + 1, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(
		ctx,
		r.db.Rebind(query),
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}

	return core.RequireAffected("increment token version", result)
}

// Delete removes the user row. Foreign keys cascade the delete to refresh
// tokens and all study data.
func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return core.RequireAffected("delete user", result)
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize()

	conditions := []string{"1 = 1"}
	var args []any

	if params.Search != "" {
		conditions = append(conditions,
			`(LOWER(email) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(strings.ToLower(params.Search)) + "%"
		args = append(args, pattern, pattern)
	}

	if params.Role != "" {
		conditions = append(conditions, "role = ?")
		args = append(args, params.Role)
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) FROM users WHERE " + whereClause
	var total int
	err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE ` + whereClause + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`

	args = append(args, params.PageSize, params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, r.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE email = ?`

	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(query), email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return n > 0, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
