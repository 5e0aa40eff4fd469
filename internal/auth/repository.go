// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/studyplanner/internal/core"
)

type Repository interface {
	Create(ctx context.Context, token *RefreshToken) error
	FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	FindByID(ctx context.Context, id string) (*RefreshToken, error)
	MarkAsUsed(ctx context.Context, id, replacedByID string) error
	RevokeByID(ctx context.Context, id string) error
	RevokeByFamilyID(ctx context.Context, familyID string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	GetActiveSessionsForUser(
		ctx context.Context,
		userID string,
	) ([]RefreshToken, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const tokenColumns = `id, user_id, token_hash, family_id, expires_at, created_at,
			is_used, used_at, revoked_at, replaced_by_id, user_agent, ip_address`

func (r *repository) Create(ctx context.Context, token *RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (
			id, user_id, token_hash, family_id, expires_at, created_at,
			is_used, user_agent, ip_address
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	token.CreatedAt = time.Now().UTC()
	token.ExpiresAt = token.ExpiresAt.UTC()

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		token.ID,
		token.UserID,
		token.TokenHash,
		token.FamilyID,
		token.ExpiresAt,
		token.CreatedAt,
		false,
		token.UserAgent,
		token.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}

	return nil
}

func (r *repository) FindByHash(
	ctx context.Context,
	tokenHash string,
) (*RefreshToken, error) {
	query := `SELECT ` + tokenColumns + `
		FROM refresh_tokens
		WHERE token_hash = ?`

	var token RefreshToken
	err := r.db.GetContext(ctx, &token, r.db.Rebind(query), tokenHash)
	if err != nil {
		return nil, core.MapNoRows("find refresh token", err)
	}

	return &token, nil
}

func (r *repository) FindByID(
	ctx context.Context,
	id string,
) (*RefreshToken, error) {
	query := `SELECT ` + tokenColumns + `
		FROM refresh_tokens
		WHERE id = ?`

	var token RefreshToken
	err := r.db.GetContext(ctx, &token, r.db.Rebind(query), id)
	if err != nil {
		return nil, core.MapNoRows("find refresh token", err)
	}

	return &token, nil
}

func (r *repository) MarkAsUsed(
	ctx context.Context,
	id, replacedByID string,
) error {
	query := `
		UPDATE refresh_tokens
		SET is_used = ?, used_at = ?, replaced_by_id = ?
		WHERE id = ? AND is_used = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		true,
		time.Now().UTC(),
		replacedByID,
		id,
		false,
	)
	if err != nil {
		return fmt.Errorf("mark refresh token as used: %w", err)
	}

	return core.RequireAffected("mark refresh token as used", result)
}

func (r *repository) RevokeByID(ctx context.Context, id string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = ?
		WHERE id = ? AND revoked_at IS NULL`

	result, err := r.db.ExecContext(
		ctx,
		r.db.Rebind(query),
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	return core.RequireAffected("revoke refresh token", result)
}

func (r *repository) RevokeByFamilyID(
	ctx context.Context,
	familyID string,
) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = ?
		WHERE family_id = ? AND revoked_at IS NULL`

	_, err := r.db.ExecContext(
		ctx,
		r.db.Rebind(query),
		time.Now().UTC(),
		familyID,
	)
	if err != nil {
		return fmt.Errorf("revoke token family: %w", err)
	}

	return nil
}

func (r *repository) RevokeAllForUser(
	ctx context.Context,
	userID string,
) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = ?
		WHERE user_id = ? AND revoked_at IS NULL`

	_, err := r.db.ExecContext(
		ctx,
		r.db.Rebind(query),
		time.Now().UTC(),
		userID,
	)
	if err != nil {
		return fmt.Errorf("revoke all user tokens: %w", err)
	}

	return nil
}

func (r *repository) GetActiveSessionsForUser(
	ctx context.Context,
	userID string,
) ([]RefreshToken, error) {
	query := `SELECT ` + tokenColumns + `
		FROM refresh_tokens
		WHERE user_id = ?
			AND revoked_at IS NULL
			AND is_used = ?
			AND expires_at > ?
		ORDER BY created_at DESC`

	var tokens []RefreshToken
	err := r.db.SelectContext(
		ctx,
		&tokens,
		r.db.Rebind(query),
		userID,
		false,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("get active sessions: %w", err)
	}

	return tokens, nil
}

func (r *repository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM refresh_tokens
		WHERE expires_at < ?`

	cutoff := time.Now().UTC().Add(-24 * time.Hour)

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}

	return rows, nil
}
