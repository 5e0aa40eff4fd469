// AngelaMos | 2026
// service_test.go

package auth_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/studyplanner/internal/auth"
	"github.com/carterperez-dev/studyplanner/internal/config"
	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/testutil"
	"github.com/carterperez-dev/studyplanner/internal/user"
)

func newJWTManager(t *testing.T) *auth.JWTManager {
	t.Helper()

	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")
	require.NoError(t, auth.GenerateKeyPair(priv, pub))

	m, err := auth.NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     priv,
		PublicKeyPath:      pub,
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: time.Hour,
		Issuer:             "studyplanner-test",
		Audience:           "studyplanner-test-api",
	})
	require.NoError(t, err)
	return m
}

func newService(t *testing.T) *auth.Service {
	t.Helper()

	db := testutil.OpenDB(t)
	userSvc := user.NewService(user.NewRepository(db.DB))
	return auth.NewService(
		auth.NewRepository(db.DB),
		newJWTManager(t),
		userSvc,
		nil,
	)
}

func register(t *testing.T, svc *auth.Service, email string) *auth.AuthResponse {
	t.Helper()

	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    email,
		Password: "correct-horse",
		Name:     "Student",
	}, "go-test", "127.0.0.1")
	require.NoError(t, err)
	return resp
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newJWTManager(t)

	token, err := m.CreateAccessToken(auth.AccessTokenClaims{
		UserID:       "user-1",
		Role:         user.RoleUser,
		TokenVersion: 3,
	})
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, user.RoleUser, claims.Role)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.NotEmpty(t, claims.JTI)

	_, err = m.VerifyAccessToken(context.Background(), token+"x")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	reg := register(t, svc, "Ada@Example.com")
	assert.Equal(t, "ada@example.com", reg.User.Email)
	assert.NotEmpty(t, reg.Tokens.AccessToken)

	_, err := svc.Register(ctx, auth.RegisterRequest{
		Email:    "ada@example.com",
		Password: "another-pass",
		Name:     "Dup",
	}, "", "")
	assert.ErrorIs(t, err, auth.ErrEmailExists)

	login, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	}, "", "")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = svc.Login(ctx, auth.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	}, "", "")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-pass",
	}, "", "")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshRotationDetectsReuse(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	reg := register(t, svc, "rotate@example.com")
	first := reg.Tokens.RefreshToken

	rotated, err := svc.Refresh(ctx, first, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, first, rotated.Tokens.RefreshToken)

	_, err = svc.Refresh(ctx, first, "", "")
	assert.ErrorIs(t, err, auth.ErrTokenReuse)

	_, err = svc.Refresh(ctx, rotated.Tokens.RefreshToken, "", "")
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestLogoutAllInvalidatesAccessTokens(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	reg := register(t, svc, "logout@example.com")

	claims, err := svc.VerifyAccessToken(ctx, reg.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	sessions, err := svc.GetActiveSessions(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	require.NoError(t, svc.LogoutAll(ctx, reg.User.ID))

	_, err = svc.VerifyAccessToken(ctx, reg.Tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)

	sessions, err = svc.GetActiveSessions(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestChangePassword(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	reg := register(t, svc, "change@example.com")

	err := svc.ChangePassword(ctx, reg.User.ID, "not-it", "brand-new-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(
		ctx,
		reg.User.ID,
		"correct-horse",
		"brand-new-pass",
	))

	_, err = svc.Login(ctx, auth.LoginRequest{
		Email:    "change@example.com",
		Password: "brand-new-pass",
	}, "", "")
	assert.NoError(t, err)
}
