package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config "github.com/sufia0/social-dashboard/configs"
	"github.com/sufia0/social-dashboard/internal/apperrors"
	"github.com/sufia0/social-dashboard/pkg/utils"
)

func newTestAuthService(users *fakeUserRepo) AuthService {
	return NewAuthService(config.Config{SecretKey: "test-secret"}, users)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	userID, err := svc.Register(ctx, "user@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotZero(t, userID)

	// Hash at rest, never the raw password.
	user, exists, err := users.GetByID(ctx, userID)
	require.NoError(t, err)
	require.True(t, exists)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	token, err := svc.Login(ctx, "user@example.com", "correct horse battery")
	require.NoError(t, err)

	claims, err := utils.ValidateToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Register(ctx, "dup@example.com", "password-one")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@example.com", "password-two")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Register(ctx, "user@example.com", "right password")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "user@example.com", "wrong password")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
}
