package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront_api/internal/model"
	"storefront_api/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T, secret string) (AuthService, *utils.TokenService) {
	t.Helper()
	digest, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)

	repo := &stubUserRepo{byUsername: map[string]*model.User{
		"alice": {ID: 7, Username: "alice", Email: "alice@example.com", PasswordHash: digest},
	}}
	tokens := utils.NewTokenService(secret, time.Hour)
	return NewAuthService(repo, utils.BcryptHasher{}, tokens), tokens
}

func TestAuthService_LoginThenValidate(t *testing.T) {
	auth, tokens := newAuthFixture(t, "test-secret")

	token, err := auth.Login(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, 7, claims.UserID)
	assert.False(t, claims.IsAdmin)
}

func TestAuthService_WrongPassword(t *testing.T) {
	auth, _ := newAuthFixture(t, "test-secret")

	token, err := auth.Login(context.Background(), "alice", "wrong")

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestAuthService_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	auth, _ := newAuthFixture(t, "test-secret")

	_, err := auth.Login(context.Background(), "mallory", "correct-horse")

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, model.ErrNotFound)
}

func TestAuthService_MissingSecret(t *testing.T) {
	auth, _ := newAuthFixture(t, "")

	_, err := auth.Login(context.Background(), "alice", "correct-horse")

	assert.ErrorIs(t, err, model.ErrMissingSigningKey)
}

func TestAuthService_StoreFailure(t *testing.T) {
	repo := &stubUserRepo{err: errors.New("pool closed")}
	auth := NewAuthService(repo, utils.BcryptHasher{}, utils.NewTokenService("s", time.Hour))

	_, err := auth.Login(context.Background(), "alice", "pw")

	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrInvalidCredentials)
}
