package service

import (
	"context"
	"errors"
	"fmt"

	"storefront_api/internal/logger"
	"storefront_api/internal/metrics"
	"storefront_api/internal/model"
	"storefront_api/internal/repository"
)

// TokenIssuer mints identity tokens. *utils.TokenService implements it.
type TokenIssuer interface {
	Issue(userID int, username string, isAdmin bool) (string, error)
}

// PasswordVerifier checks a plaintext password against a stored digest
type PasswordVerifier interface {
	Verify(plain, digest string) bool
}

// AuthService provides authentication related services
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	tokens   TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, verifier PasswordVerifier, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		verifier: verifier,
		tokens:   tokens,
	}
}

// Login verifies the credentials and returns a freshly issued token. An
// unknown username and a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepo.FindCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", model.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to load credentials: %w", err)
	}

	if !s.verifier.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		log.Debug().Str("username", username).Msg("password mismatch")
		return "", model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	log.Info().Int("user_id", user.ID).Msg("user logged in")
	return token, nil
}
