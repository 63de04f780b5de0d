package utils

import (
	"fmt"
	"strconv"
	"time"

	"storefront_api/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the lifetime of every issued token. There is no revocation: a
// token stays valid for its full TTL whatever happens to the account.
const TokenTTL = time.Hour

// Claims custom claims for JWT
type Claims struct {
	UserID   int    `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed, time-limited identity tokens
type TokenService struct {
	secretKey string
	ttl       time.Duration
}

// NewTokenService creates a new TokenService. An empty secret is accepted so
// that a missing JWT_SECRET surfaces at issuance time instead of at startup.
func NewTokenService(secretKey string, ttl time.Duration) *TokenService {
	return &TokenService{secretKey: secretKey, ttl: ttl}
}

// Issue generates a new token for the given identity
func (ts *TokenService) Issue(userID int, username string, isAdmin bool) (string, error) {
	if ts.secretKey == "" {
		return "", model.ErrMissingSigningKey
	}

	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.Itoa(userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ts.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Validate parses the token and returns its claims. Every failure matches
// model.ErrInvalidToken.
func (ts *TokenService) Validate(tokenString string) (*Claims, error) {
	if ts.secretKey == "" {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidToken, model.ErrMissingSigningKey)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(ts.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, model.ErrInvalidToken
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: missing subject id", model.ErrInvalidToken)
	}
	if err := requireIdentityClaims(tokenString); err != nil {
		return nil, err
	}
	return claims, nil
}

// requireIdentityClaims rejects a verified token whose payload lacks the
// username or is_admin claim; zero values alone cannot tell them apart.
func requireIdentityClaims(tokenString string) error {
	raw := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, raw); err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	for _, key := range []string{"username", "is_admin"} {
		if _, ok := raw[key]; !ok {
			return fmt.Errorf("%w: invalid token payload, missing %s", model.ErrInvalidToken, key)
		}
	}
	return nil
}
