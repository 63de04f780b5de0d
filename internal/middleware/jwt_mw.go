package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront_api/internal/logger"
	"storefront_api/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthIdentityKey = "authIdentity"

	MsgTokenRequired = "Token required"
	MsgTokenInvalid  = "Token invalid or expired"
)

// Identity is the authenticated caller attached to a request
type Identity struct {
	ID       int
	Username string
	IsAdmin  bool
}

type identityCtxKey struct{}

// TokenValidator validates a bearer token. *utils.TokenService implements it.
type TokenValidator interface {
	Validate(token string) (*utils.Claims, error)
}

// IdentityFromContext returns the identity attached by Authenticate
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok
}

// GetIdentity returns the identity attached to the gin context
func GetIdentity(c *gin.Context) (Identity, bool) {
	val, exists := c.Get(AuthIdentityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := val.(Identity)
	return id, ok
}

func setIdentity(c *gin.Context, id Identity) {
	c.Set(AuthIdentityKey, id)
	ctx := context.WithValue(c.Request.Context(), identityCtxKey{}, id)
	log := logger.FromContext(ctx).With().Int("user_id", id.ID).Logger()
	c.Request = c.Request.WithContext(log.WithContext(ctx))
}

// bearerToken extracts <token> from "Bearer <token>"
func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Authenticate requires a valid bearer token and attaches its identity
func Authenticate(tokens TokenValidator) Check {
	return CheckFunc(func(c *gin.Context) Outcome {
		tokenString, ok := bearerToken(c)
		if !ok {
			return Terminate(http.StatusUnauthorized, MsgTokenRequired)
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			logger.FromContext(c.Request.Context()).Debug().Err(err).Msg("token rejected")
			return Terminate(http.StatusForbidden, MsgTokenInvalid)
		}

		setIdentity(c, Identity{ID: claims.UserID, Username: claims.Username, IsAdmin: claims.IsAdmin})
		return Continue
	})
}

// OptionalAuthenticate attaches the identity of a valid bearer token when one
// is present. It never terminates.
func OptionalAuthenticate(tokens TokenValidator) Check {
	return CheckFunc(func(c *gin.Context) Outcome {
		tokenString, ok := bearerToken(c)
		if !ok {
			return Continue
		}
		if claims, err := tokens.Validate(tokenString); err == nil {
			setIdentity(c, Identity{ID: claims.UserID, Username: claims.Username, IsAdmin: claims.IsAdmin})
		}
		return Continue
	})
}
