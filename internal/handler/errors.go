package handler

import (
	"errors"
	"net/http"
	"strconv"

	"storefront_api/internal/logger"
	"storefront_api/internal/model"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its status and body. Anything outside
// the taxonomy is logged and answered with a generic "Failed to <action>".
func respondError(c *gin.Context, err error, action string) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
	case errors.Is(err, model.ErrMissingSigningKey):
		logger.FromContext(ctx).Error().Err(err).Msg("JWT_SECRET is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No JWT Key Available"})
	case errors.Is(err, model.ErrValidation):
		msg := err.Error()
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			msg = ve.Message
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	case errors.Is(err, model.ErrNotFound):
		logger.LookupMiss(ctx, err)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists"})
	default:
		logger.FromContext(ctx).Error().Err(err).Str("action", action).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// pathID parses a positive integer path parameter, answering 400 otherwise
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}
