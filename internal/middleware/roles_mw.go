package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	MsgAdminOnly    = "Access restricted to admins"
	MsgUnauthorized = "Unauthorized access"
)

// RequireAdmin lets only admin identities through. Run after Authenticate.
func RequireAdmin() Check {
	return CheckFunc(func(c *gin.Context) Outcome {
		id, ok := GetIdentity(c)
		if !ok || !id.IsAdmin {
			return Terminate(http.StatusForbidden, MsgAdminOnly)
		}
		return Continue
	})
}

// RequireSelfOrAdmin lets through admins and the identity whose id equals the
// path parameter param. Run after Authenticate.
func RequireSelfOrAdmin(param string) Check {
	return CheckFunc(func(c *gin.Context) Outcome {
		id, ok := GetIdentity(c)
		if !ok {
			return Terminate(http.StatusForbidden, MsgUnauthorized)
		}
		if id.IsAdmin {
			return Continue
		}
		target, err := strconv.Atoi(c.Param(param))
		if err != nil || target != id.ID {
			return Terminate(http.StatusForbidden, MsgUnauthorized)
		}
		return Continue
	})
}
