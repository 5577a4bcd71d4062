package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"job_portal_backend/internal/api"
	"job_portal_backend/internal/domain/access"
)

// ContextCaller is the Gin context key holding the authenticated access.Caller.
const ContextCaller = "caller"

// TokenParser verifies a raw token string.
type TokenParser interface {
	ParseToken(tokenStr string) (*Claims, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
//   - missing or non-Bearer Authorization header: 401
//   - bad signature, expired token, or unknown role: 403
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}

		// 2. Verify signature and expiry
		claims, err := parser.ParseToken(tokenStr)
		if err != nil {
			logrus.WithFields(logrus.Fields{"error": err, "remote_addr": c.ClientIP()}).Debug("token rejected")
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "invalid token"})
			return
		}

		role := access.Role(claims.Role)
		if !role.Valid() {
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "invalid token"})
			return
		}

		// 3. Expose caller to handlers
		c.Set(ContextCaller, access.Caller{UserID: claims.UserID, Role: role})
		c.Next()
	}
}

// CallerFrom returns the caller stored by AuthRequired.
func CallerFrom(c *gin.Context) (access.Caller, bool) {
	v, ok := c.Get(ContextCaller)
	if !ok {
		return access.Caller{}, false
	}
	caller, ok := v.(access.Caller)
	return caller, ok
}

// RequireCaller returns the authenticated caller, or aborts with 401 when the
// route was mounted without AuthRequired.
func RequireCaller(c *gin.Context) (access.Caller, bool) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
	}
	return caller, ok
}
