package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/request-board/internal/errors"
)

// RequireAdmin hides admin-only board controls from sessions that are not in
// admin mode. This gates UI affordances only.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			apierrors.InternalError(c, "Session not initialized")
			c.Abort()
			return
		}

		if !session.Admin.IsAdmin() {
			apierrors.Forbidden(c, apierrors.ErrCodeAdminRequired, "Admin mode required")
			c.Abort()
			return
		}

		c.Next()
	}
}
