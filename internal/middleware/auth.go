package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/request-board/internal/constants"
	apierrors "github.com/yukikurage/request-board/internal/errors"
)

// RequireAuth checks that the session has a current user
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			apierrors.InternalError(c, "Session not initialized")
			c.Abort()
			return
		}

		user, ok := session.Users.CurrentUser()
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}
