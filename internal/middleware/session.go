package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/request-board/internal/constants"
	"github.com/yukikurage/request-board/internal/repository"
	"github.com/yukikurage/request-board/internal/services"
)

// BoardSession binds the board to the caller's gin session so the current
// user and admin flag are scoped per browser session.
// Must run after sessions.Sessions.
func BoardSession(board *services.Board) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := repository.NewSessionKVRepository(sessions.Default(c))
		c.Set(constants.ContextKeySession, board.Session(scope))
		c.Next()
	}
}

// GetSession retrieves the session views bound by BoardSession
func GetSession(c *gin.Context) (*services.Session, bool) {
	value, exists := c.Get(constants.ContextKeySession)
	if !exists {
		return nil, false
	}
	session, ok := value.(*services.Session)
	return session, ok
}
