package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/request-board/internal/constants"
	apierrors "github.com/yukikurage/request-board/internal/errors"
	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/services"
)

// RequireRequest loads the request named by the :id parameter into the
// context, or responds 404.
func RequireRequest(store *services.RequestStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := store.Get(c.Param("id"))
		if !ok {
			apierrors.NotFound(c, "Request not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyRequest, req)
		c.Next()
	}
}

// GetRequest retrieves the request loaded by RequireRequest
func GetRequest(c *gin.Context) (models.Request, bool) {
	value, exists := c.Get(constants.ContextKeyRequest)
	if !exists {
		return models.Request{}, false
	}
	req, ok := value.(models.Request)
	return req, ok
}
