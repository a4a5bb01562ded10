package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/request-board/internal/errors"
	"github.com/yukikurage/request-board/internal/middleware"
	"github.com/yukikurage/request-board/internal/services"
)

// respondServiceError maps board errors onto the API error envelope.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.MissingFields(c, "Please fill in all required fields", validationErr.Fields)
	case errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrDuplicateRequest):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAdminDenied):
		apierrors.Forbidden(c, apierrors.ErrCodeAdminDenied, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrAINoDraftsGenerated),
		errors.Is(err, services.ErrAINoValidDrafts):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

// mustSession returns the bound session or writes a 500.
func mustSession(c *gin.Context) (*services.Session, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		apierrors.InternalError(c, "Session not initialized")
		return nil, false
	}
	return session, true
}
