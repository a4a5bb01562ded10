package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/request-board/internal/dto"
	apierrors "github.com/yukikurage/request-board/internal/errors"
)

// AdminHandler drives the admin-mode toggle.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// GetState returns the session's admin flag and prompt visibility
func (h *AdminHandler) GetState(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminStateDTO(session.Admin.State()))
}

// RequestElevation opens the password prompt
func (h *AdminHandler) RequestElevation(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	if err := session.Admin.RequestElevation(); err != nil {
		apierrors.InternalError(c, "Failed to open admin prompt")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminStateDTO(session.Admin.State()))
}

// SubmitPassword grants admin mode when the password matches
func (h *AdminHandler) SubmitPassword(c *gin.Context) {
	type SubmitPasswordRequest struct {
		Password string `json:"password"`
	}

	var req SubmitPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	session, ok := mustSession(c)
	if !ok {
		return
	}

	if err := session.Admin.SubmitPassword(req.Password); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin mode enabled",
		"state":   dto.ToAdminStateDTO(session.Admin.State()),
	})
}

// Revoke leaves admin mode
func (h *AdminHandler) Revoke(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	if err := session.Admin.Revoke(); err != nil {
		apierrors.InternalError(c, "Failed to leave admin mode")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin mode disabled",
		"state":   dto.ToAdminStateDTO(session.Admin.State()),
	})
}
