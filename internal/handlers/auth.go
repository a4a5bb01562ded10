package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/request-board/internal/dto"
	apierrors "github.com/yukikurage/request-board/internal/errors"
	"github.com/yukikurage/request-board/internal/middleware"
	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/services"
)

// AuthHandler coordinates sign-up, login and logout.
type AuthHandler struct {
	board *services.Board
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(board *services.Board) *AuthHandler {
	return &AuthHandler{
		board: board,
	}
}

// Signup registers a new user and makes it the session's current user.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name     string          `json:"name"`
		Email    string          `json:"email"`
		Password string          `json:"password"`
		Role     models.UserRole `json:"role"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.Role != "" && req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		apierrors.BadRequest(c, "role must be user or admin")
		return
	}

	session, ok := mustSession(c)
	if !ok {
		return
	}

	user, err := session.Users.Register(models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully!",
		"user":    dto.ToUserDTO(user),
	})
}

// Login authenticates by name or email.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Input      string `json:"input"`
		Password   string `json:"password"`
		RememberMe bool   `json:"remember_me"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	session, ok := mustSession(c)
	if !ok {
		return
	}

	user, err := session.Auth.Login(services.LoginInput{
		Input:      req.Input,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"user":    dto.ToUserDTO(user),
	})
}

// Logout clears the current user and admin mode.
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	if err := session.Auth.Logout(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the directory record of the session's user. Must run
// after RequireAuth.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	session, ok := mustSession(c)
	if !ok {
		return
	}

	user, err := session.Users.Lookup(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// GetRememberedLogin returns the values saved by a "remember me" login.
func (h *AuthHandler) GetRememberedLogin(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	remembered, ok := session.Auth.RememberedLogin()
	if !ok {
		apierrors.NotFound(c, "No remembered login")
		return
	}

	c.JSON(http.StatusOK, remembered)
}

// ListUsers returns the user directory.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(session.Users.List()),
	})
}
