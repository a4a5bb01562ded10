package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/request-board/internal/constants"
	"github.com/yukikurage/request-board/internal/middleware"
	"github.com/yukikurage/request-board/internal/repository"
	"github.com/yukikurage/request-board/internal/services"
)

type handlerTestEnv struct {
	board  *services.Board
	router *gin.Engine
}

func setupHandlerTestEnv(t *testing.T, opts services.BoardOptions) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	if opts.AdminSecret == "" {
		opts.AdminSecret = "admin123"
	}
	board, err := services.NewBoard(repository.NewMemoryKVRepository(), opts, logrus.NewEntry(log))
	require.NoError(t, err)

	authHandler := NewAuthHandler(board)
	requestHandler := NewRequestHandler(board)
	adminHandler := NewAdminHandler()
	boardHandler := NewBoardHandler(board)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.BoardSession(board))

	r.POST("/api/auth/signup", authHandler.Signup)
	r.POST("/api/auth/login", authHandler.Login)
	r.POST("/api/auth/logout", authHandler.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
	r.GET("/api/auth/remembered", authHandler.GetRememberedLogin)
	r.GET("/api/users", authHandler.ListUsers)

	r.GET("/api/requests", requestHandler.ListRequests)
	r.POST("/api/requests", requestHandler.CreateRequest)
	r.POST("/api/requests/draft", requestHandler.DraftRequests)
	r.GET("/api/requests/:id", middleware.RequireRequest(board.Requests), requestHandler.GetRequest)
	r.PUT("/api/requests/:id", middleware.RequireAdmin(), middleware.RequireRequest(board.Requests), requestHandler.UpdateRequest)
	r.POST("/api/requests/:id/advance", middleware.RequireAdmin(), requestHandler.AdvanceStatus)

	r.GET("/api/tags", boardHandler.TagReport)
	r.GET("/api/analytics", middleware.RequireAdmin(), boardHandler.Analytics)
	r.GET("/api/analytics/teams/:team", boardHandler.TeamBreakdown)

	r.GET("/api/admin", adminHandler.GetState)
	r.POST("/api/admin/elevate", adminHandler.RequestElevation)
	r.POST("/api/admin/password", adminHandler.SubmitPassword)
	r.POST("/api/admin/revoke", adminHandler.Revoke)

	return handlerTestEnv{board: board, router: r}
}

// client replays the session cookie between requests like a browser.
type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func (env handlerTestEnv) newClient(t *testing.T) *client {
	return &client{t: t, router: env.router, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(method, path string, payload any) *httptest.ResponseRecorder {
	c.t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(c.t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) becomeAdmin() {
	c.t.Helper()
	w := c.do(http.MethodPost, "/api/admin/password", map[string]string{"password": "admin123"})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}
