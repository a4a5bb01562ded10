package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/request-board/internal/metrics"
	"github.com/yukikurage/request-board/internal/repository"
	"github.com/yukikurage/request-board/internal/services"
)

func setupRouter(t *testing.T) (*gin.Engine, *services.Board) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)
	entry := logrus.NewEntry(log)

	board, err := services.NewBoard(repository.NewMemoryKVRepository(), services.BoardOptions{AdminSecret: "admin123"}, entry)
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	detach := metrics.NewRecorder(registry).Attach(board.Requests)
	t.Cleanup(detach)

	return NewRouter(Deps{
		Board:        board,
		SessionStore: cookie.NewStore([]byte("secret")),
		Gatherer:     registry,
		Log:          entry,
	}), board
}

func TestRouter_Health(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRouter_Metrics(t *testing.T) {
	r, board := setupRouter(t)

	_, err := board.Requests.AdvanceStatus("1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	require.Contains(t, body, `request_board_requests{status="Under Review"} 2`)
	require.Contains(t, body, `request_board_mutations_total{op="advance"} 1`)
}

func TestRouter_AdminGatedRoutes(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/requests/1/advance", nil))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/password", strings.NewReader(`{"password":"admin123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/requests/1/advance", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"progress":25`)
}

func TestRouter_RequestsList(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/requests?team=design-team", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Website Redesign")
	require.Contains(t, w.Body.String(), `"total":2`)
}
