package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/request-board/internal/services"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
		body string
	}{
		{&services.ValidationError{Fields: []string{"team"}}, http.StatusBadRequest, "MISSING_FIELD"},
		{services.ErrRequestNotFound, http.StatusNotFound, "NOT_FOUND"},
		{services.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{services.ErrDuplicateEmail, http.StatusConflict, "ALREADY_EXISTS"},
		{services.ErrDuplicateRequest, http.StatusConflict, "ALREADY_EXISTS"},
		{services.ErrAdminDenied, http.StatusForbidden, "ADMIN_DENIED"},
		{services.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{services.ErrAIServiceNotConfigured, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{fmt.Errorf("wrapped: %w", services.ErrAINoValidDrafts), http.StatusBadRequest, "INVALID_INPUT"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tc.err)

			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.body, decode[errorBody](t, w).Code)
		})
	}
}
