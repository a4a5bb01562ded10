package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(query string) PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams(t *testing.T) {
	assert.Equal(t, PaginationParams{Page: 1, Limit: 20, Offset: 0}, paramsFor(""))
	assert.Equal(t, PaginationParams{Page: 3, Limit: 10, Offset: 20}, paramsFor("page=3&limit=10"))
	assert.Equal(t, PaginationParams{Page: 1, Limit: 20, Offset: 0}, paramsFor("page=-2&limit=500"))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Paginate(items, PaginationParams{Page: 1, Limit: 2, Offset: 0}))
	assert.Equal(t, []int{5}, Paginate(items, PaginationParams{Page: 3, Limit: 2, Offset: 4}))
	assert.Equal(t, []int{}, Paginate(items, PaginationParams{Page: 4, Limit: 2, Offset: 6}))
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
