package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestPageParamsDefaults(t *testing.T) {
	page, size := pageParams(ctxWithQuery(""))
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)
}

func TestPageParamsClamping(t *testing.T) {
	page, size := pageParams(ctxWithQuery("page=-3&pageSize=100000"))
	assert.Equal(t, 1, page)
	assert.Equal(t, MaxPageSize, size)

	page, size = pageParams(ctxWithQuery("page=4&pageSize=15"))
	assert.Equal(t, 4, page)
	assert.Equal(t, 15, size)
}

func TestCreatePaginatedResponseTotals(t *testing.T) {
	resp := CreatePaginatedResponse(ctxWithQuery("page=2&pageSize=10"), nil, 41)
	assert.Equal(t, 5, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, int64(41), resp.TotalRows)
}
