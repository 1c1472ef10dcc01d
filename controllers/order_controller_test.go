package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	req.Host = "api.example.test"
	c.Request = req
	return c
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	ctrl := NewOrderController()

	c := testContext(t, "/orders")
	page, limit := ctrl.getPaginationParams(c, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
}

func TestGetPaginationParamsClamped(t *testing.T) {
	ctrl := NewOrderController()

	c := testContext(t, "/orders?page=-3&limit=9999")
	page, limit := ctrl.getPaginationParams(c, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	c = testContext(t, "/orders?page=4&limit=25")
	page, limit = ctrl.getPaginationParams(c, 10)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}

func TestBuildResponseMetaAndLinks(t *testing.T) {
	ctrl := NewOrderController()

	c := testContext(t, "/orders?page=2&limit=10&status=Processing")
	resp := ctrl.buildResponse(c, "ok", []string{}, 2, 10, 35)

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 35, resp.Meta.TotalItems)
	assert.Equal(t, 4, resp.Meta.TotalPages)

	assert.Contains(t, resp.Links.Self, "page=2")
	assert.Contains(t, resp.Links.Prev, "page=1")
	assert.Contains(t, resp.Links.Next, "page=3")
	assert.Contains(t, resp.Links.Self, "status=Processing")
}

func TestBuildResponseFirstAndLastPage(t *testing.T) {
	ctrl := NewOrderController()

	c := testContext(t, "/orders?page=1&limit=10")
	resp := ctrl.buildResponse(c, "ok", nil, 1, 10, 20)
	assert.Empty(t, resp.Links.Prev)
	assert.NotEmpty(t, resp.Links.Next)

	c = testContext(t, "/orders?page=2&limit=10")
	resp = ctrl.buildResponse(c, "ok", nil, 2, 10, 20)
	assert.NotEmpty(t, resp.Links.Prev)
	assert.Empty(t, resp.Links.Next)
}

func TestBuildResponseEmptyResult(t *testing.T) {
	ctrl := NewOrderController()

	c := testContext(t, "/orders")
	resp := ctrl.buildResponse(c, "ok", nil, 1, 10, 0)
	assert.Equal(t, 0, resp.Meta.TotalPages)
	assert.Equal(t, 1, resp.Meta.Page)
}
