package handler

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyntrixhost/portal_go_server/internal/pkg/response"
)

func TestPlanHandler_List(t *testing.T) {
	handler := NewPlanHandler(testHandlerConfig())

	router := gin.New()
	router.GET("/plans", handler.List)

	w := performRequest(router, "GET", "/plans", nil)
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)

	plans, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, plans, 3)

	first, ok := plans[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Bronze", first["name"])
	assert.Equal(t, 20.00, first["monthly_price"])

	second := plans[1].(map[string]interface{})
	assert.Equal(t, true, second["is_popular"])
}
