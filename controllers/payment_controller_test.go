package controllers

import (
	"mobile-shop/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Serverless entry points build the router without going through main,
// so handlers reading config must work even when LoadConfig was never
// called explicitly.
func TestGetStripeKeyWithoutExplicitLoadConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("STRIPE_PUBLISHABLE_KEY", "pk_test_abc123")

	config.AppConfig = nil
	t.Cleanup(func() { config.AppConfig = nil })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/payment/stripe-key", nil)
	require.NoError(t, err)
	c.Request = req

	ctrl := NewPaymentController()
	assert.NotPanics(t, func() { ctrl.GetStripeKey(c) })

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "pk_test_abc123")
}
