package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoadsOnFirstUse(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	AppConfig = nil
	t.Cleanup(func() { AppConfig = nil })

	cfg := Get()
	require.NotNil(t, cfg)
	assert.Equal(t, "test", cfg.AppEnv)
	assert.Same(t, cfg, Get())
}
