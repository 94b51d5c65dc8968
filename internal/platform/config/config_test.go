package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, NotifyBackendLocal, cfg.NotifyBackend)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load("testdata/does-not-exist.env")
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("NOTIFY_BACKEND", "carrier-pigeon")

	_, err := Load("testdata/does-not-exist.env")
	assert.Error(t, err)
}

func TestSecureCookies(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)
	assert.False(t, cfg.SecureCookies())
	assert.False(t, cfg.WSRequireAuth)

	t.Setenv("ENV", "production")
	t.Setenv("WS_REQUIRE_AUTH", "true")
	cfg, err = Load("testdata/does-not-exist.env")
	require.NoError(t, err)
	assert.True(t, cfg.SecureCookies())
	assert.True(t, cfg.WSRequireAuth)
}
