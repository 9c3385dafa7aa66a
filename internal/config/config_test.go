package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideapad/internal/adapters/driven/config/file"
)

func newStore(t *testing.T) *file.ConfigStore {
	t.Helper()
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, DefaultBackendTimeout, cfg.BackendTimeout)
	assert.Equal(t, DefaultServeAddr, cfg.ServeAddr)
	assert.Equal(t, DefaultEchoAddr, cfg.EchoAddr)
	assert.Equal(t, DefaultAllowedOrigins, cfg.AllowedOrigins)
	assert.False(t, cfg.ServeMemory)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set(KeyBackendURL, "https://ideas.example.test"))
	require.NoError(t, store.Set(KeyBackendTimeout, "30s"))
	require.NoError(t, store.Set(KeyServeMemory, true))
	require.NoError(t, store.Set(KeyServeRateLimit, 5.5))
	require.NoError(t, store.Set(KeyServeOrigins, []string{"https://app.test"}))

	cfg, err := Load(store)
	require.NoError(t, err)

	assert.Equal(t, "https://ideas.example.test", cfg.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.BackendTimeout)
	assert.True(t, cfg.ServeMemory)
	assert.InDelta(t, 5.5, cfg.RateLimit, 0.001)
	assert.Equal(t, []string{"https://app.test"}, cfg.AllowedOrigins)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set(KeyBackendURL, "https://file.test"))

	t.Setenv("IDEAPAD_BACKEND_URL", "https://env.test")
	t.Setenv("IDEAPAD_BACKEND_TIMEOUT", "2s")
	t.Setenv("IDEAPAD_SERVE_ALLOWED_ORIGINS", "https://a.test,https://b.test")

	cfg, err := Load(store)
	require.NoError(t, err)

	assert.Equal(t, "https://env.test", cfg.BackendURL)
	assert.Equal(t, 2*time.Second, cfg.BackendTimeout)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad url", func(t *testing.T) {
		t.Setenv("IDEAPAD_BACKEND_URL", "ftp://nope")
		_, err := Load(nil)
		assert.Error(t, err)
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("IDEAPAD_SERVE_BURST", "many")
		_, err := Load(nil)
		assert.Error(t, err)
	})

	t.Run("bad file duration", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(KeyBackendTimeout, "soon"))
		_, err := Load(store)
		assert.Error(t, err)
	})
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		raw  any
		want time.Duration
	}{
		{"15", 15 * time.Second},
		{"1m", time.Minute},
		{int64(3), 3 * time.Second},
		{7, 7 * time.Second},
	}
	for _, tt := range tests {
		got, err := parseDuration(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := parseDuration(true)
	assert.Error(t, err)
}
