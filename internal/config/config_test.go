package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BRISA_STORAGE", "")
	t.Setenv("BRISA_API_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, "file", cfg.Storage)
	assert.Equal(t, 60*time.Minute, cfg.MockTokenTTL)
	assert.False(t, cfg.HasR2())
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:4173"}, cfg.CORSOrigins)
}

func TestLoadCORSOrigins(t *testing.T) {
	t.Setenv("BRISA_CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadStripsTrailingSlashes(t *testing.T) {
	t.Setenv("BRISA_API_URL", "https://colegio.example/api///")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://colegio.example/api", cfg.APIBaseURL)
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("BRISA_STORAGE", "redis")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadPostgresNeedsDatabaseURL(t *testing.T) {
	t.Setenv("BRISA_STORAGE", "postgres")
	t.Setenv("BRISA_DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BRISA_DATABASE_URL", "postgres://localhost/brisa")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Storage)
}

func TestLoadR2(t *testing.T) {
	t.Setenv("BRISA_R2_ACCESS_KEY_ID", "key")
	t.Setenv("BRISA_R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("BRISA_R2_ENDPOINT", "https://acc.r2.cloudflarestorage.com")
	t.Setenv("BRISA_R2_BUCKET_NAME", "reports")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.HasR2())
}
