package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setStore(t *testing.T, prefix string) {
	t.Helper()
	t.Setenv(prefix+"_S3_ENDPOINT", "https://s3.us-east-005.backblazeb2.com")
	t.Setenv(prefix+"_S3_ACCESS_KEY_ID", "key")
	t.Setenv(prefix+"_S3_SECRET_ACCESS_KEY", "secret")
	t.Setenv(prefix+"_S3_BUCKET", "bucket-"+prefix)
	t.Setenv(prefix+"_S3_PUBLIC_BASE_URL", "https://f005.backblazeb2.com/file/bucket/")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/chess?sslmode=disable")
	setStore(t, "IMAGES")
	setStore(t, "PGN")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, defaultEngineAPIURL, cfg.EngineAPIURL)
	assert.Equal(t, defaultAllowedOrigins, cfg.AllowedOrigins)
	assert.Equal(t, "auto", cfg.PGN.Region)
	assert.Equal(t, "bucket-IMAGES", cfg.Images.BucketName)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/chess")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	setStore(t, "IMAGES")
	setStore(t, "PGN")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/chess")
		t.Setenv("SERVER_PORT", "70000")
		_, err := Load()
		assert.ErrorContains(t, err, "SERVER_PORT")
	})

	t.Run("missing pgn store", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/chess")
		setStore(t, "IMAGES")
		t.Setenv("PGN_S3_BUCKET", "")
		_, err := Load()
		assert.ErrorContains(t, err, "PGN_S3_BUCKET")
	})
}
