package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
	// аргументы go test не должны попадать в парсер
	saved := os.Args
	os.Args = os.Args[:1]
	t.Cleanup(func() { os.Args = saved })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URI", "CACHE_PATH", "FOLDER_PATH", "BASE_URL", "ENABLE_HTTPS",
		"MAX_UPLOAD_MB", "SESSION_TTL", "THUMBNAIL_WORKERS", "THUMBNAIL_QUEUE_SIZE", "TOKEN_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	clearEnv(t)
	resetFlagSet(t)
	cfg := NewConfig()

	assert.Equal(t, "file:filekeeper.db", cfg.DatabaseDSN)
	assert.Equal(t, "", cfg.CachePath)
	assert.Equal(t, "/tmp/files_manager", cfg.StoragePath)
	assert.Equal(t, "localhost:5000", cfg.BaseURL)
	assert.Equal(t, "http://localhost:5000", cfg.ServerURL())
	assert.Equal(t, int64(50), cfg.MaxUploadMB)
	assert.Equal(t, int64(50<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 2, cfg.ThumbnailWorkers)
	assert.Equal(t, 64, cfg.ThumbnailQueueSize)
	assert.Equal(t, "", cfg.TokenFile)
	assert.False(t, cfg.Version)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_FlagsApplyWhenEnvEmpty(t *testing.T) {
	clearEnv(t)
	resetFlagSet(t)
	os.Args = []string{os.Args[0], "-a", "127.0.0.1:9000", "-storage", "/srv/files", "-token-file", "/tmp/tok", "-version", "ls"}
	cfg := NewConfig()

	assert.Equal(t, "127.0.0.1:9000", cfg.BaseURL)
	assert.Equal(t, "/srv/files", cfg.StoragePath)
	assert.Equal(t, "/tmp/tok", cfg.TokenFile)
	assert.True(t, cfg.Version)
	assert.Equal(t, []string{"ls"}, flag.Args())
}

func TestNewConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URI", "postgres://u:p@db:5432/files")
	t.Setenv("CACHE_PATH", "/var/cache/fk")
	t.Setenv("FOLDER_PATH", "/data")
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("MAX_UPLOAD_MB", "10")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("THUMBNAIL_WORKERS", "4")
	t.Setenv("THUMBNAIL_QUEUE_SIZE", "8")

	resetFlagSet(t)
	cfg := NewConfig()

	assert.Equal(t, "postgres://u:p@db:5432/files", cfg.DatabaseDSN)
	assert.Equal(t, "/var/cache/fk", cfg.CachePath)
	assert.Equal(t, "/data", cfg.StoragePath)
	assert.Equal(t, "https://example.com:443", cfg.ServerURL())
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 4, cfg.ThumbnailWorkers)
	assert.Equal(t, 8, cfg.ThumbnailQueueSize)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_InvalidBaseURLFallback(t *testing.T) {
	// BASE_URL со схемой откатывается на значение по умолчанию
	clearEnv(t)
	t.Setenv("BASE_URL", "http://bad:8080")

	resetFlagSet(t)
	cfg := NewConfig()
	assert.Equal(t, "localhost:5000", cfg.BaseURL)
}

func TestConfig_Validate(t *testing.T) {
	ok := Config{
		DatabaseDSN:        "file:x.db",
		StoragePath:        "/tmp/x",
		BaseURL:            "localhost:5000",
		MaxUploadMB:        1,
		SessionTTL:         time.Minute,
		ThumbnailWorkers:   1,
		ThumbnailQueueSize: 1,
	}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.ThumbnailWorkers = 0
	assert.Error(t, bad.Validate())

	bad = ok
	bad.MaxUploadMB = 4096
	assert.Error(t, bad.Validate())

	bad = ok
	bad.StoragePath = ""
	assert.Error(t, bad.Validate())

	bad = ok
	bad.SessionTTL = 0
	assert.Error(t, bad.Validate())
}
