package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)

	// Transport config
	assert.Equal(t, 0, cfg.Transport.TimeoutSeconds)
	assert.Equal(t, time.Duration(0), cfg.Transport.Timeout())
	assert.Empty(t, cfg.Transport.Proxy)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPartialEnvironmentKeepsDefaults(t *testing.T) {
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	want := Default()
	want.Server.Port = "9100"
	assert.Equal(t, want, cfg)
}

func TestLoadDefaultsMatchDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                      "9000",
		"HOST":                      "0.0.0.0",
		"TRANSPORT_TIMEOUT_SECONDS": "15",
		"TRANSPORT_PROXY":           "http://proxy:3128",
		"LOG_LEVEL":                 "debug",
		"LOG_DEV":                   "true",
		"RATE_LIMIT_RPS":            "500",
		"RATE_LIMIT_BURST":          "1000",
		"RATE_LIMIT_ENABLED":        "false",
		"CORS_ALLOW_ORIGINS":        "http://localhost:5173,app://shell",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 15*time.Second, cfg.Transport.Timeout())
	assert.Equal(t, "http://proxy:3128", cfg.Transport.Proxy)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"http://localhost:5173", "app://shell"}, cfg.CORS.AllowOrigins)
}

func TestLoadInvalidEnvironment(t *testing.T) {
	t.Run("non numeric", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_RPS", "fast")
		_, err := Load()
		assert.ErrorContains(t, err, "failed to load config")
	})

	t.Run("unknown level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		_, err := Load()
		assert.ErrorContains(t, err, "unknown log level")
	})

	t.Run("negative timeout", func(t *testing.T) {
		t.Setenv("TRANSPORT_TIMEOUT_SECONDS", "-1")
		_, err := Load()
		assert.ErrorContains(t, err, "timeout")
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithFile(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "bridge.yaml", `
server:
  port: "9100"
transport:
  timeout_seconds: 5
logging:
  level: warn
cors:
  allow_origins: ["app://shell"]
`)
		cfg, err := LoadWithFile(path)
		require.NoError(t, err)

		assert.Equal(t, "9100", cfg.Server.Port)
		assert.Equal(t, "127.0.0.1", cfg.Server.Host, "keys absent from the file keep env defaults")
		assert.Equal(t, 5*time.Second, cfg.Transport.Timeout())
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, []string{"app://shell"}, cfg.CORS.AllowOrigins)
	})

	t.Run("toml", func(t *testing.T) {
		path := writeFile(t, "bridge.toml", `
[server]
host = "0.0.0.0"

[rate_limit]
requests_per_second = 10
burst = 20
`)
		cfg, err := LoadWithFile(path)
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, "8000", cfg.Server.Port)
		assert.Equal(t, 10, cfg.RateLimit.RequestsPerSecond)
		assert.Equal(t, 20, cfg.RateLimit.Burst)
	})

	t.Run("file wins over env", func(t *testing.T) {
		t.Setenv("PORT", "7000")
		path := writeFile(t, "bridge.yml", "server:\n  port: \"7100\"\n")

		cfg, err := LoadWithFile(path)
		require.NoError(t, err)
		assert.Equal(t, "7100", cfg.Server.Port)
	})

	t.Run("empty path", func(t *testing.T) {
		cfg, err := LoadWithFile("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "bridge.json", `{}`)
		_, err := LoadWithFile(path)
		assert.ErrorContains(t, err, "unsupported config format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWithFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeFile(t, "bridge.yaml", "logging:\n  level: loud\n")
		_, err := LoadWithFile(path)
		assert.ErrorContains(t, err, "unknown log level")
	})
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "bridge.yaml", "logging:\n  level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var levels []string
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zap.NewNop(), func(cfg *Config) {
			mu.Lock()
			defer mu.Unlock()
			levels = append(levels, cfg.Logging.Level)
		})
	}()

	// Rewrite until the watcher has been installed and observed a change
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644)
		mu.Lock()
		defer mu.Unlock()
		return len(levels) > 0
	}, 5*time.Second, 50*time.Millisecond)

	mu.Lock()
	assert.Equal(t, "debug", levels[len(levels)-1])
	mu.Unlock()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "bridge.yaml"), nil, func(*Config) {})
	assert.Error(t, err)
}
