package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePortsFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPortsFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadPorts_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadPorts(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPorts(), cfg)
}

func TestLoadPorts_FullFile(t *testing.T) {
	path := writePortsFile(t, `{"http": 3100, "https": 3443, "host": "0.0.0.0"}`)

	cfg, err := LoadPorts(path)
	require.NoError(t, err)
	assert.Equal(t, PortConfig{HTTP: 3100, HTTPS: 3443, Host: "0.0.0.0"}, cfg)
}

func TestLoadPorts_PartialFileKeepsDefaults(t *testing.T) {
	path := writePortsFile(t, `{"http": 4000}`)

	cfg, err := LoadPorts(path)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.HTTP)
	assert.Equal(t, 8443, cfg.HTTPS)
	assert.Equal(t, "127.0.0.1", cfg.Host)
}

func TestLoadPorts_MalformedFallsBack(t *testing.T) {
	path := writePortsFile(t, `{"http": "eighty"`)

	cfg, err := LoadPorts(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultPorts(), cfg)
}

func TestLoadPorts_OutOfRangeFallsBack(t *testing.T) {
	for _, body := range []string{`{"http": 0}`, `{"http": 70000}`, `{"https": -1}`, `{"host": "  "}`} {
		cfg, err := LoadPorts(writePortsFile(t, body))
		assert.Error(t, err, body)
		assert.Equal(t, DefaultPorts(), cfg, body)
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "APP_NAME", "APP_VERSION", "APP_DOMAIN", "APP_HOST", "APP_PORT", "NSM_PORTS_FILE", "STATIC_DIR", "LOG_LEVEL", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "nsm-example", cfg.Name)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "localhost", cfg.Domain)
	assert.Equal(t, DefaultPortsFile, cfg.PortsFile)
	assert.Equal(t, "static", cfg.StaticDir)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.IsProd())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("APP_NAME", "demo")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := Load()
	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.IsProd())
}

func TestResolveAddr(t *testing.T) {
	ports := PortConfig{HTTP: 3100, HTTPS: 3443, Host: "127.0.0.1"}

	assert.Equal(t, "127.0.0.1:3100", Config{}.ResolveAddr(ports))
	assert.Equal(t, "0.0.0.0:9000", Config{Host: "0.0.0.0", Port: 9000}.ResolveAddr(ports))
	assert.Equal(t, "127.0.0.1:3100", Config{Port: 99999}.ResolveAddr(ports))
	assert.Equal(t, "[::1]:3100", Config{Host: "::1"}.ResolveAddr(ports))
}

func TestPortValid(t *testing.T) {
	assert.True(t, Config{}.PortValid())
	assert.True(t, Config{Port: 65535}.PortValid())
	assert.False(t, Config{Port: 70000}.PortValid())
	assert.False(t, Config{Port: -1}.PortValid())
}

func TestNSMEnabled(t *testing.T) {
	t.Setenv("NSM_ENABLED", "true")
	assert.True(t, NSMEnabled())
	t.Setenv("NSM_ENABLED", "1")
	assert.False(t, NSMEnabled())
}

func TestLoadRateLimitConfig_Normalizes(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadCacheConfig_Methods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head ,")

	cfg := LoadCacheConfig()
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_ENABLED", "")
	assert.False(t, LoadRedisConfig().Enabled)
	assert.Nil(t, NewRedisClient(LoadRedisConfig()))

	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	cfg := LoadRedisConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "cache:6380", cfg.Addr)
}

func TestLoadQueueConfig(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "")
	t.Setenv("EVENTS_ENABLED", "")
	assert.False(t, LoadQueueConfig().Enabled)

	t.Setenv("AMQP_URL", "amqp://u:p@mq:5672/")
	cfg := LoadQueueConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "amqp://u:p@mq:5672/", cfg.URL)
	assert.Equal(t, "nsm.example.events", cfg.Queue)
}

func TestAuthAndDatabaseEnabled(t *testing.T) {
	assert.False(t, AuthConfig{JWTSecret: "s"}.Enabled())
	assert.True(t, AuthConfig{JWTSecret: "s", AdminPassword: "p"}.Enabled())
	assert.False(t, DatabaseConfig{}.Enabled())
	assert.True(t, DatabaseConfig{Host: "db"}.Enabled())
}
