package config_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/config"
)

type testConfigDefault struct {
	SessionName     string        `env:"TEST_SESSION_NAME_DEFAULT" envDefault:"_my_session_id"`
	SessionDuration int           `env:"TEST_SESSION_DURATION_DEFAULT" envDefault:"0"`
	Secure          bool          `env:"TEST_SECURE_DEFAULT" envDefault:"true"`
	Timeout         time.Duration `env:"TEST_TIMEOUT_DEFAULT" envDefault:"5s"`
}

type testConfigSuccess struct {
	SessionName     string   `env:"TEST_SESSION_NAME_SUCCESS"`
	SessionDuration int      `env:"TEST_SESSION_DURATION_SUCCESS"`
	Excluded        []string `env:"TEST_EXCLUDED_SUCCESS" envSeparator:","`
}

type testConfigSingleton struct {
	Value string `env:"TEST_VALUE_SINGLETON" envDefault:"default_value"`
}

type requiredConfig struct {
	Required string `env:"TEST_REQUIRED_VALUE,required"`
}

type prefixedConfig struct {
	URL string `env:"URL" envDefault:"redis://localhost:6379/0"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("TEST_SESSION_NAME_SUCCESS", "sid")
	t.Setenv("TEST_SESSION_DURATION_SUCCESS", "60")
	t.Setenv("TEST_EXCLUDED_SUCCESS", "/api/v1/status/,/api/v1/stat*")

	var cfg testConfigSuccess
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "sid", cfg.SessionName)
	assert.Equal(t, 60, cfg.SessionDuration)
	assert.Equal(t, []string{"/api/v1/status/", "/api/v1/stat*"}, cfg.Excluded)
}

func TestLoad_DefaultValues(t *testing.T) {
	var cfg testConfigDefault
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "_my_session_id", cfg.SessionName)
	assert.Equal(t, 0, cfg.SessionDuration)
	assert.True(t, cfg.Secure)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_MissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_VALUE_SINGLETON", "first_value")

	var first testConfigSingleton
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_VALUE_SINGLETON", "second_value")

	var second testConfigSingleton
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first_value", second.Value)

	config.ResetCache()
	var third testConfigSingleton
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second_value", third.Value)
}

func TestLoad_Concurrent(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_VALUE_SINGLETON", "shared")

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var cfg testConfigSingleton
			if err := config.Load(&cfg); err == nil {
				results[i] = cfg.Value
			}
		}(i)
	}
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *testConfigSuccess
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.ErrorIs(t, config.Parse(cfg, ""), config.ErrNilPointer)
}

func TestParse_Prefix(t *testing.T) {
	t.Setenv("CACHE_URL", "redis://cache:6379/1")

	var cfg prefixedConfig
	require.NoError(t, config.Parse(&cfg, "CACHE_"))
	assert.Equal(t, "redis://cache:6379/1", cfg.URL)

	var plain prefixedConfig
	require.NoError(t, config.Parse(&plain, "SESSIONS_"))
	assert.Equal(t, "redis://localhost:6379/0", plain.URL)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("TEST_ENVFILE_VALUE=from_file\nTEST_ENVFILE_KEEP=file\n"), 0o600))

	t.Setenv("TEST_ENVFILE_KEEP", "process")
	t.Cleanup(func() { os.Unsetenv("TEST_ENVFILE_VALUE") })

	require.NoError(t, config.LoadEnv(path))
	assert.Equal(t, "from_file", os.Getenv("TEST_ENVFILE_VALUE"))
	assert.Equal(t, "process", os.Getenv("TEST_ENVFILE_KEEP"))

	err := config.LoadEnv(filepath.Join(dir, "missing.env"))
	assert.ErrorIs(t, err, config.ErrEnvFile)
}
