package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  env: test
  serviceName: usersvc
  log:
    level: debug
http:
  port: 8081
  timeouts:
    readTimeout: 3s
storage:
  driver: memory
redis:
  addr: localhost:6379
  keyPrefix: "usersvc:"
seed:
  count: 0
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testConfigYAML), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsYAML(t *testing.T) {
	t.Chdir(writeTestConfig(t))

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "usersvc", cfg.Env.ServiceName)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	require.NotNil(t, cfg.Redis)
	assert.Equal(t, "usersvc:", cfg.Redis.KeyPrefix)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	t.Chdir(writeTestConfig(t))
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("REDIS_KEYPREFIX", "other:")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "other:", cfg.Redis.KeyPrefix)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Storage.Driver = "  SQLite "

	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, defaultSeedCount, cfg.Seed.Count)
	assert.Equal(t, defaultSeedPrefix, cfg.Seed.Prefix)
	assert.Equal(t, defaultSeedWorkers, cfg.Seed.Workers)

	empty := &Config{}
	applyDefaults(empty)
	assert.Equal(t, DriverMemory, empty.Storage.Driver)
}
