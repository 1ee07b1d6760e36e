package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vikoShak/ATS/internal/storage"
)

func TestLoadDefaultsNeedPassword(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "auth.password")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RECRUITIQ_AUTH_PASSWORD", "pw")
	t.Setenv("RECRUITIQ_SERVER_PORT", "9090")
	t.Setenv("RECRUITIQ_DB_DRIVER", "sqlite")
	t.Setenv("RECRUITIQ_DB_PATH", "/tmp/x.db")
	t.Setenv("RECRUITIQ_FEATURES_REQUIREMENTS", "false")
	t.Setenv("RECRUITIQ_BULK_REPLACE_BY_EMAIL", "false")
	t.Setenv("RECRUITIQ_AUTH_SESSION_TTL", "90m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.DB.Driver)
	require.Equal(t, "/tmp/x.db", cfg.DB.Path)
	require.False(t, cfg.Features.Requirements)
	require.False(t, cfg.Bulk.ReplaceByEmail)
	require.Equal(t, "TRIQ_ADMIN", cfg.Auth.Username)
	require.Equal(t, "pw", cfg.Auth.Password)
	require.Equal(t, 90*time.Minute, cfg.Auth.SessionTTL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 7070
transport:
  mode: stdio
storage:
  provider: gcs
  bucket: docs
auth:
  enabled: false
  session_ttl: 2h
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("RECRUITIQ_CONFIG_PATH", path)
	t.Setenv("RECRUITIQ_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, "gcs", cfg.Storage.Provider)
	require.Equal(t, "docs", cfg.Storage.Bucket)
	require.False(t, cfg.Auth.Enabled)
	require.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	require.Equal(t, "warn", cfg.Log.Level)
	require.True(t, cfg.Features.Requirements)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("RECRUITIQ_SERVER_PORT", "eighty")
	_, err := Load()
	require.ErrorContains(t, err, "RECRUITIQ_SERVER_PORT")

	t.Setenv("RECRUITIQ_SERVER_PORT", "")
	t.Setenv("RECRUITIQ_AUTH_ENABLED", "maybe")
	_, err = Load()
	require.ErrorContains(t, err, "RECRUITIQ_AUTH_ENABLED")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("RECRUITIQ_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	require.ErrorContains(t, err, "read config file")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Auth.Password = "pw"
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.DB.Driver = "postgres"
	require.ErrorContains(t, bad.Validate(), "db.driver")

	bad = cfg
	bad.Transport.Mode = "grpc"
	require.ErrorContains(t, bad.Validate(), "transport.mode")

	bad = cfg
	bad.Storage.Provider = "gcs"
	bad.Storage.Bucket = ""
	require.ErrorContains(t, bad.Validate(), "storage.bucket")

	bad = cfg
	bad.Auth.SessionStore = "redis"
	bad.Redis.Addr = ""
	require.ErrorContains(t, bad.Validate(), "redis.addr")

	bad = cfg
	bad.Auth.Enabled = false
	bad.Auth.Password = ""
	require.NoError(t, bad.Validate())
}

func TestDefaultStorage(t *testing.T) {
	cfg := Default()
	require.Equal(t, "mock", cfg.Storage.Provider)
	require.Equal(t, storage.DefaultBucket, cfg.Storage.Bucket)
}
