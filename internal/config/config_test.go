package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TASKBOARD_CONFIG_PATH", "TASKBOARD_ADDR", "DATABASE_URL", "SQLITE_PATH", "LOG_LEVEL", "LOG_FORMAT",
		"TASKBOARD_READ_TIMEOUT", "TASKBOARD_WRITE_TIMEOUT", "TASKBOARD_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
	if v, ok := os.LookupEnv("DEV_SEED"); ok {
		os.Unsetenv("DEV_SEED")
		t.Cleanup(func() { os.Setenv("DEV_SEED", v) })
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, BackendMemory, cfg.Backend())
	require.False(t, cfg.Storage.DevSeed)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "taskboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  read_timeout: 2s
storage:
  sqlite_path: /tmp/taskboard.db
log:
  level: debug
  format: text
`), 0o600))
	t.Setenv("TASKBOARD_CONFIG_PATH", path)
	t.Setenv("TASKBOARD_WRITE_TIMEOUT", "3s")
	t.Setenv("DEV_SEED", "yes")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Server.Addr)
	require.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 3*time.Second, cfg.Server.WriteTimeout)
	require.Equal(t, BackendSQLite, cfg.Backend())
	require.Equal(t, "text", cfg.Log.Format)
	require.True(t, cfg.Storage.DevSeed)

	t.Setenv("DATABASE_URL", "postgres://localhost/taskboard")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, BackendPostgres, cfg.Backend())
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKBOARD_READ_TIMEOUT", "soon")
	_, err := Load()
	require.ErrorContains(t, err, "TASKBOARD_READ_TIMEOUT")

	clearEnv(t)
	t.Setenv("LOG_FORMAT", "xml")
	_, err = Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("TASKBOARD_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	require.ErrorContains(t, err, "read config file")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TASKBOARD_DOTENV_PROBE=from-file\n"), 0o600))
	t.Setenv("TASKBOARD_DOTENV_PROBE", "")
	os.Unsetenv("TASKBOARD_DOTENV_PROBE")
	require.NoError(t, LoadDotEnv(path))
	require.Equal(t, "from-file", os.Getenv("TASKBOARD_DOTENV_PROBE"))

	// existing variables win over the file
	t.Setenv("TASKBOARD_DOTENV_PROBE", "from-env")
	require.NoError(t, LoadDotEnv(path))
	require.Equal(t, "from-env", os.Getenv("TASKBOARD_DOTENV_PROBE"))
}
