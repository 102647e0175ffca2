package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
reconciliation:
  tolerance_amount: 1.5
  tolerance_days: 3
  check_identity: false
  identity_map:
    "9265": Aaron Davidson
    "4298": Alex Masuda
ledgers:
  source:
    label: Bank
storage:
  database_path: /tmp/test.db
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Reconciliation.ToleranceAmount)
	assert.Equal(t, 3, cfg.Reconciliation.ToleranceDays)
	assert.False(t, cfg.Reconciliation.CheckIdentity)
	assert.Equal(t, "Aaron Davidson", cfg.Reconciliation.IdentityMap["9265"])
	assert.Equal(t, "Bank", cfg.Ledgers.Source.Label)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.DatabasePath)
}

func TestLoad_AbsentKeysKeepDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  database_path: other.db
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	// Defaults survive partial config files
	assert.Equal(t, 2.0, cfg.Reconciliation.ToleranceAmount)
	assert.Equal(t, 2, cfg.Reconciliation.ToleranceDays)
	assert.True(t, cfg.Reconciliation.CheckIdentity)
	assert.Equal(t, "CapitalOne", cfg.Ledgers.Source.Label)
	assert.Equal(t, "Transaction Date", cfg.Ledgers.Source.Columns.Date)
	assert.Equal(t, "Total $", cfg.Ledgers.Target.Columns.Amount)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "/data/runs.db")
	path := writeConfig(t, `
storage:
  database_path: ${TEST_DB_PATH}
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/data/runs.db", cfg.Storage.DatabasePath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RECONCILE_DB_PATH", "/env/runs.db")
	t.Setenv("RECONCILE_PORT", "9090")
	t.Setenv("RECONCILE_LOG_LEVEL", "debug")

	cfg := FromEnv()

	assert.Equal(t, "/env/runs.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "reconcile.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 8080, cfg.Server.Port)
}
