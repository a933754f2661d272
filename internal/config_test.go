package internal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.Equal(t, QueueModeFIFO, cfg.QueueMode)
	assert.Equal(t, "trades.csv", cfg.AuditFilePath)
	assert.Empty(t, cfg.PostgresDSN(), "sin host, Postgres queda deshabilitado")
	require.NoError(t, cfg.Validate())
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("BRIDGE_HTTP_PORT", "8080")
	t.Setenv("BRIDGE_QUEUE_MODE", "latest")
	t.Setenv("BRIDGE_AUDIT_FILE", "/var/log/bridge/trades.csv")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, QueueModeLatest, cfg.QueueMode)
	assert.Equal(t, "/var/log/bridge/trades.csv", cfg.AuditFilePath)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HTTPPort = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.QueueMode = QueueMode("sometimes")
	assert.Error(t, cfg.Validate())
}

func TestConfigPostgresDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PostgresHost = "db.internal"
	cfg.PostgresDatabase = "bridge"
	cfg.PostgresUser = "bridge"
	cfg.PostgresPassword = "secret"

	dsn := cfg.PostgresDSN()
	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "sslmode=disable")
}
