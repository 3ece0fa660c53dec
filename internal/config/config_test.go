package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oysy-network/oysy-wallet/internal/config"
)

func TestInitConfig(t *testing.T) {
	datadir := t.TempDir()
	t.Setenv("OYSY_DATADIR", datadir)

	require.NoError(t, config.InitConfig())
	require.Equal(t, datadir, config.GetDatadir())
	require.Equal(t, 8080, config.GetInt(config.HTTPListeningPortKey))
	require.Equal(t, "https://api.altnet.rippletest.net:5990/v1", config.GetString(config.LedgerHostKey))
	require.Equal(t, "oysy_vuex_store", config.GetString(config.StorageKeyKey))
	require.Equal(t, 100*time.Millisecond, config.GetProgressDoneDelay())
	require.Equal(t, 15*time.Second, config.GetLedgerRequestTimeout())
	require.Len(t, config.GetString(config.AuthSecretKey), 64)

	dbDir := filepath.Join(datadir, config.DbLocation)
	require.Equal(t, dbDir, config.GetDbDir())
	_, err := os.Stat(dbDir)
	require.NoError(t, err)
}

func TestInitConfigInMemory(t *testing.T) {
	t.Setenv("OYSY_DATADIR", t.TempDir())
	t.Setenv("OYSY_DB_TYPE", config.DBInMemory)
	t.Setenv("OYSY_AUTH_SECRET", "secret")

	require.NoError(t, config.InitConfig())
	require.Empty(t, config.GetDbDir())
	require.Equal(t, "secret", config.GetString(config.AuthSecretKey))
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown db", "OYSY_DB_TYPE", "postgres"},
		{"bad ledger host", "OYSY_LEDGER_HOST", "not a url"},
		{"zero rate limit", "OYSY_LEDGER_RATE_LIMIT", "0"},
		{"negative delay", "OYSY_PROGRESS_DONE_DELAY", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OYSY_DATADIR", t.TempDir())
			t.Setenv(tt.key, tt.val)
			require.Error(t, config.InitConfig())
		})
	}
}
