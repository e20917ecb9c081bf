package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dispatch/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig(t *testing.T) {
	t.Run("should fall back to defaults", func(t *testing.T) {
		cfg, err := cmd.LoadConfig(env(nil))

		require.NoError(t, err)
		assert.Equal(t, cmd.DefaultConfig(), cfg)
		assert.Equal(t, 7, cfg.MaxBatchSize)
		assert.Equal(t, 45*time.Minute, cfg.MaxWait)
		assert.False(t, cfg.DatabaseEnabled())
	})

	t.Run("should read the policy file and let the environment win", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
hub:
  lat: -34.9
  lon: -56.16
batching:
  max_batch_size: 2
  max_wait: 10m
sequencing:
  key: total
schedule:
  batch_formation: "*/5 * * * * *"
`), 0o600))

		cfg, err := cmd.LoadConfig(env(map[string]string{
			"DISPATCH_POLICY_FILE": path,
			"MAX_BATCH_SIZE":       "3",
			"DB_HOST":              "localhost",
			"DB_NAME":              "dispatch",
		}))

		require.NoError(t, err)
		assert.InDelta(t, -34.9, cfg.HubLat, 1e-9)
		assert.InDelta(t, -56.16, cfg.HubLon, 1e-9)
		assert.Equal(t, 3, cfg.MaxBatchSize)
		assert.Equal(t, 10*time.Minute, cfg.MaxWait)
		assert.Equal(t, "total", cfg.SequenceKey)
		assert.Equal(t, "*/5 * * * * *", cfg.BatchFormationSchedule)
		assert.True(t, cfg.DatabaseEnabled())
		assert.Contains(t, cfg.DSN(), "host=localhost port=5432")
	})

	t.Run("should report every malformed variable", func(t *testing.T) {
		_, err := cmd.LoadConfig(env(map[string]string{
			"HUB_LAT":        "north",
			"MAX_BATCH_SIZE": "seven",
			"MAX_WAIT":       "soon",
		}))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HUB_LAT")
		assert.Contains(t, err.Error(), "MAX_BATCH_SIZE")
		assert.Contains(t, err.Error(), "MAX_WAIT")
	})

	t.Run("should fail on a missing policy file", func(t *testing.T) {
		_, err := cmd.LoadConfig(env(map[string]string{"DISPATCH_POLICY_FILE": "/nonexistent/policy.yaml"}))

		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("should fail on a bad duration in the policy file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("batching:\n  max_wait: later\n"), 0o600))

		_, err := cmd.LoadConfig(env(map[string]string{"DISPATCH_POLICY_FILE": path}))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_wait")
	})
}
