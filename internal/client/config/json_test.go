package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestParseJson(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	path := writeTempJSON(t, map[string]any{
		"server_endpoint_addr":  "www.example:9000",
		"data_dir":              "/var/lib/pagekeeper",
		"local_database_dsn":    "p.db",
		"retry_delay":           "1500ms",
		"upload_timeout":        float64(5 * time.Second),
		"viewer_addr":           ":8081",
		"online_check_interval": "10s",
	})

	for _, flagName := range []string{"-c", "-config"} {
		t.Run(flagName, func(t *testing.T) {
			os.Args = []string{"cli", flagName, path}

			cfg := defaults()
			parseJson(cfg)

			assert.Equal(t, "www.example:9000", cfg.ServerEndpointAddr)
			assert.Equal(t, "/var/lib/pagekeeper", cfg.DataDir)
			assert.Equal(t, "p.db", cfg.LocalDatabaseDSN)
			assert.Equal(t, 1500*time.Millisecond, cfg.RetryDelay)
			assert.Equal(t, 5*time.Second, cfg.UploadTimeout)
			assert.Equal(t, ":8081", cfg.ViewerAddr)
			assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		})
	}
}

func TestParseJson_PartialKeepsDefaults(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"cli", "-c", writeTempJSON(t, map[string]any{"viewer_addr": ":1"})}
	cfg := defaults()
	parseJson(cfg)

	assert.Equal(t, ":1", cfg.ViewerAddr)
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
}

func TestParseJson_Errors(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"cli", "-c", filepath.Join(t.TempDir(), "missing.json")}
	assert.Panics(t, func() { parseJson(defaults()) })

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	os.Args = []string{"cli", "-c", bad}
	assert.Panics(t, func() { parseJson(defaults()) })
}

func TestParseJson_NoFlag(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"cli"}

	cfg := defaults()
	parseJson(cfg)
	assert.Equal(t, defaults(), cfg)
}
