package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults from environment", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
		assert.Equal(t, 15*time.Second, cfg.API.Timeout)
		assert.Equal(t, "/ws", cfg.Push.ControlPath)
		assert.Equal(t, 5*time.Second, cfg.Push.ReconnectDelay)
		assert.NotEmpty(t, cfg.Storage.Path)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("LAWCLIENT_API_BASE_URL", "https://legal.example.com")
		t.Setenv("LAWCLIENT_CACHE_PATH", "/tmp/lawclient-test.db")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "https://legal.example.com", cfg.API.BaseURL)
		assert.Equal(t, "/tmp/lawclient-test.db", cfg.Storage.Path)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://10.0.0.5:9090
  timeout: 30s
push:
  reconnect_delay: 2s
log:
  level: debug
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://10.0.0.5:9090", cfg.API.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)
		assert.Equal(t, 2*time.Second, cfg.Push.ReconnectDelay)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestConfig_PushEndpoint(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		baseURL string
		path    string
		want    string
		wantErr bool
	}{
		{"http to ws", "http://localhost:8080", "/ws", "ws://localhost:8080/ws", false},
		{"https to wss", "https://legal.example.com", "/ws", "wss://legal.example.com/ws", false},
		{"query is dropped", "http://localhost:8080?debug=1", "/ws", "ws://localhost:8080/ws", false},
		{"custom control path", "http://localhost:8080", "/push", "ws://localhost:8080/push", false},
		{"unsupported scheme", "ftp://localhost", "/ws", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.API.BaseURL = tc.baseURL
			cfg.Push.ControlPath = tc.path

			got, err := cfg.PushEndpoint()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
