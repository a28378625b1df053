package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbush/likewrapped/internal/config"
)

func TestResolveSettings(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*config.Config)
		opts        AppOptions
		wantTTL     time.Duration
		wantTimeout time.Duration
		wantBackend string
		wantErr     string
	}{
		{
			name:        "defaults",
			wantTTL:     12 * time.Hour,
			wantTimeout: 30 * time.Second,
			wantBackend: "file",
		},
		{
			name:        "ttl flag overrides config",
			opts:        AppOptions{CacheTTL: "7d"},
			wantTTL:     7 * 24 * time.Hour,
			wantTimeout: 30 * time.Second,
			wantBackend: "file",
		},
		{
			name:        "server swaps file cache for memory",
			opts:        AppOptions{Server: true},
			wantTTL:     12 * time.Hour,
			wantTimeout: 30 * time.Second,
			wantBackend: "memory",
		},
		{
			name:        "server keeps redis",
			mutate:      func(c *config.Config) { c.Cache.Backend = "redis" },
			opts:        AppOptions{Server: true},
			wantTTL:     12 * time.Hour,
			wantTimeout: 30 * time.Second,
			wantBackend: "redis",
		},
		{
			name:        "explicit backend wins in server mode",
			opts:        AppOptions{Server: true, CacheBackend: "file"},
			wantTTL:     12 * time.Hour,
			wantTimeout: 30 * time.Second,
			wantBackend: "file",
		},
		{
			name:    "bad cache ttl",
			mutate:  func(c *config.Config) { c.Cache.TTL = "forever" },
			wantErr: "cache TTL",
		},
		{
			name:    "bad api timeout",
			mutate:  func(c *config.Config) { c.API.Timeout = "soon" },
			wantErr: "api timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			got, err := resolveSettings(cfg, tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTTL, got.ttl)
			assert.Equal(t, tt.wantTimeout, got.timeout)
			assert.Equal(t, tt.wantBackend, got.backend)
		})
	}
}

func TestNewApp_RejectsBadTimeout(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  timeout: soon\n"), 0644))

	_, err := NewApp(AppOptions{ConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api timeout")
}

func TestNewApp_DefaultConfigPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := config.ConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("api:\n  timeout: soon\n"), 0644))

	_, err := NewApp(AppOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api timeout")
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, initConfig(path, false))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	err = initConfig(path, false)
	assert.ErrorContains(t, err, "already exists")

	assert.NoError(t, initConfig(path, true))
}
