package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Listen.Host)
	assert.Equal(t, 9000, cfg.Listen.Port)
	assert.Equal(t, 16, cfg.Runtime.ReadBufferKB)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uniloop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen:
  host: 0.0.0.0
  port: 7777
metrics:
  enabled: true
  addr: 127.0.0.1:9100
  sample_interval: 250ms
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Listen.Host)
	assert.Equal(t, 7777, cfg.Listen.Port)
	// Untouched keys keep their defaults.
	assert.Equal(t, 128, cfg.Listen.Backlog)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Metrics.SampleInterval.Std())
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen:\n  port: 700000\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
