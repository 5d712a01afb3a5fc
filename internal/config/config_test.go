package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "speedtest-cli", cfg.Tool)
	assert.Equal(t, 50, cfg.MaxServers)
	assert.Equal(t, 0, cfg.Count, "default is to test every discovered server")
	assert.Equal(t, Duration(2*time.Second), cfg.Pause)
	assert.Zero(t, cfg.TestTimeout, "no per-test timeout by default")
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	data := `
tool: speedtest
output_dir: /tmp/bench
count: 5
pause: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "speedtest", cfg.Tool)
	assert.Equal(t, "/tmp/bench", cfg.OutputDir)
	assert.Equal(t, 5, cfg.Count)
	assert.Equal(t, Duration(5*time.Second), cfg.Pause)
	// Unset fields keep their defaults.
	assert.Equal(t, 50, cfg.MaxServers)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tool: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Duration
		wantErr bool
	}{
		{name: "duration string", yaml: "d: 500ms", want: Duration(500 * time.Millisecond)},
		{name: "bare nanoseconds", yaml: "d: 1000000000", want: Duration(time.Second)},
		{name: "garbage", yaml: "d: fast", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				D Duration `yaml:"d"`
			}
			err := yaml.Unmarshal([]byte(tt.yaml), &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.D)
		})
	}
}

func TestLoadNoFileFallsBackToDefaults(t *testing.T) {
	// Run from a directory that has no config files.
	// t.Chdir requires Go 1.24; emulate it for older toolchains.
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
