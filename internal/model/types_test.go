package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPaths(t *testing.T) {
	run := Run{Timestamp: "20240101-000000", Hostname: "testhost", Dir: "/tmp/results/testhost"}

	assert.Equal(t, "/tmp/results/testhost/servers-20240101-000000.txt", run.ServersFile())
	assert.Equal(t, "/tmp/results/testhost/selected-20240101-000000.txt", run.SelectedFile())
	assert.Equal(t, "/tmp/results/testhost/result-20240101-000000-1001.txt", run.ResultFile("1001"))
	assert.Equal(t, "/tmp/results/testhost/summary-20240101-000000.txt", run.SummaryFile())
}

func TestServerIDFromResultFile(t *testing.T) {
	run := Run{Timestamp: "20240101-000000", Dir: "/tmp/x"}

	for _, id := range []string{"1001", "9999", "abc"} {
		assert.Equal(t, id, run.ServerIDFromResultFile(run.ResultFile(id)),
			"ServerIDFromResultFile must invert ResultFile")
	}
}

func TestNewRunCreatesHostDir(t *testing.T) {
	base := t.TempDir()

	run, err := NewRun(base)
	require.NoError(t, err)

	host, _ := os.Hostname()
	if host == "" {
		host = "localhost"
	}
	assert.Equal(t, filepath.Join(base, host), run.Dir)

	info, err := os.Stat(run.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NotEmpty(t, run.Timestamp)
}
