package engine

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netbench-tools/speedtest-batch/internal/model"
)

const simpleOutput = `Ping: 12.3 ms
Download: 50.00 Mbit/s
Upload: 10.00 Mbit/s
`

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Measurement
		wantErr string
	}{
		{
			name:  "typical simple output",
			input: simpleOutput,
			want:  model.Measurement{Download: 50.00, Upload: 10.00},
		},
		{
			name:  "noise lines around the figures",
			input: "Retrieving configuration...\nDownload: 93.21 Mbit/s\nsome chatter\nUpload: 41.05 Mbit/s\ndone\n",
			want:  model.Measurement{Download: 93.21, Upload: 41.05},
		},
		{
			name:    "missing download line",
			input:   "Ping: 12.3 ms\nUpload: 10.00 Mbit/s\n",
			wantErr: "no Download line",
		},
		{
			name:    "missing upload line",
			input:   "Ping: 12.3 ms\nDownload: 50.00 Mbit/s\n",
			wantErr: "no Upload line",
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: "no Download line",
		},
		{
			name:    "non-numeric figure",
			input:   "Download: fast Mbit/s\nUpload: 10.00 Mbit/s\n",
			wantErr: "bad Download value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMeasurement(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func testRun(t *testing.T) model.Run {
	t.Helper()
	return model.Run{
		Timestamp: "20240101-000000",
		Hostname:  "testhost",
		Dir:       t.TempDir(),
	}
}

func writeResult(t *testing.T, run model.Run, id, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(run.ResultFile(id), []byte(content), 0644))
}

func TestAggregateAverages(t *testing.T) {
	run := testRun(t)
	writeResult(t, run, "1001", "Download: 50.0 Mbit/s\nUpload: 10.0 Mbit/s\n")
	writeResult(t, run, "1002", "Download: 70.0 Mbit/s\nUpload: 20.0 Mbit/s\n")

	got, err := Aggregate(run, map[string]string{"1001": "A", "1002": "B"})
	require.NoError(t, err)

	assert.Equal(t, 2, got.Successful)
	assert.Equal(t, 0, got.Failed)
	assert.InDelta(t, 60.0, got.AvgDownload, 0.001)
	assert.InDelta(t, 15.0, got.AvgUpload, 0.001)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "A", got.Results[0].Description)
	assert.True(t, got.Results[0].OK)
}

func TestAggregateFailedFile(t *testing.T) {
	run := testRun(t)
	writeResult(t, run, "1001", simpleOutput)
	writeResult(t, run, "1002", "ERROR: Unable to connect to servers to test latency.\n")

	got, err := Aggregate(run, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, got.Successful)
	assert.Equal(t, 1, got.Failed)
	// The failed file contributes nothing to the means.
	assert.InDelta(t, 50.0, got.AvgDownload, 0.001)
	assert.InDelta(t, 10.0, got.AvgUpload, 0.001)

	require.Len(t, got.Results, 2)
	failed := got.Results[1]
	assert.False(t, failed.OK)
	assert.NotEmpty(t, failed.Error)
	assert.Equal(t, "server 1002", failed.Description)
}

func TestAggregateNoFiles(t *testing.T) {
	got, err := Aggregate(testRun(t), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Successful)
	assert.Equal(t, 0, got.Failed)
	assert.Empty(t, got.Results)
}

func TestAggregateIgnoresOtherRuns(t *testing.T) {
	run := testRun(t)
	writeResult(t, run, "1001", simpleOutput)

	other := model.Run{Timestamp: "19990101-000000", Dir: run.Dir}
	writeResult(t, other, "1001", simpleOutput)

	got, err := Aggregate(run, nil)
	require.NoError(t, err)
	assert.Len(t, got.Results, 1, "only files matching the run timestamp count")
}
