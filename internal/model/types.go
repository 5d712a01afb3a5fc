/*
PURPOSE:
  Defines the core data structures used throughout Speedtest Batch.
  These models represent discovered servers, measurements, and run state.

REQUIREMENTS:
  User-specified:
  - Record per-server download/upload figures in Mbit/s.
  - Track which server each result belongs to.

  Implementation-discovered:
  - Need JSON tags for the JSONL result stream.
  - Run identity (timestamp + hostname) must travel with every path we write,
    so it lives in one value instead of globals.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - NewRun returns an error when the run directory cannot be created.

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Server IDs stay strings: a user-supplied server file is passed through
    verbatim with no validation, so we never parse them as integers.

USAGE:
  run, err := model.NewRun("./results")
  path := run.ResultFile("1001")

SELF-HEALING INSTRUCTIONS:
  - If new figures are needed (ping, jitter), add field and update the writers.

RELATED FILES:
  - internal/output/csv.go
  - internal/output/json.go

MAINTENANCE:
  - Update when the external tool's output gains new fields worth keeping.
*/

package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ServerEntry is one line of the external tool's server listing.
// Immutable once discovered.
type ServerEntry struct {
	ID          string
	Description string
}

// Measurement is the parsed download/upload pair from one result file, in Mbit/s.
type Measurement struct {
	Download float64 `json:"download_mbps"`
	Upload   float64 `json:"upload_mbps"`
}

// Result is the outcome for a single tested server.
type Result struct {
	ServerID    string  `json:"server_id"`
	Description string  `json:"description"`
	OK          bool    `json:"ok"`
	Download    float64 `json:"download_mbps"`
	Upload      float64 `json:"upload_mbps"`
	File        string  `json:"file"`
	Error       string  `json:"error,omitempty"`
}

// Summary aggregates all results of one run.
type Summary struct {
	Results     []Result `json:"results"`
	Successful  int      `json:"successful"`
	Failed      int      `json:"failed"`
	AvgDownload float64  `json:"avg_download_mbps"`
	AvgUpload   float64  `json:"avg_upload_mbps"`
}

// Run identifies one invocation of the pipeline: a single timestamp scoped
// under a host-named directory. All output paths derive from it.
type Run struct {
	Timestamp string
	Hostname  string
	Dir       string
}

// NewRun creates the host-scoped output directory for a new run and returns
// its identity. The timestamp is fixed at creation and shared by every file
// the run writes.
func NewRun(base string) (Run, error) {
	host, err := os.Hostname()
	if err != nil {
		// A run still needs a directory name; hostname is cosmetic.
		host = "localhost"
	}

	run := Run{
		Timestamp: time.Now().Format("20060102-150405"),
		Hostname:  host,
		Dir:       filepath.Join(base, host),
	}

	if err := os.MkdirAll(run.Dir, 0755); err != nil {
		return Run{}, fmt.Errorf("failed to create run directory %s: %w", run.Dir, err)
	}
	return run, nil
}

// ServersFile is the path of the raw discovered-server listing.
func (r Run) ServersFile() string {
	return filepath.Join(r.Dir, fmt.Sprintf("servers-%s.txt", r.Timestamp))
}

// SelectedFile is the path of the finalized selection, one ID per line.
func (r Run) SelectedFile() string {
	return filepath.Join(r.Dir, fmt.Sprintf("selected-%s.txt", r.Timestamp))
}

// ResultFile is the path of the raw tool output for one server.
func (r Run) ResultFile(serverID string) string {
	return filepath.Join(r.Dir, fmt.Sprintf("result-%s-%s.txt", r.Timestamp, serverID))
}

// ResultGlob matches every per-server result file of this run.
func (r Run) ResultGlob() string {
	return filepath.Join(r.Dir, fmt.Sprintf("result-%s-*.txt", r.Timestamp))
}

// ServerIDFromResultFile recovers the server ID from a result file path.
// Inverse of ResultFile.
func (r Run) ServerIDFromResultFile(path string) string {
	name := filepath.Base(path)
	name = strings.TrimPrefix(name, fmt.Sprintf("result-%s-", r.Timestamp))
	return strings.TrimSuffix(name, ".txt")
}

// SummaryFile is the path of the human-readable summary.
func (r Run) SummaryFile() string {
	return filepath.Join(r.Dir, fmt.Sprintf("summary-%s.txt", r.Timestamp))
}

// SummaryCSV is the path of the machine-readable per-server summary.
func (r Run) SummaryCSV() string {
	return filepath.Join(r.Dir, fmt.Sprintf("summary-%s.csv", r.Timestamp))
}

// ResultsJSONL is the path of the JSON Lines result stream.
func (r Run) ResultsJSONL() string {
	return filepath.Join(r.Dir, fmt.Sprintf("results-%s.jsonl", r.Timestamp))
}
