/*
PURPOSE:
  Writes the human-readable run summary: one line per server, then the
  aggregate counts and averages.

REQUIREMENTS:
  User-specified:
  - Per-server listing with download/upload in Mbit/s, or "failed".
  - Counts of successful and failed tests.
  - Mean download and upload with two-decimal precision, "n/a" when a mean
    cannot be produced, and a notice when there were zero successes.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (runner)
  - Consumes: internal/model.Summary

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Plain text, append order matches result order.

USAGE:
  err := output.WriteSummary(path, run, summary)

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update together with the CSV writer when the figures change.
*/

package output

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/netbench-tools/speedtest-batch/internal/model"
)

// WriteSummary writes the full text summary for a run.
func WriteSummary(path string, run model.Run, s model.Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Speedtest batch summary — host %s, run %s\n\n", run.Hostname, run.Timestamp)

	for _, r := range s.Results {
		if r.OK {
			fmt.Fprintf(&b, "%s  %s: Download %.2f Mbit/s, Upload %.2f Mbit/s\n",
				r.ServerID, r.Description, r.Download, r.Upload)
		} else {
			fmt.Fprintf(&b, "%s  %s: failed\n", r.ServerID, r.Description)
		}
	}

	fmt.Fprintf(&b, "\nSuccessful: %d\nFailed: %d\n", s.Successful, s.Failed)

	if s.Successful == 0 {
		b.WriteString("No successful tests; no averages to report.\n")
	} else {
		fmt.Fprintf(&b, "Average download: %s Mbit/s\n", formatAvg(s.AvgDownload))
		fmt.Fprintf(&b, "Average upload: %s Mbit/s\n", formatAvg(s.AvgUpload))
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}

func formatAvg(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
