/*
PURPOSE:
  High-level runner that orchestrates the batch pipeline.
  Check -> run layout -> discovery -> selection -> test loop -> aggregation.

REQUIREMENTS:
  User-specified:
  - Test each selected server sequentially with a pause between runs.
  - One server's failure never aborts the run.
  - Write servers, selection, per-server raw output, and summary files.

  Implementation-discovered:
  - The installation check must come before any directory is created.
  - The pause is courtesy rate-limiting, so it is skipped after the last test.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/engine (client, selection, aggregate), internal/output

ERROR HANDLING:
  - Fatal: missing tool, empty discovery, missing server file. Returned to
    the CLI, which exits nonzero.
  - Non-fatal: individual test failures. Logged, counted, run continues.

IMPLEMENTATION RULES:
  - Strictly sequential; the only suspension points are the external tool
    and the inter-test sleep.

USAGE:
  err := engine.Run(ctx, cfg)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/client.go
  - internal/engine/aggregate.go

MAINTENANCE:
  - Update iteration logic if parallelism is ever introduced.
*/

package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/netbench-tools/speedtest-batch/internal/config"
	"github.com/netbench-tools/speedtest-batch/internal/model"
	"github.com/netbench-tools/speedtest-batch/internal/output"
)

// ErrNoServers is returned when discovery produces an empty listing. An empty
// upstream list and a parse failure are deliberately not distinguished.
var ErrNoServers = errors.New("no servers discovered")

// Run executes the full batch pipeline for one invocation.
func Run(ctx context.Context, cfg *config.Config) error {
	c := NewClient(cfg)

	// 1. Prerequisite check. Nothing is written before this passes.
	if err := c.Check(); err != nil {
		return err
	}

	run, err := model.NewRun(cfg.OutputDir)
	if err != nil {
		return err
	}
	output.Infof("run %s, results under %s", run.Timestamp, run.Dir)

	// 2. Discovery and selection.
	var (
		selection []string
		descs     map[string]string
	)

	if cfg.ServerFile != "" {
		selection, err = LoadSelection(cfg.ServerFile)
		if err != nil {
			return err
		}
		output.Infof("using %d server(s) from %s", len(selection), cfg.ServerFile)
	} else {
		entries, err := c.ListServers(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return ErrNoServers
		}
		if err := writeServersFile(run.ServersFile(), entries); err != nil {
			return err
		}
		output.Infof("discovered %d server(s)", len(entries))

		descs = Descriptions(entries)
		selection = Select(entries, cfg.Count)
	}

	if err := writeSelectionFile(run.SelectedFile(), selection); err != nil {
		return err
	}
	output.Infof("testing %d server(s)", len(selection))

	// 3. Test loop. Sequential, never concurrent.
	for i, id := range selection {
		desc := describe(descs, id)
		output.Infof("testing %s (%s)", id, desc)

		if err := c.RunTest(ctx, id, run.ResultFile(id)); err != nil {
			// Non-fatal: counted during aggregation.
			output.Failf("%s (%s)", id, desc)
			output.Logger.Error("test failed", "server", id, "error", err)
		} else {
			output.Okf("%s (%s)", id, desc)
		}

		if i < len(selection)-1 && cfg.Pause > 0 {
			time.Sleep(cfg.Pause.Std())
		}
	}

	// 4. Aggregation.
	summary, err := Aggregate(run, descs)
	if err != nil {
		return err
	}
	if err := writeOutputs(run, summary); err != nil {
		return err
	}

	if summary.Successful == 0 {
		output.Warnf("no successful tests")
	} else {
		output.Okf("successful: %d, failed: %d, avg download: %.2f Mbit/s, avg upload: %.2f Mbit/s",
			summary.Successful, summary.Failed, summary.AvgDownload, summary.AvgUpload)
	}
	output.Infof("summary written to %s", run.SummaryFile())
	return nil
}

func writeServersFile(path string, entries []model.ServerEntry) error {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s) %s\n", e.ID, e.Description)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write server list %s: %w", path, err)
	}
	return nil
}

func writeSelectionFile(path string, selection []string) error {
	data := strings.Join(selection, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write selection %s: %w", path, err)
	}
	return nil
}

func writeOutputs(run model.Run, summary model.Summary) error {
	if err := output.WriteSummary(run.SummaryFile(), run, summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	csvWriter, err := output.NewCSVWriter(run.SummaryCSV())
	if err != nil {
		return fmt.Errorf("failed to init CSV writer: %w", err)
	}
	defer csvWriter.Close()

	jsonWriter, err := output.NewJSONWriter(run.ResultsJSONL())
	if err != nil {
		return fmt.Errorf("failed to init JSON writer: %w", err)
	}
	defer jsonWriter.Close()

	for _, r := range summary.Results {
		if err := csvWriter.Write(r); err != nil {
			output.Logger.Error("failed to write result to CSV", "error", err)
		}
		if err := jsonWriter.Write(r); err != nil {
			output.Logger.Error("failed to write result to JSON", "error", err)
		}
	}
	return nil
}
