/*
PURPOSE:
  Turns the raw per-server result files of a run into a Summary.
  Small typed parser for the tool's "Download:" / "Upload:" lines.

REQUIREMENTS:
  User-specified:
  - Extract the numeric field immediately following each label.
  - Count successes and failures; average with two-decimal precision.
  - A file lacking either line is a failure and contributes nothing.

  Implementation-discovered:
  - Files are matched by the run's timestamp glob, not by the runner's
    in-memory state, so a crashed-and-resumed aggregation sees the same set.
  - Averages that come out non-finite are rendered as "n/a" instead of
    aborting the run.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (runner)
  - Consumes: internal/model.Run
  - Produces: internal/model.Summary

ERROR HANDLING:
  - Per-file parse problems are recorded in the Result, never returned.
  - Only the glob itself can fail Aggregate.

IMPLEMENTATION RULES:
  - Whitespace-delimited second token, strconv.ParseFloat.
  - Label match is a prefix match on the first field ("Download:" included).

USAGE:
  summary, err := engine.Aggregate(run, descs)

SELF-HEALING INSTRUCTIONS:
  - If the tool changes units or labels, update parser and tests together.

RELATED FILES:
  - internal/output/summary.go

MAINTENANCE:
  - Keep in sync with the external tool's --simple output contract.
*/

package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/netbench-tools/speedtest-batch/internal/model"
)

var (
	errNoDownload = errors.New("no Download line in output")
	errNoUpload   = errors.New("no Upload line in output")
)

// ParseMeasurement extracts the download/upload pair from one result file.
// It scans for lines whose first field starts with "Download" or "Upload" and
// parses the second whitespace-delimited field as Mbit/s.
func ParseMeasurement(r io.Reader) (model.Measurement, error) {
	var (
		m       model.Measurement
		haveDL  bool
		haveUL  bool
		scanner = bufio.NewScanner(r)
	)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch {
		case strings.HasPrefix(fields[0], "Download"):
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return model.Measurement{}, fmt.Errorf("bad Download value %q: %w", fields[1], err)
			}
			m.Download = v
			haveDL = true
		case strings.HasPrefix(fields[0], "Upload"):
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return model.Measurement{}, fmt.Errorf("bad Upload value %q: %w", fields[1], err)
			}
			m.Upload = v
			haveUL = true
		}
	}
	if err := scanner.Err(); err != nil {
		return model.Measurement{}, err
	}

	if !haveDL {
		return model.Measurement{}, errNoDownload
	}
	if !haveUL {
		return model.Measurement{}, errNoUpload
	}
	return m, nil
}

// Aggregate scans every result file of the run, parses each one, and computes
// counts and mean figures. descs provides best-effort server descriptions;
// missing IDs get a synthetic label.
func Aggregate(run model.Run, descs map[string]string) (model.Summary, error) {
	files, err := filepath.Glob(run.ResultGlob())
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to scan result files: %w", err)
	}
	sort.Strings(files)

	var (
		summary model.Summary
		sumDL   float64
		sumUL   float64
	)

	for _, file := range files {
		id := run.ServerIDFromResultFile(file)
		res := model.Result{
			ServerID:    id,
			Description: describe(descs, id),
			File:        file,
		}

		m, err := parseFile(file)
		if err != nil {
			res.Error = err.Error()
			summary.Failed++
		} else {
			res.OK = true
			res.Download = m.Download
			res.Upload = m.Upload
			summary.Successful++
			sumDL += m.Download
			sumUL += m.Upload
		}
		summary.Results = append(summary.Results, res)
	}

	if summary.Successful > 0 {
		summary.AvgDownload = sumDL / float64(summary.Successful)
		summary.AvgUpload = sumUL / float64(summary.Successful)
	}
	return summary, nil
}

func parseFile(path string) (model.Measurement, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Measurement{}, err
	}
	defer f.Close()
	return ParseMeasurement(f)
}

func describe(descs map[string]string, id string) string {
	if d, ok := descs[id]; ok && d != "" {
		return d
	}
	return "server " + id
}
