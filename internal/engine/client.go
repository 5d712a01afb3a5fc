/*
PURPOSE:
  Core client for driving the external speed-measurement tool.
  Handles the installation check, server discovery, and single test runs.

REQUIREMENTS:
  User-specified:
  - Detect whether the tool is installed before touching the filesystem.
  - List candidate servers ("NNNN) description" lines, capped).
  - Run one test per server in simplified-output mode, raw output to a file.

  Implementation-discovered:
  - Combined stdout+stderr must land in the per-server file; the tool prints
    some errors on stderr and the aggregator only looks at the file.
  - Success is purely the tool's exit status.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (runner), internal/cli (list-servers)
  - Uses: internal/config, internal/model

ERROR HANDLING:
  - Check() failure is fatal for the caller; RunTest() failure is not.
  - Discovery that yields zero entries is reported as an error by the caller;
    at this level an empty slice is just an empty slice.

IMPLEMENTATION RULES:
  - Use os/exec with CommandContext so signals cancel a hung tool.
  - Parsing of the listing goes through parseServerList for testability.

USAGE:
  c := engine.NewClient(cfg)
  if err := c.Check(); err != nil { ... }
  entries, err := c.ListServers(ctx)
  err = c.RunTest(ctx, "1001", outPath)

SELF-HEALING INSTRUCTIONS:
  - If the tool's listing format changes, update serverLineRe.

RELATED FILES:
  - internal/engine/runner.go
  - internal/engine/aggregate.go

MAINTENANCE:
  - Update flags here if the external tool renames --list / --simple.
*/

package engine

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/netbench-tools/speedtest-batch/internal/config"
	"github.com/netbench-tools/speedtest-batch/internal/model"
)

// serverLineRe matches the tool's listing format: "NNNN) description".
var serverLineRe = regexp.MustCompile(`^\s*(\d+)\)\s*(.*)$`)

// Client wraps invocations of the external measurement tool.
type Client struct {
	Config *config.Config
}

// NewClient creates a new Client.
func NewClient(cfg *config.Config) *Client {
	return &Client{Config: cfg}
}

// Check verifies the external tool is present on PATH. It performs no other
// side effects, so a missing tool leaves the filesystem untouched.
func (c *Client) Check() error {
	if _, err := exec.LookPath(c.Config.Tool); err != nil {
		return fmt.Errorf("%s is not installed (try: pip install speedtest-cli): %w", c.Config.Tool, err)
	}
	return nil
}

// ListServers runs the tool's listing mode and returns the parsed entries,
// capped at Config.MaxServers.
func (c *Client) ListServers(ctx context.Context) ([]model.ServerEntry, error) {
	cmd := exec.CommandContext(ctx, c.Config.Tool, "--list")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s --list failed: %w", c.Config.Tool, err)
	}
	return parseServerList(bytes.NewReader(out), c.Config.MaxServers), nil
}

// parseServerList filters listing lines into typed entries. Lines that do not
// match the "NNNN) description" shape are dropped; leading whitespace is
// stripped. At most max entries are returned (0 means no cap).
func parseServerList(r io.Reader, max int) []model.ServerEntry {
	var entries []model.ServerEntry

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := serverLineRe.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		entries = append(entries, model.ServerEntry{
			ID:          m[1],
			Description: strings.TrimSpace(m[2]),
		})
		if max > 0 && len(entries) >= max {
			break
		}
	}
	return entries
}

// RunTest invokes the tool against one server in simplified-output mode,
// redirecting combined stdout/stderr to outPath. The returned error reflects
// the tool's own exit status and nothing else.
func (c *Client) RunTest(ctx context.Context, serverID, outPath string) error {
	if c.Config.TestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Config.TestTimeout.Std())
		defer cancel()
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create result file %s: %w", outPath, err)
	}
	defer f.Close()

	cmd := exec.CommandContext(ctx, c.Config.Tool, "--server", serverID, "--simple")
	cmd.Stdout = f
	cmd.Stderr = f

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("test against server %s failed: %w", serverID, err)
	}
	return nil
}
