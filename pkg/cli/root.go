// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/collection-diff/pkg/defaults"
	"github.com/NVIDIA/collection-diff/pkg/errors"
	"github.com/NVIDIA/collection-diff/pkg/logging"
	"github.com/NVIDIA/collection-diff/pkg/serializer"
	"github.com/NVIDIA/collection-diff/pkg/version"
)

const name = "cdiff"

// Execute runs the CLI with the process arguments and exits with the
// command's status.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	os.Exit(run(ctx, newRootCmd(), os.Args, os.Stderr))
}

// run executes root and maps its error to an exit code. Messages of
// structural failures are written to errOut.
func run(ctx context.Context, root *cli.Command, args []string, errOut io.Writer) int {
	err := root.Run(ctx, args)
	code := exitCode(err)
	if err != nil && err.Error() != "" {
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return code
}

func exitCode(err error) int {
	if err == nil {
		return defaults.ExitNoDifferences
	}
	var coder cli.ExitCoder
	if stderrors.As(err, &coder) {
		return coder.ExitCode()
	}
	return defaults.ExitError
}

func newRootCmd() *cli.Command {
	info := version.Current()
	return &cli.Command{
		Name:                  name,
		Usage:                 "Compare and snapshot analytic collection configuration",
		Version:               info.Version,
		EnableShellCompletion: true,
		Description: fmt.Sprintf(`cdiff documents and compares the configuration of collections
(their metrics and dimensions). Either side of a comparison is a live collection
read from the catalog, a snapshot file, or the latest stored snapshot of a
collection.

Version: %s
Commit:  %s
Built:   %s

Exit codes:
  0  no differences
  1  error (bad snapshot, unknown or ambiguous collection)
  2  differences found
  3  a category changed by more than --warn-threshold percent`, info.Version, info.Commit, info.Date),
		Flags: globalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, info.Version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", info.Version,
				"commit", info.Commit,
				"date", info.Date)
			return ctx, nil
		},
		After: func(_ context.Context, cmd *cli.Command) error {
			return writeMetrics(cmd.String("metrics-file"))
		},
		// Errors are mapped to exit codes by run.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands: []*cli.Command{
			diffCmd(),
			snapshotCmd(),
			snapshotsCmd(),
			pruneCmd(),
			resolveCmd(),
			versionCmd(),
		},
	}
}

// globalFlags are accepted by every command. Flags hold parse state, so a
// fresh set is built for each root command.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (yaml, json or toml)",
			Sources: cli.EnvVars("CDIFF_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.EnvVars("CDIFF_LOG_LEVEL", logging.EnvLogLevel),
		},
		&cli.StringFlag{
			Name:    "snapshot-dir",
			Usage:   fmt.Sprintf("Directory stored snapshots are written to and read from (default: %s)", defaults.SnapshotDir),
			Sources: cli.EnvVars("CDIFF_SNAPSHOT_DIR"),
		},
		&cli.StringFlag{
			Name:    "catalog-dir",
			Usage:   "Directory of collection export files used as the live catalog",
			Sources: cli.EnvVars("CDIFF_CATALOG_DIR"),
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "Credential profile; scopes the name resolution cache",
			Sources: cli.EnvVars("CDIFF_PROFILE"),
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Usage:   "Prompt to choose when a name matches several collections",
			Sources: cli.EnvVars("CDIFF_INTERACTIVE"),
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"t"},
			Usage:   fmt.Sprintf("Output format (supported: %v, default: console)", serializer.SupportedFormats()),
			Sources: cli.EnvVars("CDIFF_FORMAT"),
		},
		&cli.StringFlag{
			Name:    "metrics-file",
			Usage:   "Write Prometheus metrics of the run to this file (textfile collector format)",
			Sources: cli.EnvVars("CDIFF_METRICS_FILE"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

// writeMetrics dumps the default registry for node_exporter's textfile
// collector. An empty path is a no-op.
func writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to write metrics to %s", path), err)
	}
	slog.Debug("metrics written", "path", path)
	return nil
}

func keepLastFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "keep-last",
		Usage:   "Keep only the N newest snapshots per collection (0 keeps all)",
		Sources: cli.EnvVars("CDIFF_KEEP_LAST"),
	}
}
