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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/collection-diff/pkg/compare"
	"github.com/NVIDIA/collection-diff/pkg/diff"
	"github.com/NVIDIA/collection-diff/pkg/errors"
)

func diffCmd() *cli.Command {
	return &cli.Command{
		Name:                  "diff",
		EnableShellCompletion: true,
		Usage:                 "Compare two collections, snapshots or a collection with its history",
		ArgsUsage:             "[SOURCE [TARGET]]",
		Description: `Compare the metrics, dimensions and metadata of two sides. Each side is one of:
  - a live collection, by id or name (--source / --target or positional arguments)
  - a snapshot file (--source-snapshot / --target-snapshot)
  - the latest stored snapshot of a collection (--source-previous / --target-previous)

When --source-previous is used without a target, the live state of the same
collection is the target.

# Examples

Compare two live collections by name:
  cdiff diff "Web Analytics" "Web Analytics (staging)"

Compare a collection with its last snapshot, then store a new one:
  cdiff diff --source dv_123 --source-previous --auto-snapshot --keep-last 10

Compare two snapshot files, metrics only, as JSON:
  cdiff -t json diff --source-snapshot a.json --target-snapshot b.json --metrics-only

Fail the build when more than 25% of a category changed:
  cdiff diff --source-snapshot baseline.json --target dv_123 --warn-threshold 25`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Source collection id or name",
			},
			&cli.StringFlag{
				Name:  "source-snapshot",
				Usage: "Source snapshot file",
			},
			&cli.BoolFlag{
				Name:  "source-previous",
				Usage: "Use the latest stored snapshot of --source",
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "Target collection id or name",
			},
			&cli.StringFlag{
				Name:  "target-snapshot",
				Usage: "Target snapshot file",
			},
			&cli.BoolFlag{
				Name:  "target-previous",
				Usage: "Use the latest stored snapshot of --target",
			},
			&cli.StringSliceFlag{
				Name:  "ignore-field",
				Usage: "Field to leave out of the comparison; wildcards allowed (can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "extended",
				Usage: "Compare the extended field set",
			},
			&cli.BoolFlag{
				Name:  "metrics-only",
				Usage: "Compare metrics only",
			},
			&cli.BoolFlag{
				Name:  "dimensions-only",
				Usage: "Compare dimensions only",
			},
			&cli.StringSliceFlag{
				Name:  "show-only",
				Usage: "Report only these change types: added, removed, modified, unchanged (can be repeated)",
			},
			&cli.FloatFlag{
				Name:  "warn-threshold",
				Usage: "Exit with status 3 when a category's changed percentage is above this value",
			},
			&cli.BoolFlag{
				Name:  "auto-snapshot",
				Usage: "Store a snapshot of every live side after loading it",
			},
			keepLastFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			showOnly, err := diff.ParseChangeTypes(cmd.StringSlice("show-only"))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid --show-only", err)
			}

			source, target, err := diffSides(cmd)
			if err != nil {
				return err
			}

			opts := append(comparerOptions(cmd, cfg),
				compare.WithMetricsOnly(cmd.Bool("metrics-only")),
				compare.WithDimensionsOnly(cmd.Bool("dimensions-only")),
				compare.WithShowOnly(showOnly...),
			)
			if cmd.Bool("auto-snapshot") {
				opts = append(opts, compare.WithAutoSnapshot(cfg.SnapshotDir(), cfg.KeepLast()))
			}
			c := compare.New(opts...)

			if _, err := parseOutputFormat(cfg); err != nil {
				return err
			}

			res, err := c.Run(ctx, source, target)
			if err != nil {
				return err
			}
			if err := write(ctx, cmd, cfg, res); err != nil {
				return err
			}

			status := c.Status(res)
			slog.Debug("comparison status", "status", status.String())
			if status == diff.StatusNoDifferences {
				return nil
			}
			return cli.Exit("", int(status))
		},
	}
}

// diffSides reads both sides from flags and positional arguments.
func diffSides(cmd *cli.Command) (compare.Side, compare.Side, error) {
	source := compare.Side{
		Ref:          cmd.String("source"),
		SnapshotPath: cmd.String("source-snapshot"),
		Previous:     cmd.Bool("source-previous"),
	}
	target := compare.Side{
		Ref:          cmd.String("target"),
		SnapshotPath: cmd.String("target-snapshot"),
		Previous:     cmd.Bool("target-previous"),
	}

	args := cmd.Args().Slice()
	if len(args) > 2 {
		return source, target, errors.New(errors.ErrCodeInvalidRequest, "diff takes at most two positional arguments")
	}
	if len(args) > 0 && source.Ref == "" && source.SnapshotPath == "" {
		source.Ref, args = args[0], args[1:]
	}
	if len(args) > 0 && target.Ref == "" && target.SnapshotPath == "" {
		target.Ref, args = args[0], args[1:]
	}
	if len(args) > 0 {
		return source, target, errors.New(errors.ErrCodeInvalidRequest, "both sides are already set by flags")
	}

	if target.Ref == "" && target.SnapshotPath == "" && source.Previous {
		target.Ref = source.Ref
	}

	if source.Ref == "" && source.SnapshotPath == "" {
		return source, target, errors.New(errors.ErrCodeInvalidRequest, "missing source: pass a collection or a snapshot file")
	}
	if target.Ref == "" && target.SnapshotPath == "" {
		return source, target, errors.New(errors.ErrCodeInvalidRequest, "missing target: pass a collection or a snapshot file")
	}
	return source, target, nil
}
