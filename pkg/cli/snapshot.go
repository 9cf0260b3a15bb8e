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
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/collection-diff/pkg/compare"
	"github.com/NVIDIA/collection-diff/pkg/config"
	"github.com/NVIDIA/collection-diff/pkg/errors"
	"github.com/NVIDIA/collection-diff/pkg/snapshot/store"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Capture the current state of collections",
		ArgsUsage:             "COLLECTION...",
		Description: `Fetch each collection from the catalog and store it as a snapshot file in
--snapshot-dir. A name shared by several collections captures all of them.
With --keep-last N only the N newest snapshots of each collection are kept;
pruning failures are logged and do not fail the capture.

# Examples

  cdiff --catalog-dir ./exports snapshot "Web Analytics" dv_456 --keep-last 5`,
		Flags: []cli.Flag{
			keepLastFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			refs := cmd.Args().Slice()
			if len(refs) == 0 {
				return errors.New(errors.ErrCodeInvalidRequest, "snapshot needs at least one collection")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			c := compare.New(comparerOptions(cmd, cfg)...)

			entries := make([]store.Entry, 0, len(refs))
			for _, ref := range refs {
				captured, err := c.CaptureAll(ctx, ref)
				if err != nil {
					return err
				}
				for _, cp := range captured {
					entries = append(entries, store.Entry{
						Path:         cp.Path,
						CollectionID: cp.Snapshot.CollectionID,
						CapturedAt:   cp.Snapshot.CreatedAt,
					})
				}
			}

			idx := newSnapshotIndex("captured", entries)
			idx.SetMetadata(metadataKeepLast, strconv.Itoa(cfg.KeepLast()))
			return write(ctx, cmd, cfg, idx)
		},
	}
}

func snapshotsCmd() *cli.Command {
	return &cli.Command{
		Name:  "snapshots",
		Usage: "Inspect stored snapshots",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "List stored snapshots of a collection, newest first",
				ArgsUsage: "COLLECTION",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ref, err := singleArg(cmd, "snapshots list")
					if err != nil {
						return err
					}
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					id, err := collectionID(ctx, cmd, cfg, ref)
					if err != nil {
						return err
					}
					entries, err := store.List(cfg.SnapshotDir(), id)
					if err != nil {
						return err
					}
					return write(ctx, cmd, cfg, newSnapshotIndex("listed", entries))
				},
			},
		},
	}
}

func pruneCmd() *cli.Command {
	return &cli.Command{
		Name:      "prune",
		Usage:     "Delete all but the newest snapshots of a collection",
		ArgsUsage: "COLLECTION",
		Flags: []cli.Flag{
			keepLastFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ref, err := singleArg(cmd, "prune")
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.KeepLast() <= 0 {
				return errors.New(errors.ErrCodeInvalidRequest, "prune needs --keep-last greater than zero")
			}
			id, err := collectionID(ctx, cmd, cfg, ref)
			if err != nil {
				return err
			}

			removed, err := store.ApplyRetention(cfg.SnapshotDir(), id, cfg.KeepLast())
			if err != nil {
				slog.Error("retention incomplete", "collection_id", id, "removed", len(removed), "error", err)
				return err
			}

			entries := make([]store.Entry, 0, len(removed))
			for _, p := range removed {
				entries = append(entries, store.Entry{Path: p, CollectionID: id})
			}
			idx := newSnapshotIndex("pruned", entries)
			idx.SetMetadata(metadataKeepLast, strconv.Itoa(cfg.KeepLast()))
			return write(ctx, cmd, cfg, idx)
		},
	}
}

// collectionID resolves ref through the catalog when one is configured.
func collectionID(ctx context.Context, cmd *cli.Command, cfg *config.Config, ref string) (string, error) {
	r := compare.New(comparerOptions(cmd, cfg)...).Resolver()
	if r == nil {
		return ref, nil
	}
	col, err := r.ResolveOne(ctx, ref)
	if err != nil {
		return "", err
	}
	return col.ID, nil
}

func singleArg(cmd *cli.Command, command string) (string, error) {
	if cmd.NArg() != 1 {
		return "", errors.New(errors.ErrCodeInvalidRequest, command+" needs exactly one collection")
	}
	return cmd.Args().First(), nil
}

// write serializes v to the configured output.
func write(ctx context.Context, cmd *cli.Command, cfg *config.Config, v any) error {
	w, err := newWriter(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			slog.Warn("failed to close output", "error", closeErr)
		}
	}()
	if err := w.Serialize(ctx, v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to write output", err)
	}
	return nil
}
