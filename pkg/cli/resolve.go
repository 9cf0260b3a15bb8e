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
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/collection-diff/pkg/compare"
	"github.com/NVIDIA/collection-diff/pkg/errors"
	"github.com/NVIDIA/collection-diff/pkg/version"
)

func resolveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "resolve",
		EnableShellCompletion: true,
		Usage:                 "Resolve collection names or ids",
		ArgsUsage:             "COLLECTION...",
		Description: `Resolve each reference against the catalog. Ids match first, then exact
names. An unknown name fails with the closest known names; a name shared by
several collections fails with the candidates unless --interactive is set.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			refs := cmd.Args().Slice()
			if len(refs) == 0 {
				return errors.New(errors.ErrCodeInvalidRequest, "resolve needs at least one collection")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			r := compare.New(comparerOptions(cmd, cfg)...).Resolver()
			if r == nil {
				return errors.New(errors.ErrCodeInvalidRequest, "resolve needs --catalog-dir")
			}

			cols, err := r.ResolveMany(ctx, refs...)
			if err != nil {
				return err
			}
			return write(ctx, cmd, cfg, newResolution(refs, cols))
		},
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s\n", name, version.Current())
			return err
		},
	}
}
