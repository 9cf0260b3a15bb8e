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
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/collection-diff/pkg/catalog"
	"github.com/NVIDIA/collection-diff/pkg/compare"
	"github.com/NVIDIA/collection-diff/pkg/config"
	"github.com/NVIDIA/collection-diff/pkg/errors"
	"github.com/NVIDIA/collection-diff/pkg/resolver"
	"github.com/NVIDIA/collection-diff/pkg/serializer"
	"github.com/NVIDIA/collection-diff/pkg/version"
)

// loadConfig merges defaults, the config file and explicitly set flags, in
// that order of precedence. Flags fed from CDIFF_* variables count as set.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	file, err := config.LoadFile(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	opts := file.Options()
	if cmd.IsSet("snapshot-dir") {
		opts = append(opts, config.WithSnapshotDir(cmd.String("snapshot-dir")))
	}
	if cmd.IsSet("catalog-dir") {
		opts = append(opts, config.WithCatalogDir(cmd.String("catalog-dir")))
	}
	if cmd.IsSet("profile") {
		opts = append(opts, config.WithProfile(cmd.String("profile")))
	}
	if cmd.IsSet("interactive") {
		opts = append(opts, config.WithInteractive(cmd.Bool("interactive")))
	}
	if cmd.IsSet("format") {
		opts = append(opts, config.WithOutputFormat(cmd.String("format")))
	}
	if cmd.IsSet("keep-last") {
		opts = append(opts, config.WithKeepLast(cmd.Int("keep-last")))
	}
	if cmd.IsSet("ignore-field") {
		opts = append(opts, config.WithIgnoreFields(cmd.StringSlice("ignore-field")))
	}
	if cmd.IsSet("extended") {
		opts = append(opts, config.WithExtendedFields(cmd.Bool("extended")))
	}
	if cmd.IsSet("warn-threshold") {
		opts = append(opts, config.WithWarnThreshold(ptr.To(cmd.Float("warn-threshold"))))
	}

	cfg := config.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("configuration loaded",
		"snapshot_dir", cfg.SnapshotDir(),
		"catalog_dir", cfg.CatalogDir(),
		"profile", cfg.Profile(),
		"keep_last", cfg.KeepLast())
	return cfg, nil
}

// comparerOptions wires the catalog, the resolver and the settings shared by
// every command. Without a catalog directory, references are taken as ids
// and only stored snapshots can be read.
func comparerOptions(cmd *cli.Command, cfg *config.Config) []compare.Option {
	opts := []compare.Option{
		compare.WithSnapshotDir(cfg.SnapshotDir()),
		compare.WithKeepLast(cfg.KeepLast()),
		compare.WithIgnoreFields(cfg.IgnoreFields()...),
		compare.WithExtendedFields(cfg.ExtendedFields()),
		compare.WithWarnThreshold(cfg.WarnThreshold()),
		compare.WithVersion(version.Current().Version),
	}
	if dir := cfg.CatalogDir(); dir != "" {
		fetcher := catalog.NewDirectory(dir)
		opts = append(opts,
			compare.WithFetcher(fetcher),
			compare.WithResolver(newResolver(cmd, cfg, fetcher)))
	}
	return opts
}

func newResolver(cmd *cli.Command, cfg *config.Config, fetcher catalog.Fetcher) *resolver.Resolver {
	cache := resolver.NewCache(
		resolver.WithTTL(cfg.CacheTTL()),
		resolver.WithScope(cfg.Profile()),
	)
	var strategy resolver.Strategy = resolver.NonInteractive{}
	if cfg.Interactive() {
		root := cmd.Root()
		strategy = resolver.NewInteractive(root.Reader, root.ErrWriter)
	}
	return resolver.New(fetcher.ListCollections,
		resolver.WithCache(cache),
		resolver.WithStrategy(strategy))
}

// parseOutputFormat validates the configured output format.
func parseOutputFormat(cfg *config.Config) (serializer.Format, error) {
	format := serializer.Format(strings.ToLower(strings.TrimSpace(cfg.OutputFormat())))
	if format.IsUnknown() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q (supported: %s)",
				cfg.OutputFormat(), strings.Join(serializer.SupportedFormats(), ", ")),
			map[string]any{"format": cfg.OutputFormat()})
	}
	return format, nil
}

// newWriter returns a writer for --output, or for the root command's writer.
func newWriter(cmd *cli.Command, cfg *config.Config) (*serializer.Writer, error) {
	format, err := parseOutputFormat(cfg)
	if err != nil {
		return nil, err
	}
	if path := strings.TrimSpace(cmd.String("output")); path != "" {
		return serializer.NewFileWriterOrStdout(format, path), nil
	}
	return serializer.NewWriter(format, cmd.Root().Writer), nil
}
