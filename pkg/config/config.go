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

package config

import (
	"fmt"
	"slices"
	"time"

	"k8s.io/utils/ptr"

	"github.com/NVIDIA/collection-diff/pkg/defaults"
)

// Config provides immutable settings. Use NewConfig with options to build one.
type Config struct {
	// snapshotDir is where snapshots are stored and looked up.
	snapshotDir string

	// keepLast is the per-collection retention; 0 keeps everything.
	keepLast int

	// catalogDir holds the collection export files served as the live side.
	catalogDir string

	// ignoreFields are excluded from comparison (wildcards allowed).
	ignoreFields []string

	// extendedFields adds the extended attribute set to the comparison.
	extendedFields bool

	// warnThreshold is the change percentage above which a comparison
	// exits with the threshold status. nil disables the check.
	warnThreshold *float64

	// cacheTTL is how long a collection listing is cached.
	cacheTTL time.Duration

	// profile names the credential scope; each profile has its own cache.
	profile string

	// interactive enables prompting on ambiguous names.
	interactive bool

	// outputFormat is the default result format.
	outputFormat string
}

// SnapshotDir returns the snapshot directory.
func (c *Config) SnapshotDir() string {
	return c.snapshotDir
}

// KeepLast returns the retention setting.
func (c *Config) KeepLast() int {
	return c.keepLast
}

// CatalogDir returns the catalog directory.
func (c *Config) CatalogDir() string {
	return c.catalogDir
}

// IgnoreFields returns a copy of the ignored field patterns.
func (c *Config) IgnoreFields() []string {
	return slices.Clone(c.ignoreFields)
}

// ExtendedFields returns the extended comparison setting.
func (c *Config) ExtendedFields() bool {
	return c.extendedFields
}

// WarnThreshold returns a copy of the warn threshold, or nil.
func (c *Config) WarnThreshold() *float64 {
	if c.warnThreshold == nil {
		return nil
	}
	return ptr.To(*c.warnThreshold)
}

// CacheTTL returns the listing cache TTL.
func (c *Config) CacheTTL() time.Duration {
	return c.cacheTTL
}

// Profile returns the credential profile.
func (c *Config) Profile() string {
	return c.profile
}

// Interactive returns whether ambiguous names are prompted for.
func (c *Config) Interactive() bool {
	return c.interactive
}

// OutputFormat returns the default output format.
func (c *Config) OutputFormat() string {
	return c.outputFormat
}

// Validate checks if the Config has valid settings.
func (c *Config) Validate() error {
	if c.snapshotDir == "" {
		return fmt.Errorf("snapshot directory cannot be empty")
	}
	if c.keepLast < 0 {
		return fmt.Errorf("keep-last must be >= 0, got %d", c.keepLast)
	}
	if c.cacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.cacheTTL)
	}
	if c.warnThreshold != nil && *c.warnThreshold < 0 {
		return fmt.Errorf("warn threshold must be >= 0, got %g", *c.warnThreshold)
	}
	return nil
}

type Option func(*Config)

// WithSnapshotDir sets the snapshot directory.
func WithSnapshotDir(dir string) Option {
	return func(c *Config) {
		c.snapshotDir = dir
	}
}

// WithKeepLast sets the per-collection retention.
func WithKeepLast(n int) Option {
	return func(c *Config) {
		c.keepLast = n
	}
}

// WithCatalogDir sets the catalog directory.
func WithCatalogDir(dir string) Option {
	return func(c *Config) {
		c.catalogDir = dir
	}
}

// WithIgnoreFields replaces the ignored field patterns.
func WithIgnoreFields(fields []string) Option {
	return func(c *Config) {
		c.ignoreFields = slices.Clone(fields)
	}
}

// WithExtendedFields sets the extended comparison setting.
func WithExtendedFields(enabled bool) Option {
	return func(c *Config) {
		c.extendedFields = enabled
	}
}

// WithWarnThreshold sets the warn threshold. nil disables it.
func WithWarnThreshold(pct *float64) Option {
	return func(c *Config) {
		if pct == nil {
			c.warnThreshold = nil
			return
		}
		c.warnThreshold = ptr.To(*pct)
	}
}

// WithCacheTTL sets the listing cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.cacheTTL = ttl
	}
}

// WithProfile sets the credential profile.
func WithProfile(profile string) Option {
	return func(c *Config) {
		c.profile = profile
	}
}

// WithInteractive enables or disables prompting.
func WithInteractive(enabled bool) Option {
	return func(c *Config) {
		c.interactive = enabled
	}
}

// WithOutputFormat sets the default output format.
func WithOutputFormat(format string) Option {
	return func(c *Config) {
		c.outputFormat = format
	}
}

// NewConfig returns a Config with default values.
func NewConfig(options ...Option) *Config {
	c := &Config{
		snapshotDir:  defaults.SnapshotDir,
		keepLast:     defaults.SnapshotKeepLast,
		cacheTTL:     defaults.ListingCacheTTL,
		profile:      "default",
		outputFormat: "console",
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}
