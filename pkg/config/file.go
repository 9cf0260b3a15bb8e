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
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/NVIDIA/collection-diff/pkg/errors"
	"github.com/NVIDIA/collection-diff/pkg/serializer"
)

// Duration is a time.Duration written as a Go duration string ("5m", "300s").
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// File is the on-disk form of the settings. Unset keys keep their defaults.
type File struct {
	SnapshotDir    *string   `json:"snapshot_dir,omitempty" yaml:"snapshot_dir,omitempty" toml:"snapshot_dir,omitempty"`
	KeepLast       *int      `json:"keep_last,omitempty" yaml:"keep_last,omitempty" toml:"keep_last,omitempty"`
	CatalogDir     *string   `json:"catalog_dir,omitempty" yaml:"catalog_dir,omitempty" toml:"catalog_dir,omitempty"`
	IgnoreFields   []string  `json:"ignore_fields,omitempty" yaml:"ignore_fields,omitempty" toml:"ignore_fields,omitempty"`
	ExtendedFields *bool     `json:"extended_fields,omitempty" yaml:"extended_fields,omitempty" toml:"extended_fields,omitempty"`
	WarnThreshold  *float64  `json:"warn_threshold,omitempty" yaml:"warn_threshold,omitempty" toml:"warn_threshold,omitempty"`
	CacheTTL       *Duration `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty" toml:"cache_ttl,omitempty"`
	Profile        *string   `json:"profile,omitempty" yaml:"profile,omitempty" toml:"profile,omitempty"`
	Interactive    *bool     `json:"interactive,omitempty" yaml:"interactive,omitempty" toml:"interactive,omitempty"`
	Output         *string   `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
}

// LoadFile reads a config file. An empty path returns an empty File.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewWithContext(errors.ErrCodeNotFound,
				fmt.Sprintf("config file not found: %s", path), map[string]any{"path": path})
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to stat config file %s", path), err)
	}

	f, err := serializer.FromFile[File](path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("invalid config file %s", path), err)
	}
	return f, nil
}

// Options converts the keys present in f into Config options.
func (f *File) Options() []Option {
	if f == nil {
		return nil
	}

	var opts []Option
	if f.SnapshotDir != nil {
		opts = append(opts, WithSnapshotDir(*f.SnapshotDir))
	}
	if f.KeepLast != nil {
		opts = append(opts, WithKeepLast(*f.KeepLast))
	}
	if f.CatalogDir != nil {
		opts = append(opts, WithCatalogDir(*f.CatalogDir))
	}
	if f.IgnoreFields != nil {
		opts = append(opts, WithIgnoreFields(f.IgnoreFields))
	}
	if f.ExtendedFields != nil {
		opts = append(opts, WithExtendedFields(*f.ExtendedFields))
	}
	if f.WarnThreshold != nil {
		opts = append(opts, WithWarnThreshold(f.WarnThreshold))
	}
	if f.CacheTTL != nil {
		opts = append(opts, WithCacheTTL(time.Duration(*f.CacheTTL)))
	}
	if f.Profile != nil {
		opts = append(opts, WithProfile(*f.Profile))
	}
	if f.Interactive != nil {
		opts = append(opts, WithInteractive(*f.Interactive))
	}
	if f.Output != nil {
		opts = append(opts, WithOutputFormat(*f.Output))
	}
	return opts
}
