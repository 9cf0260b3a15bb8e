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

package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error types for format version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 2 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNegativeComponent = errors.New("version component cannot be negative")
)

// Build information, overridden with ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/collection-diff/pkg/version.Version=1.0.0'"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// Current returns the build information of the running binary.
func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String returns a one-line description of the build.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}

// Format is a persisted document format version such as the snapshot_version
// key of a snapshot file. A single component ("1") implies minor 0.
type Format struct {
	Major int
	Minor int
}

// String returns "Major.Minor".
func (f Format) String() string {
	return fmt.Sprintf("%d.%d", f.Major, f.Minor)
}

// ParseFormat parses "1", "1.0" or "v1.0".
func ParseFormat(s string) (Format, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return Format{}, ErrEmptyVersion
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Format{}, fmt.Errorf("%w: %q", ErrTooManyComponents, s)
	}

	var nums [2]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Format{}, fmt.Errorf("%w: %q", ErrNonNumeric, p)
		}
		if n < 0 {
			return Format{}, fmt.Errorf("%w: %d", ErrNegativeComponent, n)
		}
		nums[i] = n
	}
	return Format{Major: nums[0], Minor: nums[1]}, nil
}

// Compare returns -1, 0 or 1 as f is older than, equal to or newer than other.
func (f Format) Compare(other Format) int {
	switch {
	case f.Major != other.Major:
		if f.Major < other.Major {
			return -1
		}
		return 1
	case f.Minor < other.Minor:
		return -1
	case f.Minor > other.Minor:
		return 1
	default:
		return 0
	}
}

// Readable reports whether a document written with format f can be read by
// a reader that writes supported. Readers accept any minor revision of their
// own major version.
func (f Format) Readable(supported Format) bool {
	return f.Major == supported.Major
}
