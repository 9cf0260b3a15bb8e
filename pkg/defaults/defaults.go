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

package defaults

import "time"

// Name resolution.
const (
	// ListingCacheTTL is how long a fetched collection listing stays valid.
	ListingCacheTTL = 300 * time.Second

	// MaxSuggestions is the number of fuzzy suggestions returned for an unknown name.
	MaxSuggestions = 3

	// MinSuggestionDistance is the floor of the edit-distance threshold used for
	// suggestions. Longer names get a proportionally larger threshold.
	MinSuggestionDistance = 3

	// InteractiveMaxAttempts is how many invalid selections an interactive
	// prompt tolerates before giving up.
	InteractiveMaxAttempts = 3

	// ListingRefetchInterval bounds how often an expired listing may be refetched.
	ListingRefetchInterval = 1 * time.Second

	// ListingRefetchBurst is the burst allowed by the refetch limiter.
	ListingRefetchBurst = 2
)

// Snapshots.
const (
	// SnapshotDir is the default directory for stored snapshots.
	SnapshotDir = "./snapshots"

	// SnapshotKeepLast is the default retention (0 keeps every snapshot).
	SnapshotKeepLast = 0

	// SnapshotVersion is the persisted snapshot format version written by this tool.
	SnapshotVersion = "1.0"

	// SnapshotTimestampLayout is embedded in snapshot filenames. It sorts
	// lexically in chronological order.
	SnapshotTimestampLayout = "20060102T150405.000000Z"

	// SnapshotFileMode is the permission used for snapshot files.
	SnapshotFileMode = 0o644

	// SnapshotDirMode is the permission used for the snapshot directory.
	SnapshotDirMode = 0o755
)

// Comparison exit codes.
const (
	// ExitNoDifferences is returned when source and target are identical.
	ExitNoDifferences = 0

	// ExitError is returned for structural failures (bad file, unresolved name).
	ExitError = 1

	// ExitDifferences is returned when differences were found.
	ExitDifferences = 2

	// ExitThresholdExceeded is returned when a category's change percentage
	// exceeds the warn threshold.
	ExitThresholdExceeded = 3
)

// Catalog.
const (
	// CatalogFetchTimeout bounds a single catalog listing or collection fetch.
	CatalogFetchTimeout = 30 * time.Second
)
