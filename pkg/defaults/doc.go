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

// Package defaults provides centralized tunables for the diff engine, the
// snapshot store and name resolution.
//
// # Categories
//
//   - Name resolution: listing cache TTL, fuzzy suggestion limits
//   - Snapshots: default directory, retention, filename layout
//   - Comparison: exit codes used for CI/CD gating
//   - Catalog: fetch timeouts and refetch throttling
//
// # Usage
//
//	import "github.com/NVIDIA/collection-diff/pkg/defaults"
//
//	cache := resolver.NewCache(resolver.WithTTL(defaults.ListingCacheTTL))
package defaults
