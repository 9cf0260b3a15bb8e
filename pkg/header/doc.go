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

// Package header provides the common resource header attached to documents
// produced by the tool (diff results, snapshot indexes, resolution reports).
//
// # Header Structure
//
//	type Header struct {
//	    Kind       Kind              `json:"kind,omitempty"`
//	    APIVersion string            `json:"apiVersion,omitempty"`
//	    Metadata   map[string]string `json:"metadata,omitempty"`
//	}
//
// # Usage
//
//	var res diff.Result
//	res.Init(header.KindDiffResult, diff.APIVersion, version)
//
// Init stamps metadata with an RFC 3339 UTC "timestamp" and the tool "version".
// Snapshot files do not carry a header; their layout is fixed by the snapshot
// package.
package header
