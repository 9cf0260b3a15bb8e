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

package diff

// FilterByChangeType returns the records whose change type is in showOnly.
// An empty showOnly returns records unchanged. Classification is never altered.
func FilterByChangeType(records []ChangeRecord, showOnly []ChangeType) []ChangeRecord {
	if len(showOnly) == 0 {
		return records
	}

	keep := make(map[ChangeType]bool, len(showOnly))
	for _, ct := range showOnly {
		keep[ct] = true
	}

	out := make([]ChangeRecord, 0, len(records))
	for _, r := range records {
		if keep[r.ChangeType] {
			out = append(out, r)
		}
	}
	return out
}

// FilterChanged drops unchanged records.
func FilterChanged(records []ChangeRecord) []ChangeRecord {
	return FilterByChangeType(records, []ChangeType{ChangeAdded, ChangeRemoved, ChangeModified})
}

// GroupByChangeType buckets record ids by change type, preserving order.
func GroupByChangeType(records []ChangeRecord) map[ChangeType][]string {
	out := make(map[ChangeType][]string, len(ChangeTypes))
	for _, r := range records {
		out[r.ChangeType] = append(out[r.ChangeType], r.ID)
	}
	return out
}

// Breaking returns the records flagged as breaking.
func Breaking(records []ChangeRecord) []ChangeRecord {
	var out []ChangeRecord
	for _, r := range records {
		if r.IsBreaking {
			out = append(out, r)
		}
	}
	return out
}
