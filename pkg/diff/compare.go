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

import (
	"context"
	"log/slog"
	"sort"

	"github.com/NVIDIA/collection-diff/pkg/component"
	"github.com/NVIDIA/collection-diff/pkg/normalize"
)

// Compare matches two component sets by id and classifies every id in their
// union. Only the listed fields are compared, after normalization. Changed
// fields keep their raw values. The result is sorted by id ascending.
//
// Compare never fails: a field missing on either side compares as empty.
func Compare(source, target map[string]component.Component, fields []string) []ChangeRecord {
	ids := make([]string, 0, len(source)+len(target))
	for id := range source {
		ids = append(ids, id)
	}
	for id := range target {
		if _, ok := source[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	records := make([]ChangeRecord, 0, len(ids))
	for _, id := range ids {
		src, inSource := source[id]
		tgt, inTarget := target[id]

		switch {
		case inTarget && !inSource:
			records = append(records, ChangeRecord{
				ID:         id,
				Name:       tgt.DisplayName(),
				ChangeType: ChangeAdded,
			})
		case inSource && !inTarget:
			records = append(records, ChangeRecord{
				ID:         id,
				Name:       src.DisplayName(),
				ChangeType: ChangeRemoved,
			})
		default:
			records = append(records, compareComponent(id, src, tgt, fields))
		}
	}

	return records
}

func compareComponent(id string, src, tgt component.Component, fields []string) ChangeRecord {
	rec := ChangeRecord{
		ID:         id,
		Name:       tgt.DisplayName(),
		ChangeType: ChangeUnchanged,
	}

	changed := diffFields(fields, src.Value, tgt.Value)
	if len(changed) == 0 {
		return rec
	}

	rec.ChangeType = ChangeModified
	rec.ChangedFields = changed
	for f := range changed {
		if component.IsBreakingField(f) {
			rec.IsBreaking = true
			break
		}
	}

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		for _, f := range fields {
			if fc, ok := changed[f]; ok {
				slog.Debug("field changed", "id", id, "field", f,
					"old", normalize.Canonical(fc.Old), "new", normalize.Canonical(fc.New))
			}
		}
	}
	return rec
}

// diffFields returns the fields whose normalized values differ, keyed by
// field name and holding the raw values.
func diffFields(fields []string, src, tgt func(string) any) map[string]FieldChange {
	var changed map[string]FieldChange
	for _, f := range fields {
		oldVal, newVal := src(f), tgt(f)
		if normalize.Equal(oldVal, newVal) {
			continue
		}
		if changed == nil {
			changed = make(map[string]FieldChange)
		}
		changed[f] = FieldChange{Old: oldVal, New: newVal}
	}
	return changed
}

// CompareMetadata compares collection-level metadata as a single pseudo-record.
// The record id is the target collection id, or the source id when the target
// has none.
func CompareMetadata(source, target CollectionMeta) ChangeRecord {
	id := target.ID
	if id == "" {
		id = source.ID
	}
	name := target.Name
	if name == "" {
		name = source.Name
	}

	rec := ChangeRecord{
		ID:         id,
		Name:       name,
		ChangeType: ChangeUnchanged,
	}
	if changed := diffFields(MetadataFields, source.value, target.value); len(changed) > 0 {
		rec.ChangeType = ChangeModified
		rec.ChangedFields = changed
	}
	return rec
}
