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
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ChangeType classifies a component in a comparison.
type ChangeType string

const (
	ChangeAdded     ChangeType = "added"
	ChangeRemoved   ChangeType = "removed"
	ChangeModified  ChangeType = "modified"
	ChangeUnchanged ChangeType = "unchanged"
)

// ChangeTypes lists every change type in display order.
var ChangeTypes = []ChangeType{ChangeAdded, ChangeRemoved, ChangeModified, ChangeUnchanged}

// String returns the string representation of the ChangeType.
func (ct ChangeType) String() string {
	return string(ct)
}

// IsValid reports whether ct is a known change type.
func (ct ChangeType) IsValid() bool {
	switch ct {
	case ChangeAdded, ChangeRemoved, ChangeModified, ChangeUnchanged:
		return true
	default:
		return false
	}
}

// ParseChangeTypes converts names into change types, rejecting unknown values.
func ParseChangeTypes(names []string) ([]ChangeType, error) {
	out := make([]ChangeType, 0, len(names))
	for _, n := range names {
		ct := ChangeType(n)
		if !ct.IsValid() {
			return nil, fmt.Errorf("unknown change type %q (supported: %v)", n, ChangeTypes)
		}
		out = append(out, ct)
	}
	return out, nil
}

// FieldChange holds the raw source and target values of a changed field.
// It serializes as a two element array: [old, new].
type FieldChange struct {
	Old any
	New any
}

// Reversed returns the change with old and new swapped.
func (fc FieldChange) Reversed() FieldChange {
	return FieldChange{Old: fc.New, New: fc.Old}
}

// MarshalJSON encodes the change as [old, new].
func (fc FieldChange) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{fc.Old, fc.New})
}

// UnmarshalJSON decodes a [old, new] pair.
func (fc *FieldChange) UnmarshalJSON(data []byte) error {
	var pair []any
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("field change must have exactly 2 elements, got %d", len(pair))
	}
	fc.Old, fc.New = pair[0], pair[1]
	return nil
}

// MarshalYAML encodes the change as a two element sequence.
func (fc FieldChange) MarshalYAML() (any, error) {
	return []any{fc.Old, fc.New}, nil
}

// UnmarshalYAML decodes a two element sequence.
func (fc *FieldChange) UnmarshalYAML(node *yaml.Node) error {
	var pair []any
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("field change must have exactly 2 elements, got %d", len(pair))
	}
	fc.Old, fc.New = pair[0], pair[1]
	return nil
}

// ChangeRecord is the per-component result of a comparison.
type ChangeRecord struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	ChangeType ChangeType `json:"change_type" yaml:"change_type"`

	// ChangedFields is populated only for modified records.
	ChangedFields map[string]FieldChange `json:"changed_fields,omitempty" yaml:"changed_fields,omitempty"`

	IsBreaking bool `json:"is_breaking" yaml:"is_breaking"`
}

// CollectionMeta is the collection-level metadata compared as a pseudo-record.
type CollectionMeta struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Owner       string `json:"owner" yaml:"owner"`
	Description string `json:"description" yaml:"description"`
}

// MetadataFields are the collection-level fields compared by CompareMetadata.
var MetadataFields = []string{"name", "owner", "description"}

func (m CollectionMeta) value(field string) any {
	switch field {
	case "name":
		return m.Name
	case "owner":
		return m.Owner
	case "description":
		return m.Description
	default:
		return nil
	}
}
