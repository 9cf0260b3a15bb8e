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

package component

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"
)

// Component is one metric or dimension entry. It is treated as immutable once
// read from a source.
type Component struct {
	ID          string
	Name        *string
	Title       *string
	Description *string
	Type        *string
	SchemaPath  *string

	// Attributes holds every non-core key of the source record.
	Attributes map[string]any
}

// Value returns the raw value of field, or nil when the component does not carry it.
func (c Component) Value(field string) any {
	switch field {
	case FieldID:
		return c.ID
	case FieldName:
		return deref(c.Name)
	case FieldTitle:
		return deref(c.Title)
	case FieldDescription:
		return deref(c.Description)
	case FieldType:
		return deref(c.Type)
	case FieldSchemaPath:
		return deref(c.SchemaPath)
	default:
		if c.Attributes == nil {
			return nil
		}
		return c.Attributes[field]
	}
}

// DisplayName returns the name, falling back to the title and then the id.
func (c Component) DisplayName() string {
	if c.Name != nil && *c.Name != "" {
		return *c.Name
	}
	if c.Title != nil && *c.Title != "" {
		return *c.Title
	}
	return c.ID
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// FromMap builds a Component from a decoded JSON or YAML object.
func FromMap(m map[string]any) Component {
	c := Component{}
	for k, v := range m {
		switch k {
		case FieldID:
			c.ID = scalarString(v)
		case FieldName:
			c.Name = optionalString(v)
		case FieldTitle:
			c.Title = optionalString(v)
		case FieldDescription:
			c.Description = optionalString(v)
		case FieldType:
			c.Type = optionalString(v)
		case FieldSchemaPath:
			c.SchemaPath = optionalString(v)
		default:
			if c.Attributes == nil {
				c.Attributes = make(map[string]any)
			}
			c.Attributes[k] = v
		}
	}
	return c
}

// ToMap returns the flat object form of the Component.
func (c Component) ToMap() map[string]any {
	m := make(map[string]any, len(c.Attributes)+6)
	for k, v := range c.Attributes {
		m[k] = v
	}
	m[FieldID] = c.ID
	m[FieldName] = deref(c.Name)
	m[FieldTitle] = deref(c.Title)
	m[FieldDescription] = deref(c.Description)
	m[FieldType] = deref(c.Type)
	m[FieldSchemaPath] = deref(c.SchemaPath)
	return m
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func optionalString(v any) *string {
	if v == nil {
		return nil
	}
	return ptr.To(scalarString(v))
}

// MarshalJSON encodes the Component as a flat object.
func (c Component) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToMap())
}

// UnmarshalJSON decodes a flat object into the Component.
func (c *Component) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("component must be an object")
	}
	*c = FromMap(m)
	return nil
}

// MarshalYAML encodes the Component as a flat mapping.
func (c Component) MarshalYAML() (any, error) {
	return c.ToMap(), nil
}

// UnmarshalYAML decodes a flat mapping into the Component.
func (c *Component) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("component must be a mapping, got line %d", node.Line)
	}
	var m map[string]any
	if err := node.Decode(&m); err != nil {
		return err
	}
	*c = FromMap(m)
	return nil
}

// Index maps components by id. When ids repeat, the last entry wins.
func Index(list []Component) map[string]Component {
	idx := make(map[string]Component, len(list))
	for _, c := range list {
		if _, dup := idx[c.ID]; dup {
			slog.Warn("duplicate component id, keeping last occurrence", "id", c.ID)
		}
		idx[c.ID] = c
	}
	return idx
}

// SortedByID returns a copy of list ordered by id ascending.
func SortedByID(list []Component) []Component {
	out := make([]Component, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
