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

package resolver

import (
	"context"
	"fmt"
	"strings"
)

// Collection is one entry of the collection listing.
type Collection struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Owner       string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// String returns "name (id)".
func (c Collection) String() string {
	if c.Name == "" {
		return c.ID
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.ID)
}

// Listing is the full set of collections visible to one scope.
type Listing []Collection

// FetchFunc retrieves a fresh listing.
type FetchFunc func(ctx context.Context) (Listing, error)

// ByID returns the collection with the given id.
func (l Listing) ByID(id string) (Collection, bool) {
	for _, c := range l {
		if c.ID == id {
			return c, true
		}
	}
	return Collection{}, false
}

// ByName returns every collection whose name equals name.
func (l Listing) ByName(name string) []Collection {
	var out []Collection
	for _, c := range l {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Match returns the collections ref refers to: the collection with id ref
// when there is one, otherwise every collection named ref.
func (l Listing) Match(ref string) []Collection {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if c, ok := l.ByID(ref); ok {
		return []Collection{c}
	}
	return l.ByName(ref)
}

// Names returns the distinct non-empty collection names in listing order.
func (l Listing) Names() []string {
	seen := make(map[string]bool, len(l))
	out := make([]string, 0, len(l))
	for _, c := range l {
		if c.Name == "" || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c.Name)
	}
	return out
}
