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
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/NVIDIA/collection-diff/pkg/defaults"
)

// Suggestion is a known name close to an unresolved reference.
type Suggestion struct {
	Name     string `json:"name" yaml:"name"`
	Distance int    `json:"distance" yaml:"distance"`
}

// MaxDistance is the largest edit distance accepted as a suggestion for
// name: a third of its length, but never less than 3.
func MaxDistance(name string) int {
	return max(defaults.MinSuggestionDistance, len([]rune(name))/3)
}

// Suggest returns up to limit names from known within MaxDistance(name) of
// name, closest first and alphabetical among equals. Exact matches are not
// suggestions. limit <= 0 uses the default of 3.
func Suggest(name string, known []string, limit int) []Suggestion {
	if limit <= 0 {
		limit = defaults.MaxSuggestions
	}
	threshold := MaxDistance(name)

	seen := make(map[string]bool, len(known))
	var out []Suggestion
	for _, k := range known {
		if seen[k] {
			continue
		}
		seen[k] = true

		d := levenshtein.ComputeDistance(name, k)
		if d == 0 || d > threshold {
			continue
		}
		out = append(out, Suggestion{Name: k, Distance: d})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Name < out[j].Name
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SuggestionNames returns the names of s.
func SuggestionNames(s []Suggestion) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		out = append(out, v.Name)
	}
	return out
}
