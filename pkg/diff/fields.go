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
	"strings"

	"github.com/NVIDIA/collection-diff/pkg/component"
)

// FieldOptions selects which component fields a comparison looks at.
type FieldOptions struct {
	// Extended adds component.ExtendedFields to the default set.
	Extended bool

	// Ignore removes fields from the set. Entries support wildcard patterns:
	//   - "prefix*" matches fields starting with "prefix"
	//   - "*suffix" matches fields ending with "suffix"
	//   - "*contains*" matches fields containing "contains"
	//   - "exact" matches the field exactly
	Ignore []string
}

// Fields returns the ordered, de-duplicated list of fields to compare.
func Fields(opts FieldOptions) []string {
	candidates := make([]string, 0, len(component.DefaultFields)+len(component.ExtendedFields))
	candidates = append(candidates, component.DefaultFields...)
	if opts.Extended {
		candidates = append(candidates, component.ExtendedFields...)
	}

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, f := range candidates {
		if seen[f] || matchesAny(f, opts.Ignore) {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func matchesAny(field string, patterns []string) bool {
	for _, p := range patterns {
		if matchesPattern(field, strings.TrimSpace(p)) {
			return true
		}
	}
	return false
}

// matchesPattern checks if a key matches a wildcard pattern.
// Supports multiple wildcard segments, e.g., "a*b*c" matches "aXbYc".
func matchesPattern(key, pattern string) bool {
	if pattern == "" {
		return false
	}
	if !strings.Contains(pattern, "*") {
		return key == pattern
	}

	segments := strings.Split(pattern, "*")
	pos := 0
	for i, segment := range segments {
		if segment == "" {
			continue
		}

		// First segment is anchored unless the pattern starts with *.
		if i == 0 && pattern[0] != '*' {
			if !strings.HasPrefix(key, segment) {
				return false
			}
			pos = len(segment)
			continue
		}

		// Last segment is anchored unless the pattern ends with *.
		if i == len(segments)-1 && pattern[len(pattern)-1] != '*' {
			return strings.HasSuffix(key[pos:], segment)
		}

		idx := strings.Index(key[pos:], segment)
		if idx == -1 {
			return false
		}
		pos += idx + len(segment)
	}

	return true
}
