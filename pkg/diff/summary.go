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
	"fmt"

	"github.com/NVIDIA/collection-diff/pkg/component"
)

// CategorySummary holds the counts of one category (metrics or dimensions).
//
// Invariants:
//
//	TargetCount = SourceCount - Removed + Added
//	Unchanged   = SourceCount - Removed - Modified = TargetCount - Added - Modified
type CategorySummary struct {
	SourceCount int     `json:"source_count" yaml:"source_count"`
	TargetCount int     `json:"target_count" yaml:"target_count"`
	Added       int     `json:"added" yaml:"added"`
	Removed     int     `json:"removed" yaml:"removed"`
	Modified    int     `json:"modified" yaml:"modified"`
	Unchanged   int     `json:"unchanged" yaml:"unchanged"`
	ChangedPct  float64 `json:"changed_pct" yaml:"changed_pct"`
}

// Summarize counts records per change type and computes the change percentage.
//
// ChangedPct is 100*(added+removed+modified)/sourceCount. With an empty source
// it is 100 when anything was added and 0 otherwise. It is not capped and can
// exceed 100 when additions and removals are both large.
func Summarize(records []ChangeRecord, sourceCount, targetCount int) CategorySummary {
	s := CategorySummary{
		SourceCount: sourceCount,
		TargetCount: targetCount,
	}
	for _, r := range records {
		switch r.ChangeType {
		case ChangeAdded:
			s.Added++
		case ChangeRemoved:
			s.Removed++
		case ChangeModified:
			s.Modified++
		case ChangeUnchanged:
			s.Unchanged++
		}
	}

	changes := s.Changes()
	switch {
	case sourceCount > 0:
		s.ChangedPct = 100 * float64(changes) / float64(sourceCount)
	case s.Added > 0:
		s.ChangedPct = 100
	default:
		s.ChangedPct = 0
	}
	return s
}

// Changes returns added + removed + modified.
func (s CategorySummary) Changes() int {
	return s.Added + s.Removed + s.Modified
}

// HasChanges reports whether anything was added, removed or modified.
func (s CategorySummary) HasChanges() bool {
	return s.Changes() > 0
}

// Validate checks the count invariants.
func (s CategorySummary) Validate() error {
	if got := s.SourceCount - s.Removed + s.Added; got != s.TargetCount {
		return fmt.Errorf("target count %d != source %d - removed %d + added %d",
			s.TargetCount, s.SourceCount, s.Removed, s.Added)
	}
	if got := s.SourceCount - s.Removed - s.Modified; got != s.Unchanged {
		return fmt.Errorf("unchanged %d != source %d - removed %d - modified %d",
			s.Unchanged, s.SourceCount, s.Removed, s.Modified)
	}
	if got := s.TargetCount - s.Added - s.Modified; got != s.Unchanged {
		return fmt.Errorf("unchanged %d != target %d - added %d - modified %d",
			s.Unchanged, s.TargetCount, s.Added, s.Modified)
	}
	return nil
}

// Summary aggregates the included categories of a comparison.
// A nil category was excluded from the comparison.
type Summary struct {
	Metrics      *CategorySummary `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Dimensions   *CategorySummary `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	TotalChanges int              `json:"total_changes" yaml:"total_changes"`
}

// Category returns the summary of c, or nil when c was excluded.
func (s Summary) Category(c component.Category) *CategorySummary {
	switch c {
	case component.CategoryMetrics:
		return s.Metrics
	case component.CategoryDimensions:
		return s.Dimensions
	default:
		return nil
	}
}

// HasChanges reports whether any included category has changes.
func (s Summary) HasChanges() bool {
	return s.TotalChanges > 0
}

// MaxChangedPct returns the largest ChangedPct over the included categories.
func (s Summary) MaxChangedPct() float64 {
	var highest float64
	for _, c := range component.Categories {
		if cs := s.Category(c); cs != nil && cs.ChangedPct > highest {
			highest = cs.ChangedPct
		}
	}
	return highest
}

func (s *Summary) set(c component.Category, cs CategorySummary) {
	switch c {
	case component.CategoryMetrics:
		s.Metrics = &cs
	case component.CategoryDimensions:
		s.Dimensions = &cs
	}
	s.TotalChanges += cs.Changes()
}
