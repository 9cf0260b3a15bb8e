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
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/collection-diff/pkg/component"
	"github.com/NVIDIA/collection-diff/pkg/defaults"
	"github.com/NVIDIA/collection-diff/pkg/header"
)

// APIVersion is the schema version of emitted diff results.
const APIVersion = "cdiff.nvidia.com/v1alpha1"

// MetadataRunID is the header metadata key holding the comparison run id.
const MetadataRunID = "run-id"

// SideKind tells where one side of a comparison came from.
type SideKind string

const (
	SideLive     SideKind = "live"
	SideSnapshot SideKind = "snapshot"
)

// Descriptor identifies one side of a comparison in the result.
type Descriptor struct {
	Kind           SideKind   `json:"kind" yaml:"kind"`
	CollectionID   string     `json:"collection_id" yaml:"collection_id"`
	CollectionName string     `json:"collection_name" yaml:"collection_name"`
	SnapshotPath   string     `json:"snapshot_path,omitempty" yaml:"snapshot_path,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Side is the in-memory state of one side handed to Build.
type Side struct {
	Descriptor Descriptor
	Meta       CollectionMeta
	Metrics    []component.Component
	Dimensions []component.Component
}

func (s Side) components(c component.Category) []component.Component {
	if c == component.CategoryMetrics {
		return s.Metrics
	}
	return s.Dimensions
}

// ResultOptions controls field selection and post-hoc filtering.
type ResultOptions struct {
	Fields         FieldOptions
	MetricsOnly    bool
	DimensionsOnly bool
	ShowOnly       []ChangeType
	Version        string
}

// Categories returns the categories selected by the options.
func (o ResultOptions) Categories() ([]component.Category, error) {
	switch {
	case o.MetricsOnly && o.DimensionsOnly:
		return nil, fmt.Errorf("metrics-only and dimensions-only are mutually exclusive")
	case o.MetricsOnly:
		return []component.Category{component.CategoryMetrics}, nil
	case o.DimensionsOnly:
		return []component.Category{component.CategoryDimensions}, nil
	default:
		return component.Categories, nil
	}
}

// Result is the diff document consumed by renderers and exit-code handling.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Source Descriptor `json:"source" yaml:"source"`
	Target Descriptor `json:"target" yaml:"target"`

	// MetadataChanges is the collection-level pseudo-record.
	MetadataChanges ChangeRecord `json:"metadata_changes" yaml:"metadata_changes"`

	Metrics    []ChangeRecord `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Dimensions []ChangeRecord `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`

	Summary    Summary `json:"summary" yaml:"summary"`
	HasChanges bool    `json:"has_changes" yaml:"has_changes"`
}

// Records returns the (filtered) records of category c.
func (r *Result) Records(c component.Category) []ChangeRecord {
	if c == component.CategoryMetrics {
		return r.Metrics
	}
	return r.Dimensions
}

func (r *Result) setRecords(c component.Category, records []ChangeRecord) {
	if c == component.CategoryMetrics {
		r.Metrics = records
		return
	}
	r.Dimensions = records
}

// Build compares source and target and assembles the Result. Summaries are
// computed from the full classification; ShowOnly only trims the record lists.
func Build(source, target Side, opts ResultOptions) (*Result, error) {
	categories, err := opts.Categories()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		comparisonDuration.Observe(time.Since(start).Seconds())
	}()

	fields := Fields(opts.Fields)

	res := &Result{
		Source: source.Descriptor,
		Target: target.Descriptor,
	}
	res.Init(header.KindDiffResult, APIVersion, opts.Version)
	res.SetMetadata(MetadataRunID, uuid.New().String())

	for _, c := range categories {
		srcIdx := component.Index(source.components(c))
		tgtIdx := component.Index(target.components(c))

		records := Compare(srcIdx, tgtIdx, fields)
		summary := Summarize(records, len(srcIdx), len(tgtIdx))
		if err := summary.Validate(); err != nil {
			slog.Warn("diff summary invariant violated", "category", c, "error", err)
		}

		for _, rec := range records {
			recordsTotal.WithLabelValues(c.String(), rec.ChangeType.String()).Inc()
		}

		groups := GroupByChangeType(records)
		slog.Debug("category compared", "category", c.String(),
			"added", groups[ChangeAdded],
			"removed", groups[ChangeRemoved],
			"modified", groups[ChangeModified])

		res.Summary.set(c, summary)
		res.setRecords(c, FilterByChangeType(records, opts.ShowOnly))
	}

	res.MetadataChanges = CompareMetadata(source.Meta, target.Meta)
	res.HasChanges = res.Summary.HasChanges()

	slog.Debug("comparison complete",
		"source", source.Descriptor.CollectionID,
		"target", target.Descriptor.CollectionID,
		"fields", len(fields),
		"total_changes", res.Summary.TotalChanges)

	return res, nil
}

// Status is the exit signal derived from a Result.
type Status int

const (
	StatusNoDifferences     Status = defaults.ExitNoDifferences
	StatusDifferences       Status = defaults.ExitDifferences
	StatusThresholdExceeded Status = defaults.ExitThresholdExceeded
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusNoDifferences:
		return "no differences"
	case StatusDifferences:
		return "differences found"
	case StatusThresholdExceeded:
		return "threshold exceeded"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ExitStatus maps a Result to an exit signal. With a non-nil warnThreshold,
// any included category whose uncapped ChangedPct is strictly greater than
// the threshold yields StatusThresholdExceeded.
func ExitStatus(r *Result, warnThreshold *float64) Status {
	if r == nil || !r.HasChanges {
		return StatusNoDifferences
	}
	if warnThreshold != nil && r.Summary.MaxChangedPct() > *warnThreshold {
		return StatusThresholdExceeded
	}
	return StatusDifferences
}
