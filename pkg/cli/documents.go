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

package cli

import (
	"time"

	"github.com/NVIDIA/collection-diff/pkg/diff"
	"github.com/NVIDIA/collection-diff/pkg/header"
	"github.com/NVIDIA/collection-diff/pkg/resolver"
	"github.com/NVIDIA/collection-diff/pkg/snapshot/store"
	"github.com/NVIDIA/collection-diff/pkg/version"
)

// Metadata keys of the documents emitted by the snapshot commands.
const (
	metadataAction   = "action"
	metadataKeepLast = "keep-last"
)

// snapshotIndex lists stored snapshot files.
type snapshotIndex struct {
	header.Header `json:",inline" yaml:",inline"`

	Snapshots []store.Entry `json:"snapshots" yaml:"snapshots"`
}

func newSnapshotIndex(action string, entries []store.Entry) *snapshotIndex {
	idx := &snapshotIndex{Snapshots: entries}
	idx.Init(header.KindSnapshotIndex, diff.APIVersion, version.Current().Version)
	idx.SetMetadata(metadataAction, action)
	if idx.Snapshots == nil {
		idx.Snapshots = []store.Entry{}
	}
	return idx
}

// TableHeader implements serializer.Tabular.
func (s *snapshotIndex) TableHeader() []string {
	return []string{"COLLECTION", "CAPTURED", "PATH"}
}

// TableRows implements serializer.Tabular.
func (s *snapshotIndex) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Snapshots))
	for _, e := range s.Snapshots {
		rows = append(rows, []string{e.CollectionID, e.CapturedAt.Format(time.RFC3339), e.Path})
	}
	return rows
}

// resolution maps references to the collections they resolve to.
type resolution struct {
	header.Header `json:",inline" yaml:",inline"`

	Collections []resolvedRef `json:"collections" yaml:"collections"`
}

type resolvedRef struct {
	Ref         string `json:"ref" yaml:"ref"`
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Owner       string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func newResolution(refs []string, cols []resolver.Collection) *resolution {
	r := &resolution{Collections: make([]resolvedRef, 0, len(cols))}
	r.Init(header.KindResolution, diff.APIVersion, version.Current().Version)
	for i, c := range cols {
		r.Collections = append(r.Collections, resolvedRef{
			Ref:         refs[i],
			ID:          c.ID,
			Name:        c.Name,
			Owner:       c.Owner,
			Description: c.Description,
		})
	}
	return r
}

// TableHeader implements serializer.Tabular.
func (r *resolution) TableHeader() []string {
	return []string{"REF", "ID", "NAME", "OWNER"}
}

// TableRows implements serializer.Tabular.
func (r *resolution) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Collections))
	for _, c := range r.Collections {
		rows = append(rows, []string{c.Ref, c.ID, c.Name, c.Owner})
	}
	return rows
}
