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

package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/collection-diff/pkg/component"
	"github.com/NVIDIA/collection-diff/pkg/defaults"
	"github.com/NVIDIA/collection-diff/pkg/diff"
	"github.com/NVIDIA/collection-diff/pkg/errors"
	"github.com/NVIDIA/collection-diff/pkg/version"
)

// Keys of the persisted snapshot object.
const (
	KeyVersion        = "snapshot_version"
	KeyCreatedAt      = "created_at"
	KeyCollectionID   = "collection_id"
	KeyCollectionName = "collection_name"
	KeyOwner          = "owner"
	KeyDescription    = "description"
	KeyMetrics        = "metrics"
	KeyDimensions     = "dimensions"
	KeyMetadata       = "metadata"
)

// Format is the encoding of a snapshot document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Metadata describes how a snapshot was produced.
type Metadata struct {
	ToolVersion     string `json:"tool_version" yaml:"tool_version"`
	MetricsCount    int    `json:"metrics_count" yaml:"metrics_count"`
	DimensionsCount int    `json:"dimensions_count" yaml:"dimensions_count"`
}

// Snapshot is a point-in-time capture of a collection. Treat it as read-only
// once created.
type Snapshot struct {
	Version        string                `json:"snapshot_version" yaml:"snapshot_version"`
	CreatedAt      time.Time             `json:"created_at" yaml:"created_at"`
	CollectionID   string                `json:"collection_id" yaml:"collection_id"`
	CollectionName string                `json:"collection_name" yaml:"collection_name"`
	Owner          string                `json:"owner" yaml:"owner"`
	Description    string                `json:"description" yaml:"description"`
	Metrics        []component.Component `json:"metrics" yaml:"metrics"`
	Dimensions     []component.Component `json:"dimensions" yaml:"dimensions"`
	Metadata       Metadata              `json:"metadata" yaml:"metadata"`
}

// New captures the given collection state at the current UTC time.
func New(meta diff.CollectionMeta, metrics, dimensions []component.Component, toolVersion string) *Snapshot {
	return NewAt(meta, metrics, dimensions, toolVersion, time.Now())
}

// NewAt is New with an explicit capture time.
func NewAt(meta diff.CollectionMeta, metrics, dimensions []component.Component, toolVersion string, at time.Time) *Snapshot {
	return &Snapshot{
		Version:        defaults.SnapshotVersion,
		CreatedAt:      at.UTC(),
		CollectionID:   meta.ID,
		CollectionName: meta.Name,
		Owner:          meta.Owner,
		Description:    meta.Description,
		Metrics:        metrics,
		Dimensions:     dimensions,
		Metadata: Metadata{
			ToolVersion:     toolVersion,
			MetricsCount:    len(metrics),
			DimensionsCount: len(dimensions),
		},
	}
}

// Meta returns the collection-level fields compared by diff.CompareMetadata.
func (s *Snapshot) Meta() diff.CollectionMeta {
	return diff.CollectionMeta{
		ID:          s.CollectionID,
		Name:        s.CollectionName,
		Owner:       s.Owner,
		Description: s.Description,
	}
}

// Components returns the component list of category c.
func (s *Snapshot) Components(c component.Category) []component.Component {
	if c == component.CategoryMetrics {
		return s.Metrics
	}
	return s.Dimensions
}

// Index returns the components of category c keyed by id.
func (s *Snapshot) Index(c component.Category) map[string]component.Component {
	return component.Index(s.Components(c))
}

// Marshal encodes s as indented JSON with both component lists sorted by id.
// s itself is not modified.
func Marshal(s *Snapshot) ([]byte, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "snapshot is nil")
	}
	out := *s
	out.Metrics = component.SortedByID(s.Metrics)
	out.Dimensions = component.SortedByID(s.Dimensions)
	out.CreatedAt = s.CreatedAt.UTC()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to encode snapshot", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a JSON snapshot document.
func Unmarshal(b []byte) (*Snapshot, error) {
	return Decode(b, FormatJSON)
}

// Decode decodes a snapshot document in the given format and validates its
// required keys. Every failure is an INVALID_SNAPSHOT error.
func Decode(b []byte, format Format) (*Snapshot, error) {
	var raw any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(b, &raw)
	case FormatJSON, "":
		err = json.Unmarshal(b, &raw)
	default:
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("unsupported snapshot format %q", format))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, "snapshot is not parsable", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "snapshot must be an object")
	}
	return FromMap(obj, true)
}

// checkFormat logs snapshots written by another format revision. They are
// still read; unknown keys are ignored and missing optional keys default.
func checkFormat(v string) {
	if v == defaults.SnapshotVersion {
		return
	}
	got, err := version.ParseFormat(v)
	if err != nil {
		slog.Warn("snapshot version is not a format version", "version", v, "error", err)
		return
	}
	supported, _ := version.ParseFormat(defaults.SnapshotVersion)
	if !got.Readable(supported) {
		slog.Warn("snapshot written by an incompatible format version",
			"version", got.String(), "supported", supported.String())
		return
	}
	slog.Debug("reading snapshot with different format revision", "version", got.String())
}

// FromMap builds a Snapshot from a decoded document. With requireVersion
// false the snapshot_version key may be absent, which is how catalog export
// files are read.
func FromMap(obj map[string]any, requireVersion bool) (*Snapshot, error) {
	s := &Snapshot{}

	rawVersion, hasVersion := obj[KeyVersion]
	switch {
	case hasVersion:
		v, ok := rawVersion.(string)
		if !ok || strings.TrimSpace(v) == "" {
			return nil, invalid("%s must be a non-empty string", KeyVersion)
		}
		s.Version = v
	case requireVersion:
		return nil, invalid("missing required key %q", KeyVersion)
	default:
		s.Version = defaults.SnapshotVersion
	}
	checkFormat(s.Version)

	id, ok := obj[KeyCollectionID]
	if !ok || id == nil {
		return nil, invalid("missing required key %q", KeyCollectionID)
	}
	s.CollectionID = scalar(id)

	var err error
	if s.Metrics, err = components(obj, KeyMetrics); err != nil {
		return nil, err
	}
	if s.Dimensions, err = components(obj, KeyDimensions); err != nil {
		return nil, err
	}

	s.CollectionName = scalar(obj[KeyCollectionName])
	s.Owner = scalar(obj[KeyOwner])
	s.Description = scalar(obj[KeyDescription])
	s.CreatedAt = parseTime(obj[KeyCreatedAt])

	s.Metadata = Metadata{
		MetricsCount:    len(s.Metrics),
		DimensionsCount: len(s.Dimensions),
	}
	if md, ok := obj[KeyMetadata].(map[string]any); ok {
		s.Metadata.ToolVersion = scalar(md["tool_version"])
		if n, ok := count(md["metrics_count"]); ok {
			s.Metadata.MetricsCount = n
		}
		if n, ok := count(md["dimensions_count"]); ok {
			s.Metadata.DimensionsCount = n
		}
	}

	return s, nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidSnapshot, fmt.Sprintf(format, args...))
}

func components(obj map[string]any, key string) ([]component.Component, error) {
	v, ok := obj[key]
	if !ok {
		return nil, invalid("missing required key %q", key)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, invalid("%s must be an array", key)
	}

	out := make([]component.Component, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, invalid("%s[%d] must be an object", key, i)
		}
		out = append(out, component.FromMap(m))
	}
	return out, nil
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == math.Trunc(val) {
			return strconv.FormatFloat(val, 'f', -1, 64)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func count(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseTime accepts ISO-8601 timestamps with or without a zone. Values without
// a zone are read as UTC. Unparsable values yield the zero time.
func parseTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val.UTC()
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t.UTC()
			}
		}
		slog.Debug("unparsable snapshot timestamp", "value", val)
	}
	return time.Time{}
}
