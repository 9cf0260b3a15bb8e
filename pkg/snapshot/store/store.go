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

package store

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/NVIDIA/collection-diff/pkg/defaults"
	"github.com/NVIDIA/collection-diff/pkg/errors"
	"github.com/NVIDIA/collection-diff/pkg/snapshot"
)

const (
	fileExt = ".json"

	// sep separates the name, id and timestamp segments of a file name.
	// sanitize never produces '-', so it cannot occur inside a segment.
	sep = "--"
)

// removeFile deletes a pruned snapshot. Tests replace it to simulate
// failures.
var removeFile = os.Remove

// FileName returns the file name a snapshot is saved under.
func FileName(s *snapshot.Snapshot) string {
	name := sanitize(s.CollectionName)
	if name == "" {
		name = "collection"
	}
	ts := s.CreatedAt.UTC().Format(defaults.SnapshotTimestampLayout)
	return name + sep + sanitize(s.CollectionID) + sep + ts + fileExt
}

// sanitize keeps letters, digits and '_' and replaces everything else with
// '_'. Distinct ids can share a sanitized form, so the id segment only
// preselects files; ownership is confirmed from the file content.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(s))
}

// Save writes s into dir atomically and returns the file path.
func Save(s *snapshot.Snapshot, dir string) (string, error) {
	if s == nil {
		return "", errors.New(errors.ErrCodeInvalidRequest, "snapshot is nil")
	}
	if dir == "" {
		dir = defaults.SnapshotDir
	}

	data, err := snapshot.Marshal(s)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, defaults.SnapshotDirMode); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to create snapshot directory %q", dir), err)
	}

	path := filepath.Join(dir, FileName(s))
	if err := writeAtomic(path, data); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInternal, "failed to write snapshot", err,
			map[string]any{"path": path})
	}

	savesTotal.Inc()
	slog.Info("snapshot saved",
		"path", path,
		"collection_id", s.CollectionID,
		"metrics", len(s.Metrics),
		"dimensions", len(s.Dimensions))

	return path, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-snapshot-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	writeErr := error(nil)
	if _, err := tmp.Write(data); err != nil {
		writeErr = fmt.Errorf("write temp file %q: %w", tmpName, err)
	}
	if writeErr == nil {
		if err := tmp.Sync(); err != nil {
			writeErr = fmt.Errorf("sync temp file %q: %w", tmpName, err)
		}
	}
	if err := tmp.Close(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("close temp file %q: %w", tmpName, err)
	}
	if writeErr == nil {
		if err := os.Chmod(tmpName, defaults.SnapshotFileMode); err != nil {
			writeErr = fmt.Errorf("chmod temp file %q: %w", tmpName, err)
		}
	}
	if writeErr != nil {
		_ = os.Remove(tmpName)
		return writeErr
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %q to %q: %w", tmpName, path, err)
	}
	return nil
}

// Load reads the snapshot at path. JSON and YAML files are accepted.
func Load(path string) (*snapshot.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		loadsTotal.WithLabelValues("error").Inc()
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewWithContext(errors.ErrCodeSnapshotNotFound,
				fmt.Sprintf("snapshot file not found: %s", path),
				map[string]any{"path": path})
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to read snapshot %q", path), err)
	}

	s, err := snapshot.Decode(data, snapshot.FormatFromPath(path))
	if err != nil {
		loadsTotal.WithLabelValues("invalid").Inc()
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidSnapshot,
			fmt.Sprintf("invalid snapshot file %s", path), err,
			map[string]any{"path": path})
	}

	loadsTotal.WithLabelValues("ok").Inc()
	slog.Debug("snapshot loaded", "path", path, "collection_id", s.CollectionID)
	return s, nil
}

// Entry is one stored snapshot file.
type Entry struct {
	Path         string    `json:"path" yaml:"path"`
	CollectionID string    `json:"collection_id" yaml:"collection_id"`
	CapturedAt   time.Time `json:"captured_at" yaml:"captured_at"`
}

// List returns snapshot entries of collectionID in dir, newest first.
// Files whose id segment matches are opened and kept only when their
// collection_id equals collectionID, so collections never see each other's
// snapshots. The time embedded in the file name orders entries; created_at
// and then the modification time are the fallbacks when it does not parse.
// A missing directory yields an empty list.
func List(dir, collectionID string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to read snapshot directory %q", dir), err)
	}

	segment := sanitize(collectionID)
	out := make([]Entry, 0)
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), fileExt) {
			continue
		}

		parts := strings.Split(strings.TrimSuffix(de.Name(), fileExt), sep)
		if len(parts) != 3 || parts[1] != segment {
			continue
		}

		path := filepath.Join(dir, de.Name())
		owned, err := readOwner(path)
		if err != nil {
			slog.Debug("skipping unreadable snapshot file", "path", path, "error", err)
			continue
		}
		if owned.CollectionID != collectionID {
			continue
		}

		captured, err := time.Parse(defaults.SnapshotTimestampLayout, parts[2])
		if err != nil {
			captured = owned.CreatedAt
		}
		if captured.IsZero() {
			info, infoErr := de.Info()
			if infoErr != nil {
				slog.Debug("skipping unreadable snapshot entry", "name", de.Name(), "error", infoErr)
				continue
			}
			captured = info.ModTime()
		}

		out = append(out, Entry{
			Path:         path,
			CollectionID: collectionID,
			CapturedAt:   captured.UTC(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CapturedAt.Equal(out[j].CapturedAt) {
			return out[i].CapturedAt.After(out[j].CapturedAt)
		}
		return out[i].Path > out[j].Path
	})
	return out, nil
}

func readOwner(path string) (*snapshot.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return snapshot.Decode(data, snapshot.FormatJSON)
}

// ListForCollection returns the snapshot file paths of collectionID in dir,
// newest first.
func ListForCollection(dir, collectionID string) ([]string, error) {
	entries, err := List(dir, collectionID)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	return paths, nil
}

// Latest returns the path of the newest snapshot of collectionID in dir.
func Latest(dir, collectionID string) (string, error) {
	paths, err := ListForCollection(dir, collectionID)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", errors.NewWithContext(errors.ErrCodeSnapshotNotFound,
			fmt.Sprintf("no snapshots found for collection %s in %s", collectionID, dir),
			map[string]any{"collection_id": collectionID, "dir": dir})
	}
	return paths[0], nil
}

// ApplyRetention deletes all but the keepLast newest snapshots of
// collectionID and returns the deleted paths. keepLast <= 0 keeps
// everything. Deletion continues past individual failures; the combined
// failure is returned as a RETENTION_IO error.
func ApplyRetention(dir, collectionID string, keepLast int) ([]string, error) {
	if keepLast <= 0 {
		return nil, nil
	}

	paths, err := ListForCollection(dir, collectionID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRetentionIO, "failed to list snapshots for retention", err)
	}
	if len(paths) <= keepLast {
		return nil, nil
	}

	var deleted []string
	var errs []error
	for _, p := range paths[keepLast:] {
		if err := removeFile(p); err != nil {
			errs = append(errs, err)
			continue
		}
		deleted = append(deleted, p)
		prunedTotal.Inc()
		slog.Debug("pruned snapshot", "path", p, "collection_id", collectionID)
	}

	if len(errs) > 0 {
		return deleted, errors.WrapWithContext(errors.ErrCodeRetentionIO,
			fmt.Sprintf("failed to prune %d snapshot(s)", len(errs)),
			stderrors.Join(errs...),
			map[string]any{"collection_id": collectionID, "dir": dir})
	}
	return deleted, nil
}

// SaveWithRetention saves s and then applies retention for its collection.
// Retention failures are logged and do not fail the save.
func SaveWithRetention(s *snapshot.Snapshot, dir string, keepLast int) (string, error) {
	path, err := Save(s, dir)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = defaults.SnapshotDir
	}

	deleted, err := ApplyRetention(dir, s.CollectionID, keepLast)
	if err != nil {
		slog.Warn("snapshot retention failed",
			"collection_id", s.CollectionID,
			"keep_last", keepLast,
			"error", err)
		return path, nil
	}
	if len(deleted) > 0 {
		slog.Info("snapshot retention applied",
			"collection_id", s.CollectionID,
			"keep_last", keepLast,
			"deleted", len(deleted))
	}
	return path, nil
}
