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

package catalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/collection-diff/pkg/defaults"
	"github.com/NVIDIA/collection-diff/pkg/errors"
	"github.com/NVIDIA/collection-diff/pkg/resolver"
	"github.com/NVIDIA/collection-diff/pkg/snapshot"
)

// Fetcher lists collections and fetches their current state.
type Fetcher interface {
	ListCollections(ctx context.Context) (resolver.Listing, error)
	FetchCollection(ctx context.Context, id string) (*snapshot.Snapshot, error)
}

// Directory is a Fetcher backed by export files in Dir.
type Directory struct {
	Dir string

	// Timeout bounds each listing or fetch. Zero uses the default.
	Timeout time.Duration
}

// NewDirectory returns a Directory catalog reading from dir.
func NewDirectory(dir string) *Directory {
	return &Directory{Dir: dir, Timeout: defaults.CatalogFetchTimeout}
}

type entry struct {
	path string
	snap *snapshot.Snapshot
}

func (d *Directory) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaults.CatalogFetchTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// ListCollections reads every export file and returns the collections sorted
// by id. Files that do not parse are skipped with a warning.
func (d *Directory) ListCollections(ctx context.Context) (resolver.Listing, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	entries, err := d.scan(ctx)
	if err != nil {
		return nil, err
	}

	listing := make(resolver.Listing, 0, len(entries))
	for _, e := range entries {
		listing = append(listing, resolver.Collection{
			ID:          e.snap.CollectionID,
			Name:        e.snap.CollectionName,
			Owner:       e.snap.Owner,
			Description: e.snap.Description,
		})
	}
	sort.SliceStable(listing, func(i, j int) bool {
		return listing[i].ID < listing[j].ID
	})
	return listing, nil
}

// FetchCollection returns the current state of collection id. The returned
// snapshot is stamped with the fetch time.
func (d *Directory) FetchCollection(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	entries, err := d.scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.snap.CollectionID == id {
			s := *e.snap
			s.CreatedAt = time.Now().UTC()
			slog.Debug("fetched collection", slog.String("id", id), slog.String("path", e.path))
			return &s, nil
		}
	}
	return nil, errors.NewWithContext(errors.ErrCodeIdentifierNotFound,
		fmt.Sprintf("collection %s not found in catalog %s", id, d.Dir),
		map[string]any{"id": id, "dir": d.Dir})
}

func (d *Directory) scan(ctx context.Context) ([]entry, error) {
	dirEntries, err := os.ReadDir(d.Dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewWithContext(errors.ErrCodeNotFound,
				fmt.Sprintf("catalog directory %s does not exist", d.Dir),
				map[string]any{"dir": d.Dir})
		}
		return nil, errors.Wrap(errors.ErrCodeUnavailable, fmt.Sprintf("failed to read catalog %s", d.Dir), err)
	}

	var out []entry
	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "catalog scan canceled", err)
		}
		if de.IsDir() || !isExportFile(de.Name()) {
			continue
		}

		path := filepath.Join(d.Dir, de.Name())
		s, err := readExport(path)
		if err != nil {
			slog.Warn("skipping unreadable catalog file", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		out = append(out, entry{path: path, snap: s})
	}
	return out, nil
}

func isExportFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func readExport(path string) (*snapshot.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw any
	if snapshot.FormatFromPath(path) == snapshot.FormatYAML {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, "export file is not parsable", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "export file must contain an object")
	}
	return snapshot.FromMap(obj, false)
}
