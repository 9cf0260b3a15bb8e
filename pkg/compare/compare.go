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

package compare

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/collection-diff/pkg/catalog"
	"github.com/NVIDIA/collection-diff/pkg/defaults"
	"github.com/NVIDIA/collection-diff/pkg/diff"
	"github.com/NVIDIA/collection-diff/pkg/errors"
	"github.com/NVIDIA/collection-diff/pkg/resolver"
	"github.com/NVIDIA/collection-diff/pkg/snapshot"
	"github.com/NVIDIA/collection-diff/pkg/snapshot/store"
)

// Side describes one side of a comparison. SnapshotPath takes precedence;
// otherwise Ref names a collection, compared live or, with Previous, through
// its latest stored snapshot.
type Side struct {
	Ref          string
	SnapshotPath string
	Previous     bool
}

// String describes the side for logs and errors.
func (s Side) String() string {
	switch {
	case s.SnapshotPath != "":
		return "snapshot " + s.SnapshotPath
	case s.Previous:
		return "previous snapshot of " + s.Ref
	default:
		return "live " + s.Ref
	}
}

// Comparer runs comparisons. Configure it with options and reuse it.
type Comparer struct {
	fetcher  catalog.Fetcher
	resolver *resolver.Resolver

	result        diff.ResultOptions
	warnThreshold *float64

	autoSnapshot bool
	snapshotDir  string
	keepLast     int
}

// Option configures a Comparer.
type Option func(*Comparer)

// WithFetcher sets the live collection source.
func WithFetcher(f catalog.Fetcher) Option {
	return func(c *Comparer) {
		c.fetcher = f
	}
}

// WithResolver sets the reference resolver. By default one is built over
// the fetcher listing.
func WithResolver(r *resolver.Resolver) Option {
	return func(c *Comparer) {
		c.resolver = r
	}
}

// WithIgnoreFields removes fields (wildcards allowed) from the comparison.
func WithIgnoreFields(fields ...string) Option {
	return func(c *Comparer) {
		c.result.Fields.Ignore = append(c.result.Fields.Ignore, fields...)
	}
}

// WithExtendedFields also compares the extended attribute set.
func WithExtendedFields(enabled bool) Option {
	return func(c *Comparer) {
		c.result.Fields.Extended = enabled
	}
}

// WithMetricsOnly limits the comparison to metrics.
func WithMetricsOnly(enabled bool) Option {
	return func(c *Comparer) {
		c.result.MetricsOnly = enabled
	}
}

// WithDimensionsOnly limits the comparison to dimensions.
func WithDimensionsOnly(enabled bool) Option {
	return func(c *Comparer) {
		c.result.DimensionsOnly = enabled
	}
}

// WithShowOnly keeps only records of the given change types in the result.
func WithShowOnly(types ...diff.ChangeType) Option {
	return func(c *Comparer) {
		c.result.ShowOnly = types
	}
}

// WithWarnThreshold sets the change percentage above which Status reports
// StatusThresholdExceeded.
func WithWarnThreshold(pct *float64) Option {
	return func(c *Comparer) {
		c.warnThreshold = pct
	}
}

// WithSnapshotDir sets where stored snapshots are read and written.
func WithSnapshotDir(dir string) Option {
	return func(c *Comparer) {
		if dir != "" {
			c.snapshotDir = dir
		}
	}
}

// WithAutoSnapshot saves every live side into dir, keeping the keepLast
// newest snapshots per collection (0 keeps all).
func WithAutoSnapshot(dir string, keepLast int) Option {
	return func(c *Comparer) {
		c.autoSnapshot = true
		if dir != "" {
			c.snapshotDir = dir
		}
		c.keepLast = keepLast
	}
}

// WithKeepLast sets how many snapshots per collection are kept after a save.
func WithKeepLast(n int) Option {
	return func(c *Comparer) {
		c.keepLast = n
	}
}

// WithVersion stamps results and snapshots with the tool version.
func WithVersion(v string) Option {
	return func(c *Comparer) {
		c.result.Version = v
	}
}

// New returns a Comparer.
func New(opts ...Option) *Comparer {
	c := &Comparer{
		snapshotDir: defaults.SnapshotDir,
		keepLast:    defaults.SnapshotKeepLast,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.resolver == nil && c.fetcher != nil {
		c.resolver = resolver.New(c.fetcher.ListCollections)
	}
	return c
}

type loaded struct {
	desc diff.Descriptor
	snap *snapshot.Snapshot
}

func (l *loaded) side() diff.Side {
	return diff.Side{
		Descriptor: l.desc,
		Meta:       l.snap.Meta(),
		Metrics:    l.snap.Metrics,
		Dimensions: l.snap.Dimensions,
	}
}

// Run loads both sides and compares them.
func (c *Comparer) Run(ctx context.Context, source, target Side) (*diff.Result, error) {
	if _, err := c.result.Categories(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid comparison options", err)
	}

	var src, tgt *loaded
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		src, err = c.load(gctx, source)
		return err
	})
	g.Go(func() error {
		var err error
		tgt, err = c.load(gctx, target)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if c.autoSnapshot {
		c.saveLive(src, tgt)
	}

	res, err := diff.Build(src.side(), tgt.side(), c.result)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to build comparison", err)
	}

	slog.Info("comparison complete",
		slog.String("source", source.String()),
		slog.String("target", target.String()),
		slog.Int("total_changes", res.Summary.TotalChanges),
		slog.Bool("has_changes", res.HasChanges))

	return res, nil
}

// Status maps a result to its exit signal using the configured threshold.
func (c *Comparer) Status(res *diff.Result) diff.Status {
	return diff.ExitStatus(res, c.warnThreshold)
}

func (c *Comparer) load(ctx context.Context, side Side) (*loaded, error) {
	if side.SnapshotPath != "" {
		return loadFile(side.SnapshotPath)
	}
	if side.Ref == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "comparison side needs a collection reference or a snapshot path")
	}

	id, err := c.resolveID(ctx, side.Ref)
	if err != nil {
		return nil, err
	}

	if side.Previous {
		path, err := store.Latest(c.snapshotDir, id)
		if err != nil {
			return nil, err
		}
		return loadFile(path)
	}

	if c.fetcher == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("no catalog configured to fetch %q", side.Ref))
	}
	snap, err := c.fetcher.FetchCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	createdAt := snap.CreatedAt
	return &loaded{
		desc: diff.Descriptor{
			Kind:           diff.SideLive,
			CollectionID:   snap.CollectionID,
			CollectionName: snap.CollectionName,
			CreatedAt:      &createdAt,
		},
		snap: snap,
	}, nil
}

// resolveID maps ref to a collection id. Without a resolver ref is taken
// as an id.
func (c *Comparer) resolveID(ctx context.Context, ref string) (string, error) {
	if c.resolver == nil {
		return ref, nil
	}
	col, err := c.resolver.ResolveOne(ctx, ref)
	if err != nil {
		return "", err
	}
	return col.ID, nil
}

func loadFile(path string) (*loaded, error) {
	snap, err := store.Load(path)
	if err != nil {
		return nil, err
	}
	createdAt := snap.CreatedAt
	return &loaded{
		desc: diff.Descriptor{
			Kind:           diff.SideSnapshot,
			CollectionID:   snap.CollectionID,
			CollectionName: snap.CollectionName,
			SnapshotPath:   path,
			CreatedAt:      &createdAt,
		},
		snap: snap,
	}, nil
}

// saveLive stores each distinct live side. Failures are logged; they never
// fail the comparison.
func (c *Comparer) saveLive(sides ...*loaded) {
	saved := make(map[string]string)
	for _, l := range sides {
		if l.desc.Kind != diff.SideLive {
			continue
		}
		if path, ok := saved[l.desc.CollectionID]; ok {
			l.desc.SnapshotPath = path
			continue
		}

		snap := *l.snap
		snap.Version = defaults.SnapshotVersion
		snap.Metadata.ToolVersion = c.result.Version
		path, err := store.SaveWithRetention(&snap, c.snapshotDir, c.keepLast)
		if err != nil {
			slog.Warn("auto-snapshot failed",
				slog.String("collection_id", l.desc.CollectionID),
				slog.String("error", err.Error()))
			continue
		}
		saved[l.desc.CollectionID] = path
		l.desc.SnapshotPath = path
	}
}

// Captured is a snapshot stored by a capture.
type Captured struct {
	Path     string
	Snapshot *snapshot.Snapshot
}

// Capture fetches the live state of ref and stores it, applying retention.
func (c *Comparer) Capture(ctx context.Context, ref string) (string, *snapshot.Snapshot, error) {
	if c.fetcher == nil {
		return "", nil, errors.New(errors.ErrCodeInvalidRequest, "no catalog configured")
	}
	id, err := c.resolveID(ctx, ref)
	if err != nil {
		return "", nil, err
	}
	return c.capture(ctx, id)
}

// CaptureAll captures every collection ref matches. Without a resolver ref
// is taken as an id.
func (c *Comparer) CaptureAll(ctx context.Context, ref string) ([]Captured, error) {
	if c.fetcher == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "no catalog configured")
	}

	ids := []string{ref}
	if c.resolver != nil {
		cols, err := c.resolver.ResolveAll(ctx, ref)
		if err != nil {
			return nil, err
		}
		ids = make([]string, 0, len(cols))
		for _, col := range cols {
			ids = append(ids, col.ID)
		}
	}

	out := make([]Captured, 0, len(ids))
	for _, id := range ids {
		path, snap, err := c.capture(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, Captured{Path: path, Snapshot: snap})
	}
	if len(out) > 1 {
		slog.Info("captured all matching collections", slog.String("ref", ref), slog.Int("count", len(out)))
	}
	return out, nil
}

func (c *Comparer) capture(ctx context.Context, id string) (string, *snapshot.Snapshot, error) {
	live, err := c.fetcher.FetchCollection(ctx, id)
	if err != nil {
		return "", nil, err
	}

	snap := snapshot.New(live.Meta(), live.Metrics, live.Dimensions, c.result.Version)
	path, err := store.SaveWithRetention(snap, c.snapshotDir, c.keepLast)
	if err != nil {
		return "", nil, err
	}
	return path, snap, nil
}

// SnapshotDir returns the directory stored snapshots are read from.
func (c *Comparer) SnapshotDir() string {
	return c.snapshotDir
}

// KeepLast returns the configured retention.
func (c *Comparer) KeepLast() int {
	return c.keepLast
}

// Resolver returns the resolver in use, or nil.
func (c *Comparer) Resolver() *resolver.Resolver {
	return c.resolver
}
