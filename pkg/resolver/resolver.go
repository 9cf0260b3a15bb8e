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
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/collection-diff/pkg/errors"
)

// Resolver maps references to collections using a cached listing.
type Resolver struct {
	cache    *Cache
	fetch    FetchFunc
	strategy Strategy
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache shares an existing cache.
func WithCache(c *Cache) Option {
	return func(r *Resolver) {
		if c != nil {
			r.cache = c
		}
	}
}

// WithStrategy sets how ambiguous names are settled.
func WithStrategy(s Strategy) Option {
	return func(r *Resolver) {
		if s != nil {
			r.strategy = s
		}
	}
}

// New returns a Resolver fetching listings with fetch. Without options it
// owns a fresh cache and never prompts.
func New(fetch FetchFunc, opts ...Option) *Resolver {
	r := &Resolver{
		fetch:    fetch,
		strategy: NonInteractive{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = NewCache()
	}
	return r
}

// Cache returns the listing cache used by r.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Listing returns the current, possibly cached, collection listing.
func (r *Resolver) Listing(ctx context.Context) (Listing, error) {
	if r.fetch == nil {
		return nil, errors.New(errors.ErrCodeInternal, "resolver has no listing source")
	}
	listing, err := r.cache.GetListing(ctx, r.fetch)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to list collections", err)
	}
	return listing, nil
}

// ResolveOne resolves ref to exactly one collection.
func (r *Resolver) ResolveOne(ctx context.Context, ref string) (Collection, error) {
	listing, err := r.Listing(ctx)
	if err != nil {
		return Collection{}, err
	}

	matches := listing.Match(ref)
	switch len(matches) {
	case 0:
		resolutionsTotal.WithLabelValues("not_found").Inc()
		return Collection{}, notFound(ref, listing)
	case 1:
		resolutionsTotal.WithLabelValues("resolved").Inc()
		slog.Debug("resolved collection", slog.String("ref", ref), slog.String("id", matches[0].ID))
		return matches[0], nil
	}

	resolutionsTotal.WithLabelValues("ambiguous").Inc()
	c, err := r.strategy.Resolve(ref, matches)
	if err != nil {
		return Collection{}, err
	}
	slog.Debug("resolved ambiguous collection", slog.String("ref", ref), slog.String("id", c.ID),
		slog.Int("candidates", len(matches)))
	return c, nil
}

// ResolveAll returns every collection ref refers to. It is used by bulk
// operations where ambiguity is not an error.
func (r *Resolver) ResolveAll(ctx context.Context, ref string) ([]Collection, error) {
	listing, err := r.Listing(ctx)
	if err != nil {
		return nil, err
	}
	matches := listing.Match(ref)
	if len(matches) == 0 {
		resolutionsTotal.WithLabelValues("not_found").Inc()
		return nil, notFound(ref, listing)
	}
	resolutionsTotal.WithLabelValues("resolved").Inc()
	return matches, nil
}

// ResolveMany resolves refs concurrently. The result is in ref order. The
// first failure cancels the remaining resolutions.
func (r *Resolver) ResolveMany(ctx context.Context, refs ...string) ([]Collection, error) {
	out := make([]Collection, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			c, err := r.ResolveOne(gctx, ref)
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func notFound(ref string, listing Listing) error {
	suggestions := Suggest(strings.TrimSpace(ref), listing.Names(), 0)
	names := SuggestionNames(suggestions)

	msg := fmt.Sprintf("no collection matches %q", ref)
	if len(names) > 0 {
		msg += fmt.Sprintf("; did you mean: %s?", strings.Join(names, ", "))
	}
	return errors.NewWithContext(errors.ErrCodeIdentifierNotFound, msg, map[string]any{
		"ref":         ref,
		"suggestions": names,
	})
}
