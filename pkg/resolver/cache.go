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
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/collection-diff/pkg/defaults"
)

// Cache holds a single collection listing for a TTL. It is safe for
// concurrent use; concurrent misses result in one fetch.
type Cache struct {
	mu sync.Mutex

	ttl     time.Duration
	now     func() time.Time
	scope   string
	limiter *rate.Limiter

	listing   Listing
	fetchedAt time.Time
	populated bool
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL sets how long a fetched listing stays valid.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithScope labels the cache, typically with the credential profile it serves.
func WithScope(scope string) CacheOption {
	return func(c *Cache) {
		c.scope = scope
	}
}

// WithFetchLimiter throttles refetches of an expired listing.
func WithFetchLimiter(l *rate.Limiter) CacheOption {
	return func(c *Cache) {
		c.limiter = l
	}
}

// NewCache returns an empty Cache with the default TTL.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		ttl:   defaults.ListingCacheTTL,
		now:   time.Now,
		scope: "default",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFetchLimiter returns the default refetch limiter.
func NewFetchLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(defaults.ListingRefetchInterval), defaults.ListingRefetchBurst)
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Scope returns the cache label.
func (c *Cache) Scope() string {
	return c.scope
}

// GetListing returns the cached listing while it is younger than the TTL and
// otherwise calls fetch and stores its result. Fetch errors are returned and
// leave the cache untouched.
func (c *Cache) GetListing(ctx context.Context, fetch FetchFunc) (Listing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.populated && c.now().Sub(c.fetchedAt) < c.ttl {
		cacheHits.WithLabelValues(c.scope).Inc()
		return c.listing, nil
	}
	cacheMisses.WithLabelValues(c.scope).Inc()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	listing, err := fetch(ctx)
	if err != nil {
		slog.Debug("collection listing fetch failed", slog.String("scope", c.scope), slog.String("error", err.Error()))
		return nil, err
	}

	c.listing = listing
	c.fetchedAt = c.now()
	c.populated = true
	slog.Debug("collection listing cached", slog.String("scope", c.scope), slog.Int("collections", len(listing)))

	return listing, nil
}

// Invalidate drops the cached listing.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listing = nil
	c.fetchedAt = time.Time{}
	c.populated = false
}
