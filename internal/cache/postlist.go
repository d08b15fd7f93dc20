// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// postlist.go provides a Valkey-backed cache for the public post feed.
// The published-post listing is the hottest read in the API; caching the
// encoded JSON response skips the DB query and serialization on hits.
// Any post write invalidates the feed.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// feedKey is the Valkey key holding the cached public feed JSON.
	feedKey = "feed:published"

	// DefaultFeedTTL bounds staleness if an invalidation is ever missed.
	DefaultFeedTTL = 5 * time.Minute
)

// FeedCache caches the encoded public post listing in Valkey.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeedCache creates a feed cache backed by the given Valkey client.
func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	if ttl == 0 {
		ttl = DefaultFeedTTL
	}
	return &FeedCache{client: client, ttl: ttl}
}

// Get returns the cached feed JSON. Returns false on miss or error;
// cache failures degrade to a DB read, never to a request failure.
func (fc *FeedCache) Get(ctx context.Context) ([]byte, bool) {
	val, err := fc.client.Get(ctx, feedKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("feed cache get error", "error", err)
		return nil, false
	}
	slog.Debug("feed cache hit")
	return val, true
}

// Set stores the encoded feed with the configured TTL.
func (fc *FeedCache) Set(ctx context.Context, body []byte) {
	if err := fc.client.Set(ctx, feedKey, body, fc.ttl).Err(); err != nil {
		slog.Warn("feed cache set error", "error", err)
	}
}

// Invalidate drops the cached feed. Called after every post create,
// update, or delete so readers never see a stale listing past the write.
func (fc *FeedCache) Invalidate(ctx context.Context) {
	if err := fc.client.Del(ctx, feedKey).Err(); err != nil {
		slog.Warn("feed cache invalidate error", "error", err)
	}
	slog.Debug("feed cache invalidated")
}
