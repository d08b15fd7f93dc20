// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "feed:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	// Verify connection.
	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestFeedCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	fc := NewFeedCache(client, 1*time.Minute)

	ctx := context.Background()

	// Miss.
	data, ok := fc.Get(ctx)
	if ok {
		t.Error("expected cache miss")
	}
	if data != nil {
		t.Error("expected nil data on miss")
	}

	// Set.
	body := []byte(`[{"id":1,"title":"Cached Post"}]`)
	fc.Set(ctx, body)

	// Hit.
	data, ok = fc.Get(ctx)
	if !ok {
		t.Error("expected cache hit")
	}
	if string(data) != string(body) {
		t.Errorf("data mismatch: got %q, want %q", data, body)
	}
}

func TestFeedCacheInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	fc := NewFeedCache(client, 1*time.Minute)

	ctx := context.Background()

	fc.Set(ctx, []byte("cached"))

	// Verify it's cached.
	_, ok := fc.Get(ctx)
	if !ok {
		t.Fatal("expected cache hit before invalidation")
	}

	// Invalidate.
	fc.Invalidate(ctx)

	// Verify it's gone.
	_, ok = fc.Get(ctx)
	if ok {
		t.Error("expected cache miss after invalidation")
	}
}

func TestNewFeedCacheDefaultTTL(t *testing.T) {
	client := testValkeyClient(t)

	// TTL = 0 should use default.
	fc := NewFeedCache(client, 0)
	if fc.ttl != DefaultFeedTTL {
		t.Errorf("expected DefaultFeedTTL (%v), got %v", DefaultFeedTTL, fc.ttl)
	}
}
