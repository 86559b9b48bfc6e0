// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	stdctx "context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/arkiva/internal/collections"
	"github.com/taibuivan/arkiva/internal/platform/constants"
	"github.com/taibuivan/arkiva/pkg/slug"
)

// RedisCache is the read-through cache for title lookups.
//
// # Failure Policy
//
// The cache is an accelerator, never an authority: any Redis failure is
// treated as a miss and the caller falls through to the catalogue. Errors
// are deliberately swallowed here — a cold cache is not an incident.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing Redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// GetTitle returns the cached title for id, or a miss.
func (cache *RedisCache) GetTitle(context stdctx.Context, id string) (*collections.Title, bool) {
	raw, err := cache.client.Get(context, constants.RedisPrefixTitle+id).Bytes()
	if err != nil {
		return nil, false
	}
	title := &collections.Title{}
	if err := json.Unmarshal(raw, title); err != nil {
		return nil, false
	}
	return title, true
}

// SetTitle stores a title lookup result with the given TTL.
func (cache *RedisCache) SetTitle(context stdctx.Context, title *collections.Title, ttl time.Duration) {
	raw, err := json.Marshal(title)
	if err != nil {
		return
	}
	cache.client.Set(context, constants.RedisPrefixTitle+title.ID, raw, ttl)
}

// GetSearch returns the cached result page for an exact-name search.
func (cache *RedisCache) GetSearch(context stdctx.Context, name string) ([]*collections.Title, bool) {
	raw, err := cache.client.Get(context, searchKey(name)).Bytes()
	if err != nil {
		return nil, false
	}
	var titles []*collections.Title
	if err := json.Unmarshal(raw, &titles); err != nil {
		return nil, false
	}
	return titles, true
}

// SetSearch stores a search result page with the given TTL.
func (cache *RedisCache) SetSearch(context stdctx.Context, name string, titles []*collections.Title, ttl time.Duration) {
	raw, err := json.Marshal(titles)
	if err != nil {
		return
	}
	cache.client.Set(context, searchKey(name), raw, ttl)
}

// InvalidateSearch drops the cached page for name after a create.
func (cache *RedisCache) InvalidateSearch(context stdctx.Context, name string) {
	cache.client.Del(context, searchKey(name))
}

// searchKey normalizes the free-text name into a stable cache key.
func searchKey(name string) string {
	return constants.RedisPrefixTitleSearch + slug.From(name)
}
