// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/hondana/internal/platform/constants"
)

// Cache is the Redis-backed statistics cache.
//
// The read endpoints for review and favorite stats are hot paths hit on
// every book details view, so their aggregates are cached with a short TTL.
// The recalculator invalidates both keys whenever a book's stats change.
type Cache struct {
	client *redis.Client
}

// NewCache constructs a Redis-backed stats [Cache].
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func reviewStatsKey(bookID string) string {
	return constants.RedisPrefixReviewStats + bookID
}

func favoriteStatsKey(bookID string) string {
	return constants.RedisPrefixFavoriteStats + bookID
}

// GetReviewStats returns the cached review stats, or (nil, nil) on a miss.
func (cache *Cache) GetReviewStats(context context.Context, bookID string) (*ReviewStats, error) {
	payload, err := cache.client.Get(context, reviewStatsKey(bookID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats_cache_get_failed: %w", err)
	}

	var result ReviewStats
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, nil // treat a corrupt entry as a miss
	}
	return &result, nil
}

// SetReviewStats stores review stats with the standard TTL.
func (cache *Cache) SetReviewStats(context context.Context, value ReviewStats) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("stats_cache_marshal_failed: %w", err)
	}
	return cache.client.Set(context, reviewStatsKey(value.BookID), payload, constants.StatsCacheTTL).Err()
}

// GetFavoriteStats returns the cached favorite stats, or (nil, nil) on a miss.
func (cache *Cache) GetFavoriteStats(context context.Context, bookID string) (*FavoriteStats, error) {
	payload, err := cache.client.Get(context, favoriteStatsKey(bookID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats_cache_get_failed: %w", err)
	}

	var result FavoriteStats
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, nil
	}
	return &result, nil
}

// SetFavoriteStats stores favorite stats with the standard TTL.
func (cache *Cache) SetFavoriteStats(context context.Context, value FavoriteStats) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("stats_cache_marshal_failed: %w", err)
	}
	return cache.client.Set(context, favoriteStatsKey(value.BookID), payload, constants.StatsCacheTTL).Err()
}

// InvalidateBook drops every cached stat entry for the book.
func (cache *Cache) InvalidateBook(context context.Context, bookID string) error {
	return cache.client.Del(context, reviewStatsKey(bookID), favoriteStatsKey(bookID)).Err()
}
