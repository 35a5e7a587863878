package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// tagListKey holds the cached global tag listing.
	tagListKey = "tags:list"

	// TagListTTL bounds staleness of the tag listing; new tags show up once
	// the entry expires.
	TagListTTL = time.Minute
)

// TagCache is a read-through cache for the global tag listing. Implementations
// must treat a miss and a backend failure differently so callers can fall
// back to the database on either.
type TagCache interface {
	// Get returns the cached listing, or found=false on a miss.
	Get(ctx context.Context) (tags []string, found bool, err error)

	// Set stores the listing with TagListTTL.
	Set(ctx context.Context, tags []string) error
}

// RedisTagCache implements TagCache on a shared Redis client.
type RedisTagCache struct {
	client *redis.Client
}

func NewTagCache(client *redis.Client) *RedisTagCache {
	return &RedisTagCache{client: client}
}

func (c *RedisTagCache) Get(ctx context.Context) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, tagListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get tag list: %w", err)
	}

	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		// A corrupt entry reads as a miss; the next Set overwrites it.
		return nil, false, nil
	}

	return tags, true, nil
}

func (c *RedisTagCache) Set(ctx context.Context, tags []string) error {
	raw, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tag list: %w", err)
	}

	if err := c.client.Set(ctx, tagListKey, raw, TagListTTL).Err(); err != nil {
		return fmt.Errorf("set tag list: %w", err)
	}

	return nil
}
