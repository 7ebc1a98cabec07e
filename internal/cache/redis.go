package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultCache Redis 分析结果缓存
// 值以 JSON 存储，带 TTL
type ResultCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewResultCache 创建结果缓存
func NewResultCache(client *redis.Client, prefix string, ttl time.Duration) *ResultCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &ResultCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get 读取缓存，未命中时返回 false
func (c *ResultCache) Get(ctx context.Context, operation, hand string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, BuildResultKey(c.prefix, operation, hand)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set 写入缓存
func (c *ResultCache) Set(ctx context.Context, operation, hand string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, BuildResultKey(c.prefix, operation, hand), data, c.ttl).Err()
}

// Invalidate 删除指定操作的全部缓存
func (c *ResultCache) Invalidate(ctx context.Context, operation string) (int64, error) {
	pattern := c.prefix + "result:" + operation + ":*"
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}
