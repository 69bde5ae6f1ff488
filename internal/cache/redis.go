package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// emptyMarker keeps a cached empty set distinguishable from a miss.
const emptyMarker = "\x00"

// RedisCache stores resolved dictionary word sets.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to redisURL and pings it.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	// Parse redis URL (redis://host:port or redis://host:port/db)
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Client exposes the underlying connection for components that share it.
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// GetWordSet returns the cached members of key. The bool is false on a miss.
func (c *RedisCache) GetWordSet(ctx context.Context, key string) ([]string, bool, error) {
	members, err := c.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, false, err
	}
	if len(members) == 0 {
		return nil, false, nil
	}

	words := make([]string, 0, len(members))
	for _, m := range members {
		if m != emptyMarker {
			words = append(words, m)
		}
	}
	return words, true, nil
}

// SetWordSet replaces the set stored at key.
func (c *RedisCache) SetWordSet(ctx context.Context, key string, words []string, ttl time.Duration) error {
	members := make([]interface{}, 0, len(words)+1)
	members = append(members, emptyMarker)
	for _, w := range words {
		members = append(members, w)
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SAdd(ctx, key, members...)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// ProjectDictionaryKey is where a project's resolved dictionary is cached.
// Format: "dictionary:project:<id>"
func ProjectDictionaryKey(projectID int64) string {
	return fmt.Sprintf("dictionary:project:%d", projectID)
}
