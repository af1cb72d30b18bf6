package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devconnect/devconnect-backend/internal/config"
	"github.com/devconnect/devconnect-backend/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// NewRedisClient connects a shared redis client.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

type RedisHistoryCache struct {
	client *redis.Client
	prefix string
}

func NewRedisHistoryCache(client *redis.Client, prefix string) *RedisHistoryCache {
	return &RedisHistoryCache{
		client: client,
		prefix: prefix,
	}
}

func (c *RedisHistoryCache) BuildKey(communityID, cursor string, limit int) string {
	if cursor == "" {
		cursor = "start"
	}
	return fmt.Sprintf("%s:%s:%s:%d", c.prefix, communityID, cursor, limit)
}

func (c *RedisHistoryCache) Get(ctx context.Context, key string) (*HistoryCacheResult, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var result HistoryCacheResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &result, nil
}

func (c *RedisHistoryCache) Set(ctx context.Context, key string, result *HistoryCacheResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

func (c *RedisHistoryCache) Close() error {
	return c.client.Close()
}

type RedisSearchCache struct {
	client *redis.Client
	prefix string
}

func NewRedisSearchCache(client *redis.Client, prefix string) *RedisSearchCache {
	return &RedisSearchCache{
		client: client,
		prefix: prefix,
	}
}

// BuildKey hashes the query text so arbitrary user input stays out of the key.
func (c *RedisSearchCache) BuildKey(intent, query string, limit int) string {
	sum := sha256.Sum256([]byte(query))
	return fmt.Sprintf("%s:%s:%s:%d", c.prefix, intent, hex.EncodeToString(sum[:16]), limit)
}

func (c *RedisSearchCache) Get(ctx context.Context, key string) (*domain.AssistantReply, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var reply domain.AssistantReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &reply, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, key string, reply *domain.AssistantReply, ttl time.Duration) error {
	data, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

func (c *RedisSearchCache) Close() error {
	return c.client.Close()
}

type RedisKeywordCache struct {
	client *redis.Client
	prefix string
}

func NewRedisKeywordCache(client *redis.Client, prefix string) *RedisKeywordCache {
	return &RedisKeywordCache{
		client: client,
		prefix: prefix,
	}
}

func (c *RedisKeywordCache) BuildKey(query string, offset, limit int) string {
	sum := sha256.Sum256([]byte(query))
	return fmt.Sprintf("%s:%s:%d:%d", c.prefix, hex.EncodeToString(sum[:16]), offset, limit)
}

func (c *RedisKeywordCache) Get(ctx context.Context, key string) (*domain.KeywordSearchResponse, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var resp domain.KeywordSearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &resp, nil
}

func (c *RedisKeywordCache) Set(ctx context.Context, key string, resp *domain.KeywordSearchResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

func (c *RedisKeywordCache) Close() error {
	return c.client.Close()
}
