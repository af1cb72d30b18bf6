package cache

import (
	"context"
	"time"

	"github.com/devconnect/devconnect-backend/internal/domain"
)

type HistoryCacheResult struct {
	Messages   []domain.ChatMessage `json:"messages"`
	NextCursor string               `json:"next_cursor"`
	HasMore    bool                 `json:"has_more"`
}

// HistoryCache caches pages of community chat history.
type HistoryCache interface {
	Get(ctx context.Context, key string) (*HistoryCacheResult, error)
	Set(ctx context.Context, key string, result *HistoryCacheResult, ttl time.Duration) error
	BuildKey(communityID, cursor string, limit int) string
	Close() error
}

// SearchCache caches assistant search replies keyed by query text.
type SearchCache interface {
	Get(ctx context.Context, key string) (*domain.AssistantReply, error)
	Set(ctx context.Context, key string, reply *domain.AssistantReply, ttl time.Duration) error
	BuildKey(intent, query string, limit int) string
	Close() error
}

// KeywordCache caches keyword search result pages.
type KeywordCache interface {
	Get(ctx context.Context, key string) (*domain.KeywordSearchResponse, error)
	Set(ctx context.Context, key string, resp *domain.KeywordSearchResponse, ttl time.Duration) error
	BuildKey(query string, offset, limit int) string
	Close() error
}
