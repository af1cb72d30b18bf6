package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/devconnect/devconnect-backend/internal/cache"
	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

const defaultHistoryLimit = 50

type historyServiceImpl struct {
	messages    repository.MessageRepository
	memberships repository.MembershipRepository
	cache       cache.HistoryCache
	cacheTTL    time.Duration
	sf          singleflight.Group
}

func NewHistoryService(
	messages repository.MessageRepository,
	memberships repository.MembershipRepository,
	historyCache cache.HistoryCache,
	cacheTTL time.Duration,
) HistoryService {
	return &historyServiceImpl{
		messages:    messages,
		memberships: memberships,
		cache:       historyCache,
		cacheTTL:    cacheTTL,
	}
}

func (s *historyServiceImpl) GetChatHistory(ctx context.Context, userID, communityID, cursor string, limit int) (*domain.ChatHistoryResponse, error) {
	if limit < 1 || limit > 100 {
		limit = defaultHistoryLimit
	}

	ok, err := s.memberships.IsActiveMember(ctx, userID, communityID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAMember
	}

	// Always fetch the latest page directly so fresh messages show up.
	if cursor == "" {
		return s.fetchPage(ctx, communityID, cursor, limit)
	}

	cacheKey := s.cache.BuildKey(communityID, cursor, limit)

	result, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		return s.fetchWithCache(ctx, communityID, cursor, limit, cacheKey)
	})
	if err != nil {
		return nil, err
	}

	cacheResult, ok2 := result.(*cache.HistoryCacheResult)
	if !ok2 {
		return nil, fmt.Errorf("unexpected result type from singleflight")
	}

	return &domain.ChatHistoryResponse{
		Messages:   cacheResult.Messages,
		NextCursor: cacheResult.NextCursor,
		HasMore:    cacheResult.HasMore,
	}, nil
}

func (s *historyServiceImpl) fetchPage(ctx context.Context, communityID, cursor string, limit int) (*domain.ChatHistoryResponse, error) {
	messages, nextCursor, hasMore, err := s.fetch(ctx, communityID, cursor, limit)
	if err != nil {
		return nil, err
	}
	return &domain.ChatHistoryResponse{
		Messages:   messages,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (s *historyServiceImpl) fetchWithCache(ctx context.Context, communityID, cursor string, limit int, cacheKey string) (*cache.HistoryCacheResult, error) {
	l := log.Ctx(ctx)

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil {
		return cached, nil
	}

	if !errors.Is(err, cache.ErrCacheMiss) {
		l.Warn().Err(err).Msg("cache get error")
	}

	messages, nextCursor, hasMore, err := s.fetch(ctx, communityID, cursor, limit)
	if err != nil {
		return nil, err
	}

	result := &cache.HistoryCacheResult{
		Messages:   messages,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}

	// Store in cache without blocking the response.
	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.cache.Set(cacheCtx, cacheKey, result, s.cacheTTL); err != nil {
			bg := log.L()
			bg.Warn().Err(err).Msg("cache set error")
		}
	}()

	return result, nil
}

// fetch reads one page plus one extra row to learn whether more remain.
func (s *historyServiceImpl) fetch(ctx context.Context, communityID, cursor string, limit int) ([]domain.ChatMessage, string, bool, error) {
	messages, err := s.messages.GetHistory(ctx, communityID, cursor, limit+1)
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to get messages from repository: %w", err)
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[:limit]
	}

	nextCursor := ""
	if hasMore && len(messages) > 0 {
		nextCursor = messages[len(messages)-1].MessageID
	}

	return messages, nextCursor, hasMore, nil
}
