package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/devconnect/devconnect-backend/internal/cache"
	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

type keywordSearchServiceImpl struct {
	index    repository.SearchIndexRepository
	cache    cache.KeywordCache
	cacheTTL time.Duration
}

func NewKeywordSearchService(
	index repository.SearchIndexRepository,
	keywordCache cache.KeywordCache,
	cacheTTL time.Duration,
) KeywordSearchService {
	return &keywordSearchServiceImpl{
		index:    index,
		cache:    keywordCache,
		cacheTTL: cacheTTL,
	}
}

// Search queries both indexes concurrently, serving repeated pages from cache.
func (s *keywordSearchServiceImpl) Search(ctx context.Context, req *domain.KeywordSearchRequest) (*domain.KeywordSearchResponse, error) {
	l := log.Ctx(ctx)

	limit := req.Limit
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	cacheKey := s.cache.BuildKey(req.Query, offset, limit)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		l.Warn().Err(err).Msg("keyword cache get error")
	}

	var (
		developers []domain.DeveloperDoc
		projects   []domain.ProjectDoc
		devTotal   int
		projTotal  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		developers, devTotal, err = s.index.SearchDevelopers(gctx, req.Query, offset, limit)
		return err
	})
	g.Go(func() error {
		var err error
		projects, projTotal, err = s.index.SearchProjects(gctx, req.Query, offset, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &domain.KeywordSearchResponse{
		Developers: developers,
		Projects:   projects,
		Total:      devTotal + projTotal,
	}

	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.cache.Set(cacheCtx, cacheKey, resp, s.cacheTTL); err != nil {
			bg := log.L()
			bg.Warn().Err(err).Msg("keyword cache set error")
		}
	}()

	return resp, nil
}
