package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devconnect/devconnect-backend/internal/assistant"
	"github.com/devconnect/devconnect-backend/internal/audit"
	"github.com/devconnect/devconnect-backend/internal/cache"
	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

const fallbackReply = "I can help you find developers or projects on DevConnect. " +
	"Try something like \"find me a React developer\" or \"show me open Go projects\"."

type assistantServiceImpl struct {
	extractor  assistant.IntentExtractor
	search     SemanticSearchService
	cache      cache.SearchCache
	cacheTTL   time.Duration
	maxResults int
}

func NewAssistantService(
	extractor assistant.IntentExtractor,
	search SemanticSearchService,
	searchCache cache.SearchCache,
	cacheTTL time.Duration,
	maxResults int,
) AssistantService {
	if maxResults < 1 {
		maxResults = 5
	}
	return &assistantServiceImpl{
		extractor:  extractor,
		search:     search,
		cache:      searchCache,
		cacheTTL:   cacheTTL,
		maxResults: maxResults,
	}
}

func (s *assistantServiceImpl) Chat(ctx context.Context, userID string, req *domain.AssistantRequest) (*domain.AssistantReply, error) {
	l := log.Ctx(ctx)

	result, err := s.extractor.Extract(ctx, req.Message)
	if err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionAssistantQuery, userID, result.Intent, "assistant query")

	if !result.Recognized() {
		return &domain.AssistantReply{Message: fallbackReply}, nil
	}

	// An empty domain phrase falls back to the raw message as the query.
	query := result.Domain
	if query == "" {
		query = req.Message
	}

	cacheKey := s.cache.BuildKey(result.Intent, query, s.maxResults)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		l.Warn().Err(err).Msg("search cache get error")
	}

	var reply *domain.AssistantReply
	switch result.Intent {
	case domain.IntentFindPeople:
		developers, err := s.search.SearchDevelopers(ctx, query, s.maxResults)
		if err != nil {
			return nil, err
		}
		reply = &domain.AssistantReply{
			Message:    s.peopleMessage(developers, query),
			Intent:     result.Intent,
			Developers: developers,
		}
	case domain.IntentFindProjects:
		projects, err := s.search.SearchProjects(ctx, query, s.maxResults)
		if err != nil {
			return nil, err
		}
		reply = &domain.AssistantReply{
			Message:  s.projectsMessage(projects, query),
			Intent:   result.Intent,
			Projects: projects,
		}
	}

	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.cache.Set(cacheCtx, cacheKey, reply, s.cacheTTL); err != nil {
			bg := log.L()
			bg.Warn().Err(err).Msg("search cache set error")
		}
	}()

	return reply, nil
}

func (s *assistantServiceImpl) peopleMessage(developers []domain.DeveloperResult, query string) string {
	if len(developers) == 0 {
		return fmt.Sprintf("I couldn't find any developers matching %q yet.", query)
	}
	return fmt.Sprintf("Here are %d developers matching %q.", len(developers), query)
}

func (s *assistantServiceImpl) projectsMessage(projects []domain.ProjectResult, query string) string {
	if len(projects) == 0 {
		return fmt.Sprintf("I couldn't find any open projects matching %q yet.", query)
	}
	return fmt.Sprintf("Here are %d open projects matching %q.", len(projects), query)
}
