package service

import (
	"context"

	"github.com/devconnect/devconnect-backend/internal/assistant"
	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/devconnect/devconnect-backend/pkg/database"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

type semanticSearchServiceImpl struct {
	embedder assistant.Embedder
	vectors  repository.VectorSearchRepository
}

func NewSemanticSearchService(
	embedder assistant.Embedder,
	vectors repository.VectorSearchRepository,
) SemanticSearchService {
	return &semanticSearchServiceImpl{
		embedder: embedder,
		vectors:  vectors,
	}
}

func (s *semanticSearchServiceImpl) SearchDevelopers(ctx context.Context, query string, limit int) ([]domain.DeveloperResult, error) {
	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to embed developer query")
		return nil, err
	}
	return s.vectors.SearchDevelopers(ctx, database.Vector(embedding), limit)
}

func (s *semanticSearchServiceImpl) SearchProjects(ctx context.Context, query string, limit int) ([]domain.ProjectResult, error) {
	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to embed project query")
		return nil, err
	}
	return s.vectors.SearchProjects(ctx, database.Vector(embedding), limit)
}
