package service

import (
	"context"
	"fmt"

	"github.com/devconnect/devconnect-backend/internal/assistant"
	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/events"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/devconnect/devconnect-backend/pkg/database"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

// EmbeddingRefresher recomputes an entity's embedding and keyword index
// document after a profile or listing change. It implements
// events.RefreshHandler so it can sit behind Kafka or run inline.
type EmbeddingRefresher struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	embedder assistant.Embedder
	index    repository.SearchIndexRepository // nil when keyword search is disabled
}

func NewEmbeddingRefresher(
	users repository.UserRepository,
	projects repository.ProjectRepository,
	embedder assistant.Embedder,
	index repository.SearchIndexRepository,
) *EmbeddingRefresher {
	return &EmbeddingRefresher{
		users:    users,
		projects: projects,
		embedder: embedder,
		index:    index,
	}
}

func (r *EmbeddingRefresher) HandleRefresh(ctx context.Context, event *events.RefreshEvent) error {
	switch event.EntityType {
	case events.EntityUser:
		return r.refreshUser(ctx, event.EntityID)
	case events.EntityProject:
		if event.Deleted {
			return r.dropProject(ctx, event.EntityID)
		}
		return r.refreshProject(ctx, event.EntityID)
	default:
		return fmt.Errorf("unknown entity type %q", event.EntityType)
	}
}

func (r *EmbeddingRefresher) refreshUser(ctx context.Context, userID string) error {
	l := log.Ctx(ctx)

	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	text := user.SearchableText()
	if text != "" {
		embedding, err := r.embedder.EmbedQuery(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to embed user profile: %w", err)
		}
		if err := r.users.UpdateEmbedding(ctx, userID, database.Vector(embedding)); err != nil {
			return err
		}
	}

	if r.index != nil {
		doc := &domain.DeveloperDoc{
			ID:          user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Bio:         user.Bio,
			Skills:      user.Skills,
		}
		if err := r.index.IndexDeveloper(ctx, doc); err != nil {
			l.Warn().Err(err).Str(log.FieldUserID, userID).Msg("failed to index developer document")
		}
	}

	l.Debug().Str(log.FieldUserID, userID).Msg("user embedding refreshed")
	return nil
}

func (r *EmbeddingRefresher) refreshProject(ctx context.Context, projectID string) error {
	l := log.Ctx(ctx)

	project, err := r.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	text := project.SearchableText()
	if text != "" {
		embedding, err := r.embedder.EmbedQuery(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to embed project listing: %w", err)
		}
		if err := r.projects.UpdateEmbedding(ctx, projectID, database.Vector(embedding)); err != nil {
			return err
		}
	}

	if r.index != nil {
		doc := &domain.ProjectDoc{
			ID:            project.ID,
			Title:         project.Title,
			Description:   project.Description,
			TechStack:     project.TechStack,
			OwnerUsername: project.OwnerUsername,
		}
		if err := r.index.IndexProject(ctx, doc); err != nil {
			l.Warn().Err(err).Str(log.FieldProjectID, projectID).Msg("failed to index project document")
		}
	}

	l.Debug().Str(log.FieldProjectID, projectID).Msg("project embedding refreshed")
	return nil
}

func (r *EmbeddingRefresher) dropProject(ctx context.Context, projectID string) error {
	if r.index == nil {
		return nil
	}
	return r.index.DeleteProject(ctx, projectID)
}
