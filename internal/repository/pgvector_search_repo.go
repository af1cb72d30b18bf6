package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/pkg/database"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

// PgvectorSearchRepository implements VectorSearchRepository using pgvector's
// cosine distance operator. Rows without an embedding are excluded.
type PgvectorSearchRepository struct {
	db *gorm.DB
}

// NewPgvectorSearchRepository creates a new pgvector-backed similarity search repository.
func NewPgvectorSearchRepository(db *gorm.DB) *PgvectorSearchRepository {
	return &PgvectorSearchRepository{db: db}
}

type developerRow struct {
	ID          string
	Username    string
	DisplayName string
	Bio         string
	Skills      database.StringArray
	Similarity  float64
}

type projectRow struct {
	ID            string
	Title         string
	Description   string
	TechStack     database.StringArray
	OwnerUsername string
	Similarity    float64
}

// SearchDevelopers ranks developers by cosine similarity to the query
// embedding. Similarity scores are truncated to three decimal places.
func (r *PgvectorSearchRepository) SearchDevelopers(ctx context.Context, embedding database.Vector, limit int) ([]domain.DeveloperResult, error) {
	l := log.Ctx(ctx)

	if limit < 1 {
		limit = 5
	}

	vec := embedding.String()
	var rows []developerRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, username, display_name, bio, skills,
		       1 - (embedding <=> ?) AS similarity
		FROM users
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> ?
		LIMIT ?`, vec, vec, limit).Scan(&rows).Error
	if err != nil {
		l.Error().Err(err).Msg("failed to search developers by embedding")
		return nil, err
	}

	results := make([]domain.DeveloperResult, len(rows))
	for i, row := range rows {
		results[i] = domain.DeveloperResult{
			ID:          row.ID,
			Username:    row.Username,
			DisplayName: row.DisplayName,
			Bio:         row.Bio,
			Skills:      row.Skills,
			Similarity:  domain.Truncate3(row.Similarity),
		}
	}
	return results, nil
}

// SearchProjects ranks open projects by cosine similarity to the query
// embedding. The stored embedding column is never selected.
func (r *PgvectorSearchRepository) SearchProjects(ctx context.Context, embedding database.Vector, limit int) ([]domain.ProjectResult, error) {
	l := log.Ctx(ctx)

	if limit < 1 {
		limit = 5
	}

	vec := embedding.String()
	var rows []projectRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, title, description, tech_stack, owner_username,
		       1 - (embedding <=> ?) AS similarity
		FROM projects
		WHERE embedding IS NOT NULL AND status = 'open'
		ORDER BY embedding <=> ?
		LIMIT ?`, vec, vec, limit).Scan(&rows).Error
	if err != nil {
		l.Error().Err(err).Msg("failed to search projects by embedding")
		return nil, err
	}

	results := make([]domain.ProjectResult, len(rows))
	for i, row := range rows {
		results[i] = domain.ProjectResult{
			ID:            row.ID,
			Title:         row.Title,
			Description:   row.Description,
			TechStack:     row.TechStack,
			OwnerUsername: row.OwnerUsername,
			Similarity:    row.Similarity,
		}
	}
	return results, nil
}
