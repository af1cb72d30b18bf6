package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/pkg/database"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

// GormProjectRepository implements ProjectRepository using GORM.
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GORM-based project repository.
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project listing.
func (r *GormProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	l := log.Ctx(ctx)

	project.ID = uuid.New().String()
	project.Status = domain.ProjectStatusOpen

	model := domain.ProjectModelFromDomain(project)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to create project in db")
		return result.Error
	}

	project.CreatedAt = model.CreatedAt
	project.UpdatedAt = model.UpdatedAt
	l.Debug().Str(log.FieldProjectID, project.ID).Msg("project created in db")
	return nil
}

// GetByID retrieves a project by ID.
func (r *GormProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	l := log.Ctx(ctx)

	var model domain.ProjectModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		l.Error().Err(result.Error).Str(log.FieldProjectID, id).Msg("failed to get project by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// List retrieves projects with pagination, newest first.
func (r *GormProjectRepository) List(ctx context.Context, page, pageSize int, status string) ([]domain.Project, int, error) {
	l := log.Ctx(ctx)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.ProjectModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		l.Error().Err(err).Msg("failed to count projects")
		return nil, 0, err
	}

	var models []domain.ProjectModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&models).Error; err != nil {
		l.Error().Err(err).Msg("failed to list projects from db")
		return nil, 0, err
	}

	projects := make([]domain.Project, len(models))
	for i, model := range models {
		projects[i] = *model.ToDomain()
	}

	return projects, int(total), nil
}

// GetByOwner retrieves projects owned by a user.
func (r *GormProjectRepository) GetByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	l := log.Ctx(ctx)

	var models []domain.ProjectModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldUserID, ownerID).Msg("failed to get owner projects from db")
		return nil, result.Error
	}

	projects := make([]domain.Project, len(models))
	for i, model := range models {
		projects[i] = *model.ToDomain()
	}
	return projects, nil
}

// Update updates a project's mutable fields.
func (r *GormProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	l := log.Ctx(ctx)

	updates := map[string]interface{}{
		"title":       project.Title,
		"description": project.Description,
		"tech_stack":  database.StringArray(project.TechStack),
	}

	result := r.db.WithContext(ctx).Model(&domain.ProjectModel{}).
		Where("id = ?", project.ID).
		Updates(updates)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldProjectID, project.ID).Msg("failed to update project in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// UpdateStatus transitions a project's status.
func (r *GormProjectRepository) UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).Model(&domain.ProjectModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldProjectID, id).Msg("failed to update project status")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// UpdateEmbedding stores a freshly computed listing embedding.
func (r *GormProjectRepository) UpdateEmbedding(ctx context.Context, id string, embedding database.Vector) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).Model(&domain.ProjectModel{}).
		Where("id = ?", id).
		Update("embedding", embedding)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldProjectID, id).Msg("failed to update project embedding")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Delete removes a project listing.
func (r *GormProjectRepository) Delete(ctx context.Context, id string) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).Delete(&domain.ProjectModel{}, "id = ?", id)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldProjectID, id).Msg("failed to delete project from db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
