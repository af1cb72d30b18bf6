package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

// GormApplicationRepository implements ApplicationRepository using GORM.
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewGormApplicationRepository creates a new GORM-based application repository.
func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create creates a new pending application.
func (r *GormApplicationRepository) Create(ctx context.Context, app *domain.ProjectApplication) error {
	l := log.Ctx(ctx)

	app.ID = uuid.New().String()
	app.Status = domain.ApplicationStatusPending

	model := domain.ApplicationModelFromDomain(app)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return ErrAlreadyApplied
		}
		l.Error().Err(result.Error).Msg("failed to create application in db")
		return result.Error
	}

	app.CreatedAt = model.CreatedAt
	app.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByID retrieves an application by ID.
func (r *GormApplicationRepository) GetByID(ctx context.Context, id string) (*domain.ProjectApplication, error) {
	l := log.Ctx(ctx)

	var model domain.ApplicationModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		l.Error().Err(result.Error).Msg("failed to get application by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// GetByProject retrieves all applications for a project, newest first.
func (r *GormApplicationRepository) GetByProject(ctx context.Context, projectID string) ([]domain.ProjectApplication, error) {
	l := log.Ctx(ctx)

	var models []domain.ApplicationModel
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldProjectID, projectID).Msg("failed to get project applications from db")
		return nil, result.Error
	}

	apps := make([]domain.ProjectApplication, len(models))
	for i, model := range models {
		apps[i] = *model.ToDomain()
	}
	return apps, nil
}

// GetByUser retrieves all applications submitted by a user, newest first.
func (r *GormApplicationRepository) GetByUser(ctx context.Context, userID string) ([]domain.ProjectApplication, error) {
	l := log.Ctx(ctx)

	var models []domain.ApplicationModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldUserID, userID).Msg("failed to get user applications from db")
		return nil, result.Error
	}

	apps := make([]domain.ProjectApplication, len(models))
	for i, model := range models {
		apps[i] = *model.ToDomain()
	}
	return apps, nil
}

// UpdateStatus transitions an application's status.
func (r *GormApplicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).Model(&domain.ApplicationModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to update application status")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
