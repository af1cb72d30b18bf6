package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

// GormCommunityRepository implements CommunityRepository using GORM.
type GormCommunityRepository struct {
	db *gorm.DB
}

// NewGormCommunityRepository creates a new GORM-based community repository.
func NewGormCommunityRepository(db *gorm.DB) *GormCommunityRepository {
	return &GormCommunityRepository{db: db}
}

// Create creates a new community.
func (r *GormCommunityRepository) Create(ctx context.Context, community *domain.Community) error {
	l := log.Ctx(ctx)

	community.ID = uuid.New().String()
	community.MemberCount = 1

	model := domain.CommunityModelFromDomain(community)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to create community in db")
		return result.Error
	}

	community.CreatedAt = model.CreatedAt
	l.Debug().Str(log.FieldCommunityID, community.ID).Msg("community created in db")
	return nil
}

// GetByID retrieves a community by ID.
func (r *GormCommunityRepository) GetByID(ctx context.Context, id string) (*domain.Community, error) {
	l := log.Ctx(ctx)

	var model domain.CommunityModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		l.Error().Err(result.Error).Str(log.FieldCommunityID, id).Msg("failed to get community by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// Explore lists public communities, optionally filtered by a name or
// description substring, newest first.
func (r *GormCommunityRepository) Explore(ctx context.Context, queryStr string, page, pageSize int) ([]domain.Community, int, error) {
	l := log.Ctx(ctx)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.CommunityModel{}).
		Where("is_private = ?", false)
	if queryStr != "" {
		pattern := "%" + queryStr + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		l.Error().Err(err).Msg("failed to count communities")
		return nil, 0, err
	}

	var models []domain.CommunityModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&models).Error; err != nil {
		l.Error().Err(err).Msg("failed to explore communities from db")
		return nil, 0, err
	}

	communities := make([]domain.Community, len(models))
	for i, model := range models {
		communities[i] = *model.ToDomain()
	}

	return communities, int(total), nil
}

// GetByIDs retrieves communities by a set of IDs. Missing IDs are skipped.
func (r *GormCommunityRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Community, error) {
	l := log.Ctx(ctx)

	if len(ids) == 0 {
		return nil, nil
	}

	var models []domain.CommunityModel
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to get communities by ids")
		return nil, result.Error
	}

	communities := make([]domain.Community, len(models))
	for i, model := range models {
		communities[i] = *model.ToDomain()
	}
	return communities, nil
}

// GetByAdmin retrieves communities administered by a user, newest first.
func (r *GormCommunityRepository) GetByAdmin(ctx context.Context, adminID string) ([]domain.Community, error) {
	l := log.Ctx(ctx)

	var models []domain.CommunityModel
	result := r.db.WithContext(ctx).Where("admin_id = ?", adminID).Order("created_at DESC").Find(&models)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to get communities by admin")
		return nil, result.Error
	}

	communities := make([]domain.Community, len(models))
	for i, model := range models {
		communities[i] = *model.ToDomain()
	}
	return communities, nil
}

// AdjustMemberCount adds delta to a community's member count.
func (r *GormCommunityRepository) AdjustMemberCount(ctx context.Context, id string, delta int) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).Model(&domain.CommunityModel{}).
		Where("id = ?", id).
		Update("member_count", gorm.Expr("member_count + ?", delta))
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldCommunityID, id).Msg("failed to adjust member count")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommunityNotFound
	}
	return nil
}
