package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

// GormMembershipRepository implements MembershipRepository using GORM.
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GORM-based membership repository.
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Upsert creates a membership or reactivates an existing one.
func (r *GormMembershipRepository) Upsert(ctx context.Context, m *domain.Membership) error {
	l := log.Ctx(ctx)

	model := domain.MembershipModelFromDomain(m)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "community_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "status"}),
	}).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).
			Str(log.FieldUserID, m.UserID).
			Str(log.FieldCommunityID, m.CommunityID).
			Msg("failed to upsert membership in db")
		return result.Error
	}
	m.CreatedAt = model.CreatedAt
	return nil
}

// Get retrieves a membership row.
func (r *GormMembershipRepository) Get(ctx context.Context, userID, communityID string) (*domain.Membership, error) {
	l := log.Ctx(ctx)

	var model domain.MembershipModel
	result := r.db.WithContext(ctx).
		First(&model, "user_id = ? AND community_id = ?", userID, communityID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		l.Error().Err(result.Error).Str(log.FieldUserID, userID).Msg("failed to get membership")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// IsActiveMember reports whether the user has an active membership.
func (r *GormMembershipRepository) IsActiveMember(ctx context.Context, userID, communityID string) (bool, error) {
	l := log.Ctx(ctx)

	var count int64
	result := r.db.WithContext(ctx).Model(&domain.MembershipModel{}).
		Where("user_id = ? AND community_id = ? AND status = ?",
			userID, communityID, string(domain.MemberStatusActive)).
		Count(&count)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldUserID, userID).Msg("failed to check membership")
		return false, result.Error
	}
	return count > 0, nil
}

// GetUserCommunities retrieves the community IDs the user is an active member of.
func (r *GormMembershipRepository) GetUserCommunities(ctx context.Context, userID string) ([]string, error) {
	l := log.Ctx(ctx)

	var ids []string
	result := r.db.WithContext(ctx).Model(&domain.MembershipModel{}).
		Where("user_id = ? AND status = ?", userID, string(domain.MemberStatusActive)).
		Pluck("community_id", &ids)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldUserID, userID).Msg("failed to get user communities")
		return nil, result.Error
	}
	return ids, nil
}

// SetStatus updates a membership's status.
func (r *GormMembershipRepository) SetStatus(ctx context.Context, userID, communityID string, status domain.MemberStatus) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).Model(&domain.MembershipModel{}).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Update("status", string(status))
	if result.Error != nil {
		l.Error().Err(result.Error).
			Str(log.FieldUserID, userID).
			Str(log.FieldCommunityID, communityID).
			Msg("failed to set membership status")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}
	return nil
}
