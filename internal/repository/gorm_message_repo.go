package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

// GormMessageRepository implements MessageRepository using GORM. The KSUID
// primary key makes message_id a stable, time-ordered pagination cursor.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM-based message repository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Save persists a chat message.
func (r *GormMessageRepository) Save(ctx context.Context, msg *domain.ChatMessage) error {
	l := log.Ctx(ctx)

	model := domain.MessageModelFromDomain(msg)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).
			Str(log.FieldMessageID, msg.MessageID).
			Str(log.FieldCommunityID, msg.CommunityID).
			Msg("failed to save message in db")
		return result.Error
	}

	msg.CreatedAt = model.CreatedAt
	return nil
}

// GetHistory returns up to limit messages older than cursor, newest first.
// An empty cursor starts from the latest message.
func (r *GormMessageRepository) GetHistory(ctx context.Context, communityID, cursor string, limit int) ([]domain.ChatMessage, error) {
	l := log.Ctx(ctx)

	if limit < 1 {
		limit = 50
	}

	query := r.db.WithContext(ctx).Model(&domain.MessageModel{}).
		Where("community_id = ?", communityID)
	if cursor != "" {
		query = query.Where("message_id < ?", cursor)
	}

	var models []domain.MessageModel
	if err := query.Order("message_id DESC").Limit(limit).Find(&models).Error; err != nil {
		l.Error().Err(err).Str(log.FieldCommunityID, communityID).Msg("failed to get chat history from db")
		return nil, err
	}

	messages := make([]domain.ChatMessage, len(models))
	for i, model := range models {
		messages[i] = model.ToDomain()
	}
	return messages, nil
}
