package outboxrepo

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/outbox"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPending must run inside a transaction for the row locks to hold until the
// relay marks the messages.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate, Options: clause.LockingOptionsSkipLocked}).
		Where("sent_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *GormOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"sent_at":    dto.SentAt,
			"attempts":   dto.Attempts,
			"last_error": dto.LastError,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("messageId", message.ID().String())
	}
	return nil
}

func (r *GormOutboxRepository) DeleteSentBefore(ctx context.Context, t time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("sent_at IS NOT NULL AND sent_at < ?", t.UTC()).
		Delete(&MessageDTO{})
	return result.RowsAffected, result.Error
}
