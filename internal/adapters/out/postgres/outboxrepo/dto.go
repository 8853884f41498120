package outboxrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

type MessageDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SagaID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Topic     string     `gorm:"type:varchar(255);not null"`
	Key       string     `gorm:"type:varchar(255);not null"`
	EventType string     `gorm:"type:varchar(64);not null"`
	Payload   []byte     `gorm:"type:jsonb;not null"`
	CreatedAt time.Time  `gorm:"not null;index:idx_outbox_pending,where:sent_at IS NULL"`
	SentAt    *time.Time `gorm:"index"`
	Attempts  int        `gorm:"not null;default:0"`
	LastError string     `gorm:"type:text"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID().Bytes(),
		SagaID:    m.SagaID().Bytes(),
		Topic:     m.Topic(),
		Key:       m.Key(),
		EventType: m.EventType(),
		Payload:   m.Payload(),
		CreatedAt: m.CreatedAt(),
		SentAt:    m.SentAt(),
		Attempts:  m.Attempts(),
		LastError: m.LastError(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sagaID, err := kernel.UUIDFromBytes(dto.SagaID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(outbox.RestoreMessageParams{
		ID:        id,
		SagaID:    sagaID,
		Topic:     dto.Topic,
		Key:       dto.Key,
		EventType: dto.EventType,
		Payload:   dto.Payload,
		CreatedAt: dto.CreatedAt,
		SentAt:    dto.SentAt,
		Attempts:  dto.Attempts,
		LastError: dto.LastError,
	})
}
