// Package outbox models events waiting to be relayed to the message bus. A
// message is written in the same transaction as the order change that produced
// it and is marked sent once the bus acknowledged it.
package outbox

import (
	"errors"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrMessageIsNotConstructed = errors.New("outbox message must be created via NewMessage")

// maxErrorLength bounds the stored error of the last failed attempt.
const maxErrorLength = 512

type Message struct {
	id        kernel.UUID
	sagaID    kernel.UUID
	topic     string
	key       string
	eventType string
	payload   []byte
	createdAt time.Time
	sentAt    *time.Time
	attempts  int
	lastError string

	isConstructed bool
}

// NewMessage creates a pending message. key selects the partition or routing key,
// usually the order id, so all messages of one order stay in sequence.
func NewMessage(sagaID kernel.UUID, topic, key, eventType string, payload []byte, createdAt time.Time) (*Message, error) {
	m := &Message{
		id:            kernel.NewUUID(),
		key:           key,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	var payloadErr error
	if len(payload) == 0 {
		payloadErr = errs.NewValueIsRequiredError("payload")
	}

	if err := errors.Join(
		sagaID.Validate(),
		requireText("topic", topic, &m.topic),
		requireText("eventType", eventType, &m.eventType),
		payloadErr,
	); err != nil {
		return nil, err
	}

	m.sagaID = sagaID
	m.payload = append([]byte(nil), payload...)
	return m, nil
}

type RestoreMessageParams struct {
	ID        kernel.UUID
	SagaID    kernel.UUID
	Topic     string
	Key       string
	EventType string
	Payload   []byte
	CreatedAt time.Time
	SentAt    *time.Time
	Attempts  int
	LastError string
}

func RestoreMessage(p RestoreMessageParams) (*Message, error) {
	m, err := NewMessage(p.SagaID, p.Topic, p.Key, p.EventType, p.Payload, p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = p.ID.Validate(); err != nil {
		return nil, err
	}
	if p.Attempts < 0 {
		return nil, errs.NewValueIsOutOfRangeError("attempts", p.Attempts, 0, "unbounded")
	}

	m.id = p.ID
	m.sentAt = p.SentAt
	m.attempts = p.Attempts
	m.lastError = p.LastError
	return m, nil
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.UUID {
	return m.id
}

func (m *Message) SagaID() kernel.UUID {
	return m.sagaID
}

func (m *Message) Topic() string {
	return m.topic
}

func (m *Message) Key() string {
	return m.key
}

func (m *Message) EventType() string {
	return m.eventType
}

func (m *Message) Payload() []byte {
	return m.payload
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) SentAt() *time.Time {
	return m.sentAt
}

func (m *Message) Attempts() int {
	return m.attempts
}

func (m *Message) LastError() string {
	return m.lastError
}

func (m *Message) IsSent() bool {
	return m.sentAt != nil
}

// MarkSent records a successful publication. Marking twice keeps the first time.
func (m *Message) MarkSent(at time.Time) {
	if m.sentAt != nil {
		return
	}
	m.attempts++
	at = at.UTC()
	m.sentAt = &at
	m.lastError = ""
}

// MarkFailed records a failed attempt. The message stays pending.
func (m *Message) MarkFailed(cause error) {
	m.attempts++
	if cause == nil {
		m.lastError = ""
		return
	}
	msg := cause.Error()
	if len(msg) > maxErrorLength {
		msg = msg[:maxErrorLength]
	}
	m.lastError = msg
}

func requireText(param, value string, dst *string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = value
	return nil
}
