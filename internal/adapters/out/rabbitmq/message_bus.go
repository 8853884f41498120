// Package rabbitmq publishes outbox messages to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ordering/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// KeyHeader carries the ordering key of a message, the order id.
const KeyHeader = "x-message-key"

var ErrPublishNacked = errors.New("rabbitmq: publish nacked by broker")

var _ ports.MessageBus = (*MessageBus)(nil)

// MessageBus publishes with publisher confirms. The topic is used as routing key.
type MessageBus struct {
	ch       *amqp.Channel
	exchange string
	acks     <-chan amqp.Confirmation

	// confirms arrive in publish order, so publishing is serialized
	mu sync.Mutex
}

func NewMessageBus(conn *amqp.Connection, exchange string) (*MessageBus, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("confirm mode: %w", err)
	}

	return &MessageBus{
		ch:       ch,
		exchange: exchange,
		acks:     ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

func (b *MessageBus) Publish(ctx context.Context, topic, key string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.ch.PublishWithContext(ctx, b.exchange, topic, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Headers:      amqp.Table{KeyHeader: key},
		Body:         payload,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	select {
	case conf, ok := <-b.acks:
		if !ok {
			return amqp.ErrClosed
		}
		if !conf.Ack {
			return ErrPublishNacked
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *MessageBus) Close() error {
	return b.ch.Close()
}
