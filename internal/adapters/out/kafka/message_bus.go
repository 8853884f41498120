// Package kafka publishes outbox messages to Kafka topics.
package kafka

import (
	"context"
	"strings"
	"time"

	"ordering/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

var _ ports.MessageBus = (*MessageBus)(nil)

// MessageBus writes to the message's topic. Messages with the same key land on the
// same partition, which keeps the events of one order in order.
type MessageBus struct {
	writer *kafkago.Writer
}

func NewMessageBus(brokers []string) *MessageBus {
	return &MessageBus{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

func (b *MessageBus) Publish(ctx context.Context, topic, key string, payload []byte) error {
	return b.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now().UTC(),
	})
}

func (b *MessageBus) Close() error {
	return b.writer.Close()
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
