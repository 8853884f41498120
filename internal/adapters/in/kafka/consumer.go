// Package kafka consumes payment and restaurant responses from Kafka.
//
// Offsets are committed only after a message is settled. A message that should be
// retried blocks its partition and is retried in place after RetryDelay, at most
// MaxAttempts times. A message that can never succeed, or ran out of attempts, is
// copied to "<topic>.dlq" and committed.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/adapters/messaging"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"

	kafkago "github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

const DeadLetterSuffix = ".dlq"

type Config struct {
	Brokers    []string
	GroupID    string
	RetryDelay time.Duration

	// MaxAttempts bounds how often a retryable message is handled before it is
	// dead-lettered.
	MaxAttempts int
}

type Consumer struct {
	cfg         Config
	router      *messaging.Router
	deadLetters ports.MessageBus
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

func NewConsumer(
	cfg Config,
	router *messaging.Router,
	deadLetters ports.MessageBus,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Consumer {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}

	return &Consumer{
		cfg:         cfg,
		router:      router,
		deadLetters: deadLetters,
		metrics:     m,
		logger:      logger.With("component", "KafkaConsumer"),
	}
}

// Run reads every response topic with its own reader until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, topic := range c.router.Topics().All() {
		g.Go(func() error {
			return c.consume(gctx, topic)
		})
	}
	return g.Wait()
}

func (c *Consumer) consume(ctx context.Context, topic string) error {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  c.cfg.Brokers,
		Topic:    topic,
		GroupID:  c.cfg.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer func() {
		_ = reader.Close()
	}()

	c.logger.InfoContext(ctx, "consuming responses", "topic", topic, "groupId", c.cfg.GroupID)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch from %s: %w", topic, err)
		}

		if err = c.HandleMessage(ctx, msg); err != nil {
			if errors.Is(err, ctx.Err()) {
				return nil
			}
			return err
		}

		if err = reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			return fmt.Errorf("commit %s/%d@%d: %w", topic, msg.Partition, msg.Offset, err)
		}
	}
}

// HandleMessage returns once msg may be committed, or with ctx's error.
func (c *Consumer) HandleMessage(ctx context.Context, msg kafkago.Message) error {
	for attempt := 1; ; attempt++ {
		err := c.router.Route(ctx, msg.Topic, msg.Value)
		outcome := messaging.OutcomeOf(err)
		if outcome == messaging.Requeue && attempt >= c.cfg.MaxAttempts {
			c.logger.ErrorContext(ctx, "response retries exhausted",
				"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "attempts", attempt)
			outcome = messaging.DeadLetter
		}
		c.metrics.ObserveConsumed(msg.Topic, outcome.String())

		switch outcome {
		case messaging.Ack:
			return nil

		case messaging.DeadLetter:
			c.logger.ErrorContext(ctx, "response dead-lettered",
				"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
			return c.deadLetter(ctx, msg)

		case messaging.Requeue:
			c.logger.WarnContext(ctx, "response will be retried",
				"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset,
				"attempt", attempt, "error", err)
		}

		if err = c.pause(ctx); err != nil {
			return err
		}
	}
}

// deadLetter copies msg to its dead letter topic, retrying the write until it
// succeeds or ctx is cancelled.
func (c *Consumer) deadLetter(ctx context.Context, msg kafkago.Message) error {
	for {
		err := c.deadLetters.Publish(ctx, msg.Topic+DeadLetterSuffix, string(msg.Key), msg.Value)
		if err == nil {
			return nil
		}
		c.logger.ErrorContext(ctx, "failed to write dead letter", "topic", msg.Topic, "error", err)

		if err = c.pause(ctx); err != nil {
			return err
		}
	}
}

func (c *Consumer) pause(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.cfg.RetryDelay):
		return nil
	}
}
