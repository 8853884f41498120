// Package rabbitmq consumes payment and restaurant responses from RabbitMQ.
//
// Every consumed topic gets a durable queue bound to the topic exchange and a
// dead-letter queue behind "<exchange>.dlx". Deliveries are acknowledged manually
// once the router has settled them.
package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"ordering/internal/adapters/messaging"
	"ordering/internal/pkg/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Exchange    string
	QueuePrefix string
	Prefetch    int
}

type Consumer struct {
	conn    *amqp.Connection
	cfg     Config
	router  *messaging.Router
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewConsumer(
	conn *amqp.Connection,
	cfg Config,
	router *messaging.Router,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Consumer {
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 1
	}

	return &Consumer{
		conn:    conn,
		cfg:     cfg,
		router:  router,
		metrics: m,
		logger:  logger.With("component", "RabbitMQConsumer"),
	}
}

// Run consumes until ctx is cancelled or the broker closes a delivery channel.
func (c *Consumer) Run(ctx context.Context) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() {
		_ = ch.Close()
	}()

	queues, err := c.declare(ch)
	if err != nil {
		return err
	}

	if err = ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, queue := range queues {
		deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consume %s: %w", queue, err)
		}

		g.Go(func() error {
			return c.consume(gctx, queue, deliveries)
		})
	}

	c.logger.InfoContext(ctx, "consuming responses", "queues", queues, "prefetch", c.cfg.Prefetch)
	return g.Wait()
}

func (c *Consumer) declare(ch *amqp.Channel) ([]string, error) {
	dlx := c.cfg.Exchange + ".dlx"

	if err := ch.ExchangeDeclare(c.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", c.cfg.Exchange, err)
	}
	if err := ch.ExchangeDeclare(dlx, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", dlx, err)
	}

	topics := c.router.Topics().All()
	queues := make([]string, 0, len(topics))
	for _, topic := range topics {
		queue := c.cfg.QueuePrefix + topic
		deadLetterQueue := queue + ".dlq"

		_, err := ch.QueueDeclare(queue, true, false, false, false, amqp.Table{
			"x-dead-letter-exchange":    dlx,
			"x-dead-letter-routing-key": topic,
		})
		if err != nil {
			return nil, fmt.Errorf("declare queue %s: %w", queue, err)
		}
		if err = ch.QueueBind(queue, topic, c.cfg.Exchange, false, nil); err != nil {
			return nil, fmt.Errorf("bind queue %s: %w", queue, err)
		}

		if _, err = ch.QueueDeclare(deadLetterQueue, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare queue %s: %w", deadLetterQueue, err)
		}
		if err = ch.QueueBind(deadLetterQueue, topic, dlx, false, nil); err != nil {
			return nil, fmt.Errorf("bind queue %s: %w", deadLetterQueue, err)
		}

		queues = append(queues, queue)
	}

	return queues, nil
}

func (c *Consumer) consume(ctx context.Context, queue string, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("deliveries of %s closed", queue)
			}
			c.HandleDelivery(ctx, d)
		}
	}
}

// HandleDelivery routes one delivery and settles it: ack on success, dead-letter
// for messages that can never succeed, requeue otherwise.
func (c *Consumer) HandleDelivery(ctx context.Context, d amqp.Delivery) messaging.Outcome {
	err := c.router.Route(ctx, d.RoutingKey, d.Body)
	outcome := messaging.OutcomeOf(err)

	var settleErr error
	switch outcome {
	case messaging.Ack:
		settleErr = d.Ack(false)
	case messaging.Requeue:
		settleErr = d.Nack(false, true)
		c.logger.WarnContext(ctx, "response requeued",
			"topic", d.RoutingKey, "deliveryTag", d.DeliveryTag, "error", err)
	case messaging.DeadLetter:
		settleErr = d.Nack(false, false)
		c.logger.ErrorContext(ctx, "response dead-lettered",
			"topic", d.RoutingKey, "deliveryTag", d.DeliveryTag, "error", err)
	}

	if settleErr != nil {
		c.logger.ErrorContext(ctx, "failed to settle delivery",
			"topic", d.RoutingKey, "outcome", outcome.String(), "error", settleErr)
	}

	c.metrics.ObserveConsumed(d.RoutingKey, outcome.String())
	return outcome
}
