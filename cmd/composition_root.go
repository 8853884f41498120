package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	http_adapter "ordering/internal/adapters/in/http"
	kafka_consumer "ordering/internal/adapters/in/kafka"
	rabbitmq_consumer "ordering/internal/adapters/in/rabbitmq"
	"ordering/internal/adapters/messaging"
	kafka_bus "ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/postgres"
	rabbitmq_bus "ordering/internal/adapters/out/rabbitmq"
	"ordering/internal/core/application/listeners"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/generated/servers"
	"ordering/internal/jobs"
	"ordering/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg           Config
	gormDB        *gorm.DB
	uowFactory    *postgres.GormUnitOfWorkFactory
	domainService *services.OrderDomainService
	metrics       *metrics.Metrics
	gatherer      prometheus.Gatherer
	logger        *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:           cfg,
		gormDB:        gormDB,
		uowFactory:    postgres.NewGormUnitOfWorkFactory(gormDB, cfg.RequestTopics()),
		domainService: services.NewOrderDomainService(order.NewRandomIdentityGenerator(), time.Now),
		metrics:       m,
		gatherer:      gatherer,
		logger:        logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.domainService, c.logger)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	var f commands.PayOrderUoWFactory = FuncPayOrderUoWFactory(func() commands.PayOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPayOrderCommandHandler(f, c.domainService, c.logger)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveOrderCommandHandler(f, c.domainService, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderPaymentCommandHandler() commands.CancelOrderPaymentCommandHandler {
	var f commands.CancelOrderPaymentUoWFactory = FuncCancelOrderPaymentUoWFactory(
		func() commands.CancelOrderPaymentUoW {
			return c.uowFactory.Create()
		})
	return commands.NewCancelOrderPaymentCommandHandler(f, c.domainService, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.domainService, c.logger)
}

func (c *CompositionRoot) CreateRelayOutboxMessagesCommandHandler(bus ports.MessageBus) commands.RelayOutboxMessagesCommandHandler {
	return commands.NewRelayOutboxMessagesCommandHandler(c.outboxUoWFactory(), bus, time.Now, c.logger)
}

func (c *CompositionRoot) CreateCleanupOutboxMessagesCommandHandler() commands.CleanupOutboxMessagesCommandHandler {
	return commands.NewCleanupOutboxMessagesCommandHandler(c.outboxUoWFactory(), time.Now, c.logger)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

// CreateResponseRouter wires both listeners behind the topic router used by the
// broker consumers.
func (c *CompositionRoot) CreateResponseRouter() (*messaging.Router, error) {
	approvalListener, err := listeners.NewRestaurantApprovalResponseListener(
		c.CreateApproveOrderCommandHandler(),
		c.CreateCancelOrderPaymentCommandHandler(),
		c.cfg.ProcessedMessagesCacheSize,
		c.logger,
	)
	if err != nil {
		return nil, fmt.Errorf("restaurant approval listener: %w", err)
	}

	paymentListener, err := listeners.NewPaymentResponseListener(
		c.CreatePayOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.cfg.ProcessedMessagesCacheSize,
		c.logger,
	)
	if err != nil {
		return nil, fmt.Errorf("payment listener: %w", err)
	}

	return messaging.NewRouter(c.cfg.ResponseTopics(), approvalListener, paymentListener), nil
}

func (c *CompositionRoot) CreateHTTPRouter() (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	server := http_adapter.NewServer(c.CreateCreateOrderCommandHandler(), c.CreateTrackOrderQueryHandler(), c.logger)
	return http_adapter.NewRouter(server, swagger, c.metrics, c.gatherer, c.logger), nil
}

func (c *CompositionRoot) CreateJobManager(bus ports.MessageBus) (*jobs.JobManager, error) {
	relayCmd, relayErr := commands.NewRelayOutboxMessagesCommand(c.cfg.OutboxBatchSize)
	cleanupCmd, cleanupErr := commands.NewCleanupOutboxMessagesCommand(c.cfg.OutboxRetention)
	if err := errors.Join(relayErr, cleanupErr); err != nil {
		return nil, err
	}

	relayJob := jobs.NewOutboxRelayJob(
		c.CreateRelayOutboxMessagesCommandHandler(bus), relayCmd, c.cfg.OutboxRelaySchedule, c.metrics, c.logger)
	cleanupJob := jobs.NewOutboxCleanupJob(
		c.CreateCleanupOutboxMessagesCommandHandler(), cleanupCmd, c.cfg.OutboxCleanupSchedule, c.logger)

	return jobs.NewJobManager(relayJob, cleanupJob), nil
}

// Broker is the configured message broker: the bus the outbox relay publishes to
// and the consumer of response topics.
type Broker struct {
	Bus      ports.MessageBus
	Consumer interface {
		Run(ctx context.Context) error
	}
	closers []func() error
}

func (b Broker) Close() error {
	var closeErrs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		closeErrs = append(closeErrs, b.closers[i]())
	}
	return errors.Join(closeErrs...)
}

func (c *CompositionRoot) CreateBroker(router *messaging.Router) (Broker, error) {
	switch c.cfg.MessageBroker {
	case BrokerRabbitMQ:
		conn, err := amqp.Dial(c.cfg.RabbitMQURL)
		if err != nil {
			return Broker{}, fmt.Errorf("dial rabbitmq: %w", err)
		}

		bus, err := rabbitmq_bus.NewMessageBus(conn, c.cfg.RabbitMQExchange)
		if err != nil {
			_ = conn.Close()
			return Broker{}, err
		}

		consumer := rabbitmq_consumer.NewConsumer(conn, rabbitmq_consumer.Config{
			Exchange:    c.cfg.RabbitMQExchange,
			QueuePrefix: "order-service.",
			Prefetch:    c.cfg.RabbitMQPrefetch,
		}, router, c.metrics, c.logger)

		return Broker{Bus: bus, Consumer: consumer, closers: []func() error{conn.Close, bus.Close}}, nil

	case BrokerKafka:
		bus := kafka_bus.NewMessageBus(kafka_bus.ParseBrokers(c.cfg.KafkaBrokers))
		consumer := kafka_consumer.NewConsumer(kafka_consumer.Config{
			Brokers:     kafka_bus.ParseBrokers(c.cfg.KafkaBrokers),
			GroupID:     c.cfg.KafkaConsumerGroup,
			RetryDelay:  c.cfg.KafkaRetryDelay,
			MaxAttempts: c.cfg.KafkaMaxAttempts,
		}, router, bus, c.metrics, c.logger)

		return Broker{Bus: bus, Consumer: consumer, closers: []func() error{bus.Close}}, nil

	default:
		return Broker{}, fmt.Errorf("unknown message broker %q", c.cfg.MessageBroker)
	}
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPayOrderUoWFactory func() commands.PayOrderUoW

func (f FuncPayOrderUoWFactory) Create() commands.PayOrderUoW {
	return f()
}

type FuncCancelOrderPaymentUoWFactory func() commands.CancelOrderPaymentUoW

func (f FuncCancelOrderPaymentUoWFactory) Create() commands.CancelOrderPaymentUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
