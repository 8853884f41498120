package rabbitmq_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"ordering/internal/adapters/out/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	tcrabbitmq "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

const exchange = "ordering-test"

type MessageBusIntegrationTestSuite struct {
	suite.Suite
	container *tcrabbitmq.RabbitMQContainer
	conn      *amqp.Connection
	ch        *amqp.Channel
	bus       *rabbitmq.MessageBus
}

func (suite *MessageBusIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcrabbitmq.Run(ctx, "rabbitmq:3.13-management-alpine")
	suite.Require().NoError(err)
	suite.container = container

	url, err := container.AmqpURL(ctx)
	suite.Require().NoError(err)

	conn, err := amqp.Dial(url)
	suite.Require().NoError(err)
	suite.conn = conn
}

func (suite *MessageBusIntegrationTestSuite) SetupTest() {
	bus, err := rabbitmq.NewMessageBus(suite.conn, exchange)
	suite.Require().NoError(err)
	suite.bus = bus

	ch, err := suite.conn.Channel()
	suite.Require().NoError(err)
	suite.ch = ch
}

func (suite *MessageBusIntegrationTestSuite) TearDownTest() {
	_ = suite.ch.Close()
	_ = suite.bus.Close()
}

func (suite *MessageBusIntegrationTestSuite) TearDownSuite() {
	if suite.conn != nil {
		_ = suite.conn.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// bindQueue declares a server-named queue receiving topic from the test exchange.
func (suite *MessageBusIntegrationTestSuite) bindQueue(topic string) string {
	q, err := suite.ch.QueueDeclare("", false, true, true, false, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ch.QueueBind(q.Name, topic, exchange, false, nil))
	return q.Name
}

func (suite *MessageBusIntegrationTestSuite) countMessages(queue string) int {
	q, err := suite.ch.QueueDeclarePassive(queue, false, true, true, false, nil)
	suite.Require().NoError(err)
	return q.Messages
}

func (suite *MessageBusIntegrationTestSuite) TestPublish_ConfirmedAndRoutedByTopic() {
	ctx := context.Background()
	queue := suite.bindQueue("payment-request")
	other := suite.bindQueue("restaurant-approval-request")
	payload := []byte(`{"orderId":"o-1","paymentOrderStatus":"PENDING"}`)

	suite.Require().NoError(suite.bus.Publish(ctx, "payment-request", "o-1", payload))

	var msg amqp.Delivery
	suite.Require().Eventually(func() bool {
		var ok bool
		var err error
		msg, ok, err = suite.ch.Get(queue, true)
		return err == nil && ok
	}, 5*time.Second, 50*time.Millisecond)

	suite.Equal(payload, msg.Body)
	suite.Equal("o-1", msg.Headers[rabbitmq.KeyHeader])
	suite.Equal("application/json", msg.ContentType)
	suite.Equal(amqp.Persistent, msg.DeliveryMode)
	suite.Equal("payment-request", msg.RoutingKey)
	suite.Zero(suite.countMessages(other))
}

func (suite *MessageBusIntegrationTestSuite) TestPublish_ConcurrentPublishersAllConfirmed() {
	ctx := context.Background()
	queue := suite.bindQueue("payment-cancel-request")

	const publishers = 20
	var wg sync.WaitGroup
	results := make(chan error, publishers)
	for range publishers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- suite.bus.Publish(ctx, "payment-cancel-request", "o-2", []byte(`{}`))
		}()
	}
	wg.Wait()
	close(results)

	for err := range results {
		suite.NoError(err)
	}
	suite.Eventually(func() bool {
		return suite.countMessages(queue) == publishers
	}, 5*time.Second, 50*time.Millisecond)
}

func (suite *MessageBusIntegrationTestSuite) TestPublish_FailsOnClosedBus() {
	suite.Require().NoError(suite.bus.Close())

	err := suite.bus.Publish(context.Background(), "payment-request", "o-3", []byte(`{}`))

	suite.Error(err)
}

func TestMessageBusIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MessageBusIntegrationTestSuite))
}
