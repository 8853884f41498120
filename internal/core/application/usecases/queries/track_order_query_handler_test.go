package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/messaging"
	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TrackOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.TrackOrderQueryHandler
	factory   ports.UnitOfWorkFactory
}

func (suite *TrackOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.handler = queries.NewTrackOrderQueryHandler(db)
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, messaging.Topics{})
}

func (suite *TrackOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TrackOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_PendingOrder() {
	o := suite.saveOrder(func(*order.Order) {})
	query, err := queries.NewTrackOrderQuery(o.TrackingID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(o.TrackingID(), result.TrackingID)
	suite.Equal(order.Pending, result.Status)
	suite.Nil(result.FailureMessages)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_CancelledOrderCarriesFailureMessages() {
	o := suite.saveOrder(func(o *order.Order) {
		suite.Require().NoError(o.Pay())
		suite.Require().NoError(o.InitCancel([]string{"restaurant closed"}))
		suite.Require().NoError(o.Cancel([]string{"payment reverted"}))
	})
	query, err := queries.NewTrackOrderQuery(o.TrackingID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, result.Status)
	suite.Equal([]string{"restaurant closed", "payment reverted"}, result.FailureMessages)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_UnknownTrackingID() {
	query, err := queries.NewTrackOrderQuery(order.NewTrackingID(kernel.NewUUID()))
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.Equal("trackingId", notFound.ParamName)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_InvalidQuery() {
	_, err := suite.handler.Handle(context.Background(), queries.TrackOrderQuery{})

	suite.Require().ErrorIs(err, queries.ErrTrackOrderQueryIsNotConstructed)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_CancelledContext() {
	o := suite.saveOrder(func(*order.Order) {})
	query, err := queries.NewTrackOrderQuery(o.TrackingID())
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
}

func (suite *TrackOrderQueryHandlerTestSuite) saveOrder(mutate func(*order.Order)) *order.Order {
	product, err := restaurant.NewProduct(kernel.NewProductID(kernel.NewUUID()), "Pizza", kernel.MustMoney("12.00"), true)
	suite.Require().NoError(err)
	item, err := order.NewItem(product, 1, kernel.MustMoney("12.00"), kernel.MustMoney("12.00"))
	suite.Require().NoError(err)
	address, err := order.NewStreetAddress("Main street 1", "10115", "Berlin")
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewCustomerID(kernel.NewUUID()), kernel.NewRestaurantID(kernel.NewUUID()),
		address, kernel.MustMoney("12.00"), []*order.Item{item})
	suite.Require().NoError(err)
	suite.Require().NoError(o.Initialize(order.NewRandomIdentityGenerator()))
	mutate(o)

	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	return o
}

func TestTrackOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackOrderQueryHandlerTestSuite))
}
