package outboxrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/outbox"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *outboxrepo.GormOutboxRepository
	now        time.Time
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&outboxrepo.MessageDTO{}))
	suite.now = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE outbox_messages").Error)
	suite.repository = outboxrepo.NewGormOutboxRepository(suite.db)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetPending_OldestFirstAndOnlyUnsent() {
	ctx := context.Background()
	older := suite.add("order-1", suite.now)
	newer := suite.add("order-2", suite.now.Add(time.Minute))
	sent := suite.add("order-3", suite.now.Add(-time.Minute))
	sent.MarkSent(suite.now)
	suite.Require().NoError(suite.repository.Update(ctx, sent))

	pending, err := suite.repository.GetPending(ctx, 10)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.True(older.ID().IsEqual(pending[0].ID()))
	suite.True(newer.ID().IsEqual(pending[1].ID()))
	suite.JSONEq(`{"orderId":"order-1"}`, string(pending[0].Payload()))
	suite.Equal("payment-request", pending[0].Topic())
	suite.Equal("OrderCreated", pending[0].EventType())
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetPending_SkipsRowsLockedByAnotherRelay() {
	ctx := context.Background()
	suite.add("order-1", suite.now)
	suite.add("order-2", suite.now.Add(time.Second))

	tx := suite.db.WithContext(ctx).Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	locked, err := outboxrepo.NewGormOutboxRepository(tx).GetPending(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(locked, 1)

	other := suite.db.WithContext(ctx).Begin()
	suite.Require().NoError(other.Error)
	defer other.Rollback()

	rest, err := outboxrepo.NewGormOutboxRepository(other).GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(rest, 1)
	suite.False(locked[0].ID().IsEqual(rest[0].ID()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestUpdate_RecordsFailedAttempt() {
	ctx := context.Background()
	m := suite.add("order-1", suite.now)
	m.MarkFailed(errors.New("broker unavailable"))

	suite.Require().NoError(suite.repository.Update(ctx, m))

	pending, err := suite.repository.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(1, pending[0].Attempts())
	suite.Equal("broker unavailable", pending[0].LastError())
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestUpdate_UnknownMessage() {
	m, err := outbox.NewMessage(kernel.NewUUID(), "payment-request", "k", "OrderCreated", []byte(`{}`), suite.now)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), m)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestDeleteSentBefore() {
	ctx := context.Background()
	old := suite.add("order-1", suite.now)
	old.MarkSent(suite.now)
	suite.Require().NoError(suite.repository.Update(ctx, old))
	recent := suite.add("order-2", suite.now)
	recent.MarkSent(suite.now.Add(2 * time.Hour))
	suite.Require().NoError(suite.repository.Update(ctx, recent))
	suite.add("order-3", suite.now)

	deleted, err := suite.repository.DeleteSentBefore(ctx, suite.now.Add(time.Hour))

	suite.Require().NoError(err)
	suite.Equal(int64(1), deleted)
	var count int64
	suite.Require().NoError(suite.db.Model(&outboxrepo.MessageDTO{}).Count(&count).Error)
	suite.Equal(int64(2), count)
}

func (suite *OutboxRepositoryIntegrationTestSuite) add(key string, createdAt time.Time) *outbox.Message {
	m, err := outbox.NewMessage(kernel.NewUUID(), "payment-request", key, "OrderCreated",
		[]byte(`{"orderId":"`+key+`"}`), createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), m))
	return m
}

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
