package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/journalrepo"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite covers transactions and the journal publisher
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(journalrepo.AutoMigrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_status_history, batch_stops, batches").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) statusChange() events.OrderStatusChanged {
	item, err := order.NewItem("margherita", 1, 350)
	suite.Require().NoError(err)
	at := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	o, err := order.NewOrder(order.Params{
		ID:          kernel.NewUUID(),
		CustomerID:  "customer-1",
		Items:       []order.Item{item},
		Location:    kernel.MustNewLocation(-31.39, -57.95),
		Zone:        zone.SE,
		ConfirmedAt: at,
	})
	suite.Require().NoError(err)
	prev, err := o.Transition(order.Cancelled, at.Add(time.Minute))
	suite.Require().NoError(err)
	return events.NewOrderStatusChanged(o, prev)
}

func (suite *UnitOfWorkIntegrationTestSuite) countHistory() int64 {
	var n int64
	suite.Require().NoError(suite.db.Model(&journalrepo.StatusChangeDTO{}).Count(&n).Error)
	return n
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.JournalRepository().RecordOrderStatus(ctx, suite.statusChange()))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.countHistory())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()
	change := suite.statusChange()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.JournalRepository().RecordOrderStatus(ctx, change))
	suite.Require().NoError(uow.Commit(ctx))

	history, err := suite.factory.Create().JournalRepository().OrderHistory(ctx, change.OrderID)
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.Equal(order.Cancelled, history[0].Status)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestJournalPublisher_Publish() {
	ctx := context.Background()
	publisher := postgres_adapter.NewJournalPublisher(suite.factory)

	suite.Require().NoError(publisher.Publish(ctx, suite.statusChange()))
	suite.Require().NoError(publisher.Publish(ctx, unknownEvent{}))

	suite.Equal(int64(1), suite.countHistory())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestJournalPublisher_ReturnsWriteErrors() {
	ctx := context.Background()
	publisher := postgres_adapter.NewJournalPublisher(suite.factory)

	err := publisher.Publish(ctx, events.OrderStatusChanged{})

	suite.Require().Error(err)
	suite.True(errors.Is(err, kernel.ErrUUIDIsNotConstructed))
}

type unknownEvent struct{}

func (unknownEvent) Name() string          { return "unknown" }
func (unknownEvent) OccurredAt() time.Time { return time.Time{} }

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
