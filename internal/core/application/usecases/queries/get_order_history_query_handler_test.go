package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/journalrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/zone"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderHistoryQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderHistoryQueryHandler
	journal   *journalrepo.GormJournalRepository
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) SetupSuite() {
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

	suite.Require().NoError(journalrepo.AutoMigrate(db))
	suite.handler = queries.NewGetOrderHistoryQueryHandler(db)
	suite.journal = journalrepo.NewGormJournalRepository(db)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_status_history").Error
	suite.Require().NoError(err)
}

// journalLifecycle records every transition of a new order up to last.
func (suite *GetOrderHistoryQueryHandlerTestSuite) journalLifecycle(last order.Status) *order.Order {
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

	for i, next := range []order.Status{order.Batched, order.Dispatched, order.Delivered} {
		prev, err := o.Transition(next, at.Add(time.Duration(i+1)*time.Minute))
		suite.Require().NoError(err)
		suite.Require().NoError(suite.journal.RecordOrderStatus(context.Background(), events.NewOrderStatusChanged(o, prev)))
		if next == last {
			break
		}
	}
	return o
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsEmptySlice() {
	query, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TestHandle_DeliveredOrder_ReturnsFullLifecycle() {
	o := suite.journalLifecycle(order.Delivered)
	other := suite.journalLifecycle(order.Batched)
	query, err := queries.NewGetOrderHistoryQuery(o.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(order.Pending, result[0].Previous)
	suite.Equal(order.Batched, result[0].Status)
	suite.Equal(order.Dispatched, result[1].Status)
	suite.Equal(order.Delivered, result[2].Status)
	for i := range len(result) - 1 {
		suite.True(result[i].ChangedAt.Before(result[i+1].ChangedAt))
	}

	query, err = queries.NewGetOrderHistoryQuery(other.ID())
	suite.Require().NoError(err)
	result, err = suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.GetOrderHistoryQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetOrderHistoryQuery constructor")
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	o := suite.journalLifecycle(order.Delivered)
	query, err := queries.NewGetOrderHistoryQuery(o.ID())
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestGetOrderHistoryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderHistoryQueryHandlerTestSuite))
}
