package journalrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/journalrepo"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/zone"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var confirmedAt = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

// JournalRepositoryIntegrationTestSuite runs the journal repository against PostgreSQL.
type JournalRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *journalrepo.GormJournalRepository
}

func (suite *JournalRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(journalrepo.AutoMigrate(db))
	suite.repository = journalrepo.NewGormJournalRepository(db)
}

func (suite *JournalRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *JournalRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_status_history, batch_stops, batches").Error
	suite.Require().NoError(err)
}

func (suite *JournalRepositoryIntegrationTestSuite) newOrder(key float64) *order.Order {
	item, err := order.NewItem("margherita", 1, 350)
	suite.Require().NoError(err)
	o, err := order.NewOrder(order.Params{
		ID:          kernel.NewUUID(),
		CustomerID:  "customer-1",
		Items:       []order.Item{item},
		Location:    kernel.MustNewLocation(-31.39, -57.95),
		Zone:        zone.SE,
		SequenceKey: &key,
		ConfirmedAt: confirmedAt,
	})
	suite.Require().NoError(err)
	return o
}

func (suite *JournalRepositoryIntegrationTestSuite) transition(o *order.Order, next order.Status, at time.Time) events.OrderStatusChanged {
	prev, err := o.Transition(next, at)
	suite.Require().NoError(err)
	return events.NewOrderStatusChanged(o, prev)
}

func (suite *JournalRepositoryIntegrationTestSuite) TestRecordOrderStatus_KeepsLatestAndHistory() {
	ctx := context.Background()
	o := suite.newOrder(1)
	batched := suite.transition(o, order.Batched, confirmedAt.Add(time.Minute))
	dispatched := suite.transition(o, order.Dispatched, confirmedAt.Add(2*time.Minute))

	suite.Require().NoError(suite.repository.RecordOrderStatus(ctx, batched))
	suite.Require().NoError(suite.repository.RecordOrderStatus(ctx, dispatched))

	var row journalrepo.OrderDTO
	suite.Require().NoError(suite.db.First(&row, "id = ?", o.ID().Bytes()).Error)
	suite.Equal(int(order.Dispatched), row.Status)
	suite.Equal(o.Ref(), row.Ref)
	suite.Equal(int(zone.SE), row.Zone)

	history, err := suite.repository.OrderHistory(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	suite.Equal(order.Pending, history[0].Previous)
	suite.Equal(order.Batched, history[0].Status)
	suite.Equal(order.Dispatched, history[1].Status)
	suite.True(history[0].ChangedAt.Before(history[1].ChangedAt))
}

func (suite *JournalRepositoryIntegrationTestSuite) TestRecordOrderStatus_IgnoresStaleSnapshot() {
	ctx := context.Background()
	o := suite.newOrder(1)
	batched := suite.transition(o, order.Batched, confirmedAt.Add(time.Minute))
	dispatched := suite.transition(o, order.Dispatched, confirmedAt.Add(2*time.Minute))

	suite.Require().NoError(suite.repository.RecordOrderStatus(ctx, dispatched))
	suite.Require().NoError(suite.repository.RecordOrderStatus(ctx, batched))

	var row journalrepo.OrderDTO
	suite.Require().NoError(suite.db.First(&row, "id = ?", o.ID().Bytes()).Error)
	suite.Equal(int(order.Dispatched), row.Status)

	history, err := suite.repository.OrderHistory(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	suite.Equal(order.Batched, history[0].Status, "history is ordered by change time")
}

func (suite *JournalRepositoryIntegrationTestSuite) TestRecordBatchAssignment_StoresStopsInSequence() {
	ctx := context.Background()
	orders := []*order.Order{suite.newOrder(30), suite.newOrder(10), suite.newOrder(20)}
	b, err := batch.Form(kernel.NewUUID(), zone.SE, orders, batch.PreferSupplied(batch.OrderTotal()), 7, batch.SizeTrigger, confirmedAt)
	suite.Require().NoError(err)
	d, err := driver.NewDriver(kernel.NewUUID(), "Ana", "ana@example.com", confirmedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(d.TakeBatch(b.ID()))
	suite.Require().NoError(b.AssignDriver(d.ID(), confirmedAt.Add(time.Minute)))
	event := events.NewBatchAssigned(b, d)

	suite.Require().NoError(suite.repository.RecordBatchAssignment(ctx, event))
	suite.Require().NoError(suite.repository.RecordBatchAssignment(ctx, event), "recording twice is idempotent")

	var stored journalrepo.BatchDTO
	err = suite.db.Preload("Stops", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence")
	}).First(&stored, "id = ?", b.ID().Bytes()).Error
	suite.Require().NoError(err)
	suite.Equal(d.Ref(), stored.DriverRef)
	suite.Require().Len(stored.Stops, 3)
	suite.Equal(orders[1].Ref(), stored.Stops[0].OrderRef)
	suite.Equal(orders[2].Ref(), stored.Stops[1].OrderRef)
	suite.Equal(orders[0].Ref(), stored.Stops[2].OrderRef)
	suite.InDelta(10.0, stored.Stops[0].SequenceKey, 0.0001)
}

func (suite *JournalRepositoryIntegrationTestSuite) TestOrderHistory_UnknownOrderIsEmpty() {
	history, err := suite.repository.OrderHistory(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.Empty(history)
}

func (suite *JournalRepositoryIntegrationTestSuite) TestOrderHistory_RejectsZeroID() {
	_, err := suite.repository.OrderHistory(context.Background(), kernel.UUID{})

	suite.Require().ErrorIs(err, kernel.ErrUUIDIsNotConstructed)
}

func TestJournalRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(JournalRepositoryIntegrationTestSuite))
}
