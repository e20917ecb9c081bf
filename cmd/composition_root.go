package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/adapters/out/notifier"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/journalrepo"
	"dispatch/internal/adapters/out/rabbitmq"
	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"

	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CompositionRoot owns the coordinator and every adapter wired around it.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	coordinator *dispatch.Coordinator
	bus         *eventbus.FanOut
	gormDB      *gorm.DB
	broker      rabbitmq.Connection
	publisher   *rabbitmq.Publisher
	redis       *redis.Client
}

// NewCompositionRoot connects the optional sinks, then builds the coordinator.
// DB_HOST enables the journal, RABBITMQ_URL the broker and REDIS_URL the driver and
// customer channels. Events are always logged.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{cfg: cfg, logger: logger}

	sinks := []eventbus.Sink{{Name: "log", Publisher: eventbus.NewLogPublisher(logger)}}

	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Dial(cfg.RabbitMQURL)
		if err != nil {
			return nil, err
		}
		publisher, err := rabbitmq.NewPublisher(conn)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		root.broker, root.publisher = conn, publisher
		sinks = append(sinks, eventbus.Sink{Name: "rabbitmq", Publisher: publisher})
	}

	if cfg.RedisURL != "" {
		client, err := notifier.Connect(ctx, cfg.RedisURL)
		if err != nil {
			root.closeConnections()
			return nil, err
		}
		root.redis = client
		sinks = append(sinks, eventbus.Sink{Name: "redis", Publisher: notifier.New(client)})
	}

	if cfg.DatabaseEnabled() {
		db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			root.closeConnections()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err = journalrepo.AutoMigrate(db); err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			root.closeConnections()
			return nil, fmt.Errorf("failed to migrate journal: %w", err)
		}
		root.gormDB = db
		sinks = append(sinks, eventbus.Sink{
			Name:      "journal",
			Publisher: postgres.NewJournalPublisher(postgres.NewGormUnitOfWorkFactory(db)),
		})
	}

	root.bus = eventbus.NewFanOut(logger, sinks...)

	coordinator, err := newCoordinator(cfg, root.bus, logger)
	if err != nil {
		_ = root.Close()
		return nil, err
	}
	root.coordinator = coordinator

	logger.Info("dispatch configured",
		"max_batch_size", cfg.MaxBatchSize,
		"max_wait", cfg.MaxWait.String(),
		"sequence_key", cfg.SequenceKey,
		"sinks", root.bus.Sinks())
	return root, nil
}

func newCoordinator(cfg Config, bus *eventbus.FanOut, logger *slog.Logger) (*dispatch.Coordinator, error) {
	hub, err := kernel.NewLocation(cfg.HubLat, cfg.HubLon)
	if err != nil {
		return nil, fmt.Errorf("hub: %w", err)
	}
	classifier, err := zone.NewClassifier(hub)
	if err != nil {
		return nil, err
	}
	policy, err := services.NewBatchPolicy(cfg.MaxBatchSize, cfg.MaxWait)
	if err != nil {
		return nil, err
	}
	key, err := batch.NewKeyFunc(cfg.SequenceKey, hub)
	if err != nil {
		return nil, err
	}

	return dispatch.NewCoordinator(dispatch.Config{
		Classifier: classifier,
		Policy:     policy,
		Key:        batch.PreferSupplied(key),
		Clock:      dispatch.SystemClock{},
		Publisher:  bus,
		Logger:     logger,
	}), nil
}

// Coordinator returns the dispatch core.
func (c *CompositionRoot) Coordinator() *dispatch.Coordinator {
	return c.coordinator
}

// Handlers builds the HTTP use cases. Order history is included when the journal
// is configured.
func (c *CompositionRoot) Handlers() httpin.Handlers {
	h := httpin.Handlers{
		SubmitOrder:       commands.NewSubmitOrderCommandHandler(c.coordinator),
		CancelOrder:       commands.NewCancelOrderCommandHandler(c.coordinator),
		RegisterDriver:    commands.NewRegisterDriverCommandHandler(c.coordinator),
		DriverAvailable:   commands.NewDriverAvailableCommandHandler(c.coordinator),
		CompleteBatch:     commands.NewCompleteBatchCommandHandler(c.coordinator),
		ReserveBatch:      commands.NewReserveBatchCommandHandler(c.coordinator),
		GetOrder:          queries.NewGetOrderQueryHandler(c.coordinator),
		GetOrders:         queries.NewGetOrdersQueryHandler(c.coordinator),
		GetDriver:         queries.NewGetDriverQueryHandler(c.coordinator),
		GetDrivers:        queries.NewGetDriversQueryHandler(c.coordinator),
		GetBatch:          queries.NewGetBatchQueryHandler(c.coordinator),
		GetPendingBatches: queries.NewGetPendingBatchesQueryHandler(c.coordinator),
		GetZoneDepths:     queries.NewGetZoneDepthsQueryHandler(c.coordinator),
	}
	if c.gormDB != nil {
		history := queries.NewGetOrderHistoryQueryHandler(c.gormDB)
		h.OrderHistory = &history
	}
	return h
}

// Server builds the HTTP server. Without OPERATOR_JWT_SECRET the operator routes
// are open and a warning is logged.
func (c *CompositionRoot) Server() (*httpin.Server, error) {
	var auth *httpin.OperatorAuth
	if c.cfg.OperatorJWTSecret != "" {
		var err error
		if auth, err = httpin.NewOperatorAuth(c.cfg.OperatorJWTSecret); err != nil {
			return nil, err
		}
	} else {
		c.logger.Warn("OPERATOR_JWT_SECRET is not set, operator routes are unauthenticated")
	}
	return httpin.NewServer(c.Handlers(), auth), nil
}

// JobManager builds the batch formation sweep and the queue report.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	formation := jobs.NewBatchFormationJob(
		commands.NewFormDueBatchesCommandHandler(c.coordinator),
		c.cfg.BatchFormationSchedule,
		c.logger,
	)
	report := jobs.NewQueueReportJob(
		queries.NewGetZoneDepthsQueryHandler(c.coordinator),
		queries.NewGetPendingBatchesQueryHandler(c.coordinator),
		c.cfg.QueueReportSchedule,
		c.logger,
	)
	return jobs.NewJobManager(formation, report)
}

// Close releases the broker, Redis and database connections.
func (c *CompositionRoot) Close() error {
	var errs []error
	if c.publisher != nil {
		errs = append(errs, c.publisher.Close())
	}
	if c.broker != nil {
		errs = append(errs, c.broker.Close())
	}
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) closeConnections() {
	if c.publisher != nil {
		_ = c.publisher.Close()
	}
	if c.broker != nil {
		_ = c.broker.Close()
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
}
