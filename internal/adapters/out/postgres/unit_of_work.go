// Package postgres persists the dispatch journal with GORM.
//
// Every journal write runs in its own unit of work:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.JournalRepository().RecordBatchAssignment(ctx, event); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// A UnitOfWork is not safe for concurrent use; create one per goroutine.
package postgres

import (
	"context"

	"dispatch/internal/adapters/out/postgres/journalrepo"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory on db.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork wraps one GORM transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit commits the open transaction.
//
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the open transaction.
//
// Returns gorm.ErrInvalidTransaction when no transaction is open, which makes a
// deferred Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// JournalRepository returns a repository bound to the open transaction, or to the
// connection pool when none is open.
func (uow *GormUnitOfWork) JournalRepository() ports.JournalRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return journalrepo.NewGormJournalRepository(db)
}
