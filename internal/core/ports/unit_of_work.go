package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per journal write so concurrent writers
// never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary around journal writes.
type UnitOfWork interface {
	// Begin starts a transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	// JournalRepository returns a repository bound to the current transaction.
	JournalRepository() JournalRepository
}
