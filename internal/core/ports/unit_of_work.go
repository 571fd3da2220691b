package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each business
// operation, ensuring proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repository
// operations performed between Begin and Commit are applied atomically:
// a status write and its audit rows either all land or none do.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns an error if no transaction is active or the rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction, or to the plain connection before Begin.
	OrderRepository() OrderRepository

	// BatchRepository returns a BatchRepository bound to the current
	// transaction.
	BatchRepository() BatchRepository

	// CredentialRepository returns a CredentialRepository bound to the
	// current transaction.
	CredentialRepository() CredentialRepository

	// AuditRepository returns an AuditRepository bound to the current
	// transaction.
	AuditRepository() AuditRepository
}
