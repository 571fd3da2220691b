// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BatchRepoFactory provides access to the batch repository within a transaction.
	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	// CredentialRepoFactory provides access to the credential repository.
	// Credentials are only ever read, before a transaction starts.
	CredentialRepoFactory interface {
		CredentialRepository() ports.CredentialRepository
	}

	// AuditRepoFactory provides access to the append-only audit repository
	// within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// OrderUoW manages transactions for order-scoped operations: the flow
	// orchestrator, the channel pull and tracking refresh. A status write and
	// its audit rows land in one transaction; the credential repository is
	// used before Begin for remote-call setup.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		CredentialRepoFactory
		AuditRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BatchUoW manages transactions spanning the batch and order aggregates.
	// Used by batch generation and completion, where the batch row and the
	// member-order stamps must commit together.
	BatchUoW interface {
		TxManager
		OrderRepoFactory
		BatchRepoFactory
		AuditRepoFactory
	}

	// BatchUoWFactory creates new batch unit of work instances.
	BatchUoWFactory interface {
		Create() BatchUoW
	}
)
