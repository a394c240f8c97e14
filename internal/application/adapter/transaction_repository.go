// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/domain/entity"
)

// TransactionFilter defines filter options for querying transactions.
// StartDate and EndDate are inclusive bounds on the transaction date; the
// remaining fields are equality matches and are ignored when nil.
type TransactionFilter struct {
	UserID     uuid.UUID
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	IsParent   *bool
	StartDate  *time.Time
	EndDate    *time.Time
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions matching the filter, newest first.
	FindByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// Update updates an existing transaction. Fails with a not found error if the ID is absent.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction. Its splits are left in place.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByAccount returns how many transactions reference the account.
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// SplitRepository defines the interface for transaction split persistence operations.
type SplitRepository interface {
	Create(ctx context.Context, split *entity.TransactionSplit) error
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*entity.TransactionSplit, error)
	DeleteByTransaction(ctx context.Context, transactionID uuid.UUID) error
}
