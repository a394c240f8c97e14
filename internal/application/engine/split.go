package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

// SplitInput allocates part of a transaction to a category.
type SplitInput struct {
	Amount      decimal.Decimal
	CategoryID  uuid.UUID
	Description string
}

// SplitTransaction replaces the splits of a transaction and marks it as a parent.
// Every split must share the transaction's sign and the amounts must add up to
// the transaction amount within entity.SplitTolerance. All writes are atomic.
func (e *Engine) SplitTransaction(ctx context.Context, transactionID uuid.UUID, splits []SplitInput) ([]*entity.TransactionSplit, error) {
	transaction, err := e.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if err := e.validateSplits(ctx, transaction, splits); err != nil {
		return nil, err
	}

	created := make([]*entity.TransactionSplit, 0, len(splits))
	err = e.store.WithinTransaction(ctx, func(tx adapter.RecordStore) error {
		if err := tx.Splits().DeleteByTransaction(ctx, transaction.ID); err != nil {
			return fmt.Errorf("failed to remove previous splits: %w", err)
		}

		for _, input := range splits {
			split := entity.NewTransactionSplit(transaction, input.Amount, input.CategoryID, input.Description)
			e.stamp(&split.CreatedAt, &split.UpdatedAt)
			if err := tx.Splits().Create(ctx, split); err != nil {
				return fmt.Errorf("failed to create split: %w", err)
			}
			created = append(created, split)
		}

		transaction.IsParent = true
		transaction.UpdatedAt = e.timestamp()
		if err := tx.Transactions().Update(ctx, transaction); err != nil {
			return fmt.Errorf("failed to mark transaction as split: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.markDirty()
	return created, nil
}

func (e *Engine) validateSplits(ctx context.Context, transaction *entity.Transaction, splits []SplitInput) error {
	if len(splits) == 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNoSplits,
			"at least one split is required",
			domainerror.ErrNoSplits,
		)
	}
	if transaction.Amount.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeZeroAmountSplit,
			"cannot split a zero-amount transaction",
			domainerror.ErrZeroAmountSplit,
		)
	}

	sum := decimal.Zero
	for i, split := range splits {
		if split.Amount.Sign() != transaction.Amount.Sign() {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeSplitSignMismatch,
				fmt.Sprintf("split %d must be non-zero and have the same sign as the transaction", i+1),
				domainerror.ErrSplitSignMismatch,
			)
		}
		if err := e.ownedCategory(ctx, e.store, split.CategoryID, domainerror.ErrCodeSplitCategoryNotFound); err != nil {
			return err
		}
		sum = sum.Add(split.Amount)
	}

	if sum.Sub(transaction.Amount).Abs().GreaterThan(entity.SplitTolerance) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeSplitSumMismatch,
			fmt.Sprintf("split amounts sum to %s but the transaction amount is %s",
				sum.StringFixed(2), transaction.Amount.StringFixed(2)),
			domainerror.ErrSplitSumMismatch,
		)
	}
	return nil
}

// GetTransactionSplits returns the splits recorded for a transaction.
// Splits left behind by a deleted parent are still returned when their
// categories belong to the session user.
func (e *Engine) GetTransactionSplits(ctx context.Context, transactionID uuid.UUID) ([]*entity.TransactionSplit, error) {
	_, err := e.GetTransaction(ctx, transactionID)
	if err != nil && !errors.Is(err, domainerror.ErrTransactionNotFound) {
		return nil, err
	}

	splits, findErr := e.store.Splits().FindByTransaction(ctx, transactionID)
	if findErr != nil {
		return nil, fmt.Errorf("failed to fetch splits: %w", findErr)
	}
	if err == nil {
		return splits, nil
	}

	orphans := make([]*entity.TransactionSplit, 0, len(splits))
	for _, split := range splits {
		if _, catErr := e.getCategory(ctx, e.store, split.CategoryID); catErr == nil {
			orphans = append(orphans, split)
		}
	}
	return orphans, nil
}
