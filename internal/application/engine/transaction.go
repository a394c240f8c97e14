package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// AddTransactionInput represents the input for recording a transaction.
type AddTransactionInput struct {
	AccountID   uuid.UUID
	Amount      decimal.Decimal // Negative for expenses, positive for income
	Description string
	Date        time.Time
	CategoryID  *uuid.UUID
}

// UpdateTransactionInput carries the fields to change. Nil fields are preserved.
type UpdateTransactionInput struct {
	AccountID     *uuid.UUID
	Amount        *decimal.Decimal
	Description   *string
	Date          *time.Time
	CategoryID    *uuid.UUID
	ClearCategory bool
}

func validateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"transaction date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}

// ownedAccount checks that accountID belongs to the session user.
func (e *Engine) ownedAccount(ctx context.Context, accountID uuid.UUID) error {
	if _, err := e.GetAccount(ctx, accountID); err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return err
	}
	return nil
}

// ownedCategory checks that categoryID belongs to the session user.
func (e *Engine) ownedCategory(ctx context.Context, store adapter.RecordStore, categoryID uuid.UUID, code domainerror.TransactionErrorCode) error {
	if _, err := e.getCategory(ctx, store, categoryID); err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return domainerror.NewTransactionError(code, "category not found", domainerror.ErrCategoryNotFound)
		}
		return err
	}
	return nil
}

// AddTransaction records a transaction. It does not touch the account balance.
// When no category is given and automation is allowed, category rules are applied.
func (e *Engine) AddTransaction(ctx context.Context, input AddTransactionInput) (*entity.Transaction, error) {
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}
	if err := e.ownedAccount(ctx, input.AccountID); err != nil {
		return nil, err
	}

	categoryID := input.CategoryID
	if categoryID != nil {
		if err := e.ownedCategory(ctx, e.store, *categoryID, domainerror.ErrCodeTxnCategoryNotFound); err != nil {
			return nil, err
		}
	} else if e.subscription.CanUseAutomation() {
		categoryID = e.autoCategorize(ctx, input.Description)
	}

	transaction := entity.NewTransaction(
		input.AccountID,
		input.Amount,
		input.Description,
		input.Date.UTC(),
		categoryID,
	)
	e.stamp(&transaction.CreatedAt, &transaction.UpdatedAt)

	if err := e.store.Transactions().Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	e.markDirty()
	return transaction, nil
}

// autoCategorize matches description against the user's category rules, highest priority first.
// Rule failures never fail the transaction.
func (e *Engine) autoCategorize(ctx context.Context, description string) *uuid.UUID {
	rules, err := e.store.CategoryRules().FindActiveByUser(ctx, e.session.UserID)
	if err != nil {
		slog.Debug("Failed to fetch category rules for auto-categorization",
			"userID", e.session.UserID,
			"error", err,
		)
		return nil
	}

	for _, rule := range rules {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			slog.Debug("Invalid regex pattern in category rule",
				"ruleID", rule.ID,
				"pattern", rule.Pattern,
				"error", err,
			)
			continue
		}

		if re.MatchString(description) {
			slog.Debug("Auto-categorized transaction",
				"userID", e.session.UserID,
				"ruleID", rule.ID,
				"categoryID", rule.CategoryID,
			)
			categoryID := rule.CategoryID
			return &categoryID
		}
	}

	return nil
}

// GetTransaction returns a transaction recorded on one of the session user's accounts.
func (e *Engine) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return e.getTransaction(ctx, e.store, id)
}

func (e *Engine) getTransaction(ctx context.Context, store adapter.RecordStore, id uuid.UUID) (*entity.Transaction, error) {
	transaction, err := store.Transactions().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, transactionNotFound()
		}
		return nil, err
	}

	account, err := store.Accounts().FindByID(ctx, transaction.AccountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, transactionNotFound()
		}
		return nil, err
	}
	if account.UserID != e.session.UserID {
		return nil, transactionNotFound()
	}

	return transaction, nil
}

func transactionNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

// GetTransactions returns the session user's transactions matching filter, newest first.
func (e *Engine) GetTransactions(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	filter.UserID = e.session.UserID
	return e.store.Transactions().FindByFilter(ctx, filter)
}

// UpdateTransaction merges input onto the stored transaction.
// The amount of a split transaction cannot change; split it again instead.
func (e *Engine) UpdateTransaction(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*entity.Transaction, error) {
	transaction, err := e.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AccountID != nil {
		if err := e.ownedAccount(ctx, *input.AccountID); err != nil {
			return nil, err
		}
		transaction.AccountID = *input.AccountID
	}
	if input.Amount != nil {
		if transaction.IsParent && !input.Amount.Equal(transaction.Amount) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeSplitSumMismatch,
				"amount of a split transaction cannot change",
				domainerror.ErrSplitSumMismatch,
			)
		}
		transaction.Amount = *input.Amount
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		transaction.Description = *input.Description
	}
	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return nil, err
		}
		transaction.Date = input.Date.UTC()
	}
	if input.ClearCategory {
		transaction.CategoryID = nil
	} else if input.CategoryID != nil {
		if err := e.ownedCategory(ctx, e.store, *input.CategoryID, domainerror.ErrCodeTxnCategoryNotFound); err != nil {
			return nil, err
		}
		transaction.CategoryID = input.CategoryID
	}
	transaction.UpdatedAt = e.timestamp()

	if err := e.store.Transactions().Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	e.markDirty()
	return transaction, nil
}

// DeleteTransaction removes a transaction. Splits of a parent transaction are kept.
func (e *Engine) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	transaction, err := e.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	if err := e.store.Transactions().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if transaction.IsParent {
		slog.Warn("Deleted split transaction; its splits were kept",
			"userID", e.session.UserID,
			"transactionID", id,
		)
	}

	e.markDirty()
	return nil
}
