package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

// MaxAccountNameLength is the maximum allowed length for account names.
const MaxAccountNameLength = 100

// DeleteMode tells how a record was removed.
type DeleteMode string

const (
	DeleteModeHard DeleteMode = "hard"
	DeleteModeSoft DeleteMode = "soft"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	Name    string
	Type    entity.AccountType
	Balance decimal.Decimal
}

// UpdateAccountInput carries the fields to change. Nil fields are preserved.
type UpdateAccountInput struct {
	Name     *string
	Type     *entity.AccountType
	Balance  *decimal.Decimal
	IsActive *bool
}

func validateAccountName(name string) error {
	if name == "" || len(name) > MaxAccountNameLength {
		return domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameRequired,
			fmt.Sprintf("account name must be between 1 and %d characters", MaxAccountNameLength),
			domainerror.ErrAccountNameRequired,
		)
	}
	return nil
}

func validateAccountType(accountType entity.AccountType) error {
	if !accountType.IsValid() {
		return domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"account type must be one of checking, savings, credit, investment, cash, other",
			domainerror.ErrInvalidAccountType,
		)
	}
	return nil
}

// CreateAccount creates an account, subject to the tier's account limit.
func (e *Engine) CreateAccount(ctx context.Context, input CreateAccountInput) (*entity.Account, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateAccountName(name); err != nil {
		return nil, err
	}
	if err := validateAccountType(input.Type); err != nil {
		return nil, err
	}

	count, err := e.store.Accounts().CountByUser(ctx, e.session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	if err := e.subscription.RequireWithinLimit(domainerror.FeatureAccounts, e.subscription.AccountLimit(), count); err != nil {
		return nil, err
	}

	account := entity.NewAccount(e.session.UserID, name, input.Type, input.Balance)
	e.stamp(&account.CreatedAt, &account.UpdatedAt)
	if err := e.store.Accounts().Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	e.markDirty()
	return account, nil
}

// GetAccount returns an account owned by the session user.
func (e *Engine) GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := e.store.Accounts().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, accountNotFound()
		}
		return nil, err
	}
	if account.UserID != e.session.UserID {
		return nil, accountNotFound()
	}
	return account, nil
}

func accountNotFound() error {
	return domainerror.NewAccountError(
		domainerror.ErrCodeAccountNotFound,
		"account not found",
		domainerror.ErrAccountNotFound,
	)
}

// ListAccounts returns the session user's accounts.
func (e *Engine) ListAccounts(ctx context.Context, includeInactive bool) ([]*entity.Account, error) {
	return e.store.Accounts().FindByUser(ctx, e.session.UserID, includeInactive)
}

// UpdateAccount merges input onto the stored account.
func (e *Engine) UpdateAccount(ctx context.Context, id uuid.UUID, input UpdateAccountInput) (*entity.Account, error) {
	account, err := e.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateAccountName(name); err != nil {
			return nil, err
		}
		account.Name = name
	}
	if input.Type != nil {
		if err := validateAccountType(*input.Type); err != nil {
			return nil, err
		}
		account.Type = *input.Type
	}
	if input.Balance != nil {
		account.Balance = *input.Balance
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}
	account.UpdatedAt = e.timestamp()

	if err := e.store.Accounts().Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	e.markDirty()
	return account, nil
}

// DeleteAccount removes an account. Accounts without transactions are deleted;
// accounts with history are deactivated and stay queryable.
func (e *Engine) DeleteAccount(ctx context.Context, id uuid.UUID) (DeleteMode, error) {
	account, err := e.GetAccount(ctx, id)
	if err != nil {
		return "", err
	}

	count, err := e.store.Transactions().CountByAccount(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to count account transactions: %w", err)
	}

	if count == 0 {
		if err := e.store.Accounts().Delete(ctx, id); err != nil {
			return "", fmt.Errorf("failed to delete account: %w", err)
		}
		e.markDirty()
		return DeleteModeHard, nil
	}

	account.IsActive = false
	account.UpdatedAt = e.timestamp()
	if err := e.store.Accounts().Update(ctx, account); err != nil {
		return "", fmt.Errorf("failed to deactivate account: %w", err)
	}

	e.markDirty()
	return DeleteModeSoft, nil
}
