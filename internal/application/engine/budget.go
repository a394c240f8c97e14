package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Period     entity.BudgetPeriod
	StartDate  time.Time // Defaults to the current time
}

// UpdateBudgetInput carries the fields to change. Nil fields are preserved.
type UpdateBudgetInput struct {
	Amount    *decimal.Decimal
	Period    *entity.BudgetPeriod
	StartDate *time.Time
	IsActive  *bool
}

func validateBudgetAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	return nil
}

func validateBudgetPeriod(period entity.BudgetPeriod) error {
	if !period.IsValid() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"budget period must be 'weekly', 'monthly' or 'yearly'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}
	return nil
}

// CreateBudget creates a spending limit on one of the user's categories.
func (e *Engine) CreateBudget(ctx context.Context, input CreateBudgetInput) (*entity.Budget, error) {
	if err := validateBudgetAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateBudgetPeriod(input.Period); err != nil {
		return nil, err
	}
	if _, err := e.getCategory(ctx, e.store, input.CategoryID); err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, err
	}

	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = e.timestamp()
	}

	budget := entity.NewBudget(e.session.UserID, input.CategoryID, input.Amount, input.Period, startDate.UTC())
	e.stamp(&budget.CreatedAt, &budget.UpdatedAt)
	if err := e.store.Budgets().Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	e.markDirty()
	return budget, nil
}

// GetBudget returns a budget owned by the session user.
func (e *Engine) GetBudget(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	budget, err := e.store.Budgets().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, budgetNotFound()
		}
		return nil, err
	}
	if budget.UserID != e.session.UserID {
		return nil, budgetNotFound()
	}
	return budget, nil
}

func budgetNotFound() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetNotFound,
		"budget not found",
		domainerror.ErrBudgetNotFound,
	)
}

// ListBudgets returns the session user's budgets.
func (e *Engine) ListBudgets(ctx context.Context) ([]*entity.Budget, error) {
	return e.store.Budgets().FindByUser(ctx, e.session.UserID)
}

// UpdateBudget merges input onto the stored budget.
func (e *Engine) UpdateBudget(ctx context.Context, id uuid.UUID, input UpdateBudgetInput) (*entity.Budget, error) {
	budget, err := e.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if err := validateBudgetAmount(*input.Amount); err != nil {
			return nil, err
		}
		budget.Amount = *input.Amount
	}
	if input.Period != nil {
		if err := validateBudgetPeriod(*input.Period); err != nil {
			return nil, err
		}
		budget.Period = *input.Period
	}
	if input.StartDate != nil {
		budget.StartDate = input.StartDate.UTC()
	}
	if input.IsActive != nil {
		budget.IsActive = *input.IsActive
	}
	budget.UpdatedAt = e.timestamp()

	if err := e.store.Budgets().Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	e.markDirty()
	return budget, nil
}

// DeleteBudget removes a budget.
func (e *Engine) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	if _, err := e.GetBudget(ctx, id); err != nil {
		return err
	}
	if err := e.store.Budgets().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	e.markDirty()
	return nil
}
