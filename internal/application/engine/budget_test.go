package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

func TestCreateBudget(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()
	category := mustCategory(t, e, "Food", entity.CategoryTypeExpense)

	tests := []struct {
		name     string
		input    CreateBudgetInput
		wantCode domainerror.BudgetErrorCode
	}{
		{
			name:     "zero amount",
			input:    CreateBudgetInput{CategoryID: category.ID, Amount: decimal.Zero, Period: entity.BudgetPeriodMonthly},
			wantCode: domainerror.ErrCodeInvalidBudgetAmount,
		},
		{
			name:     "unknown period",
			input:    CreateBudgetInput{CategoryID: category.ID, Amount: decimal.NewFromInt(10), Period: "daily"},
			wantCode: domainerror.ErrCodeInvalidBudgetPeriod,
		},
		{
			name:     "unknown category",
			input:    CreateBudgetInput{CategoryID: uuid.New(), Amount: decimal.NewFromInt(10), Period: entity.BudgetPeriodWeekly},
			wantCode: domainerror.ErrCodeBudgetCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.CreateBudget(ctx, tt.input)

			var budgetErr *domainerror.BudgetError
			if !errors.As(err, &budgetErr) {
				t.Fatalf("expected BudgetError, got %v", err)
			}
			if budgetErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, budgetErr.Code)
			}
		})
	}

	t.Run("start date defaults to now", func(t *testing.T) {
		budget, err := e.CreateBudget(ctx, CreateBudgetInput{
			CategoryID: category.ID,
			Amount:     decimal.NewFromInt(200),
			Period:     entity.BudgetPeriodMonthly,
		})
		if err != nil {
			t.Fatalf("CreateBudget() error = %v", err)
		}
		if !budget.StartDate.Equal(fixedNow) {
			t.Errorf("expected start date %v, got %v", fixedNow, budget.StartDate)
		}
		if !budget.IsActive {
			t.Error("expected new budget to be active")
		}
	})
}

func TestUpdateAndDeleteBudget(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()
	category := mustCategory(t, e, "Food", entity.CategoryTypeExpense)

	budget, err := e.CreateBudget(ctx, CreateBudgetInput{
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(300),
		Period:     entity.BudgetPeriodMonthly,
		StartDate:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateBudget() error = %v", err)
	}

	amount := decimal.NewFromInt(350)
	period := entity.BudgetPeriodYearly
	inactive := false
	updated, err := e.UpdateBudget(ctx, budget.ID, UpdateBudgetInput{Amount: &amount, Period: &period, IsActive: &inactive})
	if err != nil {
		t.Fatalf("UpdateBudget() error = %v", err)
	}
	if !updated.Amount.Equal(amount) || updated.Period != period || updated.IsActive {
		t.Errorf("unexpected budget after update: %+v", updated)
	}

	statuses, err := e.GetBudgetProgress(ctx)
	if err != nil {
		t.Fatalf("GetBudgetProgress() error = %v", err)
	}
	if len(statuses) != 0 {
		t.Errorf("expected inactive budgets to be skipped, got %d", len(statuses))
	}

	negative := decimal.NewFromInt(-5)
	if _, err := e.UpdateBudget(ctx, budget.ID, UpdateBudgetInput{Amount: &negative}); !errors.Is(err, domainerror.ErrInvalidBudgetAmount) {
		t.Errorf("expected invalid amount, got %v", err)
	}

	if err := e.DeleteBudget(ctx, budget.ID); err != nil {
		t.Fatalf("DeleteBudget() error = %v", err)
	}
	budgets, err := e.ListBudgets(ctx)
	if err != nil {
		t.Fatalf("ListBudgets() error = %v", err)
	}
	if len(budgets) != 0 {
		t.Errorf("expected no budgets, got %d", len(budgets))
	}
	if _, err := e.GetBudget(ctx, budget.ID); !errors.Is(err, domainerror.ErrBudgetNotFound) {
		t.Errorf("expected budget not found, got %v", err)
	}
}
