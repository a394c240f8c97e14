package engine

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/domain/entity"
)

func TestGenerateNetWorthSnapshot(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()

	mustAccount(t, e, "Checking", entity.AccountTypeChecking, "1000")
	mustAccount(t, e, "Card", entity.AccountTypeCredit, "-300")

	portfolio, err := e.CreatePortfolio(ctx, CreatePortfolioInput{Name: "Brokerage"})
	if err != nil {
		t.Fatalf("CreatePortfolio() error = %v", err)
	}
	_, err = e.AddInvestment(ctx, AddInvestmentInput{
		PortfolioID:  portfolio.ID,
		Symbol:       "aapl",
		Quantity:     decimal.NewFromInt(10),
		CostBasis:    decimal.NewFromInt(400),
		CurrentPrice: decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("AddInvestment() error = %v", err)
	}

	snapshot, err := e.GenerateNetWorthSnapshot(ctx)
	if err != nil {
		t.Fatalf("GenerateNetWorthSnapshot() error = %v", err)
	}

	if !snapshot.TotalAssets.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected assets 1500, got %s", snapshot.TotalAssets)
	}
	if !snapshot.TotalLiabilities.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected liabilities 300, got %s", snapshot.TotalLiabilities)
	}
	if !snapshot.NetWorth.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("expected net worth 1200, got %s", snapshot.NetWorth)
	}
	if !snapshot.Date.Equal(fixedNow) {
		t.Errorf("expected snapshot date %v, got %v", fixedNow, snapshot.Date)
	}

	history, err := e.GetNetWorthHistory(ctx)
	if err != nil {
		t.Fatalf("GetNetWorthHistory() error = %v", err)
	}
	if len(history) != 1 || history[0].ID != snapshot.ID {
		t.Fatalf("expected the snapshot in history, got %d entries", len(history))
	}
	if !history[0].NetWorth.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("expected stored net worth 1200, got %s", history[0].NetWorth)
	}
}

func TestGenerateNetWorthSnapshot_IgnoresInactive(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()

	mustAccount(t, e, "Checking", entity.AccountTypeChecking, "500")
	closed := mustAccount(t, e, "Old savings", entity.AccountTypeSavings, "200")
	inactive := false
	if _, err := e.UpdateAccount(ctx, closed.ID, UpdateAccountInput{IsActive: &inactive}); err != nil {
		t.Fatalf("UpdateAccount() error = %v", err)
	}

	portfolio, err := e.CreatePortfolio(ctx, CreatePortfolioInput{Name: "Closed"})
	if err != nil {
		t.Fatalf("CreatePortfolio() error = %v", err)
	}
	if _, err := e.AddInvestment(ctx, AddInvestmentInput{
		PortfolioID:  portfolio.ID,
		Symbol:       "VTI",
		Quantity:     decimal.NewFromInt(1),
		CurrentPrice: decimal.NewFromInt(100),
	}); err != nil {
		t.Fatalf("AddInvestment() error = %v", err)
	}
	if err := e.DeletePortfolio(ctx, portfolio.ID); err != nil {
		t.Fatalf("DeletePortfolio() error = %v", err)
	}

	snapshot, err := e.GenerateNetWorthSnapshot(ctx)
	if err != nil {
		t.Fatalf("GenerateNetWorthSnapshot() error = %v", err)
	}
	if !snapshot.NetWorth.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected net worth 500, got %s", snapshot.NetWorth)
	}
}

func TestCalculateCategorySpending(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()
	account := mustAccount(t, e, "Checking", entity.AccountTypeChecking, "0")
	groceries := mustCategory(t, e, "Groceries", entity.CategoryTypeExpense)
	dining := mustCategory(t, e, "Dining", entity.CategoryTypeExpense)
	salary := mustCategory(t, e, "Salary", entity.CategoryTypeIncome)

	march := func(d int) time.Time { return time.Date(2024, time.March, d, 9, 0, 0, 0, time.UTC) }

	mustTransaction(t, e, account.ID, "-60", "Supermarket", march(2), &groceries.ID)
	mustTransaction(t, e, account.ID, "2000", "Payroll", march(1), &salary.ID)
	mustTransaction(t, e, account.ID, "-15", "Uncategorized", march(3), nil)
	mustTransaction(t, e, account.ID, "-99", "Last month", time.Date(2024, time.February, 28, 9, 0, 0, 0, time.UTC), &groceries.ID)

	// The parent's own category is ignored once it is split.
	parent := mustTransaction(t, e, account.ID, "-50", "Market and lunch", march(5), &dining.ID)
	if _, err := e.SplitTransaction(ctx, parent.ID, []SplitInput{
		{Amount: decimal.NewFromInt(-30), CategoryID: groceries.ID},
		{Amount: decimal.NewFromInt(-20), CategoryID: dining.ID},
	}); err != nil {
		t.Fatalf("SplitTransaction() error = %v", err)
	}

	totals, err := e.CalculateCategorySpending(ctx, march(1), march(31))
	if err != nil {
		t.Fatalf("CalculateCategorySpending() error = %v", err)
	}

	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(totals))
	}

	tests := []struct {
		categoryName string
		total        int64
		count        int
	}{
		{categoryName: "Groceries", total: 90, count: 2},
		{categoryName: "Dining", total: 20, count: 1},
	}
	for i, tt := range tests {
		got := totals[i]
		if got.CategoryName != tt.categoryName {
			t.Errorf("position %d: expected %s, got %s", i, tt.categoryName, got.CategoryName)
		}
		if !got.Total.Equal(decimal.NewFromInt(tt.total)) {
			t.Errorf("%s: expected total %d, got %s", tt.categoryName, tt.total, got.Total)
		}
		if got.TransactionCount != tt.count {
			t.Errorf("%s: expected count %d, got %d", tt.categoryName, tt.count, got.TransactionCount)
		}
	}
}

func TestGetBudgetProgress(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()
	account := mustAccount(t, e, "Checking", entity.AccountTypeChecking, "0")
	groceries := mustCategory(t, e, "Groceries", entity.CategoryTypeExpense)
	dining := mustCategory(t, e, "Dining", entity.CategoryTypeExpense)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if _, err := e.CreateBudget(ctx, CreateBudgetInput{
		CategoryID: groceries.ID,
		Amount:     decimal.NewFromInt(100),
		Period:     entity.BudgetPeriodMonthly,
		StartDate:  start,
	}); err != nil {
		t.Fatalf("CreateBudget() error = %v", err)
	}
	if _, err := e.CreateBudget(ctx, CreateBudgetInput{
		CategoryID: dining.ID,
		Amount:     decimal.NewFromInt(40),
		Period:     entity.BudgetPeriodMonthly,
		StartDate:  start.Add(time.Hour),
	}); err != nil {
		t.Fatalf("CreateBudget() error = %v", err)
	}

	mustTransaction(t, e, account.ID, "-60", "Supermarket", time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC), &groceries.ID)
	mustTransaction(t, e, account.ID, "-30", "Bakery", time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC), &groceries.ID)
	mustTransaction(t, e, account.ID, "-500", "February shop", time.Date(2024, time.February, 20, 9, 0, 0, 0, time.UTC), &groceries.ID)
	mustTransaction(t, e, account.ID, "-55", "Dinner", time.Date(2024, time.March, 12, 20, 0, 0, 0, time.UTC), &dining.ID)

	statuses, err := e.GetBudgetProgress(ctx)
	if err != nil {
		t.Fatalf("GetBudgetProgress() error = %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(statuses))
	}

	grocery := statuses[0]
	if !grocery.PeriodStart.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected period to start on March 1, got %v", grocery.PeriodStart)
	}
	if !grocery.Spent.Equal(decimal.NewFromInt(90)) {
		t.Errorf("expected spent 90, got %s", grocery.Spent)
	}
	if !grocery.Remaining.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected remaining 10, got %s", grocery.Remaining)
	}
	if !grocery.PercentUsed.Equal(decimal.NewFromInt(90)) {
		t.Errorf("expected 90 percent used, got %s", grocery.PercentUsed)
	}
	if grocery.IsOverBudget {
		t.Error("expected grocery budget not to be exceeded")
	}

	diningStatus := statuses[1]
	if !diningStatus.IsOverBudget {
		t.Error("expected dining budget to be exceeded")
	}
	if !diningStatus.Remaining.IsZero() {
		t.Errorf("expected remaining to be clamped at 0, got %s", diningStatus.Remaining)
	}
}

func TestGetBudgetProgress_MonthEndAnchor(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()
	account := mustAccount(t, e, "Checking", entity.AccountTypeChecking, "0")
	groceries := mustCategory(t, e, "Groceries", entity.CategoryTypeExpense)

	if _, err := e.CreateBudget(ctx, CreateBudgetInput{
		CategoryID: groceries.ID,
		Amount:     decimal.NewFromInt(100),
		Period:     entity.BudgetPeriodMonthly,
		StartDate:  time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("CreateBudget() error = %v", err)
	}

	mustTransaction(t, e, account.ID, "-100", "Previous period", time.Date(2024, time.February, 28, 9, 0, 0, 0, time.UTC), &groceries.ID)
	mustTransaction(t, e, account.ID, "-30", "Leap day shop", time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC), &groceries.ID)
	mustTransaction(t, e, account.ID, "-20", "Market", time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC), &groceries.ID)

	statuses, err := e.GetBudgetProgress(ctx)
	if err != nil {
		t.Fatalf("GetBudgetProgress() error = %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected 1 budget, got %d", len(statuses))
	}

	status := statuses[0]
	if !status.PeriodStart.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected period to start on February 29, got %v", status.PeriodStart)
	}
	if !status.Spent.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected spent 50, got %s", status.Spent)
	}
	if status.IsOverBudget {
		t.Error("expected budget not to be exceeded")
	}
}
