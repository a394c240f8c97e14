package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/domain/entity"
)

// CalculateCategorySpending returns expense totals per category for transactions
// dated within [start, end].
func (e *Engine) CalculateCategorySpending(ctx context.Context, start, end time.Time) ([]adapter.CategoryTotal, error) {
	return e.store.Analytics().GetCategorySpending(ctx, e.session.UserID, start.UTC(), end.UTC())
}

// GetBudgetProgress returns the status of each active budget for the current period.
func (e *Engine) GetBudgetProgress(ctx context.Context) ([]adapter.BudgetStatus, error) {
	return e.store.Analytics().GetBudgetProgress(ctx, e.session.UserID, e.timestamp())
}

// GenerateNetWorthSnapshot records the user's current net worth.
// Assets are active non-credit balances plus holding market values;
// liabilities are the absolute balances of credit accounts.
func (e *Engine) GenerateNetWorthSnapshot(ctx context.Context) (*entity.NetWorthSnapshot, error) {
	accounts, err := e.store.Accounts().FindByUser(ctx, e.session.UserID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	investments, err := e.store.Investments().FindByUser(ctx, e.session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch investments: %w", err)
	}

	assets := decimal.Zero
	liabilities := decimal.Zero
	for _, account := range accounts {
		if account.Type.IsLiability() {
			liabilities = liabilities.Add(account.Balance.Abs())
			continue
		}
		assets = assets.Add(account.Balance)
	}
	for _, investment := range investments {
		assets = assets.Add(investment.MarketValue())
	}

	snapshot := entity.NewNetWorthSnapshot(e.session.UserID, assets, liabilities)
	snapshot.Date = e.timestamp()
	snapshot.CreatedAt = snapshot.Date

	if err := e.store.NetWorth().Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save net worth snapshot: %w", err)
	}

	slog.Debug("Generated net worth snapshot",
		"userID", e.session.UserID,
		"netWorth", snapshot.NetWorth.String(),
	)

	e.markDirty()
	return snapshot, nil
}

// GetNetWorthHistory returns the user's snapshots, oldest first.
func (e *Engine) GetNetWorthHistory(ctx context.Context) ([]*entity.NetWorthSnapshot, error) {
	return e.store.NetWorth().FindByUser(ctx, e.session.UserID)
}
