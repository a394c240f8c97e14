package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AnalyticsRepository exposes the precomputed aggregation queries the engine depends on.
type AnalyticsRepository interface {
	// GetCategorySpending returns expense totals per category for transactions dated
	// within [start, end]. Split parents contribute through their split rows.
	GetCategorySpending(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]CategoryTotal, error)

	// GetBudgetProgress returns the status of each active budget for the period containing asOf.
	GetBudgetProgress(ctx context.Context, userID uuid.UUID, asOf time.Time) ([]BudgetStatus, error)
}

// CategoryTotal represents the spending of a single category in a period.
type CategoryTotal struct {
	CategoryID       uuid.UUID       `json:"categoryId"`
	CategoryName     string          `json:"categoryName"`
	CategoryColor    string          `json:"categoryColor"`
	Total            decimal.Decimal `json:"total"`
	TransactionCount int             `json:"transactionCount"`
}

// BudgetStatus represents how much of a budget has been consumed in its current period.
type BudgetStatus struct {
	BudgetID     uuid.UUID       `json:"budgetId"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Period       string          `json:"period"`
	PeriodStart  time.Time       `json:"periodStart"`
	PeriodEnd    time.Time       `json:"periodEnd"`
	Limit        decimal.Decimal `json:"limit"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	PercentUsed  decimal.Decimal `json:"percentUsed"`
	IsOverBudget bool            `json:"isOverBudget"`
}
