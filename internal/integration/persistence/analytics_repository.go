package persistence

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/integration/persistence/model"
)

// analyticsRepository implements the adapter.AnalyticsRepository interface.
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository instance.
func NewAnalyticsRepository(db *gorm.DB) adapter.AnalyticsRepository {
	return &analyticsRepository{
		db: db,
	}
}

type expenseRow struct {
	CategoryID uuid.UUID       `gorm:"column:category_id"`
	Amount     decimal.Decimal `gorm:"column:amount"`
}

// Unsplit transactions contribute their own row; split parents contribute their splits.
const expenseRowsQuery = `
	SELECT t.category_id AS category_id, t.amount AS amount
	FROM transactions t
	JOIN accounts a ON a.id = t.account_id
	WHERE a.user_id = ?
		AND t.is_parent = ?
		AND t.category_id IS NOT NULL
		AND t.amount < 0
		AND t.date >= ?
		AND t.date %[1]s ?
	UNION ALL
	SELECT s.category_id AS category_id, s.amount AS amount
	FROM transaction_splits s
	JOIN transactions t ON t.id = s.transaction_id
	JOIN accounts a ON a.id = t.account_id
	WHERE a.user_id = ?
		AND t.is_parent = ?
		AND s.amount < 0
		AND t.date >= ?
		AND t.date %[1]s ?
`

// expenseRows returns negative-amount rows dated from start up to end.
// The end bound is exclusive when endExclusive is set.
func (r *analyticsRepository) expenseRows(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
	endExclusive bool,
) ([]expenseRow, error) {
	op := "<="
	if endExclusive {
		op = "<"
	}

	var rows []expenseRow
	err := r.db.WithContext(ctx).
		Raw(fmt.Sprintf(expenseRowsQuery, op),
			userID, false, start.UTC(), end.UTC(),
			userID, true, start.UTC(), end.UTC(),
		).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get expense rows: %w", err)
	}
	return rows, nil
}

func (r *analyticsRepository) categoriesByID(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]model.CategoryModel, error) {
	var categoryModels []model.CategoryModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&categoryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	byID := make(map[uuid.UUID]model.CategoryModel, len(categoryModels))
	for _, c := range categoryModels {
		byID[c.ID] = c
	}
	return byID, nil
}

// GetCategorySpending returns expense totals per category, largest first.
func (r *analyticsRepository) GetCategorySpending(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]adapter.CategoryTotal, error) {
	rows, err := r.expenseRows(ctx, userID, start, end, false)
	if err != nil {
		return nil, err
	}

	categories, err := r.categoriesByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]*adapter.CategoryTotal)
	for _, row := range rows {
		total, ok := totals[row.CategoryID]
		if !ok {
			category := categories[row.CategoryID]
			total = &adapter.CategoryTotal{
				CategoryID:    row.CategoryID,
				CategoryName:  category.Name,
				CategoryColor: category.Color,
				Total:         decimal.Zero,
			}
			totals[row.CategoryID] = total
		}
		total.Total = total.Total.Add(row.Amount.Neg())
		total.TransactionCount++
	}

	result := make([]adapter.CategoryTotal, 0, len(totals))
	for _, total := range totals {
		result = append(result, *total)
	}
	sort.Slice(result, func(i, j int) bool {
		if cmp := result[i].Total.Cmp(result[j].Total); cmp != 0 {
			return cmp > 0
		}
		return result[i].CategoryName < result[j].CategoryName
	})

	return result, nil
}

// GetBudgetProgress returns the consumption of every active budget for the period containing asOf.
func (r *analyticsRepository) GetBudgetProgress(
	ctx context.Context,
	userID uuid.UUID,
	asOf time.Time,
) ([]adapter.BudgetStatus, error) {
	var budgetModels []model.BudgetModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("start_date ASC, created_at ASC").
		Find(&budgetModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}

	categories, err := r.categoriesByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	statuses := make([]adapter.BudgetStatus, 0, len(budgetModels))

	for _, bm := range budgetModels {
		budget := bm.ToEntity()
		start, end := budget.PeriodWindow(asOf.UTC())

		rows, err := r.expenseRows(ctx, userID, start, end, true)
		if err != nil {
			return nil, err
		}

		spent := decimal.Zero
		for _, row := range rows {
			if row.CategoryID == budget.CategoryID {
				spent = spent.Add(row.Amount.Neg())
			}
		}

		remaining := budget.Amount.Sub(spent)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		percentUsed := decimal.Zero
		if budget.Amount.IsPositive() {
			percentUsed = spent.Div(budget.Amount).Mul(hundred).Round(2)
		}

		statuses = append(statuses, adapter.BudgetStatus{
			BudgetID:     budget.ID,
			CategoryID:   budget.CategoryID,
			CategoryName: categories[budget.CategoryID].Name,
			Period:       string(budget.Period),
			PeriodStart:  start,
			PeriodEnd:    end,
			Limit:        budget.Amount,
			Spent:        spent,
			Remaining:    remaining,
			PercentUsed:  percentUsed,
			IsOverBudget: spent.GreaterThan(budget.Amount),
		})
	}

	return statuses, nil
}
