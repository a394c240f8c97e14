package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/domain/entity"
)

// Dataset is the full set of records owned by one user, keyed by logical table.
// It is the unit exchanged between the record store and the backup service.
type Dataset struct {
	Accounts          []*entity.Account          `json:"accounts"`
	Categories        []*entity.Category         `json:"categories"`
	Transactions      []*entity.Transaction      `json:"transactions"`
	TransactionSplits []*entity.TransactionSplit `json:"transactionSplits"`
	Budgets           []*entity.Budget           `json:"budgets"`
	Portfolios        []*entity.Portfolio        `json:"portfolios"`
	Investments       []*entity.Investment       `json:"investments,omitempty"`
	NetWorthSnapshots []*entity.NetWorthSnapshot `json:"netWorthSnapshots"`
	FamilyMembers     []*entity.FamilyMember     `json:"familyMembers"`
	BankConnections   []*entity.BankConnection   `json:"bankConnections"`
	CategoryRules     []*entity.CategoryRule     `json:"categoryRules"`
}

// Counts returns the number of records per table.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		"accounts":          len(d.Accounts),
		"categories":        len(d.Categories),
		"transactions":      len(d.Transactions),
		"transactionSplits": len(d.TransactionSplits),
		"budgets":           len(d.Budgets),
		"portfolios":        len(d.Portfolios),
		"investments":       len(d.Investments),
		"netWorthSnapshots": len(d.NetWorthSnapshots),
		"familyMembers":     len(d.FamilyMembers),
		"bankConnections":   len(d.BankConnections),
		"categoryRules":     len(d.CategoryRules),
	}
}

// DatasetRepository serializes and deserializes a user's whole dataset.
type DatasetRepository interface {
	// ExportAll reads every record owned by the user.
	ExportAll(ctx context.Context, userID uuid.UUID) (*Dataset, error)

	// ImportData upserts every record in the dataset. Records absent from the dataset are untouched.
	ImportData(ctx context.Context, data *Dataset) error
}

// RecordStore aggregates the typed repositories the engine persists through.
type RecordStore interface {
	Accounts() AccountRepository
	Categories() CategoryRepository
	Transactions() TransactionRepository
	Splits() SplitRepository
	Budgets() BudgetRepository
	Portfolios() PortfolioRepository
	Investments() InvestmentRepository
	NetWorth() NetWorthRepository
	FamilyMembers() FamilyMemberRepository
	BankConnections() BankConnectionRepository
	CategoryRules() CategoryRuleRepository
	Analytics() AnalyticsRepository
	Datasets() DatasetRepository

	// WithinTransaction runs fn against a store bound to a single database transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(store RecordStore) error) error
}
