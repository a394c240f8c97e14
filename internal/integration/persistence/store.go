package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/finance-tracker/core/internal/application/adapter"
)

// store implements adapter.RecordStore over a single *gorm.DB handle.
type store struct {
	db *gorm.DB
}

// NewRecordStore creates a record store backed by db.
func NewRecordStore(db *gorm.DB) adapter.RecordStore {
	return &store{
		db: db,
	}
}

func (s *store) Accounts() adapter.AccountRepository         { return NewAccountRepository(s.db) }
func (s *store) Categories() adapter.CategoryRepository      { return NewCategoryRepository(s.db) }
func (s *store) Transactions() adapter.TransactionRepository { return NewTransactionRepository(s.db) }
func (s *store) Splits() adapter.SplitRepository             { return NewSplitRepository(s.db) }
func (s *store) Budgets() adapter.BudgetRepository           { return NewBudgetRepository(s.db) }
func (s *store) Portfolios() adapter.PortfolioRepository     { return NewPortfolioRepository(s.db) }
func (s *store) Investments() adapter.InvestmentRepository   { return NewInvestmentRepository(s.db) }
func (s *store) NetWorth() adapter.NetWorthRepository        { return NewNetWorthRepository(s.db) }
func (s *store) FamilyMembers() adapter.FamilyMemberRepository {
	return NewFamilyMemberRepository(s.db)
}
func (s *store) BankConnections() adapter.BankConnectionRepository {
	return NewBankConnectionRepository(s.db)
}
func (s *store) CategoryRules() adapter.CategoryRuleRepository {
	return NewCategoryRuleRepository(s.db)
}
func (s *store) Analytics() adapter.AnalyticsRepository { return NewAnalyticsRepository(s.db) }
func (s *store) Datasets() adapter.DatasetRepository    { return NewDatasetRepository(s.db) }

// WithinTransaction runs fn with a store bound to a database transaction.
func (s *store) WithinTransaction(ctx context.Context, fn func(adapter.RecordStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}
