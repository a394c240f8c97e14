package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/integration/persistence/model"
)

// importBatchSize bounds the rows written per INSERT statement.
const importBatchSize = 200

// datasetRepository implements the adapter.DatasetRepository interface.
type datasetRepository struct {
	db *gorm.DB
}

// NewDatasetRepository creates a new dataset repository instance.
func NewDatasetRepository(db *gorm.DB) adapter.DatasetRepository {
	return &datasetRepository{
		db: db,
	}
}

// ExportAll reads every record owned by the user.
func (r *datasetRepository) ExportAll(ctx context.Context, userID uuid.UUID) (*adapter.Dataset, error) {
	db := r.db.WithContext(ctx)
	accountIDs := userAccountIDs(r.db, userID)
	transactionIDs := r.db.Table("transactions").Select("id").Where("account_id IN (?)", accountIDs)
	categoryIDs := r.db.Table("categories").Select("id").Where("user_id = ?", userID)
	portfolioIDs := r.db.Table("portfolios").Select("id").Where("user_id = ?", userID)

	var (
		accounts     []model.AccountModel
		categories   []model.CategoryModel
		transactions []model.TransactionModel
		splits       []model.TransactionSplitModel
		budgets      []model.BudgetModel
		portfolios   []model.PortfolioModel
		investments  []model.InvestmentModel
		snapshots    []model.NetWorthSnapshotModel
		members      []model.FamilyMemberModel
		connections  []model.BankConnectionModel
		rules        []model.CategoryRuleModel
	)

	queries := []struct {
		table string
		run   func() error
	}{
		{"accounts", func() error { return db.Where("user_id = ?", userID).Order("created_at, id").Find(&accounts).Error }},
		{"categories", func() error { return db.Where("user_id = ?", userID).Order("created_at, id").Find(&categories).Error }},
		{"transactions", func() error {
			return db.Where("account_id IN (?)", accountIDs).Order("created_at, id").Find(&transactions).Error
		}},
		{"transaction_splits", func() error {
			// Splits whose parent was deleted are reached through their category.
			return db.Where("transaction_id IN (?) OR category_id IN (?)", transactionIDs, categoryIDs).
				Order("created_at, id").Find(&splits).Error
		}},
		{"budgets", func() error { return db.Where("user_id = ?", userID).Order("created_at, id").Find(&budgets).Error }},
		{"portfolios", func() error { return db.Where("user_id = ?", userID).Order("created_at, id").Find(&portfolios).Error }},
		{"investments", func() error {
			return db.Where("portfolio_id IN (?)", portfolioIDs).Order("created_at, id").Find(&investments).Error
		}},
		{"net_worth_snapshots", func() error { return db.Where("user_id = ?", userID).Order("created_at, id").Find(&snapshots).Error }},
		{"family_members", func() error { return db.Where("owner_id = ?", userID).Order("created_at, id").Find(&members).Error }},
		{"bank_connections", func() error { return db.Where("user_id = ?", userID).Order("created_at, id").Find(&connections).Error }},
		{"category_rules", func() error { return db.Where("user_id = ?", userID).Order("created_at, id").Find(&rules).Error }},
	}

	for _, q := range queries {
		if err := q.run(); err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", q.table, err)
		}
	}

	data := &adapter.Dataset{}
	for i := range accounts {
		data.Accounts = append(data.Accounts, accounts[i].ToEntity())
	}
	for i := range categories {
		data.Categories = append(data.Categories, categories[i].ToEntity())
	}
	for i := range transactions {
		data.Transactions = append(data.Transactions, transactions[i].ToEntity())
	}
	for i := range splits {
		data.TransactionSplits = append(data.TransactionSplits, splits[i].ToEntity())
	}
	for i := range budgets {
		data.Budgets = append(data.Budgets, budgets[i].ToEntity())
	}
	for i := range portfolios {
		data.Portfolios = append(data.Portfolios, portfolios[i].ToEntity())
	}
	for i := range investments {
		data.Investments = append(data.Investments, investments[i].ToEntity())
	}
	for i := range snapshots {
		data.NetWorthSnapshots = append(data.NetWorthSnapshots, snapshots[i].ToEntity())
	}
	for i := range members {
		data.FamilyMembers = append(data.FamilyMembers, members[i].ToEntity())
	}
	for i := range connections {
		data.BankConnections = append(data.BankConnections, connections[i].ToEntity())
	}
	for i := range rules {
		data.CategoryRules = append(data.CategoryRules, rules[i].ToEntity())
	}

	return data, nil
}

// ImportData upserts every record of the dataset inside one database transaction.
func (r *datasetRepository) ImportData(ctx context.Context, data *adapter.Dataset) error {
	if data == nil {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		onConflict := clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}

		steps := []struct {
			table string
			rows  any
			count int
		}{
			{"accounts", mapEach(data.Accounts, model.AccountFromEntity), len(data.Accounts)},
			{"categories", mapEach(data.Categories, model.CategoryFromEntity), len(data.Categories)},
			{"transactions", mapEach(data.Transactions, model.TransactionFromEntity), len(data.Transactions)},
			{"transaction_splits", mapEach(data.TransactionSplits, model.TransactionSplitFromEntity), len(data.TransactionSplits)},
			{"budgets", mapEach(data.Budgets, model.BudgetFromEntity), len(data.Budgets)},
			{"portfolios", mapEach(data.Portfolios, model.PortfolioFromEntity), len(data.Portfolios)},
			{"investments", mapEach(data.Investments, model.InvestmentFromEntity), len(data.Investments)},
			{"net_worth_snapshots", mapEach(data.NetWorthSnapshots, model.NetWorthSnapshotFromEntity), len(data.NetWorthSnapshots)},
			{"family_members", mapEach(data.FamilyMembers, model.FamilyMemberFromEntity), len(data.FamilyMembers)},
			{"bank_connections", mapEach(data.BankConnections, model.BankConnectionFromEntity), len(data.BankConnections)},
			{"category_rules", mapEach(data.CategoryRules, model.CategoryRuleFromEntity), len(data.CategoryRules)},
		}

		for _, step := range steps {
			if step.count == 0 {
				continue
			}
			if err := tx.Clauses(onConflict).CreateInBatches(step.rows, importBatchSize).Error; err != nil {
				return fmt.Errorf("failed to import %s: %w", step.table, err)
			}
		}
		return nil
	})
}

func mapEach[E any, M any](records []*E, convert func(*E) *M) []*M {
	out := make([]*M, 0, len(records))
	for _, record := range records {
		if record != nil {
			out = append(out, convert(record))
		}
	}
	return out
}
