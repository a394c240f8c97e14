package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
	"github.com/finance-tracker/core/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(transaction)).Error
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions based on filter criteria.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})

	// Apply filters
	if filter.UserID != uuid.Nil {
		query = query.Where("account_id IN (?)", userAccountIDs(r.db, filter.UserID))
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.IsParent != nil {
		query = query.Where("is_parent = ?", *filter.IsParent)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	var transactionModels []model.TransactionModel
	if err := query.Order("date DESC, created_at DESC").Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, m := range transactionModels {
		transactions[i] = m.ToEntity()
	}
	return transactions, nil
}

// Update updates an existing transaction.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	return updateAll(ctx, r.db, model.TransactionFromEntity(transaction), domainerror.ErrTransactionNotFound)
}

// Delete removes a transaction. Splits referencing it are not touched.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &model.TransactionModel{}, id, domainerror.ErrTransactionNotFound)
}

// CountByAccount counts the transactions recorded against an account.
func (r *transactionRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}

// splitRepository implements the adapter.SplitRepository interface.
type splitRepository struct {
	db *gorm.DB
}

// NewSplitRepository creates a new transaction split repository instance.
func NewSplitRepository(db *gorm.DB) adapter.SplitRepository {
	return &splitRepository{
		db: db,
	}
}

// Create creates a new split.
func (r *splitRepository) Create(ctx context.Context, split *entity.TransactionSplit) error {
	if split.ID == uuid.Nil {
		split.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(model.TransactionSplitFromEntity(split)).Error
}

// FindByTransaction retrieves the splits of a transaction in creation order.
func (r *splitRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*entity.TransactionSplit, error) {
	var splitModels []model.TransactionSplitModel
	result := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC, id ASC").
		Find(&splitModels)
	if result.Error != nil {
		return nil, result.Error
	}

	splits := make([]*entity.TransactionSplit, len(splitModels))
	for i, m := range splitModels {
		splits[i] = m.ToEntity()
	}
	return splits, nil
}

// DeleteByTransaction removes every split of a transaction.
func (r *splitRepository) DeleteByTransaction(ctx context.Context, transactionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Delete(&model.TransactionSplitModel{}).Error
}
