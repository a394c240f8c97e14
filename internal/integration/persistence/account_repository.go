// Package persistence implements repository interfaces for database operations.
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

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account in the database.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(model.AccountFromEntity(account)).Error
}

// FindByID retrieves an account by its ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// FindByUser retrieves the accounts of a user ordered by name.
func (r *accountRepository) FindByUser(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*entity.Account, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var accountModels []model.AccountModel
	if err := query.Order("name ASC").Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]*entity.Account, len(accountModels))
	for i, m := range accountModels {
		accounts[i] = m.ToEntity()
	}
	return accounts, nil
}

// Update updates an existing account.
func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	return updateAll(ctx, r.db, model.AccountFromEntity(account), domainerror.ErrAccountNotFound)
}

// Delete removes an account permanently.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &model.AccountModel{}, id, domainerror.ErrAccountNotFound)
}

// CountByUser counts the active accounts owned by a user.
func (r *accountRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}
