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

// categoryRuleRepository implements the adapter.CategoryRuleRepository interface.
type categoryRuleRepository struct {
	db *gorm.DB
}

// NewCategoryRuleRepository creates a new category rule repository instance.
func NewCategoryRuleRepository(db *gorm.DB) adapter.CategoryRuleRepository {
	return &categoryRuleRepository{
		db: db,
	}
}

// Create creates a new category rule in the database.
func (r *categoryRuleRepository) Create(ctx context.Context, rule *entity.CategoryRule) error {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(model.CategoryRuleFromEntity(rule)).Error
}

// FindByID retrieves a category rule by its ID.
func (r *categoryRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CategoryRule, error) {
	var ruleModel model.CategoryRuleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryRuleNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindActiveByUser retrieves active rules ordered by priority (highest first).
func (r *categoryRuleRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error) {
	var ruleModels []model.CategoryRuleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("priority DESC, created_at ASC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.CategoryRule, len(ruleModels))
	for i, m := range ruleModels {
		rules[i] = m.ToEntity()
	}
	return rules, nil
}

// Delete removes a category rule.
func (r *categoryRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &model.CategoryRuleModel{}, id, domainerror.ErrCategoryRuleNotFound)
}
