package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/domain/entity"
)

// CategoryRuleModel represents the category_rules table in the database.
type CategoryRuleModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Pattern    string    `gorm:"type:varchar(255);not null"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Priority   int       `gorm:"not null"`
	IsActive   bool      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName returns the table name for the CategoryRuleModel.
func (CategoryRuleModel) TableName() string {
	return "category_rules"
}

// ToEntity converts a CategoryRuleModel to a domain CategoryRule entity.
func (m *CategoryRuleModel) ToEntity() *entity.CategoryRule {
	return &entity.CategoryRule{
		ID:         m.ID,
		UserID:     m.UserID,
		Pattern:    m.Pattern,
		CategoryID: m.CategoryID,
		Priority:   m.Priority,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// CategoryRuleFromEntity creates a CategoryRuleModel from a domain CategoryRule entity.
func CategoryRuleFromEntity(rule *entity.CategoryRule) *CategoryRuleModel {
	return &CategoryRuleModel{
		ID:         rule.ID,
		UserID:     rule.UserID,
		Pattern:    rule.Pattern,
		CategoryID: rule.CategoryID,
		Priority:   rule.Priority,
		IsActive:   rule.IsActive,
		CreatedAt:  rule.CreatedAt,
		UpdatedAt:  rule.UpdatedAt,
	}
}
