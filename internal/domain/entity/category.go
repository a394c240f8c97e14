// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category.
type CategoryType string

const (
	CategoryTypeIncome   CategoryType = "income"
	CategoryTypeExpense  CategoryType = "expense"
	CategoryTypeTransfer CategoryType = "transfer"
)

// IsValid reports whether t is a known category type.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense || t == CategoryTypeTransfer
}

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// Category represents a transaction category.
type Category struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"userId"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	Color     string       `json:"color"`
	IsDefault bool         `json:"isDefault"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewCategory creates a new Category entity.
// Color defaulting is applied by the caller.
func NewCategory(userID uuid.UUID, name string, categoryType CategoryType, color string, isDefault bool) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		Color:     color,
		IsDefault: isDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CategoryTemplate describes a category seeded for new users.
type CategoryTemplate struct {
	Name  string
	Type  CategoryType
	Color string
}

// DefaultCategories are created the first time a user's dataset is empty.
var DefaultCategories = []CategoryTemplate{
	{Name: "Salary", Type: CategoryTypeIncome, Color: "#22C55E"},
	{Name: "Other Income", Type: CategoryTypeIncome, Color: "#16A34A"},
	{Name: "Groceries", Type: CategoryTypeExpense, Color: "#F97316"},
	{Name: "Housing", Type: CategoryTypeExpense, Color: "#EF4444"},
	{Name: "Transportation", Type: CategoryTypeExpense, Color: "#3B82F6"},
	{Name: "Dining", Type: CategoryTypeExpense, Color: "#EAB308"},
	{Name: "Utilities", Type: CategoryTypeExpense, Color: "#8B5CF6"},
	{Name: "Entertainment", Type: CategoryTypeExpense, Color: "#EC4899"},
	{Name: "Transfer", Type: CategoryTypeTransfer, Color: DefaultCategoryColor},
}
