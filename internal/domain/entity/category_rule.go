// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryRule represents an auto-categorization rule.
// Rules are applied to transaction descriptions using regex patterns to automatically
// assign categories to new transactions.
type CategoryRule struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	Pattern    string    `json:"pattern"`    // Regex pattern to match against transaction descriptions
	CategoryID uuid.UUID `json:"categoryId"` // The category to assign when the pattern matches
	Priority   int       `json:"priority"`   // Higher priority rules are checked first
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewCategoryRule creates a new CategoryRule entity.
func NewCategoryRule(userID uuid.UUID, pattern string, categoryID uuid.UUID, priority int) *CategoryRule {
	now := time.Now().UTC()

	return &CategoryRule{
		ID:         uuid.New(),
		UserID:     userID,
		Pattern:    pattern,
		CategoryID: categoryID,
		Priority:   priority,
		IsActive:   true, // New rules are active by default
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
