package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves all categories owned by a user, optionally filtered by type.
	FindByUser(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// Update updates an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRuleRepository defines the interface for category rule persistence operations.
type CategoryRuleRepository interface {
	Create(ctx context.Context, rule *entity.CategoryRule) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CategoryRule, error)

	// FindActiveByUser returns the user's active rules ordered by priority, highest first.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
