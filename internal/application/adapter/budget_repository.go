package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	Create(ctx context.Context, budget *entity.Budget) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)
	Update(ctx context.Context, budget *entity.Budget) error
	Delete(ctx context.Context, id uuid.UUID) error
}
