package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUser lists the user's accounts. Inactive accounts are included only when asked for.
	FindByUser(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*entity.Account, error)

	Update(ctx context.Context, account *entity.Account) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUser returns the number of active accounts owned by the user.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
