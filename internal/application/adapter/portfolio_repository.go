package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/domain/entity"
)

// PortfolioRepository defines the interface for portfolio persistence operations.
type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *entity.Portfolio) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Portfolio, error)

	// FindByUser lists the user's portfolios. Inactive portfolios are included only when asked for.
	FindByUser(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*entity.Portfolio, error)

	Update(ctx context.Context, portfolio *entity.Portfolio) error
}

// InvestmentRepository defines the interface for investment holding persistence operations.
type InvestmentRepository interface {
	Create(ctx context.Context, investment *entity.Investment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Investment, error)
	FindByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]*entity.Investment, error)

	// FindByUser returns every holding in the user's active portfolios.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Investment, error)

	Update(ctx context.Context, investment *entity.Investment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NetWorthRepository stores immutable net worth snapshots. Rows are never updated.
type NetWorthRepository interface {
	Create(ctx context.Context, snapshot *entity.NetWorthSnapshot) error

	// FindByUser returns the user's snapshots ordered oldest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.NetWorthSnapshot, error)
}
