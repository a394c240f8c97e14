package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

// CreatePortfolioInput represents the input for portfolio creation.
type CreatePortfolioInput struct {
	Name        string
	Description string
}

// UpdatePortfolioInput carries the fields to change. Nil fields are preserved.
type UpdatePortfolioInput struct {
	Name        *string
	Description *string
}

// AddInvestmentInput represents a new holding.
type AddInvestmentInput struct {
	PortfolioID  uuid.UUID
	Symbol       string
	Name         string
	Quantity     decimal.Decimal
	CostBasis    decimal.Decimal
	CurrentPrice decimal.Decimal
}

// UpdateInvestmentInput carries the fields to change. Nil fields are preserved.
type UpdateInvestmentInput struct {
	Name         *string
	Quantity     *decimal.Decimal
	CostBasis    *decimal.Decimal
	CurrentPrice *decimal.Decimal
}

// CreatePortfolio creates an empty portfolio.
func (e *Engine) CreatePortfolio(ctx context.Context, input CreatePortfolioInput) (*entity.Portfolio, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewPortfolioError(
			domainerror.ErrCodePortfolioNameReq,
			"portfolio name is required",
			domainerror.ErrPortfolioNameRequired,
		)
	}

	portfolio := entity.NewPortfolio(e.session.UserID, name, input.Description)
	e.stamp(&portfolio.CreatedAt, &portfolio.UpdatedAt)
	if err := e.store.Portfolios().Create(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	e.markDirty()
	return portfolio, nil
}

// GetPortfolio returns a portfolio owned by the session user.
func (e *Engine) GetPortfolio(ctx context.Context, id uuid.UUID) (*entity.Portfolio, error) {
	portfolio, err := e.store.Portfolios().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, portfolioNotFound()
		}
		return nil, err
	}
	if portfolio.UserID != e.session.UserID {
		return nil, portfolioNotFound()
	}
	return portfolio, nil
}

func portfolioNotFound() error {
	return domainerror.NewPortfolioError(
		domainerror.ErrCodePortfolioNotFound,
		"portfolio not found",
		domainerror.ErrPortfolioNotFound,
	)
}

// ListPortfolios returns the session user's portfolios.
func (e *Engine) ListPortfolios(ctx context.Context, includeInactive bool) ([]*entity.Portfolio, error) {
	return e.store.Portfolios().FindByUser(ctx, e.session.UserID, includeInactive)
}

// UpdatePortfolio merges input onto the stored portfolio.
func (e *Engine) UpdatePortfolio(ctx context.Context, id uuid.UUID, input UpdatePortfolioInput) (*entity.Portfolio, error) {
	portfolio, err := e.GetPortfolio(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewPortfolioError(
				domainerror.ErrCodePortfolioNameReq,
				"portfolio name is required",
				domainerror.ErrPortfolioNameRequired,
			)
		}
		portfolio.Name = name
	}
	if input.Description != nil {
		portfolio.Description = *input.Description
	}
	portfolio.UpdatedAt = e.timestamp()

	if err := e.store.Portfolios().Update(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}

	e.markDirty()
	return portfolio, nil
}

// DeletePortfolio deactivates a portfolio. Its holdings are kept.
func (e *Engine) DeletePortfolio(ctx context.Context, id uuid.UUID) error {
	portfolio, err := e.GetPortfolio(ctx, id)
	if err != nil {
		return err
	}

	portfolio.IsActive = false
	portfolio.UpdatedAt = e.timestamp()
	if err := e.store.Portfolios().Update(ctx, portfolio); err != nil {
		return fmt.Errorf("failed to deactivate portfolio: %w", err)
	}

	e.markDirty()
	return nil
}

func validateQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return domainerror.NewPortfolioError(
			domainerror.ErrCodeInvalidQuantity,
			"quantity must not be negative",
			domainerror.ErrInvalidQuantity,
		)
	}
	return nil
}

// AddInvestment records a holding in one of the user's portfolios.
// Symbols are stored upper-cased.
func (e *Engine) AddInvestment(ctx context.Context, input AddInvestmentInput) (*entity.Investment, error) {
	symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
	if symbol == "" {
		return nil, domainerror.NewPortfolioError(
			domainerror.ErrCodeInvalidSymbol,
			"symbol is required",
			domainerror.ErrInvalidSymbol,
		)
	}
	if err := validateQuantity(input.Quantity); err != nil {
		return nil, err
	}
	if _, err := e.GetPortfolio(ctx, input.PortfolioID); err != nil {
		return nil, err
	}

	investment := entity.NewInvestment(
		input.PortfolioID,
		symbol,
		input.Name,
		input.Quantity,
		input.CostBasis,
		input.CurrentPrice,
	)
	e.stamp(&investment.CreatedAt, &investment.UpdatedAt)
	if err := e.store.Investments().Create(ctx, investment); err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}

	e.markDirty()
	return investment, nil
}

// GetInvestment returns a holding in one of the session user's portfolios.
func (e *Engine) GetInvestment(ctx context.Context, id uuid.UUID) (*entity.Investment, error) {
	investment, err := e.store.Investments().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, investmentNotFound()
		}
		return nil, err
	}
	if _, err := e.GetPortfolio(ctx, investment.PortfolioID); err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, investmentNotFound()
		}
		return nil, err
	}
	return investment, nil
}

func investmentNotFound() error {
	return domainerror.NewPortfolioError(
		domainerror.ErrCodeInvestmentNotFound,
		"investment not found",
		domainerror.ErrInvestmentNotFound,
	)
}

// ListInvestments returns the holdings of a portfolio.
func (e *Engine) ListInvestments(ctx context.Context, portfolioID uuid.UUID) ([]*entity.Investment, error) {
	if _, err := e.GetPortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}
	return e.store.Investments().FindByPortfolio(ctx, portfolioID)
}

// UpdateInvestment merges input onto the stored holding.
func (e *Engine) UpdateInvestment(ctx context.Context, id uuid.UUID, input UpdateInvestmentInput) (*entity.Investment, error) {
	investment, err := e.GetInvestment(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		investment.Name = *input.Name
	}
	if input.Quantity != nil {
		if err := validateQuantity(*input.Quantity); err != nil {
			return nil, err
		}
		investment.Quantity = *input.Quantity
	}
	if input.CostBasis != nil {
		investment.CostBasis = *input.CostBasis
	}
	if input.CurrentPrice != nil {
		investment.CurrentPrice = *input.CurrentPrice
	}
	investment.UpdatedAt = e.timestamp()

	if err := e.store.Investments().Update(ctx, investment); err != nil {
		return nil, fmt.Errorf("failed to update investment: %w", err)
	}

	e.markDirty()
	return investment, nil
}

// DeleteInvestment removes a holding.
func (e *Engine) DeleteInvestment(ctx context.Context, id uuid.UUID) error {
	if _, err := e.GetInvestment(ctx, id); err != nil {
		return err
	}
	if err := e.store.Investments().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	e.markDirty()
	return nil
}
