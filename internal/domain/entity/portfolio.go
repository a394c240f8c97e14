// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Portfolio groups investment holdings.
type Portfolio struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewPortfolio creates a new active Portfolio entity.
func NewPortfolio(userID uuid.UUID, name, description string) *Portfolio {
	now := time.Now().UTC()

	return &Portfolio{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Investment is a holding of a single symbol inside a portfolio.
// CostBasis is the total amount paid for the position.
type Investment struct {
	ID           uuid.UUID       `json:"id"`
	PortfolioID  uuid.UUID       `json:"portfolioId"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	CostBasis    decimal.Decimal `json:"costBasis"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// NewInvestment creates a new Investment entity.
func NewInvestment(portfolioID uuid.UUID, symbol, name string, quantity, costBasis, currentPrice decimal.Decimal) *Investment {
	now := time.Now().UTC()

	return &Investment{
		ID:           uuid.New(),
		PortfolioID:  portfolioID,
		Symbol:       symbol,
		Name:         name,
		Quantity:     quantity,
		CostBasis:    costBasis,
		CurrentPrice: currentPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// MarketValue returns quantity times current price.
func (i *Investment) MarketValue() decimal.Decimal {
	return i.Quantity.Mul(i.CurrentPrice)
}

// NetWorthSnapshot is an immutable point-in-time record of a user's net worth.
type NetWorthSnapshot struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"userId"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	Date             time.Time       `json:"date"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// NewNetWorthSnapshot creates a snapshot; NetWorth is derived from assets and liabilities.
func NewNetWorthSnapshot(userID uuid.UUID, assets, liabilities decimal.Decimal) *NetWorthSnapshot {
	now := time.Now().UTC()

	return &NetWorthSnapshot{
		ID:               uuid.New(),
		UserID:           userID,
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		NetWorth:         assets.Sub(liabilities),
		Date:             now,
		CreatedAt:        now,
	}
}
