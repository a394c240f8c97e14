package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/domain/entity"
)

// PortfolioModel represents the portfolios table in the database.
type PortfolioModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName returns the table name for the PortfolioModel.
func (PortfolioModel) TableName() string {
	return "portfolios"
}

// ToEntity converts a PortfolioModel to a domain Portfolio entity.
func (m *PortfolioModel) ToEntity() *entity.Portfolio {
	return &entity.Portfolio{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// PortfolioFromEntity creates a PortfolioModel from a domain Portfolio entity.
func PortfolioFromEntity(portfolio *entity.Portfolio) *PortfolioModel {
	return &PortfolioModel{
		ID:          portfolio.ID,
		UserID:      portfolio.UserID,
		Name:        portfolio.Name,
		Description: portfolio.Description,
		IsActive:    portfolio.IsActive,
		CreatedAt:   portfolio.CreatedAt,
		UpdatedAt:   portfolio.UpdatedAt,
	}
}

// InvestmentModel represents the investments table in the database.
type InvestmentModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PortfolioID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Symbol       string          `gorm:"type:varchar(20);not null"`
	Name         string          `gorm:"type:varchar(100)"`
	Quantity     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	CostBasis    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentPrice decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime:false"`
}

// TableName returns the table name for the InvestmentModel.
func (InvestmentModel) TableName() string {
	return "investments"
}

// ToEntity converts an InvestmentModel to a domain Investment entity.
func (m *InvestmentModel) ToEntity() *entity.Investment {
	return &entity.Investment{
		ID:           m.ID,
		PortfolioID:  m.PortfolioID,
		Symbol:       m.Symbol,
		Name:         m.Name,
		Quantity:     m.Quantity,
		CostBasis:    m.CostBasis,
		CurrentPrice: m.CurrentPrice,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// InvestmentFromEntity creates an InvestmentModel from a domain Investment entity.
func InvestmentFromEntity(investment *entity.Investment) *InvestmentModel {
	return &InvestmentModel{
		ID:           investment.ID,
		PortfolioID:  investment.PortfolioID,
		Symbol:       investment.Symbol,
		Name:         investment.Name,
		Quantity:     investment.Quantity,
		CostBasis:    investment.CostBasis,
		CurrentPrice: investment.CurrentPrice,
		CreatedAt:    investment.CreatedAt,
		UpdatedAt:    investment.UpdatedAt,
	}
}

// NetWorthSnapshotModel represents the net_worth_snapshots table. Rows are append-only.
type NetWorthSnapshotModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAssets      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalLiabilities decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NetWorth         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date             time.Time       `gorm:"not null;index"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime:false"`
}

// TableName returns the table name for the NetWorthSnapshotModel.
func (NetWorthSnapshotModel) TableName() string {
	return "net_worth_snapshots"
}

// ToEntity converts a NetWorthSnapshotModel to a domain NetWorthSnapshot entity.
func (m *NetWorthSnapshotModel) ToEntity() *entity.NetWorthSnapshot {
	return &entity.NetWorthSnapshot{
		ID:               m.ID,
		UserID:           m.UserID,
		TotalAssets:      m.TotalAssets,
		TotalLiabilities: m.TotalLiabilities,
		NetWorth:         m.NetWorth,
		Date:             m.Date,
		CreatedAt:        m.CreatedAt,
	}
}

// NetWorthSnapshotFromEntity creates a NetWorthSnapshotModel from a domain NetWorthSnapshot entity.
func NetWorthSnapshotFromEntity(snapshot *entity.NetWorthSnapshot) *NetWorthSnapshotModel {
	return &NetWorthSnapshotModel{
		ID:               snapshot.ID,
		UserID:           snapshot.UserID,
		TotalAssets:      snapshot.TotalAssets,
		TotalLiabilities: snapshot.TotalLiabilities,
		NetWorth:         snapshot.NetWorth,
		Date:             snapshot.Date,
		CreatedAt:        snapshot.CreatedAt,
	}
}
