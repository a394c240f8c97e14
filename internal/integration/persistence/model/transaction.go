package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"type:varchar(255);not null"`
	Date        time.Time       `gorm:"not null;index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	IsParent    bool            `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime:false"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		Description: m.Description,
		Date:        m.Date,
		CategoryID:  m.CategoryID,
		IsParent:    m.IsParent,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          transaction.ID,
		AccountID:   transaction.AccountID,
		Amount:      transaction.Amount,
		Description: transaction.Description,
		Date:        transaction.Date,
		CategoryID:  transaction.CategoryID,
		IsParent:    transaction.IsParent,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}
}

// TransactionSplitModel represents the transaction_splits table in the database.
type TransactionSplitModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Percentage    decimal.Decimal `gorm:"type:decimal(9,4);not null"`
	Description   string          `gorm:"type:varchar(255)"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime:false"`
}

// TableName returns the table name for the TransactionSplitModel.
func (TransactionSplitModel) TableName() string {
	return "transaction_splits"
}

// ToEntity converts a TransactionSplitModel to a domain TransactionSplit entity.
func (m *TransactionSplitModel) ToEntity() *entity.TransactionSplit {
	return &entity.TransactionSplit{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		CategoryID:    m.CategoryID,
		Percentage:    m.Percentage,
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// TransactionSplitFromEntity creates a TransactionSplitModel from a domain TransactionSplit entity.
func TransactionSplitFromEntity(split *entity.TransactionSplit) *TransactionSplitModel {
	return &TransactionSplitModel{
		ID:            split.ID,
		TransactionID: split.TransactionID,
		Amount:        split.Amount,
		CategoryID:    split.CategoryID,
		Percentage:    split.Percentage,
		Description:   split.Description,
		CreatedAt:     split.CreatedAt,
		UpdatedAt:     split.UpdatedAt,
	}
}
