// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitTolerance is the maximum allowed difference between the sum of a
// transaction's splits and its original amount.
var SplitTolerance = decimal.New(1, -2)

// Transaction represents a financial transaction on an account.
// A parent transaction (IsParent) has its amount allocated across splits.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"` // Negative for expenses, positive for income
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty"`
	IsParent    bool            `json:"isParent"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewTransaction creates a new non-split Transaction entity.
func NewTransaction(
	accountID uuid.UUID,
	amount decimal.Decimal,
	description string,
	date time.Time,
	categoryID *uuid.UUID,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		Amount:      amount,
		Description: description,
		Date:        date,
		CategoryID:  categoryID,
		IsParent:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionSplit allocates part of a parent transaction to a category.
type TransactionSplit struct {
	ID            uuid.UUID       `json:"id"`
	TransactionID uuid.UUID       `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    uuid.UUID       `json:"categoryId"`
	Percentage    decimal.Decimal `json:"percentage"` // Amount / parent amount * 100
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewTransactionSplit creates a split of parent and caches its percentage.
// The parent amount must be non-zero.
func NewTransactionSplit(parent *Transaction, amount decimal.Decimal, categoryID uuid.UUID, description string) *TransactionSplit {
	now := time.Now().UTC()

	return &TransactionSplit{
		ID:            uuid.New(),
		TransactionID: parent.ID,
		Amount:        amount,
		CategoryID:    categoryID,
		Percentage:    amount.Div(parent.Amount).Mul(decimal.NewFromInt(100)),
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
