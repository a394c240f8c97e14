// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the kind of financial account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeCash       AccountType = "cash"
	AccountTypeOther      AccountType = "other"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit,
		AccountTypeInvestment, AccountTypeCash, AccountTypeOther:
		return true
	}
	return false
}

// IsLiability reports whether balances of this type count against net worth.
func (t AccountType) IsLiability() bool {
	return t == AccountTypeCredit
}

// Account represents a user's financial account.
// Balance is tracked independently of the account's transactions.
type Account struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewAccount creates a new active Account entity.
func NewAccount(userID uuid.UUID, name string, accountType AccountType, balance decimal.Decimal) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      accountType,
		Balance:   balance,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
