// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// BankConnectionStatus is the aggregator-reported state of a bank link.
type BankConnectionStatus string

const (
	BankConnectionStatusActive        BankConnectionStatus = "active"
	BankConnectionStatusPending       BankConnectionStatus = "pending"
	BankConnectionStatusLoginRequired BankConnectionStatus = "login_required"
	BankConnectionStatusError         BankConnectionStatus = "error"
)

// BankConnection records a link to an institution through the bank aggregator.
// ItemID is the aggregator's identifier for the connection.
type BankConnection struct {
	ID              uuid.UUID            `json:"id"`
	UserID          uuid.UUID            `json:"userId"`
	ItemID          string               `json:"itemId"`
	InstitutionID   string               `json:"institutionId"`
	InstitutionName string               `json:"institutionName"`
	Status          BankConnectionStatus `json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// NewBankConnection creates a new BankConnection entity.
func NewBankConnection(userID uuid.UUID, itemID, institutionID, institutionName string, status BankConnectionStatus) *BankConnection {
	now := time.Now().UTC()

	return &BankConnection{
		ID:              uuid.New(),
		UserID:          userID,
		ItemID:          itemID,
		InstitutionID:   institutionID,
		InstitutionName: institutionName,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
