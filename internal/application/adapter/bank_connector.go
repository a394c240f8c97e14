package adapter

import (
	"context"

	"github.com/google/uuid"
)

// BankConnectRequest carries the data needed to link an institution.
type BankConnectRequest struct {
	UserID        uuid.UUID
	InstitutionID string
	PublicToken   string
}

// BankConnectResult is the aggregator's answer, keyed by the institution item id.
type BankConnectResult struct {
	ItemID          string
	InstitutionName string
	Status          string
}

// BankConnector defines the interface for the bank-aggregation service.
type BankConnector interface {
	Connect(ctx context.Context, request BankConnectRequest) (*BankConnectResult, error)
}
