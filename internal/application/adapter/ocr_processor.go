package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLineItem is a single line read from a receipt.
type ReceiptLineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReceiptResult is what the OCR processor extracts from a receipt image.
type ReceiptResult struct {
	Merchant   string            `json:"merchant"`
	Amount     decimal.Decimal   `json:"amount"`
	Date       time.Time         `json:"date"`
	Confidence float64           `json:"confidence"`
	LineItems  []ReceiptLineItem `json:"lineItems,omitempty"`
}

// OCRProcessor defines the interface for receipt recognition.
type OCRProcessor interface {
	// ProcessReceipt extracts merchant, total and date from an image.
	ProcessReceipt(ctx context.Context, image []byte, mimeType string) (*ReceiptResult, error)

	// IsAvailable checks if the processor is properly configured.
	IsAvailable() bool
}
