// Package error defines domain-specific errors for the data engine.
package error

import "fmt"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the store.
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)

	// ErrSplitSumMismatch is returned when split amounts do not add up to the parent amount.
	ErrSplitSumMismatch = fmt.Errorf("%w: split amounts do not sum to transaction amount", ErrInvalidSplit)

	// ErrNoSplits is returned when a split request carries no splits.
	ErrNoSplits = fmt.Errorf("%w: at least one split is required", ErrInvalidSplit)

	// ErrSplitSignMismatch is returned when a split amount is zero or its sign differs from the parent.
	ErrSplitSignMismatch = fmt.Errorf("%w: split amount must be non-zero and share the transaction sign", ErrInvalidSplit)

	// ErrZeroAmountSplit is returned when splitting a transaction whose amount is zero.
	ErrZeroAmountSplit = fmt.Errorf("%w: cannot split a zero-amount transaction", ErrInvalidSplit)

	// ErrInvalidTransactionAmount is returned when the transaction amount is invalid.
	ErrInvalidTransactionAmount = fmt.Errorf("%w: invalid transaction amount", ErrValidation)

	// ErrInvalidTransactionDate is returned when the transaction date is missing.
	ErrInvalidTransactionDate = fmt.Errorf("%w: invalid transaction date", ErrValidation)

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = fmt.Errorf("%w: description too long", ErrValidation)
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeTxnAccountNotFound       TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotFound      TransactionErrorCode = "TXN-010006"

	// Split errors (02XXXX)
	ErrCodeNoSplits              TransactionErrorCode = "TXN-020001"
	ErrCodeSplitSumMismatch      TransactionErrorCode = "TXN-020002"
	ErrCodeSplitSignMismatch     TransactionErrorCode = "TXN-020003"
	ErrCodeZeroAmountSplit       TransactionErrorCode = "TXN-020004"
	ErrCodeSplitCategoryNotFound TransactionErrorCode = "TXN-020005"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
