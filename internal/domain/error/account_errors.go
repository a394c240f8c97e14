// Package error defines domain-specific errors for the data engine.
package error

import "fmt"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found in the store.
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)

	// ErrInvalidAccountType is returned when the account type is unknown.
	ErrInvalidAccountType = fmt.Errorf("%w: invalid account type", ErrValidation)

	// ErrAccountNameRequired is returned when an account has no name.
	ErrAccountNameRequired = fmt.Errorf("%w: account name is required", ErrValidation)
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	ErrCodeAccountNotFound     AccountErrorCode = "ACC-010001"
	ErrCodeInvalidAccountType  AccountErrorCode = "ACC-010002"
	ErrCodeAccountNameRequired AccountErrorCode = "ACC-010003"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
