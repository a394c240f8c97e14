// Package error defines domain-specific errors for the data engine.
package error

import "fmt"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the store.
	ErrBudgetNotFound = fmt.Errorf("budget %w", ErrNotFound)

	// ErrInvalidBudgetAmount is returned when a budget limit is not positive.
	ErrInvalidBudgetAmount = fmt.Errorf("%w: budget amount must be greater than zero", ErrValidation)

	// ErrInvalidBudgetPeriod is returned when the budget period is unknown.
	ErrInvalidBudgetPeriod = fmt.Errorf("%w: invalid budget period", ErrValidation)
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	ErrCodeBudgetNotFound         BudgetErrorCode = "BDG-010001"
	ErrCodeInvalidBudgetAmount    BudgetErrorCode = "BDG-010002"
	ErrCodeInvalidBudgetPeriod    BudgetErrorCode = "BDG-010003"
	ErrCodeBudgetCategoryNotFound BudgetErrorCode = "BDG-010004"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
