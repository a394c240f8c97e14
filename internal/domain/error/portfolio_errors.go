// Package error defines domain-specific errors for the data engine.
package error

import "fmt"

// Portfolio domain errors.
var (
	// ErrPortfolioNotFound is returned when a portfolio is not found in the store.
	ErrPortfolioNotFound = fmt.Errorf("portfolio %w", ErrNotFound)

	// ErrInvestmentNotFound is returned when an investment is not found in the store.
	ErrInvestmentNotFound = fmt.Errorf("investment %w", ErrNotFound)

	// ErrInvalidSymbol is returned when an investment has no symbol.
	ErrInvalidSymbol = fmt.Errorf("%w: symbol is required", ErrValidation)

	// ErrInvalidQuantity is returned when an investment quantity is negative.
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must not be negative", ErrValidation)

	// ErrPortfolioNameRequired is returned when a portfolio has no name.
	ErrPortfolioNameRequired = fmt.Errorf("%w: portfolio name is required", ErrValidation)
)

// PortfolioErrorCode defines error codes for portfolio errors.
// Format: PRT-XXYYYY where XX is category and YYYY is specific error.
type PortfolioErrorCode string

const (
	ErrCodePortfolioNotFound  PortfolioErrorCode = "PRT-010001"
	ErrCodeInvestmentNotFound PortfolioErrorCode = "PRT-010002"
	ErrCodeInvalidSymbol      PortfolioErrorCode = "PRT-010003"
	ErrCodeInvalidQuantity    PortfolioErrorCode = "PRT-010004"
	ErrCodePortfolioNameReq   PortfolioErrorCode = "PRT-010005"
)

// PortfolioError represents a portfolio error with code and message.
type PortfolioError struct {
	Code    PortfolioErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PortfolioError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PortfolioError) Unwrap() error {
	return e.Err
}

// NewPortfolioError creates a new PortfolioError with the given code and message.
func NewPortfolioError(code PortfolioErrorCode, message string, err error) *PortfolioError {
	return &PortfolioError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
