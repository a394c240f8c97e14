// Package error defines domain-specific errors for the data engine.
package error

import "fmt"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the store.
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)

	// ErrCategoryNameRequired is returned when a category has no name.
	ErrCategoryNameRequired = fmt.Errorf("%w: category name is required", ErrValidation)

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = fmt.Errorf("%w: category name too long", ErrValidation)

	// ErrInvalidColorFormat is returned when the category color format is invalid.
	ErrInvalidColorFormat = fmt.Errorf("%w: invalid color format", ErrValidation)

	// ErrInvalidCategoryType is returned when the category type is invalid.
	ErrInvalidCategoryType = fmt.Errorf("%w: invalid category type", ErrValidation)

	// ErrCategoryRuleNotFound is returned when a category rule is not found in the store.
	ErrCategoryRuleNotFound = fmt.Errorf("category rule %w", ErrNotFound)

	// ErrInvalidPattern is returned when a category rule pattern is not a valid regex.
	ErrInvalidPattern = fmt.Errorf("%w: invalid regex pattern", ErrValidation)
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidColorFormat    CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010004"
	ErrCodeInvalidCategoryType   CategoryErrorCode = "CAT-010007"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010008"

	// Rule errors (02XXXX)
	ErrCodeCategoryRuleNotFound CategoryErrorCode = "CAT-020001"
	ErrCodeInvalidPattern       CategoryErrorCode = "CAT-020002"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
