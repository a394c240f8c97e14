// Package error defines domain-specific errors for the data engine.
package error

import "fmt"

// Family domain errors.
var (
	// ErrFamilyMemberNotFound is returned when a family member is not found in the store.
	ErrFamilyMemberNotFound = fmt.Errorf("family member %w", ErrNotFound)

	// ErrInvalidMemberEmail is returned when the invited email address is invalid.
	ErrInvalidMemberEmail = fmt.Errorf("%w: invalid email address", ErrValidation)

	// ErrInvalidMemberRole is returned when an invalid member role is provided.
	ErrInvalidMemberRole = fmt.Errorf("%w: invalid member role", ErrValidation)

	// ErrMemberAlreadyExists is returned when the email is already linked to the owner.
	ErrMemberAlreadyExists = fmt.Errorf("%w: member already exists for this email", ErrValidation)

	// ErrBankConnectionFailed is returned when the aggregator does not return a usable connection.
	ErrBankConnectionFailed = fmt.Errorf("%w: bank connection response missing item id", ErrValidation)
)

// FamilyErrorCode defines error codes for family and connection errors.
// Format: FAM-XXYYYY where XX is category and YYYY is specific error.
type FamilyErrorCode string

const (
	ErrCodeFamilyMemberNotFound FamilyErrorCode = "FAM-010001"
	ErrCodeInvalidMemberEmail   FamilyErrorCode = "FAM-010002"
	ErrCodeInvalidMemberRole    FamilyErrorCode = "FAM-010003"
	ErrCodeMemberAlreadyExists  FamilyErrorCode = "FAM-010004"
	ErrCodeBankConnectionFailed FamilyErrorCode = "FAM-020001"
)

// FamilyError represents a family or connection error with code and message.
type FamilyError struct {
	Code    FamilyErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FamilyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FamilyError) Unwrap() error {
	return e.Err
}

// NewFamilyError creates a new FamilyError with the given code and message.
func NewFamilyError(code FamilyErrorCode, message string, err error) *FamilyError {
	return &FamilyError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
