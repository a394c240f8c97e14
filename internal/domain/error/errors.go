// Package error defines domain-specific errors for the data engine.
package error

import "errors"

// Error taxonomy roots. Entity-specific errors wrap one of these so callers
// can branch with errors.Is on the category alone.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSplit is returned when a split set violates the split invariant.
	ErrInvalidSplit = errors.New("invalid split")

	// ErrUpgradeRequired is returned when the subscription does not grant a feature.
	ErrUpgradeRequired = errors.New("upgrade required")

	// ErrIntegrity is returned when a backup snapshot fails checksum verification.
	ErrIntegrity = errors.New("integrity check failed")

	// ErrValidation is returned when input fails shape validation.
	ErrValidation = errors.New("validation failed")
)
