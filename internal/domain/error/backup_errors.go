// Package error defines domain-specific errors for the data engine.
package error

import (
	"errors"
	"fmt"
)

// Backup domain errors.
var (
	// ErrChecksumMismatch is returned when a restored payload does not match its checksum.
	ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", ErrIntegrity)

	// ErrMalformedSnapshot is returned when a snapshot cannot be decoded.
	ErrMalformedSnapshot = fmt.Errorf("%w: malformed snapshot", ErrIntegrity)

	// ErrBackupUploadFailed is returned when the remote store rejects a snapshot.
	ErrBackupUploadFailed = errors.New("backup upload failed")

	// ErrBackupDownloadFailed is returned when the remote store cannot serve a snapshot.
	ErrBackupDownloadFailed = errors.New("backup download failed")
)

// BackupErrorCode defines error codes for backup errors.
// Format: BAK-XXYYYY where XX is category and YYYY is specific error.
type BackupErrorCode string

const (
	// Integrity errors (01XXXX)
	ErrCodeChecksumMismatch  BackupErrorCode = "BAK-010001"
	ErrCodeMalformedSnapshot BackupErrorCode = "BAK-010002"

	// Transport errors (02XXXX)
	ErrCodeUploadFailed   BackupErrorCode = "BAK-020001"
	ErrCodeDownloadFailed BackupErrorCode = "BAK-020002"
)

// BackupError represents a backup error with code and message.
type BackupError struct {
	Code    BackupErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BackupError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BackupError) Unwrap() error {
	return e.Err
}

// NewBackupError creates a new BackupError with the given code and message.
func NewBackupError(code BackupErrorCode, message string, err error) *BackupError {
	return &BackupError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
