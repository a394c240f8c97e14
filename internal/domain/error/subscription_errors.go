// Package error defines domain-specific errors for the data engine.
package error

// Feature identifies a subscription-gated capability.
type Feature string

const (
	FeatureMultiUser       Feature = "multi_user"
	FeatureOCR             Feature = "ocr"
	FeatureBankConnections Feature = "bank_connections"
	FeatureAutomation      Feature = "automation"
	FeatureQuickBooks      Feature = "quickbooks_export"
	FeaturePrioritySupport Feature = "priority_support"
	FeatureAccounts        Feature = "accounts"
)

// UpgradeRequiredError is returned when the current subscription does not
// grant a feature or its limit is exhausted. Message is a human-readable
// upgrade prompt suitable for display.
type UpgradeRequiredError struct {
	Feature Feature
	Message string
}

// Error implements the error interface.
func (e *UpgradeRequiredError) Error() string {
	return e.Message
}

// Is matches ErrUpgradeRequired.
func (e *UpgradeRequiredError) Is(target error) bool {
	return target == ErrUpgradeRequired
}

// NewUpgradeRequiredError creates a new UpgradeRequiredError for feature.
func NewUpgradeRequiredError(feature Feature, message string) *UpgradeRequiredError {
	return &UpgradeRequiredError{
		Feature: feature,
		Message: message,
	}
}
