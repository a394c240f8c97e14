// Package subscription evaluates what a subscription tier and status allow.
package subscription

import (
	"fmt"
	"math"
	"time"

	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

// Unlimited marks a limit with no ceiling.
const Unlimited = -1

// Limits holds the numeric quotas of a tier.
type Limits struct {
	Accounts        int
	Users           int
	BankConnections int
	OCRPerMonth     int
}

var tierLimits = map[entity.SubscriptionTier]Limits{
	entity.TierFree:    {Accounts: 3, Users: 1, BankConnections: 0, OCRPerMonth: 0},
	entity.TierPlus:    {Accounts: 10, Users: 2, BankConnections: 0, OCRPerMonth: 50},
	entity.TierPremium: {Accounts: Unlimited, Users: 6, BankConnections: 10, OCRPerMonth: Unlimited},
}

// Manager is a pure capability evaluator over a subscription.
type Manager struct {
	tier      entity.SubscriptionTier
	status    entity.SubscriptionStatus
	expiresAt *time.Time
	now       func() time.Time
}

// NewManager creates a Manager for the given subscription.
func NewManager(sub entity.Subscription) *Manager {
	return &Manager{
		tier:      sub.Tier,
		status:    sub.Status,
		expiresAt: sub.ExpiresAt,
		now:       time.Now,
	}
}

// WithClock returns a copy of the manager that reads the current time from now.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	clone := *m
	clone.now = now
	return &clone
}

// Tier returns the subscription tier.
func (m *Manager) Tier() entity.SubscriptionTier {
	return m.tier
}

// IsActive reports whether paid features are currently usable.
// The free tier is always active.
func (m *Manager) IsActive() bool {
	if m.tier == entity.TierFree {
		return true
	}
	return m.status == entity.StatusActive || m.status == entity.StatusTrialing
}

func (m *Manager) tierIn(tiers ...entity.SubscriptionTier) bool {
	if !m.IsActive() {
		return false
	}
	for _, t := range tiers {
		if m.tier == t {
			return true
		}
	}
	return false
}

// CanUseMultiUser reports whether family members can be added (premium).
func (m *Manager) CanUseMultiUser() bool {
	return m.tierIn(entity.TierPremium)
}

// CanUseOCR reports whether receipt scanning is available (plus and premium).
func (m *Manager) CanUseOCR() bool {
	return m.tierIn(entity.TierPlus, entity.TierPremium)
}

// CanConnectBanks reports whether bank aggregation is available (premium).
func (m *Manager) CanConnectBanks() bool {
	return m.tierIn(entity.TierPremium)
}

// CanUseAutomation reports whether category rules run (plus and premium).
func (m *Manager) CanUseAutomation() bool {
	return m.tierIn(entity.TierPlus, entity.TierPremium)
}

// CanExportToQuickBooks reports whether QuickBooks export is available (premium).
func (m *Manager) CanExportToQuickBooks() bool {
	return m.tierIn(entity.TierPremium)
}

// CanUsePrioritySupport reports whether priority support is included (premium).
func (m *Manager) CanUsePrioritySupport() bool {
	return m.tierIn(entity.TierPremium)
}

// Limits returns the quota table for the tier. Unknown tiers get the free table.
func (m *Manager) Limits() Limits {
	if limits, ok := tierLimits[m.tier]; ok {
		return limits
	}
	return tierLimits[entity.TierFree]
}

// AccountLimit returns the maximum number of accounts, or Unlimited.
func (m *Manager) AccountLimit() int { return m.Limits().Accounts }

// UserLimit returns the maximum number of users including the owner.
func (m *Manager) UserLimit() int { return m.Limits().Users }

// BankConnectionLimit returns the maximum number of bank connections.
func (m *Manager) BankConnectionLimit() int { return m.Limits().BankConnections }

// OCRLimit returns the monthly receipt scan quota, or Unlimited.
func (m *Manager) OCRLimit() int { return m.Limits().OCRPerMonth }

// WithinLimit reports whether one more item fits under limit given the current count.
func WithinLimit(limit int, current int64) bool {
	return limit == Unlimited || current < int64(limit)
}

// DaysUntilExpiry returns the whole days left before expiry, rounded up.
// It returns nil when the subscription has no expiry.
func (m *Manager) DaysUntilExpiry() *int {
	if m.expiresAt == nil {
		return nil
	}
	days := int(math.Ceil(m.expiresAt.Sub(m.now()).Hours() / 24))
	return &days
}

// UpgradeMessage returns the prompt shown when feature is not available on the current tier.
func (m *Manager) UpgradeMessage(feature domainerror.Feature) string {
	if m.tier != entity.TierFree && !m.IsActive() {
		return "Your subscription is not active. Update your payment details to restore access to paid features."
	}

	switch feature {
	case domainerror.FeatureMultiUser:
		return "Family sharing is available on Premium. Upgrade to invite up to 5 family members."
	case domainerror.FeatureOCR:
		return "Receipt scanning is available on Plus and Premium. Upgrade to scan receipts automatically."
	case domainerror.FeatureBankConnections:
		return "Bank connections are available on Premium. Upgrade to sync transactions from your bank."
	case domainerror.FeatureAutomation:
		return "Automatic categorization rules are available on Plus and Premium. Upgrade to automate your categories."
	case domainerror.FeatureQuickBooks:
		return "QuickBooks export is available on Premium."
	case domainerror.FeaturePrioritySupport:
		return "Priority support is available on Premium."
	case domainerror.FeatureAccounts:
		if m.tier == entity.TierPlus {
			return "You have reached the 10 account limit of Plus. Upgrade to Premium for unlimited accounts."
		}
		return "You have reached the 3 account limit of the Free plan. Upgrade to Plus for up to 10 accounts."
	}
	return "This feature requires an upgraded subscription."
}

// Require returns an UpgradeRequiredError when allowed is false.
func (m *Manager) Require(feature domainerror.Feature, allowed bool) error {
	if allowed {
		return nil
	}
	return domainerror.NewUpgradeRequiredError(feature, m.UpgradeMessage(feature))
}

var limitNouns = map[domainerror.Feature]string{
	domainerror.FeatureMultiUser:       "user",
	domainerror.FeatureBankConnections: "bank connection",
	domainerror.FeatureOCR:             "receipt scan",
}

// RequireWithinLimit returns an UpgradeRequiredError when one more item would exceed limit.
func (m *Manager) RequireWithinLimit(feature domainerror.Feature, limit int, current int64) error {
	if WithinLimit(limit, current) {
		return nil
	}
	if feature == domainerror.FeatureAccounts {
		return domainerror.NewUpgradeRequiredError(feature, m.UpgradeMessage(feature))
	}

	noun, ok := limitNouns[feature]
	if !ok {
		noun = string(feature)
	}
	if limit != 1 {
		noun += "s"
	}
	return domainerror.NewUpgradeRequiredError(feature,
		fmt.Sprintf("You have reached the limit of %d %s on your %s plan.", limit, noun, m.tier))
}
