// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// SubscriptionTier is the subscription level controlling feature access.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPlus    SubscriptionTier = "plus"
	TierPremium SubscriptionTier = "premium"
)

// SubscriptionStatus is the billing state reported by the payment provider.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusCanceled SubscriptionStatus = "canceled"
	StatusPastDue  SubscriptionStatus = "past_due"
	StatusTrialing SubscriptionStatus = "trialing"
)

// Subscription is the user's current plan. ExpiresAt is nil for the free tier.
type Subscription struct {
	Tier      SubscriptionTier
	Status    SubscriptionStatus
	ExpiresAt *time.Time
}
