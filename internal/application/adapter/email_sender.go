package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
	// Category tags the message with the notification type, e.g. "family_invite".
	Category string
	// Reference identifies the record the message is about. Retries of the
	// same message carry the same reference.
	Reference string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// FamilyInvite describes an invitation sent to a new family member.
type FamilyInvite struct {
	MemberID    string
	OwnerName   string
	MemberName  string
	MemberEmail string
	Role        string
}

// InviteNotifier notifies invited family members.
type InviteNotifier interface {
	NotifyFamilyInvite(ctx context.Context, invite FamilyInvite) error
}
