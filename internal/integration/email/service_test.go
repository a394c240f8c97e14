package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/finance-tracker/core/internal/application/adapter"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
	"github.com/finance-tracker/core/internal/integration/email/templates"
)

func newTestService(t *testing.T, sender adapter.EmailSender) *Service {
	t.Helper()

	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return NewService(sender, renderer, "https://app.example.com", ServiceConfig{MaxAttempts: 3})
}

func TestService_NotifyFamilyInvite(t *testing.T) {
	sender := newMockSender()
	service := newTestService(t, sender)

	err := service.NotifyFamilyInvite(context.Background(), adapter.FamilyInvite{
		MemberID:    "member-1",
		OwnerName:   "Maria",
		MemberName:  "Ana",
		MemberEmail: "ana@example.com",
		Role:        "viewer",
	})
	if err != nil {
		t.Fatalf("NotifyFamilyInvite() error = %v", err)
	}

	if len(sender.SentEmails) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.SentEmails))
	}
	sent := sender.SentEmails[0]
	if sent.To != "ana@example.com" || sent.Name != "Ana" {
		t.Errorf("unexpected recipient: %+v", sent)
	}
	if sent.Category != templates.FamilyInvite || sent.Reference != "member-1" {
		t.Errorf("expected invite category and member reference, got %q %q", sent.Category, sent.Reference)
	}
	if !strings.HasPrefix(sent.Subject, "Maria added you") {
		t.Errorf("unexpected subject %q", sent.Subject)
	}
	for _, want := range []string{"Hi Ana", "viewer", "https://app.example.com"} {
		if !strings.Contains(sent.HTML, want) {
			t.Errorf("expected HTML to contain %q", want)
		}
		if !strings.Contains(sent.Text, want) {
			t.Errorf("expected text to contain %q", want)
		}
	}
}

func TestService_NotifyFamilyInvite_Failures(t *testing.T) {
	tests := []struct {
		name         string
		permanent    bool
		wantAttempts int
		wantSentinel error
	}{
		{name: "permanent failure is not retried", permanent: true, wantAttempts: 1, wantSentinel: domainerror.ErrPermanentEmailFailure},
		{name: "temporary failure is retried", permanent: false, wantAttempts: 3, wantSentinel: domainerror.ErrTemporaryEmailFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := newMockSender()
			sender.failWith(tt.permanent)
			service := newTestService(t, sender)

			err := service.NotifyFamilyInvite(context.Background(), adapter.FamilyInvite{MemberEmail: "ana@example.com", Role: "member"})
			if !errors.Is(err, tt.wantSentinel) {
				t.Errorf("expected %v, got %v", tt.wantSentinel, err)
			}
			if sender.Attempts != tt.wantAttempts {
				t.Errorf("expected %d attempts, got %d", tt.wantAttempts, sender.Attempts)
			}
			if len(sender.SentEmails) != 0 {
				t.Error("expected no email to be recorded as sent")
			}
		})
	}
}

func TestService_CancelledContextStopsRetry(t *testing.T) {
	sender := newMockSender()
	sender.failWith(false)
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	service := NewService(sender, renderer, "", DefaultServiceConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = service.NotifyFamilyInvite(ctx, adapter.FamilyInvite{MemberEmail: "ana@example.com", Role: "member"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if sender.Attempts != 1 {
		t.Errorf("expected a single attempt, got %d", sender.Attempts)
	}
}
