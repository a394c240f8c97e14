package email

import (
	"errors"
	"testing"

	"github.com/finance-tracker/core/config"
	"github.com/finance-tracker/core/internal/application/adapter"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
	"github.com/finance-tracker/core/internal/integration/email/templates"
)

func TestResendClient_Request(t *testing.T) {
	client := NewResendClient(&config.EmailConfig{
		ResendAPIKey: "re_test",
		FromName:     "Finance Tracker",
		FromEmail:    "family@example.com",
		ReplyTo:      "support@example.com",
	})

	t.Run("invite carries category and reference", func(t *testing.T) {
		req := client.request(adapter.SendEmailInput{
			To:        "ana@example.com",
			Name:      "Ana",
			Subject:   "Invite",
			HTML:      "<p>hi</p>",
			Text:      "hi",
			Category:  templates.FamilyInvite,
			Reference: "member-1",
		})

		if req.From != `"Finance Tracker" <family@example.com>` {
			t.Errorf("unexpected from %q", req.From)
		}
		if len(req.To) != 1 || req.To[0] != `"Ana" <ana@example.com>` {
			t.Errorf("unexpected to %v", req.To)
		}
		if req.ReplyTo != "support@example.com" {
			t.Errorf("unexpected reply-to %q", req.ReplyTo)
		}
		if len(req.Tags) != 2 || req.Tags[1].Name != "category" || req.Tags[1].Value != templates.FamilyInvite {
			t.Errorf("unexpected tags %+v", req.Tags)
		}
		if req.Headers[referenceHeader] != "member-1" {
			t.Errorf("expected reference header, got %v", req.Headers)
		}
	})

	t.Run("bare address without category", func(t *testing.T) {
		req := client.request(adapter.SendEmailInput{To: "ana@example.com", Subject: "Hello"})

		if req.To[0] != "ana@example.com" {
			t.Errorf("unexpected to %v", req.To)
		}
		if len(req.Tags) != 1 || req.Tags[0].Value != appTag {
			t.Errorf("unexpected tags %+v", req.Tags)
		}
		if req.Headers != nil {
			t.Errorf("expected no headers, got %v", req.Headers)
		}
	})
}

func TestClassifySendError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode domainerror.EmailErrorCode
		wantIs   error
	}{
		{err: errors.New("401 unauthorized"), wantCode: domainerror.ErrCodePermanentEmailFailure, wantIs: domainerror.ErrPermanentEmailFailure},
		{err: errors.New("422 validation error"), wantCode: domainerror.ErrCodePermanentEmailFailure, wantIs: domainerror.ErrPermanentEmailFailure},
		{err: errors.New("429 too many requests"), wantCode: domainerror.ErrCodeTemporaryEmailFailure, wantIs: domainerror.ErrTemporaryEmailFailure},
		{err: errors.New("503 service unavailable"), wantCode: domainerror.ErrCodeTemporaryEmailFailure, wantIs: domainerror.ErrTemporaryEmailFailure},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			err := classifySendError(tt.err)

			var emailErr *domainerror.EmailError
			if !errors.As(err, &emailErr) {
				t.Fatalf("expected *EmailError, got %T", err)
			}
			if emailErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, emailErr.Code)
			}
			if !errors.Is(err, tt.wantIs) || !errors.Is(err, tt.err) {
				t.Errorf("expected %v to wrap %v and the cause", err, tt.wantIs)
			}
		})
	}
}
