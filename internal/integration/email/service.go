package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-tracker/core/internal/application/adapter"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
	"github.com/finance-tracker/core/internal/integration/email/templates"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 2 * time.Second
)

// Service renders invite templates and sends them, retrying temporary failures.
type Service struct {
	sender      adapter.EmailSender
	renderer    *templates.Renderer
	appBaseURL  string
	maxAttempts int
	retryDelay  time.Duration
}

// ServiceConfig holds retry configuration for the email service.
type ServiceConfig struct {
	MaxAttempts int
	RetryDelay  time.Duration
}

// DefaultServiceConfig returns the default retry configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxAttempts: defaultMaxAttempts,
		RetryDelay:  defaultRetryDelay,
	}
}

// NewService creates a new email service.
func NewService(sender adapter.EmailSender, renderer *templates.Renderer, appBaseURL string, config ServiceConfig) *Service {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaultMaxAttempts
	}
	return &Service{
		sender:      sender,
		renderer:    renderer,
		appBaseURL:  appBaseURL,
		maxAttempts: config.MaxAttempts,
		retryDelay:  config.RetryDelay,
	}
}

// NotifyFamilyInvite sends the family invite email.
func (s *Service) NotifyFamilyInvite(ctx context.Context, invite adapter.FamilyInvite) error {
	html, text, err := s.renderer.Render(templates.FamilyInvite, templates.FamilyInviteData{
		OwnerName:  invite.OwnerName,
		MemberName: invite.MemberName,
		Role:       invite.Role,
		AppURL:     s.appBaseURL,
	})
	if err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "failed to render invite", err)
	}

	subject := "You were added to a family plan - Finance Tracker"
	if invite.OwnerName != "" {
		subject = fmt.Sprintf("%s added you to their family plan - Finance Tracker", invite.OwnerName)
	}

	return s.send(ctx, adapter.SendEmailInput{
		To:        invite.MemberEmail,
		Name:      invite.MemberName,
		Subject:   subject,
		HTML:      html,
		Text:      text,
		Category:  templates.FamilyInvite,
		Reference: invite.MemberID,
	})
}

func (s *Service) send(ctx context.Context, input adapter.SendEmailInput) error {
	logger := slog.With("recipient", input.To)

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		result, err := s.sender.Send(ctx, input)
		if err == nil {
			logger.Info("Email sent successfully", "resendId", result.ResendID, "attempts", attempt)
			return nil
		}
		lastErr = err

		var emailErr *domainerror.EmailError
		if errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure {
			logger.Warn("Email permanently failed", "error", err)
			return err
		}

		if attempt == s.maxAttempts {
			break
		}
		logger.Info("Email scheduled for retry", "attempts", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay * time.Duration(attempt)):
		}
	}

	return fmt.Errorf("email not sent after %d attempts: %w", s.maxAttempts, lastErr)
}

// Ensure Service implements adapter.InviteNotifier.
var _ adapter.InviteNotifier = (*Service)(nil)
