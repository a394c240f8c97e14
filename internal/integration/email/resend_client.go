// Package email delivers family notifications through Resend.
package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/finance-tracker/core/config"
	"github.com/finance-tracker/core/internal/application/adapter"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

const (
	appTag = "finance-tracker"
	// Resend threads messages sharing this header; a distinct value per
	// invite keeps re-invites from collapsing into one conversation.
	referenceHeader = "X-Entity-Ref-ID"
)

// ResendClient sends notification emails through the Resend API.
type ResendClient struct {
	client  *resend.Client
	from    string
	replyTo string
}

// NewResendClient builds a client from the email configuration.
func NewResendClient(cfg *config.EmailConfig) *ResendClient {
	from := (&mail.Address{Name: cfg.FromName, Address: cfg.FromEmail}).String()
	return &ResendClient{
		client:  resend.NewClient(cfg.ResendAPIKey),
		from:    from,
		replyTo: cfg.ReplyTo,
	}
}

// Send delivers one message. Failures are classified as permanent or
// temporary so the caller knows whether to retry.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	resp, err := c.client.Emails.SendWithContext(ctx, c.request(input))
	if err != nil {
		return nil, classifySendError(err)
	}
	return &adapter.SendEmailResult{ResendID: resp.Id}, nil
}

func (c *ResendClient) request(input adapter.SendEmailInput) *resend.SendEmailRequest {
	to := input.To
	if input.Name != "" {
		to = (&mail.Address{Name: input.Name, Address: input.To}).String()
	}

	req := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		ReplyTo: c.replyTo,
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
		Tags:    []resend.Tag{{Name: "app", Value: appTag}},
	}
	if input.Category != "" {
		req.Tags = append(req.Tags, resend.Tag{Name: "category", Value: input.Category})
	}
	if input.Reference != "" {
		req.Headers = map[string]string{referenceHeader: input.Reference}
	}
	return req
}

// Resend reports status codes only inside the error text.
var permanentMarkers = []string{
	"401", "403", "422",
	"unauthorized", "forbidden", "validation", "invalid", "bad request",
}

func classifySendError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, marker := range permanentMarkers {
		if strings.Contains(msg, marker) {
			return domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"invite email rejected",
				fmt.Errorf("%w: %w", domainerror.ErrPermanentEmailFailure, err),
			)
		}
	}
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure,
		"invite email delivery failed",
		fmt.Errorf("%w: %w", domainerror.ErrTemporaryEmailFailure, err),
	)
}

var _ adapter.EmailSender = (*ResendClient)(nil)
