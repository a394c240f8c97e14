package email

import (
	"context"
	"fmt"

	"github.com/finance-tracker/core/internal/application/adapter"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

// mockSender records messages and fails on demand.
type mockSender struct {
	SentEmails []adapter.SendEmailInput
	Attempts   int
	failure    error
	permanent  bool
}

func newMockSender() *mockSender {
	return &mockSender{}
}

func (m *mockSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.Attempts++
	if m.failure != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if m.permanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "mock failure", m.failure)
	}

	m.SentEmails = append(m.SentEmails, input)
	return &adapter.SendEmailResult{ResendID: fmt.Sprintf("mock-%d", len(m.SentEmails))}, nil
}

// failWith makes every following Send fail with the matching email sentinel.
func (m *mockSender) failWith(permanent bool) {
	m.permanent = permanent
	m.failure = domainerror.ErrTemporaryEmailFailure
	if permanent {
		m.failure = domainerror.ErrPermanentEmailFailure
	}
}
