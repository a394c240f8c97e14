package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

// ProcessReceiptOCR extracts receipt data from an image. Requires OCR on the tier.
func (e *Engine) ProcessReceiptOCR(ctx context.Context, image []byte, mimeType string) (*adapter.ReceiptResult, error) {
	if err := e.subscription.Require(domainerror.FeatureOCR, e.subscription.CanUseOCR()); err != nil {
		return nil, err
	}
	if e.ocr == nil || !e.ocr.IsAvailable() {
		return nil, ErrOCRUnavailable
	}

	result, err := e.ocr.ProcessReceipt(ctx, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to process receipt: %w", err)
	}
	return result, nil
}

// ConnectBankAccount links an institution through the bank aggregator and
// records the connection. Requires bank connections on the tier and a free slot.
func (e *Engine) ConnectBankAccount(ctx context.Context, institutionID, publicToken string) (*entity.BankConnection, error) {
	if err := e.subscription.Require(domainerror.FeatureBankConnections, e.subscription.CanConnectBanks()); err != nil {
		return nil, err
	}

	count, err := e.store.BankConnections().CountByUser(ctx, e.session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bank connections: %w", err)
	}
	if err := e.subscription.RequireWithinLimit(domainerror.FeatureBankConnections, e.subscription.BankConnectionLimit(), count); err != nil {
		return nil, err
	}
	if e.banks == nil {
		return nil, ErrBankConnectorUnavailable
	}

	result, err := e.banks.Connect(ctx, adapter.BankConnectRequest{
		UserID:        e.session.UserID,
		InstitutionID: institutionID,
		PublicToken:   publicToken,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect bank account: %w", err)
	}
	if result == nil || result.ItemID == "" {
		return nil, domainerror.NewFamilyError(
			domainerror.ErrCodeBankConnectionFailed,
			"bank connector returned no item id",
			domainerror.ErrBankConnectionFailed,
		)
	}

	connection := entity.NewBankConnection(
		e.session.UserID,
		result.ItemID,
		institutionID,
		result.InstitutionName,
		bankStatus(result.Status),
	)
	e.stamp(&connection.CreatedAt, &connection.UpdatedAt)
	if err := e.store.BankConnections().Create(ctx, connection); err != nil {
		return nil, fmt.Errorf("failed to save bank connection: %w", err)
	}

	slog.Info("Bank account connected",
		"userID", e.session.UserID,
		"institutionID", institutionID,
		"status", connection.Status,
	)

	e.markDirty()
	return connection, nil
}

func bankStatus(status string) entity.BankConnectionStatus {
	switch entity.BankConnectionStatus(strings.ToLower(status)) {
	case entity.BankConnectionStatusActive, "":
		return entity.BankConnectionStatusActive
	case entity.BankConnectionStatusPending:
		return entity.BankConnectionStatusPending
	case entity.BankConnectionStatusLoginRequired:
		return entity.BankConnectionStatusLoginRequired
	}
	return entity.BankConnectionStatusError
}

// ListBankConnections returns the session user's bank connections.
func (e *Engine) ListBankConnections(ctx context.Context) ([]*entity.BankConnection, error) {
	return e.store.BankConnections().FindByUser(ctx, e.session.UserID)
}

// AddFamilyMemberInput represents an invitation to share the dataset.
type AddFamilyMemberInput struct {
	Email     string
	Name      string
	Role      entity.MemberRole
	OwnerName string // Used in the invite email
}

// AddFamilyMember invites someone to the session user's dataset. Requires
// multi-user on the tier; the owner counts toward the user limit.
// The invite email is best effort.
func (e *Engine) AddFamilyMember(ctx context.Context, input AddFamilyMemberInput) (*entity.FamilyMember, error) {
	if err := e.subscription.Require(domainerror.FeatureMultiUser, e.subscription.CanUseMultiUser()); err != nil {
		return nil, err
	}

	address, err := mail.ParseAddress(strings.TrimSpace(input.Email))
	if err != nil {
		return nil, domainerror.NewFamilyError(
			domainerror.ErrCodeInvalidMemberEmail,
			"invalid email address",
			domainerror.ErrInvalidMemberEmail,
		)
	}
	email := strings.ToLower(address.Address)

	role := input.Role
	if role == "" {
		role = entity.MemberRoleMember
	}
	if !role.IsValid() {
		return nil, domainerror.NewFamilyError(
			domainerror.ErrCodeInvalidMemberRole,
			"role must be 'admin', 'member' or 'viewer'",
			domainerror.ErrInvalidMemberRole,
		)
	}

	active, err := e.store.FamilyMembers().CountActiveByOwner(ctx, e.session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count family members: %w", err)
	}
	if err := e.subscription.RequireWithinLimit(domainerror.FeatureMultiUser, e.subscription.UserLimit(), active+1); err != nil {
		return nil, err
	}

	existing, err := e.store.FamilyMembers().FindByOwnerAndEmail(ctx, e.session.UserID, email)
	if err != nil && !errors.Is(err, domainerror.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing member: %w", err)
	}
	if existing != nil && existing.Status != entity.MemberStatusRemoved {
		return nil, domainerror.NewFamilyError(
			domainerror.ErrCodeMemberAlreadyExists,
			"a member with this email already exists",
			domainerror.ErrMemberAlreadyExists,
		)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = address.Name
	}

	member := entity.NewFamilyMember(e.session.UserID, email, name, role)
	e.stamp(&member.CreatedAt, &member.UpdatedAt)
	if err := e.store.FamilyMembers().Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to save family member: %w", err)
	}
	e.markDirty()

	if e.notifier != nil {
		err := e.notifier.NotifyFamilyInvite(ctx, adapter.FamilyInvite{
			MemberID:    member.ID.String(),
			OwnerName:   input.OwnerName,
			MemberName:  member.Name,
			MemberEmail: member.Email,
			Role:        string(member.Role),
		})
		if err != nil {
			slog.Warn("Failed to send family invite",
				"userID", e.session.UserID,
				"memberID", member.ID,
				"error", err,
			)
		}
	}

	return member, nil
}

// ListFamilyMembers returns everyone invited to the session user's dataset.
func (e *Engine) ListFamilyMembers(ctx context.Context) ([]*entity.FamilyMember, error) {
	return e.store.FamilyMembers().FindByOwner(ctx, e.session.UserID)
}

// CreateCategoryRuleInput represents the input for an auto-categorization rule.
type CreateCategoryRuleInput struct {
	Pattern    string
	CategoryID uuid.UUID
	Priority   int
}

// CreateCategoryRule adds an auto-categorization rule. Requires automation on the tier.
func (e *Engine) CreateCategoryRule(ctx context.Context, input CreateCategoryRuleInput) (*entity.CategoryRule, error) {
	if err := e.subscription.Require(domainerror.FeatureAutomation, e.subscription.CanUseAutomation()); err != nil {
		return nil, err
	}

	pattern := strings.TrimSpace(input.Pattern)
	if _, err := regexp.Compile("(?i)" + pattern); pattern == "" || err != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidPattern,
			"pattern must be a valid regular expression",
			domainerror.ErrInvalidPattern,
		)
	}
	if _, err := e.getCategory(ctx, e.store, input.CategoryID); err != nil {
		return nil, err
	}

	rule := entity.NewCategoryRule(e.session.UserID, pattern, input.CategoryID, input.Priority)
	e.stamp(&rule.CreatedAt, &rule.UpdatedAt)
	if err := e.store.CategoryRules().Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create category rule: %w", err)
	}

	e.markDirty()
	return rule, nil
}

const (
	// DefaultMatchLimit is the default number of matching transactions to return.
	DefaultMatchLimit = 10
	// MaxMatchLimit is the maximum number of matching transactions to return.
	MaxMatchLimit = 100
)

// PatternMatches is the preview of a rule pattern against existing transactions.
type PatternMatches struct {
	Transactions []*entity.Transaction
	MatchCount   int
}

// TestCategoryPattern previews which of the user's transactions a rule pattern
// would match, newest first. MatchCount counts every match, not only the returned ones.
func (e *Engine) TestCategoryPattern(ctx context.Context, pattern string, limit int) (*PatternMatches, error) {
	pattern = strings.TrimSpace(pattern)
	re, err := regexp.Compile("(?i)" + pattern)
	if pattern == "" || err != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidPattern,
			"pattern must be a valid regular expression",
			domainerror.ErrInvalidPattern,
		)
	}

	if limit <= 0 {
		limit = DefaultMatchLimit
	} else if limit > MaxMatchLimit {
		limit = MaxMatchLimit
	}

	transactions, err := e.GetTransactions(ctx, adapter.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	result := &PatternMatches{Transactions: make([]*entity.Transaction, 0, limit)}
	for _, transaction := range transactions {
		if !re.MatchString(transaction.Description) {
			continue
		}
		result.MatchCount++
		if len(result.Transactions) < limit {
			result.Transactions = append(result.Transactions, transaction)
		}
	}
	return result, nil
}

// ListCategoryRules returns the active rules, highest priority first.
func (e *Engine) ListCategoryRules(ctx context.Context) ([]*entity.CategoryRule, error) {
	return e.store.CategoryRules().FindActiveByUser(ctx, e.session.UserID)
}

// DeleteCategoryRule removes a rule.
func (e *Engine) DeleteCategoryRule(ctx context.Context, id uuid.UUID) error {
	rule, err := e.store.CategoryRules().FindByID(ctx, id)
	if err != nil && !errors.Is(err, domainerror.ErrNotFound) {
		return err
	}
	if err != nil || rule.UserID != e.session.UserID {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryRuleNotFound,
			"category rule not found",
			domainerror.ErrCategoryRuleNotFound,
		)
	}

	if err := e.store.CategoryRules().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category rule: %w", err)
	}

	e.markDirty()
	return nil
}
