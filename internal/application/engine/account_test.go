package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

func TestCreateAccount_Validation(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()

	tests := []struct {
		name     string
		input    CreateAccountInput
		wantCode domainerror.AccountErrorCode
	}{
		{
			name:     "empty name",
			input:    CreateAccountInput{Name: "   ", Type: entity.AccountTypeChecking},
			wantCode: domainerror.ErrCodeAccountNameRequired,
		},
		{
			name:     "unknown type",
			input:    CreateAccountInput{Name: "Wallet", Type: "brokerage"},
			wantCode: domainerror.ErrCodeInvalidAccountType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.CreateAccount(ctx, tt.input)

			var accountErr *domainerror.AccountError
			if !errors.As(err, &accountErr) {
				t.Fatalf("expected AccountError, got %v", err)
			}
			if accountErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, accountErr.Code)
			}
			if !errors.Is(err, domainerror.ErrValidation) {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestCreateAccount_FreeTierLimit(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()

	for _, name := range []string{"Checking", "Savings", "Cash"} {
		mustAccount(t, e, name, entity.AccountTypeChecking, "0")
	}

	_, err := e.CreateAccount(ctx, CreateAccountInput{Name: "Fourth", Type: entity.AccountTypeOther})
	if !errors.Is(err, domainerror.ErrUpgradeRequired) {
		t.Fatalf("expected upgrade required, got %v", err)
	}

	var upgradeErr *domainerror.UpgradeRequiredError
	if !errors.As(err, &upgradeErr) {
		t.Fatalf("expected UpgradeRequiredError, got %T", err)
	}
	if upgradeErr.Feature != domainerror.FeatureAccounts {
		t.Errorf("expected feature %s, got %s", domainerror.FeatureAccounts, upgradeErr.Feature)
	}
	if upgradeErr.Message == "" {
		t.Error("expected an upgrade message")
	}

	t.Run("deactivated accounts free a slot", func(t *testing.T) {
		accounts, err := e.ListAccounts(ctx, false)
		if err != nil {
			t.Fatalf("ListAccounts() error = %v", err)
		}
		inactive := false
		if _, err := e.UpdateAccount(ctx, accounts[0].ID, UpdateAccountInput{IsActive: &inactive}); err != nil {
			t.Fatalf("UpdateAccount() error = %v", err)
		}

		if _, err := e.CreateAccount(ctx, CreateAccountInput{Name: "Fourth", Type: entity.AccountTypeOther}); err != nil {
			t.Errorf("expected account creation to succeed, got %v", err)
		}
	})
}

func TestCreateAccount_PremiumUnlimited(t *testing.T) {
	e := newTestEngine(t, entity.TierPremium)

	for i := 0; i < 12; i++ {
		mustAccount(t, e, "Account", entity.AccountTypeChecking, "0")
	}
}

func TestGetAccount_Ownership(t *testing.T) {
	store := newTestStore(t)
	owner := newTestEngineWithStore(t, store, uuid.New(), entity.TierFree, nil)
	other := newTestEngineWithStore(t, store, uuid.New(), entity.TierFree, nil)
	ctx := context.Background()

	account := mustAccount(t, owner, "Checking", entity.AccountTypeChecking, "10")

	if _, err := owner.GetAccount(ctx, account.ID); err != nil {
		t.Fatalf("owner GetAccount() error = %v", err)
	}

	_, err := other.GetAccount(ctx, account.ID)
	if !errors.Is(err, domainerror.ErrNotFound) {
		t.Errorf("expected not found for another user, got %v", err)
	}

	_, err = owner.GetAccount(ctx, uuid.New())
	if !errors.Is(err, domainerror.ErrAccountNotFound) {
		t.Errorf("expected account not found, got %v", err)
	}
}

func TestUpdateAccount_MergesPartialInput(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()
	account := mustAccount(t, e, "Checking", entity.AccountTypeChecking, "10")

	balance := decimal.NewFromInt(250)
	updated, err := e.UpdateAccount(ctx, account.ID, UpdateAccountInput{Balance: &balance})
	if err != nil {
		t.Fatalf("UpdateAccount() error = %v", err)
	}

	if updated.Name != "Checking" {
		t.Errorf("expected name to be preserved, got %s", updated.Name)
	}

	stored, err := e.GetAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetAccount() error = %v", err)
	}
	if !stored.Balance.Equal(balance) {
		t.Errorf("expected balance %s, got %s", balance, stored.Balance)
	}
	if stored.Type != entity.AccountTypeChecking {
		t.Errorf("expected type to be preserved, got %s", stored.Type)
	}
}

func TestDeleteAccount(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()

	t.Run("account without transactions is removed", func(t *testing.T) {
		account := mustAccount(t, e, "Empty", entity.AccountTypeCash, "0")

		mode, err := e.DeleteAccount(ctx, account.ID)
		if err != nil {
			t.Fatalf("DeleteAccount() error = %v", err)
		}
		if mode != DeleteModeHard {
			t.Errorf("expected hard delete, got %s", mode)
		}
		if _, err := e.GetAccount(ctx, account.ID); !errors.Is(err, domainerror.ErrNotFound) {
			t.Errorf("expected account to be gone, got %v", err)
		}
	})

	t.Run("account with transactions is deactivated", func(t *testing.T) {
		account := mustAccount(t, e, "Used", entity.AccountTypeChecking, "100")
		mustTransaction(t, e, account.ID, "-12.50", "Lunch", fixedNow, nil)

		mode, err := e.DeleteAccount(ctx, account.ID)
		if err != nil {
			t.Fatalf("DeleteAccount() error = %v", err)
		}
		if mode != DeleteModeSoft {
			t.Errorf("expected soft delete, got %s", mode)
		}

		stored, err := e.GetAccount(ctx, account.ID)
		if err != nil {
			t.Fatalf("expected account to remain queryable, got %v", err)
		}
		if stored.IsActive {
			t.Error("expected account to be inactive")
		}

		active, err := e.ListAccounts(ctx, false)
		if err != nil {
			t.Fatalf("ListAccounts() error = %v", err)
		}
		for _, a := range active {
			if a.ID == account.ID {
				t.Error("expected inactive account to be hidden from the active list")
			}
		}
	})
}
