package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/application/backup"
	"github.com/finance-tracker/core/internal/domain/entity"
	"github.com/finance-tracker/core/internal/infra/db"
	"github.com/finance-tracker/core/internal/integration/persistence"
)

var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) adapter.RecordStore {
	t.Helper()

	database, err := db.NewInMemoryConnection()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := database.Migrate(); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return persistence.NewRecordStore(database.DB())
}

func newTestEngine(t *testing.T, tier entity.SubscriptionTier, opts ...Option) *Engine {
	t.Helper()
	return newTestEngineWithStore(t, newTestStore(t), uuid.New(), tier, nil, opts...)
}

func newTestEngineWithStore(
	t *testing.T,
	store adapter.RecordStore,
	userID uuid.UUID,
	tier entity.SubscriptionTier,
	backups *backup.Service,
	opts ...Option,
) *Engine {
	t.Helper()
	session := Session{
		UserID:       userID,
		Subscription: entity.Subscription{Tier: tier, Status: entity.StatusActive},
	}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(session, store, backups, opts...)
}

func mustAccount(t *testing.T, e *Engine, name string, accountType entity.AccountType, balance string) *entity.Account {
	t.Helper()
	account, err := e.CreateAccount(context.Background(), CreateAccountInput{
		Name:    name,
		Type:    accountType,
		Balance: decimal.RequireFromString(balance),
	})
	if err != nil {
		t.Fatalf("CreateAccount(%s) error = %v", name, err)
	}
	return account
}

func mustCategory(t *testing.T, e *Engine, name string, categoryType entity.CategoryType) *entity.Category {
	t.Helper()
	category, err := e.CreateCategory(context.Background(), CreateCategoryInput{Name: name, Type: categoryType})
	if err != nil {
		t.Fatalf("CreateCategory(%s) error = %v", name, err)
	}
	return category
}

func mustTransaction(t *testing.T, e *Engine, accountID uuid.UUID, amount string, description string, date time.Time, categoryID *uuid.UUID) *entity.Transaction {
	t.Helper()
	transaction, err := e.AddTransaction(context.Background(), AddTransactionInput{
		AccountID:   accountID,
		Amount:      decimal.RequireFromString(amount),
		Description: description,
		Date:        date,
		CategoryID:  categoryID,
	})
	if err != nil {
		t.Fatalf("AddTransaction(%s) error = %v", description, err)
	}
	return transaction
}

func TestEngine_DirtyTracking(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)

	if e.HasUnsyncedChanges() {
		t.Fatal("expected a fresh engine to have no unsynced changes")
	}

	mustAccount(t, e, "Checking", entity.AccountTypeChecking, "100")
	if !e.HasUnsyncedChanges() {
		t.Fatal("expected unsynced changes after a mutation")
	}

	version := e.changes.Load()
	mustAccount(t, e, "Savings", entity.AccountTypeSavings, "50")
	e.markSynced(version)
	if !e.HasUnsyncedChanges() {
		t.Error("expected changes made after the synced version to stay pending")
	}

	e.markSynced(e.changes.Load())
	if e.HasUnsyncedChanges() {
		t.Error("expected no unsynced changes after syncing the latest version")
	}
}

func TestEngine_ReadsDoNotMarkDirty(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()

	if _, err := e.ListAccounts(ctx, true); err != nil {
		t.Fatalf("ListAccounts() error = %v", err)
	}
	if _, err := e.ListCategories(ctx, nil); err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if _, err := e.GetTransactions(ctx, adapter.TransactionFilter{}); err != nil {
		t.Fatalf("GetTransactions() error = %v", err)
	}
	if e.HasUnsyncedChanges() {
		t.Error("expected reads to leave the engine clean")
	}
}
