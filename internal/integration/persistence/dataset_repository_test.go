package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/domain/entity"
)

func seedDataset(t *testing.T, store adapter.RecordStore, userID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	account := entity.NewAccount(userID, "Checking", entity.AccountTypeChecking, decimal.NewFromInt(1000))
	category := entity.NewCategory(userID, "Food", entity.CategoryTypeExpense, "#FF5733", false)
	transaction := entity.NewTransaction(account.ID, decimal.RequireFromString("-42.10"), "Groceries",
		time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC), &category.ID)
	transaction.IsParent = true
	split := entity.NewTransactionSplit(transaction, transaction.Amount, category.ID, "All food")
	budget := entity.NewBudget(userID, category.ID, decimal.NewFromInt(300), entity.BudgetPeriodMonthly,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	portfolio := entity.NewPortfolio(userID, "Brokerage", "")
	investment := entity.NewInvestment(portfolio.ID, "VTI", "Total market", decimal.NewFromInt(2),
		decimal.NewFromInt(400), decimal.NewFromInt(250))
	snapshot := entity.NewNetWorthSnapshot(userID, decimal.NewFromInt(1500), decimal.Zero)
	member := entity.NewFamilyMember(userID, "ana@example.com", "Ana", entity.MemberRoleMember)
	connection := entity.NewBankConnection(userID, "item-1", "ins_1", "First Bank", entity.BankConnectionStatusActive)
	rule := entity.NewCategoryRule(userID, "market", category.ID, 3)

	steps := []func() error{
		func() error { return store.Accounts().Create(ctx, account) },
		func() error { return store.Categories().Create(ctx, category) },
		func() error { return store.Transactions().Create(ctx, transaction) },
		func() error { return store.Splits().Create(ctx, split) },
		func() error { return store.Budgets().Create(ctx, budget) },
		func() error { return store.Portfolios().Create(ctx, portfolio) },
		func() error { return store.Investments().Create(ctx, investment) },
		func() error { return store.NetWorth().Create(ctx, snapshot) },
		func() error { return store.FamilyMembers().Create(ctx, member) },
		func() error { return store.BankConnections().Create(ctx, connection) },
		func() error { return store.CategoryRules().Create(ctx, rule) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("seed step %d error = %v", i, err)
		}
	}
}

func TestDatasetRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	source := newTestStore(t)
	seedDataset(t, source, userID)
	seedDataset(t, source, uuid.New())

	exported, err := source.Datasets().ExportAll(ctx, userID)
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
	for table, count := range exported.Counts() {
		if count != 1 {
			t.Errorf("expected 1 %s for the user, got %d", table, count)
		}
	}

	target := newTestStore(t)
	if err := target.Datasets().ImportData(ctx, exported); err != nil {
		t.Fatalf("ImportData() error = %v", err)
	}

	reexported, err := target.Datasets().ExportAll(ctx, userID)
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
	if got, want := reexported.Counts(), exported.Counts(); len(got) != len(want) {
		t.Fatalf("count tables differ: %v vs %v", got, want)
	} else {
		for table, count := range want {
			if got[table] != count {
				t.Errorf("%s: expected %d, got %d", table, count, got[table])
			}
		}
	}

	original, restored := exported.Transactions[0], reexported.Transactions[0]
	if original.ID != restored.ID || !original.Amount.Equal(restored.Amount) || !original.Date.Equal(restored.Date) {
		t.Errorf("transaction changed in round trip: %+v vs %+v", original, restored)
	}
	if restored.CategoryID == nil || *restored.CategoryID != *original.CategoryID || !restored.IsParent {
		t.Errorf("transaction fields lost in round trip: %+v", restored)
	}
	if !exported.Accounts[0].UpdatedAt.Equal(reexported.Accounts[0].UpdatedAt) {
		t.Error("expected update timestamps to survive the round trip")
	}
}

func TestDatasetRepository_RoundTripKeepsOrphanedSplits(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	source := newTestStore(t)
	seedDataset(t, source, userID)
	seedDataset(t, source, uuid.New())

	exported, err := source.Datasets().ExportAll(ctx, userID)
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
	parent := exported.Transactions[0]
	if err := source.Transactions().Delete(ctx, parent.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	exported, err = source.Datasets().ExportAll(ctx, userID)
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
	if len(exported.Transactions) != 0 {
		t.Fatalf("expected the parent to be gone, got %d transactions", len(exported.Transactions))
	}
	if len(exported.TransactionSplits) != 1 {
		t.Fatalf("expected the orphaned split to be exported, got %d", len(exported.TransactionSplits))
	}

	target := newTestStore(t)
	if err := target.Datasets().ImportData(ctx, exported); err != nil {
		t.Fatalf("ImportData() error = %v", err)
	}
	splits, err := target.Splits().FindByTransaction(ctx, parent.ID)
	if err != nil {
		t.Fatalf("FindByTransaction() error = %v", err)
	}
	if len(splits) != 1 || splits[0].ID != exported.TransactionSplits[0].ID {
		t.Errorf("expected the orphaned split on the restored device, got %+v", splits)
	}
}

func TestDatasetRepository_ImportUpserts(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	store := newTestStore(t)
	seedDataset(t, store, userID)

	exported, err := store.Datasets().ExportAll(ctx, userID)
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	exported.Accounts[0].Name = "Renamed"
	exported.Accounts[0].IsActive = false
	extra := entity.NewAccount(userID, "Cash", entity.AccountTypeCash, decimal.NewFromInt(20))
	exported.Accounts = append(exported.Accounts, extra)

	if err := store.Datasets().ImportData(ctx, exported); err != nil {
		t.Fatalf("ImportData() error = %v", err)
	}

	accounts, err := store.Accounts().FindByUser(ctx, userID, true)
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}

	renamed, err := store.Accounts().FindByID(ctx, exported.Accounts[0].ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if renamed.Name != "Renamed" || renamed.IsActive {
		t.Errorf("expected the imported values to overwrite, got %+v", renamed)
	}

	if err := store.Datasets().ImportData(ctx, nil); err != nil {
		t.Errorf("expected importing nil to be a no-op, got %v", err)
	}
}
