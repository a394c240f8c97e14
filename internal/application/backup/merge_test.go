package backup

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/domain/entity"
)

func accountAt(id uuid.UUID, name string, updatedAt time.Time) *entity.Account {
	return &entity.Account{
		ID:        id,
		UserID:    uuid.Nil,
		Name:      name,
		Type:      entity.AccountTypeChecking,
		Balance:   decimal.Zero,
		IsActive:  true,
		CreatedAt: updatedAt.Add(-time.Hour),
		UpdatedAt: updatedAt,
	}
}

func TestMerge_LastWriterWins(t *testing.T) {
	id := uuid.New()
	t1 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		remoteAt time.Time
		wantName string
	}{
		{"remote strictly later wins", t1.Add(time.Minute), "remote"},
		{"tie keeps local", t1, "local"},
		{"local later keeps local", t1.Add(-time.Minute), "local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := &adapter.Dataset{Accounts: []*entity.Account{accountAt(id, "local", t1)}}
			remote := &adapter.Dataset{Accounts: []*entity.Account{accountAt(id, "remote", tt.remoteAt)}}

			merged := Merge(local, remote)

			if len(merged.Accounts) != 1 {
				t.Fatalf("expected 1 account, got %d", len(merged.Accounts))
			}
			if merged.Accounts[0].Name != tt.wantName {
				t.Errorf("expected %s record, got %s", tt.wantName, merged.Accounts[0].Name)
			}
		})
	}
}

func TestMerge_RemoteOnlyRecordsInserted(t *testing.T) {
	now := time.Now().UTC()
	localOnly := accountAt(uuid.New(), "local-only", now)
	remoteOnly := accountAt(uuid.New(), "remote-only", now)

	merged := Merge(
		&adapter.Dataset{Accounts: []*entity.Account{localOnly}},
		&adapter.Dataset{Accounts: []*entity.Account{remoteOnly}},
	)

	if len(merged.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(merged.Accounts))
	}
	if merged.Accounts[0].ID != localOnly.ID || merged.Accounts[1].ID != remoteOnly.ID {
		t.Error("expected local records first followed by remote-only records")
	}
}

func TestMerge_Idempotent(t *testing.T) {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	shared := uuid.New()
	stale := uuid.New()

	local := &adapter.Dataset{
		Accounts: []*entity.Account{
			accountAt(shared, "local shared", base),
			accountAt(stale, "local newer", base.Add(time.Hour)),
		},
		NetWorthSnapshots: []*entity.NetWorthSnapshot{
			{ID: uuid.New(), NetWorth: decimal.NewFromInt(10), CreatedAt: base},
		},
	}
	remote := &adapter.Dataset{
		Accounts: []*entity.Account{
			accountAt(shared, "remote shared", base.Add(time.Minute)),
			accountAt(stale, "remote older", base),
			accountAt(uuid.New(), "remote only", base),
		},
		NetWorthSnapshots: []*entity.NetWorthSnapshot{
			{ID: uuid.New(), NetWorth: decimal.NewFromInt(20), CreatedAt: base},
		},
	}

	once := Merge(local, remote)
	twice := Merge(local, once)

	if !reflect.DeepEqual(once, twice) {
		t.Error("merging the merged result again should be a no-op")
	}

	if once.Accounts[0].Name != "remote shared" {
		t.Errorf("expected remote shared record, got %s", once.Accounts[0].Name)
	}
	if once.Accounts[1].Name != "local newer" {
		t.Errorf("expected local newer record, got %s", once.Accounts[1].Name)
	}
	if len(once.Accounts) != 3 || len(once.NetWorthSnapshots) != 2 {
		t.Errorf("unexpected counts %v", once.Counts())
	}
}

func TestMerge_NilInputs(t *testing.T) {
	userID := uuid.New()
	data := sampleDataset(userID)

	if merged := Merge(nil, data); len(merged.Accounts) != 1 {
		t.Error("expected remote records when local is nil")
	}
	if merged := Merge(data, nil); len(merged.Transactions) != 1 {
		t.Error("expected local records when remote is nil")
	}
}
