package backup

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

// memoryBlobStore is an in-memory RemoteBlobStore.
type memoryBlobStore struct {
	blobs  map[string][]byte
	putErr error
	getErr error
}

func newMemoryBlobStore() *memoryBlobStore {
	return &memoryBlobStore{blobs: make(map[string][]byte)}
}

func (m *memoryBlobStore) Put(_ context.Context, key string, payload []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.blobs[key] = append([]byte(nil), payload...)
	return nil
}

func (m *memoryBlobStore) GetLatest(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	blob, ok := m.blobs[key]
	if !ok {
		return nil, adapter.ErrBlobNotFound
	}
	return blob, nil
}

func sampleDataset(userID uuid.UUID) *adapter.Dataset {
	account := entity.NewAccount(userID, "Checking", entity.AccountTypeChecking, decimal.NewFromInt(1000))
	category := entity.NewCategory(userID, "Groceries", entity.CategoryTypeExpense, "#F97316", false)
	txn := entity.NewTransaction(account.ID, decimal.NewFromFloat(-42.5), "Market", time.Now().UTC(), &category.ID)

	return &adapter.Dataset{
		Accounts:     []*entity.Account{account},
		Categories:   []*entity.Category{category},
		Transactions: []*entity.Transaction{txn},
	}
}

func TestService_BackupAndRestore(t *testing.T) {
	ctx := context.Background()
	store := newMemoryBlobStore()
	fixed := time.Date(2026, 5, 10, 8, 30, 0, 0, time.UTC)
	svc := NewService(store).WithClock(func() time.Time { return fixed })
	userID := uuid.New()
	data := sampleDataset(userID)

	snapshot, err := svc.Backup(ctx, userID, data)
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	if snapshot.Version != SnapshotVersion {
		t.Errorf("expected version %s, got %s", SnapshotVersion, snapshot.Version)
	}
	if snapshot.Timestamp != "2026-05-10T08:30:00Z" {
		t.Errorf("unexpected timestamp %s", snapshot.Timestamp)
	}
	if snapshot.UserID != userID.String() {
		t.Errorf("expected user %s, got %s", userID, snapshot.UserID)
	}
	if len(snapshot.Checksum) != 64 {
		t.Errorf("expected 64 hex chars in checksum, got %d", len(snapshot.Checksum))
	}

	restored, err := svc.Restore(ctx, userID)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if restored == nil {
		t.Fatal("expected a dataset")
	}

	if len(restored.Accounts) != 1 || restored.Accounts[0].ID != data.Accounts[0].ID {
		t.Error("restored accounts do not match")
	}
	if !restored.Transactions[0].Amount.Equal(data.Transactions[0].Amount) {
		t.Errorf("expected amount %s, got %s", data.Transactions[0].Amount, restored.Transactions[0].Amount)
	}
}

func TestService_RestoreWithoutBackup(t *testing.T) {
	svc := NewService(newMemoryBlobStore())

	data, err := svc.Restore(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if data != nil {
		t.Error("expected nil dataset when no backup exists")
	}
}

func TestService_RestoreDetectsTampering(t *testing.T) {
	ctx := context.Background()
	store := newMemoryBlobStore()
	svc := NewService(store)
	userID := uuid.New()

	if _, err := svc.Backup(ctx, userID, sampleDataset(userID)); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(store.blobs[Key(userID)], &snapshot); err != nil {
		t.Fatalf("failed to decode stored snapshot: %v", err)
	}
	snapshot.Data = json.RawMessage(`{"accounts":[]}`)
	tampered, _ := json.Marshal(snapshot)
	store.blobs[Key(userID)] = tampered

	_, err := svc.Restore(ctx, userID)
	if !errors.Is(err, domainerror.ErrIntegrity) {
		t.Fatalf("expected integrity error, got %v", err)
	}

	var backupErr *domainerror.BackupError
	if !errors.As(err, &backupErr) || backupErr.Code != domainerror.ErrCodeChecksumMismatch {
		t.Errorf("expected code %s, got %v", domainerror.ErrCodeChecksumMismatch, err)
	}
}

func TestService_RestoreMalformedEnvelope(t *testing.T) {
	store := newMemoryBlobStore()
	userID := uuid.New()
	store.blobs[Key(userID)] = []byte("not json")

	_, err := NewService(store).Restore(context.Background(), userID)
	if !errors.Is(err, domainerror.ErrMalformedSnapshot) {
		t.Errorf("expected malformed snapshot error, got %v", err)
	}
}

func TestService_TransportErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	userID := uuid.New()

	t.Run("upload", func(t *testing.T) {
		store := newMemoryBlobStore()
		store.putErr = boom

		_, err := NewService(store).Backup(ctx, userID, sampleDataset(userID))
		if !errors.Is(err, boom) {
			t.Errorf("expected wrapped transport error, got %v", err)
		}
		var backupErr *domainerror.BackupError
		if !errors.As(err, &backupErr) || backupErr.Code != domainerror.ErrCodeUploadFailed {
			t.Errorf("expected code %s", domainerror.ErrCodeUploadFailed)
		}
	})

	t.Run("download", func(t *testing.T) {
		store := newMemoryBlobStore()
		store.getErr = boom

		_, err := NewService(store).Restore(ctx, userID)
		if !errors.Is(err, boom) {
			t.Errorf("expected wrapped transport error, got %v", err)
		}
	})
}

func TestChecksum(t *testing.T) {
	a := Checksum([]byte(`{"accounts":[]}`))
	b := Checksum([]byte(`{"accounts":[]}`))
	c := Checksum([]byte(`{"accounts":[{}]}`))

	if a != b {
		t.Error("checksum should be deterministic")
	}
	if a == c {
		t.Error("different payloads should produce different checksums")
	}
}
