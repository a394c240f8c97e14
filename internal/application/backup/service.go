package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/application/adapter"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

// Service backs up and restores datasets through a RemoteBlobStore.
type Service struct {
	store adapter.RemoteBlobStore
	now   func() time.Time
}

// NewService creates a new backup service.
func NewService(store adapter.RemoteBlobStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// WithClock overrides the clock used to stamp snapshots.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Key returns the remote key under which a user's snapshots are stored.
func Key(userID uuid.UUID) string {
	return "backups/" + userID.String()
}

// Backup serializes data, checksums it and uploads the snapshot.
func (s *Service) Backup(ctx context.Context, userID uuid.UUID, data *adapter.Dataset) (*Snapshot, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize dataset: %w", err)
	}

	checksum := Checksum(payload)

	sealed, err := seal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to seal dataset: %w", err)
	}

	snapshot := &Snapshot{
		Version:   SnapshotVersion,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		UserID:    userID.String(),
		Data:      sealed,
		Checksum:  checksum,
	}

	blob, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	if err := s.store.Put(ctx, Key(userID), blob); err != nil {
		return nil, domainerror.NewBackupError(
			domainerror.ErrCodeUploadFailed,
			domainerror.ErrBackupUploadFailed.Error(),
			err,
		)
	}

	slog.Info("Backup uploaded",
		"userID", userID,
		"timestamp", snapshot.Timestamp,
		"bytes", len(blob),
	)

	return snapshot, nil
}

// Restore downloads the latest snapshot and verifies it.
// It returns a nil dataset and nil error when no snapshot exists.
func (s *Service) Restore(ctx context.Context, userID uuid.UUID) (*adapter.Dataset, error) {
	blob, err := s.store.GetLatest(ctx, Key(userID))
	if err != nil {
		if errors.Is(err, adapter.ErrBlobNotFound) {
			slog.Debug("No remote backup found", "userID", userID)
			return nil, nil
		}
		return nil, domainerror.NewBackupError(
			domainerror.ErrCodeDownloadFailed,
			domainerror.ErrBackupDownloadFailed.Error(),
			err,
		)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(blob, &snapshot); err != nil {
		return nil, domainerror.NewBackupError(
			domainerror.ErrCodeMalformedSnapshot,
			"failed to decode snapshot envelope",
			fmt.Errorf("%w: %v", domainerror.ErrMalformedSnapshot, err),
		)
	}

	payload, err := open(snapshot.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}

	if Checksum(payload) != snapshot.Checksum {
		return nil, domainerror.NewBackupError(
			domainerror.ErrCodeChecksumMismatch,
			"snapshot failed verification",
			domainerror.ErrChecksumMismatch,
		)
	}

	var data adapter.Dataset
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, domainerror.NewBackupError(
			domainerror.ErrCodeMalformedSnapshot,
			"failed to decode snapshot data",
			fmt.Errorf("%w: %v", domainerror.ErrMalformedSnapshot, err),
		)
	}

	slog.Info("Backup restored",
		"userID", userID,
		"version", snapshot.Version,
		"timestamp", snapshot.Timestamp,
	)

	return &data, nil
}
