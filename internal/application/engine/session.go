package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/core/internal/application/backup"
)

// EndSession backs up the dataset when there are unsynced changes.
// Failures are logged and the changes stay pending for the next session.
func (e *Engine) EndSession(ctx context.Context) {
	if !e.HasUnsyncedChanges() {
		slog.Debug("No unsynced changes at session end", "userID", e.session.UserID)
		return
	}
	if e.backups == nil {
		slog.Warn("Unsynced changes but no backup storage configured", "userID", e.session.UserID)
		return
	}

	if err := e.BackupNow(ctx); err != nil {
		slog.Error("Failed to back up dataset",
			"userID", e.session.UserID,
			"error", err,
		)
	}
}

// BackupNow exports and uploads the dataset regardless of pending changes.
func (e *Engine) BackupNow(ctx context.Context) error {
	if e.backups == nil {
		return ErrBackupNotConfigured
	}

	version := e.changes.Load()

	data, err := e.store.Datasets().ExportAll(ctx, e.session.UserID)
	if err != nil {
		return fmt.Errorf("failed to export dataset: %w", err)
	}

	ctx, cancel := e.withBackupTimeout(ctx)
	defer cancel()

	snapshot, err := e.backups.Backup(ctx, e.session.UserID, data)
	if err != nil {
		return err
	}

	e.markSynced(version)
	slog.Info("Dataset backed up",
		"userID", e.session.UserID,
		"timestamp", snapshot.Timestamp,
	)
	return nil
}

// RestoreFromBackup merges the latest remote snapshot into the local store.
// Records newer on either side win; local-only records are kept. It returns
// the number of records per table after the merge, or nil when no backup exists.
func (e *Engine) RestoreFromBackup(ctx context.Context) (map[string]int, error) {
	if e.backups == nil {
		return nil, ErrBackupNotConfigured
	}

	version := e.changes.Load()

	restoreCtx, cancel := e.withBackupTimeout(ctx)
	remote, err := e.backups.Restore(restoreCtx, e.session.UserID)
	cancel()
	if err != nil {
		return nil, err
	}
	if remote == nil {
		return nil, nil
	}

	local, err := e.store.Datasets().ExportAll(ctx, e.session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to export local dataset: %w", err)
	}

	merged := backup.Merge(local, remote)
	if err := e.store.Datasets().ImportData(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to import merged dataset: %w", err)
	}

	e.markSynced(version)

	counts := merged.Counts()
	slog.Info("Dataset restored from backup",
		"userID", e.session.UserID,
		"counts", counts,
	)
	return counts, nil
}
