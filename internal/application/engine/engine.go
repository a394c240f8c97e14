// Package engine is the local-first data engine. It validates and persists
// every domain operation through the record store, applies subscription
// gates, and synchronizes the dataset with remote storage at session
// boundaries.
package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/application/backup"
	"github.com/finance-tracker/core/internal/application/subscription"
	"github.com/finance-tracker/core/internal/domain/entity"
)

var (
	// ErrBackupNotConfigured is returned by restore when no remote store is wired.
	ErrBackupNotConfigured = errors.New("backup storage not configured")

	// ErrOCRUnavailable is returned when no receipt processor is configured.
	ErrOCRUnavailable = errors.New("receipt processor not available")

	// ErrBankConnectorUnavailable is returned when no bank aggregator is configured.
	ErrBankConnectorUnavailable = errors.New("bank connector not available")
)

// Session identifies who the engine works for.
type Session struct {
	UserID       uuid.UUID
	Subscription entity.Subscription
}

// Engine is the single entry point for domain operations of one session.
// It keeps no state besides a change counter used to decide whether a backup is due.
type Engine struct {
	session       Session
	store         adapter.RecordStore
	subscription  *subscription.Manager
	backups       *backup.Service
	ocr           adapter.OCRProcessor
	banks         adapter.BankConnector
	notifier      adapter.InviteNotifier
	backupTimeout time.Duration
	now           func() time.Time

	changes atomic.Uint64
	synced  atomic.Uint64
}

// Option configures optional collaborators of the engine.
type Option func(*Engine)

// WithOCRProcessor wires the receipt processor.
func WithOCRProcessor(p adapter.OCRProcessor) Option {
	return func(e *Engine) { e.ocr = p }
}

// WithBankConnector wires the bank-aggregation connector.
func WithBankConnector(c adapter.BankConnector) Option {
	return func(e *Engine) { e.banks = c }
}

// WithInviteNotifier wires the family invite notifier.
func WithInviteNotifier(n adapter.InviteNotifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithBackupTimeout bounds every backup and restore round trip.
func WithBackupTimeout(d time.Duration) Option {
	return func(e *Engine) { e.backupTimeout = d }
}

// WithClock overrides the clock used for timestamps and analytics windows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine for session. backups may be nil when no remote store is configured.
func New(session Session, store adapter.RecordStore, backups *backup.Service, opts ...Option) *Engine {
	e := &Engine{
		session:      session,
		store:        store,
		subscription: subscription.NewManager(session.Subscription),
		backups:      backups,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.subscription = e.subscription.WithClock(e.now)
	return e
}

// Session returns the session the engine was created for.
func (e *Engine) Session() Session {
	return e.session
}

// Subscription returns the capability evaluator of the session.
func (e *Engine) Subscription() *subscription.Manager {
	return e.subscription
}

// HasUnsyncedChanges reports whether mutations happened since the last successful backup or restore.
func (e *Engine) HasUnsyncedChanges() bool {
	return e.changes.Load() != e.synced.Load()
}

func (e *Engine) markDirty() {
	e.changes.Add(1)
}

// markSynced records that everything up to version has reached remote storage.
func (e *Engine) markSynced(version uint64) {
	e.synced.Store(version)
}

func (e *Engine) timestamp() time.Time {
	return e.now().UTC()
}

// stamp sets creation and update times of a new record from the engine clock.
func (e *Engine) stamp(createdAt, updatedAt *time.Time) {
	now := e.timestamp()
	*createdAt = now
	*updatedAt = now
}

func (e *Engine) withBackupTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.backupTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.backupTimeout)
}
