package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/config"
	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/application/backup"
	"github.com/finance-tracker/core/internal/application/engine"
	"github.com/finance-tracker/core/internal/domain/entity"
	"github.com/finance-tracker/core/internal/infra/db"
	"github.com/finance-tracker/core/internal/integration/adapters"
	"github.com/finance-tracker/core/internal/integration/email"
	"github.com/finance-tracker/core/internal/integration/email/templates"
	"github.com/finance-tracker/core/internal/integration/persistence"
	"github.com/finance-tracker/core/internal/integration/remote"
)

const (
	BackendRedis = "redis"
	BackendGCS   = "gcs"
	BackendNone  = "none"
)

// app holds the engine of one session and everything that must be closed with it.
type app struct {
	engine  *engine.Engine
	closers []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Error("Failed to close resource", "error", err)
		}
	}
}

// openApp wires the local record store, the remote backup backend and the
// optional integrations into an engine for the configured session.
func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	session, err := sessionFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{}

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, database.Close)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(); err != nil {
			a.Close()
			return nil, err
		}
	}

	blobs, err := openBlobStore(ctx, cfg, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	var backups *backup.Service
	if blobs != nil {
		backups = backup.NewService(blobs)
	}

	opts := []engine.Option{engine.WithBackupTimeout(cfg.Backup.Timeout)}

	if cfg.Gemini.APIKey != "" {
		opts = append(opts, engine.WithOCRProcessor(adapters.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)))
	}

	if bank := adapters.NewBankClient(&cfg.Bank); bank.IsConfigured() {
		opts = append(opts, engine.WithBankConnector(bank))
	}

	if cfg.Email.ResendAPIKey != "" {
		renderer, err := templates.NewRenderer()
		if err != nil {
			a.Close()
			return nil, err
		}
		sender := email.NewResendClient(&cfg.Email)
		opts = append(opts, engine.WithInviteNotifier(
			email.NewService(sender, renderer, cfg.Email.AppBaseURL, email.DefaultServiceConfig()),
		))
	}

	a.engine = engine.New(session, persistence.NewRecordStore(database.DB()), backups, opts...)

	slog.Info("Session opened",
		"userId", session.UserID,
		"tier", session.Subscription.Tier,
		"backupBackend", cfg.Backup.Backend,
	)
	return a, nil
}

func openBlobStore(ctx context.Context, cfg *config.Config, a *app) (adapter.RemoteBlobStore, error) {
	switch cfg.Backup.Backend {
	case BackendRedis:
		client, err := remote.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			slog.Warn("Redis unreachable, backups will fail until it is back", "error", err)
		}
		return remote.NewRedisBlobStore(client, cfg.Backup.Prefix, cfg.Backup.HistoryLimit), nil
	case BackendGCS:
		client, err := remote.NewGCSClient(ctx)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return remote.NewGCSBlobStore(client, cfg.Backup.Bucket, cfg.Backup.Prefix), nil
	case BackendNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported backup backend %q", cfg.Backup.Backend)
	}
}

func sessionFromConfig(cfg *config.Config) (engine.Session, error) {
	userID, err := uuid.Parse(cfg.Session.UserID)
	if err != nil {
		return engine.Session{}, fmt.Errorf("FINTRACK_USER_ID must be a valid uuid: %w", err)
	}

	sub := entity.Subscription{
		Tier:   entity.SubscriptionTier(cfg.Subscription.Tier),
		Status: entity.SubscriptionStatus(cfg.Subscription.Status),
	}
	if cfg.Subscription.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, cfg.Subscription.ExpiresAt)
		if err != nil {
			return engine.Session{}, fmt.Errorf("SUBSCRIPTION_EXPIRES_AT must be RFC3339: %w", err)
		}
		sub.ExpiresAt = &expiresAt
	}

	return engine.Session{UserID: userID, Subscription: sub}, nil
}
