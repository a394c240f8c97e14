// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/application/backup"
	"github.com/finance-tracker/core/internal/application/engine"
	"github.com/finance-tracker/core/internal/domain/entity"
	"github.com/finance-tracker/core/internal/integration/persistence"
	"github.com/finance-tracker/core/internal/integration/remote"
	"github.com/finance-tracker/core/test/integration/mock"
)

const backupPrefix = "fintrack-test"

// TestContext holds the test state for each scenario.
type TestContext struct {
	userID  uuid.UUID
	devices map[string]*engine.Engine
	db      *mock.Db
	redis   *mock.Redis
	clock   *mock.Time
	blobs   *remote.RedisBlobStore

	// Aliases are the names used in feature files
	accounts     map[string]uuid.UUID
	categories   map[string]uuid.UUID
	transactions map[string]uuid.UUID
	portfolios   map[string]uuid.UUID

	lastErr       error
	lastSnapshot  *entity.NetWorthSnapshot
	lastRestore   map[string]int
	lastDeleteMod engine.DeleteMode
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

var testDB = mock.NewDb()

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		mock.NewRedis()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		redis := mock.NewRedis()
		if err := redis.ClearRedis(); err != nil {
			return ctx, err
		}
		if err := testDB.ClearDB(); err != nil {
			return ctx, err
		}

		tc := &TestContext{
			userID:       uuid.New(),
			devices:      make(map[string]*engine.Engine),
			db:           testDB,
			redis:        redis,
			clock:        mock.NewTime(),
			blobs:        remote.NewRedisBlobStore(redis.Client, backupPrefix, 5),
			accounts:     make(map[string]uuid.UUID),
			categories:   make(map[string]uuid.UUID),
			transactions: make(map[string]uuid.UUID),
			portfolios:   make(map[string]uuid.UUID),
		}
		return SetTestContext(ctx, tc), nil
	})

	registerSessionSteps(ctx)
	registerRecordSteps(ctx)
	registerAnalyticsSteps(ctx)
	registerOutcomeSteps(ctx)
}

// openDevice builds an engine for the scenario user on a device with its own local database.
func (tc *TestContext) openDevice(name string, tier entity.SubscriptionTier) error {
	database, err := tc.db.Device(name)
	if err != nil {
		return err
	}

	backups := backup.NewService(tc.blobs).WithClock(tc.clock.Now)
	tc.devices[name] = engine.New(
		engine.Session{
			UserID:       tc.userID,
			Subscription: entity.Subscription{Tier: tier, Status: entity.StatusActive},
		},
		persistence.NewRecordStore(database.DB()),
		backups,
		engine.WithClock(tc.clock.Now),
	)
	return nil
}

func (tc *TestContext) device(name string) (*engine.Engine, error) {
	e, ok := tc.devices[name]
	if !ok {
		return nil, fmt.Errorf("device %q was not opened", name)
	}
	return e, nil
}

func lookup(aliases map[string]uuid.UUID, kind, alias string) (uuid.UUID, error) {
	id, ok := aliases[alias]
	if !ok {
		return uuid.Nil, fmt.Errorf("unknown %s %q", kind, alias)
	}
	return id, nil
}

// record keeps the outcome of the step under test for the assertion steps.
func (tc *TestContext) record(err error) error {
	tc.lastErr = err
	return nil
}

func (tc *TestContext) requireNoError() error {
	if tc.lastErr != nil {
		return fmt.Errorf("expected success, got %w", tc.lastErr)
	}
	return nil
}

var errNoContext = errors.New("test context not found")
