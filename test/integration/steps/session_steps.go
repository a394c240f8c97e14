package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/finance-tracker/core/internal/application/backup"
	"github.com/finance-tracker/core/internal/domain/entity"
)

func registerSessionSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a "([^"]*)" user on device "([^"]*)"$`, aUserOnDevice)
	ctx.Step(`^the clock is at "([^"]*)"$`, theClockIsAt)
	ctx.Step(`^the clock advances by "([^"]*)"$`, theClockAdvancesBy)
	ctx.Step(`^the session on "([^"]*)" ends$`, theSessionEnds)
	ctx.Step(`^"([^"]*)" restores from backup$`, restoresFromBackup)
	ctx.Step(`^"([^"]*)" should have unsynced changes$`, shouldHaveUnsyncedChanges)
	ctx.Step(`^"([^"]*)" should not have unsynced changes$`, shouldNotHaveUnsyncedChanges)
	ctx.Step(`^a backup should exist$`, aBackupShouldExist)
	ctx.Step(`^no backup should exist$`, noBackupShouldExist)
	ctx.Step(`^the remote backup is tampered with$`, theRemoteBackupIsTamperedWith)
	ctx.Step(`^the restore should report (\d+) "([^"]*)"$`, theRestoreShouldReport)
}

func aUserOnDevice(ctx context.Context, tier, device string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	return tc.openDevice(device, entity.SubscriptionTier(tier))
}

func theClockIsAt(ctx context.Context, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	tc.clock.SetCurrentTime(at)
	return nil
}

func theClockAdvancesBy(ctx context.Context, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	tc.clock.Advance(d)
	return nil
}

func theSessionEnds(ctx context.Context, device string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	e.EndSession(ctx)
	return nil
}

func restoresFromBackup(ctx context.Context, device string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	tc.lastRestore, err = e.RestoreFromBackup(ctx)
	return tc.record(err)
}

func unsyncedChanges(ctx context.Context, device string, want bool) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	if got := e.HasUnsyncedChanges(); got != want {
		return fmt.Errorf("expected unsynced changes to be %v on %s, got %v", want, device, got)
	}
	return nil
}

func shouldHaveUnsyncedChanges(ctx context.Context, device string) error {
	return unsyncedChanges(ctx, device, true)
}

func shouldNotHaveUnsyncedChanges(ctx context.Context, device string) error {
	return unsyncedChanges(ctx, device, false)
}

func backupExists(ctx context.Context, want bool) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	_, err := tc.blobs.GetLatest(ctx, backup.Key(tc.userID))
	if got := err == nil; got != want {
		return fmt.Errorf("expected backup to exist: %v, got error %v", want, err)
	}
	return nil
}

func aBackupShouldExist(ctx context.Context) error {
	return backupExists(ctx, true)
}

func noBackupShouldExist(ctx context.Context) error {
	return backupExists(ctx, false)
}

// theRemoteBackupIsTamperedWith rewrites one byte of the stored payload while keeping valid JSON.
func theRemoteBackupIsTamperedWith(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}

	key := backup.Key(tc.userID)
	blob, err := tc.blobs.GetLatest(ctx, key)
	if err != nil {
		return err
	}

	tampered := strings.Replace(string(blob), `"checking"`, `"savings"`, 1)
	if tampered == string(blob) {
		return fmt.Errorf("backup does not contain a checking account to tamper with")
	}
	return tc.blobs.Put(ctx, key, []byte(tampered))
}

func theRestoreShouldReport(ctx context.Context, count int, table string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	if err := tc.requireNoError(); err != nil {
		return err
	}
	if got := tc.lastRestore[table]; got != count {
		return fmt.Errorf("expected %d %s after restore, got %d (%v)", count, table, got, tc.lastRestore)
	}
	return nil
}
