package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

func registerAnalyticsSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^on "([^"]*)" I generate a net worth snapshot$`, iGenerateANetWorthSnapshot)
	ctx.Step(`^the snapshot should show assets "([^"]*)", liabilities "([^"]*)" and net worth "([^"]*)"$`, theSnapshotShouldShow)
	ctx.Step(`^on "([^"]*)" category "([^"]*)" should have spending "([^"]*)"$`, categoryShouldHaveSpending)
}

func iGenerateANetWorthSnapshot(ctx context.Context, device string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	tc.lastSnapshot, err = e.GenerateNetWorthSnapshot(ctx)
	return err
}

func theSnapshotShouldShow(ctx context.Context, assets, liabilities, netWorth string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	if tc.lastSnapshot == nil {
		return fmt.Errorf("no snapshot was generated")
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"assets", tc.lastSnapshot.TotalAssets, assets},
		{"liabilities", tc.lastSnapshot.TotalLiabilities, liabilities},
		{"net worth", tc.lastSnapshot.NetWorth, netWorth},
	}
	for _, c := range checks {
		want, err := decimal.NewFromString(c.want)
		if err != nil {
			return err
		}
		if !c.got.Equal(want) {
			return fmt.Errorf("expected %s %s, got %s", c.name, want, c.got)
		}
	}
	return nil
}

func categoryShouldHaveSpending(ctx context.Context, device, category, total string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	categoryID, err := lookup(tc.categories, "category", category)
	if err != nil {
		return err
	}
	want, err := decimal.NewFromString(total)
	if err != nil {
		return err
	}

	now := tc.clock.Now()
	totals, err := e.CalculateCategorySpending(ctx, now.AddDate(0, -1, 0), now.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	for _, t := range totals {
		if t.CategoryID == categoryID {
			if !t.Total.Equal(want) {
				return fmt.Errorf("expected %s spending %s, got %s", category, want, t.Total)
			}
			return nil
		}
	}
	if want.IsZero() {
		return nil
	}
	return fmt.Errorf("no spending found for %s", category)
}
