package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/finance-tracker/core/config"
	"github.com/finance-tracker/core/internal/application/engine"
	"github.com/finance-tracker/core/internal/application/subscription"
)

func commands(cfg *config.Config) []subcommands.Command {
	return []subcommands.Command{
		&restoreCmd{cfg: cfg},
		&syncCmd{cfg: cfg},
		&netWorthCmd{cfg: cfg},
		&spendingCmd{cfg: cfg},
		&budgetsCmd{cfg: cfg},
		&allocationCmd{cfg: cfg},
		&defaultsCmd{cfg: cfg},
		&tierCmd{cfg: cfg},
	}
}

// run opens a session, runs fn and ends the session so that pending changes are backed up.
func run(ctx context.Context, cfg *config.Config, fn func(ctx context.Context, e *engine.Engine) error) subcommands.ExitStatus {
	a, err := openApp(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	defer a.engine.EndSession(ctx)

	if err := fn(ctx, a.engine); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type restoreCmd struct{ cfg *config.Config }

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "merge the latest remote backup into the local store" }
func (*restoreCmd) Usage() string {
	return `fintrack restore

  Downloads the latest snapshot, merges it with local records (last writer
  wins) and imports the result. Local-only records are kept.
`
}
func (*restoreCmd) SetFlags(*flag.FlagSet) {}

func (c *restoreCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.cfg, func(ctx context.Context, e *engine.Engine) error {
		counts, err := e.RestoreFromBackup(ctx)
		if err != nil {
			return err
		}
		if counts == nil {
			fmt.Println("no backup to restore")
			return nil
		}
		return printJSON(counts)
	})
}

type syncCmd struct{ cfg *config.Config }

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "upload a backup of all local records" }
func (*syncCmd) Usage() string {
	return `fintrack sync

  Uploads a snapshot of every local record now. Other commands only back up
  when they changed something.
`
}
func (*syncCmd) SetFlags(*flag.FlagSet) {}

func (c *syncCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.cfg, func(ctx context.Context, e *engine.Engine) error {
		return e.BackupNow(ctx)
	})
}

type netWorthCmd struct {
	cfg     *config.Config
	history bool
}

func (*netWorthCmd) Name() string     { return "networth" }
func (*netWorthCmd) Synopsis() string { return "record a net worth snapshot" }
func (*netWorthCmd) Usage() string {
	return `fintrack networth [-history]

  Computes assets and liabilities from active accounts and holdings and
  stores an immutable snapshot. With -history, prints all snapshots instead.
`
}

func (c *netWorthCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.history, "history", false, "print the snapshot history instead of recording a new one")
}

func (c *netWorthCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.cfg, func(ctx context.Context, e *engine.Engine) error {
		if c.history {
			history, err := e.GetNetWorthHistory(ctx)
			if err != nil {
				return err
			}
			return printJSON(history)
		}
		snapshot, err := e.GenerateNetWorthSnapshot(ctx)
		if err != nil {
			return err
		}
		return printJSON(snapshot)
	})
}

type spendingCmd struct {
	cfg   *config.Config
	start string
	end   string
}

func (*spendingCmd) Name() string     { return "spending" }
func (*spendingCmd) Synopsis() string { return "total expenses per category" }
func (*spendingCmd) Usage() string {
	return `fintrack spending [-s <YYYY-MM-DD>] [-e <YYYY-MM-DD>]

  Sums expenses per category in the inclusive date range. Split
  transactions are counted through their splits. Defaults to the current month.
`
}

func (c *spendingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "start date (defaults to the first day of the current month)")
	f.StringVar(&c.end, "e", "", "end date (defaults to today)")
}

func (c *spendingCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)

	if c.start != "" {
		d, err := time.Parse(time.DateOnly, c.start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
		start = d
	}
	if c.end != "" {
		d, err := time.Parse(time.DateOnly, c.end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
		end = d.Add(24*time.Hour - time.Second)
	}

	return run(ctx, c.cfg, func(ctx context.Context, e *engine.Engine) error {
		totals, err := e.CalculateCategorySpending(ctx, start, end)
		if err != nil {
			return err
		}
		return printJSON(totals)
	})
}

type budgetsCmd struct{ cfg *config.Config }

func (*budgetsCmd) Name() string     { return "budgets" }
func (*budgetsCmd) Synopsis() string { return "progress of active budgets in their current period" }
func (*budgetsCmd) Usage() string {
	return `fintrack budgets
`
}
func (*budgetsCmd) SetFlags(*flag.FlagSet) {}

func (c *budgetsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.cfg, func(ctx context.Context, e *engine.Engine) error {
		progress, err := e.GetBudgetProgress(ctx)
		if err != nil {
			return err
		}
		return printJSON(progress)
	})
}

type allocationCmd struct{ cfg *config.Config }

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "portfolio value, gains and asset allocation" }
func (*allocationCmd) Usage() string {
	return `fintrack allocation
`
}
func (*allocationCmd) SetFlags(*flag.FlagSet) {}

func (c *allocationCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.cfg, func(ctx context.Context, e *engine.Engine) error {
		total, err := e.CalculateTotalPortfolioValue(ctx)
		if err != nil {
			return err
		}
		allocation, err := e.GetAssetAllocation(ctx, nil)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Performance *engine.PortfolioPerformance `json:"performance"`
			Allocation  []engine.AllocationSlice     `json:"allocation"`
		}{total, allocation})
	})
}

type defaultsCmd struct{ cfg *config.Config }

func (*defaultsCmd) Name() string     { return "defaults" }
func (*defaultsCmd) Synopsis() string { return "seed the default categories for a new user" }
func (*defaultsCmd) Usage() string {
	return `fintrack defaults

  Creates the default income, expense and transfer categories when the user
  has none. Existing categories are left alone.
`
}
func (*defaultsCmd) SetFlags(*flag.FlagSet) {}

func (c *defaultsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, c.cfg, func(ctx context.Context, e *engine.Engine) error {
		categories, err := e.EnsureDefaultCategories(ctx)
		if err != nil {
			return err
		}
		return printJSON(categories)
	})
}

type tierCmd struct{ cfg *config.Config }

func (*tierCmd) Name() string     { return "tier" }
func (*tierCmd) Synopsis() string { return "show the features and limits of the current subscription" }
func (*tierCmd) Usage() string {
	return `fintrack tier
`
}
func (*tierCmd) SetFlags(*flag.FlagSet) {}

func (c *tierCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := sessionFromConfig(c.cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	manager := subscription.NewManager(session.Subscription)
	err = printJSON(map[string]any{
		"tier":             manager.Tier(),
		"active":           manager.IsActive(),
		"daysUntilExpiry":  manager.DaysUntilExpiry(),
		"limits":           manager.Limits(),
		"multiUser":        manager.CanUseMultiUser(),
		"ocr":              manager.CanUseOCR(),
		"bankConnections":  manager.CanConnectBanks(),
		"automation":       manager.CanUseAutomation(),
		"quickBooksExport": manager.CanExportToQuickBooks(),
		"prioritySupport":  manager.CanUsePrioritySupport(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
