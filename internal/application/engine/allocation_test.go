package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

func TestClassifySymbol(t *testing.T) {
	tests := []struct {
		symbol string
		want   AssetClass
	}{
		{"BTC", AssetClassCryptocurrency},
		{"eth-usd", AssetClassCryptocurrency},
		{"BND", AssetClassBonds},
		{"USBOND30", AssetClassBonds},
		{"VOO", AssetClassETF},
		{"spy", AssetClassETF},
		{"AAPL", AssetClassStocks},
		{"BRK.B", AssetClassStocks},
		{"MSFT", AssetClassStocks},
		{"", AssetClassOther},
		{"HOUSE-01", AssetClassOther},
		{"GOLDBAR1", AssetClassOther},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			if got := ClassifySymbol(tt.symbol); got != tt.want {
				t.Errorf("ClassifySymbol(%q) = %s, want %s", tt.symbol, got, tt.want)
			}
		})
	}
}

func addHolding(t *testing.T, e *Engine, portfolioID uuid.UUID, symbol, quantity, costBasis, price string) {
	t.Helper()
	_, err := e.AddInvestment(context.Background(), AddInvestmentInput{
		PortfolioID:  portfolioID,
		Symbol:       symbol,
		Quantity:     decimal.RequireFromString(quantity),
		CostBasis:    decimal.RequireFromString(costBasis),
		CurrentPrice: decimal.RequireFromString(price),
	})
	if err != nil {
		t.Fatalf("AddInvestment(%s) error = %v", symbol, err)
	}
}

func TestPortfolioPerformance(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()

	growth, err := e.CreatePortfolio(ctx, CreatePortfolioInput{Name: "Growth"})
	if err != nil {
		t.Fatalf("CreatePortfolio() error = %v", err)
	}
	income, err := e.CreatePortfolio(ctx, CreatePortfolioInput{Name: "Income"})
	if err != nil {
		t.Fatalf("CreatePortfolio() error = %v", err)
	}

	addHolding(t, e, growth.ID, "AAPL", "10", "1500", "150")
	addHolding(t, e, growth.ID, "BTC", "0.5", "9250", "40000")
	addHolding(t, e, income.ID, "BND", "20", "1600", "75")

	t.Run("single portfolio", func(t *testing.T) {
		perf, err := e.CalculatePortfolioPerformance(ctx, growth.ID)
		if err != nil {
			t.Fatalf("CalculatePortfolioPerformance() error = %v", err)
		}
		if !perf.CurrentValue.Equal(decimal.NewFromInt(21500)) {
			t.Errorf("expected value 21500, got %s", perf.CurrentValue)
		}
		if !perf.GainLoss.Equal(decimal.NewFromInt(10750)) {
			t.Errorf("expected gain 10750, got %s", perf.GainLoss)
		}
		if !perf.GainLossPercent.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected gain percent 100, got %s", perf.GainLossPercent)
		}
		if perf.HoldingCount != 2 {
			t.Errorf("expected 2 holdings, got %d", perf.HoldingCount)
		}
	})

	t.Run("all portfolios", func(t *testing.T) {
		perf, err := e.CalculateTotalPortfolioValue(ctx)
		if err != nil {
			t.Fatalf("CalculateTotalPortfolioValue() error = %v", err)
		}
		if !perf.CurrentValue.Equal(decimal.NewFromInt(23000)) {
			t.Errorf("expected value 23000, got %s", perf.CurrentValue)
		}
		if !perf.GainLoss.Equal(decimal.NewFromInt(10650)) {
			t.Errorf("expected gain 10650, got %s", perf.GainLoss)
		}
	})

	t.Run("zero cost basis", func(t *testing.T) {
		gift, err := e.CreatePortfolio(ctx, CreatePortfolioInput{Name: "Gifted"})
		if err != nil {
			t.Fatalf("CreatePortfolio() error = %v", err)
		}
		addHolding(t, e, gift.ID, "MSFT", "1", "0", "300")

		perf, err := e.CalculatePortfolioPerformance(ctx, gift.ID)
		if err != nil {
			t.Fatalf("CalculatePortfolioPerformance() error = %v", err)
		}
		if !perf.GainLossPercent.IsZero() {
			t.Errorf("expected gain percent 0, got %s", perf.GainLossPercent)
		}
	})

	t.Run("unknown portfolio", func(t *testing.T) {
		_, err := e.CalculatePortfolioPerformance(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrPortfolioNotFound) {
			t.Errorf("expected portfolio not found, got %v", err)
		}
	})
}

func TestGetAssetAllocation(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()

	portfolio, err := e.CreatePortfolio(ctx, CreatePortfolioInput{Name: "Mixed"})
	if err != nil {
		t.Fatalf("CreatePortfolio() error = %v", err)
	}
	addHolding(t, e, portfolio.ID, "AAPL", "4", "0", "100")
	addHolding(t, e, portfolio.ID, "VOO", "1", "0", "300")
	addHolding(t, e, portfolio.ID, "ETH", "1", "0", "200")
	addHolding(t, e, portfolio.ID, "MSFT", "1", "0", "100")

	allocation, err := e.GetAssetAllocation(ctx, &portfolio.ID)
	if err != nil {
		t.Fatalf("GetAssetAllocation() error = %v", err)
	}

	want := map[AssetClass]int64{
		AssetClassStocks:         50,
		AssetClassETF:            30,
		AssetClassCryptocurrency: 20,
	}
	if len(allocation) != len(want) {
		t.Fatalf("expected %d classes, got %d", len(want), len(allocation))
	}

	total := decimal.Zero
	for _, slice := range allocation {
		expected, ok := want[slice.Class]
		if !ok {
			t.Errorf("unexpected class %s", slice.Class)
			continue
		}
		if !slice.Percentage.Equal(decimal.NewFromInt(expected)) {
			t.Errorf("%s: expected %d%%, got %s", slice.Class, expected, slice.Percentage)
		}
		total = total.Add(slice.Percentage)
	}
	if !total.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected percentages to add up to 100, got %s", total)
	}

	t.Run("empty portfolio", func(t *testing.T) {
		empty, err := e.CreatePortfolio(ctx, CreatePortfolioInput{Name: "Empty"})
		if err != nil {
			t.Fatalf("CreatePortfolio() error = %v", err)
		}
		allocation, err := e.GetAssetAllocation(ctx, &empty.ID)
		if err != nil {
			t.Fatalf("GetAssetAllocation() error = %v", err)
		}
		if len(allocation) != 0 {
			t.Errorf("expected no slices, got %d", len(allocation))
		}
	})
}
