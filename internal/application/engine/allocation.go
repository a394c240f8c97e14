package engine

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// AssetClass is the bucket a holding falls into for allocation reports.
type AssetClass string

const (
	AssetClassCryptocurrency AssetClass = "Cryptocurrency"
	AssetClassBonds          AssetClass = "Bonds"
	AssetClassETF            AssetClass = "ETF"
	AssetClassStocks         AssetClass = "Stocks"
	AssetClassOther          AssetClass = "Other"
)

// PortfolioPerformance summarizes the unrealized result of a set of holdings.
type PortfolioPerformance struct {
	CurrentValue    decimal.Decimal `json:"currentValue"`
	CostBasis       decimal.Decimal `json:"costBasis"`
	GainLoss        decimal.Decimal `json:"gainLoss"`
	GainLossPercent decimal.Decimal `json:"gainLossPercent"`
	HoldingCount    int             `json:"holdingCount"`
}

// AllocationSlice is the share of total value held in one asset class.
type AllocationSlice struct {
	Class      AssetClass      `json:"class"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
}

var (
	cryptoSymbols = map[string]bool{
		"BTC": true, "ETH": true, "SOL": true, "ADA": true, "XRP": true,
		"DOGE": true, "DOT": true, "LTC": true, "USDT": true, "USDC": true,
		"BNB": true, "AVAX": true, "MATIC": true,
	}
	bondSymbols = map[string]bool{
		"BND": true, "AGG": true, "TLT": true, "IEF": true, "SHY": true,
		"LQD": true, "HYG": true, "MUB": true, "TIP": true, "BNDX": true,
		"VGIT": true, "VCIT": true, "GOVT": true,
	}
	etfSymbols = map[string]bool{
		"SPY": true, "VOO": true, "IVV": true, "VTI": true, "QQQ": true,
		"DIA": true, "IWM": true, "VEA": true, "VWO": true, "EFA": true,
		"VT": true, "SCHD": true, "VIG": true, "XLK": true, "XLF": true,
		"GLD": true, "ARKK": true,
	}
	cryptoPairRegex = regexp.MustCompile(`^[A-Z0-9]{2,6}-(USD|USDT|EUR|BTC)$`)
	tickerRegex     = regexp.MustCompile(`^[A-Z]{1,5}(\.[A-Z]{1,2})?$`)
)

// ClassifySymbol guesses the asset class of a ticker symbol.
func ClassifySymbol(symbol string) AssetClass {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	switch {
	case s == "":
		return AssetClassOther
	case cryptoSymbols[s] || cryptoPairRegex.MatchString(s):
		return AssetClassCryptocurrency
	case bondSymbols[s] || strings.Contains(s, "BOND"):
		return AssetClassBonds
	case etfSymbols[s] || strings.HasSuffix(s, "ETF"):
		return AssetClassETF
	case tickerRegex.MatchString(s):
		return AssetClassStocks
	}
	return AssetClassOther
}

func performanceOf(investments []*entity.Investment) PortfolioPerformance {
	perf := PortfolioPerformance{
		CurrentValue: decimal.Zero,
		CostBasis:    decimal.Zero,
		HoldingCount: len(investments),
	}
	for _, investment := range investments {
		perf.CurrentValue = perf.CurrentValue.Add(investment.MarketValue())
		perf.CostBasis = perf.CostBasis.Add(investment.CostBasis)
	}

	perf.GainLoss = perf.CurrentValue.Sub(perf.CostBasis)
	perf.GainLossPercent = decimal.Zero
	if !perf.CostBasis.IsZero() {
		perf.GainLossPercent = perf.GainLoss.Div(perf.CostBasis).Mul(hundred).Round(2)
	}
	return perf
}

// CalculatePortfolioPerformance returns value and gain/loss of one portfolio.
func (e *Engine) CalculatePortfolioPerformance(ctx context.Context, portfolioID uuid.UUID) (*PortfolioPerformance, error) {
	investments, err := e.ListInvestments(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	perf := performanceOf(investments)
	return &perf, nil
}

// CalculateTotalPortfolioValue returns value and gain/loss across all active portfolios.
func (e *Engine) CalculateTotalPortfolioValue(ctx context.Context) (*PortfolioPerformance, error) {
	investments, err := e.store.Investments().FindByUser(ctx, e.session.UserID)
	if err != nil {
		return nil, err
	}
	perf := performanceOf(investments)
	return &perf, nil
}

// GetAssetAllocation buckets holdings by asset class. With a nil portfolioID
// every active portfolio is included. Empty classes are omitted.
func (e *Engine) GetAssetAllocation(ctx context.Context, portfolioID *uuid.UUID) ([]AllocationSlice, error) {
	var (
		investments []*entity.Investment
		err         error
	)
	if portfolioID != nil {
		investments, err = e.ListInvestments(ctx, *portfolioID)
	} else {
		investments, err = e.store.Investments().FindByUser(ctx, e.session.UserID)
	}
	if err != nil {
		return nil, err
	}

	values := make(map[AssetClass]decimal.Decimal)
	total := decimal.Zero
	for _, investment := range investments {
		class := ClassifySymbol(investment.Symbol)
		value := investment.MarketValue()
		values[class] = values[class].Add(value)
		total = total.Add(value)
	}

	order := []AssetClass{AssetClassStocks, AssetClassETF, AssetClassBonds, AssetClassCryptocurrency, AssetClassOther}
	slices := make([]AllocationSlice, 0, len(values))
	for _, class := range order {
		value, ok := values[class]
		if !ok {
			continue
		}
		percentage := decimal.Zero
		if !total.IsZero() {
			percentage = value.Div(total).Mul(hundred).Round(2)
		}
		slices = append(slices, AllocationSlice{Class: class, Value: value, Percentage: percentage})
	}
	return slices, nil
}
