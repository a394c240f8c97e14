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

func TestPortfolioLifecycle(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()

	if _, err := e.CreatePortfolio(ctx, CreatePortfolioInput{Name: " "}); !errors.Is(err, domainerror.ErrPortfolioNameRequired) {
		t.Errorf("expected name required, got %v", err)
	}

	portfolio, err := e.CreatePortfolio(ctx, CreatePortfolioInput{Name: "Retirement", Description: "Long term"})
	if err != nil {
		t.Fatalf("CreatePortfolio() error = %v", err)
	}

	name := "Pension"
	updated, err := e.UpdatePortfolio(ctx, portfolio.ID, UpdatePortfolioInput{Name: &name})
	if err != nil {
		t.Fatalf("UpdatePortfolio() error = %v", err)
	}
	if updated.Name != name || updated.Description != "Long term" {
		t.Errorf("unexpected portfolio after update: %+v", updated)
	}

	if err := e.DeletePortfolio(ctx, portfolio.ID); err != nil {
		t.Fatalf("DeletePortfolio() error = %v", err)
	}

	active, err := e.ListPortfolios(ctx, false)
	if err != nil {
		t.Fatalf("ListPortfolios() error = %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active portfolios, got %d", len(active))
	}

	all, err := e.ListPortfolios(ctx, true)
	if err != nil {
		t.Fatalf("ListPortfolios() error = %v", err)
	}
	if len(all) != 1 || all[0].IsActive {
		t.Errorf("expected the deactivated portfolio to remain, got %+v", all)
	}
}

func TestInvestmentLifecycle(t *testing.T) {
	e := newTestEngine(t, entity.TierFree)
	ctx := context.Background()

	portfolio, err := e.CreatePortfolio(ctx, CreatePortfolioInput{Name: "Brokerage"})
	if err != nil {
		t.Fatalf("CreatePortfolio() error = %v", err)
	}

	tests := []struct {
		name    string
		input   AddInvestmentInput
		wantErr error
	}{
		{name: "missing symbol", input: AddInvestmentInput{PortfolioID: portfolio.ID}, wantErr: domainerror.ErrInvalidSymbol},
		{name: "negative quantity", input: AddInvestmentInput{PortfolioID: portfolio.ID, Symbol: "AAPL", Quantity: decimal.NewFromInt(-1)}, wantErr: domainerror.ErrInvalidQuantity},
		{name: "unknown portfolio", input: AddInvestmentInput{PortfolioID: uuid.New(), Symbol: "AAPL"}, wantErr: domainerror.ErrPortfolioNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.AddInvestment(ctx, tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	investment, err := e.AddInvestment(ctx, AddInvestmentInput{
		PortfolioID:  portfolio.ID,
		Symbol:       " vti ",
		Quantity:     decimal.NewFromInt(3),
		CostBasis:    decimal.NewFromInt(600),
		CurrentPrice: decimal.NewFromInt(210),
	})
	if err != nil {
		t.Fatalf("AddInvestment() error = %v", err)
	}
	if investment.Symbol != "VTI" {
		t.Errorf("expected upper-cased symbol, got %q", investment.Symbol)
	}

	price := decimal.NewFromInt(250)
	updated, err := e.UpdateInvestment(ctx, investment.ID, UpdateInvestmentInput{CurrentPrice: &price})
	if err != nil {
		t.Fatalf("UpdateInvestment() error = %v", err)
	}
	if !updated.MarketValue().Equal(decimal.NewFromInt(750)) {
		t.Errorf("expected market value 750, got %s", updated.MarketValue())
	}

	if err := e.DeleteInvestment(ctx, investment.ID); err != nil {
		t.Fatalf("DeleteInvestment() error = %v", err)
	}
	holdings, err := e.ListInvestments(ctx, portfolio.ID)
	if err != nil {
		t.Fatalf("ListInvestments() error = %v", err)
	}
	if len(holdings) != 0 {
		t.Errorf("expected no holdings, got %d", len(holdings))
	}
	if _, err := e.GetInvestment(ctx, investment.ID); !errors.Is(err, domainerror.ErrInvestmentNotFound) {
		t.Errorf("expected investment not found, got %v", err)
	}
}
