package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/core/internal/application/engine"
	"github.com/finance-tracker/core/internal/domain/entity"
)

func registerRecordSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^on "([^"]*)" I create a "([^"]*)" account "([^"]*)" with balance "([^"]*)"$`, iCreateAnAccount)
	ctx.Step(`^on "([^"]*)" I try to create a "([^"]*)" account "([^"]*)" with balance "([^"]*)"$`, iTryToCreateAnAccount)
	ctx.Step(`^on "([^"]*)" I rename account "([^"]*)" to "([^"]*)"$`, iRenameAccount)
	ctx.Step(`^on "([^"]*)" I delete account "([^"]*)"$`, iDeleteAccount)
	ctx.Step(`^on "([^"]*)" I create an expense category "([^"]*)"$`, iCreateAnExpenseCategory)
	ctx.Step(`^on "([^"]*)" I add a transaction "([^"]*)" of "([^"]*)" to account "([^"]*)"$`, iAddATransaction)
	ctx.Step(`^on "([^"]*)" I try to split transaction "([^"]*)" into:$`, iTryToSplitTransaction)
	ctx.Step(`^on "([^"]*)" I create a portfolio "([^"]*)"$`, iCreateAPortfolio)
	ctx.Step(`^on "([^"]*)" I hold (\S+) units of "([^"]*)" at "([^"]*)" in portfolio "([^"]*)"$`, iHoldUnits)
	ctx.Step(`^on "([^"]*)" I try to add family member "([^"]*)"$`, iTryToAddFamilyMember)
	ctx.Step(`^on "([^"]*)" account "([^"]*)" should be named "([^"]*)"$`, accountShouldBeNamed)
	ctx.Step(`^on "([^"]*)" there should be (\d+) accounts?$`, thereShouldBeAccounts)
	ctx.Step(`^on "([^"]*)" transaction "([^"]*)" should have (\d+) splits?$`, transactionShouldHaveSplits)
	ctx.Step(`^the account was deleted "([^"]*)"$`, theAccountWasDeleted)
}

func createAccount(ctx context.Context, device, accountType, name, balance string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return err
	}

	account, err := e.CreateAccount(ctx, engine.CreateAccountInput{
		Name:    name,
		Type:    entity.AccountType(accountType),
		Balance: amount,
	})
	if err != nil {
		return err
	}
	tc.accounts[name] = account.ID
	return nil
}

func iCreateAnAccount(ctx context.Context, device, accountType, name, balance string) error {
	return createAccount(ctx, device, accountType, name, balance)
}

func iTryToCreateAnAccount(ctx context.Context, device, accountType, name, balance string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	return tc.record(createAccount(ctx, device, accountType, name, balance))
}

func iRenameAccount(ctx context.Context, device, alias, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	id, err := lookup(tc.accounts, "account", alias)
	if err != nil {
		return err
	}
	_, err = e.UpdateAccount(ctx, id, engine.UpdateAccountInput{Name: &name})
	return err
}

func iDeleteAccount(ctx context.Context, device, alias string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	id, err := lookup(tc.accounts, "account", alias)
	if err != nil {
		return err
	}
	tc.lastDeleteMod, err = e.DeleteAccount(ctx, id)
	return err
}

func theAccountWasDeleted(ctx context.Context, mode string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	if string(tc.lastDeleteMod) != mode {
		return fmt.Errorf("expected a %s delete, got %s", mode, tc.lastDeleteMod)
	}
	return nil
}

func iCreateAnExpenseCategory(ctx context.Context, device, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	category, err := e.CreateCategory(ctx, engine.CreateCategoryInput{Name: name, Type: entity.CategoryTypeExpense})
	if err != nil {
		return err
	}
	tc.categories[name] = category.ID
	return nil
}

func iAddATransaction(ctx context.Context, device, description, amount, accountAlias string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	accountID, err := lookup(tc.accounts, "account", accountAlias)
	if err != nil {
		return err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}

	transaction, err := e.AddTransaction(ctx, engine.AddTransactionInput{
		AccountID:   accountID,
		Amount:      value,
		Description: description,
		Date:        tc.clock.Now(),
	})
	if err != nil {
		return err
	}
	tc.transactions[description] = transaction.ID
	return nil
}

// iTryToSplitTransaction reads a table with "amount" and "category" columns.
func iTryToSplitTransaction(ctx context.Context, device, alias string, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	transactionID, err := lookup(tc.transactions, "transaction", alias)
	if err != nil {
		return err
	}

	if len(table.Rows) == 0 {
		return fmt.Errorf("split table needs a header row")
	}
	columns := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}

	splits := make([]engine.SplitInput, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		amount, err := decimal.NewFromString(row.Cells[columns["amount"]].Value)
		if err != nil {
			return err
		}
		categoryID, err := lookup(tc.categories, "category", row.Cells[columns["category"]].Value)
		if err != nil {
			return err
		}
		splits = append(splits, engine.SplitInput{Amount: amount, CategoryID: categoryID})
	}

	_, err = e.SplitTransaction(ctx, transactionID, splits)
	return tc.record(err)
}

func iCreateAPortfolio(ctx context.Context, device, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	portfolio, err := e.CreatePortfolio(ctx, engine.CreatePortfolioInput{Name: name})
	if err != nil {
		return err
	}
	tc.portfolios[name] = portfolio.ID
	return nil
}

func iHoldUnits(ctx context.Context, device, quantity, symbol, price, portfolioAlias string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	portfolioID, err := lookup(tc.portfolios, "portfolio", portfolioAlias)
	if err != nil {
		return err
	}
	qty, err := decimal.NewFromString(quantity)
	if err != nil {
		return err
	}
	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}

	_, err = e.AddInvestment(ctx, engine.AddInvestmentInput{
		PortfolioID:  portfolioID,
		Symbol:       symbol,
		Quantity:     qty,
		CostBasis:    qty.Mul(unitPrice),
		CurrentPrice: unitPrice,
	})
	return err
}

func iTryToAddFamilyMember(ctx context.Context, device, email string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	_, err = e.AddFamilyMember(ctx, engine.AddFamilyMemberInput{Email: email})
	return tc.record(err)
}

func accountShouldBeNamed(ctx context.Context, device, alias, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	id, err := lookup(tc.accounts, "account", alias)
	if err != nil {
		return err
	}
	account, err := e.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	if account.Name != name {
		return fmt.Errorf("expected account %q to be named %q, got %q", alias, name, account.Name)
	}
	return nil
}

func thereShouldBeAccounts(ctx context.Context, device string, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	accounts, err := e.ListAccounts(ctx, true)
	if err != nil {
		return err
	}
	if len(accounts) != count {
		return fmt.Errorf("expected %d accounts on %s, got %d", count, device, len(accounts))
	}
	return nil
}

func transactionShouldHaveSplits(ctx context.Context, device, alias string, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errNoContext
	}
	e, err := tc.device(device)
	if err != nil {
		return err
	}
	id, err := lookup(tc.transactions, "transaction", alias)
	if err != nil {
		return err
	}
	splits, err := e.GetTransactionSplits(ctx, id)
	if err != nil {
		return err
	}
	if len(splits) != count {
		return fmt.Errorf("expected %d splits for %q, got %d", count, alias, len(splits))
	}
	return nil
}
