package model

// All returns every model, in dependency order, for migrations.
func All() []any {
	return []any{
		&AccountModel{},
		&CategoryModel{},
		&TransactionModel{},
		&TransactionSplitModel{},
		&BudgetModel{},
		&PortfolioModel{},
		&InvestmentModel{},
		&NetWorthSnapshotModel{},
		&FamilyMemberModel{},
		&BankConnectionModel{},
		&CategoryRuleModel{},
	}
}
