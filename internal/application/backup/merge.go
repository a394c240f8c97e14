package backup

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/domain/entity"
)

// Merge combines a local and a remote dataset with last-writer-wins per record.
// A remote record replaces the local one with the same id only when it was
// updated strictly later; remote-only records are appended. Net worth snapshots
// are immutable and compare on creation time. Merging the same remote twice
// yields the same result as merging it once.
func Merge(local, remote *adapter.Dataset) *adapter.Dataset {
	if local == nil {
		local = &adapter.Dataset{}
	}
	if remote == nil {
		remote = &adapter.Dataset{}
	}

	return &adapter.Dataset{
		Accounts: mergeRecords(local.Accounts, remote.Accounts,
			func(r *entity.Account) (uuid.UUID, time.Time) { return r.ID, r.UpdatedAt }),
		Categories: mergeRecords(local.Categories, remote.Categories,
			func(r *entity.Category) (uuid.UUID, time.Time) { return r.ID, r.UpdatedAt }),
		Transactions: mergeRecords(local.Transactions, remote.Transactions,
			func(r *entity.Transaction) (uuid.UUID, time.Time) { return r.ID, r.UpdatedAt }),
		TransactionSplits: mergeRecords(local.TransactionSplits, remote.TransactionSplits,
			func(r *entity.TransactionSplit) (uuid.UUID, time.Time) { return r.ID, r.UpdatedAt }),
		Budgets: mergeRecords(local.Budgets, remote.Budgets,
			func(r *entity.Budget) (uuid.UUID, time.Time) { return r.ID, r.UpdatedAt }),
		Portfolios: mergeRecords(local.Portfolios, remote.Portfolios,
			func(r *entity.Portfolio) (uuid.UUID, time.Time) { return r.ID, r.UpdatedAt }),
		Investments: mergeRecords(local.Investments, remote.Investments,
			func(r *entity.Investment) (uuid.UUID, time.Time) { return r.ID, r.UpdatedAt }),
		NetWorthSnapshots: mergeRecords(local.NetWorthSnapshots, remote.NetWorthSnapshots,
			func(r *entity.NetWorthSnapshot) (uuid.UUID, time.Time) { return r.ID, r.CreatedAt }),
		FamilyMembers: mergeRecords(local.FamilyMembers, remote.FamilyMembers,
			func(r *entity.FamilyMember) (uuid.UUID, time.Time) { return r.ID, r.UpdatedAt }),
		BankConnections: mergeRecords(local.BankConnections, remote.BankConnections,
			func(r *entity.BankConnection) (uuid.UUID, time.Time) { return r.ID, r.UpdatedAt }),
		CategoryRules: mergeRecords(local.CategoryRules, remote.CategoryRules,
			func(r *entity.CategoryRule) (uuid.UUID, time.Time) { return r.ID, r.UpdatedAt }),
	}
}

// mergeRecords keeps local order and appends remote-only records in remote order.
func mergeRecords[T any](local, remote []T, key func(T) (uuid.UUID, time.Time)) []T {
	merged := make([]T, 0, len(local)+len(remote))
	index := make(map[uuid.UUID]int, len(local)+len(remote))

	for _, record := range local {
		id, _ := key(record)
		if pos, ok := index[id]; ok {
			merged[pos] = record
			continue
		}
		index[id] = len(merged)
		merged = append(merged, record)
	}

	for _, record := range remote {
		id, remoteStamp := key(record)
		pos, ok := index[id]
		if !ok {
			index[id] = len(merged)
			merged = append(merged, record)
			continue
		}
		if _, localStamp := key(merged[pos]); remoteStamp.After(localStamp) {
			merged[pos] = record
		}
	}

	return merged
}
